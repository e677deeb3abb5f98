package mapping

import (
	"github.com/reflyh2/accounting-sub001/internal/core/domain"
	"github.com/reflyh2/accounting-sub001/internal/models"
)

// ToModelJournal converts a domain Journal to its relational shape.
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:          d.JournalID,
		BranchID:           d.BranchID,
		JournalType:        string(d.JournalType),
		JournalDate:        d.JournalDate,
		JournalNumber:      d.JournalNumber,
		ReferenceNumber:    d.ReferenceNumber,
		Description:        d.Description,
		Status:             string(d.Status),
		OriginalJournalID:  d.OriginalJournalID,
		ReversingJournalID: d.ReversingJournalID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal back to the domain shape.
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:          m.JournalID,
		BranchID:           m.BranchID,
		JournalType:        domain.JournalType(m.JournalType),
		JournalDate:        m.JournalDate,
		JournalNumber:      m.JournalNumber,
		ReferenceNumber:    m.ReferenceNumber,
		Description:        m.Description,
		Status:             domain.JournalStatus(m.Status),
		OriginalJournalID:  m.OriginalJournalID,
		ReversingJournalID: m.ReversingJournalID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntry converts a domain JournalEntry to its relational shape.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:               d.EntryID,
		JournalID:             d.JournalID,
		AccountID:             d.AccountID,
		Debit:                 d.Debit,
		Credit:                d.Credit,
		CurrencyCode:          d.CurrencyCode,
		ExchangeRate:          d.ExchangeRate,
		PrimaryCurrencyDebit:  d.PrimaryCurrencyDebit,
		PrimaryCurrencyCredit: d.PrimaryCurrencyCredit,
		Notes:                 d.Notes,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry back to the domain shape.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:               m.EntryID,
		JournalID:             m.JournalID,
		AccountID:             m.AccountID,
		Debit:                 m.Debit,
		Credit:                m.Credit,
		CurrencyCode:          m.CurrencyCode,
		ExchangeRate:          m.ExchangeRate,
		PrimaryCurrencyDebit:  m.PrimaryCurrencyDebit,
		PrimaryCurrencyCredit: m.PrimaryCurrencyCredit,
		Notes:                 m.Notes,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}
