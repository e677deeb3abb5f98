package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
)

// EntryInput is one journal line in a posting request. Exactly one of
// debit/credit must be positive. Exchange rate defaults to the company rate
// snapshot for the entry currency when omitted.
type EntryInput struct {
	AccountID    string           `json:"accountID" binding:"required"`
	Debit        decimal.Decimal  `json:"debit"`
	Credit       decimal.Decimal  `json:"credit"`
	CurrencyCode string           `json:"currencyCode" binding:"required"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate"`
	Notes        string           `json:"notes"`
}

// PostJournalRequest defines the payload for posting a general journal.
type PostJournalRequest struct {
	BranchID        string       `json:"branchID" binding:"required"`
	JournalDate     time.Time    `json:"journalDate" binding:"required"`
	ReferenceNumber string       `json:"referenceNumber"`
	Description     string       `json:"description" binding:"required"`
	Entries         []EntryInput `json:"entries" binding:"required,min=2,dive"`
}

// CashLineInput is one document line of a cash receipt/payment.
type CashLineInput struct {
	AccountID    string           `json:"accountID" binding:"required"`
	Amount       decimal.Decimal  `json:"amount" binding:"required"`
	CurrencyCode string           `json:"currencyCode" binding:"required"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate"`
	Notes        string           `json:"notes"`
}

// PostCashJournalRequest defines the payload for a cash receipt or payment:
// N document lines posted against one aggregated kas_bank counter-line.
type PostCashJournalRequest struct {
	BranchID         string             `json:"branchID" binding:"required"`
	JournalType      domain.JournalType `json:"journalType" binding:"required,oneof=CASH_RECEIPT CASH_PAYMENT"`
	JournalDate      time.Time          `json:"journalDate" binding:"required"`
	ReferenceNumber  string             `json:"referenceNumber"`
	Description      string             `json:"description" binding:"required"`
	KasBankAccountID string             `json:"kasBankAccountID" binding:"required"`
	Lines            []CashLineInput    `json:"lines" binding:"required,min=1,dive"`
}

// UpdateJournalRequest replaces a journal's header and entries. The date may
// move within the same fiscal year only; branch is immutable.
type UpdateJournalRequest struct {
	JournalDate     *time.Time   `json:"journalDate"`
	ReferenceNumber *string      `json:"referenceNumber"`
	Description     *string      `json:"description"`
	Entries         []EntryInput `json:"entries" binding:"omitempty,min=2,dive"`
}

// ListJournalsParams holds parameters for listing journals.
type ListJournalsParams struct {
	Limit            int     `form:"limit"`
	NextToken        *string `form:"nextToken"`
	IncludeReversals bool    `form:"includeReversals"`
	IncludeEntries   bool    `form:"includeEntries"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID               string          `json:"entryID"`
	AccountID             string          `json:"accountID"`
	Debit                 decimal.Decimal `json:"debit"`
	Credit                decimal.Decimal `json:"credit"`
	CurrencyCode          string          `json:"currencyCode"`
	ExchangeRate          decimal.Decimal `json:"exchangeRate"`
	PrimaryCurrencyDebit  decimal.Decimal `json:"primaryCurrencyDebit"`
	PrimaryCurrencyCredit decimal.Decimal `json:"primaryCurrencyCredit"`
	Notes                 string          `json:"notes,omitempty"`
}

// JournalResponse defines the data returned for a journal.
type JournalResponse struct {
	JournalID       string          `json:"journalID"`
	BranchID        string          `json:"branchID"`
	JournalType     string          `json:"journalType"`
	JournalDate     time.Time       `json:"journalDate"`
	JournalNumber   string          `json:"journalNumber"`
	ReferenceNumber string          `json:"referenceNumber,omitempty"`
	Description     string          `json:"description"`
	Status          string          `json:"status"`
	Entries         []EntryResponse `json:"entries,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// ListJournalsResponse is the paginated journal list payload.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	return EntryResponse{
		EntryID:               e.EntryID,
		AccountID:             e.AccountID,
		Debit:                 e.Debit,
		Credit:                e.Credit,
		CurrencyCode:          e.CurrencyCode,
		ExchangeRate:          e.ExchangeRate,
		PrimaryCurrencyDebit:  e.PrimaryCurrencyDebit,
		PrimaryCurrencyCredit: e.PrimaryCurrencyCredit,
		Notes:                 e.Notes,
	}
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:       j.JournalID,
		BranchID:        j.BranchID,
		JournalType:     string(j.JournalType),
		JournalDate:     j.JournalDate,
		JournalNumber:   j.JournalNumber,
		ReferenceNumber: j.ReferenceNumber,
		Description:     j.Description,
		Status:          string(j.Status),
		CreatedAt:       j.CreatedAt,
		CreatedBy:       j.CreatedBy,
	}
	if len(j.Entries) > 0 {
		resp.Entries = make([]EntryResponse, len(j.Entries))
		for i := range j.Entries {
			resp.Entries[i] = ToEntryResponse(&j.Entries[i])
		}
	}
	return resp
}
