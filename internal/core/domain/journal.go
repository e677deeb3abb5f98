package domain

import "time"

// JournalType classifies the business origin of a journal.
type JournalType string

const (
	GeneralJournal JournalType = "GENERAL"
	CashReceipt    JournalType = "CASH_RECEIPT"
	CashPayment    JournalType = "CASH_PAYMENT"
)

// JournalStatus indicates the state of a journal.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// Journal represents a single balanced financial event composed of multiple
// journal entries. The balance invariant is enforced on the stored
// primary-currency amounts: sum(primary debit) == sum(primary credit), exact
// decimal equality.
type Journal struct {
	JournalID       string        `json:"journalID"`       // Primary Key (UUID)
	BranchID        string        `json:"branchID"`        // FK -> branches.branch_id; immutable after posting
	JournalType     JournalType   `json:"journalType"`     // GENERAL, CASH_RECEIPT, CASH_PAYMENT
	JournalDate     time.Time     `json:"journalDate"`     // Date the event occurred
	JournalNumber   string        `json:"journalNumber"`   // Sequential, scoped by branch+type+year
	ReferenceNumber string        `json:"referenceNumber"` // External document reference
	Description     string        `json:"description"`
	Status          JournalStatus `json:"status"` // Default: Posted

	// Reversal linkage.
	OriginalJournalID  *string `json:"originalJournalID,omitempty"`  // Set on the reversing journal
	ReversingJournalID *string `json:"reversingJournalID,omitempty"` // Set on the reversed journal

	Entries []JournalEntry `json:"entries,omitempty"` // Often loaded separately
	AuditFields
}

// FiscalYear returns the calendar year the journal belongs to. Branch and
// fiscal year are immutable once a journal exists.
func (j Journal) FiscalYear() int {
	return j.JournalDate.Year()
}
