package models

import "time"

// Journal is the relational shape of a journal header row.
type Journal struct {
	JournalID          string    `db:"journal_id"`
	BranchID           string    `db:"branch_id"`
	JournalType        string    `db:"journal_type"`
	JournalDate        time.Time `db:"journal_date"`
	JournalNumber      string    `db:"journal_number"`
	ReferenceNumber    string    `db:"reference_number"`
	Description        string    `db:"description"`
	Status             string    `db:"status"`
	OriginalJournalID  *string   `db:"original_journal_id"`
	ReversingJournalID *string   `db:"reversing_journal_id"`
	AuditFields
}
