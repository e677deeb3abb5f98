package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals for a branch using
	// token-based pagination. It returns the journals, a token for the next
	// page, and an error.
	ListJournals(ctx context.Context, branchID string, limit int, nextToken *string, includeReversals bool) ([]domain.Journal, *string, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournal persists a journal and its entries atomically, assigns the
	// next journal number for the branch+type+year scope, and applies the
	// signed balance deltas to the affected accounts under row locks.
	// The assigned number is written back to the passed journal.
	SaveJournal(ctx context.Context, journal *domain.Journal, entries []domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error

	// ReplaceJournal updates journal header fields and swaps out all entries
	// (delete-then-recreate) in one transaction, reversing the old balance
	// deltas and applying the new ones.
	ReplaceJournal(ctx context.Context, journal domain.Journal, entries []domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error

	// DeleteJournal removes a journal and cascades its entries in one
	// transaction, reversing its balance deltas.
	DeleteJournal(ctx context.Context, journalID string, balanceChanges map[string]decimal.Decimal, deletedBy string, deletedAt time.Time) error

	// UpdateJournalStatusAndLinks updates the status and reversal linkage
	// (original/reversing IDs) of a journal.
	UpdateJournalStatusAndLinks(ctx context.Context, journalID string, status domain.JournalStatus, reversingJournalID *string, originalJournalID *string, updatedBy string, updatedAt time.Time) error
}

// EntryReader defines read operations for journal entry data
type EntryReader interface {
	// FindEntriesByJournalID retrieves all entries of a single journal.
	FindEntriesByJournalID(ctx context.Context, journalID string) ([]domain.JournalEntry, error)

	// FindEntriesByJournalIDs retrieves entries for multiple journals, grouped
	// by journal ID.
	FindEntriesByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalEntry, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	EntryReader
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
