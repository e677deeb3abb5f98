package services

import (
	"context"

	"github.com/reflyh2/accounting-sub001/internal/core/domain"
	"github.com/reflyh2/accounting-sub001/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalByID retrieves a specific journal with its entries.
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals for a branch.
	ListJournals(ctx context.Context, branchID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// PostJournal validates and persists a new balanced journal with its
	// entries as a single atomic unit.
	PostJournal(ctx context.Context, req dto.PostJournalRequest, creatorUserID string) (*domain.Journal, error)

	// PostCashJournal builds the cash receipt/payment entry shape (N document
	// lines against one aggregated kas_bank counter-line) and posts it.
	PostCashJournal(ctx context.Context, req dto.PostCashJournalRequest, creatorUserID string) (*domain.Journal, error)

	// UpdateJournal replaces a journal's header fields and entries
	// (delete-then-recreate) in one transaction. Branch and fiscal year are
	// immutable.
	UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, requestingUserID string) (*domain.Journal, error)

	// DeleteJournal removes a journal and cascades its entries.
	DeleteJournal(ctx context.Context, journalID string, requestingUserID string) error

	// ReverseJournal posts a mirrored journal reversing an existing one.
	ReverseJournal(ctx context.Context, journalID string, userID string) (*domain.Journal, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
