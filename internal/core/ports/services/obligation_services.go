package services

import (
	"context"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
	"github.com/SscSPs/membership_ledger/internal/dto"
)

// ObligationReaderSvc defines read operations for one obligation ledger
type ObligationReaderSvc interface {
	// GetObligation retrieves a specific obligation.
	GetObligation(ctx context.Context, obligationID string) (*domain.Obligation, error)

	// ListAll retrieves every obligation in the ledger.
	ListAll(ctx context.Context) ([]domain.Obligation, error)

	// ListForOwner retrieves the obligations held by one owner.
	ListForOwner(ctx context.Context, ownerID string) ([]domain.Obligation, error)
}

// ObligationWriterSvc defines write operations for one obligation ledger
type ObligationWriterSvc interface {
	// Create creates one outstanding obligation.
	Create(ctx context.Context, req dto.CreateObligationRequest, creatorUserID string) (*domain.Obligation, error)

	// CreateForOwners creates one obligation per owner, best effort; failures do not undo successes.
	CreateForOwners(ctx context.Context, req dto.BulkCreateObligationRequest, creatorUserID string) (*dto.BulkCreateObligationResult, error)

	// Update edits an outstanding obligation.
	Update(ctx context.Context, obligationID string, req dto.UpdateObligationRequest, userID string) (*domain.Obligation, error)

	// Delete removes an outstanding obligation.
	Delete(ctx context.Context, obligationID string, userID string) error

	// Settle moves the obligation to its settled state and credits a wallet exactly once.
	Settle(ctx context.Context, obligationID string, req dto.SettleObligationRequest, userID string) (*domain.Obligation, error)
}

// ObligationSvcFacade combines all obligation-ledger service interfaces
type ObligationSvcFacade interface {
	ObligationReaderSvc
	ObligationWriterSvc
	Policy() domain.ObligationPolicy
}
