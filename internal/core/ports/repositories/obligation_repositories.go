package repositories

import (
	"context"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
)

// ObligationReader defines read operations for obligations of any kind
type ObligationReader interface {
	// FindObligationByID retrieves an obligation of the given kind.
	FindObligationByID(ctx context.Context, kind domain.ObligationKind, obligationID string) (*domain.Obligation, error)

	// ListObligations retrieves all obligations of a kind, newest first.
	ListObligations(ctx context.Context, kind domain.ObligationKind) ([]domain.Obligation, error)

	// ListObligationsByOwner retrieves the obligations of a kind held by one owner, newest first.
	ListObligationsByOwner(ctx context.Context, kind domain.ObligationKind, ownerID string) ([]domain.Obligation, error)
}

// ObligationWriter defines write operations for obligations outside a unit of work
type ObligationWriter interface {
	// SaveObligation persists a new obligation.
	SaveObligation(ctx context.Context, obligation domain.Obligation) error

	// DeleteOutstandingObligation removes an obligation only if it is still in the given outstanding status.
	// It returns ErrNotFound if no such row exists and ErrInvariantViolation if the row exists in another status.
	DeleteOutstandingObligation(ctx context.Context, kind domain.ObligationKind, obligationID string, outstanding domain.ObligationStatus) error
}

// ObligationRepositoryFacade combines all obligation-related repository interfaces
type ObligationRepositoryFacade interface {
	ObligationReader
	ObligationWriter
}

// ObligationTxRepository defines obligation operations available inside a unit of work.
type ObligationTxRepository interface {
	// FindObligationByIDForUpdate selects an obligation and locks it.
	FindObligationByIDForUpdate(ctx context.Context, kind domain.ObligationKind, obligationID string) (*domain.Obligation, error)

	// UpdateObligation writes back amount, status, details and settlement metadata.
	UpdateObligation(ctx context.Context, obligation domain.Obligation) error
}
