package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/membership_ledger/internal/apperrors"
	"github.com/SscSPs/membership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/membership_ledger/internal/core/ports/repositories"
)

// ObligationRepository implements portsrepo.ObligationRepositoryFacade.
type ObligationRepository struct {
	store *Store
}

var _ portsrepo.ObligationRepositoryFacade = (*ObligationRepository)(nil)

func ledger(st *state, kind domain.ObligationKind) (map[string]domain.Obligation, error) {
	m, ok := st.obligations[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown obligation kind %q", apperrors.ErrValidation, kind)
	}
	return m, nil
}

func (r *ObligationRepository) FindObligationByID(ctx context.Context, kind domain.ObligationKind, obligationID string) (*domain.Obligation, error) {
	var (
		ob  domain.Obligation
		ok  bool
		err error
	)
	r.store.read(func(st *state) {
		var m map[string]domain.Obligation
		if m, err = ledger(st, kind); err == nil {
			ob, ok = m[obligationID]
		}
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &ob, nil
}

func (r *ObligationRepository) ListObligations(ctx context.Context, kind domain.ObligationKind) ([]domain.Obligation, error) {
	return r.list(kind, func(domain.Obligation) bool { return true })
}

func (r *ObligationRepository) ListObligationsByOwner(ctx context.Context, kind domain.ObligationKind, ownerID string) ([]domain.Obligation, error) {
	return r.list(kind, func(o domain.Obligation) bool { return o.OwnerID == ownerID })
}

func (r *ObligationRepository) list(kind domain.ObligationKind, keep func(domain.Obligation) bool) ([]domain.Obligation, error) {
	var (
		obs []domain.Obligation
		err error
	)
	r.store.read(func(st *state) {
		var m map[string]domain.Obligation
		if m, err = ledger(st, kind); err != nil {
			return
		}
		obs = make([]domain.Obligation, 0, len(m))
		for _, o := range m {
			if keep(o) {
				obs = append(obs, o)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(obs, func(i, j int) bool {
		if !obs[i].CreatedAt.Equal(obs[j].CreatedAt) {
			return obs[i].CreatedAt.After(obs[j].CreatedAt)
		}
		return obs[i].ObligationID < obs[j].ObligationID
	})
	return obs, nil
}

func (r *ObligationRepository) SaveObligation(ctx context.Context, ob domain.Obligation) error {
	return r.store.write(func(st *state) error {
		m, err := ledger(st, ob.Kind)
		if err != nil {
			return err
		}
		if _, exists := m[ob.ObligationID]; exists {
			return apperrors.ErrDuplicate
		}
		m[ob.ObligationID] = ob
		return nil
	})
}

func (r *ObligationRepository) DeleteOutstandingObligation(ctx context.Context, kind domain.ObligationKind, obligationID string, outstanding domain.ObligationStatus) error {
	return r.store.write(func(st *state) error {
		m, err := ledger(st, kind)
		if err != nil {
			return err
		}
		ob, ok := m[obligationID]
		if !ok {
			return apperrors.ErrNotFound
		}
		if ob.Status != outstanding {
			return apperrors.ErrInvariantViolation
		}
		delete(m, obligationID)
		return nil
	})
}

func (t *txRepos) FindObligationByIDForUpdate(ctx context.Context, kind domain.ObligationKind, obligationID string) (*domain.Obligation, error) {
	m, err := ledger(t.st, kind)
	if err != nil {
		return nil, err
	}
	ob, ok := m[obligationID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &ob, nil
}

func (t *txRepos) UpdateObligation(ctx context.Context, ob domain.Obligation) error {
	m, err := ledger(t.st, ob.Kind)
	if err != nil {
		return err
	}
	if _, ok := m[ob.ObligationID]; !ok {
		return apperrors.ErrNotFound
	}
	m[ob.ObligationID] = ob
	return nil
}
