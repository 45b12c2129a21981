// Package memory is an in-process implementation of the repository ports. A unit of
// work runs against a private copy of the state that replaces the live state only
// when the work function succeeds, so a failed Do leaves nothing behind.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/membership_ledger/internal/core/ports/repositories"
)

type state struct {
	wallets      map[string]domain.Wallet
	transactions map[string]domain.Transaction
	obligations  map[domain.ObligationKind]map[string]domain.Obligation
}

func newState() *state {
	return &state{
		wallets:      make(map[string]domain.Wallet),
		transactions: make(map[string]domain.Transaction),
		obligations: map[domain.ObligationKind]map[string]domain.Obligation{
			domain.Dues:       {},
			domain.InitialFee: {},
			domain.Donation:   {},
		},
	}
}

// clone copies the maps. Values are stored by value and replaced, never mutated in
// place, so a shallow copy per map is enough.
func (s *state) clone() *state {
	c := &state{
		wallets:      make(map[string]domain.Wallet, len(s.wallets)),
		transactions: make(map[string]domain.Transaction, len(s.transactions)),
		obligations:  make(map[domain.ObligationKind]map[string]domain.Obligation, len(s.obligations)),
	}
	for k, v := range s.wallets {
		c.wallets[k] = v
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	for kind, obs := range s.obligations {
		m := make(map[string]domain.Obligation, len(obs))
		for k, v := range obs {
			m[k] = v
		}
		c.obligations[kind] = m
	}
	return c
}

// Store is the in-memory ledger database.
// Units of work are serialized; the repositories handed to a Do callback must not
// be used after it returns, and the non-transactional repositories must not be
// called from inside it.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Do implements portsrepo.UnitOfWork.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, repos portsrepo.TxRepositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	tx := &txRepos{st: work}
	if err := fn(ctx, portsrepo.TxRepositories{Wallets: tx, Transactions: tx, Obligations: tx}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// read runs f under the read lock.
func (s *Store) read(f func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f(s.st)
}

// write runs f under the write lock against the live state.
func (s *Store) write(f func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return f(s.st)
}

// NewRepositoryProvider exposes a store through the repository ports.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		WalletRepo:      &WalletRepository{store: store},
		TransactionRepo: &TransactionRepository{store: store},
		ObligationRepo:  &ObligationRepository{store: store},
		DashboardRepo:   &DashboardRepository{store: store},
		UnitOfWork:      store,
	}
}

var _ portsrepo.UnitOfWork = (*Store)(nil)

// txRepos implements the transaction-bound ports over a working copy.
type txRepos struct {
	st *state
}

var (
	_ portsrepo.WalletTxRepository      = (*txRepos)(nil)
	_ portsrepo.TransactionTxRepository = (*txRepos)(nil)
	_ portsrepo.ObligationTxRepository  = (*txRepos)(nil)
)
