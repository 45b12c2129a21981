package services

import (
	"github.com/SscSPs/membership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/membership_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/membership_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// cache may be nil, in which case dashboard summaries are computed on every call.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cache SummaryCache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The dashboard comes first; every writer invalidates it.
	container.Dashboard = NewDashboardService(repos.DashboardRepo, cache)

	container.Wallet = NewWalletService(
		repos.WalletRepo,
		WithWalletSummaryInvalidator(container.Dashboard),
	)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.UnitOfWork, container.Wallet, container.Dashboard)

	deps := ObligationServiceDeps{
		Repo:       repos.ObligationRepo,
		WalletRepo: repos.WalletRepo,
		UnitOfWork: repos.UnitOfWork,
		WalletSvc:  container.Wallet,
		Summary:    container.Dashboard,
	}
	container.Dues = NewObligationService(domain.DuesPolicy, deps)
	container.InitialFee = NewObligationService(domain.InitialFeePolicy, deps)
	container.Donation = NewObligationService(domain.DonationPolicy, deps)

	return container
}
