package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/membership_ledger/internal/apperrors"
	"github.com/SscSPs/membership_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/membership_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/membership_ledger/internal/core/ports/services"
	"github.com/SscSPs/membership_ledger/internal/dto"
	"github.com/SscSPs/membership_ledger/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// obligationService is one obligation ledger. Dues, initial fees and donations share
// this implementation and differ only in their policy.
type obligationService struct {
	BaseService
	policy     domain.ObligationPolicy
	repo       portsrepo.ObligationRepositoryFacade
	walletRepo portsrepo.WalletReader
	uow        portsrepo.UnitOfWork
	walletSvc  portssvc.WalletBalanceSvc
	summary    summaryInvalidator
	now        func() time.Time
}

// ObligationServiceDeps groups what every obligation ledger needs.
type ObligationServiceDeps struct {
	Repo       portsrepo.ObligationRepositoryFacade
	WalletRepo portsrepo.WalletReader
	UnitOfWork portsrepo.UnitOfWork
	WalletSvc  portssvc.WalletBalanceSvc
	Summary    summaryInvalidator
}

// NewObligationService creates the ledger for policy.Kind.
func NewObligationService(policy domain.ObligationPolicy, deps ObligationServiceDeps) portssvc.ObligationSvcFacade {
	summary := deps.Summary
	if summary == nil {
		summary = noopInvalidator{}
	}
	return &obligationService{
		policy:     policy,
		repo:       deps.Repo,
		walletRepo: deps.WalletRepo,
		uow:        deps.UnitOfWork,
		walletSvc:  deps.WalletSvc,
		summary:    summary,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.ObligationSvcFacade = (*obligationService)(nil)

func (s *obligationService) Policy() domain.ObligationPolicy {
	return s.policy
}

func (s *obligationService) kindAttr() slog.Attr {
	return slog.String("kind", string(s.policy.Kind))
}

func (s *obligationService) GetObligation(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	ob, err := s.repo.FindObligationByID(ctx, s.policy.Kind, obligationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find obligation", s.kindAttr(), slog.String("obligation_id", obligationID))
		return nil, err
	}
	return ob, nil
}

func (s *obligationService) ListAll(ctx context.Context) ([]domain.Obligation, error) {
	obs, err := s.repo.ListObligations(ctx, s.policy.Kind)
	if err != nil {
		s.LogError(ctx, err, "Failed to list obligations", s.kindAttr())
		return nil, fmt.Errorf("failed to list %s obligations: %w", s.policy.Kind, err)
	}
	if obs == nil {
		return []domain.Obligation{}, nil
	}
	return obs, nil
}

func (s *obligationService) ListForOwner(ctx context.Context, ownerID string) ([]domain.Obligation, error) {
	obs, err := s.repo.ListObligationsByOwner(ctx, s.policy.Kind, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list owner obligations", s.kindAttr(), slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list %s obligations for owner %s: %w", s.policy.Kind, ownerID, err)
	}
	if obs == nil {
		return []domain.Obligation{}, nil
	}
	return obs, nil
}

func (s *obligationService) validateTemplate(amount decimal.Decimal, details domain.ObligationDetails) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !utils.HasAmountScale(amount) {
		return fmt.Errorf("%w: amount has more than %d decimal places", apperrors.ErrValidation, utils.AmountScale)
	}
	if err := details.Validate(s.policy.Kind); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}

func (s *obligationService) newObligation(ownerID string, amount decimal.Decimal, details domain.ObligationDetails, creatorUserID string) domain.Obligation {
	now := s.now()
	return domain.Obligation{
		ObligationID:      uuid.NewString(),
		Kind:              s.policy.Kind,
		OwnerID:           ownerID,
		Amount:            amount,
		Status:            s.policy.OutstandingStatus,
		ObligationDetails: details,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
}

func (s *obligationService) Create(ctx context.Context, req dto.CreateObligationRequest, creatorUserID string) (*domain.Obligation, error) {
	ownerID := strings.TrimSpace(req.OwnerID)
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner ID is required", apperrors.ErrValidation)
	}
	details := req.ObligationDetailsRequest.ToDomain()
	if err := s.validateTemplate(req.Amount, details); err != nil {
		return nil, err
	}

	ob := s.newObligation(ownerID, req.Amount, details, creatorUserID)
	if err := s.repo.SaveObligation(ctx, ob); err != nil {
		s.LogError(ctx, err, "Failed to save obligation", s.kindAttr(), slog.String("owner_id", ownerID))
		return nil, err
	}

	s.summary.Invalidate(ctx)
	s.LogInfo(ctx, "Obligation created",
		s.kindAttr(),
		slog.String("obligation_id", ob.ObligationID),
		slog.String("owner_id", ownerID),
		slog.String("amount", ob.Amount.String()))
	return &ob, nil
}

// CreateForOwners is a sequence of independent creates. A failure for one owner
// leaves the obligations already created for the others in place.
func (s *obligationService) CreateForOwners(ctx context.Context, req dto.BulkCreateObligationRequest, creatorUserID string) (*dto.BulkCreateObligationResult, error) {
	if len(req.OwnerIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one owner is required", apperrors.ErrValidation)
	}
	details := req.ObligationDetailsRequest.ToDomain()
	if err := s.validateTemplate(req.Amount, details); err != nil {
		return nil, err
	}

	result := &dto.BulkCreateObligationResult{
		Created: make([]domain.Obligation, 0, len(req.OwnerIDs)),
	}
	seen := make(map[string]struct{}, len(req.OwnerIDs))
	for _, rawOwner := range req.OwnerIDs {
		ownerID := strings.TrimSpace(rawOwner)
		if ownerID == "" {
			result.Failed = append(result.Failed, dto.BulkCreateFailure{OwnerID: rawOwner, Error: "owner ID is required"})
			continue
		}
		if _, dup := seen[ownerID]; dup {
			continue
		}
		seen[ownerID] = struct{}{}

		ob := s.newObligation(ownerID, req.Amount, details, creatorUserID)
		if err := s.repo.SaveObligation(ctx, ob); err != nil {
			s.LogError(ctx, err, "Failed to save obligation in bulk run", s.kindAttr(), slog.String("owner_id", ownerID))
			result.Failed = append(result.Failed, dto.BulkCreateFailure{OwnerID: ownerID, Error: err.Error()})
			continue
		}
		result.Created = append(result.Created, ob)
	}

	if len(result.Created) > 0 {
		s.summary.Invalidate(ctx)
	}
	s.LogInfo(ctx, "Bulk obligation run finished",
		s.kindAttr(),
		slog.Int("created", len(result.Created)),
		slog.Int("failed", len(result.Failed)))
	return result, nil
}

func (s *obligationService) Update(ctx context.Context, obligationID string, req dto.UpdateObligationRequest, userID string) (*domain.Obligation, error) {
	if req.Amount != nil && !s.policy.AmountMutable {
		return nil, fmt.Errorf("%w: the amount of a %s obligation is fixed at creation", apperrors.ErrValidation, s.policy.Kind)
	}

	var updated domain.Obligation
	err := s.uow.Do(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		ob, err := repos.Obligations.FindObligationByIDForUpdate(ctx, s.policy.Kind, obligationID)
		if err != nil {
			return err
		}
		if ob.IsSettled(s.policy) {
			return fmt.Errorf("%w: obligation %s is already %s", apperrors.ErrInvariantViolation, obligationID, ob.Status)
		}

		if req.Amount != nil {
			if !req.Amount.IsPositive() || !utils.HasAmountScale(*req.Amount) {
				return fmt.Errorf("%w: amount must be positive with at most %d decimal places", apperrors.ErrValidation, utils.AmountScale)
			}
			ob.Amount = *req.Amount
		}
		if req.DueDate != nil {
			ob.DueDate = req.DueDate
		}
		if req.CampaignName != nil {
			ob.CampaignName = strings.TrimSpace(*req.CampaignName)
		}
		if req.CampaignDate != nil {
			ob.CampaignDate = req.CampaignDate
		}
		if req.TargetAmount != nil {
			ob.TargetAmount = req.TargetAmount
		}
		if err := ob.ObligationDetails.Validate(s.policy.Kind); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}

		ob.LastUpdatedAt = s.now()
		ob.LastUpdatedBy = userID
		if err := repos.Obligations.UpdateObligation(ctx, *ob); err != nil {
			return fmt.Errorf("failed to update obligation: %w", err)
		}
		updated = *ob
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update obligation", s.kindAttr(), slog.String("obligation_id", obligationID))
		return nil, err
	}

	s.summary.Invalidate(ctx)
	s.LogInfo(ctx, "Obligation updated", s.kindAttr(), slog.String("obligation_id", obligationID))
	return &updated, nil
}

func (s *obligationService) Delete(ctx context.Context, obligationID string, userID string) error {
	err := s.repo.DeleteOutstandingObligation(ctx, s.policy.Kind, obligationID, s.policy.OutstandingStatus)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvariantViolation) {
			err = fmt.Errorf("settled obligations cannot be deleted: %w", err)
		}
		s.LogError(ctx, err, "Failed to delete obligation", s.kindAttr(), slog.String("obligation_id", obligationID))
		return err
	}

	s.summary.Invalidate(ctx)
	s.LogInfo(ctx, "Obligation deleted",
		s.kindAttr(),
		slog.String("obligation_id", obligationID),
		slog.String("user_id", userID))
	return nil
}

func (s *obligationService) validateSettlement(req dto.SettleObligationRequest) error {
	if req.SettledAt.IsZero() {
		return fmt.Errorf("%w: settlement date is required", apperrors.ErrValidation)
	}
	if !req.Method.IsValid() {
		return fmt.Errorf("%w: unknown settlement method %q", apperrors.ErrValidation, req.Method)
	}
	if req.OverrideAmount != nil {
		if !s.policy.AllowsOverride {
			return fmt.Errorf("%w: %s obligations are settled for their stored amount", apperrors.ErrValidation, s.policy.Kind)
		}
		if !req.OverrideAmount.IsPositive() {
			return fmt.Errorf("%w: override amount must be positive", apperrors.ErrValidation)
		}
		if !utils.HasAmountScale(*req.OverrideAmount) {
			return fmt.Errorf("%w: override amount has more than %d decimal places", apperrors.ErrValidation, utils.AmountScale)
		}
	}
	return nil
}

// Settle moves an outstanding obligation to its settled state and credits the target
// wallet in the same unit of work. Settling an already settled obligation returns it
// unchanged and moves no money.
func (s *obligationService) Settle(ctx context.Context, obligationID string, req dto.SettleObligationRequest, userID string) (*domain.Obligation, error) {
	if err := s.validateSettlement(req); err != nil {
		return nil, err
	}

	walletID := strings.TrimSpace(req.WalletID)
	if walletID == "" {
		mainWallet, err := s.walletRepo.FindMainWallet(ctx)
		if err != nil {
			s.LogError(ctx, err, "Failed to resolve main wallet for settlement", s.kindAttr())
			return nil, fmt.Errorf("resolve main wallet: %w", err)
		}
		walletID = mainWallet.WalletID
	}

	var (
		result   domain.Obligation
		credited bool
	)
	err := s.uow.Do(ctx, func(ctx context.Context, repos portsrepo.TxRepositories) error {
		ob, err := repos.Obligations.FindObligationByIDForUpdate(ctx, s.policy.Kind, obligationID)
		if err != nil {
			return err
		}
		if ob.IsSettled(s.policy) {
			result = *ob
			return nil
		}

		amount := ob.Amount
		if req.OverrideAmount != nil {
			amount = *req.OverrideAmount
		}

		ob.Amount = amount
		ob.Status = s.policy.SettledStatus
		ob.Settlement = &domain.Settlement{
			SettledAt: req.SettledAt,
			Method:    req.Method,
			WalletID:  walletID,
			Note:      req.Note,
		}
		ob.LastUpdatedAt = s.now()
		ob.LastUpdatedBy = userID
		if err := repos.Obligations.UpdateObligation(ctx, *ob); err != nil {
			return fmt.Errorf("failed to update obligation: %w", err)
		}
		if _, err := s.walletSvc.AdjustBalance(ctx, repos, walletID, amount, userID); err != nil {
			return err
		}
		result = *ob
		credited = true
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to settle obligation",
			s.kindAttr(),
			slog.String("obligation_id", obligationID),
			slog.String("wallet_id", walletID))
		return nil, err
	}

	if !credited {
		s.LogInfo(ctx, "Obligation already settled, no credit applied",
			s.kindAttr(),
			slog.String("obligation_id", obligationID))
		return &result, nil
	}

	s.summary.Invalidate(ctx)
	s.LogInfo(ctx, "Obligation settled",
		s.kindAttr(),
		slog.String("obligation_id", obligationID),
		slog.String("wallet_id", walletID),
		slog.String("amount", result.Amount.String()))
	return &result, nil
}
