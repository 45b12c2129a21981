package dto

import (
	"time"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ObligationDetailsRequest carries the kind-specific fields accepted on create.
type ObligationDetailsRequest struct {
	Period       string           `json:"period" binding:"omitempty,yyyymm"`
	DueDate      *time.Time       `json:"dueDate"`
	CampaignName string           `json:"campaignName" binding:"max=200"`
	CampaignDate *time.Time       `json:"campaignDate"`
	TargetAmount *decimal.Decimal `json:"targetAmount" binding:"omitempty,decimal_gt0"`
}

// ToDomain converts the request fields to domain.ObligationDetails.
func (r ObligationDetailsRequest) ToDomain() domain.ObligationDetails {
	return domain.ObligationDetails{
		Period:       r.Period,
		DueDate:      r.DueDate,
		CampaignName: r.CampaignName,
		CampaignDate: r.CampaignDate,
		TargetAmount: r.TargetAmount,
	}
}

// CreateObligationRequest defines the data needed to create one obligation.
type CreateObligationRequest struct {
	OwnerID string          `json:"ownerID" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	ObligationDetailsRequest
}

// BulkCreateObligationRequest fans one obligation template out to many owners.
type BulkCreateObligationRequest struct {
	OwnerIDs []string        `json:"ownerIDs" binding:"required,min=1,dive,required"`
	Amount   decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	ObligationDetailsRequest
}

// UpdateObligationRequest defines the fields editable while an obligation is outstanding.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateObligationRequest struct {
	Amount       *decimal.Decimal `json:"amount" binding:"omitempty,decimal_gt0"`
	DueDate      *time.Time       `json:"dueDate"`
	CampaignName *string          `json:"campaignName" binding:"omitempty,min=1,max=200"`
	CampaignDate *time.Time       `json:"campaignDate"`
	TargetAmount *decimal.Decimal `json:"targetAmount" binding:"omitempty,decimal_gt0"`
}

// SettleObligationRequest defines the data needed to settle an obligation.
// An empty WalletID credits the main wallet.
type SettleObligationRequest struct {
	SettledAt      time.Time               `json:"settledAt" binding:"required"`
	Method         domain.SettlementMethod `json:"method" binding:"required,oneof=CASH BANK_TRANSFER E_WALLET OTHER"`
	WalletID       string                  `json:"walletID"`
	Note           string                  `json:"note" binding:"max=500"`
	OverrideAmount *decimal.Decimal        `json:"overrideAmount" binding:"omitempty,decimal_gt0"`
}

// ObligationResponse defines the data returned for an obligation.
type ObligationResponse struct {
	ObligationID     string                  `json:"obligationID"`
	Kind             domain.ObligationKind   `json:"kind"`
	OwnerID          string                  `json:"ownerID"`
	Amount           decimal.Decimal         `json:"amount"`
	Status           domain.ObligationStatus `json:"status"`
	Period           string                  `json:"period,omitempty"`
	DueDate          *time.Time              `json:"dueDate,omitempty"`
	CampaignName     string                  `json:"campaignName,omitempty"`
	CampaignDate     *time.Time              `json:"campaignDate,omitempty"`
	TargetAmount     *decimal.Decimal        `json:"targetAmount,omitempty"`
	SettledAt        *time.Time              `json:"settledAt,omitempty"`
	SettlementMethod domain.SettlementMethod `json:"settlementMethod,omitempty"`
	WalletID         string                  `json:"walletID,omitempty"`
	SettlementNote   string                  `json:"settlementNote,omitempty"`
	CreatedAt        time.Time               `json:"createdAt"`
	CreatedBy        string                  `json:"createdBy"`
	LastUpdatedAt    time.Time               `json:"lastUpdatedAt"`
	LastUpdatedBy    string                  `json:"lastUpdatedBy"`
}

// ToObligationResponse converts a domain.Obligation to ObligationResponse DTO
func ToObligationResponse(o *domain.Obligation) ObligationResponse {
	res := ObligationResponse{
		ObligationID:  o.ObligationID,
		Kind:          o.Kind,
		OwnerID:       o.OwnerID,
		Amount:        o.Amount,
		Status:        o.Status,
		Period:        o.Period,
		DueDate:       o.DueDate,
		CampaignName:  o.CampaignName,
		CampaignDate:  o.CampaignDate,
		TargetAmount:  o.TargetAmount,
		CreatedAt:     o.CreatedAt,
		CreatedBy:     o.CreatedBy,
		LastUpdatedAt: o.LastUpdatedAt,
		LastUpdatedBy: o.LastUpdatedBy,
	}
	if o.Settlement != nil {
		settledAt := o.Settlement.SettledAt
		res.SettledAt = &settledAt
		res.SettlementMethod = o.Settlement.Method
		res.WalletID = o.Settlement.WalletID
		res.SettlementNote = o.Settlement.Note
	}
	return res
}

// ListObligationsResponse wraps a list of obligations.
type ListObligationsResponse struct {
	Obligations []ObligationResponse `json:"obligations"`
}

// ToListObligationsResponse converts a slice of domain.Obligation to ListObligationsResponse
func ToListObligationsResponse(obs []domain.Obligation) ListObligationsResponse {
	res := make([]ObligationResponse, len(obs))
	for i := range obs {
		res[i] = ToObligationResponse(&obs[i])
	}
	return ListObligationsResponse{Obligations: res}
}

// BulkCreateFailure reports one owner whose obligation could not be created.
type BulkCreateFailure struct {
	OwnerID string `json:"ownerID"`
	Error   string `json:"error"`
}

// BulkCreateObligationResult is the outcome of a best-effort fan-out.
type BulkCreateObligationResult struct {
	Created []domain.Obligation
	Failed  []BulkCreateFailure
}

// BulkCreateObligationResponse is the HTTP shape of BulkCreateObligationResult.
type BulkCreateObligationResponse struct {
	Created []ObligationResponse `json:"created"`
	Failed  []BulkCreateFailure  `json:"failed"`
}

// ToBulkCreateObligationResponse converts a BulkCreateObligationResult to its response DTO
func ToBulkCreateObligationResponse(r *BulkCreateObligationResult) BulkCreateObligationResponse {
	failed := r.Failed
	if failed == nil {
		failed = []BulkCreateFailure{}
	}
	return BulkCreateObligationResponse{
		Created: ToListObligationsResponse(r.Created).Obligations,
		Failed:  failed,
	}
}
