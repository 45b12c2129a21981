package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/membership_ledger/internal/apperrors"
	"github.com/SscSPs/membership_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/membership_ledger/internal/core/ports/services"
	"github.com/SscSPs/membership_ledger/internal/dto"
	"github.com/SscSPs/membership_ledger/internal/handlers"
	"github.com/SscSPs/membership_ledger/internal/middleware"
	"github.com/SscSPs/membership_ledger/internal/platform/config"
	"github.com/SscSPs/membership_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	adminUser  = "admin-1"
	memberUser = "member-1"
)

type HandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	jwtSecret   string
	wallets     *MockWalletService
	txns        *MockTransactionService
	dues        *MockObligationService
	initialFees *MockObligationService
	donations   *MockObligationService
	dashboard   *MockDashboardService
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.jwtSecret = "test-secret-key-that-is-long-enough"

	s.wallets = new(MockWalletService)
	s.txns = new(MockTransactionService)
	s.dues = newMockObligationService(domain.DuesPolicy)
	s.initialFees = newMockObligationService(domain.InitialFeePolicy)
	s.donations = newMockObligationService(domain.DonationPolicy)
	s.dashboard = new(MockDashboardService)

	container := &portssvc.ServiceContainer{
		Wallet:      s.wallets,
		Transaction: s.txns,
		Dues:        s.dues,
		InitialFee:  s.initialFees,
		Donation:    s.donations,
		Dashboard:   s.dashboard,
	}
	cfg := &config.Config{JWTSecret: s.jwtSecret, IsProduction: true}

	s.router = gin.New()
	s.router.Use(middleware.StructuredLoggingMiddleware(slogDiscard()))
	handlers.RegisterRoutes(s.router, cfg, container, nil)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.wallets.AssertExpectations(s.T())
	s.txns.AssertExpectations(s.T())
	s.dues.AssertExpectations(s.T())
	s.donations.AssertExpectations(s.T())
	s.dashboard.AssertExpectations(s.T())
}

// generateTestToken creates a signed JWT for the given caller.
func (s *HandlerTestSuite) generateTestToken(userID string, role middleware.Role) string {
	signed, err := utils.GenerateJWT(userID, role, s.jwtSecret, time.Hour, "ledger-test")
	if err != nil {
		s.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (s *HandlerTestSuite) do(method, path string, body any, userID string, role middleware.Role) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+s.generateTestToken(userID, role))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) asAdmin(method, path string, body any) *httptest.ResponseRecorder {
	return s.do(method, path, body, adminUser, middleware.RoleAdmin)
}

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleWallet(id string, isMain bool) *domain.Wallet {
	now := time.Now().UTC()
	return &domain.Wallet{
		WalletID: id,
		Name:     "Wallet " + id,
		Balance:  decimal.NewFromInt(1000),
		IsMain:   isMain,
		AuditFields: domain.AuditFields{
			CreatedAt: now, CreatedBy: adminUser, LastUpdatedAt: now, LastUpdatedBy: adminUser,
		},
	}
}

func sampleDues(id string, status domain.ObligationStatus) *domain.Obligation {
	ob := &domain.Obligation{
		ObligationID:      id,
		Kind:              domain.Dues,
		OwnerID:           memberUser,
		Amount:            decimal.NewFromInt(50000),
		Status:            status,
		ObligationDetails: domain.ObligationDetails{Period: "2024-05"},
	}
	if status == domain.StatusPaid {
		ob.Settlement = &domain.Settlement{
			SettledAt: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC),
			Method:    domain.MethodCash,
			WalletID:  "main",
		}
	}
	return ob
}

// --- Auth ---

func (s *HandlerTestSuite) TestHealth_NoAuth() {
	w := s.do(http.MethodGet, "/health", nil, "", "")
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestMissingToken_Unauthorized() {
	w := s.do(http.MethodGet, "/api/v1/wallets", nil, "", "")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestExpiredToken_Unauthorized() {
	expired, err := utils.GenerateJWT(adminUser, middleware.RoleAdmin, s.jwtSecret, -time.Minute, "ledger-test")
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestMemberCannotManageWallets() {
	w := s.do(http.MethodGet, "/api/v1/wallets", nil, memberUser, middleware.RoleMember)
	s.Equal(http.StatusForbidden, w.Code)
}

// --- Wallets ---

func (s *HandlerTestSuite) TestCreateWallet_Success() {
	s.wallets.On("CreateWallet", mock.Anything, mock.MatchedBy(func(r dto.CreateWalletRequest) bool {
		return r.Name == "Events" && r.InitialBalance != nil && r.InitialBalance.Equal(decimal.NewFromInt(250))
	}), adminUser).Return(sampleWallet("w-1", false), nil).Once()

	w := s.asAdmin(http.MethodPost, "/api/v1/wallets", map[string]any{"name": "Events", "initialBalance": "250"})

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.WalletResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("w-1", resp.WalletID)
	s.False(resp.IsMain)
}

func (s *HandlerTestSuite) TestCreateWallet_MissingName() {
	w := s.asAdmin(http.MethodPost, "/api/v1/wallets", map[string]any{"description": "no name"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestDeleteMainWallet_Conflict() {
	s.wallets.On("DeleteWallet", mock.Anything, "main-id", adminUser).
		Return(fmt.Errorf("main wallet cannot be deleted: %w", apperrors.ErrInvariantViolation)).Once()

	w := s.asAdmin(http.MethodDelete, "/api/v1/wallets/main-id", nil)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlerTestSuite) TestGetWallet_NotFound() {
	s.wallets.On("GetWalletByID", mock.Anything, "missing").
		Return(nil, apperrors.NewAppError(http.StatusNotFound, "wallet not found", apperrors.ErrNotFound)).Once()

	w := s.asAdmin(http.MethodGet, "/api/v1/wallets/missing", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestGetMainWallet() {
	s.wallets.On("GetMainWallet", mock.Anything).Return(sampleWallet("main", true), nil).Once()

	w := s.asAdmin(http.MethodGet, "/api/v1/wallets/main", nil)
	s.Equal(http.StatusOK, w.Code)
	var resp dto.WalletResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.IsMain)
}

// --- Transactions ---

func (s *HandlerTestSuite) TestRecordTransaction_Success() {
	txn := &domain.Transaction{
		TransactionID:   "t-1",
		WalletID:        "w-1",
		TransactionType: domain.Income,
		Amount:          decimal.NewFromInt(500),
		TransactionDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	s.txns.On("RecordTransaction", mock.Anything, mock.MatchedBy(func(r dto.CreateTransactionRequest) bool {
		return r.WalletID == "w-1" && r.Amount.Equal(decimal.NewFromInt(500))
	}), adminUser).Return(txn, nil).Once()

	w := s.asAdmin(http.MethodPost, "/api/v1/transactions", map[string]any{
		"walletID":        "w-1",
		"transactionType": "INCOME",
		"amount":          "500",
		"transactionDate": "2024-04-01T00:00:00Z",
	})
	s.Equal(http.StatusCreated, w.Code)
}

func (s *HandlerTestSuite) TestRecordTransaction_NonPositiveAmount() {
	for _, amount := range []string{"0", "-10"} {
		w := s.asAdmin(http.MethodPost, "/api/v1/transactions", map[string]any{
			"walletID":        "w-1",
			"transactionType": "EXPENSE",
			"amount":          amount,
			"transactionDate": "2024-04-01T00:00:00Z",
		})
		s.Equal(http.StatusBadRequest, w.Code, "amount %s", amount)
	}
}

func (s *HandlerTestSuite) TestRecordTransaction_UnknownWallet() {
	s.txns.On("RecordTransaction", mock.Anything, mock.Anything, adminUser).
		Return(nil, apperrors.NewAppError(http.StatusNotFound, "wallet not found", apperrors.ErrNotFound)).Once()

	w := s.asAdmin(http.MethodPost, "/api/v1/transactions", map[string]any{
		"walletID":        "nope",
		"transactionType": "INCOME",
		"amount":          "1",
		"transactionDate": "2024-04-01T00:00:00Z",
	})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestListTransactions_BadToken() {
	s.txns.On("ListTransactions", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewAppError(http.StatusBadRequest, "invalid page token", apperrors.ErrValidation)).Once()

	w := s.asAdmin(http.MethodGet, "/api/v1/transactions?nextToken=garbage", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestListTransactions_LimitOutOfRange() {
	w := s.asAdmin(http.MethodGet, "/api/v1/transactions?limit=1000", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestReverseTransaction_Twice() {
	s.txns.On("ReverseTransaction", mock.Anything, "t-1", adminUser).Return(nil).Once()
	s.txns.On("ReverseTransaction", mock.Anything, "t-1", adminUser).
		Return(fmt.Errorf("transaction t-1: %w", apperrors.ErrNotFound)).Once()

	s.Equal(http.StatusNoContent, s.asAdmin(http.MethodDelete, "/api/v1/transactions/t-1", nil).Code)
	s.Equal(http.StatusNotFound, s.asAdmin(http.MethodDelete, "/api/v1/transactions/t-1", nil).Code)
}

// --- Obligations ---

func (s *HandlerTestSuite) TestCreateDues_BadPeriod() {
	w := s.asAdmin(http.MethodPost, "/api/v1/dues", map[string]any{
		"ownerID": memberUser,
		"amount":  "50000",
		"period":  "2024-13",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestCreateDues_Success() {
	s.dues.On("Create", mock.Anything, mock.MatchedBy(func(r dto.CreateObligationRequest) bool {
		return r.OwnerID == memberUser && r.Period == "2024-05"
	}), adminUser).Return(sampleDues("d-1", domain.StatusUnpaid), nil).Once()

	w := s.asAdmin(http.MethodPost, "/api/v1/dues", map[string]any{
		"ownerID": memberUser,
		"amount":  "50000",
		"period":  "2024-05",
	})
	s.Equal(http.StatusCreated, w.Code)
	var resp dto.ObligationResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(domain.StatusUnpaid, resp.Status)
	s.Equal(domain.Dues, resp.Kind)
}

func (s *HandlerTestSuite) TestBulkCreate_PartialFailure() {
	result := &dto.BulkCreateObligationResult{
		Created: []domain.Obligation{*sampleDues("d-1", domain.StatusUnpaid)},
		Failed:  []dto.BulkCreateFailure{{OwnerID: "", Error: "owner ID is required"}},
	}
	s.dues.On("CreateForOwners", mock.Anything, mock.Anything, adminUser).Return(result, nil).Once()

	w := s.asAdmin(http.MethodPost, "/api/v1/dues/bulk", map[string]any{
		"ownerIDs": []string{memberUser, "member-2"},
		"amount":   "50000",
		"period":   "2024-05",
	})
	s.Equal(http.StatusMultiStatus, w.Code)
	var resp dto.BulkCreateObligationResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Len(resp.Created, 1)
	s.Len(resp.Failed, 1)
}

func (s *HandlerTestSuite) TestSettleDues_Success() {
	s.dues.On("Settle", mock.Anything, "d-1", mock.MatchedBy(func(r dto.SettleObligationRequest) bool {
		return r.Method == domain.MethodCash && r.WalletID == ""
	}), adminUser).Return(sampleDues("d-1", domain.StatusPaid), nil).Once()

	w := s.asAdmin(http.MethodPost, "/api/v1/dues/d-1/settle", map[string]any{
		"settledAt": "2024-05-10T09:00:00Z",
		"method":    "CASH",
	})
	s.Equal(http.StatusOK, w.Code)
	var resp dto.ObligationResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(domain.StatusPaid, resp.Status)
	s.Equal("main", resp.WalletID)
}

func (s *HandlerTestSuite) TestSettle_InvalidMethod() {
	w := s.asAdmin(http.MethodPost, "/api/v1/dues/d-1/settle", map[string]any{
		"settledAt": "2024-05-10T09:00:00Z",
		"method":    "CHEQUE",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestSettleDonation_Override() {
	collected := &domain.Obligation{
		ObligationID:      "don-1",
		Kind:              domain.Donation,
		OwnerID:           "campaign-1",
		Amount:            decimal.NewFromInt(120000),
		Status:            domain.StatusCollected,
		ObligationDetails: domain.ObligationDetails{CampaignName: "Roof"},
		Settlement:        &domain.Settlement{Method: domain.MethodBankTransfer, WalletID: "main"},
	}
	s.donations.On("Settle", mock.Anything, "don-1", mock.MatchedBy(func(r dto.SettleObligationRequest) bool {
		return r.OverrideAmount != nil && r.OverrideAmount.Equal(decimal.NewFromInt(120000))
	}), adminUser).Return(collected, nil).Once()

	w := s.asAdmin(http.MethodPost, "/api/v1/donations/don-1/settle", map[string]any{
		"settledAt":      "2024-05-10T09:00:00Z",
		"method":         "BANK_TRANSFER",
		"overrideAmount": "120000",
	})
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestUpdateSettledDues_Conflict() {
	s.dues.On("Update", mock.Anything, "d-1", mock.Anything, adminUser).
		Return(nil, fmt.Errorf("obligation already settled: %w", apperrors.ErrInvariantViolation)).Once()

	w := s.asAdmin(http.MethodPut, "/api/v1/dues/d-1", map[string]any{"amount": "60000"})
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlerTestSuite) TestListDues_ByOwner() {
	s.dues.On("ListForOwner", mock.Anything, memberUser).
		Return([]domain.Obligation{*sampleDues("d-1", domain.StatusUnpaid)}, nil).Once()

	w := s.asAdmin(http.MethodGet, "/api/v1/dues?ownerID="+memberUser, nil)
	s.Equal(http.StatusOK, w.Code)
	var resp dto.ListObligationsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Len(resp.Obligations, 1)
}

func (s *HandlerTestSuite) TestMyDues_UsesCaller() {
	s.dues.On("ListForOwner", mock.Anything, memberUser).
		Return([]domain.Obligation{*sampleDues("d-1", domain.StatusUnpaid)}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/me/dues", nil, memberUser, middleware.RoleMember)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestMemberCannotSettle() {
	w := s.do(http.MethodPost, "/api/v1/dues/d-1/settle", map[string]any{
		"settledAt": "2024-05-10T09:00:00Z",
		"method":    "CASH",
	}, memberUser, middleware.RoleMember)
	s.Equal(http.StatusForbidden, w.Code)
}

// --- Dashboard ---

func (s *HandlerTestSuite) TestDashboard() {
	s.dashboard.On("GetSummary", mock.Anything).Return(&domain.DashboardSummary{
		Wallets: domain.WalletTotals{WalletCount: 1, TotalBalance: decimal.NewFromInt(50000)},
	}, nil).Once()

	w := s.asAdmin(http.MethodGet, "/api/v1/dashboard", nil)
	s.Equal(http.StatusOK, w.Code)
}
