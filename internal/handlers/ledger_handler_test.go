package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "kepler/internal/errors"
	"kepler/internal/models"
	"kepler/internal/pagination"
	"kepler/internal/services"
)

// --- mock read-side services ---

type mockBudgetService struct {
	getStatusFn      func(ctx context.Context, category models.Category) (*services.BudgetStatus, error)
	getAllStatusesFn func(ctx context.Context) ([]services.BudgetStatus, error)
}

func (m *mockBudgetService) GetStatus(ctx context.Context, category models.Category) (*services.BudgetStatus, error) {
	if m.getStatusFn != nil {
		return m.getStatusFn(ctx, category)
	}
	return &services.BudgetStatus{Category: category}, nil
}

func (m *mockBudgetService) GetAllStatuses(ctx context.Context) ([]services.BudgetStatus, error) {
	if m.getAllStatusesFn != nil {
		return m.getAllStatusesFn(ctx)
	}
	return []services.BudgetStatus{}, nil
}

func (m *mockBudgetService) ApplySpend(_ context.Context, category models.Category, amount int64) (*services.BudgetStatus, error) {
	return &services.BudgetStatus{Category: category, CurrentSpent: amount}, nil
}

func (m *mockBudgetService) ResetAll(_ context.Context) []services.CategoryReset {
	return nil
}

var _ services.BudgetServicer = (*mockBudgetService)(nil)

type mockDebtService struct {
	getFn    func(ctx context.Context, name string) (*models.Debt, error)
	getAllFn func(ctx context.Context) ([]models.Debt, error)
}

func (m *mockDebtService) Get(ctx context.Context, name string) (*models.Debt, error) {
	if m.getFn != nil {
		return m.getFn(ctx, name)
	}
	return &models.Debt{Name: name}, nil
}

func (m *mockDebtService) GetAll(ctx context.Context) ([]models.Debt, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return []models.Debt{}, nil
}

func (m *mockDebtService) ApplyPayment(_ context.Context, name string, _ int64) (*models.Debt, error) {
	return &models.Debt{Name: name}, nil
}

var _ services.DebtServicer = (*mockDebtService)(nil)

type mockPatrimonyService struct {
	getFn                  func(ctx context.Context) (*models.Patrimony, error)
	computeMonthlyStatusFn func(ctx context.Context, now time.Time) (*services.MonthlyStatus, error)
}

func (m *mockPatrimonyService) Get(ctx context.Context) (*models.Patrimony, error) {
	if m.getFn != nil {
		return m.getFn(ctx)
	}
	return &models.Patrimony{}, nil
}

func (m *mockPatrimonyService) ComputeMonthlyStatus(ctx context.Context, now time.Time) (*services.MonthlyStatus, error) {
	if m.computeMonthlyStatusFn != nil {
		return m.computeMonthlyStatusFn(ctx, now)
	}
	return &services.MonthlyStatus{}, nil
}

func (m *mockPatrimonyService) CloseMonth(_ context.Context, _ *int64, _ time.Time) (*models.Patrimony, error) {
	return &models.Patrimony{}, nil
}

var _ services.PatrimonyServicer = (*mockPatrimonyService)(nil)

type mockTransactionService struct {
	listFn func(ctx context.Context, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
}

func (m *mockTransactionService) Record(_ context.Context, amount int64, category models.Category, description string, txType models.TransactionType) (*models.Transaction, error) {
	return &models.Transaction{Amount: amount, Category: category, Description: description, Type: txType}, nil
}

func (m *mockTransactionService) MonthIncome(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (m *mockTransactionService) List(ctx context.Context, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if m.listFn != nil {
		return m.listFn(ctx, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func setupLedgerRouter(handler *LedgerHandler) *gin.Engine {
	r := gin.New()
	r.GET("/budgets", handler.GetBudgets)
	r.GET("/budgets/:category", handler.GetBudget)
	r.GET("/debts", handler.GetDebts)
	r.GET("/debts/:name", handler.GetDebt)
	r.GET("/patrimony", handler.GetPatrimony)
	r.GET("/summary", handler.GetSummary)
	r.POST("/close-month", handler.CloseMonth)
	r.GET("/transactions", handler.GetTransactions)
	return r
}

func newLedgerHandler(
	budgets services.BudgetServicer,
	debts services.DebtServicer,
	patrimony services.PatrimonyServicer,
	transactions services.TransactionServicer,
	ledger services.LedgerServicer,
) *LedgerHandler {
	if budgets == nil {
		budgets = &mockBudgetService{}
	}
	if debts == nil {
		debts = &mockDebtService{}
	}
	if patrimony == nil {
		patrimony = &mockPatrimonyService{}
	}
	if transactions == nil {
		transactions = &mockTransactionService{}
	}
	if ledger == nil {
		ledger = &mockLedgerService{}
	}
	return NewLedgerHandler(budgets, debts, patrimony, transactions, ledger)
}

func TestLedgerHandler_GetBudgets(t *testing.T) {
	t.Run("returns 200 with statuses", func(t *testing.T) {
		svc := &mockBudgetService{
			getAllStatusesFn: func(_ context.Context) ([]services.BudgetStatus, error) {
				return []services.BudgetStatus{
					{Category: models.CategoryFixedSurvival, MonthlyLimit: 1_300_000, Remaining: 1_300_000},
					{Category: models.CategoryDebtOffensive, MonthlyLimit: 618_000, Remaining: 618_000},
				}, nil
			},
		}
		r := setupLedgerRouter(newLedgerHandler(svc, nil, nil, nil, nil))

		rec := doRequest(r, "GET", "/budgets", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		budgets := result["budgets"].([]interface{})
		if len(budgets) != 2 {
			t.Errorf("expected 2 budgets, got %d", len(budgets))
		}
	})
}

func TestLedgerHandler_GetBudget(t *testing.T) {
	t.Run("returns 200 for known category", func(t *testing.T) {
		svc := &mockBudgetService{
			getStatusFn: func(_ context.Context, category models.Category) (*services.BudgetStatus, error) {
				return &services.BudgetStatus{Category: category, MonthlyLimit: 618_000, CurrentSpent: 500_000, Remaining: 118_000}, nil
			},
		}
		r := setupLedgerRouter(newLedgerHandler(svc, nil, nil, nil, nil))

		rec := doRequest(r, "GET", "/budgets/kepler_growth", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		budget := result["budget"].(map[string]interface{})
		if budget["category"] != "kepler_growth" {
			t.Errorf("expected kepler_growth, got %v", budget["category"])
		}
	})

	t.Run("returns 400 for unknown category", func(t *testing.T) {
		r := setupLedgerRouter(newLedgerHandler(nil, nil, nil, nil, nil))

		rec := doRequest(r, "GET", "/budgets/vacation", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CATEGORY")
	})
}

func TestLedgerHandler_GetDebt(t *testing.T) {
	t.Run("returns 200", func(t *testing.T) {
		svc := &mockDebtService{
			getFn: func(_ context.Context, name string) (*models.Debt, error) {
				return &models.Debt{Name: name, InitialBalance: 20_000_000, CurrentBalance: 18_000_000}, nil
			},
		}
		r := setupLedgerRouter(newLedgerHandler(nil, svc, nil, nil, nil))

		rec := doRequest(r, "GET", "/debts/ICETEX", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		debt := result["debt"].(map[string]interface{})
		if debt["current_balance"].(float64) != 18_000_000 {
			t.Errorf("expected balance 18000000, got %v", debt["current_balance"])
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockDebtService{
			getFn: func(_ context.Context, _ string) (*models.Debt, error) {
				return nil, apperrors.ErrDebtNotFound
			},
		}
		r := setupLedgerRouter(newLedgerHandler(nil, svc, nil, nil, nil))

		rec := doRequest(r, "GET", "/debts/Desconocido", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "DEBT_NOT_FOUND")
	})
}

func TestLedgerHandler_GetSummary(t *testing.T) {
	t.Run("returns 200 with monthly status", func(t *testing.T) {
		svc := &mockPatrimonyService{
			computeMonthlyStatusFn: func(_ context.Context, _ time.Time) (*services.MonthlyStatus, error) {
				return &services.MonthlyStatus{
					MonthlyIncome:      2_845_132,
					MonthlyExpenses:    3_000_000,
					RemainingThisMonth: -154_868,
					CurrentPatrimony:   1_000_000,
					ProjectedPatrimony: 845_132,
				}, nil
			},
		}
		r := setupLedgerRouter(newLedgerHandler(nil, nil, svc, nil, nil))

		rec := doRequest(r, "GET", "/summary", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		status := result["monthly_status"].(map[string]interface{})
		if status["remaining_this_month"].(float64) != -154_868 {
			t.Errorf("expected remaining -154868, got %v", status["remaining_this_month"])
		}
	})

	t.Run("returns 404 when patrimony missing", func(t *testing.T) {
		svc := &mockPatrimonyService{
			computeMonthlyStatusFn: func(_ context.Context, _ time.Time) (*services.MonthlyStatus, error) {
				return nil, apperrors.ErrPatrimonyNotFound
			},
		}
		r := setupLedgerRouter(newLedgerHandler(nil, nil, svc, nil, nil))

		rec := doRequest(r, "GET", "/summary", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestLedgerHandler_CloseMonth(t *testing.T) {
	t.Run("routes through orchestrator", func(t *testing.T) {
		var gotAction string
		ledger := &mockLedgerService{
			applyFn: func(_ context.Context, intent services.Intent) (*services.ReconciliationResult, error) {
				gotAction = intent.Action
				return &services.ReconciliationResult{Action: intent.Action, Outcome: services.OutcomeCompleted}, nil
			},
		}
		r := setupLedgerRouter(newLedgerHandler(nil, nil, nil, nil, ledger))

		rec := doRequest(r, "POST", "/close-month", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotAction != services.ActionCloseMonth {
			t.Errorf("expected close_month intent, got %q", gotAction)
		}
	})
}

func TestLedgerHandler_GetTransactions(t *testing.T) {
	t.Run("passes type filter", func(t *testing.T) {
		var gotFilter services.TransactionFilter
		svc := &mockTransactionService{
			listFn: func(_ context.Context, _ pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
				gotFilter = filter
				resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
				return &resp, nil
			},
		}
		r := setupLedgerRouter(newLedgerHandler(nil, nil, nil, svc, nil))

		rec := doRequest(r, "GET", "/transactions?type=expense&category=kepler_growth", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.Type == nil || *gotFilter.Type != models.TransactionTypeExpense {
			t.Error("expected expense type filter")
		}
		if gotFilter.Category == nil || *gotFilter.Category != models.CategoryKeplerGrowth {
			t.Error("expected kepler_growth category filter")
		}
	})

	t.Run("returns 400 on bad type", func(t *testing.T) {
		r := setupLedgerRouter(newLedgerHandler(nil, nil, nil, nil, nil))

		rec := doRequest(r, "GET", "/transactions?type=transfer", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on bad category", func(t *testing.T) {
		r := setupLedgerRouter(newLedgerHandler(nil, nil, nil, nil, nil))

		rec := doRequest(r, "GET", "/transactions?category=vacation", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CATEGORY")
	})
}
