package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "kepler/internal/errors"
	"kepler/internal/models"
	"kepler/internal/pagination"
	"kepler/internal/services"
)

// LedgerHandler exposes the read side of the ledger plus the explicit
// month close.
type LedgerHandler struct {
	budgetService      services.BudgetServicer
	debtService        services.DebtServicer
	patrimonyService   services.PatrimonyServicer
	transactionService services.TransactionServicer
	ledgerService      services.LedgerServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(
	budgetService services.BudgetServicer,
	debtService services.DebtServicer,
	patrimonyService services.PatrimonyServicer,
	transactionService services.TransactionServicer,
	ledgerService services.LedgerServicer,
) *LedgerHandler {
	return &LedgerHandler{
		budgetService:      budgetService,
		debtService:        debtService,
		patrimonyService:   patrimonyService,
		transactionService: transactionService,
		ledgerService:      ledgerService,
	}
}

// GetBudgets handles GET /budgets: all five category statuses.
func (h *LedgerHandler) GetBudgets(c *gin.Context) {
	statuses, err := h.budgetService.GetAllStatuses(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budgets": statuses})
}

// GetBudget handles GET /budgets/:category.
func (h *LedgerHandler) GetBudget(c *gin.Context) {
	category := models.Category(c.Param("category"))
	if !models.IsSpendingCategory(category) {
		respondWithError(c, apperrors.ErrInvalidCategory)
		return
	}

	status, err := h.budgetService.GetStatus(c.Request.Context(), category)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"budget": status})
}

// GetDebts handles GET /debts.
func (h *LedgerHandler) GetDebts(c *gin.Context) {
	debts, err := h.debtService.GetAll(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"debts": debts})
}

// GetDebt handles GET /debts/:name.
func (h *LedgerHandler) GetDebt(c *gin.Context) {
	debt, err := h.debtService.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// GetPatrimony handles GET /patrimony.
func (h *LedgerHandler) GetPatrimony(c *gin.Context) {
	patrimony, err := h.patrimonyService.Get(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patrimony": patrimony})
}

// GetSummary handles GET /summary: the derived monthly status.
func (h *LedgerHandler) GetSummary(c *gin.Context) {
	status, err := h.patrimonyService.ComputeMonthlyStatus(c.Request.Context(), time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"monthly_status": status})
}

// CloseMonth handles POST /close-month by routing through the
// orchestrator so the saga steps are recorded like any other intent.
func (h *LedgerHandler) CloseMonth(c *gin.Context) {
	result, err := h.ledgerService.Apply(c.Request.Context(), services.Intent{Action: services.ActionCloseMonth})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetTransactions handles GET /transactions with pagination and optional
// type/category filters.
func (h *LedgerHandler) GetTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.TransactionFilter
	if v := c.Query("type"); v != "" {
		t := models.TransactionType(v)
		if t != models.TransactionTypeIncome && t != models.TransactionTypeExpense {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be 'income' or 'expense'"))
			return
		}
		filter.Type = &t
	}
	if v := c.Query("category"); v != "" {
		cat := models.Category(v)
		if cat != models.CategoryIncome && !models.IsSpendingCategory(cat) {
			respondWithError(c, apperrors.ErrInvalidCategory)
			return
		}
		filter.Category = &cat
	}

	result, err := h.transactionService.List(c.Request.Context(), page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
