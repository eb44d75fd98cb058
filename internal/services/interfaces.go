package services

import (
	"context"
	"time"

	"kepler/internal/models"
	"kepler/internal/pagination"
)

// Intent is a classified request produced by the external NL pipeline.
// The engine trusts Action and Category to be enumerated values or
// rejects the intent before touching the ledger.
type Intent struct {
	Action      string `json:"action"`
	Amount      int64  `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ChatID      int64  `json:"chat_id,omitempty"`
}

// Actions the orchestrator dispatches on.
const (
	ActionExpense          = "expense"
	ActionIncome           = "income"
	ActionCheckBudget      = "check_budget"
	ActionCheckDebt        = "check_debt"
	ActionCheckPatrimony   = "check_patrimony"
	ActionFinancialSummary = "financial_summary"
	ActionCloseMonth       = "close_month"
)

// BudgetStatus is the derived view of one category's monthly counter.
type BudgetStatus struct {
	Category     models.Category `json:"category"`
	MonthlyLimit int64           `json:"monthly_limit"`
	CurrentSpent int64           `json:"current_spent"`
	Remaining    int64           `json:"remaining"`
}

// OverBudget reports whether the category has exceeded its limit.
func (s *BudgetStatus) OverBudget() bool { return s.Remaining < 0 }

// CategoryReset is the per-category outcome of a best-effort budget reset.
type CategoryReset struct {
	Category models.Category `json:"category"`
	Err      error           `json:"-"`
}

// MonthlyStatus is the derived month-to-date picture. Expenses come from
// the budget counters, not the transaction log; see ComputeMonthlyStatus.
type MonthlyStatus struct {
	MonthlyIncome      int64 `json:"monthly_income"`
	MonthlyExpenses    int64 `json:"monthly_expenses"`
	RemainingThisMonth int64 `json:"remaining_this_month"`
	CurrentPatrimony   int64 `json:"current_patrimony"`
	ProjectedPatrimony int64 `json:"projected_patrimony"`
}

// StepStatus is the outcome of one reconciliation step.
type StepStatus string

const (
	StepOK     StepStatus = "ok"
	StepFailed StepStatus = "failed"
)

// Step names recorded in the saga log.
const (
	StepRecordTransaction = "record_transaction"
	StepApplySpend        = "apply_spend"
	StepDebtPayment       = "debt_payment"
	StepComputeStatus     = "compute_status"
	StepClosePatrimony    = "close_patrimony"
	StepResetBudget       = "reset_budget" // suffixed with :category
)

// Step records the outcome of one side effect within a request.
type Step struct {
	Name   string     `json:"name"`
	Status StepStatus `json:"status"`
	Error  string     `json:"error,omitempty"`
}

// Outcome summarizes a whole reconciliation.
type Outcome string

const (
	OutcomeCompleted          Outcome = "completed"
	OutcomePartiallyCompleted Outcome = "partially_completed"
	OutcomeRejected           Outcome = "rejected"
)

// ReconciliationResult is what the engine hands back to the caller: the
// per-step record plus whatever state the action produced. Rendering it
// into prose is the caller's job.
type ReconciliationResult struct {
	IntentID string  `json:"intent_id"`
	Action   string  `json:"action"`
	Outcome  Outcome `json:"outcome"`
	Steps    []Step  `json:"steps,omitempty"`

	Transaction *models.Transaction `json:"transaction,omitempty"`
	Budget      *BudgetStatus       `json:"budget,omitempty"`
	Budgets     []BudgetStatus      `json:"budgets,omitempty"`
	Debt        *models.Debt        `json:"attributed_debt,omitempty"`
	Debts       []models.Debt       `json:"debts,omitempty"`
	Patrimony   *models.Patrimony   `json:"patrimony,omitempty"`
	Monthly     *MonthlyStatus      `json:"monthly_status,omitempty"`
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Type     *models.TransactionType
	Category *models.Category
	FromDate *time.Time
	ToDate   *time.Time
}

// TransactionServicer records and queries the immutable transaction log.
type TransactionServicer interface {
	Record(ctx context.Context, amount int64, category models.Category, description string, txType models.TransactionType) (*models.Transaction, error)
	MonthIncome(ctx context.Context, now time.Time) (int64, error)
	List(ctx context.Context, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
}

// BudgetServicer maintains the per-category monthly counters.
type BudgetServicer interface {
	GetStatus(ctx context.Context, category models.Category) (*BudgetStatus, error)
	GetAllStatuses(ctx context.Context) ([]BudgetStatus, error)
	ApplySpend(ctx context.Context, category models.Category, amount int64) (*BudgetStatus, error)
	ResetAll(ctx context.Context) []CategoryReset
}

// DebtServicer maintains the named amortizing balances.
type DebtServicer interface {
	Get(ctx context.Context, name string) (*models.Debt, error)
	GetAll(ctx context.Context) ([]models.Debt, error)
	ApplyPayment(ctx context.Context, name string, amount int64) (*models.Debt, error)
}

// PatrimonyServicer owns the singleton patrimony record and the
// month-close arithmetic.
type PatrimonyServicer interface {
	Get(ctx context.Context) (*models.Patrimony, error)
	ComputeMonthlyStatus(ctx context.Context, now time.Time) (*MonthlyStatus, error)
	CloseMonth(ctx context.Context, remaining *int64, now time.Time) (*models.Patrimony, error)
}

// LedgerServicer is the reconciliation orchestrator entry point.
type LedgerServicer interface {
	Apply(ctx context.Context, intent Intent) (*ReconciliationResult, error)
}

// ConversationServicer keeps the audit trail of intents and outcomes.
type ConversationServicer interface {
	Log(ctx context.Context, intent Intent, outcome Outcome, detail string)
	Recent(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.ConversationLog], error)
}

// ReminderServicer is the dispatch read used by the external scheduler.
type ReminderServicer interface {
	GetDue(ctx context.Context, now time.Time) ([]models.Reminder, error)
	MarkSent(ctx context.Context, id string, sentDate string) error
}

// DebtMatcher maps an expense to a tracked debt, or nil when no debt is
// recognized. Implementations are interchangeable heuristics.
type DebtMatcher interface {
	Match(debts []models.Debt, category models.Category, amount int64, description string) *models.Debt
}
