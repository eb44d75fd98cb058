package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "kepler/internal/errors"
	"kepler/internal/logger"
	"kepler/internal/models"
	"kepler/internal/uuid"
)

// ledgerService is the reconciliation orchestrator. It is the only writer
// of transactions, budgets, and debts; the patrimony record is written
// only through the close-month path. Each Apply call is an independent
// unit of work with a fixed storage timeout and no automatic retries.
type ledgerService struct {
	db            *gorm.DB
	transactions  TransactionServicer
	budgets       BudgetServicer
	debts         DebtServicer
	patrimony     PatrimonyServicer
	conversations ConversationServicer
	matcher       DebtMatcher
	storeTimeout  time.Duration
	now           func() time.Time
}

// NewLedgerService wires the orchestrator. All collaborators are injected;
// the service holds no lazily-initialized global state.
func NewLedgerService(
	db *gorm.DB,
	transactions TransactionServicer,
	budgets BudgetServicer,
	debts DebtServicer,
	patrimony PatrimonyServicer,
	conversations ConversationServicer,
	matcher DebtMatcher,
	storeTimeout time.Duration,
) LedgerServicer {
	return &ledgerService{
		db:            db,
		transactions:  transactions,
		budgets:       budgets,
		debts:         debts,
		patrimony:     patrimony,
		conversations: conversations,
		matcher:       matcher,
		storeTimeout:  storeTimeout,
		now:           time.Now,
	}
}

// Apply dispatches one classified intent against the ledger. Rejections
// (unknown action, invalid category or amount) return an error and write
// nothing. Accepted mutating intents return a ReconciliationResult whose
// Steps record which side effects succeeded; a partially_completed
// outcome means an earlier step committed and a later best-effort step
// failed.
func (s *ledgerService) Apply(ctx context.Context, intent Intent) (*ReconciliationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	result := &ReconciliationResult{
		IntentID: uuid.New(),
		Action:   intent.Action,
		Outcome:  OutcomeCompleted,
	}

	var err error
	switch intent.Action {
	case ActionExpense:
		err = s.applyExpense(ctx, intent, result)
	case ActionIncome:
		err = s.applyIncome(ctx, intent, result)
	case ActionCheckBudget:
		err = s.checkBudget(ctx, intent, result)
	case ActionCheckDebt:
		result.Debts, err = s.debts.GetAll(ctx)
	case ActionCheckPatrimony:
		result.Patrimony, err = s.patrimony.Get(ctx)
	case ActionFinancialSummary:
		err = s.financialSummary(ctx, result)
	case ActionCloseMonth:
		err = s.closeMonth(ctx, result)
	default:
		err = apperrors.WithMessage(apperrors.ErrUnknownAction, fmt.Sprintf("unrecognized action %q", intent.Action))
	}

	if err != nil {
		s.conversations.Log(ctx, intent, OutcomeRejected, err.Error())
		return nil, err
	}

	detail := ""
	if result.Outcome == OutcomePartiallyCompleted {
		detail = apperrors.ErrPartialReconciliation.Message
	}
	s.conversations.Log(ctx, intent, result.Outcome, detail)
	return result, nil
}

// applyExpense runs the mutating expense sequence. The transaction write
// is authoritative: if it fails, the whole request fails. The budget
// increment and the debt attribution are best-effort; their failures are
// recorded and reported, never rolled back.
func (s *ledgerService) applyExpense(ctx context.Context, intent Intent, result *ReconciliationResult) error {
	category := models.Category(intent.Category)
	if intent.Category == "" || !models.IsSpendingCategory(category) {
		return apperrors.ErrInvalidCategory
	}
	if intent.Amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "expense amount must be greater than zero")
	}

	transaction, err := s.transactions.Record(ctx, intent.Amount, category, intent.Description, models.TransactionTypeExpense)
	if err != nil {
		s.recordStep(ctx, result, StepRecordTransaction, err)
		return err
	}
	result.Transaction = transaction
	s.recordStep(ctx, result, StepRecordTransaction, nil)

	budget, err := s.budgets.ApplySpend(ctx, category, intent.Amount)
	s.recordStep(ctx, result, StepApplySpend, err)
	if err == nil {
		result.Budget = budget
	}

	s.attributeDebt(ctx, intent, category, result)
	return nil
}

// attributeDebt runs the best-effort debt heuristic for an accepted
// expense. Failures never unwind the transaction or budget writes.
func (s *ledgerService) attributeDebt(ctx context.Context, intent Intent, category models.Category, result *ReconciliationResult) {
	debts, err := s.debts.GetAll(ctx)
	if err != nil {
		s.recordStep(ctx, result, StepDebtPayment, err)
		return
	}

	match := s.matcher.Match(debts, category, intent.Amount, intent.Description)
	if match == nil {
		return
	}

	debt, err := s.debts.ApplyPayment(ctx, match.Name, intent.Amount)
	s.recordStep(ctx, result, StepDebtPayment, err)
	if err != nil {
		logger.Get().Errorw("debt attribution failed",
			"debt", match.Name,
			"amount", intent.Amount,
			"error", err.Error(),
		)
		return
	}
	result.Debt = debt
}

// applyIncome records an income transaction; the category is forced to
// "income" and budgets are untouched.
func (s *ledgerService) applyIncome(ctx context.Context, intent Intent, result *ReconciliationResult) error {
	if intent.Amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "income amount must be greater than zero")
	}

	transaction, err := s.transactions.Record(ctx, intent.Amount, models.CategoryIncome, intent.Description, models.TransactionTypeIncome)
	if err != nil {
		return err
	}
	result.Transaction = transaction
	return nil
}

// checkBudget returns one category's status, or all five when the intent
// names no category.
func (s *ledgerService) checkBudget(ctx context.Context, intent Intent, result *ReconciliationResult) error {
	if intent.Category == "" {
		statuses, err := s.budgets.GetAllStatuses(ctx)
		if err != nil {
			return err
		}
		result.Budgets = statuses
		return nil
	}

	category := models.Category(intent.Category)
	if !models.IsSpendingCategory(category) {
		return apperrors.ErrInvalidCategory
	}
	status, err := s.budgets.GetStatus(ctx, category)
	if err != nil {
		return err
	}
	result.Budget = status
	return nil
}

// financialSummary composes the full read-only picture.
func (s *ledgerService) financialSummary(ctx context.Context, result *ReconciliationResult) error {
	monthly, err := s.patrimony.ComputeMonthlyStatus(ctx, s.now())
	if err != nil {
		return err
	}
	budgets, err := s.budgets.GetAllStatuses(ctx)
	if err != nil {
		return err
	}
	debts, err := s.debts.GetAll(ctx)
	if err != nil {
		return err
	}

	result.Monthly = monthly
	result.Budgets = budgets
	result.Debts = debts
	return nil
}

// closeMonth sequences compute status, close patrimony, reset budgets.
// The sequence is not atomic: a failure after the patrimony write leaves
// budgets unreset, which the per-step report surfaces instead of claiming
// full success. Budgets are reset only after a successful close; if the
// patrimony write fails the counters stay intact so a retry can still
// fold the month's delta in.
func (s *ledgerService) closeMonth(ctx context.Context, result *ReconciliationResult) error {
	now := s.now()

	monthly, err := s.patrimony.ComputeMonthlyStatus(ctx, now)
	if err != nil {
		s.recordStep(ctx, result, StepComputeStatus, err)
		return err
	}
	result.Monthly = monthly
	s.recordStep(ctx, result, StepComputeStatus, nil)

	patrimony, err := s.patrimony.CloseMonth(ctx, &monthly.RemainingThisMonth, now)
	s.recordStep(ctx, result, StepClosePatrimony, err)
	if err != nil {
		return nil
	}
	result.Patrimony = patrimony

	for _, reset := range s.budgets.ResetAll(ctx) {
		s.recordStep(ctx, result, fmt.Sprintf("%s:%s", StepResetBudget, reset.Category), reset.Err)
	}
	return nil
}

// recordStep appends a step to the result and persists it to the saga log.
// The log write itself is best-effort.
func (s *ledgerService) recordStep(ctx context.Context, result *ReconciliationResult, name string, err error) {
	step := Step{Name: name, Status: StepOK}
	if err != nil {
		step.Status = StepFailed
		step.Error = err.Error()
		result.Outcome = OutcomePartiallyCompleted
	}
	result.Steps = append(result.Steps, step)

	entry := &models.ReconciliationLog{
		IntentID: result.IntentID,
		Action:   result.Action,
		Step:     step.Name,
		Status:   string(step.Status),
		Detail:   step.Error,
	}
	if dbErr := s.db.WithContext(ctx).Create(entry).Error; dbErr != nil {
		logger.Get().Errorw("failed to persist reconciliation step",
			"intent_id", result.IntentID,
			"step", name,
			"error", dbErr,
		)
	}
}

// PartialError returns the typed partial-reconciliation error when the
// result is partially completed, nil otherwise. Library callers that want
// an error value instead of inspecting Steps can use this.
func (r *ReconciliationResult) PartialError() error {
	if r.Outcome != OutcomePartiallyCompleted {
		return nil
	}
	failed := ""
	for _, step := range r.Steps {
		if step.Status == StepFailed {
			if failed != "" {
				failed += ", "
			}
			failed += step.Name
		}
	}
	return apperrors.WithMessage(apperrors.ErrPartialReconciliation, "failed steps: "+failed)
}
