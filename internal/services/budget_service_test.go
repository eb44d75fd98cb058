package services

import (
	"context"
	"testing"

	"kepler/internal/models"
	"kepler/internal/testutil"
)

func TestGetBudgetStatus(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		testutil.CreateTestBudget(t, db, models.CategoryFixedSurvival, 1_300_000)

		status, err := svc.GetStatus(context.Background(), models.CategoryFixedSurvival)
		testutil.AssertNoError(t, err)

		if status.Category != models.CategoryFixedSurvival {
			t.Errorf("expected category fixed_survival, got %s", status.Category)
		}
		if status.MonthlyLimit != 1_300_000 {
			t.Errorf("expected limit 1300000, got %d", status.MonthlyLimit)
		}
		if status.CurrentSpent != 0 {
			t.Errorf("expected spent 0, got %d", status.CurrentSpent)
		}
		if status.Remaining != 1_300_000 {
			t.Errorf("expected remaining 1300000, got %d", status.Remaining)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		_, err := svc.GetStatus(context.Background(), models.CategoryKeplerGrowth)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestGetAllBudgetStatuses(t *testing.T) {
	t.Run("plan_order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		testutil.SeedPlanBudgets(t, db)

		statuses, err := svc.GetAllStatuses(context.Background())
		testutil.AssertNoError(t, err)

		if len(statuses) != 5 {
			t.Fatalf("expected 5 statuses, got %d", len(statuses))
		}
		for i, category := range models.SpendingCategories() {
			if statuses[i].Category != category {
				t.Errorf("expected category %s at position %d, got %s", category, i, statuses[i].Category)
			}
			if statuses[i].MonthlyLimit != testutil.PlanLimits[category] {
				t.Errorf("expected limit %d for %s, got %d", testutil.PlanLimits[category], category, statuses[i].MonthlyLimit)
			}
		}
	})

	t.Run("missing_row_is_an_error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		// kepler_growth deliberately unprovisioned
		for _, category := range models.SpendingCategories() {
			if category == models.CategoryKeplerGrowth {
				continue
			}
			testutil.CreateTestBudget(t, db, category, testutil.PlanLimits[category])
		}

		_, err := svc.GetAllStatuses(context.Background())
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestApplySpend(t *testing.T) {
	t.Run("accumulates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		testutil.CreateTestBudget(t, db, models.CategoryNetworkingLife, 309_000)

		_, err := svc.ApplySpend(context.Background(), models.CategoryNetworkingLife, 50_000)
		testutil.AssertNoError(t, err)
		status, err := svc.ApplySpend(context.Background(), models.CategoryNetworkingLife, 30_000)
		testutil.AssertNoError(t, err)

		if status.CurrentSpent != 80_000 {
			t.Errorf("expected spent 80000, got %d", status.CurrentSpent)
		}
		if status.Remaining != 229_000 {
			t.Errorf("expected remaining 229000, got %d", status.Remaining)
		}
	})

	t.Run("over_budget_flagged_not_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		testutil.CreateTestBudget(t, db, models.CategoryKeplerGrowth, 412_850)

		status, err := svc.ApplySpend(context.Background(), models.CategoryKeplerGrowth, 500_000)
		testutil.AssertNoError(t, err)

		if status.CurrentSpent != 500_000 {
			t.Errorf("expected spent 500000, got %d", status.CurrentSpent)
		}
		if status.Remaining != -87_150 {
			t.Errorf("expected remaining -87150, got %d", status.Remaining)
		}
		if !status.OverBudget() {
			t.Error("expected over-budget state")
		}
	})

	t.Run("zero_limit_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		testutil.CreateTestBudget(t, db, models.CategoryStupidExpenses, 0)

		status, err := svc.ApplySpend(context.Background(), models.CategoryStupidExpenses, 10_000)
		testutil.AssertNoError(t, err)

		if status.Remaining != -10_000 {
			t.Errorf("expected remaining -10000, got %d", status.Remaining)
		}
	})

	t.Run("invalid_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		testutil.CreateTestBudget(t, db, models.CategoryFixedSurvival, 1_300_000)

		_, err := svc.ApplySpend(context.Background(), models.CategoryFixedSurvival, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.ApplySpend(context.Background(), models.CategoryFixedSurvival, -500)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		_, err := svc.ApplySpend(context.Background(), "vacation", 10_000)
		testutil.AssertAppError(t, err, "INVALID_CATEGORY")
	})

	t.Run("missing_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		_, err := svc.ApplySpend(context.Background(), models.CategoryDebtOffensive, 10_000)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestResetAll(t *testing.T) {
	t.Run("zeroes_every_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		testutil.SeedPlanBudgets(t, db)

		_, err := svc.ApplySpend(context.Background(), models.CategoryFixedSurvival, 900_000)
		testutil.AssertNoError(t, err)
		_, err = svc.ApplySpend(context.Background(), models.CategoryKeplerGrowth, 200_000)
		testutil.AssertNoError(t, err)

		resets := svc.ResetAll(context.Background())
		if len(resets) != 5 {
			t.Fatalf("expected 5 reset outcomes, got %d", len(resets))
		}
		for _, reset := range resets {
			if reset.Err != nil {
				t.Errorf("unexpected reset failure for %s: %v", reset.Category, reset.Err)
			}
		}

		statuses, err := svc.GetAllStatuses(context.Background())
		testutil.AssertNoError(t, err)
		for _, status := range statuses {
			if status.CurrentSpent != 0 {
				t.Errorf("expected %s spent 0 after reset, got %d", status.Category, status.CurrentSpent)
			}
		}
	})

	t.Run("one_failure_does_not_abort_the_rest", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		// networking_life deliberately unprovisioned
		for _, category := range models.SpendingCategories() {
			if category == models.CategoryNetworkingLife {
				continue
			}
			testutil.CreateTestBudget(t, db, category, testutil.PlanLimits[category])
		}
		_, err := svc.ApplySpend(context.Background(), models.CategoryDebtOffensive, 100_000)
		testutil.AssertNoError(t, err)

		resets := svc.ResetAll(context.Background())
		if len(resets) != 5 {
			t.Fatalf("expected 5 reset outcomes, got %d", len(resets))
		}

		for _, reset := range resets {
			if reset.Category == models.CategoryNetworkingLife {
				testutil.AssertAppError(t, reset.Err, "CATEGORY_NOT_FOUND")
				continue
			}
			if reset.Err != nil {
				t.Errorf("unexpected reset failure for %s: %v", reset.Category, reset.Err)
			}
		}

		status, err := svc.GetStatus(context.Background(), models.CategoryDebtOffensive)
		testutil.AssertNoError(t, err)
		if status.CurrentSpent != 0 {
			t.Errorf("expected debt_offensive reset to 0, got %d", status.CurrentSpent)
		}
	})
}
