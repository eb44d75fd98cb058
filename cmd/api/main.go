package main

import (
	"fmt"
	"net/http"
	"os"

	"kepler/internal/config"
	"kepler/internal/database"
	"kepler/internal/handlers"
	"kepler/internal/logger"
	"kepler/internal/middleware"
	"kepler/internal/services"
	"kepler/internal/validator"

	"github.com/gin-gonic/gin"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Wire services. Everything is constructed here and injected; the
	// engine keeps no global store handle.
	db := dbManager.DB()
	transactionService := services.NewTransactionService(db)
	budgetService := services.NewBudgetService(db)
	debtService := services.NewDebtService(db)
	patrimonyService := services.NewPatrimonyService(db, transactionService)
	conversationService := services.NewConversationService(db)
	reminderService := services.NewReminderService(db)
	ledgerService := services.NewLedgerService(
		db,
		transactionService,
		budgetService,
		debtService,
		patrimonyService,
		conversationService,
		services.DefaultMatcher(),
		appConfig.StoreTimeout,
	)

	intentHandler := handlers.NewIntentHandler(ledgerService)
	ledgerHandler := handlers.NewLedgerHandler(budgetService, debtService, patrimonyService, transactionService, ledgerService)
	reminderHandler := handlers.NewReminderHandler(reminderService)

	validator.Register()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.APIKeyAuth(appConfig.PipelineAPIKey))

	v1.POST("/intents", intentHandler.Apply)

	v1.GET("/budgets", ledgerHandler.GetBudgets)
	v1.GET("/budgets/:category", ledgerHandler.GetBudget)
	v1.GET("/debts", ledgerHandler.GetDebts)
	v1.GET("/debts/:name", ledgerHandler.GetDebt)
	v1.GET("/patrimony", ledgerHandler.GetPatrimony)
	v1.GET("/summary", ledgerHandler.GetSummary)
	v1.POST("/close-month", ledgerHandler.CloseMonth)
	v1.GET("/transactions", ledgerHandler.GetTransactions)

	v1.GET("/reminders/due", reminderHandler.GetDue)
	v1.POST("/reminders/:id/sent", reminderHandler.MarkSent)

	log.Infof("Starting Kepler ledger engine on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
