// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/usecase/account"
	"github.com/finance-tracker/ledger/internal/application/usecase/category"
	categoryrule "github.com/finance-tracker/ledger/internal/application/usecase/category_rule"
	creditcard "github.com/finance-tracker/ledger/internal/application/usecase/credit_card"
	"github.com/finance-tracker/ledger/internal/application/usecase/dashboard"
	"github.com/finance-tracker/ledger/internal/application/usecase/debt"
	"github.com/finance-tracker/ledger/internal/application/usecase/investment"
	"github.com/finance-tracker/ledger/internal/application/usecase/ledger"
	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/infra/server/router"
	"github.com/finance-tracker/ledger/internal/integration/adapters"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Router       *router.Router
	Refs         entity.CategoryRefs
	Location     *time.Location
	TokenService adapter.TokenService
	AuditAll     *account.AuditAllUseCase
}

// Options carries the runtime collaborators that are not derived from
// configuration. A nil Redis client keeps rate limit counters in memory and
// a nil Clock reads the wall time.
type Options struct {
	Redis       *redis.Client
	Clock       adapter.Clock
	DBHealth    controller.HealthChecker
	RedisHealth controller.HealthChecker
}

// NewInjector creates a new dependency injector with all dependencies wired.
// It seeds the system categories, so the schema must already exist.
func NewInjector(ctx context.Context, cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	clock := opts.Clock
	if clock == nil {
		clock = adapters.NewSystemClock()
	}

	location, err := time.LoadLocation(cfg.Ledger.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid ledger timezone %q: %w", cfg.Ledger.Timezone, err)
	}

	overrides, err := CategoryOverrides(cfg.Ledger.Categories)
	if err != nil {
		return nil, err
	}

	// Create repositories
	transactor := persistence.NewTransactor(db)
	accountRepo := persistence.NewAccountRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	ruleRepo := persistence.NewCategoryRuleRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	cardRepo := persistence.NewCreditCardRepository(db)
	debtRepo := persistence.NewDebtRepository(db)
	investmentRepo := persistence.NewInvestmentRepository(db)
	dashboardRepo := persistence.NewDashboardRepository(db)

	// Resolve system categories before anything can post a movement
	ensured, err := category.NewEnsureSystemCategoriesUseCase(transactor, categoryRepo).Execute(ctx, category.EnsureSystemCategoriesInput{
		Overrides: overrides,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure system categories: %w", err)
	}

	poster := ledger.NewPoster(accountRepo, categoryRepo, transactionRepo, clock, location, ensured.Refs)
	currency := cfg.Ledger.Currency

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Create account use cases
	auditAllUseCase := account.NewAuditAllUseCase(accountRepo, transactionRepo)
	accountController := controller.NewAccountController(
		account.NewListAccountsUseCase(accountRepo),
		account.NewGetAccountUseCase(accountRepo),
		account.NewCreateAccountUseCase(accountRepo),
		account.NewUpdateAccountUseCase(accountRepo),
		account.NewDeactivateAccountUseCase(accountRepo),
		account.NewAuditBalanceUseCase(accountRepo, transactionRepo),
		account.NewGetStatementUseCase(accountRepo, transactionRepo),
	)

	categoryController := controller.NewCategoryController(
		category.NewListCategoriesUseCase(categoryRepo),
		category.NewCreateCategoryUseCase(categoryRepo),
		category.NewUpdateCategoryUseCase(categoryRepo),
		category.NewDeleteCategoryUseCase(transactor, categoryRepo),
	)

	ruleController := controller.NewCategoryRuleController(
		categoryrule.NewListCategoryRulesUseCase(ruleRepo),
		categoryrule.NewCreateCategoryRuleUseCase(ruleRepo, categoryRepo),
		categoryrule.NewUpdateCategoryRuleUseCase(ruleRepo, categoryRepo),
		categoryrule.NewDeleteCategoryRuleUseCase(ruleRepo),
		categoryrule.NewTestPatternUseCase(transactionRepo),
	)

	transactionController := controller.NewTransactionController(
		transaction.NewListTransactionsUseCase(transactionRepo),
		transaction.NewCreateTransactionUseCase(transactor, poster),
		transaction.NewCreateTransferUseCase(transactor, poster),
		transaction.NewImportTransactionsUseCase(transactor, poster, ruleRepo),
		transaction.NewUpdateTransactionUseCase(transactor, transactionRepo, poster),
		transaction.NewDeleteTransactionUseCase(transactor, transactionRepo, cardRepo, debtRepo, investmentRepo, poster),
		transaction.NewCompleteTransactionUseCase(transactor, transactionRepo, poster),
		transaction.NewRevertTransactionUseCase(transactor, transactionRepo, poster),
	)

	creditCardController := controller.NewCreditCardController(
		creditcard.NewCreateCardUseCase(cardRepo),
		creditcard.NewListCardsUseCase(cardRepo),
		creditcard.NewUpdateCardUseCase(cardRepo),
		creditcard.NewDeactivateCardUseCase(cardRepo),
		creditcard.NewRecordPurchaseUseCase(transactor, cardRepo, categoryRepo, poster, currency),
		creditcard.NewListPurchasesUseCase(cardRepo),
		creditcard.NewDeletePurchaseUseCase(transactor, cardRepo),
		creditcard.NewGetInvoiceUseCase(cardRepo, currency),
		creditcard.NewPayInvoiceUseCase(transactor, cardRepo, poster, currency),
	)

	debtController := controller.NewDebtController(
		debt.NewCreateDebtUseCase(debtRepo),
		debt.NewListDebtsUseCase(debtRepo),
		debt.NewGetDebtUseCase(debtRepo),
		debt.NewUpdateDebtUseCase(transactor, debtRepo),
		debt.NewDeleteDebtUseCase(transactor, debtRepo),
		debt.NewRecordPaymentUseCase(transactor, debtRepo, poster),
		debt.NewListPaymentsUseCase(debtRepo),
		debt.NewProjectScheduleUseCase(debtRepo, clock, location),
	)

	investmentController := controller.NewInvestmentController(
		investment.NewCreateInvestmentUseCase(investmentRepo),
		investment.NewListInvestmentsUseCase(investmentRepo),
		investment.NewUpdateInvestmentUseCase(transactor, investmentRepo),
		investment.NewDeleteInvestmentUseCase(transactor, investmentRepo),
		investment.NewRecordOperationUseCase(transactor, investmentRepo, poster),
		investment.NewListOperationsUseCase(investmentRepo),
	)

	dashboardController := controller.NewDashboardController(
		dashboard.NewGetSummaryUseCase(accountRepo, transactionRepo, cardRepo, debtRepo, investmentRepo, clock, location),
		dashboard.NewGetCategoryBreakdownUseCase(dashboardRepo, clock, location),
		dashboard.NewGetTrendsUseCase(transactionRepo, clock, location),
	)

	healthController := controller.NewHealthController(opts.DBHealth, opts.RedisHealth, clock)

	// Create middleware
	var rateLimiter *middleware.RateLimiter
	if cfg.Redis.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(opts.Redis, cfg.Redis.MaxRequests, cfg.Redis.Window)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		accountController,
		categoryController,
		ruleController,
		transactionController,
		creditCardController,
		debtController,
		investmentController,
		dashboardController,
		rateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:       cfg,
		DB:           db,
		Router:       r,
		Refs:         ensured.Refs,
		Location:     location,
		TokenService: tokenService,
		AuditAll:     auditAllUseCase,
	}, nil
}

// CategoryOverrides parses configured system category IDs keyed by system
// key. Empty values are skipped.
func CategoryOverrides(values map[string]string) (entity.CategoryRefs, error) {
	var refs entity.CategoryRefs
	for _, sc := range entity.SystemCategories {
		raw := values[string(sc.Key)]
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return entity.CategoryRefs{}, fmt.Errorf("invalid category override for %s: %w", sc.Key, err)
		}
		refs.Set(sc.Key, id)
	}
	return refs, nil
}
