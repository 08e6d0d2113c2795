package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/campusforge/aegis/audit"
	"github.com/campusforge/aegis/config"
	"github.com/campusforge/aegis/controller"
	"github.com/campusforge/aegis/dao"
	"github.com/campusforge/aegis/db"
	"github.com/campusforge/aegis/finance"
	logger "github.com/campusforge/aegis/logging"
	"github.com/campusforge/aegis/pdp/engine"
	"github.com/campusforge/aegis/pdp/gate"
	"github.com/campusforge/aegis/router"
	"github.com/campusforge/aegis/service"
	"github.com/campusforge/aegis/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize stores
	if err := db.InitPostgres(); err != nil {
		logger.Fatal("Failed to initialize Postgres", zap.Error(err))
	}
	defer db.ClosePostgres()

	if err := db.InitNeo4j(); err != nil {
		logger.Fatal("Failed to initialize Neo4j", zap.Error(err))
	}
	defer db.CloseNeo4j()

	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Initialize utilities and the audit sink
	validationUtil := util.NewValidationUtil()
	cacheService := util.NewCacheService()
	auditRepository, err := audit.NewElasticsearchRepository(
		config.GetString("elasticsearch.url"),
		config.GetString("authz.auditIndex"),
	)
	if err != nil {
		logger.Fatal("Failed to initialize audit repository", zap.Error(err))
	}
	auditService := audit.NewService(auditRepository)
	auditRecorder := audit.NewRecorder(auditService, config.GetDuration("authz.auditTimeout"))

	// Initialize DAOs
	policyDAO := dao.NewPolicyDAO(db.DB)
	financeDAO := dao.NewFinanceDAO(db.DB)
	notificationDAO := dao.NewNotificationDAO(db.DB)
	assignmentDAO := dao.NewAssignmentDAO(db.Neo4jDriver)

	// Notification retention sweep
	notificationService := util.NewNotificationService(
		notificationDAO,
		config.GetDuration("finance.notificationRetention"),
		config.GetDuration("finance.sweepInterval"),
	)
	notificationService.StartRetentionSweep(ctx)

	// Decision engine
	resolver := engine.NewPolicyResolver(
		policyDAO,
		engine.NewConditionEvaluator(),
		config.GetStringSlice("authz.privilegedRoles"),
	)
	policyGate := gate.NewPolicyGate(resolver, assignmentDAO, auditRecorder)

	// Financial-access core
	semesterFee := config.GetInt64("finance.semesterFee")
	synchronizer := finance.NewRegistrationSynchronizer(financeDAO, semesterFee, eventBus)
	statusService := finance.NewAccessStatusService(financeDAO, semesterFee)

	// Services and controllers
	policyService := service.NewPolicyService(policyDAO, validationUtil, cacheService, notificationService, eventBus)

	controllers := &controller.Controllers{
		Policy:       controller.NewPolicyController(policyService),
		Access:       controller.NewAccessController(policyGate, statusService, auditService),
		Payment:      controller.NewPaymentController(synchronizer, financeDAO, validationUtil),
		Registration: controller.NewRegistrationController(synchronizer, financeDAO),
		Notification: controller.NewNotificationController(notificationDAO),
	}

	engineRouter := router.SetupRouter(controllers, policyGate, 100, time.Minute)

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engineRouter,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
