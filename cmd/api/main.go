package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/staffsync/badging-backend-go/internal/config"
	appHTTP "github.com/staffsync/badging-backend-go/internal/handler/http"
	"github.com/staffsync/badging-backend-go/internal/pkg/cron"
	"github.com/staffsync/badging-backend-go/internal/pkg/database"
	"github.com/staffsync/badging-backend-go/internal/pkg/jwt"
	"github.com/staffsync/badging-backend-go/internal/pkg/live"
	"github.com/staffsync/badging-backend-go/internal/pkg/oauth"
	"github.com/staffsync/badging-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/staffsync/badging-backend-go/internal/service/auth"
	badgeService "github.com/staffsync/badging-backend-go/internal/service/badge"
	geofenceService "github.com/staffsync/badging-backend-go/internal/service/geofence"
	reconcileService "github.com/staffsync/badging-backend-go/internal/service/reconcile"
	reportService "github.com/staffsync/badging-backend-go/internal/service/report"
	scheduleService "github.com/staffsync/badging-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	closingPeriodRepo := postgresql.NewClosingPeriodRepository(db)
	absenceRepo := postgresql.NewAbsenceRepository(db)
	badgeRepo := postgresql.NewBadgeRepository(db)
	contractRepo := postgresql.NewContractRepository(db)
	workLocationRepo := postgresql.NewWorkLocationRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	hub := live.NewHub()

	authSvc := serviceAuth.NewAuthService(userRepo, JWTService, GoogleService)
	scheduleSvc := scheduleService.NewScheduleService(shiftRepo, closingPeriodRepo, absenceRepo)
	geofenceSvc := geofenceService.NewGeofenceService(workLocationRepo)
	badgeSvc := badgeService.NewBadgeService(badgeRepo, scheduleSvc, geofenceSvc, hub)
	reconcileSvc := reconcileService.NewReconcileService(
		shiftRepo,
		closingPeriodRepo,
		absenceRepo,
		badgeRepo,
		contractRepo,
		employeeRepo,
		nil,
	)
	reportSvc := reportService.NewReportService(badgeRepo, shiftRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc)
	badgeHandler := appHTTP.NewBadgeHandler(badgeSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	geofenceHandler := appHTTP.NewGeofenceHandler(geofenceSvc)
	contractHandler := appHTTP.NewContractHandler(contractRepo)
	reportHandler := appHTTP.NewReportHandler(reconcileSvc, reportSvc)
	liveHandler := appHTTP.NewLiveHandler(hub, JWTService)

	scheduler := cron.NewScheduler()
	cron.NewBadgeJobs(badgeRepo, hub).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		authHandler,
		badgeHandler,
		scheduleHandler,
		geofenceHandler,
		contractHandler,
		reportHandler,
		liveHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	fmt.Println("Shutting down...")
	if err := server.Close(); err != nil {
		fmt.Println("Server shutdown error:", err)
	}
}
