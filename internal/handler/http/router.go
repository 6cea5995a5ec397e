package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/staffsync/badging-backend-go/internal/config"
	"github.com/staffsync/badging-backend-go/internal/handler/http/middleware"
	"github.com/staffsync/badging-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	badgeHandler BadgeHandler,
	scheduleHandler ScheduleHandler,
	geofenceHandler GeofenceHandler,
	contractHandler ContractHandler,
	reportHandler ReportHandler,
	liveHandler LiveHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "staffsync-badging"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})
		})

		// The stream endpoint authenticates with its own short-lived
		// token; EventSource cannot send an Authorization header.
		r.Get("/live", liveHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/live/token", liveHandler.StreamToken)

			r.Route("/badge", func(r chi.Router) {
				r.Get("/availability", badgeHandler.TodayAvailability)
				r.Get("/session", badgeHandler.ActiveSession)
				r.Get("/sessions", badgeHandler.SessionsInRange)
				r.Post("/check-in", badgeHandler.CheckIn)
				r.Post("/{id}/break", badgeHandler.ToggleBreak)
				r.Post("/{id}/check-out", badgeHandler.CheckOut)
			})

			r.Route("/schedule", func(r chi.Router) {
				r.Get("/my", scheduleHandler.MyShifts)
				r.Get("/my/day/{weekday}", scheduleHandler.MyShiftsOnDay)
				r.Get("/my/range", scheduleHandler.MyShiftsInRange)

				r.Route("/absences", func(r chi.Router) {
					r.Post("/", scheduleHandler.RequestAbsence)
					r.Get("/my", scheduleHandler.MyAbsences)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/shifts", scheduleHandler.CreateShift)
					r.Put("/shifts/{id}", scheduleHandler.UpdateShift)
					r.Delete("/shifts/{id}", scheduleHandler.DeleteShift)

					r.Get("/closing-periods", scheduleHandler.ListClosingPeriods)
					r.Post("/closing-periods", scheduleHandler.CreateClosingPeriod)
					r.Delete("/closing-periods/{id}", scheduleHandler.DeleteClosingPeriod)

					r.Post("/absences/{id}/approve", scheduleHandler.ApproveAbsence)
					r.Post("/absences/{id}/reject", scheduleHandler.RejectAbsence)
				})
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/settings/location", func(r chi.Router) {
					r.Get("/", geofenceHandler.GetSettings)
					r.Put("/", geofenceHandler.UpdateSettings)
				})

				r.Route("/contracts", func(r chi.Router) {
					r.Post("/", contractHandler.Create)
					r.Get("/employee/{employeeID}", contractHandler.ListByEmployee)
					r.Post("/employee/{employeeID}/terminate", contractHandler.Terminate)
				})

				r.Route("/reports", func(r chi.Router) {
					r.Get("/tardiness", reportHandler.Tardiness)
					r.Get("/overtime", reportHandler.Overtime)
					r.Get("/monthly", reportHandler.Monthly)
				})
			})
		})
	})

	return r
}
