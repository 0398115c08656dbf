package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/weekly-events/api/internal/application/auth"
	"github.com/weekly-events/api/internal/application/event"
	"github.com/weekly-events/api/internal/config"
	"github.com/weekly-events/api/internal/infrastructure/dynamo"
	jwtinfra "github.com/weekly-events/api/internal/infrastructure/jwt"
	"github.com/weekly-events/api/internal/infrastructure/smtp"
	"github.com/weekly-events/api/internal/infrastructure/sns"
	"github.com/weekly-events/api/internal/transport/http/handler"
	appmiddleware "github.com/weekly-events/api/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	OtpRepo          *dynamo.OtpRepo
	EventRepo        *dynamo.EventRepo
	RegistrationRepo *dynamo.RegistrationRepo
	Mailer           smtp.Mailer
	SMSSender        sns.SMSSender
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authSvc := auth.NewService(auth.ServiceDeps{
		OtpRepo:       deps.OtpRepo,
		UserRepo:      deps.UserRepo,
		Mailer:        deps.Mailer,
		SMSSender:     deps.SMSSender,
		Signer:        deps.JWTProvider,
		OTPTTLMinutes: cfg.OTPTTLMinutes,
	})
	eventSvc := event.NewService(deps.EventRepo, deps.RegistrationRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	eventH := handler.NewEventHandler(eventSvc)

	// ── Public routes (no auth) ──────────────────────────────────────────
	r.Get("/health", healthH.Check)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/request-email-otp", authH.RequestEmailOTP)
		r.Post("/verify-email-otp", authH.VerifyEmailOTP)
		r.Post("/request-phone-otp", authH.RequestPhoneOTP)
		r.Post("/verify-phone-otp", authH.VerifyPhoneOTP)
	})

	// ── Authenticated routes ─────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(appmiddleware.Auth(deps.JWTProvider))

		r.Get("/events", eventH.List)
		r.Post("/events/register", eventH.Register)
	})

	return r
}
