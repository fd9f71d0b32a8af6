package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler    *handlers.AuthHandler
	PagesHandler   *handlers.PagesHandler
	AccountHandler *handlers.AccountHandler
	ProjectHandler *handlers.ProjectHandler
	SheetHandler   *handlers.SheetHandler
	AdminHandler   *handlers.AdminHandler
	HealthHandler  *handlers.HealthHandler
	Sessions       *middleware.Sessions
	Log            zerolog.Logger
	Secure         func(http.Handler) http.Handler
	IPRateLimit    func(http.Handler) http.Handler
	FormRateLimit  func(http.Handler) http.Handler // login, register, forgot_password, contact
	CORSOrigins    []string                        // JSON endpoints only
	Metrics        bool                            // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(middleware.RequestLogger(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	r.Handle("/static/*", handlers.StaticHandler())
	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	formLimit := cfg.FormRateLimit
	if formLimit == nil {
		formLimit = func(next http.Handler) http.Handler { return next }
	}
	cors := middleware.CORS(cfg.CORSOrigins)

	r.Group(func(r chi.Router) {
		r.Use(cfg.Sessions.Load)

		// Public pages
		r.Get("/", cfg.PagesHandler.Home)
		r.Get("/features", cfg.PagesHandler.Features)
		r.Get("/contact", cfg.PagesHandler.ContactPage)
		r.With(formLimit).Post("/contact", cfg.PagesHandler.Contact)
		r.Get("/invalid", cfg.PagesHandler.Invalid)
		r.Get("/view_sheet/{link_code}", cfg.SheetHandler.ViewSheet)
		r.Get("/download_pdf/{link_code}", cfg.SheetHandler.DownloadPDF)

		// Authentication
		r.Get("/register", cfg.AuthHandler.RegisterPage)
		r.With(formLimit).Post("/register", cfg.AuthHandler.Register)
		r.Get("/confirm_email/{token}", cfg.AuthHandler.ConfirmEmail)
		r.Get("/resend_confirmation", cfg.AuthHandler.ResendConfirmationPage)
		r.With(formLimit).Post("/resend_confirmation", cfg.AuthHandler.ResendConfirmation)
		r.Get("/login", cfg.AuthHandler.LoginPage)
		r.With(formLimit).Post("/login", cfg.AuthHandler.Login)
		r.Get("/logout", cfg.AuthHandler.Logout)
		r.Get("/forgot_password", cfg.AuthHandler.ForgotPasswordPage)
		r.With(formLimit).Post("/forgot_password", cfg.AuthHandler.ForgotPassword)
		r.Get("/reset_password/{token}", cfg.AuthHandler.ResetPasswordPage)
		r.Post("/reset_password/{token}", cfg.AuthHandler.ResetPassword)

		r.Route("/api", func(r chi.Router) {
			r.Use(cors)
			r.Get("/tech_projects/{tech_name}", cfg.SheetHandler.TechProjects)
		})

		// Signed-in owner pages
		r.Group(func(r chi.Router) {
			r.Use(cfg.Sessions.RequireLogin)
			r.Get("/userinfo", cfg.AccountHandler.UserInfo)
			r.Get("/account", cfg.AccountHandler.AccountPage)
			r.Post("/account", cfg.AccountHandler.Account)
			r.Post("/delete_user", cfg.AccountHandler.DeleteUser)
			r.Get("/profile", cfg.AccountHandler.ProfilePage)
			r.Post("/profile", cfg.AccountHandler.Profile)

			r.Get("/input", cfg.ProjectHandler.InputPage)
			r.Post("/input", cfg.ProjectHandler.Input)
			r.Get("/edit_project/{id}", cfg.ProjectHandler.EditPage)
			r.Post("/edit_project/{id}", cfg.ProjectHandler.Edit)
			r.Post("/delete_project/{id}", cfg.ProjectHandler.Delete)
			r.Get("/individual_input", cfg.ProjectHandler.IndividualPage)
			r.Post("/individual_input", cfg.ProjectHandler.Individual)
			r.Post("/delete_individual/{id}", cfg.ProjectHandler.DeleteIndividual)

			r.Get("/sheet", cfg.SheetHandler.Sheet)
			r.Post("/sheet", cfg.SheetHandler.Sheet)
			r.Post("/create_link", cfg.SheetHandler.CreateLink)
			r.Post("/invalidate_link", cfg.SheetHandler.InvalidateLink)
		})

		if cfg.AdminHandler != nil {
			r.Route("/admin", func(r chi.Router) {
				r.Get("/", cfg.AdminHandler.LoginPage)
				r.With(formLimit).Post("/", cfg.AdminHandler.Login)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin(cfg.Log))
					r.Get("/dashboard", cfg.AdminHandler.Dashboard)
					r.Get("/logout", cfg.AdminHandler.Logout)

					r.Get("/users", cfg.AdminHandler.Users)
					r.With(cors).Get("/users_pagination", cfg.AdminHandler.UsersPagination)
					r.Get("/user/create", cfg.AdminHandler.UserCreatePage)
					r.Post("/user/create", cfg.AdminHandler.UserCreate)
					r.Get("/user/{id}", cfg.AdminHandler.UserPage)
					r.Post("/user/{id}", cfg.AdminHandler.UserUpdate)
					r.Post("/user/delete/{id}", cfg.AdminHandler.UserDelete)

					r.Get("/projects", cfg.AdminHandler.Projects)
					r.With(cors).Get("/projects_pagination", cfg.AdminHandler.ProjectsPagination)
					r.Get("/project/create", cfg.AdminHandler.ProjectCreatePage)
					r.Post("/project/create", cfg.AdminHandler.ProjectCreate)
					r.Get("/project/{id}", cfg.AdminHandler.ProjectPage)
					r.Post("/project/{id}", cfg.AdminHandler.ProjectUpdate)
					r.Post("/project/delete/{id}", cfg.AdminHandler.ProjectDelete)

					r.Get("/logs", cfg.AdminHandler.Logs)
					r.Get("/contacts", cfg.AdminHandler.Contacts)
					r.Get("/contact/{id}", cfg.AdminHandler.ContactPage)
					r.Post("/contact/{id}", cfg.AdminHandler.ContactReply)
				})
			})
		}

		r.NotFound(cfg.PagesHandler.NotFound)
	})

	return r
}
