package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/account"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/admin"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/auth"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/contact"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/individual"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/link"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/project"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/sheet"
	"github.com/amirhosseinghanipour/skillcanvas/internal/config"
	infraauth "github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/auth"
	httprouter "github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/http"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/http/middleware"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/lockout"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/logging"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/mail"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/pdf"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/persistence"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/queue"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/security"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/webhook"
)

func main() {
	boot := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("load config")
	}
	log, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		boot.Fatal().Err(err).Msg("open log file")
	}
	defer logCloser.Close()

	ctx := context.Background()
	stores, err := persistence.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer stores.Close()

	healthChecks := []handlers.HealthCheck{{Name: "database", Ping: stores.Ping}}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; sending email inline")
			redisClient = nil
		} else {
			healthChecks = append(healthChecks, handlers.HealthCheck{Name: "redis", Ping: func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			}})
		}
	}

	mailer := mail.New(cfg.Mail, log)
	var emitter ports.WebhookEmitter = webhook.NewLogEmitter(log)
	if cfg.Webhook.URL != "" {
		var opts []webhook.HTTPEmitterOption
		if cfg.Webhook.Secret != "" {
			opts = append(opts, webhook.WithSigningSecret(cfg.Webhook.Secret))
		}
		emitter = webhook.NewHTTPEmitter(cfg.Webhook.URL, opts...)
	}

	var taskEnqueuer ports.TaskEnqueuer
	var asynqWorker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		asynqEnq := queue.NewAsynqEnqueuer(asynqOpt, log)
		defer asynqEnq.Close()
		taskEnqueuer = asynqEnq
		if cfg.Worker.Enabled {
			asynqWorker, err = queue.NewWorker(asynqOpt, queue.WorkerDeps{
				Mailer:          mailer,
				Emitter:         emitter,
				Users:           stores.Users,
				UnconfirmedDays: cfg.Retention.UnconfirmedDays,
			}, log)
			if err != nil {
				log.Fatal().Err(err).Msg("create asynq worker")
			}
			go func() {
				if err := asynqWorker.Run(); err != nil {
					log.Warn().Err(err).Msg("asynq worker stopped")
				}
			}()
		}
	} else {
		taskEnqueuer = queue.NewDirectEnqueuer(mailer, emitter, log)
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})
	signer := infraauth.NewActionTokenSigner([]byte(cfg.Tokens.Secret), "skillcanvas")
	lockoutStore := lockout.NewMemoryStore(cfg.Lockout.MaxAttempts, cfg.Lockout.CooldownSecs)
	sessions := middleware.NewSessions(cfg.Session.Secret, cfg.Session.Secure, cfg.Session.MaxAge, stores.Users, log)

	baseURL := cfg.Server.BaseURL
	verifier := auth.NewSendEmailVerification(signer, taskEnqueuer, baseURL, cfg.Tokens.ConfirmExpiry)
	registerUC := auth.NewRegisterUser(stores.Users, hasher, verifier)
	loginUC := auth.NewLogin(stores.Users, hasher, lockoutStore)
	verifyEmailUC := auth.NewVerifyEmail(signer, stores.Users)
	forgotPasswordUC := auth.NewForgotPassword(signer, stores.Users, taskEnqueuer, baseURL, cfg.Tokens.ResetExpiry)
	resetPasswordUC := auth.NewResetPassword(signer, stores.Users, hasher)

	deleteAccountUC := account.NewDeleteAccount(stores.Users)
	createProjectUC := project.NewCreateProject(stores.Projects)
	getProjectUC := project.NewGetProject(stores.Projects)
	editProjectUC := project.NewEditProject(stores.Projects)
	deleteProjectUC := project.NewDeleteProject(stores.Projects)
	createLinkUC := link.NewCreateLink(stores.Links, baseURL)
	buildSheetUC := sheet.NewBuildSheet(stores.Users, stores.Projects, stores.Individuals, stores.Links, baseURL)
	publicSheetUC := sheet.NewBuildPublicSheet(link.NewResolveLink(stores.Links), buildSheetUC)

	views, err := handlers.NewViews()
	if err != nil {
		log.Fatal().Err(err).Msg("parse templates")
	}

	authHandler := handlers.NewAuthHandler(views, sessions, handlers.AuthUseCases{
		Register:       registerUC,
		VerifyEmail:    verifyEmailUC,
		Resend:         auth.NewResendConfirmation(stores.Users, verifier),
		Login:          loginUC,
		ForgotPassword: forgotPasswordUC,
		ResetPassword:  resetPasswordUC,
	}, log)
	pagesHandler := handlers.NewPagesHandler(views, sessions, contact.NewSubmit(stores.Contacts, taskEnqueuer), log)
	accountHandler := handlers.NewAccountHandler(views, sessions, account.NewUpdateAccount(stores.Users, hasher), account.NewUpdateProfile(stores.Users), deleteAccountUC, log)
	projectHandler := handlers.NewProjectHandler(views, sessions, createProjectUC, getProjectUC, editProjectUC, deleteProjectUC,
		individual.NewCreate(stores.Individuals), individual.NewDelete(stores.Individuals), log)
	sheetHandler := handlers.NewSheetHandler(views, sessions, buildSheetUC, publicSheetUC,
		sheet.NewExportPDF(publicSheetUC, pdf.NewRenderer(cfg.PDF)), sheet.NewTechUsage(stores.Projects, stores.Individuals),
		createLinkUC, link.NewInvalidateLink(stores.Links), log)
	adminHandler := handlers.NewAdminHandler(views, sessions, handlers.AdminDeps{
		Login:          loginUC,
		SearchUsers:    admin.NewSearchUsers(stores.Users),
		SearchProjects: admin.NewSearchProjects(stores.Projects),
		CreateUser:     admin.NewCreateUser(registerUC, stores.Users),
		UpdateUser:     admin.NewUpdateUser(stores.Users),
		GetUser:        admin.NewGetUser(stores.Users, stores.Links),
		DeleteUser:     deleteAccountUC,
		CreateProject:  createProjectUC,
		GetProject:     getProjectUC,
		EditProject:    editProjectUC,
		DeleteProject:  deleteProjectUC,
		ListContacts:   contact.NewList(stores.Contacts),
		GetContact:     contact.NewGet(stores.Contacts),
		Reply:          contact.NewReply(stores.Contacts, taskEnqueuer),
		Users:          stores.Users,
		ShareURL:       createLinkUC.URL,
		LogFile:        cfg.Log.File,
	}, log)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	formLimit, err := middleware.NewFormRateLimiter(cfg.RateLimit.RateAuth)
	if err != nil {
		log.Fatal().Err(err).Msg("create form rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:    authHandler,
		PagesHandler:   pagesHandler,
		AccountHandler: accountHandler,
		ProjectHandler: projectHandler,
		SheetHandler:   sheetHandler,
		AdminHandler:   adminHandler,
		HealthHandler:  handlers.NewHealthHandler(healthChecks...),
		Sessions:       sessions,
		Log:            log,
		Secure:         secureMiddleware,
		IPRateLimit:    ipLimit,
		FormRateLimit:  formLimit,
		CORSOrigins:    cfg.CORS.AllowedOrigins,
		Metrics:        cfg.Metrics.Enabled,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("driver", cfg.Database.Driver).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
