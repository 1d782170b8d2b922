package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	_ "github.com/jhoicas/goagent-api/docs"
	"github.com/jhoicas/goagent-api/internal/application/auth"
	"github.com/jhoicas/goagent-api/internal/application/leads"
	"github.com/jhoicas/goagent-api/internal/application/signup"
	"github.com/jhoicas/goagent-api/internal/domain/entity"
	"github.com/jhoicas/goagent-api/internal/domain/repository"
	"github.com/jhoicas/goagent-api/internal/infrastructure/firebase"
	"github.com/jhoicas/goagent-api/internal/infrastructure/postgres"
	"github.com/jhoicas/goagent-api/internal/infrastructure/ratelimit"
	"github.com/jhoicas/goagent-api/internal/infrastructure/voiceplatform"
	httpRouter "github.com/jhoicas/goagent-api/internal/interfaces/http"
	"github.com/jhoicas/goagent-api/internal/observability/metrics"
	"github.com/jhoicas/goagent-api/pkg/config"
	"github.com/jhoicas/goagent-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("identity_provider", cfg.Identity.Provider).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	var identities repository.IdentityStore
	switch cfg.Identity.Provider {
	case config.IdentityProviderFirebase:
		identities = firebase.NewIdentityToolkit(firebase.Config{
			APIKey:       cfg.Identity.FirebaseAPIKey,
			EmulatorHost: cfg.Identity.FirebaseEmulatorHost,
			HTTPTimeout:  cfg.Platform.StepTimeout,
		})
	default:
		identities = postgres.NewIdentityStore(pool, 0)
	}
	recordRepo := postgres.NewSignupRecordRepository(pool)
	leadRepo := postgres.NewLeadRepository(pool)

	// Un solo cliente HTTP para plantillas, organizaciones, clientes y llamadas.
	platform := voiceplatform.NewClient(voiceplatform.Config{
		APIKey:          cfg.Platform.APIKey,
		AgentsURL:       cfg.Platform.AgentsURL,
		OrgsURL:         cfg.Platform.OrgsURL,
		CallAgentID:     cfg.Platform.CallAgentID,
		DefaultWidgetID: cfg.Templates.DefaultWidgetID,
	})
	if cfg.Platform.APIKey == "" {
		log.Warn().Msg("API_KEY vacío: el aprovisionamiento de agentes y las llamadas fallarán")
	}

	signupMetrics := metrics.NewSignupMetrics(nil, metrics.Config{
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Env,
	})

	orchestrator := signup.NewOrchestrator(signup.Deps{
		Identities: identities,
		Templates:  platform,
		Orgs:       platform,
		Clients:    platform,
		Records:    recordRepo,
		Catalog: signup.TemplateCatalog{
			Templates: map[entity.BusinessType]string{
				entity.BusinessDropshipper: cfg.Templates.Dropshipper,
				entity.BusinessThemePage:   cfg.Templates.ThemePage,
				entity.BusinessInfluencer:  cfg.Templates.Influencer,
				entity.BusinessOther:       cfg.Templates.Other,
			},
			DefaultWidgetID: cfg.Templates.DefaultWidgetID,
		},
		Logger:      log,
		Metrics:     signupMetrics,
		StepTimeout: cfg.Platform.StepTimeout,
	})

	authUC := auth.NewAuthUseCase(identities, recordRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	leadsUC := leads.NewUseCase(leadRepo, platform, cfg.Platform.StepTimeout)

	// Limitador de registro: solo si hay Redis configurado.
	var signupLimiter httpRouter.SignupLimiter
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no responde; el limitador dejará pasar las peticiones")
		}
		cancel()
		signupLimiter = ratelimit.NewSignupLimiter(rdb, cfg.Redis.SignupPerMinute, cfg.Redis.SignupBurst)
	}

	app := fiber.New(httpRouter.WithProxyHeader(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // el registro encadena varias llamadas externas
		IdleTimeout:  time.Second * 60,
	}, cfg.HTTP.ProxyHeader, cfg.HTTP.TrustedProxies))
	if cfg.Redis.Enabled() && cfg.HTTP.ProxyHeader == "" {
		log.Warn().Msg("PROXY_HEADER vacío: detrás de un balanceador todos los registros comparten el mismo límite")
	}
	app.Use(recover.New())
	app.Use(httpRouter.NewCORS(cfg.HTTP.AllowedOrigins))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GoAgent API",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("GoAgent API Server")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Signup:        orchestrator,
		Auth:          authUC,
		Leads:         leadsUC,
		SignupLimiter: signupLimiter,
		JWTSecret:     cfg.JWT.Secret,
		Logger:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
