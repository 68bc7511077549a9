package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/NikhilKanaujia/portfolio/internal/contact"
	"github.com/NikhilKanaujia/portfolio/internal/relay"
)

const templatesGlob = "templates/*"

type app struct {
	sessions *sessions
	metrics  *metrics
	registry *prometheus.Registry
	logger   zerolog.Logger
}

func newApp(sender contact.Sender, sessionTTL time.Duration, sessionMax uint64, logger zerolog.Logger) *app {
	a := &app{
		registry: prometheus.NewRegistry(),
		logger:   logger,
	}
	// sessions and metrics reference each other: the gauge reads the session
	// count, new controllers send through the timed sender.
	a.metrics = newMetrics(a.registry, func() float64 { return float64(a.sessions.len()) })
	timed := timedSender{next: sender, latency: a.metrics.relayLatency}
	a.sessions = newSessions(sessionTTL, sessionMax, func() *contact.Controller {
		return contact.New(timed, contact.WithLogger(logger))
	}, logger)
	return a
}

func (a *app) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(a.logger))
	r.LoadHTMLGlob(templatesGlob)

	r.Static("/static", "./static")

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))

	// Home page route
	r.GET("/", existingSession(a.sessions), func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"ownerName":    OwnerName,
			"headline":     Headline,
			"tagline":      Tagline,
			"aboutMe":      AboutMe,
			"contactBlurb": ContactBlurb,
			"navLinks":     NavLinks,
			"skills":       Skills,
			"heroSkills":   Skills[:3],
			"socialLinks":  SocialLinks,
			"year":         time.Now().Year(),
			"contact":      contactView(controllerFrom(c)),
		})
	})

	// HTMX contact form fragment
	form := r.Group("/")
	form.Use(sessionMiddleware(a.sessions))
	form.GET("/contact-form", a.contactForm)
	form.POST("/contact/field", a.updateField)
	form.POST("/contact", a.submitContact)

	return r
}

func main() {
	cfg, warnings, err := loadConfig()
	logger := newLogger(cfg)
	for _, w := range warnings {
		logger.Warn().Msg(w)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	client, err := relay.NewClient(cfg.RelayEndpoint, relay.WithLogger(logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid relay endpoint")
	}

	a := newApp(client, cfg.SessionTTL, cfg.SessionMax, logger)
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.sessions.start()
	defer a.sessions.stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("portfolio listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
