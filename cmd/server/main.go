package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/recapkit/recap"
	"github.com/recapkit/recap/generator"
	anthropicgenerator "github.com/recapkit/recap/generator/anthropic"
	googlegenerator "github.com/recapkit/recap/generator/google"
	groqgenerator "github.com/recapkit/recap/generator/groq"
	"github.com/recapkit/recap/mailer"
	memorymailer "github.com/recapkit/recap/mailer/memory"
	smtpmailer "github.com/recapkit/recap/mailer/smtp"
	"github.com/recapkit/recap/server"
	httpserver "github.com/recapkit/recap/server/http"
	"github.com/recapkit/recap/store"
	memorystore "github.com/recapkit/recap/store/memory"
	mongostore "github.com/recapkit/recap/store/mongo"
	postgresstore "github.com/recapkit/recap/store/postgres"
)

var (
	cfg struct {
		// Server config
		Address string `help:"Address for the HTTP server" default:":8080"`

		// Generator config
		Generator    string `help:"Generator backend: groq, anthropic, or google" default:"groq"`
		GeneratorKey string `help:"API key for the generator" env:"GENERATOR_API_KEY" default:""`
		Model        string `help:"Model identifier for the generator" default:"llama3-8b-8192"`

		// Store config
		Store           string `help:"Store backend: mongo, postgres, or memory" default:"mongo"`
		StoreLocation   string `help:"Connection string for the store" env:"STORE_LOCATION" default:"mongodb://localhost:27017"`
		StoreDatabase   string `help:"Database name for the store" default:"recap"`
		StoreCollection string `help:"Collection or table name for summaries" default:"summaries"`

		// Mailer config
		Mailer       string `help:"Mailer backend: smtp or memory" default:"smtp"`
		SmtpHost     string `help:"SMTP relay host" env:"SMTP_HOST" default:"localhost"`
		SmtpPort     int    `help:"SMTP relay port" env:"SMTP_PORT" default:"587"`
		SmtpUsername string `help:"SMTP username" env:"SMTP_USERNAME" default:""`
		SmtpPassword string `help:"SMTP password" env:"SMTP_PASSWORD" default:""`
		MailFrom     string `help:"Sender address for outbound summaries" env:"MAIL_FROM" default:"recap@localhost"`
	}
)

func main() {
	_ = godotenv.Load()

	// Parse inputs
	_ = kong.Parse(&cfg)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create the summary generator
	var gen generator.Generator
	switch cfg.Generator {
	case "anthropic":
		gen = anthropicgenerator.NewGenerator(
			generator.WithApiKey(cfg.GeneratorKey),
			generator.WithModel(cfg.Model),
		)
	case "google":
		gen = googlegenerator.NewGenerator(
			generator.WithApiKey(cfg.GeneratorKey),
			generator.WithModel(cfg.Model),
		)
	case "groq":
		gen = groqgenerator.NewGenerator(
			generator.WithApiKey(cfg.GeneratorKey),
			generator.WithModel(cfg.Model),
		)
	default:
		log.Fatalf("unknown generator backend: %s", cfg.Generator)
	}

	// Create the record store
	var st store.Store
	var err error
	switch cfg.Store {
	case "mongo":
		st, err = mongostore.NewStore(
			store.WithLocation(cfg.StoreLocation),
			store.WithDatabase(cfg.StoreDatabase),
			store.WithCollection(cfg.StoreCollection),
		)
	case "postgres":
		st, err = postgresstore.NewStore(
			store.WithLocation(cfg.StoreLocation),
			store.WithDatabase(cfg.StoreDatabase),
			store.WithCollection(cfg.StoreCollection),
		)
	case "memory":
		st = memorystore.NewStore()
	default:
		log.Fatalf("unknown store backend: %s", cfg.Store)
	}
	if err != nil {
		log.Fatalf("failed to create store: %v", err)
	}

	// Create the mailer
	var m mailer.Mailer
	switch cfg.Mailer {
	case "smtp":
		m, err = smtpmailer.NewMailer(
			mailer.WithHost(cfg.SmtpHost),
			mailer.WithPort(cfg.SmtpPort),
			mailer.WithUsername(cfg.SmtpUsername),
			mailer.WithPassword(cfg.SmtpPassword),
			mailer.WithFrom(cfg.MailFrom),
		)
		if err != nil {
			log.Fatalf("failed to create mailer: %v", err)
		}
	case "memory":
		m = memorymailer.NewMailer()
	default:
		log.Fatalf("unknown mailer backend: %s", cfg.Mailer)
	}

	// Wire the app and serve
	app := recap.New(gen, st, m)
	defer app.Close(context.Background())

	srv := httpserver.NewServer(
		app,
		server.WithAddress(cfg.Address),
		httpserver.WithMiddleware(requestLogger),
	)

	go func() {
		slog.Info("recap server listening", "address", cfg.Address, "store", cfg.Store, "generator", cfg.Generator)
		if err := srv.Run(); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Fatalf("failed to stop server: %v", err)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.InfoContext(r.Context(), "request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
