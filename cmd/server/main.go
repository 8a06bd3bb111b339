package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/wepredict/go-api-server/auth"
	"github.com/wepredict/go-api-server/chat"
	"github.com/wepredict/go-api-server/googleauth"
	"github.com/wepredict/go-api-server/internal/config"
	"github.com/wepredict/go-api-server/internal/logging"
	"github.com/wepredict/go-api-server/migrations"
	"github.com/wepredict/go-api-server/server"
	"github.com/wepredict/go-api-server/token"
	"github.com/wepredict/go-api-server/users"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	if err := config.Validate(c); err != nil {
		return fmt.Errorf("config.Validate: %w", err)
	}
	logger := logging.New(c.GetEnv(), c.GetAppName())
	displayAppname(c.GetAppName())

	db, err := openDatabase(c.GetDatabaseDSN())
	if err != nil {
		return fmt.Errorf("openDatabase: %w", err)
	}
	defer db.Close()

	handler, err := buildServer(c, logger, db)
	if err != nil {
		return fmt.Errorf("buildServer: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(httpServer, logger)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func openDatabase(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db.Ping: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("goose.SetDialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return nil, fmt.Errorf("goose.Up: %w", err)
	}
	return db, nil
}

func buildServer(c config.Config, logger zerolog.Logger, db *sql.DB) (*server.Server, error) {
	repo, err := users.NewPostgresRepo(db)
	if err != nil {
		return nil, fmt.Errorf("users.NewPostgresRepo: %w", err)
	}

	tokens, err := token.New(c.GetJWTSecret(), c.GetTokenTTL())
	if err != nil {
		return nil, fmt.Errorf("token.New: %w", err)
	}

	verifier := googleauth.New(googleauth.Config{
		ClientID:     c.GetGoogleClientID(),
		ClientSecret: c.GetGoogleClientSecret(),
		RedirectURL:  c.GetGoogleRedirectURL(),
	})
	if c.GetGoogleClientID() == "" {
		logger.Warn().Msg("google client id not configured, google sign-in disabled")
	}

	authService, err := auth.NewService(repo, verifier, tokens)
	if err != nil {
		return nil, fmt.Errorf("auth.NewService: %w", err)
	}

	// The chat proxy is optional: without an API key its routes are not
	// registered.
	var chatService *chat.Service
	if c.GetOpenAIKey() != "" {
		chatService, err = chat.NewService(c.GetOpenAIKey(), c.GetOpenAIBaseURL(), c.GetDefaultChatModel())
		if err != nil {
			return nil, fmt.Errorf("chat.NewService: %w", err)
		}
	} else {
		logger.Warn().Msg("chat completion API key not configured, chat routes disabled")
	}

	return server.New(c, logger, authService, tokens, chatService, verifier)
}

func listenAndServe(server *http.Server, logger zerolog.Logger) error {
	logger.Info().Str("addr", server.Addr).Msg("server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
