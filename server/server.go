package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/wepredict/go-api-server/auth"
	"github.com/wepredict/go-api-server/chat"
	"github.com/wepredict/go-api-server/internal/config"
	"github.com/wepredict/go-api-server/token"
)

// CodeExchanger swaps a Google authorization code for the raw ID token
// inside Google's token response.
type CodeExchanger interface {
	ExchangeCode(ctx context.Context, code string) (string, error)
}

type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config config.Config
	log    zerolog.Logger

	auth      *auth.Service
	tokens    *token.Manager
	chat      *chat.Service // nil when no completion API key is configured
	exchanger CodeExchanger // nil when the code-exchange flow is not configured

	routeInit sync.Once
}

func New(cfg config.Config, logger zerolog.Logger, authService *auth.Service, tokens *token.Manager, chatService *chat.Service, exchanger CodeExchanger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("[Server New] config is required")
	}
	if authService == nil {
		return nil, errors.New("[Server New] auth service is required")
	}
	if tokens == nil {
		return nil, errors.New("[Server New] token manager is required")
	}

	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		log:       logger,
		auth:      authService,
		tokens:    tokens,
		chat:      chatService,
		exchanger: exchanger,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
