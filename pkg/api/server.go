package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cbodonnell/flipmatch/pkg/api/handlers"
	"github.com/cbodonnell/flipmatch/pkg/api/middleware"
	"github.com/cbodonnell/flipmatch/pkg/log"
	"github.com/cbodonnell/flipmatch/pkg/repositories"
	"github.com/cbodonnell/flipmatch/pkg/state"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port         int
	TLS          *TLSConfig
	Controller   handlers.GameController
	StateManager state.StateManager
	// Repository backs the resumable query. It may be nil.
	Repository repositories.Repository
	Events     handlers.EventSource
}

// NewRouter wires the game routes.
func NewRouter(opts NewAPIServerOptions) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.Logging, middleware.CORS)

	router.HandleFunc("/games", handlers.HandleStartGame(opts.Controller, opts.StateManager)).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/games/current", handlers.HandleGetGame(opts.StateManager)).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/games/resumable", handlers.HandleResumable(opts.Repository)).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/games/save", handlers.HandleSaveGame(opts.Controller)).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/games/load", handlers.HandleLoadGame(opts.Controller, opts.StateManager)).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/games/end", handlers.HandleEndGame(opts.Controller, opts.StateManager)).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/cards/{cardID:[0-9]+}/select", handlers.HandleSelectCard(opts.Controller, opts.StateManager)).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/lifecycle/pause", handlers.HandlePause(opts.Controller, true)).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/lifecycle/resume", handlers.HandlePause(opts.Controller, false)).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/lifecycle/quit", handlers.HandleQuit(opts.Controller)).Methods(http.MethodPost, http.MethodOptions)
	if opts.Events != nil {
		router.HandleFunc("/events", handlers.HandleEvents(opts.Events)).Methods(http.MethodGet)
	}
	return router
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewRouter(opts),
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
