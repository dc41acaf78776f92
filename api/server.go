package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/status-im/coin-browser/interfaces"
	"github.com/status-im/coin-browser/listing"
)

type Server struct {
	port       string
	listing    *listing.Engine
	repository interfaces.CoinRepository
	upgrader   websocket.Upgrader
	server     *http.Server
	logger     *zap.Logger
}

func New(port string, listingEngine *listing.Engine, repository interfaces.CoinRepository, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		port:       port,
		listing:    listingEngine,
		repository: repository,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.Named("api"),
	}
}

// Router builds the HTTP routes
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/api/v1/coins", s.handleListing).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/coins/next", s.handleNextPage).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/coins/refresh", s.handleRefresh).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/coins/sort", s.handleSort).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/coins/page-view", s.handlePageView).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/coins/{id}/detail", s.handleDetail).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/coins/{id}/favorite", s.handleToggleFavorite).Methods(http.MethodPost)

	router.HandleFunc("/api/v1/favorites", s.handleFavorites).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/favorites/{id}/toggle", s.handleFavoritesViewToggle).Methods(http.MethodPost)

	router.HandleFunc("/api/v1/stream", s.handleStream)

	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("server starting", zap.String("addr", "http://localhost:"+s.port))
	s.logger.Info("prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			s.logger.Warn("error shutting down server", zap.Error(err))
		}
	}
}
