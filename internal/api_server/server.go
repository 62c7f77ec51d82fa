package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/powhr/talentflow/internal/auth"
	"github.com/powhr/talentflow/internal/config"
	"github.com/powhr/talentflow/internal/events"
	handlers "github.com/powhr/talentflow/internal/handlers/v1alpha1"
	"github.com/powhr/talentflow/internal/service"
	"github.com/powhr/talentflow/internal/store"
	"github.com/powhr/talentflow/pkg/metrics"
	"github.com/powhr/talentflow/pkg/middleware"
	"go.uber.org/zap"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg         *config.Config
	store       store.Store
	listener    net.Listener
	eventWriter *events.EventProducer
}

// New returns a new instance of a talentflow api server.
func New(
	cfg *config.Config,
	store store.Store,
	listener net.Listener,
	eventWriter *events.EventProducer,
) *Server {
	return &Server{
		cfg:         cfg,
		store:       store,
		listener:    listener,
		eventWriter: eventWriter,
	}
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	authenticator, err := auth.NewAuthenticator(s.cfg.Service.Auth)
	if err != nil {
		return err
	}

	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "PUT", "POST", "DELETE", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := handlers.NewHandler(
		service.NewPipelineService(s.store),
		service.NewPositionService(s.store),
		service.NewCandidateService(s.store),
		s.eventWriter,
	)

	router.Group(func(r chi.Router) {
		r.Use(authenticator.Authenticator)

		r.Route("/api/v1", func(r chi.Router) {
			r.Route("/applications", func(r chi.Router) {
				r.Get("/", h.ListApplications)
				r.Post("/", h.CreateApplication)
				r.Get("/{id}", h.GetApplication)
				r.Post("/{id}/transition", h.TransitionApplication)
				r.Get("/{id}/history", h.GetApplicationHistory)
			})
			r.Route("/positions", func(r chi.Router) {
				r.Get("/", h.ListPositions)
				r.Post("/", h.CreatePosition)
				r.Get("/{id}", h.GetPosition)
				r.Delete("/{id}", h.DeletePosition)
			})
			r.Route("/candidates", func(r chi.Router) {
				r.Get("/", h.ListCandidates)
				r.Post("/", h.CreateCandidate)
				r.Get("/{id}", h.GetCandidate)
			})
		})
	})

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: router}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}

	return nil
}
