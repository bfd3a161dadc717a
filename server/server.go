package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	v1 "github.com/imrenagi/go-video-catalog/api/v1"
	"github.com/imrenagi/go-video-catalog/catalog"
	"github.com/imrenagi/go-video-catalog/config"
)

type Opts struct {
	Config *config.Config
	Store  *catalog.Store
}

func New(opts Opts) Server {
	s := Server{
		opts: opts,
	}
	return s
}

type Server struct {
	opts Opts
}

// Run serves the catalog API and the interactive page until ctx is done,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	log.Info().Msg("starting server")

	serviceName := "go-video-catalog"

	prometheusExporter := NewPrometheusExporter(ctx)
	meterShutdownFn := InitMeterProvider(ctx, serviceName, prometheusExporter)

	httpServer := &http.Server{
		Addr:    s.opts.Config.ListenAddr,
		Handler: s.newHTTPHandler(),
		// ReadTimeout is the maximum duration for reading the entire request, including the body.
		// This prevents slowloris attacks.
		ReadTimeout: 30 * time.Second,
		// WriteTimeout is the maximum duration before timing out writes of the response.
		WriteTimeout: 10 * time.Second,
		// ReadHeaderTimeout is necessary here to prevent slowloris attacks.
		ReadHeaderTimeout: 5 * time.Second,
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
		IdleTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Msgf("Starting http server on %s", s.opts.Config.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("listen:%+s\n", err)
		}
	}()

	<-ctx.Done()

	gracefulShutdownPeriod := 30 * time.Second
	log.Warn().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownPeriod)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown http server gracefully")
	}
	log.Warn().Msg("http server gracefully stopped")

	if err := meterShutdownFn(ctx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown meter provider")
	}
	return nil
}

func (s *Server) newHTTPHandler() http.Handler {
	router := mux.NewRouter()
	router.Use(
		otelhttp.NewMiddleware("catalog"),
		LogInterceptor)
	router.Handle("/metrics", promhttp.Handler())

	ctrl := v1.NewController(s.opts.Store)
	apiRouter := router.PathPrefix("/api").Subrouter()

	apiV1Router := apiRouter.PathPrefix("/v1").Subrouter()
	apiV1Router.Handle("/videos", otelhttp.WithRouteTag("/api/v1/videos", ctrl.ListVideos())).Methods(http.MethodGet)
	apiV1Router.Handle("/videos", otelhttp.WithRouteTag("/api/v1/videos", ctrl.CreateVideo())).Methods(http.MethodPost)
	apiV1Router.Handle("/videos/{video_id}", otelhttp.WithRouteTag("/api/v1/videos/{video_id}", ctrl.GetVideo())).Methods(http.MethodGet)
	apiV1Router.Handle("/videos/{video_id}", otelhttp.WithRouteTag("/api/v1/videos/{video_id}", ctrl.DeleteVideo())).Methods(http.MethodDelete)

	router.Handle("/", otelhttp.WithRouteTag("/", http.HandlerFunc(v1.Web()))).Methods(http.MethodGet)

	handler := cors.New(cors.Options{
		AllowedOrigins: s.opts.Config.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"*"},
	}).Handler(router)

	return otelhttp.NewHandler(handler, "/")
}
