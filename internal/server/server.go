package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/goldsim/gold-simulator/internal/marketdata"
)

// Server wraps the simulation engine behind a small JSON API.
type Server struct {
	router *mux.Router
	log    zerolog.Logger
	spot   *marketdata.SpotClient
	cron   *cron.Cron

	mu          sync.RWMutex
	cachedPrice decimal.Decimal
	priceAsOf   time.Time
	priceSource string
}

// New builds a server with routes and the hourly spot refresh registered.
func New(log zerolog.Logger, spot *marketdata.SpotClient) *Server {
	s := &Server{
		router:      mux.NewRouter(),
		log:         log,
		spot:        spot,
		cron:        cron.New(),
		cachedPrice: marketdata.FallbackPrice,
		priceSource: "fallback",
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.requestLogger)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/gold/current", s.handleCurrentPrice).Methods(http.MethodGet)
	s.router.HandleFunc("/gold/historical", s.handleHistoricalPrices).Methods(http.MethodGet)
	s.router.HandleFunc("/simulate", s.handleSimulate).Methods(http.MethodPost)
}

// requestLogger logs method, path, status and duration for every request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// refreshSpotPrice updates the cached price, keeping the previous value on
// fetch errors.
func (s *Server) refreshSpotPrice(ctx context.Context) {
	price, err := s.spot.CurrentPrice(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("spot price refresh failed, keeping cached price")
		return
	}
	s.mu.Lock()
	s.cachedPrice = price
	s.priceAsOf = time.Now()
	s.priceSource = "goldapi"
	s.mu.Unlock()
	s.log.Info().Str("price", price.String()).Msg("spot price refreshed")
}

// currentPrice returns the cached spot price and its provenance.
func (s *Server) currentPrice() (decimal.Decimal, time.Time, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cachedPrice, s.priceAsOf, s.priceSource
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler { return s.router }

// Start runs the HTTP server until ctx is cancelled, refreshing the spot
// price immediately and then hourly.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.refreshSpotPrice(ctx)
	if _, err := s.cron.AddFunc("@hourly", func() { s.refreshSpotPrice(context.Background()) }); err != nil {
		return err
	}
	s.cron.Start()
	defer s.cron.Stop()

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info().Str("addr", addr).Msg("server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
