package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/cache"
	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/logger"
	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/store"
)

type application struct {
	config config
	store  store.Storage
	cache  cache.SimulationCache
	logger logger.Logger
}

type config struct {
	addr     string
	db       dbConfig
	redis    redisConfig
	logLevel string
	logFmt   string
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

type redisConfig struct {
	addr string
	ttl  time.Duration
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Route("/simulations", func(r chi.Router) {
			r.Post("/", app.handleCreateSimulation)
			r.Get("/last", app.handleGetLastSimulation)
		})
		r.Post("/search", app.handleSearch)
		r.Route("/groups", func(r chi.Router) {
			r.Get("/", app.handleListGroups)
			r.Get("/{number}/assemblies", app.handleGetGroupAssemblies)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	app.logger.Info("Server started", map[string]interface{}{"addr": app.config.addr})
	return srv.ListenAndServe()
}
