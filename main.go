package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/ekarimli/sorgu/app"
	"github.com/ekarimli/sorgu/config"
	"github.com/ekarimli/sorgu/database"
	"github.com/ekarimli/sorgu/log"
	"github.com/ekarimli/sorgu/routes"
	"github.com/ekarimli/sorgu/session"
	"github.com/ekarimli/sorgu/store"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	app := app.App{
		Questions: store.NewQuestions(db),
		Sessions:  session.NewManager(cfg.SessionSecret),
		Config:    cfg,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
