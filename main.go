package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/sci-platform/riskform/app"
	"github.com/sci-platform/riskform/config"
	"github.com/sci-platform/riskform/database"
	"github.com/sci-platform/riskform/httpx"
	"github.com/sci-platform/riskform/log"
	"github.com/sci-platform/riskform/notify"
	"github.com/sci-platform/riskform/routes"
	"github.com/sci-platform/riskform/store"
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

	st := store.New(db)
	defer st.Close()

	app := app.App{
		Store:        st,
		BearerServer: httpx.NewBearerServer(st, cfg),
		Config:       cfg,
		Notify:       notify.LogSender{},
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
