package main

import (
	"flag"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"stackviz/internal/config"
	"stackviz/internal/engine"
	"stackviz/internal/handlers"
	"stackviz/internal/metadata"
	"stackviz/internal/observability"
	"stackviz/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	port := flag.Int("port", cfg.Port, "HTTP server port (overrides PORT)")
	flag.Parse()
	cfg.Port = *port
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	logger := observability.InitLogger("stackviz", cfg.LogLevel, cfg.LogJSON)

	assets, err := staticAssets(cfg.StaticDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("static assets")
	}

	reg := metadata.Default()
	eng := engine.New(logger, reg)

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: handlers.NewHandler(handlers.Server{
			Engine:   eng,
			Registry: reg,
			Assets:   assets,
			Logger:   logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info().Str("addr", "http://localhost"+cfg.Addr()).Msg("server is running")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server error")
	}
}

// staticAssets serves from dir when set, otherwise from the embedded UI.
func staticAssets(dir string) (fs.FS, error) {
	if dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
		return os.DirFS(dir), nil
	}
	return fs.Sub(web.StaticFiles, "static")
}
