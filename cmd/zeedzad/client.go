package main

import (
	"log/slog"

	"zeedzad/web/pkg/api"
	"zeedzad/web/pkg/cli"
	"zeedzad/web/pkg/config"
	"zeedzad/web/pkg/igdb"
	"zeedzad/web/pkg/resolution"
)

// clientEnv is what the client commands share.
type clientEnv struct {
	cfg    *config.Config
	logger *slog.Logger
	client *api.Client
}

func newClientEnv() (*clientEnv, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := setupLogging(cfg, true)
	if err != nil {
		return nil, err
	}

	client := api.NewClientFromConfig(&cfg.Client, api.WithLogger(logger.With("component", "api.client")))
	return &clientEnv{cfg: cfg, logger: logger, client: client}, nil
}

// newSession builds a resolution session over the API client. External
// searches go through the backend unless direct IGDB access is enabled.
func (e *clientEnv) newSession() (*resolution.Session, error) {
	opts := []resolution.Option{
		resolution.WithSearchLimit(e.cfg.Client.SearchLimit),
		resolution.WithLogger(e.logger.With("component", "resolution")),
	}

	if e.cfg.IGDB.Enabled {
		searcher, err := igdb.NewSearcher(&e.cfg.IGDB)
		if err != nil {
			return nil, cli.NewConfigError("igdb", err.Error())
		}
		opts = append(opts, resolution.WithExternalSearcher(searcher))
	}

	return resolution.NewSession(e.client, opts...), nil
}
