package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"mastoemoji2tg/internal/config"
	"mastoemoji2tg/internal/handler"
	"mastoemoji2tg/internal/infrastructure/webapi"
	"mastoemoji2tg/internal/server"
	"mastoemoji2tg/internal/service"
)

type App struct {
	cfg      *config.Config
	server   *server.Server
	services *service.Services
}

func New(cfg *config.Config) (*App, error) {
	const errMsg = "App.New"

	webAPI, err := webapi.New(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errMsg)
	}

	services := service.New(cfg, webAPI)

	handlers := handler.New(cfg, webAPI, services)

	s := server.New(
		&server.InitParams{
			Config:   cfg,
			Api:      webAPI.Bot,
			Handlers: handlers,
		},
	)

	app := &App{
		cfg:      cfg,
		server:   s,
		services: services,
	}

	err = app.setupDirs()
	if err != nil {
		return nil, errors.Wrap(err, errMsg)
	}

	return app, nil
}

func (a *App) Run(ctx context.Context) {
	if len(a.cfg.PreloadInstances) > 0 {
		err := a.services.Catalog.Preload(ctx, a.cfg.PreloadInstances)
		if err != nil {
			slog.Warn("Failed to preload emoji catalog", slog.Any("err", err))
		}
	}

	a.server.Start(ctx)
}

func (a *App) setupDirs() error {
	for _, dir := range []string{a.cfg.Paths.Input} {
		err := os.RemoveAll(dir)
		if err != nil {
			return err
		}

		err = os.MkdirAll(dir, os.ModePerm)
		if err != nil {
			return err
		}
	}

	return nil
}
