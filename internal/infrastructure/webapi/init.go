package webapi

import (
	"github.com/pkg/errors"

	"mastoemoji2tg/internal/config"
	"mastoemoji2tg/internal/infrastructure/webapi/mastoapi"
	"mastoemoji2tg/internal/infrastructure/webapi/tgbot"
)

type WebAPIs struct {
	Bot      *tgbot.API
	Mastodon *mastoapi.API
}

func New(cfg *config.Config) (*WebAPIs, error) {
	bot, err := tgbot.New(cfg.Debug, cfg.BotApiKey)
	if err != nil {
		return nil, errors.Wrap(err, "webapi.New")
	}

	return &WebAPIs{
		Bot:      bot,
		Mastodon: mastoapi.New(cfg.Paths.Input, cfg.HTTPTimeout),
	}, nil
}
