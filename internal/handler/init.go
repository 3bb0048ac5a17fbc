package handler

import (
	"mastoemoji2tg/internal/config"
	"mastoemoji2tg/internal/handler/emoji"
	"mastoemoji2tg/internal/handler/general"
	"mastoemoji2tg/internal/infrastructure/webapi"
	"mastoemoji2tg/internal/service"
)

type Handlers struct {
	Emoji   *emoji.Handler
	General *general.Handler
}

func New(cfg *config.Config, apis *webapi.WebAPIs, services *service.Services) *Handlers {
	return &Handlers{
		Emoji:   emoji.New(cfg, apis.Bot, apis.Mastodon, services.Catalog),
		General: general.New(cfg, apis.Bot),
	}
}
