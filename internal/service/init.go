package service

import (
	"mastoemoji2tg/internal/config"
	"mastoemoji2tg/internal/infrastructure/webapi"
	"mastoemoji2tg/internal/service/catalog"
)

type Services struct {
	Catalog *catalog.Catalog
}

func New(cfg *config.Config, apis *webapi.WebAPIs) *Services {
	return &Services{
		Catalog: catalog.New(apis.Mastodon, cfg.CacheTTL),
	}
}
