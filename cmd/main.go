package main

import (
	"context"
	"log"

	"mastoemoji2tg/internal/app"
	"mastoemoji2tg/internal/config"
)

func main() {
	cfg, err := config.NewConfig("./config")
	if err != nil {
		log.Fatal(err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	a.Run(context.Background())
}
