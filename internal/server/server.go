package server

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mastoemoji2tg/internal/config"
	"mastoemoji2tg/internal/handler"
)

type botAPI interface {
	GetUpdatesChan() tgbotapi.UpdatesChannel
	Shutdown()
}

type (
	InitParams struct {
		Config   *config.Config
		Api      botAPI
		Handlers *handler.Handlers
	}
	Server struct {
		cfg      *config.Config
		api      botAPI
		handlers *handler.Handlers
	}
)

func New(p *InitParams) *Server {
	return &Server{
		cfg:      p.Config,
		api:      p.Api,
		handlers: p.Handlers,
	}
}

func (s *Server) Start(ctx context.Context) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	updatesChan := s.api.GetUpdatesChan()

	slog.Info("Server started")

	for {
		select {
		case update := <-updatesChan:
			go s.handleUpdate(ctx, &update)
		case <-ctx.Done():
			s.api.Shutdown()

			return
		}
	}
}

func (s *Server) handleUpdate(ctx context.Context, update *tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start":
			s.handlers.General.StartResponse(chatID)
		case "help":
			s.handlers.General.HelpResponse(chatID)
		case "refresh":
			s.handlers.Emoji.Refresh(update.Message, update.Message.CommandArguments())
		default:
			s.handlers.General.UnknownCommandResponse(chatID, update.Message.Command())
		}

		return
	}

	s.handlers.Emoji.HandleMessage(ctx, update.Message)
}
