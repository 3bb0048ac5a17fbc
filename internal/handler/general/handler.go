package general

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mastoemoji2tg/internal/config"
)

type (
	botApi interface {
		SendMessage(chatID int64, message string) (tgbotapi.Message, error)
	}

	Handler struct {
		cfg *config.Config
		api botApi
	}
)

func New(cfg *config.Config, botAPI botApi) *Handler {
	return &Handler{
		cfg: cfg,
		api: botAPI,
	}
}

func (h *Handler) StartResponse(chatID int64) {
	_, _ = h.api.SendMessage(chatID, h.startText())
}

func (h *Handler) HelpResponse(chatID int64) {
	_, _ = h.api.SendMessage(chatID, h.helpText())
}

func (h *Handler) UnknownCommandResponse(chatID int64, command string) {
	message := fmt.Sprintf("Unknown command /%s, try /help", command)

	_, _ = h.api.SendMessage(chatID, message)
}

func (h *Handler) startText() string {
	return "Welcome to mastoemoji2tg bot!\n" +
		"Send me the name of a Mastodon instance and I will list its custom emojis.\n\n" +
		h.helpText()
}

func (h *Handler) helpText() string {
	return fmt.Sprintf("Usage:\n"+
		"  mastodon.social - list emojis by category\n"+
		"  mastodon.social :blobcat: - get the emoji image\n"+
		"  mastodon.social ?cat - search shortcodes\n"+
		"  /refresh mastodon.social - reload the emoji list\n"+
		"Leave out the instance to use %s.", h.cfg.DefaultInstance)
}
