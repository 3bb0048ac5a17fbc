package tgbot

import (
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

const updatesTimeout = 60

type API struct {
	bot *tgbotapi.BotAPI
}

func New(debug bool, apiKey string) (*API, error) {
	const errMsg = "BotAPI.New"

	bot, err := tgbotapi.NewBotAPI(apiKey)
	if err != nil {
		return nil, errors.Wrap(err, errMsg)
	}

	bot.Debug = debug

	slog.Info("Authorized on account", slog.String("username", bot.Self.UserName))

	return &API{
		bot: bot,
	}, nil
}

func (b *API) SendMessage(chatID int64, message string) (tgbotapi.Message, error) {
	const errMsg = "BotAPI.SendMessage"

	msg, err := b.bot.Send(tgbotapi.NewMessage(chatID, message))
	if err != nil {
		return tgbotapi.Message{}, errors.Wrap(err, errMsg)
	}

	return msg, nil
}

func (b *API) SendReply(chatID int64, replyToMessageID int, message string) error {
	const errMsg = "BotAPI.SendReply"

	msg := tgbotapi.NewMessage(chatID, message)
	msg.ReplyToMessageID = replyToMessageID
	msg.DisableWebPagePreview = true

	_, err := b.bot.Send(msg)

	return errors.Wrap(err, errMsg)
}

func (b *API) DeleteMessage(chatID int64, messageID int) error {
	const errMsg = "BotAPI.DeleteMessage"

	msg := tgbotapi.NewDeleteMessage(chatID, messageID)
	_, err := b.bot.Request(msg)

	return errors.Wrap(err, errMsg)
}

func (b *API) SendAttachment(attachment tgbotapi.Chattable) error {
	const errMsg = "BotAPI.SendAttachment"

	_, err := b.bot.Send(attachment)

	return errors.Wrap(err, errMsg)
}

func (b *API) GetUpdatesChan() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = updatesTimeout

	return b.bot.GetUpdatesChan(u)
}

func (b *API) Shutdown() {
	slog.Info("Stopping bot...")

	b.bot.StopReceivingUpdates()
}
