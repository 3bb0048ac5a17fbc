package emoji

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"mastoemoji2tg/internal/config"
	"mastoemoji2tg/internal/domain"
	"mastoemoji2tg/internal/mastodon"
	"mastoemoji2tg/internal/service/catalog"
)

const (
	queueSize      = 50
	requestTimeout = 30 * time.Second
)

type (
	botAPI interface {
		SendMessage(chatID int64, message string) (tgbotapi.Message, error)
		SendReply(chatID int64, replyToMessageID int, message string) error
		DeleteMessage(chatID int64, messageID int) error
		SendAttachment(attachment tgbotapi.Chattable) error
	}
	downloader interface {
		DownloadStatic(ctx context.Context, emoji *mastodon.CustomEmoji) (string, error)
	}
)

type Handler struct {
	cfg        *config.Config
	bot        botAPI
	downloader downloader
	catalog    *catalog.Catalog

	reqQueue chan domain.UserRequest

	activityCache *cache.Cache
}

func New(cfg *config.Config, bot botAPI, dl downloader, cat *catalog.Catalog) *Handler {
	h := &Handler{
		cfg:           cfg,
		bot:           bot,
		downloader:    dl,
		catalog:       cat,
		reqQueue:      make(chan domain.UserRequest, queueSize),
		activityCache: cache.New(cache.NoExpiration, cache.NoExpiration),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		go h.emojiWorker()
	}

	return h
}

// HandleMessage queues the request carried by message and blocks until a
// worker has answered it.
func (h *Handler) HandleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatKey := strconv.FormatInt(message.Chat.ID, 10)

	query, err := ParseQuery(message.Text, h.cfg.DefaultInstance)
	if err != nil {
		_ = h.bot.SendReply(message.Chat.ID, message.MessageID,
			"Send an instance name, optionally followed by :shortcode: or ?search")

		return
	}

	if err = h.activityCache.Add(chatKey, struct{}{}, cache.NoExpiration); err != nil {
		_, _ = h.bot.SendMessage(message.Chat.ID, "You have another request being processed, please wait")

		return
	}
	defer h.activityCache.Delete(chatKey)

	req := domain.UserRequest{
		ChatID:           message.Chat.ID,
		ReplyToMessageID: message.MessageID,
		Query:            query,
		ErrChan:          make(chan error),
	}

	select {
	case h.reqQueue <- req:
	case <-ctx.Done():
		return
	}

	msg, err := h.bot.SendMessage(req.ChatID, "Looking up "+query.Instance+"...")
	if err == nil {
		defer h.bot.DeleteMessage(req.ChatID, msg.MessageID)
	}

	err = <-req.ErrChan
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, catalog.ErrEmojiNotFound):
		_ = h.bot.SendReply(req.ChatID, req.ReplyToMessageID,
			"No emoji :"+query.Term+": on "+query.Instance)
	case errors.Is(err, mastodon.ErrMissingField), errors.Is(err, mastodon.ErrTypeMismatch),
		errors.Is(err, mastodon.ErrMalformedJSON):
		_ = h.bot.SendReply(req.ChatID, req.ReplyToMessageID,
			query.Instance+" returned an unexpected emoji list")

		slog.Warn(
			"EmojiHandler.HandleMessage",
			slog.String("instance", query.Instance),
			slog.Any("err", err),
		)
	default:
		_ = h.bot.SendReply(req.ChatID, req.ReplyToMessageID,
			"Could not load custom emojis from "+query.Instance)

		slog.Error(
			"EmojiHandler.HandleMessage",
			slog.Int64("chatID", req.ChatID),
			slog.String("instance", query.Instance),
			slog.String("term", query.Term),
			slog.Any("err", err),
		)
	}
}

// Refresh drops the cached emoji list of the instance named in args, or of
// the default instance when args is empty.
func (h *Handler) Refresh(message *tgbotapi.Message, args string) {
	instance := strings.TrimSpace(args)
	if instance == "" {
		instance = h.cfg.DefaultInstance
	}

	host, err := h.catalog.Invalidate(instance)
	if err != nil {
		_ = h.bot.SendReply(message.Chat.ID, message.MessageID, "Usage: /refresh <instance>")

		return
	}

	_ = h.bot.SendReply(message.Chat.ID, message.MessageID,
		"Custom emojis of "+host+" will be reloaded on the next request")
}

func (h *Handler) emojiWorker() {
	for req := range h.reqQueue {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)

		err := h.processQuery(ctx, req)
		if err != nil {
			req.ErrChan <- err
		}
		close(req.ErrChan)

		cancel()
	}
}

func (h *Handler) processQuery(ctx context.Context, req domain.UserRequest) error {
	const errMsg = "processQuery"

	var err error

	switch req.Query.Kind {
	case domain.QueryOverview:
		err = h.sendOverview(ctx, req)
	case domain.QuerySearch:
		err = h.sendSearch(ctx, req)
	case domain.QueryEmoji:
		err = h.sendEmoji(ctx, req)
	default:
		err = errors.Errorf("unknown query kind %d", req.Query.Kind)
	}

	return errors.Wrap(err, errMsg)
}

func (h *Handler) sendOverview(ctx context.Context, req domain.UserRequest) error {
	emojis, err := h.catalog.Emojis(ctx, req.Query.Instance)
	if err != nil {
		return err
	}

	text := formatOverview(req.Query.Instance, len(emojis), catalog.Categories(emojis))

	return h.bot.SendReply(req.ChatID, req.ReplyToMessageID, text)
}

func (h *Handler) sendSearch(ctx context.Context, req domain.UserRequest) error {
	found, err := h.catalog.Search(ctx, req.Query.Instance, req.Query.Term)
	if err != nil {
		return err
	}

	text := formatSearch(req.Query.Instance, req.Query.Term, found)

	return h.bot.SendReply(req.ChatID, req.ReplyToMessageID, text)
}

func (h *Handler) sendEmoji(ctx context.Context, req domain.UserRequest) error {
	e, err := h.catalog.Lookup(ctx, req.Query.Instance, req.Query.Term)
	if err != nil {
		return err
	}

	filePath, err := h.downloader.DownloadStatic(ctx, e)
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(filePath)
	}()

	attachment := tgbotapi.NewDocument(req.ChatID, tgbotapi.FilePath(filePath))
	attachment.ReplyToMessageID = req.ReplyToMessageID
	attachment.Caption = caption(req.Query.Instance, e)

	return h.bot.SendAttachment(attachment)
}
