// Package bot wires the Telegram transport to the catalog: the long-polling
// loop, command and callback dispatch, the admin upload/delete flow, and file
// re-delivery.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/leonkonan76/MyTelegramBo/catalog"
)

// sender is the slice of the Telegram API the handlers need. tgbotapi's
// concrete client satisfies it; tests substitute a recording fake.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Config struct {
	Token   string
	AdminID int64
	Store   *catalog.Store
	Logger  *slog.Logger

	// LogsLimit caps how many activity entries /logs shows. Zero means 20.
	LogsLimit int
	// PollTimeout is the long-poll timeout in seconds. Zero means 60.
	PollTimeout int
	// Debug enables tgbotapi's own request logging.
	Debug bool
}

type Bot struct {
	api       sender
	client    *tgbotapi.BotAPI
	adminID   int64
	store     *catalog.Store
	logger    *slog.Logger
	sessions  *sessions
	logsLimit int
	pollWait  int
}

func New(cfg Config) (*Bot, error) {
	if cfg.Token == "" {
		return nil, errors.New("bot: missing token")
	}
	if cfg.AdminID == 0 {
		return nil, errors.New("bot: missing admin id")
	}
	if cfg.Store == nil {
		return nil, errors.New("bot: missing catalog store")
	}

	client, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("bot: authorize: %w", err)
	}
	client.Debug = cfg.Debug

	b := newBot(client, cfg)
	b.client = client
	return b, nil
}

// newBot builds a Bot around any sender; tests call it with a fake.
func newBot(api sender, cfg Config) *Bot {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logsLimit := cfg.LogsLimit
	if logsLimit <= 0 {
		logsLimit = 20
	}
	pollWait := cfg.PollTimeout
	if pollWait <= 0 {
		pollWait = 60
	}
	return &Bot{
		api:       api,
		adminID:   cfg.AdminID,
		store:     cfg.Store,
		logger:    logger,
		sessions:  newSessions(),
		logsLimit: logsLimit,
		pollWait:  pollWait,
	}
}

// Run consumes updates until ctx is cancelled. Every update is handled to
// completion; handler failures degrade to user-visible notices and never
// stop the loop.
func (b *Bot) Run(ctx context.Context) error {
	if b.client == nil {
		return errors.New("bot: no telegram client (built without New)")
	}

	b.logger.Info("bot_started", "username", b.client.Self.UserName, "admin_id", b.adminID)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollWait
	updates := b.client.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.client.StopReceivingUpdates()
			b.logger.Info("bot_stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	start := time.Now()
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(update.Message)
	default:
		return
	}
	b.logger.Debug("update_handled", "update_id", update.UpdateID, "elapsed", time.Since(start))
}

func (b *Bot) isAdmin(userID int64) bool {
	return userID == b.adminID
}

// send pushes a chattable and logs transport failures; callers that need the
// error (file delivery) use the sender directly.
func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Warn("send_error", "error", err.Error())
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

// answer acks a callback query, optionally with an alert popup.
func (b *Bot) answer(callbackID, text string, alert bool) {
	cb := tgbotapi.NewCallback(callbackID, text)
	cb.ShowAlert = alert
	if _, err := b.api.Request(cb); err != nil {
		b.logger.Warn("callback_answer_error", "error", err.Error())
	}
}
