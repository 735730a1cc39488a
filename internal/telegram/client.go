package telegram

import (
	"context"
	"time"

	"github.com/mymmrac/telego"
	"github.com/ypbrand/storebot/internal/config"
	"github.com/ypbrand/storebot/internal/logger"
)

// Identity is the bot's own account metadata from getMe.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Batch is the result of one fetch cycle. LastID is the highest update_id
// Telegram returned, including update kinds the bot does not handle, so
// the polling loop can advance past them. LastID is 0 for an empty batch.
type Batch struct {
	Updates []Update
	LastID  int
}

// Empty reports whether Telegram returned no updates at all.
func (b Batch) Empty() bool { return b.LastID == 0 }

// botCommands is the fixed command table advertised in the bot menu.
var botCommands = []telego.BotCommand{
	{Command: "start", Description: "🚀 Запустить магазин"},
	{Command: "catalog", Description: "📦 Каталог товаров"},
	{Command: "admin", Description: "⚙️ Админ-панель"},
	{Command: "orders", Description: "🛒 Мои заказы"},
	{Command: "support", Description: "💬 Поддержка"},
}

// Client wraps the Bot API surface used by the storefront bot. It owns
// the credential (via the underlying bot) for the lifetime of one session.
type Client struct {
	api         BotAPI
	logger      *logger.Logger
	pollTimeout int
	sendTimeout time.Duration
}

// NewClient creates a client on top of the given Bot API.
func NewClient(api BotAPI, cfg config.BotConfig, log *logger.Logger) *Client {
	return &Client{
		api:         api,
		logger:      log,
		pollTimeout: cfg.PollTimeoutSeconds,
		sendTimeout: time.Duration(cfg.SendTimeoutSeconds) * time.Second,
	}
}

// Identity fetches the bot's account metadata. Errors here are fatal to
// session startup.
func (c *Client) Identity(ctx context.Context) (*Identity, error) {
	user, err := c.api.GetMe(ctx)
	if err != nil {
		return nil, classifyErr("getMe", err)
	}

	return &Identity{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.FirstName,
	}, nil
}

// RegisterCommands advertises the fixed command table to Telegram.
// Idempotent; the caller treats failures as best-effort.
func (c *Client) RegisterCommands(ctx context.Context) error {
	params := &telego.SetMyCommandsParams{Commands: botCommands}
	if err := c.api.SetMyCommands(ctx, params); err != nil {
		return classifyErr("setMyCommands", err)
	}

	c.logger.InfoCtx(ctx, "bot commands registered")
	return nil
}

// FetchUpdates long-polls for the next batch of updates. The server holds
// the request open for up to the configured poll timeout.
func (c *Client) FetchUpdates(ctx context.Context, offset int) (Batch, error) {
	raw, err := c.api.GetUpdates(ctx, &telego.GetUpdatesParams{
		Offset:  offset,
		Timeout: c.pollTimeout,
	})
	if err != nil {
		return Batch{}, classifyErr("getUpdates", err)
	}

	batch := Batch{Updates: make([]Update, 0, len(raw))}
	for _, r := range raw {
		if r.UpdateID > batch.LastID {
			batch.LastID = r.UpdateID
		}
		update, ok := classifyUpdate(r)
		if !ok {
			c.logger.DebugCtx(ctx, "skipping unsupported update kind",
				logger.Field{Key: "update_id", Value: r.UpdateID})
			continue
		}
		batch.Updates = append(batch.Updates, update)
	}

	return batch, nil
}

// Send delivers an outbound message. Failures are logged here and
// reported to the caller, which decides whether they matter; a rejected
// message never aborts the polling loop.
func (c *Client) Send(ctx context.Context, msg Outbound) error {
	sendCtx, cancel := context.WithTimeout(ctx, c.sendTimeout)
	defer cancel()

	if _, err := c.api.SendMessage(sendCtx, msg.toParams()); err != nil {
		err = classifyErr("sendMessage", err)
		c.logger.ErrorCtx(ctx, "failed to send message", err,
			logger.Field{Key: "chat_id", Value: msg.ChatID})
		return err
	}

	return nil
}

// AnswerCallback acknowledges a callback interaction so the client-side
// loading animation stops. Fire-and-forget: failures are logged only.
func (c *Client) AnswerCallback(ctx context.Context, queryID, text string) {
	ackCtx, cancel := context.WithTimeout(ctx, c.sendTimeout)
	defer cancel()

	params := &telego.AnswerCallbackQueryParams{
		CallbackQueryID: queryID,
		Text:            text,
	}
	if err := c.api.AnswerCallbackQuery(ackCtx, params); err != nil {
		c.logger.WarnCtx(ctx, "failed to answer callback query",
			logger.Field{Key: "callback_query_id", Value: queryID},
			logger.Field{Key: "error", Value: classifyErr("answerCallbackQuery", err)})
	}
}
