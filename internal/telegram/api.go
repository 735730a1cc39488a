// Package telegram implements the storefront's Telegram bot integration
// using the Telego library: a long-polling loop over the Bot API, routing
// of commands and inline keyboard callbacks, and construction of the
// outbound storefront messages.
//
// Features:
//   - Explicit long polling with an offset owned by the polling loop
//   - Command and callback routing with an admin allow-list
//   - Inline keyboards with web-app deep links into the storefront
//   - Connection status and a recent-updates log for the host application
package telegram

import (
	"context"

	"github.com/mymmrac/telego"
)

// BotAPI defines the Telegram Bot API methods used by the client.
// This interface allows creating mock implementations for testing without
// depending on the concrete telego.Bot implementation.
type BotAPI interface {
	// GetMe returns basic information about the bot.
	GetMe(ctx context.Context) (*telego.User, error)

	// GetUpdates fetches one batch of updates starting at the given offset.
	GetUpdates(ctx context.Context, params *telego.GetUpdatesParams) ([]telego.Update, error)

	// SendMessage sends a text message to a chat.
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)

	// SetMyCommands sets the bot's command list in the bot menu.
	SetMyCommands(ctx context.Context, params *telego.SetMyCommandsParams) error

	// AnswerCallbackQuery acknowledges a callback query so the client-side
	// loading animation stops.
	AnswerCallbackQuery(ctx context.Context, params *telego.AnswerCallbackQueryParams) error
}

// telegoAdapter wraps telego.Bot to implement BotAPI.
type telegoAdapter struct {
	bot *telego.Bot
}

// NewBotAdapter creates a BotAPI from a telego.Bot instance.
func NewBotAdapter(bot *telego.Bot) BotAPI {
	return &telegoAdapter{bot: bot}
}

func (a *telegoAdapter) GetMe(ctx context.Context) (*telego.User, error) {
	return a.bot.GetMe(ctx)
}

func (a *telegoAdapter) GetUpdates(ctx context.Context, params *telego.GetUpdatesParams) ([]telego.Update, error) {
	return a.bot.GetUpdates(ctx, params)
}

func (a *telegoAdapter) SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error) {
	return a.bot.SendMessage(ctx, params)
}

func (a *telegoAdapter) SetMyCommands(ctx context.Context, params *telego.SetMyCommandsParams) error {
	return a.bot.SetMyCommands(ctx, params)
}

func (a *telegoAdapter) AnswerCallbackQuery(ctx context.Context, params *telego.AnswerCallbackQueryParams) error {
	return a.bot.AnswerCallbackQuery(ctx, params)
}
