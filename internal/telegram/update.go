package telegram

import "github.com/mymmrac/telego"

// Update is one inbound event from Telegram. It has exactly two concrete
// variants, MessageUpdate and CallbackUpdate; code that consumes updates
// switches on the variant instead of probing optional fields.
type Update interface {
	// UpdateID returns the strictly increasing identifier assigned by
	// Telegram; it drives offset advancement in the polling loop.
	UpdateID() int

	isUpdate()
}

// MessageUpdate is a plain chat message, usually a command.
type MessageUpdate struct {
	ID       int
	ChatID   int64
	UserID   int64
	UserName string
	Text     string
}

func (u MessageUpdate) UpdateID() int { return u.ID }
func (MessageUpdate) isUpdate()       {}

// CallbackUpdate is a tap on an inline keyboard button carrying opaque
// callback data. QueryID is needed to acknowledge the interaction.
type CallbackUpdate struct {
	ID      int
	ChatID  int64
	UserID  int64
	QueryID string
	Data    string
}

func (u CallbackUpdate) UpdateID() int { return u.ID }
func (CallbackUpdate) isUpdate()       {}

// classifyUpdate converts a raw telego update into one of the two variants.
// Update kinds the bot does not handle (edits, channel posts, etc.) report
// ok=false and are skipped by the caller; their update_id still counts for
// offset advancement.
func classifyUpdate(raw telego.Update) (Update, bool) {
	switch {
	case raw.Message != nil:
		msg := raw.Message
		update := MessageUpdate{
			ID:     raw.UpdateID,
			ChatID: msg.Chat.ID,
			Text:   msg.Text,
		}
		if msg.From != nil {
			update.UserID = msg.From.ID
			update.UserName = msg.From.FirstName
			if update.UserName == "" {
				update.UserName = msg.From.Username
			}
		}
		return update, true

	case raw.CallbackQuery != nil:
		query := raw.CallbackQuery
		update := CallbackUpdate{
			ID:      raw.UpdateID,
			UserID:  query.From.ID,
			QueryID: query.ID,
			Data:    query.Data,
		}
		if query.Message != nil {
			update.ChatID = query.Message.GetChat().ID
		}
		return update, true
	}

	return nil, false
}
