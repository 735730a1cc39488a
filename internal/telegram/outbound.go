package telegram

import "github.com/mymmrac/telego"

// Outbound is a message to be sent to a chat: a text body, an optional
// parse mode and an optional inline keyboard of ordered button rows.
type Outbound struct {
	ChatID    int64
	Text      string
	ParseMode string
	Keyboard  [][]Button
}

// Button carries display text and exactly one action: open an external
// link, open the storefront web-app at a URL, or send callback data back
// to the bot.
type Button struct {
	Text         string
	URL          string
	WebAppURL    string
	CallbackData string
}

// toParams converts the message to Telego send parameters.
func (m Outbound) toParams() *telego.SendMessageParams {
	params := &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: m.ChatID},
		Text:      m.Text,
		ParseMode: m.ParseMode,
	}

	if len(m.Keyboard) == 0 {
		return params
	}

	markup := &telego.InlineKeyboardMarkup{
		InlineKeyboard: make([][]telego.InlineKeyboardButton, len(m.Keyboard)),
	}
	for i, row := range m.Keyboard {
		buttons := make([]telego.InlineKeyboardButton, len(row))
		for j, button := range row {
			buttons[j] = telego.InlineKeyboardButton{
				Text:         button.Text,
				URL:          button.URL,
				CallbackData: button.CallbackData,
			}
			if button.WebAppURL != "" {
				buttons[j].WebApp = &telego.WebAppInfo{URL: button.WebAppURL}
			}
		}
		markup.InlineKeyboard[i] = buttons
	}
	params.ReplyMarkup = markup

	return params
}
