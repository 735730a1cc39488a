package telegram

import (
	"context"
	"testing"

	"github.com/mymmrac/telego"
	telegoapi "github.com/mymmrac/telego/telegoapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(api *mockBotAPI) *Client {
	return NewClient(api, testBotConfig(), testLogger())
}

func TestClient_Identity(t *testing.T) {
	api := newMockBotAPI()
	client := newTestClient(api)

	identity, err := client.Identity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), identity.ID)
	assert.Equal(t, "ypbrand_bot", identity.Username)
	assert.Equal(t, "YP BRAND", identity.Name)
}

func TestClient_IdentityClassifiesErrors(t *testing.T) {
	t.Run("platform error", func(t *testing.T) {
		api := newMockBotAPI()
		api.getMeErr = &telegoapi.Error{ErrorCode: 401, Description: "Unauthorized"}
		client := newTestClient(api)

		_, err := client.Identity(context.Background())
		var platformErr *PlatformError
		require.ErrorAs(t, err, &platformErr)
		assert.Equal(t, 401, platformErr.Code)
		assert.Equal(t, "Unauthorized", platformErr.Description)
	})

	t.Run("connectivity error", func(t *testing.T) {
		api := newMockBotAPI()
		api.getMeErr = assert.AnError
		client := newTestClient(api)

		_, err := client.Identity(context.Background())
		var connErr *ConnectivityError
		require.ErrorAs(t, err, &connErr)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestClient_FetchUpdatesTracksLastID(t *testing.T) {
	api := newMockBotAPI()
	// Update 12 is a kind the bot does not classify, yet it must still
	// count for offset advancement.
	api.fetchQueue = []fetchResult{
		{updates: []telego.Update{
			messageUpdate(11, 20, "/start"),
			{UpdateID: 12},
			callbackUpdate(10, 20, "open_store"),
		}},
	}
	client := newTestClient(api)

	batch, err := client.FetchUpdates(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, batch.Updates, 2)
	assert.Equal(t, 12, batch.LastID)
	assert.False(t, batch.Empty())
}

func TestClient_FetchUpdatesEmptyBatch(t *testing.T) {
	api := newMockBotAPI()
	client := newTestClient(api)

	batch, err := client.FetchUpdates(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, batch.Empty())
	assert.Equal(t, []int{7}, api.seenOffsets())
}

func TestClient_SendBuildsKeyboard(t *testing.T) {
	api := newMockBotAPI()
	client := newTestClient(api)

	msg := Outbound{
		ChatID:    10,
		Text:      "<b>hello</b>",
		ParseMode: telego.ModeHTML,
		Keyboard: [][]Button{
			{
				{Text: "Магазин", WebAppURL: "https://shop.example"},
				{Text: "Поддержка", URL: "https://t.me/support"},
			},
			{
				{Text: "В корзину", CallbackData: "add_to_cart_1"},
			},
		},
	}
	require.NoError(t, client.Send(context.Background(), msg))

	sent := api.sentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, int64(10), sent[0].ChatID.ID)
	assert.Equal(t, "HTML", sent[0].ParseMode)

	markup, ok := sent[0].ReplyMarkup.(*telego.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard, 2)
	require.Len(t, markup.InlineKeyboard[0], 2)

	webAppButton := markup.InlineKeyboard[0][0]
	require.NotNil(t, webAppButton.WebApp)
	assert.Equal(t, "https://shop.example", webAppButton.WebApp.URL)

	urlButton := markup.InlineKeyboard[0][1]
	assert.Nil(t, urlButton.WebApp)
	assert.Equal(t, "https://t.me/support", urlButton.URL)

	callbackButton := markup.InlineKeyboard[1][0]
	assert.Equal(t, "add_to_cart_1", callbackButton.CallbackData)
}

func TestClient_SendWithoutKeyboard(t *testing.T) {
	api := newMockBotAPI()
	client := newTestClient(api)

	require.NoError(t, client.Send(context.Background(), Outbound{ChatID: 10, Text: "plain"}))

	sent := api.sentMessages()
	require.Len(t, sent, 1)
	assert.Nil(t, sent[0].ReplyMarkup)
}

func TestClient_RegisterCommands(t *testing.T) {
	api := newMockBotAPI()
	client := newTestClient(api)

	require.NoError(t, client.RegisterCommands(context.Background()))

	require.NotNil(t, api.commands)
	var names []string
	for _, c := range api.commands.Commands {
		names = append(names, c.Command)
	}
	assert.Equal(t, []string{"start", "catalog", "admin", "orders", "support"}, names)
}

func TestClient_AnswerCallbackSwallowsErrors(t *testing.T) {
	api := newMockBotAPI()
	api.answerErr = assert.AnError
	client := newTestClient(api)

	// Must not panic and must not propagate.
	client.AnswerCallback(context.Background(), "cb-1", "Обрабатываем...")
	assert.Empty(t, api.answeredQueries())
}
