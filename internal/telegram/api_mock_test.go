package telegram

import (
	"context"
	"sync"

	"github.com/mymmrac/telego"
	"github.com/ypbrand/storebot/internal/config"
	"github.com/ypbrand/storebot/internal/logger"
)

// fetchResult is one scripted GetUpdates outcome.
type fetchResult struct {
	updates []telego.Update
	err     error
}

// mockBotAPI is a scripted BotAPI implementation for tests. It records
// every call in order and pops fetch results from a queue; once the queue
// is drained, GetUpdates returns empty batches.
type mockBotAPI struct {
	mu sync.Mutex

	user     *telego.User
	getMeErr error

	fetchQueue []fetchResult
	offsets    []int

	sendErr error
	sent    []*telego.SendMessageParams

	commands       *telego.SetMyCommandsParams
	setCommandsErr error

	answerErr error
	answered  []*telego.AnswerCallbackQueryParams

	calls []string
}

func newMockBotAPI() *mockBotAPI {
	return &mockBotAPI{
		user: &telego.User{ID: 42, IsBot: true, FirstName: "YP BRAND", Username: "ypbrand_bot"},
	}
}

func (m *mockBotAPI) GetMe(ctx context.Context) (*telego.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "getMe")
	if m.getMeErr != nil {
		return nil, m.getMeErr
	}
	return m.user, nil
}

func (m *mockBotAPI) GetUpdates(ctx context.Context, params *telego.GetUpdatesParams) ([]telego.Update, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "getUpdates")
	m.offsets = append(m.offsets, params.Offset)
	if len(m.fetchQueue) == 0 {
		return nil, nil
	}
	result := m.fetchQueue[0]
	m.fetchQueue = m.fetchQueue[1:]
	return result.updates, result.err
}

func (m *mockBotAPI) SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "sendMessage")
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	m.sent = append(m.sent, params)
	return &telego.Message{MessageID: len(m.sent)}, nil
}

func (m *mockBotAPI) SetMyCommands(ctx context.Context, params *telego.SetMyCommandsParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "setMyCommands")
	if m.setCommandsErr != nil {
		return m.setCommandsErr
	}
	m.commands = params
	return nil
}

func (m *mockBotAPI) AnswerCallbackQuery(ctx context.Context, params *telego.AnswerCallbackQueryParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "answerCallbackQuery")
	if m.answerErr != nil {
		return m.answerErr
	}
	m.answered = append(m.answered, params)
	return nil
}

func (m *mockBotAPI) callLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *mockBotAPI) sentMessages() []*telego.SendMessageParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*telego.SendMessageParams, len(m.sent))
	copy(out, m.sent)
	return out
}

func (m *mockBotAPI) seenOffsets() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, len(m.offsets))
	copy(out, m.offsets)
	return out
}

func (m *mockBotAPI) answeredQueries() []*telego.AnswerCallbackQueryParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*telego.AnswerCallbackQueryParams, len(m.answered))
	copy(out, m.answered)
	return out
}

// Test fixtures shared by the package tests.

func testLogger() *logger.Logger {
	log, err := logger.New(logger.Config{Level: "error", Format: "text", Output: "stderr"})
	if err != nil {
		panic(err)
	}
	return log
}

func testBotConfig() config.BotConfig {
	return config.BotConfig{
		Token:                "123:test-token",
		AdminIDs:             []int64{100},
		PollTimeoutSeconds:   1,
		PollDelaySeconds:     1,
		RetryDelaySeconds:    1,
		MaxRetryDelaySeconds: 2,
		SendTimeoutSeconds:   1,
		AckText:              "Обрабатываем...",
	}
}

func testStoreConfig() config.StoreConfig {
	return config.StoreConfig{
		WebAppURL:  "https://shop.example",
		SupportURL: "https://t.me/ypbrand_support",
	}
}

func newTestRouter(api *mockBotAPI, observer func(Update)) *Router {
	log := testLogger()
	cfg := testBotConfig()
	client := NewClient(api, cfg, log)
	builder := NewBuilder(testStoreConfig())
	return NewRouter(client, builder, cfg.AdminIDs, cfg.AckText, observer, log, nil)
}

func messageUpdate(id int, userID int64, text string) telego.Update {
	return telego.Update{
		UpdateID: id,
		Message: &telego.Message{
			MessageID: id,
			Text:      text,
			Chat:      telego.Chat{ID: 10, Type: "private"},
			From:      &telego.User{ID: userID, FirstName: "Ivan", Username: "ivan"},
		},
	}
}

func callbackUpdate(id int, userID int64, data string) telego.Update {
	return telego.Update{
		UpdateID: id,
		CallbackQuery: &telego.CallbackQuery{
			ID:      "cb-1",
			From:    telego.User{ID: userID, FirstName: "Ivan"},
			Data:    data,
			Message: &telego.Message{MessageID: id, Chat: telego.Chat{ID: 10, Type: "private"}},
		},
	}
}
