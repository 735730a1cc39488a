package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mymmrac/telego"
	"github.com/ypbrand/storebot/internal/config"
	"github.com/ypbrand/storebot/internal/feed"
	"github.com/ypbrand/storebot/internal/logger"
	"github.com/ypbrand/storebot/internal/metrics"
)

// Status is the lifecycle of the session's initial handshake. A session
// moves connecting→connected on a successful identity fetch, or
// connecting→error on failure; it never recovers from error on its own.
type Status string

const (
	StatusConnecting Status = "connecting"
	StatusConnected  Status = "connected"
	StatusError      Status = "error"
)

// Session owns the state of one bot integration: the credential-bound
// client, the polling loop, the connection status, and the feed of recent
// updates for the host application. Sessions are independent; two
// sessions on two tokens share nothing.
type Session struct {
	cfg      config.BotConfig
	store    config.StoreConfig
	logger   *logger.Logger
	metrics  *metrics.Metrics
	onUpdate func(Update)

	updates *feed.Feed
	recent  *feed.Recent

	// api is built from the token on Start; tests inject a mock instead.
	api    BotAPI
	client *Client
	router *Router
	poller *Poller

	mu       sync.RWMutex
	status   Status
	identity *Identity
	cancel   context.CancelFunc
}

// NewSession creates a session. onUpdate, if non-nil, is invoked once per
// inbound update for display purposes only.
func NewSession(cfg config.BotConfig, store config.StoreConfig, feedCfg config.FeedConfig, log *logger.Logger, m *metrics.Metrics, onUpdate func(Update)) *Session {
	return &Session{
		cfg:      cfg,
		store:    store,
		logger:   log,
		metrics:  m,
		onUpdate: onUpdate,
		updates:  feed.New(feedCfg.Capacity, log),
		recent:   feed.NewRecent(feedCfg.RecentSize),
		status:   StatusConnecting,
	}
}

// Start performs the handshake, registers the command table and launches
// the polling loop. A handshake failure leaves the session in StatusError.
func (s *Session) Start(ctx context.Context) error {
	s.setStatus(StatusConnecting, metrics.StateConnecting)

	if s.api == nil {
		bot, err := telego.NewBot(s.cfg.Token)
		if err != nil {
			s.setStatus(StatusError, metrics.StateError)
			return fmt.Errorf("failed to initialize telegram bot: %w", err)
		}
		s.api = NewBotAdapter(bot)
	}

	s.client = NewClient(s.api, s.cfg, s.logger)
	s.router = NewRouter(s.client, NewBuilder(s.store), s.cfg.AdminIDs, s.cfg.AckText, s.observe, s.logger, s.metrics)
	s.poller = NewPoller(s.client, s.router, s.cfg, s.logger, s.metrics)

	identity, err := s.client.Identity(ctx)
	if err != nil {
		s.setStatus(StatusError, metrics.StateError)
		return fmt.Errorf("handshake failed: %w", err)
	}

	s.mu.Lock()
	s.identity = identity
	s.mu.Unlock()
	s.setStatus(StatusConnected, metrics.StateConnected)

	s.logger.InfoCtx(ctx, "telegram bot connected",
		logger.Field{Key: "bot_id", Value: identity.ID},
		logger.Field{Key: "username", Value: identity.Username})

	// Best-effort; the bot works without the menu entries.
	if err := s.client.RegisterCommands(ctx); err != nil {
		s.logger.ErrorCtx(ctx, "failed to register bot commands", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	go s.poller.Run(runCtx)

	return nil
}

// Stop cancels the polling loop and closes the update feed. In-flight
// requests are abandoned; updates fetched but not yet dispatched are
// dropped.
func (s *Session) Stop() {
	s.logger.Info("stopping bot session")

	if s.cancel != nil {
		s.cancel()
	}
	s.updates.Close()
}

// Status returns the connection status of the handshake.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Identity returns the bot identity, or nil before a successful handshake.
func (s *Session) Identity() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Updates returns the feed of inbound updates for display subscribers.
func (s *Session) Updates() *feed.Feed {
	return s.updates
}

// Recent returns the newest-first log of recent updates.
func (s *Session) Recent() []feed.Entry {
	return s.recent.Entries()
}

func (s *Session) setStatus(status Status, state float64) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
	s.metrics.SetConnectionState(state)
}

// observe is the router's observer hook: it records every inbound update
// for display before any routing happens.
func (s *Session) observe(upd Update) {
	entry := feed.Entry{
		ID:         uuid.NewString(),
		UpdateID:   upd.UpdateID(),
		ReceivedAt: time.Now(),
	}

	switch u := upd.(type) {
	case MessageUpdate:
		entry.Kind = "message"
		entry.ChatID = u.ChatID
		entry.UserID = u.UserID
		entry.UserName = u.UserName
		entry.Text = u.Text
	case CallbackUpdate:
		entry.Kind = "callback"
		entry.ChatID = u.ChatID
		entry.UserID = u.UserID
		entry.Text = u.Data
	}

	s.metrics.RecordUpdate(entry.Kind)
	s.recent.Push(entry)

	if err := s.updates.Publish(entry); err != nil {
		s.logger.Warn("failed to publish update to feed",
			logger.Field{Key: "error", Value: err})
	}

	if s.onUpdate != nil {
		s.onUpdate(upd)
	}
}
