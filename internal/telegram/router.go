package telegram

import (
	"context"
	"strings"

	"github.com/ypbrand/storebot/internal/logger"
	"github.com/ypbrand/storebot/internal/metrics"
)

// Command table. Matching is case-sensitive and prefix-based, so
// "/start@ypbrand_bot extra args" still routes to the welcome scenario.
const (
	cmdStart   = "/start"
	cmdAdmin   = "/admin"
	cmdCatalog = "/catalog"
	cmdOrders  = "/orders"
	cmdSupport = "/support"
)

// Callback data table.
const (
	callbackOpenAdmin       = "open_admin"
	callbackOpenStore       = "open_store"
	callbackAddToCartPrefix = "add_to_cart_"
)

// Router dispatches one inbound update at a time to the matching handler.
// It is state-free: every call is a pure mapping from the update to at
// most one outbound send (plus the callback acknowledgment).
type Router struct {
	client   *Client
	builder  *Builder
	admins   map[int64]struct{}
	ackText  string
	observer func(Update)
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

// NewRouter creates a router. observer, if non-nil, is invoked exactly
// once per update before any routing happens; it is display-only and must
// never be relied on for correctness.
func NewRouter(client *Client, builder *Builder, adminIDs []int64, ackText string, observer func(Update), log *logger.Logger, m *metrics.Metrics) *Router {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	return &Router{
		client:   client,
		builder:  builder,
		admins:   admins,
		ackText:  ackText,
		observer: observer,
		logger:   log,
		metrics:  m,
	}
}

func (r *Router) isAdmin(userID int64) bool {
	_, ok := r.admins[userID]
	return ok
}

// Dispatch routes a single update. The observer fires first, regardless
// of what the update matches or whether handling succeeds.
func (r *Router) Dispatch(ctx context.Context, upd Update) error {
	if r.observer != nil {
		r.observer(upd)
	}

	var err error
	switch u := upd.(type) {
	case MessageUpdate:
		err = r.dispatchMessage(ctx, u)
	case CallbackUpdate:
		err = r.dispatchCallback(ctx, u)
	}

	if err != nil {
		r.metrics.RecordDispatch("error")
		r.metrics.RecordSendFailure()
		return err
	}

	r.metrics.RecordDispatch("ok")
	return nil
}

func (r *Router) dispatchMessage(ctx context.Context, u MessageUpdate) error {
	switch {
	case strings.HasPrefix(u.Text, cmdStart):
		return r.client.Send(ctx, r.builder.Welcome(u.ChatID, u.UserName))

	case strings.HasPrefix(u.Text, cmdAdmin):
		if !r.isAdmin(u.UserID) {
			r.logger.WarnCtx(ctx, "admin command refused",
				logger.Field{Key: "user_id", Value: u.UserID},
				logger.Field{Key: "chat_id", Value: u.ChatID})
			return r.client.Send(ctx, r.builder.AdminRefused(u.ChatID))
		}
		return r.client.Send(ctx, r.builder.Admin(u.ChatID))

	case strings.HasPrefix(u.Text, cmdCatalog):
		return r.client.Send(ctx, r.builder.Catalog(u.ChatID))

	case strings.HasPrefix(u.Text, cmdOrders):
		return r.client.Send(ctx, r.builder.Orders(u.ChatID))

	case strings.HasPrefix(u.Text, cmdSupport):
		return r.client.Send(ctx, r.builder.Support(u.ChatID))

	default:
		return r.client.Send(ctx, r.builder.UnknownCommand(u.ChatID))
	}
}

func (r *Router) dispatchCallback(ctx context.Context, u CallbackUpdate) error {
	// Acknowledge first so the button stops showing a pending state,
	// whatever the data maps to.
	r.client.AnswerCallback(ctx, u.QueryID, r.ackText)

	switch {
	case u.Data == callbackOpenAdmin:
		if !r.isAdmin(u.UserID) {
			r.logger.WarnCtx(ctx, "admin callback refused",
				logger.Field{Key: "user_id", Value: u.UserID},
				logger.Field{Key: "chat_id", Value: u.ChatID})
			return r.client.Send(ctx, r.builder.AdminRefused(u.ChatID))
		}
		return r.client.Send(ctx, r.builder.WebApp(u.ChatID, WebAppAdmin))

	case u.Data == callbackOpenStore:
		return r.client.Send(ctx, r.builder.WebApp(u.ChatID, WebAppStore))

	case strings.HasPrefix(u.Data, callbackAddToCartPrefix):
		productID := strings.TrimPrefix(u.Data, callbackAddToCartPrefix)
		if productID == "" {
			r.logger.WarnCtx(ctx, "add_to_cart callback with empty product id",
				logger.Field{Key: "user_id", Value: u.UserID})
		}
		r.logger.DebugCtx(ctx, "product added to cart via bot",
			logger.Field{Key: "product_id", Value: productID},
			logger.Field{Key: "user_id", Value: u.UserID})
		return r.client.Send(ctx, r.builder.CartAdded(u.ChatID))

	default:
		// No reply for unmatched data, but keep it visible to operators.
		r.logger.DebugCtx(ctx, "unmatched callback data dropped",
			logger.Field{Key: "data", Value: u.Data},
			logger.Field{Key: "user_id", Value: u.UserID})
		return nil
	}
}
