package telegram

import (
	"context"
	"sort"
	"time"

	"github.com/ypbrand/storebot/internal/backoff"
	"github.com/ypbrand/storebot/internal/config"
	"github.com/ypbrand/storebot/internal/logger"
	"github.com/ypbrand/storebot/internal/metrics"
)

// Poller drives the client in a fetch/dispatch cycle. It owns the offset
// exclusively and is strictly sequential: a new fetch never starts while
// the previous batch is still being dispatched, and updates within a
// batch are dispatched one at a time in ascending update_id order.
type Poller struct {
	client       *Client
	router       *Router
	logger       *logger.Logger
	metrics      *metrics.Metrics
	successDelay time.Duration
	retryPolicy  *backoff.Policy
}

// NewPoller creates a poller with delays from config.
func NewPoller(client *Client, router *Router, cfg config.BotConfig, log *logger.Logger, m *metrics.Metrics) *Poller {
	return &Poller{
		client:       client,
		router:       router,
		logger:       log,
		metrics:      m,
		successDelay: time.Duration(cfg.PollDelaySeconds) * time.Second,
		retryPolicy: backoff.New(
			time.Duration(cfg.RetryDelaySeconds)*time.Second,
			time.Duration(cfg.MaxRetryDelaySeconds)*time.Second,
		),
	}
}

// Run polls until ctx is cancelled. It never terminates on its own: fetch
// failures back off and retry indefinitely, and a failing dispatch never
// stops the loop or blocks offset advancement for the rest of the batch.
func (p *Poller) Run(ctx context.Context) {
	p.logger.InfoCtx(ctx, "starting long polling for updates")

	offset := 0
	for {
		if ctx.Err() != nil {
			p.logger.Info("polling stopped")
			return
		}

		batch, err := p.client.FetchUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				p.logger.Info("polling stopped")
				return
			}

			p.metrics.RecordPollCycle("failure", 0)
			delay := p.retryPolicy.Next()
			p.logger.WarnCtx(ctx, "failed to fetch updates, backing off",
				logger.Field{Key: "offset", Value: offset},
				logger.Field{Key: "delay", Value: delay},
				logger.Field{Key: "error", Value: err})

			if !p.sleep(ctx, delay) {
				return
			}
			continue
		}

		p.retryPolicy.Reset()
		p.metrics.RecordPollCycle("success", len(batch.Updates))

		if !batch.Empty() {
			// Transport order is not guaranteed within a batch.
			sort.Slice(batch.Updates, func(i, j int) bool {
				return batch.Updates[i].UpdateID() < batch.Updates[j].UpdateID()
			})

			for _, update := range batch.Updates {
				if err := p.router.Dispatch(ctx, update); err != nil {
					p.logger.ErrorCtx(ctx, "failed to handle update", err,
						logger.Field{Key: "update_id", Value: update.UpdateID()})
				}
			}

			offset = batch.LastID + 1
		}

		if !p.sleep(ctx, p.successDelay) {
			return
		}
	}
}

// sleep waits for d or until ctx is cancelled; it reports false on cancel.
func (p *Poller) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		p.logger.Info("polling stopped")
		return false
	case <-timer.C:
		return true
	}
}
