package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	types "github.com/yungbote/cemse-backend/internal/domain"
	"github.com/yungbote/cemse-backend/internal/platform/logger"
)

const DefaultChannel = "business_plan_events"

type PlanEventBus interface {
	Publish(ctx context.Context, ev types.PlanEvent) error
	StartForwarder(ctx context.Context, onEvent func(ev types.PlanEvent)) error
	Close() error
}

type Options struct {
	Addr        string
	Channel     string
	DialTimeout time.Duration
}

type planEventBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

// NewPlanEventBus connects to redis, or returns a bus that drops every event
// when no address is configured.
func NewPlanEventBus(log *logger.Logger, opts Options) (PlanEventBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		log.Info("REDIS_ADDR not set, plan events disabled")
		return NopBus{}, nil
	}
	ch := strings.TrimSpace(opts.Channel)
	if ch == "" {
		ch = DefaultChannel
	}
	dial := opts.DialTimeout
	if dial <= 0 {
		dial = 5 * time.Second
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: dial,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dial)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &planEventBus{
		log:     log.With("service", "RedisPlanEventBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *planEventBus) Publish(ctx context.Context, ev types.PlanEvent) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis plan event bus not initialized")
	}
	raw, err := encodeEvent(ev)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *planEventBus) StartForwarder(ctx context.Context, onEvent func(ev types.PlanEvent)) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis plan event bus not initialized")
	}
	if onEvent == nil {
		return fmt.Errorf("onEvent callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				ev, err := decodeEvent(m.Payload)
				if err != nil {
					b.log.Warn("bad redis plan event payload", "error", err)
					continue
				}
				onEvent(ev)
			}
		}
	}()

	return nil
}

func (b *planEventBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}

func encodeEvent(ev types.PlanEvent) ([]byte, error) {
	if ev.Type == "" {
		return nil, fmt.Errorf("plan event type required")
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	return json.Marshal(ev)
}

func decodeEvent(payload string) (types.PlanEvent, error) {
	var ev types.PlanEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return types.PlanEvent{}, err
	}
	if ev.Type == "" || ev.PlanID == "" {
		return types.PlanEvent{}, fmt.Errorf("plan event missing type or planId")
	}
	return ev, nil
}

// NopBus accepts and drops every event.
type NopBus struct{}

func (NopBus) Publish(context.Context, types.PlanEvent) error { return nil }

func (NopBus) StartForwarder(ctx context.Context, _ func(types.PlanEvent)) error {
	return fmt.Errorf("plan events disabled: REDIS_ADDR not set")
}

func (NopBus) Close() error { return nil }
