package adapter_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateusmacedo/go-dispatch/pkg/domain"
	"github.com/mateusmacedo/go-dispatch/pkg/infrastructure"
	"github.com/mateusmacedo/go-dispatch/pkg/infrastructure/channels/adapter"
)

type hit struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type probe struct {
	mu    sync.Mutex
	steps int
	hits  []*hit
}

func (p *probe) Step(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.steps++
	return nil
}

func (p *probe) Hit(_ context.Context, h *hit) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hits = append(p.hits, h)
	return nil
}

func (p *probe) stepCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.steps
}

func (p *probe) hitCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.hits)
}

type probeHandler interface {
	Step(ctx context.Context) error
	Hit(ctx context.Context, h *hit) error
}

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, map[string]interface{})  {}
func (nopLogger) Debug(context.Context, string, map[string]interface{}) {}
func (nopLogger) Error(context.Context, string, map[string]interface{}) {}
func (nopLogger) Trace(context.Context, string, map[string]interface{}) {}

func probeContract() *domain.Contract {
	return domain.NewContract("Probe",
		domain.Method0("onStep", func(ctx context.Context, h probeHandler) error {
			return h.Step(ctx)
		}),
		domain.Method1("onHit", "hit", func(ctx context.Context, h probeHandler, ht *hit) error {
			return h.Hit(ctx, ht)
		}),
	)
}

func decodeProbeArgs(eventName string, payload []byte) ([]any, error) {
	if eventName != "onHit" {
		return nil, nil
	}
	h := &hit{}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, h); err != nil {
			return nil, err
		}
	}
	return []any{h}, nil
}

func TestWatermillEventSourceRoundTrip(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	dispatcher := infrastructure.NewEventDispatcher(infrastructure.NewResolver(), nil, nopLogger{})

	source := adapter.NewWatermillEventSource(pubSub, dispatcher, probeContract(), decodeProbeArgs, nopLogger{})
	target := &probe{}
	source.Attach(target)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = source.Run(ctx, "probe.events")
	}()

	// o subscriber do gochannel precisa estar pronto antes do publish
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, source.Emit(ctx, "probe.events", "onStep", nil))
	require.NoError(t, source.Emit(ctx, "probe.events", "onStep", nil))

	payload, err := json.Marshal(hit{X: 1.5, Y: -2.25})
	require.NoError(t, err)
	require.NoError(t, source.Emit(ctx, "probe.events", "onHit", payload))

	require.Eventually(t, func() bool {
		return target.stepCount() == 2 && target.hitCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, 1.5, target.hits[0].X)
	assert.Equal(t, -2.25, target.hits[0].Y)
}

func TestWatermillEventSourceDeliversToAllTargets(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	dispatcher := infrastructure.NewEventDispatcher(infrastructure.NewResolver(), nil, nopLogger{})

	source := adapter.NewWatermillEventSource(pubSub, dispatcher, probeContract(), decodeProbeArgs, nopLogger{})
	first := &probe{}
	second := &probe{}
	source.Attach(first)
	source.Attach(second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = source.Run(ctx, "probe.events")
	}()

	time.Sleep(100 * time.Millisecond)

	require.NoError(t, source.Emit(ctx, "probe.events", "onStep", nil))

	require.Eventually(t, func() bool {
		return first.stepCount() == 1 && second.stepCount() == 1
	}, 2*time.Second, 10*time.Millisecond)
}
