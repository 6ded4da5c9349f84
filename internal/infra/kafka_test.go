package infra

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"freightcalc/internal/modules/flow"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	delay  time.Duration
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	time.Sleep(f.delay)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeWriter) written() []kafka.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]kafka.Message(nil), f.msgs...)
}

func TestKafkaPublisherEncodesJSON(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisherWithWriter(w, nil)

	err := p.Publish(context.Background(), "calculateBestPrice", map[string]any{"status": "ok", "durationMs": 12})
	require.NoError(t, err)
	require.NoError(t, p.Close())

	msgs := w.written()
	require.Len(t, msgs, 1)
	assert.Equal(t, "calculateBestPrice", string(msgs[0].Key))
	var got map[string]any
	require.NoError(t, json.Unmarshal(msgs[0].Value, &got))
	assert.Equal(t, "ok", got["status"])
	assert.True(t, w.closed)
}

func TestKafkaPublisherDoesNotWaitForBroker(t *testing.T) {
	w := &fakeWriter{delay: time.Second}
	p := NewKafkaPublisherWithWriter(w, nil)

	start := time.Now()
	require.NoError(t, p.Publish(context.Background(), "k", "v"))
	assert.Less(t, time.Since(start), 200*time.Millisecond)

	require.NoError(t, p.Close())
	assert.Len(t, w.written(), 1, "Close flushes queued messages")
}

func TestInvokeReturnsBeforeSlowKafkaWrite(t *testing.T) {
	w := &fakeWriter{delay: time.Second}
	p := NewKafkaPublisherWithWriter(w, nil)
	defer p.Close()

	reg := flow.NewRegistry()
	require.NoError(t, reg.Register("instant", "", func(context.Context, json.RawMessage, flow.Context) (any, error) {
		return map[string]bool{"ok": true}, nil
	}))
	svc := flow.NewService(reg, nil, flow.WithEvents(p))

	start := time.Now()
	out, err := svc.Invoke(context.Background(), flow.Invocation{FlowID: "instant", Input: json.RawMessage(`null`)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(out))
	assert.Less(t, time.Since(start), 200*time.Millisecond)
}

func TestKafkaPublisherErrors(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	p := NewKafkaPublisherWithWriter(&fakeWriter{err: errors.New("broker down")}, zap.New(core))

	require.NoError(t, p.Publish(context.Background(), "k", "v"))
	assert.Error(t, p.Publish(context.Background(), "k", make(chan int)))
	require.NoError(t, p.Close())
	assert.Equal(t, 1, logs.FilterMessage("kafka write failed").Len())

	assert.ErrorIs(t, p.Publish(context.Background(), "k", "v"), ErrPublisherClosed)
	assert.NoError(t, p.Close())
}
