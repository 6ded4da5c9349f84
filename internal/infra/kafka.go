// README: Kafka producer publishing flow invocation events off the request path.
package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	kafkaQueueSize    = 256
	kafkaWriteTimeout = 5 * time.Second
)

var (
	ErrPublisherClosed = errors.New("kafka publisher closed")
	ErrPublisherBusy   = errors.New("kafka publish queue full")
)

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher queues messages and writes them from a single background
// goroutine, so Publish never waits on the broker. Close flushes the queue.
type KafkaPublisher struct {
	writer MessageWriter
	logger *zap.Logger
	queue  chan kafka.Message
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewKafkaPublisher(broker, topic string, logger *zap.Logger) *KafkaPublisher {
	return NewKafkaPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}, logger)
}

func NewKafkaPublisherWithWriter(w MessageWriter, logger *zap.Logger) *KafkaPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &KafkaPublisher{
		writer: w,
		logger: logger,
		queue:  make(chan kafka.Message, kafkaQueueSize),
		done:   make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish JSON-encodes value and queues it under key. Broker errors are
// logged by the writer goroutine, not returned.
func (p *KafkaPublisher) Publish(_ context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal kafka payload: %w", err)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.queue <- kafka.Message{Key: []byte(key), Value: payload}:
		return nil
	default:
		return ErrPublisherBusy
	}
}

func (p *KafkaPublisher) run() {
	defer close(p.done)
	for msg := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), kafkaWriteTimeout)
		err := p.writer.WriteMessages(ctx, msg)
		cancel()
		if err != nil {
			p.logger.Warn("kafka write failed", zap.String("key", string(msg.Key)), zap.Error(err))
			continue
		}
		p.logger.Debug("kafka published", zap.String("key", string(msg.Key)), zap.Int("bytes", len(msg.Value)))
	}
}

// Close stops accepting messages, waits for queued ones to be written, and
// closes the writer.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.writer.Close()
}
