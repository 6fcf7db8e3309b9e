// Package events streams game and wallet events to Kafka for downstream audit.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"fishtable/internal/model"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

const (
	defaultWorkers = 4
	defaultBuffer  = 256
)

// Publisher accepts events without blocking the caller.
type Publisher interface {
	Publish(key string, event model.Event)
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
	Workers int
	Buffer  int
}

// KafkaPublisher hands messages to a fixed pool of writers through a bounded
// queue. When the queue is full the event is dropped and counted.
type KafkaPublisher struct {
	writer  messageWriter
	topic   string
	jobs    chan kafka.Message
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Int64
	logger  zerolog.Logger
}

func NewKafkaPublisher(cfg KafkaConfig, logger zerolog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
	return newKafkaPublisher(writer, cfg, logger)
}

func newKafkaPublisher(writer messageWriter, cfg KafkaConfig, logger zerolog.Logger) *KafkaPublisher {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = defaultBuffer
	}

	p := &KafkaPublisher{
		writer: writer,
		topic:  cfg.Topic,
		jobs:   make(chan kafka.Message, buffer),
		logger: logger,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *KafkaPublisher) worker() {
	defer p.wg.Done()
	for msg := range p.jobs {
		p.write(msg)
	}
}

func (p *KafkaPublisher) write(msg kafka.Message) {
	defer p.recover()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error().Err(err).Str("topic", p.topic).Str("key", string(msg.Key)).Msg("failed to publish event")
		return
	}
	p.logger.Debug().Str("topic", p.topic).Str("key", string(msg.Key)).Msg("event published")
}

// Publish queues the event keyed by key, so events for one key stay ordered on a partition.
func (p *KafkaPublisher) Publish(key string, event model.Event) {
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().Err(err).Str("event", event.Type).Msg("failed to marshal event")
		return
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	select {
	case p.jobs <- msg:
	default:
		n := p.dropped.Add(1)
		p.logger.Warn().Str("event", event.Type).Int64("dropped", n).Msg("event queue full, dropping")
	}
}

// Close drains queued events and closes the writer.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("close kafka writer: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) recover() {
	if r := recover(); r != nil {
		p.logger.Error().
			Str("panic", fmt.Sprintf("%v", r)).
			Str("stack_trace", string(debug.Stack())).
			Msg("panic recovered in event publisher")
	}
}

// Nop discards every event. It is used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(string, model.Event) {}

func (Nop) Close() error { return nil }
