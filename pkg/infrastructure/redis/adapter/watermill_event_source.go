package adapter

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/mateusmacedo/go-dispatch/pkg/application"
	"github.com/mateusmacedo/go-dispatch/pkg/domain"
	"github.com/mateusmacedo/go-dispatch/pkg/infrastructure"
)

const eventNameMetadataKey = "event_name"

// PayloadDecoder converte o payload bruto de uma mensagem na lista de
// argumentos do evento.
type PayloadDecoder func(eventName string, payload []byte) ([]any, error)

// RedisEventSource consome eventos de um stream Redis e os entrega, de
// forma síncrona, a cada alvo anexado.
type RedisEventSource struct {
	publisher  *redisstream.Publisher
	subscriber *redisstream.Subscriber
	dispatcher application.EventDispatcher
	contract   *domain.Contract
	decode     PayloadDecoder
	logger     application.AppLogger

	mu      sync.RWMutex
	targets []any
}

func NewRedisEventSource(publisher *redisstream.Publisher, subscriber *redisstream.Subscriber, dispatcher application.EventDispatcher, contract *domain.Contract, decode PayloadDecoder, logger application.AppLogger) *RedisEventSource {
	return &RedisEventSource{
		publisher:  publisher,
		subscriber: subscriber,
		dispatcher: dispatcher,
		contract:   contract,
		decode:     decode,
		logger:     logger,
	}
}

func (s *RedisEventSource) Attach(target any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets = append(s.targets, target)
}

func (s *RedisEventSource) Emit(_ context.Context, topic, eventName string, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(eventNameMetadataKey, eventName)
	return s.publisher.Publish(topic, msg)
}

func (s *RedisEventSource) Run(ctx context.Context, topic string) error {
	messages, err := s.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	for msg := range messages {
		s.deliver(ctx, msg)
	}
	return nil
}

func (s *RedisEventSource) deliver(ctx context.Context, msg *message.Message) {
	eventName := msg.Metadata.Get(eventNameMetadataKey)

	args, err := s.decode(eventName, msg.Payload)
	if err != nil {
		infrastructure.LogError(ctx, s.logger, "error decoding event payload", err, map[string]interface{}{
			"event_name": eventName,
		})
		msg.Nack()
		return
	}

	s.mu.RLock()
	targets := make([]any, len(s.targets))
	copy(targets, s.targets)
	s.mu.RUnlock()

	for _, target := range targets {
		if err := s.dispatcher.SendEvent(ctx, target, s.contract, eventName, args...); err != nil {
			infrastructure.LogError(ctx, s.logger, "error dispatching event", err, map[string]interface{}{
				"contract":   s.contract.Name(),
				"event_name": eventName,
			})
			msg.Nack()
			return
		}
	}

	infrastructure.LogInfo(ctx, s.logger, "event dispatched", map[string]interface{}{
		"contract":   s.contract.Name(),
		"event_name": eventName,
	})
	msg.Ack()
}
