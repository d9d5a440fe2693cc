package adapter

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/mateusmacedo/go-dispatch/pkg/application"
	"github.com/mateusmacedo/go-dispatch/pkg/domain"
	"github.com/mateusmacedo/go-dispatch/pkg/infrastructure"
)

const eventNameMetadataKey = "event_name"

// PayloadDecoder converte o payload bruto de uma mensagem na lista de
// argumentos do evento.
type PayloadDecoder func(eventName string, payload []byte) ([]any, error)

// WatermillEventSource consome eventos de um canal Watermill em memória
// e os entrega, de forma síncrona, a cada alvo anexado.
type WatermillEventSource struct {
	pubSub     *gochannel.GoChannel
	dispatcher application.EventDispatcher
	contract   *domain.Contract
	decode     PayloadDecoder
	logger     application.AppLogger

	mu      sync.RWMutex
	targets []any
}

func NewWatermillEventSource(pubSub *gochannel.GoChannel, dispatcher application.EventDispatcher, contract *domain.Contract, decode PayloadDecoder, logger application.AppLogger) *WatermillEventSource {
	return &WatermillEventSource{
		pubSub:     pubSub,
		dispatcher: dispatcher,
		contract:   contract,
		decode:     decode,
		logger:     logger,
	}
}

// Attach registra um alvo que passa a receber os eventos consumidos.
func (s *WatermillEventSource) Attach(target any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets = append(s.targets, target)
}

// Emit publica um evento no tópico para consumo posterior.
func (s *WatermillEventSource) Emit(_ context.Context, topic, eventName string, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(eventNameMetadataKey, eventName)
	return s.pubSub.Publish(topic, msg)
}

// Run consome o tópico até o contexto ser cancelado, despachando cada
// mensagem para todos os alvos anexados.
func (s *WatermillEventSource) Run(ctx context.Context, topic string) error {
	messages, err := s.pubSub.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	for msg := range messages {
		s.deliver(ctx, msg)
	}
	return nil
}

func (s *WatermillEventSource) deliver(ctx context.Context, msg *message.Message) {
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
