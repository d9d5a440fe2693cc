package main

import (
	"context"
	"log"
	"time"

	"github.com/Shopify/sarama"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"

	sceneApp "github.com/mateusmacedo/go-dispatch/internal/scene/application"
	sceneDomain "github.com/mateusmacedo/go-dispatch/internal/scene/domain"
	pkgInfra "github.com/mateusmacedo/go-dispatch/pkg/infrastructure"
	"github.com/mateusmacedo/go-dispatch/pkg/infrastructure/kafka/adapter"
	zapAdapter "github.com/mateusmacedo/go-dispatch/pkg/infrastructure/zaplogger/adapter"
)

func main() {
	// Configuração do logger do Watermill
	logger := watermill.NewStdLogger(false, false)

	// Configuração do marshaler
	marshaler := kafka.DefaultMarshaler{}

	// Configuração do publisher para Kafka
	publisherConfig := kafka.PublisherConfig{
		Brokers:   []string{"localhost:9092"},
		Marshaler: marshaler,
	}

	publisher, err := kafka.NewPublisher(publisherConfig, logger)
	if err != nil {
		log.Fatalf("failed to create Kafka publisher: %v", err)
	}
	defer publisher.Close()

	// Configuração do subscriber para Kafka
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V1_0_0_0
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.ClientID = "watermill"

	subscriberConfig := kafka.SubscriberConfig{
		Brokers:               []string{"localhost:9092"},
		Unmarshaler:           marshaler,
		ConsumerGroup:         "scene_consumer_group",
		OverwriteSaramaConfig: saramaConfig,
		InitializeTopicDetails: &sarama.TopicDetail{
			NumPartitions:     1,
			ReplicationFactor: 1,
		},
	}

	subscriber, err := kafka.NewSubscriber(subscriberConfig, logger)
	if err != nil {
		log.Fatalf("failed to create Kafka subscriber: %v", err)
	}
	defer subscriber.Close()

	// Inicialize o tópico se ainda não existir
	if err := subscriber.SubscribeInitialize("scene.lifecycle"); err != nil {
		log.Fatalf("failed to initialize Kafka topic 'scene.lifecycle': %v", err)
	}

	appLogger, err := zapAdapter.NewZapAppLogger()
	if err != nil {
		panic(err)
	}

	// Núcleo de despacho
	registry := pkgInfra.NewInMemoryScriptRegistry()
	dispatcher := pkgInfra.NewEventDispatcher(pkgInfra.NewResolver(), registry, appLogger)

	engine := &sceneDomain.Engine{Name: "kafka-demo"}

	cube := &sceneDomain.SceneObject{
		ID:   "cube",
		Name: "cube",
	}

	source := adapter.NewKafkaEventSource(publisher, subscriber, dispatcher, sceneDomain.Lifecycle, sceneApp.NewPayloadDecoder(engine), appLogger)
	source.Attach(cube)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	go func() {
		if err := source.Run(ctx, "scene.lifecycle"); err != nil {
			appLogger.Error(ctx, "error running event source", map[string]interface{}{
				"error": err,
			})
		}
	}()

	if err := source.Emit(ctx, "scene.lifecycle", "onInit", nil); err != nil {
		appLogger.Error(ctx, "error emitting event", map[string]interface{}{
			"error": err,
		})
		return
	}

	for i := 0; i < 3; i++ {
		if err := source.Emit(ctx, "scene.lifecycle", "onStep", nil); err != nil {
			appLogger.Error(ctx, "error emitting event", map[string]interface{}{
				"error": err,
			})
			return
		}
	}

	// Espera breve para permitir o processamento das mensagens
	time.Sleep(3 * time.Second)

	appLogger.Info(ctx, "lifecycle round trip finished", map[string]interface{}{
		"init_count": cube.InitCount,
		"step_count": cube.StepCount,
	})
}
