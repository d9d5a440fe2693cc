package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"

	sceneApp "github.com/mateusmacedo/go-dispatch/internal/scene/application"
	sceneDomain "github.com/mateusmacedo/go-dispatch/internal/scene/domain"
	pkgInfra "github.com/mateusmacedo/go-dispatch/pkg/infrastructure"
	"github.com/mateusmacedo/go-dispatch/pkg/infrastructure/redis/adapter"
	watermillLogAdapter "github.com/mateusmacedo/go-dispatch/pkg/infrastructure/watermill/adapter"
	zapAdapter "github.com/mateusmacedo/go-dispatch/pkg/infrastructure/zaplogger/adapter"
)

func main() {
	// Criação de um novo logger
	appLogger, err := zapAdapter.NewZapAppLogger()
	if err != nil {
		panic(err)
	}

	// Configuração do adaptador de logger
	logger := watermillLogAdapter.NewWatermillLoggerAdapter(appLogger)

	// Configuração do Redis
	redisClient := adapter.NewRedisClient()
	defer redisClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: redisClient,
	}, logger)
	if err != nil {
		appLogger.Error(ctx, "error creating publisher", map[string]interface{}{
			"error": err,
		})
		return
	}
	defer publisher.Close()

	subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
		Client:        redisClient,
		ConsumerGroup: "scene_group",
		Consumer:      "scene_consumer",
	}, logger)
	if err != nil {
		appLogger.Error(ctx, "error creating subscriber", map[string]interface{}{
			"error": err,
		})
		return
	}
	defer subscriber.Close()

	// Núcleo de despacho
	registry := pkgInfra.NewInMemoryScriptRegistry()
	dispatcher := pkgInfra.NewEventDispatcher(pkgInfra.NewResolver(), registry, appLogger)

	engine := &sceneDomain.Engine{Name: "redis-demo"}

	cursor := &sceneDomain.SceneObject{
		ID:   "cursor",
		Name: "cursor",
	}

	source := adapter.NewRedisEventSource(publisher, subscriber, dispatcher, sceneDomain.Pointer, sceneApp.NewPayloadDecoder(engine), appLogger)
	source.Attach(cursor)

	go func() {
		if err := source.Run(ctx, "scene.pointer"); err != nil {
			appLogger.Error(ctx, "error running event source", map[string]interface{}{
				"error": err,
			})
		}
	}()

	hit, err := json.Marshal(sceneDomain.PointerHit{X: 0.42, Y: 0.17})
	if err != nil {
		panic(err)
	}

	if err := source.Emit(ctx, "scene.pointer", "onPointerEnter", hit); err != nil {
		appLogger.Error(ctx, "error emitting event", map[string]interface{}{
			"error": err,
		})
		return
	}

	if err := source.Emit(ctx, "scene.pointer", "onPointerExit", hit); err != nil {
		appLogger.Error(ctx, "error emitting event", map[string]interface{}{
			"error": err,
		})
		return
	}

	// Espera breve para permitir o processamento das mensagens
	time.Sleep(3 * time.Second)

	appLogger.Info(ctx, "pointer round trip finished", map[string]interface{}{
		"enter_count": cursor.EnterCount,
		"exit_count":  cursor.ExitCount,
	})
}
