package main

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	sceneApp "github.com/mateusmacedo/go-dispatch/internal/scene/application"
	sceneDomain "github.com/mateusmacedo/go-dispatch/internal/scene/domain"
	pkgInfra "github.com/mateusmacedo/go-dispatch/pkg/infrastructure"
	"github.com/mateusmacedo/go-dispatch/pkg/infrastructure/channels/adapter"
	luaAdapter "github.com/mateusmacedo/go-dispatch/pkg/infrastructure/lua/adapter"
	watermillLogAdapter "github.com/mateusmacedo/go-dispatch/pkg/infrastructure/watermill/adapter"
	zapAdapter "github.com/mateusmacedo/go-dispatch/pkg/infrastructure/zaplogger/adapter"
)

const rotatorScript = `
steps = 0

function onInit(engine)
    print("rotator ready")
end

function onStep()
    steps = steps + 1
end
`

func main() {
	// Criação de um novo logger
	appLogger, err := zapAdapter.NewZapAppLogger()
	if err != nil {
		panic(err)
	}

	// Configuração do adaptador de logger
	logger := watermillLogAdapter.NewWatermillLoggerAdapter(appLogger)

	// Configuração do publisher e subscriber em memória
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, logger)

	// Núcleo de despacho
	registry := pkgInfra.NewInMemoryScriptRegistry()
	dispatcher := pkgInfra.NewEventDispatcher(pkgInfra.NewResolver(), registry, appLogger)

	engine := &sceneDomain.Engine{Name: "channels-demo"}

	// Objeto de cena com manipuladores nativos e de script
	rotator := &sceneDomain.SceneObject{
		ID:     "rotator",
		Name:   "rotator",
		Script: rotatorScript,
	}

	binding, err := luaAdapter.NewScriptBinding(rotator.Name, rotator.Script)
	if err != nil {
		panic(err)
	}
	registry.Bind(rotator, binding)

	// Fonte de eventos em memória alimentando o despachante
	source := adapter.NewWatermillEventSource(pubSub, dispatcher, sceneDomain.Lifecycle, sceneApp.NewPayloadDecoder(engine), appLogger)
	source.Attach(rotator)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		if err := source.Run(ctx, "scene.lifecycle"); err != nil {
			appLogger.Error(ctx, "error running event source", map[string]interface{}{
				"error": err,
			})
		}
	}()

	// Origina os eventos de ciclo de vida
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
	time.Sleep(1 * time.Second)

	appLogger.Info(ctx, "lifecycle round trip finished", map[string]interface{}{
		"init_count": rotator.InitCount,
		"step_count": rotator.StepCount,
	})
}
