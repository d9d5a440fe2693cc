package scene

import (
	"github.com/go-chi/chi/v5"

	"github.com/mateusmacedo/go-dispatch/internal/scene/application"
	"github.com/mateusmacedo/go-dispatch/internal/scene/domain"
	"github.com/mateusmacedo/go-dispatch/internal/scene/infrastructure"
	pkgApp "github.com/mateusmacedo/go-dispatch/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-dispatch/pkg/domain"
	luaAdapter "github.com/mateusmacedo/go-dispatch/pkg/infrastructure/lua/adapter"
)

// SceneSlice agrega o serviço de ciclo de vida e o handler HTTP da
// fatia de objetos de cena.
type SceneSlice struct {
	service     *application.LifecycleService
	httpHandler *infrastructure.SceneHTTPHandler
}

func NewSceneSlice(
	dispatcher pkgApp.EventDispatcher,
	scripts application.ScriptBinder,
	repository domain.SceneObjectRepository,
	idGenerator pkgDomain.IDGenerator[string],
	logger pkgApp.AppLogger,
	engine *domain.Engine,
) *SceneSlice {
	newBinding := func(name, source string) (pkgApp.ScriptBinding, error) {
		return luaAdapter.NewScriptBinding(name, source)
	}

	service := application.NewLifecycleService(dispatcher, scripts, newBinding, repository, idGenerator, logger, engine)
	httpHandler := infrastructure.NewSceneHTTPHandler(service)

	return &SceneSlice{
		service:     service,
		httpHandler: httpHandler,
	}
}

func (s *SceneSlice) Service() *application.LifecycleService {
	return s.service
}

func (s *SceneSlice) RegisterRoutes(router *chi.Mux) {
	s.httpHandler.RegisterRoutes(router)
}
