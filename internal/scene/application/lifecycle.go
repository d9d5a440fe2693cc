package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mateusmacedo/go-dispatch/internal/scene/domain"
	pkgApp "github.com/mateusmacedo/go-dispatch/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-dispatch/pkg/domain"
)

var (
	ErrObjectNotFound  = errors.New("scene object not found")
	ErrUnknownContract = errors.New("unknown contract")
)

// ScriptBinder é o lado de escrita do registro de scripts; o despacho
// usa apenas o lado de leitura.
type ScriptBinder interface {
	Bind(target any, binding pkgApp.ScriptBinding)
	Unbind(target any)
}

// ScriptBindingFactory constrói um binding a partir do código-fonte do
// script de um objeto.
type ScriptBindingFactory func(name, source string) (pkgApp.ScriptBinding, error)

// LifecycleService mantém os objetos de cena ativos e origina eventos
// de ciclo de vida através do despachante.
type LifecycleService struct {
	dispatcher  pkgApp.EventDispatcher
	scripts     ScriptBinder
	newBinding  ScriptBindingFactory
	repository  domain.SceneObjectRepository
	idGenerator pkgDomain.IDGenerator[string]
	logger      pkgApp.AppLogger
	engine      *domain.Engine

	mu      sync.RWMutex
	objects map[string]*domain.SceneObject
	order   []string
}

func NewLifecycleService(
	dispatcher pkgApp.EventDispatcher,
	scripts ScriptBinder,
	newBinding ScriptBindingFactory,
	repository domain.SceneObjectRepository,
	idGenerator pkgDomain.IDGenerator[string],
	logger pkgApp.AppLogger,
	engine *domain.Engine,
) *LifecycleService {
	return &LifecycleService{
		dispatcher:  dispatcher,
		scripts:     scripts,
		newBinding:  newBinding,
		repository:  repository,
		idGenerator: idGenerator,
		logger:      logger,
		engine:      engine,
		objects:     make(map[string]*domain.SceneObject),
	}
}

func (s *LifecycleService) Engine() *domain.Engine {
	return s.engine
}

// LoadScene ativa as definições persistidas, vinculando scripts e
// enviando onInit a cada objeto.
func (s *LifecycleService) LoadScene(ctx context.Context) error {
	objects, err := s.repository.FindAll(ctx)
	if err != nil {
		return err
	}

	for _, object := range objects {
		if err := s.activate(ctx, object); err != nil {
			return err
		}
	}

	pkgApp.LogInfo(ctx, s.logger, "scene loaded", map[string]interface{}{
		"objects": len(objects),
	})
	return nil
}

// CreateObject persiste a definição e ativa o objeto na cena.
func (s *LifecycleService) CreateObject(ctx context.Context, name, script string) (*domain.SceneObject, error) {
	object := &domain.SceneObject{
		ID:     s.idGenerator(),
		Name:   name,
		Script: script,
	}

	if err := s.repository.Save(ctx, object); err != nil {
		return nil, err
	}

	if err := s.activate(ctx, object); err != nil {
		return nil, err
	}
	return object, nil
}

func (s *LifecycleService) activate(ctx context.Context, object *domain.SceneObject) error {
	if object.IsScriptable() {
		binding, err := s.newBinding(object.Name, object.Script)
		if err != nil {
			return fmt.Errorf("attach script to object %q: %w", object.Name, err)
		}
		s.scripts.Bind(object, binding)
	}

	s.mu.Lock()
	s.objects[object.ID] = object
	s.order = append(s.order, object.ID)
	s.mu.Unlock()

	return s.dispatcher.SendEvent(ctx, object, domain.Lifecycle, "onInit", s.engine)
}

func (s *LifecycleService) Object(id string) (*domain.SceneObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	object, ok := s.objects[id]
	return object, ok
}

// RaiseEvent envia um evento nomeado de um contrato conhecido a um
// objeto ativo. Erros de resolução e de manipuladores propagam
// inalterados ao chamador.
func (s *LifecycleService) RaiseEvent(ctx context.Context, objectID, contractName, eventName string, args []any) error {
	object, ok := s.Object(objectID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, objectID)
	}

	contract, ok := domain.Contracts[contractName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownContract, contractName)
	}

	return s.dispatcher.SendEvent(ctx, object, contract, eventName, args...)
}

// StepAll avança um quadro e envia onStep a todos os objetos ativos, na
// ordem de ativação. O primeiro erro interrompe o quadro.
func (s *LifecycleService) StepAll(ctx context.Context) error {
	s.mu.RLock()
	objects := make([]*domain.SceneObject, 0, len(s.order))
	for _, id := range s.order {
		objects = append(objects, s.objects[id])
	}
	s.mu.RUnlock()

	s.engine.Frame++
	for _, object := range objects {
		if err := s.dispatcher.SendEvent(ctx, object, domain.Lifecycle, "onStep"); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown envia onDestroy a todos os objetos e desfaz os vínculos de
// script. Erros de manipuladores são registrados, não interrompem o
// encerramento.
func (s *LifecycleService) Shutdown(ctx context.Context) {
	s.mu.Lock()
	objects := make([]*domain.SceneObject, 0, len(s.order))
	for _, id := range s.order {
		objects = append(objects, s.objects[id])
	}
	s.objects = make(map[string]*domain.SceneObject)
	s.order = nil
	s.mu.Unlock()

	for _, object := range objects {
		if err := s.dispatcher.SendEvent(ctx, object, domain.Lifecycle, "onDestroy"); err != nil {
			pkgApp.LogError(ctx, s.logger, "error destroying scene object", err, map[string]interface{}{
				"object_id": object.ID,
			})
		}
		s.scripts.Unbind(object)
	}
}
