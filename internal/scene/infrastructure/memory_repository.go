package infrastructure

import (
	"context"
	"errors"
	"sync"

	"github.com/mateusmacedo/go-dispatch/internal/scene/domain"
	pkgApp "github.com/mateusmacedo/go-dispatch/pkg/application"
)

type InMemorySceneObjectRepository struct {
	mu     sync.RWMutex
	data   map[string]*domain.SceneObject
	logger pkgApp.AppLogger
}

func NewInMemorySceneObjectRepository(logger pkgApp.AppLogger) *InMemorySceneObjectRepository {
	return &InMemorySceneObjectRepository{
		data:   make(map[string]*domain.SceneObject),
		logger: logger,
	}
}

func (r *InMemorySceneObjectRepository) Save(ctx context.Context, object *domain.SceneObject) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[object.ID]; exists {
		pkgApp.LogInfo(ctx, r.logger, "scene object already exists", map[string]interface{}{
			"object_id": object.ID,
		})
		return errors.New("scene object already exists")
	}

	r.data[object.ID] = object

	pkgApp.LogInfo(ctx, r.logger, "scene object saved", map[string]interface{}{
		"object_id": object.ID,
	})
	return nil
}

func (r *InMemorySceneObjectRepository) FindByID(ctx context.Context, id string) (*domain.SceneObject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	object, ok := r.data[id]
	if !ok {
		return nil, errors.New("scene object not found")
	}
	return object, nil
}

func (r *InMemorySceneObjectRepository) FindAll(ctx context.Context) ([]*domain.SceneObject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	objects := make([]*domain.SceneObject, 0, len(r.data))
	for _, object := range r.data {
		objects = append(objects, object)
	}
	return objects, nil
}
