package infrastructure

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mateusmacedo/go-dispatch/internal/scene/domain"
	pkgApp "github.com/mateusmacedo/go-dispatch/pkg/application"
)

type gormSceneObjectRepository struct {
	db     *gorm.DB
	logger pkgApp.AppLogger
}

// NewGormSceneObjectRepository abre a conexão e migra a tabela de
// definições de objetos de cena.
func NewGormSceneObjectRepository(dsn string, logger pkgApp.AppLogger) (domain.SceneObjectRepository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(&domain.SceneObject{}); err != nil {
		return nil, err
	}

	return &gormSceneObjectRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormSceneObjectRepository) Save(ctx context.Context, object *domain.SceneObject) error {
	if err := r.db.WithContext(ctx).Create(object).Error; err != nil {
		pkgApp.LogError(ctx, r.logger, "failed to save scene object", err, map[string]interface{}{
			"object_id": object.ID,
		})
		return err
	}

	pkgApp.LogInfo(ctx, r.logger, "scene object saved", map[string]interface{}{
		"object_id": object.ID,
	})
	return nil
}

func (r *gormSceneObjectRepository) FindByID(ctx context.Context, id string) (*domain.SceneObject, error) {
	var object domain.SceneObject

	if err := r.db.WithContext(ctx).First(&object, "id = ?", id).Error; err != nil {
		pkgApp.LogError(ctx, r.logger, "failed to find scene object", err, map[string]interface{}{
			"object_id": id,
		})
		return nil, err
	}
	return &object, nil
}

func (r *gormSceneObjectRepository) FindAll(ctx context.Context) ([]*domain.SceneObject, error) {
	var objects []*domain.SceneObject

	if err := r.db.WithContext(ctx).Find(&objects).Error; err != nil {
		pkgApp.LogError(ctx, r.logger, "failed to list scene objects", err, nil)
		return nil, err
	}
	return objects, nil
}
