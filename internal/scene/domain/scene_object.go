package domain

import (
	"context"
	"errors"
)

// Engine é o contexto de execução entregue aos manipuladores de ciclo
// de vida, representando o subsistema que origina os eventos.
type Engine struct {
	Name  string `json:"name"`
	Frame int64  `json:"frame"`
}

// SceneObject é um objeto de cena que recebe eventos de ciclo de vida e
// de ponteiro. O campo Script carrega, opcionalmente, o código Lua dos
// manipuladores residentes em script.
type SceneObject struct {
	ID     string `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"index"`
	Script string `json:"script,omitempty"`

	InitCount    int64 `json:"initCount" gorm:"-"`
	StepCount    int64 `json:"stepCount" gorm:"-"`
	DestroyCount int64 `json:"destroyCount" gorm:"-"`
	EnterCount   int64 `json:"enterCount" gorm:"-"`
	ExitCount    int64 `json:"exitCount" gorm:"-"`

	destroyed bool
}

func (o *SceneObject) OnInit(_ context.Context, _ *Engine) error {
	o.InitCount++
	return nil
}

func (o *SceneObject) OnStep(_ context.Context) error {
	o.StepCount++
	return nil
}

// OnDestroy falha na segunda destruição; o erro é um erro de aplicação
// do manipulador e deve chegar inalterado ao originador do evento.
func (o *SceneObject) OnDestroy(_ context.Context) error {
	if o.destroyed {
		return errors.New("scene object already destroyed")
	}
	o.destroyed = true
	o.DestroyCount++
	return nil
}

func (o *SceneObject) OnPointerEnter(_ context.Context, _ *PointerHit) error {
	o.EnterCount++
	return nil
}

func (o *SceneObject) OnPointerExit(_ context.Context, _ *PointerHit) error {
	o.ExitCount++
	return nil
}

func (o *SceneObject) IsScriptable() bool {
	return o.Script != ""
}

// SceneObjectRepository persiste definições de objetos de cena (nome e
// script); os contadores são estado de execução e não são persistidos.
type SceneObjectRepository interface {
	Save(ctx context.Context, object *SceneObject) error
	FindByID(ctx context.Context, id string) (*SceneObject, error)
	FindAll(ctx context.Context) ([]*SceneObject, error)
}
