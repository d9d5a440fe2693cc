package domain

import (
	"context"

	pkgDomain "github.com/mateusmacedo/go-dispatch/pkg/domain"
)

// LifecycleHandler é a forma nativa do contrato Lifecycle.
type LifecycleHandler interface {
	OnInit(ctx context.Context, engine *Engine) error
	OnStep(ctx context.Context) error
	OnDestroy(ctx context.Context) error
}

// PointerHit descreve o ponto de interseção de um evento de ponteiro.
type PointerHit struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointerHandler é a forma nativa do contrato Pointer.
type PointerHandler interface {
	OnPointerEnter(ctx context.Context, hit *PointerHit) error
	OnPointerExit(ctx context.Context, hit *PointerHit) error
}

// Lifecycle agrupa os eventos de ciclo de vida de um objeto de cena.
var Lifecycle = pkgDomain.NewContract("Lifecycle",
	pkgDomain.Method1("onInit", "engine", func(ctx context.Context, h LifecycleHandler, engine *Engine) error {
		return h.OnInit(ctx, engine)
	}),
	pkgDomain.Method0("onStep", func(ctx context.Context, h LifecycleHandler) error {
		return h.OnStep(ctx)
	}),
	pkgDomain.Method0("onDestroy", func(ctx context.Context, h LifecycleHandler) error {
		return h.OnDestroy(ctx)
	}),
)

// Pointer agrupa os eventos de interação de ponteiro.
var Pointer = pkgDomain.NewContract("Pointer",
	pkgDomain.Method1("onPointerEnter", "hit", func(ctx context.Context, h PointerHandler, hit *PointerHit) error {
		return h.OnPointerEnter(ctx, hit)
	}),
	pkgDomain.Method1("onPointerExit", "hit", func(ctx context.Context, h PointerHandler, hit *PointerHit) error {
		return h.OnPointerExit(ctx, hit)
	}),
)

// Contracts indexa os contratos expostos pela fatia por nome.
var Contracts = map[string]*pkgDomain.Contract{
	Lifecycle.Name(): Lifecycle,
	Pointer.Name():   Pointer,
}
