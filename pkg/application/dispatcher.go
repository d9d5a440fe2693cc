package application

import (
	"context"

	"github.com/mateusmacedo/go-dispatch/pkg/domain"
)

// EventDispatcher entrega um evento nomeado a um alvo que satisfaz um
// contrato. A entrega é síncrona e bloqueia o chamador até o término
// dos manipuladores.
type EventDispatcher interface {
	SendEvent(ctx context.Context, target any, contract *domain.Contract, eventName string, args ...any) error
}
