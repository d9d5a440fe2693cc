package application

import (
	"github.com/mateusmacedo/go-dispatch/pkg/domain"
)

// Resolver localiza a assinatura de um contrato que corresponde ao nome
// do evento e aos argumentos informados.
type Resolver interface {
	Resolve(contract *domain.Contract, target any, eventName string, args []any) (domain.Signature, error)
}
