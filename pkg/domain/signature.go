package domain

import (
	"context"
	"fmt"
)

// Invoker executa o método nativo vinculado a uma assinatura.
type Invoker func(ctx context.Context, target any, args []any) error

// Signature identifica uma forma de evento manipulável: nome e lista
// ordenada de parâmetros, junto com o invocador tipado construído no
// momento da declaração do contrato.
type Signature struct {
	name   string
	params []Param
	binds  func(target any) bool
	invoke Invoker
}

func (s Signature) Name() string {
	return s.name
}

func (s Signature) Params() []Param {
	return s.params
}

// BindsTo informa se o invocador consegue receber o alvo.
func (s Signature) BindsTo(target any) bool {
	return s.binds(target)
}

// Invoke executa o método nativo no alvo com os argumentos resolvidos.
func (s Signature) Invoke(ctx context.Context, target any, args []any) error {
	return s.invoke(ctx, target, args)
}

// Method0 declara uma assinatura sem parâmetros para alvos do tipo T.
func Method0[T any](name string, call func(ctx context.Context, target T) error) Signature {
	return Signature{
		name:  name,
		binds: bindsTo[T],
		invoke: func(ctx context.Context, target any, args []any) error {
			t, ok := target.(T)
			if !ok {
				return &MechanicalError{Event: name, Reason: "target cannot receive the bound method"}
			}
			if len(args) != 0 {
				return &MechanicalError{Event: name, Reason: fmt.Sprintf("expected no arguments, got %d", len(args))}
			}
			return call(ctx, t)
		},
	}
}

// Method1 declara uma assinatura com um parâmetro do tipo A.
func Method1[T any, A any](name string, paramName string, call func(ctx context.Context, target T, arg A) error) Signature {
	return Signature{
		name:   name,
		params: []Param{ParamOf[A](paramName)},
		binds:  bindsTo[T],
		invoke: func(ctx context.Context, target any, args []any) error {
			t, ok := target.(T)
			if !ok {
				return &MechanicalError{Event: name, Reason: "target cannot receive the bound method"}
			}
			if len(args) != 1 {
				return &MechanicalError{Event: name, Reason: fmt.Sprintf("expected 1 argument, got %d", len(args))}
			}
			a, ok := args[0].(A)
			if !ok {
				return &MechanicalError{Event: name, Reason: fmt.Sprintf("argument %q cannot be passed to the handler", paramName)}
			}
			return call(ctx, t, a)
		},
	}
}

// Method2 declara uma assinatura com dois parâmetros, dos tipos A e B.
func Method2[T any, A any, B any](name string, aName, bName string, call func(ctx context.Context, target T, a A, b B) error) Signature {
	return Signature{
		name:   name,
		params: []Param{ParamOf[A](aName), ParamOf[B](bName)},
		binds:  bindsTo[T],
		invoke: func(ctx context.Context, target any, args []any) error {
			t, ok := target.(T)
			if !ok {
				return &MechanicalError{Event: name, Reason: "target cannot receive the bound method"}
			}
			if len(args) != 2 {
				return &MechanicalError{Event: name, Reason: fmt.Sprintf("expected 2 arguments, got %d", len(args))}
			}
			a, ok := args[0].(A)
			if !ok {
				return &MechanicalError{Event: name, Reason: fmt.Sprintf("argument %q cannot be passed to the handler", aName)}
			}
			b, ok := args[1].(B)
			if !ok {
				return &MechanicalError{Event: name, Reason: fmt.Sprintf("argument %q cannot be passed to the handler", bName)}
			}
			return call(ctx, t, a, b)
		},
	}
}

func bindsTo[T any](target any) bool {
	_, ok := target.(T)
	return ok
}
