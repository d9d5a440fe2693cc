package infrastructure

import (
	"context"
	"errors"

	"github.com/mateusmacedo/go-dispatch/pkg/application"
	"github.com/mateusmacedo/go-dispatch/pkg/domain"
)

type simpleEventDispatcher struct {
	resolver application.Resolver
	scripts  application.ScriptRegistry
	logger   application.AppLogger
}

// NewEventDispatcher cria o despachante de eventos. O registro de
// scripts é opcional e pode ser nil quando nenhum alvo é scriptável.
func NewEventDispatcher(resolver application.Resolver, scripts application.ScriptRegistry, logger application.AppLogger) application.EventDispatcher {
	return &simpleEventDispatcher{
		resolver: resolver,
		scripts:  scripts,
		logger:   logger,
	}
}

// SendEvent valida e resolve o evento, despacha primeiro para o
// manipulador de script, se houver, e em seguida invoca o manipulador
// nativo. Erros de resolução e de aplicação propagam ao chamador;
// falhas mecânicas de invocação são registradas e absorvidas.
func (d *simpleEventDispatcher) SendEvent(ctx context.Context, target any, contract *domain.Contract, eventName string, args ...any) error {
	signature, err := d.resolver.Resolve(contract, target, eventName, args)
	if err != nil {
		return err
	}

	if err := d.tryInvokeScript(ctx, target, eventName, args); err != nil {
		return err
	}

	if err := signature.Invoke(ctx, target, args); err != nil {
		var mechanical *domain.MechanicalError
		if errors.As(err, &mechanical) {
			application.LogError(ctx, d.logger, "event handler could not be invoked", err, map[string]interface{}{
				"contract":   contract.Name(),
				"event_name": eventName,
			})
			return nil
		}
		return err
	}

	application.LogDebug(ctx, d.logger, "event dispatched", map[string]interface{}{
		"contract":   contract.Name(),
		"event_name": eventName,
	})
	return nil
}

func (d *simpleEventDispatcher) tryInvokeScript(ctx context.Context, target any, eventName string, args []any) error {
	if d.scripts == nil {
		return nil
	}

	scriptable, ok := target.(domain.Scriptable)
	if !ok || !scriptable.IsScriptable() {
		return nil
	}

	binding, ok := d.scripts.Lookup(target)
	if !ok {
		return nil
	}

	return binding.Invoke(ctx, eventName, args)
}
