package adapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/Shopify/go-lua"

	"github.com/mateusmacedo/go-dispatch/pkg/application"
	"github.com/mateusmacedo/go-dispatch/pkg/domain"
)

// ScriptBinding executa funções de manipulador definidas em um chunk
// Lua. Cada binding possui seu próprio estado Lua; as invocações são
// serializadas porque lua.State não é reentrante.
type ScriptBinding struct {
	mu    sync.Mutex
	name  string
	state *lua.State
}

var _ application.ScriptBinding = (*ScriptBinding)(nil)

// NewScriptBinding carrega e executa o chunk para que as funções de
// manipulador fiquem definidas no escopo global do estado.
func NewScriptBinding(name, source string) (*ScriptBinding, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	if err := lua.LoadString(state, source); err != nil {
		return nil, fmt.Errorf("load script %q: %w", name, err)
	}
	if err := state.ProtectedCall(0, 0, 0); err != nil {
		return nil, fmt.Errorf("run script %q: %w", name, err)
	}

	return &ScriptBinding{name: name, state: state}, nil
}

// Invoke chama a função global com o nome do evento, se o chunk a
// definiu. Uma função ausente não é um erro.
func (b *ScriptBinding) Invoke(_ context.Context, eventName string, args []any) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state.Global(eventName)
	if b.state.TypeOf(-1) != lua.TypeFunction {
		b.state.Pop(1)
		return nil
	}

	for _, arg := range args {
		pushValue(b.state, arg)
	}

	if err := b.state.ProtectedCall(len(args), 0, 0); err != nil {
		return &domain.ScriptFaultError{Script: b.name, Event: eventName, Err: err}
	}
	return nil
}

func pushValue(state *lua.State, value any) {
	switch v := value.(type) {
	case nil:
		state.PushNil()
	case bool:
		state.PushBoolean(v)
	case int:
		state.PushInteger(v)
	case int64:
		state.PushInteger(int(v))
	case float64:
		state.PushNumber(v)
	case string:
		state.PushString(v)
	default:
		state.PushUserData(v)
	}
}
