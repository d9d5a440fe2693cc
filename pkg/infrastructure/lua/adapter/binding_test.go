package adapter_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateusmacedo/go-dispatch/pkg/domain"
	"github.com/mateusmacedo/go-dispatch/pkg/infrastructure/lua/adapter"
)

const counterScript = `
steps = 0

function onStep()
    steps = steps + 1
end

function assertSteps(expected)
    if steps ~= expected then
        error("expected " .. expected .. " steps, got " .. steps)
    end
end

function onInit(name)
    if name ~= "cube" then
        error("unexpected object: " .. tostring(name))
    end
end
`

func TestScriptBindingInvokesHandlerFunction(t *testing.T) {
	binding, err := adapter.NewScriptBinding("counter", counterScript)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, binding.Invoke(ctx, "onStep", nil))
	require.NoError(t, binding.Invoke(ctx, "onStep", nil))

	assert.NoError(t, binding.Invoke(ctx, "assertSteps", []any{2}))

	err = binding.Invoke(ctx, "assertSteps", []any{5})
	var fault *domain.ScriptFaultError
	require.ErrorAs(t, err, &fault)
}

func TestScriptBindingPassesArguments(t *testing.T) {
	binding, err := adapter.NewScriptBinding("counter", counterScript)
	require.NoError(t, err)

	ctx := context.Background()
	assert.NoError(t, binding.Invoke(ctx, "onInit", []any{"cube"}))

	err = binding.Invoke(ctx, "onInit", []any{"sphere"})
	var fault *domain.ScriptFaultError
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "onInit", fault.Event)
	assert.Equal(t, "counter", fault.Script)
}

func TestScriptBindingMissingFunctionIsNoOp(t *testing.T) {
	binding, err := adapter.NewScriptBinding("counter", counterScript)
	require.NoError(t, err)

	assert.NoError(t, binding.Invoke(context.Background(), "onRender", nil))
}

func TestScriptBindingInvalidSource(t *testing.T) {
	_, err := adapter.NewScriptBinding("broken", "function onInit(")

	require.Error(t, err)
}

func TestScriptBindingRuntimeErrorOnLoad(t *testing.T) {
	_, err := adapter.NewScriptBinding("boom", `error("boom at load time")`)

	require.Error(t, err)
}
