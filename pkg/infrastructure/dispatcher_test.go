package infrastructure_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateusmacedo/go-dispatch/pkg/application"
	"github.com/mateusmacedo/go-dispatch/pkg/domain"
	"github.com/mateusmacedo/go-dispatch/pkg/infrastructure"
)

type fakeBinding struct {
	order  *[]string
	events []string
	err    error
}

func (b *fakeBinding) Invoke(_ context.Context, eventName string, _ []any) error {
	if b.order != nil {
		*b.order = append(*b.order, "script")
	}
	b.events = append(b.events, eventName)
	return b.err
}

type stubResolver struct {
	signature domain.Signature
	err       error
}

func (r stubResolver) Resolve(*domain.Contract, any, string, []any) (domain.Signature, error) {
	return r.signature, r.err
}

func newDispatcher(logger *fakeLogger) (application.EventDispatcher, *infrastructure.InMemoryScriptRegistry) {
	registry := infrastructure.NewInMemoryScriptRegistry()
	dispatcher := infrastructure.NewEventDispatcher(infrastructure.NewResolver(), registry, logger)
	return dispatcher, registry
}

func TestSendEventInvokesNativeHandler(t *testing.T) {
	dispatcher, _ := newDispatcher(&fakeLogger{})
	target := &widget{}
	ec := &engineContext{Label: "boot"}

	err := dispatcher.SendEvent(context.Background(), target, widgetContract(), "onInit", ec)

	require.NoError(t, err)
	require.Len(t, target.inits, 1)
	assert.Same(t, ec, target.inits[0])
}

func TestSendEventFailsBeforeSideEffects(t *testing.T) {
	dispatcher, _ := newDispatcher(&fakeLogger{})
	target := &widget{}

	err := dispatcher.SendEvent(context.Background(), "not a widget", widgetContract(), "onStep")
	var notImplemented *domain.ContractNotImplementedError
	require.ErrorAs(t, err, &notImplemented)

	err = dispatcher.SendEvent(context.Background(), target, widgetContract(), "onRender")
	var unknown *domain.UnknownEventError
	require.ErrorAs(t, err, &unknown)

	err = dispatcher.SendEvent(context.Background(), target, widgetContract(), "onInit")
	var mismatch *domain.ArgumentMismatchError
	require.ErrorAs(t, err, &mismatch)

	assert.Zero(t, target.steps)
	assert.Empty(t, target.inits)
}

func TestSendEventScriptThenNative(t *testing.T) {
	dispatcher, registry := newDispatcher(&fakeLogger{})

	var order []string
	target := &widget{order: &order, scriptable: true}
	binding := &fakeBinding{order: &order}
	registry.Bind(target, binding)

	err := dispatcher.SendEvent(context.Background(), target, widgetContract(), "onStep")

	require.NoError(t, err)
	assert.Equal(t, []string{"script", "native"}, order)
	assert.Equal(t, 1, target.steps)
	assert.Equal(t, []string{"onStep"}, binding.events)
}

func TestSendEventWithoutBindingSkipsScript(t *testing.T) {
	dispatcher, _ := newDispatcher(&fakeLogger{})
	target := &widget{scriptable: true}

	err := dispatcher.SendEvent(context.Background(), target, widgetContract(), "onStep")

	require.NoError(t, err)
	assert.Equal(t, 1, target.steps)
}

func TestSendEventNonScriptableIgnoresBinding(t *testing.T) {
	dispatcher, registry := newDispatcher(&fakeLogger{})
	target := &widget{scriptable: false}
	binding := &fakeBinding{}
	registry.Bind(target, binding)

	err := dispatcher.SendEvent(context.Background(), target, widgetContract(), "onStep")

	require.NoError(t, err)
	assert.Empty(t, binding.events)
	assert.Equal(t, 1, target.steps)
}

func TestSendEventScriptFaultAbortsNativeDispatch(t *testing.T) {
	dispatcher, registry := newDispatcher(&fakeLogger{})
	target := &widget{scriptable: true}
	fault := &domain.ScriptFaultError{Script: "rotator", Event: "onStep", Err: errors.New("attempt to call a nil value")}
	registry.Bind(target, &fakeBinding{err: fault})

	err := dispatcher.SendEvent(context.Background(), target, widgetContract(), "onStep")

	var scriptFault *domain.ScriptFaultError
	require.ErrorAs(t, err, &scriptFault)
	assert.Same(t, fault, scriptFault)
	assert.Zero(t, target.steps)
}

func TestSendEventNativeErrorPropagatesUnchanged(t *testing.T) {
	dispatcher, _ := newDispatcher(&fakeLogger{})
	handlerErr := errors.New("physics body detached")
	target := &widget{stepErr: handlerErr}

	err := dispatcher.SendEvent(context.Background(), target, widgetContract(), "onStep")

	require.ErrorIs(t, err, handlerErr)
	assert.Equal(t, 1, target.steps)
}

type vanisher interface {
	Vanish(ctx context.Context) error
}

func TestSendEventMechanicalFaultIsLoggedAndSwallowed(t *testing.T) {
	logger := &fakeLogger{}
	signature := domain.Method0("onStep", func(ctx context.Context, h vanisher) error {
		return h.Vanish(ctx)
	})
	dispatcher := infrastructure.NewEventDispatcher(stubResolver{signature: signature}, nil, logger)
	target := &widget{}

	err := dispatcher.SendEvent(context.Background(), target, widgetContract(), "onStep")

	require.NoError(t, err)
	require.Len(t, logger.errors, 1)
	assert.Equal(t, "event handler could not be invoked", logger.errors[0])
	assert.Zero(t, target.steps)
}
