package infrastructure

import (
	"sync"

	"github.com/mateusmacedo/go-dispatch/pkg/application"
)

// InMemoryScriptRegistry associa alvos a bindings de script, chaveado
// pela identidade do alvo. Os alvos devem ser valores comparáveis,
// tipicamente ponteiros.
type InMemoryScriptRegistry struct {
	mu       sync.RWMutex
	bindings map[any]application.ScriptBinding
}

func NewInMemoryScriptRegistry() *InMemoryScriptRegistry {
	return &InMemoryScriptRegistry{
		bindings: make(map[any]application.ScriptBinding),
	}
}

func (r *InMemoryScriptRegistry) Bind(target any, binding application.ScriptBinding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[target] = binding
}

func (r *InMemoryScriptRegistry) Unbind(target any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bindings, target)
}

func (r *InMemoryScriptRegistry) Lookup(target any) (application.ScriptBinding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	binding, ok := r.bindings[target]
	return binding, ok
}
