package application

import "context"

// ScriptBinding invoca a função de script com o nome do evento. Uma
// função ausente no script não é um erro.
type ScriptBinding interface {
	Invoke(ctx context.Context, eventName string, args []any) error
}

// ScriptRegistry associa alvos a manipuladores residentes em script. O
// ciclo de vida das associações pertence ao chamador, não ao núcleo de
// despacho.
type ScriptRegistry interface {
	Lookup(target any) (ScriptBinding, bool)
}
