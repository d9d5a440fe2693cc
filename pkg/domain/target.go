package domain

// Scriptable é a capacidade opcional de um alvo receber manipuladores
// residentes em script, além dos manipuladores nativos.
type Scriptable interface {
	IsScriptable() bool
}

// IDGenerator produz identificadores para novos recursos.
type IDGenerator[T any] func() T
