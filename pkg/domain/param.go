package domain

// Param descreve um parâmetro declarado de uma assinatura de evento.
type Param interface {
	Name() string
	Accepts(value any) bool
}

type param[T any] struct {
	name string
}

func (p param[T]) Name() string {
	return p.name
}

func (p param[T]) Accepts(value any) bool {
	_, ok := value.(T)
	return ok
}

// ParamOf declara um parâmetro cujos valores devem ser atribuíveis a T.
func ParamOf[T any](name string) Param {
	return param[T]{name: name}
}
