package application

import (
	"encoding/json"

	"github.com/mateusmacedo/go-dispatch/internal/scene/domain"
)

// NewPayloadDecoder mapeia o nome do evento e o payload bruto para a
// lista de argumentos esperada pelos contratos da fatia. Nomes
// desconhecidos produzem uma lista vazia, deixando o resolvedor
// reportar o evento como desconhecido.
func NewPayloadDecoder(engine *domain.Engine) func(eventName string, payload []byte) ([]any, error) {
	return func(eventName string, payload []byte) ([]any, error) {
		switch eventName {
		case "onInit":
			return []any{engine}, nil
		case "onStep", "onDestroy":
			return nil, nil
		case "onPointerEnter", "onPointerExit":
			hit := &domain.PointerHit{}
			if len(payload) > 0 {
				if err := json.Unmarshal(payload, hit); err != nil {
					return nil, err
				}
			}
			return []any{hit}, nil
		default:
			return nil, nil
		}
	}
}
