package infrastructure

import (
	"github.com/mateusmacedo/go-dispatch/pkg/application"
	"github.com/mateusmacedo/go-dispatch/pkg/domain"
)

type signatureResolver struct{}

// NewResolver cria o resolvedor de assinaturas padrão.
func NewResolver() application.Resolver {
	return signatureResolver{}
}

// Resolve percorre as assinaturas do contrato na ordem de declaração e
// retorna a primeira que corresponde ao nome, à aridade e aos tipos dos
// argumentos. Assinaturas que correspondem apenas ao nome são lembradas
// para distinguir "evento desconhecido" de "argumentos incompatíveis".
func (signatureResolver) Resolve(contract *domain.Contract, target any, eventName string, args []any) (domain.Signature, error) {
	if !contract.ImplementedBy(target) {
		return domain.Signature{}, &domain.ContractNotImplementedError{Contract: contract.Name()}
	}

	nameMatch := false
	for _, signature := range contract.Signatures() {
		if signature.Name() != eventName {
			continue
		}
		nameMatch = true

		params := signature.Params()
		if len(params) != len(args) {
			continue
		}

		matched := true
		for i, p := range params {
			if !p.Accepts(args[i]) {
				matched = false
				break
			}
		}
		if matched {
			return signature, nil
		}
	}

	if nameMatch {
		return domain.Signature{}, &domain.ArgumentMismatchError{Contract: contract.Name(), Event: eventName}
	}
	return domain.Signature{}, &domain.UnknownEventError{Contract: contract.Name(), Event: eventName}
}
