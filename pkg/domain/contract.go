package domain

// Contract representa um grupo nomeado de eventos que um alvo pode
// manipular. É imutável após a construção; a ordem de declaração das
// assinaturas é preservada e determina a ordem de resolução.
type Contract struct {
	name       string
	signatures []Signature
}

// NewContract constrói um contrato a partir das assinaturas declaradas.
func NewContract(name string, signatures ...Signature) *Contract {
	return &Contract{
		name:       name,
		signatures: signatures,
	}
}

func (c *Contract) Name() string {
	return c.name
}

// Signatures retorna as assinaturas na ordem de declaração.
func (c *Contract) Signatures() []Signature {
	return c.signatures
}

// ImplementedBy informa se o alvo satisfaz todas as assinaturas do
// contrato.
func (c *Contract) ImplementedBy(target any) bool {
	for _, signature := range c.signatures {
		if !signature.BindsTo(target) {
			return false
		}
	}
	return true
}
