package domain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateusmacedo/go-dispatch/pkg/domain"
)

type payload struct {
	Label string
}

type counter struct {
	inits []*payload
	steps int
}

func (c *counter) Init(_ context.Context, p *payload) error {
	c.inits = append(c.inits, p)
	return nil
}

func (c *counter) Step(_ context.Context) error {
	c.steps++
	return nil
}

type counterHandler interface {
	Init(ctx context.Context, p *payload) error
	Step(ctx context.Context) error
}

func counterContract() *domain.Contract {
	return domain.NewContract("Counter",
		domain.Method1("onInit", "payload", func(ctx context.Context, h counterHandler, p *payload) error {
			return h.Init(ctx, p)
		}),
		domain.Method0("onStep", func(ctx context.Context, h counterHandler) error {
			return h.Step(ctx)
		}),
	)
}

func TestParamOfAccepts(t *testing.T) {
	param := domain.ParamOf[*payload]("payload")

	assert.Equal(t, "payload", param.Name())
	assert.True(t, param.Accepts(&payload{}))
	assert.False(t, param.Accepts("not a payload"))
	assert.False(t, param.Accepts(nil))
}

func TestContractPreservesDeclarationOrder(t *testing.T) {
	contract := counterContract()

	signatures := contract.Signatures()
	require.Len(t, signatures, 2)
	assert.Equal(t, "onInit", signatures[0].Name())
	assert.Equal(t, "onStep", signatures[1].Name())
}

func TestContractImplementedBy(t *testing.T) {
	contract := counterContract()

	assert.True(t, contract.ImplementedBy(&counter{}))
	assert.False(t, contract.ImplementedBy("not a handler"))
	assert.False(t, contract.ImplementedBy(nil))
}

func TestSignatureInvoke(t *testing.T) {
	contract := counterContract()
	target := &counter{}
	p := &payload{Label: "first"}

	err := contract.Signatures()[0].Invoke(context.Background(), target, []any{p})

	require.NoError(t, err)
	require.Len(t, target.inits, 1)
	assert.Same(t, p, target.inits[0])
}

func TestSignatureInvokeUnboundTarget(t *testing.T) {
	contract := counterContract()

	err := contract.Signatures()[1].Invoke(context.Background(), "not a handler", nil)

	var mechanical *domain.MechanicalError
	require.ErrorAs(t, err, &mechanical)
	assert.Equal(t, "onStep", mechanical.Event)
}

func TestSignatureInvokeWrongArgumentShape(t *testing.T) {
	contract := counterContract()
	target := &counter{}

	err := contract.Signatures()[0].Invoke(context.Background(), target, []any{"wrong type"})

	var mechanical *domain.MechanicalError
	require.ErrorAs(t, err, &mechanical)
	assert.Empty(t, target.inits)
}
