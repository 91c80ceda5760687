package prover

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/izilabs/noir-groth16/converter"
)

// Circuit synthesizes an AcirR1cs into a gnark constraint system. Witness
// index 0 is bound to the constant one; the declared public indices are
// allocated as public variables in declared order; every other in-range index
// becomes a private variable, in increasing index order.
type Circuit struct {
	Public  []frontend.Variable `gnark:",public"`
	Private []frontend.Variable

	// R1cs drives synthesis; it is configuration, not a variable.
	R1cs *converter.AcirR1cs `gnark:"-"`
}

// NewCircuit returns a circuit template with variable slices sized for r.
func NewCircuit(r *converter.AcirR1cs) *Circuit {
	nbPrivate := r.NumWitnesses - 1 - len(r.PublicInputs)
	if nbPrivate < 0 {
		nbPrivate = 0
	}
	return &Circuit{
		Public:  make([]frontend.Variable, len(r.PublicInputs)),
		Private: make([]frontend.Variable, nbPrivate),
		R1cs:    r,
	}
}

func (c *Circuit) Define(api frontend.API) error {
	vars, err := c.bindWitnesses()
	if err != nil {
		return err
	}

	for i := range c.R1cs.Constraints {
		cs := &c.R1cs.Constraints[i]
		a, err := linearCombination(api, cs.A, vars)
		if err != nil {
			return err
		}
		b, err := linearCombination(api, cs.B, vars)
		if err != nil {
			return err
		}
		cc, err := linearCombination(api, cs.C, vars)
		if err != nil {
			return err
		}
		api.AssertIsEqual(api.Mul(a, b), cc)
	}

	return nil
}

// bindWitnesses maps every witness index of the R1CS onto a circuit variable.
func (c *Circuit) bindWitnesses() (map[uint32]frontend.Variable, error) {
	if len(c.Public) != len(c.R1cs.PublicInputs) {
		return nil, fmt.Errorf("expected %d public variables, got %d", len(c.R1cs.PublicInputs), len(c.Public))
	}

	vars := make(map[uint32]frontend.Variable, c.R1cs.NumWitnesses)
	vars[0] = frontend.Variable(1)

	for i, idx := range c.R1cs.PublicInputs {
		if idx == 0 {
			return nil, fmt.Errorf("witness 0 is reserved for the constant one and cannot be public")
		}
		vars[idx] = c.Public[i]
	}

	j := 0
	for i := uint32(1); i < uint32(c.R1cs.NumWitnesses); i++ {
		if _, ok := vars[i]; ok {
			continue
		}
		if j >= len(c.Private) {
			return nil, fmt.Errorf("expected %d private variables, got %d", j+1, len(c.Private))
		}
		vars[i] = c.Private[j]
		j++
	}

	return vars, nil
}

func linearCombination(api frontend.API, terms []converter.Term, vars map[uint32]frontend.Variable) (frontend.Variable, error) {
	acc := frontend.Variable(0)
	for _, t := range terms {
		v, ok := vars[t.Witness]
		if !ok {
			return nil, fmt.Errorf("witness index %d out of range", t.Witness)
		}
		coeff := t.Coefficient.BigInt(new(big.Int))
		acc = api.Add(acc, api.Mul(coeff, v))
	}
	return acc, nil
}
