// Package converter lowers an ACIR circuit into a rank-1 constraint system
// over the BN254 scalar field. Conversion is witness-free: the resulting
// AcirR1cs is a pure function of the circuit and is shared read-only by every
// subsequent setup, prove and verify call.
package converter

import (
	"fmt"
	"strconv"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/rs/zerolog/log"

	"github.com/izilabs/noir-groth16/acir"
	"github.com/izilabs/noir-groth16/errs"
	"github.com/izilabs/noir-groth16/field"
)

// WitnessMap assigns field elements to witness indices. Index 0, when
// present, must hold the constant one.
type WitnessMap map[uint32]fr.Element

// ParseWitnessMap converts raw index→hex witness values into field elements.
func ParseWitnessMap(raw acir.WitnessValues) (WitnessMap, error) {
	w := make(WitnessMap, len(raw))
	for k, v := range raw {
		idx, err := strconv.ParseUint(k, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: witness index %q: %v", errs.ErrParse, k, err)
		}
		e, err := field.ParseScalar(v)
		if err != nil {
			return nil, fmt.Errorf("witness %s: %w", k, err)
		}
		w[uint32(idx)] = e
	}
	return w, nil
}

// Term is a coefficient applied to a single witness.
type Term struct {
	Coefficient fr.Element
	Witness     uint32
}

// R1csConstraint is A * B = C where each side is a linear combination of
// witnesses. The invariant holds under any valid witness assignment.
type R1csConstraint struct {
	A []Term
	B []Term
	C []Term
}

// AcirR1cs is the constraint system derived from one ACIR circuit. The index
// lists are carried over verbatim; constraint order matches opcode order.
type AcirR1cs struct {
	// NumWitnesses counts the full index space, including index 0 (the
	// constant one).
	NumWitnesses  int
	PublicInputs  []uint32
	PrivateInputs []uint32
	ReturnValues  []uint32
	Constraints   []R1csConstraint
}

type options struct {
	strictRange bool
}

// Option configures conversion behavior.
type Option func(*options)

// WithStrictRange rejects circuits containing the Range black box instead of
// silently dropping the check. The default drops it, which is unsound for
// circuits whose soundness relies on the range check.
func WithStrictRange() Option {
	return func(o *options) { o.strictRange = true }
}

// FromProgram converts the entry circuit (function 0) of an ACIR program.
func FromProgram(p *acir.Program, opts ...Option) (*AcirR1cs, error) {
	if len(p.Functions) == 0 {
		return nil, fmt.Errorf("%w: no main function in acir program", errs.ErrParse)
	}
	return FromCircuit(&p.Functions[0], opts...)
}

// FromCircuit converts a single ACIR circuit, opcode by opcode.
func FromCircuit(c *acir.Circuit, opts ...Option) (*AcirR1cs, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := &AcirR1cs{
		NumWitnesses:  int(c.CurrentWitnessIndex) + 1,
		PublicInputs:  c.PublicParameters.Witnesses,
		PrivateInputs: c.PrivateParameters,
		ReturnValues:  c.ReturnValues.Witnesses,
	}

	for i := range c.Opcodes {
		op := &c.Opcodes[i]
		switch op.Kind {
		case acir.OpcodeAssertZero:
			cs, err := expressionToR1cs(op.AssertZero)
			if err != nil {
				return nil, err
			}
			r.Constraints = append(r.Constraints, cs...)
		case acir.OpcodeBlackBoxFuncCall:
			if err := convertBlackBox(op.BlackBox, &o); err != nil {
				return nil, err
			}
		case acir.OpcodeMemoryOp, acir.OpcodeMemoryInit, acir.OpcodeBrilligCall:
			// Resolved by the witness-generation engine; no constraints here.
		case acir.OpcodeCall:
			return nil, fmt.Errorf("%w: Call opcode - circuit should be flattened before conversion", errs.ErrUnsupportedOpcode)
		default:
			return nil, fmt.Errorf("%w: opcode kind %d", errs.ErrUnsupportedOpcode, op.Kind)
		}
	}

	return r, nil
}

// expressionToR1cs lowers one AssertZero expression, classified by the number
// of multiplication terms:
//
//	0:  (linear + q_c) * 1 = 0
//	1:  (coeff * a) * b = -(linear + q_c)
//	>1: unsupported; chaining products needs auxiliary witnesses.
func expressionToR1cs(expr *acir.Expression) ([]R1csConstraint, error) {
	qc, err := field.ParseScalar(expr.QC)
	if err != nil {
		return nil, err
	}

	switch len(expr.MulTerms) {
	case 0:
		a := make([]Term, 0, len(expr.LinearCombinations)+1)
		for _, lt := range expr.LinearCombinations {
			coeff, err := field.ParseScalar(lt.Coefficient)
			if err != nil {
				return nil, err
			}
			a = append(a, Term{Coefficient: coeff, Witness: lt.Witness})
		}
		if !qc.IsZero() {
			a = append(a, Term{Coefficient: qc, Witness: 0})
		}

		var one fr.Element
		one.SetOne()
		return []R1csConstraint{{
			A: a,
			B: []Term{{Coefficient: one, Witness: 0}},
			C: nil,
		}}, nil

	case 1:
		mt := expr.MulTerms[0]
		mulCoeff, err := field.ParseScalar(mt.Coefficient)
		if err != nil {
			return nil, err
		}

		c := make([]Term, 0, len(expr.LinearCombinations)+1)
		for _, lt := range expr.LinearCombinations {
			coeff, err := field.ParseScalar(lt.Coefficient)
			if err != nil {
				return nil, err
			}
			coeff.Neg(&coeff)
			c = append(c, Term{Coefficient: coeff, Witness: lt.Witness})
		}
		if !qc.IsZero() {
			qc.Neg(&qc)
			c = append(c, Term{Coefficient: qc, Witness: 0})
		}

		var one fr.Element
		one.SetOne()
		return []R1csConstraint{{
			A: []Term{{Coefficient: mulCoeff, Witness: mt.WitnessA}},
			B: []Term{{Coefficient: one, Witness: mt.WitnessB}},
			C: c,
		}}, nil

	default:
		return nil, fmt.Errorf("%w: %d multiplication terms in a single expression", errs.ErrUnsupportedOpcode, len(expr.MulTerms))
	}
}

// convertBlackBox handles a black-box call. Only Range is accepted, and it
// emits nothing: the range check is dropped from the constraint system unless
// WithStrictRange was requested.
func convertBlackBox(bb *acir.BlackBoxFuncCall, o *options) error {
	switch bb.Name {
	case acir.BlackBoxRange:
		if o.strictRange {
			return fmt.Errorf("%w: RANGE black box (strict mode)", errs.ErrUnsupportedOpcode)
		}
		numBits := uint32(0)
		if bb.Input != nil {
			numBits = bb.Input.NumBits
		}
		log.Warn().
			Uint32("num_bits", numBits).
			Msg("dropping RANGE check: no bit-decomposition constraints emitted")
		return nil
	case acir.BlackBoxAnd, acir.BlackBoxXor:
		return fmt.Errorf("%w: %s black box requires bit decomposition", errs.ErrUnsupportedOpcode, bb.Name)
	case acir.BlackBoxSHA256, acir.BlackBoxBlake2s, acir.BlackBoxBlake3,
		acir.BlackBoxKeccak256, acir.BlackBoxKeccakf1600, acir.BlackBoxSha256Compression:
		return fmt.Errorf("%w: %s black box requires a hash gadget", errs.ErrUnsupportedOpcode, bb.Name)
	case acir.BlackBoxPedersenCommitment, acir.BlackBoxPedersenHash:
		return fmt.Errorf("%w: %s black box requires an embedded-curve gadget", errs.ErrUnsupportedOpcode, bb.Name)
	case acir.BlackBoxEcdsaSecp256k1, acir.BlackBoxEcdsaSecp256r1, acir.BlackBoxSchnorrVerify:
		return fmt.Errorf("%w: %s black box requires a signature gadget", errs.ErrUnsupportedOpcode, bb.Name)
	case acir.BlackBoxFixedBaseScalarMul, acir.BlackBoxEmbeddedCurveAdd:
		return fmt.Errorf("%w: %s black box requires an embedded-curve gadget", errs.ErrUnsupportedOpcode, bb.Name)
	case acir.BlackBoxBigIntAdd, acir.BlackBoxBigIntSub, acir.BlackBoxBigIntMul,
		acir.BlackBoxBigIntDiv, acir.BlackBoxBigIntFromLeBytes, acir.BlackBoxBigIntToLeBytes:
		return fmt.Errorf("%w: %s black box requires bigint gadgets", errs.ErrUnsupportedOpcode, bb.Name)
	case acir.BlackBoxPoseidon2Permutation:
		return fmt.Errorf("%w: %s black box requires a permutation gadget", errs.ErrUnsupportedOpcode, bb.Name)
	case acir.BlackBoxRecursiveAggregation:
		return fmt.Errorf("%w: recursive aggregation is not expressible here", errs.ErrUnsupportedOpcode)
	default:
		return fmt.Errorf("%w: unknown black box function %q", errs.ErrUnsupportedOpcode, bb.Name)
	}
}
