package converter

import (
	"errors"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/izilabs/noir-groth16/acir"
	"github.com/izilabs/noir-groth16/errs"
)

// multiplyCircuit encodes w1 * w2 - w3 = 0 with w3 public.
func multiplyCircuit() *acir.Circuit {
	return &acir.Circuit{
		CurrentWitnessIndex: 3,
		PrivateParameters:   []uint32{1, 2},
		PublicParameters:    acir.PublicInputs{Witnesses: []uint32{3}},
		Opcodes: []acir.Opcode{{
			Kind: acir.OpcodeAssertZero,
			AssertZero: &acir.Expression{
				MulTerms:           []acir.MulTerm{{Coefficient: "0x01", WitnessA: 1, WitnessB: 2}},
				LinearCombinations: []acir.LinearTerm{{Coefficient: negOneHex, Witness: 3}},
				QC:                 "0x00",
			},
		}},
	}
}

// negOneHex is -1 in the scalar field.
const negOneHex = "0x30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000000"

func TestFromCircuitMultiplication(t *testing.T) {
	r, err := FromCircuit(multiplyCircuit())
	require.NoError(t, err)

	require.Equal(t, 4, r.NumWitnesses)
	require.Equal(t, []uint32{3}, r.PublicInputs)
	require.Equal(t, []uint32{1, 2}, r.PrivateInputs)
	require.Len(t, r.Constraints, 1)

	cs := r.Constraints[0]
	var one fr.Element
	one.SetOne()

	// (1 * w1) * w2 = (1 * w3)
	require.Len(t, cs.A, 1)
	require.Equal(t, uint32(1), cs.A[0].Witness)
	require.True(t, cs.A[0].Coefficient.Equal(&one))

	require.Len(t, cs.B, 1)
	require.Equal(t, uint32(2), cs.B[0].Witness)
	require.True(t, cs.B[0].Coefficient.Equal(&one))

	// C negates the -1 linear coefficient back to 1
	require.Len(t, cs.C, 1)
	require.Equal(t, uint32(3), cs.C[0].Witness)
	require.True(t, cs.C[0].Coefficient.Equal(&one))
}

func TestFromCircuitLinearOnly(t *testing.T) {
	// w1 + w2 - 5 = 0
	c := &acir.Circuit{
		CurrentWitnessIndex: 2,
		Opcodes: []acir.Opcode{{
			Kind: acir.OpcodeAssertZero,
			AssertZero: &acir.Expression{
				LinearCombinations: []acir.LinearTerm{
					{Coefficient: "0x01", Witness: 1},
					{Coefficient: "0x01", Witness: 2},
				},
				QC: "0x30644e72e131a029b85045b68181585d2833e84879b9709143e1f593effffffc",
			},
		}},
	}

	r, err := FromCircuit(c)
	require.NoError(t, err)
	require.Len(t, r.Constraints, 1)

	cs := r.Constraints[0]
	// A holds the linear terms plus q_c on witness 0, B is the constant one,
	// C is empty
	require.Len(t, cs.A, 3)
	require.Equal(t, uint32(0), cs.A[2].Witness)
	require.Len(t, cs.B, 1)
	require.Equal(t, uint32(0), cs.B[0].Witness)
	require.Empty(t, cs.C)
}

func TestFromCircuitZeroQCOmitted(t *testing.T) {
	c := &acir.Circuit{
		CurrentWitnessIndex: 1,
		Opcodes: []acir.Opcode{{
			Kind: acir.OpcodeAssertZero,
			AssertZero: &acir.Expression{
				LinearCombinations: []acir.LinearTerm{{Coefficient: "0x01", Witness: 1}},
				QC:                 "0x00",
			},
		}},
	}
	r, err := FromCircuit(c)
	require.NoError(t, err)
	require.Len(t, r.Constraints[0].A, 1)
}

func TestFromCircuitTwoMulTermsUnsupported(t *testing.T) {
	c := &acir.Circuit{
		CurrentWitnessIndex: 4,
		Opcodes: []acir.Opcode{{
			Kind: acir.OpcodeAssertZero,
			AssertZero: &acir.Expression{
				MulTerms: []acir.MulTerm{
					{Coefficient: "0x01", WitnessA: 1, WitnessB: 2},
					{Coefficient: "0x01", WitnessA: 3, WitnessB: 4},
				},
				QC: "0x00",
			},
		}},
	}
	_, err := FromCircuit(c)
	require.True(t, errors.Is(err, errs.ErrUnsupportedOpcode))
}

func TestFromCircuitMemoryOpcodesEmitNothing(t *testing.T) {
	c := &acir.Circuit{
		CurrentWitnessIndex: 3,
		Opcodes: []acir.Opcode{
			{Kind: acir.OpcodeMemoryInit, MemoryInit: &acir.MemoryInit{BlockID: 0, Init: []uint32{1, 2}}},
			{Kind: acir.OpcodeMemoryOp, MemoryOp: &acir.MemoryOp{BlockID: 0}},
			{Kind: acir.OpcodeBrilligCall, BrilligCall: &acir.BrilligCall{ID: 0}},
		},
	}
	r, err := FromCircuit(c)
	require.NoError(t, err)
	require.Empty(t, r.Constraints)
}

func TestFromCircuitCallRejected(t *testing.T) {
	c := &acir.Circuit{
		CurrentWitnessIndex: 1,
		Opcodes:             []acir.Opcode{{Kind: acir.OpcodeCall, Call: &acir.Call{ID: 1}}},
	}
	_, err := FromCircuit(c)
	require.True(t, errors.Is(err, errs.ErrUnsupportedOpcode))
}

func TestFromCircuitRangeDropped(t *testing.T) {
	c := &acir.Circuit{
		CurrentWitnessIndex: 1,
		Opcodes: []acir.Opcode{{
			Kind: acir.OpcodeBlackBoxFuncCall,
			BlackBox: &acir.BlackBoxFuncCall{
				Name:  acir.BlackBoxRange,
				Input: &acir.FunctionInput{Witness: 1, NumBits: 32},
			},
		}},
	}

	r, err := FromCircuit(c)
	require.NoError(t, err)
	require.Empty(t, r.Constraints)

	_, err = FromCircuit(c, WithStrictRange())
	require.True(t, errors.Is(err, errs.ErrUnsupportedOpcode))
}

func TestFromCircuitHashBlackBoxRejected(t *testing.T) {
	for _, name := range []string{acir.BlackBoxSHA256, acir.BlackBoxKeccak256, acir.BlackBoxPoseidon2Permutation, "SomethingNew"} {
		c := &acir.Circuit{
			CurrentWitnessIndex: 1,
			Opcodes: []acir.Opcode{{
				Kind:     acir.OpcodeBlackBoxFuncCall,
				BlackBox: &acir.BlackBoxFuncCall{Name: name},
			}},
		}
		_, err := FromCircuit(c)
		require.True(t, errors.Is(err, errs.ErrUnsupportedOpcode), "black box %s", name)
	}
}

func TestFromProgramUsesEntryFunction(t *testing.T) {
	p := &acir.Program{Functions: []acir.Circuit{*multiplyCircuit()}}
	r, err := FromProgram(p)
	require.NoError(t, err)
	require.Len(t, r.Constraints, 1)

	_, err = FromProgram(&acir.Program{})
	require.True(t, errors.Is(err, errs.ErrParse))
}

func TestParseWitnessMap(t *testing.T) {
	w, err := ParseWitnessMap(acir.WitnessValues{"0": "0x01", "3": "0x0c"})
	require.NoError(t, err)
	require.Len(t, w, 2)
	var twelve fr.Element
	twelve.SetUint64(12)
	v := w[3]
	require.True(t, v.Equal(&twelve))

	_, err = ParseWitnessMap(acir.WitnessValues{"abc": "0x01"})
	require.True(t, errors.Is(err, errs.ErrParse))

	_, err = ParseWitnessMap(acir.WitnessValues{"0": "0xzz"})
	require.True(t, errors.Is(err, errs.ErrParse))
}
