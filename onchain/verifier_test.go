package onchain

import (
	"errors"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/izilabs/noir-groth16/converter"
	"github.com/izilabs/noir-groth16/prover"
	"github.com/izilabs/noir-groth16/wire"
)

// proveMultiply runs the full pipeline for w1 * w2 = w3 (w3 public) and
// returns the portable artifacts: vk bytes, proof bytes and public inputs.
func proveMultiply(t *testing.T) ([]byte, []byte, [][32]byte) {
	t.Helper()

	var one fr.Element
	one.SetOne()
	r := &converter.AcirR1cs{
		NumWitnesses: 4,
		PublicInputs: []uint32{3},
		Constraints: []converter.R1csConstraint{{
			A: []converter.Term{{Coefficient: one, Witness: 1}},
			B: []converter.Term{{Coefficient: one, Witness: 2}},
			C: []converter.Term{{Coefficient: one, Witness: 3}},
		}},
	}

	sys, err := prover.Setup(r)
	require.NoError(t, err)

	w := make(converter.WitnessMap)
	for idx, v := range map[uint32]uint64{0: 1, 1: 3, 2: 4, 3: 12} {
		var e fr.Element
		e.SetUint64(v)
		w[idx] = e
	}
	result, err := sys.Prove(w)
	require.NoError(t, err)

	vkBytes, err := wire.MarshalVerifyingKey(sys.Vk)
	require.NoError(t, err)
	proofBytes, err := wire.MarshalProof(result.Proof)
	require.NoError(t, err)

	inputs := make([][32]byte, len(result.PublicInputs))
	raw := wire.MarshalPublicInputs(result.PublicInputs)
	for i := range inputs {
		copy(inputs[i][:], raw[i*32:(i+1)*32])
	}

	// the portable vk bytes must round-trip into a key gnark still accepts
	vk, err := wire.UnmarshalVerifyingKey(vkBytes, len(inputs))
	require.NoError(t, err)
	proof, err := wire.UnmarshalProof(proofBytes)
	require.NoError(t, err)
	ok, err := prover.Verify(vk, proof, result.PublicInputs)
	require.NoError(t, err)
	require.True(t, ok)

	return vkBytes, proofBytes, inputs
}

func TestVerifyGroth16EndToEnd(t *testing.T) {
	vkBytes, proofBytes, inputs := proveMultiply(t)

	vk, err := NewVerifyingKeyAccount([32]byte{}, vkBytes, len(inputs))
	require.NoError(t, err)
	proof, err := ProofFromBytes(proofBytes)
	require.NoError(t, err)

	require.NoError(t, VerifyGroth16(LocalHost{}, vk, proof, inputs))
}

func TestVerifyGroth16WrongPublicInput(t *testing.T) {
	vkBytes, proofBytes, inputs := proveMultiply(t)

	vk, err := NewVerifyingKeyAccount([32]byte{}, vkBytes, len(inputs))
	require.NoError(t, err)
	proof, err := ProofFromBytes(proofBytes)
	require.NoError(t, err)

	inputs[0][31] ^= 1
	err = VerifyGroth16(LocalHost{}, vk, proof, inputs)
	require.Equal(t, CodeProofVerificationFailed, err)
}

func TestVerifyGroth16TamperedProof(t *testing.T) {
	vkBytes, proofBytes, inputs := proveMultiply(t)

	vk, err := NewVerifyingKeyAccount([32]byte{}, vkBytes, len(inputs))
	require.NoError(t, err)
	proof, err := ProofFromBytes(proofBytes)
	require.NoError(t, err)

	// swap A and C: both stay on the curve, the pairing equation breaks
	proof.A, proof.C = proof.C, proof.A
	err = VerifyGroth16(LocalHost{}, vk, proof, inputs)
	require.Equal(t, CodeProofVerificationFailed, err)
}

// countingHost fails the test if any curve operation runs.
type countingHost struct {
	t *testing.T
}

func (h countingHost) G1ScalarMul([]byte) ([]byte, error) {
	h.t.Fatal("G1ScalarMul called before input validation")
	return nil, nil
}

func (h countingHost) G1Add([]byte) ([]byte, error) {
	h.t.Fatal("G1Add called before input validation")
	return nil, nil
}

func (h countingHost) PairingCheck([]byte) ([]byte, error) {
	h.t.Fatal("PairingCheck called before input validation")
	return nil, nil
}

func TestVerifyGroth16CountMismatchShortCircuits(t *testing.T) {
	vkBytes, proofBytes, inputs := proveMultiply(t)

	vk, err := NewVerifyingKeyAccount([32]byte{}, vkBytes, len(inputs))
	require.NoError(t, err)
	proof, err := ProofFromBytes(proofBytes)
	require.NoError(t, err)

	err = VerifyGroth16(countingHost{t}, vk, proof, nil)
	require.Equal(t, CodeInvalidPublicInputsCount, err)

	err = VerifyGroth16(countingHost{t}, vk, proof, append(inputs, [32]byte{}))
	require.Equal(t, CodeInvalidPublicInputsCount, err)
}

func TestVerifyingKeyAccountRoundTrip(t *testing.T) {
	vkBytes, _, inputs := proveMultiply(t)

	var authority [32]byte
	authority[0] = 0xab
	vk, err := NewVerifyingKeyAccount(authority, vkBytes, len(inputs))
	require.NoError(t, err)
	require.Equal(t, uint8(len(inputs)), vk.NrPubInputs)
	require.Len(t, vk.K, len(inputs)+1)

	data, err := vk.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, AccountSize(len(inputs)))

	var back VerifyingKeyAccount
	require.NoError(t, back.UnmarshalBinary(data))
	require.Equal(t, vk, &back)
}

func TestNewVerifyingKeyAccountRejectsBadInput(t *testing.T) {
	_, err := NewVerifyingKeyAccount([32]byte{}, make([]byte, 64), 1)
	require.Equal(t, CodeInvalidVerifyingKey, err)

	_, err = NewVerifyingKeyAccount([32]byte{}, nil, MaxPublicInputs+1)
	require.Equal(t, CodeTooManyPublicInputs, err)
}

func TestProofFromBytesWrongSize(t *testing.T) {
	_, err := ProofFromBytes(make([]byte, ProofSize-1))
	require.Equal(t, CodeInvalidProofSize, err)
}

func TestAccountSize(t *testing.T) {
	// authority + count + alpha + 3 g2 points + k length prefix + k entries
	require.Equal(t, 32+1+64+384+4+64, AccountSize(0))
	require.Equal(t, 32+1+64+384+4+2*64, AccountSize(1))
}

func TestCodeMessages(t *testing.T) {
	require.Equal(t, "proof verification failed", CodeProofVerificationFailed.Error())
	require.Equal(t, "unknown verifier error", Code(9999).Error())

	var err error = CodeInvalidProofSize
	require.True(t, errors.Is(err, CodeInvalidProofSize))
}
