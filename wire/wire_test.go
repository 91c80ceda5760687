package wire

import (
	"errors"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/izilabs/noir-groth16/errs"
	"github.com/izilabs/noir-groth16/field"
)

func testPoints() (bn254.G1Affine, bn254.G2Affine) {
	_, _, g1, g2 := bn254.Generators()
	return g1, g2
}

func TestG1RoundTrip(t *testing.T) {
	g1, _ := testPoints()

	b := MarshalG1(&g1)
	require.Len(t, b, G1Size)

	back, err := UnmarshalG1(b)
	require.NoError(t, err)
	require.True(t, back.Equal(&g1))
}

func TestG1Infinity(t *testing.T) {
	var inf bn254.G1Affine
	b := MarshalG1(&inf)
	for _, c := range b {
		require.Equal(t, byte(0), c)
	}

	back, err := UnmarshalG1(b)
	require.NoError(t, err)
	require.True(t, back.IsInfinity())
}

func TestG1RejectsOffCurve(t *testing.T) {
	g1, _ := testPoints()
	b := MarshalG1(&g1)
	// corrupt y
	b[G1Size-1] ^= 1
	_, err := UnmarshalG1(b)
	require.True(t, errors.Is(err, errs.ErrSerialization))
}

func TestG1WrongLength(t *testing.T) {
	_, err := UnmarshalG1(make([]byte, G1Size-1))
	require.True(t, errors.Is(err, errs.ErrSerialization))
}

func TestG2RoundTrip(t *testing.T) {
	_, g2 := testPoints()

	b := MarshalG2(&g2)
	require.Len(t, b, G2Size)

	back, err := UnmarshalG2(b)
	require.NoError(t, err)
	require.True(t, back.Equal(&g2))
}

func TestG2CoordinateOrder(t *testing.T) {
	_, g2 := testPoints()
	b := MarshalG2(&g2)

	xa := field.BaseToBytes(&g2.X.A0)
	xb := field.BaseToBytes(&g2.X.A1)
	require.Equal(t, xa[:], b[:FieldSize])
	require.Equal(t, xb[:], b[FieldSize:2*FieldSize])
}

func TestG2Infinity(t *testing.T) {
	var inf bn254.G2Affine
	back, err := UnmarshalG2(MarshalG2(&inf))
	require.NoError(t, err)
	require.True(t, back.IsInfinity())
}

func TestG2RejectsOffCurve(t *testing.T) {
	_, g2 := testPoints()
	b := MarshalG2(&g2)
	b[G2Size-1] ^= 1
	_, err := UnmarshalG2(b)
	require.True(t, errors.Is(err, errs.ErrSerialization))
}

func TestVerifyingKeySize(t *testing.T) {
	require.Equal(t, 64+3*128+64, VerifyingKeySize(0))
	require.Equal(t, 64+3*128+2*64, VerifyingKeySize(1))
	require.Equal(t, 64+3*128+17*64, VerifyingKeySize(16))
}

func TestUnmarshalProofWrongLength(t *testing.T) {
	_, err := UnmarshalProof(make([]byte, ProofSize+1))
	require.True(t, errors.Is(err, errs.ErrSerialization))
}

func TestUnmarshalVerifyingKeyWrongLength(t *testing.T) {
	_, err := UnmarshalVerifyingKey(make([]byte, VerifyingKeySize(1)), 2)
	require.True(t, errors.Is(err, errs.ErrSerialization))
}

func TestPublicInputsRoundTrip(t *testing.T) {
	inputs := make([]fr.Element, 3)
	inputs[0].SetUint64(1)
	inputs[1].SetUint64(1 << 40)
	inputs[2].SetString("21888242871839275222246405745257275088548364400416034343698204186575808495616")

	b := MarshalPublicInputs(inputs)
	require.Len(t, b, 3*FieldSize)

	back, err := UnmarshalPublicInputs(b)
	require.NoError(t, err)
	require.Len(t, back, 3)
	for i := range inputs {
		require.True(t, back[i].Equal(&inputs[i]))
	}
}

func TestUnmarshalPublicInputsBadLength(t *testing.T) {
	_, err := UnmarshalPublicInputs(make([]byte, 33))
	require.True(t, errors.Is(err, errs.ErrSerialization))
}
