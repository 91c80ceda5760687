package field

import (
	"errors"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/izilabs/noir-groth16/errs"
)

func TestParseScalarZeroForms(t *testing.T) {
	for _, s := range []string{"", "0", "0x0", "0x00", "0x000000", "  0x0  "} {
		e, err := ParseScalar(s)
		require.NoError(t, err, "input %q", s)
		require.True(t, e.IsZero(), "input %q", s)
	}
}

func TestParseScalarValues(t *testing.T) {
	var want fr.Element

	e, err := ParseScalar("0xff")
	require.NoError(t, err)
	want.SetUint64(255)
	require.True(t, e.Equal(&want))

	// odd length, no prefix
	e, err = ParseScalar("f")
	require.NoError(t, err)
	want.SetUint64(15)
	require.True(t, e.Equal(&want))

	e, err = ParseScalar("0x01000")
	require.NoError(t, err)
	want.SetUint64(0x1000)
	require.True(t, e.Equal(&want))
}

func TestParseScalarInvalidHex(t *testing.T) {
	for _, s := range []string{"0xzz", "hello", "0x12g4"} {
		_, err := ParseScalar(s)
		require.Error(t, err, "input %q", s)
		require.True(t, errors.Is(err, errs.ErrParse), "input %q", s)
	}
}

func TestParseScalarReducesLargeValues(t *testing.T) {
	// field order r parses to zero after reduction
	e, err := ParseScalar("0x30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000001")
	require.NoError(t, err)
	require.True(t, e.IsZero())

	// r+1 parses to one
	e, err = ParseScalar("0x30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000002")
	require.NoError(t, err)
	require.True(t, e.IsOne())
}

func TestParseScalarKeepsLow32BytesOfWideInput(t *testing.T) {
	wide := "0x01" + "0000000000000000000000000000000000000000000000000000000000000005"
	e, err := ParseScalar(wide)
	require.NoError(t, err)
	var want fr.Element
	want.SetUint64(5)
	require.True(t, e.Equal(&want))
}

func TestScalarBytesRoundTrip(t *testing.T) {
	var e fr.Element
	e.SetUint64(123456789)

	b := ScalarToBytes(&e)
	require.Len(t, b[:], Bytes)
	// big endian: value sits at the tail
	require.Equal(t, byte(0), b[0])

	back, err := ScalarFromBytes(b[:])
	require.NoError(t, err)
	require.True(t, back.Equal(&e))
}

func TestScalarFromBytesWrongLength(t *testing.T) {
	_, err := ScalarFromBytes(make([]byte, 31))
	require.True(t, errors.Is(err, errs.ErrParse))
	_, err = ScalarFromBytes(make([]byte, 33))
	require.True(t, errors.Is(err, errs.ErrParse))
}

func TestBaseBytesRoundTrip(t *testing.T) {
	b := [Bytes]byte{}
	b[Bytes-1] = 42

	e, err := BaseFromBytes(b[:])
	require.NoError(t, err)
	back := BaseToBytes(&e)
	require.Equal(t, b, back)
}
