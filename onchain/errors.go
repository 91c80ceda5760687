package onchain

// Code is a fixed on-chain error code. Constrained environments report
// failures as numeric codes with canned messages, never free-form text, so
// every failure path in this package maps onto one of these.
type Code uint32

const (
	CodeProofVerificationFailed Code = iota + 6000
	CodeInvalidPublicInputsCount
	CodeTooManyPublicInputs
	CodeInvalidProofSize
	CodeInvalidVerifyingKey
	CodeG1MulFailed
	CodeG1AddFailed
	CodePairingFailed
	CodeInvalidG2Point
)

var codeMessages = map[Code]string{
	CodeProofVerificationFailed:  "proof verification failed",
	CodeInvalidPublicInputsCount: "invalid public inputs count",
	CodeTooManyPublicInputs:      "too many public inputs",
	CodeInvalidProofSize:         "invalid proof size",
	CodeInvalidVerifyingKey:      "invalid verifying key",
	CodeG1MulFailed:              "g1 scalar multiplication failed",
	CodeG1AddFailed:              "g1 point addition failed",
	CodePairingFailed:            "pairing check failed",
	CodeInvalidG2Point:           "invalid g2 point",
}

func (c Code) Error() string {
	if msg, ok := codeMessages[c]; ok {
		return msg
	}
	return "unknown verifier error"
}
