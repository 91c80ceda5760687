// Package acir models the ACIR circuit intermediate representation emitted
// by the Noir compiler, as consumed from its JSON form. It is a pure data
// layer: nothing here touches the constraint system or the curve.
package acir

// WitnessIndex identifies a witness in a circuit's index space.
// Index 0 is always the constant one.
type WitnessIndex = uint32

// Program is a compiled ACIR program: a list of circuits, where the entry
// point is the first one. Inter-circuit calls must already be inlined by the
// compiler before the program reaches this pipeline.
type Program struct {
	Functions []Circuit `json:"functions"`
}

// Circuit is a single ACIR function. It is immutable once parsed; the R1CS
// derived from it is a pure function of its contents.
type Circuit struct {
	// CurrentWitnessIndex is the highest witness index used, so the witness
	// count is CurrentWitnessIndex+1.
	CurrentWitnessIndex uint32         `json:"current_witness_index"`
	Opcodes             []Opcode       `json:"opcodes"`
	PrivateParameters   []WitnessIndex `json:"private_parameters"`
	PublicParameters    PublicInputs   `json:"public_parameters"`
	ReturnValues        PublicInputs   `json:"return_values"`
}

// PublicInputs lists the witness indices exposed as public parameters or
// return values.
type PublicInputs struct {
	Witnesses []WitnessIndex `json:"witnesses"`
}

// OpcodeKind tags the Opcode variant. Converter dispatch switches over this
// exhaustively so a newly introduced kind surfaces as a compile-time gap, not
// a silent fallthrough.
type OpcodeKind int

const (
	OpcodeAssertZero OpcodeKind = iota
	OpcodeBlackBoxFuncCall
	OpcodeMemoryOp
	OpcodeMemoryInit
	OpcodeBrilligCall
	OpcodeCall
)

func (k OpcodeKind) String() string {
	switch k {
	case OpcodeAssertZero:
		return "AssertZero"
	case OpcodeBlackBoxFuncCall:
		return "BlackBoxFuncCall"
	case OpcodeMemoryOp:
		return "MemoryOp"
	case OpcodeMemoryInit:
		return "MemoryInit"
	case OpcodeBrilligCall:
		return "BrilligCall"
	case OpcodeCall:
		return "Call"
	default:
		return "Unknown"
	}
}

// Opcode is a tagged variant; exactly one payload field matching Kind is set.
type Opcode struct {
	Kind OpcodeKind

	AssertZero  *Expression
	BlackBox    *BlackBoxFuncCall
	MemoryOp    *MemoryOp
	MemoryInit  *MemoryInit
	BrilligCall *BrilligCall
	Call        *Call
}

// Expression is an arithmetic constraint of the form
//
//	sum(linear_combinations) + sum(mul_terms) + q_c = 0
//
// with every coefficient a hex field-element string.
type Expression struct {
	LinearCombinations []LinearTerm `json:"linear_combinations"`
	MulTerms           []MulTerm    `json:"mul_terms"`
	QC                 string       `json:"q_c"`
}

// LinearTerm is a (coefficient, witness) pair.
type LinearTerm struct {
	Coefficient string
	Witness     WitnessIndex
}

// MulTerm is a (coefficient, witness, witness) product term.
type MulTerm struct {
	Coefficient string
	WitnessA    WitnessIndex
	WitnessB    WitnessIndex
}

// Black-box function names as they appear in the IR. Only Range is reducible
// here; the rest require dedicated gadgets and are rejected by the converter.
const (
	BlackBoxSHA256               = "SHA256"
	BlackBoxBlake2s              = "Blake2s"
	BlackBoxBlake3               = "Blake3"
	BlackBoxKeccak256            = "Keccak256"
	BlackBoxKeccakf1600          = "Keccakf1600"
	BlackBoxPedersenCommitment   = "PedersenCommitment"
	BlackBoxPedersenHash         = "PedersenHash"
	BlackBoxEcdsaSecp256k1       = "EcdsaSecp256k1"
	BlackBoxEcdsaSecp256r1       = "EcdsaSecp256r1"
	BlackBoxSchnorrVerify        = "SchnorrVerify"
	BlackBoxFixedBaseScalarMul   = "FixedBaseScalarMul"
	BlackBoxEmbeddedCurveAdd     = "EmbeddedCurveAdd"
	BlackBoxAnd                  = "AND"
	BlackBoxXor                  = "XOR"
	BlackBoxRange                = "RANGE"
	BlackBoxRecursiveAggregation = "RecursiveAggregation"
	BlackBoxBigIntAdd            = "BigIntAdd"
	BlackBoxBigIntSub            = "BigIntSub"
	BlackBoxBigIntMul            = "BigIntMul"
	BlackBoxBigIntDiv            = "BigIntDiv"
	BlackBoxBigIntFromLeBytes    = "BigIntFromLeBytes"
	BlackBoxBigIntToLeBytes      = "BigIntToLeBytes"
	BlackBoxPoseidon2Permutation = "Poseidon2Permutation"
	BlackBoxSha256Compression    = "Sha256Compression"
)

// BlackBoxFuncCall is a call to a cryptographic primitive. The payload fields
// cover the shapes the known primitives use; which ones are populated depends
// on Name.
type BlackBoxFuncCall struct {
	Name    string          `json:"name"`
	Input   *FunctionInput  `json:"input,omitempty"`
	Inputs  []FunctionInput `json:"inputs,omitempty"`
	Outputs []WitnessIndex  `json:"outputs,omitempty"`
	Output  WitnessIndex    `json:"output,omitempty"`
}

// FunctionInput is a witness fed to a black-box function together with its
// declared bit width.
type FunctionInput struct {
	Witness WitnessIndex `json:"witness"`
	NumBits uint32       `json:"num_bits"`
}

// MemoryOp is a runtime memory read or write. It is resolved during witness
// generation and emits no constraints here.
type MemoryOp struct {
	BlockID uint32     `json:"block_id"`
	Index   Expression `json:"index"`
	Value   Expression `json:"value"`
}

// MemoryInit declares a memory block and its initial witnesses.
type MemoryInit struct {
	BlockID uint32         `json:"block_id"`
	Init    []WitnessIndex `json:"init"`
}

// BrilligCall invokes unconstrained code during witness generation.
type BrilligCall struct {
	ID      uint32         `json:"id"`
	Outputs []WitnessIndex `json:"outputs,omitempty"`
}

// Call is an inter-circuit call. Circuits must be flattened before reaching
// this pipeline, so the converter always rejects it.
type Call struct {
	ID      uint32         `json:"id"`
	Outputs []WitnessIndex `json:"outputs,omitempty"`
}
