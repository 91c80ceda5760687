package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/izilabs/noir-groth16/acir"
	"github.com/izilabs/noir-groth16/converter"
	"github.com/izilabs/noir-groth16/prover"
	"github.com/izilabs/noir-groth16/wire"
)

// proveCmd represents the proof command
var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "runs proof generation for witness.json, verifies it, and writes inputs and proof as hex bytes to a json file",
	Run:   prove,
}

// proofWithInputs is the portable proof artifact: both fields use the wire
// encoding consumed by the on-chain verifier.
type proofWithInputs struct {
	PublicInputs hexutil.Bytes `json:"inputs"`
	Proof        hexutil.Bytes `json:"proof"`
}

func prove(cmd *cobra.Command, args []string) {
	sys := loadSystem()

	witnessValues, err := acir.ReadWitness(filepath.Join(fBaseDir, "witness.json"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read witness file")
	}
	witness, err := converter.ParseWitnessMap(witnessValues)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse witness values")
	}

	start := time.Now()
	result, err := sys.Prove(witness)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create proof")
	}
	log.Info().Msg("Successfully created proof, time: " + time.Since(start).String())

	ok, err := sys.Verify(result.Proof, result.PublicInputs)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to verify proof")
	}
	if !ok {
		log.Fatal().Msg("generated proof did not verify")
	}

	proofBytes, err := wire.MarshalProof(result.Proof)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to serialize proof")
	}
	out, err := json.Marshal(proofWithInputs{
		PublicInputs: wire.MarshalPublicInputs(result.PublicInputs),
		Proof:        proofBytes,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to marshal proof with inputs")
	}
	outPath := filepath.Join(fBaseDir, "proof_with_inputs.json")
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		log.Fatal().Err(err).Msg("failed to write proof_with_inputs.json")
	}
	log.Info().Msg("Successfully saved " + outPath)
}

// loadSystem re-converts acir.json and restores the build artifacts for it.
func loadSystem() *prover.System {
	program, err := acir.ReadProgram(filepath.Join(fBaseDir, "acir.json"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read acir program")
	}
	r, err := converter.FromProgram(program)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to convert acir to r1cs")
	}
	sys, err := prover.Load(filepath.Join(fBaseDir, "build"), r)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load build artifacts, run compile first")
	}
	return sys
}

func init() {
	rootCmd.AddCommand(proveCmd)
}
