package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/izilabs/noir-groth16/onchain"
	"github.com/izilabs/noir-groth16/wire"
)

// verifyCmd runs the on-chain verification path locally: same byte layout,
// same pairing sequence, host primitives backed by gnark-crypto.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "verifies proof_with_inputs.json against vk_onchain.bin using the on-chain verification path",
	Run:   verify,
}

func verify(cmd *cobra.Command, args []string) {
	vkBytes, err := os.ReadFile(filepath.Join(fBaseDir, "build", "vk_onchain.bin"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read vk_onchain.bin, run compile first")
	}

	data, err := os.ReadFile(filepath.Join(fBaseDir, "proof_with_inputs.json"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read proof_with_inputs.json, run prove first")
	}
	var artifact proofWithInputs
	if err := json.Unmarshal(data, &artifact); err != nil {
		log.Fatal().Err(err).Msg("failed to parse proof_with_inputs.json")
	}

	if len(artifact.PublicInputs)%wire.FieldSize != 0 {
		log.Fatal().Msg("public inputs are not a multiple of 32 bytes")
	}
	n := len(artifact.PublicInputs) / wire.FieldSize
	inputs := make([][32]byte, n)
	for i := range inputs {
		copy(inputs[i][:], artifact.PublicInputs[i*wire.FieldSize:(i+1)*wire.FieldSize])
	}

	vk, err := onchain.NewVerifyingKeyAccount([32]byte{}, vkBytes, n)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build verifying key account")
	}
	proof, err := onchain.ProofFromBytes(artifact.Proof)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse proof bytes")
	}

	if err := onchain.VerifyGroth16(onchain.LocalHost{}, vk, proof, inputs); err != nil {
		log.Error().Err(err).Msg("proof verification failed")
		os.Exit(1)
	}
	log.Info().Int("public_inputs", n).Msg("proof verified")
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
