package cmd

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/izilabs/noir-groth16/acir"
	"github.com/izilabs/noir-groth16/converter"
	"github.com/izilabs/noir-groth16/prover"
	"github.com/izilabs/noir-groth16/wire"
)

var fStrictRange bool

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "compile acir.json into build circuit data (r1cs, pk, vk, solidity contract, on-chain vk bytes)",
	Run:   compile,
}

func compile(cmd *cobra.Command, args []string) {
	program, err := acir.ReadProgram(filepath.Join(fBaseDir, "acir.json"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read acir program")
	}

	var opts []converter.Option
	if fStrictRange {
		opts = append(opts, converter.WithStrictRange())
	}
	r, err := converter.FromProgram(program, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to convert acir to r1cs")
	}
	log.Info().
		Int("constraints", len(r.Constraints)).
		Int("witnesses", r.NumWitnesses).
		Int("public_inputs", len(r.PublicInputs)).
		Msg("converted acir circuit")

	sys, err := prover.Setup(r)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to run groth16 setup")
	}

	buildDir := filepath.Join(fBaseDir, "build")
	if err := sys.Save(buildDir); err != nil {
		log.Fatal().Err(err).Msg("failed to save build artifacts")
	}

	vkBytes, err := wire.MarshalVerifyingKey(sys.Vk)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to serialize verifying key")
	}
	if err := os.WriteFile(filepath.Join(buildDir, "vk_onchain.bin"), vkBytes, 0644); err != nil {
		log.Fatal().Err(err).Msg("failed to write vk_onchain.bin")
	}
	log.Info().Msg("Successfully saved build artifacts to " + buildDir)
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().BoolVar(&fStrictRange, "strict-range", false, "reject circuits containing RANGE black box calls instead of dropping them")
}
