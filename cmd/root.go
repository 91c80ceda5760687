package cmd

import (
	"github.com/spf13/cobra"
	"os"
)

var (
	fBaseDir string
)

var rootCmd = &cobra.Command{
	Use:   "noir-groth16",
	Short: "groth16 proving pipeline for noir acir circuits",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&fBaseDir, "dir", "", "base directory for acir.json, witness.json and build artifacts")
	rootCmd.MarkPersistentFlagRequired("dir")
}
