package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "cablesizer",
		Short:         "Parametric cable-sizing calculator for feeder design",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(sizeCmd())
	rootCmd.AddCommand(tablesCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func sizeCmd() *cobra.Command {
	var (
		inputPath string
		format    string
		envFile   string
	)
	cmd := &cobra.Command{
		Use:   "size",
		Short: "Select the minimum standard conductor size for a load",
		Long: "Reads a JSON sizing request, evaluates every standard cross-section against\n" +
			"ampacity, voltage-drop and short-circuit constraints, and reports the first\n" +
			"size that passes all of them together with the full reasoning trail.",
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSize(inputPath, format, envFile)
		},
	}
	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "path to a JSON sizing request, or - for stdin")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or json")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "path to an optional .env override file")
	return cmd
}

func tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print the static reference tables used for selection",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			printReferenceTables(os.Stdout)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cablesizer version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Println("cablesizer", version)
			return nil
		},
	}
}
