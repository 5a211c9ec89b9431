package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aegisctl",
	Short: "Aegis identity and access control server",
	Long:  `Aegis issues and revokes gateway credentials and resolves per-subject permissions.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
