package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// signingKeyCmd represents the signing-key command
var signingKeyCmd = &cobra.Command{
	Use:   "signing-key",
	Short: "Manage the token signing key",
	Long:  `Manage the HMAC key used to sign access and refresh tokens.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'signing-key' requires a subcommand (generate)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// signingKeyGenerateCmd represents the signing-key generate command
var signingKeyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a token signing key",
	Long: `
Generate a token signing key

Use this command to generate a new Base64-encoded 256 bit HMAC key. Once generated, this key should be placed into the environment of
the Aegis server. It signs every access and refresh token the server issues.

Example:

$ export AEGIS_SIGNING_KEY="$(aegisctl signing-key generate)"
`,
	Run: func(cmd *cobra.Command, args []string) {
		bytes := make([]byte, 32)
		if _, err := rand.Read(bytes); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to generate key:", err)
			os.Exit(1)
		}
		fmt.Printf("%s", base64.StdEncoding.Strict().EncodeToString(bytes))
	},
}

func init() {
	rootCmd.AddCommand(signingKeyCmd)
	signingKeyCmd.AddCommand(signingKeyGenerateCmd)
}
