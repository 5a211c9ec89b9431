package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/openagri/aegis/pkg/config"
	"github.com/openagri/aegis/pkg/db"
	gormstore "github.com/openagri/aegis/pkg/server/store/gorm"
)

// revokeCmd represents the revoke command
var revokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Manage the token denylists",
	Long:  `Revoke tokens by identifier and prune expired denylist entries.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'revoke' requires a subcommand (access, refresh, prune)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// revokeAccessCmd represents the revoke access command
var revokeAccessCmd = &cobra.Command{
	Use:   "access JTI",
	Short: "Revoke a single access token by jti",
	Long: `Revoke a single access token by jti.

The refresh token it was minted from remains usable; revoke it separately
to cut the whole session.

Example:
  aegisctl revoke access 6f1c9a52-7e0d-4c88-a7a3-52f2e2f7bb1f`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		revocations, cfg := connectRevocations()
		expiry := time.Now().UTC().Add(cfg.AccessTokenTTL())
		if err := revocations.RevokeAccess(context.Background(), args[0], expiry); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to revoke access token:", err)
			os.Exit(1)
		}
		fmt.Printf("Revoked access token %s\n", args[0])
	},
}

// revokeRefreshCmd represents the revoke refresh command
var revokeRefreshCmd = &cobra.Command{
	Use:   "refresh RJTI",
	Short: "Revoke a refresh token and every access token minted from it",
	Long: `Revoke a refresh token by rjti.

Every access token carrying this rjti is rejected from the next validation
on, without any per-access-token bookkeeping.

Example:
  aegisctl revoke refresh 0b9a7c1e-33d2-4a4e-9c44-d2b61f8e2ab0`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		revocations, cfg := connectRevocations()
		expiry := time.Now().UTC().Add(cfg.RefreshTokenTTL())
		if err := revocations.RevokeRefresh(context.Background(), args[0], expiry); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to revoke refresh token:", err)
			os.Exit(1)
		}
		fmt.Printf("Revoked refresh token %s\n", args[0])
	},
}

// revokePruneCmd represents the revoke prune command
var revokePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove denylist entries whose tokens have expired",
	Long: `Remove denylist entries whose tokens have expired.

Safe to run at any time: an expired token is rejected by signature
checking regardless of denylist state.`,
	Run: func(cmd *cobra.Command, args []string) {
		revocations, _ := connectRevocations()
		removed, err := revocations.Prune(context.Background(), time.Now().UTC())
		if err != nil {
			fmt.Fprintln(os.Stderr, "Prune failed:", err)
			os.Exit(1)
		}
		fmt.Printf("Removed %d expired denylist entries\n", removed)
	},
}

func connectRevocations() (*gormstore.RevocationStore, *config.Config) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	database, err := db.Connect(db.Config{URL: cfg.DatabaseURL})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
		os.Exit(1)
	}

	return gormstore.NewRevocationStore(database), cfg
}

func init() {
	rootCmd.AddCommand(revokeCmd)
	revokeCmd.AddCommand(revokeAccessCmd)
	revokeCmd.AddCommand(revokeRefreshCmd)
	revokeCmd.AddCommand(revokePruneCmd)
}
