package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/openagri/aegis/pkg/audit"
	"github.com/openagri/aegis/pkg/config"
	"github.com/openagri/aegis/pkg/db"
	"github.com/openagri/aegis/pkg/server"
	"github.com/openagri/aegis/pkg/server/endpoints"
)

func defaultBindAddress() string {
	if addr := os.Getenv("AEGIS_BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("AEGIS_PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("AEGIS_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the Aegis application server",
	Long: `Run the Aegis application server

The server requires a signing key and database URL, supplied either through
the AEGIS_SIGNING_KEY and DATABASE_URL environment variables or through the
aegis.yml configuration file.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		if host != "" {
			cfg.BindAddress = host
		}
		if port != "" {
			cfg.Port = port
		}

		// Validate required configuration first (fail fast)
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(cfg.DatabaseURL); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		database, err := db.Connect(db.Config{URL: cfg.DatabaseURL})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		srv, err := server.NewServer(cfg, database)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to initialise server:", err)
			os.Exit(1)
		}

		endpoints.RegisterAll(srv)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if cfg.PruneInterval() > 0 {
			go runPruner(ctx, srv, cfg.PruneInterval())
		}

		// Pick up config file edits for logging purposes; runtime settings
		// still require a restart.
		go func() {
			err := config.Watch(ctx, func(updated *config.Config) {
				log.Println("Configuration file changed; restart to apply connection or key changes")
			})
			if err != nil && ctx.Err() == nil {
				log.Printf("config watch stopped: %v", err)
			}
		}()

		log.Printf("Running server at http://%s:%s...\n", cfg.BindAddress, cfg.Port)
		log.Fatal(srv.Start())
	},
}

// runPruner periodically hard-deletes denylist rows whose tokens have
// expired anyway.
func runPruner(ctx context.Context, srv *server.Server, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := srv.Revocations.Prune(ctx, time.Now().UTC())
			if err != nil {
				log.Printf("denylist prune failed: %v", err)
				audit.Log(audit.PruneEvent{Error: err.Error()})
				continue
			}
			if removed > 0 {
				log.Printf("denylist prune removed %d entries", removed)
			}
			audit.Log(audit.PruneEvent{Removed: removed})
		}
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
