package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/openagri/aegis/pkg/db"
	"github.com/openagri/aegis/pkg/model"
	gormstore "github.com/openagri/aegis/pkg/server/store/gorm"
)

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
	Long:  `Manage user accounts.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'user' requires a subcommand (create, delete)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create USERNAME EMAIL",
	Short: "Create an active user account",
	Long: `Create an active user account.

The password is read from AEGIS_USER_PASSWORD when set, otherwise prompted
for on the terminal.

Example:
  aegisctl user create alice alice@example.org --first-name Alice`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		username, email := args[0], args[1]
		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")

		password := os.Getenv("AEGIS_USER_PASSWORD")
		if password == "" {
			fmt.Print("Password: ")
			raw, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				fmt.Fprintln(os.Stderr, "Failed to read password:", err)
				os.Exit(1)
			}
			password = string(raw)
		}
		if password == "" {
			fmt.Fprintln(os.Stderr, "A password is required")
			os.Exit(1)
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		user := &model.User{
			UUID:      uuid.NewString(),
			Username:  username,
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
		}
		user.Status = model.StatusActive
		if err := user.SetPassword(password); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to hash password:", err)
			os.Exit(1)
		}

		users := gormstore.NewUserStore(database)
		if err := users.CreateUser(user); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to create user:", err)
			os.Exit(1)
		}

		fmt.Printf("Created user %s (uuid %s)\n", user.Username, user.UUID)
	},
}

// userDeleteCmd represents the user delete command
var userDeleteCmd = &cobra.Command{
	Use:   "delete USERNAME",
	Short: "Soft-delete a user account",
	Long: `Soft-delete a user account.

The row is retained with Deleted status; the account can no longer
authenticate and its grants stop resolving.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		users := gormstore.NewUserStore(database)
		if err := users.SoftDeleteUser(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to delete user:", err)
			os.Exit(1)
		}

		fmt.Printf("Deleted user %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userDeleteCmd)

	userCreateCmd.Flags().String("first-name", "", "user first name")
	userCreateCmd.Flags().String("last-name", "", "user last name")
}
