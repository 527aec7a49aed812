// Package cli implements the server's maintenance subcommands.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/ehonlab/ehon-server/internal/auth"
	"github.com/ehonlab/ehon-server/internal/config"
	"github.com/ehonlab/ehon-server/internal/database"
	"github.com/ehonlab/ehon-server/internal/database/users"
	"github.com/ehonlab/ehon-server/internal/entities"
)

// CreateAdminCommand creates an administrator account directly in the
// database, bypassing the registration endpoint. Admin accounts manage the
// book and theme catalog.
type CreateAdminCommand struct {
	Email        string
	Name         string
	Password     string
	DatabasePath string
	BcryptCost   int
}

// NewCreateAdminCommand creates a new CreateAdminCommand.
func NewCreateAdminCommand() *CreateAdminCommand {
	return &CreateAdminCommand{}
}

// ParseFlags parses command line flags.
func (cmd *CreateAdminCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)

	fs.StringVar(&cmd.Email, "email", "", "Email address for the admin account (required)")
	fs.StringVar(&cmd.Name, "name", "Administrator", "Display name for the admin account")
	fs.StringVar(&cmd.Password, "password", "", "Password for the admin account (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.IntVar(&cmd.BcryptCost, "bcrypt-cost", 12, "bcrypt cost factor for the password hash")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-admin -email <email> -password <password> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an administrator account for catalog management.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Email == "" {
		return fmt.Errorf("-email is required")
	}
	if cmd.Password == "" {
		return fmt.Errorf("-password is required")
	}

	return nil
}

// Run creates the admin account.
func (cmd *CreateAdminCommand) Run() error {
	hash, err := auth.HashPassword(cmd.Password, cmd.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	user, err := users.NewRepository(db.DB).CreateUser(&entities.User{
		Email:        cmd.Email,
		PasswordHash: hash,
		Name:         cmd.Name,
		Tier:         entities.UserTierAdmin,
		IsActive:     true,
	}, nil)
	if err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}

	fmt.Printf("Created admin account %s (id %d)\n", user.Email, user.ID)
	return nil
}
