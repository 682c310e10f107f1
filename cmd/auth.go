package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/desertthunder/recipes/internal/shared"
	"github.com/urfave/cli/v3"
)

const logoutReason = "logout"

// AuthLogin signs in with Google, or stores the ID token given with --token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	token := cmd.String("token")
	if token == "" {
		t, err := r.login(ctx, r.promptLogin)
		if err != nil {
			return err
		}
		token = t
	}

	cred, err := r.session.Login(ctx, token)
	if err != nil {
		return err
	}
	r.logger.Info("signed in", "email", cred.Email)

	if cred.Email != "" {
		return r.writePlain("✓ Signed in as %s\n", cred.Email)
	}
	return r.writePlain("✓ Signed in\n")
}

func (r *Runner) promptLogin(authURL string) {
	r.writePlain("Opening your browser to sign in with Google.\n")
	r.writePlain("If it does not open, visit:\n\n  %s\n\n", authURL)
}

// AuthLogout clears the stored credential.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if !r.session.Authenticated() {
		return r.writePlain("Not signed in\n")
	}
	if err := r.session.Reset(logoutReason); err != nil {
		return err
	}
	return r.writePlain("✓ Signed out\n")
}

// AuthStatus prints the signed-in account.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	cred, ok := r.session.Credential()
	if !ok || !r.session.Authenticated() {
		r.writePlain("✗ Not signed in\n")
		return r.writePlain("Run `recipes auth login` to sign in.\n")
	}

	r.writePlain("✓ Signed in\n")
	if cred.Email != "" {
		r.writePlain("Account: %s\n", cred.Email)
	}
	if !cred.ExpiresAt.IsZero() {
		r.writePlain("Expires: %s\n", cred.ExpiresAt.Local().Format(time.RFC1123))
	}
	if r.api != nil {
		r.writePlain("Backend: %s\n", r.api.BaseURL())
	}
	return nil
}

// Setup creates the config file when missing and initializes the database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if cmd.Bool("rollback") {
		return r.rollback()
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		r.logger.Info("config file not found, creating from template", "path", path)
		if err := shared.CreateConfigFile(path); err != nil {
			return err
		}
		config, err := shared.LoadConfig(path)
		if err != nil {
			return err
		}
		config.ApplyEnv(r.getenv)
		r.config = config
	} else {
		r.logger.Info("using existing config", "path", path)
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	r.writePlain("✓ Setup complete\n")
	r.writePlain("Config: %s\n", path)
	r.writePlain("Database: %s\n", r.config.Database.Path)
	if !r.config.Auth.Configured() {
		r.writePlain("\nNext: add your Google OAuth client under [auth], then run `recipes auth login`.\n")
	}
	return nil
}

// rollback reverts the most recent schema migration. The next setup
// re-applies it.
func (r *Runner) rollback() error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	shared.ConfigureDatabase(db, r.config.Database)

	r.logger.Info("rolling back migration", "path", r.config.Database.Path)
	if err := shared.RollbackMigration(db); err != nil {
		return err
	}
	return r.writePlain("✓ Rolled back the latest migration\nRun `recipes setup` to re-apply it.\n")
}
