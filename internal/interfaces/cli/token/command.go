// Package token issues access tokens for scripts and service accounts.
package token

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/orris-inc/tracker/internal/infrastructure/auth"
	"github.com/orris-inc/tracker/internal/infrastructure/database"
	"github.com/orris-inc/tracker/internal/infrastructure/repository"
	"github.com/orris-inc/tracker/internal/interfaces/cli/bootstrap"
)

var (
	env      string
	username string
	ttl      time.Duration
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for an active user",
		Long:  `Print a bearer token for an active user without going through login. The default lifetime is auth.jwt.access_exp_minutes.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime, e.g. 720h")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	e, err := bootstrap.InitWithDatabase(bootstrap.MapEnvToMode(env))
	if err != nil {
		return err
	}
	defer database.Close()

	u, err := repository.NewUserRepository(database.Get()).GetByUsername(cmd.Context(), username)
	if err != nil {
		return err
	}
	if u == nil || !u.IsActive() {
		return fmt.Errorf("no active user %q", username)
	}

	jwt := e.Config.Auth.JWT
	token, expiresAt, err := auth.NewJWTService(jwt.Secret, jwt.Issuer, jwt.AccessExpMinutes).Generate(u.ID(), u.Username(), ttl)
	if err != nil {
		return err
	}

	e.Log.Infow("token issued", "user_id", u.ID(), "expires_at", expiresAt)
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
