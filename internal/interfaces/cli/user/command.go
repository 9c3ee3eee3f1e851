// Package user holds account maintenance commands that must work before anyone
// can log in, such as creating the first superuser.
package user

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gorm.io/gorm"

	"github.com/orris-inc/tracker/internal/domain/user"
	vo "github.com/orris-inc/tracker/internal/domain/user/valueobjects"
	"github.com/orris-inc/tracker/internal/infrastructure/auth"
	"github.com/orris-inc/tracker/internal/infrastructure/database"
	"github.com/orris-inc/tracker/internal/infrastructure/repository"
	"github.com/orris-inc/tracker/internal/interfaces/cli/bootstrap"
)

var (
	env      string
	username string
	email    string
	password string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Account maintenance",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (development, test, production)")

	cmd.AddCommand(
		newCreateSuperuserCommand(),
		newSetPasswordCommand(),
	)

	return cmd
}

func newCreateSuperuserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-superuser",
		Short: "Create an active superuser account",
		Long:  `Create an active superuser. The password is read from --password, TRACKER_ADMIN_PASSWORD or an interactive prompt.`,
		RunE:  runCreateSuperuser,
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newSetPasswordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Replace a user's password",
		RunE:  runSetPassword,
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func runCreateSuperuser(cmd *cobra.Command, args []string) error {
	e, err := bootstrap.InitWithDatabase(bootstrap.MapEnvToMode(env))
	if err != nil {
		return err
	}
	defer database.Close()

	plain, err := readPassword(cmd)
	if err != nil {
		return err
	}

	var mail *vo.Email
	if email != "" {
		if mail, err = vo.NewEmail(email); err != nil {
			return err
		}
	}

	u, err := CreateSuperuser(cmd.Context(), database.Get(), auth.NewBcryptPasswordHasher(e.Config.Auth.BcryptCost), username, plain, mail)
	if err != nil {
		return err
	}

	e.Log.Infow("superuser created", "user_id", u.ID(), "username", u.Username())
	return nil
}

func runSetPassword(cmd *cobra.Command, args []string) error {
	e, err := bootstrap.InitWithDatabase(bootstrap.MapEnvToMode(env))
	if err != nil {
		return err
	}
	defer database.Close()

	plain, err := readPassword(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	repo := repository.NewUserRepository(database.Get())
	u, err := repo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("user %q not found", username)
	}

	pw, err := vo.NewPassword(plain)
	if err != nil {
		return err
	}
	if err := u.SetPassword(pw, auth.NewBcryptPasswordHasher(e.Config.Auth.BcryptCost)); err != nil {
		return err
	}
	if err := repo.Update(ctx, u); err != nil {
		return err
	}

	e.Log.Infow("password updated", "user_id", u.ID())
	return nil
}

// CreateSuperuser stores a new active superuser with the given password.
func CreateSuperuser(ctx context.Context, db *gorm.DB, hasher user.PasswordHasher, name, plain string, mail *vo.Email) (*user.User, error) {
	repo := repository.NewUserRepository(db)

	taken, err := repo.UsernameTaken(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("username %q is already taken", name)
	}

	u, err := user.NewUser(name, "", "", mail)
	if err != nil {
		return nil, err
	}
	pw, err := vo.NewPassword(plain)
	if err != nil {
		return nil, err
	}
	if err := u.SetPassword(pw, hasher); err != nil {
		return nil, err
	}
	u.SetSuperuser(true)

	if err := repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func readPassword(cmd *cobra.Command) (string, error) {
	if password != "" {
		return password, nil
	}
	if v := os.Getenv("TRACKER_ADMIN_PASSWORD"); v != "" {
		return v, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
