package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Christosun/flotech-report-system/models"
	"github.com/Christosun/flotech-report-system/sec"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var userFlags struct {
	email    string
	name     string
	role     string
	password string
}

var useraddCmd = &cobra.Command{
	Use:   "useradd",
	Short: "Create a login. The password is read from stdin unless --password is given",
	Args:  cobra.NoArgs,
	RunE:  runUseradd,
}

func init() {
	f := useraddCmd.Flags()
	f.StringVar(&userFlags.email, "email", "", "login email")
	f.StringVar(&userFlags.name, "name", "", "display name")
	f.StringVar(&userFlags.role, "role", models.RoleEngineer, "admin or engineer")
	f.StringVar(&userFlags.password, "password", "", "plain password, avoid in shared shells")
	_ = useraddCmd.MarkFlagRequired("email")
}

func runUseradd(cmd *cobra.Command, _ []string) error {
	if userFlags.role != models.RoleAdmin && userFlags.role != models.RoleEngineer {
		return fmt.Errorf("unknown role %q", userFlags.role)
	}
	password := userFlags.password
	if password == "" {
		var err error
		if password, err = readPassword(cmd.InOrStdin()); err != nil {
			return err
		}
	}
	hash, err := sec.HashPassword(password)
	if err != nil {
		return err
	}

	c, cancel, err := initCore(cmd.Context())
	if err != nil {
		return err
	}
	defer cancel()
	defer c.ResourceCleanUp()
	if err = c.PrepareSQLDatabases(); err != nil {
		return err
	}
	st, err := c.Stores()
	if err != nil {
		return err
	}
	u := &models.User{
		Name:         userFlags.name,
		Email:        userFlags.email,
		PasswordHash: hash,
		Role:         userFlags.role,
	}
	if err = st.Users.Create(cmd.Context(), u); err != nil {
		return err
	}
	zap.L().Info("user created", zap.Int64("user_id", u.ID), zap.String("role", u.Role))
	fmt.Fprintf(cmd.OutOrStdout(), "user %d created\n", u.ID)
	return nil
}

// readPassword takes the first line of r
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("no password on stdin")
	}
	return line, nil
}
