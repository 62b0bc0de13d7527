package users

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/crucial707/todo-api/cmd/cli/client"
	"github.com/crucial707/todo-api/cmd/cli/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ==========================
// CLI Command Init
// ==========================
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users and authentication",
		Long: `Register or login a user to the Todo API.
Stores the JWT token locally for future commands.`,
	}

	usersCmd.AddCommand(registerCmd(), loginCmd(), logoutCmd())
	rootCmd.AddCommand(usersCmd)
}

type credentials struct {
	username string
	password string
}

func (c *credentials) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&c.username, "username", "u", "", "username (prompted when omitted)")
	cmd.Flags().StringVarP(&c.password, "password", "p", "", "password (prompted when omitted)")
}

// ==========================
// Register User
// ==========================
func registerCmd() *cobra.Command {
	var creds credentials
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Long:  "Register a new user with username and password.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := creds.prompt(cmd); err != nil {
				return err
			}

			var resp struct {
				Message string `json:"message"`
			}
			err := client.New("").Do(cmd.Context(), http.MethodPost, "/api/register", creds.payload(), &resp)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Message+". You can now login.")
			return nil
		},
	}
	creds.bind(cmd)
	return cmd
}

// ==========================
// Login User
// ==========================
func loginCmd() *cobra.Command {
	var creds credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login an existing user",
		Long:  "Login and save the JWT token locally for future CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := creds.prompt(cmd); err != nil {
				return err
			}

			var resp struct {
				Message string `json:"message"`
				Token   string `json:"token"`
			}
			err := client.New("").Do(cmd.Context(), http.MethodPost, "/api/login", creds.payload(), &resp)
			if err != nil {
				return err
			}
			if resp.Token == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}

			if err := config.SaveToken(resp.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Message+". Token stored locally.")
			return nil
		},
	}
	creds.bind(cmd)
	return cmd
}

// ==========================
// Logout User
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout current user",
		Long:  "Remove the locally saved JWT token.",
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := config.DeleteToken()
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), "No user logged in.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out successfully.")
			return nil
		},
	}
}

func (c *credentials) payload() map[string]string {
	return map[string]string{"username": c.username, "password": c.password}
}

// prompt asks for whatever was not given as a flag. The password is read
// without echo when stdin is a terminal.
func (c *credentials) prompt(cmd *cobra.Command) error {
	in := cmd.InOrStdin()
	reader := bufio.NewReader(in)
	out := cmd.ErrOrStderr()

	if c.username == "" {
		fmt.Fprint(out, "Username: ")
		line, err := readLine(reader)
		if err != nil {
			return err
		}
		c.username = strings.TrimSpace(line)
	}

	if c.password == "" {
		fmt.Fprint(out, "Password: ")
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			b, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(out)
			if err != nil {
				return err
			}
			c.password = string(b)
		} else {
			line, err := readLine(reader)
			if err != nil {
				return err
			}
			c.password = line
		}
	}
	return nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
