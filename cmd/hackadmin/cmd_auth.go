package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

// loginCmd exchanges credentials for a saved session
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and save the session",
	Long: `Log in to the admin backend. The password may also come from the
HACKADMIN_PASSWORD environment variable.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the saved session",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Admin email (required)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Admin password")
	loginCmd.MarkFlagRequired("email")
}

func runLogin(cmd *cobra.Command, args []string) error {
	p, err := LoadProfile(profilePath)
	if err != nil {
		return err
	}
	password := loginPassword
	if password == "" {
		password = os.Getenv("HACKADMIN_PASSWORD")
	}

	url := resolveBaseURL(p)
	ctx, cancel := commandContext()
	defer cancel()

	res, err := newServices(url).Auth.Login(ctx, loginEmail, password)
	if err != nil {
		return err
	}

	p.BaseURL = url
	p.Session = res.Session
	p.SavedAt = time.Now().UTC()
	if err := p.Save(profilePath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", res.Session.Subject, res.Session.Role)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	p, err := LoadProfile(profilePath)
	if err != nil {
		return err
	}
	p.Clear()
	if err := p.Save(profilePath); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	p, err := LoadProfile(profilePath)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !p.LoggedIn(time.Now()) {
		fmt.Fprintln(out, "Not logged in")
		return nil
	}
	fmt.Fprintf(out, "Subject:  %s\n", p.Session.Subject)
	fmt.Fprintf(out, "Role:     %s\n", p.Session.Role)
	if p.Session.Department != "" {
		fmt.Fprintf(out, "Dept:     %s\n", p.Session.Department)
	}
	fmt.Fprintf(out, "Backend:  %s\n", resolveBaseURL(p))
	if !p.Session.ExpiresAt.IsZero() {
		fmt.Fprintf(out, "Expires:  %s\n", p.Session.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}
