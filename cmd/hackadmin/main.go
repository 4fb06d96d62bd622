package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"hackadmin/internal/backend"
	"hackadmin/internal/config"
	"hackadmin/internal/container"
	"hackadmin/internal/service"
	"hackadmin/internal/session"
	"hackadmin/pkg/errors"
	"hackadmin/pkg/logger"
)

var (
	profilePath string
	baseURL     string
	timeout     time.Duration
	verbose     bool

	log *logger.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hackadmin",
	Short: "Hackathon admin console from the terminal",
	Long: `hackadmin talks to the hackathon admin backend with a saved login.

Log in once with 'hackadmin login', then list results, manage judges and
download CSV exports. The session is kept in ~/.hackadmin.yaml.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		level := "warn"
		if verbose {
			level = "debug"
		}
		log = logger.NewConsole(level)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", DefaultProfilePath(), "Profile file holding the saved login")
	rootCmd.PersistentFlags().StringVar(&baseURL, "backend", "", "Admin backend URL (or set BACKEND_BASE_URL env)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "Backend request timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(judgesCmd)
	rootCmd.AddCommand(dashboardCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errors.MessageOf(err, err.Error()))
		os.Exit(1)
	}
}

// resolveBaseURL picks the flag, then the profile, then the environment
func resolveBaseURL(p *Profile) string {
	switch {
	case baseURL != "":
		return baseURL
	case p.BaseURL != "":
		return p.BaseURL
	case os.Getenv("BACKEND_BASE_URL") != "":
		return os.Getenv("BACKEND_BASE_URL")
	default:
		return "http://localhost:5000"
	}
}

// newServices wires the console services without cache or audit database
func newServices(url string) *service.Services {
	cfg := &config.Config{
		BackendBaseURL: url,
		BackendTimeout: timeout,
		PageSessionTTL: time.Minute,
	}
	return container.NewServices(backend.New(url, timeout, log), nil, nil, cfg, log)
}

// loggedIn loads the profile and returns services plus the saved session
func loggedIn() (*service.Services, session.Context, error) {
	p, err := LoadProfile(profilePath)
	if err != nil {
		return nil, session.Context{}, err
	}
	if !p.LoggedIn(time.Now()) {
		return nil, session.Context{}, errors.NewMissingAuthError()
	}
	return newServices(resolveBaseURL(p)), p.Session, nil
}

func commandContext() (context.Context, context.CancelFunc) {
	// exports walk every page; allow several backend round trips
	return context.WithTimeout(context.Background(), 10*timeout)
}
