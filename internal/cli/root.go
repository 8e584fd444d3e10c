// Package cli implements the pbctl command tree. Each command group plays the
// role of one page of the PocketBuddy web client and is gated through the
// guard package before touching the backend.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	pocketbuddy "github.com/pocketbuddy/pocketbuddy-go"
	"github.com/pocketbuddy/pocketbuddy-go/guard"
	"github.com/pocketbuddy/pocketbuddy-go/session"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool
	force   bool
)

var rootCmd = &cobra.Command{
	Use:   "pbctl",
	Short: "PocketBuddy command-line client",
	Long: `pbctl talks to a PocketBuddy school server: account management,
grades, classes and subjects, AI source uploads, the AI chat assistant,
and generated flashcards and quizzes.

Configuration is read from ~/.pbctl.yaml and PBCTL_* environment
variables. The login credential is stored under the user config dir and
reused across invocations.

Examples:
  pbctl login admin@pocketbuddy.sk
  pbctl users list
  pbctl grades create "1. ročník" --order 1
  pbctl chat send <chat-id> "Vysvetli mi Pytagorovu vetu"
  pbctl quiz "Pytagorova veta" --questions 5`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(os.Stderr, "%s %v\n", colorRed("✗"), err)
	}
	return err
}

// errReported marks errors already rendered by printError so Execute does not
// print them twice.
var errReported = errors.New("reported")

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.pbctl.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output machine-readable JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every request")
	rootCmd.PersistentFlags().String("backend", "", "backend origin (default http://localhost:8000)")

	_ = viper.BindPFlag("backend_url", rootCmd.PersistentFlags().Lookup("backend"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".pbctl")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("PBCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("backend_url", pocketbuddy.DefaultBaseURL)
	viper.SetDefault("timeout", pocketbuddy.DefaultTimeout)

	_ = viper.ReadInConfig()
}

// app bundles the client and session for one invocation.
type app struct {
	client *pocketbuddy.Client
	store  *session.Store
}

// newApp builds the client from config, wires the session store and restores
// the persisted credential. The session is settled (authenticated or
// anonymous) when newApp returns.
func newApp(ctx context.Context) (*app, error) {
	opts := []pocketbuddy.Option{
		pocketbuddy.WithBaseURL(viper.GetString("backend_url")),
		pocketbuddy.WithTimeout(viper.GetDuration("timeout")),
	}
	if verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, pocketbuddy.WithLogger(logger))
	}

	client := pocketbuddy.NewClient(opts...)

	credPath, err := session.DefaultCredentialPath()
	if err != nil {
		return nil, err
	}
	store := session.New(client, session.NewFileStore(credPath))
	store.Restore(ctx)

	return &app{client: client, store: store}, nil
}

// requireAuth gates a protected command on the restored session, mirroring
// the web client's route guard. An empty role set admits any authenticated
// user.
func (a *app) requireAuth(roles ...pocketbuddy.Role) error {
	var role pocketbuddy.Role
	if user := a.store.Identity(); user != nil {
		role = user.Role
	}

	switch guard.Decide(a.store.Status(), role, roles, guard.PageProtected) {
	case guard.Render:
		return nil
	case guard.RedirectLogin:
		return fmt.Errorf("not logged in (run `pbctl login <email>`)")
	case guard.RedirectHome:
		return fmt.Errorf("this command requires one of roles: %s", joinRoles(roles))
	default:
		return fmt.Errorf("session not resolved")
	}
}

// requireAnonymous gates public-only commands (login, register).
func (a *app) requireAnonymous() error {
	var role pocketbuddy.Role
	if user := a.store.Identity(); user != nil {
		role = user.Role
	}
	if guard.Decide(a.store.Status(), role, nil, guard.PagePublicOnly) == guard.RedirectHome {
		return fmt.Errorf("already logged in (run `pbctl logout` first)")
	}
	return nil
}

func joinRoles(roles []pocketbuddy.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

// cmdContext returns the per-command context.
func cmdContext(cmd *cobra.Command) context.Context {
	return cmd.Context()
}

// admin-only shorthand used by several command groups.
var adminOnly = []pocketbuddy.Role{pocketbuddy.RoleAdmin}

// staffOnly admits admins and teachers.
var staffOnly = []pocketbuddy.Role{pocketbuddy.RoleAdmin, pocketbuddy.RoleTeacher}

// timeoutFor bounds interactive waits that may run long (AI generation).
func timeoutFor(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d)
}
