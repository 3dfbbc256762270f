package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sm8ta/hospital_frontend/internal/app"
	"github.com/sm8ta/hospital_frontend/internal/config"
)

// CLI owns the client session behind the commands. One-shot commands open
// and stop it per invocation; the shell keeps it open between lines.
type CLI struct {
	app    *app.App
	keep   bool
	titles io.Writer
	in     *bufio.Reader
}

const rootLong = `Sign in to the hospital backend, open role dashboards and run admin actions.

The default tab storage keeps the session for one invocation or one shell.
Use --storage origin to keep it on disk between invocations.`

func RootCmd() *cobra.Command {
	cobra.OnInitialize(initConfig)
	return (&CLI{}).rootCmd()
}

func (c *CLI) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hospitalctl",
		Short:         "Hospital management client",
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			viper.BindPFlags(cmd.Flags())
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("api-url", "", "base URL of the hospital backend (API_URL)")
	flags.String("storage", "", "session storage: tab, origin or redis (SESSION_STORAGE)")
	flags.String("log-level", "", "log level (LOG_LEVEL)")
	viper.BindPFlag("API_URL", flags.Lookup("api-url"))
	viper.BindPFlag("SESSION_STORAGE", flags.Lookup("storage"))
	viper.BindPFlag("LOG_LEVEL", flags.Lookup("log-level"))

	cmd.AddCommand(c.loginCmd())
	cmd.AddCommand(c.logoutCmd())
	cmd.AddCommand(c.whoamiCmd())
	cmd.AddCommand(c.openCmd())
	cmd.AddCommand(c.doctorCmd())
	cmd.AddCommand(c.patientCmd())
	if !c.keep {
		cmd.AddCommand(c.shellCmd())
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	return cmd
}

func InitAndExecute() {
	if err := RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig() {
	viper.AutomaticEnv()
}

// withApp runs fn against the session, opening it first if needed.
func (c *CLI) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if c.app == nil {
		cfg, err := config.New()
		if err != nil {
			return errors.Wrap(err, "failed to load config")
		}
		a, err := app.New(ctx, cfg, c.titles)
		if err != nil {
			return errors.Wrap(err, "failed to start client")
		}
		c.app = a
	}
	if !c.keep {
		defer c.close()
	}
	return fn(ctx, c.app)
}

func (c *CLI) close() {
	if c.app != nil {
		c.app.Stop()
		c.app = nil
	}
}
