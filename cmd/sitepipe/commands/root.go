// Package commands implements the CLI commands for sitepipe.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/sitepipe/internal/app"
	"go.trai.ch/sitepipe/internal/build"
	"go.trai.ch/sitepipe/internal/core/domain"
	"go.trai.ch/sitepipe/internal/core/ports"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for sitepipe.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, name domain.TaskName) error
	Serve(ctx context.Context, opts app.ServeOptions) error
}

// jsonSetter is implemented by loggers that can switch to JSON output.
type jsonSetter interface {
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app. When logger supports
// JSON output it is switched over by the --json flag.
func New(a Application, logger ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "sitepipe",
		Short:         "Build pipeline for Hugo sites",
		Long:          "Build the site, its stylesheets, scripts and icon sprite, or serve it with live reload.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("chdir", "C", "", "Run as if started in this directory")
	rootCmd.PersistentFlags().Bool("json", false, "Log as JSON")

	c := &CLI{
		app:     a,
		logger:  logger,
		rootCmd: rootCmd,
	}
	rootCmd.PersistentPreRunE = c.prepare

	for _, t := range taskCommands {
		rootCmd.AddCommand(c.newTaskCmd(t.name, t.short))
	}
	rootCmd.AddCommand(c.newServerCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) prepare(cmd *cobra.Command, _ []string) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if l, ok := c.logger.(jsonSetter); ok {
			l.SetJSON(true)
		}
	}

	dir, _ := cmd.Flags().GetString("chdir")
	if dir == "" {
		return nil
	}
	if err := os.Chdir(dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to change directory"), "dir", dir)
	}
	return nil
}
