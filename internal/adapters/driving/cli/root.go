// Package cli provides the cobra command tree for grantcraft.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grantcraft-cli/internal/app"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driving"
	"github.com/custodia-labs/grantcraft-cli/internal/logger"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "grantcraft",
	Short: "Draft grant applications in your organisation's voice",
	Long: `grantcraft indexes an organisation's past grant applications, finds new
funding opportunities and drafts application sections grounded in the
organisation's own language.

Typical flow:
  grantcraft ingest            # parse and index past applications
  grantcraft discover          # list relevant opportunities
  grantcraft draft --pick 1    # draft an application for the top match`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config directory or .toml file (default ~/.grantcraft)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Runtime supplies what the commands need from outside the command tree.
type Runtime struct {
	// Version is printed by the version command.
	Version string

	// Build constructs the application context. Defaults to app.Load.
	Build func(opts app.Options) (*app.App, error)

	// Settings opens the settings service alone. Defaults to app.LoadSettings.
	Settings func(opts app.Options) (driving.SettingsService, error)
}

// session is the per-invocation state carried on the command context.
type session struct {
	rt  Runtime
	app *app.App
}

type sessionKey struct{}

// Execute runs the command tree. The application context is built on first
// use and closed before Execute returns.
func Execute(ctx context.Context, rt Runtime) error {
	if rt.Build == nil {
		rt.Build = app.Load
	}
	if rt.Settings == nil {
		rt.Settings = func(opts app.Options) (driving.SettingsService, error) {
			return app.LoadSettings(opts)
		}
	}

	s := &session{rt: rt}
	defer s.close()

	ctx = context.WithValue(ctx, sessionKey{}, s)
	setContext(rootCmd, ctx)
	return rootCmd.ExecuteContext(ctx)
}

// setContext replaces the context on every command in the tree. Cobra only
// propagates the root context to commands that have none yet.
func setContext(cmd *cobra.Command, ctx context.Context) {
	cmd.SetContext(ctx)
	for _, c := range cmd.Commands() {
		setContext(c, ctx)
	}
}

func (s *session) close() {
	if s.app == nil {
		return
	}
	if err := s.app.Close(); err != nil {
		logger.Warn("closing: %v", err)
	}
	s.app = nil
}

func sessionFor(cmd *cobra.Command) (*session, error) {
	s, ok := cmd.Context().Value(sessionKey{}).(*session)
	if !ok || s == nil {
		return nil, errors.New("grantcraft is not configured")
	}
	return s, nil
}

// appFor returns the application context, building it on first use.
func appFor(cmd *cobra.Command) (*app.App, error) {
	s, err := sessionFor(cmd)
	if err != nil {
		return nil, err
	}
	if s.app != nil {
		return s.app, nil
	}

	a, err := s.rt.Build(app.Options{ConfigPath: configPath})
	if err != nil {
		return nil, err
	}
	for _, w := range a.Warnings {
		logger.Debug("%s", w)
	}
	s.app = a
	return a, nil
}

// settingsFor returns the settings service without opening storage.
func settingsFor(cmd *cobra.Command) (driving.SettingsService, error) {
	s, err := sessionFor(cmd)
	if err != nil {
		return nil, err
	}
	if s.app != nil && s.app.Config != nil {
		return s.app.Config, nil
	}
	return s.rt.Settings(app.Options{ConfigPath: configPath})
}
