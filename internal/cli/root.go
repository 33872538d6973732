// Package cli wires configuration, logging and the services into the
// chessassist command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vytor/chessassist/internal/chesscom"
	"github.com/vytor/chessassist/internal/config"
	"github.com/vytor/chessassist/internal/errors"
	"github.com/vytor/chessassist/internal/logger"
	"github.com/vytor/chessassist/internal/services"
)

// app carries what the commands share once configuration is loaded.
type app struct {
	envFile  string
	logLevel string
	noColor  bool

	cfg config.Config
	log *logger.Logger

	// Overridable dependencies, set by options.
	client        chesscom.ClientInterface
	runner        services.EngineRunner
	resolveEngine func(config.Config) (string, error)
}

// Option replaces a dependency of the command tree.
type Option func(*app)

// WithClient makes every command use client instead of the chess.com API.
func WithClient(client chesscom.ClientInterface) Option {
	return func(a *app) {
		a.client = client
	}
}

// WithEngineRunner replaces the Stockfish process used for analysis.
func WithEngineRunner(runner services.EngineRunner) Option {
	return func(a *app) {
		a.runner = runner
	}
}

// WithEngineResolver replaces the lookup of the engine executable.
func WithEngineResolver(resolve func(config.Config) (string, error)) Option {
	return func(a *app) {
		a.resolveEngine = resolve
	}
}

// NewRootCommand builds the chessassist command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{
		resolveEngine: config.Config.ResolveStockfish,
	}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:           "chessassist",
		Short:         "Chess.com statistics, opening suggestions and engine game review",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", config.DefaultEnvFile, "key-value file with configuration")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "DEBUG, INFO, WARN or ERROR (overrides LOG_LEVEL)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable coloured log output")

	root.AddCommand(
		newAnalyzeCommand(a),
		newOpeningsCommand(a),
		newStatsCommand(a),
		newGamesCommand(a),
		newRepertoireCommand(a),
		newConfigCommand(a),
		newServeCommand(a),
	)
	return root
}

// setup loads configuration and installs the logger. Values are validated
// by the commands that depend on them so that "config" can still report a
// broken file.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = strings.ToUpper(a.logLevel)
	}
	a.cfg = cfg

	level, _ := logger.LookupLevel(cfg.LogLevel)
	a.log = logger.New(
		logger.WithLevel(level),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithColors(!a.noColor),
	)
	logger.SetDefault(a.log)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.NewContext(ctx, a.log))

	a.log.Debug("configuration loaded from %s", a.envFile)
	return nil
}

func (a *app) requireValid() error {
	return a.cfg.Validate()
}

func (a *app) chessClient() chesscom.ClientInterface {
	if a.client != nil {
		return a.client
	}
	a.client = chesscom.New(
		chesscom.WithBaseURL(a.cfg.APIBaseURL),
		chesscom.WithRateLimit(a.cfg.RateLimit()),
	)
	return a.client
}

// analysisService resolves the engine and builds the analysis use case.
// runner is used unless an override was installed; nil starts one engine per
// analysis.
func (a *app) analysisService(runner services.EngineRunner) (services.AnalysisService, error) {
	path, err := a.resolveEngine(a.cfg)
	if err != nil {
		return nil, err
	}
	a.log.Debug("using engine at %s", path)
	if a.runner != nil {
		runner = a.runner
	}
	return services.NewAnalysisService(a.chessClient(), services.NewAnalysisConfig(a.cfg, path), runner), nil
}

// username picks the flag value or falls back to CHESS_COM_USERNAME.
func (a *app) username(flag string) (string, error) {
	if u := strings.TrimSpace(flag); u != "" {
		return u, nil
	}
	if u := strings.TrimSpace(a.cfg.ChessComUsername); u != "" {
		return u, nil
	}
	return "", errors.NewValidationError("username", "pass --username or set CHESS_COM_USERNAME")
}

// Execute runs the command tree and prints a failure to stderr. It returns
// the error so the caller can choose the exit code.
func Execute(ctx context.Context, args []string, stderr io.Writer, opts ...Option) error {
	root := NewRootCommand(opts...)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", Describe(err))
	}
	return err
}

// Describe renders an error for a terminal user.
func Describe(err error) string {
	appErr, ok := errors.As(err)
	if !ok {
		return err.Error()
	}
	if appErr.Err != nil {
		return fmt.Sprintf("%s: %v", appErr.Message, appErr.Err)
	}
	return appErr.Message
}
