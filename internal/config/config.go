package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/vytor/chessassist/internal/errors"
	"github.com/vytor/chessassist/internal/logger"
)

// DefaultEnvFile is the key-value file read when no other path is given.
const DefaultEnvFile = ".env"

// Config is the runtime configuration. It is built once by Load and passed
// explicitly to the components that need it.
type Config struct {
	ChessComUsername string  `env:"CHESS_COM_USERNAME"`
	StockfishPath    string  `env:"STOCKFISH_PATH"`
	AnalysisDepth    int     `env:"ANALYSIS_DEPTH" envDefault:"15"`
	AnalysisTime     float64 `env:"ANALYSIS_TIME" envDefault:"2.0"`
	APIRateLimit     float64 `env:"API_RATE_LIMIT" envDefault:"1.0"`
	APIBaseURL       string  `env:"CHESS_COM_API_URL" envDefault:"https://api.chess.com/pub"`
	LogLevel         string  `env:"LOG_LEVEL" envDefault:"INFO"`
	Addr             string  `env:"ADDR" envDefault:":8080"`
}

// Entry is one KEY=value pair as it is shown or saved.
type Entry struct {
	Key   string
	Value string
}

// Load reads the optional key-value file at path and overlays the process
// environment on top of it. A missing file is not an error. The process
// environment is never modified.
func Load(path string) (Config, error) {
	vars := map[string]string{}
	if path != "" {
		fileVars, err := godotenv.Read(path)
		switch {
		case err == nil:
			vars = fileVars
		case stderrors.Is(err, fs.ErrNotExist):
			logger.Default().Debug("no env file at %s, using environment only", path)
		default:
			return Config{}, errors.NewConfigError(path, err)
		}
	}
	for k, v := range env.ToMap(os.Environ()) {
		if v != "" {
			vars[k] = v
		}
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, errors.NewConfigError("environment", err)
	}
	return cfg, nil
}

// Validate checks every value and reports all problems at once.
func (c Config) Validate() error {
	var errs []error

	if c.AnalysisDepth < 1 || c.AnalysisDepth > 30 {
		errs = append(errs, fmt.Errorf("ANALYSIS_DEPTH must be between 1 and 30, got %d", c.AnalysisDepth))
	}
	if c.AnalysisTime <= 0 {
		errs = append(errs, fmt.Errorf("ANALYSIS_TIME must be positive, got %g", c.AnalysisTime))
	}
	if c.APIRateLimit < 0 {
		errs = append(errs, fmt.Errorf("API_RATE_LIMIT cannot be negative, got %g", c.APIRateLimit))
	}
	if c.APIBaseURL == "" {
		errs = append(errs, stderrors.New("CHESS_COM_API_URL cannot be empty"))
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.NewConfigError("values", stderrors.Join(errs...))
}

// MoveTime is the per-position engine budget.
func (c Config) MoveTime() time.Duration {
	return time.Duration(c.AnalysisTime * float64(time.Second))
}

// RateLimit is the minimum gap between two chess.com requests.
func (c Config) RateLimit() time.Duration {
	return time.Duration(c.APIRateLimit * float64(time.Second))
}

// Entries lists the configuration in a stable order.
func (c Config) Entries() []Entry {
	return []Entry{
		{"CHESS_COM_USERNAME", c.ChessComUsername},
		{"STOCKFISH_PATH", c.StockfishPath},
		{"ANALYSIS_DEPTH", strconv.Itoa(c.AnalysisDepth)},
		{"ANALYSIS_TIME", strconv.FormatFloat(c.AnalysisTime, 'f', -1, 64)},
		{"API_RATE_LIMIT", strconv.FormatFloat(c.APIRateLimit, 'f', -1, 64)},
		{"CHESS_COM_API_URL", c.APIBaseURL},
		{"LOG_LEVEL", c.LogLevel},
		{"ADDR", c.Addr},
	}
}

// Save writes the configuration to path, skipping empty values.
func Save(path string, c Config) error {
	vars := make(map[string]string)
	for _, e := range c.Entries() {
		if e.Value != "" {
			vars[e.Key] = e.Value
		}
	}
	if err := godotenv.Write(vars, path); err != nil {
		return errors.NewConfigError(path, err)
	}
	return nil
}

// CommonStockfishPaths are probed when STOCKFISH_PATH is not set.
var CommonStockfishPaths = []string{
	"/usr/local/bin/stockfish",
	"/usr/bin/stockfish",
	"/opt/homebrew/bin/stockfish",
	"/usr/games/stockfish",
}

// ResolveStockfish returns an executable engine path. The configured path
// wins; otherwise PATH and the usual install locations are searched.
func (c Config) ResolveStockfish() (string, error) {
	if c.StockfishPath != "" {
		path, err := exec.LookPath(c.StockfishPath)
		if err != nil {
			return "", errors.NewConfigError("STOCKFISH_PATH", err)
		}
		return path, nil
	}

	if path, err := exec.LookPath("stockfish"); err == nil {
		return path, nil
	}
	for _, candidate := range CommonStockfishPaths {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", errors.NewConfigError("STOCKFISH_PATH", stderrors.New("stockfish not found; set STOCKFISH_PATH"))
}
