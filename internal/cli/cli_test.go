package cli_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessassist/internal/analysis"
	"github.com/vytor/chessassist/internal/cli"
	"github.com/vytor/chessassist/internal/config"
	"github.com/vytor/chessassist/internal/errors"
	"github.com/vytor/chessassist/internal/models"
	"github.com/vytor/chessassist/internal/services"
	"github.com/vytor/chessassist/internal/testutil"
	"github.com/vytor/chessassist/internal/testutil/mocks"
)

var configKeys = []string{
	"CHESS_COM_USERNAME", "STOCKFISH_PATH", "ANALYSIS_DEPTH", "ANALYSIS_TIME",
	"API_RATE_LIMIT", "CHESS_COM_API_URL", "LOG_LEVEL", "ADDR",
}

// clearEnv hides any configuration of the machine running the tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, envFile string, opts []cli.Option, args ...string) result {
	t.Helper()
	if envFile == "" {
		envFile = filepath.Join(t.TempDir(), "missing.env")
	}

	root := cli.NewRootCommand(opts...)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--env-file", envFile, "--no-color"}, args...))

	err := root.ExecuteContext(context.Background())
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

func fakeEngine(eval analysis.Evaluator) []cli.Option {
	return []cli.Option{
		cli.WithEngineResolver(func(config.Config) (string, error) { return "/fake/stockfish", nil }),
		cli.WithEngineRunner(func(_ context.Context, _ services.AnalysisConfig, fn func(analysis.Evaluator) error) error {
			return fn(eval)
		}),
	}
}

func TestOpenings_Recommend(t *testing.T) {
	clearEnv(t)

	res := run(t, "", nil, "openings", "--color", "white", "--count", "2")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Openings for white:")
	assert.Contains(t, res.stdout, "Italian Game")
	assert.Contains(t, res.stdout, "Ruy Lopez")
	assert.NotContains(t, res.stdout, "English Opening")
	assert.NotContains(t, res.stdout, "Openings for black:")
}

func TestOpenings_NothingMatches(t *testing.T) {
	clearEnv(t)

	res := run(t, "", nil, "openings", "--color", "black", "--min-success", "0.99")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "no opening matches these filters")
}

func TestOpenings_Details(t *testing.T) {
	clearEnv(t)

	res := run(t, "", nil, "openings", "--eco", "b20")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Sicilian Defense (B20)")
	assert.Contains(t, res.stdout, "Key ideas:")

	res = run(t, "", nil, "openings", "--moves", "1. e4 e6 2. d4 d5")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "French Defense (C00)")
}

func TestOpenings_BadFlags(t *testing.T) {
	clearEnv(t)

	res := run(t, "", nil, "openings", "--level", "wizard")
	assert.True(t, errors.HasCode(res.err, errors.ErrCodeValidation))

	res = run(t, "", nil, "openings", "--color", "green")
	assert.True(t, errors.HasCode(res.err, errors.ErrCodeValidation))

	res = run(t, "", nil, "openings", "--eco", "Z99")
	assert.True(t, errors.HasCode(res.err, errors.ErrCodeNotFound))
}

func TestStats_UsesConfiguredUsername(t *testing.T) {
	clearEnv(t)
	envFile := writeEnvFile(t, "CHESS_COM_USERNAME=alice\n")

	client := new(mocks.MockChessClient)
	client.On("GetPlayerProfile", mock.Anything, "alice").Return(models.PlayerProfile{Username: "alice", Title: "FM", Followers: 12}, nil)
	client.On("GetPlayerStats", mock.Anything, "alice").Return(models.PlayerStats{
		Ratings: map[string]models.RatingStats{
			"blitz": {Current: 1800, Best: 1900, Record: models.Record{Wins: 10, Draws: 2, Losses: 5}},
		},
	}, nil)
	client.On("FetchRecentGames", mock.Anything, "alice", 10).Return([]models.Game{{
		ID:          uuid.New(),
		WhitePlayer: "alice",
		BlackPlayer: "bob",
		Result:      "win",
		BlackResult: "resigned",
		TimeClass:   "blitz",
	}}, nil)

	res := run(t, envFile, []cli.Option{cli.WithClient(client)}, "stats")
	require.NoError(t, res.err)
	client.AssertExpectations(t)

	assert.Contains(t, res.stdout, "FM alice")
	assert.Contains(t, res.stdout, "10/2/5")
	assert.Contains(t, res.stdout, "Last 1 games: 1/0/0 (score 100%)")
}

func TestStats_RequiresUsername(t *testing.T) {
	clearEnv(t)

	res := run(t, "", []cli.Option{cli.WithClient(new(mocks.MockChessClient))}, "stats")
	assert.True(t, errors.HasCode(res.err, errors.ErrCodeValidation))
}

func TestStats_InvalidConfig(t *testing.T) {
	clearEnv(t)
	envFile := writeEnvFile(t, "ANALYSIS_DEPTH=0\n")

	res := run(t, envFile, []cli.Option{cli.WithClient(new(mocks.MockChessClient))}, "stats", "-u", "alice")
	assert.True(t, errors.HasCode(res.err, errors.ErrCodeConfig))
}

func TestGames(t *testing.T) {
	clearEnv(t)

	client := new(mocks.MockChessClient)
	client.On("FetchRecentGames", mock.Anything, "bob", 5).Return([]models.Game{{
		ID:          uuid.New(),
		URL:         "https://www.chess.com/game/live/1001",
		PGN:         testutil.ScholarsMatePGN,
		WhitePlayer: "alice",
		BlackPlayer: "bob",
		Result:      "win",
		BlackResult: "checkmated",
		TimeClass:   "rapid",
		EndTime:     time.Date(2024, 5, 12, 18, 30, 0, 0, time.UTC),
	}}, nil)

	res := run(t, "", []cli.Option{cli.WithClient(client)}, "games", "--username", "bob", "-n", "5")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "2024-05-12 18:30")
	assert.Contains(t, res.stdout, "black")
	assert.Contains(t, res.stdout, "alice")
	assert.Contains(t, res.stdout, "loss")
	assert.Contains(t, res.stdout, "Kings Pawn Opening Wayward Queen Attack")
}

func TestRepertoire(t *testing.T) {
	clearEnv(t)

	client := new(mocks.MockChessClient)
	client.On("FetchRecentGames", mock.Anything, "alice", 50).Return([]models.Game{
		{ID: uuid.New(), ECOURL: "https://www.chess.com/openings/Italian-Game", WhitePlayer: "alice", BlackPlayer: "bob"},
	}, nil)

	res := run(t, "", []cli.Option{cli.WithClient(client)}, "repertoire", "-u", "alice")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Games analysed: 1")
	assert.Contains(t, res.stdout, "Italian Game")
	assert.Contains(t, res.stdout, "Ruy Lopez")
}

func TestAnalyze_PGNFile(t *testing.T) {
	clearEnv(t)
	pgnPath := filepath.Join(t.TempDir(), "game.pgn")
	require.NoError(t, os.WriteFile(pgnPath, []byte(testutil.ScholarsMatePGN), 0o600))

	eval := new(mocks.MockEvaluator)
	eval.ReturnScores(0.30, 0.30, 0.35, 0.10, 0.15, 0.10, math.Inf(1), math.Inf(1))

	res := run(t, "", fakeEngine(eval), "analyze", "--pgn", pgnPath)
	require.NoError(t, res.err)
	eval.AssertExpectations(t)

	assert.Contains(t, res.stdout, "Opening: C20")
	assert.Contains(t, res.stdout, "Qxf7#")
	assert.Contains(t, res.stdout, "+M")
	assert.Contains(t, res.stdout, "White (alice): accuracy 95.0 over 4 moves")
	assert.Contains(t, res.stdout, "Black (bob): accuracy 71.7 over 3 moves")
}

func TestAnalyze_JSON(t *testing.T) {
	clearEnv(t)
	pgnPath := filepath.Join(t.TempDir(), "game.pgn")
	require.NoError(t, os.WriteFile(pgnPath, []byte(testutil.SicilianPGN), 0o600))

	eval := new(mocks.MockEvaluator)
	eval.ReturnScores(0.2, 0.2, 0.2, 0.2, 0.2)

	res := run(t, "", fakeEngine(eval), "analyze", "--pgn", pgnPath, "--json")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"classification": "excellent"`)
}

func TestAnalyze_LatestGame(t *testing.T) {
	clearEnv(t)

	client := new(mocks.MockChessClient)
	client.On("FindRecentGame", mock.Anything, "alice", mock.Anything).Return(models.Game{
		ID:          uuid.New(),
		URL:         "https://www.chess.com/game/live/77",
		PGN:         testutil.SicilianPGN,
		WhitePlayer: "alice",
		BlackPlayer: "carol",
	}, true, nil)
	eval := new(mocks.MockEvaluator)
	eval.ReturnScores(0.2, 0.2, 0.2, 0.2, 0.2)

	opts := append(fakeEngine(eval), cli.WithClient(client))
	res := run(t, "", opts, "analyze", "-u", "alice")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Game:    https://www.chess.com/game/live/77")
}

func TestAnalyze_EngineMissing(t *testing.T) {
	clearEnv(t)

	missing := cli.WithEngineResolver(func(config.Config) (string, error) {
		return "", errors.NewConfigError("STOCKFISH_PATH", stderrors.New("stockfish not found"))
	})
	res := run(t, "", []cli.Option{missing}, "analyze", "--pgn", "whatever.pgn")
	assert.True(t, errors.HasCode(res.err, errors.ErrCodeConfig))
}

func TestAnalyze_UnreadableFile(t *testing.T) {
	clearEnv(t)

	res := run(t, "", fakeEngine(new(mocks.MockEvaluator)), "analyze", "--pgn", filepath.Join(t.TempDir(), "nope.pgn"))
	assert.True(t, errors.HasCode(res.err, errors.ErrCodeBadRequest))
}

func TestConfig_ShowAndSave(t *testing.T) {
	clearEnv(t)
	envFile := writeEnvFile(t, "CHESS_COM_USERNAME=alice\nANALYSIS_DEPTH=18\n")
	t.Setenv("API_RATE_LIMIT", "2.5")

	res := run(t, envFile, nil, "config", "show")
	require.NoError(t, res.err)
	assert.Regexp(t, `CHESS_COM_USERNAME\s+alice`, res.stdout)
	assert.Regexp(t, `ANALYSIS_DEPTH\s+18`, res.stdout)
	assert.Regexp(t, `API_RATE_LIMIT\s+2.5`, res.stdout)
	assert.Regexp(t, `STOCKFISH_PATH\s+\(unset\)`, res.stdout)

	out := filepath.Join(t.TempDir(), "saved.env")
	res = run(t, envFile, nil, "config", "save", "-o", out)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "configuration written to "+out)

	clearEnv(t)
	saved, err := config.Load(out)
	require.NoError(t, err)
	assert.Equal(t, "alice", saved.ChessComUsername)
	assert.Equal(t, 18, saved.AnalysisDepth)
	assert.Equal(t, 2.5, saved.APIRateLimit)
}

func TestConfig_Validate(t *testing.T) {
	clearEnv(t)
	resolver := cli.WithEngineResolver(func(config.Config) (string, error) { return "/opt/stockfish", nil })

	res := run(t, "", []cli.Option{resolver}, "config", "validate")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "configuration OK (engine: /opt/stockfish)")

	envFile := writeEnvFile(t, "ANALYSIS_TIME=-1\nLOG_LEVEL=LOUD\n")
	res = run(t, envFile, []cli.Option{resolver}, "config", "validate")
	require.Error(t, res.err)
	assert.True(t, errors.HasCode(res.err, errors.ErrCodeConfig))
	assert.Contains(t, cli.Describe(res.err), "ANALYSIS_TIME")
	assert.Contains(t, cli.Describe(res.err), "LOG_LEVEL")
}

func TestExecute_PrintsError(t *testing.T) {
	clearEnv(t)

	var stderr bytes.Buffer
	args := []string{"--env-file", filepath.Join(t.TempDir(), "none.env"), "openings", "--eco", "Z99"}
	err := cli.Execute(context.Background(), args, &stderr)
	require.Error(t, err)
	assert.Equal(t, "Error: opening not found: Z99\n", stderr.String())
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "plain", cli.Describe(stderrors.New("plain")))
	assert.Equal(t, "request to chess.com failed: dial tcp: refused",
		cli.Describe(errors.NewNetworkError("request to chess.com failed", stderrors.New("dial tcp: refused"))))
}
