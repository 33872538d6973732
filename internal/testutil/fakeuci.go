package testutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// FakeEngineEnv selects the behaviour of the scripted engine in a child process.
const FakeEngineEnv = "CHESSASSIST_FAKE_UCI"

// Fake engine behaviours.
const (
	EngineNormal = "normal" // cp 35 for the side to move, pv e2e4 e7e5
	EngineMate   = "mate"   // side to move mates in 3
	EngineMated  = "mated"  // side to move is mated in 2
	EngineCrash  = "crash"  // exits when a search starts
	EngineStop   = "stop"   // searches until told to stop
	EngineMute   = "mute"   // never answers the handshake
)

// FakeEngine writes an executable that re-runs the current test binary as a
// scripted UCI engine. testName must name a test in the calling package that
// calls ServeFakeEngineIfRequested.
func FakeEngine(t *testing.T, testName, mode string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fakefish")
	script := fmt.Sprintf("#!/bin/sh\nexec '%s' -test.run='^%s$'\n", os.Args[0], testName)
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	t.Setenv(FakeEngineEnv, mode)
	return path
}

// ServeFakeEngineIfRequested turns the process into the scripted engine when
// it was started by FakeEngine, and exits once the engine quits.
func ServeFakeEngineIfRequested() {
	mode := os.Getenv(FakeEngineEnv)
	if mode == "" {
		return
	}
	ServeFakeEngine(os.Stdin, os.Stdout, mode)
	os.Exit(0)
}

// ServeFakeEngine speaks enough UCI for the engine client.
func ServeFakeEngine(in io.Reader, out io.Writer, mode string) {
	var fen string
	searching := false

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "uci":
			if mode == EngineMute {
				continue
			}
			fmt.Fprintln(out, "id name FakeFish")
			fmt.Fprintln(out, "option name Hash type spin default 16 min 1 max 1024")
			fmt.Fprintln(out, "uciok")
		case line == "isready":
			fmt.Fprintln(out, "readyok")
		case strings.HasPrefix(line, "position fen "):
			fen = strings.TrimPrefix(line, "position fen ")
		case strings.HasPrefix(line, "go"):
			switch mode {
			case EngineCrash:
				return
			case EngineStop:
				searching = true
				fmt.Fprintln(out, "info depth 1 score cp 12 pv e2e4")
				continue
			}
			writeSearch(out, mode, requestedDepth(line), fen)
		case line == "stop":
			if searching {
				fmt.Fprintln(out, "bestmove e2e4")
				searching = false
			}
		case line == "quit":
			return
		}
	}
}

func writeSearch(out io.Writer, mode string, depth int, fen string) {
	score := "cp 35"
	switch mode {
	case EngineMate:
		score = "mate 3"
	case EngineMated:
		score = "mate -2"
	}
	fmt.Fprintf(out, "info string evaluating %s\n", fen)
	fmt.Fprintln(out, "info depth 1 seldepth 1 score cp 900 lowerbound nodes 20")
	fmt.Fprintf(out, "info depth %d seldepth %d multipv 1 score %s nodes 4242 nps 100000 pv e2e4 e7e5\n", depth, depth+2, score)
	fmt.Fprintln(out, "bestmove e2e4 ponder e7e5")
}

func requestedDepth(goLine string) int {
	fields := strings.Fields(goLine)
	for i := 0; i+1 < len(fields); i++ {
		if fields[i] == "depth" {
			var d int
			fmt.Sscanf(fields[i+1], "%d", &d)
			return d
		}
	}
	return 0
}
