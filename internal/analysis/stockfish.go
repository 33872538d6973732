package analysis

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vytor/chessassist/internal/errors"
	"github.com/vytor/chessassist/internal/logger"
)

const (
	defaultDepth     = 15
	handshakeTimeout = 5 * time.Second
	closeTimeout     = 2 * time.Second
	stopTimeout      = time.Second
	// Extra time allowed past the search budget before a search is abandoned.
	searchGrace = 10 * time.Second
)

// Options bound a single search.
type Options struct {
	Depth    int
	MoveTime time.Duration
}

// EvalResult is the engine's verdict on one position.
type EvalResult struct {
	Score    float64  `json:"score"` // pawns from white's perspective, ±Inf for a forced mate
	Mate     *int     `json:"mate,omitempty"`
	BestMove string   `json:"best_move"`
	PV       []string `json:"pv,omitempty"`
	Depth    int      `json:"depth"`
	Nodes    int64    `json:"nodes"`
}

// IsMate reports whether the score is a forced mate.
func (r EvalResult) IsMate() bool {
	return r.Mate != nil
}

// Engine is a running UCI engine process. It is safe for use by one search at
// a time; concurrent callers are serialized.
type Engine struct {
	path string
	opts Options
	log  *logger.Logger

	mu    sync.Mutex
	cmd   *exec.Cmd
	stdin io.WriteCloser
	lines chan string
}

// Open starts the engine at path and completes the UCI handshake. The process
// is killed if the handshake fails.
func Open(ctx context.Context, path string, opts Options) (*Engine, error) {
	if path == "" {
		path = "stockfish"
	}
	return Start(ctx, exec.Command(path), opts)
}

// Start is Open for a command that is already configured, for example one
// with extra arguments or a custom environment.
func Start(ctx context.Context, cmd *exec.Cmd, opts Options) (*Engine, error) {
	if opts.Depth <= 0 {
		opts.Depth = defaultDepth
	}
	log := logger.FromContext(ctx).WithPrefix("stockfish").WithField("engine", cmd.Path)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errors.NewEngineError("cannot create engine stdin", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.NewEngineError("cannot create engine stdout", err)
	}

	log.Debug("starting engine")
	if err := cmd.Start(); err != nil {
		log.Error("failed to start engine: %v", err)
		return nil, errors.NewEngineError("cannot start engine", err)
	}

	e := &Engine{
		path:  cmd.Path,
		opts:  opts,
		log:   log,
		cmd:   cmd,
		stdin: stdin,
		lines: make(chan string, 64),
	}
	go e.readLoop(stdout)

	if err := e.handshake(ctx); err != nil {
		log.Error("UCI handshake failed: %v", err)
		e.kill()
		return nil, errors.NewEngineError("engine did not complete the UCI handshake", err)
	}

	log.Debug("engine ready: depth=%d movetime=%v", opts.Depth, opts.MoveTime)
	return e, nil
}

func (e *Engine) readLoop(r io.Reader) {
	defer close(e.lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		e.lines <- strings.TrimSpace(scanner.Text())
	}
}

func (e *Engine) handshake(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.sendLocked("uci"); err != nil {
		return err
	}
	if err := e.waitForLocked(ctx, "uciok", handshakeTimeout); err != nil {
		return err
	}
	return e.syncLocked(ctx)
}

func (e *Engine) syncLocked(ctx context.Context) error {
	if err := e.sendLocked("isready"); err != nil {
		return err
	}
	return e.waitForLocked(ctx, "readyok", handshakeTimeout)
}

// NewGame tells the engine that following positions belong to a new game.
func (e *Engine) NewGame(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd == nil {
		return errors.NewEngineError("engine is closed", nil)
	}
	if err := e.sendLocked("ucinewgame"); err != nil {
		return errors.NewEngineError("cannot reset engine", err)
	}
	if err := e.syncLocked(ctx); err != nil {
		return errors.NewEngineError("cannot reset engine", err)
	}
	return nil
}

// Evaluate searches the position given as FEN and returns the last exact
// score the engine reported together with its best move.
func (e *Engine) Evaluate(ctx context.Context, fen string) (EvalResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd == nil {
		return EvalResult{}, errors.NewEngineError("engine is closed", nil)
	}

	log := e.log.WithField("fen", fen)
	start := time.Now()

	if err := e.sendLocked("position fen " + fen); err != nil {
		return EvalResult{}, errors.NewEngineError("cannot set position", err)
	}
	if err := e.sendLocked(e.goCommand()); err != nil {
		return EvalResult{}, errors.NewEngineError("cannot start search", err)
	}

	blackToMove := sideToMove(fen) == "b"
	timer := time.NewTimer(e.searchTimeout())
	defer timer.Stop()

	var (
		result EvalResult
		cp     int
		mate   *int
		scored bool
	)
	for {
		select {
		case <-ctx.Done():
			log.Warn("evaluation cancelled: %v", ctx.Err())
			e.stopLocked()
			return EvalResult{}, ctx.Err()
		case <-timer.C:
			log.Error("evaluation timed out after %v", e.searchTimeout())
			e.stopLocked()
			return EvalResult{}, errors.NewEngineError("search timed out", nil)
		case line, ok := <-e.lines:
			if !ok {
				return EvalResult{}, errors.NewEngineError("engine exited during search", io.ErrUnexpectedEOF)
			}
			switch {
			case strings.HasPrefix(line, "info "):
				info, ok := parseInfo(line)
				if !ok {
					continue
				}
				result.Depth = info.depth
				result.Nodes = info.nodes
				if len(info.pv) > 0 {
					result.PV = info.pv
				}
				cp, mate, scored = info.cp, info.mate, true
			case strings.HasPrefix(line, "bestmove"):
				fields := strings.Fields(line)
				if len(fields) >= 2 && fields[1] != "(none)" {
					result.BestMove = fields[1]
				}
				if scored {
					result.Score, result.Mate = whitePerspective(cp, mate, blackToMove)
				}
				log.Debug("evaluation completed in %v: score=%.2f bestmove=%s depth=%d", time.Since(start), result.Score, result.BestMove, result.Depth)
				return result, nil
			}
		}
	}
}

func (e *Engine) goCommand() string {
	cmd := fmt.Sprintf("go depth %d", e.opts.Depth)
	if e.opts.MoveTime > 0 {
		cmd += fmt.Sprintf(" movetime %d", e.opts.MoveTime.Milliseconds())
	}
	return cmd
}

func (e *Engine) searchTimeout() time.Duration {
	return e.opts.MoveTime + searchGrace
}

// stopLocked interrupts a running search and discards its output so the
// next command starts from a clean stream.
func (e *Engine) stopLocked() {
	if err := e.sendLocked("stop"); err != nil {
		return
	}
	deadline := time.NewTimer(stopTimeout)
	defer deadline.Stop()
	for {
		select {
		case line, ok := <-e.lines:
			if !ok || strings.HasPrefix(line, "bestmove") {
				return
			}
		case <-deadline.C:
			e.log.Warn("engine did not acknowledge stop")
			return
		}
	}
}

// Close asks the engine to quit and kills it if it does not exit in time.
// Calling Close more than once is safe.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd == nil {
		return nil
	}
	cmd := e.cmd
	e.cmd = nil

	e.log.Debug("closing engine")
	_ = e.sendLocked("quit")
	_ = e.stdin.Close()

	deadline := time.NewTimer(closeTimeout)
	defer deadline.Stop()
	for {
		select {
		case _, ok := <-e.lines:
			if ok {
				continue
			}
			err := cmd.Wait()
			if err != nil {
				e.log.Debug("engine process exited: %v", err)
			} else {
				e.log.Debug("engine process exited cleanly")
			}
			return err
		case <-deadline.C:
			e.log.Warn("engine ignored quit, killing process")
			_ = cmd.Process.Kill()
			for range e.lines {
			}
			_ = cmd.Wait()
			return nil
		}
	}
}

func (e *Engine) kill() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd == nil {
		return
	}
	_ = e.stdin.Close()
	_ = e.cmd.Process.Kill()
	for range e.lines {
	}
	_ = e.cmd.Wait()
	e.cmd = nil
}

func (e *Engine) sendLocked(cmd string) error {
	_, err := io.WriteString(e.stdin, cmd+"\n")
	return err
}

func (e *Engine) waitForLocked(ctx context.Context, marker string, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return fmt.Errorf("timeout waiting for %s", marker)
		case line, ok := <-e.lines:
			if !ok {
				return stderrors.New("engine exited before " + marker)
			}
			if line == marker {
				return nil
			}
		}
	}
}

// WithEngine opens an engine, runs fn with it and always closes it, whether
// fn returns normally, returns an error or panics.
func WithEngine(ctx context.Context, path string, opts Options, fn func(*Engine) error) error {
	engine, err := Open(ctx, path, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := engine.Close(); cerr != nil {
			logger.FromContext(ctx).WithPrefix("stockfish").Debug("close: %v", cerr)
		}
	}()
	return fn(engine)
}

type infoLine struct {
	depth int
	nodes int64
	cp    int
	mate  *int
	pv    []string
}

// parseInfo extracts the score of an "info" line. Lines without a score, and
// bound scores reported mid-search, are rejected.
func parseInfo(line string) (infoLine, bool) {
	var info infoLine
	var scored bool

	fields := strings.Fields(line)
	for i := 1; i < len(fields); i++ {
		switch fields[i] {
		case "string":
			return infoLine{}, false
		case "depth":
			if i+1 < len(fields) {
				info.depth, _ = strconv.Atoi(fields[i+1])
				i++
			}
		case "nodes":
			if i+1 < len(fields) {
				info.nodes, _ = strconv.ParseInt(fields[i+1], 10, 64)
				i++
			}
		case "score":
			if i+2 >= len(fields) {
				return infoLine{}, false
			}
			v, err := strconv.Atoi(fields[i+2])
			if err != nil {
				return infoLine{}, false
			}
			switch fields[i+1] {
			case "cp":
				info.cp = v
			case "mate":
				info.mate = &v
			default:
				return infoLine{}, false
			}
			scored = true
			i += 2
		case "lowerbound", "upperbound":
			return infoLine{}, false
		case "pv":
			info.pv = append([]string(nil), fields[i+1:]...)
			i = len(fields)
		}
	}
	return info, scored
}

// whitePerspective converts a side-to-move score to pawns from white's side.
// Mate in N > 0 is a win for the side to move; mate 0 or negative is a loss.
func whitePerspective(cp int, mate *int, blackToMove bool) (float64, *int) {
	sign := 1.0
	if blackToMove {
		sign = -1.0
	}
	if mate != nil {
		if *mate > 0 {
			return sign * math.Inf(1), mate
		}
		return sign * math.Inf(-1), mate
	}
	return sign * float64(cp) / 100, nil
}

func sideToMove(fen string) string {
	parts := strings.Fields(fen)
	if len(parts) > 1 {
		return parts[1]
	}
	return "w"
}
