// Package xo is the game-state engine of a 3x3 mark-placement game. A presentation layer creates a Session,
// forwards clicks to AttemptMove and renders the snapshots it receives through Subscribe.
package xo

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/xo-engine/internal/config"
	"github.com/rocketscienceinc/xo-engine/internal/entity"
	"github.com/rocketscienceinc/xo-engine/internal/logger"
	"github.com/rocketscienceinc/xo-engine/internal/service"
	"github.com/rocketscienceinc/xo-engine/internal/tictactoe"
	"github.com/rocketscienceinc/xo-engine/internal/usecase"
)

type (
	Cell       = entity.Cell
	Board      = entity.Board
	Line       = entity.Line
	Outcome    = entity.Outcome
	Result     = entity.Result
	Tally      = entity.Tally
	Mode       = entity.Mode
	Difficulty = entity.Difficulty

	Config   = config.Config
	Session  = usecase.Session
	Settings = usecase.Settings
	Snapshot = usecase.Snapshot
	State    = usecase.State
)

const (
	EmptyCell = entity.EmptyCell
	MarkX     = entity.MarkX
	MarkO     = entity.MarkO

	PlayerVsPlayer   = entity.PlayerVsPlayer
	PlayerVsComputer = entity.PlayerVsComputer

	EasyDifficulty   = entity.EasyDifficulty
	MediumDifficulty = entity.MediumDifficulty
	HardDifficulty   = entity.HardDifficulty

	StateAwaitingHumanMove     = usecase.StateAwaitingHumanMove
	StateAwaitingAutomatedMove = usecase.StateAwaitingAutomatedMove
	StateTerminal              = usecase.StateTerminal
)

// Evaluate reports whether board is won, tied or still in progress.
func Evaluate(board Board) Outcome {
	return tictactoe.Evaluate(board)
}

// LoadConfig - reads the yaml file at path, or only the environment when path is empty.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return config.LoadFromEnv()
	}

	return config.Load(path)
}

// NewLogger - creates the JSON logger configured by conf.
func NewLogger(w io.Writer, conf *Config) *slog.Logger {
	return logger.New(w, conf.LogLevel)
}

// NewSession - wires a session with the default strategist and the real clock.
func NewSession(log *slog.Logger, conf *Config) (*Session, error) {
	settings, err := conf.Settings()
	if err != nil {
		return nil, err
	}

	session, err := usecase.NewSession(log, service.NewBotService(nil), nil, settings)
	if err != nil {
		return nil, fmt.Errorf("could not create session: %w", err)
	}

	return session, nil
}
