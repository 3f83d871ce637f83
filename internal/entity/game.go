package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
)

type Mode string

const (
	PlayerVsPlayer   Mode = "player_vs_player"
	PlayerVsComputer Mode = "player_vs_computer"
)

type Difficulty string

const (
	EasyDifficulty   Difficulty = "easy"
	MediumDifficulty Difficulty = "medium"
	HardDifficulty   Difficulty = "hard"
)

const (
	// HumanMark always moves first.
	HumanMark = MarkX
	// BotMark is played by the automated opponent in PlayerVsComputer mode.
	BotMark = MarkO
)

func ParseMode(value string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(value))); mode {
	case PlayerVsPlayer, PlayerVsComputer:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownMode, value)
	}
}

func ParseDifficulty(value string) (Difficulty, error) {
	switch difficulty := Difficulty(strings.ToLower(strings.TrimSpace(value))); difficulty {
	case EasyDifficulty, MediumDifficulty, HardDifficulty:
		return difficulty, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, value)
	}
}

// Game is the mutable state of one round. Outcome is kept in sync with Board by the tictactoe package.
type Game struct {
	Board      Board      `json:"board"`
	Outcome    Outcome    `json:"outcome"`
	Mode       Mode       `json:"mode"`
	Difficulty Difficulty `json:"difficulty"`
}

// NewGame - creates an empty round for the given mode.
func NewGame(mode Mode, difficulty Difficulty) *Game {
	return &Game{
		Outcome:    InProgress(),
		Mode:       mode,
		Difficulty: difficulty,
	}
}

func (that *Game) Turn() Cell {
	if that.IsFinished() {
		return EmptyCell
	}

	return that.Board.Turn()
}

func (that *Game) IsFinished() bool {
	return that.Outcome.IsTerminal()
}

func (that *Game) IsWithBot() bool {
	return that.Mode == PlayerVsComputer
}

// IsBotTurn reports whether the automated opponent is due to move.
func (that *Game) IsBotTurn() bool {
	return that.IsWithBot() && !that.IsFinished() && that.Board.Turn() == BotMark
}
