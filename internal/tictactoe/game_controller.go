package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
	"github.com/rocketscienceinc/xo-engine/internal/entity"
)

// Evaluate - determines the outcome of any board. Lines are checked in declaration order,
// so on an invalid board holding several complete lines the first one wins.
func Evaluate(board entity.Board) entity.Outcome {
	for _, line := range entity.Lines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return entity.Win(a, line)
		}
	}

	// the game will continue until all the squares are full
	if board.IsFull() {
		return entity.Tie()
	}

	return entity.InProgress()
}

// CanMove - reports whether the human may place a mark at cell.
func CanMove(game *entity.Game, cell int) bool {
	return validateHumanMove(game, cell) == nil
}

func validateHumanMove(game *entity.Game, cell int) error {
	if game.IsBotTurn() {
		return apperror.ErrNotYourTurn
	}

	return validateMove(game, game.Board.Turn(), cell)
}

// MakeTurn - places mark at cell and re-evaluates the outcome.
func MakeTurn(game *entity.Game, mark entity.Cell, cell int) error {
	if err := validateMove(game, mark, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	board, err := game.Board.Place(cell, mark)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	game.Board = board
	game.Outcome = Evaluate(board)

	return nil
}

// MakeHumanTurn - applies the human's move, including the check that the bot is not due.
func MakeHumanTurn(game *entity.Game, cell int) error {
	if err := validateHumanMove(game, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	return MakeTurn(game, game.Board.Turn(), cell)
}

// validateMove - checks if the move is valid.
func validateMove(game *entity.Game, mark entity.Cell, cell int) error {
	occupied, err := game.Board.IsOccupied(cell)
	if err != nil {
		return err
	}

	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if game.Board.Turn() != mark {
		return apperror.ErrNotYourTurn
	}

	if occupied {
		return apperror.ErrCellOccupied
	}

	return nil
}
