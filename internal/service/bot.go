package service

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
	"github.com/rocketscienceinc/xo-engine/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// tacticalChance is the probability that the medium tier plays a tactical move.
const tacticalChance = 0.5

type BotService interface {
	SelectMove(board entity.Board, difficulty entity.Difficulty) (int, error)
}

type botService struct {
	rnd *rand.Rand
}

// NewBotService - creates a strategist backed by rnd. A nil rnd uses a randomly seeded source.
func NewBotService(rnd *rand.Rand) BotService {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint: gosec // it's ok
	}

	return &botService{rnd: rnd}
}

// SelectMove - picks a cell for the mark that is due on board.
func (that *botService) SelectMove(board entity.Board, difficulty entity.Difficulty) (int, error) {
	if board.IsFull() {
		return 0, ErrNoAvailableMoves
	}

	switch difficulty {
	case entity.EasyDifficulty:
		return that.randomMove(board), nil
	case entity.MediumDifficulty:
		// re-rolled on every move
		if that.rnd.Float64() < tacticalChance {
			return that.tacticalMove(board), nil
		}
		return that.randomMove(board), nil
	case entity.HardDifficulty:
		return that.tacticalMove(board), nil
	default:
		return 0, fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, difficulty)
	}
}

func (that *botService) randomMove(board entity.Board) int {
	return that.pick(board.EmptyCells())
}

// tacticalMove - win, block, center, corner, then any cell.
func (that *botService) tacticalMove(board entity.Board) int {
	mark := board.Turn()

	if cell, ok := findWinningMove(board, mark); ok {
		return cell
	}

	if cell, ok := findWinningMove(board, mark.Opponent()); ok {
		return cell
	}

	if board[entity.Center()] == entity.EmptyCell {
		return entity.Center()
	}

	freeCorners := make([]int, 0, len(entity.Corners()))
	for _, corner := range entity.Corners() {
		if board[corner] == entity.EmptyCell {
			freeCorners = append(freeCorners, corner)
		}
	}

	if len(freeCorners) > 0 {
		return that.pick(freeCorners)
	}

	return that.randomMove(board)
}

func (that *botService) pick(cells []int) int {
	return cells[that.rnd.IntN(len(cells))]
}

// findWinningMove - returns the cell that completes a line for mark.
// Within a line the empty cell is looked for last, then in the middle, then first.
func findWinningMove(board entity.Board, mark entity.Cell) (int, bool) {
	for _, line := range entity.Lines {
		a, b, c := line[0], line[1], line[2]

		switch {
		case board[a] == mark && board[b] == mark && board[c] == entity.EmptyCell:
			return c, true
		case board[a] == mark && board[c] == mark && board[b] == entity.EmptyCell:
			return b, true
		case board[b] == mark && board[c] == mark && board[a] == entity.EmptyCell:
			return a, true
		}
	}

	return 0, false
}
