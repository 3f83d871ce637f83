package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
)

// BoardSize is the number of cells on the board, indexed 0..8 in row-major order.
const BoardSize = 9

// Cell is the state of a single board cell.
type Cell string

const (
	EmptyCell Cell = ""
	MarkX     Cell = "X"
	MarkO     Cell = "O"
)

// Opponent returns the other mark. EmptyCell has no opponent.
func (that Cell) Opponent() Cell {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return EmptyCell
	}
}

// Board is a value type, so passing it around hands out an immutable snapshot.
type Board [BoardSize]Cell

var corners = [4]int{0, 2, 6, 8}

const center = 4

// Corners returns the corner indexes in ascending order.
func Corners() [4]int {
	return corners
}

// Center returns the index of the center cell.
func Center() int {
	return center
}

func checkIndex(index int) error {
	if index < 0 || index >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrIndexOutOfRange, index)
	}

	return nil
}

// IsOccupied - reports whether the cell at index holds a mark.
func (that Board) IsOccupied(index int) (bool, error) {
	if err := checkIndex(index); err != nil {
		return false, err
	}

	return that[index] != EmptyCell, nil
}

// Place - returns a copy of the board with mark placed at index.
func (that Board) Place(index int, mark Cell) (Board, error) {
	occupied, err := that.IsOccupied(index)
	if err != nil {
		return that, err
	}

	if occupied {
		return that, fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, index)
	}

	that[index] = mark

	return that, nil
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// EmptyCells returns the indexes of all empty cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) Count(mark Cell) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}

	return count
}

// Turn - X moves whenever both marks have been placed equally often.
func (that Board) Turn() Cell {
	if that.Count(MarkX) == that.Count(MarkO) {
		return MarkX
	}

	return MarkO
}

// IsValid reports whether the mark counts could have been reached by alternating play with X first.
func (that Board) IsValid() bool {
	diff := that.Count(MarkX) - that.Count(MarkO)
	return diff == 0 || diff == 1
}

// String renders the board as three rows, e.g. "X|O| ".
func (that Board) String() string {
	var sb strings.Builder

	for i, cell := range that {
		if cell == EmptyCell {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(string(cell))
		}

		switch {
		case i == BoardSize-1:
		case i%3 == 2:
			sb.WriteByte('\n')
		default:
			sb.WriteByte('|')
		}
	}

	return sb.String()
}
