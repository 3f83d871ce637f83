package entity

import (
	"testing"

	"github.com/rocketscienceinc/xo-engine/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_IsOccupied(t *testing.T) {
	t.Run("Returns true for a marked cell", func(t *testing.T) {
		// Given: a board with X in the center
		board := Board{4: MarkX}

		// When: checking the center cell
		occupied, err := board.IsOccupied(4)

		// Then: it should be occupied
		require.NoError(t, err)
		assert.True(t, occupied)
	})

	t.Run("Returns false for an empty cell", func(t *testing.T) {
		// Given: an empty board
		board := Board{}

		// When: checking a corner
		occupied, err := board.IsOccupied(0)

		// Then: it should be free
		require.NoError(t, err)
		assert.False(t, occupied)
	})

	t.Run("Error on index out of range", func(t *testing.T) {
		board := Board{}

		for _, index := range []int{-1, 9, 20} {
			_, err := board.IsOccupied(index)
			assert.ErrorIs(t, err, apperror.ErrIndexOutOfRange, "index %d", index)
		}
	})
}

func TestBoard_Place(t *testing.T) {
	t.Run("Returns a new board and keeps the original untouched", func(t *testing.T) {
		// Given: an empty board
		board := Board{}

		// When: placing X at cell 2
		next, err := board.Place(2, MarkX)

		// Then: only the new board holds the mark
		require.NoError(t, err)
		assert.Equal(t, MarkX, next[2])
		assert.Equal(t, EmptyCell, board[2])
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a board with X at cell 0
		board := Board{0: MarkX}

		// When: O tries to take the same cell
		next, err := board.Place(0, MarkO)

		// Then: ErrCellOccupied is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, board, next)
	})

	t.Run("Error on index out of range", func(t *testing.T) {
		_, err := Board{}.Place(9, MarkX)

		assert.ErrorIs(t, err, apperror.ErrIndexOutOfRange)
	})
}

func TestBoard_IsFull(t *testing.T) {
	assert.False(t, Board{}.IsFull())
	assert.False(t, Board{MarkX, MarkO, MarkX, MarkO, MarkX, MarkO, MarkO, MarkX}.IsFull())
	assert.True(t, Board{MarkX, MarkO, MarkX, MarkO, MarkX, MarkO, MarkO, MarkX, MarkO}.IsFull())
}

func TestBoard_Turn(t *testing.T) {
	t.Run("X moves first", func(t *testing.T) {
		assert.Equal(t, MarkX, Board{}.Turn())
	})

	t.Run("O moves after X", func(t *testing.T) {
		assert.Equal(t, MarkO, Board{4: MarkX}.Turn())
	})

	t.Run("X moves when counts are equal", func(t *testing.T) {
		assert.Equal(t, MarkX, Board{0: MarkX, 4: MarkO}.Turn())
	})
}

func TestBoard_IsValid(t *testing.T) {
	assert.True(t, Board{}.IsValid())
	assert.True(t, Board{0: MarkX}.IsValid())
	assert.False(t, Board{0: MarkO}.IsValid())
	assert.False(t, Board{0: MarkX, 1: MarkX}.IsValid())
}

func TestBoard_EmptyCells(t *testing.T) {
	// Given: a board with three marks
	board := Board{0: MarkX, 4: MarkO, 8: MarkX}

	// When: listing empty cells
	cells := board.EmptyCells()

	// Then: the remaining indexes are returned in order
	assert.Equal(t, []int{1, 2, 3, 5, 6, 7}, cells)
}

func TestBoard_String(t *testing.T) {
	board := Board{MarkX, MarkO, EmptyCell, EmptyCell, MarkX, EmptyCell, EmptyCell, EmptyCell, MarkO}

	assert.Equal(t, "X|O| \n |X| \n | |O", board.String())
}

func TestCell_Opponent(t *testing.T) {
	assert.Equal(t, MarkO, MarkX.Opponent())
	assert.Equal(t, MarkX, MarkO.Opponent())
	assert.Equal(t, EmptyCell, EmptyCell.Opponent())
}
