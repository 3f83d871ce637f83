package apperror

import "errors"

var (
	ErrIndexOutOfRange   = errors.New("cell index out of range")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrUnknownMode       = errors.New("unknown game mode")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)
