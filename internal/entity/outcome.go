package entity

import "encoding/json"

// Line is a triple of board indexes that wins the game when uniformly marked.
type Line [3]int

// Lines lists every winnable line: rows, then columns, then diagonals.
var Lines = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Result string

const (
	ResultInProgress Result = "in_progress"
	ResultWin        Result = "win"
	ResultTie        Result = "tie"
)

// Outcome is the result of evaluating a board. Winner and Line are only meaningful for ResultWin.
type Outcome struct {
	Result Result `json:"result"`
	Winner Cell   `json:"winner,omitempty"`
	Line   Line   `json:"line"`
}

type outcomeJSON struct {
	Result Result `json:"result"`
	Winner Cell   `json:"winner,omitempty"`
	Line   *Line  `json:"line,omitempty"`
}

// MarshalJSON writes the line only for a win, so a renderer never highlights the zero line.
func (that Outcome) MarshalJSON() ([]byte, error) {
	out := outcomeJSON{Result: that.Result}

	if that.Result == ResultWin {
		line := that.Line
		out.Winner = that.Winner
		out.Line = &line
	}

	return json.Marshal(out)
}

func (that *Outcome) UnmarshalJSON(data []byte) error {
	var in outcomeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*that = Outcome{Result: in.Result}

	if in.Result == ResultWin {
		that.Winner = in.Winner
		if in.Line != nil {
			that.Line = *in.Line
		}
	}

	return nil
}

func InProgress() Outcome {
	return Outcome{Result: ResultInProgress}
}

func Win(winner Cell, line Line) Outcome {
	return Outcome{Result: ResultWin, Winner: winner, Line: line}
}

func Tie() Outcome {
	return Outcome{Result: ResultTie}
}

func (that Outcome) IsTerminal() bool {
	return that.Result == ResultWin || that.Result == ResultTie
}

// Contains reports whether index belongs to the winning line.
func (that Outcome) Contains(index int) bool {
	if that.Result != ResultWin {
		return false
	}

	for _, cell := range that.Line {
		if cell == index {
			return true
		}
	}

	return false
}

func (that Outcome) String() string {
	switch that.Result {
	case ResultWin:
		return "winner: " + string(that.Winner)
	case ResultTie:
		return "tie"
	default:
		return "in progress"
	}
}

// Tally counts finished games for the lifetime of the process.
type Tally struct {
	X   int `json:"x"`
	O   int `json:"o"`
	Tie int `json:"tie"`
}

// Record - folds a finished outcome into the tally. Non-terminal outcomes are ignored.
func (that *Tally) Record(outcome Outcome) {
	switch outcome.Result {
	case ResultWin:
		switch outcome.Winner {
		case MarkX:
			that.X++
		case MarkO:
			that.O++
		}
	case ResultTie:
		that.Tie++
	case ResultInProgress:
	}
}
