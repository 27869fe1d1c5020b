package entity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

const boardSize = 3

// Mark identifies one of the two players.
type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"
)

// Cell is the content of a single square: EmptyCell or the cell form of a Mark.
type Cell string

const EmptyCell Cell = ""

// Board is a 3x3 grid stored by value, so every copy is independent.
type Board [boardSize][boardSize]Cell

// Action is a (row, column) coordinate on the board.
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// winLines lists the lines in evaluation order: rows, columns, primary diagonal, secondary diagonal.
var winLines = [8][3]Action{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// ParseMark - converts a raw string into a player mark.
func ParseMark(raw string) (Mark, error) {
	switch Mark(raw) {
	case PlayerX:
		return PlayerX, nil
	case PlayerO:
		return PlayerO, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidMark, raw)
	}
}

func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Mark) Cell() Cell {
	return Cell(that)
}

// Mark - returns the mark held by the cell, false for an empty cell.
func (that Cell) Mark() (Mark, bool) {
	switch Mark(that) {
	case PlayerX, PlayerO:
		return Mark(that), true
	default:
		return "", false
	}
}

func (that Action) InBounds() bool {
	return that.Row >= 0 && that.Row < boardSize && that.Col >= 0 && that.Col < boardSize
}

func (that Action) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

// InitialState - returns the empty starting board.
func InitialState() Board {
	return Board{}
}

// Count - returns the number of cells holding the given mark.
func (that Board) Count(mark Mark) int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if cell == mark.Cell() {
				count++
			}
		}
	}
	return count
}

// Player - returns the mark whose turn it is. X always opens.
func (that Board) Player() Mark {
	if that.Count(PlayerX) > that.Count(PlayerO) {
		return PlayerO
	}
	return PlayerX
}

// Actions - returns every empty cell once, in row-major order.
func (that Board) Actions() []Action {
	actions := make([]Action, 0, boardSize*boardSize)
	for row := range that {
		for col, cell := range that[row] {
			if cell == EmptyCell {
				actions = append(actions, Action{Row: row, Col: col})
			}
		}
	}
	return actions
}

// Result - returns the board after the player to move marks the given cell.
// The receiver is left untouched.
func (that Board) Result(action Action) (Board, error) {
	if !action.InBounds() || that[action.Row][action.Col] != EmptyCell {
		return that, fmt.Errorf("%w: %s", apperror.ErrInvalidAction, action)
	}

	next := that
	next[action.Row][action.Col] = that.Player().Cell()

	return next, nil
}

// Winner - returns the mark that completed a line. X is checked before O.
func (that Board) Winner() (Mark, bool) {
	for _, mark := range [...]Mark{PlayerX, PlayerO} {
		if that.hasLine(mark) {
			return mark, true
		}
	}
	return "", false
}

func (that Board) hasLine(mark Mark) bool {
	for _, line := range winLines {
		if that.at(line[0]) == mark.Cell() && that.at(line[1]) == mark.Cell() && that.at(line[2]) == mark.Cell() {
			return true
		}
	}
	return false
}

func (that Board) at(action Action) Cell {
	return that[action.Row][action.Col]
}

// Validate - checks that every cell is empty or holds a mark, that X opened
// the game with the players alternating since, and that nobody moved after a win.
func (that Board) Validate() error {
	for row := range that {
		for col, cell := range that[row] {
			if _, ok := cell.Mark(); !ok && cell != EmptyCell {
				return fmt.Errorf("%w: cell %s holds %q", apperror.ErrInvalidBoard, Action{Row: row, Col: col}, cell)
			}
		}
	}

	xCount, oCount := that.Count(PlayerX), that.Count(PlayerO)
	if xCount != oCount && xCount != oCount+1 {
		return fmt.Errorf("%w: %d X marks against %d O marks", apperror.ErrInvalidBoard, xCount, oCount)
	}

	xWon, oWon := that.hasLine(PlayerX), that.hasLine(PlayerO)
	switch {
	case xWon && oWon:
		return fmt.Errorf("%w: both players completed a line", apperror.ErrInvalidBoard)
	case xWon && xCount != oCount+1:
		return fmt.Errorf("%w: O moved after X had won", apperror.ErrInvalidBoard)
	case oWon && xCount != oCount:
		return fmt.Errorf("%w: X moved after O had won", apperror.ErrInvalidBoard)
	}

	return nil
}

// UnmarshalJSON - accepts exactly three rows of three cells. Anything else is
// rejected rather than truncated or zero-filled.
func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Cell
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidBoard, err)
	}

	if len(rows) != boardSize {
		return fmt.Errorf("%w: %d rows, want %d", apperror.ErrInvalidBoard, len(rows), boardSize)
	}

	var board Board
	for i, row := range rows {
		if len(row) != boardSize {
			return fmt.Errorf("%w: row %d has %d cells, want %d", apperror.ErrInvalidBoard, i, len(row), boardSize)
		}
		copy(board[i][:], row)
	}

	*that = board

	return nil
}

func (that Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}
	return true
}

// Terminal - reports whether the game on this board is over.
func (that Board) Terminal() bool {
	if _, ok := that.Winner(); ok {
		return true
	}
	return that.IsFull()
}

// Utility - returns 1 when X has won, -1 when O has won and 0 otherwise.
func (that Board) Utility() int {
	winner, ok := that.Winner()
	switch {
	case !ok:
		return 0
	case winner == PlayerX:
		return 1
	default:
		return -1
	}
}

func (that Board) String() string {
	var sb strings.Builder
	for i, row := range that {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, cell := range row {
			if cell == EmptyCell {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(string(cell))
		}
	}
	return sb.String()
}
