package tictactoe

import "github.com/rocketscienceinc/tictactoe-solver/internal/entity"

// Evaluation describes a position as seen by a perfect player.
type Evaluation struct {
	Board    entity.Board   `json:"board"`
	Turn     entity.Mark    `json:"player_turn,omitempty"`
	Terminal bool           `json:"terminal"`
	Winner   entity.Mark    `json:"winner,omitempty"`
	Value    int            `json:"value"`
	Action   *entity.Action `json:"action,omitempty"`
}

// Evaluate - solves the board: its game-theoretic value from X's point of view
// and, unless the game is over, the move minimax recommends.
func Evaluate(board entity.Board) Evaluation {
	evaluation := Evaluation{
		Board:    board,
		Terminal: board.Terminal(),
	}

	if evaluation.Terminal {
		evaluation.Winner, _ = board.Winner()
		evaluation.Value = board.Utility()
		return evaluation
	}

	evaluation.Turn = board.Player()
	if evaluation.Turn == entity.PlayerX {
		evaluation.Value = MaxValue(board)
	} else {
		evaluation.Value = MinValue(board)
	}

	if action, ok := Minimax(board); ok {
		evaluation.Action = &action
	}

	return evaluation
}
