package tictactoe

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
)

// Minimax - returns the optimal action for the player to move.
// It reports false when the board is terminal and there is nothing to play.
func Minimax(board entity.Board) (entity.Action, bool) {
	if board.Terminal() {
		return entity.Action{}, false
	}

	maximizing := board.Player() == entity.PlayerX

	bestScore := math.MaxInt
	if maximizing {
		bestScore = math.MinInt
	}

	var bestAction entity.Action
	for _, action := range board.Actions() {
		next := mustResult(board, action)

		// an immediate win (or the last free cell) is taken without looking further
		if next.Terminal() {
			return action, true
		}

		if maximizing {
			if score := MinValue(next); score > bestScore {
				bestScore, bestAction = score, action
			}
			continue
		}

		if score := MaxValue(next); score < bestScore {
			bestScore, bestAction = score, action
		}
	}

	return bestAction, true
}

// MaxValue - returns the best utility X can force from this board.
func MaxValue(board entity.Board) int {
	if board.Terminal() {
		return board.Utility()
	}

	value := math.MinInt
	for _, action := range board.Actions() {
		value = max(value, MinValue(mustResult(board, action)))
	}

	return value
}

// MinValue - returns the best utility O can force from this board.
func MinValue(board entity.Board) int {
	if board.Terminal() {
		return board.Utility()
	}

	value := math.MaxInt
	for _, action := range board.Actions() {
		value = min(value, MaxValue(mustResult(board, action)))
	}

	return value
}

// mustResult applies an action taken from board.Actions(), which cannot be rejected.
func mustResult(board entity.Board, action entity.Action) entity.Board {
	next, err := board.Result(action)
	if err != nil {
		panic(err)
	}
	return next
}
