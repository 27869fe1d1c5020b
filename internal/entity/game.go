package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	WinnerTie = "-"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is a session between a human and the minimax bot.
type Game struct {
	ID        string   `json:"id"`
	Board     Board    `json:"board"`
	Winner    string   `json:"winner"`
	Status    string   `json:"status"`
	Turn      Mark     `json:"player_turn,omitempty"`
	HumanMark Mark     `json:"human_mark"`
	BotMark   Mark     `json:"bot_mark"`
	Moves     []Action `json:"moves,omitempty"`
}

func NewGame(id string, humanMark Mark) *Game {
	return &Game{
		ID:        id,
		Board:     InitialState(),
		Turn:      PlayerX,
		Status:    StatusOngoing,
		HumanMark: humanMark,
		BotMark:   humanMark.Opponent(),
	}
}

// UpdateGameState - derives winner, status and turn from the board.
func (that *Game) UpdateGameState() {
	if winner, ok := that.Board.Winner(); ok {
		that.Winner = string(winner)
		that.Status = StatusFinished
		that.Turn = ""
		return
	}

	// no line and no empty cell left
	if that.Board.IsFull() {
		that.Winner = WinnerTie
		that.Status = StatusFinished
		that.Turn = ""
		return
	}

	that.Status = StatusOngoing
	that.Turn = that.Board.Player()
}

func (that *Game) MakeTurn(playerMark Mark, action Action) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Board.Player() != playerMark {
		return apperror.ErrNotYourTurn
	}

	board, err := that.Board.Result(action)
	if err != nil {
		return fmt.Errorf("failed to apply action: %w", err)
	}

	that.Board = board
	that.Moves = append(that.Moves, action)

	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsBotTurn() bool {
	return that.IsOngoing() && that.Turn == that.BotMark
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
