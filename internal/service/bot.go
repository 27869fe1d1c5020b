package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct {
	logger *slog.Logger
}

// NewBotService - returns a bot that always plays the minimax move.
func NewBotService(logger *slog.Logger) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
	}
}

func (that *botService) MakeTurn(game *entity.Game) error {
	action, ok := tictactoe.Minimax(game.Board)
	if !ok {
		return ErrNoAvailableMoves
	}

	if err := game.MakeTurn(game.BotMark, action); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	that.logger.Debug("bot made turn", "gameID", game.ID, "mark", game.BotMark, "action", action.String())

	return nil
}
