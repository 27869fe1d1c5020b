package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

type GamePlayService interface {
	StartGame(ctx context.Context, humanMark entity.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, action entity.Action) (*entity.Game, error)
	Hint(ctx context.Context, gameID string) (entity.Action, error)
	Resign(ctx context.Context, gameID string) error

	Solve(board entity.Board) (tictactoe.Evaluation, error)
}

type gamePlayService struct {
	logger *slog.Logger

	gameService GameService
	botService  BotService
}

func NewGamePlayService(logger *slog.Logger, gameService GameService, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:      logger.With("component", "gameplay"),
		gameService: gameService,
		botService:  botService,
	}
}

// StartGame - creates a game for the human. When the bot holds X it opens straight away.
func (that *gamePlayService) StartGame(ctx context.Context, humanMark entity.Mark) (*entity.Game, error) {
	game, err := that.gameService.CreateGame(ctx, humanMark)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}

		if err = that.gameService.UpdateGame(ctx, game); err != nil {
			return nil, fmt.Errorf("failed to update game: %w", err)
		}
	}

	that.logger.Info("game started", "gameID", game.ID, "humanMark", game.HumanMark)

	return game, nil
}

func (that *gamePlayService) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

// MakeTurn - plays the human's action and, unless that ended the game, the bot's reply.
func (that *gamePlayService) MakeTurn(ctx context.Context, gameID string, action entity.Action) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.MakeTurn(game.HumanMark, action); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		that.logger.Info("game finished", "gameID", game.ID, "winner", game.Winner)
	}

	return game, nil
}

// Hint - returns the minimax move for the human's current position.
func (that *gamePlayService) Hint(ctx context.Context, gameID string) (entity.Action, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return entity.Action{}, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return entity.Action{}, err
	}

	action, ok := tictactoe.Minimax(game.Board)
	if !ok {
		return entity.Action{}, ErrNoAvailableMoves
	}

	return action, nil
}

func (that *gamePlayService) Resign(ctx context.Context, gameID string) error {
	if err := that.gameService.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("failed to resign game: %w", err)
	}

	that.logger.Info("game resigned", "gameID", gameID)

	return nil
}

// Solve - evaluates an arbitrary well-formed board without touching any session.
func (that *gamePlayService) Solve(board entity.Board) (tictactoe.Evaluation, error) {
	if err := board.Validate(); err != nil {
		return tictactoe.Evaluation{}, fmt.Errorf("failed to solve board: %w", err)
	}

	return tictactoe.Evaluate(board), nil
}
