package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-solver/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solver/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solver/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solver/internal/service"
	"github.com/rocketscienceinc/tictactoe-solver/internal/tictactoe"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	StartGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	MakeTurn(w http.ResponseWriter, r *http.Request)
	Hint(w http.ResponseWriter, r *http.Request)
	Resign(w http.ResponseWriter, r *http.Request)
	Solve(w http.ResponseWriter, r *http.Request)
}

type gamePlayService interface {
	StartGame(ctx context.Context, humanMark entity.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, action entity.Action) (*entity.Game, error)
	Hint(ctx context.Context, gameID string) (entity.Action, error)
	Resign(ctx context.Context, gameID string) error

	Solve(board entity.Board) (tictactoe.Evaluation, error)
}

type handlers struct {
	logger   *slog.Logger
	gamePlay gamePlayService
}

func NewHandlers(logger *slog.Logger, gamePlay gamePlayService) Handlers {
	return &handlers{
		logger:   logger.With("component", "rest"),
		gamePlay: gamePlay,
	}
}

type startGameRequest struct {
	Mark string `json:"mark"`
}

type solveRequest struct {
	Board *entity.Board `json:"board"`
}

type hintResponse struct {
	Action entity.Action `json:"action"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) StartGame(w http.ResponseWriter, r *http.Request) {
	var req startGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, "StartGame", http.StatusBadRequest, err)
		return
	}

	mark, err := entity.ParseMark(req.Mark)
	if err != nil {
		that.handleError(w, "StartGame", err)
		return
	}

	game, err := that.gamePlay.StartGame(r.Context(), mark)
	if err != nil {
		that.handleError(w, "StartGame", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gamePlay.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.handleError(w, "GetGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var action entity.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		that.writeError(w, "MakeTurn", http.StatusBadRequest, err)
		return
	}

	game, err := that.gamePlay.MakeTurn(r.Context(), chi.URLParam(r, "id"), action)
	if err != nil {
		that.handleError(w, "MakeTurn", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) Hint(w http.ResponseWriter, r *http.Request) {
	action, err := that.gamePlay.Hint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.handleError(w, "Hint", err)
		return
	}

	that.writeJSON(w, http.StatusOK, hintResponse{Action: action})
}

func (that *handlers) Resign(w http.ResponseWriter, r *http.Request) {
	if err := that.gamePlay.Resign(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.handleError(w, "Resign", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) Solve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, "Solve", http.StatusBadRequest, err)
		return
	}

	if req.Board == nil {
		that.handleError(w, "Solve", fmt.Errorf("%w: board is missing", apperror.ErrInvalidBoard))
		return
	}

	evaluation, err := that.gamePlay.Solve(*req.Board)
	if err != nil {
		that.handleError(w, "Solve", err)
		return
	}

	that.writeJSON(w, http.StatusOK, evaluation)
}

// handleError - maps domain errors onto HTTP status codes.
func (that *handlers) handleError(w http.ResponseWriter, method string, err error) {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		that.writeError(w, method, http.StatusNotFound, err)
	case errors.Is(err, apperror.ErrInvalidAction),
		errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, apperror.ErrInvalidBoard):
		that.writeError(w, method, http.StatusBadRequest, err)
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, service.ErrNoAvailableMoves):
		that.writeError(w, method, http.StatusConflict, err)
	default:
		that.writeError(w, method, http.StatusInternalServerError, err)
	}
}

func (that *handlers) writeError(w http.ResponseWriter, method string, status int, err error) {
	log := that.logger.With("method", method)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "error", err)
	} else {
		log.Debug("request rejected", "status", status, "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
