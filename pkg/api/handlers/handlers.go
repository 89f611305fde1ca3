package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/cbodonnell/flipmatch/pkg/game/constants"
	"github.com/cbodonnell/flipmatch/pkg/game/types"
	"github.com/cbodonnell/flipmatch/pkg/log"
	"github.com/cbodonnell/flipmatch/pkg/queue"
	"github.com/cbodonnell/flipmatch/pkg/repositories"
	"github.com/cbodonnell/flipmatch/pkg/state"
)

// GameController runs session operations on the game loop.
type GameController interface {
	StartGame(ctx context.Context, rows, columns int) error
	SelectCard(ctx context.Context, cardID int) error
	SaveGame(ctx context.Context) error
	LoadGame(ctx context.Context) (bool, error)
	EndGame(ctx context.Context) error
	Pause(ctx context.Context, paused bool) error
	Quit(ctx context.Context) error
}

type StartGameRequest struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

type LoadGameResponse struct {
	Loaded bool        `json:"loaded"`
	View   *state.View `json:"view"`
}

type ResumableResponse struct {
	Resumable bool `json:"resumable"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func HandleStartGame(controller GameController, stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := StartGameRequest{Rows: constants.DefaultRows, Columns: constants.DefaultColumns}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Failed to decode request body"})
			return
		}
		if err := controller.StartGame(r.Context(), req.Rows, req.Columns); err != nil {
			writeError(w, err)
			return
		}
		writeView(w, r, stateManager, http.StatusCreated)
	}
}

func HandleGetGame(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeView(w, r, stateManager, http.StatusOK)
	}
}

func HandleSelectCard(controller GameController, stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cardID, err := strconv.Atoi(mux.Vars(r)["cardID"])
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Failed to parse cardID"})
			return
		}
		if err := controller.SelectCard(r.Context(), cardID); err != nil {
			writeError(w, err)
			return
		}
		writeView(w, r, stateManager, http.StatusOK)
	}
}

func HandleSaveGame(controller GameController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := controller.SaveGame(r.Context()); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func HandleLoadGame(controller GameController, stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loaded, err := controller.LoadGame(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		view, err := stateManager.Get(r.Context())
		if err != nil {
			log.Error("failed to get game view: %v", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to get game view"})
			return
		}
		writeJSON(w, http.StatusOK, LoadGameResponse{Loaded: loaded, View: view})
	}
}

func HandleEndGame(controller GameController, stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := controller.EndGame(r.Context()); err != nil {
			writeError(w, err)
			return
		}
		writeView(w, r, stateManager, http.StatusOK)
	}
}

// HandleResumable reports whether a saved game can be loaded.
func HandleResumable(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repository == nil {
			writeJSON(w, http.StatusOK, ResumableResponse{})
			return
		}
		exists, err := repositories.PreviousGameExists(r.Context(), repository)
		if err != nil {
			log.Error("failed to read resumable flag: %v", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to read resumable flag"})
			return
		}
		writeJSON(w, http.StatusOK, ResumableResponse{Resumable: exists})
	}
}

func HandlePause(controller GameController, paused bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := controller.Pause(r.Context(), paused); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func HandleQuit(controller GameController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := controller.Quit(r.Context()); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeView(w http.ResponseWriter, r *http.Request, stateManager state.StateManager, status int) {
	view, err := stateManager.Get(r.Context())
	if err != nil {
		log.Error("failed to get game view: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to get game view"})
		return
	}
	writeJSON(w, status, view)
}

// writeError maps core errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrInvalidConfiguration):
		status = http.StatusBadRequest
	case errors.Is(err, types.ErrUnknownCard):
		status = http.StatusNotFound
	case errors.Is(err, types.ErrCardNotSelectable), errors.Is(err, types.ErrNoActiveGame):
		status = http.StatusConflict
	case errors.Is(err, types.ErrPersistenceUnavailable), errors.Is(err, queue.ErrQueueFull):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	default:
		log.Error("failed to handle request: %v", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}
