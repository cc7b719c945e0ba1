package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"checkers/internal/checkers"
	"checkers/internal/config"
	"checkers/internal/engine"
	"checkers/internal/server/game"
)

// Handler 持有对局管理和运行期配置，负责 /api/* 与 /ws/*
type Handler struct {
	games *game.Manager
	cfg   *config.Store
	hub   *Hub
}

func NewHandler(games *game.Manager, cfg *config.Store) *Handler {
	h := &Handler{
		games: games,
		cfg:   cfg,
		hub:   NewHub(),
	}
	games.OnChange(func(s game.Snapshot) {
		h.hub.Broadcast(s.ID, wsMessage{Type: "state", Payload: mustMarshal(stateFromSnapshot(s))})
	})
	return h
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}

// writeError 把领域错误映射成状态码
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		code = http.StatusNotFound
	case errors.Is(err, game.ErrGameOver):
		code = http.StatusConflict
	case errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, checkers.ErrIllegalMove),
		errors.Is(err, checkers.ErrNoPiece),
		errors.Is(err, config.ErrInvalidConfig):
		code = http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		code = http.StatusGatewayTimeout
	}
	if code == http.StatusInternalServerError {
		log.Printf("[http] internal error: %v", err)
	}
	http.Error(w, err.Error(), code)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	return true
}

// squareFromDTO 先按 int 检查范围再转换，Square 是 int8，直接转会回绕
func squareFromDTO(v int) (checkers.Square, bool) {
	if v < 0 || v >= checkers.NumSquares {
		return checkers.NoSquare, false
	}
	return checkers.Square(v), true
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	human := h.cfg.Get().Human()
	if req.HumanColor != "" {
		c, err := checkers.ParseColor(req.HumanColor)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		human = c
	}
	s := h.games.NewGame(human)
	log.Printf("[game] new game %s, human=%s", s.ID, human)
	writeJSON(w, stateFromSnapshot(s))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if !decode(w, r, &req) {
		return
	}
	s, err := h.games.Get(req.GameID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, stateFromSnapshot(s))
}

func (h *Handler) handleLegalMoves(w http.ResponseWriter, r *http.Request) {
	var req LegalMovesRequest
	if !decode(w, r, &req) {
		return
	}
	sq, ok := squareFromDTO(req.Square)
	if !ok {
		http.Error(w, "square out of range", http.StatusBadRequest)
		return
	}
	moves, err := h.games.LegalMoves(req.GameID, sq)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, LegalMovesResponse{Square: req.Square, Moves: movesToDTO(moves)})
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if !decode(w, r, &req) {
		return
	}
	from, okFrom := squareFromDTO(req.Move.From)
	to, okTo := squareFromDTO(req.Move.To)
	if !okFrom || !okTo {
		http.Error(w, "square out of range", http.StatusBadRequest)
		return
	}
	s, err := h.games.Play(req.GameID, from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, stateFromSnapshot(s))
}

func (h *Handler) handleAiMove(w http.ResponseWriter, r *http.Request) {
	var req AiMoveRequest
	if !decode(w, r, &req) {
		return
	}

	cfg := h.cfg.Get().Search()
	if req.MaxDepth > 0 {
		cfg.Depth = req.MaxDepth
	}
	if req.Strategy != "" {
		st, err := engine.ParseStrategy(req.Strategy)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		cfg.Strategy = st
	}
	if req.TimeMs > 0 {
		cfg.TimeLimit = time.Duration(req.TimeMs) * time.Millisecond
	}

	s, res, err := h.games.EngineMove(r.Context(), req.GameID, cfg)
	if err != nil {
		writeError(w, err)
		return
	}
	log.Printf("[ai] game %s: %s depth=%d score=%d nodes=%d in %v",
		req.GameID, cfg.Strategy, res.Depth, res.Score, res.Nodes, res.TimeUsed)

	writeJSON(w, AiMoveResponse{
		BestMove: moveToDTO(res.Move),
		Score:    res.Score,
		Depth:    res.Depth,
		Nodes:    res.Nodes,
		TimeMs:   res.TimeUsed.Milliseconds(),
		Strategy: cfg.Strategy.String(),
		State:    stateFromSnapshot(s),
	})
}

func (h *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.cfg.Get())
}

// handleSetConfig 在当前配置上覆盖请求里给出的字段
func (h *Handler) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	next := h.cfg.Get()
	if !decode(w, r, &next) {
		return
	}
	if err := h.cfg.Update(next); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, h.cfg.Get())
}
