package game

import (
	"sync"
	"time"

	"checkers/internal/checkers"
)

type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusLightWins Status = "light_wins"
	StatusDarkWins  Status = "dark_wins"
)

func winStatus(c checkers.Color) Status {
	if c == checkers.Light {
		return StatusLightWins
	}
	return StatusDarkWins
}

// statusOf 吃光对方或者轮到的一方无路可走，都算分出胜负
func statusOf(b *checkers.Board, turn checkers.Color) Status {
	if w := b.Winner(); w != checkers.NoColor {
		return winStatus(w)
	}
	if !b.HasMoves(turn) {
		return winStatus(turn.Other())
	}
	return StatusOngoing
}

type GameState struct {
	mu sync.Mutex

	ID        string
	Board     *checkers.Board
	Turn      checkers.Color
	Human     checkers.Color
	Status    Status
	History   []checkers.Move
	CreatedAt time.Time
	UpdatedAt time.Time
}

// commit 落子、换边、刷新状态；调用方持有 g.mu
func (g *GameState) commit(m checkers.Move) {
	g.Board.Apply(m)
	g.History = append(g.History, m)
	g.Turn = g.Turn.Other()
	g.Status = statusOf(g.Board, g.Turn)
	g.UpdatedAt = time.Now()
}

// Snapshot 对外只暴露拷贝，避免和后续走子竞争
type Snapshot struct {
	ID         string
	Board      *checkers.Board
	Turn       checkers.Color
	Human      checkers.Color
	Status     Status
	LastMove   *checkers.Move
	LegalMoves []checkers.Move
	Ply        int
	UpdatedAt  time.Time
}

func (g *GameState) snapshot() Snapshot {
	s := Snapshot{
		ID:        g.ID,
		Board:     g.Board.Clone(),
		Turn:      g.Turn,
		Human:     g.Human,
		Status:    g.Status,
		Ply:       len(g.History),
		UpdatedAt: g.UpdatedAt,
	}
	if n := len(g.History); n > 0 {
		m := g.History[n-1]
		s.LastMove = &m
	}
	if g.Status == StatusOngoing {
		s.LegalMoves = g.Board.Moves(g.Turn)
	}
	return s
}
