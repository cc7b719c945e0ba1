package main

import (
	"context"
	"testing"

	"checkers/internal/checkers"
	"checkers/internal/engine"
)

func TestPlayGameIsConsistent(t *testing.T) {
	mm := PlayerConfig{Name: "mm", Cfg: engine.SearchConfig{Depth: 2, Strategy: engine.StrategyMinimax}}
	ab := PlayerConfig{Name: "ab", Cfg: engine.SearchConfig{Depth: 2, Strategy: engine.StrategyAlphaBeta}}

	r, err := playGame(context.Background(), engine.NewEngine(), mm, ab, 60)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if r.Plies > 60 || r.Light != "mm" || r.Dark != "ab" {
		t.Fatalf("unexpected result %+v", r)
	}
	if r.Winner == checkers.NoColor && r.WinnerName() != "" {
		t.Fatalf("draw must not name a winner")
	}
}

func TestPlayGameMoveCapIsDraw(t *testing.T) {
	p := PlayerConfig{Name: "p", Cfg: engine.SearchConfig{Depth: 1}}
	r, err := playGame(context.Background(), engine.NewEngine(), p, p, 2)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if r.Plies != 2 || r.Outcome() != "draw" {
		t.Fatalf("two plies from the start should be a capped draw: %+v", r)
	}
}

func TestTally(t *testing.T) {
	results := []MatchResult{
		{Light: "a", Dark: "b", Winner: checkers.Light},
		{Light: "b", Dark: "a", Winner: checkers.Light},
		{Light: "a", Dark: "b", Winner: checkers.NoColor},
		{Light: "b", Dark: "a", Winner: checkers.Dark},
	}
	score := tally(results, "a", "b")
	if score["a"] != 2 || score["b"] != 1 || score[""] != 1 {
		t.Fatalf("unexpected score %v", score)
	}
}
