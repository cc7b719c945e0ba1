package main

import (
	"context"
	"errors"
	"fmt"

	"checkers/internal/checkers"
	"checkers/internal/engine"
)

type PlayerConfig struct {
	Name string
	Cfg  engine.SearchConfig
}

type MatchResult struct {
	Light, Dark string
	Winner      checkers.Color // NoColor = 和棋（达到步数上限）
	Plies       int
}

func (r MatchResult) Outcome() string {
	switch r.Winner {
	case checkers.Light:
		return "light wins"
	case checkers.Dark:
		return "dark wins"
	}
	return "draw"
}

// WinnerName 胜方的名字，和棋时为空
func (r MatchResult) WinnerName() string {
	switch r.Winner {
	case checkers.Light:
		return r.Light
	case checkers.Dark:
		return r.Dark
	}
	return ""
}

func playGame(ctx context.Context, e *engine.Engine, light, dark PlayerConfig, maxMoves int) (MatchResult, error) {
	res := MatchResult{Light: light.Name, Dark: dark.Name, Winner: checkers.NoColor}
	b := checkers.NewInitialBoard()
	side := checkers.Light

	for ply := 0; ply < maxMoves; ply++ {
		if w := b.Winner(); w != checkers.NoColor {
			res.Winner = w
			return res, nil
		}
		cfg := light.Cfg
		if side == checkers.Dark {
			cfg = dark.Cfg
		}

		sr, err := e.Search(ctx, b, side, cfg)
		if errors.Is(err, engine.ErrNoMoves) {
			// 无子可动，当前方输
			res.Winner = side.Other()
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("ply %d: %w", ply, err)
		}
		b.Apply(sr.Move)
		res.Plies++
		side = side.Other()
	}
	if w := b.Winner(); w != checkers.NoColor {
		res.Winner = w
	}
	return res, nil
}

// tally 按名字累计胜局，"" 计和棋
func tally(results []MatchResult, names ...string) map[string]int {
	score := make(map[string]int, len(names)+1)
	for _, n := range names {
		score[n] = 0
	}
	for _, r := range results {
		score[r.WinnerName()]++
	}
	return score
}
