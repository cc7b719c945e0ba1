package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"checkers/internal/engine"
	"golang.org/x/sync/errgroup"
)

func main() {
	totalGames := flag.Int("games", 10, "number of games to play")
	mmDepth := flag.Int("mm-depth", 4, "minimax search depth")
	abDepth := flag.Int("ab-depth", 4, "alpha-beta search depth")
	maxMoves := flag.Int("maxmoves", 200, "plies before a game is scored as a draw")
	parallel := flag.Int("parallel", 4, "games played at the same time")
	timeLimit := flag.Duration("time", 0, "per-move time limit (0 = none)")
	flag.Parse()

	playerMM := PlayerConfig{
		Name: fmt.Sprintf("Minimax (Depth %d)", *mmDepth),
		Cfg:  engine.SearchConfig{Depth: *mmDepth, Strategy: engine.StrategyMinimax, TimeLimit: *timeLimit},
	}
	playerAB := PlayerConfig{
		Name: fmt.Sprintf("Alpha-Beta (Depth %d)", *abDepth),
		Cfg:  engine.SearchConfig{Depth: *abDepth, Strategy: engine.StrategyAlphaBeta, TimeLimit: *timeLimit},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := make([]MatchResult, *totalGames)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(*parallel, 1))
	start := time.Now()
	for i := 0; i < *totalGames; i++ {
		i := i
		// 轮流执浅色
		light, dark := playerMM, playerAB
		if i%2 == 1 {
			light, dark = playerAB, playerMM
		}
		g.Go(func() error {
			r, err := playGame(gctx, engine.NewEngine(), light, dark, *maxMoves)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = r
			log.Printf("game %d: light [%s] vs dark [%s] -> %s after %d plies",
				i+1, light.Name, dark.Name, r.Outcome(), r.Plies)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("selfplay aborted: %v", err)
	}

	score := tally(results, playerMM.Name, playerAB.Name)
	fmt.Printf("\n=== Final Score (%v) ===\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("%s: %d\n", playerMM.Name, score[playerMM.Name])
	fmt.Printf("%s: %d\n", playerAB.Name, score[playerAB.Name])
	fmt.Printf("Draws: %d\n", score[""])
}
