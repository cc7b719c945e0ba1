package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"checkers/internal/checkers"
)

func main() {
	diagram := flag.String("board", "", "board diagram, rows separated by '/' (default: initial position)")
	side := flag.String("side", "light", "side to move")
	depth := flag.Int("depth", 4, "perft depth")
	divide := flag.Bool("divide", false, "print per-move node counts at the last depth")
	flag.Parse()

	b := checkers.NewInitialBoard()
	if *diagram != "" {
		var err error
		if b, err = checkers.DecodeBoard(*diagram); err != nil {
			log.Fatalf("board: %v", err)
		}
	}
	c, err := checkers.ParseColor(*side)
	if err != nil {
		log.Fatalf("side: %v", err)
	}

	fmt.Println("Diagram:", b.Encode())
	fmt.Println(b)
	fmt.Printf("%s to move, %d legal moves\n", c, len(b.Moves(c)))

	for d := 1; d <= *depth; d++ {
		start := time.Now()
		n := b.Perft(c, d)
		fmt.Printf("perft(%d) = %d  (%v)\n", d, n, time.Since(start))
	}

	if *divide && *depth > 0 {
		var total int64
		for _, e := range b.Divide(c, *depth) {
			fmt.Printf("%2d -> %2d  captures=%v  %d\n", e.Move.From, e.Move.To, e.Move.Captures, e.Nodes)
			total += e.Nodes
		}
		fmt.Println("total:", total)
	}
	os.Exit(0)
}
