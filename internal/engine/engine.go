package engine

import (
	"fmt"
	"strings"
	"sync"
)

const (
	// 一个足够大的值，当成正负无穷
	scoreInf = 1_000_000_000

	// ScoreWin 轮到的一方无子可走时的分值（对它来说是输）
	ScoreWin = 1_000_000
)

type Strategy int

const (
	StrategyMinimax Strategy = iota
	StrategyAlphaBeta
)

func (s Strategy) String() string {
	switch s {
	case StrategyMinimax:
		return "minimax"
	case StrategyAlphaBeta:
		return "alphabeta"
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minimax", "mm":
		return StrategyMinimax, nil
	case "alphabeta", "alpha-beta", "ab":
		return StrategyAlphaBeta, nil
	}
	return 0, fmt.Errorf("unknown search strategy %q", s)
}

// Engine 串行执行搜索；TT 在两次搜索之间清空
type Engine struct {
	mu sync.Mutex
	tt transTable
}

func NewEngine() *Engine {
	return &Engine{
		tt: make(transTable, 1<<14),
	}
}
