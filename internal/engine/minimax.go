package engine

import (
	"context"
	"math"

	"checkers/internal/checkers"
)

// searcher 一次搜索的全部状态：在同一块棋盘上走子/悔子，不为每个节点拷贝棋盘
type searcher struct {
	ctx   context.Context
	b     *checkers.Board
	max   checkers.Color
	tt    transTable
	nodes int64
}

func newSearcher(ctx context.Context, b *checkers.Board, maximizing checkers.Color, tt transTable) *searcher {
	return &searcher{
		ctx: ctx,
		b:   b.Clone(),
		max: maximizing,
		tt:  tt,
	}
}

func (s *searcher) toMove(maxNode bool) checkers.Color {
	if maxNode {
		return s.max
	}
	return s.max.Other()
}

// 无子可走：对轮到的一方是输
func noMovesScore(maxNode bool) int {
	if maxNode {
		return -ScoreWin
	}
	return ScoreWin
}

func (s *searcher) terminal(depth int) bool {
	return depth <= 0 || s.b.Winner() != checkers.NoColor
}

func (s *searcher) minimaxRoot(moves []checkers.Move, depth int) (int, int, error) {
	s.nodes++
	best, bestIdx := math.MinInt, 0
	for i, m := range moves {
		u := s.b.MakeMove(m)
		v, err := s.minimax(depth-1, false)
		s.b.UnmakeMove(u)
		if err != nil {
			return 0, 0, err
		}
		// 严格大于：同分时保留先生成的那个
		if v > best {
			best, bestIdx = v, i
		}
	}
	return best, bestIdx, nil
}

func (s *searcher) minimax(depth int, maxNode bool) (int, error) {
	s.nodes++
	if s.terminal(depth) {
		return s.b.EvaluateFor(s.max), nil
	}
	if err := s.ctx.Err(); err != nil {
		return 0, err
	}

	side := s.toMove(maxNode)
	var key uint64
	if s.tt != nil {
		key = ttKey(s.b, side)
		if v, ok := s.tt.probe(key, depth); ok {
			return v, nil
		}
	}

	moves := s.b.Moves(side)
	if len(moves) == 0 {
		return noMovesScore(maxNode), nil
	}

	var best int
	if maxNode {
		best = math.MinInt
	} else {
		best = math.MaxInt
	}
	for _, m := range moves {
		u := s.b.MakeMove(m)
		v, err := s.minimax(depth-1, !maxNode)
		s.b.UnmakeMove(u)
		if err != nil {
			return 0, err
		}
		if maxNode {
			if v > best {
				best = v
			}
		} else {
			if v < best {
				best = v
			}
		}
	}

	if s.tt != nil {
		s.tt.store(key, depth, best)
	}
	return best, nil
}
