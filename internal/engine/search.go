package engine

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"time"

	"checkers/internal/checkers"
	"golang.org/x/sync/errgroup"
)

var ErrNoMoves = errors.New("no legal moves")

// 搜索配置
type SearchConfig struct {
	Depth     int           // 搜索深度（ply），<=0 直接返回静态评估
	Strategy  Strategy      // minimax 或 alpha-beta
	TimeLimit time.Duration // 搜索时间上限（0 表示不限制），超时返回 context.DeadlineExceeded
	UseTT     bool          // 仅 minimax 生效
	Workers   int           // 根节点并行数，仅 minimax 生效；<=1 串行
}

// 搜索结果
type SearchResult struct {
	Board    *checkers.Board // 选中的后继局面（终局/深度为 0 时是原局面的拷贝）
	Move     checkers.Move   // 通往 Board 的那一步；终局时为零值
	Score    int             // 从 maximizing 一方视角的分数
	Depth    int
	Nodes    int64
	TimeUsed time.Duration
}

// Search 以 maximizing 为极大方、从它的视角给叶子打分；根节点由 maximizing 走
func (e *Engine) Search(ctx context.Context, b *checkers.Board, maximizing checkers.Color, cfg SearchConfig) (SearchResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.TimeLimit)
		defer cancel()
	}
	start := time.Now()
	clear(e.tt)

	depth := cfg.Depth
	if depth < 0 {
		depth = 0
	}
	res := SearchResult{Depth: depth}

	if depth == 0 || b.Winner() != checkers.NoColor {
		res.Board = b.Clone()
		res.Score = b.EvaluateFor(maximizing)
		res.Nodes = 1
		res.TimeUsed = time.Since(start)
		return res, nil
	}

	moves := b.Moves(maximizing)
	if len(moves) == 0 {
		res.Score = -ScoreWin
		res.Nodes = 1
		res.TimeUsed = time.Since(start)
		return res, ErrNoMoves
	}

	var (
		score int
		idx   int
		nodes int64
		err   error
	)
	switch {
	case cfg.Strategy == StrategyAlphaBeta:
		s := newSearcher(ctx, b, maximizing, nil)
		score, idx, err = s.alphaBetaRoot(moves, depth)
		nodes = s.nodes
	case cfg.Workers > 1:
		score, idx, nodes, err = e.parallelMinimaxRoot(ctx, b, maximizing, moves, depth, cfg)
	default:
		var tt transTable
		if cfg.UseTT {
			tt = e.tt
		}
		s := newSearcher(ctx, b, maximizing, tt)
		score, idx, err = s.minimaxRoot(moves, depth)
		nodes = s.nodes
	}
	res.Nodes = nodes
	res.TimeUsed = time.Since(start)
	if err != nil {
		return res, err
	}

	res.Score = score
	res.Move = moves[idx]
	res.Board = b.Clone()
	res.Board.Apply(moves[idx])
	return res, nil
}

// 根节点并行：每个子局面一份独立的棋盘和 TT，结果按生成顺序合并，先到先得的平局规则不变
func (e *Engine) parallelMinimaxRoot(ctx context.Context, b *checkers.Board, maximizing checkers.Color, moves []checkers.Move, depth int, cfg SearchConfig) (int, int, int64, error) {
	scores := make([]int, len(moves))
	var nodes atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, m := range moves {
		i, m := i, m
		g.Go(func() error {
			child := b.Clone()
			child.Apply(m)
			var tt transTable
			if cfg.UseTT {
				tt = make(transTable, 1<<12)
			}
			s := newSearcher(gctx, child, maximizing, tt)
			v, err := s.minimax(depth-1, false)
			nodes.Add(s.nodes)
			if err != nil {
				return err
			}
			scores[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, nodes.Load() + 1, err
	}

	best, bestIdx := math.MinInt, 0
	for i, v := range scores {
		if v > best {
			best, bestIdx = v, i
		}
	}
	return best, bestIdx, nodes.Load() + 1, nil
}

// Minimax 不带剪枝的搜索，返回分数和选中的后继局面
func Minimax(ctx context.Context, b *checkers.Board, depth int, maximizing checkers.Color) (int, *checkers.Board, error) {
	res, err := NewEngine().Search(ctx, b, maximizing, SearchConfig{Depth: depth, Strategy: StrategyMinimax})
	return res.Score, res.Board, err
}

// AlphaBeta 与 Minimax 同一个约定，平局时取最后一个达到最优值的后继
func AlphaBeta(ctx context.Context, b *checkers.Board, depth int, maximizing checkers.Color) (int, *checkers.Board, error) {
	res, err := NewEngine().Search(ctx, b, maximizing, SearchConfig{Depth: depth, Strategy: StrategyAlphaBeta})
	return res.Score, res.Board, err
}
