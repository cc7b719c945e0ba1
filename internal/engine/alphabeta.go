package engine

import "checkers/internal/checkers"

func (s *searcher) alphaBetaRoot(moves []checkers.Move, depth int) (int, int, error) {
	s.nodes++
	return s.alphaBetaMoves(moves, depth, -scoreInf, scoreInf, true)
}

func (s *searcher) alphaBeta(depth int, alpha, beta int, maxNode bool) (int, error) {
	s.nodes++
	if s.terminal(depth) {
		return s.b.EvaluateFor(s.max), nil
	}
	if err := s.ctx.Err(); err != nil {
		return 0, err
	}

	moves := s.b.Moves(s.toMove(maxNode))
	if len(moves) == 0 {
		return noMovesScore(maxNode), nil
	}
	v, _, err := s.alphaBetaMoves(moves, depth, alpha, beta, maxNode)
	return v, err
}

// 与 minimax 的区别：同分时“后来者”覆盖最佳着法（best == v 即更新），
// 所以返回的是剪枝前最后一个达到最优值的后继
func (s *searcher) alphaBetaMoves(moves []checkers.Move, depth int, alpha, beta int, maxNode bool) (int, int, error) {
	bestIdx := -1
	if maxNode {
		best := -scoreInf
		for i, m := range moves {
			u := s.b.MakeMove(m)
			v, err := s.alphaBeta(depth-1, alpha, beta, false)
			s.b.UnmakeMove(u)
			if err != nil {
				return 0, 0, err
			}
			best = max(best, v)
			alpha = max(alpha, v)
			if best == v {
				bestIdx = i
			}
			if beta <= alpha {
				break
			}
		}
		return best, bestIdx, nil
	}

	best := scoreInf
	for i, m := range moves {
		u := s.b.MakeMove(m)
		v, err := s.alphaBeta(depth-1, alpha, beta, true)
		s.b.UnmakeMove(u)
		if err != nil {
			return 0, 0, err
		}
		best = min(best, v)
		beta = min(beta, v)
		if best == v {
			bestIdx = i
		}
		if beta <= alpha {
			break
		}
	}
	return best, bestIdx, nil
}
