package engine

import "checkers/internal/checkers"

const ttMaxEntries = 1_000_000

// 简单 TT 条目：只存 minimax 的精确值
type ttEntry struct {
	Key   uint64
	Depth int
	Score int
}

type transTable map[uint64]ttEntry

func ttKey(b *checkers.Board, toMove checkers.Color) uint64 {
	return b.Hash ^ checkers.SideKey(toMove)
}

// 深度必须完全一致，否则结果会和不用 TT 时不同
func (t transTable) probe(key uint64, depth int) (int, bool) {
	e, ok := t[key]
	if !ok || e.Key != key || e.Depth != depth {
		return 0, false
	}
	return e.Score, true
}

func (t transTable) store(key uint64, depth int, score int) {
	if len(t) > ttMaxEntries {
		clear(t)
	}
	old, ok := t[key]
	if !ok || depth >= old.Depth {
		t[key] = ttEntry{
			Key:   key,
			Depth: depth,
			Score: score,
		}
	}
}
