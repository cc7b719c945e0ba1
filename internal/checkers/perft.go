package checkers

// Perft 数 depth 层之后的叶子数，用来核对走法生成
func (b *Board) Perft(c Color, depth int) int64 {
	if depth <= 0 {
		return 1
	}
	moves := b.Moves(c)
	if depth == 1 {
		return int64(len(moves))
	}
	var n int64
	for _, m := range moves {
		u := b.MakeMove(m)
		n += b.Perft(c.Other(), depth-1)
		b.UnmakeMove(u)
	}
	return n
}

type DivideEntry struct {
	Move  Move
	Nodes int64
}

// Divide 按根节点走法拆分 Perft
func (b *Board) Divide(c Color, depth int) []DivideEntry {
	if depth <= 0 {
		return nil
	}
	moves := b.Moves(c)
	out := make([]DivideEntry, 0, len(moves))
	for _, m := range moves {
		u := b.MakeMove(m)
		out = append(out, DivideEntry{Move: m, Nodes: b.Perft(c.Other(), depth-1)})
		b.UnmakeMove(u)
	}
	return out
}
