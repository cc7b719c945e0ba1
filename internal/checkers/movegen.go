package checkers

import (
	"errors"
	"fmt"
)

var ErrNoPiece = errors.New("no piece on square")

// moveList 按发现顺序保存走法，同一终点只留一条（吃子更多的那条）
type moveList struct {
	moves []Move
	index [NumSquares]int16 // 下标+1，0 表示还没有
}

func (l *moveList) add(m Move) {
	if i := l.index[m.To]; i > 0 {
		if len(m.Captures) > len(l.moves[i-1].Captures) {
			l.moves[i-1] = m
		}
		return
	}
	l.moves = append(l.moves, m)
	l.index[m.To] = int16(len(l.moves))
}

// 单个棋子的吃子上下文：起点视为空格，被吃的子留在盘上直到走完
type pieceGen struct {
	b     *Board
	from  Square
	color Color
	out   *moveList
}

func (g *pieceGen) empty(sq Square) bool {
	return sq == g.from || g.b.Squares[sq] == NoPiece
}

func (g *pieceGen) jumpable(sq Square, path []Square) bool {
	if sq == g.from {
		return false
	}
	pc := g.b.Squares[sq]
	if pc == NoPiece || pc.Color() == g.color {
		return false
	}
	for _, c := range path {
		if c == sq {
			return false
		}
	}
	return true
}

// 每一层递归都拿到自己的一份吃子路径
func extendPath(path []Square, sq Square) []Square {
	next := make([]Square, len(path), len(path)+1)
	copy(next, path)
	return append(next, sq)
}

// LegalMoves 某个棋子的全部合法走法（已按本子最长吃子过滤）
func (b *Board) LegalMoves(sq Square) ([]Move, error) {
	if !sq.Valid() || b.Squares[sq] == NoPiece {
		return nil, fmt.Errorf("%w: %d", ErrNoPiece, sq)
	}
	return b.pieceMoves(sq), nil
}

// Moves 一方所有棋子的走法：棋子按行优先，终点按发现顺序
func (b *Board) Moves(c Color) []Move {
	var out []Move
	for sq := 0; sq < NumSquares; sq++ {
		pc := b.Squares[sq]
		if pc == NoPiece || pc.Color() != c {
			continue
		}
		out = append(out, b.pieceMoves(Square(sq))...)
	}
	return out
}

// HasMoves 这一方是否还有任何一步可走
func (b *Board) HasMoves(c Color) bool {
	for sq := 0; sq < NumSquares; sq++ {
		pc := b.Squares[sq]
		if pc == NoPiece || pc.Color() != c {
			continue
		}
		if len(b.pieceMoves(Square(sq))) > 0 {
			return true
		}
	}
	return false
}

func (b *Board) pieceMoves(from Square) []Move {
	pc := b.Squares[from]
	g := &pieceGen{b: b, from: from, color: pc.Color(), out: &moveList{}}
	if pc.IsKing() {
		g.kingSlides()
		g.kingJumps(from, nil, -1, false)
	} else {
		g.manSlides()
		g.manJumps(from, nil)
	}
	return filterLongest(g.out.moves)
}

// 只保留本子吃子数最多的走法；有吃子时平移全部丢掉
func filterLongest(moves []Move) []Move {
	longest := 0
	for _, m := range moves {
		if len(m.Captures) > longest {
			longest = len(m.Captures)
		}
	}
	if longest == 0 {
		return moves
	}
	out := moves[:0]
	for _, m := range moves {
		if len(m.Captures) == longest {
			out = append(out, m)
		}
	}
	return out
}

// 兵：向前斜走一格
func (g *pieceGen) manSlides() {
	row, col := g.from.Row(), g.from.Col()
	r := row + forwardDir(g.color)
	for _, dc := range [2]int{-1, +1} {
		c := col + dc
		if !onBoard(r, c) {
			continue
		}
		to := SquareAt(r, c)
		if g.b.Squares[to] != NoPiece {
			continue
		}
		g.out.add(Move{From: g.from, To: to, Promotes: r == crownRow(g.color)})
	}
}

// 兵：四个斜向都可以跳吃，落在底线立刻升王，剩下的连跳按王的规则
func (g *pieceGen) manJumps(at Square, path []Square) {
	row, col := at.Row(), at.Col()
	for _, d := range diagDirs {
		lr, lc := row+2*d[0], col+2*d[1]
		if !onBoard(lr, lc) {
			continue
		}
		mid := SquareAt(row+d[0], col+d[1])
		land := SquareAt(lr, lc)
		if !g.jumpable(mid, path) || !g.empty(land) {
			continue
		}
		next := extendPath(path, mid)
		if lr == crownRow(g.color) {
			g.out.add(Move{From: g.from, To: land, Captures: next, Promotes: true})
			g.kingJumps(land, next, dirIndex(d), true)
			continue
		}
		g.out.add(Move{From: g.from, To: land, Captures: next})
		g.manJumps(land, next)
	}
}

// 王：沿斜线走任意格，直到第一个有子的格
func (g *pieceGen) kingSlides() {
	row, col := g.from.Row(), g.from.Col()
	for _, d := range diagDirs {
		r, c := row+d[0], col+d[1]
		for onBoard(r, c) && g.b.Squares[SquareAt(r, c)] == NoPiece {
			g.out.add(Move{From: g.from, To: SquareAt(r, c)})
			r += d[0]
			c += d[1]
		}
	}
}

// 王：越过射线上遇到的第一个敌子（紧邻的下一格必须为空），可落在其后任意空格，
// 然后从每个落点换方向继续，但不能沿来路直接折返
func (g *pieceGen) kingJumps(at Square, path []Square, arrived int, promotes bool) {
	row, col := at.Row(), at.Col()
	for di, d := range diagDirs {
		if arrived >= 0 && di == reverseDir(arrived) {
			continue
		}
		r, c := row+d[0], col+d[1]
		for onBoard(r, c) && g.empty(SquareAt(r, c)) {
			r += d[0]
			c += d[1]
		}
		if !onBoard(r, c) {
			continue
		}
		mid := SquareAt(r, c)
		if !g.jumpable(mid, path) {
			continue
		}
		r += d[0]
		c += d[1]
		if !onBoard(r, c) || !g.empty(SquareAt(r, c)) {
			continue
		}
		next := extendPath(path, mid)
		for onBoard(r, c) && g.empty(SquareAt(r, c)) {
			land := SquareAt(r, c)
			g.out.add(Move{From: g.from, To: land, Captures: next, Promotes: promotes})
			g.kingJumps(land, next, di, promotes)
			r += d[0]
			c += d[1]
		}
	}
}

func dirIndex(d [2]int) int {
	for i, x := range diagDirs {
		if x == d {
			return i
		}
	}
	return -1
}

// diagDirs 的排列保证 i 和 3-i 互为反方向
func reverseDir(i int) int { return 3 - i }
