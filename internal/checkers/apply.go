package checkers

import (
	"errors"
	"fmt"
)

var ErrIllegalMove = errors.New("illegal move")

// Apply 原地执行走法：挪子、提掉被吃的子、到底线升王。
// 这里默认传进来的就是合法招（由上层检查）；起点为空（比如零值 Move）时什么也不做
func (b *Board) Apply(m Move) {
	if !m.From.Valid() || !m.To.Valid() || b.Squares[m.From] == NoPiece {
		return
	}
	pc := b.take(m.From)
	for _, sq := range m.Captures {
		b.take(sq)
	}
	if m.Promotes || m.To.Row() == crownRow(pc.Color()) {
		pc = pc.Crowned()
	}
	b.put(m.To, pc)
}

// FindMove 在 from 的合法走法里找终点为 to 的那一步
func (b *Board) FindMove(from, to Square) (Move, error) {
	moves, err := b.LegalMoves(from)
	if err != nil {
		return Move{}, err
	}
	for _, m := range moves {
		if m.To == to {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("%w: %d -> %d", ErrIllegalMove, from, to)
}

// ApplyMove 校验后返回新棋盘，原棋盘不动；吃子路径取自 LegalMoves 记录的那一条
func (b *Board) ApplyMove(from, to Square) (*Board, error) {
	m, err := b.FindMove(from, to)
	if err != nil {
		return nil, err
	}
	nb := b.Clone()
	nb.Apply(m)
	return nb, nil
}

// AllMoves 一方所有后继局面，顺序与 Moves(c) 一致
func (b *Board) AllMoves(c Color) []*Board {
	moves := b.Moves(c)
	out := make([]*Board, 0, len(moves))
	for _, m := range moves {
		nb := b.Clone()
		nb.Apply(m)
		out = append(out, nb)
	}
	return out
}

// Undo 悔一步所需的全部信息
type Undo struct {
	Move     Move
	Moved    Piece
	Captured [NumSquares / 2]Piece
	Hash     uint64
}

// MakeMove 与 Apply 相同，但返回可以原样撤销的记录
func (b *Board) MakeMove(m Move) Undo {
	u := Undo{Move: m, Hash: b.Hash}
	if !m.From.Valid() || !m.To.Valid() {
		return u
	}
	u.Moved = b.Squares[m.From]
	for i, sq := range m.Captures {
		u.Captured[i] = b.Squares[sq]
	}
	b.Apply(m)
	return u
}

func (b *Board) UnmakeMove(u Undo) {
	if u.Moved == NoPiece {
		return
	}
	m := u.Move
	b.take(m.To)
	for i := len(m.Captures) - 1; i >= 0; i-- {
		b.put(m.Captures[i], u.Captured[i])
	}
	b.put(m.From, u.Moved)
	b.Hash = u.Hash
}
