package checkers

import "sync"

var (
	zobristOnce sync.Once

	zobristPieces [2][2][NumSquares]uint64 // [颜色][是否为王][格子]
	zobristSide   [2]uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for c := 0; c < 2; c++ {
			for k := 0; k < 2; k++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristPieces[c][k][sq] = next()
				}
			}
		}
		zobristSide[Light] = next()
		zobristSide[Dark] = next()
	})
}

func pieceHashKey(pc Piece, sq Square) uint64 {
	if pc == NoPiece || !sq.Valid() {
		return 0
	}
	initZobrist()
	k := 0
	if pc.IsKing() {
		k = 1
	}
	return zobristPieces[pc.Color()][k][sq]
}

// SideKey 轮到谁走不在棋盘里，搜索层按需异或进去
func SideKey(c Color) uint64 {
	if c != Light && c != Dark {
		return 0
	}
	initZobrist()
	return zobristSide[c]
}

// CalculateHash 全量计算当前棋盘的 Zobrist 哈希。
func (b *Board) CalculateHash() uint64 {
	var h uint64
	for sq := 0; sq < NumSquares; sq++ {
		pc := b.Squares[sq]
		if pc == NoPiece {
			continue
		}
		h ^= pieceHashKey(pc, Square(sq))
	}
	return h
}
