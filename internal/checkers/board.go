package checkers

import "strings"

const (
	Rows       = 8
	Cols       = 8
	NumSquares = Rows * Cols

	InitialPieces = 12
)

type Board struct {
	Squares [NumSquares]Piece
	Left    [2]int // 各方剩余棋子数（含王）
	Kings   [2]int // 各方王的数量
	Hash    uint64
}

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// 深色格才可以走子
func playable(row, col int) bool { return (row+col)%2 == 1 }

// 兵的前进方向：浅色向上(-1)，深色向下(+1)
func forwardDir(c Color) int {
	if c == Light {
		return -1
	}
	return +1
}

// 升王的底线
func crownRow(c Color) int {
	if c == Light {
		return 0
	}
	return Rows - 1
}

var diagDirs = [4][2]int{{-1, -1}, {-1, +1}, {+1, -1}, {+1, +1}}

const initialBoardString = `.d.d.d.d
d.d.d.d.
.d.d.d.d
........
........
l.l.l.l.
.l.l.l.l
l.l.l.l.`

func NewInitialBoard() *Board {
	b, err := DecodeBoard(initialBoardString)
	if err != nil {
		panic("initialBoardString: " + err.Error())
	}
	return b
}

func (b *Board) At(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b.Squares[sq]
}

// Pieces 按行优先顺序返回某一方所有棋子的位置
func (b *Board) Pieces(c Color) []Square {
	out := make([]Square, 0, b.Count(c))
	for sq := 0; sq < NumSquares; sq++ {
		pc := b.Squares[sq]
		if pc != NoPiece && pc.Color() == c {
			out = append(out, Square(sq))
		}
	}
	return out
}

func (b *Board) Count(c Color) int {
	if c != Light && c != Dark {
		return 0
	}
	return b.Left[c]
}

func (b *Board) KingCount(c Color) int {
	if c != Light && c != Dark {
		return 0
	}
	return b.Kings[c]
}

// Recount 全盘扫描重算计数，并同步哈希
func (b *Board) Recount() {
	b.Left = [2]int{}
	b.Kings = [2]int{}
	for _, pc := range b.Squares {
		if pc == NoPiece {
			continue
		}
		c := pc.Color()
		b.Left[c]++
		if pc.IsKing() {
			b.Kings[c]++
		}
	}
	b.Hash = b.CalculateHash()
}

// Clone 棋盘是纯值类型，拷贝即深拷贝
func (b *Board) Clone() *Board {
	nb := *b
	return &nb
}

func (b *Board) put(sq Square, pc Piece) {
	if pc == NoPiece {
		b.take(sq)
		return
	}
	b.Squares[sq] = pc
	c := pc.Color()
	b.Left[c]++
	if pc.IsKing() {
		b.Kings[c]++
	}
	b.Hash ^= pieceHashKey(pc, sq)
}

func (b *Board) take(sq Square) Piece {
	pc := b.Squares[sq]
	if pc == NoPiece {
		return NoPiece
	}
	b.Squares[sq] = NoPiece
	c := pc.Color()
	b.Left[c]--
	if pc.IsKing() {
		b.Kings[c]--
	}
	b.Hash ^= pieceHashKey(pc, sq)
	return pc
}

// String 多行棋盘图，调试用
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			sb.WriteRune(pieceToChar(b.Squares[SquareAt(r, c)]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
