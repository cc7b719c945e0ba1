package checkers

import (
	"fmt"
	"strings"
)

type Color int8

const (
	NoColor Color = -1
	Light   Color = 0
	Dark    Color = 1
)

func (c Color) String() string {
	switch c {
	case Light:
		return "light"
	case Dark:
		return "dark"
	default:
		return "none"
	}
}

// Other 返回对手颜色
func (c Color) Other() Color {
	switch c {
	case Light:
		return Dark
	case Dark:
		return Light
	}
	return NoColor
}

// ParseColor 接受 light/l/white/w 与 dark/d/black/b
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "l", "white", "w":
		return Light, nil
	case "dark", "d", "black", "b":
		return Dark, nil
	}
	return NoColor, fmt.Errorf("unknown color %q", s)
}

type Piece int8 // 0=空；>0 浅色；<0 深色；abs: 1=兵 2=王

const (
	NoPiece   Piece = 0
	LightMan  Piece = 1
	LightKing Piece = 2
	DarkMan   Piece = -1
	DarkKing  Piece = -2
)

func makePiece(c Color, king bool) Piece {
	var p Piece = 1
	if king {
		p = 2
	}
	switch c {
	case Light:
		return p
	case Dark:
		return -p
	}
	return NoPiece
}

func (p Piece) Color() Color {
	if p == 0 {
		return NoColor
	}
	if p > 0 {
		return Light
	}
	return Dark
}

func (p Piece) IsKing() bool { return p == LightKing || p == DarkKing }

// Crowned 升王后的棋子（已经是王则不变）
func (p Piece) Crowned() Piece {
	switch p {
	case LightMan:
		return LightKing
	case DarkMan:
		return DarkKing
	}
	return p
}

// Square 0..63，row*8+col
type Square int8

const NoSquare Square = -1

func SquareAt(row, col int) Square { return Square(row*Cols + col) }

func (s Square) Row() int { return int(s) / Cols }
func (s Square) Col() int { return int(s) % Cols }

func (s Square) Valid() bool { return s >= 0 && int(s) < NumSquares }

// Move 一步完整走法：起点、终点、按顺序被吃掉的棋子
type Move struct {
	From     Square   `json:"from"`
	To       Square   `json:"to"`
	Captures []Square `json:"captures,omitempty"`
	Promotes bool     `json:"promotes,omitempty"`
}

func (m Move) IsCapture() bool { return len(m.Captures) > 0 }
