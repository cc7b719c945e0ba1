package checkers

import (
	"errors"
	"fmt"
	"strings"
)

// 棋盘图：8 行，用“/”或换行分隔；空位用“.”或数字压缩。
// l=浅色兵 L=浅色王 d=深色兵 D=深色王
func (b *Board) Encode() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			pc := b.Squares[SquareAt(r, c)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceToChar(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	return sb.String()
}

var ErrInvalidDiagram = errors.New("invalid board diagram")

func DecodeBoard(s string) (*Board, error) {
	s = strings.TrimSpace(s)
	sep := "/"
	if strings.Contains(s, "\n") {
		sep = "\n"
	}
	var rows []string
	for _, line := range strings.Split(s, sep) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) != Rows {
		return nil, fmt.Errorf("%w: %d rows", ErrInvalidDiagram, len(rows))
	}

	var b Board
	for r, row := range rows {
		c := 0
		for _, ch := range row {
			if c >= Cols {
				return nil, fmt.Errorf("%w: row %d too long", ErrInvalidDiagram, r)
			}
			if ch >= '1' && ch <= '8' {
				c += int(ch - '0')
				continue
			}
			if ch == '.' {
				c++
				continue
			}
			pc, ok := charToPiece(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q", ErrInvalidDiagram, ch)
			}
			if !playable(r, c) {
				return nil, fmt.Errorf("%w: piece on light square %d,%d", ErrInvalidDiagram, r, c)
			}
			b.Squares[SquareAt(r, c)] = pc
			c++
		}
		if c != Cols {
			return nil, fmt.Errorf("%w: row %d has %d columns", ErrInvalidDiagram, r, c)
		}
	}
	b.Recount()
	return &b, nil
}

func pieceToChar(p Piece) rune {
	switch p {
	case LightMan:
		return 'l'
	case LightKing:
		return 'L'
	case DarkMan:
		return 'd'
	case DarkKing:
		return 'D'
	}
	return '.'
}

func charToPiece(ch rune) (Piece, bool) {
	switch ch {
	case 'l':
		return LightMan, true
	case 'L':
		return LightKing, true
	case 'd':
		return DarkMan, true
	case 'D':
		return DarkKing, true
	}
	return NoPiece, false
}
