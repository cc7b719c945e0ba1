package httpserver

import (
	"checkers/internal/checkers"
	"checkers/internal/server/game"
)

// 前端用的招法结构；格子编号 row*8+col
type MoveDTO struct {
	From     int   `json:"from"`
	To       int   `json:"to"`
	Captures []int `json:"captures,omitempty"`
	Promotes bool  `json:"promotes,omitempty"`
}

func moveToDTO(m checkers.Move) MoveDTO {
	d := MoveDTO{From: int(m.From), To: int(m.To), Promotes: m.Promotes}
	for _, c := range m.Captures {
		d.Captures = append(d.Captures, int(c))
	}
	return d
}

func movesToDTO(ms []checkers.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

type NewGameRequest struct {
	HumanColor string `json:"human_color"` // "light" / "dark"，空则用配置
}

// 各接口共用的对局状态
type StateResponse struct {
	GameID     string    `json:"game_id"`
	Position   string    `json:"position"` // Board.Encode()
	Rows       []string  `json:"rows"`     // 8 行，'.' 表示空格
	ToMove     string    `json:"to_move"`
	Human      string    `json:"human"`
	LegalMoves []MoveDTO `json:"legal_moves"`
	LastMove   *MoveDTO  `json:"last_move,omitempty"`
	Status     string    `json:"status"` // ongoing / light_wins / dark_wins
	Ply        int       `json:"ply"`
}

func stateFromSnapshot(s game.Snapshot) StateResponse {
	resp := StateResponse{
		GameID:     s.ID,
		Position:   s.Board.Encode(),
		Rows:       boardRows(s.Board),
		ToMove:     s.Turn.String(),
		Human:      s.Human.String(),
		LegalMoves: movesToDTO(s.LegalMoves),
		Status:     string(s.Status),
		Ply:        s.Ply,
	}
	if s.LastMove != nil {
		d := moveToDTO(*s.LastMove)
		resp.LastMove = &d
	}
	return resp
}

func boardRows(b *checkers.Board) []string {
	rows := make([]string, checkers.Rows)
	for r := 0; r < checkers.Rows; r++ {
		buf := make([]byte, checkers.Cols)
		for c := 0; c < checkers.Cols; c++ {
			switch b.At(checkers.SquareAt(r, c)) {
			case checkers.LightMan:
				buf[c] = 'l'
			case checkers.LightKing:
				buf[c] = 'L'
			case checkers.DarkMan:
				buf[c] = 'd'
			case checkers.DarkKing:
				buf[c] = 'D'
			default:
				buf[c] = '.'
			}
		}
		rows[r] = string(buf)
	}
	return rows
}

type StateRequest struct {
	GameID string `json:"game_id"`
}

type LegalMovesRequest struct {
	GameID string `json:"game_id"`
	Square int    `json:"square"`
}

type LegalMovesResponse struct {
	Square int       `json:"square"`
	Moves  []MoveDTO `json:"moves"`
}

type PlayRequest struct {
	GameID string  `json:"game_id"`
	Move   MoveDTO `json:"move"`
}

// AiMoveRequest 让 AI 替轮到的一方走一步；为 0/空的字段用服务端配置
type AiMoveRequest struct {
	GameID   string `json:"game_id"`
	MaxDepth int    `json:"max_depth"`
	Strategy string `json:"strategy"`
	TimeMs   int64  `json:"time_ms"`
}

type AiMoveResponse struct {
	BestMove MoveDTO       `json:"best_move"`
	Score    int           `json:"score"`
	Depth    int           `json:"depth"`
	Nodes    int64         `json:"nodes"`
	TimeMs   int64         `json:"time_ms"`
	Strategy string        `json:"strategy"`
	State    StateResponse `json:"state"`
}
