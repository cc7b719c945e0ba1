package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"checkers/internal/checkers"
	"checkers/internal/config"
	"checkers/internal/server/game"
	"github.com/gorilla/websocket"
)

func newTestRouter(t *testing.T) (http.Handler, *Handler) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.AiDepth = 2
	h := NewHandler(game.NewManager(nil), config.NewStore(cfg))
	return NewRouter(h, ""), h
}

func post(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func newGame(t *testing.T, r http.Handler, human string) StateResponse {
	t.Helper()
	rec := post(t, r, "/api/new_game", NewGameRequest{HumanColor: human})
	if rec.Code != http.StatusOK {
		t.Fatalf("new_game: %d %s", rec.Code, rec.Body.String())
	}
	return decodeBody[StateResponse](t, rec)
}

func TestNewGameAndState(t *testing.T) {
	r, _ := newTestRouter(t)
	st := newGame(t, r, "dark")
	if st.GameID == "" || st.ToMove != "light" || st.Human != "dark" || st.Status != "ongoing" {
		t.Fatalf("unexpected state %+v", st)
	}
	if st.Position != checkers.NewInitialBoard().Encode() || len(st.Rows) != 8 || st.Rows[0] != ".d.d.d.d" {
		t.Fatalf("unexpected board %q %v", st.Position, st.Rows)
	}
	if len(st.LegalMoves) != 7 {
		t.Fatalf("legal moves: %d", len(st.LegalMoves))
	}

	rec := post(t, r, "/api/state", StateRequest{GameID: st.GameID})
	if rec.Code != http.StatusOK {
		t.Fatalf("state: %d", rec.Code)
	}
	if got := decodeBody[StateResponse](t, rec); got.Position != st.Position {
		t.Fatalf("state position mismatch")
	}

	if rec := post(t, r, "/api/state", StateRequest{GameID: "missing"}); rec.Code != http.StatusNotFound {
		t.Fatalf("missing game: %d", rec.Code)
	}
	if rec := post(t, r, "/api/new_game", NewGameRequest{HumanColor: "red"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad color: %d", rec.Code)
	}
}

func TestPlayAndErrors(t *testing.T) {
	r, _ := newTestRouter(t)
	id := newGame(t, r, "light").GameID
	from, to := int(checkers.SquareAt(5, 0)), int(checkers.SquareAt(4, 1))

	cases := []struct {
		name string
		move MoveDTO
		code int
	}{
		{"illegal", MoveDTO{From: from, To: int(checkers.SquareAt(3, 2))}, http.StatusBadRequest},
		{"empty square", MoveDTO{From: int(checkers.SquareAt(4, 1)), To: int(checkers.SquareAt(3, 2))}, http.StatusBadRequest},
		{"wrong side", MoveDTO{From: int(checkers.SquareAt(2, 1)), To: int(checkers.SquareAt(3, 0))}, http.StatusBadRequest},
		{"out of range", MoveDTO{From: 64, To: 0}, http.StatusBadRequest},
		// 296 = 40 + 256，转成 int8 会落到真实格子上
		{"from wraps onto a board square", MoveDTO{From: from + 256, To: to}, http.StatusBadRequest},
		{"from 256", MoveDTO{From: 256, To: to}, http.StatusBadRequest},
		{"to 256", MoveDTO{From: from, To: to + 256}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rec := post(t, r, "/api/play", PlayRequest{GameID: id, Move: tc.move}); rec.Code != tc.code {
				t.Fatalf("got %d want %d (%s)", rec.Code, tc.code, rec.Body.String())
			}
		})
	}

	st0 := decodeBody[StateResponse](t, post(t, r, "/api/state", StateRequest{GameID: id}))
	if st0.Ply != 0 || st0.Position != checkers.NewInitialBoard().Encode() {
		t.Fatalf("rejected requests must not move anything: %+v", st0)
	}

	rec := post(t, r, "/api/play", PlayRequest{GameID: id, Move: MoveDTO{From: from, To: to}})
	if rec.Code != http.StatusOK {
		t.Fatalf("play: %d %s", rec.Code, rec.Body.String())
	}
	st := decodeBody[StateResponse](t, rec)
	if st.ToMove != "dark" || st.Ply != 1 || st.LastMove == nil || st.LastMove.To != to {
		t.Fatalf("unexpected state after play %+v", st)
	}
	if st.Rows[4][1] != 'l' || st.Rows[5][0] != '.' {
		t.Fatalf("board not updated: %v", st.Rows)
	}

	badJSON := httptest.NewRequest(http.MethodPost, "/api/play", strings.NewReader("{"))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, badJSON)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json: %d", rec.Code)
	}
}

func TestLegalMovesEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)
	id := newGame(t, r, "light").GameID

	rec := post(t, r, "/api/legal_moves", LegalMovesRequest{GameID: id, Square: int(checkers.SquareAt(5, 2))})
	if rec.Code != http.StatusOK {
		t.Fatalf("legal_moves: %d %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[LegalMovesResponse](t, rec)
	if len(resp.Moves) != 2 {
		t.Fatalf("want 2 moves, got %+v", resp.Moves)
	}

	for _, bad := range []int{-1, 64, 256, 296, int(checkers.SquareAt(5, 2)) + 256} {
		if rec := post(t, r, "/api/legal_moves", LegalMovesRequest{GameID: id, Square: bad}); rec.Code != http.StatusBadRequest {
			t.Fatalf("square %d: got %d (%s)", bad, rec.Code, rec.Body.String())
		}
	}
}

func TestAiMove(t *testing.T) {
	r, _ := newTestRouter(t)
	id := newGame(t, r, "dark").GameID

	rec := post(t, r, "/api/ai_move", AiMoveRequest{GameID: id, MaxDepth: 3, Strategy: "minimax"})
	if rec.Code != http.StatusOK {
		t.Fatalf("ai_move: %d %s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[AiMoveResponse](t, rec)
	if resp.Depth != 3 || resp.Strategy != "minimax" || resp.Nodes <= 1 {
		t.Fatalf("unexpected ai response %+v", resp)
	}
	if resp.State.ToMove != "dark" || resp.State.LastMove == nil || resp.State.LastMove.From != resp.BestMove.From {
		t.Fatalf("ai move not committed: %+v", resp.State)
	}

	if rec := post(t, r, "/api/ai_move", AiMoveRequest{GameID: id, Strategy: "random"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad strategy: %d", rec.Code)
	}
}

func TestConfigEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/config", nil))
	if got := decodeBody[config.Config](t, rec); got.AiDepth != 2 {
		t.Fatalf("config depth: %d", got.AiDepth)
	}

	rec = post(t, r, "/api/config", map[string]any{"ai_depth": 4})
	if rec.Code != http.StatusOK {
		t.Fatalf("set config: %d %s", rec.Code, rec.Body.String())
	}
	if got := decodeBody[config.Config](t, rec); got.AiDepth != 4 || got.AiStrategy != "alphabeta" {
		t.Fatalf("partial update lost fields: %+v", got)
	}

	if rec := post(t, r, "/api/config", map[string]any{"ai_strategy": "mcts"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad config: %d", rec.Code)
	}

	// 监听地址等启动参数改了也不会生效，直接拒绝
	for _, body := range []map[string]any{
		{"addr": "0.0.0.0:9000"},
		{"web_dir": "/srv/www"},
		{"open_browser": false, "ai_depth": 6},
	} {
		if rec := post(t, r, "/api/config", body); rec.Code != http.StatusBadRequest {
			t.Fatalf("startup field %v: got %d", body, rec.Code)
		}
	}
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/config", nil))
	if got := decodeBody[config.Config](t, rec); got.AiDepth != 4 || got.Addr != config.DefaultConfig().Addr {
		t.Fatalf("rejected update leaked into the store: %+v", got)
	}

	// 原样提交当前值是允许的
	if rec := post(t, r, "/api/config", map[string]any{"addr": config.DefaultConfig().Addr, "ai_depth": 3}); rec.Code != http.StatusOK {
		t.Fatalf("unchanged startup fields: %d %s", rec.Code, rec.Body.String())
	}
}

func TestStaticRoutes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "board.js"), []byte("var board = 1"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	h := NewHandler(game.NewManager(nil), config.NewStore(config.DefaultConfig()))
	r := NewRouter(h, dir)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/web/" {
		t.Fatalf("root redirect: %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/web/board.js", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "board") {
		t.Fatalf("static file: %d %q", rec.Code, rec.Body.String())
	}
}

func readState(t *testing.T, conn *websocket.Conn) StateResponse {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ws read: %v", err)
		}
		if msg.Type != "state" {
			continue
		}
		var st StateResponse
		if err := json.Unmarshal(msg.Payload, &st); err != nil {
			t.Fatalf("ws payload: %v", err)
		}
		return st
	}
}

func TestGameWebsocketPushesState(t *testing.T) {
	r, h := newTestRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	id := newGame(t, r, "light").GameID
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/game/" + id
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if st := readState(t, conn); st.GameID != id || st.Ply != 0 {
		t.Fatalf("initial state %+v", st)
	}

	from, to := int(checkers.SquareAt(5, 2)), int(checkers.SquareAt(4, 3))
	if rec := post(t, r, "/api/play", PlayRequest{GameID: id, Move: MoveDTO{From: from, To: to}}); rec.Code != http.StatusOK {
		t.Fatalf("play: %d", rec.Code)
	}
	if st := readState(t, conn); st.Ply != 1 || st.ToMove != "dark" {
		t.Fatalf("pushed state %+v", st)
	}

	if err := conn.WriteJSON(wsMessage{Type: "request_state"}); err != nil {
		t.Fatalf("ws write: %v", err)
	}
	if st := readState(t, conn); st.Ply != 1 {
		t.Fatalf("requested state %+v", st)
	}
	if h.hub.Count(id) != 1 {
		t.Fatalf("hub clients: %d", h.hub.Count(id))
	}

	resp, err := http.Get(srv.URL + "/ws/game/missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing game ws: %d", resp.StatusCode)
	}
}
