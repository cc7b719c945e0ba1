package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"checkers/internal/checkers"
	"checkers/internal/engine"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameOver     = errors.New("game is over")
	ErrNotYourTurn  = errors.New("not your turn")
)

type Manager struct {
	mu       sync.RWMutex
	games    map[string]*GameState
	eng      *engine.Engine
	listener func(Snapshot)
}

func NewManager(eng *engine.Engine) *Manager {
	if eng == nil {
		eng = engine.NewEngine()
	}
	return &Manager{
		games: make(map[string]*GameState),
		eng:   eng,
	}
}

// OnChange 注册状态变更回调（websocket 推送用），在持有对局锁时调用，回调里不要再操作 Manager
func (m *Manager) OnChange(fn func(Snapshot)) {
	m.mu.Lock()
	m.listener = fn
	m.mu.Unlock()
}

func (m *Manager) notify(g *GameState) {
	m.mu.RLock()
	fn := m.listener
	m.mu.RUnlock()
	if fn != nil {
		fn(g.snapshot())
	}
}

// NewGame 浅色先走；human 只是记录人类执哪一方
func (m *Manager) NewGame(human checkers.Color) Snapshot {
	now := time.Now()
	g := &GameState{
		ID:        uuid.NewString(),
		Board:     checkers.NewInitialBoard(),
		Turn:      checkers.Light,
		Human:     human,
		Status:    StatusOngoing,
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.mu.Lock()
	m.games[g.ID] = g
	m.mu.Unlock()

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

func (m *Manager) lookup(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return g, nil
}

func (m *Manager) Get(id string) (Snapshot, error) {
	g, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot(), nil
}

// LegalMoves 某个格子上棋子的走法；不是轮到的一方的棋子时返回 ErrNotYourTurn
func (m *Manager) LegalMoves(id string, sq checkers.Square) ([]checkers.Move, error) {
	g, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != StatusOngoing {
		return nil, ErrGameOver
	}
	if pc := g.Board.At(sq); pc != checkers.NoPiece && pc.Color() != g.Turn {
		return nil, fmt.Errorf("%w: square %d holds a %s piece", ErrNotYourTurn, sq, pc.Color())
	}
	return g.Board.LegalMoves(sq)
}

// Play 提交一步 from -> to，吃子路径由走法生成决定
func (m *Manager) Play(id string, from, to checkers.Square) (Snapshot, error) {
	g, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != StatusOngoing {
		return g.snapshot(), ErrGameOver
	}
	if pc := g.Board.At(from); pc != checkers.NoPiece && pc.Color() != g.Turn {
		return g.snapshot(), fmt.Errorf("%w: %s to move", ErrNotYourTurn, g.Turn)
	}
	mv, err := g.Board.FindMove(from, to)
	if err != nil {
		return g.snapshot(), err
	}

	g.commit(mv)
	m.notify(g)
	return g.snapshot(), nil
}

// EngineMove 让引擎替轮到的一方走一步
func (m *Manager) EngineMove(ctx context.Context, id string, cfg engine.SearchConfig) (Snapshot, engine.SearchResult, error) {
	g, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, engine.SearchResult{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != StatusOngoing {
		return g.snapshot(), engine.SearchResult{}, ErrGameOver
	}
	if cfg.Depth <= 0 {
		cfg.Depth = 1
	}

	res, err := m.eng.Search(ctx, g.Board, g.Turn, cfg)
	if err != nil {
		return g.snapshot(), res, fmt.Errorf("engine search: %w", err)
	}

	g.commit(res.Move)
	m.notify(g)
	return g.snapshot(), res, nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
