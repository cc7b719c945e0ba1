package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"checkers/internal/checkers"
	"checkers/internal/engine"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config 本地服务和 AI 的可调参数，JSON 文件里缺省的字段保持默认值
type Config struct {
	Addr        string `json:"addr"`
	WebDir      string `json:"web_dir"`
	OpenBrowser bool   `json:"open_browser"`
	HumanColor  string `json:"human_color"`

	AiDepth       int    `json:"ai_depth"`
	AiStrategy    string `json:"ai_strategy"`
	AiTimeLimitMs int    `json:"ai_time_limit_ms"`
	AiUseTT       bool   `json:"ai_use_tt"`
	AiWorkers     int    `json:"ai_workers"`
}

func DefaultConfig() Config {
	return Config{
		Addr:        "127.0.0.1:8080",
		WebDir:      "web",
		OpenBrowser: true,
		HumanColor:  "light",

		AiDepth:       5,
		AiStrategy:    "alphabeta",
		AiTimeLimitMs: 0, // 0 = 不限时
		AiUseTT:       false,
		AiWorkers:     1,
	}
}

// Load 读取 JSON 配置；path 为空时直接返回默认值
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.AiDepth < 0 {
		return fmt.Errorf("%w: ai_depth %d < 0", ErrInvalidConfig, c.AiDepth)
	}
	if c.AiTimeLimitMs < 0 {
		return fmt.Errorf("%w: ai_time_limit_ms %d < 0", ErrInvalidConfig, c.AiTimeLimitMs)
	}
	if _, err := engine.ParseStrategy(c.AiStrategy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := checkers.ParseColor(c.HumanColor); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Search 转成引擎的搜索参数
func (c Config) Search() engine.SearchConfig {
	strategy, err := engine.ParseStrategy(c.AiStrategy)
	if err != nil {
		strategy = engine.StrategyAlphaBeta
	}
	return engine.SearchConfig{
		Depth:     c.AiDepth,
		Strategy:  strategy,
		TimeLimit: time.Duration(c.AiTimeLimitMs) * time.Millisecond,
		UseTT:     c.AiUseTT,
		Workers:   c.AiWorkers,
	}
}

func (c Config) Human() checkers.Color {
	col, err := checkers.ParseColor(c.HumanColor)
	if err != nil {
		return checkers.Light
	}
	return col
}

// Store 运行期可修改的配置（/api/config）
type Store struct {
	mu     sync.RWMutex
	config Config
}

func NewStore(c Config) *Store {
	return &Store{config: c}
}

func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Update 只接受运行期能生效的字段；addr / web_dir / open_browser 启动后不能再改
func (s *Store) Update(c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.config
	if c.Addr != cur.Addr || c.WebDir != cur.WebDir || c.OpenBrowser != cur.OpenBrowser {
		return fmt.Errorf("%w: addr, web_dir and open_browser are fixed at startup", ErrInvalidConfig)
	}
	s.config = c
	return nil
}
