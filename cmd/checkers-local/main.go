package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"checkers/internal/config"
	"checkers/internal/engine"
	"checkers/internal/server/game"
	httpserver "checkers/internal/server/http"
)

// browserCommand 各平台打开默认浏览器的命令
func browserCommand(url string) (string, []string) {
	switch runtime.GOOS {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		return "open", []string{url}
	}
	return "xdg-open", []string{url}
}

// launchBrowser 等 /api/ping 有响应再打开页面；服务关闭或 5 秒内没起来就放弃
func launchBrowser(ctx context.Context, base string) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	client := &http.Client{Timeout: time.Second}
	for {
		if resp, err := client.Get(base + "api/ping"); err == nil {
			resp.Body.Close()
			break
		}
		select {
		case <-ctx.Done():
			log.Printf("server not ready, open %s manually", base)
			return
		case <-tick.C:
		}
	}

	name, args := browserCommand(base)
	if err := exec.Command(name, args...).Start(); err != nil {
		log.Printf("open browser: %v", err)
	}
}

func main() {
	configPath := flag.String("config", "", "path to JSON config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	webDir := flag.String("web", "", "directory with index.html / js (overrides config)")
	depth := flag.Int("depth", 0, "AI search depth (overrides config)")
	strategy := flag.String("strategy", "", "minimax | alphabeta (overrides config)")
	noBrowser := flag.Bool("no-browser", false, "do not open the browser")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *webDir != "" {
		cfg.WebDir = *webDir
	}
	if *depth > 0 {
		cfg.AiDepth = *depth
	}
	if *strategy != "" {
		cfg.AiStrategy = *strategy
	}
	if *noBrowser {
		cfg.OpenBrowser = false
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	h := httpserver.NewHandler(game.NewManager(engine.NewEngine()), config.NewStore(cfg))
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpserver.NewRouter(h, cfg.WebDir),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()
	log.Printf("listening on %s, serving static from %s, ai=%s depth=%d",
		cfg.Addr, cfg.WebDir, cfg.AiStrategy, cfg.AiDepth)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OpenBrowser {
		go launchBrowser(sigCtx, "http://"+cfg.Addr+"/")
	}

	select {
	case <-sigCtx.Done():
		log.Printf("shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			log.Fatalf("server error: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
