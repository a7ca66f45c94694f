package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"seoinspector/internal/bridge"
	"seoinspector/internal/cache"
	"seoinspector/internal/config"
	"seoinspector/internal/log"
	"seoinspector/internal/service"
)

// zap writes to stderr, which keeps stdout free for the stdio transport.
func init() {
	log.InitLogger()
	config.LoadEnv()
	if !config.AppConfig.IsDev {
		log.UseProduction()
	}
}

func main() {
	defer log.Sync()

	cfg := config.AppConfig

	b, err := bridge.New(cfg)
	if err != nil {
		log.Logger.Fatal("Failed to start inspection bridge", zap.String("bridge", cfg.Bridge), zap.Error(err))
	}
	defer b.Close()

	inspector := service.NewInspector(
		b,
		service.NewProber(cfg.UserAgent, cfg.ProbeTimeout),
		cache.New(cfg.CacheTTL),
	)

	s := server.NewMCPServer(
		"seoinspector",
		"1.0.0",
		server.WithToolCapabilities(false),
	)
	s.AddTool(inspectPageTool, handleInspectPage(inspector))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
