package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/tonelang-ai/tonelang-go/config"
	"github.com/tonelang-ai/tonelang-go/live"
	"github.com/tonelang-ai/tonelang-go/metrics"
	"github.com/tonelang-ai/tonelang-go/tools"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	bridgeAddr := flag.String("bridge", "localhost:39031", "plugin host bridge address")
	flag.Parse()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: Could not load .env file: %v", err)
		log.Println("   Continuing with environment variables...")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ ERROR: %v", err)
	}

	if err := metrics.Init(cfg.SentryDSN, cfg.Environment); err != nil {
		log.Fatalf("❌ ERROR: %v", err)
	}
	defer metrics.Flush()

	addr := *bridgeAddr
	if env := os.Getenv("TONELANG_BRIDGE_ADDR"); env != "" {
		addr = env
	}
	client, err := live.DialBridge("tcp", addr)
	if err != nil {
		log.Fatalf("❌ ERROR: %v", err)
	}
	defer client.Close()

	log.Printf("🎵 tonelang-mcp %s serving over stdio (host bridge: %s)", cfg.Version, addr)
	srv := tools.NewServer(cfg, client)
	if err := srv.Run(context.Background()); err != nil {
		log.Fatalf("❌ Server stopped: %v", err)
	}
}
