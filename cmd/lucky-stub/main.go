package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/tinytelemetry/lucky/internal/stubserver"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var addr string
	var fixtures string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/lucky/stub.yml)")
	flag.StringVar(&addr, "addr", "", "override listen address")
	flag.StringVar(&fixtures, "fixtures", "", "YAML fixture file merged over the built-in responses")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Lucky Stub - Fixture Server\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadStubConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if fixtures != "" {
		cfg.Fixtures = fixtures
	}

	if err := runServer(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalRNG draws prize rolls from the process-wide source.
type globalRNG struct{}

func (globalRNG) IntN(n int) int { return rand.IntN(n) }

func runServer(cfg stubConfig) error {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.SetOutput(os.Stderr)
	gin.SetMode(gin.ReleaseMode)

	fx := stubserver.DefaultFixtures()
	if cfg.Fixtures != "" {
		loaded, err := stubserver.LoadFixtures(cfg.Fixtures)
		if err != nil {
			return fmt.Errorf("failed to load fixtures: %w", err)
		}
		fx = loaded
		log.Printf("stub: fixtures loaded from %s", cfg.Fixtures)
	}

	srv := stubserver.NewServer(cfg.Addr, fx, stubserver.Options{
		ChunkSize:  cfg.StreamChunkSize,
		ChunkDelay: cfg.StreamChunkDelay,
	}, globalRNG{})
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start stub server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("lucky-stub %s serving on http://%s (Ctrl+C to stop)\n", version, srv.Addr())

	// A dead listener cancels gctx, which shuts the server down and exits.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Serve)
	g.Go(func() error {
		<-gctx.Done()
		log.Printf("stub: shutting down")
		return srv.Stop()
	})

	return g.Wait()
}
