package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"

	"resourceocr/pkg/config"
	"resourceocr/process/archive"
	"resourceocr/process/report"
	"resourceocr/process/screening"
	"resourceocr/process/watch"
)

var jwtSecret []byte // loaded from env JWT_SECRET (fallback to dev default)

const usage = `usage: resourceocr [-config resourceocr.yaml] [serve|run|watch|migrate]

  serve    HTTP API (default)
  run      extract once, print the table, archive when DB_DSN is set
  watch    run again whenever new screenshots settle
  migrate  create archive tables and seed roles, then exit`

func main() {
	// Auto-load ./.env if present before reading vars
	loadDotEnv()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}
	jwtSecret = []byte(secret)

	configPath := flag.String("config", "", "config file (default ./resourceocr.yaml if present)")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	runs = newRunner(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd := flag.Arg(0); cmd {
	case "migrate":
		initDB()
		fmt.Println("migration and seeding completed")
	case "run":
		os.Exit(runOnce(ctx))
	case "watch":
		if err := watchLoop(ctx, cfg); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
	case "", "serve":
		initDB()
		r := gin.Default()
		setupRoutes(r)
		if err := r.Run(cfg.ListenAddr); err != nil {
			log.Fatalf("serve: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n%s\n", cmd, usage)
		os.Exit(2)
	}
}

// optionalDB opens the archive when DB_DSN is set; a broken connection only
// disables archiving.
func optionalDB() {
	gdb, err := archive.OpenFromEnv()
	if err != nil {
		log.Printf("archive disabled: %v", err)
		return
	}
	if gdb == nil {
		return
	}
	db = gdb
	if shouldMigrate() {
		if err := archive.Migrate(db); err != nil {
			log.Printf("migration warning: %v", err)
		}
	}
}

func runOnce(ctx context.Context) int {
	optionalDB()
	_, res, err := runs.run(ctx, db, nil)
	if err != nil {
		log.Printf("run failed: %v", err)
		if res != nil && res.Triage != nil {
			log.Printf("triage: discarded=%d autographs=%d", len(res.Triage.Discarded), len(res.Triage.Autographs))
		}
		return 1
	}
	if err := report.Write(os.Stdout, res.Table.Rows(), res.Missing()); err != nil {
		log.Printf("report: %v", err)
		return 1
	}
	return 0
}

func watchLoop(ctx context.Context, cfg *config.Config) error {
	optionalDB()
	w := &watch.Watcher{
		Dir:     cfg.ScreenshotDir,
		Pattern: cfg.ScreenshotPattern,
		OnBatch: func(ctx context.Context, files []string) {
			_, res, err := runs.run(ctx, db, nil)
			if errors.Is(err, screening.ErrInsufficientInput) {
				log.Printf("waiting for more screenshots: %v", err)
				return
			}
			if err != nil {
				log.Printf("run failed: %v", err)
				return
			}
			if err := report.Write(os.Stdout, res.Table.Rows(), res.Missing()); err != nil {
				log.Printf("report: %v", err)
			}
		},
	}
	return w.Run(ctx)
}

// loadDotEnv loads key=value pairs from a local .env file into the environment
// without overwriting variables that are already set. Lines starting with # are ignored.
func loadDotEnv() {
	path := ".env"
	if _, err := os.Stat(path); err != nil {
		return // no .env file
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if eq := strings.IndexByte(line, '='); eq > 0 {
			key := strings.TrimSpace(line[:eq])
			val := strings.Trim(strings.TrimSpace(line[eq+1:]), `"`)
			if _, exists := os.LookupEnv(key); !exists {
				_ = os.Setenv(key, val)
			}
		}
	}
}
