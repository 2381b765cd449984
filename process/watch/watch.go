// Package watch triggers a callback once new screenshots stop arriving.
package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultQuiet is how long the directory must stay silent before a batch fires.
// Capturing a full set of grid pages takes a few seconds.
const DefaultQuiet = 3 * time.Second

const tick = 250 * time.Millisecond

// Watcher batches create and write events for files matching Pattern in Dir.
type Watcher struct {
	Dir     string
	Pattern string
	Quiet   time.Duration
	// OnBatch receives the settled file names, sorted. It runs on the watcher's
	// goroutine so batches never overlap.
	OnBatch func(ctx context.Context, files []string)
}

// Run blocks until ctx is done or the underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Add(w.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.Dir, err)
	}
	quiet := w.Quiet
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	log.Printf("Watching %s for %s (debounced %s) ...", w.Dir, w.Pattern, quiet)

	pending := map[string]bool{}
	var last time.Time
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			name := filepath.Base(ev.Name)
			if ok, _ := filepath.Match(w.Pattern, name); !ok {
				continue
			}
			pending[name] = true
			last = time.Now()
		case <-ticker.C:
			if len(pending) == 0 || time.Since(last) < quiet {
				continue
			}
			files := make([]string, 0, len(pending))
			for name := range pending {
				files = append(files, name)
			}
			sort.Strings(files)
			pending = map[string]bool{}
			log.Printf("watch: %d new screenshots settled", len(files))
			w.OnBatch(ctx, files)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}
