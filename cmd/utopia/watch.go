// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"

	"utopia/internal/compiler"
)

const sourceExt = ".utopia"

func runWatch(args []string) error {
	fs, o := newFlagSet("watch", "<file.utopia | directory>...")
	delay := fs.Duration("debounce", 100*time.Millisecond, "quiet period after a change before re-checking")
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		fs.Usage()
		return errFailed
	}

	c, err := o.compiler()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return watch(ctx, os.Stdout, c, fs.Args(), *delay)
}

// watchSet is what a watch session follows: explicit files, and directories
// whose every source file counts.
type watchSet struct {
	files map[string]bool
	dirs  map[string]bool
}

func newWatchSet(targets []string) (*watchSet, error) {
	ws := &watchSet{files: map[string]bool{}, dirs: map[string]bool{}}
	for _, target := range targets {
		target = filepath.Clean(target)
		info, err := os.Stat(target)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			ws.dirs[target] = true
			continue
		}
		ws.files[target] = true
	}
	return ws, nil
}

func (ws *watchSet) follows(path string) bool {
	path = filepath.Clean(path)
	return ws.files[path] || (ws.dirs[filepath.Dir(path)] && filepath.Ext(path) == sourceExt)
}

// watchDirs lists the directories to subscribe to. Files are followed
// through their directory so editors that save by renaming keep working.
func (ws *watchSet) watchDirs() []string {
	seen := map[string]bool{}
	for dir := range ws.dirs {
		seen[dir] = true
	}
	for file := range ws.files {
		seen[filepath.Dir(file)] = true
	}
	return sortedSet(seen)
}

// sources lists the files to check up front.
func (ws *watchSet) sources() ([]string, error) {
	seen := map[string]bool{}
	for file := range ws.files {
		seen[file] = true
	}
	for dir := range ws.dirs {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+sourceExt))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			seen[m] = true
		}
	}
	return sortedSet(seen), nil
}

// watch checks every target once, then re-checks files as they change
// until ctx is done. Events are handled on this goroutine only.
func watch(ctx context.Context, w io.Writer, c *compiler.Compiler, targets []string, delay time.Duration) error {
	ws, err := newWatchSet(targets)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range ws.watchDirs() {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		log.Debugf("watching %s", dir)
	}

	sources, err := ws.sources()
	if err != nil {
		return err
	}
	for _, path := range sources {
		if _, err := check(w, c, path, false); err != nil {
			fmt.Fprintln(w, color.RedString("error: %v", err))
		}
	}
	fmt.Fprintln(w, color.CyanString("Watching %d file(s) for changes", len(sources)))

	pending := map[string]bool{}
	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !ws.follows(ev.Name) {
				continue
			}
			log.Debugf("%s: %s", ev.Op, ev.Name)
			pending[filepath.Clean(ev.Name)] = true
			settle = time.After(delay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch: %v", err)

		case <-settle:
			for _, path := range sortedSet(pending) {
				fmt.Fprintln(w, color.CyanString("%s changed", path))
				if _, err := check(w, c, path, false); err != nil {
					fmt.Fprintln(w, color.RedString("error: %v", err))
				}
			}
			pending = map[string]bool{}
			settle = nil
		}
	}
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
