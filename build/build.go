// Package build replays recorded emission traces through an emitter and
// persists the generated output together with its source map.
package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/gopherjs/emitmap/emitter"
)

// Trace file extensions stripped to obtain the output file name.
var traceExtensions = []string{".trace", ".jsonl"}

type Options struct {
	Inline    bool
	RootURL   string
	Comment   emitter.Comment
	OutputDir string
	Watch     bool
}

// ParseComment returns the trailer syntax of a generated language by its short
// name.
func ParseComment(lang string) (emitter.Comment, error) {
	switch lang {
	case "css", "":
		return emitter.CSSComment, nil
	case "js":
		return emitter.JSComment, nil
	default:
		return emitter.Comment{}, fmt.Errorf("unknown comment style %q, expected \"css\" or \"js\"", lang)
	}
}

// Result describes the artifacts written for one trace.
type Result struct {
	Output   string // Path to the generated file.
	Map      string // Path to the external source map, empty in inline mode.
	Mappings int    // Number of fragments attributed to an origin.
}

type Session struct {
	options *Options
	Watcher *fsnotify.Watcher
}

func NewSession(options *Options) (*Session, error) {
	if options.OutputDir == "" {
		options.OutputDir = "."
	}

	s := &Session{
		options: options,
	}
	if options.Watch {
		var err error
		s.Watcher, err = fsnotify.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("failed to create file watcher: %w", err)
		}
	}
	return s, nil
}

// Close releases the file watcher, if any.
func (s *Session) Close() error {
	if s.Watcher == nil {
		return nil
	}
	return s.Watcher.Close()
}

// OutputName returns the generated file name for a trace: its base name without
// the trace extension.
func OutputName(tracePath string) string {
	name := filepath.Base(tracePath)
	for _, ext := range traceExtensions {
		if trimmed := strings.TrimSuffix(name, ext); trimmed != name && trimmed != "" {
			return trimmed
		}
	}
	return name + ".out"
}

// Replay feeds all fragments of the trace through a fresh emitter, then writes
// the generated file and, unless the map is inlined, the ".map" file next to
// it into the output directory.
//
// Relative origin paths are resolved against the trace's directory when source
// contents are read.
func (s *Session) Replay(tracePath string) (*Result, error) {
	s.watch(tracePath)

	f, err := os.Open(tracePath)
	if err != nil {
		return nil, err
	}
	fragments, err := ReadTrace(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read trace %s: %w", tracePath, err)
	}

	name := OutputName(tracePath)
	traceDir := filepath.Dir(tracePath)
	e := emitter.New(emitter.Options{
		File:    name,
		RootURL: s.options.RootURL,
		Inline:  s.options.Inline,
		Comment: s.options.Comment,
		ReadFile: func(path string) ([]byte, error) {
			if !filepath.IsAbs(path) {
				path = filepath.Join(traceDir, path)
			}
			s.watch(path)
			return os.ReadFile(path)
		},
	})

	result := &Result{Output: filepath.Join(s.options.OutputDir, name)}
	code := &strings.Builder{}
	for _, fragment := range fragments {
		text, err := e.Out(fragment.Text, fragment.Origin)
		if err != nil {
			return nil, fmt.Errorf("failed to replay %s at %s: %w", tracePath, e.Cursor(), err)
		}
		code.WriteString(text)
		if fragment.Origin != nil && fragment.Origin.Line >= 1 {
			result.Mappings++
		}
	}

	out, err := e.Compile(code.String())
	if err != nil {
		return nil, fmt.Errorf("failed to compile source map for %s: %w", tracePath, err)
	}

	if err := os.MkdirAll(s.options.OutputDir, 0o777); err != nil {
		return nil, err
	}
	if !s.options.Inline {
		result.Map = result.Output + ".map"
		if err := writeMap(e, result.Map); err != nil {
			return nil, err
		}
		log.Infof("Wrote source map %s.", result.Map)
	}
	if err := os.WriteFile(result.Output, []byte(out), 0o666); err != nil {
		return nil, err
	}
	log.Infof("Wrote %s with %d mappings.", result.Output, result.Mappings)
	return result, nil
}

func writeMap(e *emitter.Emitter, path string) error {
	mapFile, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := e.WriteMap(mapFile); err != nil {
		mapFile.Close()
		return err
	}
	return mapFile.Close()
}

// ErrDuplicateOutput is returned by ReplayAll when two traces would be written
// to the same output file.
var ErrDuplicateOutput = errors.New("traces produce the same output file")

// ReplayAll replays the traces concurrently, each with its own emitter. The
// first failure cancels replays that haven't started yet. Nothing is replayed
// if two of the traces map to the same output name.
func (s *Session) ReplayAll(ctx context.Context, tracePaths []string) ([]*Result, error) {
	seen := make(map[string]string, len(tracePaths))
	for _, tracePath := range tracePaths {
		name := OutputName(tracePath)
		if other, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", ErrDuplicateOutput, other, tracePath, name)
		}
		seen[name] = tracePath
	}

	results := make([]*Result, len(tracePaths))
	g, ctx := errgroup.WithContext(ctx)
	for i, tracePath := range tracePaths {
		i, tracePath := i, tracePath
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.Replay(tracePath)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Session) watch(path string) {
	if s.Watcher == nil {
		return
	}
	if err := s.Watcher.Add(path); err != nil {
		log.Warningf("Failed to watch %s: %v", path, err)
	}
}

// WaitForChange blocks until one of the files used by the session changes and
// closes the watcher. A new session has to be created for the next build.
func (s *Session) WaitForChange() {
	log.Info("Watching for changes...")
	select {
	case ev := <-s.Watcher.Events:
		log.Infof("Change detected: %s", ev.Name)
	case err := <-s.Watcher.Errors:
		log.Warningf("Watcher error: %v", err)
	}
	s.Watcher.Close()
}
