package rxhttpgen

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/broady/rxhttpgen/ir"
	"github.com/broady/rxhttpgen/kotlin"
	"github.com/broady/rxhttpgen/sink"
)

// ManifestFile is the dependency manifest written by KotlinWriter.Flush.
const ManifestFile = "rxhttpgen.deps.json"

// Writer receives each generated file together with the declaration files
// it was derived from.
type Writer interface {
	Write(ctx context.Context, f *ir.File, deps ir.Dependencies) error
}

// flusher is implemented by writers that hold output until the pass ends.
type flusher interface {
	Flush(ctx context.Context) error
}

// KotlinWriter renders files as Kotlin source into a sink.
type KotlinWriter struct {
	Sink    sink.OutputSink
	Options kotlin.Options

	// Manifest makes Flush write ManifestFile.
	Manifest bool

	mu      sync.Mutex
	entries map[string]ManifestEntry
}

// ManifestEntry records the sources of one generated file.
type ManifestEntry struct {
	Path        string   `json:"path"`
	Aggregating bool     `json:"aggregating"`
	Sources     []string `json:"sources"`
}

type manifest struct {
	Files []ManifestEntry `json:"files"`
}

// NewKotlinWriter returns a writer rendering into s.
func NewKotlinWriter(s sink.OutputSink, opts kotlin.Options) *KotlinWriter {
	return &KotlinWriter{Sink: s, Options: opts}
}

// Write renders f and writes it to <package path>/<Name>.kt.
func (w *KotlinWriter) Write(ctx context.Context, f *ir.File, deps ir.Dependencies) error {
	path := f.Path(".kt")
	content, err := kotlin.Render(f, w.Options)
	if err != nil {
		return errors.Wrapf(err, "render %s", path)
	}
	if err := w.Sink.WriteFile(ctx, path, content); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.entries == nil {
		w.entries = make(map[string]ManifestEntry)
	}
	w.entries[path] = ManifestEntry{
		Path:        path,
		Aggregating: deps.Aggregating,
		Sources:     deps.Files(),
	}
	return nil
}

// Entries returns what has been written so far, sorted by path.
func (w *KotlinWriter) Entries() []ManifestEntry {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]ManifestEntry, 0, len(w.entries))
	for _, e := range w.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Flush writes the dependency manifest when Manifest is set.
func (w *KotlinWriter) Flush(ctx context.Context) error {
	if !w.Manifest {
		return nil
	}
	data, err := json.MarshalIndent(manifest{Files: w.Entries()}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode manifest")
	}
	data = append(data, '\n')
	return w.Sink.WriteFile(ctx, ManifestFile, data)
}
