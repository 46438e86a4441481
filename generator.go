// Package rxhttpgen generates the Kotlin sources of the RxHttp fluent HTTP
// client from a declaration graph of @Parser, @Param, @Converter, @OkClient
// and @Domain declarations.
package rxhttpgen

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/broady/rxhttpgen/decl"
	"github.com/broady/rxhttpgen/diag"
	"github.com/broady/rxhttpgen/internal/introspect"
	"github.com/broady/rxhttpgen/internal/rxhttp"
	"github.com/broady/rxhttpgen/ir"
	"github.com/broady/rxhttpgen/kotlin"
	"github.com/broady/rxhttpgen/parser"
	"github.com/broady/rxhttpgen/request"
	"github.com/broady/rxhttpgen/sink"
)

// Result summarizes one generation pass.
type Result struct {
	// Files are the generated file paths in emission order.
	Files []string

	// Diagnostics holds every reported issue in report order.
	Diagnostics []diag.Diagnostic

	Parsers  int
	Params   int
	Wrappers int
}

// Errors returns the number of error diagnostics.
func (r *Result) Errors() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == diag.SeverityError {
			n++
		}
	}
	return n
}

// Run performs one generation pass: it loads the declaration graph,
// registers every annotated declaration, and hands each generated file to
// w. Structural problems in user declarations become diagnostics and do
// not fail the pass. Run returns an error only when the config is invalid,
// the provider fails, or w fails.
func Run(ctx context.Context, cfg *Config, provider decl.Provider, w Writer) (*Result, error) {
	cfg = applyConfigDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger

	g, err := provider.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load declarations")
	}

	var collector diag.Collector
	reporter := diag.Multi{&collector, &diag.SlogReporter{Logger: logger}, cfg.Reporter}

	in := introspect.New(g)
	parsers := parser.NewRegistry(in, reporter)
	params := request.NewRegistry(in, reporter)
	wrappers := request.NewWrappers(reporter)
	for _, c := range g.Classes {
		if err := parsers.Visit(c); err != nil {
			return nil, err
		}
		if err := params.Visit(c); err != nil {
			return nil, err
		}
	}
	for _, p := range g.Properties {
		if err := wrappers.AddProperty(p); err != nil {
			return nil, err
		}
	}
	logger.Debug("declarations registered",
		slog.Int("parsers", parsers.Len()),
		slog.Int("params", len(params.Descriptors())),
		slog.Int("wrappers", wrappers.Len()))

	names := rxhttp.In(cfg.Package)
	var units []ir.Unit
	if f := parser.Generate(parsers, parser.Options{RxJava: cfg.RxJavaEnabled(), Names: names}); f != nil {
		units = append(units, ir.Unit{File: f, Deps: parsers.Dependencies()})
	}
	units = append(units, request.Generate(params, wrappers, names)...)

	result := &Result{
		Parsers:  parsers.Len(),
		Params:   len(params.Descriptors()),
		Wrappers: wrappers.Len(),
	}
	for _, u := range units {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := u.File.Path(".kt")
		if err := w.Write(ctx, u.File, u.Deps); err != nil {
			return nil, errors.WithStack(&diag.EmissionError{Path: path, Err: err})
		}
		logger.Debug("file generated", slog.String("path", path), slog.Int("sources", u.Deps.Len()))
		result.Files = append(result.Files, path)
	}
	if f, ok := w.(flusher); ok {
		if err := f.Flush(ctx); err != nil {
			return nil, errors.WithStack(&diag.EmissionError{Path: ManifestFile, Err: err})
		}
	}

	result.Diagnostics = collector.Diagnostics()
	logger.Info("generation complete",
		slog.Int("files", len(result.Files)),
		slog.Int("errors", result.Errors()),
		slog.Int("warnings", len(result.Diagnostics)-result.Errors()))
	return result, nil
}

// Generator provides a fluent API for code generation.
// Create with FromFile or FromGraph and configure with method chaining.
//
// Example:
//
//	rxhttpgen.FromFile("build/rxhttp/declarations.yaml").
//	    Package("com.example.http").
//	    WithoutRxJava().
//	    ToDir("build/generated/rxhttp")
type Generator struct {
	provider decl.Provider
	cfg      Config
}

// FromFile creates a Generator reading the declaration graph at path.
func FromFile(path string) *Generator {
	return &Generator{
		provider: &decl.FileProvider{Path: path},
		cfg:      Config{Input: path},
	}
}

// FromGraph creates a Generator for an in-memory declaration graph.
func FromGraph(g *decl.Graph) *Generator {
	return &Generator{provider: &decl.StaticProvider{Graph: g}}
}

// FromConfig creates a Generator from a loaded configuration. The
// declaration graph is read from cfg.Input.
func FromConfig(cfg *Config) *Generator {
	return &Generator{
		provider: &decl.FileProvider{Path: cfg.Input},
		cfg:      *cfg,
	}
}

// Package sets the Kotlin package of the generated files.
func (g *Generator) Package(pkg string) *Generator {
	g.cfg.Package = pkg
	return g
}

// RxJava selects the targeted RxJava version.
// Valid values: "rxjava3" (default), "rxjava2", "none".
func (g *Generator) RxJava(version string) *Generator {
	g.cfg.RxJava = version
	return g
}

// WithoutRxJava disables the toObservable functions.
func (g *Generator) WithoutRxJava() *Generator {
	return g.RxJava(RxJavaNone)
}

// IndentSize sets the number of spaces per indentation level.
func (g *Generator) IndentSize(n int) *Generator {
	g.cfg.IndentSize = n
	return g
}

// WithDepsManifest also writes rxhttpgen.deps.json.
func (g *Generator) WithDepsManifest() *Generator {
	g.cfg.DepsManifest = true
	return g
}

// Logger sets the progress logger.
func (g *Generator) Logger(l *slog.Logger) *Generator {
	g.cfg.Logger = l
	return g
}

// Reporter adds a diagnostics reporter.
func (g *Generator) Reporter(r diag.Reporter) *Generator {
	g.cfg.Reporter = r
	return g
}

// ToDir generates files below dir.
// This is a terminal operation that writes files to disk.
func (g *Generator) ToDir(dir string) (*Result, error) {
	g.cfg.OutDir = dir
	fs := sink.NewFilesystemSink(dir)
	fs.Overwrite = g.cfg.Overwrites()
	return g.ToSink(context.Background(), fs)
}

// ToSink generates files into s.
func (g *Generator) ToSink(ctx context.Context, s sink.OutputSink) (*Result, error) {
	cfg := applyConfigDefaults(&g.cfg)
	w := NewKotlinWriter(s, kotlin.Options{IndentSize: cfg.IndentSize})
	w.Manifest = cfg.DepsManifest
	return Run(ctx, cfg, g.provider, w)
}
