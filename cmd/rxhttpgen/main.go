package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/cockroachdb/errors"

	"github.com/broady/rxhttpgen"
	"github.com/broady/rxhttpgen/decl"
	"github.com/broady/rxhttpgen/kotlin"
	"github.com/broady/rxhttpgen/sink"
)

type CLI struct {
	LogLevel string `help:"Log level." enum:"debug,info,warn,error" default:"warn" name:"log-level"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     GenCmd     `cmd:"" help:"Generate RxHttp Kotlin sources from a declaration graph."`
	Check   CheckCmd   `cmd:"" help:"Validate declarations without writing files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

// GenFlags are shared by gen and check.
type GenFlags struct {
	Config       string `help:"Configuration file (TOML)." short:"c" type:"existingfile"`
	Package      string `help:"Kotlin package of the generated files." short:"p"`
	RxJava       string `help:"RxJava version: rxjava3, rxjava2 or none." name:"rxjava"`
	IndentSize   int    `help:"Spaces per indentation level." name:"indent"`
	DepsManifest bool   `help:"Write rxhttpgen.deps.json." name:"deps-manifest"`
}

// config loads the config file, if any, and applies the flags over it.
func (f *GenFlags) config(input string) (*rxhttpgen.Config, error) {
	cfg := &rxhttpgen.Config{}
	if f.Config != "" {
		loaded, err := rxhttpgen.LoadConfig(f.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if input != "" {
		cfg.Input = input
	}
	if f.Package != "" {
		cfg.Package = f.Package
	}
	if f.RxJava != "" {
		cfg.RxJava = f.RxJava
	}
	if f.IndentSize != 0 {
		cfg.IndentSize = f.IndentSize
	}
	if f.DepsManifest {
		cfg.DepsManifest = true
	}
	if cfg.Input == "" {
		return nil, errors.New("no input: pass a declaration graph file or set input in the config file")
	}
	return cfg, nil
}

type GenCmd struct {
	GenFlags `embed:""`

	Input       string `arg:"" optional:"" help:"Declaration graph file (YAML or JSON)."`
	Out         string `arg:"" optional:"" help:"Output directory for generated files."`
	NoOverwrite bool   `help:"Fail instead of replacing existing files." name:"no-overwrite"`
}

func (c *GenCmd) Run(logger *slog.Logger) error {
	cfg, err := c.config(c.Input)
	if err != nil {
		return err
	}
	if c.Out != "" {
		cfg.OutDir = c.Out
	}
	if cfg.OutDir == "" {
		return errors.New("no output directory: pass one or set out_dir in the config file")
	}
	if c.NoOverwrite {
		overwrite := false
		cfg.Overwrite = &overwrite
	}
	cfg.Logger = logger

	fs := sink.NewFilesystemSink(cfg.OutDir)
	fs.Overwrite = cfg.Overwrites()
	w := rxhttpgen.NewKotlinWriter(fs, kotlin.Options{IndentSize: cfg.IndentSize})
	w.Manifest = cfg.DepsManifest

	result, err := rxhttpgen.Run(context.Background(), cfg, &decl.FileProvider{Path: cfg.Input}, w)
	if err != nil {
		return err
	}
	for _, path := range result.Files {
		fmt.Printf("✓ %s\n", path)
	}
	return failOnErrors(result)
}

type CheckCmd struct {
	GenFlags `embed:""`

	Input string `arg:"" optional:"" help:"Declaration graph file (YAML or JSON)."`
}

func (c *CheckCmd) Run(logger *slog.Logger) error {
	cfg, err := c.config(c.Input)
	if err != nil {
		return err
	}
	cfg.Logger = logger

	w := rxhttpgen.NewKotlinWriter(sink.NewMemorySink(), kotlin.Options{IndentSize: cfg.IndentSize})
	result, err := rxhttpgen.Run(context.Background(), cfg, &decl.FileProvider{Path: cfg.Input}, w)
	if err != nil {
		return err
	}
	fmt.Printf("✓ %d parsers, %d params, %d wrapper classes\n", result.Parsers, result.Params, result.Wrappers)
	fmt.Printf("✓ %d files would be generated\n", len(result.Files))
	return failOnErrors(result)
}

// failOnErrors prints the diagnostics and fails when any is an error.
func failOnErrors(result *rxhttpgen.Result) error {
	for _, d := range result.Diagnostics {
		fmt.Fprintln(os.Stderr, d)
	}
	if n := result.Errors(); n > 0 {
		return errors.Newf("%d declaration errors", n)
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("rxhttpgen"),
		kong.Description("Generates the RxHttp Kotlin API from @Parser, @Param and builder declarations."),
		kong.UsageOnError(),
	)
	logger := newLogger(cli.LogLevel)
	slog.SetDefault(logger)
	err := ctx.Run(logger)
	ctx.FatalIfErrorf(err)
}
