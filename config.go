package rxhttpgen

import (
	"log/slog"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/broady/rxhttpgen/diag"
	"github.com/broady/rxhttpgen/internal/rxhttp"
	"github.com/broady/rxhttpgen/kotlin"
)

// ConfigFile is the conventional configuration file name.
const ConfigFile = "rxhttpgen.toml"

// RxJava settings.
const (
	RxJava3    = "rxjava3"
	RxJava2    = "rxjava2"
	RxJavaNone = "none"
)

// Config holds the configuration for one generation pass.
type Config struct {
	// Input is the declaration graph file (YAML or JSON).
	Input string `toml:"input"`

	// OutDir is the directory generated files are written below.
	// e.g. "./build/generated/rxhttp"
	OutDir string `toml:"out_dir"`

	// Package is the Kotlin package of the generated files.
	// Default: "rxhttp.wrapper.param"
	Package string `toml:"package" validate:"kotlinpkg"`

	// RxJava selects the RxJava version the generated toObservable
	// functions target. "none" disables them; wrap factories and the
	// request objects are generated either way.
	// Supported values: "rxjava3", "rxjava2", "none". Default: "rxjava3"
	RxJava string `toml:"rxjava" validate:"oneof=rxjava3 rxjava2 none"`

	// IndentSize is the number of spaces per indentation level.
	// Default: 4
	IndentSize int `toml:"indent_size" validate:"gte=1,lte=8"`

	// DepsManifest writes rxhttpgen.deps.json next to the generated files,
	// listing the declaration files each one was derived from.
	DepsManifest bool `toml:"deps_manifest"`

	// Overwrite replaces existing files. Default: true
	Overwrite *bool `toml:"overwrite"`

	// Logger receives progress records. If nil, slog.Default() is used.
	Logger *slog.Logger `toml:"-" validate:"-"`

	// Reporter receives diagnostics in addition to the logger and the
	// returned Result.
	Reporter diag.Reporter `toml:"-" validate:"-"`
}

// RxJavaEnabled reports whether toObservable functions are generated.
func (c *Config) RxJavaEnabled() bool {
	return c.RxJava != RxJavaNone
}

// Overwrites reports whether existing files are replaced.
func (c *Config) Overwrites() bool {
	return c.Overwrite == nil || *c.Overwrite
}

// applyConfigDefaults returns a copy of cfg with defaults filled in.
func applyConfigDefaults(cfg *Config) *Config {
	out := *cfg
	if out.Package == "" {
		out.Package = rxhttp.DefaultPackage
	}
	if out.RxJava == "" {
		out.RxJava = RxJava3
	}
	if out.IndentSize == 0 {
		out.IndentSize = kotlin.DefaultIndentSize
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return &out
}

var (
	validate = newValidator()

	packagePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		return name
	})
	_ = v.RegisterValidation("kotlinpkg", func(fl validator.FieldLevel) bool {
		return packagePattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks cfg after defaults have been applied.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fieldMessage(fe)
			}
			return errors.Newf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fe.Field() + " must be one of [" + fe.Param() + "], got " + quoteValue(fe.Value())
	case "kotlinpkg":
		return fe.Field() + " is not a valid Kotlin package name: " + quoteValue(fe.Value())
	case "gte", "lte":
		return fe.Field() + " must be between 1 and 8"
	default:
		return fe.Field() + " failed " + fe.Tag()
	}
}

func quoteValue(v any) string {
	s, _ := v.(string)
	return `"` + s + `"`
}

// LoadConfig reads a TOML configuration file. Relative Input and OutDir
// paths are resolved against the file's directory. Unknown keys are an
// error.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.WithHint(
			errors.Newf("load config %s: unknown keys %s", path, strings.Join(keys, ", ")),
			"supported keys: input, out_dir, package, rxjava, indent_size, deps_manifest, overwrite")
	}
	dir := filepath.Dir(path)
	cfg.Input = resolveRelative(dir, cfg.Input)
	cfg.OutDir = resolveRelative(dir, cfg.OutDir)
	return &cfg, nil
}

func resolveRelative(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
