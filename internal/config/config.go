package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/dgallion1/qcreport/internal/chunker"
	"github.com/dgallion1/qcreport/internal/parser"
)

// EnvPrefix scopes environment overrides, e.g. QCREPORT_REPORTS_PER_PAGE.
const EnvPrefix = "QCREPORT_"

// SubjectPlaceholder is replaced with the subject label in PathToFigures.
const SubjectPlaceholder = "{subject}"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	// Pagination; zero puts every figure of a report type on one page.
	ReportsPerPage int `koanf:"reports_per_page"`

	// Relative path from <group>/sub-<subject> to the subject's figures.
	PathToFigures string `koanf:"path_to_figures"`

	// Directory under the output root that receives consolidated pages.
	GroupDir string `koanf:"group_dir"`

	Markers Markers `koanf:"markers"`

	// Optional Markdown file replacing the built-in reviewer instructions.
	InstructionsFile string `koanf:"instructions_file"`

	Log Log `koanf:"log"`
}

// Markers is the class vocabulary of subject reports.
type Markers struct {
	Figure      string `koanf:"figure"`
	RunTitle    string `koanf:"run_title"`
	RunTitleTag string `koanf:"run_title_tag"`
	Caption     string `koanf:"caption"`
	CaptionTag  string `koanf:"caption_tag"`
}

type Log struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // text, json
}

// Default returns the built-in configuration.
func Default() Config {
	m := parser.DefaultMarkers()
	return Config{
		ReportsPerPage: chunker.DefaultConfig().PerPage,
		PathToFigures:  "../../sub-{subject}/figures",
		GroupDir:       "group",
		Markers: Markers{
			Figure:      m.Figure,
			RunTitle:    m.RunTitle,
			RunTitleTag: m.RunTitleTag,
			Caption:     m.Caption,
			CaptionTag:  m.CaptionTag,
		},
		Log: Log{Level: "info", Format: "text"},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then QCREPORT_* environment variables.
// Nested keys use a double underscore: QCREPORT_MARKERS__FIGURE.
func Load(path string) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return cfg, fmt.Errorf("load environment: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	return cfg, nil
}

// applyDefaults fills values a file or the environment set to empty.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.PathToFigures == "" {
		cfg.PathToFigures = def.PathToFigures
	}
	if cfg.GroupDir == "" {
		cfg.GroupDir = def.GroupDir
	}
	if cfg.Markers.RunTitleTag == "" {
		cfg.Markers.RunTitleTag = def.Markers.RunTitleTag
	}
	if cfg.Markers.CaptionTag == "" {
		cfg.Markers.CaptionTag = def.Markers.CaptionTag
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}

func (c Config) Validate() error {
	if c.ReportsPerPage < 0 {
		return fmt.Errorf("%w: reports_per_page must not be negative, got %d", ErrInvalid, c.ReportsPerPage)
	}
	if !strings.Contains(c.PathToFigures, SubjectPlaceholder) {
		return fmt.Errorf("%w: path_to_figures must contain %s", ErrInvalid, SubjectPlaceholder)
	}
	if strings.ContainsAny(c.GroupDir, `/\`) || c.GroupDir == "." || c.GroupDir == ".." {
		return fmt.Errorf("%w: group_dir must be a single directory name, got %q", ErrInvalid, c.GroupDir)
	}
	if c.Markers.Figure == "" || c.Markers.RunTitle == "" || c.Markers.Caption == "" {
		return fmt.Errorf("%w: marker classes must not be empty", ErrInvalid)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// ParserMarkers converts the configured vocabulary for the report parser.
func (c Config) ParserMarkers() parser.Markers {
	return parser.Markers{
		Figure:      c.Markers.Figure,
		RunTitle:    c.Markers.RunTitle,
		RunTitleTag: c.Markers.RunTitleTag,
		Caption:     c.Markers.Caption,
		CaptionTag:  c.Markers.CaptionTag,
	}
}

// FigureDir resolves PathToFigures for one subject.
func (c Config) FigureDir(subject string) string {
	return strings.ReplaceAll(c.PathToFigures, SubjectPlaceholder, subject)
}
