package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"uriopen/uri"
)

type Config struct {
	TabSize int    `json:"tab_size" toml:"tab_size" yaml:"tab_size"`
	Theme   string `json:"theme" toml:"theme" yaml:"theme"`

	// AcceptedSchemes are passed through without filesystem checks.
	AcceptedSchemes []string `json:"accepted_schemes" toml:"accepted_schemes" yaml:"accepted_schemes"`
	// IncludeDir is the sibling of each PATH entry searched for headers.
	IncludeDir string `json:"include_dir" toml:"include_dir" yaml:"include_dir"`
	// LabelWidth is how many runes of a URI a menu label shows.
	LabelWidth int `json:"label_width" toml:"label_width" yaml:"label_width"`
	// StatusTimeoutMs is how long the "Loading file" message stays up.
	StatusTimeoutMs int `json:"status_timeout_ms" toml:"status_timeout_ms" yaml:"status_timeout_ms"`
	// Opener is the command used to browse http(s) URIs and to open
	// locations that are not local files; the URI is appended as the last
	// argument.
	Opener []string `json:"opener" toml:"opener" yaml:"opener"`
}

// LanguageTabSize returns the appropriate tab size for a given language.
// Returns the per-language default or the user's configured tab size.
func (c *Config) LanguageTabSize(language string) int {
	switch language {
	case "JavaScript", "TypeScript", "JSON", "HTML", "CSS", "YAML", "TOML":
		return 2
	case "Makefile", "Go":
		return 8
	default:
		return c.TabSize
	}
}

// SchemeSet builds the accepted scheme set, falling back to the defaults
// when none are configured.
func (c *Config) SchemeSet() uri.SchemeSet {
	if len(c.AcceptedSchemes) == 0 {
		return uri.DefaultSchemeSet()
	}
	return uri.NewSchemeSet(c.AcceptedSchemes...)
}

func (c *Config) StatusTimeout() time.Duration {
	if c.StatusTimeoutMs <= 0 {
		return 4 * time.Second
	}
	return time.Duration(c.StatusTimeoutMs) * time.Millisecond
}

type ColorScheme struct {
	Name             string
	Background       tcell.Color
	Foreground       tcell.Color
	Selection        tcell.Color
	LineNumber       tcell.Color
	LineNumberActive tcell.Color
	StatusBarBg      tcell.Color
	StatusBarFg      tcell.Color
	StatusBarModeBg  tcell.Color
	MenuBg           tcell.Color
	MenuFg           tcell.Color
	MenuSeparator    tcell.Color
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:             "Dark",
		Background:       tcell.ColorBlack,
		Foreground:       tcell.ColorWhite,
		Selection:        tcell.ColorDarkBlue,
		LineNumber:       tcell.ColorGray,
		LineNumberActive: tcell.ColorWhite,
		StatusBarBg:      tcell.ColorDarkBlue,
		StatusBarFg:      tcell.ColorWhite,
		StatusBarModeBg:  tcell.ColorBlue,
		MenuBg:           tcell.ColorBlack,
		MenuFg:           tcell.ColorWhite,
		MenuSeparator:    tcell.ColorGray,
	},
	"light": {
		Name:             "Light",
		Background:       tcell.ColorWhite,
		Foreground:       tcell.ColorBlack,
		Selection:        tcell.ColorLightBlue,
		LineNumber:       tcell.ColorGray,
		LineNumberActive: tcell.ColorBlack,
		StatusBarBg:      tcell.ColorLightBlue,
		StatusBarFg:      tcell.ColorBlack,
		StatusBarModeBg:  tcell.ColorBlue,
		MenuBg:           tcell.ColorLightGray,
		MenuFg:           tcell.ColorBlack,
		MenuSeparator:    tcell.ColorGray,
	},
	"monokai": {
		Name:             "Monokai",
		Background:       tcell.NewRGBColor(39, 40, 34),
		Foreground:       tcell.NewRGBColor(248, 248, 242),
		Selection:        tcell.NewRGBColor(73, 72, 62),
		LineNumber:       tcell.NewRGBColor(144, 144, 128),
		LineNumberActive: tcell.NewRGBColor(248, 248, 242),
		StatusBarBg:      tcell.NewRGBColor(73, 72, 62),
		StatusBarFg:      tcell.NewRGBColor(248, 248, 242),
		StatusBarModeBg:  tcell.NewRGBColor(102, 217, 239),
		MenuBg:           tcell.NewRGBColor(39, 40, 34),
		MenuFg:           tcell.NewRGBColor(248, 248, 242),
		MenuSeparator:    tcell.NewRGBColor(144, 144, 128),
	},
	"nord": {
		Name:             "Nord",
		Background:       tcell.NewRGBColor(46, 52, 64),
		Foreground:       tcell.NewRGBColor(236, 239, 244),
		Selection:        tcell.NewRGBColor(67, 76, 94),
		LineNumber:       tcell.NewRGBColor(76, 86, 106),
		LineNumberActive: tcell.NewRGBColor(236, 239, 244),
		StatusBarBg:      tcell.NewRGBColor(67, 76, 94),
		StatusBarFg:      tcell.NewRGBColor(236, 239, 244),
		StatusBarModeBg:  tcell.NewRGBColor(136, 192, 208),
		MenuBg:           tcell.NewRGBColor(46, 52, 64),
		MenuFg:           tcell.NewRGBColor(236, 239, 244),
		MenuSeparator:    tcell.NewRGBColor(76, 86, 106),
	},
}

func Default() *Config {
	return &Config{
		TabSize:         4,
		Theme:           "monokai",
		AcceptedSchemes: append([]string(nil), uri.DefaultSchemes...),
		IncludeDir:      uri.DefaultIncludeDir,
		LabelWidth:      uri.DefaultLabelWidth,
		StatusTimeoutMs: 4000,
		Opener:          []string{"xdg-open"},
	}
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes["monokai"]
	}
	return theme
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "uriopen")
}

// ConfigPath returns the first of settings.toml, settings.yaml and
// settings.yml that exists, settings.json otherwise.
func ConfigPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	for _, name := range []string{"settings.toml", "settings.yaml", "settings.yml"} {
		if p := filepath.Join(dir, name); fileExists(p) {
			return p
		}
	}
	return filepath.Join(dir, "settings.json")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func Load() (*Config, error) {
	path := ConfigPath()
	if path == "" {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads path on top of the defaults. The format follows the
// extension; a missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	switch format(path) {
	case formatTOML:
		err = toml.Unmarshal(data, cfg)
	case formatYAML:
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch format(path) {
	case formatTOML:
		data, err = toml.Marshal(c)
	case formatYAML:
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

type fileFormat int

const (
	formatJSON fileFormat = iota
	formatTOML
	formatYAML
)

// format picks the settings encoding from the file extension.
func format(path string) fileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return formatTOML
	case ".yaml", ".yml":
		return formatYAML
	}
	return formatJSON
}
