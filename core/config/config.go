// File: config.go
// Title: Application Settings
// Description: Typed settings for the unilang CLI and REPL, decoded from TOML
//              or YAML files, completed with defaults and overridden by
//              UNILANG_* environment variables.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-04
// Modified: 2025-11-12
//
// Change History:
// - 2025-11-04 v0.1.0: Initial implementation
// - 2025-11-12 v0.1.0: Duration keeps its value on a failed decode
// - 2025-11-12 v0.1.0: Manifest modules, global prefix and conflict detection

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	ulerror "github.com/msto63/unilang/core/error"
	ulstringx "github.com/msto63/unilang/utils/stringx"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of all environment overrides
const EnvPrefix = "UNILANG_"

// DefaultCommandsPath is the manifest read when nothing else is configured
const DefaultCommandsPath = "unilang.commands.yaml"

// Format identifies a settings file format
type Format int

const (
	FormatAuto Format = iota
	FormatTOML
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

// Settings holds the complete application configuration
type Settings struct {
	Log      LogSettings      `toml:"log" yaml:"log"`
	Parser   ParserSettings   `toml:"parser" yaml:"parser"`
	Registry RegistrySettings `toml:"registry" yaml:"registry"`
	Commands CommandsSettings `toml:"commands" yaml:"commands"`
	Catalog  CatalogSettings  `toml:"catalog" yaml:"catalog"`
	REPL     REPLSettings     `toml:"repl" yaml:"repl"`

	path string
}

// LogSettings configures the default logger
type LogSettings struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	Audit  bool   `toml:"audit" yaml:"audit"`
}

// ParserSettings mirrors the parser policy options
type ParserSettings struct {
	MaxInputLength                 int  `toml:"max_input_length" yaml:"max_input_length"`
	KeepQuotes                     bool `toml:"keep_quotes" yaml:"keep_quotes"`
	StrictQuotes                   bool `toml:"strict_quotes" yaml:"strict_quotes"`
	ErrorOnPositionalAfterNamed    bool `toml:"error_on_positional_after_named" yaml:"error_on_positional_after_named"`
	ErrorOnDuplicateNamedArguments bool `toml:"error_on_duplicate_named_arguments" yaml:"error_on_duplicate_named_arguments"`
}

// RegistrySettings configures registry construction
type RegistrySettings struct {
	Mode      string `toml:"mode" yaml:"mode"`
	CacheSize int    `toml:"cache_size" yaml:"cache_size"`
}

// CommandsSettings points at declarative command manifests. Prefix is
// applied to every manifest command, outside any module prefix.
type CommandsSettings struct {
	Path            string           `toml:"path" yaml:"path"`
	Extra           []string         `toml:"extra" yaml:"extra"`
	Modules         []ModuleSettings `toml:"modules" yaml:"modules"`
	Prefix          string           `toml:"prefix" yaml:"prefix"`
	DetectConflicts bool             `toml:"detect_conflicts" yaml:"detect_conflicts"`
	WatchDebounce   Duration         `toml:"watch_debounce" yaml:"watch_debounce"`
}

// ModuleSettings names a manifest whose commands live below Prefix
type ModuleSettings struct {
	Name     string `toml:"name" yaml:"name"`
	Path     string `toml:"path" yaml:"path"`
	Prefix   string `toml:"prefix" yaml:"prefix"`
	Disabled bool   `toml:"disabled" yaml:"disabled"`
}

// EnabledModules returns the modules not marked disabled
func (c CommandsSettings) EnabledModules() []ModuleSettings {
	var out []ModuleSettings
	for _, m := range c.Modules {
		if !m.Disabled {
			out = append(out, m)
		}
	}
	return out
}

// CatalogSettings configures the SQLite definition catalog
type CatalogSettings struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"`
}

// REPLSettings configures the interactive shell
type REPLSettings struct {
	Prompt         string `toml:"prompt" yaml:"prompt"`
	MaxSuggestions int    `toml:"max_suggestions" yaml:"max_suggestions"`
}

// Duration wraps time.Duration for text based decoding
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns settings with every default applied
func Default() *Settings {
	s := &Settings{}
	s.applyDefaults()
	return s
}

// Load reads settings from a TOML or YAML file chosen by extension
func Load(path string) (*Settings, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		code := ulerror.CodeConfigError
		if os.IsNotExist(err) {
			code = ulerror.CodeMissingConfig
		}
		return nil, ulerror.Wrap(err, "failed to read config file").
			WithCode(code).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	s, err := LoadFromString(string(content), detectFormat(path))
	if err != nil {
		return nil, ulerror.Wrap(err, "failed to load config file").
			WithOperation("config.Load").
			WithDetail("path", path)
	}
	s.path = path
	return s, nil
}

// LoadFromString decodes settings from content in the given format
func LoadFromString(content string, format Format) (*Settings, error) {
	if format == FormatAuto {
		format = sniffFormat(content)
	}

	var s Settings
	var err error
	switch format {
	case FormatTOML:
		_, err = toml.Decode(content, &s)
	case FormatYAML:
		err = yaml.Unmarshal([]byte(content), &s)
	}
	if err != nil {
		return nil, ulerror.Wrap(err, "failed to parse "+format.String()+" settings").
			WithCode(ulerror.CodeInvalidConfig).
			WithOperation("config.LoadFromString")
	}

	s.applyDefaults()
	s.applyEnv()
	s.expandEnvVars()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFromEnv loads the file named by UNILANG_CONFIG, else the first of the
// default locations that exists, else the defaults
func LoadFromEnv() (*Settings, error) {
	if path := os.Getenv(EnvPrefix + "CONFIG"); path != "" {
		return Load(path)
	}

	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	s := Default()
	s.applyEnv()
	s.expandEnvVars()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultPaths lists the locations LoadFromEnv searches
func DefaultPaths() []string {
	paths := []string{"./unilang.toml", "./unilang.yaml", "./unilang.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "unilang", "config.toml"))
	}
	return paths
}

// FilePath returns the file the settings were loaded from, if any
func (s *Settings) FilePath() string {
	return s.path
}

// Validate checks value ranges and enumerations
func (s *Settings) Validate() error {
	switch s.Registry.Mode {
	case "static", "dynamic", "hybrid", "auto":
	default:
		return ulerror.New("registry mode must be one of static, dynamic, hybrid, auto").
			WithCode(ulerror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("mode", s.Registry.Mode)
	}

	switch strings.ToLower(s.Log.Format) {
	case "json", "text", "console", "logfmt":
	default:
		return ulerror.New("log format must be one of json, text, console, logfmt").
			WithCode(ulerror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("format", s.Log.Format)
	}

	if s.Parser.MaxInputLength < 0 {
		return ulerror.New("parser.max_input_length must not be negative").
			WithCode(ulerror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("max_input_length", s.Parser.MaxInputLength)
	}

	for i, m := range s.Commands.Modules {
		if ulstringx.IsBlank(m.Path) {
			return ulerror.Newf("commands.modules[%d].path is required", i).
				WithCode(ulerror.CodeMissingConfig).
				WithOperation("config.Validate").
				WithDetail("module", m.Name)
		}
	}

	if s.Catalog.Enabled && ulstringx.IsBlank(s.Catalog.Path) {
		return ulerror.New("catalog.path is required when the catalog is enabled").
			WithCode(ulerror.CodeMissingConfig).
			WithOperation("config.Validate")
	}

	return nil
}

func (s *Settings) applyDefaults() {
	if s.Log.Level == "" {
		s.Log.Level = "warn"
	}
	if s.Log.Format == "" {
		s.Log.Format = "text"
	}
	if s.Parser.MaxInputLength == 0 {
		s.Parser.MaxInputLength = 64 * 1024
	}
	if s.Registry.Mode == "" {
		s.Registry.Mode = "hybrid"
	}
	if s.Registry.CacheSize == 0 {
		s.Registry.CacheSize = 128
	}
	if s.Commands.Path == "" {
		s.Commands.Path = DefaultCommandsPath
	}
	if s.Commands.WatchDebounce.Duration == 0 {
		s.Commands.WatchDebounce.Duration = 250 * time.Millisecond
	}
	if s.Catalog.Path == "" {
		s.Catalog.Path = "./data/unilang.db"
	}
	if s.REPL.Prompt == "" {
		s.REPL.Prompt = "unilang> "
	}
	if s.REPL.MaxSuggestions == 0 {
		s.REPL.MaxSuggestions = 5
	}
}

// applyEnv applies UNILANG_* overrides
func (s *Settings) applyEnv() {
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		s.Log.Level = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_FORMAT"); v != "" {
		s.Log.Format = v
	}
	if v := os.Getenv(EnvPrefix + "STATIC_COMMANDS_PATH"); v != "" {
		s.Commands.Path = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "GLOBAL_PREFIX"); ok {
		s.Commands.Prefix = v
	}
	if v := os.Getenv(EnvPrefix + "DETECT_CONFLICTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Commands.DetectConflicts = b
		}
	}
	for i, m := range s.Commands.Modules {
		if m.Name == "" {
			continue
		}
		if v, ok := os.LookupEnv(EnvPrefix + "MODULE_" + strings.ToUpper(m.Name) + "_PREFIX"); ok {
			s.Commands.Modules[i].Prefix = v
		}
	}
	if v := os.Getenv(EnvPrefix + "REGISTRY_MODE"); v != "" {
		s.Registry.Mode = strings.ToLower(v)
	}
	if v := os.Getenv(EnvPrefix + "CATALOG_PATH"); v != "" {
		s.Catalog.Path = v
		s.Catalog.Enabled = true
	}
	if v := os.Getenv(EnvPrefix + "STRICT_QUOTES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Parser.StrictQuotes = b
		}
	}
}

func (s *Settings) expandEnvVars() {
	s.Commands.Path = os.ExpandEnv(s.Commands.Path)
	for i, p := range s.Commands.Extra {
		s.Commands.Extra[i] = os.ExpandEnv(p)
	}
	for i, m := range s.Commands.Modules {
		s.Commands.Modules[i].Path = os.ExpandEnv(m.Path)
	}
	s.Catalog.Path = os.ExpandEnv(s.Catalog.Path)
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// sniffFormat guesses the format of content without a file extension.
// TOML tables start with '[' on their own line; anything else is YAML.
func sniffFormat(content string) Format {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") || strings.Contains(line, " = ") {
			return FormatTOML
		}
		return FormatYAML
	}
	return FormatYAML
}
