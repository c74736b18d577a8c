// Package config loads the hiverender CLI configuration from YAML and
// turns it into renderer options.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	renderer "github.com/openhive-network/denser-sub002"
	"github.com/openhive-network/denser-sub002/internal/fileutil"
	"github.com/openhive-network/denser-sub002/internal/yamlutil"
	"github.com/openhive-network/denser-sub002/phishing"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidTemplate = errors.New("URL template is missing its placeholder")
	ErrUnknownPlugin   = errors.New("unknown plugin")
)

// Field length limits.
const (
	MaxURLLength       = 2048  // Browser limit
	MaxClassLength     = 200   // Space separated class list
	MaxLocaleLength    = 35    // BCP 47 tags in practice
	MaxDomainLength    = 253   // RFC 1035
	MaxPhishingDomains = 10000 // Custom entries on top of the built-in list
)

// URL template placeholders.
const (
	TagPlaceholder     = "{tag}"
	AccountPlaceholder = "{account}"
	URLPlaceholder     = "{url}"
)

// Config mirrors renderer.Options with callbacks expressed as URL
// templates.
type Config struct {
	BaseURL                  string `yaml:"baseUrl"`
	Breaks                   bool   `yaml:"breaks"`
	SkipSanitization         bool   `yaml:"skipSanitization"`
	AllowInsecureScriptTags  bool   `yaml:"allowInsecureScriptTags"`
	AddNofollowToLinks       bool   `yaml:"addNofollowToLinks"`
	AddTargetBlankToLinks    bool   `yaml:"addTargetBlankToLinks"`
	CSSClassForInternalLinks string `yaml:"cssClassForInternalLinks"`
	CSSClassForExternalLinks string `yaml:"cssClassForExternalLinks"`
	DoNotShowImages          bool   `yaml:"doNotShowImages"`
	IPFSPrefix               string `yaml:"ipfsPrefix"`
	AssetsWidth              int    `yaml:"assetsWidth"`
	AssetsHeight             int    `yaml:"assetsHeight"`
	Locale                   string `yaml:"locale"`
	MaxInputBytes            int    `yaml:"maxInputBytes"`

	HashtagURL string `yaml:"hashtagUrl"` // e.g. "/trending/{tag}" (empty = default)
	UsertagURL string `yaml:"usertagUrl"` // e.g. "/@{account}" (empty = default)
	ImageProxy string `yaml:"imageProxy"` // e.g. "https://images.hive.blog/0x0/{url}" (empty = no proxy)

	PhishingDomains []string `yaml:"phishingDomains"` // Added to the built-in list
	Plugins         []string `yaml:"plugins"`         // Plugin names, in order
}

// knownPlugins maps plugin names to constructors.
var knownPlugins = map[string]func() renderer.Plugin{
	renderer.InstagramPluginName: func() renderer.Plugin { return renderer.NewInstagramPlugin() },
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:      "https://hive.blog",
		AssetsWidth:  renderer.DefaultAssetsWidth,
		AssetsHeight: renderer.DefaultAssetsHeight,
		Locale:       "en",
	}
}

// Validate checks lengths, templates and plugin names. Semantic checks
// of the rendering options are left to renderer.Options.Validate.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"baseUrl", c.BaseURL, MaxURLLength},
		{"cssClassForInternalLinks", c.CSSClassForInternalLinks, MaxClassLength},
		{"cssClassForExternalLinks", c.CSSClassForExternalLinks, MaxClassLength},
		{"ipfsPrefix", c.IPFSPrefix, MaxURLLength},
		{"locale", c.Locale, MaxLocaleLength},
		{"hashtagUrl", c.HashtagURL, MaxURLLength},
		{"usertagUrl", c.UsertagURL, MaxURLLength},
		{"imageProxy", c.ImageProxy, MaxURLLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if err := validateTemplate("hashtagUrl", c.HashtagURL, TagPlaceholder); err != nil {
		return err
	}
	if err := validateTemplate("usertagUrl", c.UsertagURL, AccountPlaceholder); err != nil {
		return err
	}
	if err := validateTemplate("imageProxy", c.ImageProxy, URLPlaceholder); err != nil {
		return err
	}

	if len(c.PhishingDomains) > MaxPhishingDomains {
		return fmt.Errorf("phishingDomains: %d entries, max %d", len(c.PhishingDomains), MaxPhishingDomains)
	}
	for i, d := range c.PhishingDomains {
		if err := validateFieldLength(fmt.Sprintf("phishingDomains[%d]", i), d, MaxDomainLength); err != nil {
			return err
		}
	}

	for i, name := range c.Plugins {
		if _, ok := knownPlugins[strings.ToLower(name)]; !ok {
			return fmt.Errorf("%w: plugins[%d] %q (known: %s)", ErrUnknownPlugin, i, name, strings.Join(PluginNames(), ", "))
		}
	}
	return nil
}

// PluginNames lists the plugin names a config may reference, sorted.
func PluginNames() []string {
	names := make([]string, 0, len(knownPlugins))
	for name := range knownPlugins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Options converts c into renderer options. Empty templates keep the
// renderer defaults.
func (c *Config) Options() renderer.Options {
	opts := renderer.DefaultOptions(c.BaseURL)
	opts.Breaks = c.Breaks
	opts.SkipSanitization = c.SkipSanitization
	opts.AllowInsecureScriptTags = c.AllowInsecureScriptTags
	opts.AddNofollowToLinks = c.AddNofollowToLinks
	opts.AddTargetBlankToLinks = c.AddTargetBlankToLinks
	opts.CSSClassForInternalLinks = c.CSSClassForInternalLinks
	opts.CSSClassForExternalLinks = c.CSSClassForExternalLinks
	opts.DoNotShowImages = c.DoNotShowImages
	opts.IPFSPrefix = c.IPFSPrefix
	opts.AssetsWidth = c.AssetsWidth
	opts.AssetsHeight = c.AssetsHeight
	opts.MaxInputBytes = c.MaxInputBytes
	if c.Locale != "" {
		opts.Locale = c.Locale
	}

	if c.HashtagURL != "" {
		opts.HashtagURLFn = expander(c.HashtagURL, TagPlaceholder)
	}
	if c.UsertagURL != "" {
		opts.UsertagURLFn = expander(c.UsertagURL, AccountPlaceholder)
	}
	if c.ImageProxy != "" {
		opts.ImageProxyFn = expander(c.ImageProxy, URLPlaceholder)
	}

	for _, name := range c.Plugins {
		if newPlugin, ok := knownPlugins[strings.ToLower(name)]; ok {
			opts.Plugins = append(opts.Plugins, newPlugin())
		}
	}
	return opts
}

// Phishing returns a domain set holding the built-in list plus
// PhishingDomains, or nil when no custom domains are configured.
func (c *Config) Phishing() *phishing.DomainSet {
	if len(c.PhishingDomains) == 0 {
		return nil
	}
	set := phishing.New()
	set.AddDomains(c.PhishingDomains)
	return set
}

// YAML returns c as YAML.
func (c *Config) YAML() ([]byte, error) {
	return yamlutil.Marshal(c)
}

func expander(template, placeholder string) func(string) string {
	return func(v string) string {
		return strings.ReplaceAll(template, placeholder, v)
	}
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateTemplate(fieldName, value, placeholder string) error {
	if value != "" && !strings.Contains(value, placeholder) {
		return fmt.Errorf("%w: %s must contain %s", ErrInvalidTemplate, fieldName, placeholder)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/hiverender/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "hiverender", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
