package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/boxesandglue/cssinline"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags.
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".cssinline.yaml"
	}
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}
	// Flag defaults only fill keys that neither the file nor the environment set.
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}
	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// CSSINLINE_BASE_URL -> base-url
	if err := k.Load(env.Provider("CSSINLINE_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CSSINLINE_")),
			"_", "-",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}
	return nil
}

// buildOptions constructs the library options from koanf state.
func buildOptions(log *zap.Logger) cssinline.Options {
	return cssinline.Options{
		BaseURL:           getStringWithDefault("base-url", ""),
		BasePath:          getStringWithDefault("base-path", ""),
		KeepStyleTags:     getBoolWithDefault("keep-style-tags", false),
		RemoveClasses:     getBoolWithDefault("remove-classes", true),
		StripImportant:    getBoolWithDefault("strip-important", true),
		ExternalStyles:    getStrings("external-style"),
		Method:            cssinline.Method(getStringWithDefault("method", string(cssinline.MethodHTML))),
		DisableValidation: getBoolWithDefault("disable-validation", false),
		Logger:            log,
	}
}

func getStringWithDefault(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

func getBoolWithDefault(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}

// getStrings returns a list setting. Environment variables carry lists as
// comma separated strings.
func getStrings(key string) []string {
	raw := k.Strings(key)
	if len(raw) == 0 && k.String(key) != "" {
		raw = []string{k.String(key)}
	}
	var ret []string
	for _, s := range raw {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				ret = append(ret, part)
			}
		}
	}
	return ret
}
