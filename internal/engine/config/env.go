package config

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/irahardianto/threadpatch/internal/engine/highlight"
)

// applyEnvOverrides applies environment variable overrides to the config.
// The getenv parameter abstracts os.Getenv for testability.
func applyEnvOverrides(cfg *Config, getenv func(string) string, log *slog.Logger) {
	if v := getenv("THREADPATCH_THEME"); v != "" {
		theme, err := highlight.ParseTheme(v)
		if err != nil {
			log.Warn("invalid THREADPATCH_THEME value, ignoring", "value", v, "error", err)
		} else {
			cfg.Theme = theme
		}
	}

	if v := getenv("THREADPATCH_MAX_CHARS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			log.Warn("invalid THREADPATCH_MAX_CHARS value, ignoring", "value", v)
		} else {
			cfg.Limits.MaxChars = n
		}
	}

	if noColor := getenv("THREADPATCH_NO_COLOR"); noColor != "" {
		// Any truthy value disables color.
		noColor = strings.ToLower(noColor)
		if noColor == "1" || noColor == "true" || noColor == "yes" {
			off := false
			cfg.Output.Color = &off
		}
	}
}
