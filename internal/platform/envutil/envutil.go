package envutil

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/cemse-backend/internal/platform/logger"
)

// String returns the trimmed value of name, or def when unset or blank.
// Values are logged at debug; the logger redacts secret-looking names.
func String(name, def string, log *logger.Logger) string {
	v, ok := lookup(name)
	if !ok {
		debug(log, name, "Environment variable not found, using default", def)
		return def
	}
	debug(log, name, "Environment variable found, using environment", v)
	return v
}

func Int(name string, def int, log *logger.Logger) int {
	v, ok := lookup(name)
	if !ok {
		debug(log, name, "Environment variable not found, using default", def)
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		warn(log, name, v, def, err)
		return def
	}
	debug(log, name, "Environment variable found, using environment", i)
	return i
}

func Float(name string, def float64, log *logger.Logger) float64 {
	v, ok := lookup(name)
	if !ok {
		debug(log, name, "Environment variable not found, using default", def)
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		warn(log, name, v, def, err)
		return def
	}
	debug(log, name, "Environment variable found, using environment", f)
	return f
}

func Bool(name string, def bool, log *logger.Logger) bool {
	v, ok := lookup(name)
	if !ok {
		debug(log, name, "Environment variable not found, using default", def)
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	warn(log, name, v, def, strconv.ErrSyntax)
	return def
}

// Duration accepts Go duration syntax ("15s") or a bare number of seconds.
func Duration(name string, def time.Duration, log *logger.Logger) time.Duration {
	v, ok := lookup(name)
	if !ok {
		debug(log, name, "Environment variable not found, using default", def)
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	warn(log, name, v, def, strconv.ErrSyntax)
	return def
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func debug(log *logger.Logger, name, msg string, val interface{}) {
	if log == nil {
		return
	}
	log.Debug(msg, "env_var", name, strings.ToLower(name), val)
}

func warn(log *logger.Logger, name, raw string, def interface{}, err error) {
	if log == nil {
		return
	}
	log.Warn("Environment variable could not be parsed, using default", "env_var", name, strings.ToLower(name), raw, "default", def, "error", err)
}
