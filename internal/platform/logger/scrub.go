package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

const redacted = "[REDACTED]"

type action int

const (
	keep action = iota
	redact
	digest
)

var redactMarkers = []string{
	"token", "authorization", "password", "secret", "cookie",
	"api_key", "apikey", "email", "dsn", "refresh",
}

// Owner ids are JWT subjects and may be emails or phone numbers.
var digestMarkers = []string{"user_id", "owner_id", "ownerid", "subject"}

func classify(key string) action {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return keep
	}
	for _, m := range redactMarkers {
		if strings.Contains(key, m) {
			return redact
		}
	}
	for _, m := range digestMarkers {
		if strings.Contains(key, m) {
			return digest
		}
	}
	return keep
}

// scrubber rewrites sensitive values in a key/value list. The zero value passes
// everything through.
type scrubber struct {
	enabled bool
	salt    string
}

func scrubberFromEnv() *scrubber {
	s := &scrubber{enabled: true, salt: strings.TrimSpace(os.Getenv("LOG_HASH_SALT"))}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("LOG_REDACTION_ENABLED"))) {
	case "0", "false", "no", "off":
		s.enabled = false
	}
	return s
}

func (s *scrubber) kvs(kv []interface{}) []interface{} {
	if s == nil || !s.enabled || len(kv) == 0 {
		return kv
	}
	out := make([]interface{}, len(kv))
	copy(out, kv)
	for i := 0; i+1 < len(out); i += 2 {
		key := stringify(out[i])
		out[i] = key
		out[i+1] = s.value(key, out[i+1])
	}
	return out
}

func (s *scrubber) value(key string, val interface{}) interface{} {
	switch classify(key) {
	case redact:
		return redacted
	case digest:
		return s.hash(val)
	}
	switch v := val.(type) {
	case string:
		if looksLikeJWT(v) {
			return redacted
		}
	case map[string]interface{}:
		if v == nil {
			return v
		}
		m := make(map[string]interface{}, len(v))
		for k, inner := range v {
			m[k] = s.value(k, inner)
		}
		return m
	case []interface{}:
		if v == nil {
			return v
		}
		items := make([]interface{}, len(v))
		for i, inner := range v {
			items[i] = s.value("", inner)
		}
		return items
	}
	return val
}

// hash yields a short salted digest so one owner's log lines still correlate.
func (s *scrubber) hash(val interface{}) string {
	raw := stringify(val)
	if raw == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(s.salt + raw))
	return "hash:" + hex.EncodeToString(sum[:])[:12]
}

func looksLikeJWT(s string) bool {
	parts := strings.Split(s, ".")
	return len(parts) == 3 && len(parts[0]) > 10 && len(parts[1]) > 10
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case fmt.Stringer:
		return t.String()
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
