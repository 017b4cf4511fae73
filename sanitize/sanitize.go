// Package sanitize normalizes untrusted tool arguments and scrubs tool output
// of anything that looks like a local file path or a credential.
//
// All functions are pure and never fail: bad input degrades to a safe default.
package sanitize

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/zhubert/jds-knowledge/refdata"
)

// MaxTextLength is the default length bound applied by Text.
const MaxTextLength = 200

// Redacted replaces every path-like or secret-like match in scrubbed output.
const Redacted = "[REDACTED]"

var disallowedChars = regexp.MustCompile(`[^a-zA-Z0-9_\-\s/.]`)

// Applied in order; paths first, then secrets.
var leakPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/Users/[^\s"]+`),
	regexp.MustCompile(`/home/[^\s"]+`),
	regexp.MustCompile(`C:\\[^\s"]+`),
	regexp.MustCompile(`\.claude/[^\s"]+`),
	regexp.MustCompile(`memory/[^\s"]+\.md`),

	regexp.MustCompile(`_password=[^\s"]+`),
	regexp.MustCompile(`(?i)api[_-]?key[=:][^\s"]+`),
	regexp.MustCompile(`(?i)token[=:][^\s"]+`),
	regexp.MustCompile(`(?i)secret[=:][^\s"]+`),
}

// Text trims, bounds and filters an argument value. Non-string values yield "".
// Characters outside letters, digits, '_', '-', '/', '.' and whitespace are
// dropped rather than rejected. A maxLength <= 0 means MaxTextLength.
func Text(value any, maxLength int) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	if maxLength <= 0 {
		maxLength = MaxTextLength
	}

	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > maxLength {
		s = string(r[:maxLength])
	}
	s = disallowedChars.ReplaceAllString(s, "")
	// Stripping can expose interior whitespace at the edges.
	return strings.TrimSpace(s)
}

// BoundedInt parses value as an integer and clamps it into [min, max].
// Anything that is not an integer (or a string holding one) yields def.
// Floats are truncated toward zero; NaN and infinities yield def.
func BoundedInt(value any, def, min, max int) int {
	n, ok := toInt(value)
	if !ok {
		return def
	}
	if n < int64(min) {
		return min
	}
	if n > int64(max) {
		return max
	}
	return int(n)
}

func toInt(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case float64:
		return floatToInt(v)
	case float32:
		return floatToInt(float64(v))
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	t := math.Trunc(f)
	if t >= math.MaxInt64 {
		return math.MaxInt64, true
	}
	if t <= math.MinInt64 {
		return math.MinInt64, true
	}
	return int64(t), true
}

// String applies every leak pattern to s.
func String(s string) string {
	for _, re := range leakPatterns {
		s = re.ReplaceAllString(s, Redacted)
	}
	return s
}

// Output returns a copy of value with every string scrubbed. Mapping keys and
// sequence order are left untouched. Unknown types are returned as-is.
func Output(value any) any {
	switch v := value.(type) {
	case string:
		return String(v)
	case []string:
		out := make([]string, len(v))
		for i, s := range v {
			out[i] = String(s)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Output(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = Output(item)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(v))
		for i, m := range v {
			out[i] = Output(m).(map[string]any)
		}
		return out
	case *refdata.Map:
		if v == nil {
			return v
		}
		out := refdata.NewMap()
		v.Range(func(k string, item any) bool {
			out.Set(k, Output(item))
			return true
		})
		return out
	}
	return value
}
