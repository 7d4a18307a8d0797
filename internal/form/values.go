package form

import (
	"net/url"
	"strings"
)

func text(values url.Values, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(values.Get(k)); v != "" {
			return v
		}
	}
	return ""
}

// checked reads an HTML checkbox. Browsers send "y" or "on" for a ticked
// box and omit it otherwise.
func checked(values url.Values, key string) bool {
	switch strings.ToLower(strings.TrimSpace(values.Get(key))) {
	case "y", "yes", "on", "true", "1":
		return true
	}
	return false
}

// list reads a repeated field, dropping blanks and keeping submission order.
func list(values url.Values, key string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, v := range values[key] {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
