package render

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/model"
)

// Named display formats accepted by the datetime filter.
const (
	FormatFull   = "full"
	FormatMedium = "medium"
)

var dateLayouts = map[string]string{
	FormatFull:   "Monday January, 2, 2006 at 3:04PM",
	FormatMedium: "Mon 01, 02, 2006 3:04PM",
}

// FormatDateTime renders a timestamp with a named format ("full" or
// "medium", the default). Strings are parsed as show start times first.
// Values that cannot be read are returned unchanged.
func FormatDateTime(value any, format ...string) string {
	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return ""
		}
		t = *v
	case string:
		parsed, ok := parseTime(v)
		if !ok {
			return v
		}
		t = parsed
	default:
		return ""
	}

	layout := dateLayouts[FormatMedium]
	if len(format) > 0 {
		if l, ok := dateLayouts[format[0]]; ok {
			layout = l
		}
	}
	return t.UTC().Format(layout)
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range []string{model.ShowTimeLayout, time.RFC3339Nano, form.InputTimeLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// dict builds a map from alternating keys and values so partials can take
// several arguments.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"datetime": FormatDateTime,
		"join":     func(values []string) string { return strings.Join(values, ", ") },
		"deref":    deref,
		"states":   func() []string { return form.States },
		"genres":   func() []string { return form.Genres },
		"year":     func() int { return time.Now().Year() },
		"dict":     dict,
	}
}
