package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"vehicle-status-backend/internal/adapter"
)

var (
	listSepRe  = regexp.MustCompile(`[\s,;]+`)
	paramKeyRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// Components parses a comma separated component list such as
// "doors,windows". An empty string selects every component. Duplicates are
// dropped and names are matched case-insensitively.
func Components(raw string) ([]adapter.Component, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}

	var out []adapter.Component
	seen := make(map[adapter.Component]bool)
	for _, part := range listSepRe.Split(s, -1) {
		if part == "" {
			continue
		}
		c := adapter.Component(strings.ToLower(part))
		if !isComponent(c) {
			return nil, fmt.Errorf("unknown component %q, expected one of %s", part, joinComponents())
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out, nil
}

func isComponent(c adapter.Component) bool {
	for _, known := range adapter.AllComponents {
		if c == known {
			return true
		}
	}
	return false
}

func joinComponents() string {
	names := make([]string, len(adapter.AllComponents))
	for i, c := range adapter.AllComponents {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// DetailLevel parses a detail level; empty means basic.
func DetailLevel(raw string) (adapter.DetailLevel, error) {
	switch level := adapter.DetailLevel(strings.ToLower(strings.TrimSpace(raw))); level {
	case "":
		return adapter.DetailBasic, nil
	case adapter.DetailBasic, adapter.DetailFull, adapter.DetailAll:
		return level, nil
	}
	return "", fmt.Errorf("unknown detail level %q, expected basic, full or all", raw)
}

// Params turns "key=value" pairs into command parameters. Numeric values
// become float64, true/false become bool, everything else stays a string.
func Params(pairs []string) (adapter.Params, error) {
	params := adapter.Params{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || !paramKeyRe.MatchString(key) {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		params[key] = scalar(strings.TrimSpace(value))
	}
	return params, nil
}

func scalar(s string) any {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// Limit parses an optional positive integer bounded by max.
func Limit(raw string, def, max int) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	if n > max {
		n = max
	}
	return n, nil
}
