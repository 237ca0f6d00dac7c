package adapter

import (
	"fmt"
	"math"
	"strconv"
)

// Params carries optional named command arguments, typically decoded from JSON.
type Params map[string]any

const (
	ParamTargetTemperature = "target_temperature"
	ParamDurationSeconds   = "duration_seconds"
)

// MaxDurationSeconds bounds duration_seconds.
const MaxDurationSeconds = 3600

type missingParamError string

func (e missingParamError) Error() string {
	return fmt.Sprintf("missing parameter %q", string(e))
}

type invalidParamError struct {
	key    string
	reason string
}

func (e *invalidParamError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.key, e.reason)
}

// getNumber returns a numeric parameter. Strings holding numbers are accepted
// so CLI arguments can be passed through unchanged.
func (p Params) getNumber(key string, required bool) (float64, bool, error) {
	value, ok := p[key]
	if !ok || value == nil {
		if required {
			return 0, false, missingParamError(key)
		}
		return 0, false, nil
	}

	var f float64
	switch n := value.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false, &invalidParamError{key: key, reason: "expected a number"}
		}
		f = parsed
	default:
		return 0, false, &invalidParamError{key: key, reason: "expected a number"}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, &invalidParamError{key: key, reason: "expected a finite number"}
	}
	return f, true, nil
}

// getPositiveInt returns a whole numeric parameter in [1, max].
func (p Params) getPositiveInt(key string, required bool, max int) (int, bool, error) {
	f, ok, err := p.getNumber(key, required)
	if err != nil || !ok {
		return 0, ok, err
	}
	if f != math.Trunc(f) || f <= 0 {
		return 0, false, &invalidParamError{key: key, reason: "expected a positive whole number"}
	}
	if f > float64(max) {
		return 0, false, &invalidParamError{key: key, reason: fmt.Sprintf("must not exceed %d", max)}
	}
	return int(f), true, nil
}
