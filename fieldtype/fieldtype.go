// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fieldtype

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/sdis-tools/firecheck/models"
)

var ErrBadValue = errors.New("value outside the item's domain")

// Definition is the per-type strategy: how to default a response, how to
// coerce client JSON into the value domain, when a value counts as empty,
// and when it raises an alert. A nil Evaluate means the type never triggers.
type Definition struct {
	Default  func(item models.Item, operator models.Inspector) any
	Coerce   func(v any) (any, error)
	Empty    func(v any) bool
	Evaluate func(item models.Item, v any) (trigger, raw string, fired bool)
}

// DefaultLegacyTriggers is the built-in trigger set for legacy binary items
// whose alert config does not name triggering values.
var DefaultLegacyTriggers = []string{"non_conforme", "non", "absent", "defectueux"}

var registry = map[models.FieldType]Definition{
	models.TypeRadio: {
		Default:  firstOptionDefault,
		Coerce:   coerceString,
		Empty:    emptyString,
		Evaluate: evaluateRadio,
	},
	models.TypeCheckbox: {
		Default:  func(models.Item, models.Inspector) any { return []string{} },
		Coerce:   coerceStringList,
		Empty:    emptyStringList,
		Evaluate: evaluateCheckbox,
	},
	models.TypeCompliance: {
		Default:  constantDefault("conforme"),
		Coerce:   coerceString,
		Empty:    emptyString,
		Evaluate: evaluateLegacy,
	},
	models.TypeYesNo: {
		Default:  constantDefault("oui"),
		Coerce:   coerceString,
		Empty:    emptyString,
		Evaluate: evaluateLegacy,
	},
	models.TypePresence: {
		Default:  constantDefault("present"),
		Coerce:   coerceString,
		Empty:    emptyString,
		Evaluate: evaluateLegacy,
	},
	models.TypeNumber: {
		Default:  numericDefault,
		Coerce:   coerceNumber,
		Empty:    neverEmpty,
		Evaluate: evaluateNumeric,
	},
	models.TypeNumberUnit: {
		Default:  numericDefault,
		Coerce:   coerceNumber,
		Empty:    neverEmpty,
		Evaluate: evaluateNumeric,
	},
	models.TypeSlider: {
		Default:  numericDefault,
		Coerce:   coerceNumber,
		Empty:    neverEmpty,
		Evaluate: evaluateNumeric,
	},
	models.TypeList: {
		Default:  emptyStringDefault,
		Coerce:   coerceString,
		Empty:    emptyString,
		Evaluate: evaluateList,
	},
	models.TypeText: {
		Default: emptyStringDefault,
		Coerce:  coerceString,
		Empty:   emptyString,
	},
	models.TypeDate: {
		Default: emptyStringDefault,
		Coerce:  coerceString,
		Empty:   emptyString,
	},
	models.TypeInspector: {
		Default: func(_ models.Item, op models.Inspector) any { return op.DisplayName },
		Coerce:  coerceString,
		Empty:   emptyString,
	},
	models.TypeLocation: {
		Default: emptyStringDefault,
		Coerce:  coerceString,
		Empty:   emptyString,
	},
	models.TypeSignature: {
		Default: emptyStringDefault,
		Coerce:  coerceString,
		Empty:   emptyString,
	},
	models.TypeStopwatch: {
		Default: stopwatchDefault,
		Coerce:  coerceStopwatch,
		Empty:   emptyStopwatch,
	},
	models.TypeCountdown: {
		Default: stopwatchDefault,
		Coerce:  coerceStopwatch,
		Empty:   emptyStopwatch,
	},
	models.TypePhoto: {
		Default: func(models.Item, models.Inspector) any { return []string{} },
		Coerce:  coerceStringList,
		Empty:   emptyStringList,
	},
	models.TypeAudio: {
		Default: func(models.Item, models.Inspector) any { return nil },
		Coerce:  coerceOptionalString,
		Empty:   emptyString,
	},
	models.TypeScan: {
		Default: emptyStringDefault,
		Coerce:  coerceString,
		Empty:   emptyString,
	},
}

// Lookup returns the strategy for a field type. The second return is false
// for unknown types; callers must then skip the item entirely (malformed
// templates degrade item by item, never session-wide).
func Lookup(t models.FieldType) (Definition, bool) {
	def, ok := registry[t]
	return def, ok
}

// Known reports whether t is a registered field type.
func Known(t models.FieldType) bool {
	_, ok := registry[t]
	return ok
}

// Defaults

func firstOptionDefault(item models.Item, _ models.Inspector) any {
	if len(item.Options) > 0 {
		return item.Options[0]
	}
	return ""
}

func constantDefault(v string) func(models.Item, models.Inspector) any {
	return func(models.Item, models.Inspector) any { return v }
}

func emptyStringDefault(models.Item, models.Inspector) any { return "" }

func numericDefault(item models.Item, _ models.Inspector) any {
	return item.Config.Min
}

func stopwatchDefault(models.Item, models.Inspector) any {
	return models.StopwatchValue{Elapsed: 0, Laps: []string{}, Formatted: "00:00.00"}
}

// Coercion

func coerceString(v any) (any, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	default:
		return nil, fmt.Errorf("%w: expected string, got %T", ErrBadValue, v)
	}
}

func coerceOptionalString(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return coerceString(v)
}

func coerceStringList(v any) (any, error) {
	switch vs := v.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return vs, nil
	case []any:
		out := make([]string, 0, len(vs))
		for _, e := range vs {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("%w: expected string element, got %T", ErrBadValue, e)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: expected string list, got %T", ErrBadValue, v)
	}
}

func coerceNumber(v any) (any, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return nil, fmt.Errorf("%w: expected number, got %T", ErrBadValue, v)
	}
}

func coerceStopwatch(v any) (any, error) {
	if sw, ok := v.(models.StopwatchValue); ok {
		return sw, nil
	}
	// Client sends the record as a JSON object; round-trip it into the
	// struct rather than picking the map apart by hand.
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadValue, err)
	}
	var sw models.StopwatchValue
	if err := json.Unmarshal(b, &sw); err != nil {
		return nil, fmt.Errorf("%w: expected stopwatch record, got %T", ErrBadValue, v)
	}
	if sw.Laps == nil {
		sw.Laps = []string{}
	}
	return sw, nil
}

// Emptiness

func emptyString(v any) bool {
	s, ok := v.(string)
	return !ok || s == ""
}

func emptyStringList(v any) bool {
	vs, ok := v.([]string)
	return !ok || len(vs) == 0
}

func emptyStopwatch(v any) bool {
	sw, ok := v.(models.StopwatchValue)
	return !ok || (sw.Elapsed == 0 && len(sw.Laps) == 0)
}

func neverEmpty(any) bool { return false }

// formatNumber renders a float without trailing zeros ("4050", "3.5").
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func containsInt(values []int, n int) bool {
	for _, v := range values {
		if v == n {
			return true
		}
	}
	return false
}
