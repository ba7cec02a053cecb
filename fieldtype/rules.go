// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fieldtype

import (
	"fmt"
	"strings"

	"github.com/sdis-tools/firecheck/models"
)

// evaluateRadio fires when the selected value is one of the configured
// triggering values.
func evaluateRadio(item models.Item, v any) (string, string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", "", false
	}
	if containsString(item.Alert.TriggeringValues, s) {
		return s, s, true
	}
	return "", "", false
}

// evaluateCheckbox fires when the selection intersects the triggering
// values. The trigger description lists the matched values in response
// order, joined by ", ".
func evaluateCheckbox(item models.Item, v any) (string, string, bool) {
	vs, ok := v.([]string)
	if !ok || len(vs) == 0 {
		return "", "", false
	}
	var matched []string
	for _, s := range vs {
		if containsString(item.Alert.TriggeringValues, s) {
			matched = append(matched, s)
		}
	}
	if len(matched) == 0 {
		return "", "", false
	}
	return strings.Join(matched, ", "), strings.Join(vs, ", "), true
}

// evaluateLegacy handles the backward-compatible binary types. When the
// template configures no triggering values, the built-in negative set
// applies (non_conforme, non, absent, defectueux).
func evaluateLegacy(item models.Item, v any) (string, string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", "", false
	}
	triggers := item.Alert.TriggeringValues
	if len(triggers) == 0 {
		triggers = DefaultLegacyTriggers
	}
	if containsString(triggers, s) {
		return s, s, true
	}
	return "", "", false
}

// evaluateNumeric fires on strict threshold violation: value < min or
// value > max, each bound checked only when configured. The boundary value
// itself never triggers.
func evaluateNumeric(item models.Item, v any) (string, string, bool) {
	f, ok := v.(float64)
	if !ok {
		return "", "", false
	}
	raw := formatNumber(f)
	if item.Config.Unit != "" {
		raw += " " + item.Config.Unit
	}
	if min := item.Alert.MinThreshold; min != nil && f < *min {
		return fmt.Sprintf("%s < min %s", formatNumber(f), formatNumber(*min)), raw, true
	}
	if max := item.Alert.MaxThreshold; max != nil && f > *max {
		return fmt.Sprintf("%s > max %s", formatNumber(f), formatNumber(*max)), raw, true
	}
	return "", "", false
}

// evaluateList fires when the index of the selected option is one of the
// configured triggering indices.
func evaluateList(item models.Item, v any) (string, string, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return "", "", false
	}
	idx := -1
	for i, opt := range item.Options {
		if opt == s {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", "", false
	}
	if containsInt(item.Alert.TriggeringOptionIndices, idx) {
		return s, s, true
	}
	return "", "", false
}
