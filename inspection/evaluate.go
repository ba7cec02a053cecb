// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package inspection

import (
	"fmt"

	"github.com/sdis-tools/firecheck/fieldtype"
	"github.com/sdis-tools/firecheck/models"
)

// Evaluate derives the alert list for a template and a response snapshot.
// Output order equals template declaration order: sections in order, items
// in order within each section. Items with unknown types or no alert rule
// are skipped.
func Evaluate(tpl models.FormTemplate, responses map[string]any) []models.Alert {
	alerts := []models.Alert{}
	for _, sec := range tpl.Sections {
		for _, item := range sec.Items {
			def, ok := fieldtype.Lookup(item.Type)
			if !ok || def.Evaluate == nil {
				continue
			}
			v, ok := responses[item.ID]
			if !ok {
				continue
			}
			trigger, raw, fired := def.Evaluate(item, v)
			if !fired {
				continue
			}
			message := item.Alert.Message
			if message == "" {
				message = fmt.Sprintf("Alert: %s - %s", item.Label, trigger)
			}
			alerts = append(alerts, models.Alert{
				ItemID:      item.ID,
				ItemLabel:   item.Label,
				SectionName: sec.Title,
				Trigger:     trigger,
				RawValue:    raw,
				Message:     message,
			})
		}
	}
	return alerts
}

// Conforme is true exactly when no alerts were derived. There is no other
// path to the conformity flag.
func Conforme(alerts []models.Alert) bool {
	return len(alerts) == 0
}
