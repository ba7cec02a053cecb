// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package fieldtype is the static catalogue of question types.

Every type the form engine understands has one Definition in the registry:
its default response value, a coercion from client JSON into the value
domain, an emptiness check used for required-field enforcement, and the
alert rule. Types without an alert rule (text, date, inspector, location,
signature, stopwatch, countdown, photo, audio, scan) leave Evaluate nil and
can never raise an alert.

# Alert Rules

  - radio: response is one of the triggering values
  - checkbox: selection intersects the triggering values; the trigger
    description joins the matched values with ", "
  - conformite / oui_non / present_absent: response is in the configured
    triggering values, falling back to the built-in negative set
    {non_conforme, non, absent, defectueux} when none are configured
  - number / number_unit / slider: strict threshold violation, value < min
    or value > max, each bound checked independently when configured
  - list: the index of the selected option is one of the triggering indices

Adding a type means adding one registry entry; nothing switches on type
tags anywhere else.
*/
package fieldtype
