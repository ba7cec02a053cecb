// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// FieldType tags a question with its input widget and alert semantics.
type FieldType string

// Question types understood by the field-type registry.
const (
	TypeRadio      FieldType = "radio"          // single choice
	TypeCheckbox   FieldType = "checkbox"       // multiple choice
	TypeCompliance FieldType = "conformite"     // legacy binary: conforme / non_conforme
	TypeYesNo      FieldType = "oui_non"        // legacy binary: oui / non
	TypePresence   FieldType = "present_absent" // legacy binary: present / absent
	TypeNumber     FieldType = "number"
	TypeNumberUnit FieldType = "number_unit"
	TypeSlider     FieldType = "slider"
	TypeList       FieldType = "list" // single-select dropdown
	TypeText       FieldType = "text"
	TypeDate       FieldType = "date"
	TypeInspector  FieldType = "inspector"
	TypeLocation   FieldType = "location"
	TypeSignature  FieldType = "signature"
	TypeStopwatch  FieldType = "stopwatch"
	TypeCountdown  FieldType = "countdown"
	TypePhoto      FieldType = "photo"
	TypeAudio      FieldType = "audio"
	TypeScan       FieldType = "scan"
)

// Asset kind constants
const (
	AssetKindEquipment = "materiel"
	AssetKindPPE       = "epi"
)

// Request types

type RegisterInspectorRequest struct {
	DisplayName string `json:"display_name"`
}

type OpenInspectionRequest struct {
	TemplateID string `json:"template_id"`
	Asset      Asset  `json:"asset"`
}

// Value carries whatever JSON the client sent; the field-type registry
// coerces it into the item's value domain.
type SetResponseRequest struct {
	Value any `json:"value"`
}

type AttachPhotoRequest struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"` // base64 in JSON
}

type LocateRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type SubmitInspectionRequest struct {
	Remarks            string `json:"remarks"`
	RequestReplacement bool   `json:"request_replacement"`
}

// Response types

type CreateTemplateResponse struct {
	TemplateID string `json:"template_id"`
	AdminKey   string `json:"admin_key"`
}

type RegisterInspectorResponse struct {
	InspectorID string `json:"inspector_id"`
	Token       string `json:"token"`
	IsNew       bool   `json:"is_new"`
}

type OpenInspectionResponse struct {
	SessionID    string         `json:"session_id"`
	SectionIndex int            `json:"section_index"`
	SectionCount int            `json:"section_count"`
	Section      Section        `json:"section"`
	Responses    map[string]any `json:"responses"`
}

type EvaluationResponse struct {
	Alerts   []Alert `json:"alerts"`
	Conforme bool    `json:"conforme"`
}

type AttachPhotoResponse struct {
	Count int `json:"count"`
}

type NavigationResponse struct {
	SectionIndex int     `json:"section_index"`
	SectionCount int     `json:"section_count"`
	Section      Section `json:"section"`
	AtEnd        bool    `json:"at_end"`
}

type SessionStateResponse struct {
	SectionIndex int            `json:"section_index"`
	SectionCount int            `json:"section_count"`
	Section      Section        `json:"section"`
	Responses    map[string]any `json:"responses"`
	Alerts       []Alert        `json:"alerts"`
	Conforme     bool           `json:"conforme"`
}

type SubmitInspectionResponse struct {
	InspectionID string `json:"inspection_id"`
	Conforme     bool   `json:"conforme"`
	AlertCount   int    `json:"alert_count"`
	Message      string `json:"message"`
}

type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Missing []string `json:"missing,omitempty"` // item ids, for required-field failures
}

// Domain types

// FormTemplate is an administrator-authored inspection schema. Immutable for
// the lifetime of a session once loaded.
type FormTemplate struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Frequency string    `json:"frequency" yaml:"frequency"`
	Retired   bool      `json:"retired,omitempty" yaml:"retired,omitempty"`
	Sections  []Section `json:"sections" yaml:"sections"`
}

type Section struct {
	ID              string   `json:"id" yaml:"id"`
	Title           string   `json:"title" yaml:"title"`
	Icon            string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	ReferencePhotos [][]byte `json:"reference_photos,omitempty" yaml:"reference_photos,omitempty"`
	Items           []Item   `json:"items" yaml:"items"`
}

// Item is a single typed question within a section.
type Item struct {
	ID          string      `json:"id" yaml:"id"`
	Label       string      `json:"label" yaml:"label"`
	Type        FieldType   `json:"type" yaml:"type"`
	Options     []string    `json:"options,omitempty" yaml:"options,omitempty"`
	Config      ItemConfig  `json:"config,omitempty" yaml:"config,omitempty"`
	Alert       AlertConfig `json:"alert,omitempty" yaml:"alert,omitempty"`
	Required    bool        `json:"required,omitempty" yaml:"required,omitempty"`
	AllowsPhoto bool        `json:"allows_photo,omitempty" yaml:"allows_photo,omitempty"`
}

// ItemConfig carries numeric and time bounds for number, slider, and
// stopwatch/countdown types.
type ItemConfig struct {
	Min              float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max              float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Step             float64 `json:"step,omitempty" yaml:"step,omitempty"`
	Unit             string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	CountdownSeconds int     `json:"countdown_seconds,omitempty" yaml:"countdown_seconds,omitempty"`
}

// AlertConfig decides when a response raises an alert. Thresholds are
// pointers so "not configured" stays distinguishable from zero.
type AlertConfig struct {
	TriggeringValues        []string `json:"triggering_values,omitempty" yaml:"triggering_values,omitempty"`
	MinThreshold            *float64 `json:"min_threshold,omitempty" yaml:"min_threshold,omitempty"`
	MaxThreshold            *float64 `json:"max_threshold,omitempty" yaml:"max_threshold,omitempty"`
	TriggeringOptionIndices []int    `json:"triggering_option_indices,omitempty" yaml:"triggering_option_indices,omitempty"`
	Message                 string   `json:"message,omitempty" yaml:"message,omitempty"`
}

// Asset identifies the inspected object. Supplied by the caller, read-only.
type Asset struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	UniqueCode   string `json:"unique_code"`
	CategoryName string `json:"category_name"`
	Kind         string `json:"kind"`
}

// Inspector is the operator identity used to default inspector-type fields.
type Inspector struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Alert is a derived record: one response violating its configured trigger.
// Recomputed from scratch on every evaluation, never mutated in place.
type Alert struct {
	ItemID      string `json:"item_id"`
	ItemLabel   string `json:"item_label"`
	SectionName string `json:"section_name"`
	Trigger     string `json:"trigger"`
	RawValue    string `json:"raw_value"`
	Message     string `json:"message"`
}

// StopwatchValue is the structured response of stopwatch/countdown items.
type StopwatchValue struct {
	Elapsed   float64  `json:"elapsed"` // seconds
	Laps      []string `json:"laps"`
	Formatted string   `json:"formatted"`
}

// Photo is one captured attachment blob.
type Photo struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}

// InspectionRecord is the single atomic outbound record built at submission.
type InspectionRecord struct {
	ID                 string             `json:"id"`
	AssetID            string             `json:"asset_id"`
	AssetKind          string             `json:"asset_kind"`
	TemplateID         string             `json:"template_id"`
	TemplateName       string             `json:"template_name"`
	Kind               string             `json:"kind"` // template frequency
	InspectorName      string             `json:"inspector_name"`
	Responses          map[string]any     `json:"responses"`
	Photos             map[string][]Photo `json:"photos,omitempty"`
	Conforme           bool               `json:"conforme"`
	Alerts             []Alert            `json:"alerts"`
	Remarks            string             `json:"remarks,omitempty"`
	RequestReplacement bool               `json:"request_replacement"`
	Metadata           string             `json:"metadata"` // asset-kind-specific display name
	SubmittedAt        time.Time          `json:"submitted_at"`
}

type TemplateSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Frequency string `json:"frequency"`
	Retired   bool   `json:"retired"`
}
