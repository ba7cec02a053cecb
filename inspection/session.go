// Copyright (c) 2026 SDIS Tools.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package inspection

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sdis-tools/firecheck/fieldtype"
	"github.com/sdis-tools/firecheck/models"
)

var (
	ErrUnknownItem   = errors.New("item not in the loaded template")
	ErrClosed        = errors.New("session is closed")
	ErrSubmitting    = errors.New("submission already in progress")
	ErrNotAtEnd      = errors.New("submission is only reachable from the last section")
	ErrPhotoIndex    = errors.New("photo index out of range")
	ErrEmptyTemplate = errors.New("template has no sections")
)

// RequiredError lists the required items that still have no meaningful
// response at submission time.
type RequiredError struct {
	Missing []string // item ids, template order
}

func (e *RequiredError) Error() string {
	return fmt.Sprintf("required items missing a response: %s", strings.Join(e.Missing, ", "))
}

// Session is one run of the form engine against one (template, asset) pair.
// It owns the response store and the photo store exclusively; both live only
// in memory and are discarded when the session closes. All state sits behind
// one mutex because HTTP handlers reach the same session concurrently.
type Session struct {
	ID       string
	Asset    models.Asset
	Template models.FormTemplate
	Operator models.Inspector
	OpenedAt time.Time

	mu         sync.Mutex
	items      map[string]models.Item
	responses  map[string]any
	photos     map[string][]models.Photo
	pager      Paginator
	submitting bool
	closed     bool
}

// Open initializes a session: one response entry per item, defaulted from
// the field-type registry, with the inspector type pre-filled from the
// operator. Items with unknown types are skipped entirely.
func Open(tpl models.FormTemplate, asset models.Asset, operator models.Inspector) (*Session, error) {
	if len(tpl.Sections) == 0 {
		return nil, ErrEmptyTemplate
	}
	s := &Session{
		ID:        uuid.NewString(),
		Asset:     asset,
		Template:  tpl,
		Operator:  operator,
		OpenedAt:  time.Now(),
		items:     make(map[string]models.Item),
		responses: make(map[string]any),
		photos:    make(map[string][]models.Photo),
		pager:     NewPaginator(len(tpl.Sections)),
	}
	for _, sec := range tpl.Sections {
		for _, item := range sec.Items {
			def, ok := fieldtype.Lookup(item.Type)
			if !ok {
				continue
			}
			s.items[item.ID] = item
			s.responses[item.ID] = def.Default(item, operator)
		}
	}
	return s, nil
}

// SetResponse replaces the value at itemID wholesale after coercing it into
// the item's value domain. There are no merge semantics: multi-choice
// toggling is the caller's job.
func (s *Session) SetResponse(itemID string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	item, ok := s.items[itemID]
	if !ok {
		return ErrUnknownItem
	}
	def, _ := fieldtype.Lookup(item.Type)
	coerced, err := def.Coerce(v)
	if err != nil {
		return fmt.Errorf("item %s: %w", itemID, err)
	}
	s.responses[itemID] = coerced
	return nil
}

// Response returns the current value for an item.
func (s *Session) Response(itemID string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.responses[itemID]
	return v, ok
}

// Responses returns a snapshot copy of the response store.
func (s *Session) Responses() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.responsesLocked()
}

func (s *Session) responsesLocked() map[string]any {
	out := make(map[string]any, len(s.responses))
	for k, v := range s.responses {
		out[k] = v
	}
	return out
}

// AttachPhoto appends a captured blob to the item's photo list and returns
// the new count. Photos are ordered by completion: concurrent captures for
// the same item land in the order their appends execute, not the order the
// captures were started.
func (s *Session) AttachPhoto(itemID string, p models.Photo) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	if _, ok := s.items[itemID]; !ok {
		return 0, ErrUnknownItem
	}
	s.photos[itemID] = append(s.photos[itemID], p)
	return len(s.photos[itemID]), nil
}

// RemovePhoto deletes the photo at index for an item.
func (s *Session) RemovePhoto(itemID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	list := s.photos[itemID]
	if index < 0 || index >= len(list) {
		return ErrPhotoIndex
	}
	s.photos[itemID] = append(list[:index], list[index+1:]...)
	return nil
}

// Photos returns a snapshot copy of the photo store.
func (s *Session) Photos() map[string][]models.Photo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.photosLocked()
}

func (s *Session) photosLocked() map[string][]models.Photo {
	out := make(map[string][]models.Photo, len(s.photos))
	for k, list := range s.photos {
		cp := make([]models.Photo, len(list))
		copy(cp, list)
		out[k] = cp
	}
	return out
}

// Next advances the wizard and returns the new index and section.
func (s *Session) Next() (int, models.Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.pager.Next()
	return idx, s.Template.Sections[idx]
}

// Previous steps the wizard back and returns the new index and section.
func (s *Session) Previous() (int, models.Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.pager.Previous()
	return idx, s.Template.Sections[idx]
}

// Section returns the current wizard position.
func (s *Session) Section() (int, models.Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.pager.Index()
	return idx, s.Template.Sections[idx]
}

func (s *Session) SectionCount() int {
	return len(s.Template.Sections)
}

// AtEnd reports whether the wizard sits on the last section.
func (s *Session) AtEnd() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pager.AtEnd()
}

// Evaluate recomputes alerts and conformity from the current responses.
func (s *Session) Evaluate() ([]models.Alert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	alerts := Evaluate(s.Template, s.responses)
	return alerts, Conforme(alerts)
}

// CompleteLookup is the write path for async device lookups (reverse
// geocoding, file reads resolving late). Last writer wins. Once the session
// is closed the completion is a safe no-op.
func (s *Session) CompleteLookup(itemID string, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if _, ok := s.items[itemID]; !ok {
		return
	}
	s.responses[itemID] = value
}

// BeginSubmit marks the session as submitting so repeated confirmation taps
// cannot produce duplicate records. Fails unless the wizard is on the last
// section.
func (s *Session) BeginSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if !s.pager.AtEnd() {
		return ErrNotAtEnd
	}
	if s.submitting {
		return ErrSubmitting
	}
	s.submitting = true
	return nil
}

// EndSubmit clears the submitting flag after a failed submission so the
// user can retry without re-entering anything.
func (s *Session) EndSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
}

// Assemble builds the atomic outbound record. Required items with no
// meaningful response abort assembly with a *RequiredError listing them in
// template order. request_replacement is only meaningful on a
// non-conforming inspection and is forced off otherwise.
func (s *Session) Assemble(remarks string, requestReplacement bool) (models.InspectionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.InspectionRecord{}, ErrClosed
	}

	var missing []string
	for _, sec := range s.Template.Sections {
		for _, item := range sec.Items {
			if !item.Required {
				continue
			}
			def, ok := fieldtype.Lookup(item.Type)
			if !ok {
				continue
			}
			if def.Empty(s.responses[item.ID]) {
				missing = append(missing, item.ID)
			}
		}
	}
	if len(missing) > 0 {
		return models.InspectionRecord{}, &RequiredError{Missing: missing}
	}

	alerts := Evaluate(s.Template, s.responses)
	conforme := Conforme(alerts)
	if conforme {
		requestReplacement = false
	}

	return models.InspectionRecord{
		ID:                 uuid.NewString(),
		AssetID:            s.Asset.ID,
		AssetKind:          s.Asset.Kind,
		TemplateID:         s.Template.ID,
		TemplateName:       s.Template.Name,
		Kind:               s.Template.Frequency,
		InspectorName:      s.Operator.DisplayName,
		Responses:          s.responsesLocked(),
		Photos:             s.photosLocked(),
		Conforme:           conforme,
		Alerts:             alerts,
		Remarks:            remarks,
		RequestReplacement: requestReplacement,
		Metadata:           displayName(s.Asset),
		SubmittedAt:        time.Now(),
	}, nil
}

// Close discards the session. Idempotent; every pending async completion
// checks this flag before writing.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// displayName renders the asset-kind-specific metadata string carried on
// the submitted record.
func displayName(a models.Asset) string {
	switch a.Kind {
	case models.AssetKindPPE:
		return fmt.Sprintf("EPI %s (%s)", a.DisplayName, a.UniqueCode)
	case models.AssetKindEquipment:
		return fmt.Sprintf("%s %s (%s)", a.CategoryName, a.DisplayName, a.UniqueCode)
	default:
		return a.DisplayName
	}
}
