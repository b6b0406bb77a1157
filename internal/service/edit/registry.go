package edit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/heartmarshall/use-of-force/internal/domain"
)

// DefaultNoneMessage is shown when "none" was selected for a multi-select question.
const DefaultNoneMessage = "None"

// Schema is the ordered question list of one section. Field order is both
// the comparison order and the display order of every view.
type Schema struct {
	section domain.Section
	fields  []Field
	byKey   map[domain.QuestionKey]Field
}

func newSchema(section domain.Section, fields ...Field) *Schema {
	s := &Schema{
		section: section,
		fields:  fields,
		byKey:   make(map[domain.QuestionKey]Field, len(fields)),
	}
	for _, f := range fields {
		s.byKey[f.Key()] = f
	}
	for _, f := range fields {
		if d := f.gate(); d != nil {
			if governing, ok := s.byKey[d.key]; ok {
				d.parent = governing.gate()
			}
		}
	}
	return s
}

func (s *Schema) Section() domain.Section { return s.section }

// Fields returns the section's questions in display order.
func (s *Schema) Fields() []Field { return s.fields }

// Field returns the strategy for key.
func (s *Schema) Field(key domain.QuestionKey) (Field, bool) {
	f, ok := s.byKey[key]
	return f, ok
}

// Keys returns the canonical question order of the section.
func (s *Schema) Keys() []domain.QuestionKey {
	keys := make([]domain.QuestionKey, len(s.fields))
	for i, f := range s.fields {
		keys[i] = f.Key()
	}
	return keys
}

// Compare produces a change record for every question of the section,
// including questions answered in neither map.
func (s *Schema) Compare(stored, submitted map[string]any) ChangeMap {
	m := NewChangeMap(s.section)
	for _, f := range s.fields {
		m.put(f.compare(stored, submitted))
	}
	return m
}

// Normalize returns the values to persist for the submitted answers. Every
// question of the section is present; absent answers are nil.
func (s *Schema) Normalize(submitted map[string]any) map[string]any {
	out := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		out[string(f.Key())] = f.normalize(submitted)
	}
	return out
}

// DecodeChanges reads a stored audit change map back into typed records.
// Keys that are not questions of the section are skipped.
func (s *Schema) DecodeChanges(raw json.RawMessage) (ChangeMap, error) {
	m := NewChangeMap(s.section)
	if len(raw) == 0 {
		return m, nil
	}

	var stored map[string]storedChange
	if err := json.Unmarshal(raw, &stored); err != nil {
		return m, fmt.Errorf("decode %s changes: %w", s.section, err)
	}

	for _, f := range s.fields {
		entry, ok := stored[string(f.Key())]
		if !ok {
			continue
		}
		c, err := f.decode(entry.Question, entry.OldValue, entry.NewValue)
		if err != nil {
			return m, err
		}
		m.put(c)
	}
	return m, nil
}

// Option configures a Registry.
type Option func(*Registry)

// WithLocation sets the zone used to read submitted date entries and to
// display instants. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(r *Registry) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithNoneMessage sets the text shown when "none" is selected.
func WithNoneMessage(msg string) Option {
	return func(r *Registry) {
		if msg != "" {
			r.noneMessage = msg
		}
	}
}

// Registry holds the schema of every section. It is built once at startup
// and read concurrently afterwards.
type Registry struct {
	loc         *time.Location
	noneMessage string
	sections    map[domain.Section]*Schema
}

// NewRegistry builds the schemas of the five form sections and of the
// report owner pseudo-section.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		loc:         time.UTC,
		noneMessage: DefaultNoneMessage,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.sections = map[domain.Section]*Schema{
		domain.SectionIncidentDetails:       incidentDetailsSchema(r.loc),
		domain.SectionReasonsForUseOfForce:  reasonsSchema(),
		domain.SectionUseOfForceDetails:     useOfForceDetailsSchema(r.noneMessage),
		domain.SectionRelocationAndInjuries: relocationAndInjuriesSchema(),
		domain.SectionEvidence:              evidenceSchema(),
		domain.SectionReportOwner:           reportOwnerSchema(),
	}
	return r
}

// Location returns the zone used for date entry and display.
func (r *Registry) Location() *time.Location { return r.loc }

// Section returns the schema of s.
func (r *Registry) Section(s domain.Section) (*Schema, bool) {
	schema, ok := r.sections[s]
	return schema, ok
}

// MustSection returns the schema of s and panics if s is unknown.
// Callers pass sections they control; input from the outside world goes
// through Section.
func (r *Registry) MustSection(s domain.Section) *Schema {
	schema, ok := r.sections[s]
	if !ok {
		panic(fmt.Sprintf("edit: unknown section %q", s))
	}
	return schema
}
