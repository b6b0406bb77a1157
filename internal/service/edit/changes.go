package edit

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/heartmarshall/use-of-force/internal/domain"
)

// Change is the type-erased view of a ChangeRecord.
type Change interface {
	QuestionKey() domain.QuestionKey
	QuestionText() string
	Changed() bool
	Old() any
	New() any
}

// ChangeRecord is the comparison result for one question. A nil value means
// the answer is absent.
type ChangeRecord[T any] struct {
	Key        domain.QuestionKey
	Question   string
	OldValue   *T
	NewValue   *T
	HasChanged bool
}

func (c *ChangeRecord[T]) QuestionKey() domain.QuestionKey { return c.Key }
func (c *ChangeRecord[T]) QuestionText() string            { return c.Question }
func (c *ChangeRecord[T]) Changed() bool                   { return c.HasChanged }

func (c *ChangeRecord[T]) Old() any {
	if c.OldValue == nil {
		return nil
	}
	return *c.OldValue
}

func (c *ChangeRecord[T]) New() any {
	if c.NewValue == nil {
		return nil
	}
	return *c.NewValue
}

// ChangeMap is the set of change records for one section edit, keyed by
// question. It remembers insertion order; display order comes from the
// section schema.
type ChangeMap struct {
	section domain.Section
	keys    []domain.QuestionKey
	changes map[domain.QuestionKey]Change
}

// NewChangeMap returns an empty change map for section.
func NewChangeMap(section domain.Section) ChangeMap {
	return ChangeMap{
		section: section,
		changes: make(map[domain.QuestionKey]Change),
	}
}

func (m *ChangeMap) put(c Change) {
	if m.changes == nil {
		m.changes = make(map[domain.QuestionKey]Change)
	}
	if _, ok := m.changes[c.QuestionKey()]; !ok {
		m.keys = append(m.keys, c.QuestionKey())
	}
	m.changes[c.QuestionKey()] = c
}

func (m ChangeMap) Section() domain.Section { return m.section }

func (m ChangeMap) Len() int { return len(m.keys) }

// Get returns the change record for key.
func (m ChangeMap) Get(key domain.QuestionKey) (Change, bool) {
	c, ok := m.changes[key]
	return c, ok
}

// Changes returns the records in insertion order.
func (m ChangeMap) Changes() []Change {
	out := make([]Change, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.changes[k])
	}
	return out
}

// HasChanges reports whether any record is marked changed.
func (m ChangeMap) HasChanges() bool {
	for _, c := range m.changes {
		if c.Changed() {
			return true
		}
	}
	return false
}

// OnlyChanged returns a copy holding only the changed records.
func (m ChangeMap) OnlyChanged() ChangeMap {
	out := NewChangeMap(m.section)
	for _, k := range m.keys {
		if c := m.changes[k]; c.Changed() {
			out.put(c)
		}
	}
	return out
}

// ChangedKeys returns the keys of changed records in insertion order.
func (m ChangeMap) ChangedKeys() []domain.QuestionKey {
	var out []domain.QuestionKey
	for _, k := range m.keys {
		if m.changes[k].Changed() {
			out = append(out, k)
		}
	}
	return out
}

type storedChange struct {
	Question string          `json:"question"`
	OldValue json.RawMessage `json:"oldValue,omitempty"`
	NewValue json.RawMessage `json:"newValue,omitempty"`
}

// MarshalJSON writes the audit shape {key: {question, oldValue, newValue}}.
// hasChanged is not persisted. Keys are written in insertion order.
func (m ChangeMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		c := m.changes[k]
		entry := storedChange{Question: c.QuestionText()}

		var err error
		if entry.OldValue, err = marshalValue(c.Old()); err != nil {
			return nil, fmt.Errorf("marshal %s old value: %w", k, err)
		}
		if entry.NewValue, err = marshalValue(c.New()); err != nil {
			return nil, fmt.Errorf("marshal %s new value: %w", k, err)
		}

		key, err := json.Marshal(string(k))
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(entry)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalValue(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
