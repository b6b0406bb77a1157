package edit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heartmarshall/use-of-force/internal/domain"
)

// Dialect selects the formatting rules of a view.
type Dialect int

const (
	// DialectConfirmation is used by the pre-commit "check your changes" view.
	DialectConfirmation Dialect = iota
	// DialectHistory is used by the permanent edit history view.
	DialectHistory
)

func (d Dialect) String() string {
	switch d {
	case DialectConfirmation:
		return "confirmation"
	case DialectHistory:
		return "history"
	}
	return fmt.Sprintf("dialect(%d)", int(d))
}

// NameResolver resolves prison and location identifiers to display names.
type NameResolver interface {
	PrisonName(ctx context.Context, agencyID string) (string, error)
	LocationName(ctx context.Context, locationID string) (string, error)
}

// Field is the comparison and formatting strategy of one question.
type Field interface {
	Key() domain.QuestionKey
	Question() string

	gate() *dependency
	compare(stored, submitted map[string]any) Change
	normalize(values map[string]any) any
	decode(question string, oldRaw, newRaw json.RawMessage) (Change, error)
	format(ctx context.Context, d Dialect, names NameResolver, value any) (string, error)
}

// formatter renders a present value. Absent values render as "".
// On error the returned string is the fallback presentation.
type formatter[T any] func(ctx context.Context, names NameResolver, v T) (string, error)

// dependency makes a question present only while its governing answer holds.
// parent is the governing question's own dependency: an answer gated off
// higher up the chain cannot hold.
type dependency struct {
	key    domain.QuestionKey
	holds  func(raw any) bool
	parent *dependency
}

func (d *dependency) satisfied(values map[string]any) bool {
	if d.parent != nil && !d.parent.satisfied(values) {
		return false
	}
	return d.holds(values[string(d.key)])
}

func whenTrue(key domain.QuestionKey) *dependency {
	return &dependency{key: key, holds: func(raw any) bool {
		v, ok := readBool(raw)
		return ok && v
	}}
}

func whenFalse(key domain.QuestionKey) *dependency {
	return &dependency{key: key, holds: func(raw any) bool {
		v, ok := readBool(raw)
		return ok && !v
	}}
}

func whenEquals(key domain.QuestionKey, code string) *dependency {
	return &dependency{key: key, holds: func(raw any) bool {
		v, ok := readText(raw)
		return ok && v == code
	}}
}

type field[T any] struct {
	key      domain.QuestionKey
	question string
	read     func(raw any) (T, bool)
	equal    func(a, b T) bool
	dep      *dependency
	base     formatter[T]
	dialects map[Dialect]formatter[T]
}

func (f *field[T]) Key() domain.QuestionKey { return f.key }
func (f *field[T]) Question() string        { return f.question }
func (f *field[T]) gate() *dependency       { return f.dep }

// value reads the answer for f from values. Nil means absent.
func (f *field[T]) value(values map[string]any) *T {
	if f.dep != nil && !f.dep.satisfied(values) {
		return nil
	}
	raw, ok := values[string(f.key)]
	if !ok || raw == nil {
		return nil
	}
	v, ok := f.read(raw)
	if !ok {
		return nil
	}
	return &v
}

func (f *field[T]) same(a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return f.equal(*a, *b)
}

func (f *field[T]) compare(stored, submitted map[string]any) Change {
	oldValue := f.value(stored)
	newValue := f.value(submitted)
	return &ChangeRecord[T]{
		Key:        f.key,
		Question:   f.question,
		OldValue:   oldValue,
		NewValue:   newValue,
		HasChanged: !f.same(oldValue, newValue),
	}
}

func (f *field[T]) normalize(values map[string]any) any {
	v := f.value(values)
	if v == nil {
		return nil
	}
	return *v
}

func (f *field[T]) decode(question string, oldRaw, newRaw json.RawMessage) (Change, error) {
	oldValue, err := f.decodeValue(oldRaw)
	if err != nil {
		return nil, fmt.Errorf("decode %s old value: %w", f.key, err)
	}
	newValue, err := f.decodeValue(newRaw)
	if err != nil {
		return nil, fmt.Errorf("decode %s new value: %w", f.key, err)
	}
	if question == "" {
		question = f.question
	}
	return &ChangeRecord[T]{
		Key:        f.key,
		Question:   question,
		OldValue:   oldValue,
		NewValue:   newValue,
		HasChanged: !f.same(oldValue, newValue),
	}, nil
}

func (f *field[T]) decodeValue(raw json.RawMessage) (*T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	v, ok := f.read(doc)
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (f *field[T]) format(ctx context.Context, d Dialect, names NameResolver, value any) (string, error) {
	if value == nil {
		return "", nil
	}
	v, ok := value.(T)
	if !ok {
		return "", fmt.Errorf("%s: unexpected value type %T", f.key, value)
	}
	if fn, ok := f.dialects[d]; ok {
		return fn(ctx, names, v)
	}
	return f.base(ctx, names, v)
}
