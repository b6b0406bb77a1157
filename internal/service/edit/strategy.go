package edit

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/use-of-force/internal/domain"
)

func eq[T comparable](a, b T) bool { return a == b }

func boolField(key domain.QuestionKey, question string) *field[bool] {
	return &field[bool]{key: key, question: question, read: readBool, equal: eq[bool], base: formatYesNo}
}

func textField(key domain.QuestionKey, question string) *field[string] {
	return &field[string]{key: key, question: question, read: readText, equal: eq[string], base: formatText}
}

func intField(key domain.QuestionKey, question string) *field[int] {
	return &field[int]{key: key, question: question, read: readInt, equal: eq[int], base: formatInt}
}

func codeField(key domain.QuestionKey, question string, labels map[string]string) *field[string] {
	return &field[string]{key: key, question: question, read: readText, equal: eq[string], base: formatLabel(labels)}
}

func triStateField(key domain.QuestionKey, question string) *field[string] {
	return codeField(key, question, triStateLabels)
}

func dateTimeField(key domain.QuestionKey, question string, loc *time.Location) *field[time.Time] {
	return &field[time.Time]{
		key:      key,
		question: question,
		read:     readDateTime(loc),
		equal:    func(a, b time.Time) bool { return a.Equal(b) },
		base:     formatDateTime(loc),
	}
}

// codeListField compares selected codes in order: reordering is a change.
func codeListField(key domain.QuestionKey, question string, base formatter[[]string]) *field[[]string] {
	return &field[[]string]{key: key, question: question, read: readCodes, equal: slices.Equal[[]string, string], base: base}
}

func prisonField(key domain.QuestionKey, question string) *field[string] {
	return &field[string]{key: key, question: question, read: readText, equal: eq[string], base: formatPrison}
}

func locationField(key domain.QuestionKey, question string) *field[string] {
	return &field[string]{key: key, question: question, read: readText, equal: eq[string], base: formatLocation}
}

// tagListField compares free-text tags ignoring order and case. Entries with
// a blank sort key are dropped; an empty list is absent.
func tagListField[E comparable](
	key domain.QuestionKey,
	question string,
	sortKey func(E) string,
	fold func(E) E,
	base formatter[[]E],
) *field[[]E] {
	read := func(raw any) ([]E, bool) {
		items, ok := convert[[]E](raw)
		if !ok {
			return nil, false
		}
		items = slices.DeleteFunc(slices.Clone(items), func(e E) bool {
			return strings.TrimSpace(sortKey(e)) == ""
		})
		return items, len(items) > 0
	}
	canonical := func(items []E) []E {
		out := make([]E, len(items))
		for i, e := range items {
			out[i] = fold(e)
		}
		slices.SortStableFunc(out, func(a, b E) int {
			return cmp.Or(
				cmp.Compare(sortKey(a), sortKey(b)),
				cmp.Compare(fmt.Sprint(a), fmt.Sprint(b)),
			)
		})
		return out
	}
	return &field[[]E]{
		key:      key,
		question: question,
		read:     read,
		equal:    func(a, b []E) bool { return slices.Equal(canonical(a), canonical(b)) },
		base:     base,
	}
}

func foldEvidenceTag(t domain.EvidenceTag) domain.EvidenceTag {
	return domain.EvidenceTag{
		EvidenceTagReference: strings.ToLower(strings.TrimSpace(t.EvidenceTagReference)),
		Description:          strings.ToLower(strings.TrimSpace(t.Description)),
	}
}

func foldCameraNumber(c domain.CameraNumber) domain.CameraNumber {
	return domain.CameraNumber{CameraNum: strings.ToLower(strings.TrimSpace(c.CameraNum))}
}

func foldWeaponType(w domain.WeaponType) domain.WeaponType {
	return domain.WeaponType{WeaponType: strings.ToLower(strings.TrimSpace(w.WeaponType))}
}

// Named entity lists keep their order; names are trimmed and blank entries dropped.

func readWitnesses(raw any) ([]domain.Witness, bool) {
	items, ok := convert[[]domain.Witness](raw)
	if !ok {
		return nil, false
	}
	out := make([]domain.Witness, 0, len(items))
	for _, w := range items {
		if name := strings.TrimSpace(w.Name); name != "" {
			out = append(out, domain.Witness{Name: name})
		}
	}
	return out, len(out) > 0
}

// staffEntry tolerates a hospitalisation flag submitted as "true"/"false".
type staffEntry struct {
	Name            string `json:"name"`
	Hospitalisation any    `json:"hospitalisation"`
}

func readStaff(raw any) ([]domain.StaffMember, bool) {
	if typed, ok := raw.([]domain.StaffMember); ok {
		entries := make([]staffEntry, len(typed))
		for i, s := range typed {
			entries[i] = staffEntry{Name: s.Name, Hospitalisation: s.Hospitalisation}
		}
		raw = entries
	}
	items, ok := convert[[]staffEntry](raw)
	if !ok {
		return nil, false
	}
	out := make([]domain.StaffMember, 0, len(items))
	for _, s := range items {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		hospitalised, _ := readBool(s.Hospitalisation)
		out = append(out, domain.StaffMember{Name: name, Hospitalisation: hospitalised})
	}
	return out, len(out) > 0
}

func witnessesField(key domain.QuestionKey, question string) *field[[]domain.Witness] {
	return &field[[]domain.Witness]{
		key:      key,
		question: question,
		read:     readWitnesses,
		equal:    slices.Equal[[]domain.Witness, domain.Witness],
		base:     formatWitnesses,
	}
}

func staffField(key domain.QuestionKey, question string) *field[[]domain.StaffMember] {
	return &field[[]domain.StaffMember]{
		key:      key,
		question: question,
		read:     readStaff,
		equal:    slices.Equal[[]domain.StaffMember, domain.StaffMember],
		base:     formatStaff("hospitalised"),
		dialects: map[Dialect]formatter[[]domain.StaffMember]{
			DialectConfirmation: formatStaff("went to hosptial"),
		},
	}
}

func (f *field[T]) dependsOn(d *dependency) *field[T] {
	f.dep = d
	return f
}

func (f *field[T]) withDialect(d Dialect, fn formatter[T]) *field[T] {
	if f.dialects == nil {
		f.dialects = make(map[Dialect]formatter[T])
	}
	f.dialects[d] = fn
	return f
}
