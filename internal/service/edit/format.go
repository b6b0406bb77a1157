package edit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/use-of-force/internal/domain"
)

const displayTimeLayout = "02/01/2006 15:04"

func formatYesNo(_ context.Context, _ NameResolver, v bool) (string, error) {
	if v {
		return "Yes", nil
	}
	return "No", nil
}

func formatText(_ context.Context, _ NameResolver, v string) (string, error) {
	return v, nil
}

func formatInt(_ context.Context, _ NameResolver, v int) (string, error) {
	return strconv.Itoa(v), nil
}

// formatLabel resolves a code through table. Unknown codes render as "".
func formatLabel(table map[string]string) formatter[string] {
	return func(_ context.Context, _ NameResolver, v string) (string, error) {
		return table[v], nil
	}
}

// formatLabels resolves each code and joins the known labels.
func formatLabels(table map[string]string, noneMessage string) formatter[[]string] {
	return func(_ context.Context, _ NameResolver, v []string) (string, error) {
		labels := make([]string, 0, len(v))
		for _, code := range v {
			if code == domain.RestraintNone {
				labels = append(labels, noneMessage)
				continue
			}
			if label, ok := table[code]; ok {
				labels = append(labels, label)
			}
		}
		return strings.Join(labels, ", "), nil
	}
}

func formatDateTime(loc *time.Location) formatter[time.Time] {
	return func(_ context.Context, _ NameResolver, v time.Time) (string, error) {
		return v.In(loc).Format(displayTimeLayout), nil
	}
}

// formatRestraint groups child positions under their parent:
// "Standing: Wrist weave, Double wrist hold, On back (supine)".
func formatRestraint(noneMessage string) formatter[[]string] {
	return func(_ context.Context, _ NameResolver, v []string) (string, error) {
		type group struct {
			parent   string
			children []string
		}
		var groups []*group
		byParent := make(map[string]*group)

		for _, code := range v {
			if code == domain.RestraintNone {
				if _, ok := byParent[code]; !ok {
					g := &group{parent: code}
					byParent[code] = g
					groups = append(groups, g)
				}
				continue
			}
			parent, _, isChild := strings.Cut(code, "__")
			g, ok := byParent[parent]
			if !ok {
				g = &group{parent: parent}
				byParent[parent] = g
				groups = append(groups, g)
			}
			if isChild {
				if label, ok := restraintLabels[code]; ok {
					g.children = append(g.children, label)
				}
			}
		}

		parts := make([]string, 0, len(groups))
		for _, g := range groups {
			if g.parent == domain.RestraintNone {
				parts = append(parts, noneMessage)
				continue
			}
			label, ok := restraintLabels[g.parent]
			if !ok {
				continue
			}
			if len(g.children) > 0 {
				label += ": " + strings.Join(g.children, ", ")
			}
			parts = append(parts, label)
		}
		return strings.Join(parts, ", "), nil
	}
}

func formatWitnesses(_ context.Context, _ NameResolver, v []domain.Witness) (string, error) {
	names := make([]string, 0, len(v))
	for _, w := range v {
		names = append(names, w.Name)
	}
	return strings.Join(names, ", "), nil
}

// formatStaff appends annotation to the names of staff who went to hospital.
func formatStaff(annotation string) formatter[[]domain.StaffMember] {
	return func(_ context.Context, _ NameResolver, v []domain.StaffMember) (string, error) {
		names := make([]string, 0, len(v))
		for _, s := range v {
			if s.Hospitalisation {
				names = append(names, fmt.Sprintf("%s (%s)", s.Name, annotation))
				continue
			}
			names = append(names, s.Name)
		}
		return strings.Join(names, ", "), nil
	}
}

func formatEvidenceTags(withDescription bool) formatter[[]domain.EvidenceTag] {
	return func(_ context.Context, _ NameResolver, v []domain.EvidenceTag) (string, error) {
		items := make([]string, 0, len(v))
		for _, tag := range v {
			if withDescription {
				items = append(items, tag.EvidenceTagReference+"- "+tag.Description)
				continue
			}
			items = append(items, tag.EvidenceTagReference)
		}
		return strings.Join(items, ", "), nil
	}
}

func formatCameras(_ context.Context, _ NameResolver, v []domain.CameraNumber) (string, error) {
	items := make([]string, 0, len(v))
	for _, c := range v {
		items = append(items, c.CameraNum)
	}
	return strings.Join(items, ", "), nil
}

func formatWeapons(_ context.Context, _ NameResolver, v []domain.WeaponType) (string, error) {
	items := make([]string, 0, len(v))
	for _, w := range v {
		items = append(items, w.WeaponType)
	}
	return strings.Join(items, ", "), nil
}

// formatPrison and formatLocation fall back to the raw identifier when the
// lookup fails, and report the failure so the caller can mark the row.
func formatPrison(ctx context.Context, names NameResolver, v string) (string, error) {
	if names == nil {
		return v, fmt.Errorf("prison %s: %w", v, domain.ErrLookupFailed)
	}
	name, err := names.PrisonName(ctx, v)
	if err != nil {
		return v, fmt.Errorf("prison %s: %w", v, err)
	}
	return name, nil
}

func formatLocation(ctx context.Context, names NameResolver, v string) (string, error) {
	if names == nil {
		return v, fmt.Errorf("location %s: %w", v, domain.ErrLookupFailed)
	}
	name, err := names.LocationName(ctx, v)
	if err != nil {
		return v, fmt.Errorf("location %s: %w", v, err)
	}
	return name, nil
}
