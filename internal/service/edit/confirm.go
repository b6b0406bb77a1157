package edit

import (
	"context"

	"github.com/heartmarshall/use-of-force/internal/domain"
)

// QuestionView is one line of the "check your changes" screen.
type QuestionView struct {
	Key        string
	Question   string
	OldValue   string
	NewValue   string
	HasChanged bool
	// Degraded is set when a name lookup failed and a raw identifier is shown.
	Degraded bool
}

// BuildConfirmationView renders every question of section, changed or not,
// in the section's display order using the confirmation dialect.
func (s *Service) BuildConfirmationView(ctx context.Context, section domain.Section, changes ChangeMap, lc LookupContext) ([]QuestionView, error) {
	schema, err := s.editableSchema(section)
	if err != nil {
		return nil, err
	}

	fields, err := s.renderChanges(ctx, schema, changes, DialectConfirmation, s.nameResolver(ctx, lc), true)
	if err != nil {
		return nil, err
	}

	views := make([]QuestionView, len(fields))
	degraded := false
	for i, f := range fields {
		views[i] = QuestionView{
			Key:        f.key,
			Question:   f.question,
			OldValue:   f.oldValue,
			NewValue:   f.newValue,
			HasChanged: f.changed,
			Degraded:   f.degraded,
		}
		degraded = degraded || f.degraded
	}
	if degraded {
		s.metrics.IncrementDegradedRows(DialectConfirmation.String())
	}

	return views, nil
}
