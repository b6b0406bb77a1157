package edit

import (
	"context"
	"fmt"

	"github.com/heartmarshall/use-of-force/internal/domain"
)

// CompareSection compares the stored answers of one section with a proposed
// edit. It panics if section is unknown.
func CompareSection(reg *Registry, section domain.Section, report *domain.Report, payload map[string]any) ChangeMap {
	return reg.MustSection(section).Compare(report.SectionValues(section), payload)
}

// Compare returns a change record for every question of section.
func (s *Service) Compare(_ context.Context, section domain.Section, report *domain.Report, payload map[string]any) (ChangeMap, error) {
	schema, err := s.editableSchema(section)
	if err != nil {
		return ChangeMap{}, err
	}
	return schema.Compare(report.SectionValues(section), payload), nil
}

// Preview is the result of comparing a proposed edit with the stored report.
type Preview struct {
	Changes   ChangeMap
	Questions []QuestionView
}

// PreviewEdit loads the report, compares payload against it and renders the
// confirmation view.
func (s *Service) PreviewEdit(ctx context.Context, reportID int64, section domain.Section, payload map[string]any, lc LookupContext) (*Preview, error) {
	schema, err := s.editableSchema(section)
	if err != nil {
		return nil, err
	}

	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}

	changes := schema.Compare(report.SectionValues(section), payload)

	questions, err := s.BuildConfirmationView(ctx, section, changes, lc)
	if err != nil {
		return nil, err
	}

	return &Preview{Changes: changes, Questions: questions}, nil
}
