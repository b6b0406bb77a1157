package edit

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

type renderedField struct {
	key      string
	question string
	oldValue string
	newValue string
	changed  bool
	degraded bool
}

// renderChanges formats the records of changes in schema order. Lookups for
// different records run concurrently; the result keeps schema order. When
// all is false, questions missing from changes are skipped; otherwise they
// are rendered as unanswered. A failed lookup degrades that record to its
// fallback text instead of failing the pass.
func (s *Service) renderChanges(
	ctx context.Context,
	schema *Schema,
	changes ChangeMap,
	d Dialect,
	names NameResolver,
	all bool,
) ([]renderedField, error) {
	type job struct {
		field  Field
		change Change
	}
	var jobs []job
	for _, f := range schema.Fields() {
		c, ok := changes.Get(f.Key())
		if !ok {
			if !all {
				continue
			}
			c = f.compare(nil, nil)
		}
		jobs = append(jobs, job{field: f, change: c})
	}

	out := make([]renderedField, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, j := range jobs {
		g.Go(func() error {
			r := renderedField{
				key:      string(j.field.Key()),
				question: j.change.QuestionText(),
				changed:  j.change.Changed(),
			}

			var err error
			if r.oldValue, err = j.field.format(gctx, d, names, j.change.Old()); err != nil {
				r.degraded = true
				s.logFormatFailure(gctx, schema, j.field, d, err)
			}
			if r.newValue, err = j.field.format(gctx, d, names, j.change.New()); err != nil {
				r.degraded = true
				s.logFormatFailure(gctx, schema, j.field, d, err)
			}

			out[i] = r
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) logFormatFailure(ctx context.Context, schema *Schema, f Field, d Dialect, err error) {
	s.log.WarnContext(ctx, "format answer",
		slog.String("section", string(schema.Section())),
		slog.String("question", string(f.Key())),
		slog.String("dialect", d.String()),
		slog.String("error", err.Error()),
	)
}
