package services

import (
	"context"
	"errors"
	"sync"

	apperrors "catalog-service/common/errors"
	"catalog-service/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ExistenceChecker answers the two queries reference validation needs from
// a taxonomy collection.
type ExistenceChecker interface {
	ExistsByID(ctx context.Context, kind models.TaxonomyKind, id primitive.ObjectID) (bool, error)
	CountByIDs(ctx context.Context, kind models.TaxonomyKind, ids []primitive.ObjectID) (int64, error)
}

// ProductRefs carries the reference fields of a candidate product payload.
// A nil pointer (or nil color slice) means the field is absent from the
// payload and is not checked.
type ProductRefs struct {
	Category     *primitive.ObjectID
	Substructure *primitive.ObjectID
	Content      *primitive.ObjectID
	Design       *primitive.ObjectID
	Subfinish    *primitive.ObjectID
	Subsuitable  *primitive.ObjectID
	Vendor       *primitive.ObjectID
	Groupcode    *primitive.ObjectID
	Color        []primitive.ObjectID
	Motif        *primitive.ObjectID
}

// ReferenceValidator checks that every populated reference field of a
// payload resolves to an existing taxonomy document. Checks run
// concurrently and every failing field is reported, not just the first.
type ReferenceValidator struct {
	checker ExistenceChecker
}

func NewReferenceValidator(checker ExistenceChecker) *ReferenceValidator {
	return &ReferenceValidator{checker: checker}
}

type refCheck struct {
	field string
	run   func(ctx context.Context) (bool, error)
}

// Validate returns nil when every populated reference resolves. Otherwise it
// returns an InvalidReferences error listing each failing field, or a
// DependencyTimeout / Internal error when a collaborator call failed.
func (v *ReferenceValidator) Validate(ctx context.Context, refs ProductRefs) error {
	if refs.Color != nil && len(refs.Color) == 0 {
		return apperrors.Validation("at least one color is required")
	}

	singles := []struct {
		field string
		kind  models.TaxonomyKind
		id    *primitive.ObjectID
	}{
		{"category", models.KindCategory, refs.Category},
		{"substructure", models.KindSubstructure, refs.Substructure},
		{"content", models.KindContent, refs.Content},
		{"design", models.KindDesign, refs.Design},
		{"subfinish", models.KindSubfinish, refs.Subfinish},
		{"subsuitable", models.KindSubsuitable, refs.Subsuitable},
		{"vendor", models.KindVendor, refs.Vendor},
		{"groupcode", models.KindGroupcode, refs.Groupcode},
		{"motif", models.KindMotif, refs.Motif},
	}

	var checks []refCheck
	for _, s := range singles {
		if s.id == nil {
			continue
		}
		kind, id := s.kind, *s.id
		checks = append(checks, refCheck{
			field: s.field,
			run: func(ctx context.Context) (bool, error) {
				return v.checker.ExistsByID(ctx, kind, id)
			},
		})
	}
	if len(refs.Color) > 0 {
		ids := dedupeIDs(refs.Color)
		checks = append(checks, refCheck{
			field: "color",
			run: func(ctx context.Context) (bool, error) {
				count, err := v.checker.CountByIDs(ctx, models.KindColor, ids)
				if err != nil {
					return false, err
				}
				return count == int64(len(ids)), nil
			},
		})
	}
	if len(checks) == 0 {
		return nil
	}

	results := make([]bool, len(checks))
	errs := make([]error, len(checks))

	var wg sync.WaitGroup
	for i, c := range checks {
		wg.Add(1)
		go func(i int, c refCheck) {
			defer wg.Done()
			results[i], errs[i] = c.run(ctx)
		}(i, c)
	}
	wg.Wait()

	for _, err := range errs {
		if err == nil {
			continue
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return apperrors.DependencyTimeout(err)
		}
		return apperrors.Internal(err)
	}

	var invalid []string
	for i, ok := range results {
		if !ok {
			invalid = append(invalid, checks[i].field)
		}
	}
	if len(invalid) == 0 {
		return nil
	}

	for _, field := range invalid {
		if field == "color" {
			// Diagnostic only: the fast path never pays for per-id checks.
			if bad, err := v.InvalidColorIDs(ctx, refs.Color); err == nil {
				zap.L().Warn("invalid color references", zap.Any("ids", bad))
			}
		}
	}
	return apperrors.InvalidReferences(invalid)
}

// InvalidColorIDs re-checks each color id individually and returns the ones
// that do not resolve. Used to enrich error diagnostics after the count
// comparison already failed.
func (v *ReferenceValidator) InvalidColorIDs(ctx context.Context, ids []primitive.ObjectID) ([]primitive.ObjectID, error) {
	var bad []primitive.ObjectID
	for _, id := range dedupeIDs(ids) {
		exists, err := v.checker.ExistsByID(ctx, models.KindColor, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			bad = append(bad, id)
		}
	}
	return bad, nil
}

func dedupeIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	var out []primitive.ObjectID
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
