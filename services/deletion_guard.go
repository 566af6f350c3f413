package services

import (
	"context"
	"errors"

	apperrors "catalog-service/common/errors"
	"catalog-service/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReferenceCounter counts live references to an id in one collection field.
type ReferenceCounter interface {
	CountReferences(ctx context.Context, collection, field string, id primitive.ObjectID) (int64, error)
}

// Dependent describes one place an entity kind can be referenced from.
type Dependent struct {
	Kind       string // kind named in the denial message
	Collection string
	Field      string
}

// DeletionGuard refuses to delete an entity while dependents still reference
// it. Each kind registers its reverse references once; every delete path
// consults the same registry instead of re-implementing the scan.
type DeletionGuard struct {
	counter  ReferenceCounter
	registry map[string][]Dependent
}

func NewDeletionGuard(counter ReferenceCounter) *DeletionGuard {
	g := &DeletionGuard{
		counter:  counter,
		registry: make(map[string][]Dependent),
	}

	// Product reference fields.
	for _, kind := range []models.TaxonomyKind{
		models.KindCategory, models.KindSubstructure, models.KindContent,
		models.KindDesign, models.KindSubfinish, models.KindSubsuitable,
		models.KindVendor, models.KindGroupcode, models.KindColor, models.KindMotif,
	} {
		g.Register(string(kind), Dependent{Kind: "product", Collection: "products", Field: string(kind)})
	}

	// Parent kinds referenced by their sub-kinds.
	g.Register(string(models.KindStructure), Dependent{Kind: "substructure", Collection: "substructures", Field: "structure"})
	g.Register(string(models.KindFinish), Dependent{Kind: "subfinish", Collection: "subfinishes", Field: "finish"})
	g.Register(string(models.KindSuitableFor), Dependent{Kind: "subsuitable", Collection: "subsuitables", Field: "suitablefor"})

	// Products referenced by SEO records.
	g.Register("product", Dependent{Kind: "seo", Collection: "seos", Field: "product"})

	return g
}

// Register adds a reverse reference for kind.
func (g *DeletionGuard) Register(kind string, dep Dependent) {
	g.registry[kind] = append(g.registry[kind], dep)
}

// Check returns nil when no dependent references id, or a DependencyInUse
// error naming the first dependent kind found.
func (g *DeletionGuard) Check(ctx context.Context, kind string, id primitive.ObjectID) error {
	for _, dep := range g.registry[kind] {
		count, err := g.counter.CountReferences(ctx, dep.Collection, dep.Field, id)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return apperrors.DependencyTimeout(err)
			}
			return apperrors.Internal(err)
		}
		if count > 0 {
			return apperrors.DependencyInUse(kind, dep.Kind)
		}
	}
	return nil
}
