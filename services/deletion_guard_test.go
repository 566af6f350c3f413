package services_test

import (
	"context"
	"testing"

	apperrors "catalog-service/common/errors"
	"catalog-service/services"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCheck_DeniesColorReferencedByProducts(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int64{"products.color": 2}}
	guard := services.NewDeletionGuard(counter)

	err := guard.Check(context.Background(), "color", primitive.NewObjectID())

	assert.True(t, apperrors.IsKind(err, apperrors.KindDependencyInUse))
	assert.Contains(t, err.Error(), "product")
}

func TestCheck_DeniesStructureReferencedBySubstructures(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int64{"substructures.structure": 1}}
	guard := services.NewDeletionGuard(counter)

	err := guard.Check(context.Background(), "structure", primitive.NewObjectID())

	assert.True(t, apperrors.IsKind(err, apperrors.KindDependencyInUse))
	assert.Contains(t, err.Error(), "substructure")
}

func TestCheck_DeniesProductReferencedBySeo(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int64{"seos.product": 1}}
	guard := services.NewDeletionGuard(counter)

	err := guard.Check(context.Background(), "product", primitive.NewObjectID())

	assert.True(t, apperrors.IsKind(err, apperrors.KindDependencyInUse))
	assert.Contains(t, err.Error(), "seo")
}

func TestCheck_AllowsUnreferenced(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int64{}}
	guard := services.NewDeletionGuard(counter)

	assert.Nil(t, guard.Check(context.Background(), "vendor", primitive.NewObjectID()))
	assert.Nil(t, guard.Check(context.Background(), "product", primitive.NewObjectID()))
}

func TestCheck_DeadlineBecomesDependencyTimeout(t *testing.T) {
	counter := &fakeCounter{err: context.DeadlineExceeded}
	guard := services.NewDeletionGuard(counter)

	err := guard.Check(context.Background(), "category", primitive.NewObjectID())

	assert.True(t, apperrors.IsKind(err, apperrors.KindDependencyTimeout))
}

func TestCheck_UnknownKindHasNoDependents(t *testing.T) {
	counter := &fakeCounter{counts: map[string]int64{"products.category": 9}}
	guard := services.NewDeletionGuard(counter)

	assert.Nil(t, guard.Check(context.Background(), "um", primitive.NewObjectID()))
}
