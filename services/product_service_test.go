package services_test

import (
	"context"
	"testing"

	apperrors "catalog-service/common/errors"
	"catalog-service/models"
	"catalog-service/services"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type productFixture struct {
	tax      *fakeTaxonomies
	products *fakeProducts
	seos     *fakeSeos
	store    *fakeAssetStore
	counter  *fakeCounter
	log      *eventLog
	svc      *services.ProductService
}

func newProductFixture() *productFixture {
	log := &eventLog{}
	tax := newFakeTaxonomies()
	products := newFakeProducts()
	products.log = log
	seos := newFakeSeos()
	store := &fakeAssetStore{log: log}
	counter := &fakeCounter{counts: map[string]int64{}}

	svc := services.NewProductService(
		products,
		tax,
		seos,
		services.NewReferenceValidator(tax),
		services.NewMediaResolver(store, services.DefaultMediaLimits()),
		services.NewDeletionGuard(counter),
		store,
	)
	return &productFixture{tax: tax, products: products, seos: seos, store: store, counter: counter, log: log, svc: svc}
}

func (f *productFixture) createRequest() services.ProductCreateRequest {
	return services.ProductCreateRequest{
		Name:         "Navy Twill",
		Category:     f.tax.add(models.KindCategory, "Cotton"),
		Substructure: f.tax.add(models.KindSubstructure, "Twill Weave"),
		Content:      f.tax.add(models.KindContent, "100% Cotton"),
		Design:       f.tax.add(models.KindDesign, "Solid"),
		Subfinish:    f.tax.add(models.KindSubfinish, "Matte"),
		Subsuitable:  f.tax.add(models.KindSubsuitable, "Jackets"),
		Vendor:       f.tax.add(models.KindVendor, "Acme Mills"),
		Groupcode:    f.tax.add(models.KindGroupcode, "GRP-7"),
		Color:        []primitive.ObjectID{f.tax.add(models.KindColor, "Navy")},
	}
}

func mainImage() map[services.Slot]services.Upload {
	return map[services.Slot]services.Upload{
		services.SlotMain: upload("front.jpg", 1024),
	}
}

func TestCreateProduct_RequiresMainImage(t *testing.T) {
	f := newProductFixture()
	req := f.createRequest()

	_, err := f.svc.Create(context.Background(), req, nil)

	assert.True(t, apperrors.IsKind(err, apperrors.KindMediaValidation))
	assert.Empty(t, f.store.uploads)
}

func TestCreateProduct_RequiresName(t *testing.T) {
	f := newProductFixture()
	req := f.createRequest()
	req.Name = " x "

	_, err := f.svc.Create(context.Background(), req, mainImage())

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestCreateProduct_RequiresColor(t *testing.T) {
	f := newProductFixture()
	req := f.createRequest()
	req.Color = nil

	_, err := f.svc.Create(context.Background(), req, mainImage())

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Empty(t, f.store.uploads)
}

func TestCreateProduct_InvalidReferencesBlockUploads(t *testing.T) {
	f := newProductFixture()
	req := f.createRequest()
	req.Design = primitive.NewObjectID()
	req.Vendor = primitive.NewObjectID()

	_, err := f.svc.Create(context.Background(), req, mainImage())

	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidReferences))
	assert.ElementsMatch(t, []string{"design", "vendor"}, apperrors.AsError(err).Fields)
	assert.Empty(t, f.store.uploads, "validation failure must not trigger uploads")
}

func TestCreateProduct_HappyPath(t *testing.T) {
	f := newProductFixture()
	req := f.createRequest()

	detail, err := f.svc.Create(context.Background(), req, mainImage())

	assert.Nil(t, err)
	assert.Equal(t, "Navy Twill", detail.Name)
	assert.NotEmpty(t, detail.Img)
	assert.Equal(t, "Cotton", detail.Category.Name)
	assert.Len(t, detail.Color, 1)
	assert.Equal(t, "Navy", detail.Color[0].Name)

	stored, ferr := f.products.FindByID(context.Background(), detail.ID)
	assert.Nil(t, ferr)
	assert.Equal(t, detail.Img, stored.Img)
}

func TestCreateProduct_UploadsBeforePersist(t *testing.T) {
	f := newProductFixture()

	_, err := f.svc.Create(context.Background(), f.createRequest(), mainImage())

	assert.Nil(t, err)
	uploadIdx := f.log.indexOf("upload:")
	persistIdx := f.log.indexOf("persist")
	assert.GreaterOrEqual(t, uploadIdx, 0)
	assert.Greater(t, persistIdx, uploadIdx)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	f := newProductFixture()

	_, err := f.svc.Update(context.Background(), primitive.NewObjectID(), services.ProductUpdateRequest{}, nil)

	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestUpdateProduct_ReplacedMainImageDeletedAfterPersist(t *testing.T) {
	f := newProductFixture()
	detail, err := f.svc.Create(context.Background(), f.createRequest(), mainImage())
	assert.Nil(t, err)

	oldPublicID := services.PublicIDFromURL(detail.Img)
	assert.NotEmpty(t, oldPublicID)
	f.log.events = nil

	updated, err := f.svc.Update(context.Background(), detail.ID, services.ProductUpdateRequest{}, mainImage())

	assert.Nil(t, err)
	assert.NotEqual(t, detail.Img, updated.Img)
	assert.Equal(t, []string{oldPublicID}, f.store.deletes)

	persistIdx := f.log.indexOf("persist")
	deleteIdx := f.log.indexOf("delete:")
	assert.GreaterOrEqual(t, persistIdx, 0)
	assert.Greater(t, deleteIdx, persistIdx, "superseded asset must be deleted only after persist")
}

func TestUpdateProduct_EmptyStringsNeverErase(t *testing.T) {
	f := newProductFixture()
	detail, err := f.svc.Create(context.Background(), f.createRequest(), mainImage())
	assert.Nil(t, err)

	um := ""
	currency := "USD"
	_, err = f.svc.Update(context.Background(), detail.ID, services.ProductUpdateRequest{
		Um:       &um,
		Currency: &currency,
	}, nil)

	assert.Nil(t, err)
	assert.NotContains(t, f.products.lastUpdates, "um")
	assert.Equal(t, "USD", f.products.lastUpdates["currency"])
}

func TestUpdateProduct_ValidatesOnlyPresentReferences(t *testing.T) {
	f := newProductFixture()
	detail, err := f.svc.Create(context.Background(), f.createRequest(), mainImage())
	assert.Nil(t, err)

	bad := primitive.NewObjectID()
	_, err = f.svc.Update(context.Background(), detail.ID, services.ProductUpdateRequest{Vendor: &bad}, nil)

	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidReferences))
	assert.Equal(t, []string{"vendor"}, apperrors.AsError(err).Fields)
}

func TestDeleteProduct_DeniedWhileSeoReferences(t *testing.T) {
	f := newProductFixture()
	detail, err := f.svc.Create(context.Background(), f.createRequest(), mainImage())
	assert.Nil(t, err)

	f.counter.counts["seos.product"] = 1
	err = f.svc.Delete(context.Background(), detail.ID)

	assert.True(t, apperrors.IsKind(err, apperrors.KindDependencyInUse))
	_, ferr := f.products.FindByID(context.Background(), detail.ID)
	assert.Nil(t, ferr, "denied delete must leave the product in place")
}

func TestDeleteProduct_RemovesRecordAndAssets(t *testing.T) {
	f := newProductFixture()
	files := mainImage()
	files[services.SlotVideo] = upload("clip.mp4", 1024)
	detail, err := f.svc.Create(context.Background(), f.createRequest(), files)
	assert.Nil(t, err)

	err = f.svc.Delete(context.Background(), detail.ID)

	assert.Nil(t, err)
	assert.Len(t, f.store.deletes, 2)
	_, ferr := f.products.FindByID(context.Background(), detail.ID)
	assert.NotNil(t, ferr)
}

func TestDeleteProduct_AssetCleanupFailureIsSwallowed(t *testing.T) {
	f := newProductFixture()
	detail, err := f.svc.Create(context.Background(), f.createRequest(), mainImage())
	assert.Nil(t, err)

	f.store.deleteErr = assert.AnError
	err = f.svc.Delete(context.Background(), detail.ID)

	assert.Nil(t, err, "orphaned remote assets are acceptable, broken records are not")
}

func TestGetProductBySlug(t *testing.T) {
	f := newProductFixture()
	detail, err := f.svc.Create(context.Background(), f.createRequest(), mainImage())
	assert.Nil(t, err)

	seo := &models.Seo{ID: primitive.NewObjectID(), Product: detail.ID, Slug: "navy-twill"}
	assert.Nil(t, f.seos.Insert(context.Background(), seo))

	found, err := f.svc.GetBySlug(context.Background(), "navy-twill")
	assert.Nil(t, err)
	assert.Equal(t, detail.ID, found.ID)
	assert.Equal(t, "Cotton", found.Category.Name)

	_, err = f.svc.GetBySlug(context.Background(), "missing-slug")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestListByRange_SpreadsFifteenPercent(t *testing.T) {
	f := newProductFixture()

	_, err := f.svc.ListByRange(context.Background(), "gsm", 200)

	assert.Nil(t, err)
	assert.Equal(t, "gsm", f.products.rangeField)
	assert.InDelta(t, 170, f.products.rangeMin, 0.001)
	assert.InDelta(t, 230, f.products.rangeMax, 0.001)
}
