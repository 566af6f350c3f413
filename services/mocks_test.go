package services_test

import (
	"context"
	"io"
	"strings"
	"sync"

	"catalog-service/models"
	"catalog-service/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// eventLog records cross-fake call ordering so tests can assert that
// persistence happens before superseded-asset deletion.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(e string) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

func (l *eventLog) indexOf(prefix string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.events {
		if strings.HasPrefix(e, prefix) {
			return i
		}
	}
	return -1
}

// ---- taxonomy fake (ExistenceChecker + TaxonomyFinder + TaxonomyStore) ----

type fakeTaxonomies struct {
	mu       sync.Mutex
	entities map[models.TaxonomyKind]map[primitive.ObjectID]models.TaxonomyEntity
	err      error

	inserted    []models.TaxonomyEntity
	lastUpdates bson.M
}

func newFakeTaxonomies() *fakeTaxonomies {
	return &fakeTaxonomies{
		entities: make(map[models.TaxonomyKind]map[primitive.ObjectID]models.TaxonomyEntity),
	}
}

func (f *fakeTaxonomies) remove(kind models.TaxonomyKind, id primitive.ObjectID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entities[kind], id)
}

func (f *fakeTaxonomies) add(kind models.TaxonomyKind, name string) primitive.ObjectID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.entities[kind] == nil {
		f.entities[kind] = make(map[primitive.ObjectID]models.TaxonomyEntity)
	}
	id := primitive.NewObjectID()
	f.entities[kind][id] = models.TaxonomyEntity{ID: id, Name: name}
	return id
}

func (f *fakeTaxonomies) ExistsByID(_ context.Context, kind models.TaxonomyKind, id primitive.ObjectID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entities[kind][id]
	return ok, nil
}

func (f *fakeTaxonomies) CountByIDs(_ context.Context, kind models.TaxonomyKind, ids []primitive.ObjectID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, id := range ids {
		if _, ok := f.entities[kind][id]; ok {
			count++
		}
	}
	return count, nil
}

func (f *fakeTaxonomies) FindByID(_ context.Context, kind models.TaxonomyKind, id primitive.ObjectID) (*models.TaxonomyEntity, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	entity, ok := f.entities[kind][id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &entity, nil
}

func (f *fakeTaxonomies) FindByIDs(_ context.Context, kind models.TaxonomyKind, ids []primitive.ObjectID) ([]models.TaxonomyEntity, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.TaxonomyEntity
	for _, id := range ids {
		if entity, ok := f.entities[kind][id]; ok {
			out = append(out, entity)
		}
	}
	return out, nil
}

func (f *fakeTaxonomies) FindAll(_ context.Context, kind models.TaxonomyKind, _, _ int64) ([]models.TaxonomyEntity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.TaxonomyEntity
	for _, entity := range f.entities[kind] {
		out = append(out, entity)
	}
	return out, nil
}

func (f *fakeTaxonomies) Insert(_ context.Context, kind models.TaxonomyKind, entity *models.TaxonomyEntity) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.entities[kind] == nil {
		f.entities[kind] = make(map[primitive.ObjectID]models.TaxonomyEntity)
	}
	f.entities[kind][entity.ID] = *entity
	f.inserted = append(f.inserted, *entity)
	return nil
}

func (f *fakeTaxonomies) Update(_ context.Context, kind models.TaxonomyKind, id primitive.ObjectID, updates bson.M) (*models.TaxonomyEntity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entity, ok := f.entities[kind][id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	f.lastUpdates = updates
	if name, ok := updates["name"].(string); ok {
		entity.Name = name
	}
	f.entities[kind][id] = entity
	return &entity, nil
}

func (f *fakeTaxonomies) Delete(_ context.Context, kind models.TaxonomyKind, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entities[kind][id]; !ok {
		return false, nil
	}
	delete(f.entities[kind], id)
	return true, nil
}

// ---- product store fake ----

type fakeProducts struct {
	mu          sync.Mutex
	byID        map[primitive.ObjectID]*models.Product
	log         *eventLog
	insertErr   error
	lastUpdates bson.M

	refField    string
	refResults  []*models.Product
	rangeMin    float64
	rangeMax    float64
	rangeField  string
	listResults []*models.Product
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{byID: make(map[primitive.ObjectID]*models.Product)}
}

func (f *fakeProducts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) FindAll(_ context.Context, _, _ int64) ([]*models.Product, error) {
	return f.listResults, nil
}

func (f *fakeProducts) FindByReference(_ context.Context, field string, _ primitive.ObjectID) ([]*models.Product, error) {
	f.refField = field
	return f.refResults, nil
}

func (f *fakeProducts) FindByRange(_ context.Context, field string, min, max float64) ([]*models.Product, error) {
	f.rangeField = field
	f.rangeMin = min
	f.rangeMax = max
	return f.listResults, nil
}

func (f *fakeProducts) SearchByName(_ context.Context, _ string) ([]*models.Product, error) {
	return f.listResults, nil
}

func (f *fakeProducts) Insert(_ context.Context, product *models.Product) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *product
	f.byID[product.ID] = &cp
	if f.log != nil {
		f.log.add("persist")
	}
	return nil
}

func (f *fakeProducts) Update(_ context.Context, id primitive.ObjectID, updates bson.M) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	f.lastUpdates = updates
	cp := *p
	if v, ok := updates["name"].(string); ok {
		cp.Name = v
	}
	if v, ok := updates["img"].(string); ok {
		cp.Img = v
	}
	if v, ok := updates["image1"].(string); ok {
		cp.Image1 = v
	}
	if v, ok := updates["image2"].(string); ok {
		cp.Image2 = v
	}
	if v, ok := updates["video"].(string); ok {
		cp.Video = v
	}
	if v, ok := updates["videoThumbnail"].(string); ok {
		cp.VideoThumbnail = v
	}
	f.byID[id] = &cp
	if f.log != nil {
		f.log.add("persist")
	}
	return &cp, nil
}

func (f *fakeProducts) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	if f.log != nil {
		f.log.add("persist")
	}
	return true, nil
}

// ---- asset store fake ----

type fakeAssetStore struct {
	mu        sync.Mutex
	log       *eventLog
	uploads   []string
	deletes   []string
	uploadErr error
	deleteErr error
}

func (f *fakeAssetStore) Upload(_ context.Context, _ io.Reader, publicID, folder string, kind services.AssetKind) (*services.UploadedAsset, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.mu.Lock()
	f.uploads = append(f.uploads, folder+"/"+publicID)
	f.mu.Unlock()
	if f.log != nil {
		f.log.add("upload:" + publicID)
	}

	ext := ".jpg"
	if kind == services.AssetVideo {
		ext = ".mp4"
	}
	url := "https://res.cloudinary.com/demo/" + string(kind) + "/upload/v1712345678/" + folder + "/" + publicID + ext
	asset := &services.UploadedAsset{URL: url, PublicID: folder + "/" + publicID}
	if kind == services.AssetVideo {
		asset.ThumbnailURL = strings.TrimSuffix(url, ext) + ".jpg"
	}
	return asset, nil
}

func (f *fakeAssetStore) Delete(_ context.Context, publicID string, _ services.AssetKind) error {
	if f.log != nil {
		f.log.add("delete:" + publicID)
	}
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	f.deletes = append(f.deletes, publicID)
	f.mu.Unlock()
	return nil
}

// ---- reference counter fake ----

type fakeCounter struct {
	counts map[string]int64 // keyed "collection.field"
	err    error
}

func (f *fakeCounter) CountReferences(_ context.Context, collection, field string, _ primitive.ObjectID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[collection+"."+field], nil
}

// ---- seo store fake ----

type fakeSeos struct {
	mu          sync.Mutex
	byID        map[primitive.ObjectID]*models.Seo
	byProduct   map[primitive.ObjectID]*models.Seo
	lastUpdates bson.M
}

func newFakeSeos() *fakeSeos {
	return &fakeSeos{
		byID:      make(map[primitive.ObjectID]*models.Seo),
		byProduct: make(map[primitive.ObjectID]*models.Seo),
	}
}

func (f *fakeSeos) FindByID(_ context.Context, id primitive.ObjectID) (*models.Seo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seo, ok := f.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *seo
	return &cp, nil
}

func (f *fakeSeos) FindByProduct(_ context.Context, productID primitive.ObjectID) (*models.Seo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seo, ok := f.byProduct[productID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *seo
	return &cp, nil
}

func (f *fakeSeos) FindBySlug(_ context.Context, slug string) (*models.Seo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, seo := range f.byID {
		if seo.Slug == slug {
			cp := *seo
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeSeos) FindAll(_ context.Context, _, _ int64) ([]models.Seo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Seo
	for _, seo := range f.byID {
		out = append(out, *seo)
	}
	return out, nil
}

func (f *fakeSeos) ExistsByProduct(_ context.Context, productID primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byProduct[productID]
	return ok, nil
}

func (f *fakeSeos) Insert(_ context.Context, seo *models.Seo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *seo
	f.byID[seo.ID] = &cp
	f.byProduct[seo.Product] = &cp
	return nil
}

func (f *fakeSeos) Update(_ context.Context, id primitive.ObjectID, updates bson.M) (*models.Seo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seo, ok := f.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	f.lastUpdates = updates
	cp := *seo
	if v, ok := updates["slug"].(string); ok {
		cp.Slug = v
	}
	f.byID[id] = &cp
	return &cp, nil
}

func (f *fakeSeos) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seo, ok := f.byID[id]
	if !ok {
		return false, nil
	}
	delete(f.byProduct, seo.Product)
	delete(f.byID, id)
	return true, nil
}
