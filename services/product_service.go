package services

import (
	"context"
	"strings"
	"time"

	apperrors "catalog-service/common/errors"
	"catalog-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ProductStore is the persistence surface the product pipeline needs.
type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindAll(ctx context.Context, limit, skip int64) ([]*models.Product, error)
	FindByReference(ctx context.Context, field string, id primitive.ObjectID) ([]*models.Product, error)
	FindByRange(ctx context.Context, field string, min, max float64) ([]*models.Product, error)
	SearchByName(ctx context.Context, query string) ([]*models.Product, error)
	Insert(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// TaxonomyFinder reads taxonomy documents for folder naming and response
// population.
type TaxonomyFinder interface {
	FindByID(ctx context.Context, kind models.TaxonomyKind, id primitive.ObjectID) (*models.TaxonomyEntity, error)
	FindByIDs(ctx context.Context, kind models.TaxonomyKind, ids []primitive.ObjectID) ([]models.TaxonomyEntity, error)
}

// SlugFinder resolves an SEO slug to its record so products can be looked up
// by slug.
type SlugFinder interface {
	FindBySlug(ctx context.Context, slug string) (*models.Seo, error)
}

// ProductCreateRequest is a full create payload. All reference fields except
// motif are required.
type ProductCreateRequest struct {
	Name         string
	Category     primitive.ObjectID
	Substructure primitive.ObjectID
	Content      primitive.ObjectID
	Design       primitive.ObjectID
	Subfinish    primitive.ObjectID
	Subsuitable  primitive.ObjectID
	Vendor       primitive.ObjectID
	Groupcode    primitive.ObjectID
	Color        []primitive.ObjectID
	Motif        *primitive.ObjectID

	Um                 string
	Currency           string
	Gsm                *float64
	Oz                 *float64
	Cm                 *float64
	Inch               *float64
	Quantity           *float64
	ProductDescription string
}

// ProductUpdateRequest is a partial payload; nil fields are left untouched,
// so an update never erases a field by omission.
type ProductUpdateRequest struct {
	Name         *string
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

	Um                 *string
	Currency           *string
	Gsm                *float64
	Oz                 *float64
	Cm                 *float64
	Inch               *float64
	Quantity           *float64
	ProductDescription *string
}

// RefName is a reference expanded to an {id, name} pair for responses.
type RefName struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name"`
}

// ProductDetail is a product with every reference field expanded. A
// read-time convenience, not a write invariant.
type ProductDetail struct {
	ID             primitive.ObjectID `json:"_id"`
	Name           string             `json:"name"`
	Img            string             `json:"img"`
	Image1         string             `json:"image1,omitempty"`
	Image2         string             `json:"image2,omitempty"`
	Video          string             `json:"video,omitempty"`
	VideoThumbnail string             `json:"videoThumbnail,omitempty"`

	Category     RefName   `json:"category"`
	Substructure RefName   `json:"substructure"`
	Content      RefName   `json:"content"`
	Design       RefName   `json:"design"`
	Subfinish    RefName   `json:"subfinish"`
	Subsuitable  RefName   `json:"subsuitable"`
	Vendor       RefName   `json:"vendor"`
	Groupcode    RefName   `json:"groupcode"`
	Color        []RefName `json:"color"`
	Motif        *RefName  `json:"motif,omitempty"`

	Um                 string   `json:"um,omitempty"`
	Currency           string   `json:"currency,omitempty"`
	Gsm                *float64 `json:"gsm,omitempty"`
	Oz                 *float64 `json:"oz,omitempty"`
	Cm                 *float64 `json:"cm,omitempty"`
	Inch               *float64 `json:"inch,omitempty"`
	Quantity           *float64 `json:"quantity,omitempty"`
	ProductDescription string   `json:"productdescription,omitempty"`
}

// ProductService composes reference validation, media resolution, and
// persistence into the create/update/delete pipeline. Validation always
// completes before any upload; media resolution completes before persisting;
// superseded-asset deletion happens only after the new state is durable.
type ProductService struct {
	products   ProductStore
	taxonomies TaxonomyFinder
	seos       SlugFinder
	validator  *ReferenceValidator
	media      *MediaResolver
	guard      *DeletionGuard
	store      AssetStore
}

func NewProductService(products ProductStore, taxonomies TaxonomyFinder, seos SlugFinder, validator *ReferenceValidator, media *MediaResolver, guard *DeletionGuard, store AssetStore) *ProductService {
	return &ProductService{
		products:   products,
		taxonomies: taxonomies,
		seos:       seos,
		validator:  validator,
		media:      media,
		guard:      guard,
		store:      store,
	}
}

func (s *ProductService) Create(ctx context.Context, req ProductCreateRequest, files map[Slot]Upload) (*ProductDetail, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) < 2 {
		return nil, apperrors.Validation("name must be at least 2 characters")
	}
	if _, ok := files[SlotMain]; !ok {
		return nil, apperrors.MediaValidation("main image is required")
	}

	refs := ProductRefs{
		Category:     &req.Category,
		Substructure: &req.Substructure,
		Content:      &req.Content,
		Design:       &req.Design,
		Subfinish:    &req.Subfinish,
		Subsuitable:  &req.Subsuitable,
		Vendor:       &req.Vendor,
		Groupcode:    &req.Groupcode,
		Color:        req.Color,
		Motif:        req.Motif,
	}
	if refs.Color == nil {
		refs.Color = []primitive.ObjectID{}
	}
	if err := s.validator.Validate(ctx, refs); err != nil {
		return nil, err
	}

	category, err := s.taxonomies.FindByID(ctx, models.KindCategory, req.Category)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	changes, err := s.media.Resolve(ctx, MediaSet{}, files, Naming{
		ProductName:  name,
		CategoryName: category.Name,
	})
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:                 primitive.NewObjectID(),
		Name:               name,
		Img:                changes.URLs[SlotMain],
		Image1:             changes.URLs[SlotImage1],
		Image2:             changes.URLs[SlotImage2],
		Video:              changes.URLs[SlotVideo],
		VideoThumbnail:     changes.VideoThumbnail,
		Category:           req.Category,
		Substructure:       req.Substructure,
		Content:            req.Content,
		Design:             req.Design,
		Subfinish:          req.Subfinish,
		Subsuitable:        req.Subsuitable,
		Vendor:             req.Vendor,
		Groupcode:          req.Groupcode,
		Color:              dedupeIDs(req.Color),
		Motif:              req.Motif,
		Um:                 req.Um,
		Currency:           req.Currency,
		Gsm:                req.Gsm,
		Oz:                 req.Oz,
		Cm:                 req.Cm,
		Inch:               req.Inch,
		Quantity:           req.Quantity,
		ProductDescription: req.ProductDescription,
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := s.products.Insert(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Validation("product with this name already exists")
		}
		return nil, apperrors.Internal(err)
	}

	return s.populate(ctx, product)
}

func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, req ProductUpdateRequest, files map[Slot]Upload) (*ProductDetail, error) {
	current, err := s.products.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("product")
		}
		return nil, apperrors.Internal(err)
	}

	updates := bson.M{}
	name := current.Name
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if len(trimmed) < 2 {
			return nil, apperrors.Validation("name must be at least 2 characters")
		}
		name = trimmed
		updates["name"] = trimmed
	}

	// Only the references present in the patch are validated; the rest were
	// validated when they were written.
	refs := ProductRefs{
		Category:     req.Category,
		Substructure: req.Substructure,
		Content:      req.Content,
		Design:       req.Design,
		Subfinish:    req.Subfinish,
		Subsuitable:  req.Subsuitable,
		Vendor:       req.Vendor,
		Groupcode:    req.Groupcode,
		Color:        req.Color,
		Motif:        req.Motif,
	}
	if err := s.validator.Validate(ctx, refs); err != nil {
		return nil, err
	}

	setRef := func(field string, v *primitive.ObjectID) {
		if v != nil {
			updates[field] = *v
		}
	}
	setRef("category", req.Category)
	setRef("substructure", req.Substructure)
	setRef("content", req.Content)
	setRef("design", req.Design)
	setRef("subfinish", req.Subfinish)
	setRef("subsuitable", req.Subsuitable)
	setRef("vendor", req.Vendor)
	setRef("groupcode", req.Groupcode)
	setRef("motif", req.Motif)
	if req.Color != nil {
		updates["color"] = dedupeIDs(req.Color)
	}

	setStr := func(field string, v *string) {
		// Empty strings are stripped so an update never erases a field.
		if v != nil && strings.TrimSpace(*v) != "" {
			updates[field] = strings.TrimSpace(*v)
		}
	}
	setStr("um", req.Um)
	setStr("currency", req.Currency)
	setStr("productdescription", req.ProductDescription)

	setNum := func(field string, v *float64) {
		if v != nil {
			updates[field] = *v
		}
	}
	setNum("gsm", req.Gsm)
	setNum("oz", req.Oz)
	setNum("cm", req.Cm)
	setNum("inch", req.Inch)
	setNum("quantity", req.Quantity)

	categoryID := current.Category
	if req.Category != nil {
		categoryID = *req.Category
	}
	categoryName := ""
	if category, err := s.taxonomies.FindByID(ctx, models.KindCategory, categoryID); err == nil {
		categoryName = category.Name
	}

	changes, err := s.media.Resolve(ctx, MediaSet{
		Img:            current.Img,
		Image1:         current.Image1,
		Image2:         current.Image2,
		Video:          current.Video,
		VideoThumbnail: current.VideoThumbnail,
	}, files, Naming{ProductName: name, CategoryName: categoryName})
	if err != nil {
		return nil, err
	}

	mediaFields := map[Slot]string{
		SlotMain:   "img",
		SlotImage1: "image1",
		SlotImage2: "image2",
		SlotVideo:  "video",
	}
	for slot, url := range changes.URLs {
		updates[mediaFields[slot]] = url
		if slot == SlotVideo {
			updates["videoThumbnail"] = changes.VideoThumbnail
		}
	}

	if len(updates) == 0 {
		return s.populate(ctx, current)
	}

	updated, err := s.products.Update(ctx, id, updates)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("product")
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Validation("product with this name already exists")
		}
		return nil, apperrors.Internal(err)
	}

	// The record now points at the new assets; the old ones are safe to
	// drop. Failures leave orphaned remote assets, never a broken record.
	s.cleanupAssets(ctx, changes.Superseded)

	return s.populate(ctx, updated)
}

func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.guard.Check(ctx, "product", id); err != nil {
		return err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return apperrors.NotFound("product")
		}
		return apperrors.Internal(err)
	}

	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return apperrors.Internal(err)
	}
	if !deleted {
		return apperrors.NotFound("product")
	}

	var assets []SupersededAsset
	for url, kind := range map[string]AssetKind{
		product.Img:    AssetImage,
		product.Image1: AssetImage,
		product.Image2: AssetImage,
		product.Video:  AssetVideo,
	} {
		if url == "" {
			continue
		}
		if publicID := PublicIDFromURL(url); publicID != "" {
			assets = append(assets, SupersededAsset{PublicID: publicID, Kind: kind})
		}
	}
	s.cleanupAssets(ctx, assets)

	return nil
}

// cleanupAssets deletes assets best-effort after a successful write. An
// orphaned remote asset is an acceptable degraded state, so failures are
// logged and swallowed.
func (s *ProductService) cleanupAssets(ctx context.Context, assets []SupersededAsset) {
	for _, a := range assets {
		if err := s.store.Delete(ctx, a.PublicID, a.Kind); err != nil {
			zap.L().Warn("Failed to delete superseded asset",
				zap.String("public_id", a.PublicID),
				zap.Error(err),
			)
		}
	}
}

func (s *ProductService) GetByID(ctx context.Context, id primitive.ObjectID) (*ProductDetail, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("product")
		}
		return nil, apperrors.Internal(err)
	}
	return s.populate(ctx, product)
}

// GetBySlug resolves an SEO slug to its product and returns it populated.
func (s *ProductService) GetBySlug(ctx context.Context, slugValue string) (*ProductDetail, error) {
	seo, err := s.seos.FindBySlug(ctx, slugValue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("product")
		}
		return nil, apperrors.Internal(err)
	}
	return s.GetByID(ctx, seo.Product)
}

func (s *ProductService) List(ctx context.Context, limit, skip int64) ([]*ProductDetail, error) {
	products, err := s.products.FindAll(ctx, limit, skip)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.populateAll(ctx, products)
}

func (s *ProductService) Search(ctx context.Context, query string) ([]*models.Product, error) {
	products, err := s.products.SearchByName(ctx, query)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return products, nil
}

// ListByReference returns products whose given reference field holds id.
func (s *ProductService) ListByReference(ctx context.Context, field string, id primitive.ObjectID) ([]*models.Product, error) {
	products, err := s.products.FindByReference(ctx, field, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return products, nil
}

// ListByRange returns products whose numeric field is within 15% of value.
func (s *ProductService) ListByRange(ctx context.Context, field string, value float64) ([]*models.Product, error) {
	spread := value * 0.15
	products, err := s.products.FindByRange(ctx, field, value-spread, value+spread)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return products, nil
}

func (s *ProductService) populateAll(ctx context.Context, products []*models.Product) ([]*ProductDetail, error) {
	details := make([]*ProductDetail, 0, len(products))
	for _, p := range products {
		d, err := s.populate(ctx, p)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

// populate expands every reference field to an {id, name} pair.
func (s *ProductService) populate(ctx context.Context, p *models.Product) (*ProductDetail, error) {
	detail := &ProductDetail{
		ID:                 p.ID,
		Name:               p.Name,
		Img:                p.Img,
		Image1:             p.Image1,
		Image2:             p.Image2,
		Video:              p.Video,
		VideoThumbnail:     p.VideoThumbnail,
		Um:                 p.Um,
		Currency:           p.Currency,
		Gsm:                p.Gsm,
		Oz:                 p.Oz,
		Cm:                 p.Cm,
		Inch:               p.Inch,
		Quantity:           p.Quantity,
		ProductDescription: p.ProductDescription,
	}

	singles := []struct {
		kind models.TaxonomyKind
		id   primitive.ObjectID
		dst  *RefName
	}{
		{models.KindCategory, p.Category, &detail.Category},
		{models.KindSubstructure, p.Substructure, &detail.Substructure},
		{models.KindContent, p.Content, &detail.Content},
		{models.KindDesign, p.Design, &detail.Design},
		{models.KindSubfinish, p.Subfinish, &detail.Subfinish},
		{models.KindSubsuitable, p.Subsuitable, &detail.Subsuitable},
		{models.KindVendor, p.Vendor, &detail.Vendor},
		{models.KindGroupcode, p.Groupcode, &detail.Groupcode},
	}
	for _, ref := range singles {
		ref.dst.ID = ref.id
		if entity, err := s.taxonomies.FindByID(ctx, ref.kind, ref.id); err == nil {
			ref.dst.Name = entity.Name
		}
	}

	if p.Motif != nil {
		motif := RefName{ID: *p.Motif}
		if entity, err := s.taxonomies.FindByID(ctx, models.KindMotif, *p.Motif); err == nil {
			motif.Name = entity.Name
		}
		detail.Motif = &motif
	}

	colors, err := s.taxonomies.FindByIDs(ctx, models.KindColor, p.Color)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	names := make(map[primitive.ObjectID]string, len(colors))
	for _, c := range colors {
		names[c.ID] = c.Name
	}
	for _, id := range p.Color {
		detail.Color = append(detail.Color, RefName{ID: id, Name: names[id]})
	}

	return detail, nil
}
