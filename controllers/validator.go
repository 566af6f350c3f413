package controllers

import (
	"net/http"
	"strconv"
	"strings"

	apperrors "catalog-service/common/errors"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Upload slots as they appear in multipart form field names. The main image
// arrives under "file", matching the public API shape.
var slotFields = map[services.Slot]string{
	services.SlotMain:   "file",
	services.SlotImage1: "image1",
	services.SlotImage2: "image2",
	services.SlotVideo:  "video",
}

// CreateProductForm is the multipart field shape for product creation.
type CreateProductForm struct {
	Name         string `form:"name" validate:"required,min=2"`
	Category     string `form:"category" validate:"required"`
	Substructure string `form:"substructure" validate:"required"`
	Content      string `form:"content" validate:"required"`
	Design       string `form:"design" validate:"required"`
	Subfinish    string `form:"subfinish" validate:"required"`
	Subsuitable  string `form:"subsuitable" validate:"required"`
	Vendor       string `form:"vendor" validate:"required"`
	Groupcode    string `form:"groupcode" validate:"required"`
	Motif        string `form:"motif"`

	Um                 string `form:"um"`
	Currency           string `form:"currency"`
	Gsm                string `form:"gsm"`
	Oz                 string `form:"oz"`
	Cm                 string `form:"cm"`
	Inch               string `form:"inch"`
	Quantity           string `form:"quantity"`
	ProductDescription string `form:"productdescription"`
}

// RequestValidator parses and validates inbound payloads before they reach
// the pipeline. Only typed ObjectIDs cross the controller boundary.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(),
	}
}

// ParseCreateProduct turns a multipart request into a typed create request
// plus the uploads per slot. Callers must invoke the returned closer.
func (rv *RequestValidator) ParseCreateProduct(c *gin.Context) (services.ProductCreateRequest, map[services.Slot]services.Upload, func(), error) {
	var form CreateProductForm
	if err := c.ShouldBind(&form); err != nil {
		return services.ProductCreateRequest{}, nil, nil, apperrors.Validation("invalid form data")
	}
	if err := rv.validate.Struct(&form); err != nil {
		return services.ProductCreateRequest{}, nil, nil, apperrors.Validation(err.Error())
	}

	req := services.ProductCreateRequest{
		Name:               strings.TrimSpace(form.Name),
		Um:                 form.Um,
		Currency:           form.Currency,
		ProductDescription: form.ProductDescription,
	}

	refs := []struct {
		field string
		raw   string
		dst   *primitive.ObjectID
	}{
		{"category", form.Category, &req.Category},
		{"substructure", form.Substructure, &req.Substructure},
		{"content", form.Content, &req.Content},
		{"design", form.Design, &req.Design},
		{"subfinish", form.Subfinish, &req.Subfinish},
		{"subsuitable", form.Subsuitable, &req.Subsuitable},
		{"vendor", form.Vendor, &req.Vendor},
		{"groupcode", form.Groupcode, &req.Groupcode},
	}
	for _, ref := range refs {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(ref.raw))
		if err != nil {
			return services.ProductCreateRequest{}, nil, nil, apperrors.Validation(ref.field + " must be a valid id")
		}
		*ref.dst = id
	}

	if form.Motif != "" {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(form.Motif))
		if err != nil {
			return services.ProductCreateRequest{}, nil, nil, apperrors.Validation("motif must be a valid id")
		}
		req.Motif = &id
	}

	colors, err := parseColorValues(c)
	if err != nil {
		return services.ProductCreateRequest{}, nil, nil, err
	}
	if len(colors) == 0 {
		return services.ProductCreateRequest{}, nil, nil, apperrors.Validation("at least one color is required")
	}
	req.Color = colors

	nums := []struct {
		field string
		raw   string
		dst   **float64
	}{
		{"gsm", form.Gsm, &req.Gsm},
		{"oz", form.Oz, &req.Oz},
		{"cm", form.Cm, &req.Cm},
		{"inch", form.Inch, &req.Inch},
		{"quantity", form.Quantity, &req.Quantity},
	}
	for _, n := range nums {
		v, err := parseOptionalNumber(n.field, n.raw)
		if err != nil {
			return services.ProductCreateRequest{}, nil, nil, err
		}
		*n.dst = v
	}

	files, closer, err := collectUploads(c)
	if err != nil {
		return services.ProductCreateRequest{}, nil, nil, err
	}
	return req, files, closer, nil
}

// ParseUpdateProduct builds a partial update request; only fields present in
// the form end up in the patch.
func (rv *RequestValidator) ParseUpdateProduct(c *gin.Context) (services.ProductUpdateRequest, map[services.Slot]services.Upload, func(), error) {
	var req services.ProductUpdateRequest

	if v, ok := c.GetPostForm("name"); ok {
		req.Name = &v
	}

	refs := []struct {
		field string
		dst   **primitive.ObjectID
	}{
		{"category", &req.Category},
		{"substructure", &req.Substructure},
		{"content", &req.Content},
		{"design", &req.Design},
		{"subfinish", &req.Subfinish},
		{"subsuitable", &req.Subsuitable},
		{"vendor", &req.Vendor},
		{"groupcode", &req.Groupcode},
		{"motif", &req.Motif},
	}
	for _, ref := range refs {
		raw, ok := c.GetPostForm(ref.field)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
		if err != nil {
			return services.ProductUpdateRequest{}, nil, nil, apperrors.Validation(ref.field + " must be a valid id")
		}
		*ref.dst = &id
	}

	colors, err := parseColorValues(c)
	if err != nil {
		return services.ProductUpdateRequest{}, nil, nil, err
	}
	if colors != nil {
		req.Color = colors
	}

	strs := []struct {
		field string
		dst   **string
	}{
		{"um", &req.Um},
		{"currency", &req.Currency},
		{"productdescription", &req.ProductDescription},
	}
	for _, s := range strs {
		if v, ok := c.GetPostForm(s.field); ok {
			*s.dst = &v
		}
	}

	nums := []struct {
		field string
		dst   **float64
	}{
		{"gsm", &req.Gsm},
		{"oz", &req.Oz},
		{"cm", &req.Cm},
		{"inch", &req.Inch},
		{"quantity", &req.Quantity},
	}
	for _, n := range nums {
		raw, ok := c.GetPostForm(n.field)
		if !ok {
			continue
		}
		v, err := parseOptionalNumber(n.field, raw)
		if err != nil {
			return services.ProductUpdateRequest{}, nil, nil, err
		}
		*n.dst = v
	}

	files, closer, err := collectUploads(c)
	if err != nil {
		return services.ProductUpdateRequest{}, nil, nil, err
	}
	return req, files, closer, nil
}

// parseColorValues accepts both the "color" and legacy "color[]" form field
// names, filters empties, and parses the ids. A nil result means the field
// was absent entirely.
func parseColorValues(c *gin.Context) ([]primitive.ObjectID, error) {
	raw := c.PostFormArray("color")
	if len(raw) == 0 {
		raw = c.PostFormArray("color[]")
	}
	if len(raw) == 0 {
		return nil, nil
	}

	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return nil, apperrors.Validation("each color must be a valid id")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseOptionalNumber(field, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.Validation("invalid " + field + " value")
	}
	return &v, nil
}

// collectUploads opens every present slot file. The returned closer releases
// the underlying multipart readers.
func collectUploads(c *gin.Context) (map[services.Slot]services.Upload, func(), error) {
	files := make(map[services.Slot]services.Upload)
	var closers []func() error

	closeAll := func() {
		for _, cl := range closers {
			_ = cl()
		}
	}

	for slot, field := range slotFields {
		fh, err := c.FormFile(field)
		if err != nil {
			continue // slot not present
		}
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, nil, apperrors.Validation("failed to read uploaded file " + field)
		}
		closers = append(closers, f.Close)
		files[slot] = services.Upload{
			Filename: fh.Filename,
			Size:     fh.Size,
			Content:  f,
		}
	}
	return files, closeAll, nil
}

// ParsePagination validates limit/page query parameters.
func (rv *RequestValidator) ParsePagination(c *gin.Context, defaultLimit int64) (limit, skip int64, err error) {
	limit = defaultLimit
	if raw := c.Query("limit"); raw != "" {
		v, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil || v < 1 {
			return 0, 0, apperrors.Validation("invalid limit")
		}
		limit = v
	}
	page := int64(1)
	if raw := c.Query("page"); raw != "" {
		v, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil || v < 1 {
			return 0, 0, apperrors.Validation("invalid page number")
		}
		page = v
	}
	return limit, (page - 1) * limit, nil
}

// respondError writes a typed application error as JSON.
func respondError(c *gin.Context, err error) {
	e := apperrors.AsError(err)
	body := gin.H{
		"success": false,
		"message": e.Message,
		"kind":    e.Kind,
	}
	if len(e.Fields) > 0 {
		body["invalidFields"] = e.Fields
	}
	c.JSON(e.Code, body)
}

// parseIDParam parses the :id route parameter.
func parseIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id format"})
		return primitive.NilObjectID, false
	}
	return id, true
}
