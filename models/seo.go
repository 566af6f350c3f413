package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Seo holds the per-product SEO metadata. One record per product; the slug
// is unique across all records (sparse unique index).
type Seo struct {
	ID      primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Product primitive.ObjectID `json:"product" bson:"product"`

	PurchasePrice      *float64 `json:"purchasePrice,omitempty" bson:"purchasePrice,omitempty"`
	SalesPrice         *float64 `json:"salesPrice,omitempty" bson:"salesPrice,omitempty"`
	LocationCode       string   `json:"locationCode,omitempty" bson:"locationCode,omitempty"`
	ProductIdentifier  string   `json:"productIdentifier,omitempty" bson:"productIdentifier,omitempty"`
	SKU                string   `json:"sku,omitempty" bson:"sku,omitempty"`
	ProductDescription string   `json:"productdescription,omitempty" bson:"productdescription,omitempty"`
	PopularProduct     bool     `json:"popularproduct" bson:"popularproduct"`
	TopRatedProduct    bool     `json:"topratedproduct" bson:"topratedproduct"`

	Slug         string `json:"slug,omitempty" bson:"slug,omitempty"`
	CanonicalURL string `json:"canonical_url,omitempty" bson:"canonical_url,omitempty"`
	Title        string `json:"title,omitempty" bson:"title,omitempty"`
	Description  string `json:"description,omitempty" bson:"description,omitempty"`
	Keywords     string `json:"keywords,omitempty" bson:"keywords,omitempty"`
	Excerpt      string `json:"excerpt,omitempty" bson:"excerpt,omitempty"`
	Robots       string `json:"robots,omitempty" bson:"robots,omitempty"`

	RatingValue *float64 `json:"rating_value,omitempty" bson:"rating_value,omitempty"`
	RatingCount *int     `json:"rating_count,omitempty" bson:"rating_count,omitempty"`

	OgURL         string `json:"ogUrl,omitempty" bson:"ogUrl,omitempty"`
	OgTitle       string `json:"ogTitle,omitempty" bson:"ogTitle,omitempty"`
	OgDescription string `json:"ogDescription,omitempty" bson:"ogDescription,omitempty"`
	OgType        string `json:"ogType,omitempty" bson:"ogType,omitempty"`
	OgSiteName    string `json:"ogSiteName,omitempty" bson:"ogSiteName,omitempty"`

	TwitterCard        string `json:"twitterCard,omitempty" bson:"twitterCard,omitempty"`
	TwitterSite        string `json:"twitterSite,omitempty" bson:"twitterSite,omitempty"`
	TwitterTitle       string `json:"twitterTitle,omitempty" bson:"twitterTitle,omitempty"`
	TwitterDescription string `json:"twitterDescription,omitempty" bson:"twitterDescription,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
