package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaxonomyKind names one of the reference tables a product can point at.
type TaxonomyKind string

const (
	KindCategory     TaxonomyKind = "category"
	KindStructure    TaxonomyKind = "structure"
	KindSubstructure TaxonomyKind = "substructure"
	KindContent      TaxonomyKind = "content"
	KindDesign       TaxonomyKind = "design"
	KindFinish       TaxonomyKind = "finish"
	KindSubfinish    TaxonomyKind = "subfinish"
	KindSuitableFor  TaxonomyKind = "suitablefor"
	KindSubsuitable  TaxonomyKind = "subsuitable"
	KindVendor       TaxonomyKind = "vendor"
	KindGroupcode    TaxonomyKind = "groupcode"
	KindColor        TaxonomyKind = "color"
	KindMotif        TaxonomyKind = "motif"
)

// AllTaxonomyKinds lists every taxonomy kind in registration order.
func AllTaxonomyKinds() []TaxonomyKind {
	return []TaxonomyKind{
		KindCategory, KindStructure, KindSubstructure, KindContent,
		KindDesign, KindFinish, KindSubfinish, KindSuitableFor,
		KindSubsuitable, KindVendor, KindGroupcode, KindColor, KindMotif,
	}
}

// Collection returns the mongo collection name for the kind.
func (k TaxonomyKind) Collection() string {
	switch k {
	case KindCategory:
		return "categories"
	case KindFinish:
		return "finishes"
	case KindSubfinish:
		return "subfinishes"
	default:
		return string(k) + "s"
	}
}

// TaxonomyEntity is a named reference-table document. The parent fields are
// populated only for the kinds that carry them: substructure references a
// structure, subfinish a finish, and subsuitable a set of suitablefor ids.
type TaxonomyEntity struct {
	ID          primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name"`
	Structure   *primitive.ObjectID  `json:"structure,omitempty" bson:"structure,omitempty"`
	Finish      *primitive.ObjectID  `json:"finish,omitempty" bson:"finish,omitempty"`
	SuitableFor []primitive.ObjectID `json:"suitablefor,omitempty" bson:"suitablefor,omitempty"`
	CreatedAt   time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at" bson:"updated_at"`
}
