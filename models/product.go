package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog record. Every reference field holds the id of a
// taxonomy document; the storage engine enforces none of them, so writes go
// through the reference validator and deletes through the deletion guard.
type Product struct {
	ID             primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Img            string             `json:"img" bson:"img"`
	Image1         string             `json:"image1,omitempty" bson:"image1,omitempty"`
	Image2         string             `json:"image2,omitempty" bson:"image2,omitempty"`
	Video          string             `json:"video,omitempty" bson:"video,omitempty"`
	VideoThumbnail string             `json:"videoThumbnail,omitempty" bson:"videoThumbnail,omitempty"`

	Category     primitive.ObjectID   `json:"category" bson:"category"`
	Substructure primitive.ObjectID   `json:"substructure" bson:"substructure"`
	Content      primitive.ObjectID   `json:"content" bson:"content"`
	Design       primitive.ObjectID   `json:"design" bson:"design"`
	Subfinish    primitive.ObjectID   `json:"subfinish" bson:"subfinish"`
	Subsuitable  primitive.ObjectID   `json:"subsuitable" bson:"subsuitable"`
	Vendor       primitive.ObjectID   `json:"vendor" bson:"vendor"`
	Groupcode    primitive.ObjectID   `json:"groupcode" bson:"groupcode"`
	Color        []primitive.ObjectID `json:"color" bson:"color"`
	Motif        *primitive.ObjectID  `json:"motif,omitempty" bson:"motif,omitempty"`

	Um                 string   `json:"um,omitempty" bson:"um,omitempty"`
	Currency           string   `json:"currency,omitempty" bson:"currency,omitempty"`
	Gsm                *float64 `json:"gsm,omitempty" bson:"gsm,omitempty"`
	Oz                 *float64 `json:"oz,omitempty" bson:"oz,omitempty"`
	Cm                 *float64 `json:"cm,omitempty" bson:"cm,omitempty"`
	Inch               *float64 `json:"inch,omitempty" bson:"inch,omitempty"`
	Quantity           *float64 `json:"quantity,omitempty" bson:"quantity,omitempty"`
	ProductDescription string   `json:"productdescription,omitempty" bson:"productdescription,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
