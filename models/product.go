package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is the fixed set of catalog categories.
type Category string

const (
	CategoryShirts      Category = "shirts"
	CategoryTshirts     Category = "tshirts"
	CategoryTrousers    Category = "trousers"
	CategoryAccessories Category = "accessories"
)

// Categories lists every valid category, used for validation and the
// admin histogram.
var Categories = []Category{CategoryShirts, CategoryTshirts, CategoryTrousers, CategoryAccessories}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// SleeveType applies only to shirts and tshirts.
type SleeveType string

const (
	SleeveFull SleeveType = "full-sleeve"
	SleeveHalf SleeveType = "half-sleeve"
	Sleeveless SleeveType = "sleeveless"
)

func (s SleeveType) Valid() bool {
	switch s {
	case SleeveFull, SleeveHalf, Sleeveless:
		return true
	}
	return false
}

// AllowsSleeveType reports whether a category carries a sleeve type.
func (c Category) AllowsSleeveType() bool {
	return c == CategoryShirts || c == CategoryTshirts
}

// Product is a catalog entry. Stock must never go negative; decrements
// go through the repository's conditional update.
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Category    Category           `json:"category" bson:"category"`
	SleeveType  SleeveType         `json:"sleeve_type,omitempty" bson:"sleeve_type,omitempty"`
	Price       float64            `json:"price" bson:"price"`
	Image       string             `json:"image" bson:"image"`
	Description string             `json:"description" bson:"description"`
	Sizes       []string           `json:"sizes" bson:"sizes"`
	Colors      []string           `json:"colors" bson:"colors"`
	Stock       int                `json:"stock" bson:"stock"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// HasSize reports whether size is one of the product's sizes.
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// HasColor reports whether color is one of the product's colors.
func (p *Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}
