// Package catalog holds the storefront data model: categories of items,
// loaded once and never mutated afterwards.
package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyID is returned for a category or item without an id.
	ErrEmptyID = errors.New("catalog: empty id")
	// ErrDuplicateID is returned when two categories, or two items of the
	// same category, share an id.
	ErrDuplicateID = errors.New("catalog: duplicate id")
)

// Item is one product card. Display fields are opaque to the renderer's
// virtualization engine.
type Item struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	ImageURL    string `yaml:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Price       string `yaml:"price,omitempty" json:"price,omitempty"`
	IsSale      bool   `yaml:"isSale,omitempty" json:"isSale,omitempty"`
}

// Category is an ordered list of items. Item order is rendering order.
type Category struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Items       []Item `yaml:"items" json:"items"`
}

// Catalog is the whole store.
type Catalog struct {
	Title      string     `yaml:"title,omitempty" json:"title,omitempty"`
	Categories []Category `yaml:"categories" json:"categories"`
}

// ItemCount returns the number of items across all categories.
func (c *Catalog) ItemCount() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Items)
	}
	return n
}

// Category returns the category with the given id.
func (c *Catalog) Category(id string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// Validate checks id uniqueness: category ids across the catalog, item ids
// within their category.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		if cat.ID == "" {
			return fmt.Errorf("%w: category #%d", ErrEmptyID, i)
		}
		if seen[cat.ID] {
			return fmt.Errorf("%w: category %q", ErrDuplicateID, cat.ID)
		}
		seen[cat.ID] = true

		items := make(map[string]bool, len(cat.Items))
		for j, it := range cat.Items {
			if it.ID == "" {
				return fmt.Errorf("%w: item #%d of category %q", ErrEmptyID, j, cat.ID)
			}
			if items[it.ID] {
				return fmt.Errorf("%w: item %q in category %q", ErrDuplicateID, it.ID, cat.ID)
			}
			items[it.ID] = true
		}
	}
	return nil
}
