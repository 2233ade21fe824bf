// Package interests holds the product-interest catalogue shown after
// onboarding, its pagination and the per-user selection.
package interests

import (
	"fmt"
	"math/rand"

	"github.com/dmitrijs2005/onboard/internal/client/models"
	"github.com/google/uuid"
)

// CatalogueSize is the number of generated interests.
const CatalogueSize = 100

var (
	adjectives = []string{
		"Small", "Ergonomic", "Rustic", "Intelligent", "Gorgeous", "Incredible",
		"Fantastic", "Practical", "Sleek", "Awesome", "Generic", "Handcrafted",
		"Handmade", "Licensed", "Refined", "Unbranded", "Tasty", "Modern",
		"Elegant", "Luxurious", "Bespoke", "Recycled", "Oriental", "Electronic",
	}
	materials = []string{
		"Steel", "Wooden", "Concrete", "Plastic", "Cotton", "Granite", "Rubber",
		"Metal", "Soft", "Fresh", "Frozen", "Bronze", "Silk", "Marble", "Gold",
		"Ceramic",
	}
	products = []string{
		"Chair", "Car", "Computer", "Keyboard", "Mouse", "Bike", "Ball", "Gloves",
		"Pants", "Shirt", "Table", "Shoes", "Hat", "Towels", "Soap", "Tuna",
		"Chicken", "Fish", "Cheese", "Bacon", "Pizza", "Salad", "Sausages", "Chips",
	}
)

// Catalogue is an immutable, ordered list of interests.
type Catalogue struct {
	items []models.Interest
}

// Generate builds a catalogue of n interests. The same seed always yields
// the same ids, names and categories.
func Generate(n int, seed int64) (*Catalogue, error) {
	rng := rand.New(rand.NewSource(seed))

	c := &Catalogue{items: make([]models.Interest, 0, n)}
	for i := 0; i < n; i++ {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, fmt.Errorf("generate interest id: %w", err)
		}
		name := adjectives[rng.Intn(len(adjectives))] + " " +
			materials[rng.Intn(len(materials))] + " " +
			products[rng.Intn(len(products))]
		it := models.Interest{
			ID:       id.String(),
			Name:     name,
			Category: models.Categories[rng.Intn(len(models.Categories))],
		}
		c.items = append(c.items, it)
	}
	return c, nil
}

// Page returns the items of 1-based page p at PageSize.
func (c *Catalogue) Page(p int) []models.Interest {
	return Paginate(c.items, p, PageSize)
}

// TotalPages is the page count of the catalogue at PageSize.
func (c *Catalogue) TotalPages() int { return TotalPages(len(c.items), PageSize) }
