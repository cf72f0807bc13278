package catalog

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

var (
	mockAdjectives = []string{"Crispy", "Smoked", "Spicy", "Golden", "Fresh", "Grilled", "Sweet", "Classic", "Double", "Garden"}
	mockNouns      = []string{"Burger", "Salad", "Wrap", "Taco", "Ramen", "Pizza", "Bowl", "Sandwich", "Pancake", "Smoothie"}
	mockSections   = []string{"Breakfast", "Lunch Specials", "Burgers", "Bowls", "Street Food", "Desserts", "Drinks", "Sides", "Kids Menu", "Chef's Picks"}
)

// Mock generates a deterministic demo catalog. The same seed always yields
// the same catalog, item ids included.
func Mock(categories, itemsPer int, seed int64) *Catalog {
	r := rand.New(rand.NewSource(seed))
	cat := &Catalog{Title: "Demo Store"}
	for i := 0; i < categories; i++ {
		section := mockSections[i%len(mockSections)]
		if i >= len(mockSections) {
			section = fmt.Sprintf("%s %d", section, i/len(mockSections)+1)
		}
		c := Category{
			ID:          fmt.Sprintf("category-%d", i+1),
			Title:       section,
			Description: fmt.Sprintf("Our **%s** selection, %d dishes.", section, itemsPer),
		}
		for j := 0; j < itemsPer; j++ {
			id := uuid.Must(uuid.NewRandomFromReader(r))
			name := mockAdjectives[r.Intn(len(mockAdjectives))] + " " + mockNouns[r.Intn(len(mockNouns))]
			c.Items = append(c.Items, Item{
				ID:          id.String(),
				Title:       name,
				Description: fmt.Sprintf("House %s, made to order.", name),
				ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/300/200", id.String()[:8]),
				Price:       fmt.Sprintf("$%d.%02d", 4+r.Intn(20), r.Intn(100)),
				IsSale:      r.Intn(5) == 0,
			})
		}
		cat.Categories = append(cat.Categories, c)
	}
	return cat
}
