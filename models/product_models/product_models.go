package product_models

import "errors"

// ErrProductNotFound is returned when a product id is not in the catalog.
var ErrProductNotFound = errors.New("product not found")

// Product is a lawn-care retail product. The catalog is fixed in code; it
// is the authoritative price source when a booking's product subtotal is
// computed.
type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Size        string   `json:"size"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Features    []string `json:"features"`
}

var catalog = []Product{
	{
		ID:          1,
		Name:        "Organic Fertilizer",
		Description: "Premium organic fertilizer for healthy lawn growth. Perfect for spring and fall applications.",
		Price:       29.99,
		Size:        "50lb bag",
		Category:    "Fertilizer",
		Image:       "/static/images/fertilizer.jpg",
		Rating:      4.8,
		Reviews:     156,
		Features:    []string{"100% Organic", "Slow Release", "Pet Safe", "Long Lasting"},
	},
	{
		ID:          2,
		Name:        "Weed Control Plus",
		Description: "Professional-grade weed killer and prevention formula that targets weeds while protecting grass.",
		Price:       45.99,
		Size:        "1 gallon",
		Category:    "Weed Control",
		Image:       "/static/images/weed-control.jpg",
		Rating:      4.6,
		Reviews:     89,
		Features:    []string{"Fast Acting", "Selective Formula", "Weather Resistant", "Professional Grade"},
	},
	{
		ID:          3,
		Name:        "Grass Seed Mix",
		Description: "Premium grass seed blend designed for thick, green lawns that resist drought and disease.",
		Price:       19.99,
		Size:        "10lb bag",
		Category:    "Seeds",
		Image:       "/static/images/grass-seed.jpg",
		Rating:      4.7,
		Reviews:     203,
		Features:    []string{"Drought Resistant", "Fast Germination", "Disease Resistant", "Premium Blend"},
	},
	{
		ID:          4,
		Name:        "Lawn Aerator Tool",
		Description: "Professional-grade manual lawn aerator for improving soil compaction and water absorption.",
		Price:       89.99,
		Size:        "Standard size",
		Category:    "Tools",
		Image:       "/static/images/aerator.jpg",
		Rating:      4.5,
		Reviews:     67,
		Features:    []string{"Durable Steel", "Ergonomic Handle", "Easy Storage", "Professional Quality"},
	},
	{
		ID:          5,
		Name:        "Mulch Premium",
		Description: "Natural wood mulch for garden beds and landscaping. Helps retain moisture and suppress weeds.",
		Price:       12.99,
		Size:        "2 cubic ft",
		Category:    "Mulch",
		Image:       "/static/images/mulch.jpg",
		Rating:      4.4,
		Reviews:     124,
		Features:    []string{"100% Natural", "Weed Suppression", "Moisture Retention", "Color Enhanced"},
	},
	{
		ID:          6,
		Name:        "Irrigation Timer",
		Description: "Smart irrigation timer with weather sensing technology for efficient watering schedules.",
		Price:       149.99,
		Size:        "6-zone",
		Category:    "Irrigation",
		Image:       "/static/images/timer.jpg",
		Rating:      4.9,
		Reviews:     78,
		Features:    []string{"Weather Sensing", "Smart Controls", "6 Zones", "Water Efficient"},
	},
}

// All returns the full product catalog.
func All() []Product {
	out := make([]Product, len(catalog))
	copy(out, catalog)
	return out
}

// GetByID looks up a product in the catalog.
func GetByID(id int) (*Product, error) {
	for i := range catalog {
		if catalog[i].ID == id {
			p := catalog[i]
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}
