package catalog

import (
	"github.com/unbound-force/dermis/internal/taxonomy"
)

func rating(r float64) *float64 { return &r }

func good(name, purpose string) taxonomy.Ingredient {
	return taxonomy.Ingredient{Name: name, Purpose: purpose, Beneficial: true}
}

func both() []taxonomy.TimeOfDay    { return []taxonomy.TimeOfDay{taxonomy.Morning, taxonomy.Evening} }
func morning() []taxonomy.TimeOfDay { return []taxonomy.TimeOfDay{taxonomy.Morning} }
func evening() []taxonomy.TimeOfDay { return []taxonomy.TimeOfDay{taxonomy.Evening} }

// SampleProducts returns the starter collection. Each call returns a
// fresh copy.
func SampleProducts() []taxonomy.Product {
	return []taxonomy.Product{
		{
			ID:          "1",
			Name:        "Hydrating Facial Cleanser",
			Brand:       "CeraVe",
			Category:    taxonomy.Cleanser,
			ImageURL:    "https://images.unsplash.com/photo-1556229010-6c3f2c9ca5f8?w=500&auto=format&fit=crop",
			Description: "Gentle, hydrating cleanser for normal to dry skin",
			Ingredients: []taxonomy.Ingredient{
				good("Ceramides", "Restore skin barrier"),
				good("Hyaluronic Acid", "Hydration"),
				good("Glycerin", "Moisturizing"),
			},
			Routines: both(),
			Rating:   rating(4.5),
		},
		{
			ID:          "2",
			Name:        "Vitamin C Serum",
			Brand:       "Timeless",
			Category:    taxonomy.Serum,
			ImageURL:    "https://images.unsplash.com/photo-1620916566398-39f1143ab7be?w=500&auto=format&fit=crop",
			Description: "Brightening and anti-aging serum with 20% Vitamin C",
			Ingredients: []taxonomy.Ingredient{
				good("Vitamin C (L-Ascorbic Acid)", "Antioxidant, brightening"),
				good("Vitamin E", "Antioxidant"),
				good("Ferulic Acid", "Enhances effectiveness of vitamins C and E"),
			},
			Routines: morning(),
			Rating:   rating(4.7),
		},
		{
			ID:          "3",
			Name:        "Daily Moisturizing Lotion",
			Brand:       "Cetaphil",
			Category:    taxonomy.Moisturizer,
			ImageURL:    "https://images.unsplash.com/photo-1611080626919-7cf5a9dbab12?w=500&auto=format&fit=crop",
			Description: "Lightweight moisturizer for all skin types",
			Ingredients: []taxonomy.Ingredient{
				good("Glycerin", "Moisturizing"),
				good("Vitamin E", "Antioxidant"),
				good("Dimethicone", "Skin conditioning"),
			},
			Routines: both(),
			Rating:   rating(4.2),
		},
		{
			ID:          "4",
			Name:        "Ultra Facial Sunscreen SPF 50",
			Brand:       "Kiehl's",
			Category:    taxonomy.Sunscreen,
			ImageURL:    "https://images.unsplash.com/photo-1556227834-09f1de5c1856?w=500&auto=format&fit=crop",
			Description: "Lightweight daily sunscreen with broad spectrum protection",
			Ingredients: []taxonomy.Ingredient{
				good("Avobenzone", "UVA protection"),
				good("Octisalate", "UVB protection"),
				{Name: "Fragrance", Purpose: "Scent", Concern: "Potential irritant"},
			},
			Routines: morning(),
			Rating:   rating(4.4),
		},
		{
			ID:          "5",
			Name:        "Retinol Serum",
			Brand:       "The Ordinary",
			Category:    taxonomy.Serum,
			ImageURL:    "https://images.unsplash.com/photo-1620655249102-de90f1f22415?w=500&auto=format&fit=crop",
			Description: "Anti-aging serum with 1% retinol",
			Ingredients: []taxonomy.Ingredient{
				{Name: "Retinol", Purpose: "Anti-aging", Concern: "Can cause irritation", Beneficial: true},
				good("Squalane", "Moisturizing"),
				good("Hyaluronic Acid", "Hydration"),
			},
			Routines: evening(),
			Rating:   rating(4.6),
		},
	}
}

// Curated returns the curated catalog. Each call returns a fresh copy.
func Curated() []taxonomy.Product {
	return []taxonomy.Product{
		{
			ID:          "catalog-1",
			Name:        "InstaFacial® Collection Infusion",
			Brand:       "Dr. Diamond's Metacine",
			Category:    taxonomy.Treatment,
			Description: "Premium facial infusion treatment",
			Ingredients: []taxonomy.Ingredient{
				good("Hyaluronic Acid", "Hydration"),
				good("Peptides", "Anti-aging"),
			},
			Routines: evening(),
			Rating:   rating(4.8),
		},
		{
			ID:          "catalog-2",
			Name:        "Restorative Lip Balm",
			Brand:       "Reflekt",
			Category:    taxonomy.Treatment,
			Description: "Nourishing and repairing lip treatment",
			Ingredients: []taxonomy.Ingredient{
				good("Shea Butter", "Moisturizing"),
				good("Vitamin E", "Antioxidant"),
			},
			Routines: both(),
			Rating:   rating(4.5),
		},
		{
			ID:          "catalog-3",
			Name:        "Retinol Revolution Set",
			Brand:       "Skin Design London",
			Category:    taxonomy.Treatment,
			Description: "Complete retinol treatment system",
			Ingredients: []taxonomy.Ingredient{
				{Name: "Retinol", Purpose: "Anti-aging", Concern: "Can cause irritation", Beneficial: true},
				good("Niacinamide", "Brightening"),
			},
			Routines: evening(),
			Rating:   rating(4.7),
		},
		{
			ID:          "catalog-4",
			Name:        "Firming Eye Treatment",
			Brand:       "REOME",
			Category:    taxonomy.Treatment,
			Description: "Targeted treatment for eye area",
			Ingredients: []taxonomy.Ingredient{
				good("Peptides", "Firming"),
				good("Caffeine", "Reduces puffiness"),
			},
			Routines: both(),
			Rating:   rating(4.6),
		},
		{
			ID:          "catalog-5",
			Name:        "Mixturizer: Clear Base Moisturizer",
			Brand:       "Jillian Dempsey",
			Category:    taxonomy.Moisturizer,
			Description: "Lightweight customizable moisturizer",
			Ingredients: []taxonomy.Ingredient{
				good("Squalane", "Moisturizing"),
				good("Glycerin", "Hydrating"),
			},
			Routines: both(),
			Rating:   rating(4.4),
		},
		{
			ID:          "catalog-6",
			Name:        "Clean Reveal Brightening Glycolic + PHA Gel",
			Brand:       "epi.logic",
			Category:    taxonomy.Treatment,
			Description: "Gentle exfoliating treatment gel",
			Ingredients: []taxonomy.Ingredient{
				{Name: "Glycolic Acid", Purpose: "Exfoliating", Concern: "Can cause sensitivity", Beneficial: true},
				good("PHAs", "Gentle exfoliation"),
			},
			Routines: evening(),
			Rating:   rating(4.3),
		},
		{
			ID:          "catalog-7",
			Name:        "Luminous Cleansing Elixir",
			Brand:       "Retrouvé",
			Category:    taxonomy.Cleanser,
			Description: "Luxurious cleansing treatment",
			Ingredients: []taxonomy.Ingredient{
				good("Vitamin C", "Brightening"),
				good("Jojoba Oil", "Moisturizing"),
			},
			Routines: both(),
			Rating:   rating(4.9),
		},
		{
			ID:          "catalog-8",
			Name:        "Conditioning Toner with Chamomile",
			Brand:       "Retrouvé",
			Category:    taxonomy.Toner,
			Description: "Soothing and hydrating toner",
			Ingredients: []taxonomy.Ingredient{
				good("Chamomile Extract", "Soothing"),
				good("Aloe Vera", "Calming"),
			},
			Routines: both(),
			Rating:   rating(4.5),
		},
		{
			ID:          "catalog-9",
			Name:        "True Calm Rosehip Gel Cleanser",
			Brand:       "epi.logic",
			Category:    taxonomy.Cleanser,
			Description: "Gentle gel cleanser for sensitive skin",
			Ingredients: []taxonomy.Ingredient{
				good("Rosehip Oil", "Nourishing"),
				good("Calendula", "Soothing"),
			},
			Routines: both(),
			Rating:   rating(4.7),
		},
		{
			ID:          "catalog-10",
			Name:        "Rose Gold Illuminating Eye Masks (Set of 8)",
			Brand:       "111SKIN",
			Category:    taxonomy.Mask,
			Description: "Luxury eye treatment masks",
			Ingredients: []taxonomy.Ingredient{
				good("Gold Extract", "Illuminating"),
				good("Vitamin C", "Brightening"),
			},
			Routines: evening(),
			Rating:   rating(4.8),
		},
	}
}
