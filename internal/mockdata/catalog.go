// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package mockdata

import "github.com/maisonmai/analytics/internal/models"

var (
	referrers     = []string{"", "instagram", "google", "newsletter", "pinterest", "friend"}
	signupMethods = []string{"email", "google", "apple"}
	relationships = []string{"partner", "mother", "father", "sibling", "friend", "colleague", "child"}
	occasions     = []string{"birthday", "anniversary", "christmas", "wedding", "graduation", "housewarming", "thank_you"}
)

func item(id, name, category, shop string) models.RecommendationItem {
	return models.RecommendationItem{
		IdeaID:      id,
		ProductName: name,
		Category:    category,
		ShopName:    shop,
		URL:         "https://partners.maisonmai.example/" + id,
	}
}

// catalog is the pool of ideas the recommendation engine draws from. Some
// items deliberately have no category.
var catalog = []models.RecommendationItem{
	item("idea-001", "Engraved Silver Locket", "jewellery", "Atelier Lune"),
	item("idea-002", "Pearl Drop Earrings", "jewellery", "Atelier Lune"),
	item("idea-003", "Hand-Stamped Name Bracelet", "jewellery", "Petit Bijou"),
	item("idea-004", "Linen Throw, Sage", "home", "Maison Verte"),
	item("idea-005", "Stoneware Pour-Over Set", "home", "Kiln & Co"),
	item("idea-006", "Soy Candle Trio, Fig and Cedar", "home", "Maison Verte"),
	item("idea-007", "First Edition Poetry Collection", "books", "Folio House"),
	item("idea-008", "Illustrated Cookbook", "books", "Folio House"),
	item("idea-009", "Pottery Workshop for Two", "experiences", "Studio Argile"),
	item("idea-010", "Wine Tasting Evening", "experiences", "Cave Saint-Paul"),
	item("idea-011", "Hot Air Balloon Flight", "experiences", "Ciel Ouvert"),
	item("idea-012", "Botanical Face Oil", "beauty", "Herbier"),
	item("idea-013", "Bath Salt Ritual Kit", "beauty", "Herbier"),
	item("idea-014", "Wireless Record Player", "tech", "Sonore"),
	item("idea-015", "Smart Herb Garden", "tech", "Sonore"),
	item("idea-016", "Cashmere Beanie", "fashion", "Fil d'Or"),
	item("idea-017", "Leather Weekender Bag", "fashion", "Fil d'Or"),
	item("idea-018", "Monogrammed Silk Scarf", "fashion", "Petit Bijou"),
	item("idea-019", "Artisan Chocolate Box", "food", "Chocolaterie Roux"),
	item("idea-020", "Olive Oil Tasting Set", "food", "Cave Saint-Paul"),
	item("idea-021", "Mystery Gift Box", "", "Maison Surprise"),
	item("idea-022", "Personalised Star Map", "", "Maison Surprise"),
}
