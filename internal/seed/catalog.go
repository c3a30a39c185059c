package seed

import (
	"github.com/lib/pq"
	"github.com/pariney/saree-storefront/pkg/db/models"
	"github.com/shopspring/decimal"
)

const freeSize = "Free Size"

// Catalog is the reference data written by Apply.
type Catalog struct {
	Categories []models.Category
	Slides     []models.HeroSlide
	Products   []models.Product
}

// LaunchCatalog returns the categories, banner slides and products the
// storefront opens with.
func LaunchCatalog() Catalog {
	return Catalog{
		Categories: []models.Category{
			{ID: "banarasi", Name: "Banarasi", Image: "/frames/ezgif-frame-010.jpg", Count: 248},
			{ID: "kanjivaram", Name: "Kanjivaram", Image: "/frames/ezgif-frame-030.jpg", Count: 186},
			{ID: "patola", Name: "Patola", Image: "/frames/ezgif-frame-050.jpg", Count: 94},
			{ID: "chanderi", Name: "Chanderi", Image: "/frames/ezgif-frame-060.jpg", Count: 167},
			{ID: "tussar", Name: "Tussar Silk", Image: "/frames/ezgif-frame-070.jpg", Count: 132},
			{ID: "organza", Name: "Organza", Image: "/frames/ezgif-frame-080.jpg", Count: 78},
		},
		Slides: []models.HeroSlide{
			{
				ID:       1,
				Image:    "/frames/ezgif-frame-010.jpg",
				Tag:      "Heritage Collection",
				Title:    "The Royal Banarasi Edit",
				Subtitle: "Handwoven masterpieces featuring real gold zari work.",
				Author:   "Pariney Weavers",
				Time:     "10 min read",
			},
			{
				ID:       2,
				Image:    "/frames/ezgif-frame-050.jpg",
				Tag:      "New Arrival",
				Title:    "Patola: The King of Silks",
				Subtitle: "Double Ikat weaves that take six months to craft.",
				Author:   "Gujarat Artisans",
				Time:     "8 min read",
			},
			{
				ID:       3,
				Image:    "/frames/ezgif-frame-030.jpg",
				Tag:      "Wedding Edit",
				Title:    "Bridal Kanjivarams",
				Subtitle: "Timeless silks for your most special moment.",
				Author:   "Kanchipuram Guild",
				Time:     "12 min read",
			},
		},
		Products: []models.Product{
			product(1, "Banarasi Silk Saree with Gold Zari Border", "Pariney Heritage", 15999, 24999, 36,
				"photo-1610189012906-47833cc1ac20", "4.6", 342, "BESTSELLER", "Banarasi", "Red", "Maroon", "Purple"),
			product(2, "Kanjivaram Pure Silk Temple Border Saree", "Pariney Royal", 22499, 34999, 36,
				"photo-1617627143750-d86bc21e42bb", "4.8", 528, "TOP RATED", "Kanjivaram", "Gold", "Green", "Blue"),
			product(3, "Pure Patola Double Ikat Handloom Saree", "Pariney Artisan", 28999, 45000, 36,
				"photo-1583391726247-bd7e7740e6c7", "4.9", 127, "EXCLUSIVE", "Patola", "Red", "Yellow", "Green"),
			product(4, "Chanderi Silk Cotton Floral Woven Saree", "Pariney Weaves", 8999, 14999, 40,
				"photo-1596236569689-d42bc222dc6f", "4.4", 891, "", "Chanderi", "Peach", "Sky Blue", "Mint"),
			product(5, "Tussar Silk Handpainted Madhubani Saree", "Pariney Artisan", 12499, 19999, 38,
				"photo-1595981267035-7b04ca84a82d", "4.5", 256, "", "Tussar", "Beige", "Cream", "Natural"),
			product(6, "Organza Saree with Embroidered Border", "Pariney Heritage", 11499, 17999, 36,
				"photo-1563170351-be82bc888aa4", "4.3", 412, "NEW ARRIVAL", "Wedding Edit", "Lavender", "Rose", "Ivory"),
			product(7, "Banarasi Georgette Lightweight Party Saree", "Pariney Royal", 9499, 15999, 41,
				"photo-1621644827725-d7fb9dca4150", "4.2", 673, "", "Banarasi", "Wine", "Teal", "Coral"),
			product(8, "Pure Silk Gadwal Saree with Kuttu Border", "Pariney Weaves", 18999, 28999, 34,
				"photo-1601777093228-5e263721345d", "4.7", 198, "PREMIUM", "New Drops", "Magenta", "Navy", "Emerald"),
		},
	}
}

func product(id int64, name, brand string, price, original int64, discount int, photo, rating string, reviews int, tag, category string, colors ...string) models.Product {
	p := models.Product{
		ID:            id,
		Name:          name,
		Brand:         brand,
		Price:         price,
		OriginalPrice: original,
		Discount:      discount,
		Image:         "https://images.unsplash.com/" + photo + "?auto=format&fit=crop&q=80&w=1000",
		Rating:        decimal.RequireFromString(rating),
		Reviews:       reviews,
		Sizes:         pq.StringArray{freeSize},
		Colors:        pq.StringArray(colors),
		Category:      category,
	}
	if tag != "" {
		p.Tag = &tag
	}
	return p
}
