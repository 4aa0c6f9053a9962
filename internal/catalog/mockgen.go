package catalog

import (
	"fmt"
	"math/rand"
)

const mockCategoryCount = 25

// GenerateMock builds a deterministic demo catalog: 25 categories with
// 10-40 products each, roughly a third of them discounted by 5-35%.
// Products that would have zero stock are excluded, matching the load-time
// rule for real catalogs. The same seed always yields the same catalog.
func GenerateMock(seed int64) ([]Product, []Category) {
	rng := rand.New(rand.NewSource(seed))

	categories := make([]Category, 0, mockCategoryCount)
	var products []Product

	for c := 0; c < mockCategoryCount; c++ {
		category := Category{ID: int64(c + 1), Name: fmt.Sprintf("Категория %d", c+1)}
		categories = append(categories, category)

		productCount := rng.Intn(31) + 10
		for i := 1; i <= productCount; i++ {
			id := int64(c*100 + i)
			basePrice := float64(rng.Intn(10000) + 1000)
			hasDiscount := rng.Float64() > 0.7
			discountPercent := rng.Intn(30) + 5
			stock := int32(rng.Intn(100))
			imageCount := rng.Intn(5) + 1

			images := make([]string, imageCount)
			for img := range images {
				images[img] = gradient(id, img)
			}

			var discountPrice *float64
			if hasDiscount {
				discounted := float64(int(basePrice*(100-float64(discountPercent))/100 + 0.5))
				discountPrice = &discounted
			}

			if stock <= 0 {
				continue
			}
			products = append(products, Product{
				ID:            id,
				Name:          fmt.Sprintf("Товар %d из %s", id, category.Name),
				CategoryID:    category.ID,
				Category:      category.Name,
				Price:         basePrice,
				DiscountPrice: discountPrice,
				Rating:        float64(rng.Intn(51)) / 10,
				Stock:         stock,
				Image:         images[0],
				Images:        images,
				Description: fmt.Sprintf(
					"Подробное описание товара %d. Этот товар относится к категории %s и обладает отличными характеристиками.",
					id, category.Name),
			})
		}
	}
	return products, categories
}

// gradient renders a two-stop placeholder gradient derived from the
// product id, so image references are stable across runs.
func gradient(id int64, imgIndex int) string {
	return fmt.Sprintf("linear-gradient(135deg, %s, %s)",
		gradientColor(id, imgIndex), gradientColor(id+1, imgIndex+1))
}

func gradientColor(id int64, imgIndex int) string {
	hue := (id * int64(imgIndex)) % 360
	saturation := 70 + id%30
	lightness := 50 + int64(imgIndex)%20
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hue, saturation, lightness)
}
