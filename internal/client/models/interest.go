package models

// Category groups interests in the catalogue.
type Category string

const (
	CategoryFashion     Category = "Fashion"
	CategoryElectronics Category = "Electronics"
	CategoryHomeGarden  Category = "Home & Garden"
	CategorySports      Category = "Sports & Outdoors"
	CategoryBeauty      Category = "Beauty & Personal Care"
	CategoryBooksMedia  Category = "Books & Media"
	CategoryToysGames   Category = "Toys & Games"
	CategoryFood        Category = "Food & Beverages"
	CategoryHealth      Category = "Health & Wellness"
	CategoryAutomotive  Category = "Automotive"
	CategoryTravel      Category = "Travel & Luggage"
	CategoryJewelry     Category = "Jewelry & Accessories"
	CategoryArtsCrafts  Category = "Arts & Crafts"
	CategoryOffice      Category = "Office Supplies"
	CategoryPetSupplies Category = "Pet Supplies"
	CategoryBabyKids    Category = "Baby & Kids"
)

// Categories lists every Category in display order.
var Categories = []Category{
	CategoryFashion, CategoryElectronics, CategoryHomeGarden, CategorySports,
	CategoryBeauty, CategoryBooksMedia, CategoryToysGames, CategoryFood,
	CategoryHealth, CategoryAutomotive, CategoryTravel, CategoryJewelry,
	CategoryArtsCrafts, CategoryOffice, CategoryPetSupplies, CategoryBabyKids,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Interest is a selectable catalogue item.
type Interest struct {
	ID       string
	Name     string
	Category Category
}
