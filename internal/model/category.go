package model

// Category is a fixed, server-seeded item category.
type Category struct {
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// CategoryOther is the fallback category for uncategorized posts.
const CategoryOther = "Other"

// DefaultCategories are seeded on first run if the table is empty.
var DefaultCategories = []Category{
	{Name: "Electronics", Icon: "📱", Description: "Phones, laptops, tablets, chargers", Color: "blue"},
	{Name: "Documents", Icon: "📄", Description: "ID cards, certificates, books", Color: "yellow"},
	{Name: "Accessories", Icon: "👜", Description: "Bags, wallets, jewelry, watches", Color: "purple"},
	{Name: "Clothing", Icon: "👕", Description: "Clothes, shoes, jackets", Color: "pink"},
	{Name: "Keys", Icon: "🔑", Description: "House keys, car keys, bike keys", Color: "gray"},
	{Name: "Cards", Icon: "💳", Description: "Credit cards, debit cards, ID cards", Color: "green"},
	{Name: "Stationery", Icon: "✏️", Description: "Pens, notebooks, calculators", Color: "orange"},
	{Name: "Sports", Icon: "⚽", Description: "Sports equipment, water bottles", Color: "red"},
	{Name: CategoryOther, Icon: "📦", Description: "Miscellaneous items", Color: "slate"},
}
