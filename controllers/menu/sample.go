package menuControllers

import (
	"github.com/junaidrashid-git/rivaleats-api/models"
	"github.com/shopspring/decimal"
)

func sampleItem(id, name, description string, section models.MenuSection, tags ...string) models.MenuItem {
	return models.MenuItem{
		ID:          id,
		Name:        name,
		Description: description,
		Section:     section,
		Price:       decimal.NewNullDecimal(decimal.Zero),
		Tags:        tags,
		IsActive:    true,
	}
}

// sampleMenu is served when the menu store is absent or failing.
var sampleMenu = []models.MenuItem{
	sampleItem("sample-b1", "Sunrise Protein Bowl",
		"Herbed eggs, roasted sweet potato, charred peppers, chimichurri drizzle.",
		models.SectionBreakfast, "gluten-free", "high protein"),
	sampleItem("sample-b2", "Granola Crunch Parfait",
		"Vanilla bean yogurt, toasted granola, macerated berries, honey-lime zest.",
		models.SectionBreakfast, "vegetarian"),
	sampleItem("sample-b3", "Smoked Salmon Toast",
		"Seeded sourdough, citrus cream, pickled shallots, capers, micro greens.",
		models.SectionBreakfast, "contains gluten"),
	sampleItem("sample-d1", "Charred Citrus Chicken",
		"Fire-roasted chicken thighs, roasted garlic potatoes, grilled broccolini.",
		models.SectionDinner, "high protein", "dairy free"),
	sampleItem("sample-d2", "Miso Maple Salmon",
		"Seared salmon, sesame ginger greens, coconut jasmine rice, scallion oil.",
		models.SectionDinner, "gluten-free", "omega-3"),
	sampleItem("sample-d3", "Smoked Mushroom Ragu",
		"Rigatoni, roasted mushrooms, tomato confit, basil gremolata, pecorino.",
		models.SectionDinner, "vegetarian"),
}
