package recommendation

// courseCategoryTable maps an education level and degree category to the
// course-category names a candidate course may carry. Combinations outside
// the table are rejected up front.
var courseCategoryTable = map[string]map[string][]string{
	"HigherSecondary": {
		"Engineering": {"Engineering", "Technology", "Computer Applications"},
		"Medical":     {"Medicine", "Nursing", "Pharmacy"},
		"Commerce":    {"Commerce", "Management", "Finance"},
		"Arts":        {"Arts", "Humanities", "Design"},
		"Science":     {"Science", "Computer Applications", "Technology"},
	},
	"Undergraduate": {
		"Engineering": {"Engineering", "Technology"},
		"Medical":     {"Medicine", "Public Health"},
		"Commerce":    {"Management", "Finance", "Commerce"},
		"Arts":        {"Humanities", "Design", "Education"},
		"Science":     {"Science", "Data Science", "Technology"},
	},
	"Postgraduate": {
		"Engineering": {"Engineering", "Research"},
		"Medical":     {"Medicine", "Research"},
		"Commerce":    {"Management", "Research"},
		"Arts":        {"Humanities", "Research"},
		"Science":     {"Science", "Research", "Data Science"},
	},
}

// CategoriesFor resolves the course-category list for the given inputs.
func CategoriesFor(educationLevel, degreeCategory string) ([]string, bool) {
	byDegree, ok := courseCategoryTable[educationLevel]
	if !ok {
		return nil, false
	}
	categories, ok := byDegree[degreeCategory]
	return categories, ok
}
