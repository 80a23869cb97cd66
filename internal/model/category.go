package model

// Category classifies the cause a donation supports.
type Category string

var (
	CategoryEducation            Category = "Education"
	CategoryHealthcare           Category = "Healthcare"
	CategoryEnvironment          Category = "Environment"
	CategoryDisasterRelief       Category = "Disaster Relief"
	CategoryCommunityDevelopment Category = "Community Development"
	CategoryAnimalWelfare        Category = "Animal Welfare"
	CategoryOther                Category = "Other"
)

// Categories lists every accepted category.
var Categories = []Category{
	CategoryEducation,
	CategoryHealthcare,
	CategoryEnvironment,
	CategoryDisasterRelief,
	CategoryCommunityDevelopment,
	CategoryAnimalWelfare,
	CategoryOther,
}

// Valid reports whether c is an accepted category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
