package domain

import (
	"fmt"
	"slices"
)

// Category is one of the fixed campaign category codes
type Category string

const (
	CategoryTech      Category = "tech"
	CategoryEducation Category = "edu"
	CategoryHealth    Category = "health"
	CategoryCommunity Category = "community"
	CategoryEnv       Category = "env"
	CategoryArts      Category = "arts"
	CategoryEmergency Category = "emergency"
)

var categoryLabels = map[Category]string{
	CategoryTech:      "Technology",
	CategoryEducation: "Education",
	CategoryHealth:    "Health",
	CategoryCommunity: "Community",
	CategoryEnv:       "Environment",
	CategoryArts:      "Arts & Culture",
	CategoryEmergency: "Emergency",
}

// Categories returns all category codes in display order
func Categories() []Category {
	return []Category{
		CategoryTech,
		CategoryEducation,
		CategoryHealth,
		CategoryCommunity,
		CategoryEnv,
		CategoryArts,
		CategoryEmergency,
	}
}

// Label returns the human label of the category, or the raw code if unknown
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Valid reports whether c is a known category code
func (c Category) Valid() bool {
	return slices.Contains(Categories(), c)
}

// ParseCategory validates a category code
func ParseCategory(code string) (Category, error) {
	c := Category(code)
	if !c.Valid() {
		return "", &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", code)}
	}
	return c, nil
}
