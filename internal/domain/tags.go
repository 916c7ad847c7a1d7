package domain

import "strings"

// TagCategory groups tags by what they describe. The set is fixed;
// classification is keyword-based over the normalized tag text.
type TagCategory string

const (
	TagCategoryTheme    TagCategory = "theme"
	TagCategoryFeature  TagCategory = "feature"
	TagCategoryJackpot  TagCategory = "jackpot"
	TagCategorySeasonal TagCategory = "seasonal"
	TagCategoryOther    TagCategory = "other"
)

// Tag is a derived entity: a normalized key plus display metadata and a
// usage count computed from the game index.
type Tag struct {
	Key      string      `json:"key"`  // normalized: lowercase, trimmed
	Name     string      `json:"name"` // first display spelling seen
	Count    int         `json:"count"`
	Category TagCategory `json:"category"`
}

// NormalizeTag produces the canonical index key for a tag string.
// Duplicate tags that differ only in case or surrounding whitespace
// collapse to the same key.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Keyword lists used to classify tag text. First category whose keyword
// matches wins; checks run in declaration order.
var tagCategoryKeywords = []struct {
	category TagCategory
	keywords []string
}{
	{TagCategoryJackpot, []string{"jackpot", "progressive", "mega", "grand"}},
	{TagCategorySeasonal, []string{"halloween", "christmas", "easter", "summer", "winter", "holiday"}},
	{TagCategoryFeature, []string{"bonus", "free spins", "megaways", "multiplier", "wild", "scatter", "buy", "respin", "cascading"}},
	{TagCategoryTheme, []string{"egypt", "fruit", "adventure", "mythology", "animal", "space", "pirate", "fantasy", "asian", "retro", "classic"}},
}

// ClassifyTag assigns a category by pattern-matching the normalized tag
// text against the keyword lists. Unmatched tags land in "other".
func ClassifyTag(tag string) TagCategory {
	key := NormalizeTag(tag)
	for _, group := range tagCategoryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(key, kw) {
				return group.category
			}
		}
	}
	return TagCategoryOther
}
