package chat

import (
	"regexp"
	"strings"
)

// The backend interleaves private annotations with the answer text: planning
// blocks the model emits before tool use, and inline tags the UI renders as
// separate surfaces (images, the map). They are stripped before display.
var (
	planBlockPattern  = regexp.MustCompile(`(?s)Plan:.*?(\n\n|$)`)
	imageTagPattern   = regexp.MustCompile(`\[IMAGE:[^\]]+\]`)
	mapTagPattern     = regexp.MustCompile(`\[MAP:[^\]]+\]`)
	imageLabelPattern = regexp.MustCompile(`\[검색 결과 이미지\]\s*`)
)

// FilterContent strips internal annotations from assistant text. It is applied
// to the whole accumulated buffer on every streaming update, not per delta,
// because a tag or planning block may span several deltas. Filtering
// already-filtered text yields the same text.
func FilterContent(text string) string {
	text = planBlockPattern.ReplaceAllString(text, "$1")
	text = imageTagPattern.ReplaceAllString(text, "")
	text = mapTagPattern.ReplaceAllString(text, "")
	text = imageLabelPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// toolDisplayNames maps backend tool identifiers to labels fit for the status
// line and the tools-used chips.
var toolDisplayNames = map[string]string{
	"search_food_by_image":   "Food image search",
	"search_restaurant_info": "Restaurant search",
	"search_recipe_online":   "Recipe search",
	"get_restaurant_reviews": "Review search",
	"get_nutrition_info":     "Nutrition lookup",
}

// ToolDisplayName returns the display label for a backend tool identifier,
// falling back to the identifier itself for unknown tools.
func ToolDisplayName(tool string) string {
	if name, ok := toolDisplayNames[tool]; ok {
		return name
	}
	return tool
}
