package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"tastepalette/internal/models/db_models"
)

const menuScanSystemPrompt = `You read photographs of restaurant menus and transcribe them.
Return JSON only: an array of objects with the keys "name", "description", "price" and "category".
"name" is required. Leave out keys you cannot read. No markdown, no commentary.`

const menuScanUserPrompt = `Extract every dish on this menu. Keep the dish names exactly as printed.
Use the section heading as the category when there is one.`

const recommendationSystemPrompt = `You are a food critic who knows the diner's palate well.
You score menu dishes for one diner and answer with JSON only.`

const profileAdjustSystemPrompt = `You maintain a diner's taste profile. After the diner rates a dish you
decide which profile fields should change. Answer with a JSON object that contains only the fields to
update, using the same keys and value types as the profile. Answer {} when nothing should change.`

func indentJSON(v interface{}) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(out)
}

func buildRecommendationPrompt(items []db_models.MenuItem, profile interface{}, mood string) string {
	var b strings.Builder

	b.WriteString("Diner taste profile:\n")
	b.WriteString(indentJSON(profile))
	b.WriteString("\n\nMenu items:\n")
	b.WriteString(indentJSON(items))

	if mood = strings.TrimSpace(mood); mood != "" {
		fmt.Fprintf(&b, "\n\nThe diner's current mood: %s. Let it shift the ranking.", mood)
	}

	b.WriteString(`

Rules:
- Treat dietary restrictions and allergies as hard constraints. Never recommend a dish that breaks them.
- Recommend at least 3 dishes from the menu, best match first.
- "score" is an integer from 0 to 100.
- "reason" is one or two sentences addressed to the diner.

Return JSON only in this shape:
{"recommendations":[{"dishName":"<name from the menu>","score":85,"reason":"..."}]}`)

	return b.String()
}

func buildAdjustPrompt(dish string, rating int, profile interface{}) string {
	return fmt.Sprintf(`The diner rated "%s" %d out of 5.

Current taste profile:
%s

Fields you may change: favoriteDishes, dislikedIngredients, spicePreference (none|mild|medium|hot|very-hot),
tastePreferences (each of sweet, sour, bitter, umami, salty, tangy is dislike|neutral|like), cuisinePreferences.
A high rating should pull the profile toward this dish, a low rating away from it. Make small changes.
Return only the changed fields as JSON.`, dish, rating, indentJSON(profile))
}
