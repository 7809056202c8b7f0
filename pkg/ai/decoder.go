package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"tastepalette/internal/models/db_models"
	"tastepalette/pkg/utils"
)

// ProfilePatch holds only the taste profile fields a model wants to change.
type ProfilePatch map[string]json.RawMessage

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", utils.ErrModelResponse, fmt.Sprintf(format, args...))
}

// StripCodeFences removes markdown code fences models like to wrap JSON in.
func StripCodeFences(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	return strings.TrimSpace(response)
}

type rawMenuItem struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	Category    string          `json:"category"`
}

// DecodeMenuItems accepts a JSON array of menu items with at least one entry.
func DecodeMenuItems(raw string) ([]db_models.MenuItem, error) {
	content := StripCodeFences(raw)
	if content == "" {
		return nil, malformed("empty menu response")
	}
	if !strings.HasPrefix(content, "[") || !strings.HasSuffix(content, "]") {
		return nil, malformed("menu response is not a JSON array")
	}

	var parsed []rawMenuItem
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, malformed("menu response does not parse: %v", err)
	}
	if len(parsed) == 0 {
		return nil, malformed("no menu items found")
	}

	items := make([]db_models.MenuItem, 0, len(parsed))
	for i, p := range parsed {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, malformed("menu item %d has no name", i)
		}
		items = append(items, db_models.MenuItem{
			Name:        name,
			Description: strings.TrimSpace(p.Description),
			Price:       priceString(p.Price),
			Category:    strings.TrimSpace(p.Category),
		})
	}
	return items, nil
}

// priceString keeps prices as text whether the model sent "12.50" or 12.5.
func priceString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

// DecodeRecommendations expects {"recommendations":[...]}. Any entry without
// a dish name or a numeric score fails the whole response.
func DecodeRecommendations(raw string) ([]db_models.Recommendation, error) {
	content := StripCodeFences(raw)
	if content == "" {
		return nil, malformed("empty recommendation response")
	}

	var envelope struct {
		Recommendations *[]map[string]json.RawMessage `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		return nil, malformed("recommendation response does not parse: %v", err)
	}
	if envelope.Recommendations == nil {
		return nil, malformed("recommendation response has no recommendations key")
	}

	entries := *envelope.Recommendations
	recs := make([]db_models.Recommendation, 0, len(entries))
	for i, entry := range entries {
		var name string
		if err := json.Unmarshal(entry["dishName"], &name); err != nil || strings.TrimSpace(name) == "" {
			return nil, malformed("recommendation %d has no dishName", i)
		}

		var score float64
		rawScore := entry["score"]
		if len(rawScore) == 0 || string(rawScore) == "null" {
			return nil, malformed("recommendation %d has no numeric score", i)
		}
		if err := json.Unmarshal(rawScore, &score); err != nil {
			return nil, malformed("recommendation %d has no numeric score", i)
		}

		reason := stringField(entry, "reason")
		if reason == "" {
			reason = stringField(entry, "explanation")
		}

		recs = append(recs, db_models.Recommendation{
			DishName: strings.TrimSpace(name),
			Score:    NormalizeScore(score),
			Reason:   reason,
		})
	}
	return recs, nil
}

// NormalizeScore maps fractional scores (<= 1) onto 0..100, then rounds and
// clamps.
func NormalizeScore(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	if score <= 1 {
		score *= 100
	}
	rounded := math.Round(score)
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return int(rounded)
}

func stringField(entry map[string]json.RawMessage, key string) string {
	raw, ok := entry[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// DecodeProfilePatch expects a JSON object of changed fields. An empty object
// is a valid "no change" answer.
func DecodeProfilePatch(raw string) (ProfilePatch, error) {
	content := StripCodeFences(raw)
	if content == "" {
		return nil, malformed("empty profile response")
	}

	var patch ProfilePatch
	if err := json.Unmarshal([]byte(content), &patch); err != nil {
		return nil, malformed("profile response does not parse: %v", err)
	}
	if patch == nil {
		return nil, malformed("profile response is not an object")
	}
	return patch, nil
}

// ApplyProfilePatch shallow-merges patch over current. Unknown keys are
// dropped; a known key with the wrong JSON type fails the merge.
func ApplyProfilePatch(current db_models.TasteProfileData, patch ProfilePatch) (db_models.TasteProfileData, error) {
	base, err := json.Marshal(current)
	if err != nil {
		return current, err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(base, &doc); err != nil {
		return current, err
	}
	for key, value := range patch {
		if _, known := doc[key]; !known {
			continue
		}
		doc[key] = value
	}

	merged, err := json.Marshal(doc)
	if err != nil {
		return current, err
	}

	var out db_models.TasteProfileData
	if err := json.Unmarshal(merged, &out); err != nil {
		return current, malformed("profile patch has invalid field types: %v", err)
	}
	return out, nil
}
