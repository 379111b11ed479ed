package kit

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SyntaxError is returned by Parse when the payload is not valid JSON.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid kit JSON: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// ValidationError is returned by Parse when the JSON is well formed but the
// kit file fails validation.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		msgs = append(msgs, is.String())
	}
	return "invalid kit file: " + strings.Join(msgs, "; ")
}

// ValidateJSON decodes data and validates it. A syntax failure is reported as a
// single invalid_json error rather than a Go error.
func ValidateJSON(data []byte) (Result, any) {
	var candidate any
	if err := json.Unmarshal(data, &candidate); err != nil {
		return Result{Errors: []Issue{{Code: CodeInvalidJSON, Message: err.Error()}}}, nil
	}
	return Validate(candidate), candidate
}

// Parse is the fail-fast entry point: it returns a trusted kit plus any
// warnings, or a *SyntaxError / *ValidationError.
func Parse(data []byte) (*Kit, []Issue, error) {
	var candidate any
	if err := json.Unmarshal(data, &candidate); err != nil {
		return nil, nil, &SyntaxError{Err: err}
	}
	res := Validate(candidate)
	if !res.Valid {
		return nil, res.Warnings, &ValidationError{Issues: res.Errors}
	}
	k := Decode(candidate)
	return &k, res.Warnings, nil
}

// Decode builds a trusted kit from a candidate that passed Validate. Fields
// that produced warnings are dropped.
func Decode(candidate any) Kit {
	root, _ := candidate.(map[string]any)
	meta, _ := root["meta"].(map[string]any)

	k := Kit{
		Meta: Meta{
			Name:        strings.TrimSpace(str(meta["name"])),
			Version:     strings.TrimSpace(str(meta["version"])),
			Description: str(meta["description"]),
			Source:      str(meta["source"]),
			CreatedAt:   str(meta["createdAt"]),
		},
	}
	if s := str(meta["language"]); s != "" {
		if l, err := CanonicalLanguage(s); err == nil {
			k.Meta.Language = l
		}
	}

	items, _ := root["items"].([]any)
	for _, raw := range items {
		item, _ := raw.(map[string]any)
		k.Items = append(k.Items, decodeItem(item))
	}

	cats, _ := root["categories"].([]any)
	for _, raw := range cats {
		cat, _ := raw.(map[string]any)
		c := Category{
			ID:          CategoryID(str(cat["id"])),
			Names:       langMap(cat["names"]),
			Icon:        str(cat["icon"]),
			Color:       str(cat["color"]),
			Description: langMap(cat["description"]),
		}
		if f, ok := cat["sortOrder"].(float64); ok {
			n := int(f)
			c.SortOrder = &n
		}
		k.Categories = append(k.Categories, c)
	}

	declared := map[CategoryID]bool{}
	for _, c := range k.Categories {
		declared[c.ID] = true
	}
	disabled, _ := root["disabledCategories"].([]any)
	for _, raw := range disabled {
		id := CategoryID(str(raw))
		if id.IsStandard() || declared[id] {
			k.DisabledCategories = append(k.DisabledCategories, id)
		}
	}
	return k
}

func decodeItem(item map[string]any) Item {
	it := Item{
		ID:              strings.TrimSpace(str(item["id"])),
		Category:        CategoryID(str(item["category"])),
		Unit:            Unit(str(item["unit"])),
		ScaleWithPeople: boolean(item["scaleWithPeople"]),
		ScaleWithDays:   boolean(item["scaleWithDays"]),
		ScaleWithPets:   boolean(item["scaleWithPets"]),
		RequiresFreezer: boolean(item["requiresFreezer"]),
	}
	it.BaseQuantity, _ = item["baseQuantity"].(float64)

	if key := str(item["i18nKey"]); key != "" {
		it.Name = LocalizedRef{Key: key}
	} else {
		it.Name = InlineName{Names: langMap(item["names"])}
	}

	it.DefaultExpirationMonths = optional(item, "defaultExpirationMonths")
	it.WeightGramsPerUnit = optional(item, "weightGramsPerUnit")
	it.CaloriesPer100g = optional(item, "caloriesPer100g")
	it.CaloriesPerUnit = optional(item, "caloriesPerUnit")
	it.RequiresWaterLiters = optional(item, "requiresWaterLiters")
	it.CapacityMah = optional(item, "capacityMah")
	it.CapacityWh = optional(item, "capacityWh")
	return it
}

func optional(item map[string]any, field string) *float64 {
	f, ok := item[field].(float64)
	if !ok || !optionalNumberOK(field, f) {
		return nil
	}
	return &f
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func boolean(v any) bool {
	b, _ := v.(bool)
	return b
}

func langMap(v any) map[Language]string {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[Language]string, len(m))
	for k, raw := range m {
		if s, ok := raw.(string); ok {
			out[Language(k)] = s
		}
	}
	return out
}
