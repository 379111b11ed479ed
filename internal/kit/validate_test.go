package kit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func validFile() map[string]any {
	return map[string]any{
		"meta": map[string]any{
			"name":      "Cabin kit",
			"version":   "1.0.0",
			"createdAt": "2025-03-01T10:00:00Z",
			"language":  "fi",
		},
		"items": []any{
			map[string]any{
				"id":              "water",
				"names":           map[string]any{"en": "Water", "fi": "Vesi"},
				"category":        "water-beverages",
				"unit":            "liters",
				"baseQuantity":    9.0,
				"scaleWithPeople": true,
				"scaleWithDays":   true,
			},
			map[string]any{
				"id":              "radio",
				"i18nKey":         "battery-radio",
				"category":        "communication-info",
				"unit":            "pieces",
				"baseQuantity":    1.0,
				"scaleWithPeople": false,
				"scaleWithDays":   false,
			},
		},
	}
}

func item(t *testing.T, f map[string]any, i int) map[string]any {
	t.Helper()
	return f["items"].([]any)[i].(map[string]any)
}

func codes(issues []Issue) []Code {
	out := make([]Code, 0, len(issues))
	for _, is := range issues {
		out = append(out, is.Code)
	}
	return out
}

func TestValidateAcceptsWellFormedFile(t *testing.T) {
	res := Validate(validFile())
	require.True(t, res.Valid)
	require.Empty(t, res.Errors)
	require.Empty(t, res.Warnings)
}

func TestValidateRejectsNonObject(t *testing.T) {
	for _, candidate := range []any{nil, "kit", 42.0, []any{}} {
		res := Validate(candidate)
		require.False(t, res.Valid)
		require.Len(t, res.Errors, 1)
		require.Equal(t, CodeInvalidStructure, res.Errors[0].Code)
	}
}

func TestValidateMeta(t *testing.T) {
	f := validFile()
	f["meta"] = map[string]any{"name": " ", "language": "sv"}
	res := Validate(f)
	require.False(t, res.Valid)
	require.ElementsMatch(t,
		[]Code{CodeMissingName, CodeMissingVersion, CodeMissingCreatedAt, CodeInvalidLanguage},
		codes(res.Errors))

	f = validFile()
	f["meta"].(map[string]any)["language"] = "EN"
	require.True(t, Validate(f).Valid)
}

func TestValidateRequiresItems(t *testing.T) {
	f := validFile()
	f["items"] = []any{}
	res := Validate(f)
	require.Equal(t, []Code{CodeEmptyItems}, codes(res.Errors))

	delete(f, "items")
	res = Validate(f)
	require.Equal(t, []Code{CodeInvalidItems}, codes(res.Errors))
}

func TestValidateNameAndKeyAreMutuallyExclusive(t *testing.T) {
	f := validFile()
	item(t, f, 0)["i18nKey"] = "bottled-water"
	res := Validate(f)
	require.False(t, res.Valid)
	require.Equal(t, []Code{CodeBothNameAndKey}, codes(res.Errors))

	f = validFile()
	delete(item(t, f, 1), "i18nKey")
	res = Validate(f)
	require.False(t, res.Valid)
	require.Equal(t, []Code{CodeMissingNameOrKey}, codes(res.Errors))
}

func TestValidateInlineNamesNeedEnglish(t *testing.T) {
	f := validFile()
	item(t, f, 0)["names"] = map[string]any{"fi": "Vesi"}
	res := Validate(f)
	require.Equal(t, []Code{CodeMissingEnglish}, codes(res.Errors))
}

func TestValidateMissingCategoryIsSingleError(t *testing.T) {
	f := validFile()
	delete(item(t, f, 0), "category")
	res := Validate(f)
	require.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	require.Equal(t, CodeInvalidCategory, res.Errors[0].Code)
	require.Equal(t, "items[0].category", res.Errors[0].Path)
}

func TestValidateItemFields(t *testing.T) {
	f := validFile()
	it := item(t, f, 0)
	it["unit"] = "buckets"
	it["baseQuantity"] = 0.0
	it["scaleWithDays"] = "yes"
	it["requiresFreezer"] = 1.0
	res := Validate(f)
	require.ElementsMatch(t,
		[]Code{CodeInvalidUnit, CodeInvalidQuantity, CodeInvalidScaleFlag, CodeInvalidFlag},
		codes(res.Errors))
}

func TestValidateDuplicateItemIDs(t *testing.T) {
	f := validFile()
	item(t, f, 1)["id"] = "water"
	res := Validate(f)
	require.False(t, res.Valid)
	require.Equal(t, []Code{CodeDuplicateID}, codes(res.Errors))

	// The same id in two different files is fine.
	a, b := validFile(), validFile()
	require.True(t, Validate(a).Valid)
	require.True(t, Validate(b).Valid)
}

func TestValidateOptionalNumbersOnlyWarn(t *testing.T) {
	f := validFile()
	it := item(t, f, 0)
	it["weightGramsPerUnit"] = -5.0
	it["capacityWh"] = 0.0
	it["caloriesPer100g"] = 0.0
	it["defaultExpirationMonths"] = "soon"
	res := Validate(f)
	require.True(t, res.Valid)
	require.ElementsMatch(t,
		[]Code{CodeInvalidNumber, CodeInvalidNumber, CodeInvalidNumber},
		codes(res.Warnings))

	k := Decode(f)
	require.Nil(t, k.Items[0].WeightGramsPerUnit)
	require.Nil(t, k.Items[0].CapacityWh)
	require.Nil(t, k.Items[0].DefaultExpirationMonths)
	require.NotNil(t, k.Items[0].CaloriesPer100g)
}

func TestValidateCustomCategories(t *testing.T) {
	f := validFile()
	f["categories"] = []any{
		map[string]any{"id": "camping", "names": map[string]any{"en": "Camping"}, "icon": "⛺", "color": "#0a0", "sortOrder": 3.0},
		map[string]any{"id": "camping", "names": map[string]any{"en": "Again"}, "icon": "🏕️"},
		map[string]any{"id": "food", "names": map[string]any{"en": "Food"}, "icon": "🥫"},
		map[string]any{"id": "Bad_ID", "names": map[string]any{"fi": "Huono"}, "icon": "abc", "color": "red", "sortOrder": 1.5},
	}
	item(t, f, 0)["category"] = "camping"

	res := Validate(f)
	require.False(t, res.Valid)
	require.ElementsMatch(t, []Code{
		CodeDuplicateCategory,
		CodeCategoryConflict,
		CodeInvalidCategoryID,
		CodeMissingEnglish,
		CodeInvalidIcon,
		CodeInvalidColor,
		CodeInvalidSortOrder,
	}, codes(res.Errors))
}

func TestValidateItemMayUseDeclaredCategory(t *testing.T) {
	f := validFile()
	f["categories"] = []any{
		map[string]any{"id": "camping", "names": map[string]any{"en": "Camping"}, "icon": "⛺"},
	}
	item(t, f, 0)["category"] = "camping"
	f["disabledCategories"] = []any{"pets", "nope"}

	res := Validate(f)
	require.True(t, res.Valid)
	require.Equal(t, []Code{CodeUnknownDisabled}, codes(res.Warnings))

	k := Decode(f)
	require.Equal(t, []CategoryID{CategoryPets}, k.DisabledCategories)
	require.Equal(t, CategoryID("camping"), k.Items[0].Category)
}

func TestValidateJSONSyntax(t *testing.T) {
	res, _ := ValidateJSON([]byte(`{"meta":`))
	require.False(t, res.Valid)
	require.Equal(t, []Code{CodeInvalidJSON}, codes(res.Errors))

	data, err := json.Marshal(validFile())
	require.NoError(t, err)
	res, candidate := ValidateJSON(data)
	require.True(t, res.Valid)
	require.NotNil(t, candidate)
}

func TestValidIcon(t *testing.T) {
	for _, ok := range []string{"⛺", "🏕️", "👩‍🚒", "🇫🇮", "🔦"} {
		require.True(t, ValidIcon(ok), ok)
	}
	for _, bad := range []string{"", "a", "⛺ x", "12", "🔦🔦🔦🔦🔦🔦🔦🔦🔦🔦🔦🔦🔦🔦🔦🔦🔦"} {
		require.False(t, ValidIcon(bad), bad)
	}
}

func TestValidateItem(t *testing.T) {
	issues := ValidateItem(Item{
		ID:           "tent",
		Name:         InlineName{Names: map[Language]string{LanguageFinnish: "Teltta"}},
		Category:     "camping",
		Unit:         UnitPieces,
		BaseQuantity: 1,
	}, map[CategoryID]bool{"camping": true})
	require.Equal(t, []Code{CodeMissingEnglish}, codes(issues))

	issues = ValidateItem(Item{ID: "x", Name: LocalizedRef{Key: "x"}, Category: CategoryFood, Unit: UnitCans}, nil)
	require.Equal(t, []Code{CodeInvalidQuantity}, codes(issues))
}

func TestValidateCategory(t *testing.T) {
	order := 2
	require.Empty(t, ValidateCategory(Category{
		ID:        "garage",
		Names:     map[Language]string{LanguageEnglish: "Garage"},
		Icon:      "🚗",
		SortOrder: &order,
	}))

	issues := ValidateCategory(Category{ID: "food", Names: map[Language]string{LanguageEnglish: "Food"}, Icon: "🥫"})
	require.Equal(t, []Code{CodeCategoryConflict}, codes(issues))
	require.Equal(t, "id", issues[0].Path)
}
