package kit

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSyntaxError(t *testing.T) {
	_, _, err := Parse([]byte(`{"meta": {`))
	var syn *SyntaxError
	require.ErrorAs(t, err, &syn)
	require.Contains(t, err.Error(), "invalid kit JSON")
}

func TestParseValidationError(t *testing.T) {
	f := validFile()
	delete(f, "meta")
	data, err := json.Marshal(f)
	require.NoError(t, err)

	k, _, err := Parse(data)
	require.Nil(t, k)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, CodeInvalidMeta, verr.Issues[0].Code)
}

func TestParseDecodesNames(t *testing.T) {
	data, err := json.Marshal(validFile())
	require.NoError(t, err)

	k, warnings, err := Parse(data)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, LanguageFinnish, k.Meta.Language)
	require.Len(t, k.Items, 2)

	water := k.Items[0]
	require.Equal(t, "Vesi", water.DisplayName(LanguageFinnish, nil))
	require.Equal(t, "Water", water.DisplayName(LanguageEnglish, nil))

	radio := k.Items[1]
	require.Equal(t, LocalizedRef{Key: "battery-radio"}, radio.Name)
	tr := func(ns, key string) string { return ns + "." + key }
	require.Equal(t, "products.battery-radio", radio.DisplayName(LanguageEnglish, tr))
}

func TestFileRoundTrip(t *testing.T) {
	f := validFile()
	f["categories"] = []any{
		map[string]any{"id": "camping", "names": map[string]any{"en": "Camping"}, "icon": "⛺", "sortOrder": 2.0},
	}
	f["disabledCategories"] = []any{"camping"}
	item(t, f, 0)["weightGramsPerUnit"] = 1000.0
	data, err := json.Marshal(f)
	require.NoError(t, err)

	k, _, err := Parse(data)
	require.NoError(t, err)

	out, err := MarshalFile(ToFile(*k))
	require.NoError(t, err)

	again, warnings, err := Parse(out)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, *k, *again)

	back := FromFile(ToFile(*k))
	require.Equal(t, *k, back)
}

func TestItemFromDefDropsBadOptionals(t *testing.T) {
	neg, zero := -1.0, 0.0
	it := ItemFromDef(ItemDef{
		ID:                  "x",
		Names:               map[string]string{"en": "X"},
		Category:            "food",
		Unit:                "cans",
		BaseQuantity:        1,
		CapacityMah:         &neg,
		RequiresWaterLiters: &zero,
	})
	require.Nil(t, it.CapacityMah)
	require.NotNil(t, it.RequiresWaterLiters)
	require.Equal(t, InlineName{Names: map[Language]string{LanguageEnglish: "X"}}, it.Name)
}

func TestCloneIsDeep(t *testing.T) {
	k := builtins(t)[0]
	c := k.Clone()
	c.Items[0].BaseQuantity = 999
	c.DisabledCategories = append(c.DisabledCategories, CategoryFood)
	require.NotEqual(t, k.Items[0].BaseQuantity, c.Items[0].BaseQuantity)
	require.NotContains(t, k.DisabledCategories, CategoryFood)
}
