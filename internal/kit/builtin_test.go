package kit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func builtins(t *testing.T) []Kit {
	t.Helper()
	kits, err := LoadBuiltins()
	require.NoError(t, err)
	return kits
}

func TestBuiltinsLoad(t *testing.T) {
	kits, err := LoadBuiltins()
	require.NoError(t, err)
	require.Len(t, kits, 2)

	std := kits[0]
	require.Equal(t, DefaultKitID, std.ID)
	require.True(t, std.BuiltIn)
	require.Equal(t, "72 Hours Standard", std.Meta.Name)

	water, ok := std.Item("bottled-water")
	require.True(t, ok)
	require.Equal(t, 9.0, water.BaseQuantity)
	require.True(t, water.ScaleWithPeople)
	require.True(t, water.ScaleWithDays)
	require.Equal(t, LocalizedRef{Key: "bottled-water"}, water.Name)

	minimal := kits[1]
	require.Equal(t, MinimalKitID, minimal.ID)
	require.Equal(t, []CategoryID{CategoryPets}, minimal.DisabledCategories)
}

func TestBuiltinsUseOnlyStandardCategories(t *testing.T) {
	for _, k := range builtins(t) {
		seen := map[string]bool{}
		for _, it := range k.Items {
			require.True(t, it.Category.IsStandard(), "%s/%s", k.ID, it.ID)
			require.True(t, it.Unit.IsValid(), "%s/%s", k.ID, it.ID)
			require.False(t, seen[it.ID], "duplicate %s in %s", it.ID, k.ID)
			seen[it.ID] = true
		}
	}
}

func TestBuiltinsAreIsolatedCopies(t *testing.T) {
	a := builtins(t)
	a[0].Items[0].BaseQuantity = 1
	b := builtins(t)
	require.Equal(t, 9.0, b[0].Items[0].BaseQuantity)
}

func TestIsBuiltinID(t *testing.T) {
	require.True(t, IsBuiltinID(DefaultKitID))
	require.True(t, IsBuiltinID(MinimalKitID))
	require.False(t, IsBuiltinID("custom:01J"))
}

func TestParseUnit(t *testing.T) {
	u, ok := ParseUnit(" Liters ")
	require.True(t, ok)
	require.Equal(t, UnitLiters, u)

	_, ok = ParseUnit("buckets")
	require.False(t, ok)
}

func TestCanonicalLanguage(t *testing.T) {
	l, err := CanonicalLanguage("FI")
	require.NoError(t, err)
	require.Equal(t, LanguageFinnish, l)

	l, err = CanonicalLanguage("en-US")
	require.NoError(t, err)
	require.Equal(t, LanguageEnglish, l)

	l, err = CanonicalLanguage("fi_FI")
	require.NoError(t, err)
	require.Equal(t, LanguageFinnish, l)

	_, err = CanonicalLanguage("de")
	require.Error(t, err)
	_, err = CanonicalLanguage("!!")
	require.Error(t, err)
}
