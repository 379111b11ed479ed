package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/engine"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/storage"
)

func loadDefault(t *testing.T) *Bundle {
	t.Helper()
	b, err := Default()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return b
}

func TestEveryBuiltinKeyIsTranslated(t *testing.T) {
	b := loadDefault(t)
	kits, err := kit.LoadBuiltins()
	require.NoError(t, err)
	for _, k := range kits {
		for _, it := range k.Items {
			ref, ok := it.Name.(kit.LocalizedRef)
			if !ok {
				continue
			}
			for _, lang := range b.Languages() {
				got := b.Translator(lang)(kit.ProductsNamespace, ref.Key)
				require.NotEqual(t, "products."+ref.Key, got, "%s missing in %s", ref.Key, lang)
			}
		}
	}
	for _, id := range kit.StandardCategories {
		require.NotEqual(t, "categories."+string(id), b.Category(kit.LanguageFinnish, id))
	}
}

func TestTFallsBack(t *testing.T) {
	fsys := fstest.MapFS{
		"l/en.json": {Data: []byte(`{"a": "A", "b": "B"}`)},
		"l/fi.json": {Data: []byte(`{"a": "Ä"}`)},
	}
	b, err := Load(fsys, "l", kit.LanguageEnglish, []kit.Language{kit.LanguageEnglish, kit.LanguageFinnish})
	require.NoError(t, err)

	require.Equal(t, "Ä", b.T(kit.LanguageFinnish, "a"))
	require.Equal(t, "B", b.T(kit.LanguageFinnish, "b"))
	require.Equal(t, "c", b.T(kit.LanguageFinnish, "c"))

	_, err = Load(fsys, "l", kit.LanguageFinnish, []kit.Language{kit.LanguageFinnish, "sv"})
	require.NoError(t, err)
	_, err = Load(fsys, "missing", kit.LanguageEnglish, []kit.Language{kit.LanguageEnglish})
	require.Error(t, err)
}

func TestMatch(t *testing.T) {
	b := loadDefault(t)
	require.Equal(t, kit.LanguageFinnish, b.Match("fi_FI.UTF-8"))
	require.Equal(t, kit.LanguageFinnish, b.Match("de", "fi-FI"))
	require.Equal(t, kit.LanguageEnglish, b.Match("en-GB"))
	require.Equal(t, kit.LanguageEnglish, b.Match("C"))
	require.Equal(t, kit.LanguageEnglish, b.Match())
}

func TestAlertText(t *testing.T) {
	b := loadDefault(t)

	got := b.AlertText(kit.LanguageEnglish, engine.Alert{MessageKey: engine.MsgExpired, ItemName: "Milk", Days: 2})
	require.Equal(t, "Milk expired 2 days ago", got)

	got = b.AlertText(kit.LanguageFinnish, engine.Alert{
		MessageKey: engine.MsgCriticallyLow,
		CategoryID: kit.CategoryFood,
		Percent:    20,
	})
	require.Equal(t, "Ruoka on kriittisen vähissä (20 %)", got)

	got = b.AlertText(kit.LanguageEnglish, engine.Alert{MessageKey: engine.MsgExpiringSoon, ItemName: "Bread"})
	require.Equal(t, "Bread expires today", got)
}

func TestTranslatorFeedsEngineScoring(t *testing.T) {
	b := loadDefault(t)
	var loc engine.Localizer = b.Translator

	it := kit.Item{ID: "battery-radio", Name: kit.LocalizedRef{Key: "battery-radio"}}
	require.Equal(t, "Paristoradio", it.DisplayName(kit.LanguageFinnish, loc(kit.LanguageFinnish)))
}

func TestCategoryLabelPrefersCustomNames(t *testing.T) {
	b := loadDefault(t)
	customs := []storage.CustomCategory{{CategoryDef: kit.CategoryDef{
		ID:    "camping",
		Names: map[string]string{"en": "Camping", "fi": "Retkeily"},
		Icon:  "⛺",
	}}}

	require.Equal(t, "Retkeily", b.CategoryLabel(kit.LanguageFinnish, "camping", customs))
	require.Equal(t, "Vesi ja juomat", b.CategoryLabel(kit.LanguageFinnish, kit.CategoryWaterBeverages, customs))

	got := b.AlertText(kit.LanguageEnglish, engine.Alert{MessageKey: engine.MsgOutOfStock, CategoryID: "camping"}, customs...)
	require.Equal(t, "Camping is out of stock", got)
}
