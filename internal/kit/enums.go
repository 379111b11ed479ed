package kit

import "strings"

// CategoryID identifies a standard or custom category.
type CategoryID string

const (
	CategoryWaterBeverages    CategoryID = "water-beverages"
	CategoryFood              CategoryID = "food"
	CategoryCookingHeat       CategoryID = "cooking-heat"
	CategoryLightPower        CategoryID = "light-power"
	CategoryCommunicationInfo CategoryID = "communication-info"
	CategoryMedicalHealth     CategoryID = "medical-health"
	CategoryHygieneSanitation CategoryID = "hygiene-sanitation"
	CategoryToolsSupplies     CategoryID = "tools-supplies"
	CategoryCashDocuments     CategoryID = "cash-documents"
	CategoryPets              CategoryID = "pets"
)

// StandardCategories lists the fixed categories in display order.
var StandardCategories = []CategoryID{
	CategoryWaterBeverages,
	CategoryFood,
	CategoryCookingHeat,
	CategoryLightPower,
	CategoryCommunicationInfo,
	CategoryMedicalHealth,
	CategoryHygieneSanitation,
	CategoryToolsSupplies,
	CategoryCashDocuments,
	CategoryPets,
}

func (c CategoryID) IsStandard() bool {
	for _, s := range StandardCategories {
		if c == s {
			return true
		}
	}
	return false
}

type Unit string

const (
	UnitPieces    Unit = "pieces"
	UnitLiters    Unit = "liters"
	UnitKilograms Unit = "kilograms"
	UnitGrams     Unit = "grams"
	UnitCans      Unit = "cans"
	UnitBottles   Unit = "bottles"
	UnitPackages  Unit = "packages"
	UnitJars      Unit = "jars"
	UnitCanisters Unit = "canisters"
	UnitBoxes     Unit = "boxes"
	UnitDays      Unit = "days"
	UnitRolls     Unit = "rolls"
	UnitTubes     Unit = "tubes"
	UnitMeters    Unit = "meters"
	UnitPairs     Unit = "pairs"
	UnitEuros     Unit = "euros"
	UnitSets      Unit = "sets"
)

func (u Unit) IsValid() bool {
	switch u {
	case UnitPieces, UnitLiters, UnitKilograms, UnitGrams, UnitCans, UnitBottles,
		UnitPackages, UnitJars, UnitCanisters, UnitBoxes, UnitDays, UnitRolls,
		UnitTubes, UnitMeters, UnitPairs, UnitEuros, UnitSets:
		return true
	default:
		return false
	}
}

// ParseUnit accepts a few common abbreviations on top of the canonical names.
func ParseUnit(input string) (Unit, bool) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "pcs", "pc", "piece":
		return UnitPieces, true
	case "l", "liter", "litre", "litres":
		return UnitLiters, true
	case "kg", "kilogram":
		return UnitKilograms, true
	case "g", "gram":
		return UnitGrams, true
	}
	u := Unit(s)
	return u, u.IsValid()
}

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageFinnish Language = "fi"
)

// DefaultLanguage is the language every inline name map must provide.
const DefaultLanguage = LanguageEnglish

var SupportedLanguages = []Language{LanguageEnglish, LanguageFinnish}

func (l Language) IsValid() bool {
	switch l {
	case LanguageEnglish, LanguageFinnish:
		return true
	default:
		return false
	}
}
