package kit

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// Code is a machine-readable validation issue identifier.
type Code string

const (
	CodeInvalidJSON      Code = "invalid_json"
	CodeInvalidStructure Code = "invalid_structure"

	CodeInvalidMeta       Code = "invalid_meta"
	CodeMissingName       Code = "missing_name"
	CodeMissingVersion    Code = "missing_version"
	CodeMissingCreatedAt  Code = "missing_created_at"
	CodeInvalidLanguage   Code = "invalid_language"
	CodeInvalidItems      Code = "invalid_items"
	CodeEmptyItems        Code = "empty_items"
	CodeInvalidItem       Code = "invalid_item"
	CodeMissingID         Code = "missing_id"
	CodeDuplicateID       Code = "duplicate_id"
	CodeMissingNameOrKey  Code = "missing_name_or_key"
	CodeBothNameAndKey    Code = "both_name_and_key"
	CodeMissingEnglish    Code = "missing_english_name"
	CodeInvalidCategory   Code = "invalid_category"
	CodeInvalidUnit       Code = "invalid_unit"
	CodeInvalidQuantity   Code = "invalid_quantity"
	CodeInvalidScaleFlag  Code = "invalid_scale_flag"
	CodeInvalidFlag       Code = "invalid_flag"
	CodeInvalidNumber     Code = "invalid_number"
	CodeInvalidCategories Code = "invalid_categories"
	CodeInvalidCategoryID Code = "invalid_category_id"
	CodeDuplicateCategory Code = "duplicate_category_id"
	CodeCategoryConflict  Code = "category_conflict"
	CodeInvalidIcon       Code = "invalid_icon"
	CodeInvalidColor      Code = "invalid_color"
	CodeInvalidSortOrder  Code = "invalid_sort_order"
	CodeInvalidDesc       Code = "invalid_description"
	CodeInvalidDisabled   Code = "invalid_disabled_categories"
	CodeUnknownDisabled   Code = "unknown_disabled_category"
)

// Issue is a single validation error or warning.
type Issue struct {
	Path    string `json:"path"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return fmt.Sprintf("%s: %s", i.Code, i.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", i.Path, i.Message, i.Code)
}

// Result reports whether a candidate kit file can be imported.
// Warnings never block import.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

var (
	categoryIDPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	hexColorPattern   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

const (
	minCategoryIDLen = 3
	maxCategoryIDLen = 50
	maxIconRunes     = 16
)

// optionalNumbers lists the soft-validated numeric attributes and whether zero is accepted.
var optionalNumbers = []struct {
	field     string
	allowZero bool
}{
	{"defaultExpirationMonths", false},
	{"weightGramsPerUnit", false},
	{"caloriesPer100g", true},
	{"caloriesPerUnit", true},
	{"requiresWaterLiters", true},
	{"capacityMah", false},
	{"capacityWh", false},
}

func optionalNumberOK(field string, v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	for _, n := range optionalNumbers {
		if n.field == field {
			if n.allowZero {
				return v >= 0
			}
			return v > 0
		}
	}
	return v > 0
}

type validator struct {
	errors   []Issue
	warnings []Issue
}

func (v *validator) fail(path string, code Code, format string, args ...any) {
	v.errors = append(v.errors, Issue{Path: path, Code: code, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) warn(path string, code Code, format string, args ...any) {
	v.warnings = append(v.warnings, Issue{Path: path, Code: code, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) result() Result {
	return Result{Valid: len(v.errors) == 0, Errors: v.errors, Warnings: v.warnings}
}

// Validate checks a decoded JSON value (as produced by encoding/json into any)
// against the kit file schema.
func Validate(candidate any) Result {
	v := &validator{}
	root, ok := candidate.(map[string]any)
	if !ok {
		v.fail("", CodeInvalidStructure, "kit file must be a JSON object")
		return v.result()
	}

	v.validateMeta(root["meta"])

	// Categories are checked up front so items may reference them; their
	// issues are reported after the item issues.
	cv := &validator{}
	declared := cv.validateCategories(root["categories"])

	v.validateItems(root["items"], declared)
	v.errors = append(v.errors, cv.errors...)
	v.warnings = append(v.warnings, cv.warnings...)

	v.validateDisabled(root["disabledCategories"], declared)
	return v.result()
}

func (v *validator) validateMeta(raw any) {
	meta, ok := raw.(map[string]any)
	if !ok {
		v.fail("meta", CodeInvalidMeta, "meta must be an object")
		return
	}
	if s, ok := meta["name"].(string); !ok || strings.TrimSpace(s) == "" {
		v.fail("meta.name", CodeMissingName, "kit name is required")
	}
	if s, ok := meta["version"].(string); !ok || strings.TrimSpace(s) == "" {
		v.fail("meta.version", CodeMissingVersion, "kit version is required")
	}
	if s, ok := meta["createdAt"].(string); !ok || strings.TrimSpace(s) == "" {
		v.fail("meta.createdAt", CodeMissingCreatedAt, "creation timestamp is required")
	}
	if raw, present := meta["language"]; present && raw != nil {
		s, ok := raw.(string)
		if !ok {
			v.fail("meta.language", CodeInvalidLanguage, "language must be a string")
			return
		}
		if _, err := CanonicalLanguage(s); err != nil {
			v.fail("meta.language", CodeInvalidLanguage, "%v", err)
		}
	}
}

// CanonicalLanguage canonicalises a BCP 47 tag and restricts its base
// language to the supported set, so regional tags such as fi-FI are accepted.
func CanonicalLanguage(tag string) (Language, error) {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	parsed, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("invalid language tag %q", tag)
	}
	base, _ := parsed.Base()
	l := Language(base.String())
	if !l.IsValid() {
		return "", fmt.Errorf("unsupported language %q", tag)
	}
	return l, nil
}

func (v *validator) validateItems(raw any, declared map[CategoryID]bool) {
	items, ok := raw.([]any)
	if !ok {
		v.fail("items", CodeInvalidItems, "items must be an array")
		return
	}
	if len(items) == 0 {
		v.fail("items", CodeEmptyItems, "kit must contain at least one item")
		return
	}

	seen := make(map[string]int, len(items))
	for i, rawItem := range items {
		path := fmt.Sprintf("items[%d]", i)
		item, ok := rawItem.(map[string]any)
		if !ok {
			v.fail(path, CodeInvalidItem, "item must be an object")
			continue
		}

		id, _ := item["id"].(string)
		id = strings.TrimSpace(id)
		if id == "" {
			v.fail(path+".id", CodeMissingID, "item id is required")
		} else if first, dup := seen[id]; dup {
			v.fail(path+".id", CodeDuplicateID, "duplicate item id %q (first at items[%d])", id, first)
		} else {
			seen[id] = i
		}

		v.validateItemName(path, item)

		cat, _ := item["category"].(string)
		if !CategoryID(cat).IsStandard() && !declared[CategoryID(cat)] {
			v.fail(path+".category", CodeInvalidCategory, "invalid or missing category %q", cat)
		}
		unit, _ := item["unit"].(string)
		if !Unit(unit).IsValid() {
			v.fail(path+".unit", CodeInvalidUnit, "invalid or missing unit %q", unit)
		}

		qty, ok := item["baseQuantity"].(float64)
		if !ok || math.IsNaN(qty) || math.IsInf(qty, 0) || qty <= 0 {
			v.fail(path+".baseQuantity", CodeInvalidQuantity, "baseQuantity must be a positive number")
		}

		for _, flag := range []string{"scaleWithPeople", "scaleWithDays"} {
			if _, ok := item[flag].(bool); !ok {
				v.fail(path+"."+flag, CodeInvalidScaleFlag, "%s must be a boolean", flag)
			}
		}
		for _, flag := range []string{"scaleWithPets", "requiresFreezer"} {
			if raw, present := item[flag]; present && raw != nil {
				if _, ok := raw.(bool); !ok {
					v.fail(path+"."+flag, CodeInvalidFlag, "%s must be a boolean", flag)
				}
			}
		}

		for _, n := range optionalNumbers {
			raw, present := item[n.field]
			if !present || raw == nil {
				continue
			}
			f, ok := raw.(float64)
			if !ok || !optionalNumberOK(n.field, f) {
				v.warn(path+"."+n.field, CodeInvalidNumber, "%s has an invalid value and will be ignored", n.field)
			}
		}
	}
}

func (v *validator) validateItemName(path string, item map[string]any) {
	rawKey, hasKey := item["i18nKey"]
	rawNames, hasNames := item["names"]
	if rawKey == nil {
		hasKey = false
	}
	if rawNames == nil {
		hasNames = false
	}

	switch {
	case hasKey && hasNames:
		v.fail(path, CodeBothNameAndKey, "item must have either i18nKey or names, not both")
		return
	case !hasKey && !hasNames:
		v.fail(path, CodeMissingNameOrKey, "item must have either i18nKey or names")
		return
	case hasKey:
		if s, ok := rawKey.(string); !ok || strings.TrimSpace(s) == "" {
			v.fail(path+".i18nKey", CodeMissingNameOrKey, "i18nKey must be a non-empty string")
		}
		return
	}

	names, ok := rawNames.(map[string]any)
	if !ok {
		v.fail(path+".names", CodeMissingNameOrKey, "names must be an object of language to name")
		return
	}
	v.requireNameMap(path+".names", names)
}

// requireNameMap checks that every value is a string and English is present.
func (v *validator) requireNameMap(path string, names map[string]any) {
	for _, lang := range sortedKeys(names) {
		if _, ok := names[lang].(string); !ok {
			v.fail(path+"."+lang, CodeMissingNameOrKey, "name for %q must be a string", lang)
		}
	}
	if s, ok := names[string(DefaultLanguage)].(string); !ok || strings.TrimSpace(s) == "" {
		v.fail(path+"."+string(DefaultLanguage), CodeMissingEnglish, "an English name is required")
	}
}

func (v *validator) validateCategories(raw any) map[CategoryID]bool {
	declared := map[CategoryID]bool{}
	if raw == nil {
		return declared
	}
	cats, ok := raw.([]any)
	if !ok {
		v.fail("categories", CodeInvalidCategories, "categories must be an array")
		return declared
	}

	for i, rawCat := range cats {
		path := fmt.Sprintf("categories[%d]", i)
		cat, ok := rawCat.(map[string]any)
		if !ok {
			v.fail(path, CodeInvalidCategories, "category must be an object")
			continue
		}

		id, _ := cat["id"].(string)
		switch {
		case !ValidCategoryID(id):
			v.fail(path+".id", CodeInvalidCategoryID, "category id %q must be kebab-case, %d-%d characters", id, minCategoryIDLen, maxCategoryIDLen)
		case CategoryID(id).IsStandard():
			v.fail(path+".id", CodeCategoryConflict, "category id %q conflicts with a standard category", id)
		case declared[CategoryID(id)]:
			v.fail(path+".id", CodeDuplicateCategory, "duplicate category id %q", id)
		default:
			declared[CategoryID(id)] = true
		}

		names, ok := cat["names"].(map[string]any)
		if !ok {
			v.fail(path+".names", CodeMissingEnglish, "category names with an English entry are required")
		} else {
			v.requireNameMap(path+".names", names)
		}

		icon, _ := cat["icon"].(string)
		if !ValidIcon(icon) {
			v.fail(path+".icon", CodeInvalidIcon, "icon must be an emoji")
		}

		if raw, present := cat["color"]; present && raw != nil {
			s, ok := raw.(string)
			if !ok || !hexColorPattern.MatchString(s) {
				v.fail(path+".color", CodeInvalidColor, "color must be a 3 or 6 digit hex value")
			}
		}

		if raw, present := cat["sortOrder"]; present && raw != nil {
			f, ok := raw.(float64)
			if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f != math.Trunc(f) {
				v.fail(path+".sortOrder", CodeInvalidSortOrder, "sortOrder must be a non-negative integer")
			}
		}

		if raw, present := cat["description"]; present && raw != nil {
			if _, ok := raw.(map[string]any); !ok {
				v.warn(path+".description", CodeInvalidDesc, "description must be an object and will be ignored")
			}
		}
	}
	return declared
}

func (v *validator) validateDisabled(raw any, declared map[CategoryID]bool) {
	if raw == nil {
		return
	}
	list, ok := raw.([]any)
	if !ok {
		v.fail("disabledCategories", CodeInvalidDisabled, "disabledCategories must be an array of strings")
		return
	}
	for i, rawID := range list {
		path := fmt.Sprintf("disabledCategories[%d]", i)
		id, ok := rawID.(string)
		if !ok {
			v.fail(path, CodeInvalidDisabled, "category id must be a string")
			continue
		}
		if !CategoryID(id).IsStandard() && !declared[CategoryID(id)] {
			v.warn(path, CodeUnknownDisabled, "unknown category %q will be ignored", id)
		}
	}
}

// ValidCategoryID reports whether id is a well-formed custom category id.
func ValidCategoryID(id string) bool {
	n := len(id)
	return n >= minCategoryIDLen && n <= maxCategoryIDLen && categoryIDPattern.MatchString(id)
}

// ValidIcon accepts short strings made of emoji code points and their modifiers.
func ValidIcon(icon string) bool {
	if icon == "" || utf8.RuneCountInString(icon) > maxIconRunes {
		return false
	}
	symbols := 0
	for _, r := range icon {
		switch {
		case unicode.Is(unicode.So, r):
			symbols++
		case unicode.Is(unicode.Sk, r), unicode.Is(unicode.Mn, r), unicode.Is(unicode.Me, r):
		case r == '\u200d': // zero width joiner
		case r >= 0xE0020 && r <= 0xE007F: // tag sequences
		default:
			return false
		}
	}
	return symbols > 0
}

// ValidateItem checks a trusted item built in code (for example by an editor)
// before it is added to a custom kit. declared holds the kit's custom categories.
func ValidateItem(it Item, declared map[CategoryID]bool) []Issue {
	v := &validator{}
	if strings.TrimSpace(it.ID) == "" {
		v.fail("id", CodeMissingID, "item id is required")
	}
	switch n := it.Name.(type) {
	case nil:
		v.fail("name", CodeMissingNameOrKey, "item must have either i18nKey or names")
	case LocalizedRef:
		if strings.TrimSpace(n.Key) == "" {
			v.fail("i18nKey", CodeMissingNameOrKey, "i18nKey must be a non-empty string")
		}
	case InlineName:
		if strings.TrimSpace(n.Names[DefaultLanguage]) == "" {
			v.fail("names.en", CodeMissingEnglish, "an English name is required")
		}
	}
	if !it.Category.IsStandard() && !declared[it.Category] {
		v.fail("category", CodeInvalidCategory, "invalid or missing category %q", it.Category)
	}
	if !it.Unit.IsValid() {
		v.fail("unit", CodeInvalidUnit, "invalid or missing unit %q", it.Unit)
	}
	if math.IsNaN(it.BaseQuantity) || math.IsInf(it.BaseQuantity, 0) || it.BaseQuantity <= 0 {
		v.fail("baseQuantity", CodeInvalidQuantity, "baseQuantity must be a positive number")
	}
	return v.errors
}

// ValidateCategory checks a single custom category built in code. Issue paths
// are relative to the category.
func ValidateCategory(c Category) []Issue {
	def := map[string]any{
		"id":   string(c.ID),
		"icon": c.Icon,
	}
	names := map[string]any{}
	for lang, n := range c.Names {
		names[string(lang)] = n
	}
	def["names"] = names
	if c.Color != "" {
		def["color"] = c.Color
	}
	if c.SortOrder != nil {
		def["sortOrder"] = float64(*c.SortOrder)
	}

	v := &validator{}
	v.validateCategories([]any{def})
	for i := range v.errors {
		v.errors[i].Path = strings.TrimPrefix(strings.TrimPrefix(v.errors[i].Path, "categories[0]"), ".")
	}
	return v.errors
}
