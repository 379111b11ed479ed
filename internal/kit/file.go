package kit

import (
	"encoding/json"
	"fmt"
	"sort"
)

// File is the wire representation of a kit: the upload format and the export format.
type File struct {
	Meta               FileMeta      `json:"meta"`
	Items              []ItemDef     `json:"items"`
	Categories         []CategoryDef `json:"categories,omitempty"`
	DisabledCategories []string      `json:"disabledCategories,omitempty"`
}

type FileMeta struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source,omitempty"`
	CreatedAt   string `json:"createdAt"`
	Language    string `json:"language,omitempty"`
}

type ItemDef struct {
	ID              string            `json:"id"`
	I18nKey         string            `json:"i18nKey,omitempty"`
	Names           map[string]string `json:"names,omitempty"`
	Category        string            `json:"category"`
	Unit            string            `json:"unit"`
	BaseQuantity    float64           `json:"baseQuantity"`
	ScaleWithPeople bool              `json:"scaleWithPeople"`
	ScaleWithDays   bool              `json:"scaleWithDays"`
	ScaleWithPets   bool              `json:"scaleWithPets,omitempty"`
	RequiresFreezer bool              `json:"requiresFreezer,omitempty"`

	DefaultExpirationMonths *float64 `json:"defaultExpirationMonths,omitempty"`
	WeightGramsPerUnit      *float64 `json:"weightGramsPerUnit,omitempty"`
	CaloriesPer100g         *float64 `json:"caloriesPer100g,omitempty"`
	CaloriesPerUnit         *float64 `json:"caloriesPerUnit,omitempty"`
	RequiresWaterLiters     *float64 `json:"requiresWaterLiters,omitempty"`
	CapacityMah             *float64 `json:"capacityMah,omitempty"`
	CapacityWh              *float64 `json:"capacityWh,omitempty"`
}

type CategoryDef struct {
	ID          string            `json:"id"`
	Names       map[string]string `json:"names"`
	Icon        string            `json:"icon"`
	Color       string            `json:"color,omitempty"`
	SortOrder   *int              `json:"sortOrder,omitempty"`
	Description map[string]string `json:"description,omitempty"`
}

// ToFile converts a trusted kit to its wire form.
func ToFile(k Kit) File {
	f := File{
		Meta: FileMeta{
			Name:        k.Meta.Name,
			Version:     k.Meta.Version,
			Description: k.Meta.Description,
			Source:      k.Meta.Source,
			CreatedAt:   k.Meta.CreatedAt,
			Language:    string(k.Meta.Language),
		},
		Items: make([]ItemDef, 0, len(k.Items)),
	}
	for _, it := range k.Items {
		f.Items = append(f.Items, itemToDef(it))
	}
	for _, c := range k.Categories {
		f.Categories = append(f.Categories, CategoryToDef(c))
	}
	for _, id := range k.DisabledCategories {
		f.DisabledCategories = append(f.DisabledCategories, string(id))
	}
	return f
}

func itemToDef(it Item) ItemDef {
	d := ItemDef{
		ID:                      it.ID,
		Category:                string(it.Category),
		Unit:                    string(it.Unit),
		BaseQuantity:            it.BaseQuantity,
		ScaleWithPeople:         it.ScaleWithPeople,
		ScaleWithDays:           it.ScaleWithDays,
		ScaleWithPets:           it.ScaleWithPets,
		RequiresFreezer:         it.RequiresFreezer,
		DefaultExpirationMonths: cloneFloat(it.DefaultExpirationMonths),
		WeightGramsPerUnit:      cloneFloat(it.WeightGramsPerUnit),
		CaloriesPer100g:         cloneFloat(it.CaloriesPer100g),
		CaloriesPerUnit:         cloneFloat(it.CaloriesPerUnit),
		RequiresWaterLiters:     cloneFloat(it.RequiresWaterLiters),
		CapacityMah:             cloneFloat(it.CapacityMah),
		CapacityWh:              cloneFloat(it.CapacityWh),
	}
	switch n := it.Name.(type) {
	case LocalizedRef:
		d.I18nKey = n.Key
	case InlineName:
		d.Names = langMapToWire(n.Names)
	}
	return d
}

// FromFile converts a wire kit that has already been validated. It does not
// re-check shapes; use Parse or Validate for untrusted input.
func FromFile(f File) Kit {
	k := Kit{
		Meta: Meta{
			Name:        f.Meta.Name,
			Version:     f.Meta.Version,
			Description: f.Meta.Description,
			Source:      f.Meta.Source,
			CreatedAt:   f.Meta.CreatedAt,
			Language:    Language(f.Meta.Language),
		},
		Items: make([]Item, 0, len(f.Items)),
	}
	for _, d := range f.Items {
		k.Items = append(k.Items, ItemFromDef(d))
	}
	for _, c := range f.Categories {
		k.Categories = append(k.Categories, CategoryFromDef(c))
	}
	for _, id := range f.DisabledCategories {
		k.DisabledCategories = append(k.DisabledCategories, CategoryID(id))
	}
	return k
}

func CategoryToDef(c Category) CategoryDef {
	d := CategoryDef{
		ID:          string(c.ID),
		Names:       langMapToWire(c.Names),
		Icon:        c.Icon,
		Color:       c.Color,
		Description: langMapToWire(c.Description),
	}
	if c.SortOrder != nil {
		v := *c.SortOrder
		d.SortOrder = &v
	}
	return d
}

func CategoryFromDef(d CategoryDef) Category {
	c := Category{
		ID:          CategoryID(d.ID),
		Names:       langMapFromWire(d.Names),
		Icon:        d.Icon,
		Color:       d.Color,
		Description: langMapFromWire(d.Description),
	}
	if d.SortOrder != nil {
		v := *d.SortOrder
		c.SortOrder = &v
	}
	return c
}

// ItemFromDef converts a single wire item. Optional numbers outside their
// accepted range are dropped.
func ItemFromDef(d ItemDef) Item {
	it := Item{
		ID:              d.ID,
		Category:        CategoryID(d.Category),
		Unit:            Unit(d.Unit),
		BaseQuantity:    d.BaseQuantity,
		ScaleWithPeople: d.ScaleWithPeople,
		ScaleWithDays:   d.ScaleWithDays,
		ScaleWithPets:   d.ScaleWithPets,
		RequiresFreezer: d.RequiresFreezer,
	}
	if d.I18nKey != "" {
		it.Name = LocalizedRef{Key: d.I18nKey}
	} else {
		it.Name = InlineName{Names: langMapFromWire(d.Names)}
	}
	it.DefaultExpirationMonths = keepOptional("defaultExpirationMonths", d.DefaultExpirationMonths)
	it.WeightGramsPerUnit = keepOptional("weightGramsPerUnit", d.WeightGramsPerUnit)
	it.CaloriesPer100g = keepOptional("caloriesPer100g", d.CaloriesPer100g)
	it.CaloriesPerUnit = keepOptional("caloriesPerUnit", d.CaloriesPerUnit)
	it.RequiresWaterLiters = keepOptional("requiresWaterLiters", d.RequiresWaterLiters)
	it.CapacityMah = keepOptional("capacityMah", d.CapacityMah)
	it.CapacityWh = keepOptional("capacityWh", d.CapacityWh)
	return it
}

func keepOptional(field string, v *float64) *float64 {
	if v == nil {
		return nil
	}
	if !optionalNumberOK(field, *v) {
		return nil
	}
	c := *v
	return &c
}

// MarshalFile encodes a kit file the way exports are written.
func MarshalFile(f File) ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal kit file: %w", err)
	}
	return data, nil
}

func langMapToWire(m map[Language]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}

func langMapFromWire(m map[string]string) map[Language]string {
	if m == nil {
		return nil
	}
	out := make(map[Language]string, len(m))
	for k, v := range m {
		out[Language(k)] = v
	}
	return out
}

// sortedKeys keeps issue ordering deterministic when walking name maps.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
