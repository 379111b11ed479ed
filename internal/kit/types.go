package kit

import (
	"strings"
	"time"
)

// Translator resolves a lookup key within a namespace to display text.
type Translator func(namespace, key string) string

// ProductsNamespace is the namespace LocalizedRef keys are resolved in.
const ProductsNamespace = "products"

// ItemName is either an InlineName or a LocalizedRef, never both.
type ItemName interface {
	// Resolve returns the display name for lang. Inline names fall back to
	// English; refs go through t, or return the bare key when t is nil.
	Resolve(lang Language, t Translator) string
	isItemName()
}

// InlineName carries per-language names supplied by the kit author.
type InlineName struct {
	Names map[Language]string
}

func (n InlineName) Resolve(lang Language, _ Translator) string {
	if v := strings.TrimSpace(n.Names[lang]); v != "" {
		return v
	}
	return n.Names[DefaultLanguage]
}

func (InlineName) isItemName() {}

// LocalizedRef points at a translation key shipped with the application.
type LocalizedRef struct {
	Key string
}

func (r LocalizedRef) Resolve(_ Language, t Translator) string {
	if t == nil {
		return r.Key
	}
	return t(ProductsNamespace, r.Key)
}

func (LocalizedRef) isItemName() {}

type Meta struct {
	Name        string
	Version     string
	Description string
	Source      string
	CreatedAt   string
	Language    Language
}

// Item is a validated recommended-item definition.
type Item struct {
	ID       string
	Name     ItemName
	Category CategoryID
	Unit     Unit

	BaseQuantity    float64
	ScaleWithPeople bool
	ScaleWithDays   bool
	ScaleWithPets   bool
	RequiresFreezer bool

	DefaultExpirationMonths *float64
	WeightGramsPerUnit      *float64
	CaloriesPer100g         *float64
	CaloriesPerUnit         *float64
	RequiresWaterLiters     *float64
	CapacityMah             *float64
	CapacityWh              *float64
}

// DisplayName is a shorthand for Name.Resolve that tolerates a nil name.
func (it Item) DisplayName(lang Language, t Translator) string {
	if it.Name == nil {
		return it.ID
	}
	return it.Name.Resolve(lang, t)
}

// Category is a custom category declared by a kit file.
type Category struct {
	ID          CategoryID
	Names       map[Language]string
	Icon        string
	Color       string
	SortOrder   *int
	Description map[Language]string
}

func (c Category) DisplayName(lang Language) string {
	if v := strings.TrimSpace(c.Names[lang]); v != "" {
		return v
	}
	return c.Names[DefaultLanguage]
}

// Kit is a trusted, validated kit. Built-in kits are immutable.
type Kit struct {
	ID          string
	BuiltIn     bool
	OriginKitID string

	Meta               Meta
	Items              []Item
	Categories         []Category
	DisabledCategories []CategoryID
	UploadedAt         time.Time
}

// Item looks up an item by id.
func (k Kit) Item(id string) (Item, bool) {
	for _, it := range k.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Clone returns a deep copy so callers can mutate it freely.
func (k Kit) Clone() Kit {
	out := k
	out.Items = make([]Item, len(k.Items))
	for i, it := range k.Items {
		out.Items[i] = cloneItem(it)
	}
	out.Categories = make([]Category, len(k.Categories))
	for i, c := range k.Categories {
		c.Names = cloneLangMap(c.Names)
		c.Description = cloneLangMap(c.Description)
		if c.SortOrder != nil {
			v := *c.SortOrder
			c.SortOrder = &v
		}
		out.Categories[i] = c
	}
	out.DisabledCategories = append([]CategoryID(nil), k.DisabledCategories...)
	return out
}

func cloneItem(it Item) Item {
	if n, ok := it.Name.(InlineName); ok {
		it.Name = InlineName{Names: cloneLangMap(n.Names)}
	}
	it.DefaultExpirationMonths = cloneFloat(it.DefaultExpirationMonths)
	it.WeightGramsPerUnit = cloneFloat(it.WeightGramsPerUnit)
	it.CaloriesPer100g = cloneFloat(it.CaloriesPer100g)
	it.CaloriesPerUnit = cloneFloat(it.CaloriesPerUnit)
	it.RequiresWaterLiters = cloneFloat(it.RequiresWaterLiters)
	it.CapacityMah = cloneFloat(it.CapacityMah)
	it.CapacityWh = cloneFloat(it.CapacityWh)
	return it
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneLangMap(m map[Language]string) map[Language]string {
	if m == nil {
		return nil
	}
	out := make(map[Language]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
