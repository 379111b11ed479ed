package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
)

// CustomKitPrefix marks generated kit ids.
const CustomKitPrefix = "custom:"

type RegistryDeps struct {
	Logger      *zap.Logger
	IDGenerator func() string
	Clock       func() time.Time
}

// Registry holds the built-in kits, the user's custom kits and the selection.
// Refused operations return *OpError and never change state.
type Registry struct {
	builtins []kit.Kit
	custom   []kit.Kit
	selected string

	newID  func() string
	now    func() time.Time
	logger *zap.Logger
}

func NewRegistry(custom []kit.Kit, selected string, deps RegistryDeps) (*Registry, error) {
	builtins, err := kit.LoadBuiltins()
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string { return ulid.Make().String() }
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	r := &Registry{
		builtins: builtins,
		selected: strings.TrimSpace(selected),
		newID:    func() string { return CustomKitPrefix + idGen() },
		now:      func() time.Time { return clock().UTC() },
		logger:   logger.Named("kits"),
	}
	for _, k := range custom {
		k = k.Clone()
		k.BuiltIn = false
		r.custom = append(r.custom, k)
	}
	if r.selected == "" {
		r.selected = kit.DefaultKitID
	}
	return r, nil
}

func (r *Registry) refuse(op, target, reason string) error {
	err := &OpError{Op: op, Target: target, Reason: reason}
	r.logger.Warn("kit operation refused",
		zap.String("op", op),
		zap.String("target", target),
		zap.String("reason", reason),
	)
	return err
}

func (r *Registry) find(id string) (*kit.Kit, bool) {
	for i := range r.builtins {
		if r.builtins[i].ID == id {
			return &r.builtins[i], true
		}
	}
	for i := range r.custom {
		if r.custom[i].ID == id {
			return &r.custom[i], true
		}
	}
	return nil, false
}

func (r *Registry) customIndex(id string) int {
	for i := range r.custom {
		if r.custom[i].ID == id {
			return i
		}
	}
	return -1
}

// Kits lists built-in kits first, then custom kits in upload order.
func (r *Registry) Kits() []kit.Kit {
	out := make([]kit.Kit, 0, len(r.builtins)+len(r.custom))
	for _, k := range r.builtins {
		out = append(out, k.Clone())
	}
	for _, k := range r.custom {
		out = append(out, k.Clone())
	}
	return out
}

// Custom returns copies of the custom kits for persistence.
func (r *Registry) Custom() []kit.Kit {
	out := make([]kit.Kit, 0, len(r.custom))
	for _, k := range r.custom {
		out = append(out, k.Clone())
	}
	return out
}

func (r *Registry) Kit(id string) (kit.Kit, bool) {
	k, ok := r.find(id)
	if !ok {
		return kit.Kit{}, false
	}
	return k.Clone(), true
}

// SelectedID always resolves: a stale selection reads as the default kit.
func (r *Registry) SelectedID() string {
	if _, ok := r.find(r.selected); ok {
		return r.selected
	}
	return kit.DefaultKitID
}

func (r *Registry) current() *kit.Kit {
	k, _ := r.find(r.SelectedID())
	return k
}

func (r *Registry) Current() kit.Kit {
	return r.current().Clone()
}

// Items is the current kit's item list.
func (r *Registry) Items() []kit.Item {
	return r.Current().Items
}

// Select switches the active kit and reports whether the selection changed.
func (r *Registry) Select(id string) (bool, error) {
	id = strings.TrimSpace(id)
	if _, ok := r.find(id); !ok {
		return false, r.refuse("select kit", id, reasonUnknownKit)
	}
	prev := r.SelectedID()
	r.selected = id
	return prev != id, nil
}

// Upload validates data and stores it as a new custom kit. On failure the
// result carries the issues and the id is empty.
func (r *Registry) Upload(data []byte) (string, kit.Result) {
	res, candidate := kit.ValidateJSON(data)
	if !res.Valid {
		r.logger.Info("kit upload rejected", zap.Int("errors", len(res.Errors)))
		return "", res
	}
	k := kit.Decode(candidate)
	k.ID = r.newID()
	k.UploadedAt = r.now()
	r.custom = append(r.custom, k)
	r.logger.Info("kit uploaded",
		zap.String("id", k.ID),
		zap.String("name", k.Meta.Name),
		zap.Int("items", len(k.Items)),
		zap.Int("warnings", len(res.Warnings)),
	)
	return k.ID, res
}

// Delete removes a custom kit. Deleting the selected kit falls back to the default.
func (r *Registry) Delete(id string) error {
	if kit.IsBuiltinID(id) {
		return r.refuse("delete kit", id, reasonBuiltinImmutable)
	}
	idx := r.customIndex(id)
	if idx < 0 {
		return r.refuse("delete kit", id, reasonUnknownKit)
	}
	r.custom = append(r.custom[:idx], r.custom[idx+1:]...)
	if r.selected == id {
		r.selected = kit.DefaultKitID
	}
	r.logger.Info("kit deleted", zap.String("id", id))
	return nil
}

// Fork copies the selected built-in kit into a new custom kit and selects it.
// When a custom kit is already selected it returns that id unchanged.
func (r *Registry) Fork() string {
	cur := r.current()
	if !cur.BuiltIn {
		return cur.ID
	}
	k := cur.Clone()
	k.ID = r.newID()
	k.BuiltIn = false
	k.OriginKitID = cur.ID
	k.UploadedAt = r.now()
	r.custom = append(r.custom, k)
	r.selected = k.ID
	r.logger.Info("kit forked", zap.String("id", k.ID), zap.String("origin", cur.ID))
	return k.ID
}

// editable returns the selected kit when it may be mutated.
func (r *Registry) editable(op string) (*kit.Kit, error) {
	cur := r.current()
	if cur.BuiltIn {
		return nil, r.refuse(op, cur.ID, reasonBuiltinImmutable)
	}
	return cur, nil
}

// UpdateMeta replaces the selected custom kit's name, version and description.
func (r *Registry) UpdateMeta(m kit.Meta) error {
	cur, err := r.editable("update kit")
	if err != nil {
		return err
	}
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return &kit.ValidationError{Issues: []kit.Issue{{Path: "meta.name", Code: kit.CodeMissingName, Message: "kit name is required"}}}
	}
	lang := cur.Meta.Language
	if m.Language != "" {
		l, err := kit.CanonicalLanguage(string(m.Language))
		if err != nil {
			return &kit.ValidationError{Issues: []kit.Issue{{Path: "meta.language", Code: kit.CodeInvalidLanguage, Message: err.Error()}}}
		}
		lang = l
	}

	cur.Meta.Name = name
	cur.Meta.Language = lang
	if v := strings.TrimSpace(m.Version); v != "" {
		cur.Meta.Version = v
	}
	cur.Meta.Description = m.Description
	if m.Source != "" {
		cur.Meta.Source = m.Source
	}
	return nil
}

func declaredCategories(k *kit.Kit) map[kit.CategoryID]bool {
	out := make(map[kit.CategoryID]bool, len(k.Categories))
	for _, c := range k.Categories {
		out[c.ID] = true
	}
	return out
}

func (r *Registry) AddItem(it kit.Item) error {
	cur, err := r.editable("add kit item")
	if err != nil {
		return err
	}
	it.ID = strings.TrimSpace(it.ID)
	if issues := kit.ValidateItem(it, declaredCategories(cur)); len(issues) > 0 {
		return &kit.ValidationError{Issues: issues}
	}
	if _, exists := cur.Item(it.ID); exists {
		return &kit.ValidationError{Issues: []kit.Issue{{
			Path: "id", Code: kit.CodeDuplicateID, Message: fmt.Sprintf("duplicate item id %q", it.ID),
		}}}
	}
	cur.Items = append(cur.Items, it)
	return nil
}

func (r *Registry) UpdateItem(it kit.Item) error {
	cur, err := r.editable("update kit item")
	if err != nil {
		return err
	}
	if issues := kit.ValidateItem(it, declaredCategories(cur)); len(issues) > 0 {
		return &kit.ValidationError{Issues: issues}
	}
	for i := range cur.Items {
		if cur.Items[i].ID == it.ID {
			cur.Items[i] = it
			return nil
		}
	}
	return r.refuse("update kit item", it.ID, reasonUnknownItem)
}

func (r *Registry) RemoveItem(id string) error {
	cur, err := r.editable("remove kit item")
	if err != nil {
		return err
	}
	if len(cur.Items) == 1 && cur.Items[0].ID == id {
		return r.refuse("remove kit item", id, "a kit needs at least one item")
	}
	for i := range cur.Items {
		if cur.Items[i].ID == id {
			cur.Items = append(cur.Items[:i], cur.Items[i+1:]...)
			return nil
		}
	}
	return r.refuse("remove kit item", id, reasonUnknownItem)
}

// Export returns the selected kit's file form.
func (r *Registry) Export() kit.File {
	return kit.ToFile(*r.current())
}

func (r *Registry) ExportJSON() ([]byte, error) {
	return kit.MarshalFile(r.Export())
}
