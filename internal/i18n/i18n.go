package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/text/language"

	"github.com/ttu/emergency-supply-tracker-sub006/internal/engine"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/kit"
	"github.com/ttu/emergency-supply-tracker-sub006/internal/storage"
)

//go:embed locales/*.json
var locales embed.FS

// Bundle holds flat key/value dictionaries per supported language.
type Bundle struct {
	dict     map[kit.Language]map[string]string
	fallback kit.Language
	langs    []kit.Language
	matcher  language.Matcher
}

// Default loads the bundled locales with English as the fallback.
func Default() (*Bundle, error) {
	return Load(locales, "locales", kit.DefaultLanguage, []kit.Language{kit.LanguageEnglish, kit.LanguageFinnish})
}

// Load reads <dir>/<lang>.json for every supported language. Only the
// fallback locale is mandatory.
func Load(fsys fs.FS, dir string, fallback kit.Language, supported []kit.Language) (*Bundle, error) {
	b := &Bundle{
		dict:     map[kit.Language]map[string]string{},
		fallback: fallback,
	}
	var tags []language.Tag
	for _, l := range supported {
		raw, err := fs.ReadFile(fsys, path.Join(dir, string(l)+".json"))
		if err != nil {
			if l == fallback {
				return nil, fmt.Errorf("load locale %s: %w", l, err)
			}
			continue
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", l, err)
		}
		b.dict[l] = m
		b.langs = append(b.langs, l)
		tags = append(tags, language.Make(string(l)))
	}
	if _, ok := b.dict[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %s not loaded", fallback)
	}
	b.matcher = language.NewMatcher(tags)
	return b, nil
}

func (b *Bundle) Languages() []kit.Language {
	return append([]kit.Language(nil), b.langs...)
}

func (b *Bundle) Fallback() kit.Language { return b.fallback }

// T returns the translation for key in lang, falling back to the default
// language and finally the key. args are name/value pairs filling {name}
// placeholders.
func (b *Bundle) T(lang kit.Language, key string, args ...any) string {
	v, ok := b.lookup(lang, key)
	if !ok {
		return key
	}
	for i := 0; i+1 < len(args); i += 2 {
		v = strings.ReplaceAll(v, "{"+fmt.Sprint(args[i])+"}", fmt.Sprint(args[i+1]))
	}
	return v
}

func (b *Bundle) lookup(lang kit.Language, key string) (string, bool) {
	if m, ok := b.dict[lang]; ok {
		if v, ok := m[key]; ok {
			return v, true
		}
	}
	if m, ok := b.dict[b.fallback]; ok {
		if v, ok := m[key]; ok {
			return v, true
		}
	}
	return "", false
}

// Translator adapts the bundle to kit name resolution for one language. The
// method value also satisfies engine.Localizer.
func (b *Bundle) Translator(lang kit.Language) kit.Translator {
	return func(namespace, key string) string {
		return b.T(lang, namespace+"."+key)
	}
}

// Match picks the best supported language for the given tags, in preference
// order. POSIX locale strings such as fi_FI.UTF-8 are accepted.
func (b *Bundle) Match(tags ...string) kit.Language {
	var parsed []language.Tag
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if i := strings.IndexAny(t, ".@"); i >= 0 {
			t = t[:i]
		}
		t = strings.ReplaceAll(t, "_", "-")
		if tag, err := language.Parse(t); err == nil {
			parsed = append(parsed, tag)
		}
	}
	if len(parsed) == 0 {
		return b.fallback
	}
	_, idx, conf := b.matcher.Match(parsed...)
	if conf == language.No {
		return b.fallback
	}
	return b.langs[idx]
}

func (b *Bundle) Category(lang kit.Language, id kit.CategoryID) string {
	return b.T(lang, "categories."+string(id))
}

func (b *Bundle) Unit(lang kit.Language, u kit.Unit) string {
	return b.T(lang, "units."+string(u))
}

// CategoryLabel prefers a custom category's own names over the bundle.
func (b *Bundle) CategoryLabel(lang kit.Language, id kit.CategoryID, customs []storage.CustomCategory) string {
	for _, c := range customs {
		if c.ID != string(id) {
			continue
		}
		if n := strings.TrimSpace(c.Names[string(lang)]); n != "" {
			return n
		}
		if n := c.Names[string(kit.DefaultLanguage)]; n != "" {
			return n
		}
	}
	return b.Category(lang, id)
}

const msgExpiresToday = "alerts.expiresToday"

// AlertText renders an alert's message key with its item or category name.
func (b *Bundle) AlertText(lang kit.Language, a engine.Alert, customs ...storage.CustomCategory) string {
	category := b.CategoryLabel(lang, a.CategoryID, customs)
	key := a.MessageKey
	if key == engine.MsgExpiringSoon && a.Days == 0 {
		key = msgExpiresToday
	}
	return b.T(lang, key,
		"name", a.ItemName,
		"days", a.Days,
		"category", category,
		"percent", a.Percent,
	)
}
