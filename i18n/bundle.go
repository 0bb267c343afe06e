package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

//go:embed locales/*.json
var defaultLocales embed.FS

var (
	ErrInvalidLanguage                    = errors.New("invalid language in filename")
	ErrDefaultLanguageTranslationsMissing = errors.New("default language translations missing")
	ErrInvalidTranslations                = errors.New("invalid translations")
	ErrEmptyTranslations                  = errors.New("empty translations")
	ErrFailedToSetString                  = errors.New("failed to set string")
	ErrLanguageNotFound                   = errors.New("language not found")
	ErrExtraKey                           = errors.New("extra key")
	ErrMissingKey                         = errors.New("missing key")
)

// Bundle holds the translated messages of every supported language. Messages are printf style
// format strings rendered with golang.org/x/text/message printers. Every language defines the
// same keys as the default language.
type Bundle struct {
	mu           sync.RWMutex
	defaultLang  language.Tag
	translations map[language.Tag]map[string]string
	catalog      *catalog.Builder
	printers     map[language.Tag]*message.Printer
}

var defaultBundle = mustLoad(defaultLocales, "locales")

func mustLoad(fsys fs.FS, dir string) *Bundle {
	b, err := NewBundleWithFS(fsys, dir)
	if err != nil {
		panic("failed to load embedded locales: " + err.Error())
	}

	return b
}

// Default returns the process wide bundle built from the embedded locales
func Default() *Bundle {
	return defaultBundle
}

// NewEmptyBundle returns a bundle without translations. English is the default language.
func NewEmptyBundle() *Bundle {
	return &Bundle{
		defaultLang:  language.English,
		translations: make(map[language.Tag]map[string]string),
		catalog:      catalog.NewBuilder(),
		printers:     make(map[language.Tag]*message.Printer),
	}
}

// NewBundleWithFS loads the <lang>.json files of dir
func NewBundleWithFS(fsys fs.FS, dir string) (*Bundle, error) {
	b := NewEmptyBundle()
	files, err := localeFiles(fsys, dir)
	if err != nil {
		return nil, err
	}
	if _, ok := files[b.defaultLang]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrDefaultLanguageTranslationsMissing, b.defaultLang)
	}

	// the default language goes first, the others are validated against it
	order := make([]language.Tag, 0, len(files))
	order = append(order, b.defaultLang)
	for lang := range files {
		if lang != b.defaultLang {
			order = append(order, lang)
		}
	}

	for _, lang := range order {
		translations, err := readTranslations(fsys, files[lang])
		if err != nil {
			return nil, err
		}
		if err := b.AddLanguage(lang, translations); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// T formats the message of key in the default language
func (b *Bundle) T(key string, args ...any) string {
	return b.TL(b.DefaultLanguage(), key, args...)
}

// TL formats the message of key in lang. Unknown languages fall back to the default language and
// unknown keys are returned as is.
func (b *Bundle) TL(lang language.Tag, key string, args ...any) string {
	b.mu.RLock()
	p, ok := b.printers[lang]
	if !ok {
		p = b.printers[b.defaultLang]
	}
	b.mu.RUnlock()

	if p == nil {
		return key
	}

	return p.Sprintf(key, args...)
}

// Message returns the unformatted message of key in the default language, or key when there is
// none
func (b *Bundle) Message(key string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if msg, ok := b.translations[b.defaultLang][key]; ok {
		return msg
	}

	return key
}

// AddLanguage adds lang or merges translations into it. A language added for the first time must
// define exactly the keys of the default language.
func (b *Bundle) AddLanguage(lang language.Tag, translations map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	existing, known := b.translations[lang]
	merged := make(map[string]string, len(existing)+len(translations))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range translations {
		merged[k] = v
	}

	var problems []error
	switch {
	case len(merged) == 0:
		problems = append(problems, fmt.Errorf("%w: %s", ErrEmptyTranslations, lang))
	case !known && lang != b.defaultLang:
		problems = b.compareKeys(lang, merged)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s: %w", ErrInvalidTranslations, lang, errors.Join(problems...))
	}

	for key, value := range translations {
		if err := b.catalog.SetString(lang, key, value); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrFailedToSetString, key, err)
		}
	}
	b.translations[lang] = merged
	b.printers[lang] = message.NewPrinter(lang, message.Catalog(b.catalog))

	return nil
}

// HasLanguage reports whether lang has translations
func (b *Bundle) HasLanguage(lang language.Tag) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.translations[lang]
	return ok
}

// Languages returns the languages of the bundle sorted by tag
func (b *Bundle) Languages() []language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.languages()
}

func (b *Bundle) languages() []language.Tag {
	langs := make([]language.Tag, 0, len(b.translations))
	for lang := range b.translations {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i].String() < langs[j].String() })

	return langs
}

// HasKey reports whether lang translates key
func (b *Bundle) HasKey(lang language.Tag, key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.translations[lang][key]
	return ok
}

// SetDefaultLanguage selects the language used by T and Message. The language must be loaded.
func (b *Bundle) SetDefaultLanguage(lang language.Tag) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.translations[lang]; !ok {
		return fmt.Errorf("%w: %s", ErrLanguageNotFound, lang)
	}
	b.defaultLang = lang

	return nil
}

// DefaultLanguage returns the language used by T and Message
func (b *Bundle) DefaultLanguage() language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.defaultLang
}

// Match returns the loaded language closest to the preferred tags, in order of preference.
// The confidence is language.No when nothing matched and the default language is returned.
func (b *Bundle) Match(preferred ...language.Tag) (language.Tag, language.Confidence) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	// the matcher returns its first tag on a miss, so the default language leads
	supported := []language.Tag{b.defaultLang}
	for _, lang := range b.languages() {
		if lang != b.defaultLang {
			supported = append(supported, lang)
		}
	}

	_, index, confidence := language.NewMatcher(supported).Match(preferred...)
	if confidence == language.No {
		return b.defaultLang, confidence
	}

	return supported[index], confidence
}

// DetectLanguage reads the POSIX locale variables through getenv, in the order the C library
// consults them, and returns the first one naming a valid language. "C" and "POSIX" mean no
// preference.
func DetectLanguage(getenv func(string) string) (language.Tag, bool) {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := getenv(name)
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		// en_US.UTF-8@euro -> en-US
		if i := strings.IndexAny(value, ".@"); i >= 0 {
			value = value[:i]
		}
		if tag, err := language.Parse(strings.ReplaceAll(value, "_", "-")); err == nil {
			return tag, true
		}
	}

	return language.Und, false
}

func (b *Bundle) compareKeys(lang language.Tag, translations map[string]string) []error {
	defaults, ok := b.translations[b.defaultLang]
	if !ok {
		return []error{fmt.Errorf("%w: %s", ErrDefaultLanguageTranslationsMissing, b.defaultLang)}
	}

	var problems []error
	for key := range defaults {
		if _, ok := translations[key]; !ok {
			problems = append(problems, fmt.Errorf("%w: %s: %q", ErrMissingKey, lang, key))
		}
	}
	for key := range translations {
		if _, ok := defaults[key]; !ok {
			problems = append(problems, fmt.Errorf("%w: %s: %q", ErrExtraKey, lang, key))
		}
	}

	return problems
}

// localeFiles maps the languages found in dir to their file
func localeFiles(fsys fs.FS, dir string) (map[language.Tag]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	files := make(map[language.Tag]string, len(entries))
	for _, entry := range entries {
		name, isJSON := strings.CutSuffix(entry.Name(), ".json")
		if entry.IsDir() || !isJSON {
			continue
		}
		lang, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidLanguage, entry.Name())
		}
		files[lang] = path.Join(dir, entry.Name())
	}

	return files, nil
}

func readTranslations(fsys fs.FS, file string) (map[string]string, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, err
	}

	var translations map[string]string
	if err := json.Unmarshal(data, &translations); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	return translations, nil
}
