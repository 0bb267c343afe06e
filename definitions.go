package argtree

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/napalu/argtree/errs"
	"github.com/napalu/argtree/types"
)

// Rule is a declarative node of a command-line syntax tree. Rules are built with the New*
// constructors, configured with Set and composed with Has.
type Rule interface {
	// Kind discriminates the rule variant
	Kind() types.Kind
	// Help returns the help text of the rule
	Help() string
	// Err returns the definition errors recorded while building the rule, if any
	Err() error
	base() *ruleBase
}

// KeywordRule is a Rule triggered by one of its keywords
type KeywordRule interface {
	Rule
	Keywords() []string
	matches(token string) bool
}

// CommandRule is a Rule owning child rules: SubcommandRule or PrimaryOptionRule
type CommandRule interface {
	KeywordRule
	Children() []Rule
	Action() *Action
	tree() *branchSpec
}

// ValueRule is a Rule binding a typed value: ParameterRule, ArgumentRule or ManyArgumentsRule
type ValueRule interface {
	Rule
	Name() string
	Type() types.Type
	Required() bool
	Default() (any, bool)
	StrictChoices() bool
	HasChoices() bool
	Choices(current string) []any
	spec() *valueSpec
}

type ruleBase struct {
	help   string
	errs   []error
	checks []error
	frozen bool
}

func (b *ruleBase) base() *ruleBase { return b }

// Help returns the help text of the rule
func (b *ruleBase) Help() string { return b.help }

// Err returns the definition errors recorded while building the rule
func (b *ruleBase) Err() error {
	return errors.Join(append(append([]error{}, b.errs...), b.checks...)...)
}

func (b *ruleBase) addErr(err error) {
	b.errs = append(b.errs, err)
}

// checkMutable records ErrRuleFrozen on the rule of b once a Parser owns it
func (b *ruleBase) checkMutable(owner Rule) bool {
	if b.frozen {
		b.addErr(errs.NewDefinitionError(errs.ErrRuleFrozen, describe(owner)))
		return false
	}

	return true
}

type keywordSet struct {
	keywords []string
}

// Keywords returns the keywords triggering the rule
func (k *keywordSet) Keywords() []string {
	return append([]string{}, k.keywords...)
}

func (k *keywordSet) matches(token string) bool {
	for _, kw := range k.keywords {
		if kw == token {
			return true
		}
	}

	return false
}

// longest returns the longest keyword, the first one on ties
func (k *keywordSet) longest() string {
	longest := ""
	for _, kw := range k.keywords {
		if len(kw) > len(longest) {
			longest = kw
		}
	}

	return longest
}

type branchSpec struct {
	children []Rule
	action   *Action
}

func (b *branchSpec) tree() *branchSpec { return b }

// Children returns the child rules
func (b *branchSpec) Children() []Rule {
	return append([]Rule{}, b.children...)
}

// Action returns the action run when the rule matches, or nil
func (b *branchSpec) Action() *Action { return b.action }

func (b *branchSpec) add(owner Rule, rules []Rule) {
	if !owner.base().checkMutable(owner) {
		return
	}
	for _, r := range rules {
		if isNil(r) {
			owner.base().addErr(errs.NewDefinitionError(errs.ErrNilRule, describe(owner)))
			continue
		}
		b.children = append(b.children, r)
	}
}

type valueSpec struct {
	name       string
	typ        types.Type
	choices    []any
	choicesFn  func(current string) []any
	strict     bool
	required   bool
	def        any
	hasDefault bool
}

func (v *valueSpec) spec() *valueSpec { return v }

// Name returns the variable name the value is stored under
func (v *valueSpec) Name() string { return v.name }

// Type returns the declared value type, nil for raw strings
func (v *valueSpec) Type() types.Type { return v.typ }

// Required reports whether a value must be supplied
func (v *valueSpec) Required() bool { return v.required }

// Default returns the default value and whether one was declared
func (v *valueSpec) Default() (any, bool) { return v.def, v.hasDefault }

// StrictChoices reports whether values outside the choices are rejected
func (v *valueSpec) StrictChoices() bool { return v.strict }

// HasChoices reports whether static or generated choices were declared
func (v *valueSpec) HasChoices() bool { return v.choices != nil || v.choicesFn != nil }

// Choices materializes the declared choices. A generator declared with WithPrefixChoicesFunc
// receives current, the partially typed token.
func (v *valueSpec) Choices(current string) []any {
	if v.choicesFn != nil {
		return v.choicesFn(current)
	}

	return append([]any{}, v.choices...)
}

func (v *valueSpec) containsChoice(value any) bool {
	for _, c := range v.Choices("") {
		if reflect.DeepEqual(c, value) || fmt.Sprint(c) == fmt.Sprint(value) {
			return true
		}
	}

	return false
}

func (v *valueSpec) check(owner Rule) []error {
	if v.required && v.hasDefault {
		return []error{errs.NewDefinitionError(errs.ErrRequiredWithDefault, describe(owner))}
	}

	return nil
}

// SubcommandRule narrows the context when its keyword is the first unconsumed token
type SubcommandRule struct {
	ruleBase
	keywordSet
	branchSpec
}

// NewSubcommand creates a subcommand triggered by any of keywords. Subcommand keywords are
// used verbatim.
func NewSubcommand(keywords ...string) *SubcommandRule {
	s := &SubcommandRule{keywordSet: keywordSet{keywords: keywords}}
	if len(keywords) == 0 {
		s.addErr(errs.NewDefinitionError(errs.ErrNoKeywords, types.KindSubcommand))
	}

	return s
}

func (s *SubcommandRule) Kind() types.Kind { return types.KindSubcommand }

// Set applies configs to the subcommand
func (s *SubcommandRule) Set(configs ...ConfigureRuleFunc) *SubcommandRule {
	configure(s, configs)
	return s
}

// Has appends child rules
func (s *SubcommandRule) Has(rules ...Rule) *SubcommandRule {
	s.add(s, rules)
	return s
}

// PrimaryOptionRule is matched anywhere in the remaining arguments. Once matched only its own
// subtree is processed.
type PrimaryOptionRule struct {
	ruleBase
	keywordSet
	branchSpec
}

// NewPrimaryOption creates a primary option triggered by any of keywords
func NewPrimaryOption(keywords ...string) *PrimaryOptionRule {
	o := &PrimaryOptionRule{keywordSet: keywordSet{keywords: normalizeKeywords(keywords)}}
	if len(keywords) == 0 {
		o.addErr(errs.NewDefinitionError(errs.ErrNoKeywords, types.KindPrimaryOption))
	}

	return o
}

func (o *PrimaryOptionRule) Kind() types.Kind { return types.KindPrimaryOption }

// Set applies configs to the primary option
func (o *PrimaryOptionRule) Set(configs ...ConfigureRuleFunc) *PrimaryOptionRule {
	configure(o, configs)
	return o
}

// Has appends child rules
func (o *PrimaryOptionRule) Has(rules ...Rule) *PrimaryOptionRule {
	o.add(o, rules)
	return o
}

// FlagRule is a boolean toggle, or an occurrence counter when multiple
type FlagRule struct {
	ruleBase
	keywordSet
	name     string
	multiple bool
}

// NewFlag creates a flag triggered by any of keywords
func NewFlag(keywords ...string) *FlagRule {
	f := &FlagRule{keywordSet: keywordSet{keywords: normalizeKeywords(keywords)}}
	f.name = VarName(f.longest())
	if len(keywords) == 0 {
		f.addErr(errs.NewDefinitionError(errs.ErrNoKeywords, types.KindFlag))
	}

	return f
}

func (f *FlagRule) Kind() types.Kind { return types.KindFlag }

// Name returns the variable name the flag is stored under
func (f *FlagRule) Name() string { return f.name }

// Multiple reports whether occurrences are counted
func (f *FlagRule) Multiple() bool { return f.multiple }

// Set applies configs to the flag
func (f *FlagRule) Set(configs ...ConfigureRuleFunc) *FlagRule {
	configure(f, configs)
	return f
}

// ParameterRule is a named value: --name value or --name=value
type ParameterRule struct {
	ruleBase
	keywordSet
	valueSpec
	multiple bool
}

// NewParameter creates a parameter triggered by any of keywords
func NewParameter(keywords ...string) *ParameterRule {
	p := &ParameterRule{keywordSet: keywordSet{keywords: normalizeKeywords(keywords)}}
	p.name = VarName(p.longest())
	if len(keywords) == 0 {
		p.addErr(errs.NewDefinitionError(errs.ErrNoKeywords, types.KindParameter))
	}

	return p
}

func (p *ParameterRule) Kind() types.Kind { return types.KindParameter }

// Multiple reports whether repeated values are collected in a list
func (p *ParameterRule) Multiple() bool { return p.multiple }

// Set applies configs to the parameter
func (p *ParameterRule) Set(configs ...ConfigureRuleFunc) *ParameterRule {
	configure(p, configs)
	return p
}

// DictionaryRule accumulates key/value pairs from repeated --name key value triples
type DictionaryRule struct {
	ruleBase
	keywordSet
	name      string
	keyType   types.Type
	valueType types.Type
}

// NewDictionary creates a dictionary triggered by any of keywords
func NewDictionary(keywords ...string) *DictionaryRule {
	d := &DictionaryRule{keywordSet: keywordSet{keywords: normalizeKeywords(keywords)}}
	d.name = VarName(d.longest())
	if len(keywords) == 0 {
		d.addErr(errs.NewDefinitionError(errs.ErrNoKeywords, types.KindDictionary))
	}

	return d
}

func (d *DictionaryRule) Kind() types.Kind { return types.KindDictionary }

// Name returns the variable name the dictionary is stored under
func (d *DictionaryRule) Name() string { return d.name }

// KeyType returns the declared key type, nil for raw strings
func (d *DictionaryRule) KeyType() types.Type { return d.keyType }

// ValueType returns the declared value type, nil for raw strings
func (d *DictionaryRule) ValueType() types.Type { return d.valueType }

// Set applies configs to the dictionary
func (d *DictionaryRule) Set(configs ...ConfigureRuleFunc) *DictionaryRule {
	configure(d, configs)
	return d
}

// ArgumentRule is a single positional value
type ArgumentRule struct {
	ruleBase
	valueSpec
}

// NewArgument creates a positional argument stored under name
func NewArgument(name string) *ArgumentRule {
	return &ArgumentRule{valueSpec: valueSpec{name: VarName(name)}}
}

func (a *ArgumentRule) Kind() types.Kind { return types.KindArgument }

// Set applies configs to the argument
func (a *ArgumentRule) Set(configs ...ConfigureRuleFunc) *ArgumentRule {
	configure(a, configs)
	return a
}

// ManyArgumentsRule collects a contiguous run of positional values into a list, or into a
// single string when joined
type ManyArgumentsRule struct {
	ruleBase
	valueSpec
	count      *int
	minCount   *int
	maxCount   *int
	joinedWith *string
}

// NewArguments creates a many-arguments collector stored under name
func NewArguments(name string) *ManyArgumentsRule {
	return &ManyArgumentsRule{valueSpec: valueSpec{name: VarName(name)}}
}

func (m *ManyArgumentsRule) Kind() types.Kind { return types.KindManyArguments }

// Count returns the exact number of values expected, if declared
func (m *ManyArgumentsRule) Count() (int, bool) { return deref(m.count) }

// MinCount returns the minimum number of values, if declared
func (m *ManyArgumentsRule) MinCount() (int, bool) { return deref(m.minCount) }

// MaxCount returns the maximum number of values, if declared
func (m *ManyArgumentsRule) MaxCount() (int, bool) { return deref(m.maxCount) }

// JoinedWith returns the separator values are joined with, if declared
func (m *ManyArgumentsRule) JoinedWith() (string, bool) {
	if m.joinedWith == nil {
		return "", false
	}

	return *m.joinedWith, true
}

// Unbounded reports whether the rule takes every remaining value
func (m *ManyArgumentsRule) Unbounded() bool {
	return m.count == nil && m.maxCount == nil
}

// Set applies configs to the collector
func (m *ManyArgumentsRule) Set(configs ...ConfigureRuleFunc) *ManyArgumentsRule {
	configure(m, configs)
	return m
}

func (m *ManyArgumentsRule) check() []error {
	var problems []string
	for _, c := range []*int{m.count, m.minCount, m.maxCount} {
		if c != nil && *c < 0 {
			problems = append(problems, "counts must not be negative")
			break
		}
	}
	if m.count != nil && (m.minCount != nil || m.maxCount != nil) {
		problems = append(problems, "count excludes min and max counts")
	}
	if m.minCount != nil && m.maxCount != nil && *m.minCount > *m.maxCount {
		problems = append(problems, fmt.Sprintf("min count %d exceeds max count %d", *m.minCount, *m.maxCount))
	}

	var found []error
	for _, p := range problems {
		found = append(found, errs.NewDefinitionError(errs.ErrInvalidCount, describe(m), p))
	}

	return found
}

// minimum returns the number of values the rule needs at least
func (m *ManyArgumentsRule) minimum() int {
	if m.count != nil {
		return *m.count
	}
	if m.minCount != nil {
		return *m.minCount
	}

	return 0
}

// DefaultActionRule declares the fallback action of a level and, by inheritance, of the levels
// below it
type DefaultActionRule struct {
	ruleBase
	action *Action
}

// NewDefaultAction creates a default action rule
func NewDefaultAction(action *Action) *DefaultActionRule {
	return &DefaultActionRule{action: action}
}

func (d *DefaultActionRule) Kind() types.Kind { return types.KindDefaultAction }

// Action returns the fallback action
func (d *DefaultActionRule) Action() *Action { return d.action }

// Set applies configs to the default action
func (d *DefaultActionRule) Set(configs ...ConfigureRuleFunc) *DefaultActionRule {
	configure(d, configs)
	return d
}

// NormalizeKeyword turns a bare name into a keyword: a single character becomes -n, anything
// longer --name. Keywords already starting with a dash are returned unchanged.
func NormalizeKeyword(name string) string {
	if strings.HasPrefix(name, "-") {
		return name
	}
	if utf8.RuneCountInString(name) == 1 {
		return "-" + name
	}

	return "--" + name
}

// VarName returns the variable name derived from a keyword or argument name: leading dashes
// are stripped and inner dashes become underscores.
func VarName(keyword string) string {
	return strings.ReplaceAll(strings.TrimLeft(keyword, "-"), "-", "_")
}

func normalizeKeywords(keywords []string) []string {
	normalized := make([]string, len(keywords))
	for i, kw := range keywords {
		normalized[i] = NormalizeKeyword(kw)
	}

	return normalized
}

// describe names a rule in messages
func describe(r Rule) string {
	switch v := r.(type) {
	case KeywordRule:
		return strings.Join(v.Keywords(), "/")
	case ValueRule:
		return v.Name()
	}

	return r.Kind().String()
}

func isNil(r Rule) bool {
	if r == nil {
		return true
	}
	v := reflect.ValueOf(r)

	return v.Kind() == reflect.Pointer && v.IsNil()
}

func deref(p *int) (int, bool) {
	if p == nil {
		return 0, false
	}

	return *p, true
}
