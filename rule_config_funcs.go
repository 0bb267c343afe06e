package argtree

import (
	"github.com/napalu/argtree/errs"
	"github.com/napalu/argtree/types"
)

// ConfigureRuleFunc configures a rule. Problems are reported through err and recorded on the
// rule, they surface as definition errors when a Parser is built over the tree.
type ConfigureRuleFunc func(rule Rule, err *error)

func configure(rule Rule, configs []ConfigureRuleFunc) {
	b := rule.base()
	if !b.checkMutable(rule) {
		return
	}
	for _, config := range configs {
		var err error
		config(rule, &err)
		if err != nil {
			b.addErr(err)
		}
	}
	b.checks = structuralChecks(rule)
}

// structuralChecks reports contradictions between the settings of a single rule. They are
// recomputed after every Set so that only the final configuration counts.
func structuralChecks(rule Rule) []error {
	switch r := rule.(type) {
	case *ParameterRule:
		return r.valueSpec.check(r)
	case *ArgumentRule:
		return r.valueSpec.check(r)
	case *ManyArgumentsRule:
		return r.check()
	}

	return nil
}

func unsupported(rule Rule, config string, err *error) {
	*err = errs.NewDefinitionError(errs.ErrUnsupportedConfig, describe(rule), config)
}

// WithHelp sets the help text shown in usage output
func WithHelp(help string) ConfigureRuleFunc {
	return func(rule Rule, err *error) {
		rule.base().help = help
	}
}

// WithVarName overrides the variable name a value is stored under
func WithVarName(name string) ConfigureRuleFunc {
	return func(rule Rule, err *error) {
		switch r := rule.(type) {
		case *FlagRule:
			r.name = VarName(name)
		case *DictionaryRule:
			r.name = VarName(name)
		case ValueRule:
			r.spec().name = VarName(name)
		default:
			unsupported(rule, "a variable name", err)
		}
	}
}

// WithType declares the type raw values are coerced to
func WithType(t types.Type) ConfigureRuleFunc {
	return func(rule Rule, err *error) {
		v, ok := rule.(ValueRule)
		if !ok {
			unsupported(rule, "a value type", err)
			return
		}
		v.spec().typ = t
	}
}

// WithChoices declares a static set of accepted values, used for completion and, with
// SetStrictChoices, for validation
func WithChoices[T any](choices ...T) ConfigureRuleFunc {
	return func(rule Rule, err *error) {
		v, ok := rule.(ValueRule)
		if !ok {
			unsupported(rule, "choices", err)
			return
		}
		s := v.spec()
		s.choicesFn = nil
		s.choices = make([]any, len(choices))
		for i, c := range choices {
			s.choices[i] = c
		}
	}
}

// WithChoicesFunc declares choices generated on demand
func WithChoicesFunc[T any](fn func() []T) ConfigureRuleFunc {
	return WithPrefixChoicesFunc(func(string) []T { return fn() })
}

// WithPrefixChoicesFunc declares choices generated on demand from the partially typed token
func WithPrefixChoicesFunc[T any](fn func(current string) []T) ConfigureRuleFunc {
	return func(rule Rule, err *error) {
		v, ok := rule.(ValueRule)
		if !ok {
			unsupported(rule, "choices", err)
			return
		}
		s := v.spec()
		s.choices = nil
		s.choicesFn = func(current string) []any {
			generated := fn(current)
			choices := make([]any, len(generated))
			for i, c := range generated {
				choices[i] = c
			}
			return choices
		}
	}
}

// SetStrictChoices rejects values outside the declared choices
func SetStrictChoices(strict bool) ConfigureRuleFunc {
	return func(rule Rule, err *error) {
		v, ok := rule.(ValueRule)
		if !ok {
			unsupported(rule, "strict choices", err)
			return
		}
		v.spec().strict = strict
	}
}

// SetRequired when true, a value must be supplied on the command-line
func SetRequired(required bool) ConfigureRuleFunc {
	return func(rule Rule, err *error) {
		switch r := rule.(type) {
		case *ParameterRule:
			r.required = required
		case *ArgumentRule:
			r.required = required
		default:
			unsupported(rule, "required", err)
		}
	}
}

// WithDefault sets the value used when none is supplied
func WithDefault(value any) ConfigureRuleFunc {
	return func(rule Rule, err *error) {
		var s *valueSpec
		switch r := rule.(type) {
		case *ParameterRule:
			s = r.spec()
		case *ArgumentRule:
			s = r.spec()
		default:
			unsupported(rule, "a default value", err)
			return
		}
		s.def = value
		s.hasDefault = value != nil
	}
}

// SetMultiple makes a flag count its occurrences and a parameter collect every value
func SetMultiple(multiple bool) ConfigureRuleFunc {
	return func(rule Rule, err *error) {
		switch r := rule.(type) {
		case *FlagRule:
			r.multiple = multiple
		case *ParameterRule:
			r.multiple = multiple
		default:
			unsupported(rule, "multiple", err)
		}
	}
}

// WithKeyType declares the type dictionary keys are coerced to
func WithKeyType(t types.Type) ConfigureRuleFunc {
	return func(rule Rule, err *error) {
		d, ok := rule.(*DictionaryRule)
		if !ok {
			unsupported(rule, "a key type", err)
			return
		}
		d.keyType = t
	}
}

// WithValueType declares the type dictionary values are coerced to
func WithValueType(t types.Type) ConfigureRuleFunc {
	return func(rule Rule, err *error) {
		d, ok := rule.(*DictionaryRule)
		if !ok {
			unsupported(rule, "a value type", err)
			return
		}
		d.valueType = t
	}
}

// WithCount sets the exact number of values a many-arguments rule takes
func WithCount(count int) ConfigureRuleFunc {
	return manyArgs("a count", func(m *ManyArgumentsRule) { m.count = &count })
}

// WithMinCount sets the minimum number of values a many-arguments rule takes
func WithMinCount(count int) ConfigureRuleFunc {
	return manyArgs("a min count", func(m *ManyArgumentsRule) { m.minCount = &count })
}

// WithMaxCount sets the maximum number of values a many-arguments rule takes
func WithMaxCount(count int) ConfigureRuleFunc {
	return manyArgs("a max count", func(m *ManyArgumentsRule) { m.maxCount = &count })
}

// WithJoin joins the values of a many-arguments rule into a single string
func WithJoin(separator string) ConfigureRuleFunc {
	return manyArgs("joining", func(m *ManyArgumentsRule) { m.joinedWith = &separator })
}

func manyArgs(config string, apply func(m *ManyArgumentsRule)) ConfigureRuleFunc {
	return func(rule Rule, err *error) {
		m, ok := rule.(*ManyArgumentsRule)
		if !ok {
			unsupported(rule, config, err)
			return
		}
		apply(m)
	}
}

// WithRun sets the action run when a subcommand or primary option matches
func WithRun(action *Action) ConfigureRuleFunc {
	return func(rule Rule, err *error) {
		switch r := rule.(type) {
		case CommandRule:
			r.tree().action = action
		case *DefaultActionRule:
			r.action = action
		default:
			unsupported(rule, "an action", err)
		}
	}
}
