package argtree

import (
	"fmt"
	"strings"

	"github.com/napalu/argtree/errs"
	"github.com/napalu/argtree/types"
	"github.com/napalu/argtree/types/queue"
)

// frame is the parse state of one level of the rule tree. Frames of nested subcommands and
// primary options point to the frame they were matched in.
type frame struct {
	p         *Parser
	rules     []Rule
	parent    *frame
	child     *frame
	command   CommandRule
	run       *Action
	inherited *Action
	// isolated frames belong to primary options: they neither delegate positional arguments nor
	// cascade checks to their ancestors
	isolated bool
	vars     *varStore
	bound    map[string][]any
}

func newFrame(p *Parser, rules []Rule, parent *frame, command CommandRule, inherited *Action, isolated bool) *frame {
	f := &frame{
		p:         p,
		rules:     rules,
		parent:    parent,
		command:   command,
		inherited: inherited,
		isolated:  isolated,
		vars:      newVarStore(),
		bound:     map[string][]any{},
	}
	if command != nil {
		f.run = command.Action()
	}
	if parent != nil {
		parent.child = f
	}
	f.initVars()

	return f
}

func (f *frame) initVars() {
	for _, r := range f.rules {
		switch v := r.(type) {
		case *FlagRule:
			if v.multiple {
				f.vars.set(v.name, 0)
			} else {
				f.vars.set(v.name, false)
			}
		case *ParameterRule:
			switch {
			case v.hasDefault:
				f.vars.set(v.name, v.def)
			case v.multiple:
				f.vars.set(v.name, []any{})
			default:
				f.vars.set(v.name, nil)
			}
		case *DictionaryRule:
			f.vars.set(v.name, map[any]any{})
		case *ArgumentRule:
			f.vars.set(v.name, v.def)
		case *ManyArgumentsRule:
			if v.joinedWith != nil {
				f.vars.set(v.name, "")
			} else {
				f.vars.set(v.name, []any{})
			}
		}
	}
}

// parse runs the matching stages of the level and returns the deepest frame reached
func (f *frame) parse(q *queue.Q) (*frame, error) {
	f.sweepFlags(q)
	if err := f.sweepParameters(q); err != nil {
		return nil, err
	}
	if err := f.sweepDictionaries(q); err != nil {
		return nil, err
	}
	f.sweepCombinedFlags(q)

	if opt := f.matchPrimaryOption(q); opt != nil {
		return newFrame(f.p, opt.Children(), f, opt, nil, true).parse(q)
	}
	if cmd := f.matchSubcommand(q); cmd != nil {
		return newFrame(f.p, cmd.Children(), f, cmd, f.resolveDefaultAction(), false).parse(q)
	}

	if err := f.claimPositionals(q); err != nil {
		return nil, err
	}
	if err := f.claimManyArguments(q); err != nil {
		return nil, err
	}
	if !f.p.dry {
		if err := f.check(); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func (f *frame) sweepFlags(q *queue.Q) {
	for q.Reset(); q.HasNext(); {
		if flag := f.findFlag(q.Next()); flag != nil {
			q.PopCurrent()
			f.toggle(flag)
		}
	}
}

func (f *frame) toggle(flag *FlagRule) {
	if !flag.multiple {
		f.vars.set(flag.name, true)
		return
	}

	count, _ := f.vars.get(flag.name)
	n, _ := count.(int)
	f.vars.set(flag.name, n+1)
}

func (f *frame) sweepParameters(q *queue.Q) error {
	for q.Reset(); q.HasNext(); {
		token := q.Next()

		if param := f.findParameter(token); param != nil {
			q.PopCurrent()
			value, ok := q.PeekCurrent()
			if !ok {
				return f.syntaxError(errs.NewSyntaxError(errs.ErrMissingParamValue, token))
			}
			q.PopCurrent()
			if err := f.assignParameter(param, value); err != nil {
				return err
			}
			continue
		}

		kw, value, found := strings.Cut(token, "=")
		if !found {
			continue
		}
		if param := f.findParameter(kw); param != nil {
			q.PopCurrent()
			if err := f.assignParameter(param, value); err != nil {
				return err
			}
		}
	}

	return nil
}

func (f *frame) assignParameter(param *ParameterRule, raw string) error {
	value, err := f.coerce(param, param.typ, raw)
	if err != nil {
		return err
	}

	if !param.multiple {
		f.vars.set(param.name, value)
		f.bound[param.name] = []any{value}
		return nil
	}

	values := append(f.bound[param.name], value)
	f.bound[param.name] = values
	f.vars.set(param.name, append([]any{}, values...))

	return nil
}

func (f *frame) sweepDictionaries(q *queue.Q) error {
	for q.Reset(); q.HasNext(); {
		token := q.Next()
		dict := f.findDictionary(token)
		if dict == nil {
			continue
		}
		q.PopCurrent()

		rawKey, ok := q.PeekCurrent()
		if !ok {
			return f.syntaxError(errs.NewSyntaxError(errs.ErrMissingDictKey, token))
		}
		q.PopCurrent()
		rawValue, ok := q.PeekCurrent()
		if !ok {
			return f.syntaxError(errs.NewSyntaxError(errs.ErrMissingDictValue, token))
		}
		q.PopCurrent()

		key, err := f.coerce(dict, dict.keyType, rawKey)
		if err != nil {
			return err
		}
		value, err := f.coerce(dict, dict.valueType, rawValue)
		if err != nil {
			return err
		}

		current, _ := f.vars.get(dict.name)
		m, _ := current.(map[any]any)
		merged := make(map[any]any, len(m)+1)
		for k, v := range m {
			merged[k] = v
		}
		merged[key] = value
		f.vars.set(dict.name, merged)
	}

	return nil
}

// sweepCombinedFlags expands tokens like -abc into -a -b -c. A token is only expanded when every
// character names a single character flag, otherwise it is left in place.
func (f *frame) sweepCombinedFlags(q *queue.Q) {
	for q.Reset(); q.HasNext(); {
		token := q.Next()
		if len(token) <= 2 || token[0] != '-' || token[1] == '-' || f.isKeyword(token) {
			continue
		}

		var flags []*FlagRule
		for _, c := range token[1:] {
			flag := f.findFlag("-" + string(c))
			if flag == nil {
				flags = nil
				break
			}
			flags = append(flags, flag)
		}
		if flags == nil {
			continue
		}

		q.PopCurrent()
		for _, flag := range flags {
			f.toggle(flag)
		}
	}
}

func (f *frame) matchPrimaryOption(q *queue.Q) CommandRule {
	for q.Reset(); q.HasNext(); {
		token := q.Next()
		for _, r := range f.rules {
			if opt, ok := r.(*PrimaryOptionRule); ok && opt.matches(token) {
				q.PopCurrent()
				return opt
			}
		}
	}

	return nil
}

func (f *frame) matchSubcommand(q *queue.Q) CommandRule {
	token, ok := q.At(0)
	if !ok {
		return nil
	}
	for _, r := range f.rules {
		if cmd, ok := r.(*SubcommandRule); ok && cmd.matches(token) {
			popFront(q)
			return cmd
		}
	}

	return nil
}

// claimPositionals binds the positional arguments of the level in declaration order, then lets
// the ancestors claim what is left
func (f *frame) claimPositionals(q *queue.Q) error {
	for _, r := range f.rules {
		arg, ok := r.(*ArgumentRule)
		if !ok {
			continue
		}
		if q.Len() == 0 {
			break
		}
		value, err := f.coerce(arg, arg.typ, popFront(q))
		if err != nil {
			return err
		}
		f.vars.set(arg.name, value)
		f.bound[arg.name] = []any{value}
	}

	if f.isolated || f.parent == nil {
		return nil
	}

	return f.parent.claimPositionals(q)
}

// claimManyArguments binds the many-arguments rules of the level, leaving enough arguments for
// the minimum counts of the rules declared after each one, then lets the ancestors claim what is
// left
func (f *frame) claimManyArguments(q *queue.Q) error {
	var many []*ManyArgumentsRule
	for _, r := range f.rules {
		if m, ok := r.(*ManyArgumentsRule); ok {
			many = append(many, m)
		}
	}

	for i, m := range many {
		reserved := 0
		for _, later := range many[i+1:] {
			reserved += later.minimum()
		}

		take, err := f.manyArgumentsCount(m, q.Len(), reserved)
		if err != nil {
			return err
		}

		values := make([]any, 0, take)
		for j := 0; j < take; j++ {
			value, err := f.coerce(m, m.typ, popFront(q))
			if err != nil {
				return err
			}
			values = append(values, value)
		}
		if take > 0 {
			f.bound[m.name] = values
		}

		if m.joinedWith == nil {
			f.vars.set(m.name, values)
			continue
		}
		parts := make([]string, len(values))
		for j, v := range values {
			parts[j] = fmt.Sprint(v)
		}
		f.vars.set(m.name, strings.Join(parts, *m.joinedWith))
	}

	if f.isolated || f.parent == nil {
		return nil
	}

	return f.parent.claimManyArguments(q)
}

func (f *frame) manyArgumentsCount(m *ManyArgumentsRule, available, reserved int) (int, error) {
	minimum := m.minimum()
	if available < minimum {
		if f.p.dry {
			return available, nil
		}
		if m.count != nil {
			return 0, errs.NewSyntaxError(errs.ErrCountMismatch, m.name, minimum, available)
		}
		return 0, errs.NewSyntaxError(errs.ErrNotEnoughArguments, m.name, minimum, available)
	}
	if m.count != nil {
		return *m.count, nil
	}

	take := available - reserved
	if m.maxCount != nil && take > *m.maxCount {
		take = *m.maxCount
	}
	if take < minimum {
		take = minimum
	}

	return take, nil
}

// check verifies required values and strict choices of the level and, unless the level belongs
// to a primary option, of its ancestors
func (f *frame) check() error {
	for _, r := range f.rules {
		v, ok := r.(ValueRule)
		if !ok {
			continue
		}
		values, bound := f.bound[v.Name()]
		if v.Required() && !bound {
			return errs.NewSyntaxError(errs.ErrRequiredMissing, describe(v))
		}
		if !v.StrictChoices() || !v.HasChoices() {
			continue
		}
		if !bound {
			def, ok := v.Default()
			if !ok {
				continue
			}
			values = []any{def}
		}
		for _, value := range values {
			if !v.spec().containsChoice(value) {
				return errs.NewSyntaxError(errs.ErrInvalidChoice, fmt.Sprint(value), describe(v), joinChoices(v.Choices("")))
			}
		}
	}

	if f.isolated || f.parent == nil {
		return nil
	}

	return f.parent.check()
}

// resolveDefaultAction returns the DefaultAction declared at this level, else the one inherited
// from the ancestors
func (f *frame) resolveDefaultAction() *Action {
	for _, r := range f.rules {
		if d, ok := r.(*DefaultActionRule); ok && d.action != nil {
			return d.action
		}
	}

	return f.inherited
}

func (f *frame) resolveAction() *Action {
	if f.run != nil {
		return f.run
	}

	return f.resolveDefaultAction()
}

func (f *frame) coerce(rule Rule, t types.Type, raw string) (any, error) {
	value, err := types.Coerce(t, raw)
	if err == nil {
		return value, nil
	}
	if f.p.dry {
		return raw, nil
	}

	return nil, errs.NewSyntaxError(errs.ErrInvalidValue, describe(rule)).Wrap(err)
}

func (f *frame) syntaxError(err *errs.SyntaxError) error {
	if f.p.dry {
		return nil
	}

	return err
}

// deepest returns the innermost frame reached so far
func (f *frame) deepest() *frame {
	d := f
	for d.child != nil {
		d = d.child
	}

	return d
}

// chain returns the frames from the root down to f
func (f *frame) chain() []*frame {
	var frames []*frame
	for c := f; c != nil; c = c.parent {
		frames = append([]*frame{c}, frames...)
	}

	return frames
}

func (f *frame) context(remaining []string) *RunContext {
	ctx := &RunContext{
		Action:      f.resolveAction(),
		ActiveRules: append([]Rule{}, f.rules...),
		Remaining:   remaining,
		dry:         f.p.dry,
		logger:      f.p.logger,
	}

	frames := f.chain()
	stores := make([]*varStore, len(frames))
	for i, c := range frames {
		stores[i] = c.vars
		ctx.levels = append(ctx.levels, c.rules)
		if c.command != nil {
			ctx.ActiveSubcommands = append(ctx.ActiveSubcommands, c.command)
		}
	}
	ctx.Vars = newArgs(mergeStores(stores))

	return ctx
}

func (f *frame) findFlag(token string) *FlagRule {
	for _, r := range f.rules {
		if flag, ok := r.(*FlagRule); ok && flag.matches(token) {
			return flag
		}
	}

	return nil
}

func (f *frame) findParameter(token string) *ParameterRule {
	for _, r := range f.rules {
		if param, ok := r.(*ParameterRule); ok && param.matches(token) {
			return param
		}
	}

	return nil
}

func (f *frame) findDictionary(token string) *DictionaryRule {
	for _, r := range f.rules {
		if dict, ok := r.(*DictionaryRule); ok && dict.matches(token) {
			return dict
		}
	}

	return nil
}

func (f *frame) isKeyword(token string) bool {
	for _, r := range f.rules {
		if kw, ok := r.(KeywordRule); ok && kw.matches(token) {
			return true
		}
	}

	return false
}

func popFront(q *queue.Q) string {
	q.Reset().Next()
	return q.PopCurrent()
}

func joinChoices(choices []any) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		parts[i] = fmt.Sprint(c)
	}

	return strings.Join(parts, ", ")
}
