package argtree

import (
	"fmt"
	"reflect"

	"github.com/napalu/argtree/errs"
	"github.com/napalu/argtree/util"
)

// ArgsParam is the reserved parameter name bound to the Args container
const ArgsParam = "args"

var (
	errorType = reflect.TypeOf((*error)(nil)).Elem()
	argsType  = reflect.TypeOf(Args{})
)

// Action is a callback together with the names of the variables passed to each of its
// parameters, in order. Build one with Call or Run.
type Action struct {
	fn     reflect.Value
	params []string
	err    error
}

// Call binds the parameters of fn to variable names. fn must be a function taking exactly
// len(params) arguments and returning nothing or a single error, e.g.
//
//	argtree.Call(func(name string, repeat int) {
//		...
//	}, "name", "repeat")
//
// An invalid fn is reported as a definition error when the rule tree is validated.
func Call(fn any, params ...string) *Action {
	a := &Action{fn: reflect.ValueOf(fn), params: params}
	a.err = a.validate()

	return a
}

// Run wraps a function receiving the Args container
func Run(fn func(args Args) error) *Action {
	return Call(fn, ArgsParam)
}

// Params returns the bound variable names
func (a *Action) Params() []string {
	return append([]string{}, a.params...)
}

// Err returns the definition error of the action, if any
func (a *Action) Err() error {
	return a.err
}

func (a *Action) validate() error {
	if !a.fn.IsValid() || a.fn.Kind() != reflect.Func || a.fn.IsNil() {
		got := "nil"
		if a.fn.IsValid() {
			got = a.fn.Type().String()
		}
		return errs.NewDefinitionError(errs.ErrActionNotFunc, got)
	}

	t := a.fn.Type()
	if t.IsVariadic() || t.NumIn() != len(a.params) {
		return errs.NewDefinitionError(errs.ErrActionArity, len(a.params), t.NumIn())
	}
	if t.NumOut() > 1 || (t.NumOut() == 1 && t.Out(0) != errorType) {
		return errs.NewDefinitionError(errs.ErrActionReturn, t.String())
	}

	return nil
}

// invoke calls the action with the values resolved from args. unresolved is called for every
// parameter name which neither names a variable nor the Args container; the parameter then
// receives its zero value.
func (a *Action) invoke(args Args, unresolved func(name string)) error {
	if a.err != nil {
		return a.err
	}

	t := a.fn.Type()
	in := make([]reflect.Value, len(a.params))
	for i, name := range a.params {
		paramType := t.In(i)
		if paramType == argsType {
			in[i] = reflect.ValueOf(args)
			continue
		}

		if v, ok := args.Get(name); ok {
			converted, err := util.ConvertTo(v, paramType)
			if err != nil {
				return errs.NewDefinitionError(errs.ErrActionParamConvert, fmt.Sprintf("%v (%T)", v, v), name).Wrap(err)
			}
			in[i] = converted
			continue
		}

		if name == ArgsParam && argsType.AssignableTo(paramType) {
			in[i] = reflect.ValueOf(args)
			continue
		}

		unresolved(name)
		in[i] = reflect.Zero(paramType)
	}

	out := a.fn.Call(in)
	if len(out) == 1 && !out[0].IsNil() {
		return out[0].Interface().(error)
	}

	return nil
}
