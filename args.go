package argtree

import (
	"fmt"
	"reflect"

	"github.com/iancoleman/strcase"
	"github.com/napalu/argtree/errs"
	"github.com/napalu/argtree/util"
	orderedmap "github.com/wk8/go-ordered-map"
)

// Args is a read-only view over the variables resolved by a parse, merged across every active
// level. Lookups accept both variable names and keywords: "dry_run", "dry-run" and "--dry-run"
// all find the same variable.
type Args struct {
	vars *orderedmap.OrderedMap
}

func newArgs(vars *orderedmap.OrderedMap) Args {
	return Args{vars: vars}
}

// Get returns the value stored under name
func (a Args) Get(name string) (any, bool) {
	if a.vars == nil {
		return nil, false
	}
	if v, ok := a.vars.Get(name); ok {
		return v, true
	}

	return a.vars.Get(VarName(name))
}

// Has reports whether name is a known variable
func (a Args) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// String returns the value of name formatted as a string, "" when absent or nil
func (a Args) String(name string) string {
	v, ok := a.Get(name)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprint(v)
}

// Int returns the value of name as an int, 0 when absent or not numeric
func (a Args) Int(name string) int {
	var i int
	a.convert(name, &i)
	return i
}

// Float returns the value of name as a float64, 0 when absent or not numeric
func (a Args) Float(name string) float64 {
	var f float64
	a.convert(name, &f)
	return f
}

// Bool returns the value of name as a bool, false when absent or not a bool
func (a Args) Bool(name string) bool {
	var b bool
	a.convert(name, &b)
	return b
}

// Strings returns the values of a list variable formatted as strings. A scalar value is
// returned as a single element list.
func (a Args) Strings(name string) []string {
	v, ok := a.Get(name)
	if !ok || v == nil {
		return nil
	}

	switch t := v.(type) {
	case []string:
		return append([]string{}, t...)
	case []any:
		out := make([]string, len(t))
		for i, e := range t {
			out[i] = fmt.Sprint(e)
		}
		return out
	}

	return []string{fmt.Sprint(v)}
}

// Map returns a copy of a dictionary variable
func (a Args) Map(name string) map[any]any {
	v, _ := a.Get(name)
	m, ok := v.(map[any]any)
	if !ok {
		return nil
	}

	out := make(map[any]any, len(m))
	for k, e := range m {
		out[k] = e
	}

	return out
}

// Names returns the variable names in declaration order
func (a Args) Names() []string {
	if a.vars == nil {
		return nil
	}

	names := make([]string, 0, a.vars.Len())
	for pair := a.vars.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key.(string))
	}

	return names
}

// Len returns the number of variables
func (a Args) Len() int {
	if a.vars == nil {
		return 0
	}

	return a.vars.Len()
}

// Decode copies variables into the exported fields of the struct target points to. A field
// receives the variable named by its `arg` tag, or else by its snake_case name. Fields tagged
// `arg:"-"` and fields without a matching variable are left untouched.
//
//	var opts struct {
//		DryRun bool
//		Repeat int    `arg:"times"`
//		Skip   string `arg:"-"`
//	}
//	err := args.Decode(&opts)
func (a Args) Decode(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return errs.NewDefinitionError(errs.ErrDecodeTarget, fmt.Sprintf("%T", target))
	}

	rv = rv.Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		name := strcase.ToSnake(field.Name)
		if tag, ok := field.Tag.Lookup("arg"); ok {
			if tag == "-" {
				continue
			}
			name = tag
		}

		v, ok := a.Get(name)
		if !ok {
			continue
		}
		converted, err := util.ConvertTo(v, field.Type)
		if err != nil {
			return err
		}
		rv.Field(i).Set(converted)
	}

	return nil
}

func (a Args) convert(name string, target any) {
	v, ok := a.Get(name)
	if !ok {
		return
	}
	elem := reflect.ValueOf(target).Elem()
	if converted, err := util.ConvertTo(v, elem.Type()); err == nil {
		elem.Set(converted)
	}
}
