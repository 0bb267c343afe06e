package types

// Kind identifies the variant of a rule
type Kind int

const (
	KindSubcommand    Kind = iota // KindSubcommand narrows the context when it is the first unconsumed token
	KindPrimaryOption             // KindPrimaryOption is matched anywhere and runs only its own subtree
	KindFlag                      // KindFlag is a boolean toggle or an occurrence counter
	KindParameter                 // KindParameter is a named value
	KindDictionary                // KindDictionary accumulates key/value pairs
	KindArgument                  // KindArgument is a single positional value
	KindManyArguments             // KindManyArguments collects a run of positional values
	KindDefaultAction             // KindDefaultAction is the fallback action of a level
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case KindSubcommand:
		return "subcommand"
	case KindPrimaryOption:
		return "primary option"
	case KindFlag:
		return "flag"
	case KindParameter:
		return "parameter"
	case KindDictionary:
		return "dictionary"
	case KindArgument:
		return "argument"
	case KindManyArguments:
		return "arguments"
	case KindDefaultAction:
		return "default action"
	}

	return "unknown"
}

// Keyworded reports whether rules of this kind are triggered by keywords
func (k Kind) Keyworded() bool {
	switch k {
	case KindSubcommand, KindPrimaryOption, KindFlag, KindParameter, KindDictionary:
		return true
	}

	return false
}

// HasChildren reports whether rules of this kind own child rules
func (k Kind) HasChildren() bool {
	return k == KindSubcommand || k == KindPrimaryOption
}

// HasValue reports whether rules of this kind bind a variable
func (k Kind) HasValue() bool {
	switch k {
	case KindFlag, KindParameter, KindDictionary, KindArgument, KindManyArguments:
		return true
	}

	return false
}
