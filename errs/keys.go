// Package errs defines the errors reported by argtree and the translation keys of every
// message the library prints.
package errs

const (
	prefixKey = "argtree"

	ErrorPrefixKey      = prefixKey + ".error"
	DefinitionPrefixKey = ErrorPrefixKey + ".definition"
	SyntaxPrefixKey     = ErrorPrefixKey + ".syntax"
	ValuePrefixKey      = ErrorPrefixKey + ".value"
	AppPrefixKey        = ErrorPrefixKey + ".app"
	MessagePrefixKey    = prefixKey + ".message"
)

// Definition error keys
const (
	ErrRequiredWithDefaultKey      = DefinitionPrefixKey + ".required_with_default"
	ErrMultipleUnboundedKey        = DefinitionPrefixKey + ".multiple_unbounded"
	ErrPositionalAfterUnboundedKey = DefinitionPrefixKey + ".positional_after_unbounded"
	ErrUnsupportedConfigKey        = DefinitionPrefixKey + ".unsupported_config"
	ErrRuleFrozenKey               = DefinitionPrefixKey + ".rule_frozen"
	ErrNilRuleKey                  = DefinitionPrefixKey + ".nil_rule"
	ErrNoKeywordsKey               = DefinitionPrefixKey + ".no_keywords"
	ErrInvalidCountKey             = DefinitionPrefixKey + ".invalid_count"
	ErrActionNotFuncKey            = DefinitionPrefixKey + ".action_not_func"
	ErrActionArityKey              = DefinitionPrefixKey + ".action_arity"
	ErrActionReturnKey             = DefinitionPrefixKey + ".action_return"
	ErrInvalidConfigKey            = DefinitionPrefixKey + ".invalid_config"
	ErrActionParamConvertKey       = DefinitionPrefixKey + ".action_param_convert"
	ErrDecodeTargetKey             = DefinitionPrefixKey + ".decode_target"
)

// Syntax error keys
const (
	ErrMissingParamValueKey  = SyntaxPrefixKey + ".missing_param_value"
	ErrMissingDictKeyKey     = SyntaxPrefixKey + ".missing_dict_key"
	ErrMissingDictValueKey   = SyntaxPrefixKey + ".missing_dict_value"
	ErrNotEnoughArgumentsKey = SyntaxPrefixKey + ".not_enough_arguments"
	ErrCountMismatchKey      = SyntaxPrefixKey + ".count_mismatch"
	ErrRequiredMissingKey    = SyntaxPrefixKey + ".required_missing"
	ErrInvalidChoiceKey      = SyntaxPrefixKey + ".invalid_choice"
	ErrInvalidValueKey       = SyntaxPrefixKey + ".invalid_value"
	ErrUnrecognizedArgsKey   = SyntaxPrefixKey + ".unrecognized_arguments"
)

// App error keys
const (
	ErrUnsupportedShellKey  = AppPrefixKey + ".unsupported_shell"
	ErrCompletionInstallKey = AppPrefixKey + ".completion_install"
)

// Value error keys
const (
	ErrParseIntKey      = ValuePrefixKey + ".parse_int"
	ErrParseFloatKey    = ValuePrefixKey + ".parse_float"
	ErrParseBoolKey     = ValuePrefixKey + ".parse_bool"
	ErrParseDurationKey = ValuePrefixKey + ".parse_duration"
	ErrParseTimeKey     = ValuePrefixKey + ".parse_time"
	ErrUnionMismatchKey = ValuePrefixKey + ".union_mismatch"
	ErrCustomTypeKey    = ValuePrefixKey + ".custom_type"
	ErrConversionKey    = ValuePrefixKey + ".conversion"
)

// Message keys used by the help renderer and the App
const (
	MsgUsageKey               = MessagePrefixKey + ".usage"
	MsgOptionsKey             = MessagePrefixKey + ".options"
	MsgCommandsKey            = MessagePrefixKey + ".commands"
	MsgArgumentsKey           = MessagePrefixKey + ".arguments"
	MsgDefaultKey             = MessagePrefixKey + ".default"
	MsgRequiredKey            = MessagePrefixKey + ".required"
	MsgChoicesKey             = MessagePrefixKey + ".choices"
	MsgHelpHelpKey            = MessagePrefixKey + ".help_help"
	MsgVersionHelpKey         = MessagePrefixKey + ".version_help"
	MsgAutocompleteHelpKey    = MessagePrefixKey + ".autocomplete_help"
	MsgInstallCompletionKey   = MessagePrefixKey + ".install_completion_help"
	MsgCompletionInstalledKey = MessagePrefixKey + ".completion_installed"
	MsgSuperfluousArgsKey     = MessagePrefixKey + ".superfluous_arguments"
	MsgUnresolvedParamKey     = MessagePrefixKey + ".unresolved_parameter"
	MsgSyntaxErrorKey         = MessagePrefixKey + ".syntax_error"
)
