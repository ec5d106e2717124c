package cmdline

import (
	"fmt"
	"strings"
)

// ErrorType represents parse error categories.
type ErrorType string

const (
	ErrorTypeUnrecognizedOption ErrorType = "unrecognized_option"
	ErrorTypeMissingArgument    ErrorType = "missing_argument"
	ErrorTypeAlreadySelected    ErrorType = "already_selected"
	ErrorTypeMissingRequired    ErrorType = "missing_required"
	ErrorTypeUnknownDefaultKey  ErrorType = "unknown_default_key"
)

// ParseError is the single error type surfaced by the parser. Type selects
// the category; the identifying context fields are populated per category:
// Token for unrecognized options, Option (and Group/Selected for conflicts)
// for option-level failures, Missing for the aggregated required check, Key
// for defaults-merge failures.
type ParseError struct {
	Type       ErrorType
	Message    string
	Token      string   // offending raw token
	Option     string   // option key
	Group      string   // group identifier
	Selected   string   // previously selected option key in the group
	Missing    []string // unsatisfied required option/group identifiers
	Key        string   // offending defaults key
	Suggestion string   // closest known option name, when suggestions are on
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (did you mean '%s'?)", e.Message, e.Suggestion)
	}
	return e.Message
}

func newUnrecognizedOptionError(token, suggestion string) *ParseError {
	return &ParseError{
		Type:       ErrorTypeUnrecognizedOption,
		Message:    "unrecognized option: " + token,
		Token:      token,
		Suggestion: suggestion,
	}
}

func newMissingArgumentError(opt *Option) *ParseError {
	return &ParseError{
		Type:    ErrorTypeMissingArgument,
		Message: "missing argument for option: " + opt.Key(),
		Option:  opt.Key(),
	}
}

func newAlreadySelectedError(group *OptionGroup, selected, attempted *Option) *ParseError {
	return &ParseError{
		Type: ErrorTypeAlreadySelected,
		Message: fmt.Sprintf("option '%s' conflicts with already selected option '%s' in group %s",
			attempted.Key(), selected.Key(), group.String()),
		Option:   attempted.Key(),
		Group:    group.String(),
		Selected: selected.Key(),
	}
}

func newMissingRequiredError(missing []string) *ParseError {
	noun := "option"
	if len(missing) > 1 {
		noun = "options"
	}
	return &ParseError{
		Type:    ErrorTypeMissingRequired,
		Message: fmt.Sprintf("missing required %s: %s", noun, strings.Join(missing, ", ")),
		Missing: missing,
	}
}

func newUnknownDefaultKeyError(key string) *ParseError {
	return &ParseError{
		Type:    ErrorTypeUnknownDefaultKey,
		Message: "unknown default key: " + key,
		Key:     key,
	}
}
