// Package pyrules defines the canonical rule codes (PYR-series) enforced by pyrevu.
// Each rule represents a distinct convention checked by the review engine.
//
// Rule numbering scheme:
//
//	000–049  naming conventions
//	050–099  endpoint (route handler) conventions
//	100–149  resource lifecycle conventions
package pyrules

import "fmt"

// Rule represents a pyrevu rule code (PYR-series).
type Rule int

const (
	ruleInvalid Rule = iota

	PYR000FunctionNameCase
	PYR010VariableNameCase
	PYR050EndpointTryExcept
	PYR060EndpointJSONResponse
	PYR070EndpointValidationFirst
	PYR100SessionCloseFinally
	PYR110WriteNeedsRollback
)

// Code returns the bare rule code.
// Example: "PYR000"
func (r Rule) Code() string {
	switch r {
	case PYR000FunctionNameCase:
		return "PYR000"
	case PYR010VariableNameCase:
		return "PYR010"
	case PYR050EndpointTryExcept:
		return "PYR050"
	case PYR060EndpointJSONResponse:
		return "PYR060"
	case PYR070EndpointValidationFirst:
		return "PYR070"
	case PYR100SessionCloseFinally:
		return "PYR100"
	case PYR110WriteNeedsRollback:
		return "PYR110"
	default:
		return fmt.Sprintf("rule-unknown(%d)", r)
	}
}

// String returns the canonical code and short name of the rule.
// Example: "PYR000: FunctionNameCase"
func (r Rule) String() string {
	switch r {
	case PYR000FunctionNameCase:
		return "PYR000: FunctionNameCase"
	case PYR010VariableNameCase:
		return "PYR010: VariableNameCase"
	case PYR050EndpointTryExcept:
		return "PYR050: EndpointTryExcept"
	case PYR060EndpointJSONResponse:
		return "PYR060: EndpointJSONResponse"
	case PYR070EndpointValidationFirst:
		return "PYR070: EndpointValidationFirst"
	case PYR100SessionCloseFinally:
		return "PYR100: SessionCloseFinally"
	case PYR110WriteNeedsRollback:
		return "PYR110: WriteNeedsRollback"
	default:
		return fmt.Sprintf("rule-unknown(%d)", r)
	}
}

// Description returns the human-readable explanation of the rule.
func (r Rule) Description() string {
	switch r {
	case PYR000FunctionNameCase:
		return "Function names must be lower_snake_case."
	case PYR010VariableNameCase:
		return "Simple variable names must be lower_snake_case."
	case PYR050EndpointTryExcept:
		return "Route handlers must contain a try/except block."
	case PYR060EndpointJSONResponse:
		return "Route handlers must produce a JSON response."
	case PYR070EndpointValidationFirst:
		return "Route handlers must start with a validation check."
	case PYR100SessionCloseFinally:
		return "DB sessions must be closed in a finally block."
	case PYR110WriteNeedsRollback:
		return "DB writes must be guarded by rollback in an except block."
	default:
		return fmt.Sprintf("unknown-rule(%d)", r)
	}
}

// Canonical constructors — for readability and stable call sites.

func FunctionNameCase() Rule        { return PYR000FunctionNameCase }
func VariableNameCase() Rule        { return PYR010VariableNameCase }
func EndpointTryExcept() Rule       { return PYR050EndpointTryExcept }
func EndpointJSONResponse() Rule    { return PYR060EndpointJSONResponse }
func EndpointValidationFirst() Rule { return PYR070EndpointValidationFirst }
func SessionCloseFinally() Rule     { return PYR100SessionCloseFinally }
func WriteNeedsRollback() Rule      { return PYR110WriteNeedsRollback }

// All returns every defined rule in code order.
// It is used by config validation and documentation tooling.
func All() []Rule {
	return []Rule{
		PYR000FunctionNameCase,
		PYR010VariableNameCase,
		PYR050EndpointTryExcept,
		PYR060EndpointJSONResponse,
		PYR070EndpointValidationFirst,
		PYR100SessionCloseFinally,
		PYR110WriteNeedsRollback,
	}
}
