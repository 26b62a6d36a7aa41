// Package pyrules defines the canonical PYR-series rule codes enforced by pyrevu.
//
// Each rule in pyrevu represents a verifiable team convention for Python
// source files. The PYR-series provides a stable numeric and textual identity
// for every rule, ensuring that violations can be reported, filtered, and
// traced consistently across review passes, report output, and configuration.
//
// # Purpose
//
// The pyrules package serves as the single source of truth for all rule codes.
// It is used by:
//   - the review engine (for classification of findings);
//   - the reporter (for consistent emission of diagnostics);
//   - and the configuration layer (for disabling rules by code).
//
// # Structure
//
// Rule codes follow the format “PYR<NNN>: <Name>” and are grouped by functional area:
//
//	000–049  naming conventions
//	050–099  endpoint (route handler) conventions
//	100–149  resource lifecycle conventions
//
// Example:
//
//	pyrules.PYR000FunctionNameCase.String()      → "PYR000: FunctionNameCase"
//	pyrules.PYR000FunctionNameCase.Description() → "Function names must be lower_snake_case."
//
// # Usage
//
// Typical use in the review engine:
//
//	if !review.IsValidIdentifier(fn.Name) {
//	    report(pyrules.FunctionNameCase())
//	}
//
// Typical output in the reporter:
//
//	PYR000: FunctionNameCase — Function names must be lower_snake_case.
//
// # Notes
//
//   - Rule identifiers are stable and versioned; never renumber existing codes.
//   - New rules must follow the next available PYR-range slot.
//   - Unknown or invalid codes render as "rule-unknown(<n>)".
//
// pyrules is part of the pyrevu core and is imported implicitly by the review toolchain.
package pyrules
