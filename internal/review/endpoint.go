package review

import (
	"fmt"

	"github.com/sirkon/pyrevu/internal/pyast"
	"github.com/sirkon/pyrevu/internal/pyrules"
)

// jsonCallNames are the plain-name callees accepted as producing a JSON
// response.
var jsonCallNames = map[string]bool{
	"json":    true,
	"jsonify": true,
}

// checkEndpoints applies the three endpoint conventions to every function
// registered as a route handler. The checks are independent: a handler
// receives one issue per failed condition.
func (rv *Reviewer) checkEndpoints() {
	pyast.Walk(rv.tree, func(n pyast.Node) bool {
		fd, ok := n.(*pyast.FunctionDef)
		if !ok || !isEndpoint(fd) {
			return true
		}

		if !hasTry(fd) {
			rv.rep.Report(
				pyrules.EndpointTryExcept(),
				fmt.Sprintf("Endpoint '%s' missing try/except block.", fd.Name),
			)
		}
		if !hasJSONCall(fd) {
			rv.rep.Report(
				pyrules.EndpointJSONResponse(),
				fmt.Sprintf("Endpoint '%s' must return a JSON response.", fd.Name),
			)
		}
		if !startsWithValidation(fd) {
			rv.rep.Report(
				pyrules.EndpointValidationFirst(),
				fmt.Sprintf("Endpoint '%s' must have a validation check at the top.", fd.Name),
			)
		}
		return true
	})
}

// isEndpoint reports whether any decorator is a call whose callee is an
// attribute access named "route", the something.route(…) shape. Plain-name
// callees and call-less decorators never qualify.
func isEndpoint(fd *pyast.FunctionDef) bool {
	for _, dec := range fd.Decorators {
		call, ok := dec.(*pyast.Call)
		if !ok {
			continue
		}
		if attr, ok := call.Func.(*pyast.Attribute); ok && attr.Attr == "route" {
			return true
		}
	}
	return false
}

// hasTry reports whether the function subtree contains a try statement
// anywhere, nested scopes included.
func hasTry(fd *pyast.FunctionDef) bool {
	found := false
	pyast.Walk(fd, func(n pyast.Node) bool {
		if _, ok := n.(*pyast.Try); ok {
			found = true
			return false
		}
		return !found
	})
	return found
}

// hasJSONCall reports whether the function subtree contains a call to a
// plain name json or jsonify anywhere: argument expressions and nested
// calls all count.
func hasJSONCall(fd *pyast.FunctionDef) bool {
	found := false
	pyast.Walk(fd, func(n pyast.Node) bool {
		if call, ok := n.(*pyast.Call); ok {
			if name, ok := call.Func.(*pyast.Name); ok && jsonCallNames[name.Id] {
				found = true
				return false
			}
		}
		return !found
	})
	return found
}

// startsWithValidation checks only the kind of the first top-level body
// statement: it must be an if. The condition is never inspected, so a
// vacuous check satisfies the rule. Intentionally weak — do not tighten.
func startsWithValidation(fd *pyast.FunctionDef) bool {
	if len(fd.Body) == 0 {
		return false
	}
	_, ok := fd.Body[0].(*pyast.If)
	return ok
}
