// Package review implements the convention checks pyrevu applies to one
// parsed Python file.
//
// The engine runs a fixed sequence of independent passes over the syntax
// tree and the raw source text, accumulating issues in emission order:
//
//   - Function naming
//     Every function definition name is checked against lower_snake_case.
//
//   - Variable naming
//     Every plain-name assignment target is checked the same way. Tuple,
//     list, attribute and other target shapes are exempt on purpose.
//
//   - Endpoint conventions
//     Functions decorated with a something.route(…) call must contain a
//     try block and a json/jsonify call somewhere in their body subtree,
//     and must open with an if statement.
//
//   - Session lifecycle
//     A textual heuristic layered on top of the tree: functions whose raw
//     text mentions a DB session acquisition must also mention cleanup
//     (finally + .close()) and, when write keywords occur, rollback
//     handling (except + .rollback()). Matching is exact substring
//     matching, not token-aware; replacing it with tree-based detection
//     would change which files pass and is a deliberate non-change.
//
// Passes never affect each other, and nothing survives a Run: each file
// gets a fresh Reviewer and a fresh issue accumulator. An empty result
// means the file passes.
package review
