package review

import (
	"testing"

	"github.com/sirkon/deepequal"

	"github.com/sirkon/pyrevu/internal/pyparse"
	"github.com/sirkon/pyrevu/internal/pyrules"
	"github.com/sirkon/pyrevu/internal/pysrc"
)

// run parses a snippet and reviews it, failing the test on parse errors.
func run(t *testing.T, text string) []Issue {
	t.Helper()

	src := pysrc.New("snippet.py", text)
	tree, err := pyparse.Parse(src)
	if err != nil {
		t.Fatalf("parse snippet: %s", err)
	}

	return Run(tree, src)
}

func TestFunctionNames(t *testing.T) {
	issues := run(t, ""+
		"def good_name():\n"+
		"    pass\n"+
		"\n"+
		"def BadName():\n"+
		"    def alsoBad():\n"+
		"        pass\n")

	expected := []Issue{
		{
			Rule:    pyrules.FunctionNameCase(),
			Message: "Function name 'BadName' must be lower_snake_case.",
		},
		{
			Rule:    pyrules.FunctionNameCase(),
			Message: "Function name 'alsoBad' must be lower_snake_case.",
		},
	}
	deepequal.SideBySide(t, "issues", expected, issues)
}

func TestVariableNames(t *testing.T) {
	issues := run(t, ""+
		"ok_var = 1\n"+
		"BadVar = 2\n"+
		"a = BadTail = 3\n"+
		"x, Y = pair()\n"+ // tuple targets are exempt
		"obj.Attr = 4\n"+ // attribute targets are exempt
		"Aug += 1\n"+ // augmented assignment is not an assignment
		"Ann: int = 5\n") // neither is an annotated one

	expected := []Issue{
		{
			Rule:    pyrules.VariableNameCase(),
			Message: "Variable name 'BadVar' must be lower_snake_case.",
		},
		{
			Rule:    pyrules.VariableNameCase(),
			Message: "Variable name 'BadTail' must be lower_snake_case.",
		},
	}
	deepequal.SideBySide(t, "issues", expected, issues)
}

func TestEndpointChecks(t *testing.T) {
	type test struct {
		name     string
		source   string
		expected []Issue
	}

	tests := []test{
		{
			name: "compliant handler",
			source: "" +
				"@app.route('/items')\n" +
				"def list_items():\n" +
				"    if not request.args:\n" +
				"        return error()\n" +
				"    try:\n" +
				"        return jsonify(items)\n" +
				"    except Exception:\n" +
				"        raise\n",
			expected: []Issue{},
		},
		{
			name: "bare handler fails all three",
			source: "" +
				"@app.route('/items')\n" +
				"def list_items():\n" +
				"    return items\n",
			expected: []Issue{
				{
					Rule:    pyrules.EndpointTryExcept(),
					Message: "Endpoint 'list_items' missing try/except block.",
				},
				{
					Rule:    pyrules.EndpointJSONResponse(),
					Message: "Endpoint 'list_items' must return a JSON response.",
				},
				{
					Rule:    pyrules.EndpointValidationFirst(),
					Message: "Endpoint 'list_items' must have a validation check at the top.",
				},
			},
		},
		{
			name: "json call inside arguments counts",
			source: "" +
				"@app.route('/items')\n" +
				"def list_items():\n" +
				"    if True:\n" +
				"        pass\n" +
				"    try:\n" +
				"        return wrap(json(items))\n" +
				"    except Exception:\n" +
				"        raise\n",
			expected: []Issue{},
		},
		{
			name: "method json does not count",
			source: "" +
				"@app.route('/items')\n" +
				"def list_items():\n" +
				"    if True:\n" +
				"        pass\n" +
				"    try:\n" +
				"        return resp.json()\n" +
				"    except Exception:\n" +
				"        raise\n",
			expected: []Issue{
				{
					Rule:    pyrules.EndpointJSONResponse(),
					Message: "Endpoint 'list_items' must return a JSON response.",
				},
			},
		},
		{
			name: "plain decorator is not an endpoint",
			source: "" +
				"@route('/items')\n" +
				"def list_items():\n" +
				"    return items\n",
			expected: []Issue{},
		},
		{
			name: "call-less decorator is not an endpoint",
			source: "" +
				"@app.route\n" +
				"def list_items():\n" +
				"    return items\n",
			expected: []Issue{},
		},
		{
			name: "validation check is kind-only",
			source: "" +
				"@app.route('/items')\n" +
				"def list_items():\n" +
				"    if 1:\n" + // vacuous condition is good enough
				"        pass\n" +
				"    try:\n" +
				"        return jsonify(items)\n" +
				"    except Exception:\n" +
				"        raise\n",
			expected: []Issue{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := run(t, tt.source)
			if len(issues) == 0 && len(tt.expected) == 0 {
				return
			}
			deepequal.SideBySide(t, "issues", tt.expected, issues)
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	type test struct {
		name     string
		source   string
		expected []Issue
	}

	tests := []test{
		{
			name: "clean read-only session",
			source: "" +
				"def fetch(ids):\n" +
				"    session = getDbSession()\n" +
				"    try:\n" +
				"        return session.query(ids)\n" +
				"    finally:\n" +
				"        session.close()\n",
			expected: []Issue{},
		},
		{
			name: "no close at all",
			source: "" +
				"def fetch(ids):\n" +
				"    session = getDbSession()\n" +
				"    return session.query(ids)\n",
			expected: []Issue{
				{
					Rule:    pyrules.SessionCloseFinally(),
					Message: "Function 'fetch' must close DB sessions in a finally block.",
				},
			},
		},
		{
			name: "close outside finally still fails",
			source: "" +
				"def fetch(ids):\n" +
				"    session = getDbSession()\n" +
				"    rows = session.query(ids)\n" +
				"    session.close()\n" +
				"    return rows\n",
			expected: []Issue{
				{
					Rule:    pyrules.SessionCloseFinally(),
					Message: "Function 'fetch' must close DB sessions in a finally block.",
				},
			},
		},
		{
			name: "write without rollback",
			source: "" +
				"def store(item):\n" +
				"    session = create_dbsession_pg()\n" +
				"    try:\n" +
				"        session.insert(item)\n" +
				"    finally:\n" +
				"        session.close()\n",
			expected: []Issue{
				{
					Rule:    pyrules.WriteNeedsRollback(),
					Message: "Function 'store' does DB writes but is missing rollback in except block.",
				},
			},
		},
		{
			name: "write with full handling",
			source: "" +
				"def store(item):\n" +
				"    session = create_dbsession_pg()\n" +
				"    try:\n" +
				"        session.insert(item)\n" +
				"    except Exception:\n" +
				"        session.rollback()\n" +
				"    finally:\n" +
				"        session.close()\n",
			expected: []Issue{},
		},
		{
			name: "write marker inside identifier",
			source: "" +
				"def paginate(addend):\n" + // "add" occurs inside the parameter name
				"    session = getDbSession()\n" +
				"    try:\n" +
				"        return session.query(addend)\n" +
				"    finally:\n" +
				"        session.close()\n",
			expected: []Issue{
				{
					Rule:    pyrules.WriteNeedsRollback(),
					Message: "Function 'paginate' does DB writes but is missing rollback in except block.",
				},
			},
		},
		{
			name: "no acquisition means no checks",
			source: "" +
				"def store(session, item):\n" +
				"    session.insert(item)\n",
			expected: []Issue{},
		},
		{
			name: "nested function sees outer markers as its own",
			source: "" +
				"def outer():\n" +
				"    def inner():\n" +
				"        session = getDbSession()\n" +
				"        return session\n" +
				"    return inner\n",
			expected: []Issue{
				{
					Rule:    pyrules.SessionCloseFinally(),
					Message: "Function 'outer' must close DB sessions in a finally block.",
				},
				{
					Rule:    pyrules.SessionCloseFinally(),
					Message: "Function 'inner' must close DB sessions in a finally block.",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := run(t, tt.source)
			if len(issues) == 0 && len(tt.expected) == 0 {
				return
			}
			deepequal.SideBySide(t, "issues", tt.expected, issues)
		})
	}
}

// TestRunOrder pins the pass ordering: all naming issues come before all
// endpoint issues, which come before all lifecycle issues, whatever the
// source order of the offending lines is.
func TestRunOrder(t *testing.T) {
	issues := run(t, ""+
		"def store(item):\n"+
		"    session = getDbSession()\n"+
		"    Tmp = session\n"+
		"    session.query(item)\n"+
		"\n"+
		"@app.route('/things')\n"+
		"def HandleThings():\n"+
		"    return things\n")

	expected := []Issue{
		{
			Rule:    pyrules.FunctionNameCase(),
			Message: "Function name 'HandleThings' must be lower_snake_case.",
		},
		{
			Rule:    pyrules.VariableNameCase(),
			Message: "Variable name 'Tmp' must be lower_snake_case.",
		},
		{
			Rule:    pyrules.EndpointTryExcept(),
			Message: "Endpoint 'HandleThings' missing try/except block.",
		},
		{
			Rule:    pyrules.EndpointJSONResponse(),
			Message: "Endpoint 'HandleThings' must return a JSON response.",
		},
		{
			Rule:    pyrules.EndpointValidationFirst(),
			Message: "Endpoint 'HandleThings' must have a validation check at the top.",
		},
		{
			Rule:    pyrules.SessionCloseFinally(),
			Message: "Function 'store' must close DB sessions in a finally block.",
		},
	}
	deepequal.SideBySide(t, "issues", expected, issues)
}

func TestReporterNeverDedupes(t *testing.T) {
	var rep Reporter
	rep.Report(pyrules.VariableNameCase(), "Variable name 'X' must be lower_snake_case.")
	rep.Report(pyrules.VariableNameCase(), "Variable name 'X' must be lower_snake_case.")

	if rep.Len() != 2 {
		t.Fatalf("expected both duplicate issues kept, got %d", rep.Len())
	}
}
