package review

import (
	"fmt"

	"github.com/sirkon/pyrevu/internal/pyast"
	"github.com/sirkon/pyrevu/internal/pyrules"
)

// checkFunctionNames flags every function definition whose name is not
// lower_snake_case, anywhere in the tree.
func (rv *Reviewer) checkFunctionNames() {
	pyast.Walk(rv.tree, func(n pyast.Node) bool {
		fd, ok := n.(*pyast.FunctionDef)
		if !ok {
			return true
		}

		if !IsValidIdentifier(fd.Name) {
			rv.rep.Report(
				pyrules.FunctionNameCase(),
				fmt.Sprintf("Function name '%s' must be lower_snake_case.", fd.Name),
			)
		}
		return true
	})
}

// checkVariableNames flags plain-name assignment targets that are not
// lower_snake_case. Tuple, list, attribute and any other target shapes are
// silently skipped — an intentional exemption, not an oversight.
func (rv *Reviewer) checkVariableNames() {
	pyast.Walk(rv.tree, func(n pyast.Node) bool {
		asg, ok := n.(*pyast.Assign)
		if !ok {
			return true
		}

		for _, tgt := range asg.Targets {
			name, ok := tgt.(*pyast.Name)
			if !ok {
				continue
			}
			if !IsValidIdentifier(name.Id) {
				rv.rep.Report(
					pyrules.VariableNameCase(),
					fmt.Sprintf("Variable name '%s' must be lower_snake_case.", name.Id),
				)
			}
		}
		return true
	})
}
