package analyzer

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

const (
	analyzerName = "nofatal"
	analyzerDoc  = "reports calls that terminate the process (panic, log.Fatal, os.Exit, zerolog Fatal/Panic) outside func main"
)

// Analyzer checks that request handling code returns errors instead of
// terminating the process. Only func main of a main package may exit.
var Analyzer = &analysis.Analyzer{
	Name:     analyzerName,
	Doc:      analyzerDoc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// terminating lists, per package path, the functions and methods that end
// the process or unwind the stack.
var terminating = map[string]map[string]bool{
	"log": {
		"Fatal": true, "Fatalf": true, "Fatalln": true,
		"Panic": true, "Panicf": true, "Panicln": true,
	},
	"os": {
		"Exit": true,
	},
	"github.com/rs/zerolog/log": {
		"Fatal": true, "Panic": true,
	},
	"github.com/rs/zerolog": {
		"Fatal": true, "Panic": true,
	},
}

func run(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	mainBodies := mainFuncBodies(pass)

	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(node ast.Node) {
		call := node.(*ast.CallExpr)

		if strings.HasSuffix(pass.Fset.Position(call.Pos()).Filename, "_test.go") {
			return
		}

		switch fn := typeutil.Callee(pass.TypesInfo, call).(type) {
		case *types.Builtin:
			if fn.Name() == "panic" {
				pass.Reportf(call.Pos(), "panic is forbidden")
			}
		case *types.Func:
			if !isTerminating(fn) || insideAny(call, mainBodies) {
				return
			}
			pass.Reportf(call.Pos(), "%s is forbidden outside func main", displayName(fn))
		}
	})

	return nil, nil
}

func isTerminating(fn *types.Func) bool {
	if fn.Pkg() == nil {
		return false
	}
	return terminating[fn.Pkg().Path()][fn.Name()]
}

func displayName(fn *types.Func) string {
	sig, ok := fn.Type().(*types.Signature)
	if ok && sig.Recv() != nil {
		return fn.Pkg().Name() + ".Logger." + fn.Name()
	}
	return fn.Pkg().Name() + "." + fn.Name()
}

// mainFuncBodies returns the body of func main when the package is a
// command.
func mainFuncBodies(pass *analysis.Pass) []*ast.BlockStmt {
	if pass.Pkg.Name() != "main" {
		return nil
	}

	var bodies []*ast.BlockStmt
	for _, f := range pass.Files {
		for _, decl := range f.Decls {
			funcDecl, ok := decl.(*ast.FuncDecl)
			if ok && funcDecl.Recv == nil && funcDecl.Name.Name == "main" && funcDecl.Body != nil {
				bodies = append(bodies, funcDecl.Body)
			}
		}
	}
	return bodies
}

func insideAny(node ast.Node, bodies []*ast.BlockStmt) bool {
	for _, body := range bodies {
		if node.Pos() >= body.Pos() && node.End() <= body.End() {
			return true
		}
	}
	return false
}
