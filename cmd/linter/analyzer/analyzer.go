package analyzer

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const (
	analyzerName = "secretcompare"
	analyzerDoc  = "reports == and != comparisons of secret strings, which leak timing; use crypto/subtle.ConstantTimeCompare"
)

// secretWords are the name fragments that mark an operand as a secret.
var secretWords = []string{"secret", "password", "token", "masterkey"}

// Analyzer checks for non-constant-time comparisons of secrets.
var Analyzer = &analysis.Analyzer{
	Name:     analyzerName,
	Doc:      analyzerDoc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.BinaryExpr)(nil),
	}

	insp.Preorder(nodeFilter, func(node ast.Node) {
		checkComparison(pass, node.(*ast.BinaryExpr))
	})

	return nil, nil
}

func checkComparison(pass *analysis.Pass, expr *ast.BinaryExpr) {
	if expr.Op != token.EQL && expr.Op != token.NEQ {
		return
	}

	if !isString(pass, expr.X) || !isString(pass, expr.Y) {
		return
	}

	// Emptiness checks do not depend on the secret's contents.
	if isEmptyConstant(pass, expr.X) || isEmptyConstant(pass, expr.Y) {
		return
	}

	name, ok := secretName(expr.X)
	if !ok {
		name, ok = secretName(expr.Y)
	}
	if !ok {
		return
	}

	pass.Reportf(expr.OpPos, "%s compared with %s; use subtle.ConstantTimeCompare", name, expr.Op)
}

func isString(pass *analysis.Pass, expr ast.Expr) bool {
	t := pass.TypesInfo.TypeOf(expr)
	if t == nil {
		return false
	}
	basic, ok := t.Underlying().(*types.Basic)
	return ok && basic.Info()&types.IsString != 0
}

func isEmptyConstant(pass *analysis.Pass, expr ast.Expr) bool {
	tv, ok := pass.TypesInfo.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return false
	}
	return constant.StringVal(tv.Value) == ""
}

func secretName(expr ast.Expr) (string, bool) {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name, isSecretWord(e.Name)
	case *ast.SelectorExpr:
		return e.Sel.Name, isSecretWord(e.Sel.Name)
	case *ast.StarExpr:
		return secretName(e.X)
	case *ast.ParenExpr:
		return secretName(e.X)
	case *ast.CallExpr:
		if len(e.Args) == 1 {
			return secretName(e.Args[0])
		}
	}
	return "", false
}

func isSecretWord(name string) bool {
	lower := strings.ToLower(name)
	for _, word := range secretWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
