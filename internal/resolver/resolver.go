// Package resolver performs the static pre-execution pass over a parsed
// Qalam program (spec.md §4.3): it binds every variable/nafs/ulya
// reference to the scope distance it was declared at, and enforces the
// handful of static rules a dynamic evaluator on its own cannot (illegal
// return, illegal nafs/ulya, duplicate locals, self-inheriting classes).
package resolver

import "github.com/qalam-lang/qalam/internal/ast"

// Error is a single static-resolution diagnostic.
type Error struct {
	Line    int
	Message string
}

func (e Error) Error() string { return e.Message }

// functionKind tracks what kind of function body is currently being
// resolved, so radd/nafs rules can be checked contextually.
type functionKind int

const (
	fkNone functionKind = iota
	fkFunction
	fkMethod
	fkInitializer
)

// classKind tracks whether the current class has a superclass, for the
// ulya-without-superclass check.
type classKind int

const (
	ckNone classKind = iota
	ckClass
	ckSubclass
)

// Depths is the resolver's output: an expression's parse-time-assigned ID
// mapped to the number of enclosing environments to skip at runtime
// (spec.md §3 "the resolver's side-table keys on structural identity").
// Absence of an entry means the variable is global.
type Depths map[int]int

// scope maps a name to whether its declaration has been fully defined yet.
type scope map[string]bool

// Resolver walks a parsed statement list and produces a Depths table.
type Resolver struct {
	scopes     []scope
	currentFn  functionKind
	currentCls classKind
	depths     Depths
	errors     []Error
}

// New creates a Resolver with an empty depth table.
func New() *Resolver {
	return &Resolver{depths: make(Depths)}
}

// Errors returns the static errors accumulated so far.
func (r *Resolver) Errors() []Error {
	return r.errors
}

// Depths returns the expression ID → scope-distance table built by Resolve.
func (r *Resolver) Depths() Depths {
	return r.depths
}

func (r *Resolver) errorAt(line int, msg string) {
	r.errors = append(r.errors, Error{Line: line, Message: msg})
}

// Resolve runs the pass over a top-level statement list. It stops
// accumulating further work as soon as any error has been reported
// (spec.md §7 "Resolve errors... Terminate compilation after first
// report"), but the caller is expected to check Errors() either way.
func (r *Resolver) Resolve(stmts []ast.Stmt) {
	r.resolveStmts(stmts)
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		if len(r.errors) > 0 {
			return
		}
		r.resolveStmt(s)
	}
}

// ---- scope stack --------------------------------------------------------

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, scope{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name string, line int) {
	if len(r.scopes) == 0 {
		return
	}
	s := r.scopes[len(r.scopes)-1]
	if _, ok := s[name]; ok {
		r.errorAt(line, "variable '"+name+"' already declared in this scope")
	}
	s[name] = false
}

func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name] = true
}

// resolveLocal walks scopes from innermost outward, recording a depth for
// id at the first match. No match means the reference is global and the
// expression is simply left out of the table (spec.md §4.3).
func (r *Resolver) resolveLocal(id int, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.depths[id] = len(r.scopes) - 1 - i
			return
		}
	}
}

// ---- statements -----------------------------------------------------------

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(st.Expression)
	case *ast.PrintStmt:
		r.resolveExpr(st.Expression)
	case *ast.VarStmt:
		r.declare(st.Name.Lexeme, st.Line())
		if st.Initializer != nil {
			r.resolveExpr(st.Initializer)
		}
		r.define(st.Name.Lexeme)
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(st.Statements)
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(st.Condition)
		r.resolveStmt(st.Then)
		if st.Else != nil {
			r.resolveStmt(st.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(st.Condition)
		r.resolveStmt(st.Body)
	case *ast.FunctionStmt:
		r.declare(st.Name.Lexeme, st.Line())
		r.define(st.Name.Lexeme)
		r.resolveFunction(st, fkFunction)
	case *ast.ReturnStmt:
		if r.currentFn == fkNone {
			r.errorAt(st.Line(), "cannot return from top-level code")
			return
		}
		if st.Value != nil {
			if r.currentFn == fkInitializer {
				r.errorAt(st.Line(), "cannot return a value from an initializer")
				return
			}
			r.resolveExpr(st.Value)
		}
	case *ast.ClassStmt:
		r.resolveClass(st)
	default:
		panic("resolver: unhandled statement node")
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionKind) {
	enclosingFn := r.currentFn
	r.currentFn = kind
	defer func() { r.currentFn = enclosingFn }()

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param.Lexeme, param.Line)
		r.define(param.Lexeme)
	}
	r.resolveStmts(fn.Body)
	r.endScope()
}

func (r *Resolver) resolveClass(c *ast.ClassStmt) {
	enclosingCls := r.currentCls
	r.currentCls = ckClass
	defer func() { r.currentCls = enclosingCls }()

	r.declare(c.Name.Lexeme, c.Line())
	r.define(c.Name.Lexeme)

	if c.Superclass != nil {
		if c.Superclass.Name.Lexeme == c.Name.Lexeme {
			r.errorAt(c.Superclass.Line(), "a class cannot inherit from itself")
			return
		}
		r.currentCls = ckSubclass
		r.resolveExpr(c.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["ulya"] = true
		defer r.endScope()
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["nafs"] = true
	defer r.endScope()

	for _, method := range c.Methods {
		kind := fkMethod
		if method.Name.Lexeme == "khalaq" {
			kind = fkInitializer
		}
		r.resolveFunction(method, kind)
	}
}

// ---- expressions ------------------------------------------------------

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch ex := e.(type) {
	case *ast.Assign:
		r.resolveExpr(ex.Value)
		r.resolveLocal(ex.ID(), ex.Name.Lexeme)
	case *ast.Binary:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *ast.Grouping:
		r.resolveExpr(ex.Expression)
	case *ast.Literal:
		// no sub-expressions, no reference to resolve
	case *ast.Unary:
		r.resolveExpr(ex.Right)
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][ex.Name.Lexeme]; ok && !defined {
				r.errorAt(ex.Line(), "cannot read local variable '"+ex.Name.Lexeme+"' in its own initializer")
				return
			}
		}
		r.resolveLocal(ex.ID(), ex.Name.Lexeme)
	case *ast.Logical:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *ast.Call:
		r.resolveExpr(ex.Callee)
		for _, a := range ex.Args {
			r.resolveExpr(a)
		}
	case *ast.Get:
		r.resolveExpr(ex.Object)
	case *ast.Set:
		r.resolveExpr(ex.Value)
		r.resolveExpr(ex.Object)
	case *ast.This:
		if r.currentCls == ckNone {
			r.errorAt(ex.Line(), "cannot use 'nafs' outside of a class")
			return
		}
		r.resolveLocal(ex.ID(), "nafs")
	case *ast.Super:
		if r.currentCls == ckNone {
			r.errorAt(ex.Line(), "cannot use 'ulya' outside of a class")
			return
		}
		if r.currentCls != ckSubclass {
			r.errorAt(ex.Line(), "cannot use 'ulya' in a class with no superclass")
			return
		}
		r.resolveLocal(ex.ID(), "ulya")
	case *ast.Array:
		for _, el := range ex.Elements {
			r.resolveExpr(el)
		}
	case *ast.GetIndexed:
		r.resolveExpr(ex.Object)
		r.resolveExpr(ex.Index)
	case *ast.SetIndexed:
		r.resolveExpr(ex.Object)
		r.resolveExpr(ex.Index)
		r.resolveExpr(ex.Value)
	default:
		panic("resolver: unhandled expression node")
	}
}
