package ast

import "github.com/qalam-lang/qalam/internal/lexer"

// Constructors for every Stmt variant, for the same reason as new.go:
// stmtBase's field is unexported so other packages can't build these via
// bare struct literals.

func NewExpressionStmt(line int, expr Expr) *ExpressionStmt {
	return &ExpressionStmt{stmtBase: stmtBase{line: line}, Expression: expr}
}

func NewPrintStmt(line int, expr Expr) *PrintStmt {
	return &PrintStmt{stmtBase: stmtBase{line: line}, Expression: expr}
}

func NewVarStmt(line int, name lexer.Token, init Expr) *VarStmt {
	return &VarStmt{stmtBase: stmtBase{line: line}, Name: name, Initializer: init}
}

func NewBlock(line int, statements []Stmt) *Block {
	return &Block{stmtBase: stmtBase{line: line}, Statements: statements}
}

func NewIfStmt(line int, cond Expr, then, els Stmt) *IfStmt {
	return &IfStmt{stmtBase: stmtBase{line: line}, Condition: cond, Then: then, Else: els}
}

func NewWhileStmt(line int, cond Expr, body Stmt) *WhileStmt {
	return &WhileStmt{stmtBase: stmtBase{line: line}, Condition: cond, Body: body}
}

func NewFunctionStmt(line int, name lexer.Token, params []lexer.Token, body []Stmt) *FunctionStmt {
	return &FunctionStmt{stmtBase: stmtBase{line: line}, Name: name, Params: params, Body: body}
}

func NewReturnStmt(line int, keyword lexer.Token, value Expr) *ReturnStmt {
	return &ReturnStmt{stmtBase: stmtBase{line: line}, Keyword: keyword, Value: value}
}

func NewClassStmt(line int, name lexer.Token, superclass *Variable, methods []*FunctionStmt) *ClassStmt {
	return &ClassStmt{stmtBase: stmtBase{line: line}, Name: name, Superclass: superclass, Methods: methods}
}
