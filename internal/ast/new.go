package ast

import "github.com/qalam-lang/qalam/internal/lexer"

// Constructors for every Expr variant. The parser calls these instead of
// building struct literals directly so that every expression node is
// guaranteed a unique id (see exprBase) without the parser needing access
// to unexported fields.

func NewAssign(id, line int, name lexer.Token, value Expr) *Assign {
	return &Assign{exprBase: exprBase{id: id, line: line}, Name: name, Value: value}
}

func NewBinary(id, line int, left Expr, op lexer.Token, right Expr) *Binary {
	return &Binary{exprBase: exprBase{id: id, line: line}, Left: left, Operator: op, Right: right}
}

func NewGrouping(id, line int, expr Expr) *Grouping {
	return &Grouping{exprBase: exprBase{id: id, line: line}, Expression: expr}
}

func NewLiteral(id, line int, value interface{}) *Literal {
	return &Literal{exprBase: exprBase{id: id, line: line}, Value: value}
}

func NewUnary(id, line int, op lexer.Token, right Expr) *Unary {
	return &Unary{exprBase: exprBase{id: id, line: line}, Operator: op, Right: right}
}

func NewVariable(id, line int, name lexer.Token) *Variable {
	return &Variable{exprBase: exprBase{id: id, line: line}, Name: name}
}

func NewLogical(id, line int, left Expr, op lexer.Token, right Expr) *Logical {
	return &Logical{exprBase: exprBase{id: id, line: line}, Left: left, Operator: op, Right: right}
}

func NewCall(id, line int, callee Expr, paren lexer.Token, args []Expr) *Call {
	return &Call{exprBase: exprBase{id: id, line: line}, Callee: callee, Paren: paren, Args: args}
}

func NewGet(id, line int, object Expr, name lexer.Token) *Get {
	return &Get{exprBase: exprBase{id: id, line: line}, Object: object, Name: name}
}

func NewSet(id, line int, object Expr, name lexer.Token, value Expr) *Set {
	return &Set{exprBase: exprBase{id: id, line: line}, Object: object, Name: name, Value: value}
}

func NewThis(id, line int, keyword lexer.Token) *This {
	return &This{exprBase: exprBase{id: id, line: line}, Keyword: keyword}
}

func NewSuper(id, line int, keyword, method lexer.Token) *Super {
	return &Super{exprBase: exprBase{id: id, line: line}, Keyword: keyword, Method: method}
}

func NewArray(id, line int, bracket lexer.Token, elements []Expr) *Array {
	return &Array{exprBase: exprBase{id: id, line: line}, Bracket: bracket, Elements: elements}
}

func NewGetIndexed(id, line int, object Expr, bracket lexer.Token, index Expr) *GetIndexed {
	return &GetIndexed{exprBase: exprBase{id: id, line: line}, Object: object, Bracket: bracket, Index: index}
}

func NewSetIndexed(id, line int, object Expr, bracket lexer.Token, index, value Expr) *SetIndexed {
	return &SetIndexed{exprBase: exprBase{id: id, line: line}, Object: object, Bracket: bracket, Index: index, Value: value}
}
