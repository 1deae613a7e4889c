// Package parser implements a recursive-descent parser that turns a Qalam
// token stream into a statement tree (spec.md §4.2). Grammar productions
// below are named after the spec's own grammar (declaration, statement,
// assignment, logic_or, ...) so the two can be read side by side.
package parser

import (
	"fmt"

	"github.com/qalam-lang/qalam/internal/ast"
	"github.com/qalam-lang/qalam/internal/lexer"
)

// maxArgs is the parameter/argument count cap (spec.md §4.2, §8).
const maxArgs = 255

// Error is a single parse-time diagnostic.
type Error struct {
	Line    int
	Message string
}

func (e Error) Error() string { return e.Message }

// parseError unwinds a single declaration when a production hits a token
// it cannot recover from locally; declaration() catches it and calls
// synchronize (spec.md §4.2 "Errors").
type parseError struct{ msg string }

func (e parseError) Error() string { return e.msg }

// Parser is a single-pass recursive-descent parser over a fixed token slice.
type Parser struct {
	tokens  []lexer.Token
	current int
	nextID  int
	errors  []Error
}

// New creates a Parser over tokens, which must be terminated by an EOF
// token (as produced by lexer.Lexer.ScanTokens).
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns the parse errors accumulated so far.
func (p *Parser) Errors() []Error {
	return p.errors
}

func (p *Parser) newID() int {
	p.nextID++
	return p.nextID
}

// ParseProgram parses `program → declaration* EOF` and returns the
// top-level statement list. Parsing never panics to the caller: each
// failed declaration is recorded in Errors and recovered via synchronize.
func (p *Parser) ParseProgram() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// ---- token cursor -------------------------------------------------------

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == lexer.EOF
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind lexer.Kind) bool {
	if p.isAtEnd() {
		return kind == lexer.EOF
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...lexer.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past an expected token kind, or records msg against
// the offending token and unwinds the current declaration.
func (p *Parser) consume(kind lexer.Kind, msg string) lexer.Token {
	if p.check(kind) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), msg))
}

func (p *Parser) errorAt(tok lexer.Token, msg string) parseError {
	p.errors = append(p.errors, Error{Line: tok.Line, Message: msg})
	return parseError{msg: msg}
}

// synchronize discards tokens until a likely statement boundary, so one
// malformed declaration doesn't stop the whole file's diagnostics.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.current > 0 && p.previous().Kind == lexer.SEMICOLON {
			return
		}
		switch p.peek().Kind {
		case lexer.CLASS, lexer.FUN, lexer.VAR, lexer.FOR, lexer.IF,
			lexer.WHILE, lexer.PRINT, lexer.RETURN:
			return
		}
		p.advance()
	}
}

// ---- declarations ---------------------------------------------------------

func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	switch {
	case p.match(lexer.CLASS):
		return p.classDeclaration()
	case p.match(lexer.FUN):
		return p.function()
	case p.match(lexer.VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

// classDecl → "kitab" IDENT ("ibn" IDENT)? "{" function* "}"
func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(lexer.IDENT, "expected class name")

	var superclass *ast.Variable
	if p.match(lexer.INHERITS) {
		superName := p.consume(lexer.IDENT, "expected superclass name")
		superclass = ast.NewVariable(p.newID(), superName.Line, superName)
	}

	p.consume(lexer.LBRACE, "expected '{' before class body")

	var methods []*ast.FunctionStmt
	for !p.check(lexer.RBRACE) && !p.isAtEnd() {
		methods = append(methods, p.function())
	}
	p.consume(lexer.RBRACE, "expected '}' after class body")

	return ast.NewClassStmt(name.Line, name, superclass, methods)
}

// funDecl → "amal" function; function → IDENT "(" params? ")" "{" declaration* "}"
// Reused verbatim for class methods, which have no leading "amal".
func (p *Parser) function() *ast.FunctionStmt {
	name := p.consume(lexer.IDENT, "expected a name")
	p.consume(lexer.LPAREN, fmt.Sprintf("expected '(' after '%s'", name.Lexeme))

	var params []lexer.Token
	if !p.check(lexer.RPAREN) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), fmt.Sprintf("cannot have more than %d parameters", maxArgs))
			}
			params = append(params, p.consume(lexer.IDENT, "expected parameter name"))
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.consume(lexer.RPAREN, "expected ')' after parameters")
	p.consume(lexer.LBRACE, "expected '{' before function body")
	body := p.blockBody()

	return ast.NewFunctionStmt(name.Line, name, params, body)
}

// varDecl → "niyya" IDENT ("=" expression)? ";"
func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(lexer.IDENT, "expected variable name")

	var initializer ast.Expr
	if p.match(lexer.ASSIGN) {
		initializer = p.expression()
	}
	p.consume(lexer.SEMICOLON, "expected ';' after variable declaration")
	return ast.NewVarStmt(name.Line, name, initializer)
}

// ---- statements -----------------------------------------------------------

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(lexer.PRINT):
		return p.printStatement()
	case p.match(lexer.IF):
		return p.ifStatement()
	case p.match(lexer.WHILE):
		return p.whileStatement()
	case p.match(lexer.FOR):
		return p.forStatement()
	case p.match(lexer.RETURN):
		return p.returnStatement()
	case p.check(lexer.LBRACE):
		line := p.peek().Line
		p.advance()
		return ast.NewBlock(line, p.blockBody())
	default:
		return p.expressionStatement()
	}
}

// block → "{" declaration* "}"; the opening brace has already been consumed.
func (p *Parser) blockBody() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(lexer.RBRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(lexer.RBRACE, "expected '}' after block")
	return stmts
}

func (p *Parser) printStatement() ast.Stmt {
	line := p.previous().Line
	value := p.expression()
	p.consume(lexer.SEMICOLON, "expected ';' after value")
	return ast.NewPrintStmt(line, value)
}

// ifStmt → "shart" "(" expression ")" statement ("illa" statement)?
func (p *Parser) ifStatement() ast.Stmt {
	line := p.previous().Line
	p.consume(lexer.LPAREN, "expected '(' after 'shart'")
	condition := p.expression()
	p.consume(lexer.RPAREN, "expected ')' after if condition")

	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(lexer.ELSE) {
		elseBranch = p.statement()
	}
	return ast.NewIfStmt(line, condition, thenBranch, elseBranch)
}

// whileStmt → "baynama" "(" expression ")" statement
func (p *Parser) whileStatement() ast.Stmt {
	line := p.previous().Line
	p.consume(lexer.LPAREN, "expected '(' after 'baynama'")
	condition := p.expression()
	p.consume(lexer.RPAREN, "expected ')' after while condition")
	body := p.statement()
	return ast.NewWhileStmt(line, condition, body)
}

// forStmt → "tawaf" "(" (varDecl | exprStmt | ";") expression? ";" expression? ")" statement
// Desugars to `{ init; baynama (cond) { body; increment; } }` at parse time
// (spec.md §4.2); there is no dedicated For AST node. Absent clauses add
// no wrapper: without an initializer the result is the bare WhileStmt, and
// without an increment the body is not wrapped in a Block.
func (p *Parser) forStatement() ast.Stmt {
	line := p.previous().Line
	p.consume(lexer.LPAREN, "expected '(' after 'tawaf'")

	var initializer ast.Stmt
	switch {
	case p.match(lexer.SEMICOLON):
		initializer = nil
	case p.match(lexer.VAR):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition ast.Expr
	if !p.check(lexer.SEMICOLON) {
		condition = p.expression()
	}
	p.consume(lexer.SEMICOLON, "expected ';' after loop condition")

	var increment ast.Expr
	if !p.check(lexer.RPAREN) {
		increment = p.expression()
	}
	p.consume(lexer.RPAREN, "expected ')' after for clauses")

	body := p.statement()

	if increment != nil {
		body = ast.NewBlock(line, []ast.Stmt{body, ast.NewExpressionStmt(increment.Line(), increment)})
	}
	if condition == nil {
		condition = ast.NewLiteral(p.newID(), line, true)
	}
	body = ast.NewWhileStmt(line, condition, body)

	if initializer != nil {
		body = ast.NewBlock(line, []ast.Stmt{initializer, body})
	}
	return body
}

// returnStmt → "radd" expression? ";"
func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(lexer.SEMICOLON) {
		value = p.expression()
	}
	p.consume(lexer.SEMICOLON, "expected ';' after return value")
	return ast.NewReturnStmt(keyword.Line, keyword, value)
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(lexer.SEMICOLON, "expected ';' after expression")
	return ast.NewExpressionStmt(expr.Line(), expr)
}

// ---- expressions ------------------------------------------------------

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment → (call ".")? IDENT "=" assignment
//            | call "[" expression "]" "=" assignment
//            | logic_or
//
// Parsed by evaluating the left side as an ordinary expression first and
// reinterpreting it as an assignment target when '=' follows, rather than
// a separate lookahead production — the target shapes (Variable, Get,
// GetIndexed) are exactly the nodes logic_or can already produce.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(lexer.ASSIGN) {
		equals := p.previous()
		value := p.assignment()

		switch e := expr.(type) {
		case *ast.Variable:
			return ast.NewAssign(p.newID(), e.Line(), e.Name, value)
		case *ast.Get:
			return ast.NewSet(p.newID(), e.Line(), e.Object, e.Name, value)
		case *ast.GetIndexed:
			return ast.NewSetIndexed(p.newID(), e.Line(), e.Object, e.Bracket, e.Index, value)
		}

		p.errorAt(equals, "invalid assignment target")
		return expr
	}

	return expr
}

// logic_or → logic_and ("aw" logic_and)*
func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(lexer.OR) {
		op := p.previous()
		right := p.and()
		expr = ast.NewLogical(p.newID(), expr.Line(), expr, op, right)
	}
	return expr
}

// logic_and → equality ("wa" equality)*
func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(lexer.AND) {
		op := p.previous()
		right := p.equality()
		expr = ast.NewLogical(p.newID(), expr.Line(), expr, op, right)
	}
	return expr
}

// equality → comparison (("!="|"==") comparison)*
func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(lexer.NOT_EQ, lexer.EQ_EQ) {
		op := p.previous()
		right := p.comparison()
		expr = ast.NewBinary(p.newID(), expr.Line(), expr, op, right)
	}
	return expr
}

// comparison → term ((">"|">="|"<"|"<=") term)*
func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(lexer.GREATER, lexer.GREATER_EQ, lexer.LESS, lexer.LESS_EQ) {
		op := p.previous()
		right := p.term()
		expr = ast.NewBinary(p.newID(), expr.Line(), expr, op, right)
	}
	return expr
}

// term → factor (("-"|"+") factor)*
func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(lexer.MINUS, lexer.PLUS) {
		op := p.previous()
		right := p.factor()
		expr = ast.NewBinary(p.newID(), expr.Line(), expr, op, right)
	}
	return expr
}

// factor → unary (("/"|"*") unary)*
func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(lexer.SLASH, lexer.STAR) {
		op := p.previous()
		right := p.unary()
		expr = ast.NewBinary(p.newID(), expr.Line(), expr, op, right)
	}
	return expr
}

// unary → ("!"|"la"|"-") unary | call
// "la" is a keyword alias for "!" (spec.md §6.2); both produce the same
// Unary node and are treated identically by the interpreter.
func (p *Parser) unary() ast.Expr {
	if p.match(lexer.BANG, lexer.NOT, lexer.MINUS) {
		op := p.previous()
		right := p.unary()
		return ast.NewUnary(p.newID(), op.Line, op, right)
	}
	return p.call()
}

// call → primary ( "(" args? ")" | "." IDENT | "[" expression "]" )*
// Postfix operators left-associate: the loop re-wraps expr on each
// iteration, so `a.b.c(x)[i]` builds GetIndexed(Call(Get(Get(a,b),c),[x]),i).
func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(lexer.LPAREN):
			expr = p.finishCall(expr)
		case p.match(lexer.DOT):
			name := p.consume(lexer.IDENT, "expected property name after '.'")
			expr = ast.NewGet(p.newID(), expr.Line(), expr, name)
		case p.match(lexer.LBRACKET):
			bracket := p.previous()
			index := p.expression()
			p.consume(lexer.RBRACKET, "expected ']' after index")
			expr = ast.NewGetIndexed(p.newID(), expr.Line(), expr, bracket, index)
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(lexer.RPAREN) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), fmt.Sprintf("cannot have more than %d arguments", maxArgs))
			}
			args = append(args, p.expression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	paren := p.consume(lexer.RPAREN, "expected ')' after arguments")
	return ast.NewCall(p.newID(), callee.Line(), callee, paren, args)
}

// primary → "batil"|"haqq"|"ghaib"|NUMBER|STRING
//         | "nafs"|"ulya" "." IDENT
//         | IDENT | "(" expression ")" | "[" args? "]"
func (p *Parser) primary() ast.Expr {
	tok := p.peek()
	switch {
	case p.match(lexer.FALSE):
		return ast.NewLiteral(p.newID(), tok.Line, false)
	case p.match(lexer.TRUE):
		return ast.NewLiteral(p.newID(), tok.Line, true)
	case p.match(lexer.NIL):
		return ast.NewLiteral(p.newID(), tok.Line, nil)
	case p.match(lexer.NUMBER):
		return ast.NewLiteral(p.newID(), tok.Line, p.previous().Literal.Number)
	case p.match(lexer.STRING):
		return ast.NewLiteral(p.newID(), tok.Line, p.previous().Literal.Str)
	case p.match(lexer.THIS):
		return ast.NewThis(p.newID(), tok.Line, tok)
	case p.match(lexer.SUPER):
		keyword := p.previous()
		p.consume(lexer.DOT, "expected '.' after 'ulya'")
		method := p.consume(lexer.IDENT, "expected superclass method name")
		return ast.NewSuper(p.newID(), keyword.Line, keyword, method)
	case p.match(lexer.IDENT):
		return ast.NewVariable(p.newID(), tok.Line, tok)
	case p.match(lexer.LPAREN):
		expr := p.expression()
		p.consume(lexer.RPAREN, "expected ')' after expression")
		return ast.NewGrouping(p.newID(), tok.Line, expr)
	case p.match(lexer.LBRACKET):
		bracket := p.previous()
		var elements []ast.Expr
		if !p.check(lexer.RBRACKET) {
			for {
				elements = append(elements, p.expression())
				if !p.match(lexer.COMMA) {
					break
				}
			}
		}
		p.consume(lexer.RBRACKET, "expected ']' after array elements")
		return ast.NewArray(p.newID(), bracket.Line, bracket, elements)
	}

	panic(p.errorAt(tok, fmt.Sprintf("unexpected token '%s'", tok.Lexeme)))
}
