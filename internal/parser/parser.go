// Package parser implements the recursive-descent grammar of spec.md
// §4.6 over internal/lexer's token stream, producing an internal/ast tree
// allocated directly on a gc.Heap.
package parser

import (
	"fmt"
	"strconv"

	"github.com/msdscript-go/msdscript/internal/ast"
	"github.com/msdscript-go/msdscript/internal/gc"
	"github.com/msdscript-go/msdscript/internal/lexer"
)

// Parser holds one token of lookahead over the lexer's stream, in the
// teacher's curToken/peekToken style.
type Parser struct {
	h   *gc.Heap
	l   *lexer.Lexer
	cur  lexer.Token
	peek lexer.Token
}

// Parse parses the whole of source as a single top-level expression and
// allocates its AST on h. Input must terminate at end-of-stream after the
// expression; trailing tokens are a parse error.
func Parse(h *gc.Heap, source string) (gc.Ref, error) {
	p := &Parser{h: h, l: lexer.New(source)}
	p.next()
	p.next()

	e, err := p.parseExpr()
	if err != nil {
		return gc.Nil, err
	}
	if p.cur.Type != lexer.EOF {
		return gc.Nil, p.errorf("unexpected input after expression: %q", p.cur.Literal)
	}
	return e, nil
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("parse error at line %d, column %d: %s",
		p.cur.Pos.Line, p.cur.Pos.Column, fmt.Sprintf(format, args...))
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	if p.cur.Type != tt {
		return lexer.Token{}, p.errorf("expected %s, got %s (%q)", tt, p.cur.Type, p.cur.Literal)
	}
	tok := p.cur
	p.next()
	return tok, nil
}

// expr ::= comparg ( '==' expr )?
func (p *Parser) parseExpr() (gc.Ref, error) {
	lhs, err := p.parseComparg()
	if err != nil {
		return gc.Nil, err
	}
	if p.cur.Type == lexer.EQ {
		p.next()
		rhs, err := p.parseExpr()
		if err != nil {
			return gc.Nil, err
		}
		return p.h.Alloc(&ast.Comp{Lhs: lhs, Rhs: rhs}), nil
	}
	return lhs, nil
}

// comparg ::= addend ( '+' comparg )?
func (p *Parser) parseComparg() (gc.Ref, error) {
	lhs, err := p.parseAddend()
	if err != nil {
		return gc.Nil, err
	}
	if p.cur.Type == lexer.PLUS {
		p.next()
		rhs, err := p.parseComparg()
		if err != nil {
			return gc.Nil, err
		}
		return p.h.Alloc(&ast.Add{Lhs: lhs, Rhs: rhs}), nil
	}
	return lhs, nil
}

// addend ::= multi ( '*' addend )?
func (p *Parser) parseAddend() (gc.Ref, error) {
	lhs, err := p.parseMulti()
	if err != nil {
		return gc.Nil, err
	}
	if p.cur.Type == lexer.STAR {
		p.next()
		rhs, err := p.parseAddend()
		if err != nil {
			return gc.Nil, err
		}
		return p.h.Alloc(&ast.Mult{Lhs: lhs, Rhs: rhs}), nil
	}
	return lhs, nil
}

// multi ::= inner ( '(' expr ')' )*  -- left-associative call chain
func (p *Parser) parseMulti() (gc.Ref, error) {
	callee, err := p.parseInner()
	if err != nil {
		return gc.Nil, err
	}
	for p.cur.Type == lexer.LPAREN {
		p.next()
		arg, err := p.parseExpr()
		if err != nil {
			return gc.Nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return gc.Nil, err
		}
		callee = p.h.Alloc(&ast.Call{Callee: callee, Arg: arg})
	}
	return callee, nil
}

// inner ::= number | '(' expr ')' | var
//         | '_true' | '_false'
//         | '_let' var '=' expr '_in' expr
//         | '_if' expr '_then' expr '_else' expr
//         | '_fun' '(' var ')' expr
func (p *Parser) parseInner() (gc.Ref, error) {
	switch p.cur.Type {
	case lexer.INT:
		n, err := strconv.ParseInt(p.cur.Literal, 10, 32)
		if err != nil {
			return gc.Nil, p.errorf("malformed integer literal %q", p.cur.Literal)
		}
		p.next()
		return p.h.Alloc(ast.Num{Value: int32(n)}), nil

	case lexer.LPAREN:
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return gc.Nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return gc.Nil, err
		}
		return e, nil

	case lexer.IDENT:
		name := p.cur.Literal
		p.next()
		return p.h.Alloc(ast.Var{Name: name}), nil

	case lexer.TRUE:
		p.next()
		return p.h.Alloc(ast.Bool{Value: true}), nil

	case lexer.FALSE:
		p.next()
		return p.h.Alloc(ast.Bool{Value: false}), nil

	case lexer.LET:
		p.next()
		nameTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return gc.Nil, err
		}
		if _, err := p.expect(lexer.ASSIGN); err != nil {
			return gc.Nil, err
		}
		rhs, err := p.parseExpr()
		if err != nil {
			return gc.Nil, err
		}
		if _, err := p.expect(lexer.IN); err != nil {
			return gc.Nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return gc.Nil, err
		}
		return p.h.Alloc(&ast.Let{Name: nameTok.Literal, Rhs: rhs, Body: body}), nil

	case lexer.IF:
		p.next()
		test, err := p.parseExpr()
		if err != nil {
			return gc.Nil, err
		}
		if _, err := p.expect(lexer.THEN); err != nil {
			return gc.Nil, err
		}
		thenE, err := p.parseExpr()
		if err != nil {
			return gc.Nil, err
		}
		if _, err := p.expect(lexer.ELSE); err != nil {
			return gc.Nil, err
		}
		elseE, err := p.parseExpr()
		if err != nil {
			return gc.Nil, err
		}
		return p.h.Alloc(&ast.If{Test: test, Then: thenE, Else: elseE}), nil

	case lexer.FUN:
		p.next()
		if _, err := p.expect(lexer.LPAREN); err != nil {
			return gc.Nil, err
		}
		formalTok, err := p.expect(lexer.IDENT)
		if err != nil {
			return gc.Nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return gc.Nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return gc.Nil, err
		}
		return p.h.Alloc(&ast.Fun{Formal: formalTok.Literal, Body: body}), nil

	default:
		return gc.Nil, p.errorf("unexpected token %s (%q)", p.cur.Type, p.cur.Literal)
	}
}
