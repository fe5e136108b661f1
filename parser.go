// parser.go — the recursive-descent parser (spec §6: "parser that yields
// an AST plus source spans").
//
// Grounded on the teacher's parser.go: a hand-written Pratt/precedence-
// climbing expression parser plus a plain recursive-descent layer for
// statement-like forms, producing AST nodes with spans attached at
// construction time rather than computed after the fact. The grammar
// itself — let/fun/if/switch/records/lists/string interpolation/imports/
// type and contract annotations/enum tags/forall types/the `|>` pipe — is
// new; it shares almost no productions with the teacher's do/end-block
// surface syntax, so this file is a from-scratch grammar written in the
// teacher's parsing idiom, not an edited copy.
package nickel

import "fmt"

type Parser struct {
	sm     *SourceMap
	src    SourceID
	toks   []Token
	pos    int
}

func NewParser(sm *SourceMap, src SourceID, toks []Token) *Parser {
	return &Parser{sm: sm, src: src, toks: toks}
}

// ParseProgram lexes and parses a whole source file into a single Term.
func ParseProgram(sm *SourceMap, src SourceID) (*Term, *ParseError) {
	lx := NewLexer(sm, src)
	toks, lerr := lx.Tokenize()
	if lerr != nil {
		return nil, lerr
	}
	p := NewParser(sm, src, toks)
	term, perr := p.parseExprTop()
	if perr != nil {
		return nil, perr
	}
	if p.cur().Kind != TkEOF {
		return nil, p.errf("unexpected trailing input")
	}
	return term, nil
}

// TryParse parses src as a standalone, throwaway program (registering a
// private source entry), for callers that only need to know whether src is
// a syntactically complete expression — the REPL's incremental-input probe.
func TryParse(src string) (*Term, *ParseError) {
	sm := NewSourceMap()
	id := sm.Add("<probe>", src)
	return ParseProgram(sm, id)
}

func (p *Parser) cur() Token  { return p.toks[p.pos] }
func (p *Parser) peek(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}
func (p *Parser) advance() Token { t := p.toks[p.pos]; if p.pos < len(p.toks)-1 { p.pos++ }; return t }

func (p *Parser) span(start int) *Span { return &Span{Source: p.src, Start: start, End: p.toks[p.pos].Start} }

func (p *Parser) errf(format string, args ...any) *ParseError {
	t := p.cur()
	return &ParseError{Pos: &Span{Source: p.src, Start: t.Start, End: t.End}, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) expect(kind TokenKind, what string) (Token, *ParseError) {
	if p.cur().Kind != kind {
		return Token{}, p.errf("expected %s", what)
	}
	return p.advance(), nil
}

// parseExprTop is the entry point used both for a whole program and for a
// re-entrant parse of an interpolated string fragment.
func (p *Parser) parseExprTop() (*Term, *ParseError) {
	return p.parseExpr()
}

func (p *Parser) parseExpr() (*Term, *ParseError) {
	switch p.cur().Kind {
	case TkKwLet:
		return p.parseLet()
	case TkKwFun:
		return p.parseFun()
	case TkKwIf:
		return p.parseIf()
	case TkKwSwitch:
		return p.parseSwitch()
	default:
		return p.parsePipe()
	}
}

func (p *Parser) parseLet() (*Term, *ParseError) {
	start := p.cur().Start
	p.advance() // let
	nameTok, err := p.expect(TkIdent, "an identifier after `let`")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TkEquals, "`=` after `let " + nameTok.Text + "`"); err != nil {
		return nil, err
	}
	bound, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TkKwIn, "`in` after a `let` binding"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return Let(p.span(start), NewIdent(nameTok.Text, tokSpan(p.src, nameTok)), bound, body), nil
}

func tokSpan(src SourceID, t Token) *Span { return &Span{Source: src, Start: t.Start, End: t.End} }

func (p *Parser) parseFun() (*Term, *ParseError) {
	start := p.cur().Start
	p.advance() // fun

	if p.cur().Kind == TkLBrace || (p.cur().Kind == TkIdent && p.peek(1).Kind == TkAt) {
		var name *Ident
		if p.cur().Kind == TkIdent {
			nameTok := p.advance()
			id := NewIdent(nameTok.Text, tokSpan(p.src, nameTok))
			name = &id
			p.advance() // '@'
		}
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TkFatArrow, "`=>` after a function pattern"); err != nil {
			return nil, err
		}
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return FunPattern(p.span(start), name, pat, body), nil
	}

	paramTok, err := p.expect(TkIdent, "a parameter name after `fun`")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TkFatArrow, "`=>` after a function parameter"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return Fun(p.span(start), NewIdent(paramTok.Text, tokSpan(p.src, paramTok)), body), nil
}

func (p *Parser) parseIf() (*Term, *ParseError) {
	start := p.cur().Start
	p.advance() // if
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TkKwThen, "`then` after an `if` condition"); err != nil {
		return nil, err
	}
	thenB, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TkKwElse, "`else` after an `if ... then` branch"); err != nil {
		return nil, err
	}
	elseB, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return If(p.span(start), cond, thenB, elseB), nil
}

func (p *Parser) parseSwitch() (*Term, *ParseError) {
	start := p.cur().Start
	p.advance() // switch
	// The scrutinee is a unary expression: an application would consume
	// the `{` of the case block as its argument.
	scrut, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TkLBrace, "`{` after a `switch` scrutinee"); err != nil {
		return nil, err
	}
	cases := map[string]*Term{}
	var def *Term
	sawDefault := false
	for p.cur().Kind != TkRBrace {
		if p.cur().Kind == TkIdent && p.cur().Text == "_" {
			if sawDefault {
				return nil, p.errf("a `switch` may have only one `_ =>` default case")
			}
			sawDefault = true
			p.advance()
			if _, err := p.expect(TkFatArrow, "`=>` after `_`"); err != nil {
				return nil, err
			}
			branch, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			def = branch
		} else {
			tagTok, err := p.expect(TkEnumTag, "an enum tag (`'Tag`) or `_` in a switch case")
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TkFatArrow, "`=>` after a switch case tag"); err != nil {
				return nil, err
			}
			branch, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, ok := cases[tagTok.Text]; ok {
				return nil, &ParseError{Pos: tokSpan(p.src, tagTok), Msg: "duplicate switch case `'" + tagTok.Text + "`"}
			}
			cases[tagTok.Text] = branch
		}
		if p.cur().Kind == TkComma {
			p.advance()
		}
	}
	p.advance() // }
	return Switch(p.span(start), scrut, cases, def), nil
}

func (p *Parser) parsePipe() (*Term, *ParseError) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == TkPipeGt {
		start := left.Pos.Start
		p.advance()
		fn, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		left = App(p.span(start), fn, left)
	}
	return left, nil
}

// binOpLevel builds one precedence-climbing level; ops maps a token kind
// to the Op it emits.
func (p *Parser) binOpLevel(next func() (*Term, *ParseError), ops map[TokenKind]Op) (*Term, *ParseError) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.cur().Kind]
		if !ok {
			return left, nil
		}
		start := left.Pos.Start
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = Op2(p.span(start), op, left, right)
	}
}

func (p *Parser) parseOr() (*Term, *ParseError) {
	return p.binOpLevel(p.parseAnd, map[TokenKind]Op{TkOrOr: OpOr})
}
func (p *Parser) parseAnd() (*Term, *ParseError) {
	return p.binOpLevel(p.parseEq, map[TokenKind]Op{TkAndAnd: OpAnd})
}
func (p *Parser) parseEq() (*Term, *ParseError) {
	return p.binOpLevel(p.parseRel, map[TokenKind]Op{TkEqEq: OpEq, TkNeq: OpNeq})
}
func (p *Parser) parseRel() (*Term, *ParseError) {
	return p.binOpLevel(p.parseAdd, map[TokenKind]Op{TkLt: OpLt, TkLe: OpLeq, TkGt: OpGt, TkGe: OpGeq})
}
func (p *Parser) parseAdd() (*Term, *ParseError) {
	return p.binOpLevel(p.parseMul, map[TokenKind]Op{TkPlus: OpAdd, TkMinus: OpSub})
}
func (p *Parser) parseMul() (*Term, *ParseError) {
	return p.binOpLevel(p.parseMerge, map[TokenKind]Op{TkStar: OpMul, TkSlash: OpDiv, TkPercent: OpMod})
}
func (p *Parser) parseMerge() (*Term, *ParseError) {
	return p.binOpLevel(p.parseAnnot, map[TokenKind]Op{TkAmp: OpMerge})
}

// parseAnnot attaches `: Type` and `| contract` / `| default` / `| doc
// "..."` suffixes to an application expression, producing a MetaValue
// when any are present (spec §4.6: "An annotation t : T elaborates to a
// contract application at run time").
func (p *Parser) parseAnnot() (*Term, *ParseError) {
	start := p.cur().Start
	val, err := p.parseApp()
	if err != nil {
		return nil, err
	}
	var typ *Type
	var contracts []*Term
	var doc *string
	priority := PriorityNormal
	any := false

	if p.cur().Kind == TkColon {
		p.advance()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		typ = t
		any = true
	}
	for p.cur().Kind == TkPipe {
		p.advance()
		switch {
		case p.cur().Kind == TkKwDefault:
			p.advance()
			priority = PriorityDefault
		case p.cur().Kind == TkKwDoc:
			p.advance()
			s, err := p.expect(TkString, "a string literal after `doc`")
			if err != nil {
				return nil, err
			}
			decoded, derr := decodeLiteralString(s.Text)
			if derr != nil {
				return nil, &ParseError{Pos: tokSpan(p.src, s), Msg: derr.Error()}
			}
			doc = &decoded
		default:
			c, err := p.parseApp()
			if err != nil {
				return nil, err
			}
			contracts = append(contracts, c)
		}
		any = true
	}
	if !any {
		return val, nil
	}
	return MkMetaValue(p.span(start), &MetaValueData{
		Doc: doc, Type: typ, Contracts: contracts, Priority: priority, Value: val,
	}), nil
}

func (p *Parser) parseApp() (*Term, *ParseError) {
	fn, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.startsPrimary() {
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		fn = App(&Span{Source: p.src, Start: fn.Pos.Start, End: arg.Pos.End}, fn, arg)
	}
	return fn, nil
}

// startsPrimary reports whether the current token can begin a function
// argument in application position, so `f x y` parses as nested App
// without a separate call-syntax token.
func (p *Parser) startsPrimary() bool {
	switch p.cur().Kind {
	case TkIdent, TkNum, TkString, TkEnumTag, TkPrimOp, TkLParen, TkLBracket, TkLBrace,
		TkKwTrue, TkKwFalse, TkKwNull, TkKwImport, TkBarBracket:
		return true
	default:
		return false
	}
}

func (p *Parser) parseUnary() (*Term, *ParseError) {
	start := p.cur().Start
	switch p.cur().Kind {
	case TkMinus:
		p.advance()
		v, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Op1(p.span(start), OpNeg, v), nil
	case TkBang:
		p.advance()
		v, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Op1(p.span(start), OpNot, v), nil
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() (*Term, *ParseError) {
	term, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Kind {
		case TkDot:
			p.advance()
			fieldTok, err := p.expect(TkIdent, "a field name after `.`")
			if err != nil {
				return nil, err
			}
			term = FieldAccess(&Span{Source: p.src, Start: term.Pos.Start, End: fieldTok.End},
				term, NewIdent(fieldTok.Text, tokSpan(p.src, fieldTok)))
			continue

		case TkDollar:
			// `r$[k = v]`: dynamic field extend, spec's record `$[k=v]`
			// surface form for `%record_extend%`.
			p.advance()
			if _, err := p.expect(TkLBracket, "`[` after `$`"); err != nil {
				return nil, err
			}
			key, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TkEquals, "`=` in a dynamic field extend"); err != nil {
				return nil, err
			}
			val, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			endTok, err := p.expect(TkRBracket, "`]` to close a dynamic field extend")
			if err != nil {
				return nil, err
			}
			term = OpN(&Span{Source: p.src, Start: term.Pos.Start, End: endTok.End}, OpRecordExtend, []*Term{term, key, val})
			continue

		case TkMinusDollar:
			// `r-$[k]`: dynamic field remove, spec's record `-$` surface
			// form for `%record_remove%`.
			p.advance()
			if _, err := p.expect(TkLBracket, "`[` after `-$`"); err != nil {
				return nil, err
			}
			key, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			endTok, err := p.expect(TkRBracket, "`]` to close a dynamic field remove")
			if err != nil {
				return nil, err
			}
			term = Op2(&Span{Source: p.src, Start: term.Pos.Start, End: endTok.End}, OpRecordRemove, term, key)
			continue
		}
		break
	}
	return term, nil
}

func (p *Parser) parsePrimary() (*Term, *ParseError) {
	start := p.cur().Start
	switch p.cur().Kind {
	case TkNum:
		t := p.advance()
		return Num(tokSpan(p.src, t), t.Num), nil
	case TkKwTrue:
		p.advance()
		return Bool(p.span(start), true), nil
	case TkKwFalse:
		p.advance()
		return Bool(p.span(start), false), nil
	case TkKwNull:
		p.advance()
		return Null(p.span(start)), nil
	case TkString:
		t := p.advance()
		return p.buildStrChunks(tokSpan(p.src, t), t.Text)
	case TkEnumTag:
		t := p.advance()
		return Enum(tokSpan(p.src, t), t.Text), nil
	case TkIdent:
		t := p.advance()
		return Var(tokSpan(p.src, t), NewIdent(t.Text, tokSpan(p.src, t))), nil
	case TkPrimOp:
		return p.parsePrimOpCall()
	case TkKwImport:
		p.advance()
		s, err := p.expect(TkString, "a string literal after `import`")
		if err != nil {
			return nil, err
		}
		decoded, derr := decodeLiteralString(s.Text)
		if derr != nil {
			return nil, &ParseError{Pos: tokSpan(p.src, s), Msg: derr.Error()}
		}
		return Import(p.span(start), decoded), nil
	case TkLParen:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TkRParen, "`)`"); err != nil {
			return nil, err
		}
		return inner, nil
	case TkLBracket:
		return p.parseList()
	case TkLBrace:
		return p.parseRecord()
	case TkKwLet, TkKwFun, TkKwIf, TkKwSwitch:
		return p.parseExpr()
	}
	return nil, p.errf("unexpected token in expression")
}

func (p *Parser) parsePrimOpCall() (*Term, *ParseError) {
	t := p.advance()
	op := Op(t.Text)
	n, ok := opArity[op]
	if !ok {
		return nil, &ParseError{Pos: tokSpan(p.src, t), Msg: "unknown primitive operator `%" + t.Text + "%`"}
	}
	args := make([]*Term, 0, n)
	for i := 0; i < n; i++ {
		a, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	span := tokSpan(p.src, t)
	switch n {
	case 1:
		return Op1(span, op, args[0]), nil
	case 2:
		return Op2(span, op, args[0], args[1]), nil
	default:
		return OpN(span, op, args), nil
	}
}

func (p *Parser) parseList() (*Term, *ParseError) {
	start := p.cur().Start
	p.advance() // [
	var elems []*Term
	for p.cur().Kind != TkRBracket {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.cur().Kind == TkComma {
			p.advance()
		} else {
			break
		}
	}
	if _, err := p.expect(TkRBracket, "`]`"); err != nil {
		return nil, err
	}
	return List(p.span(start), elems), nil
}

func (p *Parser) parseRecord() (*Term, *ParseError) {
	start := p.cur().Start
	p.advance() // {
	fields := map[string]*Term{}
	open := false
	for p.cur().Kind != TkRBrace {
		if p.cur().Kind == TkDotDot {
			p.advance()
			open = true
			break
		}
		nameTok, err := p.expect(TkIdent, "a field name in a record literal")
		if err != nil {
			return nil, err
		}
		var typ *Type
		var contracts []*Term
		var doc *string
		priority := PriorityNormal
		for p.cur().Kind == TkColon || p.cur().Kind == TkPipe {
			if p.cur().Kind == TkColon {
				p.advance()
				t, err := p.parseType()
				if err != nil {
					return nil, err
				}
				typ = t
				continue
			}
			p.advance() // |
			switch {
			case p.cur().Kind == TkKwDefault:
				p.advance()
				priority = PriorityDefault
			case p.cur().Kind == TkKwDoc:
				p.advance()
				s, err := p.expect(TkString, "a string literal after `doc`")
				if err != nil {
					return nil, err
				}
				decoded, derr := decodeLiteralString(s.Text)
				if derr != nil {
					return nil, &ParseError{Pos: tokSpan(p.src, s), Msg: derr.Error()}
				}
				doc = &decoded
			default:
				c, err := p.parseApp()
				if err != nil {
					return nil, err
				}
				contracts = append(contracts, c)
			}
		}
		var value *Term
		if p.cur().Kind == TkEquals {
			p.advance()
			v, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			value = v
		}
		if _, exists := fields[nameTok.Text]; exists {
			return nil, &ParseError{Pos: tokSpan(p.src, nameTok), Msg: "duplicate field `" + nameTok.Text + "` in record literal"}
		}
		if typ != nil || len(contracts) > 0 || doc != nil || priority == PriorityDefault {
			fields[nameTok.Text] = MkMetaValue(tokSpan(p.src, nameTok), &MetaValueData{
				Doc: doc, Type: typ, Contracts: contracts, Priority: priority, Value: value,
			})
		} else if value != nil {
			fields[nameTok.Text] = value
		} else {
			return nil, &ParseError{Pos: tokSpan(p.src, nameTok), Msg: "field `" + nameTok.Text + "` has no value"}
		}
		if p.cur().Kind == TkComma {
			p.advance()
		} else {
			break
		}
	}
	if _, err := p.expect(TkRBrace, "`}`"); err != nil {
		return nil, err
	}
	return Record(p.span(start), fields, open), nil
}

// parsePattern parses a FunPattern's `{ ... }` destructuring pattern.
func (p *Parser) parsePattern() (*Pattern, *ParseError) {
	if _, err := p.expect(TkLBrace, "`{` to start a destructuring pattern"); err != nil {
		return nil, err
	}
	pat := &Pattern{}
	for p.cur().Kind != TkRBrace {
		if p.cur().Kind == TkDotDot {
			p.advance()
			pat.Open = true
			if p.cur().Kind == TkIdent {
				t := p.advance()
				id := NewIdent(t.Text, tokSpan(p.src, t))
				pat.Rest = &id
			}
			break
		}
		fieldTok, err := p.expect(TkIdent, "a field name in a destructuring pattern")
		if err != nil {
			return nil, err
		}
		item := PatternField{Field: NewIdent(fieldTok.Text, tokSpan(p.src, fieldTok)), Bind: NewIdent(fieldTok.Text, tokSpan(p.src, fieldTok))}
		if p.cur().Kind == TkColon {
			p.advance()
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			item.Type = t
		}
		for p.cur().Kind == TkPipe {
			p.advance()
			c, err := p.parseApp()
			if err != nil {
				return nil, err
			}
			item.Contracts = append(item.Contracts, c)
		}
		if p.cur().Kind == TkEquals {
			p.advance()
			if p.cur().Kind == TkLBrace {
				nested, err := p.parsePattern()
				if err != nil {
					return nil, err
				}
				item.Nested = nested
			} else {
				bindTok, err := p.expect(TkIdent, "a local name or nested pattern after `=` in a destructuring pattern")
				if err != nil {
					return nil, err
				}
				item.Bind = NewIdent(bindTok.Text, tokSpan(p.src, bindTok))
			}
		}
		if p.cur().Kind == TkQuestion {
			p.advance()
			d, err := p.parseApp()
			if err != nil {
				return nil, err
			}
			item.Default = d
		}
		pat.Items = append(pat.Items, item)
		if p.cur().Kind == TkComma {
			p.advance()
		} else {
			break
		}
	}
	if _, err := p.expect(TkRBrace, "`}`"); err != nil {
		return nil, err
	}
	return pat, nil
}

// buildStrChunks splits a string literal's raw (undecoded) content into
// literal-text and "#{expr}" interpolation chunks, in spec's required
// reverse source order.
func (p *Parser) buildStrChunks(span *Span, content string) (*Term, *ParseError) {
	var forward []StrChunk
	var lit []byte
	flush := func() {
		if len(lit) > 0 {
			forward = append(forward, StrChunk{Lit: string(lit)})
			lit = nil
		}
	}
	i := 0
	for i < len(content) {
		c := content[i]
		if c == '\\' && i+1 < len(content) {
			lit = append(lit, decodeEscape(content[i+1]))
			i += 2
			continue
		}
		if c == '#' && i+1 < len(content) && content[i+1] == '{' {
			flush()
			depth := 1
			j := i + 2
			for j < len(content) && depth > 0 {
				if content[j] == '{' {
					depth++
				} else if content[j] == '}' {
					depth--
					if depth == 0 {
						break
					}
				}
				j++
			}
			if depth != 0 {
				return nil, &ParseError{Pos: span, Msg: "unterminated `#{` interpolation"}
			}
			exprSrc := content[i+2 : j]
			exprTerm, perr := parseExprFragment(p.sm, exprSrc)
			if perr != nil {
				return nil, perr
			}
			forward = append(forward, StrChunk{Expr: exprTerm})
			i = j + 1
			continue
		}
		lit = append(lit, c)
		i++
	}
	flush()
	reversed := make([]StrChunk, len(forward))
	for k, c := range forward {
		reversed[len(forward)-1-k] = c
	}
	return StrChunks(span, reversed), nil
}

func decodeEscape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return c
	}
}

func decodeLiteralString(content string) (string, error) {
	out := make([]byte, 0, len(content))
	i := 0
	for i < len(content) {
		if content[i] == '\\' && i+1 < len(content) {
			out = append(out, decodeEscape(content[i+1]))
			i += 2
			continue
		}
		out = append(out, content[i])
		i++
	}
	return string(out), nil
}

// parseExprFragment parses an interpolated sub-expression as a fresh,
// independently-registered source file, so its tokens carry internally
// consistent spans without needing to shift every offset by the
// enclosing literal's position.
func parseExprFragment(sm *SourceMap, exprSrc string) (*Term, *ParseError) {
	fragID := sm.Add("<interpolation>", exprSrc)
	lx := NewLexer(sm, fragID)
	toks, lerr := lx.Tokenize()
	if lerr != nil {
		return nil, lerr
	}
	fp := NewParser(sm, fragID, toks)
	term, perr := fp.parseExprTop()
	if perr != nil {
		return nil, perr
	}
	if fp.cur().Kind != TkEOF {
		return nil, fp.errf("unexpected trailing input in string interpolation")
	}
	return term, nil
}

// ---- type syntax ----

func (p *Parser) parseType() (*Type, *ParseError) {
	t, err := p.parseArrowType()
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (p *Parser) parseArrowType() (*Type, *ParseError) {
	dom, err := p.parseAtomType()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind == TkArrow {
		p.advance()
		codom, err := p.parseArrowType()
		if err != nil {
			return nil, err
		}
		return Arrow(dom, codom), nil
	}
	return dom, nil
}

func (p *Parser) parseAtomType() (*Type, *ParseError) {
	switch p.cur().Kind {
	case TkKwForall:
		p.advance()
		vTok, err := p.expect(TkIdent, "a type variable after `forall`")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TkDot, "`.` after a `forall` variable"); err != nil {
			return nil, err
		}
		body, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return Forall(NewIdent(vTok.Text, tokSpan(p.src, vTok)), body), nil
	case TkLParen:
		p.advance()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TkRParen, "`)`"); err != nil {
			return nil, err
		}
		return t, nil
	case TkLBrace:
		p.advance()
		row, err := p.parseRowType(TkRBrace)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TkRBrace, "`}`"); err != nil {
			return nil, err
		}
		return StaticRecord(row), nil
	case TkBarBracket:
		p.advance()
		row, err := p.parseRowType(TkBracketBar)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TkBracketBar, "`|]`"); err != nil {
			return nil, err
		}
		return EnumT(row), nil
	case TkIdent:
		t := p.advance()
		switch t.Text {
		case "Dyn":
			return Dyn, nil
		case "Num":
			return NumT, nil
		case "Bool":
			return BoolT, nil
		case "Str":
			return StrT, nil
		case "List":
			elem, err := p.parseAtomType()
			if err != nil {
				return nil, err
			}
			return ListT(elem), nil
		default:
			return VarT(NewIdent(t.Text, tokSpan(p.src, t))), nil
		}
	}
	return nil, p.errf("expected a type")
}

// parseRowType parses a StaticRecord/Enum row body up to (not consuming)
// the closing delimiter. A trailing `..` marks the row open: this parser
// does not support binding a named row variable, so an open tail is
// represented by the Dyn sentinel (rowFields treats any non-nil, non-
// RowEmpty tail as "pass extra fields through") — a deliberate simplified
// stand-in for full row polymorphism, recorded in DESIGN.md.
func (p *Parser) parseRowType(closer TokenKind) (*Type, *ParseError) {
	type entry struct {
		field Ident
		typ   *Type
	}
	var entries []entry
	openTail := false
	for p.cur().Kind != closer {
		if p.cur().Kind == TkDotDot {
			p.advance()
			openTail = true
			break
		}
		nameTok, err := p.expect(TkIdent, "a field name in a row type")
		if err != nil {
			return nil, err
		}
		var ft *Type
		if p.cur().Kind == TkColon {
			p.advance()
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			ft = t
		}
		entries = append(entries, entry{field: NewIdent(nameTok.Text, tokSpan(p.src, nameTok)), typ: ft})
		if p.cur().Kind == TkComma {
			p.advance()
		} else {
			break
		}
	}
	var tail *Type
	if openTail {
		tail = Dyn
	}
	row := tail
	if row == nil {
		row = RowEmpty()
	}
	for i := len(entries) - 1; i >= 0; i-- {
		row = RowExtend(entries[i].field, entries[i].typ, row)
	}
	return row, nil
}
