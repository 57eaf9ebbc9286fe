package query

// Parser is a recursive-descent parser over a Lexer's token stream, built
// on two tokens of lookahead in the teacher's own parser shape.
type Parser struct {
	l *Lexer

	cur  Token
	peek Token

	err error
}

// Parse parses query source text into a Document.
func Parse(src string) (*Document, error) {
	p := &Parser{l: NewLexer(src)}
	p.advance()
	p.advance()

	doc := p.parseDocument()
	if p.err != nil {
		return nil, p.err
	}
	return doc, nil
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.Next()
}

func (p *Parser) fail(pos Position, msg string) {
	if p.err == nil {
		p.err = &ParseError{Pos: pos, Msg: msg}
	}
}

func (p *Parser) expect(tt TokenType) Token {
	tok := p.cur
	if p.err != nil {
		return tok
	}
	if tok.Type != tt {
		p.fail(tok.Pos, "expected "+tt.String()+", got "+tok.Type.String())
		return tok
	}
	p.advance()
	return tok
}

func (p *Parser) check(tt TokenType) bool {
	return p.err == nil && p.cur.Type == tt
}

func (p *Parser) parseDocument() *Document {
	sel := p.parseSelectionSet()
	if p.err != nil {
		return nil
	}
	if p.cur.Type != EOF {
		p.fail(p.cur.Pos, "unexpected trailing input: "+p.cur.Type.String())
		return nil
	}
	return &Document{Selection: sel}
}

func (p *Parser) parseSelectionSet() *SelectionSet {
	p.expect(LBRACE)
	if p.err != nil {
		return nil
	}
	set := &SelectionSet{}
	for !p.check(RBRACE) && p.err == nil {
		if p.check(EOF) {
			p.fail(p.cur.Pos, "unterminated selection set")
			return nil
		}
		set.Fields = append(set.Fields, p.parseField())
	}
	p.expect(RBRACE)
	if p.err != nil {
		return nil
	}
	return set
}

func (p *Parser) parseField() *Field {
	pos := p.cur.Pos

	if p.check(ELLIPSIS) {
		p.advance()
		onTok := p.expect(IDENT)
		if p.err != nil {
			return nil
		}
		if onTok.Literal != "on" {
			p.fail(onTok.Pos, "expected 'on' after '...', got "+onTok.Literal)
			return nil
		}
		typeTok := p.expect(IDENT)
		if p.err != nil {
			return nil
		}
		sel := p.parseSelectionSet()
		if p.err != nil {
			return nil
		}
		return &Field{Pos: pos, IsFragment: true, FragmentType: typeTok.Literal, Selection: sel}
	}

	nameTok := p.expect(IDENT)
	if p.err != nil {
		return nil
	}
	field := &Field{Pos: pos, Name: nameTok.Literal}
	field.Directives = p.parseDirectives()
	if p.err != nil {
		return nil
	}
	if p.check(LBRACE) {
		field.Selection = p.parseSelectionSet()
	}
	return field
}

func (p *Parser) parseDirectives() []*Directive {
	var dirs []*Directive
	for p.check(AT) && p.err == nil {
		pos := p.cur.Pos
		p.advance()
		nameTok := p.expect(IDENT)
		if p.err != nil {
			return nil
		}
		d := &Directive{Pos: pos, Name: nameTok.Literal}
		if p.check(LPAREN) {
			d.Args = p.parseArgList()
			if p.err != nil {
				return nil
			}
		}
		dirs = append(dirs, d)
	}
	return dirs
}

func (p *Parser) parseArgList() []*Argument {
	p.expect(LPAREN)
	if p.err != nil {
		return nil
	}
	var args []*Argument
	for !p.check(RPAREN) && p.err == nil {
		if p.check(EOF) {
			p.fail(p.cur.Pos, "unterminated argument list")
			return nil
		}
		nameTok := p.expect(IDENT)
		if p.err != nil {
			return nil
		}
		p.expect(COLON)
		if p.err != nil {
			return nil
		}
		val := p.parseValue()
		if p.err != nil {
			return nil
		}
		args = append(args, &Argument{Name: nameTok.Literal, Value: val})
		if p.check(COMMA) {
			p.advance()
		}
	}
	p.expect(RPAREN)
	return args
}

func (p *Parser) parseValue() Value {
	switch p.cur.Type {
	case STRING:
		tok := p.cur
		p.advance()
		return Value{Kind: ValString, Str: tok.Literal}
	case INT:
		tok := p.cur
		p.advance()
		return Value{Kind: ValInt, Int: tok.IntVal}
	case DOLLAR:
		p.advance()
		tok := p.expect(IDENT)
		return Value{Kind: ValArgRef, Str: tok.Literal}
	case PERCENT:
		p.advance()
		tok := p.expect(IDENT)
		return Value{Kind: ValTagRef, Str: tok.Literal}
	case LBRACKET:
		p.advance()
		var items []Value
		for !p.check(RBRACKET) && p.err == nil {
			if p.check(EOF) {
				p.fail(p.cur.Pos, "unterminated list literal")
				return Value{}
			}
			items = append(items, p.parseValue())
			if p.check(COMMA) {
				p.advance()
			}
		}
		p.expect(RBRACKET)
		return Value{Kind: ValList, List: items}
	case IDENT:
		tok := p.cur
		switch tok.Literal {
		case "true":
			p.advance()
			return Value{Kind: ValBool, Bool: true}
		case "false":
			p.advance()
			return Value{Kind: ValBool, Bool: false}
		default:
			p.advance()
			return Value{Kind: ValString, Str: tok.Literal}
		}
	default:
		p.fail(p.cur.Pos, "unexpected token in value position: "+p.cur.Type.String())
		return Value{}
	}
}
