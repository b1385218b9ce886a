// Package parser implements a CSS tokenizer and parser, following
// https://www.w3.org/TR/css-syntax-3/.
// The token representation kept here is meant to be processed further
// by higher level packages, like css/grid.
package parser

import (
	"fmt"
	"io"

	"github.com/benoitkugler/cssgrid/utils"
)

// Pos is the position of a token in the CSS input.
type Pos struct {
	Line, Column uint32
}

func newPosition(line, column int) Pos {
	return Pos{Line: uint32(line), Column: uint32(column)}
}

func (pos Pos) String() string {
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}

// Kind identifies the dynamic type of a [Token].
type Kind uint8

const (
	KParseError Kind = iota
	KComment
	KWhitespace
	KLiteral
	KIdent
	KAtKeyword
	KHash
	KString
	KURL
	KUnicodeRange
	KNumber
	KPercentage
	KDimension
	KParenthesesBlock
	KSquareBracketsBlock
	KCurlyBracketsBlock
	KFunctionBlock
)

// String returns the name used by the serialization tables
// (http://drafts.csswg.org/csswg/css-syntax/#serialization-tables).
func (k Kind) String() string {
	switch k {
	case KParseError:
		return "error"
	case KComment:
		return "comment"
	case KWhitespace:
		return "whitespace"
	case KLiteral:
		return "literal"
	case KIdent:
		return "ident"
	case KAtKeyword:
		return "at-keyword"
	case KHash:
		return "hash"
	case KString:
		return "string"
	case KURL:
		return "url"
	case KUnicodeRange:
		return "unicode-range"
	case KNumber:
		return "number"
	case KPercentage:
		return "percentage"
	case KDimension:
		return "dimension"
	case KParenthesesBlock:
		return "() block"
	case KSquareBracketsBlock:
		return "[] block"
	case KCurlyBracketsBlock:
		return "{} block"
	case KFunctionBlock:
		return "function"
	default:
		return "<invalid token>"
	}
}

// Token is a CSS component value, as defined in
// https://www.w3.org/TR/css-syntax-3/#component-value.
// Blocks and functions form a tree, and contain nested tokens.
type Token interface {
	Pos() Pos
	Kind() Kind
	serializeTo(writer io.StringWriter)
}

// LowerableString is a string which can be
// normalized to ASCII lower case
type LowerableString string

func (s LowerableString) Lower() string { return utils.AsciiLower(string(s)) }

type errKind string

const (
	errEmpty         errKind = "empty"
	errExtraInput    errKind = "extra-input"
	errInvalid       errKind = "invalid"
	errBadString     errKind = "bad-string"
	errBadURL        errKind = "bad-url"
	errEofInString   errKind = "eof-in-string"
	errEofInUrl      errKind = "eof-in-url"
	errInvalidNumber errKind = "invalid number"
	errP             errKind = ")"
	errB             errKind = "]"
	errC             errKind = "}"
)

// ParseError is either an error in the CSS source,
// or an error emitted by one of the parsing functions.
type ParseError struct {
	kind    errKind
	Message string
	pos     Pos
}

// guard against error in strings and urls
const (
	isErrorInString uint8 = 1 << iota
	isErrorInURL
)

type (
	Comment struct {
		Value string
		pos   Pos
	}

	Whitespace struct {
		Value string
		pos   Pos
	}

	// Literal is a delimiter or an operator, like ";", ":" or "~=".
	Literal struct {
		Value string
		pos   Pos
	}

	Ident struct {
		Value string
		pos   Pos
	}

	AtKeyword struct {
		Value string
		pos   Pos
	}

	Hash struct {
		Value   string
		pos     Pos
		isIdent bool
	}

	String struct {
		Value    string
		pos      Pos
		hasError bool // true for unterminated strings
	}

	URL struct {
		Value string
		pos   Pos
		flag  uint8 // 0, isErrorInString or isErrorInURL
	}

	UnicodeRange struct {
		pos        Pos
		Start, End uint32
	}

	// numberVal is the numeric part shared by
	// Number, Percentage and Dimension.
	numberVal struct {
		Value  string // source representation
		pos    Pos
		ValueF utils.Fl
		isInt  bool
	}

	Number     struct{ numberVal }
	Percentage struct{ numberVal }

	Dimension struct {
		numberVal
		Unit string // with the original case
	}

	ParenthesesBlock struct {
		Arguments []Token
		pos       Pos
	}

	SquareBracketsBlock struct {
		Arguments []Token
		pos       Pos
	}

	CurlyBracketsBlock struct {
		Arguments []Token
		pos       Pos
	}

	FunctionBlock struct {
		Name      LowerableString
		Arguments []Token
		pos       Pos
	}
)

func (t Hash) isIdentifier() bool { return t.isIdent }

func (t String) isError() bool { return t.hasError }

// IsInt returns true if the number was written as an integer.
func (t numberVal) IsInt() bool { return t.isInt }

// Int truncates the value to an int. It is only meaningful
// for tokens where IsInt() is true.
func (t numberVal) Int() int { return int(t.ValueF) }

func (t numberVal) Pos() Pos { return t.pos }

func (t ParseError) Pos() Pos          { return t.pos }
func (t Comment) Pos() Pos             { return t.pos }
func (t Whitespace) Pos() Pos          { return t.pos }
func (t Literal) Pos() Pos             { return t.pos }
func (t Ident) Pos() Pos               { return t.pos }
func (t AtKeyword) Pos() Pos           { return t.pos }
func (t Hash) Pos() Pos                { return t.pos }
func (t String) Pos() Pos              { return t.pos }
func (t URL) Pos() Pos                 { return t.pos }
func (t UnicodeRange) Pos() Pos        { return t.pos }
func (t ParenthesesBlock) Pos() Pos    { return t.pos }
func (t SquareBracketsBlock) Pos() Pos { return t.pos }
func (t CurlyBracketsBlock) Pos() Pos  { return t.pos }
func (t FunctionBlock) Pos() Pos       { return t.pos }

func (ParseError) Kind() Kind          { return KParseError }
func (Comment) Kind() Kind             { return KComment }
func (Whitespace) Kind() Kind          { return KWhitespace }
func (Literal) Kind() Kind             { return KLiteral }
func (Ident) Kind() Kind               { return KIdent }
func (AtKeyword) Kind() Kind           { return KAtKeyword }
func (Hash) Kind() Kind                { return KHash }
func (String) Kind() Kind              { return KString }
func (URL) Kind() Kind                 { return KURL }
func (UnicodeRange) Kind() Kind        { return KUnicodeRange }
func (Number) Kind() Kind              { return KNumber }
func (Percentage) Kind() Kind          { return KPercentage }
func (Dimension) Kind() Kind           { return KDimension }
func (ParenthesesBlock) Kind() Kind    { return KParenthesesBlock }
func (SquareBracketsBlock) Kind() Kind { return KSquareBracketsBlock }
func (CurlyBracketsBlock) Kind() Kind  { return KCurlyBracketsBlock }
func (FunctionBlock) Kind() Kind       { return KFunctionBlock }
