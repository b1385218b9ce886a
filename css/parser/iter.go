package parser

// TokensIter is an iterator on a list of tokens.
type TokensIter struct {
	tokens []Token
	index  int
}

func NewIter(tokens []Token) *TokensIter {
	return &TokensIter{tokens: tokens}
}

// HasNext returns true if a call to Next() would
// return a non nil token.
func (it *TokensIter) HasNext() bool {
	return it.index < len(it.tokens)
}

// Next returns the next token, or nil at the end of the list.
func (it *TokensIter) Next() Token {
	if !it.HasNext() {
		return nil
	}
	token := it.tokens[it.index]
	it.index++
	return token
}

// NextSignificant returns the next significant token,
// ignoring whitespace and comments, or nil at the end of the list.
func (it *TokensIter) NextSignificant() Token {
	for it.HasNext() {
		token := it.Next()
		if token.Kind() != KWhitespace && token.Kind() != KComment {
			return token
		}
	}
	return nil
}

// RemoveWhitespace returns a new slice of tokens,
// without the whitespace and comments.
func RemoveWhitespace(tokens []Token) []Token {
	var out []Token
	for _, token := range tokens {
		if token.Kind() != KWhitespace && token.Kind() != KComment {
			out = append(out, token)
		}
	}
	return out
}

// SplitOnComma splits `tokens` on top-level commas.
// Nested commas, in blocks or functions, are ignored,
// and the parts may be empty.
func SplitOnComma(tokens []Token) [][]Token {
	var parts [][]Token
	var current []Token
	for _, token := range tokens {
		if lit, ok := token.(Literal); ok && lit.Value == "," {
			parts = append(parts, current)
			current = nil
			continue
		}
		current = append(current, token)
	}
	parts = append(parts, current)
	return parts
}
