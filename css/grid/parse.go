package grid

import (
	"fmt"

	"github.com/benoitkugler/cssgrid/css/parser"
	"github.com/benoitkugler/cssgrid/utils"
)

// Error is a grammar violation found in a grid value.
type Error struct {
	Reason string
	Pos    parser.Pos
}

func (e Error) Error() string {
	return fmt.Sprintf("invalid grid value at %s: %s", e.Pos, e.Reason)
}

// errf returns an [Error] located at `token`.
func errf(token parser.Token, format string, args ...interface{}) error {
	return Error{Pos: token.Pos(), Reason: fmt.Sprintf(format, args...)}
}

// cursor walks a list of significant tokens.
type cursor struct {
	tokens []parser.Token // without whitespace and comments
	index  int
}

func newCursor(tokens []parser.Token) *cursor {
	return &cursor{tokens: parser.RemoveWhitespace(tokens)}
}

func (c *cursor) done() bool { return c.index >= len(c.tokens) }

// peek returns the next token without consuming it, or nil.
func (c *cursor) peek() parser.Token {
	if c.done() {
		return nil
	}
	return c.tokens[c.index]
}

func (c *cursor) next() parser.Token {
	token := c.peek()
	if token != nil {
		c.index++
	}
	return token
}

// errorf returns an [Error] located at the current token.
func (c *cursor) errorf(format string, args ...interface{}) error {
	pos := parser.Pos{Line: 1, Column: 1}
	if !c.done() {
		pos = c.tokens[c.index].Pos()
	} else if L := len(c.tokens); L != 0 {
		pos = c.tokens[L-1].Pos()
	}
	return Error{Pos: pos, Reason: fmt.Sprintf(format, args...)}
}

// keyword returns the lowercased value of an ident token, or "".
func keyword(token parser.Token) string {
	if ident, ok := token.(parser.Ident); ok {
		return utils.AsciiLower(ident.Value)
	}
	return ""
}

// eatKeyword consumes the next token if it is the given keyword,
// compared ASCII case insensitively.
func (c *cursor) eatKeyword(kw string) bool {
	if keyword(c.peek()) == kw {
		c.next()
		return true
	}
	return false
}

// https://drafts.csswg.org/css-values-4/#css-wide-keywords
var cssWideKeywords = utils.NewSet("initial", "inherit", "unset", "default", "revert", "revert-layer")

// parseCustomIdent checks that `token` is a valid <custom-ident>,
// returning its value with the original casing. The `excluded`
// keywords are rejected, ASCII case insensitively.
func parseCustomIdent(token parser.Token, excluded ...string) (string, bool) {
	ident, ok := token.(parser.Ident)
	if !ok {
		return "", false
	}
	lower := utils.AsciiLower(ident.Value)
	if cssWideKeywords.Has(lower) || utils.IsIn(excluded, lower) {
		return "", false
	}
	return ident.Value, true
}

// parseInteger returns the value of an integer token.
func parseInteger(token parser.Token) (int, bool) {
	num, ok := token.(parser.Number)
	if !ok || !num.IsInt() {
		return 0, false
	}
	return num.Int(), true
}

func clampGridLine(v int) Int {
	return Int(utils.MaxInt(MinGridLine, utils.MinInt(v, MaxGridLine)))
}

// supported length units
var lengthUnits = map[string]Unit{
	"ex": Ex, "em": Em, "ch": Ch, "rem": Rem, "px": Px, "pt": Pt,
	"pc": Pc, "in": In, "cm": Cm, "mm": Mm, "q": Q,
}

// parseLengthPercentage parses a non negative <length-percentage>.
// A unitless zero is accepted as 0px.
func parseLengthPercentage(token parser.Token) (Length, bool) {
	switch token := token.(type) {
	case parser.Dimension:
		unit, ok := lengthUnits[utils.AsciiLower(token.Unit)]
		if !ok || token.ValueF < 0 {
			return Length{}, false
		}
		return Length{Value: token.ValueF, Unit: unit}, true
	case parser.Percentage:
		if token.ValueF < 0 {
			return Length{}, false
		}
		return Length{Value: token.ValueF, Unit: Perc}, true
	case parser.Number:
		if token.ValueF == 0 {
			return Length{Unit: Px}, true
		}
	}
	return Length{}, false
}

// parseTrackBreadth parses a <track-breadth>, restricted to an
// <inflexible-breadth> if `inflexible` is true.
func parseTrackBreadth(token parser.Token, inflexible bool) (TrackBreadth[Length], bool) {
	switch keyword(token) {
	case "auto":
		return NewBreadthAuto[Length](), true
	case "min-content":
		return NewBreadthMinContent[Length](), true
	case "max-content":
		return NewBreadthMaxContent[Length](), true
	}
	if dim, ok := token.(parser.Dimension); ok && utils.AsciiLower(dim.Unit) == "fr" {
		if inflexible || dim.ValueF < 0 {
			return TrackBreadth[Length]{}, false
		}
		return NewFr[Length](dim.ValueF), true
	}
	if l, ok := parseLengthPercentage(token); ok {
		return NewBreadth(l), true
	}
	return TrackBreadth[Length]{}, false
}

// ParseGridLine parses a <grid-line> value, the value of the
// grid-row-start, grid-row-end, grid-column-start and
// grid-column-end properties.
func ParseGridLine(tokens []parser.Token) (GridLine[Int], error) {
	c := newCursor(tokens)
	line, err := parseGridLine(c)
	if err != nil {
		return GridLine[Int]{}, err
	}
	if !c.done() {
		return GridLine[Int]{}, c.errorf("unexpected token after <grid-line>")
	}
	return line, nil
}

// ParseGridLineString parses a <grid-line> from CSS text.
func ParseGridLineString(css string) (GridLine[Int], error) {
	return ParseGridLine(parser.Tokenize([]byte(css), true))
}

func parseGridLine(c *cursor) (GridLine[Int], error) {
	var line GridLine[Int]
	if c.done() {
		return line, c.errorf("expected a <grid-line>")
	}
	if c.eatKeyword("auto") {
		return line, nil
	}

	// the span keyword, an integer and a line name may come in any
	// order, but nothing is allowed both before and after the span
	// keyword
	valBeforeSpan := false
	for i := 0; i < 3 && !c.done(); i++ {
		token := c.peek()
		if keyword(token) == "span" {
			if line.IsSpan {
				return line, c.errorf("duplicated span keyword")
			}
			if line.LineNum.Int() != 0 || line.Ident != "" {
				valBeforeSpan = true
			}
			line.IsSpan = true
			c.next()
		} else if num, ok := parseInteger(token); ok {
			if num == 0 || valBeforeSpan || line.LineNum.Int() != 0 {
				return line, c.errorf("invalid integer in <grid-line>")
			}
			line.LineNum = clampGridLine(num)
			c.next()
		} else if ident, ok := parseCustomIdent(token, "span", "auto"); ok {
			if valBeforeSpan || line.Ident != "" {
				return line, c.errorf("unexpected line name")
			}
			line.Ident = ident
			c.next()
		} else {
			break
		}
	}

	if line.IsAuto() {
		return line, c.errorf("expected a <grid-line>")
	}
	if line.IsSpan {
		if num := line.LineNum.Int(); num != 0 {
			if num < 0 {
				return line, c.errorf("span requires a positive number")
			}
		} else if line.Ident == "" {
			// span alone is not a valid value
			return line, c.errorf("span requires a number or a name")
		}
	}
	return line, nil
}

// parseLineNameGroup parses the content of a [...] block.
// The returned group is never nil.
func parseLineNameGroup(block parser.SquareBracketsBlock) ([]string, error) {
	names := []string{}
	for _, token := range parser.RemoveWhitespace(block.Arguments) {
		name, ok := parseCustomIdent(token, "span", "auto")
		if !ok {
			return nil, errf(token, "invalid line name")
		}
		names = append(names, name)
	}
	return names, nil
}

// parseOptionalLineNames parses a [...] name group if the cursor is
// on one. A missing group is returned as an empty (non nil) slice.
func parseOptionalLineNames(c *cursor) ([]string, error) {
	block, ok := c.peek().(parser.SquareBracketsBlock)
	if !ok {
		return []string{}, nil
	}
	names, err := parseLineNameGroup(block)
	if err != nil {
		return nil, err
	}
	c.next()
	return names, nil
}

// isTrackSizeStart returns true if `token` may start a <track-size>.
func isTrackSizeStart(token parser.Token) bool {
	switch token := token.(type) {
	case parser.Dimension, parser.Percentage, parser.Number:
		return true
	case parser.Ident:
		switch utils.AsciiLower(token.Value) {
		case "auto", "min-content", "max-content":
			return true
		}
	case parser.FunctionBlock:
		switch token.Name.Lower() {
		case "minmax", "fit-content":
			return true
		}
	}
	return false
}

// functionArgs splits the arguments of `fn` on commas, expecting
// `count` parts of exactly one significant token each.
func functionArgs(c *cursor, fn parser.FunctionBlock, count int) ([]parser.Token, error) {
	parts := parser.SplitOnComma(fn.Arguments)
	if len(parts) != count {
		return nil, c.errorf("%s() expects %d arguments, got %d", fn.Name, count, len(parts))
	}
	out := make([]parser.Token, count)
	for i, part := range parts {
		part = parser.RemoveWhitespace(part)
		if len(part) != 1 {
			return nil, c.errorf("expected a single value in %s() argument %d", fn.Name, i+1)
		}
		out[i] = part[0]
	}
	return out, nil
}

// ParseTrackSize parses a single <track-size> value.
func ParseTrackSize(tokens []parser.Token) (TrackSize[Length], error) {
	c := newCursor(tokens)
	size, err := parseTrackSize(c)
	if err != nil {
		return TrackSize[Length]{}, err
	}
	if !c.done() {
		return TrackSize[Length]{}, c.errorf("unexpected token after <track-size>")
	}
	return size, nil
}

// ParseTrackSizeString parses a <track-size> from CSS text.
func ParseTrackSizeString(css string) (TrackSize[Length], error) {
	return ParseTrackSize(parser.Tokenize([]byte(css), true))
}

func parseTrackSize(c *cursor) (TrackSize[Length], error) {
	token := c.peek()
	if fn, ok := token.(parser.FunctionBlock); ok {
		switch fn.Name.Lower() {
		case "minmax":
			args, err := functionArgs(c, fn, 2)
			if err != nil {
				return TrackSize[Length]{}, err
			}
			// the minimum may not be flexible
			min, ok := parseTrackBreadth(args[0], true)
			if !ok {
				return TrackSize[Length]{}, errf(args[0], "invalid minmax() minimum")
			}
			max, ok := parseTrackBreadth(args[1], false)
			if !ok {
				return TrackSize[Length]{}, errf(args[1], "invalid minmax() maximum")
			}
			c.next()
			return NewMinmax(min, max), nil
		case "fit-content":
			args, err := functionArgs(c, fn, 1)
			if err != nil {
				return TrackSize[Length]{}, err
			}
			limit, ok := parseLengthPercentage(args[0])
			if !ok {
				return TrackSize[Length]{}, errf(args[0], "invalid fit-content() argument")
			}
			c.next()
			return NewFitContent(limit), nil
		default:
			return TrackSize[Length]{}, c.errorf("unsupported function %s()", fn.Name)
		}
	}
	if b, ok := parseTrackBreadth(token, false); ok {
		c.next()
		return NewTrackSize(b), nil
	}
	return TrackSize[Length]{}, c.errorf("expected a <track-size>")
}

func parseRepeatCount(token parser.Token) (RepeatCount[Int], error) {
	if num, ok := parseInteger(token); ok {
		if num <= 0 {
			return RepeatCount[Int]{}, errf(token, "repeat() count must be positive")
		}
		return NewRepeatCount(clampGridLine(num)), nil
	}
	switch keyword(token) {
	case "auto-fill":
		return AutoFill[Int](), nil
	case "auto-fit":
		return AutoFit[Int](), nil
	}
	return RepeatCount[Int]{}, errf(token, "invalid repeat() count")
}

// repeatArgs splits the two arguments of a repeat() notation,
// parsing the first as a repetition count.
func repeatArgs(c *cursor, fn parser.FunctionBlock) (RepeatCount[Int], []parser.Token, error) {
	parts := parser.SplitOnComma(fn.Arguments)
	if len(parts) != 2 {
		return RepeatCount[Int]{}, nil, c.errorf("repeat() expects 2 arguments, got %d", len(parts))
	}
	countTokens := parser.RemoveWhitespace(parts[0])
	if len(countTokens) != 1 {
		return RepeatCount[Int]{}, nil, c.errorf("invalid repeat() count")
	}
	count, err := parseRepeatCount(countTokens[0])
	if err != nil {
		return RepeatCount[Int]{}, nil, err
	}
	return count, parts[1], nil
}

type repeatType uint8

const (
	repeatNormal repeatType = iota // definite count with at least one non fixed size
	repeatAuto                     // auto-fill or auto-fit count
	repeatFixed                    // definite count and only fixed sizes
)

// parseTrackRepeat parses the repeat() notation in `fn`, without
// consuming it from the cursor.
func parseTrackRepeat(c *cursor, fn parser.FunctionBlock) (TrackRepeat[Length, Int], repeatType, error) {
	var repeat TrackRepeat[Length, Int]
	count, sizeTokens, err := repeatArgs(c, fn)
	if err != nil {
		return repeat, 0, err
	}
	repeat.Count = count

	allFixed := true
	interior := newCursor(sizeTokens)
	for {
		names, err := parseOptionalLineNames(interior)
		if err != nil {
			return repeat, 0, err
		}
		if interior.done() || !isTrackSizeStart(interior.peek()) {
			repeat.LineNames = append(repeat.LineNames, names)
			break
		}
		size, err := parseTrackSize(interior)
		if err != nil {
			return repeat, 0, err
		}
		if !size.IsFixed() {
			// with an automatic count, the grid would be ill defined
			if !count.IsDefinite() {
				return repeat, 0, c.errorf("repeat() with an automatic count requires fixed sizes")
			}
			allFixed = false
		}
		repeat.LineNames = append(repeat.LineNames, names)
		repeat.TrackSizes = append(repeat.TrackSizes, size)
	}
	if !interior.done() {
		return repeat, 0, interior.errorf("unexpected token in repeat()")
	}
	if len(repeat.TrackSizes) == 0 {
		return repeat, 0, c.errorf("repeat() expects at least one <track-size>")
	}

	rtype := repeatNormal
	if !count.IsDefinite() {
		rtype = repeatAuto
	} else if allFixed {
		rtype = repeatFixed
	}
	return repeat, rtype, nil
}

// ParseTrackList parses a <track-list> value.
func ParseTrackList(tokens []parser.Token) (TrackList[Length, Int], error) {
	c := newCursor(tokens)
	list, err := parseTrackList(c)
	if err != nil {
		return TrackList[Length, Int]{}, err
	}
	if !c.done() {
		return TrackList[Length, Int]{}, c.errorf("unexpected token after <track-list>")
	}
	return list, nil
}

// ParseTrackListString parses a <track-list> from CSS text.
func ParseTrackListString(css string) (TrackList[Length, Int], error) {
	return ParseTrackList(parser.Tokenize([]byte(css), true))
}

func parseTrackList(c *cursor) (TrackList[Length, Int], error) {
	var (
		values    []TrackListValue[Length, Int]
		names     [][]string
		autoIndex = -1
		notFixed  bool // a non fixed size or repeat was seen
	)
	for {
		current, err := parseOptionalLineNames(c)
		if err != nil {
			return TrackList[Length, Int]{}, err
		}
		token := c.peek()
		if fn, ok := token.(parser.FunctionBlock); ok && fn.Name.Lower() == "repeat" {
			repeat, rtype, err := parseTrackRepeat(c, fn)
			if err != nil {
				return TrackList[Length, Int]{}, err
			}
			switch rtype {
			case repeatNormal:
				notFixed = true
				if autoIndex != -1 {
					return TrackList[Length, Int]{}, c.errorf("flexible repeat() can not be mixed with an automatic repeat()")
				}
			case repeatAuto:
				if autoIndex != -1 || notFixed {
					return TrackList[Length, Int]{}, c.errorf("at most one automatic repeat() is allowed, with only fixed sizes")
				}
				autoIndex = len(values)
			case repeatFixed:
				// always allowed
			}
			c.next()
			names = append(names, current)
			values = append(values, NewTrackRepeatValue[Length, Int](repeat))
		} else if token != nil && isTrackSizeStart(token) {
			size, err := parseTrackSize(c)
			if err != nil {
				return TrackList[Length, Int]{}, err
			}
			if !size.IsFixed() {
				notFixed = true
				if autoIndex != -1 {
					return TrackList[Length, Int]{}, c.errorf("flexible sizes can not be mixed with an automatic repeat()")
				}
			}
			names = append(names, current)
			values = append(values, NewTrackSizeValue[Length, Int](size))
		} else {
			names = append(names, current)
			break
		}
	}
	if len(values) == 0 {
		return TrackList[Length, Int]{}, c.errorf("expected at least one <track-size> or repeat()")
	}
	if autoIndex == -1 {
		autoIndex = len(values)
	}
	return TrackList[Length, Int]{AutoRepeatIndex: autoIndex, Values: values, LineNames: names}, nil
}

// parseNameRepeat parses the repeat() notation of a <line-name-list>,
// without consuming it from the cursor.
func parseNameRepeat(c *cursor, fn parser.FunctionBlock) (NameRepeat[Int], error) {
	var repeat NameRepeat[Int]
	count, nameTokens, err := repeatArgs(c, fn)
	if err != nil {
		return repeat, err
	}
	if count.IsAutoFit() {
		return repeat, c.errorf("auto-fit is not allowed in a <line-name-list>")
	}
	repeat.Count = count
	for _, token := range parser.RemoveWhitespace(nameTokens) {
		block, ok := token.(parser.SquareBracketsBlock)
		if !ok {
			return repeat, errf(token, "expected line names in repeat()")
		}
		names, err := parseLineNameGroup(block)
		if err != nil {
			return repeat, err
		}
		repeat.LineNames = append(repeat.LineNames, names)
	}
	if len(repeat.LineNames) == 0 {
		return repeat, c.errorf("repeat() expects at least one line name group")
	}
	return repeat, nil
}

// ParseLineNameList parses a <line-name-list> value, starting with
// the subgrid keyword.
func ParseLineNameList(tokens []parser.Token) (LineNameList[Int], error) {
	return parseLineNameList(newCursor(tokens))
}

// ParseLineNameListString parses a <line-name-list> from CSS text.
func ParseLineNameListString(css string) (LineNameList[Int], error) {
	return ParseLineNameList(parser.Tokenize([]byte(css), true))
}

func parseLineNameList(c *cursor) (LineNameList[Int], error) {
	var out LineNameList[Int]
	if !c.eatKeyword("subgrid") {
		return out, c.errorf("expected the subgrid keyword")
	}
	hasAutoFill := false
	for !c.done() {
		token := c.peek()
		if block, ok := token.(parser.SquareBracketsBlock); ok {
			names, err := parseLineNameGroup(block)
			if err != nil {
				return LineNameList[Int]{}, err
			}
			c.next()
			out.Values = append(out.Values, NewLineNames[Int](names))
			out.ExpandedLineNamesLength++
		} else if fn, ok := token.(parser.FunctionBlock); ok && fn.Name.Lower() == "repeat" {
			repeat, err := parseNameRepeat(c, fn)
			if err != nil {
				return LineNameList[Int]{}, err
			}
			if repeat.IsAutoFill() {
				if hasAutoFill {
					return LineNameList[Int]{}, c.errorf("at most one auto-fill repeat() is allowed")
				}
				hasAutoFill = true
			} else if num, ok := repeat.Count.IsNumber(); ok {
				out.ExpandedLineNamesLength += num.Int() * len(repeat.LineNames)
			}
			c.next()
			out.Values = append(out.Values, NewLineNamesRepeat(repeat))
		} else {
			return LineNameList[Int]{}, c.errorf("expected line names or repeat()")
		}
	}
	out.ExpandedLineNamesLength = utils.MinInt(out.ExpandedLineNamesLength, MaxGridLine)
	return out, nil
}

// ParseGridTemplateComponent parses the value of the
// grid-template-rows or grid-template-columns property.
func ParseGridTemplateComponent(tokens []parser.Token) (GridTemplateComponent[Length, Int], error) {
	var out GridTemplateComponent[Length, Int]
	c := newCursor(tokens)
	switch keyword(c.peek()) {
	case "none":
		c.next()
		if !c.done() {
			return out, c.errorf("unexpected token after none")
		}
		return NewGridTemplateNone[Length, Int](), nil
	case "masonry":
		c.next()
		if !c.done() {
			return out, c.errorf("unexpected token after masonry")
		}
		return NewGridTemplateMasonry[Length, Int](), nil
	case "subgrid":
		names, err := parseLineNameList(c)
		if err != nil {
			return out, err
		}
		return NewGridTemplateSubgrid[Length](names), nil
	}
	list, err := parseTrackList(c)
	if err != nil {
		return out, err
	}
	if !c.done() {
		return out, c.errorf("unexpected token after <track-list>")
	}
	return NewGridTemplateTrackList(list), nil
}

// ParseGridTemplateComponentString parses a grid template from CSS text.
func ParseGridTemplateComponentString(css string) (GridTemplateComponent[Length, Int], error) {
	return ParseGridTemplateComponent(parser.Tokenize([]byte(css), true))
}

// ParseImplicitGridTracks parses the value of the grid-auto-rows or
// grid-auto-columns property, a non empty list of track sizes.
// A single "auto" is normalized to the empty list.
func ParseImplicitGridTracks(tokens []parser.Token) (ImplicitGridTracks[Length], error) {
	c := newCursor(tokens)
	var out ImplicitGridTracks[Length]
	for {
		size, err := parseTrackSize(c)
		if err != nil {
			return nil, err
		}
		out = append(out, size)
		if c.done() {
			break
		}
	}
	if len(out) == 1 && out[0].IsInitial() {
		return ImplicitGridTracks[Length]{}, nil
	}
	return out, nil
}

// ParseImplicitGridTracksString parses implicit track sizes from CSS text.
func ParseImplicitGridTracksString(css string) (ImplicitGridTracks[Length], error) {
	return ParseImplicitGridTracks(parser.Tokenize([]byte(css), true))
}

// ParsePlacement parses the value of the grid-row or grid-column
// shorthand property : one or two <grid-line>, separated by a slash.
func ParsePlacement(tokens []parser.Token) (Placement[Int], error) {
	var out Placement[Int]
	tokens = parser.RemoveWhitespace(tokens)
	slash := -1
	for i, token := range tokens {
		if lit, ok := token.(parser.Literal); ok && lit.Value == "/" {
			if slash != -1 {
				return out, errf(token, "at most one slash is allowed")
			}
			slash = i
		}
	}
	if slash == -1 {
		start, err := ParseGridLine(tokens)
		if err != nil {
			return out, err
		}
		out.Start = start
		// a lone line name also names the end line
		if start.isIdentOnly() {
			out.End = start
		}
		return out, nil
	}
	start, err := ParseGridLine(tokens[:slash])
	if err != nil {
		return out, err
	}
	end, err := ParseGridLine(tokens[slash+1:])
	if err != nil {
		return out, err
	}
	return Placement[Int]{Start: start, End: end}, nil
}

// ParsePlacementString parses a grid-row or grid-column value from CSS text.
func ParsePlacementString(css string) (Placement[Int], error) {
	return ParsePlacement(parser.Tokenize([]byte(css), true))
}
