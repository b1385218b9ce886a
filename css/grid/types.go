// Package grid implements parsing and serialization for the values
// used by CSS grid layout, following https://drafts.csswg.org/css-grid/.
//
// The types are generic over the length and integer representations,
// so that later processing steps, like resolving font relative units,
// may reuse the same shapes (see the Convert functions).
// Values parsed from CSS text use [Length] and [Int].
package grid

import (
	"io"
	"strconv"
	"strings"

	"github.com/benoitkugler/cssgrid/utils"
)

// Grid line numbers and repetition counts outside of this
// range are clamped at parsing time, as allowed by
// https://drafts.csswg.org/css-grid/#overlarge-grids
const (
	MinGridLine = -10000
	MaxGridLine = 10000
)

// Value is implemented by the CSS values of this package.
type Value interface {
	// WriteCSS writes the canonical CSS text form.
	WriteCSS(w io.StringWriter)
}

// CSS returns the canonical CSS text form of `v`.
func CSS(v Value) string {
	var sb strings.Builder
	v.WriteCSS(&sb)
	return sb.String()
}

func writeFloat(w io.StringWriter, f utils.Fl) {
	w.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
}

// Scalar is the constraint satisfied by length types.
type Scalar interface {
	comparable
	Value
}

// Integer is the constraint satisfied by integer types,
// used for line numbers and repetition counts.
type Integer interface {
	comparable
	Value

	// Int returns the value as a plain Go integer.
	Int() int
}

// Int is the integer type of authored values.
type Int int32

func (i Int) Int() int { return int(i) }

func (i Int) WriteCSS(w io.StringWriter) { w.WriteString(strconv.Itoa(int(i))) }

// Unit is an enumeration of the units supported in lengths.
type Unit uint8

const (
	_ Unit = iota // invalid
	Ex
	Em
	Ch
	Rem
	Px
	Pt
	Pc
	In
	Cm
	Mm
	Q
	Perc // percentage (%)
)

var unitNames = [...]string{
	Ex: "ex", Em: "em", Ch: "ch", Rem: "rem", Px: "px", Pt: "pt",
	Pc: "pc", In: "in", Cm: "cm", Mm: "mm", Q: "q", Perc: "%",
}

func (u Unit) String() string {
	if int(u) < len(unitNames) && unitNames[u] != "" {
		return unitNames[u]
	}
	return "<invalid unit>"
}

// Length is a <length-percentage> value, as written in the source.
type Length struct {
	Value utils.Fl
	Unit  Unit
}

func (l Length) WriteCSS(w io.StringWriter) {
	writeFloat(w, l.Value)
	w.WriteString(l.Unit.String())
}

// ComputedLength is the resolved form of [Length] : an absolute
// value in pixels, or a percentage of the grid container size.
type ComputedLength struct {
	V          utils.Fl
	Percentage bool
}

func (c ComputedLength) WriteCSS(w io.StringWriter) {
	writeFloat(w, c.V)
	if c.Percentage {
		w.WriteString("%")
	} else {
		w.WriteString("px")
	}
}

// GridLine is a <grid-line> value, defining the start or end
// placement of a grid item.
// The zero value is the keyword "auto".
type GridLine[I Integer] struct {
	// Ident is a line name, or the empty string.
	Ident string
	// LineNum is the line number, where 0 means "not specified".
	LineNum I
	// IsSpan is true when the "span" keyword is present.
	IsSpan bool
}

// IsAuto returns true for the keyword "auto", the default.
func (l GridLine[I]) IsAuto() bool {
	return l.Ident == "" && l.LineNum.Int() == 0 && !l.IsSpan
}

// isIdentOnly returns true when only a line name is specified.
func (l GridLine[I]) isIdentOnly() bool {
	return l.Ident != "" && l.LineNum.Int() == 0 && !l.IsSpan
}

// CanOmit returns true if `end` matches the default end line for
// `l`, meaning `end` may be dropped when serializing a placement.
func (l GridLine[I]) CanOmit(end GridLine[I]) bool {
	if l.isIdentOnly() {
		return l == end
	}
	return end.IsAuto()
}

// TrackBreadth is a <track-breadth> value : a length or percentage,
// a flex factor, or a sizing keyword.
// The zero value is the keyword "auto".
type TrackBreadth[L Scalar] struct {
	v   L
	fr  utils.Fl
	tag byte // 0 for auto, 'b' for a breadth, 'f' for a flex factor, 'c' for min-content, 'x' for max-content
}

// NewBreadth returns the given <length-percentage> as a track breadth.
func NewBreadth[L Scalar](v L) TrackBreadth[L] { return TrackBreadth[L]{tag: 'b', v: v} }

// NewFr returns a flexible breadth, in flex units.
func NewFr[L Scalar](fr utils.Fl) TrackBreadth[L] { return TrackBreadth[L]{tag: 'f', fr: fr} }

func NewBreadthAuto[L Scalar]() TrackBreadth[L]       { return TrackBreadth[L]{} }
func NewBreadthMinContent[L Scalar]() TrackBreadth[L] { return TrackBreadth[L]{tag: 'c'} }
func NewBreadthMaxContent[L Scalar]() TrackBreadth[L] { return TrackBreadth[L]{tag: 'x'} }

// IsBreadth returns the <length-percentage>, or false.
func (b TrackBreadth[L]) IsBreadth() (L, bool) { return b.v, b.tag == 'b' }

// IsFr returns the flex factor, or false.
func (b TrackBreadth[L]) IsFr() (utils.Fl, bool) { return b.fr, b.tag == 'f' }

func (b TrackBreadth[L]) IsAuto() bool       { return b.tag == 0 }
func (b TrackBreadth[L]) IsMinContent() bool { return b.tag == 'c' }
func (b TrackBreadth[L]) IsMaxContent() bool { return b.tag == 'x' }

// IsFixed returns true for <fixed-breadth> values,
// that is lengths and percentages.
func (b TrackBreadth[L]) IsFixed() bool { return b.tag == 'b' }

// TrackSize is a <track-size> value : a single breadth, a minmax()
// range, or a fit-content() limit.
// The zero value is the initial value "auto".
type TrackSize[L Scalar] struct {
	min, max TrackBreadth[L] // min also stores the single breadth or the fit-content() argument
	tag      byte            // 0 for a single breadth, 'm' for minmax(), 'f' for fit-content()
}

// NewTrackSize returns the given breadth as a track size.
func NewTrackSize[L Scalar](b TrackBreadth[L]) TrackSize[L] { return TrackSize[L]{min: b} }

// NewMinmax returns a minmax(`min`, `max`) track size.
func NewMinmax[L Scalar](min, max TrackBreadth[L]) TrackSize[L] {
	return TrackSize[L]{min: min, max: max, tag: 'm'}
}

// NewFitContent returns fit-content(`limit`).
func NewFitContent[L Scalar](limit L) TrackSize[L] {
	return TrackSize[L]{min: NewBreadth(limit), tag: 'f'}
}

// IsBreadth returns the single breadth, or false.
func (s TrackSize[L]) IsBreadth() (TrackBreadth[L], bool) { return s.min, s.tag == 0 }

// IsMinmax returns the arguments of a minmax() size, or false.
func (s TrackSize[L]) IsMinmax() (min, max TrackBreadth[L], ok bool) {
	return s.min, s.max, s.tag == 'm'
}

// IsFitContent returns the argument of a fit-content() size, or false.
func (s TrackSize[L]) IsFitContent() (L, bool) {
	l, _ := s.min.IsBreadth()
	return l, s.tag == 'f'
}

// IsInitial returns true for the initial value, a single "auto" breadth.
func (s TrackSize[L]) IsInitial() bool { return s.tag == 0 && s.min.IsAuto() }

// IsFixed returns true if the size contains a fixed breadth, so that
// tracks with this size may be repeated automatically.
func (s TrackSize[L]) IsFixed() bool {
	switch s.tag {
	case 'm':
		if s.min.IsFixed() {
			return true
		}
		if _, isFr := s.min.IsFr(); isFr {
			return false
		}
		return s.max.IsFixed()
	case 'f':
		return false
	default:
		return s.min.IsFixed()
	}
}

// RepeatCount is the first argument of a repeat() notation.
// The zero value is the number zero.
type RepeatCount[I Integer] struct {
	num I
	tag byte // 0 for a number, 'l' for auto-fill, 't' for auto-fit
}

func NewRepeatCount[I Integer](count I) RepeatCount[I] { return RepeatCount[I]{num: count} }
func AutoFill[I Integer]() RepeatCount[I]              { return RepeatCount[I]{tag: 'l'} }
func AutoFit[I Integer]() RepeatCount[I]               { return RepeatCount[I]{tag: 't'} }

// IsNumber returns the definite repetition count, or false.
func (c RepeatCount[I]) IsNumber() (I, bool) { return c.num, c.tag == 0 }

func (c RepeatCount[I]) IsAutoFill() bool { return c.tag == 'l' }
func (c RepeatCount[I]) IsAutoFit() bool  { return c.tag == 't' }

// IsDefinite returns true when the count is a number, as opposed
// to the auto-fill and auto-fit keywords.
func (c RepeatCount[I]) IsDefinite() bool { return c.tag == 0 }

// TrackRepeat is the repeat() notation used in a <track-list>.
type TrackRepeat[L Scalar, I Integer] struct {
	Count RepeatCount[I]
	// LineNames are the names before and after each size, so that
	// len(LineNames) == len(TrackSizes) + 1.
	// Empty groups are stored as empty (non nil) slices.
	LineNames  [][]string
	TrackSizes []TrackSize[L]
}

// TrackListValue is one item of a <track-list> : either a single
// track size, or a repeat() notation.
type TrackListValue[L Scalar, I Integer] struct {
	size   TrackSize[L]
	repeat TrackRepeat[L, I]
	tag    byte // 0 for a size, 'r' for a repeat
}

func NewTrackSizeValue[L Scalar, I Integer](size TrackSize[L]) TrackListValue[L, I] {
	return TrackListValue[L, I]{size: size}
}

func NewTrackRepeatValue[L Scalar, I Integer](repeat TrackRepeat[L, I]) TrackListValue[L, I] {
	return TrackListValue[L, I]{repeat: repeat, tag: 'r'}
}

// IsSize returns the track size, or false for a repeat.
func (v TrackListValue[L, I]) IsSize() (TrackSize[L], bool) { return v.size, v.tag == 0 }

// IsRepeat returns the repeat notation, or false for a single size.
func (v TrackListValue[L, I]) IsRepeat() (TrackRepeat[L, I], bool) { return v.repeat, v.tag == 'r' }

// TrackList is a <track-list> value : a list of track sizes and
// repeat() notations, interleaved with optional line name groups.
type TrackList[L Scalar, I Integer] struct {
	// AutoRepeatIndex is the index in Values of the repeat() with an
	// auto-fill or auto-fit count, or len(Values) if there is none.
	AutoRepeatIndex int
	// Values are the track sizes and repeats.
	Values []TrackListValue[L, I]
	// LineNames are the name groups before and after each value,
	// so that len(LineNames) == len(Values) + 1.
	// Empty groups are stored as empty (non nil) slices.
	LineNames [][]string
}

// HasAutoRepeat returns true if one of the values is a repeat()
// with an auto-fill or auto-fit count.
func (t TrackList[L, I]) HasAutoRepeat() bool { return t.AutoRepeatIndex < len(t.Values) }

// IsExplicit returns true if the list contains no repeat() notation.
func (t TrackList[L, I]) IsExplicit() bool {
	for _, value := range t.Values {
		if _, isRepeat := value.IsRepeat(); isRepeat {
			return false
		}
	}
	return true
}

// NameRepeat is the repeat() notation used in a <line-name-list>,
// repeating line names instead of track sizes.
type NameRepeat[I Integer] struct {
	Count RepeatCount[I] // a number or auto-fill
	// LineNames has at least one group.
	// Empty groups are stored as empty (non nil) slices.
	LineNames [][]string
}

func (r NameRepeat[I]) IsAutoFill() bool { return r.Count.IsAutoFill() }

// LineNameListValue is one item of a <line-name-list> : a line name
// group, or a repeated pattern of groups.
type LineNameListValue[I Integer] struct {
	names  []string
	repeat NameRepeat[I]
	tag    byte // 0 for line names, 'r' for a repeat
}

func NewLineNames[I Integer](names []string) LineNameListValue[I] {
	return LineNameListValue[I]{names: names}
}

func NewLineNamesRepeat[I Integer](repeat NameRepeat[I]) LineNameListValue[I] {
	return LineNameListValue[I]{repeat: repeat, tag: 'r'}
}

// IsLineNames returns the name group, or false for a repeat.
func (v LineNameListValue[I]) IsLineNames() ([]string, bool) { return v.names, v.tag == 0 }

// IsRepeat returns the repeat notation, or false for a plain group.
func (v LineNameListValue[I]) IsRepeat() (NameRepeat[I], bool) { return v.repeat, v.tag == 'r' }

// LineNameList is the <line-name-list> of a subgrid template.
type LineNameList[I Integer] struct {
	// Values are the name groups and repeats, in order.
	Values []LineNameListValue[I]
	// ExpandedLineNamesLength is the total number of name groups,
	// with definite repeats expanded, ignoring auto-fill repeats,
	// and capped to MaxGridLine.
	ExpandedLineNamesLength int
}

// GridTemplateComponent is the value of the grid-template-rows and
// grid-template-columns properties.
// The zero value is the keyword "none".
type GridTemplateComponent[L Scalar, I Integer] struct {
	trackList *TrackList[L, I]
	subgrid   *LineNameList[I]
	tag       byte // 0 for none, 'l' for a track list, 's' for subgrid, 'm' for masonry
}

func NewGridTemplateNone[L Scalar, I Integer]() GridTemplateComponent[L, I] {
	return GridTemplateComponent[L, I]{}
}

func NewGridTemplateMasonry[L Scalar, I Integer]() GridTemplateComponent[L, I] {
	return GridTemplateComponent[L, I]{tag: 'm'}
}

func NewGridTemplateTrackList[L Scalar, I Integer](list TrackList[L, I]) GridTemplateComponent[L, I] {
	return GridTemplateComponent[L, I]{trackList: &list, tag: 'l'}
}

func NewGridTemplateSubgrid[L Scalar, I Integer](names LineNameList[I]) GridTemplateComponent[L, I] {
	return GridTemplateComponent[L, I]{subgrid: &names, tag: 's'}
}

// IsNone returns true for the keyword "none", the default.
func (g GridTemplateComponent[L, I]) IsNone() bool { return g.tag == 0 }

// IsMasonry returns true for the keyword "masonry".
func (g GridTemplateComponent[L, I]) IsMasonry() bool { return g.tag == 'm' }

// IsTrackList returns the explicit track list, or false.
func (g GridTemplateComponent[L, I]) IsTrackList() (TrackList[L, I], bool) {
	if g.tag == 'l' {
		return *g.trackList, true
	}
	return TrackList[L, I]{}, false
}

// IsSubgrid returns the subgrid line names, or false.
func (g GridTemplateComponent[L, I]) IsSubgrid() (LineNameList[I], bool) {
	if g.tag == 's' {
		return *g.subgrid, true
	}
	return LineNameList[I]{}, false
}

// TrackListLen returns the number of values in the track list,
// or 0 for the other variants.
func (g GridTemplateComponent[L, I]) TrackListLen() int {
	if g.tag == 'l' {
		return len(g.trackList.Values)
	}
	return 0
}

// ImplicitGridTracks is the value of the grid-auto-rows and
// grid-auto-columns properties.
// An empty list is the initial value "auto".
type ImplicitGridTracks[L Scalar] []TrackSize[L]

// IsAuto returns true for the initial value.
func (t ImplicitGridTracks[L]) IsAuto() bool { return len(t) == 0 }

// Placement is the value of the grid-row and grid-column shorthand
// properties : a pair of start and end lines.
type Placement[I Integer] struct {
	Start, End GridLine[I]
}
