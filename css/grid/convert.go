package grid

import "github.com/benoitkugler/cssgrid/utils"

// The Convert functions change the length and integer representations
// of a value, preserving its structure. Line names are shared with
// the input, not copied.

// ConvertTrackBreadth applies `conv` to the length of `b`, if any.
func ConvertTrackBreadth[L1, L2 Scalar](b TrackBreadth[L1], conv func(L1) L2) TrackBreadth[L2] {
	out := TrackBreadth[L2]{fr: b.fr, tag: b.tag}
	if b.tag == 'b' {
		out.v = conv(b.v)
	}
	return out
}

// ConvertTrackSize applies `conv` to the lengths of `s`.
func ConvertTrackSize[L1, L2 Scalar](s TrackSize[L1], conv func(L1) L2) TrackSize[L2] {
	return TrackSize[L2]{
		min: ConvertTrackBreadth(s.min, conv),
		max: ConvertTrackBreadth(s.max, conv),
		tag: s.tag,
	}
}

// ConvertRepeatCount applies `conv` to the count of `c`, if any.
func ConvertRepeatCount[I1, I2 Integer](c RepeatCount[I1], conv func(I1) I2) RepeatCount[I2] {
	out := RepeatCount[I2]{tag: c.tag}
	if c.tag == 0 {
		out.num = conv(c.num)
	}
	return out
}

// ConvertTrackRepeat applies `convL` and `convI` to the content of `r`.
func ConvertTrackRepeat[L1 Scalar, I1 Integer, L2 Scalar, I2 Integer](r TrackRepeat[L1, I1],
	convL func(L1) L2, convI func(I1) I2) TrackRepeat[L2, I2] {
	out := TrackRepeat[L2, I2]{
		Count:     ConvertRepeatCount(r.Count, convI),
		LineNames: r.LineNames,
	}
	if r.TrackSizes != nil {
		out.TrackSizes = make([]TrackSize[L2], len(r.TrackSizes))
		for i, size := range r.TrackSizes {
			out.TrackSizes[i] = ConvertTrackSize(size, convL)
		}
	}
	return out
}

// ConvertTrackListValue applies `convL` and `convI` to the content of `v`.
func ConvertTrackListValue[L1 Scalar, I1 Integer, L2 Scalar, I2 Integer](v TrackListValue[L1, I1],
	convL func(L1) L2, convI func(I1) I2) TrackListValue[L2, I2] {
	out := TrackListValue[L2, I2]{tag: v.tag}
	if v.tag == 'r' {
		out.repeat = ConvertTrackRepeat(v.repeat, convL, convI)
	} else {
		out.size = ConvertTrackSize(v.size, convL)
	}
	return out
}

// ConvertTrackList applies `convL` and `convI` to the content of `t`.
func ConvertTrackList[L1 Scalar, I1 Integer, L2 Scalar, I2 Integer](t TrackList[L1, I1],
	convL func(L1) L2, convI func(I1) I2) TrackList[L2, I2] {
	out := TrackList[L2, I2]{AutoRepeatIndex: t.AutoRepeatIndex, LineNames: t.LineNames}
	if t.Values != nil {
		out.Values = make([]TrackListValue[L2, I2], len(t.Values))
		for i, value := range t.Values {
			out.Values[i] = ConvertTrackListValue(value, convL, convI)
		}
	}
	return out
}

// ConvertNameRepeat applies `conv` to the count of `r`.
func ConvertNameRepeat[I1, I2 Integer](r NameRepeat[I1], conv func(I1) I2) NameRepeat[I2] {
	return NameRepeat[I2]{Count: ConvertRepeatCount(r.Count, conv), LineNames: r.LineNames}
}

// ConvertLineNameList applies `conv` to the counts of `l`.
func ConvertLineNameList[I1, I2 Integer](l LineNameList[I1], conv func(I1) I2) LineNameList[I2] {
	out := LineNameList[I2]{ExpandedLineNamesLength: l.ExpandedLineNamesLength}
	if l.Values != nil {
		out.Values = make([]LineNameListValue[I2], len(l.Values))
		for i, value := range l.Values {
			converted := LineNameListValue[I2]{names: value.names, tag: value.tag}
			if value.tag == 'r' {
				converted.repeat = ConvertNameRepeat(value.repeat, conv)
			}
			out.Values[i] = converted
		}
	}
	return out
}

// ConvertGridTemplateComponent applies `convL` and `convI` to the
// content of `g`.
func ConvertGridTemplateComponent[L1 Scalar, I1 Integer, L2 Scalar, I2 Integer](g GridTemplateComponent[L1, I1],
	convL func(L1) L2, convI func(I1) I2) GridTemplateComponent[L2, I2] {
	switch g.tag {
	case 'l':
		return NewGridTemplateTrackList(ConvertTrackList(*g.trackList, convL, convI))
	case 's':
		return NewGridTemplateSubgrid[L2](ConvertLineNameList(*g.subgrid, convI))
	case 'm':
		return NewGridTemplateMasonry[L2, I2]()
	default:
		return NewGridTemplateNone[L2, I2]()
	}
}

// ConvertImplicitGridTracks applies `conv` to the sizes of `t`.
func ConvertImplicitGridTracks[L1, L2 Scalar](t ImplicitGridTracks[L1], conv func(L1) L2) ImplicitGridTracks[L2] {
	if t == nil {
		return nil
	}
	out := make(ImplicitGridTracks[L2], len(t))
	for i, size := range t {
		out[i] = ConvertTrackSize(size, conv)
	}
	return out
}

// ConvertGridLine applies `conv` to the line number of `l`.
func ConvertGridLine[I1, I2 Integer](l GridLine[I1], conv func(I1) I2) GridLine[I2] {
	return GridLine[I2]{Ident: l.Ident, LineNum: conv(l.LineNum), IsSpan: l.IsSpan}
}

// ConvertPlacement applies `conv` to the line numbers of `p`.
func ConvertPlacement[I1, I2 Integer](p Placement[I1], conv func(I1) I2) Placement[I2] {
	return Placement[I2]{Start: ConvertGridLine(p.Start, conv), End: ConvertGridLine(p.End, conv)}
}

// LengthContext provides the reference sizes needed to resolve
// font relative units.
type LengthContext struct {
	FontSize     utils.Fl // in pixels
	RootFontSize utils.Fl // in pixels, for rem
	// ExHeight and ChWidth are measured on the font.
	// When zero, they default to half the font size.
	ExHeight, ChWidth utils.Fl
}

// pixels per unit, for absolute units
var absoluteFactors = map[Unit]utils.Fl{
	Px: 1,
	Pt: 96. / 72.,
	Pc: 16,
	In: 96,
	Cm: 96. / 2.54,
	Mm: 9.6 / 2.54,
	Q:  2.4 / 2.54,
}

// Resolve returns `l` as an absolute pixel value, or a percentage.
func (ctx LengthContext) Resolve(l Length) ComputedLength {
	switch l.Unit {
	case Perc:
		return ComputedLength{V: l.Value, Percentage: true}
	case Em:
		return ComputedLength{V: l.Value * ctx.FontSize}
	case Rem:
		return ComputedLength{V: l.Value * ctx.RootFontSize}
	case Ex:
		ex := ctx.ExHeight
		if ex == 0 {
			ex = ctx.FontSize / 2
		}
		return ComputedLength{V: l.Value * ex}
	case Ch:
		ch := ctx.ChWidth
		if ch == 0 {
			ch = ctx.FontSize / 2
		}
		return ComputedLength{V: l.Value * ch}
	default:
		return ComputedLength{V: l.Value * absoluteFactors[l.Unit]}
	}
}
