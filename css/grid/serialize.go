package grid

import (
	"io"

	"github.com/benoitkugler/cssgrid/css/parser"
)

// writeNameGroup writes the line names enclosed in `prefix` and
// `suffix`, or nothing at all for an empty group.
func writeNameGroup(w io.StringWriter, prefix string, names []string, suffix string) {
	if len(names) == 0 {
		return
	}
	w.WriteString(prefix)
	for i, name := range names {
		if i > 0 {
			w.WriteString(" ")
		}
		w.WriteString(parser.SerializeIdentifier(name))
	}
	w.WriteString(suffix)
}

func (l GridLine[I]) WriteCSS(w io.StringWriter) {
	if l.IsAuto() {
		w.WriteString("auto")
		return
	}
	if l.isIdentOnly() {
		w.WriteString(parser.SerializeIdentifier(l.Ident))
		return
	}
	hasIdent := l.Ident != ""
	num := l.LineNum.Int()
	if l.IsSpan {
		w.WriteString("span")
		// "span 1 name" is the same as "span name"
		if num != 0 && !(num == 1 && hasIdent) {
			w.WriteString(" ")
			l.LineNum.WriteCSS(w)
		}
		if hasIdent {
			w.WriteString(" ")
			w.WriteString(parser.SerializeIdentifier(l.Ident))
		}
		return
	}
	l.LineNum.WriteCSS(w)
	if hasIdent {
		w.WriteString(" ")
		w.WriteString(parser.SerializeIdentifier(l.Ident))
	}
}

func (b TrackBreadth[L]) WriteCSS(w io.StringWriter) {
	switch b.tag {
	case 'b':
		b.v.WriteCSS(w)
	case 'f':
		writeFloat(w, b.fr)
		w.WriteString("fr")
	case 'c':
		w.WriteString("min-content")
	case 'x':
		w.WriteString("max-content")
	default:
		w.WriteString("auto")
	}
}

func (s TrackSize[L]) WriteCSS(w io.StringWriter) {
	switch s.tag {
	case 'm':
		// minmax(auto, <flex>) resolves like <flex>
		if _, isFr := s.max.IsFr(); isFr && s.min.IsAuto() {
			s.max.WriteCSS(w)
			return
		}
		w.WriteString("minmax(")
		s.min.WriteCSS(w)
		w.WriteString(", ")
		s.max.WriteCSS(w)
		w.WriteString(")")
	case 'f':
		w.WriteString("fit-content(")
		s.min.WriteCSS(w)
		w.WriteString(")")
	default:
		s.min.WriteCSS(w)
	}
}

func (c RepeatCount[I]) WriteCSS(w io.StringWriter) {
	switch c.tag {
	case 'l':
		w.WriteString("auto-fill")
	case 't':
		w.WriteString("auto-fit")
	default:
		c.num.WriteCSS(w)
	}
}

func (r TrackRepeat[L, I]) WriteCSS(w io.StringWriter) {
	w.WriteString("repeat(")
	r.Count.WriteCSS(w)
	w.WriteString(", ")
	for i, size := range r.TrackSizes {
		if i > 0 {
			w.WriteString(" ")
		}
		if i < len(r.LineNames) {
			writeNameGroup(w, "[", r.LineNames[i], "] ")
		}
		size.WriteCSS(w)
	}
	if len(r.LineNames) > len(r.TrackSizes) {
		writeNameGroup(w, " [", r.LineNames[len(r.TrackSizes)], "]")
	}
	w.WriteString(")")
}

func (v TrackListValue[L, I]) WriteCSS(w io.StringWriter) {
	if v.tag == 'r' {
		v.repeat.WriteCSS(w)
	} else {
		v.size.WriteCSS(w)
	}
}

func (t TrackList[L, I]) WriteCSS(w io.StringWriter) {
	for idx := 0; ; idx++ {
		var names []string
		if idx < len(t.LineNames) {
			names = t.LineNames[idx]
		}
		writeNameGroup(w, "[", names, "]")
		if idx >= len(t.Values) {
			break
		}
		if len(names) != 0 {
			w.WriteString(" ")
		}
		t.Values[idx].WriteCSS(w)

		// no trailing space after the last value, unless a name
		// group follows
		nextNames := idx+1 < len(t.LineNames) && len(t.LineNames[idx+1]) != 0
		if idx+1 != len(t.Values) || nextNames {
			w.WriteString(" ")
		}
	}
}

func (r NameRepeat[I]) WriteCSS(w io.StringWriter) {
	w.WriteString("repeat(")
	r.Count.WriteCSS(w)
	w.WriteString(",")
	for _, names := range r.LineNames {
		// empty groups are kept, they still count as a line
		if len(names) == 0 {
			w.WriteString(" []")
		} else {
			writeNameGroup(w, " [", names, "]")
		}
	}
	w.WriteString(")")
}

func (v LineNameListValue[I]) WriteCSS(w io.StringWriter) {
	if v.tag == 'r' {
		v.repeat.WriteCSS(w)
		return
	}
	// brackets are always written, even for an empty group
	w.WriteString("[")
	for i, name := range v.names {
		if i > 0 {
			w.WriteString(" ")
		}
		w.WriteString(parser.SerializeIdentifier(name))
	}
	w.WriteString("]")
}

func (l LineNameList[I]) WriteCSS(w io.StringWriter) {
	w.WriteString("subgrid")
	for _, value := range l.Values {
		w.WriteString(" ")
		value.WriteCSS(w)
	}
}

func (g GridTemplateComponent[L, I]) WriteCSS(w io.StringWriter) {
	switch g.tag {
	case 'l':
		g.trackList.WriteCSS(w)
	case 's':
		g.subgrid.WriteCSS(w)
	case 'm':
		w.WriteString("masonry")
	default:
		w.WriteString("none")
	}
}

func (t ImplicitGridTracks[L]) WriteCSS(w io.StringWriter) {
	if t.IsAuto() {
		w.WriteString("auto")
		return
	}
	for i, size := range t {
		if i > 0 {
			w.WriteString(" ")
		}
		size.WriteCSS(w)
	}
}

func (p Placement[I]) WriteCSS(w io.StringWriter) {
	p.Start.WriteCSS(w)
	if !p.Start.CanOmit(p.End) {
		w.WriteString(" / ")
		p.End.WriteCSS(w)
	}
}
