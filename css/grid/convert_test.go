package grid

import (
	"io"
	"strconv"
	"testing"

	"github.com/benoitkugler/cssgrid/utils"
	tu "github.com/benoitkugler/cssgrid/utils/testutils"
)

// alternative integer representation
type bigInt int64

func (b bigInt) Int() int { return int(b) }

func (b bigInt) WriteCSS(w io.StringWriter) { w.WriteString(strconv.FormatInt(int64(b), 10)) }

func toBig(i Int) bigInt { return bigInt(i) }

func TestResolveLength(t *testing.T) {
	ctx := LengthContext{FontSize: 16, RootFontSize: 20}
	for _, test := range []struct {
		length Length
		want   ComputedLength
	}{
		{Length{Value: 10, Unit: Px}, ComputedLength{V: 10}},
		{Length{Value: 12, Unit: Pt}, ComputedLength{V: 16}},
		{Length{Value: 1, Unit: Pc}, ComputedLength{V: 16}},
		{Length{Value: 1, Unit: In}, ComputedLength{V: 96}},
		{Length{Value: 1, Unit: Cm}, ComputedLength{V: 96. / 2.54}},
		{Length{Value: 1, Unit: Mm}, ComputedLength{V: 9.6 / 2.54}},
		{Length{Value: 1, Unit: Q}, ComputedLength{V: 2.4 / 2.54}},
		{Length{Value: 2, Unit: Em}, ComputedLength{V: 32}},
		{Length{Value: 2, Unit: Rem}, ComputedLength{V: 40}},
		// ex and ch default to half the font size
		{Length{Value: 3, Unit: Ex}, ComputedLength{V: 24}},
		{Length{Value: 3, Unit: Ch}, ComputedLength{V: 24}},
		{Length{Value: 33, Unit: Perc}, ComputedLength{V: 33, Percentage: true}},
	} {
		tu.AssertEqual(t, ctx.Resolve(test.length), test.want)
	}

	withFont := LengthContext{FontSize: 16, ExHeight: 7, ChWidth: 8}
	tu.AssertEqual(t, withFont.Resolve(Length{Value: 2, Unit: Ex}), ComputedLength{V: 14})
	tu.AssertEqual(t, withFont.Resolve(Length{Value: 2, Unit: Ch}), ComputedLength{V: 16})
}

func TestConvertTrackList(t *testing.T) {
	ctx := LengthContext{FontSize: 16, RootFontSize: 16}
	list, err := ParseTrackListString("[a] 1fr [b] minmax(10px, 50%)")
	tu.AssertNoErr(t, err)

	resolved := ConvertTrackList(list, ctx.Resolve, toBig)
	tu.AssertEqual(t, resolved, TrackList[ComputedLength, bigInt]{
		AutoRepeatIndex: 2,
		Values: []TrackListValue[ComputedLength, bigInt]{
			NewTrackSizeValue[ComputedLength, bigInt](NewTrackSize(NewFr[ComputedLength](1))),
			NewTrackSizeValue[ComputedLength, bigInt](NewMinmax(
				NewBreadth(ComputedLength{V: 10}),
				NewBreadth(ComputedLength{V: 50, Percentage: true}),
			)),
		},
		LineNames: names(g("a"), g("b"), g()),
	})
}

func TestConvertCSS(t *testing.T) {
	ctx := LengthContext{FontSize: 16, RootFontSize: 16}
	for _, test := range []struct{ css, want string }{
		{"10px 1fr", "10px 1fr"},
		{"2em 50%", "32px 50%"},
		{"repeat(auto-fill, minmax(2rem, 1fr)) [last]", "repeat(auto-fill, minmax(32px, 1fr)) [last]"},
		{"fit-content(3em)", "fit-content(48px)"},
		{"none", "none"},
		{"masonry", "masonry"},
		{"subgrid [a] repeat(2, [b])", "subgrid [a] repeat(2, [b])"},
	} {
		template, err := ParseGridTemplateComponentString(test.css)
		tu.AssertNoErr(t, err)
		resolved := ConvertGridTemplateComponent(template, ctx.Resolve, toBig)
		tu.AssertEqual(t, CSS(resolved), test.want)
	}
}

func TestConvertPlacement(t *testing.T) {
	placement, err := ParsePlacementString("span 2 / 4")
	tu.AssertNoErr(t, err)
	big := ConvertPlacement(placement, toBig)
	tu.AssertEqual(t, big.Start, GridLine[bigInt]{IsSpan: true, LineNum: 2})
	tu.AssertEqual(t, big.End, GridLine[bigInt]{LineNum: 4})
	tu.AssertEqual(t, CSS(big), "span 2 / 4")
}

func TestConvertLineNameList(t *testing.T) {
	list, err := ParseLineNameListString("subgrid [a] repeat(3, [b] [c])")
	tu.AssertNoErr(t, err)
	big := ConvertLineNameList(list, toBig)
	tu.AssertEqual(t, big.ExpandedLineNamesLength, 7)
	tu.AssertEqual(t, CSS(big), "subgrid [a] repeat(3, [b] [c])")
}

func TestConvertImplicitGridTracks(t *testing.T) {
	ctx := LengthContext{FontSize: 10}
	tracks, err := ParseImplicitGridTracksString("1em minmax(auto, 2em)")
	tu.AssertNoErr(t, err)
	resolved := ConvertImplicitGridTracks(tracks, ctx.Resolve)
	tu.AssertEqual(t, CSS(resolved), "10px minmax(auto, 20px)")
	tu.AssertEqual(t, resolved.IsAuto(), false)

	var nothing ImplicitGridTracks[Length]
	tu.AssertEqual(t, ConvertImplicitGridTracks(nothing, ctx.Resolve) == nil, true)
}

func TestConvertPreservesFixed(t *testing.T) {
	ctx := LengthContext{FontSize: 16}
	for _, css := range []string{"10px", "1fr", "minmax(auto, 10px)", "fit-content(10px)"} {
		size, err := ParseTrackSizeString(css)
		tu.AssertNoErr(t, err)
		resolved := ConvertTrackSize(size, ctx.Resolve)
		tu.AssertEqual(t, resolved.IsFixed(), size.IsFixed())
	}
}

func TestConvertFl(t *testing.T) {
	// utils.Fl is the numeric type shared with the parser
	var v utils.Fl = 1.5
	tu.AssertEqual(t, CSS(NewFr[ComputedLength](v)), "1.5fr")
}
