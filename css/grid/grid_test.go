package grid

import (
	"testing"

	"github.com/benoitkugler/cssgrid/css/parser"
	"github.com/benoitkugler/cssgrid/utils"
	tu "github.com/benoitkugler/cssgrid/utils/testutils"
)

func px(v utils.Fl) Length   { return Length{Value: v, Unit: Px} }
func perc(v utils.Fl) Length { return Length{Value: v, Unit: Perc} }

// shortcuts for authored values
func size(b TrackBreadth[Length]) TrackListValue[Length, Int] {
	return NewTrackSizeValue[Length, Int](NewTrackSize(b))
}

func names(groups ...[]string) [][]string { return groups }

func g(idents ...string) []string {
	if len(idents) == 0 {
		return []string{}
	}
	return idents
}

func TestParseTrackSize(t *testing.T) {
	for _, test := range []struct {
		css  string
		want TrackSize[Length]
	}{
		{"auto", TrackSize[Length]{}},
		{"AUTO", TrackSize[Length]{}},
		{"10px", NewTrackSize(NewBreadth(px(10)))},
		{"1.5em", NewTrackSize(NewBreadth(Length{Value: 1.5, Unit: Em}))},
		{"50%", NewTrackSize(NewBreadth(perc(50)))},
		{"0", NewTrackSize(NewBreadth(px(0)))},
		{"2.5fr", NewTrackSize(NewFr[Length](2.5))},
		{"0fr", NewTrackSize(NewFr[Length](0))},
		{"min-content", NewTrackSize(NewBreadthMinContent[Length]())},
		{"MAX-CONTENT", NewTrackSize(NewBreadthMaxContent[Length]())},
		{"minmax(10px, 1fr)", NewMinmax(NewBreadth(px(10)), NewFr[Length](1))},
		{"minmax( MIN-CONTENT , 1fr )", NewMinmax(NewBreadthMinContent[Length](), NewFr[Length](1))},
		{"minmax(auto, max-content)", NewMinmax(NewBreadthAuto[Length](), NewBreadthMaxContent[Length]())},
		{"minmax(25ch, 100%)", NewMinmax(NewBreadth(Length{Value: 25, Unit: Ch}), NewBreadth(perc(100)))},
		{"fit-content(18%)", NewFitContent(perc(18))},
		{"FIT-CONTENT(40px)", NewFitContent(px(40))},
	} {
		got, err := ParseTrackSizeString(test.css)
		tu.AssertNoErr(t, err)
		tu.AssertEqual(t, got, test.want)
	}
}

func TestParseTrackSizeInvalid(t *testing.T) {
	for _, css := range []string{
		"",
		"-10px",
		"-1fr",
		"-50%",
		"10deg",
		"10",
		"foo",
		"none",
		"initial",
		"minmax(10px)",
		"minmax(10px, 1fr, auto)",
		"minmax(1fr, 10px)",
		"minmax(10px 2, 1fr)",
		"fit-content(1fr)",
		"fit-content(auto)",
		"fit-content()",
		"repeat(2, 10px)",
		"var(--size)",
		"1fr 2fr",
	} {
		if _, err := ParseTrackSizeString(css); err == nil {
			t.Fatalf("expected error on %q", css)
		}
	}
}

func TestParseTrackList(t *testing.T) {
	for _, test := range []struct {
		css  string
		want TrackList[Length, Int]
	}{
		{"1fr 2fr", TrackList[Length, Int]{
			AutoRepeatIndex: 2,
			Values:          []TrackListValue[Length, Int]{size(NewFr[Length](1)), size(NewFr[Length](2))},
			LineNames:       names(g(), g(), g()),
		}},
		{"[full-start] minmax(10px, 1fr) [full-end]", TrackList[Length, Int]{
			AutoRepeatIndex: 1,
			Values: []TrackListValue[Length, Int]{
				NewTrackSizeValue[Length, Int](NewMinmax(NewBreadth(px(10)), NewFr[Length](1))),
			},
			LineNames: names(g("full-start"), g("full-end")),
		}},
		{"[a b] auto [c] fit-content(18%)", TrackList[Length, Int]{
			AutoRepeatIndex: 2,
			Values: []TrackListValue[Length, Int]{
				size(NewBreadthAuto[Length]()),
				NewTrackSizeValue[Length, Int](NewFitContent(perc(18))),
			},
			LineNames: names(g("a", "b"), g("c"), g()),
		}},
		{"repeat(4, [col] 250px)", TrackList[Length, Int]{
			AutoRepeatIndex: 1,
			Values: []TrackListValue[Length, Int]{
				NewTrackRepeatValue[Length, Int](TrackRepeat[Length, Int]{
					Count:      NewRepeatCount(Int(4)),
					LineNames:  names(g("col"), g()),
					TrackSizes: []TrackSize[Length]{NewTrackSize(NewBreadth(px(250)))},
				}),
			},
			LineNames: names(g(), g()),
		}},
		{"repeat(auto-fill, [a] 10px) [last]", TrackList[Length, Int]{
			AutoRepeatIndex: 0,
			Values: []TrackListValue[Length, Int]{
				NewTrackRepeatValue[Length, Int](TrackRepeat[Length, Int]{
					Count:      AutoFill[Int](),
					LineNames:  names(g("a"), g()),
					TrackSizes: []TrackSize[Length]{NewTrackSize(NewBreadth(px(10)))},
				}),
			},
			LineNames: names(g(), g("last")),
		}},
		{"100px repeat(auto-fit, minmax(100px, 1fr)) 100px", TrackList[Length, Int]{
			AutoRepeatIndex: 1,
			Values: []TrackListValue[Length, Int]{
				size(NewBreadth(px(100))),
				NewTrackRepeatValue[Length, Int](TrackRepeat[Length, Int]{
					Count:      AutoFit[Int](),
					LineNames:  names(g(), g()),
					TrackSizes: []TrackSize[Length]{NewMinmax(NewBreadth(px(100)), NewFr[Length](1))},
				}),
				size(NewBreadth(px(100))),
			},
			LineNames: names(g(), g(), g(), g()),
		}},
		{"repeat(2, minmax(auto, 1fr))", TrackList[Length, Int]{
			AutoRepeatIndex: 1,
			Values: []TrackListValue[Length, Int]{
				NewTrackRepeatValue[Length, Int](TrackRepeat[Length, Int]{
					Count:      NewRepeatCount(Int(2)),
					LineNames:  names(g(), g()),
					TrackSizes: []TrackSize[Length]{NewMinmax(NewBreadthAuto[Length](), NewFr[Length](1))},
				}),
			},
			LineNames: names(g(), g()),
		}},
		{"repeat(99999, 10px)", TrackList[Length, Int]{
			AutoRepeatIndex: 1,
			Values: []TrackListValue[Length, Int]{
				NewTrackRepeatValue[Length, Int](TrackRepeat[Length, Int]{
					Count:      NewRepeatCount(Int(10000)),
					LineNames:  names(g(), g()),
					TrackSizes: []TrackSize[Length]{NewTrackSize(NewBreadth(px(10)))},
				}),
			},
			LineNames: names(g(), g()),
		}},
	} {
		got, err := ParseTrackListString(test.css)
		tu.AssertNoErr(t, err)
		tu.AssertEqual(t, got, test.want)
	}
}

func TestParseTrackListInvalid(t *testing.T) {
	for _, css := range []string{
		"",
		"foo",
		"[coucou] [wow]",
		"[a] [b] 1fr",
		"none",
		"10px none",
		"repeat(auto-fill, 1fr)",
		"repeat(auto-fill, minmax(1fr, auto))",
		"repeat(auto-fit, auto)",
		"repeat(auto-fill, 10px) repeat(auto-fit, 10px)",
		"1fr repeat(auto-fill, 10px)",
		"repeat(auto-fill, 10px) 1fr",
		"repeat(2, 1fr) repeat(auto-fill, 10px)",
		"repeat(auto-fill, 10px) repeat(2, 1fr)",
		"fit-content(18%) repeat(auto-fill, 15em)",
		"repeat(0, 10px)",
		"repeat(-3, 10px)",
		"repeat(2.5, 10px)",
		"repeat(auto, 10px)",
		"repeat(2)",
		"repeat(2, )",
		"repeat(2, [a])",
		"repeat(2, 10px foo)",
		"repeat(1 2, 10px)",
		"16% repeat(auto-fill",
		"10px, 20px",
	} {
		if _, err := ParseTrackListString(css); err == nil {
			t.Fatalf("expected error on %q", css)
		}
	}
}

func TestParseLineNameList(t *testing.T) {
	for _, test := range []struct {
		css  string
		want LineNameList[Int]
	}{
		{"subgrid", LineNameList[Int]{}},
		{"SUBGRID [a]", LineNameList[Int]{
			Values:                  []LineNameListValue[Int]{NewLineNames[Int](g("a"))},
			ExpandedLineNamesLength: 1,
		}},
		{"subgrid [] [a b]", LineNameList[Int]{
			Values: []LineNameListValue[Int]{
				NewLineNames[Int](g()),
				NewLineNames[Int](g("a", "b")),
			},
			ExpandedLineNamesLength: 2,
		}},
		{"subgrid [a] repeat(2, [b] [c d])", LineNameList[Int]{
			Values: []LineNameListValue[Int]{
				NewLineNames[Int](g("a")),
				NewLineNamesRepeat(NameRepeat[Int]{
					Count:     NewRepeatCount(Int(2)),
					LineNames: names(g("b"), g("c", "d")),
				}),
			},
			ExpandedLineNamesLength: 5,
		}},
		{"subgrid repeat(auto-fill, [x]) [last]", LineNameList[Int]{
			Values: []LineNameListValue[Int]{
				NewLineNamesRepeat(NameRepeat[Int]{
					Count:     AutoFill[Int](),
					LineNames: names(g("x")),
				}),
				NewLineNames[Int](g("last")),
			},
			ExpandedLineNamesLength: 1,
		}},
		{"subgrid repeat(9999, [a] [b])", LineNameList[Int]{
			Values: []LineNameListValue[Int]{
				NewLineNamesRepeat(NameRepeat[Int]{
					Count:     NewRepeatCount(Int(9999)),
					LineNames: names(g("a"), g("b")),
				}),
			},
			ExpandedLineNamesLength: 10000,
		}},
	} {
		got, err := ParseLineNameListString(test.css)
		tu.AssertNoErr(t, err)
		tu.AssertEqual(t, got, test.want)
	}
}

func TestParseLineNameListInvalid(t *testing.T) {
	for _, css := range []string{
		"",
		"[a]",
		"subgrid 1fr",
		"subgrid [span]",
		"subgrid [auto]",
		"subgrid [initial]",
		"subgrid repeat(auto-fit, [a])",
		"subgrid repeat(auto-fill, [a]) repeat(auto-fill, [b])",
		"subgrid repeat(2, foo)",
		"subgrid repeat(2)",
		"subgrid repeat(0, [a])",
		"subgrid masonry",
	} {
		if _, err := ParseLineNameListString(css); err == nil {
			t.Fatalf("expected error on %q", css)
		}
	}
}

func TestParseGridTemplateComponent(t *testing.T) {
	for _, test := range []struct {
		css  string
		want GridTemplateComponent[Length, Int]
	}{
		{"none", NewGridTemplateNone[Length, Int]()},
		{"NONE", NewGridTemplateNone[Length, Int]()},
		{"masonry", NewGridTemplateMasonry[Length, Int]()},
		{"subgrid", NewGridTemplateSubgrid[Length](LineNameList[Int]{})},
		{"subgrid [a]", NewGridTemplateSubgrid[Length](LineNameList[Int]{
			Values:                  []LineNameListValue[Int]{NewLineNames[Int](g("a"))},
			ExpandedLineNamesLength: 1,
		})},
		{"[a] 1fr", NewGridTemplateTrackList(TrackList[Length, Int]{
			AutoRepeatIndex: 1,
			Values:          []TrackListValue[Length, Int]{size(NewFr[Length](1))},
			LineNames:       names(g("a"), g()),
		})},
	} {
		got, err := ParseGridTemplateComponentString(test.css)
		tu.AssertNoErr(t, err)
		tu.AssertEqual(t, got, test.want)
	}

	var zero GridTemplateComponent[Length, Int]
	tu.AssertEqual(t, zero.IsNone(), true)
}

func TestParseGridTemplateComponentInvalid(t *testing.T) {
	for _, css := range []string{
		"",
		"none 1fr",
		"none none",
		"masonry masonry",
		"masonry 1fr",
		"subgrid 1fr",
		"auto none",
	} {
		if _, err := ParseGridTemplateComponentString(css); err == nil {
			t.Fatalf("expected error on %q", css)
		}
	}
}

func TestParseImplicitGridTracks(t *testing.T) {
	for _, test := range []struct {
		css  string
		want ImplicitGridTracks[Length]
	}{
		{"auto", ImplicitGridTracks[Length]{}},
		{"auto auto", ImplicitGridTracks[Length]{{}, {}}},
		{"100px", ImplicitGridTracks[Length]{NewTrackSize(NewBreadth(px(100)))}},
		{"min-content max-content 1fr", ImplicitGridTracks[Length]{
			NewTrackSize(NewBreadthMinContent[Length]()),
			NewTrackSize(NewBreadthMaxContent[Length]()),
			NewTrackSize(NewFr[Length](1)),
		}},
		{"10px minmax(10px, auto)", ImplicitGridTracks[Length]{
			NewTrackSize(NewBreadth(px(10))),
			NewMinmax(NewBreadth(px(10)), NewBreadthAuto[Length]()),
		}},
	} {
		got, err := ParseImplicitGridTracksString(test.css)
		tu.AssertNoErr(t, err)
		tu.AssertEqual(t, got, test.want)
	}

	auto, err := ParseImplicitGridTracksString("AUTO")
	tu.AssertNoErr(t, err)
	tu.AssertEqual(t, auto.IsAuto(), true)
}

func TestParseImplicitGridTracksInvalid(t *testing.T) {
	for _, css := range []string{
		"",
		"none",
		"10px foo",
		"[a] 10px",
		"repeat(2, 10px)",
		"subgrid",
	} {
		if _, err := ParseImplicitGridTracksString(css); err == nil {
			t.Fatalf("expected error on %q", css)
		}
	}
}

func TestTrackSizeIsFixed(t *testing.T) {
	for _, test := range []struct {
		css  string
		want bool
	}{
		{"10px", true},
		{"50%", true},
		{"1fr", false},
		{"auto", false},
		{"min-content", false},
		{"minmax(10px, 1fr)", true},
		{"minmax(auto, 10px)", true},
		{"minmax(auto, 1fr)", false},
		{"minmax(min-content, max-content)", false},
		{"fit-content(10px)", false},
	} {
		size, err := ParseTrackSizeString(test.css)
		tu.AssertNoErr(t, err)
		tu.AssertEqual(t, size.IsFixed(), test.want)
	}
}

func TestTrackListAccessors(t *testing.T) {
	list, err := ParseTrackListString("10px repeat(auto-fill, 10px) 20px")
	tu.AssertNoErr(t, err)
	tu.AssertEqual(t, list.AutoRepeatIndex, 1)
	tu.AssertEqual(t, list.HasAutoRepeat(), true)
	tu.AssertEqual(t, list.IsExplicit(), false)

	list, err = ParseTrackListString("1fr 2fr")
	tu.AssertNoErr(t, err)
	tu.AssertEqual(t, list.AutoRepeatIndex, 2)
	tu.AssertEqual(t, list.HasAutoRepeat(), false)
	tu.AssertEqual(t, list.IsExplicit(), true)

	list, err = ParseTrackListString("repeat(2, 1fr)")
	tu.AssertNoErr(t, err)
	tu.AssertEqual(t, list.HasAutoRepeat(), false)
	tu.AssertEqual(t, list.IsExplicit(), false)

	template, err := ParseGridTemplateComponentString("1fr repeat(2, 10px)")
	tu.AssertNoErr(t, err)
	tu.AssertEqual(t, template.TrackListLen(), 2)
	tu.AssertEqual(t, NewGridTemplateNone[Length, Int]().TrackListLen(), 0)
}

func TestRepeatCountAccessors(t *testing.T) {
	num, ok := NewRepeatCount(Int(3)).IsNumber()
	tu.AssertEqual(t, ok, true)
	tu.AssertEqual(t, num, Int(3))
	tu.AssertEqual(t, NewRepeatCount(Int(3)).IsDefinite(), true)
	tu.AssertEqual(t, AutoFill[Int]().IsDefinite(), false)
	tu.AssertEqual(t, AutoFill[Int]().IsAutoFill(), true)
	tu.AssertEqual(t, AutoFit[Int]().IsAutoFit(), true)
}

func TestErrorPosition(t *testing.T) {
	_, err := ParseTrackListString("10px foo")
	gridErr, ok := err.(Error)
	tu.AssertEqual(t, ok, true)
	tu.AssertEqual(t, gridErr.Pos, parser.Pos{Line: 1, Column: 6})

	_, err = ParseGridLineString("span\n span")
	gridErr, ok = err.(Error)
	tu.AssertEqual(t, ok, true)
	tu.AssertEqual(t, gridErr.Pos, parser.Pos{Line: 2, Column: 2})
}
