package grid

import (
	"testing"

	tu "github.com/benoitkugler/cssgrid/utils/testutils"
)

func TestParseGridLine(t *testing.T) {
	for _, test := range []struct {
		css  string
		want GridLine[Int]
	}{
		{"auto", GridLine[Int]{}},
		{"AUTO", GridLine[Int]{}},
		{"4", GridLine[Int]{LineNum: 4}},
		{"+4", GridLine[Int]{LineNum: 4}},
		{"-1", GridLine[Int]{LineNum: -1}},
		{"header", GridLine[Int]{Ident: "header"}},
		{"Header", GridLine[Int]{Ident: "Header"}},
		{"2 foo", GridLine[Int]{LineNum: 2, Ident: "foo"}},
		{"foo 2", GridLine[Int]{LineNum: 2, Ident: "foo"}},
		{"-1 foo", GridLine[Int]{LineNum: -1, Ident: "foo"}},
		{"span 2", GridLine[Int]{IsSpan: true, LineNum: 2}},
		{"2 span", GridLine[Int]{IsSpan: true, LineNum: 2}},
		{"SPAN 2", GridLine[Int]{IsSpan: true, LineNum: 2}},
		{"span foo", GridLine[Int]{IsSpan: true, Ident: "foo"}},
		{"foo span", GridLine[Int]{IsSpan: true, Ident: "foo"}},
		{"span 2 foo", GridLine[Int]{IsSpan: true, LineNum: 2, Ident: "foo"}},
		{"span foo 2", GridLine[Int]{IsSpan: true, LineNum: 2, Ident: "foo"}},
		{"2 foo span", GridLine[Int]{IsSpan: true, LineNum: 2, Ident: "foo"}},
		{"foo 2 span", GridLine[Int]{IsSpan: true, LineNum: 2, Ident: "foo"}},
		{"99999", GridLine[Int]{LineNum: 10000}},
		{"-99999", GridLine[Int]{LineNum: -10000}},
		{"span 99999", GridLine[Int]{IsSpan: true, LineNum: 10000}},
		{"  4  ", GridLine[Int]{LineNum: 4}},
		{"/* named */ a", GridLine[Int]{Ident: "a"}},
	} {
		got, err := ParseGridLineString(test.css)
		tu.AssertNoErr(t, err)
		tu.AssertEqual(t, got, test.want)
	}
}

func TestParseGridLineInvalid(t *testing.T) {
	for _, css := range []string{
		"",
		"span",
		"span span",
		"span auto",
		"span 0",
		"0",
		"span -1",
		"span -1 foo",
		"foo span 2",
		"2 span foo",
		"auto auto",
		"auto 2",
		"foo bar",
		"1 2",
		"1.5",
		"4px",
		"-",
		"5-",
		"initial",
		"inherit",
		"span initial",
		"\"foo\"",
		"4 !",
	} {
		if _, err := ParseGridLineString(css); err == nil {
			t.Fatalf("expected error on %q", css)
		}
	}
}

func TestGridLineCSS(t *testing.T) {
	for _, test := range []struct {
		line GridLine[Int]
		want string
	}{
		{GridLine[Int]{}, "auto"},
		{GridLine[Int]{LineNum: 4}, "4"},
		{GridLine[Int]{Ident: "header"}, "header"},
		{GridLine[Int]{LineNum: 2, Ident: "foo"}, "2 foo"},
		{GridLine[Int]{LineNum: -1, Ident: "foo"}, "-1 foo"},
		{GridLine[Int]{IsSpan: true, LineNum: 3}, "span 3"},
		{GridLine[Int]{IsSpan: true, Ident: "foo"}, "span foo"},
		{GridLine[Int]{IsSpan: true, LineNum: 2, Ident: "foo"}, "span 2 foo"},
		// a span of one line is implied by the name
		{GridLine[Int]{IsSpan: true, LineNum: 1, Ident: "foo"}, "span foo"},
		{GridLine[Int]{IsSpan: true, LineNum: 1}, "span 1"},
		{GridLine[Int]{LineNum: -10000, Ident: "a b"}, `-10000 a\ b`},
	} {
		tu.AssertEqual(t, CSS(test.line), test.want)
	}
}

func TestCanOmit(t *testing.T) {
	var (
		auto = GridLine[Int]{}
		foo  = GridLine[Int]{Ident: "foo"}
		bar  = GridLine[Int]{Ident: "bar"}
	)
	tu.AssertEqual(t, auto.CanOmit(auto), true)
	tu.AssertEqual(t, auto.CanOmit(foo), false)
	tu.AssertEqual(t, foo.CanOmit(foo), true)
	tu.AssertEqual(t, foo.CanOmit(bar), false)
	tu.AssertEqual(t, foo.CanOmit(auto), false)
	tu.AssertEqual(t, GridLine[Int]{LineNum: 2}.CanOmit(auto), true)
	tu.AssertEqual(t, GridLine[Int]{LineNum: 2}.CanOmit(foo), false)
	tu.AssertEqual(t, GridLine[Int]{IsSpan: true, Ident: "foo"}.CanOmit(auto), true)
}

func TestParsePlacement(t *testing.T) {
	for _, test := range []struct {
		css  string
		want Placement[Int]
	}{
		{"auto", Placement[Int]{}},
		{"auto / auto", Placement[Int]{}},
		{"2", Placement[Int]{Start: GridLine[Int]{LineNum: 2}}},
		{"2/3", Placement[Int]{Start: GridLine[Int]{LineNum: 2}, End: GridLine[Int]{LineNum: 3}}},
		{"2 / 3", Placement[Int]{Start: GridLine[Int]{LineNum: 2}, End: GridLine[Int]{LineNum: 3}}},
		// a lone line name also names the end line
		{"header", Placement[Int]{
			Start: GridLine[Int]{Ident: "header"},
			End:   GridLine[Int]{Ident: "header"},
		}},
		{"header / auto", Placement[Int]{Start: GridLine[Int]{Ident: "header"}}},
		{"span 2 / 3", Placement[Int]{
			Start: GridLine[Int]{IsSpan: true, LineNum: 2},
			End:   GridLine[Int]{LineNum: 3},
		}},
		{"first / span last", Placement[Int]{
			Start: GridLine[Int]{Ident: "first"},
			End:   GridLine[Int]{IsSpan: true, Ident: "last"},
		}},
		{"2 foo / span bar", Placement[Int]{
			Start: GridLine[Int]{LineNum: 2, Ident: "foo"},
			End:   GridLine[Int]{IsSpan: true, Ident: "bar"},
		}},
	} {
		got, err := ParsePlacementString(test.css)
		tu.AssertNoErr(t, err)
		tu.AssertEqual(t, got, test.want)
	}
}

func TestParsePlacementInvalid(t *testing.T) {
	for _, css := range []string{
		"",
		"/",
		"1 /",
		"/ 1",
		"1 / 2 / 3",
		"span / 2",
		"1 / 0",
		"foo bar / 2",
	} {
		if _, err := ParsePlacementString(css); err == nil {
			t.Fatalf("expected error on %q", css)
		}
	}
}

func TestPlacementCSS(t *testing.T) {
	for _, test := range []struct {
		css  string
		want string
	}{
		{"auto", "auto"},
		{"auto / auto", "auto"},
		{"2 / auto", "2"},
		{"2 / 3", "2 / 3"},
		{"header", "header"},
		{"header / header", "header"},
		{"header / auto", "header / auto"},
		{"header / footer", "header / footer"},
		{"SPAN 2 / 3", "span 2 / 3"},
		{"foo 1 span / auto", "span foo"},
	} {
		got, err := ParsePlacementString(test.css)
		tu.AssertNoErr(t, err)
		tu.AssertEqual(t, CSS(got), test.want)
	}
}
