// Gridlint validates the CSS grid layout declarations found in CSS or
// HTML inputs, reporting invalid values and suspicious line names, and
// optionally printing the canonical form of each valid declaration.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benoitkugler/cssgrid/css/grid"
	"github.com/benoitkugler/cssgrid/css/parser"
	"github.com/benoitkugler/cssgrid/logger"
	"github.com/benoitkugler/cssgrid/text"
	"github.com/benoitkugler/cssgrid/utils"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func main() { os.Exit(run(os.Args[1:], os.Stdout)) }

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("gridlint", flag.ContinueOnError)
	htmlInput := fs.Bool("html", false, "treat inputs as HTML documents")
	canon := fs.Bool("canon", false, "print the canonical form of each valid declaration")
	showVersion := fs.Bool("version", false, "print version information and exit")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: gridlint [options] [file...]")
		fmt.Fprintln(fs.Output(), `
Checks the CSS grid declarations (grid-template-columns, grid-row, ...)
found in the inputs, or in stdin if no file is given.
Plain inputs are parsed as CSS declaration lists; with -html, inputs
are HTML documents and the declarations are collected from <style>
elements and style attributes.

Options:`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Fprintln(stdout, utils.VersionString)
		return 0
	}

	files := fs.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}
	invalid := 0
	for _, name := range files {
		content, src, err := readInput(name)
		if err != nil {
			logger.WarningLogger.Printf("skipping %s: %s", name, err)
			invalid++
			continue
		}
		var bad int
		if *htmlInput {
			bad = lintHTML(content, *canon, src, stdout)
		} else {
			bad = lintDeclarations(parser.Tokenize(content, false), *canon, src, stdout)
		}
		if bad == 0 {
			logger.ProgressLogger.Printf("%s: OK", src)
		} else {
			logger.ProgressLogger.Printf("%s: %d invalid grid declaration(s)", src, bad)
		}
		invalid += bad
	}
	if invalid != 0 {
		return 1
	}
	return 0
}

func readInput(name string) ([]byte, string, error) {
	if name == "-" {
		content, err := io.ReadAll(os.Stdin)
		return content, "<stdin>", err
	}
	content, err := os.ReadFile(name)
	return content, name, err
}

// one parsing function per supported property
var gridProperties = map[string]func([]parser.Token) (grid.Value, error){
	"grid-template-columns": parseTemplate,
	"grid-template-rows":    parseTemplate,
	"grid-auto-columns":     parseImplicit,
	"grid-auto-rows":        parseImplicit,
	"grid-row":              parsePlacement,
	"grid-column":           parsePlacement,
	"grid-row-start":        parseLine,
	"grid-row-end":          parseLine,
	"grid-column-start":     parseLine,
	"grid-column-end":       parseLine,
}

func parseTemplate(tokens []parser.Token) (grid.Value, error) {
	v, err := grid.ParseGridTemplateComponent(tokens)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func parseImplicit(tokens []parser.Token) (grid.Value, error) {
	v, err := grid.ParseImplicitGridTracks(tokens)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func parsePlacement(tokens []parser.Token) (grid.Value, error) {
	v, err := grid.ParsePlacement(tokens)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func parseLine(tokens []parser.Token) (grid.Value, error) {
	v, err := grid.ParseGridLine(tokens)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// checkDeclaration parses the value of a grid declaration.
// The boolean is false for properties outside the grid set,
// which are not checked at all.
func checkDeclaration(decl parser.Declaration) (grid.Value, bool, error) {
	parse, ok := gridProperties[utils.AsciiLower(decl.Name)]
	if !ok {
		return nil, false, nil
	}
	v, err := parse(decl.Value)
	return v, ok, err
}

// lintDeclarations checks the grid declarations found in `tokens`,
// a declaration list, returning the number of invalid ones.
func lintDeclarations(tokens []parser.Token, canon bool, src string, out io.Writer) (invalid int) {
	for _, decl := range parser.ParseDeclarationList(tokens, false, false) {
		switch decl := decl.(type) {
		case parser.Declaration:
			if strings.HasPrefix(decl.Name, "-") {
				continue
			}
			v, ok, err := checkDeclaration(decl)
			if !ok {
				continue
			}
			if err != nil {
				logger.WarningLogger.Printf("%s: ignoring declaration %s: %s", src, decl.Name, err)
				invalid++
				continue
			}
			warnNames(src, decl.Name, v)
			if canon {
				fmt.Fprintf(out, "%s: %s\n", utils.AsciiLower(decl.Name), grid.CSS(v))
			}
		case parser.ParseError:
			logger.WarningLogger.Printf("%s: syntax error at %s: %s", src, decl.Pos(), decl.Message)
		}
	}
	return invalid
}

// lintRules checks the declarations of the given rules, recursing
// in the conditional at-rules.
func lintRules(rules []parser.Compound, canon bool, src string, out io.Writer) (invalid int) {
	for _, rule := range rules {
		switch rule := rule.(type) {
		case parser.QualifiedRule:
			invalid += lintDeclarations(rule.Content, canon, src, out)
		case parser.AtRule:
			switch utils.AsciiLower(rule.AtKeyword) {
			case "media", "supports", "layer":
				if rule.Content != nil {
					invalid += lintRules(parser.ParseRuleList(rule.Content, true, true), canon, src, out)
				}
			}
		}
	}
	return invalid
}

// lintHTML walks an HTML document and checks the grid declarations
// of its <style> elements and style attributes.
func lintHTML(content []byte, canon bool, src string, out io.Writer) (invalid int) {
	root, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		logger.WarningLogger.Printf("%s: invalid HTML document: %s", src, err)
		return 1
	}
	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			if css := styleElementContent(node); len(css) != 0 {
				invalid += lintRules(parser.ParseStylesheetBytes(css, true, true), canon, src, out)
			}
			for _, attr := range node.Attr {
				if attr.Key == "style" {
					invalid += lintDeclarations(parser.Tokenize([]byte(attr.Val), false), canon, src, out)
				}
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return invalid
}

// http://www.w3.org/TR/SVG/styling.html#StyleElement
// returns the CSS content of a style element, or nil
func styleElementContent(node *html.Node) []byte {
	if node.DataAtom != atom.Style {
		return nil
	}
	for _, v := range node.Attr {
		if v.Key == "type" && v.Val != "text/css" {
			return nil
		}
	}
	var content bytes.Buffer
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			content.WriteString(child.Data)
		}
	}
	return content.Bytes()
}

var nfc = text.NFC()

// warnNames emits a warning for the line names which are not NFC
// normalized, since custom identifiers compare by code points.
func warnNames(src, property string, v grid.Value) {
	for _, name := range lineNames(v) {
		if !nfc.IsNormalized(name) {
			logger.WarningLogger.Printf("%s: property %s: line name %q is not NFC normalized", src, property, name)
		}
	}
}

// lineNames returns the custom identifiers used as line names in `v`.
func lineNames(v grid.Value) (out []string) {
	switch v := v.(type) {
	case grid.GridLine[grid.Int]:
		if v.Ident != "" {
			out = append(out, v.Ident)
		}
	case grid.Placement[grid.Int]:
		out = append(lineNames(v.Start), lineNames(v.End)...)
	case grid.GridTemplateComponent[grid.Length, grid.Int]:
		if list, ok := v.IsTrackList(); ok {
			out = trackListNames(list)
		} else if sub, ok := v.IsSubgrid(); ok {
			out = subgridNames(sub)
		}
	}
	return out
}

func trackListNames(list grid.TrackList[grid.Length, grid.Int]) (out []string) {
	for _, group := range list.LineNames {
		out = append(out, group...)
	}
	for _, value := range list.Values {
		if repeat, ok := value.IsRepeat(); ok {
			for _, group := range repeat.LineNames {
				out = append(out, group...)
			}
		}
	}
	return out
}

func subgridNames(list grid.LineNameList[grid.Int]) (out []string) {
	for _, value := range list.Values {
		if names, ok := value.IsLineNames(); ok {
			out = append(out, names...)
		} else if repeat, ok := value.IsRepeat(); ok {
			for _, group := range repeat.LineNames {
				out = append(out, group...)
			}
		}
	}
	return out
}
