// Package template implements the embed-marker sublanguage and the
// rendering boundary. The core never deep-parses the target templating
// language: it understands exactly two marker forms, {{ inputs.NAME }} and
// {{ sections.NAME }}, and hands everything else to the engine verbatim.
package template

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var markerLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Open", Pattern: `\{\{`, Action: lexer.Push("Marker")},
		{Name: "Text", Pattern: `[^{]+`},
		{Name: "LBrace", Pattern: `\{`},
	},
	"Marker": {
		{Name: "Close", Pattern: `\}\}`, Action: lexer.Pop()},
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "Dot", Pattern: `\.`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	},
})

type templateAST struct {
	Segments []*segmentAST `parser:"@@*"`
}

type segmentAST struct {
	Marker *markerAST `parser:"  @@"`
	Text   string     `parser:"| @(Text | LBrace)"`
}

type markerAST struct {
	Namespace string `parser:"Open @Ident"`
	Name      string `parser:"Dot @Ident Close"`
}

var markerParser = buildMarkerParser()

func buildMarkerParser() *participle.Parser[templateAST] {
	p, err := participle.Build[templateAST](
		participle.Lexer(markerLexer),
		participle.Elide("Whitespace"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build marker parser: %w", err))
	}
	return p
}

type SegmentKind int

const (
	Literal SegmentKind = iota
	InputRef
	SectionRef
)

// Segment is one run of a template: literal text, an input marker, or a
// section embed marker.
type Segment struct {
	Kind SegmentKind
	Text string // literal text, or the referenced name
}

// Extract splits template text into its marker and literal runs. Adjacent
// literal runs are merged so the result is canonical for a given text.
func Extract(text string) ([]Segment, error) {
	if text == "" {
		return nil, nil
	}

	tree, err := markerParser.ParseString("", text)
	if err != nil {
		return nil, fmt.Errorf("malformed template marker: %w", err)
	}

	var segments []Segment
	for _, seg := range tree.Segments {
		if seg.Marker != nil {
			var kind SegmentKind
			switch seg.Marker.Namespace {
			case "inputs":
				kind = InputRef
			case "sections":
				kind = SectionRef
			default:
				return nil, fmt.Errorf("unknown marker namespace %q", seg.Marker.Namespace)
			}
			segments = append(segments, Segment{Kind: kind, Text: seg.Marker.Name})
			continue
		}
		if n := len(segments); n > 0 && segments[n-1].Kind == Literal {
			segments[n-1].Text += seg.Text
		} else {
			segments = append(segments, Segment{Kind: Literal, Text: seg.Text})
		}
	}
	return segments, nil
}

// Canonical reprints a template with every marker in canonical spacing,
// {{ inputs.NAME }} and {{ sections.NAME }}. Marker whitespace is not
// significant, so this is the normal form lowering and lifting agree on;
// literal runs pass through untouched.
func Canonical(text string) (string, error) {
	segments, err := Extract(text)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, seg := range segments {
		switch seg.Kind {
		case Literal:
			b.WriteString(seg.Text)
		case InputRef:
			b.WriteString("{{ inputs." + seg.Text + " }}")
		case SectionRef:
			b.WriteString("{{ sections." + seg.Text + " }}")
		}
	}
	return b.String(), nil
}

// References returns the input names and section names referenced by the
// template, each in first-appearance order.
func References(segments []Segment) (inputs []string, sections []string) {
	seenInputs := make(map[string]bool)
	seenSections := make(map[string]bool)
	for _, seg := range segments {
		switch seg.Kind {
		case InputRef:
			if !seenInputs[seg.Text] {
				seenInputs[seg.Text] = true
				inputs = append(inputs, seg.Text)
			}
		case SectionRef:
			if !seenSections[seg.Text] {
				seenSections[seg.Text] = true
				sections = append(sections, seg.Text)
			}
		}
	}
	return inputs, sections
}
