package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Slach/debug-log-viewer/pkg/model"
	"github.com/pkg/errors"
)

// ErrEmptyPattern is returned for a grep filter without a pattern.
var ErrEmptyPattern = errors.New("grep pattern is empty")

// regexLiteral matches the /pattern/flags syntax of the grep input.
var regexLiteral = regexp.MustCompile(`^/(.+)/([a-z]*)$`)

// Grep matches the raw log line against a substring or a /regex/flags
// literal. Invert negates the match.
type Grep struct {
	base
	input  string
	invert bool
	re     *regexp.Regexp
}

// NewGrep compiles input. A regex that does not compile is returned as an
// error so the caller can report it and leave the active filters unchanged.
func NewGrep(input string, invert bool) (*Grep, error) {
	if input == "" {
		return nil, ErrEmptyPattern
	}
	g := &Grep{base: newBase(), input: input, invert: invert}
	m := regexLiteral.FindStringSubmatch(input)
	if m == nil {
		return g, nil
	}
	re, err := compileFlags(m[1], m[2])
	if err != nil {
		return nil, errors.Wrapf(err, "invalid regular expression %s", input)
	}
	g.re = re
	return g, nil
}

// compileFlags maps JavaScript style flags onto RE2 inline flags. g, u and y
// only affect stateful matching in JavaScript and are accepted as no-ops.
func compileFlags(pattern, flags string) (*regexp.Regexp, error) {
	var inline strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			if !strings.ContainsRune(inline.String(), f) {
				inline.WriteRune(f)
			}
		case 'g', 'u', 'y':
		default:
			return nil, errors.Errorf("unsupported flag %q", f)
		}
	}
	if inline.Len() > 0 {
		pattern = "(?" + inline.String() + ")" + pattern
	}
	return regexp.Compile(pattern)
}

func (g *Grep) Kind() Kind { return KindGrep }

// IsRegex reports whether the input was a /regex/ literal.
func (g *Grep) IsRegex() bool { return g.re != nil }

func (g *Grep) Inverted() bool { return g.invert }

func (g *Grep) Input() string { return g.input }

func (g *Grep) Test(rec *model.LogRecord, _ int) bool {
	var matched bool
	if g.re != nil {
		matched = g.re.MatchString(rec.Raw)
	} else {
		matched = strings.Contains(rec.Raw, g.input)
	}
	return matched != g.invert
}

func (g *Grep) Name() string {
	label := "Grep"
	if g.invert {
		label = "Grep (inverted)"
	}
	if g.re != nil {
		return fmt.Sprintf("%s regex: %s", label, g.input)
	}
	return fmt.Sprintf("%s: %q", label, g.input)
}

func (g *Grep) Spec() Spec {
	return Spec{Kind: KindGrep, Pattern: g.input, Invert: g.invert}
}
