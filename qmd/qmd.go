// Package qmd is the public entry point tying the C1-C8 components together:
// probing a parsed tree for error nodes, lowering it to a pandoc document,
// running the desugar passes, and extracting/re-parsing front matter. A
// caller owns the tree-sitter parser and grammar; this package only consumes
// an already-parsed tree plus the document's source bytes. Recursive
// metadata re-parsing needs a *new* tree for each string value, so Read
// takes a ParseFunc the caller supplies rather than owning a grammar itself.
package qmd

import (
	"fmt"
	"io"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/quarto-dev/quarto-markdown-pandoc-go/cst"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/desugar"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/diagnostics"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/internal/qconfig"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/internal/qerr"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/internal/qlog"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/location"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/lowering"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/metadata"
	"github.com/quarto-dev/quarto-markdown-pandoc-go/pandoc"
)

// Severity mirrors qerr.Severity for callers who only want this package's
// public surface, not its internal error taxonomy.
type Severity = qerr.Severity

const (
	Warning = qerr.Warning
	Fatal   = qerr.Fatal
)

// Diagnostic is one reportable condition surfaced by Read or ParseMetadata:
// either a probe finding (Warning, or Fatal under StrictMode) or a
// desugar/metadata error (always Fatal).
type Diagnostic struct {
	Severity Severity
	Message  string
	Range    location.Range
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// ParseFunc produces a fresh tree-sitter tree for source. Read uses it only
// to re-parse a metadata string value as markdown; the top-level document's
// tree is always supplied by the caller directly.
type ParseFunc func(source []byte) (*sitter.Tree, error)

// writeDiagnostics renders diagnostics to w, one per line. A nil w is a
// no-op, matching the teacher-adjacent logging.Logger's "no-op when the
// writer is nil" shape.
func writeDiagnostics(w io.Writer, diags []Diagnostic) {
	if w == nil {
		return
	}
	for _, d := range diags {
		fmt.Fprintln(w, d.String())
	}
}

// Read probes tree for error-shaped nodes and, if the tree is clean (or
// StrictMode is off and only warnings were found), lowers it into a pandoc
// Document, runs the desugar passes, and resolves the document's front
// matter. All diagnostics collected along the way are both returned and
// written to diagW (which may be nil).
//
// A probe finding under StrictMode, or any probe error, short-circuits
// lowering entirely: the parse tree's own errors win over anything lowering
// might otherwise report, since a malformed tree makes lowering's errors
// noise.
func Read(tree *sitter.Tree, source []byte, cfg qconfig.Config, parse ParseFunc, diagW io.Writer) (pandoc.Document, []Diagnostic, error) {
	var diags []Diagnostic

	findings, err := diagnostics.Probe(cst.NewSitterCursor(tree), source)
	if err != nil {
		return pandoc.Document{}, nil, err
	}

	fatalFound := false
	for _, f := range findings {
		sev := Warning
		if cfg.StrictMode {
			sev = Fatal
			fatalFound = true
		}
		diags = append(diags, Diagnostic{Severity: sev, Message: f.Message(source), Range: nodeRangeFromFinding(f)})
	}

	if fatalFound {
		writeDiagnostics(diagW, diags)
		return pandoc.Document{}, diags, fmt.Errorf("qmd: %d error-shaped node(s) found in strict mode", len(findings))
	}

	doc, err := lowering.Lower(cst.NewSitterCursor(tree), source)
	if err != nil {
		diags = append(diags, Diagnostic{Severity: Fatal, Message: err.Error()})
		writeDiagnostics(diagW, diags)
		return pandoc.Document{}, diags, err
	}

	desugared, desugarErrs := desugar.Run(doc)
	for _, e := range desugarErrs {
		diags = append(diags, Diagnostic{Severity: Fatal, Message: e.Error()})
	}
	if len(desugarErrs) > 0 {
		writeDiagnostics(diagW, diags)
		return pandoc.Document{}, diags, desugarErrs[0]
	}

	meta, err := ParseMetadata(string(source), cfg, reparseFunc(parse, cfg))
	if err != nil {
		diags = append(diags, Diagnostic{Severity: Fatal, Message: err.Error()})
		writeDiagnostics(diagW, diags)
		return pandoc.Document{}, diags, err
	}
	desugared.Meta = meta

	writeDiagnostics(diagW, diags)
	qlog.L().Debugw("qmd: read finished", "blocks", len(desugared.Blocks), "diagnostics", len(diags))
	return desugared, diags, nil
}

// Desugar runs the desugar passes (C7) over an already-lowered document,
// exposed directly for callers that own their own lowering call.
func Desugar(doc pandoc.Document) (pandoc.Document, []error) {
	return desugar.Run(doc)
}

// ParseMetadata extracts and fully resolves source's YAML front matter,
// recursively re-parsing every string value as markdown via reparse.
func ParseMetadata(source string, cfg qconfig.Config, reparse metadata.ReparseFunc) (pandoc.Metadata, error) {
	return metadata.Parse(source, cfg.FrontmatterDelimiter, reparse)
}

// reparseFunc composes parse+Lower+Desugar into the metadata.ReparseFunc
// contract: every MetaString value is re-fed through the full lowering
// pipeline, per spec, as its own document.
func reparseFunc(parse ParseFunc, cfg qconfig.Config) metadata.ReparseFunc {
	return func(markdown string) (pandoc.Document, error) {
		source := []byte(markdown)
		tree, err := parse(source)
		if err != nil {
			return pandoc.Document{}, err
		}
		doc, err := lowering.Lower(cst.NewSitterCursor(tree), source)
		if err != nil {
			return pandoc.Document{}, err
		}
		desugared, errs := desugar.Run(doc)
		if len(errs) > 0 {
			return pandoc.Document{}, errs[0]
		}
		return desugared, nil
	}
}

func nodeRangeFromFinding(f diagnostics.Finding) location.Range {
	sp := f.Node.StartPoint()
	ep := f.Node.EndPoint()
	return location.Range{
		Start: location.Location{Byte: f.Node.StartByte(), Row: sp.Row, Column: sp.Column},
		End:   location.Location{Byte: f.Node.EndByte(), Row: ep.Row, Column: ep.Column},
	}
}
