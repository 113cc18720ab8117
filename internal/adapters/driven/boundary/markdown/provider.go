// Package markdown detects heading boundaries in Markdown documents
// by walking the goldmark AST.
package markdown

import (
	"context"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/custodia-labs/docsense-cli/internal/core/domain"
	"github.com/custodia-labs/docsense-cli/internal/core/ports/driven"
)

// Ensure Provider implements the interface.
var _ driven.BoundaryProvider = (*Provider)(nil)

// Provider derives boundaries from Markdown heading nodes.
type Provider struct {
	parser parser.Parser
}

// New creates a Markdown boundary provider.
func New() *Provider {
	return &Provider{parser: goldmark.New().Parser()}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "markdown"
}

// Boundaries parses each page as Markdown and emits one boundary per
// heading node. The boundary offset points at the heading text, so
// the "#" markers stay with the preceding span and headings come out
// clean.
func (p *Provider) Boundaries(_ context.Context, doc *domain.Document) ([]domain.Boundary, error) {
	var boundaries []domain.Boundary

	for _, page := range doc.Pages {
		source := []byte(page.Text)
		root := p.parser.Parse(text.NewReader(source))

		err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			if !entering {
				return ast.WalkContinue, nil
			}
			heading, ok := n.(*ast.Heading)
			if !ok || heading.Lines().Len() == 0 {
				return ast.WalkContinue, nil
			}

			seg := heading.Lines().At(0)
			boundaries = append(boundaries, domain.Boundary{
				Level:   levelFor(heading.Level),
				Heading: string(source[seg.Start:seg.Stop]),
				Page:    page.Number,
				Offset:  seg.Start,
			})

			return ast.WalkSkipChildren, nil
		})
		if err != nil {
			return nil, err
		}
	}

	return boundaries, nil
}

// levelFor maps Markdown heading depth onto the boundary hierarchy.
func levelFor(level int) domain.BoundaryLevel {
	switch level {
	case 1:
		return domain.LevelTop
	case 2:
		return domain.LevelMid
	default:
		return domain.LevelSub
	}
}
