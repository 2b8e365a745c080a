// Package selector turns the ancestor chain of a selected location into a
// class selector which could be used to target the enclosing block.
//
// Resolution is split in two steps. Propose inspects the chain and lists
// candidates, Choose produces selector for one of them. When proposal is not
// ambiguous the only candidate could be chosen right away, otherwise the
// choice belongs to the user.
package selector

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"csstweak/common"
	"csstweak/css"
)

var (
	ErrNoBlockTarget    = errors.New("selection is not inside of a block element")
	ErrNoClassAttribute = errors.New("element has no class attribute")
	ErrChoiceOutOfRange = errors.New("choice is out of range")
)

var blockTags = map[string]struct{}{
	"p": {}, "h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"div": {}, "li": {}, "blockquote": {}, "section": {}, "article": {},
	"aside": {}, "header": {}, "footer": {}, "figure": {}, "figcaption": {},
	"pre": {}, "dt": {}, "dd": {}, "td": {}, "th": {},
}

// document structure and block containers holding other blocks only, never
// a target and never a wrapper
var structuralTags = map[string]struct{}{
	"html": {}, "body": {},
	"ul": {}, "ol": {}, "dl": {}, "menu": {},
	"table": {}, "thead": {}, "tbody": {}, "tfoot": {}, "tr": {}, "colgroup": {},
	"nav": {}, "main": {},
}

// IsBlock reports whether elements with this tag could be targeted.
func IsBlock(tag string) bool {
	_, ok := blockTags[strings.ToLower(tag)]
	return ok
}

// Node describes single element of the ancestor chain.
type Node struct {
	Tag   string
	Class string // raw class attribute, empty when absent
	Block bool
}

// NewNode creates node marking it as block according to the tag.
func NewNode(tag, class string) Node {
	return Node{Tag: strings.ToLower(tag), Class: class, Block: IsBlock(tag)}
}

func (n Node) String() string {
	var sb strings.Builder
	sb.WriteString(n.Tag)
	for _, c := range strings.Fields(n.Class) {
		sb.WriteByte('.')
		sb.WriteString(css.EscapeIdent(c))
	}
	return sb.String()
}

// Context is the selection as reported by the renderer.
type Context struct {
	// Chain of elements containing selection, from the document root down
	// to the innermost element, unless LeafFirst is set.
	Chain     []Node
	LeafFirst bool
}

// Candidate is one of the possible targets.
type Candidate struct {
	Node      Node
	ClassName string // class token the selector will use, empty if none
}

func (c Candidate) String() string {
	if c.ClassName == "" {
		return c.Node.String() + " (no class)"
	}
	return c.Node.Tag + "." + css.EscapeIdent(c.ClassName)
}

// Proposal lists candidates innermost first, so the last one is the most
// comprehensive choice.
type Proposal struct {
	Candidates []Candidate
	Ambiguous  bool
}

// Kind of selector, class selectors are the only ones supported.
type Kind int

const (
	ClassSelector Kind = iota
)

// Selector addresses elements by class.
type Selector struct {
	Kind      Kind
	ClassName string
}

func (s Selector) String() string {
	return "." + css.EscapeIdent(s.ClassName)
}

// Resolver proposes targets for selections.
type Resolver struct {
	policy common.ClassPolicy
	log    *zap.Logger
}

// New creates resolver using given policy for elements with several class
// tokens.
func New(policy common.ClassPolicy, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{policy: policy, log: log.Named("selector")}
}

// Propose lists possible targets for the selection.
//
// Single enclosing block is taken as is. When several blocks are nested
// directly in each other innermost one is used. When selection is reached
// through a non-block wrapper the intended target cannot be decided and all
// enclosing blocks are offered.
func (r *Resolver) Propose(ctx Context) (Proposal, error) {
	chain := slices.Clone(ctx.Chain)
	if !ctx.LeafFirst {
		slices.Reverse(chain)
	}

	var (
		blocks  []Node
		wrapped bool
	)
	for _, n := range chain {
		if _, ok := structuralTags[strings.ToLower(n.Tag)]; ok {
			continue
		}
		if n.Block {
			blocks = append(blocks, n)
		} else {
			wrapped = true
		}
	}

	switch {
	case len(blocks) == 0:
		return Proposal{}, ErrNoBlockTarget
	case len(blocks) > 1 && !wrapped:
		blocks = blocks[:1]
	}

	var p Proposal
	for _, n := range blocks {
		p.Candidates = append(p.Candidates, r.candidates(n)...)
	}
	p.Ambiguous = len(p.Candidates) > 1

	r.log.Debug("Selection proposal",
		zap.Int("chain", len(chain)),
		zap.Int("blocks", len(blocks)),
		zap.Bool("wrapped", wrapped),
		zap.Stringers("candidates", p.Candidates),
		zap.Bool("ambiguous", p.Ambiguous))
	return p, nil
}

func (r *Resolver) candidates(n Node) []Candidate {
	tokens := strings.Fields(n.Class)
	if len(tokens) == 0 {
		return []Candidate{{Node: n}}
	}
	if r.policy != common.ClassPolicyAll {
		return []Candidate{{Node: n, ClassName: tokens[0]}}
	}
	res := make([]Candidate, 0, len(tokens))
	for _, t := range tokens {
		if !slices.ContainsFunc(res, func(c Candidate) bool { return c.ClassName == t }) {
			res = append(res, Candidate{Node: n, ClassName: t})
		}
	}
	return res
}

// Choose produces selector for the candidate with given index.
func (r *Resolver) Choose(p Proposal, index int) (Selector, error) {
	if index < 0 || index >= len(p.Candidates) {
		return Selector{}, fmt.Errorf("%w: %d of %d", ErrChoiceOutOfRange, index, len(p.Candidates))
	}
	c := p.Candidates[index]
	if c.ClassName == "" {
		return Selector{}, fmt.Errorf("%w: %s", ErrNoClassAttribute, c.Node)
	}
	return Selector{Kind: ClassSelector, ClassName: c.ClassName}, nil
}
