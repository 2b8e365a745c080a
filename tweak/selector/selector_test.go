package selector

import (
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"csstweak/common"
)

func chain(nodes ...Node) []Node { return nodes }

func TestProposeWrappedIsAmbiguous(t *testing.T) {
	r := New(common.ClassPolicyFirst, zaptest.NewLogger(t))

	p, err := r.Propose(Context{Chain: chain(
		NewNode("span", ""),
		NewNode("div", "outer"),
		NewNode("p", "inner"),
	)})
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if !p.Ambiguous {
		t.Fatal("proposal expected to be ambiguous")
	}
	if len(p.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(p.Candidates))
	}
	if p.Candidates[0].ClassName != "inner" || p.Candidates[1].ClassName != "outer" {
		t.Errorf("candidates = %v, want innermost first", p.Candidates)
	}

	sel, err := r.Choose(p, len(p.Candidates)-1)
	if err != nil {
		t.Fatalf("Choose() error = %v", err)
	}
	if sel.Kind != ClassSelector || sel.String() != ".outer" {
		t.Errorf("Choose(last) = %+v (%s), want .outer", sel, sel)
	}
}

func TestProposeLeafFirst(t *testing.T) {
	r := New(common.ClassPolicyFirst, zaptest.NewLogger(t))

	p, err := r.Propose(Context{LeafFirst: true, Chain: chain(
		NewNode("em", ""),
		NewNode("p", "inner"),
		NewNode("div", "outer"),
		NewNode("body", ""),
		NewNode("html", ""),
	)})
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if !p.Ambiguous || len(p.Candidates) != 2 || p.Candidates[0].ClassName != "inner" {
		t.Errorf("unexpected proposal %+v", p)
	}
}

func TestProposeSingleBlock(t *testing.T) {
	r := New(common.ClassPolicyFirst, zaptest.NewLogger(t))

	p, err := r.Propose(Context{Chain: chain(
		NewNode("html", ""),
		NewNode("body", ""),
		NewNode("p", "para"),
		NewNode("span", "x"),
	)})
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if p.Ambiguous || len(p.Candidates) != 1 {
		t.Fatalf("unexpected proposal %+v", p)
	}
	sel, err := r.Choose(p, 0)
	if err != nil {
		t.Fatalf("Choose() error = %v", err)
	}
	if sel.String() != ".para" {
		t.Errorf("selector = %s, want .para", sel)
	}
}

func TestProposeNestedBlocksWithoutWrapper(t *testing.T) {
	r := New(common.ClassPolicyFirst, zaptest.NewLogger(t))

	p, err := r.Propose(Context{Chain: chain(
		NewNode("body", ""),
		NewNode("section", "chapter"),
		NewNode("div", "outer"),
		NewNode("p", "inner"),
	)})
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if p.Ambiguous || len(p.Candidates) != 1 || p.Candidates[0].ClassName != "inner" {
		t.Errorf("expected innermost block, got %+v", p)
	}
}

func TestProposeNoBlock(t *testing.T) {
	r := New(common.ClassPolicyFirst, zaptest.NewLogger(t))

	_, err := r.Propose(Context{Chain: chain(NewNode("body", ""), NewNode("span", "x"))})
	if !errors.Is(err, ErrNoBlockTarget) {
		t.Errorf("Propose() error = %v, want ErrNoBlockTarget", err)
	}
	if _, err = r.Propose(Context{}); !errors.Is(err, ErrNoBlockTarget) {
		t.Errorf("Propose(empty) error = %v, want ErrNoBlockTarget", err)
	}
}

func TestChooseNoClass(t *testing.T) {
	r := New(common.ClassPolicyFirst, zaptest.NewLogger(t))

	p, err := r.Propose(Context{Chain: chain(NewNode("p", ""))})
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if _, err := r.Choose(p, 0); !errors.Is(err, ErrNoClassAttribute) {
		t.Errorf("Choose() error = %v, want ErrNoClassAttribute", err)
	}

	p, _ = r.Propose(Context{Chain: chain(NewNode("p", "   "))})
	if _, err := r.Choose(p, 0); !errors.Is(err, ErrNoClassAttribute) {
		t.Errorf("Choose(blank class) error = %v, want ErrNoClassAttribute", err)
	}
}

func TestChooseOutOfRange(t *testing.T) {
	r := New(common.ClassPolicyFirst, zaptest.NewLogger(t))

	p, _ := r.Propose(Context{Chain: chain(NewNode("p", "para"))})
	for _, idx := range []int{-1, 1, 10} {
		if _, err := r.Choose(p, idx); !errors.Is(err, ErrChoiceOutOfRange) {
			t.Errorf("Choose(%d) error = %v, want ErrChoiceOutOfRange", idx, err)
		}
	}
}

func TestClassPolicy(t *testing.T) {
	ctx := Context{Chain: chain(NewNode("p", "calibre1 indent calibre1"))}

	first := New(common.ClassPolicyFirst, zaptest.NewLogger(t))
	p, err := first.Propose(ctx)
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if p.Ambiguous || len(p.Candidates) != 1 || p.Candidates[0].ClassName != "calibre1" {
		t.Errorf("policy first: %+v", p)
	}

	all := New(common.ClassPolicyAll, zaptest.NewLogger(t))
	p, err = all.Propose(ctx)
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if !p.Ambiguous || len(p.Candidates) != 2 {
		t.Fatalf("policy all: %+v", p)
	}
	sel, err := all.Choose(p, 1)
	if err != nil {
		t.Fatalf("Choose() error = %v", err)
	}
	if sel.String() != ".indent" {
		t.Errorf("selector = %s, want .indent", sel)
	}
}

func TestNode(t *testing.T) {
	n := NewNode("P", "a b")
	if !n.Block || n.Tag != "p" {
		t.Errorf("NewNode() = %+v", n)
	}
	if n.String() != "p.a.b" {
		t.Errorf("String() = %q", n.String())
	}
	if NewNode("span", "").Block {
		t.Error("span must not be block")
	}
	for _, tag := range []string{"h1", "h6", "li", "blockquote", "td", "figcaption"} {
		if !IsBlock(tag) {
			t.Errorf("IsBlock(%q) = false", tag)
		}
	}
}

func TestSelectorEscapes(t *testing.T) {
	sel := Selector{Kind: ClassSelector, ClassName: "2col"}
	if sel.String() != `.\32 col` {
		t.Errorf("String() = %q", sel.String())
	}
}

func TestProposeBlockContainers(t *testing.T) {
	r := New(common.ClassPolicyFirst, zaptest.NewLogger(t))

	tests := []struct {
		name  string
		chain []Node
		want  string
	}{
		{"list item", chain(
			NewNode("html", ""),
			NewNode("body", ""),
			NewNode("div", "chapter"),
			NewNode("ul", ""),
			NewNode("li", "item"),
		), ".item"},
		{"table cell", chain(
			NewNode("body", ""),
			NewNode("div", "chapter"),
			NewNode("table", ""),
			NewNode("tbody", ""),
			NewNode("tr", ""),
			NewNode("td", "cell"),
		), ".cell"},
		{"definition", chain(
			NewNode("body", ""),
			NewNode("nav", ""),
			NewNode("dl", "terms"),
			NewNode("dd", "def"),
		), ".def"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := r.Propose(Context{Chain: tt.chain})
			if err != nil {
				t.Fatalf("Propose() error = %v", err)
			}
			if p.Ambiguous || len(p.Candidates) != 1 {
				t.Fatalf("unexpected proposal %+v", p)
			}
			sel, err := r.Choose(p, 0)
			if err != nil || sel.String() != tt.want {
				t.Errorf("Choose(0) = %s, %v, want %s", sel, err, tt.want)
			}
		})
	}
}

func TestProposeContainerWithInlineWrapper(t *testing.T) {
	r := New(common.ClassPolicyFirst, zaptest.NewLogger(t))

	p, err := r.Propose(Context{Chain: chain(
		NewNode("body", ""),
		NewNode("div", "chapter"),
		NewNode("ul", ""),
		NewNode("li", "item"),
		NewNode("em", ""),
	)})
	if err != nil {
		t.Fatalf("Propose() error = %v", err)
	}
	if !p.Ambiguous || len(p.Candidates) != 2 || p.Candidates[0].ClassName != "item" || p.Candidates[1].ClassName != "chapter" {
		t.Errorf("unexpected proposal %+v", p)
	}
}

func TestProposeOnlyContainers(t *testing.T) {
	r := New(common.ClassPolicyFirst, zaptest.NewLogger(t))
	_, err := r.Propose(Context{Chain: chain(NewNode("body", ""), NewNode("table", "t"), NewNode("tr", ""))})
	if !errors.Is(err, ErrNoBlockTarget) {
		t.Errorf("Propose() error = %v, want ErrNoBlockTarget", err)
	}
}
