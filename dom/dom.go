// Package dom loads document chapters and finds ancestor chains of elements
// in them. Chapters are XHTML files, either standalone or stored inside of
// EPUB container.
package dom

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/beevik/etree"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"csstweak/archive"
	"csstweak/tweak/selector"
)

var (
	ErrNoChapter        = errors.New("chapter is required for container documents")
	ErrAmbiguousChapter = errors.New("chapter name matches several files")
	ErrNoElement        = errors.New("element not found")
)

// chapters larger than that are not real books
const maxChapterSize = 64 << 20

// Kind of the document file.
type Kind int

const (
	KindXHTML Kind = iota
	KindEPUB
)

func (k Kind) String() string {
	if k == KindEPUB {
		return "epub"
	}
	return "xhtml"
}

// Detect sniffs document kind from the file content.
func Detect(name string) (Kind, error) {
	f, err := os.Open(name)
	if err != nil {
		return KindXHTML, err
	}
	defer f.Close()

	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return KindXHTML, fmt.Errorf("unable to read %s: %w", name, err)
	}
	kind, _ := filetype.Match(head[:n])
	switch kind.Extension {
	case "epub", "zip":
		return KindEPUB, nil
	}
	return KindXHTML, nil
}

// Chapters lists chapter files of the container in natural order. Standalone
// XHTML document is its own single chapter.
func Chapters(name string) ([]string, error) {
	kind, err := Detect(name)
	if err != nil {
		return nil, err
	}
	if kind == KindXHTML {
		return []string{filepath.Base(name)}, nil
	}
	return archive.List(name, "**.{xhtml,html,htm}")
}

// Chapter is a loaded chapter of the document.
type Chapter struct {
	Document string // path to the document file
	Name     string // chapter name inside of container, file name otherwise
	doc      *etree.Document
	log      *zap.Logger
}

// Open loads chapter of the document. For containers chapter could be given
// by its full name or by unique suffix ("ch1.xhtml" for "OEBPS/Text/ch1.xhtml"),
// for standalone files it is ignored.
func Open(name, chapter string, log *zap.Logger) (*Chapter, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("dom")

	kind, err := Detect(name)
	if err != nil {
		return nil, err
	}

	var data []byte
	c := &Chapter{Document: name, log: log}
	switch kind {
	case KindEPUB:
		if c.Name, err = findChapter(name, chapter); err != nil {
			return nil, err
		}
		if data, err = archive.ReadFile(name, c.Name, maxChapterSize); err != nil {
			return nil, err
		}
	default:
		c.Name = filepath.Base(name)
		if data, err = os.ReadFile(name); err != nil {
			return nil, fmt.Errorf("unable to read document: %w", err)
		}
	}

	c.doc = etree.NewDocument()
	c.doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
		Entity:        xml.HTMLEntity,
	}
	if err := c.doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("unable to parse chapter %s: %w", c.Name, err)
	}
	if c.doc.Root() == nil {
		return nil, fmt.Errorf("chapter %s has no content", c.Name)
	}
	log.Debug("Chapter loaded", zap.String("document", name), zap.Stringer("kind", kind), zap.String("chapter", c.Name), zap.Int("size", len(data)))
	return c, nil
}

func findChapter(name, chapter string) (string, error) {
	if len(chapter) == 0 {
		return "", ErrNoChapter
	}
	chapters, err := Chapters(name)
	if err != nil {
		return "", err
	}
	chapter = strings.TrimPrefix(path.Clean("/"+chapter), "/")

	var matches []string
	for _, c := range chapters {
		if c == chapter {
			return c, nil
		}
		if strings.HasSuffix(c, "/"+chapter) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: chapter %s", archive.ErrNotFound, chapter)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousChapter, strings.Join(matches, ", "))
	}
}

// Locate finds element by etree path ("//p[@class='para']", "./body/div/p[3]").
// Path starting with "#" is a shortcut for element id.
func (c *Chapter) Locate(expr string) (*etree.Element, error) {
	if id, ok := strings.CutPrefix(expr, "#"); ok {
		expr = "//*[@id='" + id + "']"
	}
	p, err := etree.CompilePath(expr)
	if err != nil {
		return nil, fmt.Errorf("bad element path %q: %w", expr, err)
	}
	el := c.doc.FindElementPath(p)
	if el == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoElement, expr)
	}
	return el, nil
}

// Chain returns ancestors of the element (element included) from the
// document root down.
func Chain(el *etree.Element) []selector.Node {
	var chain []selector.Node
	for e := el; e != nil && len(e.Tag) > 0; e = e.Parent() {
		chain = append(chain, selector.NewNode(e.Tag, e.SelectAttrValue("class", "")))
	}
	// collected leaf first
	slices.Reverse(chain)
	return chain
}

// Context builds selection context for the element at the path. Text of the
// element is returned as well, so selection could be shown to the user.
func (c *Chapter) Context(expr string) (selector.Context, string, error) {
	el, err := c.Locate(expr)
	if err != nil {
		return selector.Context{}, "", err
	}
	chain := Chain(el)
	c.log.Debug("Selection", zap.String("path", el.GetPath()), zap.Int("depth", len(chain)))
	return selector.Context{Chain: chain}, Text(el), nil
}

// Text returns text content of the element, for display.
func Text(el *etree.Element) string {
	var buf bytes.Buffer
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, t := range e.Child {
			switch v := t.(type) {
			case *etree.CharData:
				buf.WriteString(v.Data)
			case *etree.Element:
				walk(v)
			}
		}
	}
	walk(el)
	return strings.Join(strings.Fields(buf.String()), " ")
}
