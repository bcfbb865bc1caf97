// Package docx provides read/write access to DOCX (Office Open XML)
// documents as a mutable element tree. The container is a ZIP archive;
// the XML parts that the normalization pipeline edits are parsed into
// xmlquery node trees and serialized back on save, while every other
// part is copied through byte-identical.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/antchfx/xmlquery"
)

const (
	documentPart = "word/document.xml"
	stylesPart   = "word/styles.xml"
	documentRels = "word/_rels/document.xml.rels"
)

// Document is an in-memory DOCX document. It owns the raw container
// entries plus parsed DOM trees for the parts the pipeline mutates.
// A Document is not safe for concurrent mutation; the pipeline is the
// single owner for the duration of processing.
type Document struct {
	parts map[string][]byte
	order []string

	document *xmlquery.Node            // word/document.xml
	styles   *xmlquery.Node            // word/styles.xml, nil if absent
	headers  map[string]*xmlquery.Node // part name -> w:hdr tree
	footers  map[string]*xmlquery.Node // part name -> w:ftr tree
	rels     map[string]string         // relationship id -> target part name
}

// Open reads a DOCX file and parses the parts the pipeline operates on.
func Open(filename string) (*Document, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	defer func() { _ = zr.Close() }()

	d := &Document{
		parts:   make(map[string][]byte),
		headers: make(map[string]*xmlquery.Node),
		footers: make(map[string]*xmlquery.Node),
		rels:    make(map[string]string),
	}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening entry %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading entry %s: %w", f.Name, err)
		}
		d.parts[f.Name] = data
		d.order = append(d.order, f.Name)
	}

	if err := d.parse(); err != nil {
		return nil, err
	}
	return d, nil
}

// FromParts builds a Document directly from container entries. This is the
// entry point used by tests to assemble minimal documents in memory.
func FromParts(parts map[string][]byte) (*Document, error) {
	d := &Document{
		parts:   make(map[string][]byte, len(parts)),
		headers: make(map[string]*xmlquery.Node),
		footers: make(map[string]*xmlquery.Node),
		rels:    make(map[string]string),
	}
	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		d.parts[name] = parts[name]
		d.order = append(d.order, name)
	}
	if err := d.parse(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Document) parse() error {
	data, ok := d.parts[documentPart]
	if !ok {
		return fmt.Errorf("missing required part: %s", documentPart)
	}
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", documentPart, err)
	}
	d.document = doc

	// Styles are optional.
	if data, ok := d.parts[stylesPart]; ok {
		if styles, err := xmlquery.Parse(bytes.NewReader(data)); err == nil {
			d.styles = styles
		}
	}

	d.parseRelationships()
	d.parseHeaderFooterParts()
	return nil
}

// parseRelationships maps relationship ids to part names so header and
// footer references in section properties can be resolved.
func (d *Document) parseRelationships() {
	data, ok := d.parts[documentRels]
	if !ok {
		return
	}
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return
	}
	for _, rel := range DescendantElements(doc, "", "Relationship") {
		id := attrValue(rel, "", "Id")
		target := attrValue(rel, "", "Target")
		if id == "" || target == "" {
			continue
		}
		if !strings.HasPrefix(target, "/") {
			target = path.Join("word", target)
		} else {
			target = strings.TrimPrefix(target, "/")
		}
		d.rels[id] = target
	}
}

func (d *Document) parseHeaderFooterParts() {
	for name, data := range d.parts {
		base := path.Base(name)
		switch {
		case strings.HasPrefix(base, "header") && strings.HasSuffix(base, ".xml"):
			if doc, err := xmlquery.Parse(bytes.NewReader(data)); err == nil {
				d.headers[name] = doc
			}
		case strings.HasPrefix(base, "footer") && strings.HasSuffix(base, ".xml"):
			if doc, err := xmlquery.Parse(bytes.NewReader(data)); err == nil {
				d.footers[name] = doc
			}
		}
	}
}

// Save serializes all mutated parts and writes a new container to filename.
// The original entry order is preserved.
func (d *Document) Save(filename string) error {
	d.flush()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range d.order {
		w, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("creating entry %s: %w", name, err)
		}
		if _, err := w.Write(d.parts[name]); err != nil {
			return fmt.Errorf("writing entry %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}

	if err := os.WriteFile(filename, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}

// Bytes serializes the document container into memory. Used by tests and
// by idempotence checks.
func (d *Document) Bytes() ([]byte, error) {
	d.flush()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range d.order {
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("creating entry %s: %w", name, err)
		}
		if _, err := w.Write(d.parts[name]); err != nil {
			return nil, fmt.Errorf("writing entry %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// flush re-serializes every parsed DOM back into its container entry.
func (d *Document) flush() {
	d.parts[documentPart] = serialize(d.document)
	if d.styles != nil {
		d.parts[stylesPart] = serialize(d.styles)
	}
	for name, dom := range d.headers {
		d.parts[name] = serialize(dom)
	}
	for name, dom := range d.footers {
		d.parts[name] = serialize(dom)
	}
}

func serialize(doc *xmlquery.Node) []byte {
	out := doc.OutputXML(true)
	if !strings.HasPrefix(out, "<?xml") {
		out = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + out
	}
	return []byte(out)
}

// Body returns the w:body element of the main document part.
func (d *Document) Body() *xmlquery.Node {
	root := FirstChildElement(d.document, "w", "document")
	if root == nil {
		return nil
	}
	return FirstChildElement(root, "w", "body")
}

// DocumentRoot returns the w:document element.
func (d *Document) DocumentRoot() *xmlquery.Node {
	return FirstChildElement(d.document, "w", "document")
}

// Paragraphs returns the top-level body paragraphs in document order.
func (d *Document) Paragraphs() []*Paragraph {
	return paragraphsUnder(d.Body(), false)
}

// AllParagraphs returns every paragraph in the main body, including
// paragraphs nested in table cells (recursively).
func (d *Document) AllParagraphs() []*Paragraph {
	return paragraphsUnder(d.Body(), true)
}

// Tables returns the top-level tables in the body.
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, n := range childElements(d.Body(), "w", "tbl") {
		out = append(out, &Table{node: n})
	}
	return out
}

// Sections returns every section properties block (w:sectPr) in the main
// document part: mid-document sections embedded in paragraph properties and
// the body-final section.
func (d *Document) Sections() []*Section {
	var out []*Section
	for _, n := range DescendantElements(d.Body(), "w", "sectPr") {
		out = append(out, &Section{node: n, doc: d})
	}
	return out
}

// Styles returns every style definition with its node, or nil when the
// document carries no styles part.
func (d *Document) Styles() []*Style {
	if d.styles == nil {
		return nil
	}
	root := FirstChildElement(d.styles, "w", "styles")
	var out []*Style
	for _, n := range childElements(root, "w", "style") {
		out = append(out, &Style{node: n})
	}
	return out
}

// HeaderFooterParagraphs returns every paragraph owned by header and
// footer parts. After furniture stripping this is normally empty, but
// callers must not assume that.
func (d *Document) HeaderFooterParagraphs() []*Paragraph {
	var out []*Paragraph
	for _, dom := range d.headers {
		out = append(out, partParagraphs(dom)...)
	}
	for _, dom := range d.footers {
		out = append(out, partParagraphs(dom)...)
	}
	return out
}

// headerFooterPart resolves a relationship id to a parsed header or footer
// DOM, returning nil when the id does not point at one.
func (d *Document) headerFooterPart(relID string) *xmlquery.Node {
	name, ok := d.rels[relID]
	if !ok {
		return nil
	}
	if dom, ok := d.headers[name]; ok {
		return dom
	}
	if dom, ok := d.footers[name]; ok {
		return dom
	}
	return nil
}

func partParagraphs(dom *xmlquery.Node) []*Paragraph {
	var out []*Paragraph
	for _, n := range DescendantElements(dom, "w", "p") {
		out = append(out, &Paragraph{node: n})
	}
	return out
}

// paragraphsUnder collects w:p children of body; with nested=true it also
// descends into tables, treating each cell as a nested document scope.
func paragraphsUnder(body *xmlquery.Node, nested bool) []*Paragraph {
	if body == nil {
		return nil
	}
	var out []*Paragraph
	var walk func(n *xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != xmlquery.ElementNode || c.Prefix != "w" {
				continue
			}
			switch c.Data {
			case "p":
				out = append(out, &Paragraph{node: c})
			case "tbl":
				if nested {
					walk(c)
				}
			case "tr", "tc":
				walk(c)
			}
		}
	}
	walk(body)
	return out
}
