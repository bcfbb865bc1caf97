package docx

import (
	"encoding/xml"

	"github.com/antchfx/xmlquery"
)

// Node helpers for direct manipulation of the WordprocessingML element tree.
// Traversal is done by explicit child walks comparing prefix and local name,
// so behavior does not depend on namespace resolution. The exported subset
// serves the stage packages that edit raw nodes obtained through Node()
// accessors.

// childElements returns all element children of n with the given prefix and
// local name. An empty prefix matches only unprefixed elements.
func childElements(n *xmlquery.Node, prefix, local string) []*xmlquery.Node {
	if n == nil {
		return nil
	}
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Prefix == prefix && c.Data == local {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildElement returns the first element child matching prefix:local,
// or nil if none exists.
func FirstChildElement(n *xmlquery.Node, prefix, local string) *xmlquery.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Prefix == prefix && c.Data == local {
			return c
		}
	}
	return nil
}

// DescendantElements collects every descendant element matching prefix:local
// in document order.
func DescendantElements(n *xmlquery.Node, prefix, local string) []*xmlquery.Node {
	if n == nil {
		return nil
	}
	var out []*xmlquery.Node
	var walk func(*xmlquery.Node)
	walk = func(cur *xmlquery.Node) {
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xmlquery.ElementNode {
				if c.Prefix == prefix && c.Data == local {
					out = append(out, c)
				}
				walk(c)
			}
		}
	}
	walk(n)
	return out
}

// hasDescendant reports whether n contains at least one prefix:local element.
func hasDescendant(n *xmlquery.Node, prefix, local string) bool {
	if n == nil {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			if c.Prefix == prefix && c.Data == local {
				return true
			}
			if hasDescendant(c, prefix, local) {
				return true
			}
		}
	}
	return false
}

// newElement creates a detached element node prefix:local.
func newElement(prefix, local string) *xmlquery.Node {
	return &xmlquery.Node{Type: xmlquery.ElementNode, Prefix: prefix, Data: local}
}

// appendChild attaches child as the last child of parent.
func appendChild(parent, child *xmlquery.Node) {
	xmlquery.AddChild(parent, child)
}

// prependChild attaches child as the first child of parent. Several w:pPr
// and w:rPr children are order-sensitive, so new property elements are
// usually inserted at the front.
func prependChild(parent, child *xmlquery.Node) {
	child.Parent = parent
	child.PrevSibling = nil
	child.NextSibling = parent.FirstChild
	if parent.FirstChild != nil {
		parent.FirstChild.PrevSibling = child
	} else {
		parent.LastChild = child
	}
	parent.FirstChild = child
}

// insertBefore attaches child immediately before ref, which must be a
// child of parent. A nil ref appends.
func insertBefore(parent, child, ref *xmlquery.Node) {
	if ref == nil {
		appendChild(parent, child)
		return
	}
	child.Parent = parent
	child.NextSibling = ref
	child.PrevSibling = ref.PrevSibling
	if ref.PrevSibling != nil {
		ref.PrevSibling.NextSibling = child
	} else {
		parent.FirstChild = child
	}
	ref.PrevSibling = child
}

// removeNode detaches n from its parent. Detaching a node that is already
// detached is a no-op.
func removeNode(n *xmlquery.Node) {
	if n == nil || n.Parent == nil {
		return
	}
	xmlquery.RemoveFromTree(n)
}

// attrValue returns the value of the attribute with the given prefix and
// local name, or "" if absent.
func attrValue(n *xmlquery.Node, prefix, local string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Name.Space == prefix && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// hasAttr reports whether the attribute prefix:local is present.
func hasAttr(n *xmlquery.Node, prefix, local string) bool {
	for _, a := range n.Attr {
		if a.Name.Space == prefix && a.Name.Local == local {
			return true
		}
	}
	return false
}

// SetAttr sets the attribute prefix:local to value, creating it if absent.
func SetAttr(n *xmlquery.Node, prefix, local, value string) {
	for i := range n.Attr {
		if n.Attr[i].Name.Space == prefix && n.Attr[i].Name.Local == local {
			n.Attr[i].Value = value
			return
		}
	}
	n.Attr = append(n.Attr, xmlquery.Attr{
		Name:  xml.Name{Space: prefix, Local: local},
		Value: value,
	})
}

// removeAttr drops the attribute prefix:local if present.
func removeAttr(n *xmlquery.Node, prefix, local string) {
	for i := range n.Attr {
		if n.Attr[i].Name.Space == prefix && n.Attr[i].Name.Local == local {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// removeChildren detaches every element child matching prefix:local and
// returns the number removed.
func removeChildren(n *xmlquery.Node, prefix, local string) int {
	removed := 0
	for _, c := range childElements(n, prefix, local) {
		removeNode(c)
		removed++
	}
	return removed
}

// ensureChild returns the prefix:local child of n, creating and prepending
// it if absent.
func ensureChild(n *xmlquery.Node, prefix, local string) *xmlquery.Node {
	if c := FirstChildElement(n, prefix, local); c != nil {
		return c
	}
	c := newElement(prefix, local)
	prependChild(n, c)
	return c
}

// innerText concatenates all text content beneath n.
func innerText(n *xmlquery.Node) string {
	if n == nil {
		return ""
	}
	return n.InnerText()
}

// SetElementText replaces the text content of n with s.
func SetElementText(n *xmlquery.Node, s string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == xmlquery.TextNode {
			removeNode(c)
		}
		c = next
	}
	if s == "" {
		return
	}
	text := &xmlquery.Node{Type: xmlquery.TextNode, Data: s}
	appendChild(n, text)
}
