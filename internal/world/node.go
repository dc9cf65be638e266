package world

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Node is a structured persistence element: a tag, string attributes and
// ordered children.
type Node interface {
	Name() string
	Attr(key string) string
	SetAttr(key, value string)
	Children() []Node
	AddChild(name string) Node
}

// Element is the in-memory Node used by the XML codec and the city store.
type Element struct {
	Tag   string
	Attrs []xml.Attr
	Kids  []*Element
}

// NewElement creates an element with no attributes or children.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

func (e *Element) Name() string { return e.Tag }

func (e *Element) Attr(key string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == key {
			return a.Value
		}
	}
	return ""
}

// SetAttr replaces an existing attribute or appends a new one, keeping order.
func (e *Element) SetAttr(key, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name.Local == key {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, xml.Attr{Name: xml.Name{Local: key}, Value: value})
}

func (e *Element) Children() []Node {
	nodes := make([]Node, len(e.Kids))
	for i, k := range e.Kids {
		nodes[i] = k
	}
	return nodes
}

func (e *Element) AddChild(name string) Node {
	kid := NewElement(name)
	e.Kids = append(e.Kids, kid)
	return kid
}

// MarshalXML writes the element and its subtree.
func (e *Element) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Tag}, Attr: e.Attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, k := range e.Kids {
		if err := enc.Encode(k); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// UnmarshalXML reads the element and its subtree. Character data is ignored.
func (e *Element) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	e.Tag = start.Name.Local
	e.Attrs = nil
	for _, a := range start.Attr {
		e.SetAttr(a.Name.Local, a.Value)
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			kid := &Element{}
			if err := kid.UnmarshalXML(dec, tok); err != nil {
				return err
			}
			e.Kids = append(e.Kids, kid)
		case xml.EndElement:
			return nil
		}
	}
}

// WriteXML encodes root to w with indentation.
func WriteXML(w io.Writer, root *Element) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode %s: %w", root.Tag, err)
	}
	return enc.Close()
}

// ReadXML decodes one element tree from r.
func ReadXML(r io.Reader) (*Element, error) {
	root := &Element{}
	if err := xml.NewDecoder(r).Decode(root); err != nil {
		return nil, fmt.Errorf("decode city document: %w", err)
	}
	return root, nil
}

// IntAttr parses an integer attribute, returning def when absent or malformed.
func IntAttr(n Node, key string, def int) int {
	v, err := strconv.Atoi(n.Attr(key))
	if err != nil {
		return def
	}
	return v
}

// Save writes one "tile" child of root per tile, in draw order.
func (c *City) Save(root Node) {
	for _, t := range c.tiles {
		t.Save(root)
	}
}

// Load replaces the city contents with the "tile" children of root and sorts.
// Tiles with an unknown type are skipped and counted.
func (c *City) Load(root Node) (skipped int) {
	c.Clear()
	for _, node := range root.Children() {
		if node.Name() != "tile" {
			continue
		}
		kind, ok := ParseKind(node.Attr("type"))
		if !ok {
			skipped++
			c.log.Warn().Str("type", node.Attr("type")).Msg("skipping unknown tile type")
			continue
		}
		t := NewTile(c, kind)
		t.Load(node)
		c.Add(t)
	}
	c.SortTiles()
	c.log.Debug().Int("tiles", len(c.tiles)).Int("skipped", skipped).Msg("city loaded")
	return skipped
}

// SaveFile writes the city as an XML document.
func (c *City) SaveFile(path string) error {
	root := NewElement("city")
	c.Save(root)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save city: %w", err)
	}
	if err := WriteXML(f, root); err != nil {
		f.Close()
		return fmt.Errorf("save city %s: %w", path, err)
	}
	return f.Close()
}

// LoadFile replaces the city with the contents of an XML document.
// The city is left untouched if the file cannot be read.
func (c *City) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load city: %w", err)
	}
	defer f.Close()

	root, err := ReadXML(f)
	if err != nil {
		return fmt.Errorf("load city %s: %w", path, err)
	}
	c.Load(root)
	return nil
}
