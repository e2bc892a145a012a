// Package parse reads SWIG XML interface descriptions into the symbol model.
package parse

import (
	"encoding/xml"
	"io"

	"github.com/cockroachdb/errors"
)

// Node is a generic SWIG XML element with its attribute list flattened.
type Node struct {
	Name     string
	Attrs    map[string]string
	Parms    []map[string]string
	Bases    []string
	Children []*Node
}

// Attr returns the value of the named entry in the node's attribute list.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// rawNode mirrors any XML element.
type rawNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []rawNode  `xml:",any"`
}

func (r *rawNode) attr(name string) string {
	for _, a := range r.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// Decode reads a SWIG XML document (as produced by `swig -xml`) into a Node
// tree rooted at the document element.
func Decode(r io.Reader) (*Node, error) {
	var raw rawNode
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decoding swig xml")
	}
	return convert(&raw), nil
}

func convert(r *rawNode) *Node {
	n := &Node{Name: r.XMLName.Local, Attrs: map[string]string{}}
	for i := range r.Nodes {
		child := &r.Nodes[i]
		if child.XMLName.Local == "attributelist" {
			readAttributeList(n, child)
			continue
		}
		n.Children = append(n.Children, convert(child))
	}
	return n
}

func readAttributeList(n *Node, list *rawNode) {
	for i := range list.Nodes {
		entry := &list.Nodes[i]
		switch entry.XMLName.Local {
		case "attribute":
			n.Attrs[entry.attr("name")] = entry.attr("value")
		case "parmlist":
			for j := range entry.Nodes {
				parm := &entry.Nodes[j]
				if parm.XMLName.Local != "parm" {
					continue
				}
				attrs := map[string]string{}
				for k := range parm.Nodes {
					if parm.Nodes[k].XMLName.Local != "attributelist" {
						continue
					}
					for _, a := range parm.Nodes[k].Nodes {
						if a.XMLName.Local == "attribute" {
							attrs[a.attr("name")] = a.attr("value")
						}
					}
				}
				n.Parms = append(n.Parms, attrs)
			}
		case "baselist":
			for _, b := range entry.Nodes {
				if b.XMLName.Local == "base" {
					if name := b.attr("name"); name != "" {
						n.Bases = append(n.Bases, name)
					}
				}
			}
		}
	}
}
