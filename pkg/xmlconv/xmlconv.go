// Package xmlconv decodes XML documents into generic maps, the same shape a
// JSON body would decode to. Repeated sibling elements collapse into a slice,
// attributes become "@name" keys and leaf elements become strings.
package xmlconv

import (
	"io"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/nordicdata/tap-inventio/pkg/errors"
)

// Decode parses an XML document and returns a map keyed by the root element
// name. An empty document decodes to an empty map.
func Decode(r io.Reader) (map[string]interface{}, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrDecode, "parse XML")
	}

	result := make(map[string]interface{})
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type != xmlquery.ElementNode {
			continue
		}
		addChild(result, nodeName(n), convert(n))
	}
	return result, nil
}

// DecodeBytes is a convenience wrapper around Decode.
func DecodeBytes(data []byte) (map[string]interface{}, error) {
	return Decode(strings.NewReader(string(data)))
}

// convert turns one element into a string, a map, or nil for empty elements.
func convert(n *xmlquery.Node) interface{} {
	out := make(map[string]interface{})
	for _, a := range n.Attr {
		name := a.Name.Local
		if a.Name.Space != "" {
			name = a.Name.Space + ":" + a.Name.Local
		}
		out["@"+name] = a.Value
	}

	var text strings.Builder
	hasElements := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.ElementNode:
			hasElements = true
			addChild(out, nodeName(c), convert(c))
		case xmlquery.TextNode, xmlquery.CharDataNode:
			text.WriteString(c.Data)
		}
	}

	if hasElements {
		return out
	}

	trimmed := strings.TrimSpace(text.String())
	switch {
	case trimmed != "" && len(out) > 0:
		out["#text"] = trimmed
		return out
	case trimmed != "":
		return trimmed
	case len(out) > 0:
		return out
	default:
		return nil
	}
}

// addChild inserts a value under key, promoting repeated keys to a slice.
func addChild(m map[string]interface{}, key string, value interface{}) {
	existing, ok := m[key]
	if !ok {
		m[key] = value
		return
	}
	if list, ok := existing.([]interface{}); ok {
		m[key] = append(list, value)
		return
	}
	m[key] = []interface{}{existing, value}
}

func nodeName(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}

// Lookup drills into a decoded document by a dotted path.
func Lookup(data map[string]interface{}, path string) (interface{}, bool) {
	if path == "" {
		return nil, false
	}

	var current interface{} = data
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
