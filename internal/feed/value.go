package feed

import (
	"fmt"
	"strconv"
)

// The XML parser flattens a document into an untyped tree where a scalar
// leaf may arrive as a bare string, a CDATA payload, or an attribute map
// that may or may not carry a text node. leaf is the tagged view of that
// ambiguity; every consumer goes through it instead of type-switching ad hoc.
type leafKind int

const (
	leafMissing leafKind = iota
	leafPlainText
	leafCData
	leafAttrMap
	leafScalar
)

// Keys the XML parser uses for text nodes and attributes inside a map leaf.
const (
	textKey    = "#text"
	cdataKey   = "#cdata"
	attrPrefix = "-"
)

type leaf struct {
	kind  leafKind
	text  string
	attrs map[string]any
	raw   any
}

func asLeaf(v any) leaf {
	switch val := v.(type) {
	case nil:
		return leaf{kind: leafMissing}
	case string:
		return leaf{kind: leafPlainText, text: val, raw: v}
	case bool:
		return leaf{kind: leafScalar, text: strconv.FormatBool(val), raw: v}
	case float64:
		return leaf{kind: leafScalar, text: strconv.FormatFloat(val, 'f', -1, 64), raw: v}
	case int:
		return leaf{kind: leafScalar, text: strconv.Itoa(val), raw: v}
	case []any:
		if len(val) == 0 {
			return leaf{kind: leafMissing}
		}
		return asLeaf(val[0])
	case map[string]any:
		l := leaf{kind: leafAttrMap, attrs: val, raw: v}
		if s, ok := val[cdataKey].(string); ok {
			l.kind = leafCData
			l.text = s
		} else if s, ok := val[textKey].(string); ok {
			l.kind = leafPlainText
			l.text = s
		}
		return l
	default:
		return leaf{kind: leafScalar, text: fmt.Sprintf("%v", val), raw: v}
	}
}

// Text coerces any leaf value to a display string. Precedence: CDATA
// payload, then plain text payload, then scalar coercion, then a stringified
// view of whatever structure remains. Missing input yields the empty string.
func Text(v any) string {
	l := asLeaf(v)
	switch l.kind {
	case leafMissing:
		return ""
	case leafAttrMap:
		if len(l.attrs) == 0 {
			return ""
		}
		return fmt.Sprintf("%v", l.raw)
	default:
		return l.text
	}
}

// attr returns the named attribute of a leaf, if the leaf carries attributes.
func (l leaf) attr(name string) (string, bool) {
	if l.attrs == nil {
		return "", false
	}
	s, ok := l.attrs[attrPrefix+name].(string)
	return s, ok
}
