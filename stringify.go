package nestarr

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// nodeString returns an XML-like tree diagram of the node, just a wrapper
// for Fprint. If Fprint returns an error, nodeString panics.
func nodeString(c Content) string {
	w := new(strings.Builder)
	if err := Fprint(w, c); err != nil {
		panic(err)
	}
	return w.String()
}

// Fprint writes c's structural tree to w (spec §6: Content.String()
// realizes tostring_part as an XML-like tree writer). Each node writes its
// own opening/closing tag and recurses into children at depth+1, mirroring
// the teacher's Fprint(w io.Writer) error signature.
func Fprint(w io.Writer, c Content) error {
	if w == nil {
		return errors.New("nestarr: Fprint called with nil writer")
	}
	if c == nil {
		return errors.New("nestarr: Fprint called with nil content")
	}
	return fprintPart(w, c, 0)
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

func fprintPart(w io.Writer, c Content, depth int) error {
	tag := c.classname()
	open := fmt.Sprintf("%s<%s len=%d>", indent(depth), tag, c.Length())

	switch n := c.(type) {
	case *NumpyArray:
		if _, err := fmt.Fprintf(w, "%s dtype=%s values=%s</%s>\n", open, n.DType(), numpyValuesString(n), tag); err != nil {
			return err
		}
		return nil

	case *EmptyArray:
		_, err := fmt.Fprintf(w, "%s</%s>\n", open, tag)
		return err

	case *RegularArray:
		if _, err := fmt.Fprintf(w, "%s size=%d\n", open, n.Size()); err != nil {
			return err
		}
		if err := fprintPart(w, n.Content(), depth+1); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "%s</%s>\n", indent(depth), tag)
		return err

	case *ListOffsetArray:
		if _, err := fmt.Fprintf(w, "%s\n", open); err != nil {
			return err
		}
		if err := fprintPart(w, n.Content(), depth+1); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "%s</%s>\n", indent(depth), tag)
		return err

	case *ListArray:
		if _, err := fmt.Fprintf(w, "%s\n", open); err != nil {
			return err
		}
		if err := fprintPart(w, n.Content(), depth+1); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "%s</%s>\n", indent(depth), tag)
		return err

	case *IndexedArray:
		if _, err := fmt.Fprintf(w, "%s\n", open); err != nil {
			return err
		}
		if err := fprintPart(w, n.Content(), depth+1); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "%s</%s>\n", indent(depth), tag)
		return err

	case *OptionArray:
		if _, err := fmt.Fprintf(w, "%s valid=%d/%d\n", open, n.Mask().Count(), n.Mask().Len()); err != nil {
			return err
		}
		if err := fprintPart(w, n.Content(), depth+1); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "%s</%s>\n", indent(depth), tag)
		return err

	case *UnionArray:
		if _, err := fmt.Fprintf(w, "%s alternatives=%d\n", open, len(n.Contents())); err != nil {
			return err
		}
		for i, alt := range n.Contents() {
			if _, err := fmt.Fprintf(w, "%s<alternative tag=%d>\n", indent(depth+1), i); err != nil {
				return err
			}
			if err := fprintPart(w, alt, depth+2); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "%s</alternative>\n", indent(depth+1)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "%s</%s>\n", indent(depth), tag)
		return err

	case *RecordArray:
		names, fields := n.Fields()
		if _, err := fmt.Fprintf(w, "%s fields=%d\n", open, len(names)); err != nil {
			return err
		}
		for i, name := range names {
			if _, err := fmt.Fprintf(w, "%s<field name=%q>\n", indent(depth+1), name); err != nil {
				return err
			}
			if err := fprintPart(w, fields[i], depth+2); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "%s</field>\n", indent(depth+1)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "%s</%s>\n", indent(depth), tag)
		return err

	default:
		_, err := fmt.Fprintf(w, "%s</%s>\n", open, tag)
		return err
	}
}

func numpyValuesString(n *NumpyArray) string {
	length := int(n.Length())
	if length > 8 {
		length = 8
	}
	parts := make([]string, length)
	switch n.DType().String() {
	case "bool":
		for i := 0; i < length; i++ {
			parts[i] = fmt.Sprintf("%t", n.AtBool(i))
		}
	case "int32", "uint32", "int64":
		for i := 0; i < length; i++ {
			parts[i] = fmt.Sprintf("%d", n.AtInt64(i))
		}
	default:
		for i := 0; i < length; i++ {
			parts[i] = fmt.Sprintf("%g", n.AtFloat64(i))
		}
	}
	out := "[" + strings.Join(parts, " ") + "]"
	if int(n.Length()) > length {
		out = out[:len(out)-1] + " ...]"
	}
	return out
}

// String implementations per variant, each a thin wrapper over Fprint
// (spec §6), matching the teacher's String()-calls-Fprint-panics-on-error
// pattern.
func (n *NumpyArray) String() string       { return nodeString(n) }
func (n *EmptyArray) String() string       { return nodeString(n) }
func (n *RegularArray) String() string     { return nodeString(n) }
func (n *ListOffsetArray) String() string  { return nodeString(n) }
func (n *ListArray) String() string        { return nodeString(n) }
func (n *IndexedArray) String() string     { return nodeString(n) }
func (n *OptionArray) String() string      { return nodeString(n) }
func (n *UnionArray) String() string       { return nodeString(n) }
func (n *RecordArray) String() string      { return nodeString(n) }
