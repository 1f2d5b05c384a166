package nestarr

import "encoding/json"

// toJSONValue builds the plain-Go-value tree tojson_part would construct
// (spec §6), then MarshalJSON hands it to encoding/json — the same
// dump-to-intermediate-value-then-Marshal approach the teacher's
// jsonify.go uses for its own tree.
func toJSONValue(c Content) (any, error) {
	switch n := c.(type) {
	case *NumpyArray:
		length := int(n.Length())
		out := make([]any, length)
		switch n.DType().String() {
		case "bool":
			for i := 0; i < length; i++ {
				out[i] = n.AtBool(i)
			}
		case "int32", "uint32", "int64":
			for i := 0; i < length; i++ {
				out[i] = n.AtInt64(i)
			}
		default:
			for i := 0; i < length; i++ {
				out[i] = n.AtFloat64(i)
			}
		}
		return out, nil

	case *EmptyArray:
		return []any{}, nil

	case *RegularArray:
		return listLikeJSON(n, int(n.Length()), n.GetItemAtNowrap)

	case *ListOffsetArray:
		return listLikeJSON(n, int(n.Length()), n.GetItemAtNowrap)

	case *ListArray:
		return listLikeJSON(n, int(n.Length()), n.GetItemAtNowrap)

	case *IndexedArray:
		return listLikeJSON(n, int(n.Length()), n.GetItemAtNowrap)

	case *OptionArray:
		length := int(n.Length())
		out := make([]any, length)
		for i := 0; i < length; i++ {
			if !n.Mask().Test(i) {
				out[i] = nil
				continue
			}
			v, err := n.GetItemAtNowrap(int64(i))
			if err != nil {
				return nil, err
			}
			jv, err := toJSONValue(v)
			if err != nil {
				return nil, err
			}
			out[i] = jv
		}
		return out, nil

	case *UnionArray:
		return listLikeJSON(n, int(n.Length()), n.GetItemAtNowrap)

	case *RecordArray:
		length := int(n.Length())
		names, _ := n.Fields()
		out := make([]any, length)
		for i := 0; i < length; i++ {
			row, err := n.GetItemAtNowrap(int64(i))
			if err != nil {
				return nil, err
			}
			obj := make(map[string]any, len(names))
			for _, name := range names {
				field, err := row.GetItemField(name)
				if err != nil {
					return nil, err
				}
				fv, err := toJSONValue(field)
				if err != nil {
					return nil, err
				}
				obj[name] = fv
			}
			out[i] = obj
		}
		return out, nil

	default:
		return nil, &NodeError{Classname: c.classname()}
	}
}

func listLikeJSON(c Content, length int, at func(int64) (Content, error)) (any, error) {
	out := make([]any, length)
	for i := 0; i < length; i++ {
		v, err := at(int64(i))
		if err != nil {
			return nil, err
		}
		jv, err := toJSONValue(v)
		if err != nil {
			return nil, err
		}
		out[i] = jv
	}
	return out, nil
}

// MarshalJSON implementations per variant realize Content.MarshalJSON
// (spec §6): dump to an intermediate tree of plain Go values via
// toJSONValue, then hand it to encoding/json.
func (n *NumpyArray) MarshalJSON() ([]byte, error) {
	v, err := toJSONValue(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}
func (n *EmptyArray) MarshalJSON() ([]byte, error)      { return json.Marshal([]any{}) }
func (n *RegularArray) MarshalJSON() ([]byte, error)    { return marshalViaJSONValue(n) }
func (n *ListOffsetArray) MarshalJSON() ([]byte, error) { return marshalViaJSONValue(n) }
func (n *ListArray) MarshalJSON() ([]byte, error)       { return marshalViaJSONValue(n) }
func (n *IndexedArray) MarshalJSON() ([]byte, error)    { return marshalViaJSONValue(n) }
func (n *OptionArray) MarshalJSON() ([]byte, error)     { return marshalViaJSONValue(n) }
func (n *UnionArray) MarshalJSON() ([]byte, error)      { return marshalViaJSONValue(n) }
func (n *RecordArray) MarshalJSON() ([]byte, error)     { return marshalViaJSONValue(n) }

func marshalViaJSONValue(c Content) ([]byte, error) {
	v, err := toJSONValue(c)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}
