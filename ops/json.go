package ops

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/reusee/gtscript/gts"
	"github.com/reusee/gtscript/values"
)

// marshalJSON keeps the insertion order of maps. Non finite numbers become null.
func marshalJSON(v values.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v values.Value) error {
	switch v := v.(type) {

	case values.Int, values.Bool, values.Text:
		var raw any
		switch v := v.(type) {
		case values.Int:
			raw = int64(v)
		case values.Bool:
			raw = bool(v)
		case values.Text:
			raw = string(v)
		}
		bs, err := json.Marshal(raw)
		if err != nil {
			return err
		}
		buf.Write(bs)

	case values.Real:
		writeFloat(buf, float64(v))

	case *values.List:
		buf.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')

	case *values.Map:
		buf.WriteByte('{')
		i := 0
		for key, value := range v.All() {
			if i > 0 {
				buf.WriteByte(',')
			}
			i++
			bs, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(bs)
			buf.WriteByte(':')
			if err := writeJSON(buf, value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')

	case values.Vector:
		buf.WriteByte('[')
		for i, f := range v.Data() {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeFloat(buf, f)
		}
		buf.WriteByte(']')

	case values.Matrix:
		buf.WriteByte('[')
		for i, row := range v.Rows() {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('[')
			for j, f := range row {
				if j > 0 {
					buf.WriteByte(',')
				}
				writeFloat(buf, f)
			}
			buf.WriteByte(']')
		}
		buf.WriteByte(']')

	case *gts.Series:
		labelMap := v.Labels()
		if labelMap == nil {
			labelMap = map[string]string{}
		}
		labels, err := json.Marshal(labelMap)
		if err != nil {
			return err
		}
		name, err := json.Marshal(v.Name())
		if err != nil {
			return err
		}
		buf.WriteString(`{"c":`)
		buf.Write(name)
		buf.WriteString(`,"l":`)
		buf.Write(labels)
		buf.WriteString(`,"v":[`)
		for i, r := range v.Readings() {
			if i > 0 {
				buf.WriteByte(',')
			}
			fmt.Fprintf(buf, "[%d,", r.Tick)
			if lat, lon, ok := r.Location.LatLon(); ok {
				writeFloat(buf, lat)
				buf.WriteByte(',')
				writeFloat(buf, lon)
				buf.WriteByte(',')
			}
			if r.Elevation.Valid() {
				fmt.Fprintf(buf, "%d,", int64(r.Elevation))
			}
			if err := writeJSON(buf, r.Value); err != nil {
				return err
			}
			buf.WriteByte(']')
		}
		buf.WriteString("]}")

	default:
		return fmt.Errorf("%w: cannot encode %s as JSON", values.ErrTypeMismatch, v.Kind())
	}
	return nil
}

func writeFloat(buf *bytes.Buffer, f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		buf.WriteString("null")
		return
	}
	bs, _ := json.Marshal(f)
	buf.Write(bs)
}

var errJSONNull = errors.New("null is not a value")

// unmarshalJSON decodes objects into insertion-ordered maps.
func unmarshalJSON(data []byte) (values.Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	v, err := readJSON(decoder)
	if err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", values.ErrTypeMismatch)
	}
	return v, nil
}

func readJSON(decoder *json.Decoder) (values.Value, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	switch token := token.(type) {

	case json.Delim:
		switch token {
		case '[':
			list := values.NewList()
			for decoder.More() {
				item, err := readJSON(decoder)
				if err != nil {
					return nil, err
				}
				list.Items = append(list.Items, item)
			}
			if _, err := decoder.Token(); err != nil {
				return nil, err
			}
			return list, nil
		case '{':
			dict := values.NewMap()
			for decoder.More() {
				key, err := decoder.Token()
				if err != nil {
					return nil, err
				}
				value, err := readJSON(decoder)
				if err != nil {
					return nil, err
				}
				dict.Put(key.(string), value)
			}
			if _, err := decoder.Token(); err != nil {
				return nil, err
			}
			return dict, nil
		}

	case json.Number:
		if i, err := token.Int64(); err == nil {
			return values.Int(i), nil
		}
		f, err := token.Float64()
		if err != nil {
			return nil, err
		}
		return values.Real(f), nil

	case string:
		return values.Text(token), nil

	case bool:
		return values.Bool(token), nil

	case nil:
		return nil, errJSONNull
	}
	return nil, fmt.Errorf("unexpected JSON token %v", token)
}
