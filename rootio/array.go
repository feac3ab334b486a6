package rootio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Floats is a JSON array of numbers, either plain or compressed.
//
// Compressed arrays are objects:
//
//	{"$arr": "Float64", "len": 10, "p": 2, "v": [1, 2], "p1": 6, "v1": 5, "n1": 3}
//
// where each segment `v<i>` is written at position `p<i>`, and a scalar
// value is repeated `n<i>` times. Other values are zero.
type Floats []float64

// maxCompressedLen bounds the size of decoded compressed arrays.
const maxCompressedLen = 1 << 26

func (f *Floats) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var plain []float64
		if err := json.Unmarshal(data, &plain); err != nil {
			return err
		}
		*f = plain
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("rootio: invalid array: %w", err)
	}
	if _, ok := fields["$arr"]; !ok {
		return fmt.Errorf("rootio: invalid array: missing $arr")
	}
	var length int
	if err := json.Unmarshal(fields["len"], &length); err != nil {
		return fmt.Errorf("rootio: invalid compressed array length: %w", err)
	}
	if length < 0 || length > maxCompressedLen {
		return fmt.Errorf("rootio: invalid compressed array length %d", length)
	}
	out := make([]float64, length)
	for i := 0; ; i++ {
		suffix := ""
		if i > 0 {
			suffix = strconv.Itoa(i)
		}
		raw, ok := fields["v"+suffix]
		if !ok {
			break
		}
		if err := fillSegment(out, fields, suffix, raw); err != nil {
			return err
		}
	}
	*f = out
	return nil
}

func fillSegment(out []float64, fields map[string]json.RawMessage, suffix string, raw json.RawMessage) error {
	pos := 0
	if p, ok := fields["p"+suffix]; ok {
		if err := json.Unmarshal(p, &pos); err != nil {
			return fmt.Errorf("rootio: invalid position p%s: %w", suffix, err)
		}
	}

	var values []float64
	if n, ok := fields["n"+suffix]; ok {
		var count int
		if err := json.Unmarshal(n, &count); err != nil {
			return fmt.Errorf("rootio: invalid count n%s: %w", suffix, err)
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("rootio: invalid repeated value v%s: %w", suffix, err)
		}
		if count < 0 || count > len(out) {
			return fmt.Errorf("rootio: invalid count n%s: %d", suffix, count)
		}
		values = make([]float64, count)
		for i := range values {
			values[i] = v
		}
	} else if err := json.Unmarshal(raw, &values); err != nil {
		// a single value
		var v float64
		if err2 := json.Unmarshal(raw, &v); err2 != nil {
			return fmt.Errorf("rootio: invalid values v%s: %w", suffix, err)
		}
		values = []float64{v}
	}

	if pos < 0 || pos+len(values) > len(out) {
		return fmt.Errorf("rootio: segment %s [%d, %d) out of array of length %d", suffix, pos, pos+len(values), len(out))
	}
	copy(out[pos:], values)
	return nil
}
