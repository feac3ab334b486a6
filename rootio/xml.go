package rootio

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/benoitkugler/okpaint/painting"
	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/net/html/charset"
)

// xmlPainting is the ROOT XML layout of a TWebPainting.
type xmlPainting struct {
	XMLName xml.Name `xml:"TWebPainting"`
	Oper    string   `xml:"fOper"`
	Buf     string   `xml:"fBuf"`
}

// DecodePaintingXML reads a TWebPainting XML document,
// of the form
//
//	<TWebPainting><fOper>l2;f3</fOper><fBuf>0 0 1 1 ...</fBuf></TWebPainting>
//
// The document encoding is honored.
func DecodePaintingXML(r io.Reader) (*painting.Painting, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	var v xmlPainting
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("rootio: invalid painting document: %w", err)
	}
	buf, err := ParseNumbers(v.Buf)
	if err != nil {
		return nil, fmt.Errorf("rootio: invalid painting buffer: %w", err)
	}
	return &painting.Painting{Oper: v.Oper, Buf: buf}, nil
}

func isSeparator(c byte) bool {
	return c == ' ' || c == ',' || c == '\n' || c == '\t' || c == '\r'
}

// ParseNumbers reads a list of numbers separated by
// white spaces or commas.
func ParseNumbers(s string) ([]float64, error) {
	b := []byte(s)
	var out []float64
	for i := 0; i < len(b); {
		if isSeparator(b[i]) {
			i++
			continue
		}
		v, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			return nil, fmt.Errorf("unexpected character %q at %d", b[i], i)
		}
		i += n
		if i < len(b) && !isSeparator(b[i]) {
			return nil, fmt.Errorf("unexpected character %q at %d", b[i], i)
		}
		out = append(out, v)
	}
	return out, nil
}
