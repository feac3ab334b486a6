// Package rootio reads the objects produced by the ROOT JSON
// and XML serializers, and converts them to drawable shapes.
package rootio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/benoitkugler/okpaint"
	"github.com/benoitkugler/okpaint/attr"
	"github.com/benoitkugler/okpaint/painting"
	"github.com/benoitkugler/okpaint/shapes"
)

// kNDC is the object bit marking coordinates as pad fractions.
const kNDC = 1 << 14

// Object is a decoded ROOT object.
type Object struct {
	TypeName string
	Name     string
	Drawable shapes.Drawable
}

// header is common to every object.
type header struct {
	TypeName string `json:"_typename"`
	Name     string `json:"fName"`
	Bits     uint32 `json:"fBits"`
}

func (h header) ndc() bool { return h.Bits&kNDC != 0 }

type attLine struct {
	LineColor int `json:"fLineColor"`
	LineStyle int `json:"fLineStyle"`
	LineWidth int `json:"fLineWidth"`
}

func (a attLine) line() attr.Line {
	return attr.Line{Color: a.LineColor, Style: a.LineStyle, Width: a.LineWidth}
}

type attFill struct {
	FillColor int `json:"fFillColor"`
	FillStyle int `json:"fFillStyle"`
}

func (a attFill) fill() attr.Fill { return attr.Fill{Color: a.FillColor, Style: a.FillStyle} }

type attMarker struct {
	MarkerColor int     `json:"fMarkerColor"`
	MarkerStyle int     `json:"fMarkerStyle"`
	MarkerSize  float64 `json:"fMarkerSize"`
}

func (a attMarker) marker() attr.Marker {
	return attr.Marker{Color: a.MarkerColor, Style: a.MarkerStyle, Size: a.MarkerSize}
}

type attText struct {
	TextColor int     `json:"fTextColor"`
	TextFont  int     `json:"fTextFont"`
	TextSize  float64 `json:"fTextSize"`
	TextAlign int     `json:"fTextAlign"`
	TextAngle float64 `json:"fTextAngle"`
}

func (a attText) text() attr.Text {
	return attr.Text{Color: a.TextColor, Font: a.TextFont, Size: a.TextSize, Align: a.TextAlign, Angle: a.TextAngle}
}

type tBox struct {
	header
	attLine
	attFill
	X1         float64 `json:"fX1"`
	Y1         float64 `json:"fY1"`
	X2         float64 `json:"fX2"`
	Y2         float64 `json:"fY2"`
	BorderMode int     `json:"fBorderMode"`
	BorderSize int     `json:"fBorderSize"`
	Option     string  `json:"fOption"`
}

type tEllipse struct {
	header
	attLine
	attFill
	X1     float64 `json:"fX1"`
	Y1     float64 `json:"fY1"`
	R1     float64 `json:"fR1"`
	R2     float64 `json:"fR2"`
	PhiMin float64 `json:"fPhimin"`
	PhiMax float64 `json:"fPhimax"`
	Theta  float64 `json:"fTheta"`
}

type tPieSlice struct {
	attLine
	attFill
	Value float64 `json:"fValue"`
}

type tPie struct {
	header
	X             float64     `json:"fX"`
	Y             float64     `json:"fY"`
	Radius        float64     `json:"fRadius"`
	AngularOffset float64     `json:"fAngularOffset"`
	Slices        []tPieSlice `json:"fPieSlices"`
}

type tLine struct {
	header
	attLine
	X1 float64 `json:"fX1"`
	Y1 float64 `json:"fY1"`
	X2 float64 `json:"fX2"`
	Y2 float64 `json:"fY2"`
}

type tPolyLine struct {
	header
	attLine
	attFill
	N         int    `json:"fN"`
	LastPoint *int   `json:"fLastPoint"`
	X         Floats `json:"fX"`
	Y         Floats `json:"fY"`
}

type tMarker struct {
	header
	attMarker
	X float64 `json:"fX"`
	Y float64 `json:"fY"`
}

type tPolyMarker struct {
	header
	attMarker
	N int    `json:"fN"`
	X Floats `json:"fX"`
	Y Floats `json:"fY"`
}

type tText struct {
	header
	attText
	X     float64 `json:"fX"`
	Y     float64 `json:"fY"`
	Title string  `json:"fTitle"`
}

type tWebPainting struct {
	header
	Oper string `json:"fOper"`
	Buf  Floats `json:"fBuf"`
}

type tList struct {
	Arr []json.RawMessage `json:"arr"`
}

type tPad struct {
	header
	Primitives *tList `json:"fPrimitives"`
}

// points truncates the coordinates to the first `n` points,
// `n` being ignored when negative.
func points(x, y []float64, n int) ([]float64, []float64) {
	if len(y) < len(x) {
		x = x[:len(y)]
	}
	if n >= 0 && n < len(x) {
		x = x[:n]
	}
	return x, y[:len(x)]
}

// Decode reads a JSON document holding either a single object,
// an array of objects, or a canvas (TCanvas, TPad) whose primitives
// are returned. Objects of unsupported types are returned
// with a nil Drawable.
func Decode(r io.Reader) ([]Object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("rootio: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes is like Decode, for an in-memory document.
func DecodeBytes(data []byte) ([]Object, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("rootio: %w", err)
		}
		var out []Object
		for i, item := range items {
			objs, err := decodeObject(item)
			if err != nil {
				return nil, fmt.Errorf("rootio: item %d: %w", i, err)
			}
			out = append(out, objs...)
		}
		return out, nil
	}
	out, err := decodeObject(data)
	if err != nil {
		return nil, fmt.Errorf("rootio: %w", err)
	}
	return out, nil
}

// decodeObject dispatches on the _typename field. Pads are flattened.
func decodeObject(data []byte) ([]Object, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, err
	}
	if h.TypeName == "" {
		return nil, fmt.Errorf("missing _typename")
	}

	var (
		dr  shapes.Drawable
		err error
	)
	switch h.TypeName {
	case "TCanvas", "TPad", "TCanvasWebSnapshot":
		return decodePad(data)
	case "TBox", "TPave", "TWbox", "TPaveText", "TPaveLabel", "TLegend":
		var v tBox
		err = json.Unmarshal(data, &v)
		dr = shapes.Box{
			X1: v.X1, Y1: v.Y1, X2: v.X2, Y2: v.Y2,
			LineAtt: v.line(), FillAtt: v.fill(),
			BorderMode: v.BorderMode, BorderSize: v.BorderSize,
			Option: v.Option,
		}
	case "TEllipse", "TCrown":
		var v tEllipse
		err = json.Unmarshal(data, &v)
		dr = shapes.Ellipse{
			X1: v.X1, Y1: v.Y1, R1: v.R1, R2: v.R2,
			PhiMin: v.PhiMin, PhiMax: v.PhiMax, Theta: v.Theta,
			Crown:   h.TypeName == "TCrown",
			LineAtt: v.line(), FillAtt: v.fill(),
		}
	case "TPie":
		var v tPie
		err = json.Unmarshal(data, &v)
		pie := shapes.Pie{X: v.X, Y: v.Y, Radius: v.Radius, AngularOffset: v.AngularOffset}
		for _, s := range v.Slices {
			pie.Slices = append(pie.Slices, shapes.PieSlice{Value: s.Value, LineAtt: s.line(), FillAtt: s.fill()})
		}
		dr = pie
	case "TLine", "TArrow":
		var v tLine
		err = json.Unmarshal(data, &v)
		dr = shapes.Line{X1: v.X1, Y1: v.Y1, X2: v.X2, Y2: v.Y2, LineAtt: v.line(), NDC: v.ndc()}
	case "TPolyLine", "TCurlyLine", "TCurlyArc":
		var v tPolyLine
		err = json.Unmarshal(data, &v)
		n := v.N
		if v.LastPoint != nil {
			n = *v.LastPoint + 1
		}
		x, y := points(v.X, v.Y, n)
		dr = shapes.PolyLine{
			X: x, Y: y, LineAtt: v.line(), FillAtt: v.fill(),
			NDC: v.ndc(), Graph: h.TypeName != "TPolyLine",
		}
	case "TMarker":
		var v tMarker
		err = json.Unmarshal(data, &v)
		dr = shapes.Marker{X: v.X, Y: v.Y, MarkerAtt: v.marker(), NDC: v.ndc()}
	case "TPolyMarker":
		var v tPolyMarker
		err = json.Unmarshal(data, &v)
		x, y := points(v.X, v.Y, v.N)
		dr = shapes.PolyMarker{X: x, Y: y, MarkerAtt: v.marker()}
	case "TText", "TLatex", "TMathText":
		var v tText
		err = json.Unmarshal(data, &v)
		kind := shapes.PlainText
		switch h.TypeName {
		case "TLatex":
			kind = shapes.LatexText
		case "TMathText":
			kind = shapes.MathText
		}
		dr = shapes.Text{X: v.X, Y: v.Y, Title: v.Title, TextAtt: v.text(), Kind: kind, NDC: v.ndc()}
	case "TWebPainting":
		var v tWebPainting
		err = json.Unmarshal(data, &v)
		dr = &painting.Painting{Oper: v.Oper, Buf: v.Buf}
	default:
		okpaint.Logger().Warn("rootio: unsupported object", "type", h.TypeName, "name", h.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", h.TypeName, h.Name, err)
	}
	return []Object{{TypeName: h.TypeName, Name: h.Name, Drawable: dr}}, nil
}

func decodePad(data []byte) ([]Object, error) {
	var pad tPad
	if err := json.Unmarshal(data, &pad); err != nil {
		return nil, fmt.Errorf("%s %q: %w", pad.TypeName, pad.Name, err)
	}
	if pad.Primitives == nil {
		return nil, nil
	}
	var out []Object
	for i, item := range pad.Primitives.Arr {
		objs, err := decodeObject(item)
		if err != nil {
			return nil, fmt.Errorf("%s %q: primitive %d: %w", pad.TypeName, pad.Name, i, err)
		}
		out = append(out, objs...)
	}
	return out, nil
}

// Drawables returns the drawable objects, in order.
func Drawables(objs []Object) []shapes.Drawable {
	var out []shapes.Drawable
	for _, o := range objs {
		if o.Drawable != nil {
			out = append(out, o.Drawable)
		}
	}
	return out
}
