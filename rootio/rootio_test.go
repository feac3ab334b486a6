package rootio

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/benoitkugler/okpaint/attr"
	"github.com/benoitkugler/okpaint/coords"
	"github.com/benoitkugler/okpaint/painting"
	"github.com/benoitkugler/okpaint/shapes"
	"github.com/benoitkugler/okpaint/svgdraw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloats(t *testing.T) {
	for _, test := range []struct {
		in  string
		exp Floats
	}{
		{`[1, 2.5, -3]`, Floats{1, 2.5, -3}},
		{`null`, nil},
		{`{"$arr":"Float64","len":4}`, Floats{0, 0, 0, 0}},
		{`{"$arr":"Float64","len":5,"p":1,"v":[1,2]}`, Floats{0, 1, 2, 0, 0}},
		{`{"$arr":"Float64","len":6,"v":[1],"p1":2,"v1":7,"n1":3}`, Floats{1, 0, 7, 7, 7, 0}},
		{`{"$arr":"Int32","len":3,"p":2,"v":4}`, Floats{0, 0, 4}},
	} {
		var f Floats
		require.NoError(t, json.Unmarshal([]byte(test.in), &f), test.in)
		assert.Equal(t, test.exp, f, test.in)
	}

	for _, in := range []string{
		`{"len":2}`,
		`{"$arr":"Float64","len":-1}`,
		`{"$arr":"Float64","len":2,"p":1,"v":[1,2]}`,
		`{"$arr":"Float64","len":2,"v":"a"}`,
		`"text"`,
	} {
		var f Floats
		assert.Error(t, json.Unmarshal([]byte(in), &f), in)
	}
}

const canvasJSON = `{
	"_typename": "TCanvas", "fName": "c1",
	"fPrimitives": {"_typename": "TList", "name": "TList", "arr": [
		{"_typename": "TBox", "fX1": 0.1, "fY1": 0.2, "fX2": 0.3, "fY2": 0.4,
		 "fLineColor": 2, "fLineStyle": 1, "fLineWidth": 3, "fFillColor": 4, "fFillStyle": 1001},
		{"_typename": "TH1F", "fName": "h1"},
		{"_typename": "TPad", "fName": "sub", "fPrimitives": {"_typename": "TList", "arr": [
			{"_typename": "TCrown", "fX1": 0.5, "fY1": 0.5, "fR1": 0.1, "fR2": 0.2, "fPhimin": 0, "fPhimax": 360}
		]}},
		{"_typename": "TLatex", "fBits": 16384, "fX": 0.5, "fY": 0.9, "fTitle": "#alpha",
		 "fTextColor": 1, "fTextFont": 42, "fTextSize": 0.05, "fTextAlign": 22, "fTextAngle": 0},
		{"_typename": "TWebPainting", "fOper": "l2", "fBuf": {"$arr":"Float32","len":4,"p":2,"v":[1,1]}}
	], "opt": ["", "", "", "", ""]}
}`

func TestDecodeCanvas(t *testing.T) {
	objs, err := Decode(strings.NewReader(canvasJSON))
	require.NoError(t, err)
	require.Len(t, objs, 5)

	assert.Equal(t, shapes.Box{
		X1: 0.1, Y1: 0.2, X2: 0.3, Y2: 0.4,
		LineAtt: attr.Line{Color: 2, Style: 1, Width: 3},
		FillAtt: attr.Fill{Color: 4, Style: 1001},
	}, objs[0].Drawable)

	assert.Equal(t, "TH1F", objs[1].TypeName)
	assert.Equal(t, "h1", objs[1].Name)
	assert.Nil(t, objs[1].Drawable)

	crown := objs[2].Drawable.(shapes.Ellipse)
	assert.True(t, crown.Crown)
	assert.Equal(t, 360., crown.PhiMax)

	txt := objs[3].Drawable.(shapes.Text)
	assert.True(t, txt.NDC)
	assert.Equal(t, shapes.LatexText, txt.Kind)
	assert.Equal(t, "#alpha", txt.Title)
	assert.Equal(t, 22, txt.TextAtt.Align)

	assert.Equal(t, &painting.Painting{Oper: "l2", Buf: []float64{0, 0, 1, 1}}, objs[4].Drawable)

	assert.Len(t, Drawables(objs), 4)
}

func TestDecodeArray(t *testing.T) {
	objs, err := DecodeBytes([]byte(`[
		{"_typename": "TPolyLine", "fN": 4, "fLastPoint": 2, "fX": [1,2,3,4], "fY": [5,6,7,8], "fBits": 16384},
		{"_typename": "TGraphPolyline", "fN": 2, "fX": [1,2], "fY": [5,6]},
		{"_typename": "TPolyMarker", "fN": 1, "fX": [1,2], "fY": [3,4], "fMarkerColor": 3, "fMarkerStyle": 20, "fMarkerSize": 1.5},
		{"_typename": "TMarker", "fX": 1, "fY": 2, "fMarkerStyle": 3},
		{"_typename": "TLine", "fX1": 1, "fY1": 2, "fX2": 3, "fY2": 4},
		{"_typename": "TPie", "fX": 0.5, "fY": 0.5, "fRadius": 0.3, "fAngularOffset": 90,
		 "fPieSlices": [{"_typename": "TPieSlice", "fValue": 1, "fFillColor": 2, "fFillStyle": 1001},
		                {"_typename": "TPieSlice", "fValue": 3, "fFillColor": 3, "fFillStyle": 1001}]}
	]`))
	require.NoError(t, err)
	require.Len(t, objs, 6)

	poly := objs[0].Drawable.(shapes.PolyLine)
	assert.Equal(t, []float64{1, 2, 3}, poly.X)
	assert.Equal(t, []float64{5, 6, 7}, poly.Y)
	assert.True(t, poly.NDC)
	assert.False(t, poly.Graph)

	assert.Nil(t, objs[1].Drawable) // not a polyline type

	pm := objs[2].Drawable.(shapes.PolyMarker)
	assert.Equal(t, []float64{1}, pm.X)
	assert.Equal(t, attr.Marker{Color: 3, Style: 20, Size: 1.5}, pm.MarkerAtt)

	assert.Equal(t, shapes.Marker{X: 1, Y: 2, MarkerAtt: attr.Marker{Style: 3}}, objs[3].Drawable)
	assert.Equal(t, shapes.Line{X1: 1, Y1: 2, X2: 3, Y2: 4}, objs[4].Drawable)

	pie := objs[5].Drawable.(shapes.Pie)
	require.Len(t, pie.Slices, 2)
	assert.Equal(t, 3., pie.Slices[1].Value)
	assert.Equal(t, attr.Fill{Color: 3, Style: 1001}, pie.Slices[1].FillAtt)
}

func TestDecodeErrors(t *testing.T) {
	for _, in := range []string{
		`{"fX": 1}`,
		`[{"_typename": "TLine", "fX1": "a"}]`,
		`{"_typename": "TPad", "fPrimitives": {"arr": [{"fX": 1}]}}`,
		`{`,
	} {
		_, err := DecodeBytes([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestParseNumbers(t *testing.T) {
	v, err := ParseNumbers(" 1, 2.5\n-3e2\t4 ")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, -300, 4}, v)

	v, err = ParseNumbers("")
	require.NoError(t, err)
	assert.Empty(t, v)

	_, err = ParseNumbers("1 2a")
	assert.Error(t, err)
	_, err = ParseNumbers("1 ; 2")
	assert.Error(t, err)
}

func TestDecodePaintingXML(t *testing.T) {
	doc := `<?xml version="1.0" encoding="ISO-8859-1"?>
<TWebPainting><fOper>z1:1:1;l2;o1:42:12:11:0;tcaf` + "\xe9" + `</fOper><fBuf>0 0 10 10 5 5</fBuf></TWebPainting>`
	p, err := DecodePaintingXML(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "z1:1:1;l2;o1:42:12:11:0;tcafé", p.Oper)
	assert.Equal(t, []float64{0, 0, 10, 10, 5, 5}, p.Buf)

	// decoded paintings are drawable
	var rec svgdraw.Recorder
	m := coords.NewMapper(100, 100)
	m.X = coords.Axis{Min: 0, Max: 100}
	m.Y = coords.Axis{Min: 0, Max: 100, Reverse: true}
	require.NoError(t, p.Draw(context.Background(), shapes.Target{Mapper: m, Backend: &rec}).Wait(context.Background()))
	calls := rec.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "M0,0L10,10", calls[0].Path)
	assert.Equal(t, "café", calls[1].Text.Text)

	_, err = DecodePaintingXML(strings.NewReader(`<Other/>`))
	assert.Error(t, err)
	_, err = DecodePaintingXML(strings.NewReader(`<TWebPainting><fBuf>a</fBuf></TWebPainting>`))
	assert.Error(t, err)
}
