package svgpath

import (
	"errors"
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
)

var errParamMismatch = errors.New("svgpath: param mismatch")

// pathCursor tracks the state while compiling path data.
type pathCursor struct {
	path           Path
	placeX, placeY float64 // current point
	startX, startY float64 // start of the sub-path
	cntlX, cntlY   float64 // last control point, for S and T
	lastKey        byte
	inPath         bool
}

func skipCommaWhitespace(d []byte) int {
	i := 0
	for i < len(d) && (d[i] == ' ' || d[i] == ',' || d[i] == '\n' || d[i] == '\r' || d[i] == '\t') {
		i++
	}
	return i
}

// readNumbers reads exactly len(out) numbers from d, returning
// the number of bytes consumed.
func readNumbers(d []byte, out []float64) (int, error) {
	i := 0
	for k := range out {
		i += skipCommaWhitespace(d[i:])
		f, n := strconv.ParseFloat(d[i:])
		if n == 0 {
			return i, errParamMismatch
		}
		out[k] = f
		i += n
	}
	return i, nil
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's',
		'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

var argCounts = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7, 'Z': 0,
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// Parse compiles SVG path data into absolute operations.
// Relative commands, shorthands and arcs are resolved: the
// result only contains MoveTo, LineTo, QuadTo, CubicTo and Close.
func Parse(d string) (Path, error) {
	var c pathCursor
	if err := c.compile([]byte(d)); err != nil {
		return c.path, err
	}
	return c.path, nil
}

func (c *pathCursor) compile(d []byte) error {
	var (
		key  byte
		args [7]float64
	)
	i := skipCommaWhitespace(d)
	for i < len(d) {
		if isCommand(d[i]) {
			key = d[i]
			i++
		} else if key == 0 || key == 'Z' || key == 'z' {
			return fmt.Errorf("svgpath: unexpected character %q at %d", d[i], i)
		}
		// else: implicit repetition of the previous command

		n := argCounts[upper(key)]
		read, err := readNumbers(d[i:], args[:n])
		if err != nil {
			return fmt.Errorf("svgpath: command %c at %d: %w", key, i, err)
		}
		i += read
		c.addSeg(key, args[:n])

		// after a move, implicit repetitions are line segments
		if key == 'M' {
			key = 'L'
		} else if key == 'm' {
			key = 'l'
		}
		i += skipCommaWhitespace(d[i:])
	}
	if c.inPath {
		c.path.Stop(false)
	}
	return nil
}

func (c *pathCursor) reflectControl(quad bool) (float64, float64) {
	prev := upper(c.lastKey)
	if (quad && (prev == 'Q' || prev == 'T')) || (!quad && (prev == 'C' || prev == 'S')) {
		return 2*c.placeX - c.cntlX, 2*c.placeY - c.cntlY
	}
	return c.placeX, c.placeY
}

func (c *pathCursor) addSeg(key byte, pts []float64) {
	rel := key >= 'a'
	if rel {
		for k := range pts {
			switch upper(key) {
			case 'H':
				pts[k] += c.placeX
			case 'V':
				pts[k] += c.placeY
			case 'A':
				if k == 5 {
					pts[k] += c.placeX
				} else if k == 6 {
					pts[k] += c.placeY
				}
			default:
				if k%2 == 0 {
					pts[k] += c.placeX
				} else {
					pts[k] += c.placeY
				}
			}
		}
	}

	switch upper(key) {
	case 'M':
		c.placeX, c.placeY = pts[0], pts[1]
		c.startX, c.startY = c.placeX, c.placeY
		c.path.Start(toFixedP(c.placeX, c.placeY))
		c.inPath = true
	case 'Z':
		c.path.Stop(true)
		c.placeX, c.placeY = c.startX, c.startY
	case 'L':
		c.lineTo(pts[0], pts[1])
	case 'H':
		c.lineTo(pts[0], c.placeY)
	case 'V':
		c.lineTo(c.placeX, pts[0])
	case 'Q':
		c.ensureStart()
		c.cntlX, c.cntlY = pts[0], pts[1]
		c.placeX, c.placeY = pts[2], pts[3]
		c.path.QuadBezier(toFixedP(pts[0], pts[1]), toFixedP(pts[2], pts[3]))
	case 'T':
		c.ensureStart()
		c.cntlX, c.cntlY = c.reflectControl(true)
		c.placeX, c.placeY = pts[0], pts[1]
		c.path.QuadBezier(toFixedP(c.cntlX, c.cntlY), toFixedP(pts[0], pts[1]))
	case 'C':
		c.ensureStart()
		c.cntlX, c.cntlY = pts[2], pts[3]
		c.placeX, c.placeY = pts[4], pts[5]
		c.path.CubeBezier(toFixedP(pts[0], pts[1]), toFixedP(pts[2], pts[3]), toFixedP(pts[4], pts[5]))
	case 'S':
		c.ensureStart()
		x1, y1 := c.reflectControl(false)
		c.cntlX, c.cntlY = pts[0], pts[1]
		c.placeX, c.placeY = pts[2], pts[3]
		c.path.CubeBezier(toFixedP(x1, y1), toFixedP(pts[0], pts[1]), toFixedP(pts[2], pts[3]))
	case 'A':
		c.ensureStart()
		c.arcTo(pts)
	}
	c.lastKey = key
}

func (c *pathCursor) ensureStart() {
	if !c.inPath {
		c.path.Start(toFixedP(c.placeX, c.placeY))
		c.startX, c.startY = c.placeX, c.placeY
		c.inPath = true
	}
}

func (c *pathCursor) lineTo(x, y float64) {
	c.ensureStart()
	c.placeX, c.placeY = x, y
	c.path.Line(toFixedP(x, y))
}

func (c *pathCursor) arcTo(points []float64) {
	if points[5] == c.placeX && points[6] == c.placeY {
		return // omitted
	}
	if points[0] == 0 || points[1] == 0 {
		c.lineTo(points[5], points[6])
		return
	}
	c.ensureStart()
	c.path.addArc(Arc{
		X0: c.placeX, Y0: c.placeY,
		Rx: points[0], Ry: points[1], Rotation: points[2],
		Large: points[3] != 0, Sweep: points[4] != 0,
		X: points[5], Y: points[6],
	})
	c.placeX, c.placeY = points[5], points[6]
}
