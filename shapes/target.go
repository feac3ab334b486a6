// Package shapes translates individual ROOT plot objects into
// drawing calls, in device space.
package shapes

import (
	"context"
	"errors"
	"fmt"

	"github.com/benoitkugler/okpaint"
	"github.com/benoitkugler/okpaint/attr"
	"github.com/benoitkugler/okpaint/coords"
	"github.com/benoitkugler/okpaint/svgdraw"
	"github.com/benoitkugler/okpaint/svgpath"
)

// Target gathers what objects need to be drawn.
type Target struct {
	Mapper  *coords.Mapper
	Backend svgdraw.Backend
	// Colors defaults to the ROOT palette.
	Colors    attr.ColorResolver
	Precision svgpath.Precision
}

// Drawable is implemented by the objects of this package,
// and by painting programs.
// The returned Pending resolves once the object is fully drawn.
type Drawable interface {
	Draw(ctx context.Context, t Target) *svgdraw.Pending
}

var defaultPalette = attr.DefaultPalette()

// Palette returns the color resolver to use.
func (t Target) Palette() attr.ColorResolver {
	if t.Colors == nil {
		return defaultPalette
	}
	return t.Colors
}

// NewBuilder returns an empty path builder using the target precision.
func (t Target) NewBuilder() *svgpath.Builder {
	return &svgpath.Builder{Precision: t.Precision}
}

func (t Target) point(ndc bool, x, y float64) (float64, float64, error) {
	return t.Mapper.Funcs(ndc).Point(x, y)
}

// DrawAll draws the items one after the other. A failing item does not
// prevent the following ones to be drawn: the errors are logged and
// returned together.
func DrawAll(ctx context.Context, t Target, items ...Drawable) error {
	var errs []error
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		if err := item.Draw(ctx, t).Wait(ctx); err != nil {
			okpaint.Logger().Warn("shapes: drawing failed", "index", i, "object", fmt.Sprintf("%T", item), "error", err)
			errs = append(errs, fmt.Errorf("object %d (%T): %w", i, item, err))
		}
	}
	return errors.Join(errs...)
}
