package imagegen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"

	"github.com/fintrend/marketpost/internal/types"
)

const (
	dashboardWidth  = 1280
	dashboardHeight = 960
	marginX         = 48
	lineHeight      = 22
)

var inkColor = color.RGBA{R: 0x20, G: 0x24, B: 0x2a, A: 0xff}

// renderDashboard draws the deterministic fallback image: the run's macro and
// basket quotes as a fixed-width text panel. Absent prices render as
// "unknown", matching the article body. Text is drawn at half size and
// doubled so the bitmap faces stay legible at full resolution.
func renderDashboard(mc types.MarketContext, now time.Time) ([]byte, error) {
	base := image.NewRGBA(image.Rect(0, 0, dashboardWidth/2, dashboardHeight/2))
	draw.Draw(base, base.Bounds(), image.White, image.Point{}, draw.Src)

	y := 48
	drawText(base, inconsolata.Bold8x16, marginX, y, "Market Dashboard")
	y += lineHeight
	drawText(base, inconsolata.Regular8x16, marginX, y, now.Format("2006-01-02 15:04 MST"))
	y += 2 * lineHeight

	y = drawSection(base, "Key Indicators", mc.Macro, 12, y)
	y += lineHeight
	drawSection(base, "Magnificent Seven", mc.Basket, 6, y)

	scaled := image.NewRGBA(image.Rect(0, 0, dashboardWidth, dashboardHeight))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), base, base.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("encode dashboard: %w", err)
	}
	return buf.Bytes(), nil
}

func drawSection(dst *image.RGBA, heading string, quotes []types.Quote, pad, y int) int {
	drawText(dst, inconsolata.Bold8x16, marginX, y, heading)
	y += lineHeight
	for _, q := range quotes {
		line := fmt.Sprintf("%-*s: %s", pad, q.Label, q.DisplayPrice())
		drawText(dst, inconsolata.Regular8x16, marginX+16, y, line)
		y += lineHeight
	}
	return y
}

func drawText(dst *image.RGBA, face font.Face, x, y int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(inkColor),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
