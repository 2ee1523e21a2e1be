// Package heatmap renders a per-plot NDVI field as a color-mapped PNG. Cells
// not covered by any plot stay blank, and row 0 sits at the bottom of the
// image so the heatmap reads like field coordinates.
package heatmap

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"fieldspectra/internal/analysis"
)

const (
	marginTop    = 36
	marginLeft   = 16
	marginBottom = 24
	legendWidth  = 78
	gridTarget   = 720
	minCell      = 3
	maxCell      = 40
)

var (
	background = color.RGBA{255, 255, 255, 255}
	textColor  = color.RGBA{40, 40, 40, 255}
)

// Render draws the NDVI grid with title and legend. Plots outside the
// declared dimensions are ignored; cells without a plot stay blank.
func Render(results []analysis.PlotIndex, rows, cols int) (*image.RGBA, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("render %dx%d heatmap: non-positive dimensions", rows, cols)
	}

	// One pixel per cell, blank until a plot covers it. Row 0 maps to the
	// bottom scanline.
	base := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			base.SetRGBA(x, y, Blank)
		}
	}
	for _, p := range results {
		if p.Row < 0 || p.Row >= rows || p.Col < 0 || p.Col >= cols {
			continue
		}
		base.SetRGBA(p.Col, rows-1-p.Row, colorAt(p.NDVI))
	}

	cell := gridTarget / max(rows, cols)
	if cell < minCell {
		cell = minCell
	}
	if cell > maxCell {
		cell = maxCell
	}
	gridW, gridH := cols*cell, rows*cell

	W := marginLeft + gridW + legendWidth
	H := marginTop + gridH + marginBottom
	img := image.NewRGBA(image.Rect(0, 0, W, H))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	gridRect := image.Rect(marginLeft, marginTop, marginLeft+gridW, marginTop+gridH)
	draw.NearestNeighbor.Scale(img, gridRect, base, base.Bounds(), draw.Src, nil)

	drawText(img, "Synthetic Field NDVI", marginLeft, 22)
	drawLegend(img, gridRect)
	drawText(img, fmt.Sprintf("%dx%d plots", rows, cols), marginLeft, marginTop+gridH+16)

	return img, nil
}

// drawLegend paints a vertical color bar to the right of the grid with the
// scale endpoints labeled.
func drawLegend(img *image.RGBA, gridRect image.Rectangle) {
	barX := gridRect.Max.X + 18
	barW := 14
	barTop := gridRect.Min.Y
	barH := gridRect.Dy()
	if barH < 40 {
		barH = 40
	}

	for i := 0; i < barH; i++ {
		// Top of the bar is the scale maximum.
		v := ScaleMax - (ScaleMax-ScaleMin)*float64(i)/float64(barH-1)
		c := colorAt(v)
		for x := barX; x < barX+barW; x++ {
			img.SetRGBA(x, barTop+i, c)
		}
	}

	drawText(img, fmt.Sprintf("%.1f", ScaleMax), barX+barW+4, barTop+10)
	drawText(img, fmt.Sprintf("%.1f", ScaleMin), barX+barW+4, barTop+barH)
	drawText(img, "NDVI", barX-4, barTop-8)
}

func drawText(img *image.RGBA, text string, x, y int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// EncodePNG renders the heatmap and writes it as PNG.
func EncodePNG(w io.Writer, results []analysis.PlotIndex, rows, cols int) error {
	img, err := Render(results, rows, cols)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode heatmap: %w", err)
	}
	return nil
}

// WriteFile renders the heatmap to a PNG file, creating parent directories
// as needed.
func WriteFile(path string, results []analysis.PlotIndex, rows, cols int) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create heatmap dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create heatmap: %w", err)
	}
	defer f.Close()

	if err := EncodePNG(f, results, rows, cols); err != nil {
		return err
	}
	return f.Close()
}
