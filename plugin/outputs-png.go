package plugin

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	Ps "github.com/maroda/pisano/analysis"
	Pt "github.com/maroda/pisano/types"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Snapshot geometry, matching the interactive window layout.
const (
	pngInitWidth   = 1000
	pngHeight      = 400
	pngMargin      = 100
	pngGraphWidth  = 800
	pngGraphHeight = pngHeight - 2*pngMargin + 70
	pngBaseY       = pngHeight + 60 - pngMargin
	pngScale       = 3
)

var (
	pngWhite       = color.RGBA{255, 255, 255, 255}
	pngBlack       = color.RGBA{0, 0, 0, 255}
	pngGrey        = color.RGBA{100, 100, 100, 255}
	pngSectionEven = color.RGBA{150, 150, 150, 255}
	pngSectionOdd  = color.RGBA{100, 100, 100, 255}
)

// PNGOutput writes the bar graph as a raster snapshot, scaled up 3x.
type PNGOutput struct {
	Dir string
}

func NewPNGOutput(dir string) *PNGOutput {
	return &PNGOutput{Dir: dir}
}

func (po *PNGOutput) WriteAnalysis(a *Pt.Analysis) error {
	if err := os.MkdirAll(po.Dir, 0755); err != nil {
		slog.Error("PNGOutput could not create directory",
			slog.String("dir", po.Dir),
			slog.Any("Error", err))
		return fmt.Errorf("image output directory: %w", err)
	}

	img := po.Render(a)

	// scale up before writing, like the window snapshot did
	big := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx()*pngScale, img.Bounds().Dy()*pngScale))
	draw.NearestNeighbor.Scale(big, big.Bounds(), img, img.Bounds(), draw.Over, nil)

	fname := filepath.Join(po.Dir, fmt.Sprintf("Pisano %d.png", a.Modulus))
	f, err := os.Create(fname)
	if err != nil {
		slog.Error("PNGOutput create failed",
			slog.String("file", fname),
			slog.Any("Error", err))
		return fmt.Errorf("image output create: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, big); err != nil {
		slog.Error("PNGOutput encode failed",
			slog.String("file", fname),
			slog.Any("Error", err))
		return fmt.Errorf("image output encode: %w", err)
	}

	slog.Info("Saved image", slog.String("file", fname))
	return nil
}

// Render paints the 1x bar graph with title and subtitle.
func (po *PNGOutput) Render(a *Pt.Analysis) *image.RGBA {
	n := a.Length

	spacing := 1
	if n > 69 {
		spacing = 0
	}
	barW := (pngGraphWidth - n*spacing + n - 1) / n
	if barW < 1 {
		barW = 1
	}
	graphW := n*(barW+spacing) - spacing

	width := pngInitWidth
	if graphW+100 > width {
		width = graphW + 100
	}

	img := image.NewRGBA(image.Rect(0, 0, width, pngHeight))
	fill(img, pngWhite)

	drawTextCentered(img, Ps.Title(a.Modulus), width/2, 32, pngBlack)
	drawTextCentered(img, Ps.SubtitleFor(a), width/2, 55, pngGrey)

	bars := Ps.Bars(a, pngGraphHeight)
	startX := (width - graphW) / 2

	for i, b := range bars {
		x := startX + i*(barW+spacing)
		y := pngBaseY - b.Height

		c := barColor(b)
		for dy := 0; dy < b.Height; dy++ {
			for dx := 0; dx < barW; dx++ {
				img.SetRGBA(x+dx, y+dy, c)
			}
		}
	}

	return img
}

func barColor(b Pt.Bar) color.RGBA {
	var c color.RGBA
	switch b.Class {
	case Pt.ZeroBar:
		c = pngBlack
	case Pt.SectionEven:
		c = pngSectionEven
	default:
		c = pngSectionOdd
	}

	// tint the mirrored half toward blue
	if b.Mirrored {
		blue := int(c.B) + 51
		if blue > 255 {
			blue = 255
		}
		c.B = uint8(blue)
	}
	return c
}

func fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func drawTextCentered(img *image.RGBA, text string, cx, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
	}
	w := d.MeasureString(text).Ceil()
	d.Dot = fixed.P(cx-w/2, y)
	d.DrawString(text)
}

func (po *PNGOutput) Close() error { return nil }

func (po *PNGOutput) Type() string { return "PNG" }
