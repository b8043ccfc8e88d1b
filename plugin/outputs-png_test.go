package plugin

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestPNGOutput(t *testing.T) {
	dir := t.TempDir()
	po := NewPNGOutput(dir)
	a := analyzeForTest(t, 13)

	if err := po.WriteAnalysis(a); err != nil {
		t.Fatalf("WriteAnalysis failed: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "Pisano 13.png"))
	if err != nil {
		t.Fatalf("image missing: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("could not decode image: %v", err)
	}

	t.Run("Snapshot is scaled 3x", func(t *testing.T) {
		b := img.Bounds()
		if b.Dx() != pngInitWidth*pngScale {
			t.Errorf("width = %d, want %d", b.Dx(), pngInitWidth*pngScale)
		}
		if b.Dy() != pngHeight*pngScale {
			t.Errorf("height = %d, want %d", b.Dy(), pngHeight*pngScale)
		}
	})
}

func TestPNGRender(t *testing.T) {
	po := NewPNGOutput(t.TempDir())
	a := analyzeForTest(t, 13)
	img := po.Render(a)

	t.Run("Keeps the minimum window width", func(t *testing.T) {
		if img.Bounds().Dx() != pngInitWidth {
			t.Errorf("width = %d, want %d", img.Bounds().Dx(), pngInitWidth)
		}
	})

	t.Run("Background is white", func(t *testing.T) {
		r, g, b, _ := img.At(0, 0).RGBA()
		if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
			t.Errorf("corner pixel = %d,%d,%d, want white", r>>8, g>>8, b>>8)
		}
	})
}
