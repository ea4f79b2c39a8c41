package pixel

import (
	"image"
	"image/color"
	"reflect"
	"testing"
)

func TestCellColorForms(t *testing.T) {
	tests := []struct {
		cell    Cell
		want    color.NRGBA
		wantErr bool
	}{
		{Transparent, color.NRGBA{}, false},
		{"#F00", color.NRGBA{R: 0xff, A: 0xff}, false},
		{"#F008", color.NRGBA{R: 0xff, A: 0x88}, false},
		{"#FF0000", color.NRGBA{R: 0xff, A: 0xff}, false},
		{"#0000FF80", color.NRGBA{B: 0xff, A: 0x80}, false},
		{"rgba(255, 0, 0, 255)", color.NRGBA{R: 0xff, A: 0xff}, false},
		{"rgba(0, 255, 0, 0.5)", color.NRGBA{G: 0xff, A: 128}, false},
		{"rgba(1,2,3)", color.NRGBA{R: 1, G: 2, B: 3, A: 0xff}, false},
		{"#12345", color.NRGBA{}, true},
		{"#GG0000", color.NRGBA{}, true},
		{"red", color.NRGBA{}, true},
		{"rgba(300,0,0,1)", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.cell), func(t *testing.T) {
			got, err := tt.cell.Color()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Color() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Color() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCellOf(t *testing.T) {
	tests := []struct {
		in   color.NRGBA
		want Cell
	}{
		{color.NRGBA{}, Transparent},
		{color.NRGBA{R: 0xff, A: 0xff}, "#FF0000"},
		{color.NRGBA{B: 0xff, A: 0x80}, "#0000FF80"},
	}
	for _, tt := range tests {
		if got := CellOf(tt.in); got != tt.want {
			t.Errorf("CellOf(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToImageExample(t *testing.T) {
	g := Grid{
		{Transparent, "#FF0000"},
		{"#00FF00FF", "#0000FF80"},
	}
	img, err := ToImage(g)
	if err != nil {
		t.Fatalf("ToImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("bounds = %v, want 2x2", b)
	}
	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, color.NRGBA{}},
		{1, 0, color.NRGBA{R: 0xff, A: 0xff}},
		{0, 1, color.NRGBA{G: 0xff, A: 0xff}},
		{1, 1, color.NRGBA{B: 0xff, A: 0x80}},
	}
	for _, tt := range tests {
		if got := img.NRGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	g := Grid{
		{Transparent, "#FF0000", "#ABCDEF"},
		{"#00FF00", Transparent, "#0000FF80"},
	}
	img, err := ToImage(g)
	if err != nil {
		t.Fatalf("ToImage: %v", err)
	}
	back := FromImage(img)
	if !reflect.DeepEqual(back, g) {
		t.Errorf("FromImage(ToImage(g)) = %v, want %v", back, g)
	}
}

func TestToImageRagged(t *testing.T) {
	if _, err := ToImage(Grid{{Transparent}, {}}); err == nil {
		t.Error("ToImage on ragged grid should fail")
	}
}

func TestFromImageResized(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 0xff, A: 0xff})
		}
	}
	g := FromImageResized(src, 16)
	if w, h := g.Size(); w != 16 || h != 16 {
		t.Fatalf("size = %dx%d, want 16x16", w, h)
	}
	// Already at target size: no resampling, exact passthrough.
	same := FromImageResized(src, 32)
	if !reflect.DeepEqual(same, FromImage(src)) {
		t.Error("FromImageResized at native size should equal FromImage")
	}
}
