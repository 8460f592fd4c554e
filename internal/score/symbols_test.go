package score

import (
	"image"
	"testing"
)

func TestClassifySymbol(t *testing.T) {
	tests := []struct {
		shape    string
		want     SymbolType
		wantOK   bool
	}{
		{"NOTEHEAD_BLACK", Notehead, true},
		{"NOTEHEAD_VOID", Notehead, true},
		{"HEAD", Notehead, true},
		{"SHARP", Sharp, true},
		{"KEY_SHARP", Sharp, true},
		{"FLAT", Flat, true},
		{"KEY_FLAT", Flat, true},
		{"NATURAL", Natural, true},
		{"TREBLE_CLEF", "", false},
		{"BEAM", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.shape, func(t *testing.T) {
			got, ok := ClassifySymbol(tt.shape)
			if ok != tt.wantOK {
				t.Fatalf("ClassifySymbol(%q) ok: got %v, want %v", tt.shape, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ClassifySymbol(%q): got %v, want %v", tt.shape, got, tt.want)
			}
		})
	}
}

func TestClassifySymbol_AccidentalBeforeHead(t *testing.T) {
	// Composite tags containing both an accidental word and "head" must
	// classify as the accidental.
	got, ok := ClassifySymbol("SHARP_HEAD")
	if !ok || got != Sharp {
		t.Errorf("SHARP_HEAD: got %v (ok=%v), want sharp", got, ok)
	}
}

func TestBounds_Rect(t *testing.T) {
	b := Bounds{X: 10, Y: 20, Width: 30, Height: 40}
	want := image.Rect(10, 20, 40, 60)
	if got := b.Rect(); got != want {
		t.Errorf("Rect: got %v, want %v", got, want)
	}
}

func TestBounds_Scale(t *testing.T) {
	tests := []struct {
		name   string
		in     Bounds
		factor int
		want   Bounds
	}{
		{"factor 4", Bounds{400, 400, 200, 200}, 4, Bounds{100, 100, 50, 50}},
		{"factor 1 identity", Bounds{10, 20, 30, 40}, 1, Bounds{10, 20, 30, 40}},
		{"factor 0 identity", Bounds{10, 20, 30, 40}, 0, Bounds{10, 20, 30, 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Scale(tt.factor); got != tt.want {
				t.Errorf("Scale(%d): got %+v, want %+v", tt.factor, got, tt.want)
			}
		})
	}
}

func TestCountByType(t *testing.T) {
	dets := []Detection{
		{Type: Notehead}, {Type: Notehead}, {Type: Notehead},
		{Type: Sharp},
		{Type: Flat}, {Type: Flat},
	}

	counts := CountByType(dets)
	if counts[Notehead] != 3 || counts[Sharp] != 1 || counts[Flat] != 2 {
		t.Errorf("unexpected counts: %v", counts)
	}
	if _, ok := counts[Natural]; ok {
		t.Error("natural should be absent from counts")
	}
}

func TestSymbolType_Label(t *testing.T) {
	labels := map[SymbolType]string{
		Notehead: "o",
		Sharp:    "#",
		Flat:     "b",
		Natural:  "n",
	}
	for sym, want := range labels {
		if got := sym.Label(); got != want {
			t.Errorf("%s label: got %q, want %q", sym, got, want)
		}
	}
}
