package render

import (
	"context"
	"testing"

	"github.com/matzehuels/questcanvas/pkg/errors"
)

func TestConvertWithoutLibrsvg(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	if Available() {
		t.Fatal("Available() = true with an empty PATH")
	}
	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() err = %v, want UNSUPPORTED", err)
	}
}

func TestToPNGRejectsScale(t *testing.T) {
	_, err := ToPNG(context.Background(), []byte("<svg/>"), 0)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ToPNG(scale 0) err = %v, want INVALID_INPUT", err)
	}
}
