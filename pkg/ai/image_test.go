package ai

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"tastepalette/pkg/utils"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 120, B: 40, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	if err := ValidateImage([]byte{1}, "image/png"); err != nil {
		t.Fatalf("expected valid image, got %v", err)
	}

	cases := map[string]struct {
		data []byte
		mime string
	}{
		"empty":     {nil, "image/png"},
		"too large": {make([]byte, MaxImageBytes+1), "image/png"},
		"not image": {[]byte("%PDF"), "application/pdf"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if err := ValidateImage(tc.data, tc.mime); !errors.Is(err, utils.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestValidateImageAtExactLimit(t *testing.T) {
	if err := ValidateImage(make([]byte, MaxImageBytes), "image/jpeg"); err != nil {
		t.Fatalf("5MB exactly should pass, got %v", err)
	}
}

func TestPrepareImageDownscalesLargePhotos(t *testing.T) {
	data := encodePNG(t, 3000, 1000)

	out, mime := PrepareImage(data, "image/png")
	if mime != "image/jpeg" {
		t.Fatalf("expected jpeg output, got %s", mime)
	}

	img, err := imaging.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() != 2048 {
		t.Fatalf("expected width 2048, got %d", img.Bounds().Dx())
	}
}

func TestPrepareImageLeavesSmallAndUnknownInputs(t *testing.T) {
	small := encodePNG(t, 400, 300)
	out, mime := PrepareImage(small, "image/png")
	if !bytes.Equal(out, small) || mime != "image/png" {
		t.Fatalf("small image should pass through")
	}

	junk := []byte("not an image")
	out, mime = PrepareImage(junk, "image/heic")
	if !bytes.Equal(out, junk) || mime != "image/heic" {
		t.Fatalf("undecodable image should pass through")
	}
}
