package ai

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	"tastepalette/pkg/utils"
)

const (
	MaxImageBytes = 5 * 1024 * 1024
	maxImageEdge  = 2048
)

func ValidateImage(data []byte, mimeType string) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: no file uploaded", utils.ErrValidation)
	}
	if len(data) > MaxImageBytes {
		return fmt.Errorf("%w: file size must be 5MB or less", utils.ErrValidation)
	}
	if !strings.HasPrefix(strings.ToLower(mimeType), "image/") {
		return fmt.Errorf("%w: file must be an image", utils.ErrValidation)
	}
	return nil
}

// PrepareImage downsizes large photos before they are sent to a model.
// Anything the decoder cannot read is passed through untouched.
func PrepareImage(data []byte, mimeType string) ([]byte, string) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return data, mimeType
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxImageEdge && bounds.Dy() <= maxImageEdge {
		return data, mimeType
	}

	resized := imaging.Fit(img, maxImageEdge, maxImageEdge, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return data, mimeType
	}
	return buf.Bytes(), "image/jpeg"
}

func DataURL(data []byte, mimeType string) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}
