package image

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"pantry-chef/internal/pkg/common"
)

const (
	// DefaultMaxDimension keeps uploads well inside the labeling provider's limits.
	DefaultMaxDimension = 1600
	jpegQuality         = 85
)

// Service decodes uploaded photos and normalizes them to JPEG.
type Service struct {
	maxSizeBytes int64
	maxDimension int
}

func NewService(maxSizeBytes int64) *Service {
	return &Service{
		maxSizeBytes: maxSizeBytes,
		maxDimension: DefaultMaxDimension,
	}
}

// Decode turns a data URI or raw base64 string into JPEG bytes. Oversized payloads fail
// with ErrInvalidImageSize, anything undecodable with ErrInvalidImage.
func (s *Service) Decode(imageData string) ([]byte, error) {
	raw, err := decodeBase64(imageData)
	if err != nil {
		return nil, common.ErrInvalidImage.Wrap(err)
	}
	if s.maxSizeBytes > 0 && int64(len(raw)) > s.maxSizeBytes {
		return nil, common.ErrInvalidImageSize.Wrap(
			fmt.Errorf("%d bytes exceeds maximum limit of %d bytes", len(raw), s.maxSizeBytes))
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, common.ErrInvalidImage.Wrap(fmt.Errorf("failed to decode image: %w", err))
	}
	if !isSupportedFormat(format) {
		return nil, common.ErrInvalidImage.Wrap(fmt.Errorf("unsupported image format: %s", format))
	}

	resized := s.downscale(img)
	if format == "jpeg" && resized == img {
		return raw, nil
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, common.ErrInvalidImage.Wrap(fmt.Errorf("failed to encode image as JPEG: %w", err))
	}
	return buf.Bytes(), nil
}

// downscale shrinks img so its longest side is at most maxDimension. Smaller images are
// returned unchanged.
func (s *Service) downscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if s.maxDimension <= 0 || longest <= s.maxDimension {
		return img
	}

	nw := w * s.maxDimension / longest
	nh := h * s.maxDimension / longest
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// decodeBase64 accepts "data:image/...;base64,<payload>" or a bare payload in standard or
// URL-safe alphabet, padded or not.
func decodeBase64(data string) ([]byte, error) {
	data = strings.TrimSpace(data)
	if strings.HasPrefix(data, "data:") {
		comma := strings.IndexByte(data, ',')
		if comma < 0 {
			return nil, fmt.Errorf("invalid data URI")
		}
		if !strings.Contains(data[:comma], ";base64") {
			return nil, fmt.Errorf("data URI is not base64 encoded")
		}
		data = data[comma+1:]
	}
	data = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, data)
	if data == "" {
		return nil, fmt.Errorf("empty image payload")
	}

	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if out, err := enc.DecodeString(data); err == nil {
			return out, nil
		}
	}
	return nil, fmt.Errorf("failed to decode base64 data")
}

func isSupportedFormat(format string) bool {
	switch format {
	case "jpeg", "png", "gif", "webp":
		return true
	}
	return false
}
