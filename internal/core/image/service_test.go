package image

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"pantry-chef/internal/pkg/common"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h)), nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeNormalizesToJPEG(t *testing.T) {
	s := NewService(1 << 20)
	payload := base64.StdEncoding.EncodeToString(encodePNG(t, 40, 30))

	for _, in := range []string{
		"data:image/png;base64," + payload,
		payload,
		" " + payload[:20] + "\n" + payload[20:],
	} {
		out, err := s.Decode(in)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
		if err != nil {
			t.Fatalf("output not decodable: %v", err)
		}
		if format != "jpeg" || cfg.Width != 40 || cfg.Height != 30 {
			t.Errorf("output = %s %dx%d", format, cfg.Width, cfg.Height)
		}
	}
}

func TestDecodeKeepsSmallJPEG(t *testing.T) {
	raw := encodeJPEG(t, 20, 20)
	out, err := NewService(1<<20).Decode(base64.RawURLEncoding.EncodeToString(raw))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, raw) {
		t.Error("small JPEG should pass through unchanged")
	}
}

func TestDecodeDownscales(t *testing.T) {
	s := NewService(1 << 24)
	s.maxDimension = 100
	out, err := s.Decode(base64.StdEncoding.EncodeToString(encodePNG(t, 400, 50)))
	if err != nil {
		t.Fatal(err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 100 || cfg.Height != 12 {
		t.Errorf("downscaled to %dx%d, want 100x12", cfg.Width, cfg.Height)
	}
}

func TestDecodeErrors(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString(encodePNG(t, 10, 10))
	tests := []struct {
		name    string
		max     int64
		in      string
		wantErr error
	}{
		{"not base64", 1 << 20, "%%%not-base64%%%", common.ErrInvalidImage},
		{"empty", 1 << 20, "   ", common.ErrInvalidImage},
		{"data uri without base64", 1 << 20, "data:image/png," + payload, common.ErrInvalidImage},
		{"not an image", 1 << 20, base64.StdEncoding.EncodeToString([]byte("hello, pantry")), common.ErrInvalidImage},
		{"too large", 16, payload, common.ErrInvalidImageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(tt.max).Decode(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if ce := common.AsCustomError(err); ce == nil || ce.Status != 400 {
				t.Errorf("want a 400 CustomError, got %v", err)
			}
		})
	}
}
