// Package imaging normalizes uploaded photos before they are stored.
// All accepted images are downscaled to a bounded size and re-encoded
// as JPEG so the database never holds oversized or exotic formats.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

const (
	// MaxUploadBytes caps the raw upload size before decoding.
	MaxUploadBytes = 10 << 20

	// PhotoMaxDim bounds post photos, which are shown full-width.
	PhotoMaxDim = 1280

	// ProofMaxDim bounds claim proof images, which are only reviewed
	// inline and can be smaller.
	ProofMaxDim = 800

	jpegQuality = 85
)

// acceptedMIME lists the input formats we decode. Output is always JPEG.
var acceptedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Result holds a normalized image ready for storage.
type Result struct {
	Data []byte
	MIME string
}

// ProcessPhoto normalizes a post photo.
func ProcessPhoto(r io.Reader) (*Result, error) {
	return process(r, PhotoMaxDim)
}

// ProcessProof normalizes a claim proof image.
func ProcessProof(r io.Reader) (*Result, error) {
	return process(r, ProofMaxDim)
}

func process(r io.Reader, maxDim int) (*Result, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, fmt.Errorf("image exceeds %d byte limit", MaxUploadBytes)
	}

	// Sniff the real MIME type from the bytes, ignoring client headers.
	detected := http.DetectContentType(data)
	if !acceptedMIME[detected] {
		return nil, fmt.Errorf("unsupported image format %s (accepted: JPEG, PNG, WebP)", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = fit(img, maxDim)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}

	return &Result{Data: buf.Bytes(), MIME: "image/jpeg"}, nil
}

// fit scales img down so neither dimension exceeds maxDim, preserving
// aspect ratio. Images already within bounds are returned unchanged.
func fit(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := maxDim, maxDim
	if w > h {
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func init() {
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
	image.RegisterFormat("webp", "RIFF????WEBPVP8", webp.Decode, webp.DecodeConfig)
}
