package surface

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	draw "golang.org/x/image/draw"
)

// FrameConfig controls how screenshots and zoom crops are encoded for a surface
type FrameConfig struct {
	// Format is "png" or "jpeg"
	Format    string
	Quality   int
	MaxWidth  int
	MaxHeight int
}

// FrameEncoder turns frames into image bytes
type FrameEncoder struct {
	config FrameConfig
}

// NewFrameEncoder creates a frame encoder with the given configuration
func NewFrameEncoder(cfg FrameConfig) *FrameEncoder {
	return &FrameEncoder{config: cfg}
}

// Frame is an encoded image
type Frame struct {
	Data      []byte
	Extension string
	Width     int
	Height    int
}

// Encode downsizes img to the configured bounds and encodes it
func (e *FrameEncoder) Encode(img image.Image) (*Frame, error) {
	if img == nil {
		return nil, fmt.Errorf("no frame to encode")
	}

	img = e.resizeIfNeeded(img)
	data, ext, err := e.encodeImage(img)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	return &Frame{Data: data, Extension: ext, Width: b.Dx(), Height: b.Dy()}, nil
}

// ContentType returns the MIME type of frames produced by this encoder
func (e *FrameEncoder) ContentType() string {
	if e.isJPEG() {
		return "image/jpeg"
	}
	return "image/png"
}

func (e *FrameEncoder) isJPEG() bool {
	return e.config.Format == "jpeg" || e.config.Format == "jpg"
}

// resizeIfNeeded scales img down to fit the max dimensions, keeping aspect
func (e *FrameEncoder) resizeIfNeeded(img image.Image) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	needsResize := false
	newWidth := width
	newHeight := height

	if e.config.MaxWidth > 0 && width > e.config.MaxWidth {
		needsResize = true
		ratio := float64(e.config.MaxWidth) / float64(width)
		newWidth = e.config.MaxWidth
		newHeight = int(float64(height) * ratio)
	}

	if e.config.MaxHeight > 0 && newHeight > e.config.MaxHeight {
		needsResize = true
		ratio := float64(e.config.MaxHeight) / float64(newHeight)
		newHeight = e.config.MaxHeight
		newWidth = int(float64(newWidth) * ratio)
	}

	if !needsResize {
		return img
	}

	resized := image.NewRGBA(image.Rect(0, 0, max(newWidth, 1), max(newHeight, 1)))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)
	return resized
}

func (e *FrameEncoder) encodeImage(img image.Image) ([]byte, string, error) {
	var buf bytes.Buffer

	if e.isJPEG() {
		quality := e.config.Quality
		if quality <= 0 || quality > 100 {
			quality = 75
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, "", fmt.Errorf("failed to encode JPEG: %w", err)
		}
		return buf.Bytes(), "jpg", nil
	}

	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), "png", nil
}

// WriteFile encodes img into dir/name.<ext> and returns the file path
func (e *FrameEncoder) WriteFile(dir, name string, img image.Image) (string, error) {
	frame, err := e.Encode(img)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create frames directory: %w", err)
	}

	path := filepath.Join(dir, name+"."+frame.Extension)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, frame.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write frame: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("failed to publish frame: %w", err)
	}
	return path, nil
}
