package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// ImageResult is an operation's output raster encoded as base64 PNG.
type ImageResult struct {
	// Width of the output image in pixels.
	Width int `json:"width"`

	// Height of the output image in pixels.
	Height int `json:"height"`

	// ImageBase64 is the output encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`

	// OutputPath is set when the result was also written to disk.
	OutputPath string `json:"output_path,omitempty"`
}

// Encode renders buf as a base64 PNG result.
func Encode(buf *pixel.Buffer) (*ImageResult, error) {
	var out bytes.Buffer
	if err := imgio.PNGEncoder()(&out, ToImage(buf)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &ImageResult{
		Width:       buf.Width(),
		Height:      buf.Height(),
		ImageBase64: base64.StdEncoding.EncodeToString(out.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// EncodeAndSave encodes buf and, when path is not empty, also writes it to path.
func EncodeAndSave(buf *pixel.Buffer, path string) (*ImageResult, error) {
	res, err := Encode(buf)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := Save(path, buf); err != nil {
			return nil, err
		}
		res.OutputPath = path
	}
	return res, nil
}

// Save writes buf to path. The format follows the extension: .png, .jpg,
// .jpeg or .bmp. JPEG drops the alpha channel.
func Save(path string, buf *pixel.Buffer) error {
	enc, err := encoderFor(path)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, ToImage(buf), enc); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

func encoderFor(path string) (imgio.Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(95), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (use .png, .jpg or .bmp)", filepath.Ext(path))
	}
}
