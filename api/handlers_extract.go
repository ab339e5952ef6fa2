package api

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net"
	"net/http"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/color-studio/api/colors"
	"github.com/color-studio/api/models"
)

const (
	defaultMaxUploadBytes = 10 << 20
	defaultMaxImagePixels = 4096 * 4096
)

// decodeError maps a codec failure onto ErrInvalidFormat
func decodeError(format string, err error) error {
	if errors.Is(err, image.ErrFormat) {
		return fmt.Errorf("%w: unsupported image format", colors.ErrInvalidFormat)
	}
	return fmt.Errorf("%w: decoding %s image: %v", colors.ErrInvalidFormat, format, err)
}

// decodeUpload reads the multipart "image" field and decodes it with any of
// the registered codecs: png, jpeg, gif, bmp or webp. The header is checked
// first so oversized images are refused before their pixels are allocated.
func (app *Application) decodeUpload(w http.ResponseWriter, r *http.Request) (image.Image, error) {
	limit := app.Config.MaxUploadBytes
	if limit <= 0 {
		limit = defaultMaxUploadBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		return nil, fmt.Errorf("error reading upload: %v", err)
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		return nil, fmt.Errorf("%w: image field is required", colors.ErrEmptyInput)
	}
	defer file.Close()

	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		return nil, decodeError(format, err)
	}

	maxPixels := app.Config.MaxImagePixels
	if maxPixels <= 0 {
		maxPixels = defaultMaxImagePixels
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > maxPixels {
		return nil, fmt.Errorf("%w: %dx%d image exceeds %d pixels", colors.ErrInvalidFormat, cfg.Width, cfg.Height, maxPixels)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("error rewinding upload: %v", err)
	}

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, decodeError(format, err)
	}
	return img, nil
}

// clientKey identifies an anonymous uploader. Clients may send their own key;
// otherwise the remote host is used.
func clientKey(r *http.Request) string {
	if key := r.Header.Get("X-Client-Key"); key != "" {
		return key
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func swatchResponse(swatches []colors.Swatch) models.ExtractResponse {
	response := models.ExtractResponse{Colors: make([]models.SwatchResponse, len(swatches))}
	for i, sw := range swatches {
		response.Colors[i] = models.SwatchResponse{Hex: sw.Color.Hex(), Count: sw.Count}
	}
	return response
}

// extractFunc runs one extraction with a last-submitted-wins coordinator
type extractFunc func(ctx context.Context, pix []byte) ([]colors.Swatch, error)

// runExtraction decodes the upload and runs it through extract. It writes the
// error response itself and reports whether the caller should continue.
func (app *Application) runExtraction(w http.ResponseWriter, r *http.Request, extract extractFunc) ([]colors.Swatch, bool) {
	img, err := app.decodeUpload(w, r)
	if err != nil {
		if errors.Is(err, colors.ErrInvalidFormat) || errors.Is(err, colors.ErrEmptyInput) {
			app.colorError(w, r, err)
		} else {
			app.badRequest(w, r, err)
		}
		return nil, false
	}

	swatches, err := extract(r.Context(), colors.RGBAPixels(img))
	if err != nil {
		app.colorError(w, r, err)
		return nil, false
	}
	return swatches, true
}

// POST /v1/extract - multipart "image"; only the newest upload per client
// gets a result
func (app *Application) extractPalette(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	key := clientKey(r)
	swatches, ok := app.runExtraction(w, r, func(ctx context.Context, pix []byte) ([]colors.Swatch, error) {
		return app.Extractions.Run(ctx, key, pix)
	})
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, swatchResponse(swatches))
}
