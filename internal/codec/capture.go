package codec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

const base64Marker = ";base64"

// DecodeCapture turns a capture payload (raw base64 or a data URL of the
// form "data:<mime>;base64,<data>") into a canonical RGB pixel buffer.
// Every failure is reported as domain.ErrDecode.
func DecodeCapture(payload string) (*Image, error) {
	data, err := DecodePayload(payload)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, domain.ErrDecode.WithError(fmt.Errorf("decode image: %w", err))
	}

	return FromImage(img), nil
}

// DecodePayload strips an optional "<mime>;base64," header and decodes the
// base64 body into the raw encoded image bytes.
func DecodePayload(payload string) ([]byte, error) {
	body, err := stripHeader(strings.TrimSpace(payload))
	if err != nil {
		return nil, domain.ErrDecode.WithError(err)
	}

	if body == "" {
		return nil, domain.ErrDecode.WithError(errors.New("empty payload"))
	}

	data, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		// Some capture widgets drop the trailing padding.
		raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(body, "="))
		if rawErr != nil {
			return nil, domain.ErrDecode.WithError(fmt.Errorf("decode base64: %w", err))
		}
		data = raw
	}

	return data, nil
}

// DecodedLen is the number of image bytes the base64 body of payload decodes
// to. It does not validate the payload.
func DecodedLen(payload string) int {
	payload = strings.TrimSpace(payload)
	if idx := strings.IndexByte(payload, ','); idx >= 0 {
		payload = payload[idx+1:]
	}
	return base64.RawStdEncoding.DecodedLen(len(strings.TrimRight(payload, "=")))
}

// MIMEType returns the media type declared by a data URL payload, or an
// empty string for raw base64.
func MIMEType(payload string) string {
	payload = strings.TrimSpace(payload)
	idx := strings.IndexByte(payload, ',')
	if idx < 0 {
		return ""
	}
	header := strings.TrimPrefix(payload[:idx], "data:")
	return strings.TrimSuffix(header, base64Marker)
}

func stripHeader(payload string) (string, error) {
	idx := strings.IndexByte(payload, ',')
	if idx < 0 {
		return payload, nil
	}

	header := payload[:idx]
	if !strings.HasSuffix(header, base64Marker) {
		return "", fmt.Errorf("unsupported payload header %q", truncate(header, 64))
	}

	mime := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), base64Marker)
	if !strings.Contains(mime, "/") || strings.ContainsAny(mime, " \t") {
		return "", fmt.Errorf("invalid media type %q", truncate(mime, 64))
	}

	return payload[idx+1:], nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
