package handler

import (
	"encoding/base64"
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

const (
	defaultMaxImageSize = 10 * 1024 * 1024 // 10MB
)

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/bmp":  true,
}

// captureRequest is the body of the recognition endpoints. Kiosks post JSON,
// browser forms post face_data as a field or attach the raw file as "image".
type captureRequest struct {
	FaceData string `json:"face_data" form:"face_data"`
}

// parseBody binds JSON, urlencoded or multipart bodies into out.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 && !isMultipart(c) {
		return domain.ErrValidationFailed.WithError(errors.New("request body is empty"))
	}
	if err := c.BodyParser(out); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}
	return nil
}

// extractFaceData returns the capture payload of the request: the face_data
// field when present, otherwise the uploaded "image" file encoded as base64.
func extractFaceData(c *fiber.Ctx, faceData string, maxImageSize int) (string, error) {
	if strings.TrimSpace(faceData) != "" {
		return faceData, nil
	}

	if !isMultipart(c) {
		return "", domain.ErrValidationFailed.WithError(errors.New("face_data is required"))
	}

	imageBytes, err := extractAndValidateImage(c, maxImageSize)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(imageBytes), nil
}

// extractAndValidateImage extracts and validates the image from the form
func extractAndValidateImage(c *fiber.Ctx, maxImageSize int) ([]byte, error) {
	// 1. Extract file
	file, err := c.FormFile("image")
	if err != nil {
		return nil, domain.ErrValidationFailed.WithError(errors.New("face_data or image is required"))
	}

	// 2. Validate size
	if file.Size == 0 {
		return nil, domain.ErrDecode.WithError(errors.New("image is empty"))
	}

	if maxImageSize > 0 && file.Size > int64(maxImageSize) {
		return nil, domain.ErrPayloadTooLarge
	}

	// 3. Validate Content-Type
	contentType := file.Header.Get("Content-Type")
	if !validImageTypes[contentType] {
		return nil, domain.ErrDecode.WithError(errors.New("unsupported image type: " + contentType))
	}

	// 4. Read image bytes
	f, err := file.Open()
	if err != nil {
		return nil, domain.ErrDecode.WithError(err)
	}
	defer func() {
		_ = f.Close()
	}()

	imageBytes, err := io.ReadAll(f)
	if err != nil {
		return nil, domain.ErrDecode.WithError(err)
	}

	return imageBytes, nil
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}
