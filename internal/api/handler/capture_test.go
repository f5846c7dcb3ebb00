package handler

import (
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFaceData_ImageSizeLimit(t *testing.T) {
	const limit = 8

	tests := []struct {
		name       string
		size       int
		wantStatus int
	}{
		{name: "at limit", size: limit, wantStatus: 200},
		{name: "over limit", size: limit + 1, wantStatus: 413},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := createTestApp()
			app.Post("/capture", func(c *fiber.Ctx) error {
				faceData, err := extractFaceData(c, "", limit)
				if err != nil {
					return err
				}
				return c.SendString(faceData)
			})

			req, err := createMultipartRequest("POST", "/capture", nil, []byte(strings.Repeat("x", tt.size)), "image/jpeg")
			require.NoError(t, err)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestExtractFaceData(t *testing.T) {
	imageBytes := []byte("fake-jpeg-bytes")

	multipartReq := func(t *testing.T, fields map[string]string, image []byte, contentType string) *http.Request {
		req, err := createMultipartRequest("POST", "/capture", fields, image, contentType)
		require.NoError(t, err)
		return req
	}

	tests := []struct {
		name       string
		makeReq    func(t *testing.T) *http.Request
		wantStatus int
		wantBody   string
	}{
		{
			name: "json face_data",
			makeReq: func(t *testing.T) *http.Request {
				return jsonRequest("POST", "/capture", map[string]string{"face_data": "data:image/png;base64,AAAA"})
			},
			wantStatus: 200,
			wantBody:   "data:image/png;base64,AAAA",
		},
		{
			name: "form face_data",
			makeReq: func(t *testing.T) *http.Request {
				req := httptest.NewRequest("POST", "/capture", strings.NewReader("face_data=QUJD"))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				return req
			},
			wantStatus: 200,
			wantBody:   "QUJD",
		},
		{
			name: "multipart image file is base64 encoded",
			makeReq: func(t *testing.T) *http.Request {
				return multipartReq(t, nil, imageBytes, "image/jpeg")
			},
			wantStatus: 200,
			wantBody:   base64.StdEncoding.EncodeToString(imageBytes),
		},
		{
			name: "multipart face_data field wins over file",
			makeReq: func(t *testing.T) *http.Request {
				return multipartReq(t, map[string]string{"face_data": "QUJD"}, imageBytes, "image/jpeg")
			},
			wantStatus: 200,
			wantBody:   "QUJD",
		},
		{
			name: "multipart unsupported type",
			makeReq: func(t *testing.T) *http.Request {
				return multipartReq(t, nil, imageBytes, "image/gif")
			},
			wantStatus: 422,
			wantBody:   "DECODE_ERROR",
		},
		{
			name: "multipart empty file",
			makeReq: func(t *testing.T) *http.Request {
				return multipartReq(t, nil, []byte{}, "image/jpeg")
			},
			wantStatus: 422,
			wantBody:   "DECODE_ERROR",
		},
		{
			name: "multipart without image",
			makeReq: func(t *testing.T) *http.Request {
				return multipartReq(t, map[string]string{"other": "x"}, nil, "")
			},
			wantStatus: 422,
			wantBody:   "VALIDATION_FAILED",
		},
		{
			name: "json without face_data",
			makeReq: func(t *testing.T) *http.Request {
				return jsonRequest("POST", "/capture", map[string]string{})
			},
			wantStatus: 422,
			wantBody:   "face_data is required",
		},
		{
			name: "empty body",
			makeReq: func(t *testing.T) *http.Request {
				return httptest.NewRequest("POST", "/capture", nil)
			},
			wantStatus: 422,
			wantBody:   "request body is empty",
		},
		{
			name: "malformed json",
			makeReq: func(t *testing.T) *http.Request {
				req := httptest.NewRequest("POST", "/capture", strings.NewReader("{not json"))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
			wantStatus: 400,
			wantBody:   "BAD_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := createTestApp()
			app.Post("/capture", func(c *fiber.Ctx) error {
				var req captureRequest
				if err := parseBody(c, &req); err != nil {
					return err
				}
				faceData, err := extractFaceData(c, req.FaceData, defaultMaxImageSize)
				if err != nil {
					return err
				}
				return c.SendString(faceData)
			})

			resp, err := app.Test(tt.makeReq(t))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tt.wantBody)
		})
	}
}
