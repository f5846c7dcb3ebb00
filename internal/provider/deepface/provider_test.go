package deepface

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/ponto/internal/codec"
	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/provider"
)

func TestExtractorImplementsInterface(t *testing.T) {
	var _ provider.Extractor = (*Extractor)(nil)
}

func TestNewExtractor(t *testing.T) {
	t.Run("known model", func(t *testing.T) {
		e, err := NewExtractor(DefaultConfig())
		require.NoError(t, err)
		require.NotNil(t, e.client)
		assert.Equal(t, 128, e.Dimension())
		assert.Equal(t, codec.RGB, e.ChannelOrder())
	})

	t.Run("facenet512", func(t *testing.T) {
		config := DefaultConfig()
		config.Model = "Facenet512"
		e, err := NewExtractor(config)
		require.NoError(t, err)
		assert.Equal(t, 512, e.Dimension())
	})

	t.Run("unknown model", func(t *testing.T) {
		config := DefaultConfig()
		config.Model = "NotAModel"
		_, err := NewExtractor(config)
		assert.ErrorIs(t, err, ErrUnknownModel)
	})
}

func testImage() *codec.Image {
	return &codec.Image{
		Width:  2,
		Height: 1,
		Order:  codec.RGB,
		Pix:    []byte{255, 0, 0, 0, 0, 255},
	}
}

func TestExtractor_Extract(t *testing.T) {
	tests := []struct {
		name         string
		serverStatus int
		serverBody   interface{}
		wantCount    int
		wantErr      error
		wantAnyErr   bool
	}{
		{
			name:         "single face",
			serverStatus: http.StatusOK,
			serverBody: RepresentResponse{Results: []RepresentResult{
				{Embedding: make([]float64, 128), FacialArea: FacialArea{X: 10, Y: 20, W: 200, H: 200}, FaceConfidence: 0.93},
			}},
			wantCount: 1,
		},
		{
			name:         "multiple faces keep detector order",
			serverStatus: http.StatusOK,
			serverBody: RepresentResponse{Results: []RepresentResult{
				{Embedding: make([]float64, 128), FacialArea: FacialArea{X: 10, Y: 10, W: 100, H: 100}},
				{Embedding: make([]float64, 128), FacialArea: FacialArea{X: 200, Y: 10, W: 150, H: 150}},
			}},
			wantCount: 2,
		},
		{
			name:         "enforce_detection rejection means zero faces",
			serverStatus: http.StatusBadRequest,
			serverBody:   map[string]string{"error": "Face could not be detected in numpy array."},
			wantCount:    0,
		},
		{
			name:         "other client error is returned",
			serverStatus: http.StatusBadRequest,
			serverBody:   map[string]string{"error": "unsupported model"},
			wantAnyErr:   true,
		},
		{
			name:         "server error maps to extractor unavailable",
			serverStatus: http.StatusInternalServerError,
			serverBody:   map[string]string{"error": "boom"},
			wantErr:      domain.ErrExtractorUnavailable,
		},
		{
			name:         "wrong embedding size",
			serverStatus: http.StatusOK,
			serverBody: RepresentResponse{Results: []RepresentResult{
				{Embedding: make([]float64, 512), FacialArea: FacialArea{W: 100, H: 100}},
			}},
			wantErr: ErrDimensionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.serverStatus)
				_ = json.NewEncoder(w).Encode(tt.serverBody)
			}))
			defer server.Close()

			config := DefaultConfig()
			config.BaseURL = server.URL
			config.RetryCount = 0

			e, err := NewExtractor(config)
			require.NoError(t, err)

			detections, err := e.Extract(context.Background(), testImage())

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.wantAnyErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, detections, tt.wantCount)
			for _, d := range detections {
				assert.Len(t, d.Embedding, 128)
				assert.Greater(t, d.Confidence, 0.0)
			}
		})
	}
}

func TestExtractor_SendsPNGDataURI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req RepresentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		require.True(t, strings.HasPrefix(req.Img, "data:image/png;base64,"))
		raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(req.Img, "data:image/png;base64,"))
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(raw))
		require.NoError(t, err)

		// first pixel must still be red: the PNG carries true colours
		r0, g0, b0, _ := img.At(0, 0).RGBA()
		assert.Equal(t, uint32(0xffff), r0)
		assert.Equal(t, uint32(0), g0)
		assert.Equal(t, uint32(0), b0)

		_ = json.NewEncoder(w).Encode(RepresentResponse{Results: []RepresentResult{}})
	}))
	defer server.Close()

	config := DefaultConfig()
	config.BaseURL = server.URL
	config.RetryCount = 0

	e, err := NewExtractor(config)
	require.NoError(t, err)

	_, err = e.Extract(context.Background(), testImage())
	require.NoError(t, err)
}

func TestCalculateConfidence(t *testing.T) {
	tests := []struct {
		name     string
		faceArea float64
		wantMin  float64
		wantMax  float64
	}{
		{name: "very small face", faceArea: 1000, wantMin: 0.49, wantMax: 0.51},
		{name: "minimum face area", faceArea: minFaceArea, wantMin: 0.69, wantMax: 0.71},
		{name: "medium face", faceArea: 40000, wantMin: 0.73, wantMax: 0.77},
		{name: "large face", faceArea: maxFaceArea, wantMin: 0.98, wantMax: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confidence := calculateConfidence(tt.faceArea)
			assert.GreaterOrEqual(t, confidence, tt.wantMin)
			assert.LessOrEqual(t, confidence, tt.wantMax)
		})
	}
}
