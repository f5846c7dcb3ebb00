package recognition

import (
	"fmt"
	"math"
	"strings"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

// Selection decides which face to use when a capture contains several.
type Selection string

const (
	// SelectFirst uses the first detection in extractor order.
	SelectFirst Selection = "first"
	// SelectLargest uses the detection with the biggest bounding box.
	SelectLargest Selection = "largest"
	// SelectReject fails the capture with domain.ErrMultipleFaces.
	SelectReject Selection = "reject"
)

func ParseSelection(s string) (Selection, error) {
	switch Selection(strings.ToLower(strings.TrimSpace(s))) {
	case "", SelectFirst:
		return SelectFirst, nil
	case SelectLargest:
		return SelectLargest, nil
	case SelectReject:
		return SelectReject, nil
	default:
		return "", fmt.Errorf("unknown face selection policy: %s", s)
	}
}

const (
	DefaultConfidenceFloor   = 0.7
	DefaultMaxImageDimension = 1024
	DefaultMaxPayloadBytes   = 10 * 1024 * 1024
)

// Options configura o comportamento de uma sessão de reconhecimento
type Options struct {
	// ConfidenceFloor gates the derived confidence, independently of the
	// matcher tolerance. Must be within [0, 1].
	ConfidenceFloor float64
	Selection       Selection
	// MaxImageDimension bounds the longest side handed to the extractor.
	// Zero disables downscaling.
	MaxImageDimension int
	// MaxPayloadBytes bounds the decoded capture image. Zero disables the check.
	MaxPayloadBytes int
}

func DefaultOptions() Options {
	return Options{
		ConfidenceFloor:   DefaultConfidenceFloor,
		Selection:         SelectFirst,
		MaxImageDimension: DefaultMaxImageDimension,
		MaxPayloadBytes:   DefaultMaxPayloadBytes,
	}
}

func (o Options) Validate() error {
	if math.IsNaN(o.ConfidenceFloor) || o.ConfidenceFloor < 0 || o.ConfidenceFloor > 1 {
		return domain.ErrInvalidConfidenceFloor
	}
	if _, err := ParseSelection(string(o.Selection)); err != nil {
		return err
	}
	if o.MaxImageDimension < 0 || o.MaxPayloadBytes < 0 {
		return fmt.Errorf("limits cannot be negative")
	}
	return nil
}
