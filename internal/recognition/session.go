package recognition

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/ponto/internal/codec"
	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/gallery"
	"github.com/saturnino-fabrica-de-software/ponto/internal/matcher"
	"github.com/saturnino-fabrica-de-software/ponto/internal/provider"
)

// Session carries the gallery for one request. It builds it at most once.
type Session struct {
	r       *Recognizer
	gallery *gallery.Gallery
}

// Gallery returns the session gallery, loading it on first use.
func (s *Session) Gallery(ctx context.Context) (*gallery.Gallery, error) {
	if s.gallery != nil {
		return s.gallery, nil
	}

	employees, err := s.r.source.ListEnrolled(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enrolled employees: %w", err)
	}

	records := make([]gallery.Record, 0, len(employees))
	for _, e := range employees {
		records = append(records, gallery.RecordFromEmployee(e))
	}

	s.gallery = gallery.Build(records, s.r.extractor.Dimension(), s.r.logger)
	s.r.logger.Debug("gallery loaded",
		"entries", s.gallery.Len(),
		"skipped", s.gallery.Skipped(),
	)

	return s.gallery, nil
}

// Embed decodes the capture and returns the embedding of the selected face.
// A capture without faces fails with domain.ErrNoFaceDetected.
func (s *Session) Embed(ctx context.Context, payload string) (domain.Embedding, error) {
	detection, err := s.detect(ctx, payload)
	if err != nil {
		return nil, err
	}
	if detection == nil {
		return nil, domain.ErrNoFaceDetected
	}
	return detection.Embedding, nil
}

// Identify matches a probe against the session gallery. Entries belonging to
// any of the excluded employees are ignored.
func (s *Session) Identify(ctx context.Context, probe domain.Embedding, exclude ...uuid.UUID) (matcher.Match, error) {
	g, err := s.Gallery(ctx)
	if err != nil {
		return matcher.Match{}, err
	}

	for _, id := range exclude {
		g = g.Without(id)
	}

	return s.r.matcher.Match(probe, g)
}

// Recognize runs the full pipeline. Recognition failures come back as a
// rejected MatchResult; only decode, extractor and store problems are errors.
func (s *Session) Recognize(ctx context.Context, payload string) (*domain.MatchResult, error) {
	detection, err := s.detect(ctx, payload)
	if err != nil {
		return nil, err
	}
	if detection == nil {
		return domain.Rejected(domain.OutcomeNoFaceDetected, "no face detected in the capture"), nil
	}

	match, err := s.Identify(ctx, detection.Embedding)
	if err != nil {
		return nil, err
	}

	if !match.Matched {
		if s.gallery.IsEmpty() {
			return domain.Rejected(domain.OutcomeNoMatchWithinTolerance, "no enrolled employees to match against"), nil
		}
		result := domain.Rejected(domain.OutcomeNoMatchWithinTolerance,
			fmt.Sprintf("nearest face at distance %.4f exceeds tolerance %.4f",
				match.Candidate.Distance, s.r.matcher.Tolerance()))
		result.Distance = match.Candidate.Distance
		return result, nil
	}

	entry := match.Candidate.Entry
	employeeID := entry.EmployeeID
	result := &domain.MatchResult{
		Outcome:    domain.OutcomeMatched,
		EmployeeID: &employeeID,
		Identity:   entry.Identity,
		Confidence: match.Confidence,
		Distance:   match.Candidate.Distance,
	}

	if match.Confidence < s.r.opts.ConfidenceFloor {
		result.Outcome = domain.OutcomeConfidenceBelowFloor
		result.Reason = fmt.Sprintf("matched %s with confidence %.4f, below floor %.2f",
			entry.Identity, match.Confidence, s.r.opts.ConfidenceFloor)
		return result, nil
	}

	employee, err := s.r.source.GetByID(ctx, entry.EmployeeID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			result.Outcome = domain.OutcomeIdentityUnresolved
			result.Reason = fmt.Sprintf("employee record for %s no longer exists", entry.Identity)
			return result, nil
		}
		return nil, fmt.Errorf("resolve employee: %w", err)
	}

	if employee.FullName() != entry.Identity {
		result.Outcome = domain.OutcomeIdentityUnresolved
		result.Reason = fmt.Sprintf("employee record changed: gallery has %q, store has %q",
			entry.Identity, employee.FullName())
		return result, nil
	}

	result.Accepted = true
	result.Reason = fmt.Sprintf("matched %s", entry.Identity)

	s.r.logger.Debug("face recognized",
		"employee_id", employeeID,
		"confidence", match.Confidence,
		"distance", match.Candidate.Distance,
	)

	return result, nil
}

// detect returns nil without error when the capture holds no face.
func (s *Session) detect(ctx context.Context, payload string) (*provider.Detection, error) {
	if limit := s.r.opts.MaxPayloadBytes; limit > 0 && codec.DecodedLen(payload) > limit {
		return nil, domain.ErrPayloadTooLarge
	}

	img, err := codec.DecodeCapture(payload)
	if err != nil {
		return nil, err
	}

	img = codec.Downscale(img, s.r.opts.MaxImageDimension)
	img = img.Convert(s.r.extractor.ChannelOrder())

	detections, err := s.r.extractor.Extract(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("extract embedding: %w", err)
	}

	if len(detections) == 0 {
		return nil, nil
	}

	selected, err := selectFace(detections, s.r.opts.Selection)
	if err != nil {
		return nil, err
	}

	if len(detections) > 1 {
		s.r.logger.Debug("multiple faces in capture",
			"faces", len(detections),
			"policy", s.r.opts.Selection,
		)
	}

	return selected, nil
}

func selectFace(detections []provider.Detection, policy Selection) (*provider.Detection, error) {
	if len(detections) == 1 {
		return &detections[0], nil
	}

	switch policy {
	case SelectReject:
		return nil, domain.ErrMultipleFaces
	case SelectLargest:
		best := 0
		for i := 1; i < len(detections); i++ {
			if detections[i].BoundingBox.Area() > detections[best].BoundingBox.Area() {
				best = i
			}
		}
		return &detections[best], nil
	default:
		return &detections[0], nil
	}
}
