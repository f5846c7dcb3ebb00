// Package gallery holds the set of enrolled face embeddings a recognition
// session compares a probe against.
package gallery

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/ponto/internal/codec"
	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

// Record is one stored encoding as read from the employee store.
// Encoding is nil or empty for employees that never enrolled.
type Record struct {
	EmployeeID uuid.UUID
	Identity   string
	Encoding   *string
}

// RecordFromEmployee projects an employee row into a gallery record.
func RecordFromEmployee(e domain.Employee) Record {
	return Record{
		EmployeeID: e.ID,
		Identity:   e.FullName(),
		Encoding:   e.FaceEncoding,
	}
}

type Entry struct {
	EmployeeID uuid.UUID
	Identity   string
	Embedding  domain.Embedding
}

// Gallery is immutable once built. Entry order follows record order.
type Gallery struct {
	entries   []Entry
	dimension int
	skipped   int
}

// Build loads every decodable record. Records without an encoding are
// ignored; corrupt encodings and records whose length differs from dimension
// are logged and counted in Skipped. Build never fails.
//
// dimension is the extractor's embedding length. When it is 0 the first
// decoded record fixes it.
func Build(records []Record, dimension int, logger *slog.Logger) *Gallery {
	if logger == nil {
		logger = slog.Default()
	}

	g := &Gallery{entries: make([]Entry, 0, len(records))}
	expected := dimension

	for _, r := range records {
		if r.Encoding == nil || strings.TrimSpace(*r.Encoding) == "" {
			continue
		}

		embedding, err := codec.DeserializeEmbedding(*r.Encoding)
		if err != nil {
			logger.Warn("skipping corrupt face encoding",
				"employee_id", r.EmployeeID,
				"identity", r.Identity,
				"error", err,
			)
			g.skipped++
			continue
		}

		if expected <= 0 {
			expected = embedding.Dimension()
		}
		if embedding.Dimension() != expected {
			logger.Warn("skipping face encoding with unexpected dimension",
				"employee_id", r.EmployeeID,
				"identity", r.Identity,
				"dimension", embedding.Dimension(),
				"expected", expected,
			)
			g.skipped++
			continue
		}

		g.dimension = expected

		g.entries = append(g.entries, Entry{
			EmployeeID: r.EmployeeID,
			Identity:   r.Identity,
			Embedding:  embedding,
		})
	}

	return g
}

func (g *Gallery) Len() int {
	return len(g.entries)
}

func (g *Gallery) IsEmpty() bool {
	return len(g.entries) == 0
}

// Entries returns a copy of the entries in insertion order.
func (g *Gallery) Entries() []Entry {
	out := make([]Entry, len(g.entries))
	copy(out, g.entries)
	return out
}

// At returns the i-th entry without copying the slice.
func (g *Gallery) At(i int) Entry {
	return g.entries[i]
}

// Without returns a new gallery minus every entry of the given employee.
func (g *Gallery) Without(employeeID uuid.UUID) *Gallery {
	out := &Gallery{
		entries:   make([]Entry, 0, len(g.entries)),
		dimension: g.dimension,
		skipped:   g.skipped,
	}
	for _, e := range g.entries {
		if e.EmployeeID != employeeID {
			out.entries = append(out.entries, e)
		}
	}
	if len(out.entries) == 0 {
		out.dimension = 0
	}
	return out
}

// Dimension is the shared embedding length, or 0 for an empty gallery.
func (g *Gallery) Dimension() int {
	return g.dimension
}

// Skipped counts records that carried an encoding but could not be loaded.
func (g *Gallery) Skipped() int {
	return g.skipped
}
