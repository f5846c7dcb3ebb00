package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Employee representa um funcionário cadastrado para registro de ponto.
// FaceEncoding guarda o embedding como texto JSON; nil ou vazio significa
// que o funcionário ainda não foi cadastrado na galeria.
type Employee struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Position     string    `json:"position"`
	FaceEncoding *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// FullName is the display identity used by the gallery ("first last").
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// IsEnrolled reports whether a face encoding is stored for the employee.
func (e *Employee) IsEnrolled() bool {
	return e.FaceEncoding != nil && strings.TrimSpace(*e.FaceEncoding) != ""
}

// Validate verifica se o funcionário é válido para cadastro
func (e *Employee) Validate() error {
	if strings.TrimSpace(e.FirstName) == "" {
		return errors.New("first name cannot be empty")
	}

	if strings.TrimSpace(e.LastName) == "" {
		return errors.New("last name cannot be empty")
	}

	if strings.TrimSpace(e.Position) == "" {
		return errors.New("position cannot be empty")
	}

	if len(e.FirstName) > 100 || len(e.LastName) > 100 || len(e.Position) > 100 {
		return errors.New("name and position must be at most 100 characters")
	}

	return nil
}

// EnrollmentStatus resume o estado de treinamento da galeria
type EnrollmentStatus struct {
	TotalEmployees int `json:"total_employees"`
	Enrolled       int `json:"enrolled"`
	NotEnrolled    int `json:"not_enrolled"`
	Loadable       int `json:"loadable"`
	Corrupt        int `json:"corrupt"`
}
