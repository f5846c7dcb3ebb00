package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// EmployeeResponse represents an employee as returned by the API
type EmployeeResponse struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	FirstName string `json:"first_name" example:"Alice"`
	LastName  string `json:"last_name" example:"Souza"`
	FullName  string `json:"full_name" example:"Alice Souza"`
	Position  string `json:"position" example:"Engineer"`
	Enrolled  bool   `json:"enrolled" example:"true"`
	CreatedAt string `json:"created_at" example:"2024-01-01T00:00:00Z"`
}

// ListEmployeesResponse represents the employee listing
type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int                `json:"total" example:"1"`
}

// MatchResult represents the outcome of a recognition attempt
type MatchResult struct {
	Accepted   bool    `json:"accepted" example:"true"`
	Outcome    string  `json:"outcome" example:"matched"`
	EmployeeID string  `json:"employee_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Identity   string  `json:"identity,omitempty" example:"Alice Souza"`
	Confidence float64 `json:"confidence" example:"0.9"`
	Distance   float64 `json:"distance" example:"0.1"`
	Reason     string  `json:"reason" example:"matched Alice Souza"`
}

// AttendanceRecord represents a persisted check-in or check-out
type AttendanceRecord struct {
	ID             string  `json:"id" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	EmployeeID     string  `json:"employee_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	EmployeeName   string  `json:"employee_name,omitempty" example:"Alice Souza"`
	AttendanceType string  `json:"attendance_type" example:"IN"`
	Confidence     float64 `json:"confidence" example:"0.9"`
	Timestamp      string  `json:"timestamp" example:"2024-01-01T08:00:00Z"`
}

// AttendanceResponse represents the check-in/check-out response
type AttendanceResponse struct {
	Match  MatchResult       `json:"match"`
	Record *AttendanceRecord `json:"record,omitempty"`
}

// DashboardResponse represents today's attendance summary
type DashboardResponse struct {
	Date             string             `json:"date" example:"2024-01-01T00:00:00Z"`
	TotalEmployees   int                `json:"total_employees" example:"12"`
	TodayCheckIns    int                `json:"today_checkins" example:"9"`
	TodayCheckOuts   int                `json:"today_checkouts" example:"4"`
	RecentAttendance []AttendanceRecord `json:"recent_attendance"`
}

// TrainingStatusResponse represents enrollment coverage of the gallery
type TrainingStatusResponse struct {
	TotalEmployees int `json:"total_employees" example:"12"`
	Enrolled       int `json:"enrolled" example:"10"`
	NotEnrolled    int `json:"not_enrolled" example:"2"`
	Loadable       int `json:"loadable" example:"9"`
	Corrupt        int `json:"corrupt" example:"1"`
}

// HealthResponse represents the liveness/readiness probes
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Version string `json:"version,omitempty" example:"0.1.0"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
	Detail  string `json:"detail,omitempty" example:"first_name is required"`
}

var captureConsumes = []mime.MIME{mime.JSON, mime.MIME("application/x-www-form-urlencoded"), mime.MIME("multipart/form-data")}

var internalError = response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error")

// recognitionErrors are shared by every endpoint that runs a capture through the extractor
var recognitionErrors = []response.Response{
	response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed", Detail: "face_data is required"}, "422", "Unprocessable Entity"),
	response.New(ErrorResponse{Code: "DECODE_ERROR", Message: "Capture or stored encoding could not be decoded"}, "422", "Unprocessable Entity"),
	response.New(ErrorResponse{Code: "PAYLOAD_TOO_LARGE", Message: "Capture payload exceeds the maximum allowed size"}, "413", "Payload Too Large"),
	response.New(ErrorResponse{Code: "EXTRACTOR_UNAVAILABLE", Message: "Face embedding extractor is unavailable"}, "503", "Service Unavailable"),
	internalError,
}

func withErrors(extra ...response.Response) []response.Response {
	out := make([]response.Response, 0, len(extra)+len(recognitionErrors))
	out = append(out, extra...)
	return append(out, recognitionErrors...)
}

func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Ponto API",
		Version:     "v1.0.0",
		Description: "Face-recognition attendance: employee enrollment, check-in/check-out and daily dashboard",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// Employees endpoints

		// GET /v1/employees - List employees
		endpoint.New(
			endpoint.GET,
			"/employees",
			endpoint.WithTags("Employees"),
			endpoint.WithSummary("List employees"),
			endpoint.WithDescription("Lists every employee ordered by name, with a flag telling whether a face encoding is stored"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(ListEmployeesResponse{}, "200", "Employees retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{internalError}),
		),

		// POST /v1/employees - Enroll employee
		endpoint.New(
			endpoint.POST,
			"/employees",
			endpoint.WithTags("Employees"),
			endpoint.WithSummary("Enroll a new employee"),
			endpoint.WithDescription("Creates an employee from first_name, last_name, position and face_data (base64 or data URL). Multipart requests may attach the capture as an \"image\" file instead. A face already enrolled for someone else is refused."),
			endpoint.WithConsume(captureConsumes),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmployeeResponse{}, "201", "Employee enrolled successfully"),
			}),
			endpoint.WithErrors(withErrors(
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected in the image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "MULTIPLE_FACES", Message: "Multiple faces detected, please provide image with single face"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "FACE_BIOMETRIC_EXISTS", Message: "This face is already enrolled for another employee"}, "409", "Conflict"),
			)),
		),

		// GET /v1/employees/{id} - Get employee
		endpoint.New(
			endpoint.GET,
			"/employees/{id}",
			endpoint.WithTags("Employees"),
			endpoint.WithSummary("Get an employee"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Employee UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmployeeResponse{}, "200", "Employee retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed", Detail: "invalid employee id"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "EMPLOYEE_NOT_FOUND", Message: "Employee not found"}, "404", "Not Found"),
				internalError,
			}),
		),

		// PUT /v1/employees/{id}/face - Re-enroll face
		endpoint.New(
			endpoint.PUT,
			"/employees/{id}/face",
			endpoint.WithTags("Employees"),
			endpoint.WithSummary("Replace an employee's face encoding"),
			endpoint.WithDescription("Re-enrolls the employee from a new capture. The duplicate check ignores the employee being updated."),
			endpoint.WithConsume(captureConsumes),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Employee UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(EmployeeResponse{}, "200", "Face encoding replaced"),
			}),
			endpoint.WithErrors(withErrors(
				response.New(ErrorResponse{Code: "EMPLOYEE_NOT_FOUND", Message: "Employee not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected in the image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "FACE_BIOMETRIC_EXISTS", Message: "This face is already enrolled for another employee"}, "409", "Conflict"),
			)),
		),

		// GET /v1/training - Training status
		endpoint.New(
			endpoint.GET,
			"/training",
			endpoint.WithTags("Employees"),
			endpoint.WithSummary("Enrollment status"),
			endpoint.WithDescription("Counts employees with and without a stored encoding, and how many stored encodings load into the recognition gallery"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(TrainingStatusResponse{}, "200", "Status computed"),
			}),
			endpoint.WithErrors([]response.Response{internalError}),
		),

		// Attendance endpoints

		// POST /v1/attendance/check-in - Check in
		endpoint.New(
			endpoint.POST,
			"/attendance/check-in",
			endpoint.WithTags("Attendance"),
			endpoint.WithSummary("Check in by face"),
			endpoint.WithDescription("Recognizes the capture against enrolled employees. An accepted match records an IN entry and returns 201; a rejection returns 200 with accepted=false and the reason."),
			endpoint.WithConsume(captureConsumes),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AttendanceResponse{}, "201", "Attendance recorded"),
				response.New(AttendanceResponse{}, "200", "Recognition rejected, nothing recorded"),
			}),
			endpoint.WithErrors(withErrors(
				response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Too many recognition requests, try again later"}, "429", "Too Many Requests"),
			)),
		),

		// POST /v1/attendance/check-out - Check out
		endpoint.New(
			endpoint.POST,
			"/attendance/check-out",
			endpoint.WithTags("Attendance"),
			endpoint.WithSummary("Check out by face"),
			endpoint.WithDescription("Same as check-in, recording an OUT entry"),
			endpoint.WithConsume(captureConsumes),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AttendanceResponse{}, "201", "Attendance recorded"),
				response.New(AttendanceResponse{}, "200", "Recognition rejected, nothing recorded"),
			}),
			endpoint.WithErrors(withErrors(
				response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Too many recognition requests, try again later"}, "429", "Too Many Requests"),
			)),
		),

		// GET /v1/dashboard - Daily dashboard
		endpoint.New(
			endpoint.GET,
			"/dashboard",
			endpoint.WithTags("Attendance"),
			endpoint.WithSummary("Today's attendance"),
			endpoint.WithDescription("Check-ins and check-outs since local midnight, total employees and the 10 most recent records"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(DashboardResponse{}, "200", "Dashboard computed"),
			}),
			endpoint.WithErrors([]response.Response{internalError}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
