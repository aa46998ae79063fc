package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Role is the authorization persona of the current session
type Role string

const (
	RoleNone      Role = ""
	RoleAdmin     Role = "admin"
	RoleExecutive Role = "executive"
	RoleStudent   Role = "student"
)

// ParseRole normalizes a backend role string; unknown values map to RoleNone
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleExecutive:
		return RoleExecutive
	case RoleStudent:
		return RoleStudent
	default:
		return RoleNone
	}
}

func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	return string(r)
}

// ID is a backend identifier. The backend emits both numeric and string ids.
type ID string

// UnmarshalJSON accepts JSON strings and numbers
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// StudentProfile is the cached profile of a logged-in student
type StudentProfile struct {
	UserID      ID     `json:"userId"`
	StudentName string `json:"studentName"`
	ParentName  string `json:"parentName"`
	PhoneNumber string `json:"phoneNumber"`
	EmailID     string `json:"emailId"`
}

// Session is a point-in-time copy of the session state
type Session struct {
	Token   string
	Role    Role
	Profile *StudentProfile
}

// Authenticated reports whether a bearer token is held
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// AuthResult is the normalized outcome of any login, OTP verification or refresh
type AuthResult struct {
	Token string
	Role  Role
}

// Pagination is the list envelope echoed by every paginated endpoint
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// ShouldRender reports whether pagination controls are shown. Zero items suppresses them.
func (p *Pagination) ShouldRender() bool {
	return p != nil && p.TotalItems > 0
}

// ListResult is one page of a list endpoint. Pagination is nil for legacy bare-array responses.
type ListResult[T any] struct {
	Items      []T
	Pagination *Pagination
}

// PageQuery selects a page of a list endpoint. Zero values are omitted from the request.
type PageQuery struct {
	Page   int
	Limit  int
	Offset int
}

// FileUpload is a file attached to a multipart form
type FileUpload struct {
	FieldName   string
	FileName    string
	ContentType string
	Content     []byte
}

// Size returns the content length in bytes
func (f FileUpload) Size() int64 { return int64(len(f.Content)) }

// StudentRegistration is the details form shown to unregistered students
type StudentRegistration struct {
	StudentName string `json:"studentName" validate:"required,max=100"`
	ParentName  string `json:"parentName" validate:"required,max=100"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone"`
	EmailID     string `json:"emailId" validate:"required,email"`
}

// Booking is a student's tutoring booking
type Booking struct {
	ID        ID        `json:"bookingId"`
	CourseID  ID        `json:"classId"`
	ClassName string    `json:"className"`
	TutorName string    `json:"tutorName,omitempty"`
	Status    string    `json:"status"`
	Scheduled time.Time `json:"scheduledAt,omitempty"`
}

// Staff is a tutor or staff member listed by the platform
type Staff struct {
	ID          ID     `json:"staffId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Subject     string `json:"subject"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	IsPremium   bool   `json:"isPremium"`
}

// TutorRequestStatus is the review state of a tutor application
type TutorRequestStatus string

const (
	TutorPending  TutorRequestStatus = "pending"
	TutorApproved TutorRequestStatus = "approved"
	TutorRejected TutorRequestStatus = "rejected"
)

// TutorRequest is a tutor recruitment application
type TutorRequest struct {
	ID          ID                 `json:"tutorId"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	PhoneNumber string             `json:"phoneNumber"`
	Subjects    []string           `json:"subjects"`
	Experience  string             `json:"experience"`
	ResumeURL   string             `json:"resumeUrl,omitempty"`
	Status      TutorRequestStatus `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// LogEntry is an audit log record
type LogEntry struct {
	ID        ID        `json:"logId"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AppUpdate is a release metadata record for the mobile apps
type AppUpdate struct {
	ID          ID        `json:"updateId"`
	Version     string    `json:"version"`
	Platform    string    `json:"platform"`
	Notes       string    `json:"notes"`
	DownloadURL string    `json:"downloadUrl,omitempty"`
	IsMandatory bool      `json:"isMandatory"`
	IsActive    bool      `json:"isActive"`
	ReleasedAt  time.Time `json:"releasedAt"`
}

// CourseFilter narrows GET /courses
type CourseFilter struct {
	CategoryID    ID
	SubcategoryID ID
	Search        string
	Level         string
	Language      string
	PageQuery
}
