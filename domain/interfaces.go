package domain

import "context"

// SessionStore holds the authentication state of the running client
type SessionStore interface {
	Snapshot() Session
	Token() string
	Role() Role
	Login(token string, role Role)
	SetStudentProfile(profile *StudentProfile)
	Logout()
	Subscribe(observer SessionObserver) (unsubscribe func())
	Publish(event SessionEvent)
}

// Refresher exchanges the current credentials for a fresh bearer token
type Refresher interface {
	RefreshByRole(ctx context.Context) (*AuthResult, error)
	RefreshStudent(ctx context.Context) (*AuthResult, error)
}

// Redirector performs a hard navigation to a route
type Redirector interface {
	Redirect(route string)
}

// Notifier surfaces transient action outcomes to the user
type Notifier interface {
	Success(message string)
	Error(message string)
}

// AuthService covers admin OTP login, executive password login and logout
type AuthService interface {
	SendAdminOTP(ctx context.Context, email string) error
	VerifyAdminOTP(ctx context.Context, email, otp string) (*AuthResult, error)
	ExecutiveLogin(ctx context.Context, username, password string) (*AuthResult, error)
	Logout(ctx context.Context) error
}

// StudentService covers the student lifecycle
type StudentService interface {
	SendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, otp string) (*AuthResult, error)
	Register(ctx context.Context, reg StudentRegistration) error
	Profile(ctx context.Context) (*StudentProfile, error)
	UpdateProfile(ctx context.Context, profile StudentProfile) (*StudentProfile, error)
	Bookings(ctx context.Context, q PageQuery) (*ListResult[Booking], error)
	CancelBooking(ctx context.Context, id ID) error
}

// CategoryService covers the category tree CRUD endpoints
type CategoryService interface {
	List(ctx context.Context, q PageQuery) (*ListResult[*Node], error)
	CreateCategory(ctx context.Context, in CategoryInput) error
	UpdateCategory(ctx context.Context, id ID, in CategoryInput) error
	DeleteCategory(ctx context.Context, id ID) error
	CreateSubcategory(ctx context.Context, in SubcategoryInput) error
	UpdateSubcategory(ctx context.Context, id ID, in SubcategoryInput) error
	DeleteSubcategory(ctx context.Context, id ID) error
	CreateCourse(ctx context.Context, in CourseInput) error
	UpdateCourse(ctx context.Context, id ID, in CourseInput) error
	DeleteCourse(ctx context.Context, id ID) error
}

// CourseService lists courses with filters
type CourseService interface {
	List(ctx context.Context, f CourseFilter) (*ListResult[*Node], error)
}

// StaffService covers staff management
type StaffService interface {
	List(ctx context.Context, premium *bool, q PageQuery) (*ListResult[Staff], error)
	Create(ctx context.Context, in StaffInput) (*Staff, error)
	Update(ctx context.Context, id ID, patch StaffPatch) (*Staff, error)
	Delete(ctx context.Context, id ID) error
}

// TutorService covers the tutor recruitment intake and its review
type TutorService interface {
	List(ctx context.Context, status TutorRequestStatus, q PageQuery) (*ListResult[TutorRequest], error)
	SetStatus(ctx context.Context, id ID, status TutorRequestStatus) (*TutorRequest, error)
	Delete(ctx context.Context, id ID) error
	InitiateEmail(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	Complete(ctx context.Context, app TutorApplication) (*TutorRequest, error)
}

// LogService covers audit log management
type LogService interface {
	List(ctx context.Context, level string, q PageQuery) (*ListResult[LogEntry], error)
	Create(ctx context.Context, in LogInput) (*LogEntry, error)
	Delete(ctx context.Context, id ID) error
	Clear(ctx context.Context) error
}

// AppUpdateService covers release metadata management
type AppUpdateService interface {
	List(ctx context.Context, q PageQuery) (*ListResult[AppUpdate], error)
	Create(ctx context.Context, in AppUpdateInput) (*AppUpdate, error)
	Update(ctx context.Context, id ID, in AppUpdateInput) (*AppUpdate, error)
	SetActive(ctx context.Context, id ID, active bool) (*AppUpdate, error)
	Delete(ctx context.Context, id ID) error
}
