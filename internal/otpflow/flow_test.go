package otpflow

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/mocks"
	"github.com/you/tutorportal/internal/session"
)

func newFlow(t *testing.T, persona Persona) (*Flow, *mocks.MockAuthService, *mocks.MockStudentService, *session.Store) {
	t.Helper()
	auth := mocks.NewMockAuthService()
	students := mocks.NewMockStudentService()
	store := session.NewStore()
	f, err := New(Config{Persona: persona, Auth: auth, Students: students, Store: store, Notifier: mocks.NewMockNotifier()})
	require.NoError(t, err)
	return f, auth, students, store
}

func TestNew_Errors(t *testing.T) {
	store := session.NewStore()
	_, err := New(Config{Persona: PersonaAdmin, Store: store})
	assert.Error(t, err)
	_, err = New(Config{Persona: PersonaStudent, Auth: mocks.NewMockAuthService(), Store: store})
	assert.Error(t, err)
	_, err = New(Config{Persona: "tutor", Store: store})
	assert.Error(t, err)
	_, err = New(Config{Persona: PersonaAdmin, Auth: mocks.NewMockAuthService()})
	assert.Error(t, err)
}

func TestFlow_AdminLogin(t *testing.T) {
	f, auth, _, store := newFlow(t, PersonaAdmin)
	var sentTo, verified string
	auth.SendAdminOTPFunc = func(ctx context.Context, email string) error {
		sentTo = email
		return nil
	}
	auth.VerifyAdminOTPFunc = func(ctx context.Context, email, otp string) (*domain.AuthResult, error) {
		verified = email + "/" + otp
		return &domain.AuthResult{Token: "admin-jwt", Role: domain.RoleAdmin}, nil
	}

	require.NoError(t, f.SubmitEmail(context.Background(), "  admin@tutor.io "))
	assert.Equal(t, "admin@tutor.io", sentTo)
	st := f.State()
	assert.Equal(t, StepOTP, st.Step)
	assert.True(t, st.Active)
	assert.Equal(t, DefaultCountdown, st.Remaining)

	require.NoError(t, f.SubmitCode(context.Background(), "123456"))
	assert.Equal(t, "admin@tutor.io/123456", verified)
	assert.Equal(t, StepDone, f.State().Step)
	assert.False(t, f.State().Active)

	sess := store.Snapshot()
	assert.Equal(t, "admin-jwt", sess.Token)
	assert.Equal(t, domain.RoleAdmin, sess.Role)
}

func TestFlow_SubmitCode_Validation(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		expectedErr error
	}{
		{name: "too short", code: "12345", expectedErr: domain.ErrOTPInvalidFormat},
		{name: "letters", code: "12345a", expectedErr: domain.ErrOTPInvalidFormat},
		{name: "too long", code: "1234567", expectedErr: domain.ErrOTPInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, auth, _, store := newFlow(t, PersonaAdmin)
			called := false
			auth.VerifyAdminOTPFunc = func(ctx context.Context, email, otp string) (*domain.AuthResult, error) {
				called = true
				return nil, nil
			}
			require.NoError(t, f.SubmitEmail(context.Background(), "admin@tutor.io"))

			err := f.SubmitCode(context.Background(), tt.code)

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.False(t, called, "no network call for a malformed code")
			assert.Equal(t, StepOTP, f.State().Step)
			assert.Empty(t, store.Token())
		})
	}
}

func TestFlow_WrongStep(t *testing.T) {
	f, _, _, _ := newFlow(t, PersonaAdmin)

	assert.ErrorIs(t, f.SubmitCode(context.Background(), "123456"), domain.ErrInvalidStep)
	assert.ErrorIs(t, f.Resend(context.Background()), domain.ErrInvalidStep)
	assert.ErrorIs(t, f.Acknowledge(), domain.ErrInvalidStep)
	assert.ErrorIs(t, f.SubmitCredentials(context.Background(), "u", "p"), domain.ErrInvalidStep)

	var vErr *domain.ValidationError
	assert.ErrorAs(t, f.SubmitEmail(context.Background(), "not-an-email"), &vErr)
	assert.Equal(t, StepEmail, f.State().Step)
}

func TestFlow_Countdown(t *testing.T) {
	tests := []struct {
		name         string
		persona      Persona
		expectedStep Step
	}{
		{name: "admin returns to email", persona: PersonaAdmin, expectedStep: StepEmail},
		{name: "student stays on otp", persona: PersonaStudent, expectedStep: StepOTP},
		{name: "booking stays on otp", persona: PersonaBooking, expectedStep: StepOTP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _, _, _ := newFlow(t, tt.persona)
			require.NoError(t, f.SubmitEmail(context.Background(), "someone@mail.io"))

			for i := 0; i < DefaultCountdown-1; i++ {
				require.NoError(t, f.Tick())
			}
			st := f.State()
			assert.True(t, st.Active, "still valid after 299 ticks")
			assert.Equal(t, 1, st.Remaining)

			assert.ErrorIs(t, f.Tick(), domain.ErrOTPExpired)
			st = f.State()
			assert.False(t, st.Active)
			assert.Equal(t, DefaultCountdown, st.Remaining)
			assert.ErrorIs(t, st.Err, domain.ErrOTPExpired)
			assert.Equal(t, tt.expectedStep, st.Step)

			assert.NoError(t, f.Tick(), "inactive countdown ignores ticks")
		})
	}
}

func TestFlow_ExpiredCodeRejected_ResendRestarts(t *testing.T) {
	f, _, students, store := newFlow(t, PersonaStudent)
	sends := 0
	students.SendOTPFunc = func(ctx context.Context, email string) error {
		sends++
		return nil
	}
	require.NoError(t, f.SubmitEmail(context.Background(), "kid@mail.io"))
	for i := 0; i < DefaultCountdown; i++ {
		_ = f.Tick()
	}

	assert.ErrorIs(t, f.SubmitCode(context.Background(), "123456"), domain.ErrOTPExpired)
	assert.Empty(t, store.Token())

	require.NoError(t, f.Resend(context.Background()))
	assert.Equal(t, 2, sends)
	st := f.State()
	assert.True(t, st.Active)
	assert.Equal(t, DefaultCountdown, st.Remaining)
	assert.False(t, st.Resending)

	require.NoError(t, f.SubmitCode(context.Background(), "654321"))
	assert.Equal(t, domain.RoleStudent, store.Role())
}

func TestFlow_UnregisteredStudent(t *testing.T) {
	f, _, students, store := newFlow(t, PersonaStudent)
	registered := false
	students.SendOTPFunc = func(ctx context.Context, email string) error {
		if !registered {
			no := false
			return &domain.APIError{StatusCode: http.StatusNotFound, Message: "Student not found", IsRegistered: &no}
		}
		return nil
	}
	var reg domain.StudentRegistration
	students.RegisterFunc = func(ctx context.Context, r domain.StudentRegistration) error {
		reg = r
		registered = true
		return nil
	}

	require.NoError(t, f.SubmitEmail(context.Background(), "new@mail.io"))
	assert.Equal(t, StepDetails, f.State().Step)
	assert.False(t, f.State().Active)

	var vErr *domain.ValidationError
	require.ErrorAs(t, f.SubmitDetails(context.Background(), domain.StudentRegistration{StudentName: "Asha"}), &vErr)
	assert.NotEmpty(t, vErr.Field("parentName"))
	assert.False(t, registered)

	require.NoError(t, f.SubmitDetails(context.Background(), domain.StudentRegistration{
		StudentName: "Asha", ParentName: "Ravi", PhoneNumber: "+919800000000",
	}))
	assert.Equal(t, "new@mail.io", reg.EmailID, "email carried over from the first step")
	assert.Equal(t, StepOTP, f.State().Step)
	assert.True(t, f.State().Active)

	require.NoError(t, f.SubmitCode(context.Background(), "111111"))
	assert.Equal(t, StepDone, f.State().Step)
	assert.Equal(t, "mock_student_token", store.Token())
}

func TestFlow_AdminSendFailure(t *testing.T) {
	f, auth, _, _ := newFlow(t, PersonaAdmin)
	no := false
	auth.SendAdminOTPFunc = func(ctx context.Context, email string) error {
		return &domain.APIError{StatusCode: http.StatusNotFound, Message: "Admin not found", IsRegistered: &no}
	}

	err := f.SubmitEmail(context.Background(), "ghost@tutor.io")

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	st := f.State()
	assert.Equal(t, StepEmail, st.Step, "admins have no details step")
	assert.Equal(t, err, st.Err)
	assert.False(t, st.Submitting)
}

func TestFlow_BookingAcknowledge(t *testing.T) {
	f, _, _, _ := newFlow(t, PersonaBooking)
	require.NoError(t, f.SubmitEmail(context.Background(), "kid@mail.io"))
	require.NoError(t, f.SubmitCode(context.Background(), "222222"))

	assert.Equal(t, StepSuccess, f.State().Step)
	require.NoError(t, f.Acknowledge())
	assert.Equal(t, StepDone, f.State().Step)
}

func TestFlow_ExecutiveLogin(t *testing.T) {
	f, auth, _, store := newFlow(t, PersonaExecutive)
	auth.ExecutiveLoginFunc = func(ctx context.Context, username, password string) (*domain.AuthResult, error) {
		if password != "s3cret" {
			return nil, &domain.APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
		}
		return &domain.AuthResult{Token: "exec-jwt", Role: domain.RoleExecutive}, nil
	}

	assert.ErrorIs(t, f.SubmitEmail(context.Background(), "x@mail.io"), domain.ErrInvalidStep)

	err := f.SubmitCredentials(context.Background(), "ops", "wrong")
	assert.Error(t, err)
	assert.Equal(t, StepEmail, f.State().Step)
	assert.Empty(t, store.Token())

	require.NoError(t, f.SubmitCredentials(context.Background(), "ops", "s3cret"))
	assert.Equal(t, StepDone, f.State().Step)
	assert.Equal(t, domain.RoleExecutive, store.Role())
}

func TestFlow_BusyWhileSubmitting(t *testing.T) {
	f, auth, _, _ := newFlow(t, PersonaAdmin)
	entered := make(chan struct{})
	release := make(chan struct{})
	auth.SendAdminOTPFunc = func(ctx context.Context, email string) error {
		close(entered)
		<-release
		return nil
	}

	done := make(chan error)
	go func() { done <- f.SubmitEmail(context.Background(), "admin@tutor.io") }()
	<-entered

	assert.True(t, f.State().Submitting)
	assert.ErrorIs(t, f.SubmitEmail(context.Background(), "admin@tutor.io"), domain.ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, f.State().Submitting)
}

func TestFlow_RunCountdown(t *testing.T) {
	f, err := New(Config{Persona: PersonaAdmin, Auth: mocks.NewMockAuthService(), Store: session.NewStore(), Countdown: 3})
	require.NoError(t, err)
	require.NoError(t, f.SubmitEmail(context.Background(), "admin@tutor.io"))

	ticks := make(chan time.Time)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error)
	go func() { done <- f.RunCountdown(ctx, ticks) }()

	for i := 0; i < 3; i++ {
		ticks <- time.Now()
	}
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	st := f.State()
	assert.False(t, st.Active)
	assert.Equal(t, StepEmail, st.Step)
	assert.Equal(t, 3, st.Remaining)
}
