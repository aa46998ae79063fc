// Package otpflow drives the multi-step login forms: email, one-time code,
// optional student details, and the booking acknowledgement.
package otpflow

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/logger"
	"github.com/you/tutorportal/internal/validation"
)

type Persona string

const (
	PersonaAdmin     Persona = "admin"
	PersonaExecutive Persona = "executive"
	PersonaStudent   Persona = "student"
	// PersonaBooking is a student login started from a booking, which ends on a success screen
	PersonaBooking Persona = "booking"
)

func (p Persona) student() bool { return p == PersonaStudent || p == PersonaBooking }

type Step string

const (
	StepEmail   Step = "email"
	StepOTP     Step = "otp"
	StepDetails Step = "details"
	StepSuccess Step = "success"
	StepDone    Step = "done"
)

// DefaultCountdown is the OTP validity in ticks of one second
const DefaultCountdown = 300

// State is what the login form renders
type State struct {
	Persona    Persona
	Step       Step
	Email      string
	Remaining  int
	Active     bool
	Submitting bool
	Resending  bool
	Err        error
}

// Config wires a Flow. Auth serves the admin and executive personas, Students
// the student ones.
type Config struct {
	Persona   Persona
	Auth      domain.AuthService
	Students  domain.StudentService
	Store     domain.SessionStore
	Validator *validation.Validator
	Notifier  domain.Notifier
	Logger    logger.Logger
	Countdown int
}

// Flow is one login form instance
type Flow struct {
	persona   Persona
	auth      domain.AuthService
	students  domain.StudentService
	store     domain.SessionStore
	validate  *validation.Validator
	notifier  domain.Notifier
	log       logger.Logger
	countdown int

	mu      sync.Mutex
	state   State
	elapsed int
}

func New(cfg Config) (*Flow, error) {
	switch cfg.Persona {
	case PersonaAdmin, PersonaExecutive:
		if cfg.Auth == nil {
			return nil, fmt.Errorf("%s login requires an auth service", cfg.Persona)
		}
	case PersonaStudent, PersonaBooking:
		if cfg.Students == nil {
			return nil, fmt.Errorf("%s login requires a student service", cfg.Persona)
		}
	default:
		return nil, fmt.Errorf("unknown login persona %q", cfg.Persona)
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("login flow requires a session store")
	}
	if cfg.Validator == nil {
		cfg.Validator = validation.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	if cfg.Countdown <= 0 {
		cfg.Countdown = DefaultCountdown
	}

	return &Flow{
		persona:   cfg.Persona,
		auth:      cfg.Auth,
		students:  cfg.Students,
		store:     cfg.Store,
		validate:  cfg.Validator,
		notifier:  cfg.Notifier,
		log:       cfg.Logger,
		countdown: cfg.Countdown,
		state:     State{Persona: cfg.Persona, Step: StepEmail, Remaining: cfg.Countdown},
	}, nil
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Reset returns the form to the email step
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = State{Persona: f.persona, Step: StepEmail, Remaining: f.countdown}
	f.elapsed = 0
}

// begin marks a request in flight after checking the step
func (f *Flow) begin(step Step, resend bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.Submitting || f.state.Resending {
		return domain.ErrBusy
	}
	if f.state.Step != step {
		return fmt.Errorf("%w: %s", domain.ErrInvalidStep, f.state.Step)
	}
	if resend {
		f.state.Resending = true
	} else {
		f.state.Submitting = true
	}
	f.state.Err = nil
	return nil
}

// finish clears the in-flight flags and records err
func (f *Flow) finish(err error) {
	f.state.Submitting = false
	f.state.Resending = false
	f.state.Err = err
}

func (f *Flow) fail(err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finish(err)
	return err
}

func (f *Flow) startCountdownLocked() {
	f.elapsed = 0
	f.state.Remaining = f.countdown
	f.state.Active = true
}

func (f *Flow) sendOTP(ctx context.Context, email string) error {
	if f.persona.student() {
		return f.students.SendOTP(ctx, email)
	}
	return f.auth.SendAdminOTP(ctx, email)
}

func (f *Flow) verifyOTP(ctx context.Context, email, code string) (*domain.AuthResult, error) {
	if f.persona.student() {
		return f.students.Login(ctx, email, code)
	}
	return f.auth.VerifyAdminOTP(ctx, email, code)
}

// SubmitEmail requests a code for email. An unregistered student is moved to
// the details step instead of failing.
func (f *Flow) SubmitEmail(ctx context.Context, email string) error {
	if f.persona == PersonaExecutive {
		return fmt.Errorf("%w: executives log in with a password", domain.ErrInvalidStep)
	}
	email = strings.TrimSpace(email)
	if err := f.validate.Email("email", email); err != nil {
		return err
	}
	if err := f.begin(StepEmail, false); err != nil {
		return err
	}

	err := f.sendOTP(ctx, email)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Email = email
	if err != nil {
		if f.persona.student() && domain.IsUnregistered(err) {
			f.finish(nil)
			f.state.Step = StepDetails
			return nil
		}
		f.finish(err)
		return err
	}
	f.finish(nil)
	f.state.Step = StepOTP
	f.startCountdownLocked()
	return nil
}

// SubmitCredentials is the executive login: a single username and password step
func (f *Flow) SubmitCredentials(ctx context.Context, username, password string) error {
	if f.persona != PersonaExecutive {
		return fmt.Errorf("%w: %s logs in with an OTP", domain.ErrInvalidStep, f.persona)
	}
	if strings.TrimSpace(username) == "" || password == "" {
		return &domain.ValidationError{Fields: []domain.FieldError{{Field: "username", Message: "username and password are required"}}}
	}
	if err := f.begin(StepEmail, false); err != nil {
		return err
	}

	res, err := f.auth.ExecutiveLogin(ctx, strings.TrimSpace(username), password)
	if err != nil {
		return f.fail(err)
	}
	f.store.Login(res.Token, res.Role)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.finish(nil)
	f.state.Step = StepDone
	return nil
}

// SubmitDetails registers an unknown student, then sends the code
func (f *Flow) SubmitDetails(ctx context.Context, reg domain.StudentRegistration) error {
	f.mu.Lock()
	if reg.EmailID == "" {
		reg.EmailID = f.state.Email
	}
	f.mu.Unlock()
	if err := f.validate.Struct(reg); err != nil {
		return err
	}
	if err := f.begin(StepDetails, false); err != nil {
		return err
	}

	if err := f.students.Register(ctx, reg); err != nil {
		return f.fail(fmt.Errorf("failed to register student: %w", err))
	}
	if err := f.students.SendOTP(ctx, reg.EmailID); err != nil {
		return f.fail(err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.finish(nil)
	f.state.Email = reg.EmailID
	f.state.Step = StepOTP
	f.startCountdownLocked()
	return nil
}

// SubmitCode verifies the code while the countdown runs and hands the token to
// the session store.
func (f *Flow) SubmitCode(ctx context.Context, code string) error {
	f.mu.Lock()
	active, step, email := f.state.Active, f.state.Step, f.state.Email
	f.mu.Unlock()
	if step == StepOTP && !active {
		return f.fail(domain.ErrOTPExpired)
	}
	if err := f.validate.OTP(code); err != nil {
		return err
	}
	if err := f.begin(StepOTP, false); err != nil {
		return err
	}

	res, err := f.verifyOTP(ctx, email, code)
	if err != nil {
		return f.fail(err)
	}
	f.store.Login(res.Token, res.Role)
	f.log.Info("logged in", map[string]interface{}{"persona": string(f.persona), "role": res.Role.String()})

	f.mu.Lock()
	defer f.mu.Unlock()
	f.finish(nil)
	f.state.Active = false
	f.state.Remaining = f.countdown
	if f.persona == PersonaBooking {
		f.state.Step = StepSuccess
	} else {
		f.state.Step = StepDone
	}
	return nil
}

// Resend sends a new code and restarts the countdown
func (f *Flow) Resend(ctx context.Context) error {
	if err := f.begin(StepOTP, true); err != nil {
		return err
	}
	f.mu.Lock()
	email := f.state.Email
	f.mu.Unlock()

	if err := f.sendOTP(ctx, email); err != nil {
		return f.fail(err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.finish(nil)
	f.startCountdownLocked()
	if f.notifier != nil {
		f.notifier.Success("A new code has been sent to " + email)
	}
	return nil
}

// Acknowledge closes the booking success screen
func (f *Flow) Acknowledge() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.Step != StepSuccess {
		return fmt.Errorf("%w: %s", domain.ErrInvalidStep, f.state.Step)
	}
	f.state.Step = StepDone
	return nil
}

// Tick advances the countdown by one second. It returns domain.ErrOTPExpired on
// the tick that exhausts it.
func (f *Flow) Tick() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.state.Active {
		return nil
	}
	f.elapsed++
	if f.elapsed < f.countdown {
		f.state.Remaining = f.countdown - f.elapsed
		return nil
	}

	f.elapsed = 0
	f.state.Active = false
	f.state.Remaining = f.countdown
	f.state.Err = domain.ErrOTPExpired
	if f.persona == PersonaAdmin {
		f.state.Step = StepEmail
	}
	if f.notifier != nil {
		f.notifier.Error(domain.ErrOTPExpired.Error())
	}
	return domain.ErrOTPExpired
}

// RunCountdown feeds ticks into Tick until ctx is done
func (f *Flow) RunCountdown(ctx context.Context, ticks <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			if err := f.Tick(); err != nil {
				f.log.Debug("otp countdown expired", map[string]interface{}{"persona": string(f.persona)})
			}
		}
	}
}
