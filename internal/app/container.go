package app

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/access"
	"github.com/you/tutorportal/internal/config"
	"github.com/you/tutorportal/internal/dashboard"
	"github.com/you/tutorportal/internal/httpclient"
	"github.com/you/tutorportal/internal/logger"
	"github.com/you/tutorportal/internal/metrics"
	"github.com/you/tutorportal/internal/navigator"
	"github.com/you/tutorportal/internal/otpflow"
	"github.com/you/tutorportal/internal/services"
	"github.com/you/tutorportal/internal/session"
	"github.com/you/tutorportal/internal/validation"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Observability
	Logger   logger.Logger
	Rollbar  *logger.Rollbar
	Notifier *logger.Notifier
	Registry *prometheus.Registry
	Metrics  *metrics.Transport

	// Session and navigation
	Store     *session.Store
	Guard     *access.Guard
	Router    *access.Router
	Validator *validation.Validator

	// Transport
	RawClient     *httpclient.Client
	GeneralClient *httpclient.Client
	StudentClient *httpclient.Client
	Refresher     *services.RefreshDispatcher

	// Services
	AuthSvc      domain.AuthService
	StudentSvc   domain.StudentService
	CategorySvc  domain.CategoryService
	CourseSvc    domain.CourseService
	StaffSvc     domain.StaffService
	TutorSvc     domain.TutorService
	LogSvc       domain.LogService
	AppUpdateSvc domain.AppUpdateService

	// List slices the UI renders from
	Categories *navigator.Manager
	Staff      *dashboard.Staff
	Tutors     *dashboard.Tutors
	Logs       *dashboard.Logs
	AppUpdates *dashboard.AppUpdates
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	container.initObservability()
	container.Store = session.NewStore()
	container.Validator = validation.New(validation.WithOTPLength(cfg.OTPLength))

	if err := container.initAccess(); err != nil {
		return nil, err
	}
	if err := container.initClients(); err != nil {
		return nil, err
	}
	container.initServices()

	return container, nil
}

func (c *Container) initObservability() {
	std := logger.New(os.Stderr, "["+c.Config.AppName+"] ", c.Config.Debug)
	if c.Config.RollbarToken != "" {
		c.Rollbar = logger.NewRollbar(std, logger.RollbarConfig{
			Token:       c.Config.RollbarToken,
			Environment: c.Config.Env,
		})
		c.Logger = c.Rollbar
	} else {
		c.Logger = std
	}
	c.Notifier = logger.NewNotifier(c.Logger)
	c.Registry = prometheus.NewRegistry()
	c.Metrics = metrics.NewTransport(c.Registry)
}

func (c *Container) initAccess() error {
	guard, err := access.NewGuard(c.Config.AccessRules, c.Store, c.Config.LoginRoute)
	if err != nil {
		return fmt.Errorf("failed to build access guard: %w", err)
	}
	c.Guard = guard
	c.Router = access.NewRouter(guard, c.Logger)
	return nil
}

// initClients builds one cookie jar shared by every client so refresh cookies
// set at login reach the refresh endpoints.
func (c *Container) initClients() error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("failed to create cookie jar: %w", err)
	}
	opts := func(rt http.RoundTripper) httpclient.Options {
		return httpclient.Options{Transport: rt, Jar: jar, Timeout: c.Config.HTTPTimeout, Logger: c.Logger}
	}

	c.RawClient = httpclient.New(c.Config.APIBaseURL, opts(nil))
	c.Refresher = services.NewRefreshDispatcher(c.RawClient, c.Store)

	transport := func(policy httpclient.TokenPolicy) http.RoundTripper {
		return httpclient.NewAuthTransport(httpclient.TransportConfig{
			Store:      c.Store,
			Policy:     policy,
			Redirector: c.Router,
			LoginRoute: c.Config.LoginRoute,
			Logger:     c.Logger,
			Metrics:    c.Metrics,

			RefreshTimeout: c.Config.HTTPTimeout,
		})
	}
	c.GeneralClient = httpclient.New(c.Config.APIBaseURL, opts(transport(httpclient.GeneralPolicy(c.Refresher))))
	c.StudentClient = httpclient.New(c.Config.APIBaseURL, opts(transport(httpclient.StudentPolicy(c.Refresher))))
	return nil
}

func (c *Container) initServices() {
	c.AuthSvc = services.NewAuthService(c.GeneralClient, c.Store)
	c.StudentSvc = services.NewStudentService(c.StudentClient, c.Store)
	c.CategorySvc = services.NewCategoryService(c.GeneralClient)
	c.CourseSvc = services.NewCourseService(c.GeneralClient)
	c.StaffSvc = services.NewStaffService(c.GeneralClient)
	c.TutorSvc = services.NewTutorService(c.GeneralClient)
	c.LogSvc = services.NewLogService(c.GeneralClient)
	c.AppUpdateSvc = services.NewAppUpdateService(c.GeneralClient)

	c.Categories = navigator.NewManager(c.CategorySvc, navigator.New(), c.Validator, c.Notifier, c.Logger)
	c.Staff = dashboard.NewStaff(c.StaffSvc, c.Validator, c.Notifier, c.Logger)
	c.Tutors = dashboard.NewTutors(c.TutorSvc, c.Notifier, c.Logger)
	c.Logs = dashboard.NewLogs(c.LogSvc, c.Validator, c.Notifier, c.Logger)
	c.AppUpdates = dashboard.NewAppUpdates(c.AppUpdateSvc, c.Validator, c.Notifier, c.Logger)
}

// NewLoginFlow starts a login form for persona
func (c *Container) NewLoginFlow(persona otpflow.Persona) (*otpflow.Flow, error) {
	return otpflow.New(otpflow.Config{
		Persona:   persona,
		Auth:      c.AuthSvc,
		Students:  c.StudentSvc,
		Store:     c.Store,
		Validator: c.Validator,
		Notifier:  c.Notifier,
		Logger:    c.Logger,
		Countdown: int(c.Config.OTPCountdown.Seconds()),
	})
}

// Close flushes pending error reports
func (c *Container) Close() error {
	if c.Rollbar != nil {
		c.Rollbar.Close()
	}
	return nil
}
