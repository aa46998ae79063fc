package e2e

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/you/tutorportal/domain"
)

const refreshCookie = "refresh_token"

// TestServer is an in-memory stand-in for the tutoring backend. It issues
// signed tokens and keeps the category tree in flat tables.
type TestServer struct {
	Server  *httptest.Server
	Router  *gin.Engine
	BaseURL string

	secret   []byte
	tokenTTL time.Duration

	mu          sync.Mutex
	admins      map[string]bool
	executives  map[string]string
	students    map[string]domain.StudentProfile
	otps        map[string]string
	refreshes   map[string]session
	revoked     map[string]bool
	failRefresh bool
	calls       []string
	nextID      int

	categories    []categoryRow
	subcategories []subcategoryRow
	courses       []courseRow
	staff         []domain.Staff
}

type session struct {
	subject string
	role    domain.Role
}

type categoryRow struct{ id, name, definition string }

type subcategoryRow struct{ id, name, categoryID, parentID string }

type courseRow struct {
	id, name, fullName, categoryID, subcategoryID string
	pdfs                                          []string
}

// NewTestServer starts the fake backend; it is closed when the test ends
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	ts := &TestServer{
		secret:     []byte("e2e-test-secret"),
		tokenTTL:   15 * time.Minute,
		admins:     map[string]bool{},
		executives: map[string]string{},
		students:   map[string]domain.StudentProfile{},
		otps:       map[string]string{},
		refreshes:  map[string]session{},
		revoked:    map[string]bool{},
	}
	ts.Router = ts.routes()
	ts.Server = httptest.NewServer(ts.Router)
	ts.BaseURL = ts.Server.URL + "/api"

	t.Cleanup(ts.Server.Close)
	return ts
}

func (ts *TestServer) routes() *gin.Engine {
	r := gin.New()
	r.Use(ts.record)

	api := r.Group("/api")
	api.POST("/send-otp", ts.sendAdminOTP)
	api.POST("/verify-otp", ts.verifyAdminOTP)
	api.POST("/executive/login", ts.executiveLogin)
	api.POST("/auth/logout", ts.logout)
	api.GET("/auth/refresh", ts.refresh(domain.RoleAdmin))
	api.GET("/executive/refresh", ts.refresh(domain.RoleExecutive))
	api.GET("/students/refresh", ts.refresh(domain.RoleStudent))

	api.POST("/students/send-otp", ts.sendStudentOTP)
	api.POST("/students/login", ts.studentLogin)
	api.POST("/students", ts.registerStudent)
	student := api.Group("/students", ts.auth(domain.RoleStudent))
	student.GET("/profile", ts.studentProfile)
	student.GET("/bookings", ts.studentBookings)

	api.GET("/categories", ts.auth(domain.RoleAdmin, domain.RoleExecutive), ts.listCategories)
	staff := api.Group("/staffs", ts.auth(domain.RoleAdmin, domain.RoleExecutive))
	staff.GET("", ts.listStaff)
	staff.POST("/create", ts.createStaff)
	staff.DELETE("/:id", ts.deleteStaff)

	admin := api.Group("", ts.auth(domain.RoleAdmin))
	admin.POST("/categories/create", ts.createCategory)
	admin.PUT("/categories/:id", ts.updateCategory)
	admin.DELETE("/categories/:id", ts.deleteRow("category"))
	admin.POST("/subcategories/create", ts.createSubcategory)
	admin.DELETE("/subcategories/:id", ts.deleteRow("subcategory"))
	admin.POST("/courses/create", ts.createCourse)
	admin.DELETE("/courses/:id", ts.deleteRow("course"))

	return r
}

func (ts *TestServer) record(c *gin.Context) {
	ts.mu.Lock()
	ts.calls = append(ts.calls, c.Request.Method+" "+strings.TrimPrefix(c.Request.URL.Path, "/api"))
	ts.mu.Unlock()
	c.Next()
}

// Calls lists every request received, as "METHOD /path"
func (ts *TestServer) Calls() []string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]string(nil), ts.calls...)
}

// CountCalls counts requests to one route
func (ts *TestServer) CountCalls(route string) int {
	n := 0
	for _, c := range ts.Calls() {
		if c == route {
			n++
		}
	}
	return n
}

func (ts *TestServer) AddAdmin(email string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.admins[email] = true
}

func (ts *TestServer) AddExecutive(username, password string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.executives[username] = password
}

// AddStudent registers a student account directly
func (ts *TestServer) AddStudent(profile domain.StudentProfile) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.students[profile.EmailID] = profile
}

// OTP returns the code last sent to email
func (ts *TestServer) OTP(email string) string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.otps[email]
}

// Revoke makes the backend answer 401 to token from now on
func (ts *TestServer) Revoke(token string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.revoked[token] = true
}

// FailRefresh makes every refresh endpoint answer 401
func (ts *TestServer) FailRefresh(fail bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.failRefresh = fail
}

func (ts *TestServer) issue(subject string, role domain.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(ts.tokenTTL).Unix(),
		"jti":  uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
}

// login issues an access token and sets the refresh cookie
func (ts *TestServer) login(c *gin.Context, subject string, role domain.Role) (string, bool) {
	token, err := ts.issue(subject, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return "", false
	}
	refresh := uuid.NewString()
	ts.mu.Lock()
	ts.refreshes[refresh] = session{subject: subject, role: role}
	ts.mu.Unlock()
	c.SetCookie(refreshCookie, refresh, 3600, "/", "", false, true)
	return token, true
}

func (ts *TestServer) auth(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		ts.mu.Lock()
		revoked := ts.revoked[raw]
		ts.mu.Unlock()
		if raw == "" || revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return ts.secret, nil
		})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}
		role, _ := claims["role"].(string)
		for _, allowed := range roles {
			if domain.Role(role) == allowed {
				c.Set("subject", claims["sub"])
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied"})
	}
}

func (ts *TestServer) sendAdminOTP(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if !ts.admins[body.Email] {
		c.JSON(http.StatusNotFound, gin.H{"message": "Admin not found", "isRegistered": false})
		return
	}
	ts.otps[body.Email] = newOTP()
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

func (ts *TestServer) verifyAdminOTP(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if !ts.consumeOTP(body.Email, body.OTP) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid OTP"})
		return
	}
	// the role is only carried inside the token
	if token, ok := ts.login(c, body.Email, domain.RoleAdmin); ok {
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

func (ts *TestServer) executiveLogin(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	ts.mu.Lock()
	pwd, ok := ts.executives[body.Username]
	ts.mu.Unlock()
	if !ok || pwd != body.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	if token, ok := ts.login(c, body.Username, domain.RoleExecutive); ok {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"accessToken": token, "role": "Executive"}})
	}
}

func (ts *TestServer) logout(c *gin.Context) {
	if refresh, err := c.Cookie(refreshCookie); err == nil {
		ts.mu.Lock()
		delete(ts.refreshes, refresh)
		ts.mu.Unlock()
	}
	c.SetCookie(refreshCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (ts *TestServer) refresh(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		refresh, err := c.Cookie(refreshCookie)
		ts.mu.Lock()
		sess, ok := ts.refreshes[refresh]
		fail := ts.failRefresh
		ts.mu.Unlock()
		if err != nil || !ok || fail || sess.role != role {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Refresh token expired"})
			return
		}
		token, err := ts.issue(sess.subject, sess.role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "role": string(role)})
	}
}

func (ts *TestServer) consumeOTP(key, code string) bool {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if want, ok := ts.otps[key]; !ok || want != code {
		return false
	}
	delete(ts.otps, key)
	return true
}

func (ts *TestServer) sendStudentOTP(c *gin.Context) {
	var body struct {
		EmailID string `json:"emailId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if _, ok := ts.students[body.EmailID]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Student not found", "isRegistered": false})
		return
	}
	ts.otps[body.EmailID] = newOTP()
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent", "isRegistered": true})
}

func (ts *TestServer) registerStudent(c *gin.Context) {
	var reg domain.StudentRegistration
	if err := c.ShouldBindJSON(&reg); err != nil || reg.EmailID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid registration"})
		return
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.nextID++
	ts.students[reg.EmailID] = domain.StudentProfile{
		UserID:      domain.ID(fmt.Sprintf("stu-%d", ts.nextID)),
		StudentName: reg.StudentName,
		ParentName:  reg.ParentName,
		PhoneNumber: reg.PhoneNumber,
		EmailID:     reg.EmailID,
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Student registered"})
}

func (ts *TestServer) studentLogin(c *gin.Context) {
	var body struct {
		EmailID string `json:"emailId"`
		OTP     string `json:"otp"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if !ts.consumeOTP(body.EmailID, body.OTP) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid OTP"})
		return
	}
	if token, ok := ts.login(c, body.EmailID, domain.RoleStudent); ok {
		c.JSON(http.StatusOK, gin.H{"token": token, "role": "student"})
	}
}

func (ts *TestServer) studentProfile(c *gin.Context) {
	email, _ := c.Get("subject")
	ts.mu.Lock()
	profile, ok := ts.students[fmt.Sprint(email)]
	ts.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Student not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"student": profile})
}

func (ts *TestServer) studentBookings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"bookings":   []gin.H{{"bookingId": "b1", "classId": "c1", "status": "confirmed"}},
		"pagination": gin.H{"currentPage": 1, "totalPages": 1, "totalItems": 1},
	})
}

func newOTP() string {
	return fmt.Sprintf("%06d", time.Now().UnixNano()%1000000)
}
