package e2e

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/tutorportal/domain"
)

// StaffEmails lists the stored staff members by email
func (ts *TestServer) StaffEmails() []string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	out := make([]string, 0, len(ts.staff))
	for _, s := range ts.staff {
		out = append(out, s.Email)
	}
	return out
}

func (ts *TestServer) listStaff(c *gin.Context) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	premium := c.Query("isPremium")
	items := []domain.Staff{}
	for _, s := range ts.staff {
		if premium == "" || (premium == "true") == s.IsPremium {
			items = append(items, s)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"staffs":     items,
		"pagination": gin.H{"currentPage": 1, "totalPages": 1, "totalItems": len(items)},
	})
}

func (ts *TestServer) createStaff(c *gin.Context) {
	s := domain.Staff{
		Name:        c.PostForm("name"),
		Email:       c.PostForm("email"),
		PhoneNumber: c.PostForm("phoneNumber"),
		Subject:     c.PostForm("subject"),
		IsPremium:   c.PostForm("isPremium") == "true",
	}
	if fh, err := c.FormFile("photo"); err == nil {
		s.PhotoURL = "/uploads/" + fh.Filename
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	for _, existing := range ts.staff {
		if existing.Email == s.Email {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already used"})
			return
		}
	}
	s.ID = domain.ID(ts.newID("staff"))
	ts.staff = append(ts.staff, s)
	c.JSON(http.StatusCreated, gin.H{"message": "Staff created", "staff": s})
}

func (ts *TestServer) deleteStaff(c *gin.Context) {
	id := domain.ID(c.Param("id"))
	ts.mu.Lock()
	defer ts.mu.Unlock()
	var found bool
	ts.staff, found = without(ts.staff, func(s domain.Staff) bool { return s.ID == id })
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Staff not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff deleted"})
}
