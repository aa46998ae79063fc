package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/tutorportal/domain"
)

func TestClient_JSON(t *testing.T) {
	var gotMethod, gotPath, gotQuery, gotRequestID, gotContentType string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotQuery = r.Method, r.URL.Path, r.URL.RawQuery
		gotRequestID = r.Header.Get(RequestIDHeader)
		gotContentType = r.Header.Get("Content-Type")
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ok","count":2}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/", Options{})
	var out struct {
		Message string `json:"message"`
		Count   int    `json:"count"`
	}

	err := c.Post(context.Background(), "/send-otp", map[string]string{"email": "a@b.co"}, &out)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/send-otp", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "a@b.co", gotBody["email"])
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, 2, out.Count)

	err = c.Get(context.Background(), "/categories", PageValues(domain.PageQuery{Page: 2, Limit: 10}), nil)
	require.NoError(t, err)
	assert.Equal(t, "limit=10&page=2", gotQuery)
}

func TestClient_APIError(t *testing.T) {
	tests := []struct {
		name             string
		status           int
		body             string
		expectedMsg      string
		expectUnregister bool
	}{
		{name: "message field", status: 400, body: `{"message":"Invalid email"}`, expectedMsg: "Invalid email"},
		{name: "error field", status: 500, body: `{"error":"db down"}`, expectedMsg: "db down"},
		{name: "unregistered student", status: 404, body: `{"message":"Student not found","isRegistered":false}`, expectedMsg: "Student not found", expectUnregister: true},
		{name: "non json body", status: 502, body: `<html>bad gateway</html>`, expectedMsg: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := New(srv.URL, Options{}).Post(context.Background(), "/students/send-otp", map[string]string{}, nil)
			require.Error(t, err)

			var apiErr *domain.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.expectedMsg, apiErr.Message)
			assert.Equal(t, tt.expectUnregister, domain.IsUnregistered(err))
		})
	}
}

func TestClient_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "Mathematics", r.FormValue("categoryName"))

		f, hdr, err := r.FormFile("image")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "math.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := New(srv.URL, Options{}).Multipart(context.Background(), http.MethodPost, "/categories/create",
		map[string]string{"categoryName": "Mathematics"},
		[]domain.FileUpload{{FieldName: "image", FileName: "math.png", ContentType: "image/png", Content: []byte{0x89, 'P', 'N', 'G'}}},
		nil)
	require.NoError(t, err)
}

func TestPathID(t *testing.T) {
	assert.Equal(t, "/tutors/42/status", PathID("/tutors", "42", "status"))
	assert.Equal(t, "/courses/a%2Fb", PathID("/courses", "a/b"))
}
