package services

import (
	"encoding/json"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/tutorportal/domain"
)

type item struct {
	ID   domain.ID `json:"id"`
	Name string    `json:"name"`
}

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		keys          []string
		expectedIDs   []domain.ID
		expectedPage  *domain.Pagination
		renderControl bool
	}{
		{
			name:        "legacy bare array",
			raw:         `[{"id":1,"name":"a"},{"id":"b2","name":"b"}]`,
			expectedIDs: []domain.ID{"1", "b2"},
		},
		{
			name:          "data with pagination",
			raw:           `{"data":[{"id":"x"}],"pagination":{"currentPage":1,"totalPages":1,"totalItems":1,"hasNextPage":false,"hasPrevPage":false}}`,
			expectedIDs:   []domain.ID{"x"},
			expectedPage:  &domain.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 1},
			renderControl: true,
		},
		{
			name:         "data with zero items",
			raw:          `{"data":[],"pagination":{"currentPage":1,"totalPages":0,"totalItems":0}}`,
			expectedIDs:  nil,
			expectedPage: &domain.Pagination{CurrentPage: 1},
		},
		{
			name:          "meta with short keys",
			raw:           `{"data":[{"id":"1"},{"id":"2"}],"meta":{"page":2,"total":25,"limit":10}}`,
			expectedIDs:   []domain.ID{"1", "2"},
			expectedPage:  &domain.Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 25, HasNextPage: true, HasPrevPage: true},
			renderControl: true,
		},
		{
			name:          "resource key",
			raw:           `{"staffs":[{"id":"s1"}],"pagination":{"currentPage":1,"totalPages":1,"totalItems":1}}`,
			keys:          []string{"staffs"},
			expectedIDs:   []domain.ID{"s1"},
			expectedPage:  &domain.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 1},
			renderControl: true,
		},
		{
			name:          "nested data object",
			raw:           `{"data":{"items":[{"id":"n1"}],"pagination":{"currentPage":1,"totalPages":2,"totalItems":11}}}`,
			keys:          []string{"items"},
			expectedIDs:   []domain.ID{"n1"},
			expectedPage:  &domain.Pagination{CurrentPage: 1, TotalPages: 2, TotalItems: 11, HasNextPage: true},
			renderControl: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, page, err := decodeList[item](json.RawMessage(tt.raw), tt.keys...)
			require.NoError(t, err)

			var ids []domain.ID
			for _, it := range items {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
			assert.Equal(t, tt.expectedPage, page)
			assert.Equal(t, tt.renderControl, page.ShouldRender())
		})
	}
}

func TestDecodeList_Invalid(t *testing.T) {
	_, _, err := decodeList[item](json.RawMessage(`{"data":"nope"}`))
	assert.Error(t, err)
}

func TestAuthPayload_Result(t *testing.T) {
	execJWT := signedToken(t, jwt.MapClaims{"role": "executive"})

	tests := []struct {
		name         string
		payload      authPayload
		fallback     domain.Role
		expectedRole domain.Role
		expectedErr  error
	}{
		{name: "explicit role", payload: authPayload{Token: "t", Role: "student"}, fallback: domain.RoleAdmin, expectedRole: domain.RoleStudent},
		{name: "role claim", payload: authPayload{AccessToken: execJWT}, fallback: domain.RoleAdmin, expectedRole: domain.RoleExecutive},
		{name: "fallback role", payload: authPayload{Token: "opaque"}, fallback: domain.RoleAdmin, expectedRole: domain.RoleAdmin},
		{name: "missing token", payload: authPayload{Role: "admin"}, fallback: domain.RoleAdmin, expectedErr: domain.ErrTokenMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.payload.result(tt.fallback)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedRole, res.Role)
		})
	}
}
