package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/golang-jwt/jwt/v5"

	"github.com/you/tutorportal/domain"
)

// API is the REST surface the services call. *httpclient.Client implements it.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Put(ctx context.Context, path string, body, out interface{}) error
	Patch(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string, out interface{}) error
	Multipart(ctx context.Context, method, path string, fields map[string]string, files []domain.FileUpload, out interface{}) error
}

// authPayload covers every login, verify and refresh response shape
type authPayload struct {
	Token       string       `json:"token"`
	AccessToken string       `json:"accessToken"`
	Role        string       `json:"role"`
	Data        *authPayload `json:"data"`
}

// result normalizes the payload. A missing role is read from the token's
// role claim, then falls back to fallback.
func (p *authPayload) result(fallback domain.Role) (*domain.AuthResult, error) {
	if p.Data != nil && p.Token == "" && p.AccessToken == "" {
		return p.Data.result(fallback)
	}
	token := p.Token
	if token == "" {
		token = p.AccessToken
	}
	if token == "" {
		return nil, domain.ErrTokenMissing
	}

	role := domain.ParseRole(p.Role)
	if role == domain.RoleNone {
		role = roleClaim(token)
	}
	if role == domain.RoleNone {
		role = fallback
	}
	return &domain.AuthResult{Token: token, Role: role}, nil
}

// roleClaim reads the role claim without verifying the signature; the backend owns verification
func roleClaim(token string) domain.Role {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return domain.RoleNone
	}
	if r, ok := claims["role"].(string); ok {
		return domain.ParseRole(r)
	}
	return domain.RoleNone
}

// listEnvelope is the paginated list shape; items may also sit under a resource key
type listEnvelope struct {
	Data       json.RawMessage `json:"data"`
	Pagination *pageMeta       `json:"pagination"`
	Meta       *pageMeta       `json:"meta"`
}

// pageMeta accepts both the canonical pagination keys and the short meta keys
type pageMeta struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int   `json:"totalItems"`
	HasNextPage *bool `json:"hasNextPage"`
	HasPrevPage *bool `json:"hasPrevPage"`

	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
	Limit int `json:"limit"`
}

func (m *pageMeta) pagination() *domain.Pagination {
	if m == nil {
		return nil
	}
	p := &domain.Pagination{
		CurrentPage: first(m.CurrentPage, m.Page),
		TotalPages:  first(m.TotalPages, m.Pages),
		TotalItems:  first(m.TotalItems, m.Total),
	}
	if p.TotalPages == 0 && m.Limit > 0 && p.TotalItems > 0 {
		p.TotalPages = (p.TotalItems + m.Limit - 1) / m.Limit
	}
	if p.CurrentPage == 0 && p.TotalItems > 0 {
		p.CurrentPage = 1
	}
	if m.HasNextPage != nil {
		p.HasNextPage = *m.HasNextPage
	} else {
		p.HasNextPage = p.CurrentPage < p.TotalPages
	}
	if m.HasPrevPage != nil {
		p.HasPrevPage = *m.HasPrevPage
	} else {
		p.HasPrevPage = p.CurrentPage > 1
	}
	return p
}

func first(vals ...int) int {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

// decodeList decodes a bare array or a {data|<key>, pagination|meta} envelope
func decodeList[W any](raw json.RawMessage, keys ...string) ([]W, *domain.Pagination, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil, nil
	}

	if raw[0] == '[' {
		var items []W
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, nil, fmt.Errorf("could not decode list: %w", err)
		}
		return items, nil, nil
	}

	var env listEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, nil, fmt.Errorf("could not decode list envelope: %w", err)
	}
	meta := env.Pagination
	if meta == nil {
		meta = env.Meta
	}

	data := env.Data
	if len(data) == 0 && len(keys) > 0 {
		var named map[string]json.RawMessage
		if err := json.Unmarshal(raw, &named); err != nil {
			return nil, nil, fmt.Errorf("could not decode list envelope: %w", err)
		}
		for _, k := range keys {
			if v, ok := named[k]; ok {
				data = v
				break
			}
		}
	}

	// {data: {items, pagination}} nests one level deeper
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return decodeList[W](trimmed, keys...)
	}

	var items []W
	if len(data) > 0 {
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, nil, fmt.Errorf("could not decode list items: %w", err)
		}
	}
	return items, meta.pagination(), nil
}

// fetchList GETs path and decodes it with decodeList
func fetchList[W any](ctx context.Context, api API, path string, query url.Values, keys ...string) ([]W, *domain.Pagination, error) {
	var raw json.RawMessage
	if err := api.Get(ctx, path, query, &raw); err != nil {
		return nil, nil, err
	}
	return decodeList[W](raw, keys...)
}

// decodeItem unwraps {data: item} or {<key>: item}, or decodes a bare item
func decodeItem[T any](raw json.RawMessage, keys ...string) (*T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '{' {
		var named map[string]json.RawMessage
		if err := json.Unmarshal(raw, &named); err == nil {
			for _, k := range append([]string{"data"}, keys...) {
				if v, ok := named[k]; ok && len(bytes.TrimSpace(v)) > 0 && bytes.TrimSpace(v)[0] == '{' {
					raw = v
					break
				}
			}
		}
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("could not decode item: %w", err)
	}
	return &out, nil
}
