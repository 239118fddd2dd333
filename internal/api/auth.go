package api

import (
	"context"
	"net/http"

	"github.com/akovalenko/fitterm/internal/domain"
)

// AuthService wraps the v1/auth endpoints.
type AuthService struct {
	c *Client
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the registration request body.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullname"`
	Email    string `json:"email,omitempty"`
}

// TokenPair is what login and refresh return.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ProfileUpdate carries the mutable profile fields; empty fields are
// omitted so the server only patches what was provided.
type ProfileUpdate struct {
	FullName string `json:"fullname,omitempty"`
	Email    string `json:"email,omitempty"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	return s.c.do(ctx, http.MethodPost, "v1/auth/register", nil, req, nil)
}

func (s *AuthService) Login(ctx context.Context, creds Credentials) (*TokenPair, error) {
	var out TokenPair
	if err := s.c.do(ctx, http.MethodPost, "v1/auth/login", nil, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AuthService) Me(ctx context.Context) (*domain.UserProfile, error) {
	var out domain.UserProfile
	if err := s.c.do(ctx, http.MethodGet, "v1/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.c.do(ctx, http.MethodPost, "v1/auth/logout", nil, nil, nil)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	body := map[string]string{"refreshToken": refreshToken}
	var out TokenPair
	if err := s.c.do(ctx, http.MethodPost, "v1/auth/refresh", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*domain.UserProfile, error) {
	var out domain.UserProfile
	if err := s.c.do(ctx, http.MethodPatch, "v1/auth/"+userID+"/update-user", nil, update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadAvatar sends the image at filePath as multipart form data.
func (s *AuthService) UploadAvatar(ctx context.Context, userID, filePath string) error {
	return s.c.upload(ctx, "v1/auth/"+userID+"/upload-avatar", filePath, nil, nil)
}
