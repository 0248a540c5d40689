package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/careerlens/careerlens/internal/models"
)

type userResponse struct {
	envelope
	User *models.PublicUser `json:"user"`
}

func (c *Client) Login(ctx context.Context, username, password string) (*models.PublicUser, error) {
	var out userResponse
	if err := c.postJSON(ctx, "/api/auth/login", models.LoginRequest{Username: username, Password: password}, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Signup returns the server's confirmation message.
func (c *Client) Signup(ctx context.Context, req models.SignupRequest) (string, error) {
	var out envelope
	if err := c.postJSON(ctx, "/api/auth/signup", req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// GoogleLogin exchanges a Google ID token for the matching user.
func (c *Client) GoogleLogin(ctx context.Context, credential string) (*models.PublicUser, error) {
	var out userResponse
	if err := c.postJSON(ctx, "/api/auth/google", models.GoogleLoginRequest{Credential: credential}, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) GetProfile(ctx context.Context, username string) (*models.ProfileView, error) {
	var out struct {
		envelope
		Profile *models.ProfileView `json:"profile"`
	}
	if err := c.postJSON(ctx, "/api/auth/get-profile", models.UsernameRequest{Username: username}, &out); err != nil {
		return nil, err
	}
	return out.Profile, nil
}

// Image is a profile or banner image attached to UpdateProfile.
type Image struct {
	Banner   bool
	Filename string
	Body     io.Reader
}

func (c *Client) UpdateProfile(ctx context.Context, username string, update models.ProfileUpdate, images ...Image) (string, error) {
	data, err := json.Marshal(update)
	if err != nil {
		return "", err
	}
	req := c.http.R().SetMultipartFormData(map[string]string{
		"username":    username,
		"profileData": string(data),
	})
	for _, img := range images {
		field := "profileImage"
		if img.Banner {
			field = "bannerImage"
		}
		req.SetFileReader(field, img.Filename, img.Body)
	}

	var out envelope
	if err := c.send(ctx, req, http.MethodPost, "/api/auth/update-profile", &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) DeleteAccount(ctx context.Context, username string) (string, error) {
	var out envelope
	if err := c.postJSON(ctx, "/api/auth/delete-account", models.UsernameRequest{Username: username}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
