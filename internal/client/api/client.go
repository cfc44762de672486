// Package api implements the HTTP client for the ResumeCraft backend. It
// holds the token pair for the current session, refreshes the access token
// once on expiry, and classifies failures into the shared error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ekarpova/resumecraft/internal/common"
	"github.com/ekarpova/resumecraft/internal/resume"
)

type Client struct {
	baseURL      string
	httpClient   *http.Client
	accessToken  string
	refreshToken string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// errorEnvelope is the JSON error body the server responds with.
type errorEnvelope struct {
	Message string              `json:"message"`
	Errors  []resume.FieldError `json:"errors"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		buf = bytes.NewBuffer(data)
	} else {
		buf = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+c.accessToken)
	}
	return req, nil
}

// do executes one API call. On a 401 carrying the token-expired message it
// refreshes the token pair once and replays the request; any other failure
// is classified and returned. Submissions are never retried automatically.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	status, envelope, err := c.roundTrip(ctx, method, path, body, out)
	if err != nil {
		return err
	}
	if status < http.StatusBadRequest {
		return nil
	}

	if status == http.StatusUnauthorized &&
		envelope.Message == common.ErrTokenExpired.Error() && c.refreshToken != "" {
		if err := c.refresh(ctx); err != nil {
			return err
		}
		// Token pair rotated, replay once with the new access token.
		status, envelope, err = c.roundTrip(ctx, method, path, body, out)
		if err != nil {
			return err
		}
		if status < http.StatusBadRequest {
			return nil
		}
	}

	return mapStatus(status, envelope)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) (int, errorEnvelope, error) {
	var envelope errorEnvelope

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return 0, envelope, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, envelope, fmt.Errorf("%w: %v", common.ErrorTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		// Decode failures leave an empty envelope; the status alone is
		// enough to classify the error.
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return resp.StatusCode, envelope, nil
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return 0, envelope, fmt.Errorf("%w: decoding response: %v", common.ErrorTransport, err)
		}
	}
	return resp.StatusCode, envelope, nil
}

func mapStatus(status int, envelope errorEnvelope) error {
	switch status {
	case http.StatusBadRequest:
		if len(envelope.Errors) > 0 {
			return &resume.ValidationError{Fields: envelope.Errors}
		}
		if envelope.Message != "" {
			return fmt.Errorf("%w: %s", common.ErrorValidation, envelope.Message)
		}
		return common.ErrorValidation
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return common.ErrorEmailTaken
	default:
		if envelope.Message != "" {
			return fmt.Errorf("%w: %s", common.ErrorInternal, envelope.Message)
		}
		return common.ErrorInternal
	}
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (c *Client) refresh(ctx context.Context) error {
	var resp tokenPairResponse
	body := map[string]string{"refreshToken": c.refreshToken}

	status, envelope, err := c.roundTrip(ctx, http.MethodPost, "/api/auth/refresh", body, &resp)
	if err != nil {
		return err
	}
	if status >= http.StatusBadRequest {
		c.accessToken = ""
		c.refreshToken = ""
		return mapStatus(status, envelope)
	}

	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	return nil
}

func (c *Client) Register(ctx context.Context, email, password, firstName, lastName string) error {
	body := map[string]string{
		"email":     email,
		"password":  password,
		"firstName": firstName,
		"lastName":  lastName,
	}
	return c.do(ctx, http.MethodPost, "/api/auth/register", body, nil)
}

func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp tokenPairResponse
	body := map[string]string{"email": email, "password": password}

	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return err
	}

	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	return nil
}

// Logout drops the in-memory token pair. The refresh token stays valid
// server-side until it expires or is rotated away.
func (c *Client) Logout() {
	c.accessToken = ""
	c.refreshToken = ""
}

func (c *Client) IsAuthenticated() bool {
	return c.accessToken != ""
}

type resumeListResponse struct {
	Resumes []resume.Summary `json:"resumes"`
}

func (c *Client) ListResumes(ctx context.Context) ([]resume.Summary, error) {
	var resp resumeListResponse
	if err := c.do(ctx, http.MethodGet, "/api/resume", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Resumes, nil
}

func (c *Client) GetResume(ctx context.Context, id string) (*resume.Aggregate, error) {
	var agg resume.Aggregate
	if err := c.do(ctx, http.MethodGet, "/api/resume/"+url.PathEscape(id), nil, &agg); err != nil {
		return nil, err
	}
	return &agg, nil
}

type createResumeResponse struct {
	ResumeID string `json:"resumeId"`
}

func (c *Client) CreateResume(ctx context.Context, title string, template resume.Template) (string, error) {
	var resp createResumeResponse
	body := map[string]any{"title": title, "template": template}

	if err := c.do(ctx, http.MethodPost, "/api/resume", body, &resp); err != nil {
		return "", err
	}
	return resp.ResumeID, nil
}

func (c *Client) UpdateResume(ctx context.Context, id, title string, template resume.Template, isPublic bool) error {
	body := map[string]any{"title": title, "template": template, "isPublic": isPublic}
	return c.do(ctx, http.MethodPut, "/api/resume/"+url.PathEscape(id), body, nil)
}

func (c *Client) DeleteResume(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/resume/"+url.PathEscape(id), nil, nil)
}

func (c *Client) SavePersonalInfo(ctx context.Context, resumeID string, p *resume.PersonalInfo) error {
	return c.do(ctx, http.MethodPost, "/api/resume/"+url.PathEscape(resumeID)+"/personal-info", p, nil)
}

type sectionInsertResponse struct {
	ID string `json:"id"`
}

func (c *Client) AddWorkExperience(ctx context.Context, resumeID string, w *resume.WorkExperience) (string, error) {
	var resp sectionInsertResponse
	err := c.do(ctx, http.MethodPost, "/api/resume/"+url.PathEscape(resumeID)+"/work-experience", w, &resp)
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) AddEducation(ctx context.Context, resumeID string, e *resume.Education) (string, error) {
	var resp sectionInsertResponse
	err := c.do(ctx, http.MethodPost, "/api/resume/"+url.PathEscape(resumeID)+"/education", e, &resp)
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) AddSkill(ctx context.Context, resumeID string, s *resume.Skill) (string, error) {
	var resp sectionInsertResponse
	err := c.do(ctx, http.MethodPost, "/api/resume/"+url.PathEscape(resumeID)+"/skills", s, &resp)
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

// Profile is the account view returned by the server.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/api/user/profile", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProfile(ctx context.Context, firstName, lastName, phone string) error {
	body := map[string]string{"firstName": firstName, "lastName": lastName, "phone": phone}
	return c.do(ctx, http.MethodPut, "/api/user/profile", body, nil)
}

func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{"currentPassword": currentPassword, "newPassword": newPassword}
	return c.do(ctx, http.MethodPut, "/api/user/password", body, nil)
}

func (c *Client) DeleteAccount(ctx context.Context, password string) error {
	body := map[string]string{"password": password}
	if err := c.do(ctx, http.MethodDelete, "/api/user/account", body, nil); err != nil {
		return err
	}
	c.Logout()
	return nil
}

// Stats mirrors the server's per-user counters.
type Stats struct {
	ResumeCount         int `json:"resumeCount"`
	WorkExperienceCount int `json:"workExperienceCount"`
	EducationCount      int `json:"educationCount"`
	SkillsCount         int `json:"skillsCount"`
}

func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	var s Stats
	if err := c.do(ctx, http.MethodGet, "/api/user/stats", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
