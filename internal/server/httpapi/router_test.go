package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ekarpova/resumecraft/internal/common"
	"github.com/ekarpova/resumecraft/internal/logging"
	"github.com/ekarpova/resumecraft/internal/resume"
	"github.com/ekarpova/resumecraft/internal/server/auth"
	"github.com/ekarpova/resumecraft/internal/server/config"
	"github.com/ekarpova/resumecraft/internal/server/refreshtokens"
	"github.com/ekarpova/resumecraft/internal/server/resumes"
	"github.com/ekarpova/resumecraft/internal/server/users"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memUsersRepo struct {
	seq   int
	users map[string]*users.User // keyed by id
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{users: map[string]*users.User{}}
}

func (m *memUsersRepo) Create(ctx context.Context, u *users.User) (*users.User, error) {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return nil, common.ErrorEmailTaken
		}
	}
	m.seq++
	u.ID = fmt.Sprintf("u%d", m.seq)
	u.CreatedAt = time.Now()
	m.users[u.ID] = u
	return u, nil
}

func (m *memUsersRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memUsersRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (m *memUsersRepo) UpdateProfile(ctx context.Context, id, firstName, lastName, phone string) error {
	u, ok := m.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.FirstName, u.LastName, u.Phone = firstName, lastName, phone
	return nil
}

func (m *memUsersRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	u, ok := m.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *memUsersRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memUsersRepo) Stats(ctx context.Context, id string) (*users.Stats, error) {
	return &users.Stats{ResumeCount: 1, SkillsCount: 3}, nil
}

type memRefreshRepo struct {
	stored map[string]*refreshtokens.RefreshToken
}

func newMemRefreshRepo() *memRefreshRepo {
	return &memRefreshRepo{stored: map[string]*refreshtokens.RefreshToken{}}
}

func (m *memRefreshRepo) Create(ctx context.Context, userID, token string, validity time.Duration) error {
	m.stored[token] = &refreshtokens.RefreshToken{
		UserID: userID, Token: token, ExpiresAt: time.Now().Add(validity),
	}
	return nil
}

func (m *memRefreshRepo) Find(ctx context.Context, token string) (*refreshtokens.RefreshToken, error) {
	rt, ok := m.stored[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return rt, nil
}

func (m *memRefreshRepo) Delete(ctx context.Context, token string) error {
	delete(m.stored, token)
	return nil
}

func (m *memRefreshRepo) DeleteForUser(ctx context.Context, userID string) error {
	for t, rt := range m.stored {
		if rt.UserID == userID {
			delete(m.stored, t)
		}
	}
	return nil
}

type storedResume struct {
	userID   string
	title    string
	template resume.Template
	isPublic bool

	personalInfo *resume.PersonalInfo
	work         []resume.WorkExperience
	education    []resume.Education
	skills       []resume.Skill
}

type memResumeRepo struct {
	seq     int
	resumes map[string]*storedResume
}

func newMemResumeRepo() *memResumeRepo {
	return &memResumeRepo{resumes: map[string]*storedResume{}}
}

func (m *memResumeRepo) owned(id, userID string) (*storedResume, error) {
	r, ok := m.resumes[id]
	if !ok || r.userID != userID {
		return nil, common.ErrorNotFound
	}
	return r, nil
}

func (m *memResumeRepo) Create(ctx context.Context, userID, title string, template resume.Template) (string, error) {
	m.seq++
	id := fmt.Sprintf("r%d", m.seq)
	m.resumes[id] = &storedResume{userID: userID, title: title, template: template}
	return id, nil
}

func (m *memResumeRepo) List(ctx context.Context, userID string) ([]resume.Summary, error) {
	var out []resume.Summary
	for id, r := range m.resumes {
		if r.userID != userID {
			continue
		}
		out = append(out, resume.Summary{ID: id, Title: r.title, Template: r.template})
	}
	return out, nil
}

func (m *memResumeRepo) GetOwned(ctx context.Context, id, userID string) (*resume.Resume, error) {
	r, err := m.owned(id, userID)
	if err != nil {
		return nil, err
	}
	return &resume.Resume{ID: id, UserID: userID, Title: r.title, Template: r.template, IsPublic: r.isPublic}, nil
}

func (m *memResumeRepo) GetAggregate(ctx context.Context, id, userID string) (*resume.Aggregate, error) {
	r, err := m.owned(id, userID)
	if err != nil {
		return nil, err
	}
	agg := &resume.Aggregate{
		Resume:         resume.Resume{ID: id, Title: r.title, Template: r.template},
		PersonalInfo:   &resume.PersonalInfo{},
		WorkExperience: append([]resume.WorkExperience{}, r.work...),
		Education:      append([]resume.Education{}, r.education...),
		Skills:         append([]resume.Skill{}, r.skills...),
		Projects:       []resume.Project{},
		Certifications: []resume.Certification{},
		Languages:      []resume.Language{},
	}
	if r.personalInfo != nil {
		agg.PersonalInfo = r.personalInfo
	}
	return agg, nil
}

func (m *memResumeRepo) Update(ctx context.Context, id, userID, title string, template resume.Template, isPublic bool) error {
	r, err := m.owned(id, userID)
	if err != nil {
		return err
	}
	r.title, r.template, r.isPublic = title, template, isPublic
	return nil
}

func (m *memResumeRepo) Delete(ctx context.Context, id, userID string) error {
	if _, err := m.owned(id, userID); err != nil {
		return err
	}
	delete(m.resumes, id)
	return nil
}

func (m *memResumeRepo) UpsertPersonalInfo(ctx context.Context, resumeID string, p *resume.PersonalInfo) error {
	m.resumes[resumeID].personalInfo = p
	return nil
}

func (m *memResumeRepo) AddWorkExperience(ctx context.Context, resumeID string, w *resume.WorkExperience) (string, error) {
	m.seq++
	id := fmt.Sprintf("w%d", m.seq)
	entry := *w
	entry.ID = id
	m.resumes[resumeID].work = append(m.resumes[resumeID].work, entry)
	return id, nil
}

func (m *memResumeRepo) AddEducation(ctx context.Context, resumeID string, e *resume.Education) (string, error) {
	m.seq++
	id := fmt.Sprintf("e%d", m.seq)
	entry := *e
	entry.ID = id
	m.resumes[resumeID].education = append(m.resumes[resumeID].education, entry)
	return id, nil
}

func (m *memResumeRepo) AddSkill(ctx context.Context, resumeID string, s *resume.Skill) (string, error) {
	m.seq++
	id := fmt.Sprintf("s%d", m.seq)
	entry := *s
	entry.ID = id
	m.resumes[resumeID].skills = append(m.resumes[resumeID].skills, entry)
	return id, nil
}

func testRouterConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "test-secret",
		BcryptCost:                   bcrypt.MinCost,
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		CORSAllowOrigins:             []string{"http://localhost:3000"},
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	cfg := testRouterConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	userService := users.NewService(newMemUsersRepo(), newMemRefreshRepo(), cfg)
	resumeService := resumes.NewService(newMemResumeRepo())
	return NewRouter(cfg, logger, userService, resumeService), cfg
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerAndLogin runs the public auth flow and returns a usable access token.
func registerAndLogin(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": email, "password": "password1", "firstName": "Jane", "lastName": "Doe",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": email, "password": "password1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeBody(t, w)["accessToken"].(string)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r, _ := newTestRouter(t)

	body := gin.H{"email": "jane@example.com", "password": "password1", "firstName": "Jane", "lastName": "Doe"}

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["userId"])

	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already registered", decodeBody(t, w)["message"])
}

func TestRegister_InvalidBody(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "not-an-email", "password": "password1", "firstName": "Jane", "lastName": "Doe",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request body", decodeBody(t, w)["message"])

	// Password below the minimum length is rejected by the same binding.
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "jane@example.com", "password": "short", "firstName": "Jane", "lastName": "Doe",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_WrongCredentials(t *testing.T) {
	r, _ := newTestRouter(t)
	registerAndLogin(t, r, "jane@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "jane@example.com", "password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefresh_RotatesPair(t *testing.T) {
	r, _ := newTestRouter(t)
	registerAndLogin(t, r, "jane@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "jane@example.com", "password": "password1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	refreshToken := decodeBody(t, w)["refreshToken"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/auth/refresh", "", gin.H{"refreshToken": refreshToken})
	require.Equal(t, http.StatusOK, w.Code)
	next := decodeBody(t, w)
	assert.NotEmpty(t, next["accessToken"])
	assert.NotEqual(t, refreshToken, next["refreshToken"])

	// The presented token was rotated away and no longer works.
	w = doJSON(t, r, http.MethodPost, "/api/auth/refresh", "", gin.H{"refreshToken": refreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID_MintedAndEchoed(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "jane@example.com", "password": "password1",
	})
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("X-Request-Id", "client-supplied")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "client-supplied", w.Header().Get("X-Request-Id"))
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	r, cfg := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/resume", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing or invalid token", decodeBody(t, w)["message"])

	w = doJSON(t, r, http.MethodGet, "/api/resume", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// An expired token gets the dedicated message so the client refreshes.
	expired, err := auth.GenerateToken("u1", []byte(cfg.SecretKey), -time.Minute)
	require.NoError(t, err)
	w = doJSON(t, r, http.MethodGet, "/api/resume", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, common.ErrTokenExpired.Error(), decodeBody(t, w)["message"])
}

func TestResumeLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)
	token := registerAndLogin(t, r, "jane@example.com")

	// An empty account lists an empty array, not null.
	w := doJSON(t, r, http.MethodGet, "/api/resume", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"resumes": []}`, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/resume", token, gin.H{"title": "My CV"})
	require.Equal(t, http.StatusCreated, w.Code)
	resumeID := decodeBody(t, w)["resumeId"].(string)
	require.NotEmpty(t, resumeID)

	w = doJSON(t, r, http.MethodGet, "/api/resume", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody(t, w)["resumes"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "modern", list[0].(map[string]any)["template"], "omitted template defaults")

	w = doJSON(t, r, http.MethodPut, "/api/resume/"+resumeID, token, gin.H{
		"title": "Renamed", "template": "classic", "isPublic": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/resume/"+resumeID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	agg := decodeBody(t, w)
	assert.Equal(t, "Renamed", agg["title"])
	assert.NotNil(t, agg["personalInfo"], "aggregate always carries a personal info object")

	w = doJSON(t, r, http.MethodDelete, "/api/resume/"+resumeID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/resume/"+resumeID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSectionWrites(t *testing.T) {
	r, _ := newTestRouter(t)
	token := registerAndLogin(t, r, "jane@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/resume", token, gin.H{"title": "My CV"})
	require.Equal(t, http.StatusCreated, w.Code)
	resumeID := decodeBody(t, w)["resumeId"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/resume/"+resumeID+"/personal-info", token, gin.H{
		"firstName": "  Jane ", "lastName": "Doe", "email": "jane@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/resume/"+resumeID+"/work-experience", token, gin.H{
		"companyName": "Acme", "position": "Engineer", "startDate": "2020-01-01", "isCurrent": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, decodeBody(t, w)["id"])

	w = doJSON(t, r, http.MethodPost, "/api/resume/"+resumeID+"/education", token, gin.H{
		"institution": "MIT", "degree": "BSc", "startDate": "2015-09-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/resume/"+resumeID+"/skills", token, gin.H{
		"skillName": "Go", "skillLevel": "Expert",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The aggregate reflects every write, with whitespace normalized away.
	w = doJSON(t, r, http.MethodGet, "/api/resume/"+resumeID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	agg := decodeBody(t, w)
	assert.Equal(t, "Jane", agg["personalInfo"].(map[string]any)["firstName"])
	assert.Len(t, agg["workExperience"].([]any), 1)
	assert.Len(t, agg["education"].([]any), 1)
	assert.Len(t, agg["skills"].([]any), 1)
}

func TestSectionWrite_ValidationFailure(t *testing.T) {
	r, _ := newTestRouter(t)
	token := registerAndLogin(t, r, "jane@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/resume", token, gin.H{"title": "My CV"})
	require.Equal(t, http.StatusCreated, w.Code)
	resumeID := decodeBody(t, w)["resumeId"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/resume/"+resumeID+"/work-experience", token, gin.H{
		"position": "Engineer", "startDate": "01/2020",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Validation failed", body["message"])

	var fields []string
	for _, e := range body["errors"].([]any) {
		fields = append(fields, e.(map[string]any)["field"].(string))
	}
	assert.Contains(t, fields, "companyName")
	assert.Contains(t, fields, "startDate")
}

func TestSectionWrite_ForeignResume(t *testing.T) {
	r, _ := newTestRouter(t)
	owner := registerAndLogin(t, r, "owner@example.com")
	intruder := registerAndLogin(t, r, "intruder@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/resume", owner, gin.H{"title": "My CV"})
	require.Equal(t, http.StatusCreated, w.Code)
	resumeID := decodeBody(t, w)["resumeId"].(string)

	w = doJSON(t, r, http.MethodPost, "/api/resume/"+resumeID+"/skills", intruder, gin.H{
		"skillName": "Go", "skillLevel": "Expert",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Resume not found", decodeBody(t, w)["message"])

	w = doJSON(t, r, http.MethodGet, "/api/resume/"+resumeID, intruder, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserRoutes(t *testing.T) {
	r, _ := newTestRouter(t)
	token := registerAndLogin(t, r, "jane@example.com")

	w := doJSON(t, r, http.MethodGet, "/api/user/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decodeBody(t, w)
	assert.Equal(t, "jane@example.com", profile["email"])
	assert.Equal(t, "Jane", profile["firstName"])

	w = doJSON(t, r, http.MethodPut, "/api/user/profile", token, gin.H{
		"firstName": "Janet", "lastName": "Doe", "phone": "+1 555 0100",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/user/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Janet", decodeBody(t, w)["firstName"])

	w = doJSON(t, r, http.MethodPut, "/api/user/password", token, gin.H{
		"currentPassword": "wrong", "newPassword": "newpass1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/user/password", token, gin.H{
		"currentPassword": "password1", "newPassword": "newpass1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/user/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/user/account", token, gin.H{"password": "newpass1"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/user/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
