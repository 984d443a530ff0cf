package handlers

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/sports-portal/middleware"
	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/services"
)

const testTeamID = "3f6c2a7d-5b1e-4f0a-8c9d-2e4b6a8c0d12"

type stubTeamService struct {
	gotPrincipal   services.Principal
	gotFilename    string
	gotContentType string
	gotBody        []byte
	gotMembers     []models.TeamMember
	err            error
}

func (s *stubTeamService) GetTeam(_ context.Context, id string) (*models.Team, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Team{ID: id, TeamName: "Falcons"}, nil
}

func (s *stubTeamService) ListTeams(context.Context, []string) ([]models.Team, error) {
	return []models.Team{}, s.err
}

func (s *stubTeamService) UpdateTeamMembers(_ context.Context, p services.Principal, id string, members []models.TeamMember) (*models.Team, error) {
	s.gotPrincipal, s.gotMembers = p, members
	if s.err != nil {
		return nil, s.err
	}
	return &models.Team{ID: id, Members: members}, nil
}

func (s *stubTeamService) UploadTeamLogo(_ context.Context, p services.Principal, id, filename, contentType string, file io.Reader) (*models.Team, error) {
	s.gotPrincipal, s.gotFilename, s.gotContentType = p, filename, contentType
	body, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	s.gotBody = body
	if s.err != nil {
		return nil, s.err
	}
	url := "https://cdn.example.test/teams/" + id + "/logo.png"
	return &models.Team{ID: id, LogoURL: &url}, nil
}

func newTeamRouter(ts services.TeamService) http.Handler {
	h := NewTeamHandler(ts)
	auth := middleware.NewAuthenticator(testSecret, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := chi.NewRouter()
	r.Get("/api/teams/{teamID}", h.GetTeam)
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Put("/api/teams/{teamID}/members", h.UpdateMembers)
		r.Put("/api/teams/{teamID}/logo", h.UploadLogo)
	})
	return r
}

func logoRequest(t *testing.T, auth, contentType string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="logo"; filename="logo.png"`)
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/teams/"+testTeamID+"/logo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", auth)
	return req
}

func TestGetTeam_Handler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		rec := do(t, newTeamRouter(&stubTeamService{}), http.MethodGet, "/api/teams/"+testTeamID, "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"team_name":"Falcons"`)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := do(t, newTeamRouter(&stubTeamService{}), http.MethodGet, "/api/teams/not-a-uuid", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing", func(t *testing.T) {
		rec := do(t, newTeamRouter(&stubTeamService{err: services.ErrTeamNotFound}), http.MethodGet, "/api/teams/"+testTeamID, "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUpdateMembers_Handler(t *testing.T) {
	svc := &stubTeamService{}
	body := `{"members":[{"name":"Asha","email":"asha@campus.edu"}]}`
	rec := do(t, newTeamRouter(svc), http.MethodPut, "/api/teams/"+testTeamID+"/members", token(t, "admin@campus.edu", "admin"), body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin@campus.edu", svc.gotPrincipal.Email)
	require.Len(t, svc.gotMembers, 1)
	assert.Equal(t, "Asha", svc.gotMembers[0].Name)

	svc.err = services.ErrUnauthorized
	rec = do(t, newTeamRouter(svc), http.MethodPut, "/api/teams/"+testTeamID+"/members", token(t, "fan@campus.edu", "user"), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUploadLogo_Handler(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nfake")

	t.Run("uploads file", func(t *testing.T) {
		svc := &stubTeamService{}
		rec := httptest.NewRecorder()
		newTeamRouter(svc).ServeHTTP(rec, logoRequest(t, token(t, "admin@campus.edu", "admin"), "image/png", png))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "logo.png", svc.gotFilename)
		assert.Equal(t, "image/png", svc.gotContentType)
		assert.Equal(t, png, svc.gotBody)
		assert.Contains(t, rec.Body.String(), "logo_url")
	})

	t.Run("storage not configured", func(t *testing.T) {
		svc := &stubTeamService{err: services.ErrStorageUnavailable}
		rec := httptest.NewRecorder()
		newTeamRouter(svc).ServeHTTP(rec, logoRequest(t, token(t, "admin@campus.edu", "admin"), "image/png", png))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("missing file field", func(t *testing.T) {
		rec := do(t, newTeamRouter(&stubTeamService{}), http.MethodPut, "/api/teams/"+testTeamID+"/logo", token(t, "admin@campus.edu", "admin"), `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("requires token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTeamRouter(&stubTeamService{}).ServeHTTP(rec, logoRequest(t, "", "image/png", png))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
