package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Dosada05/sports-portal/models"
	"github.com/Dosada05/sports-portal/repositories"
	"github.com/Dosada05/sports-portal/storage"
)

type TeamService interface {
	GetTeam(ctx context.Context, id string) (*models.Team, error)
	ListTeams(ctx context.Context, ids []string) ([]models.Team, error)
	UpdateTeamMembers(ctx context.Context, principal Principal, id string, members []models.TeamMember) (*models.Team, error)
	UploadTeamLogo(ctx context.Context, principal Principal, id string, filename, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

// NewTeamService accepts a nil uploader; logo uploads then fail with
// ErrStorageUnavailable.
func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader, logger *slog.Logger) TeamService {
	return &teamService{teamRepo: teamRepo, uploader: uploader, logger: logger}
}

func (s *teamService) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	t, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	s.populateLogoURL(t)
	return t, nil
}

func (s *teamService) ListTeams(ctx context.Context, ids []string) ([]models.Team, error) {
	teams, err := s.teamRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, mapRepoError(err)
	}
	for i := range teams {
		s.populateLogoURL(&teams[i])
	}
	return teams, nil
}

func (s *teamService) UpdateTeamMembers(ctx context.Context, principal Principal, id string, members []models.TeamMember) (*models.Team, error) {
	if err := requireAdmin(principal); err != nil {
		return nil, err
	}

	v := newValidationError()
	cleaned := make([]models.TeamMember, 0, len(members))
	for i, member := range members {
		name := strings.TrimSpace(member.Name)
		if name == "" {
			v.Add(fmt.Sprintf("members[%d].name", i), "must be provided")
			continue
		}
		cleaned = append(cleaned, models.TeamMember{Name: name, Email: strings.TrimSpace(member.Email), UserID: member.UserID})
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := s.teamRepo.UpdateMembers(ctx, id, cleaned); err != nil {
		return nil, mapRepoError(err)
	}
	return s.GetTeam(ctx, id)
}

func (s *teamService) UploadTeamLogo(ctx context.Context, principal Principal, id string, filename, contentType string, file io.Reader) (*models.Team, error) {
	if err := requireAdmin(principal); err != nil {
		return nil, err
	}
	if s.uploader == nil {
		return nil, ErrStorageUnavailable
	}
	if !storage.IsLogoContentType(contentType) {
		return nil, fieldError("logo", "must be an image")
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	previousKey := team.LogoKey

	key := storage.TeamLogoKey(id, filename, uuid.NewString())
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	if err := s.teamRepo.UpdateLogoKey(ctx, id, &key); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to clean up uploaded logo", slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, mapRepoError(err)
	}

	if previousKey != nil && *previousKey != "" && *previousKey != key {
		if err := s.uploader.Delete(ctx, *previousKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous team logo", slog.String("key", *previousKey), slog.Any("error", err))
		}
	}

	team.LogoKey = &key
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) populateLogoURL(t *models.Team) {
	if t == nil || t.LogoKey == nil || *t.LogoKey == "" || s.uploader == nil {
		return
	}
	url := s.uploader.GetPublicURL(*t.LogoKey)
	t.LogoURL = &url
}
