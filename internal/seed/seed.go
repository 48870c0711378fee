package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gradesphere/gradesphere/internal/app/models"
	"github.com/gradesphere/gradesphere/internal/app/repositories"
	"github.com/gradesphere/gradesphere/internal/config"
	"github.com/gradesphere/gradesphere/internal/pkg/apperrors"
)

// CreateDefaultData bootstraps the first administrator account so role
// assignment does not depend on an administrator already existing. Webhook
// delivery for the same subject later is a no-op.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	subjectID := strings.TrimSpace(cfg.Seed.AdminSubjectID)
	email := strings.ToLower(strings.TrimSpace(cfg.Seed.AdminEmail))
	if subjectID == "" || email == "" {
		lgr.Debug().Msg("Seed admin not configured, skipping")
		return nil
	}

	userRepo := repositories.NewUserRepository(dbPool)

	existing, err := userRepo.GetBySubjectID(ctx, subjectID)
	if err == nil {
		if existing.RoleType != models.RoleAdministrator {
			if err := userRepo.UpdateRole(ctx, existing.ID, models.RoleAdministrator); err != nil {
				return err
			}
			lgr.Info().Str("subject_id", subjectID).Msg("Promoted seed user to administrator")
		}
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	admin := &models.User{
		SubjectID: subjectID,
		Email:     email,
		RoleType:  models.RoleAdministrator,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Warn().Str("email", email).Msg("Seed admin email already taken, skipping")
			return nil
		}
		return err
	}

	lgr.Info().Str("subject_id", subjectID).Msg("Seed administrator created")
	return nil
}
