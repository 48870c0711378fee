package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/gradesphere/gradesphere/internal/app/models"
	"github.com/gradesphere/gradesphere/internal/pkg/apperrors"
	"github.com/gradesphere/gradesphere/internal/pkg/auth"
	"github.com/gradesphere/gradesphere/internal/pkg/logger"
	"github.com/gradesphere/gradesphere/internal/pkg/provider"
)

// principalKey is the gin context key holding the authenticated principal.
const principalKey = "principal"

// userResolver looks up the local user synced for a provider subject.
type userResolver interface {
	GetBySubjectID(ctx context.Context, subjectID string) (*models.User, error)
}

// studentResolver looks up a student for token claims validation.
type studentResolver interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// tokenValidator validates locally issued student JWTs.
type tokenValidator interface {
	ValidateStudentToken(tokenString string) (*auth.StudentClaims, error)
}

// AuthMiddleware authenticates requests under both identity schemes and
// resolves them to a single Principal shape.
type AuthMiddleware struct {
	sessions    provider.SessionVerifier
	tokens      tokenValidator
	userRepo    userResolver
	studentRepo studentResolver
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(sessions provider.SessionVerifier, tokens tokenValidator, userRepo userResolver, studentRepo studentResolver) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:    sessions,
		tokens:      tokens,
		userRepo:    userRepo,
		studentRepo: studentRepo,
	}
}

// SetPrincipal stores the authenticated principal on the request context
func SetPrincipal(c *gin.Context, p *models.Principal) {
	c.Set(principalKey, p)
}

// GetPrincipal returns the authenticated principal, or nil when the request
// did not pass an auth middleware.
func GetPrincipal(c *gin.Context) *models.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, ok := v.(*models.Principal)
	if !ok {
		return nil
	}
	return p
}

// resolveProviderPrincipal verifies a provider session token and loads the
// synced local user.
func (m *AuthMiddleware) resolveProviderPrincipal(c *gin.Context, token string) (*models.Principal, error) {
	subjectID, err := m.sessions.VerifySession(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, provider.ErrSessionInvalid) {
			return nil, apperrors.ErrNotAuthenticated
		}
		return nil, err
	}

	user, err := m.userRepo.GetBySubjectID(c.Request.Context(), subjectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Valid session for a user the webhook has not delivered yet.
			logger.Warn().Str("subject_id", subjectID).Msg("Provider session for unsynced user")
		}
		return nil, err
	}

	p := &models.Principal{
		Kind:      models.PrincipalProvider,
		Role:      user.RoleType,
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	if user.StudentID != nil {
		p.StudentID = *user.StudentID
	}

	return p, nil
}

// resolveStudentPrincipal validates a locally issued student JWT and checks
// the account is still present and active.
func (m *AuthMiddleware) resolveStudentPrincipal(c *gin.Context, token string) (*models.Principal, error) {
	claims, err := m.tokens.ValidateStudentToken(token)
	if err != nil {
		return nil, err
	}

	student, err := m.studentRepo.GetByID(c.Request.Context(), claims.StudentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, err
	}
	if !student.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	return &models.Principal{
		Kind:      models.PrincipalStudentToken,
		Role:      models.RoleStudent,
		StudentID: student.ID,
		Email:     student.Email,
		FirstName: student.FirstName,
		LastName:  student.LastName,
	}, nil
}

// RequireStaff admits provider-authenticated users whose role is in the
// allow-list.
func (m *AuthMiddleware) RequireStaff(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			HandleAPIError(c, apperrors.ErrNotAuthenticated)
			c.Abort()
			return
		}

		p, err := m.resolveProviderPrincipal(c, token)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		if !p.HasRole(roles...) {
			HandleAPIError(c, apperrors.ErrPermissionDenied)
			c.Abort()
			return
		}

		SetPrincipal(c, p)
		c.Next()
	}
}

// RequireStudent admits callers that resolve to a student profile: either a
// locally issued student JWT, or a provider session whose user carries the
// student role with a linked profile.
func (m *AuthMiddleware) RequireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			HandleAPIError(c, apperrors.ErrNotAuthenticated)
			c.Abort()
			return
		}

		p, err := m.resolveStudentPrincipal(c, token)
		if errors.Is(err, apperrors.ErrAccountDisabled) {
			HandleAPIError(c, err)
			c.Abort()
			return
		}
		if err != nil {
			// Not a local student token; fall back to the provider scheme.
			p, err = m.resolveProviderPrincipal(c, token)
			if err != nil {
				HandleAPIError(c, apperrors.ErrNotAuthenticated)
				c.Abort()
				return
			}
			if p.Role != models.RoleStudent || !p.IsStudent() {
				HandleAPIError(c, apperrors.ErrPermissionDenied)
				c.Abort()
				return
			}
		}

		SetPrincipal(c, p)
		c.Next()
	}
}
