package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/apperrors"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/identity"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/models"
)

type subjectKey struct{}

var (
	errMissingToken = apperrors.NewUnauthorizedError("unauthorized token")
	errBadToken     = apperrors.NewUnauthorizedError("unauthorized access")
	errWrongRole    = apperrors.NewForbiddenError("Forbidden access")
)

// WithSubject stores the verified subject in ctx.
func WithSubject(ctx context.Context, subject *identity.Subject) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

// SubjectFrom returns the verified subject, or nil on unauthenticated routes.
func SubjectFrom(ctx context.Context) *identity.Subject {
	subject, _ := ctx.Value(subjectKey{}).(*identity.Subject)
	return subject
}

// SubjectEmail returns the verified email, or "".
func SubjectEmail(ctx context.Context) string {
	if subject := SubjectFrom(ctx); subject != nil {
		return subject.Email
	}
	return ""
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// Authenticate requires a bearer token the verifier accepts.
func Authenticate(verifier identity.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, errMissingToken)
				return
			}

			token, ok := bearerToken(header)
			if !ok {
				writeError(w, errBadToken)
				return
			}

			subject, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				level := zerolog.WarnLevel
				if !errors.Is(err, identity.ErrInvalidToken) && !errors.Is(err, identity.ErrNoEmail) {
					level = zerolog.ErrorLevel
				}
				zerolog.Ctx(r.Context()).WithLevel(level).Err(err).Msg("token verification failed")
				writeError(w, errBadToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), subject)))
		})
	}
}

// RoleLookup resolves the stored role of a user; "" means no record.
type RoleLookup interface {
	RoleByEmail(ctx context.Context, email string) (models.Role, error)
}

// RequireRole admits only subjects whose stored role equals role exactly.
// It must run after Authenticate.
func RequireRole(lookup RoleLookup, role models.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := SubjectEmail(r.Context())
			if email == "" {
				writeError(w, errWrongRole)
				return
			}

			stored, err := lookup.RoleByEmail(r.Context(), email)
			if err != nil {
				zerolog.Ctx(r.Context()).Error().Err(err).Str("email", email).Msg("role lookup failed")
				writeError(w, err)
				return
			}
			if stored != role {
				writeError(w, errWrongRole)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
