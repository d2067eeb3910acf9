package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/apperrors"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/cache"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/identity"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/logger"
	"github.com/markjakearzadon/scholarstream-gobackend.git/internal/models"
)

// ErrUserExists is returned by Create when the email is already registered.
var ErrUserExists = apperrors.NewConflictError("user already exists")

var errUserNotFound = apperrors.NewNotFoundError("User not found.")

type UserService struct {
	store    CollectionSource
	accounts identity.AccountDeleter
	roles    cache.RoleCache
}

func NewUserService(store CollectionSource, accounts identity.AccountDeleter, roles cache.RoleCache) *UserService {
	if roles == nil {
		roles = cache.NopRoleCache{}
	}
	return &UserService{store: store, accounts: accounts, roles: roles}
}

// List returns all users, or only the one matching email.
func (s *UserService) List(ctx context.Context, email string) ([]models.User, error) {
	cols, err := s.store.Collections(ctx)
	if err != nil {
		return nil, err
	}

	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}
	return findMany[models.User](ctx, cols.Users, filter, newestFirst())
}

// RoleByEmail returns the stored role, or "" when no user has the email.
// The email is matched exactly, in the cache and in the store.
func (s *UserService) RoleByEmail(ctx context.Context, email string) (models.Role, error) {
	role, gen, ok := s.roles.Get(ctx, email)
	if ok {
		return models.Role(role), nil
	}

	cols, err := s.store.Collections(ctx)
	if err != nil {
		return "", err
	}

	var user models.User
	opts := options.FindOne().SetProjection(bson.M{"role": 1})
	if err := cols.Users.FindOne(ctx, bson.M{"email": email}, opts).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil
		}
		return "", err
	}

	s.roles.Set(ctx, email, string(user.Role), gen)
	return user.Role, nil
}

// Create registers a user on first sign-in. The role is always student and
// the creation time is set here, whatever the client sent.
func (s *UserService) Create(ctx context.Context, user *models.User) (*models.InsertResult, error) {
	user.Email = strings.TrimSpace(user.Email)
	if user.Email == "" {
		return nil, apperrors.NewBadRequestError("email is required")
	}

	cols, err := s.store.Collections(ctx)
	if err != nil {
		return nil, err
	}

	err = cols.Users.FindOne(ctx, bson.M{"email": user.Email}).Err()
	if err == nil {
		return nil, ErrUserExists
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	user.ID = primitive.NewObjectID()
	user.Role = models.RoleStudent
	user.CreatedAt = time.Now()

	res, err := cols.Users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	logger.Info().Str("email", user.Email).Msg("user created")
	return models.NewInsertResult(res), nil
}

// Delete removes the user record, then the identity-provider account.
// Provider failures are logged; the store deletion decides the outcome.
func (s *UserService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	cols, err := s.store.Collections(ctx)
	if err != nil {
		return nil, err
	}

	user, err := findByID[models.User](ctx, cols.Users, id, errUserNotFound)
	if err != nil {
		return nil, err
	}

	res, err := deleteByID(ctx, cols.Users, id, errUserNotFound)
	if err != nil {
		return nil, err
	}
	s.roles.Invalidate(ctx, user.Email)

	if err := s.accounts.DeleteAccountByEmail(ctx, user.Email); err != nil {
		logger.Error().Err(err).Str("email", user.Email).Msg("failed to delete identity provider account")
	}

	return models.NewDeleteResult(res), nil
}

// UpdateRole changes a user's role.
func (s *UserService) UpdateRole(ctx context.Context, id string, patch models.UserPatch) (*models.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := patch.SetDocument()
	if len(set) == 0 {
		return nil, errNoFields
	}
	if !patch.Role.Valid() {
		return nil, apperrors.NewBadRequestError("Invalid role")
	}

	cols, err := s.store.Collections(ctx)
	if err != nil {
		return nil, err
	}

	var before models.User
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.Before).
		SetProjection(bson.M{"email": 1, "role": 1})
	err = cols.Users.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&before)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errUserNotFound
		}
		return nil, err
	}
	s.roles.Invalidate(ctx, before.Email)

	result := &models.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if before.Role != *patch.Role {
		result.ModifiedCount = 1
	}
	logger.Info().Str("email", before.Email).Str("role", string(*patch.Role)).Msg("user role updated")
	return result, nil
}
