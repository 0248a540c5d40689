package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careerlens/careerlens/internal/models"
	"github.com/careerlens/careerlens/internal/repositories"
	"github.com/careerlens/careerlens/internal/utils"
)

const usersCollection = "users"

type userRepo struct {
	col *mongo.Collection
	now func() time.Time
}

func NewUserRepo(db *mongo.Database) repositories.UserRepository {
	return &userRepo{
		col: db.Collection(usersCollection),
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *userRepo) GetUser(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *userRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) AddUser(ctx context.Context, u *models.User) error {
	now := r.now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	if u.Provider == "" {
		u.Provider = models.ProviderLocal
	}
	res, err := r.col.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return utils.ErrConflict
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

// UpsertOAuthUser writes identity fields only; profile and password hash
// are set on insert or left alone.
func (r *userRepo) UpsertOAuthUser(ctx context.Context, id models.OAuthIdentity) (*models.User, error) {
	now := r.now()
	update := bson.M{
		"$set": bson.M{
			"name":      id.Name,
			"email":     id.Email,
			"provider":  id.Provider,
			"subject":   id.Subject,
			"avatar":    id.Avatar,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"createdAt": now,
			"profile":   models.Profile{},
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var u models.User
	err := r.col.FindOneAndUpdate(ctx, bson.M{"username": id.Username}, update, opts).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetProfile(ctx context.Context, username string) (*models.ProfileView, error) {
	u, err := r.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return repositories.NewProfileView(u), nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, username string, fields map[string]string) (bool, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"username": username}, profileUpdate(fields, r.now()))
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *userRepo) DeleteUser(ctx context.Context, username string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func profileUpdate(fields map[string]string, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	for k, v := range fields {
		set["profile."+k] = v
	}
	return bson.M{"$set": set}
}
