package services

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Elzoka/devconnecter/internal/models"
)

type MongoProfileService struct {
	client      *mongo.Client
	db          *mongo.Database
	profilesCol *mongo.Collection
}

func NewMongoProfileService(ctx context.Context, mongoURI, dbName string, logger *zap.Logger) (*MongoProfileService, error) {
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI).SetTLSConfig(tlsCfg))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	col := db.Collection("profiles")

	// Best-effort indexes.
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "handle", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})

	logger.Info("mongodb connected", zap.String("db", dbName), zap.String("collection", "profiles"))
	return &MongoProfileService{
		client:      client,
		db:          db,
		profilesCol: col,
	}, nil
}

func (s *MongoProfileService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoProfileService) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	return s.findOne(ctx, bson.M{"user": userID})
}

func (s *MongoProfileService) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	return s.findOne(ctx, bson.M{"handle": handle})
}

func (s *MongoProfileService) findOne(ctx context.Context, filter bson.M) (*models.Profile, error) {
	var prof models.Profile
	if err := s.profilesCol.FindOne(ctx, filter).Decode(&prof); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &prof, nil
}

func (s *MongoProfileService) GetAll(ctx context.Context) ([]*models.Profile, error) {
	cur, err := s.profilesCol.Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*models.Profile, 0)
	for cur.Next(ctx) {
		var prof models.Profile
		if err := cur.Decode(&prof); err != nil {
			return nil, err
		}
		out = append(out, &prof)
	}
	return out, cur.Err()
}

func (s *MongoProfileService) Upsert(ctx context.Context, userID string, req *models.ProfileRequest) (*models.Profile, error) {
	// Reject a handle held by any other user before touching the document.
	err := s.profilesCol.FindOne(ctx, bson.M{
		"handle": req.Handle,
		"user":   bson.M{"$ne": userID},
	}).Err()
	if err == nil {
		return nil, ErrHandleTaken
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	set := bson.M{
		"handle": req.Handle,
		"status": req.Status,
		"skills": req.SkillList(),
	}
	patchField(set, "company", req.Company)
	patchField(set, "website", req.Website)
	patchField(set, "location", req.Location)
	patchField(set, "bio", req.Bio)
	patchField(set, "githubusername", req.GithubUsername)
	patchField(set, "social.youtube", req.Youtube)
	patchField(set, "social.twitter", req.Twitter)
	patchField(set, "social.facebook", req.Facebook)
	patchField(set, "social.linkedin", req.Linkedin)
	patchField(set, "social.instagram", req.Instagram)

	setOnInsert := bson.M{
		"_id":        uuid.New().String(),
		"user":       userID,
		"experience": []models.Experience{},
		"education":  []models.Education{},
		"date":       time.Now(),
	}

	res := s.profilesCol.FindOneAndUpdate(
		ctx,
		bson.M{"user": userID},
		bson.M{"$set": set, "$setOnInsert": setOnInsert},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)

	var prof models.Profile
	if err := res.Decode(&prof); err != nil {
		// The unique handle index closes the race left open by the
		// check above.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrHandleTaken
		}
		return nil, err
	}
	return &prof, nil
}

// patchField adds the field to the $set document only when present in the
// request, leaving the stored value alone otherwise.
func patchField(set bson.M, key string, value *string) {
	if value != nil {
		set[key] = *value
	}
}

func (s *MongoProfileService) AddExperience(ctx context.Context, userID string, req *models.ExperienceRequest) (*models.Profile, error) {
	return s.pushEntry(ctx, userID, "experience", newExperience(req))
}

func (s *MongoProfileService) AddEducation(ctx context.Context, userID string, req *models.EducationRequest) (*models.Profile, error) {
	return s.pushEntry(ctx, userID, "education", newEducation(req))
}

func (s *MongoProfileService) pushEntry(ctx context.Context, userID, field string, entry interface{}) (*models.Profile, error) {
	res := s.profilesCol.FindOneAndUpdate(
		ctx,
		bson.M{"user": userID},
		bson.M{"$push": bson.M{field: bson.M{"$each": bson.A{entry}, "$position": 0}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var prof models.Profile
	if err := res.Decode(&prof); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &prof, nil
}

// RemoveExperience pulls the entry matching expID. The pull tolerates a
// missing id; only a missing profile is an error.
func (s *MongoProfileService) RemoveExperience(ctx context.Context, userID, expID string) (*models.Profile, error) {
	return s.pullEntry(ctx, userID, "experience", expID)
}

func (s *MongoProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (*models.Profile, error) {
	return s.pullEntry(ctx, userID, "education", eduID)
}

func (s *MongoProfileService) pullEntry(ctx context.Context, userID, field, entryID string) (*models.Profile, error) {
	res := s.profilesCol.FindOneAndUpdate(
		ctx,
		bson.M{"user": userID},
		bson.M{"$pull": bson.M{field: bson.M{"id": entryID}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var prof models.Profile
	if err := res.Decode(&prof); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &prof, nil
}

func (s *MongoProfileService) DeleteByUserID(ctx context.Context, userID string) error {
	res, err := s.profilesCol.DeleteOne(ctx, bson.M{"user": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}
