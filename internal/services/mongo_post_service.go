package services

import (
	"context"
	"crypto/tls"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Elzoka/devconnecter/internal/models"
)

type MongoPostService struct {
	client   *mongo.Client
	db       *mongo.Database
	postsCol *mongo.Collection
}

func NewMongoPostService(ctx context.Context, mongoURI, dbName string, logger *zap.Logger) (*MongoPostService, error) {
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
	col := db.Collection("posts")

	// Best-effort indexes.
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	})

	logger.Info("mongodb connected", zap.String("db", dbName), zap.String("collection", "posts"))
	return &MongoPostService{
		client:   client,
		db:       db,
		postsCol: col,
	}, nil
}

func (s *MongoPostService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoPostService) Create(ctx context.Context, user *models.User, req *models.PostRequest) (*models.Post, error) {
	post := newPost(user, req)
	if _, err := s.postsCol.InsertOne(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *MongoPostService) GetAll(ctx context.Context) ([]*models.Post, error) {
	cur, err := s.postsCol.Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*models.Post, 0)
	for cur.Next(ctx) {
		var post models.Post
		if err := cur.Decode(&post); err != nil {
			return nil, err
		}
		out = append(out, &post)
	}
	return out, cur.Err()
}

func (s *MongoPostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := s.postsCol.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *MongoPostService) Delete(ctx context.Context, postID, userID string) error {
	// Ensure ownership.
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.User != userID {
		return ErrNotPostOwner
	}

	_, err = s.postsCol.DeleteOne(ctx, bson.M{"_id": postID})
	return err
}

func (s *MongoPostService) Like(ctx context.Context, postID, userID string) (*models.Post, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if likedBy(post, userID) {
		return nil, ErrAlreadyLiked
	}

	like := models.Like{User: userID}
	_, err = s.postsCol.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{
		"$push": bson.M{"likes": bson.M{"$each": bson.A{like}, "$position": 0}},
	})
	if err != nil {
		return nil, err
	}

	post.Likes = append([]models.Like{like}, post.Likes...)
	return post, nil
}

func (s *MongoPostService) Unlike(ctx context.Context, postID, userID string) (*models.Post, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !likedBy(post, userID) {
		return nil, ErrNotLiked
	}

	_, err = s.postsCol.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{
		"$pull": bson.M{"likes": bson.M{"user": userID}},
	})
	if err != nil {
		return nil, err
	}

	kept := make([]models.Like, 0, len(post.Likes)-1)
	for _, l := range post.Likes {
		if l.User != userID {
			kept = append(kept, l)
		}
	}
	post.Likes = kept
	return post, nil
}

func (s *MongoPostService) AddComment(ctx context.Context, postID string, user *models.User, req *models.PostRequest) (*models.Post, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := newComment(user, req)
	_, err = s.postsCol.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{
		"$push": bson.M{"comments": bson.M{"$each": bson.A{comment}, "$position": 0}},
	})
	if err != nil {
		return nil, err
	}

	post.Comments = append([]models.Comment{comment}, post.Comments...)
	return post, nil
}

// RemoveComment checks existence before pulling, unlike the tolerant
// experience/education removal.
func (s *MongoPostService) RemoveComment(ctx context.Context, postID, commentID string) (*models.Post, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	found := false
	kept := make([]models.Comment, 0, len(post.Comments))
	for _, c := range post.Comments {
		if c.ID == commentID {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return nil, ErrCommentNotFound
	}

	_, err = s.postsCol.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{
		"$pull": bson.M{"comments": bson.M{"id": commentID}},
	})
	if err != nil {
		return nil, err
	}

	post.Comments = kept
	return post, nil
}
