package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go-telemedicine/config"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type gridFSFileStore struct {
	bucket *gridfs.Bucket
}

// NewMongoClient connects to MongoDB and opens the GridFS bucket holding prescriptions.
func NewMongoClient(cfg config.MongoConfig) (*mongo.Client, *gridfs.Bucket, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	bucket, err := gridfs.NewBucket(client.Database(cfg.Database), options.GridFSBucket().SetName(cfg.Bucket))
	if err != nil {
		client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to open GridFS bucket: %w", err)
	}

	logrus.Info("Successfully connected to MongoDB GridFS")

	return client, bucket, nil
}

func NewGridFSFileStore(bucket *gridfs.Bucket) FileStore {
	return &gridFSFileStore{bucket: bucket}
}

// Save uploads a new revision and then prunes the older ones, so a name
// re-rendered many times keeps a single document.
func (s *gridFSFileStore) Save(ctx context.Context, name string, r io.Reader) error {
	if !ValidName(name) {
		return ErrInvalidFileName
	}

	id, err := s.bucket.UploadFromStream(name, r)
	if err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}

	// a failed prune leaves older revisions behind; reads still get the latest
	if err := s.deleteRevisions(ctx, revisionFilter(name, id)); err != nil {
		logrus.Warnf("Failed to prune old revisions of %s: %+v", name, err)
	}
	return nil
}

func (s *gridFSFileStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	if !ValidName(name) {
		return nil, ErrFileNotFound
	}

	stream, err := s.bucket.OpenDownloadStreamByName(name)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("download %s: %w", name, err)
	}
	return stream, nil
}

func (s *gridFSFileStore) Exists(ctx context.Context, name string) (bool, error) {
	if !ValidName(name) {
		return false, nil
	}

	cursor, err := s.bucket.Find(bson.M{"filename": name}, options.GridFSFind().SetLimit(1))
	if err != nil {
		return false, err
	}
	defer cursor.Close(ctx)

	return cursor.Next(ctx), cursor.Err()
}

// Delete removes every revision stored under name.
func (s *gridFSFileStore) Delete(ctx context.Context, name string) error {
	if !ValidName(name) {
		return ErrFileNotFound
	}
	return s.deleteRevisions(ctx, revisionFilter(name, nil))
}

// revisionFilter matches the revisions of name, except keep when it is set.
func revisionFilter(name string, keep interface{}) bson.M {
	filter := bson.M{"filename": name}
	if keep != nil {
		filter["_id"] = bson.M{"$ne": keep}
	}
	return filter
}

func (s *gridFSFileStore) deleteRevisions(ctx context.Context, filter bson.M) error {
	cursor, err := s.bucket.Find(filter)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var file gridfs.File
		if err := cursor.Decode(&file); err != nil {
			return err
		}
		if err := s.bucket.Delete(file.ID); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
			return err
		}
	}
	return cursor.Err()
}
