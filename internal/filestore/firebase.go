package filestore

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// FirebaseStore stores uploads in a Cloud Storage bucket
type FirebaseStore struct {
	bucket *storage.BucketHandle
	name   string
}

// NewFirebaseStore creates a Cloud Storage backed file store
func NewFirebaseStore(ctx context.Context, projectID, credentialsFile, bucketName string) (*FirebaseStore, error) {
	conf := &firebase.Config{
		ProjectID:     projectID,
		StorageBucket: bucketName,
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("init storage client: %w", err)
	}

	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("open bucket %q: %w", bucketName, err)
	}

	return &FirebaseStore{bucket: bucket, name: bucketName}, nil
}

// Save uploads the file to the bucket and returns its public URL
func (s *FirebaseStore) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	object := objectName(folder, filename)

	w := s.bucket.Object(object).NewWriter(ctx)
	w.PredefinedACL = "publicRead"

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("upload object %q: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finish upload %q: %w", object, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.name, object), nil
}
