package gcs

import (
	"context"
	"io"

	"cloud.google.com/go/storage"

	"github.com/helliomastic/Movie-Final-Recom/internal/application"
	"github.com/helliomastic/Movie-Final-Recom/pkg/helpers"
)

// PosterStore uploads movie posters to a GCS bucket and returns the public URL.
type PosterStore struct {
	Client *storage.Client
	Bucket string
}

func NewPosterStore(client *storage.Client, bucket string) *PosterStore {
	return &PosterStore{Client: client, Bucket: bucket}
}

func (p *PosterStore) Save(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	return helpers.UploadObject(ctx, p.Client, p.Bucket, objectPath, contentType, r)
}

var _ application.PosterStore = (*PosterStore)(nil)
