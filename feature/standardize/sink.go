package standardize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"shop-transformer/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Sink receives standardized entity outputs. The service never decides
// where results land; it hands every finished entity to the sink and moves
// on.
type Sink interface {
	WriteEntity(ctx context.Context, out *EntityOutput) error
}

// ObjectSink writes one JSON object per entity into object storage under
// <prefix>/<run id>/entity_<id>.json.
type ObjectSink struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger

	mu      sync.Mutex
	ensured bool
}

// NewObjectSink creates a sink writing into bucket under prefix. The bucket
// is created on first write if it does not exist.
func NewObjectSink(client storage.Client, bucket, prefix string, logger *zap.Logger) *ObjectSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ObjectSink{client: client, bucket: bucket, prefix: prefix, logger: logger}
}

// WriteEntity uploads the entity output as JSON.
func (s *ObjectSink) WriteEntity(ctx context.Context, out *EntityOutput) error {
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encode entity %d: %w", out.EntityID, err)
	}

	key := fmt.Sprintf("%s/%s/entity_%d.json", s.prefix, out.RunID, out.EntityID)
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	s.logger.Debug("entity output written",
		zap.String("key", key),
		zap.Int("bytes", len(body)))
	return nil
}

func (s *ObjectSink) ensureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ensured {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
		s.logger.Info("output bucket created", zap.String("bucket", s.bucket))
	}
	s.ensured = true
	return nil
}

// Discard drops outputs. Dry runs use it to get statistics without writing
// anything.
type Discard struct{}

func (Discard) WriteEntity(context.Context, *EntityOutput) error { return nil }
