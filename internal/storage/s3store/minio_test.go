package s3store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"

	"github.com/MikhailRaia/link-shortener/internal/storage"
)

func TestStorage_MinIO(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcminio.Run(ctx, "minio/minio:RELEASE.2024-01-16T16-07-38Z")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	endpoint, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	opts := ClientOptions(Options{
		Region:          "us-east-1",
		Endpoint:        "http://" + endpoint,
		AccessKeyID:     container.Username,
		SecretAccessKey: container.Password,
	})

	bucket := fmt.Sprintf("links-%d", time.Now().UnixNano())
	_, err = s3.NewFromConfig(aws.Config{}, opts...).CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	})
	require.NoError(t, err)

	s := NewStorage(aws.Config{}, bucket, "", opts...)
	require.NoError(t, s.Ping(ctx))

	require.NoError(t, s.Put(ctx, "promo", "https://example.com/promo-page\n"))

	got, err := s.Get(ctx, "promo")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/promo-page\n", got)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrLinkNotFound)

	require.NoError(t, s.Delete(ctx, "promo"))
	_, err = s.Get(ctx, "promo")
	assert.ErrorIs(t, err, storage.ErrLinkNotFound)
}
