package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/diillson/erp-reports/internal/domain/repository"
	"github.com/diillson/erp-reports/internal/shared/types"
	"github.com/google/uuid"
)

// DefaultPrefix agrupa os relatórios enviados quando nenhum prefixo é configurado.
const DefaultPrefix = "reports"

var contentTypes = map[string]string{
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".csv":  "text/csv; charset=utf-8",
	".json": "application/json",
	".pdf":  "application/pdf",
	".html": "text/html; charset=utf-8",
}

// objectPutter is the slice of the S3 client used for uploads.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3RepositoryImpl implementa o StorageRepository sobre um bucket S3 compatível (AWS, MinIO, SeaweedFS).
type S3RepositoryImpl struct {
	cfg    types.StorageConfig
	client objectPutter
	newID  func() string
	mu     sync.Mutex
}

// NewS3Repository cria um StorageRepository; o cliente S3 é criado no primeiro envio.
func NewS3Repository(cfg types.StorageConfig) repository.StorageRepository {
	return newS3Repository(cfg, nil)
}

func newS3Repository(cfg types.StorageConfig, client objectPutter) *S3RepositoryImpl {
	return &S3RepositoryImpl{
		cfg:    cfg,
		client: client,
		newID:  uuid.NewString,
	}
}

// Upload sends the file to <prefix>/<uuid>/<filename> and returns its s3:// URI.
func (r *S3RepositoryImpl) Upload(ctx context.Context, localPath string) (string, error) {
	if strings.TrimSpace(r.cfg.Bucket) == "" {
		return "", types.ErrStorageNotConfigured
	}

	client, err := r.getClient(ctx)
	if err != nil {
		return "", err
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("error opening %s for upload: %w", localPath, err)
	}
	defer f.Close()

	key := r.objectKey(filepath.Base(localPath))
	input := &s3.PutObjectInput{
		Bucket: aws.String(r.cfg.Bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(localPath))]; ok {
		input.ContentType = aws.String(ct)
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", filepath.Base(localPath), r.cfg.Bucket, err)
	}

	return fmt.Sprintf("s3://%s/%s", r.cfg.Bucket, key), nil
}

func (r *S3RepositoryImpl) objectKey(filename string) string {
	prefix := strings.Trim(strings.TrimSpace(r.cfg.Prefix), "/")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return path.Join(prefix, r.newID(), filename)
}

func (r *S3RepositoryImpl) getClient(ctx context.Context) (objectPutter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client != nil {
		return r.client, nil
	}

	var opts []func(*config.LoadOptions) error
	if r.cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(r.cfg.Profile))
	}
	if r.cfg.Region != "" {
		opts = append(opts, config.WithRegion(r.cfg.Region))
	}
	if r.cfg.AccessKeyID != "" && r.cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(r.cfg.AccessKeyID, r.cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for storage: %w", err)
	}

	r.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if r.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(r.cfg.Endpoint)
		}
		o.UsePathStyle = r.cfg.UsePathStyle
	})
	return r.client, nil
}
