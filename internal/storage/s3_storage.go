package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/trendora/trendora-backend/config"
)

const presignExpiry = 15 * time.Minute

// MaxImageSize caps catalog imagery uploads at 10 MB
const MaxImageSize = int64(10 << 20)

// imageContentTypes is the accepted upload allow-list. Catalog media is
// images only.
var imageContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// uploadFolders scopes object keys to catalog media kinds
var uploadFolders = map[string]struct{}{
	"products":   {},
	"categories": {},
}

type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

type PresignedUpload struct {
	UploadURL string `json:"upload_url"` // PUT here within the expiry window
	FileURL   string `json:"file_url"`   // final public locator
	Key       string `json:"key"`        // object key in the bucket
}

// NewS3Storage builds the media storage client. Static credentials win when
// configured; otherwise the default AWS chain applies.
func NewS3Storage(cfg *config.S3Config) *S3Storage {
	var awsCfg aws.Config

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg = aws.Config{
			Region: cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		}
	} else {
		loaded, err := awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(cfg.Region),
		)
		if err != nil {
			loaded = aws.Config{Region: cfg.Region}
		}
		awsCfg = loaded
	}

	return &S3Storage{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.Bucket,
		baseURL: cfg.BaseURL,
	}
}

// PresignImageUpload issues a short-lived PUT URL for a catalog image. The
// object key is a UUID under the requested folder; the caller's filename only
// contributes its extension.
func (s *S3Storage) PresignImageUpload(ctx context.Context, filename, contentType, folder string) (*PresignedUpload, error) {
	if err := ValidateImageContentType(contentType); err != nil {
		return nil, err
	}
	if _, ok := uploadFolders[folder]; !ok {
		return nil, fmt.Errorf("unknown upload folder %q", folder)
	}

	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), filepath.Ext(filename))

	presignClient := s3.NewPresignClient(s.client)
	presigned, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	var fileURL string
	if s.baseURL != "" {
		fileURL = fmt.Sprintf("%s/%s", s.baseURL, key)
	} else {
		fileURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.client.Options().Region, key)
	}

	return &PresignedUpload{
		UploadURL: presigned.URL,
		FileURL:   fileURL,
		Key:       key,
	}, nil
}

// ValidateImageContentType rejects anything outside the image allow-list
func ValidateImageContentType(contentType string) error {
	if _, ok := imageContentTypes[contentType]; !ok {
		return fmt.Errorf("content type %s is not allowed", contentType)
	}
	return nil
}

// ValidateImageSize rejects declared sizes over the upload cap
func ValidateImageSize(size int64) error {
	if size <= 0 {
		return fmt.Errorf("file size must be positive")
	}
	if size > MaxImageSize {
		return fmt.Errorf("file size exceeds maximum of %d bytes", MaxImageSize)
	}
	return nil
}
