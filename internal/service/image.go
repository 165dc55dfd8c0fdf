package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/manzapp/manz/backend/config"
)

// MaxImageSize is the largest item image accepted for upload
const MaxImageSize = 5 << 20

var (
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image exceeds 5MB")
)

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ObjectStore is the part of the S3 client used for uploads
type ObjectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageService stores item images in S3
type ImageService struct {
	store  ObjectStore
	bucket string
}

var _ IImageService = (*ImageService)(nil)

// NewImageService creates an ImageService backed by the configured bucket
func NewImageService(s3Config *config.S3Config) *ImageService {
	return NewImageServiceWithStore(s3Config.Client, s3Config.BucketName)
}

func NewImageServiceWithStore(store ObjectStore, bucket string) *ImageService {
	return &ImageService{
		store:  store,
		bucket: bucket,
	}
}

// UploadItemImage stores data under a random key and returns its public URL.
// The content type is sniffed from the data, not trusted from the client.
func (s *ImageService) UploadItemImage(ctx context.Context, data []byte) (string, error) {
	if len(data) > MaxImageSize {
		return "", ErrImageTooLarge
	}

	contentType := http.DetectContentType(data)
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", ErrUnsupportedImage
	}

	key := path.Join("item-images", uuid.New().String()+ext)
	_, err := s.store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
	log.Printf("[ImageService] Uploaded item image to S3: %s", publicURL)
	return publicURL, nil
}
