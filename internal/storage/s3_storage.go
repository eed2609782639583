package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Storage is the image-hosting collaborator. The catalog core never talks
// to it; product creation receives an already-resolved public URL.
type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

type PresignedURLResponse struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	Key       string `json:"key"`
}

func NewS3Storage(region, bucket, accessKeyID, secretAccessKey, baseURL string) *S3Storage {
	var cfg aws.Config
	var err error

	// If credentials are provided, use them. Otherwise, use default credential chain
	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region: region,
			Credentials: credentials.NewStaticCredentialsProvider(
				accessKeyID,
				secretAccessKey,
				"",
			),
		}
	} else {
		cfg, err = awsConfig.LoadDefaultConfig(context.TODO(),
			awsConfig.WithRegion(region),
		)
		if err != nil {
			cfg = aws.Config{
				Region: region,
			}
		}
	}

	return &S3Storage{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// UploadFile pushes a local temporary file to the bucket and returns its
// durable public URL. The temporary file is removed on success.
func (s *S3Storage) UploadFile(ctx context.Context, localPath, contentType, folder string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open upload source: %w", err)
	}
	defer file.Close()

	key := objectKey(localPath, folder)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	file.Close()
	// The upload already succeeded; a leftover temp file is the tmp reaper's
	// problem, not the caller's.
	os.Remove(localPath)

	return s.fileURL(key), nil
}

// GeneratePresignedURL returns a pre-signed PUT URL so clients can upload
// directly to the bucket, plus the final public file URL.
func (s *S3Storage) GeneratePresignedURL(filename, contentType, folder string) (*PresignedURLResponse, error) {
	key := objectKey(filename, folder)

	presignClient := s3.NewPresignClient(s.client)
	presignedReq, err := presignClient.PresignPutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return &PresignedURLResponse{
		UploadURL: presignedReq.URL,
		FileURL:   s.fileURL(key),
		Key:       key,
	}, nil
}

func objectKey(filename, folder string) string {
	if folder == "" {
		folder = "uploads"
	}
	ext := filepath.Ext(filename)
	return fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)
}

func (s *S3Storage) fileURL(key string) string {
	if s.baseURL != "" {
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}
