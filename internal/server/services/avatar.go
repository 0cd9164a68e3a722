package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/vkarpenko/credo/internal/common"
	"github.com/vkarpenko/credo/internal/logging"
	sc "github.com/vkarpenko/credo/internal/server/config"
	"github.com/vkarpenko/credo/internal/server/models"
	"github.com/vkarpenko/credo/internal/server/repositories/repomanager"
)

// Seams for testing the presign flow without reaching AWS.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

const presignValidity = 15 * time.Minute

// AvatarService hands out presigned S3 URLs for profile pictures and records
// the object key on the user once the upload completed. The server never
// proxies image bytes.
type AvatarService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	config      *sc.Config
}

func NewAvatarService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger, cfg *sc.Config) *AvatarService {
	return &AvatarService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "avatar_service"),
		config:      cfg,
	}
}

// avatarStorageKey scopes object keys per user and date so uploads never
// collide and old avatars remain addressable.
func avatarStorageKey(userID string) string {
	d := time.Now()
	return fmt.Sprintf("avatars/%s/%d/%d/%v", userID, d.Year(), d.Month(), uuid.New())
}

func (s *AvatarService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// UploadURL returns a fresh object key and a presigned PUT URL the client
// uploads the image to directly.
func (s *AvatarService) UploadURL(ctx context.Context, userID string) (string, string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		s.logger.Error(ctx, "presign client init failed", "error", err)
		return "", "", common.ErrorInternal
	}

	bucket := s.config.S3Bucket
	key := avatarStorageKey(userID)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		s.logger.Error(ctx, "presign PUT failed", "error", err)
		return "", "", common.ErrorInternal
	}

	return key, req.URL, nil
}

// Attach records key as the user's avatar after the client finished the
// upload, and returns the updated sanitized projection.
func (s *AvatarService) Attach(ctx context.Context, userID, key string) (*models.SanitizedUser, error) {
	if key == "" {
		return nil, common.NewValidationError("key", "is required")
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.UpdateAvatarKey(ctx, userID, key)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "avatar attach store error", "error", err)
		return nil, common.ErrorInternal
	}
	return user.Sanitized(), nil
}

// DownloadURL returns a presigned GET URL for the user's current avatar.
// Users without an avatar get ErrorNotFound.
func (s *AvatarService) DownloadURL(ctx context.Context, userID string) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "avatar lookup store error", "error", err)
		return "", common.ErrorInternal
	}
	if user.AvatarKey == "" {
		return "", common.ErrorNotFound
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		s.logger.Error(ctx, "presign client init failed", "error", err)
		return "", common.ErrorInternal
	}

	bucket := s.config.S3Bucket
	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &user.AvatarKey,
	}, s3.WithPresignExpires(presignValidity))
	if err != nil {
		s.logger.Error(ctx, "presign GET failed", "error", err)
		return "", common.ErrorInternal
	}

	return req.URL, nil
}
