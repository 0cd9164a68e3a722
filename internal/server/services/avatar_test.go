package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkarpenko/credo/internal/common"
	"github.com/vkarpenko/credo/internal/server/config"
	"github.com/vkarpenko/credo/internal/server/models"
)

func stubPresign(t *testing.T, putURL, getURL string) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNewClient := newS3ClientFromConfig
	origNewPresign := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewClient
		newS3PresignClient = origNewPresign
		presignPutObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return nil
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return nil
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: putURL + "/" + *in.Key}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: getURL + "/" + *in.Key}, nil
	}
}

func newAvatarService(t *testing.T, repo *fakeUsersRepo) *AvatarService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	cfg := &config.Config{S3Bucket: "avatars", S3Region: "us-east-1"}
	return NewAvatarService(db, &fakeRepoManager{u: repo}, testLogger(), cfg)
}

func TestAvatarUploadURL(t *testing.T) {
	stubPresign(t, "https://s3.local/put", "https://s3.local/get")
	s := newAvatarService(t, newFakeUsersRepo())

	key, url, err := s.UploadURL(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "avatars/u1/"))
	assert.Equal(t, "https://s3.local/put/"+key, url)
}

func TestAvatarStorageKey_Unique(t *testing.T) {
	a := avatarStorageKey("u1")
	b := avatarStorageKey("u1")
	assert.NotEqual(t, a, b)
}

func TestAvatarAttach(t *testing.T) {
	repo := newFakeUsersRepo()
	repo.add(&models.User{ID: "u1", Email: "a@b.com", CreatedAt: time.Now()})
	s := newAvatarService(t, repo)

	user, err := s.Attach(context.Background(), "u1", "avatars/u1/2026/8/key")
	require.NoError(t, err)
	assert.Equal(t, "avatars/u1/2026/8/key", user.AvatarKey)
}

func TestAvatarAttach_EmptyKey(t *testing.T) {
	s := newAvatarService(t, newFakeUsersRepo())

	var verr *common.ValidationError
	_, err := s.Attach(context.Background(), "u1", "")
	require.ErrorAs(t, err, &verr)
}

func TestAvatarAttach_MissingUser(t *testing.T) {
	s := newAvatarService(t, newFakeUsersRepo())

	_, err := s.Attach(context.Background(), "ghost", "some/key")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestAvatarDownloadURL(t *testing.T) {
	stubPresign(t, "https://s3.local/put", "https://s3.local/get")
	repo := newFakeUsersRepo()
	repo.add(&models.User{ID: "u1", Email: "a@b.com", AvatarKey: "avatars/u1/k"})
	s := newAvatarService(t, repo)

	url, err := s.DownloadURL(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/get/avatars/u1/k", url)
}

func TestAvatarDownloadURL_NoAvatar(t *testing.T) {
	repo := newFakeUsersRepo()
	repo.add(&models.User{ID: "u1", Email: "a@b.com"})
	s := newAvatarService(t, repo)

	_, err := s.DownloadURL(context.Background(), "u1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
