package services

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appconfig "ts-knowledge-base/config"
	"ts-knowledge-base/models"
	"ts-knowledge-base/repositories"
)

type stubPresigner struct{}

func (stubPresigner) PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	return &v4.PresignedHTTPRequest{URL: "https://stub/put/" + *params.Key, Method: "PUT"}, nil
}

func (stubPresigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	return &v4.PresignedHTTPRequest{URL: "https://stub/get/" + *params.Key, Method: "GET"}, nil
}

func stubS3(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	origPresign := newS3PresignClient
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return nil
	}
	newS3PresignClient = func(client *s3.Client) s3Presigner {
		return stubPresigner{}
	}
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
		newS3PresignClient = origPresign
	})
}

func newAttachmentFixture(t *testing.T) (AttachmentService, *gorm.DB, *models.TroubleshootingEntry, *models.User) {
	db := newTestDB(t)
	service := NewAttachmentService(
		repositories.NewAttachmentRepository(db),
		repositories.NewEntryRepository(db),
		appconfig.S3Config{Bucket: "kb-attachments", Region: "us-east-1"},
	)

	author := seedUser(t, db, "uploader", models.UserTypeTech)
	category := seedCategory(t, db, "networking")
	entry := &models.TroubleshootingEntry{
		Title:              "NIC firmware bug",
		Slug:               "nic-firmware-bug",
		ProblemDescription: "p",
		CategoryID:         category.ID,
		AuthorID:           author.ID,
	}
	require.NoError(t, db.Create(entry).Error)

	return service, db, entry, author
}

func TestCreateAttachmentReturnsUploadURL(t *testing.T) {
	stubS3(t)
	service, db, entry, uploader := newAttachmentFixture(t)

	upload, err := service.CreateAttachment(context.Background(), entry.ID, uploader.ID, models.CreateAttachmentRequest{
		OriginalFilename: "trace.pcap",
		FileType:         models.AttachmentOther,
		FileSize:         2048,
		MimeType:         "application/octet-stream",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(upload.UploadURL, "https://stub/put/attachments/"))
	assert.Equal(t, "trace.pcap", upload.Attachment.OriginalFilename)
	assert.Equal(t, uploader.ID, upload.Attachment.UploadedByID)

	var count int64
	require.NoError(t, db.Model(&models.Attachment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateAttachmentInvalidType(t *testing.T) {
	stubS3(t)
	service, _, entry, uploader := newAttachmentFixture(t)

	_, err := service.CreateAttachment(context.Background(), entry.ID, uploader.ID, models.CreateAttachmentRequest{
		OriginalFilename: "x",
		FileType:         "SPREADSHEET",
		FileSize:         1,
		MimeType:         "text/plain",
	})
	require.Error(t, err)
	assert.IsType(t, models.ErrorValidation{}, err)
}

func TestGetDownloadURL(t *testing.T) {
	stubS3(t)
	service, _, entry, uploader := newAttachmentFixture(t)

	upload, err := service.CreateAttachment(context.Background(), entry.ID, uploader.ID, models.CreateAttachmentRequest{
		OriginalFilename: "screenshot.png",
		FileType:         models.AttachmentImage,
		FileSize:         512,
		MimeType:         "image/png",
	})
	require.NoError(t, err)

	url, err := service.GetDownloadURL(context.Background(), upload.Attachment.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://stub/get/attachments/"))

	_, err = service.GetDownloadURL(context.Background(), 9999)
	require.Error(t, err)
	assert.IsType(t, models.ErrorNotFound{}, err)
}
