package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	appconfig "ts-knowledge-base/config"
	"ts-knowledge-base/models"
	"ts-knowledge-base/repositories"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seams for the S3 client constructors so tests can stub them out.
var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	newS3PresignClient = func(client *s3.Client) s3Presigner {
		return s3.NewPresignClient(client)
	}
)

type s3Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type AttachmentService interface {
	CreateAttachment(ctx context.Context, entryID, uploaderID uint, req models.CreateAttachmentRequest) (*models.AttachmentUpload, error)
	GetDownloadURL(ctx context.Context, attachmentID uint) (string, error)
	GetAttachments(entryID uint) ([]models.Attachment, error)
	GetAttachment(id uint) (*models.Attachment, error)
	DeleteAttachment(id uint) error
}

type attachmentService struct {
	attachmentRepo repositories.AttachmentRepository
	entryRepo      repositories.EntryRepository
	s3cfg          appconfig.S3Config
}

func NewAttachmentService(attachmentRepo repositories.AttachmentRepository, entryRepo repositories.EntryRepository, s3cfg appconfig.S3Config) AttachmentService {
	return &attachmentService{
		attachmentRepo: attachmentRepo,
		entryRepo:      entryRepo,
		s3cfg:          s3cfg,
	}
}

func storageKey(entryID uint) string {
	d := time.Now()
	return fmt.Sprintf("attachments/%d/%d/%d/%v", d.Year(), entryID, d.YearDay(), uuid.New())
}

func (s *attachmentService) getPresignClient(ctx context.Context) (s3Presigner, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.s3cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.s3cfg.AccessKey,
			s.s3cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.s3cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.s3cfg.BaseEndpoint)
		}
	})

	return newS3PresignClient(client), nil
}

// CreateAttachment records the metadata row and hands back a presigned
// PUT URL; the client pushes the bytes straight to object storage. Size
// and type are computed by the caller at upload time and are immutable
// afterward.
func (s *attachmentService) CreateAttachment(ctx context.Context, entryID, uploaderID uint, req models.CreateAttachmentRequest) (*models.AttachmentUpload, error) {
	if !req.FileType.Valid() {
		return nil, models.ErrorValidation{Message: "invalid file type"}
	}

	if _, err := s.entryRepo.GetByID(entryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "entry not found"}
		}
		return nil, err
	}

	attachment := &models.Attachment{
		EntryID:          entryID,
		StorageKey:       storageKey(entryID),
		OriginalFilename: req.OriginalFilename,
		FileType:         req.FileType,
		FileSize:         req.FileSize,
		MimeType:         req.MimeType,
		Description:      req.Description,
		UploadedByID:     uploaderID,
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, err
	}

	putReq, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3cfg.Bucket),
		Key:         aws.String(attachment.StorageKey),
		ContentType: aws.String(req.MimeType),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return nil, err
	}

	if err := s.attachmentRepo.Create(attachment); err != nil {
		return nil, err
	}

	return &models.AttachmentUpload{Attachment: attachment, UploadURL: putReq.URL}, nil
}

func (s *attachmentService) GetDownloadURL(ctx context.Context, attachmentID uint) (string, error) {
	attachment, err := s.attachmentRepo.GetByID(attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.ErrorNotFound{Message: "attachment not found"}
		}
		return "", err
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	getReq, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.s3cfg.Bucket),
		Key:    aws.String(attachment.StorageKey),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return getReq.URL, nil
}

func (s *attachmentService) GetAttachments(entryID uint) ([]models.Attachment, error) {
	return s.attachmentRepo.ListByEntry(entryID)
}

func (s *attachmentService) GetAttachment(id uint) (*models.Attachment, error) {
	attachment, err := s.attachmentRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorNotFound{Message: "attachment not found"}
	}
	return attachment, err
}

func (s *attachmentService) DeleteAttachment(id uint) error {
	if _, err := s.attachmentRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "attachment not found"}
		}
		return err
	}
	return s.attachmentRepo.Delete(id)
}
