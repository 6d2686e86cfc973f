package config

import "os"

// S3Config carries the object-storage settings for attachment uploads.
// Works against AWS or any S3-compatible endpoint (e.g. MinIO).
type S3Config struct {
	Region       string
	Bucket       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

func LoadS3Config() S3Config {
	return S3Config{
		Region:       getenv("S3_REGION", "us-east-1"),
		Bucket:       getenv("S3_BUCKET", "ts-kb-attachments"),
		BaseEndpoint: os.Getenv("S3_ENDPOINT"),
		AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		SecretKey:    os.Getenv("S3_SECRET_KEY"),
	}
}
