package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/terangamart/terangamart/config"
)

// MediaService resolves stored image keys to retrievable URLs. Uploads
// happen on the catalog side; this service only reads.
type MediaService interface {
	ResolveURL(key string) string
}

type mediaService struct {
	Config  *config.Config
	presign *s3.PresignClient
}

func NewMediaService(conf *config.Config) MediaService {
	svc := &mediaService{Config: conf}
	if conf.MediaBucket == "" {
		return svc
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(conf.AwsRegion),
	}
	if conf.AwsAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AwsAccessKeyID, conf.AwsSecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		log.Printf("media service: unable to load AWS config: %v", err)
		return svc
	}
	svc.presign = s3.NewPresignClient(s3.NewFromConfig(awsCfg))
	return svc
}

func (m *mediaService) ResolveURL(key string) string {
	if key == "" {
		return ""
	}
	// Seed data and externally hosted images store full URLs.
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}
	if m.Config.MediaBucket == "" {
		return key
	}
	if m.Config.MediaBucketIsPublic || m.presign == nil {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Config.MediaBucket, m.Config.AwsRegion, key)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out, err := m.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.Config.MediaBucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		log.Printf("media service: presign failed for %q: %v", key, err)
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Config.MediaBucket, m.Config.AwsRegion, key)
	}
	return out.URL
}
