package services

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"time"

	sc "wiretrack-http-service/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// InterfacePhotoService 定义照片存储服务接口（外部对象存储协作方）
type InterfacePhotoService interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	PresignGetURL(ctx context.Context, key string) (string, error)
	ThumbnailURL(ctx context.Context, key string, maxWidth int) (string, error)
}

// PhotoService 基于S3兼容对象存储（MinIO）的照片服务
type PhotoService struct {
	Config *sc.Config
}

// NewPhotoService 创建一个新的照片存储服务
func NewPhotoService(cfg *sc.Config) InterfacePhotoService {
	return &PhotoService{Config: cfg}
}

func (s *PhotoService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.Config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.Config.S3AccessKey,
			s.Config.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.Config.S3BaseEndpoint)
		o.UsePathStyle = true // MinIO
	})

	return client, nil
}

// Upload 上传照片字节并返回可访问的URL
func (s *PhotoService) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.Config.S3Bucket
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", err
	}

	return s.objectURL(key), nil
}

// PresignGetURL 返回照片的临时下载URL
func (s *PhotoService) PresignGetURL(ctx context.Context, key string) (string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.Config.S3Bucket
	presignClient := s3.NewPresignClient(client)
	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// ThumbnailURL 返回缩略图URL。缩略图的实际生成由存储侧代理完成，
// 这里只负责拼接尺寸参数。
func (s *PhotoService) ThumbnailURL(ctx context.Context, key string, maxWidth int) (string, error) {
	url, err := s.PresignGetURL(ctx, key)
	if err != nil {
		return "", err
	}
	if maxWidth <= 0 {
		return url, nil
	}

	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "thumb_width=" + strconv.Itoa(maxWidth), nil
}

func (s *PhotoService) objectURL(key string) string {
	base := strings.TrimRight(s.Config.S3BaseEndpoint, "/")
	return base + "/" + s.Config.S3Bucket + "/" + key
}
