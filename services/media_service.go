package services

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/civicgridhq/civicgrid/config"
)

const uploadTimeout = 15 * time.Second

// MediaService stores resolution-proof photos and hands back their public
// URLs. The rest of the system keeps only the URL.
type MediaService interface {
	UploadProofPhoto(fileHeader *multipart.FileHeader, reportID uuid.UUID) (string, error)
}

type mediaService struct {
	Config *config.Config
}

// NewMediaService instantiates a MediaService backed by S3
func NewMediaService(conf *config.Config) MediaService {
	return &mediaService{Config: conf}
}

func (m *mediaService) UploadProofPhoto(fileHeader *multipart.FileHeader, reportID uuid.UUID) (string, error) {
	if !supportedImage(fileHeader.Filename) {
		return "", errors.Errorf("unsupported image type: %s", filepath.Ext(fileHeader.Filename))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", errors.Wrap(err, "opening proof photo")
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return "", errors.Wrap(err, "decoding proof photo")
	}

	// Full-size photo plus a feed thumbnail, both re-encoded as JPEG.
	var full, thumb bytes.Buffer
	if err := jpeg.Encode(&full, img, &jpeg.Options{Quality: 90}); err != nil {
		return "", errors.Wrap(err, "encoding proof photo")
	}
	if err := jpeg.Encode(&thumb, imaging.Thumbnail(img, 320, 320, imaging.Lanczos), &jpeg.Options{Quality: 80}); err != nil {
		return "", errors.Wrap(err, "encoding thumbnail")
	}

	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()

	client, err := m.s3Client(ctx)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("resolution-proof/%s/%s.jpg", reportID, uuid.New())
	thumbKey := strings.Replace(key, ".jpg", "_thumb.jpg", 1)

	if err := m.putObject(ctx, client, key, full.Bytes()); err != nil {
		return "", errors.Wrap(err, "uploading proof photo")
	}
	if err := m.putObject(ctx, client, thumbKey, thumb.Bytes()); err != nil {
		return "", errors.Wrap(err, "uploading thumbnail")
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Config.ProofPhotoBucket, m.Config.AwsRegion, key), nil
}

func (m *mediaService) s3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(m.Config.AwsRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			m.Config.AwsAccessKeyID,
			m.Config.AwsSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "loading AWS config")
	}
	return s3.NewFromConfig(cfg), nil
}

func (m *mediaService) putObject(ctx context.Context, client *s3.Client, key string, body []byte) error {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.Config.ProofPhotoBucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("image/jpeg"),
	})
	return err
}

func supportedImage(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpeg", ".jpg":
		return true
	}
	return false
}
