package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/shampooches/salon-scheduler/internal/config"
)

// ======================================================
// GROOMER IMAGE STORE
// ======================================================

const (
	maxImageWidth = 800
	webpQuality   = 85
)

// ImageStore converts uploaded groomer photos to webp and keeps them in an
// S3-compatible bucket. A nil store (no bucket configured) disables uploads.
type ImageStore struct {
	client *s3.Client
	bucket string
}

func NewImageStore(cfg *config.Config) *ImageStore {
	if cfg.S3Bucket == "" || cfg.S3AccessKey == "" {
		return nil
	}

	client := s3.New(s3.Options{
		Region:       cfg.S3Region,
		BaseEndpoint: endpointOrNil(cfg.S3Endpoint),
		UsePathStyle: cfg.S3Endpoint != "",
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey, cfg.S3SecretKey, "",
		),
	})

	return &ImageStore{client: client, bucket: cfg.S3Bucket}
}

func endpointOrNil(endpoint string) *string {
	if endpoint == "" {
		return nil
	}
	return aws.String(endpoint)
}

func (st *ImageStore) Enabled() bool {
	return st != nil
}

// SaveGroomerImage decodes the upload, scales it down to the display width
// and stores it as webp. It returns the object key to persist on the groomer.
func (st *ImageStore) SaveGroomerImage(ctx context.Context, r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	src = scaleDown(src, maxImageWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	key := "groomers/" + uuid.NewString() + ".webp"

	_, err = st.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(st.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	return key, nil
}

// DeleteGroomerImage removes a previously stored photo. Missing objects are
// not an error.
func (st *ImageStore) DeleteGroomerImage(ctx context.Context, key string) error {
	if key == "" || !strings.HasPrefix(key, "groomers/") {
		return nil
	}

	_, err := st.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(st.bucket),
		Key:    aws.String(key),
	})
	return err
}

func scaleDown(src image.Image, maxWidth int) image.Image {
	bounds := src.Bounds()
	if bounds.Dx() <= maxWidth {
		return src
	}

	height := bounds.Dy() * maxWidth / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
