package upload

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// Uploader puts local files into one bucket under a fixed key prefix.
type Uploader struct {
	bucket string
	folder string
	client *s3.Client
}

func New(bucket, folder, region, accessKey, secretKey string) *Uploader {
	client := s3.New(s3.Options{
		Region: region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	})
	return &Uploader{bucket: bucket, folder: folder, client: client}
}

// Key builds the object key for a local file: prefix + base name, plain
// concatenation. The prefix carries its own trailing slash if one is
// wanted; nothing is inserted here.
func (u *Uploader) Key(localPath string) string {
	return u.folder + filepath.Base(localPath)
}

// Upload puts the file at localPath into the bucket and blocks until S3
// acknowledges it. Single PUT, no multipart.
func (u *Uploader) Upload(ctx context.Context, localPath string) (string, error) {
	key := u.Key(localPath)
	if _, err := os.Stat(localPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Path: localPath}
		}
		return "", Classify(u.bucket, key, err)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", Classify(u.bucket, key, err)
	}
	defer f.Close()

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", Classify(u.bucket, key, err)
	}
	return key, nil
}

// Classify maps an upload failure onto the error taxonomy: S3 error
// codes that mean the credentials were rejected become AuthError,
// everything else UploadError.
func Classify(bucket, key string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "InvalidAccessKeyId", "SignatureDoesNotMatch", "AccessDenied", "ExpiredToken":
			return &AuthError{Err: err}
		}
	}
	return &UploadError{Bucket: bucket, Key: key, Err: err}
}
