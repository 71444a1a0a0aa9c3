package upload

import "fmt"

// AuthError means S3 rejected the supplied credentials.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("s3 rejected credentials: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// NotFoundError means the local file to upload does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("local file not found: %s", e.Path)
}

// UploadError is any other transport or storage failure during the PUT.
type UploadError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload s3://%s/%s: %v", e.Bucket, e.Key, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
