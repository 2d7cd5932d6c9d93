package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/kbukum/meetnotes/storage"
)

type fakeS3 struct {
	objects map[string][]byte
	failPut bool
}

func newFakeS3() *fakeS3 { return &fakeS3{objects: map[string][]byte{}} }

func (f *fakeS3) PutObject(_ context.Context, in *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	if f.failPut {
		return nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"}
	}
	data, _ := io.ReadAll(in.Body)
	f.objects[aws.ToString(in.Key)] = data
	return &awss3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *awss3.GetObjectInput, _ ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "missing"}
	}
	return &awss3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *awss3.DeleteObjectInput, _ ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &awss3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *awss3.HeadObjectInput, _ ...func(*awss3.Options)) (*awss3.HeadObjectOutput, error) {
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &smithy.GenericAPIError{Code: "NotFound"}
	}
	return &awss3.HeadObjectOutput{}, nil
}

func TestStorageUsesPrefixedKeys(t *testing.T) {
	fake := newFakeS3()
	s := NewWithClient(fake, "meeting-reports", "meetnotes")
	ctx := context.Background()

	if err := s.Upload(ctx, "reports/abc.txt", strings.NewReader("hello")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if _, ok := fake.objects["meetnotes/reports/abc.txt"]; !ok {
		t.Fatalf("expected prefixed key, got %v", fake.objects)
	}

	ok, err := s.Exists(ctx, "reports/abc.txt")
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}
	rc, err := s.Download(ctx, "reports/abc.txt")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	data, _ := io.ReadAll(rc)
	if string(data) != "hello" {
		t.Errorf("content = %q", data)
	}
}

func TestStorageNotFound(t *testing.T) {
	s := NewWithClient(newFakeS3(), "b", "")
	if _, err := s.Download(context.Background(), "reports/x.txt"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	ok, err := s.Exists(context.Background(), "reports/x.txt")
	if ok || err != nil {
		t.Errorf("Exists = %v, %v", ok, err)
	}
}

func TestStorageUploadError(t *testing.T) {
	fake := newFakeS3()
	fake.failPut = true
	err := NewWithClient(fake, "b", "").Upload(context.Background(), "k", strings.NewReader("x"))
	if err == nil || !strings.Contains(err.Error(), "s3 upload") {
		t.Errorf("expected wrapped upload error, got %v", err)
	}
}
