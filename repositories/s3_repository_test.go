package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockS3 struct {
	mock.Mock
}

func (m *MockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestS3Repository_UploadBytes(t *testing.T) {
	mockS3 := new(MockS3)
	repo := NewS3RepositoryWithClient(mockS3, "space-images")

	mockS3.On("PutObject", mock.Anything, mock.MatchedBy(func(input *s3.PutObjectInput) bool {
		return *input.Bucket == "space-images" && *input.Key == "run-1/nasa1.jpg" && *input.ContentType == "image/jpeg"
	}), mock.Anything).Return(&s3.PutObjectOutput{}, nil)

	path, err := repo.UploadBytes(context.Background(), "run-1/nasa1.jpg", []byte("data"), "image/jpeg")
	assert.NoError(t, err)
	assert.Equal(t, "s3://space-images/run-1/nasa1.jpg", path)
	mockS3.AssertExpectations(t)
}

func TestS3Repository_UploadBytes_DefaultContentType(t *testing.T) {
	mockS3 := new(MockS3)
	repo := NewS3RepositoryWithClient(mockS3, "space-images")

	mockS3.On("PutObject", mock.Anything, mock.MatchedBy(func(input *s3.PutObjectInput) bool {
		return *input.ContentType == "application/octet-stream"
	}), mock.Anything).Return(&s3.PutObjectOutput{}, nil)

	_, err := repo.UploadBytes(context.Background(), "run-1/spacex1", []byte("data"), "")
	assert.NoError(t, err)
	mockS3.AssertExpectations(t)
}

func TestS3Repository_UploadBytes_Error(t *testing.T) {
	mockS3 := new(MockS3)
	repo := NewS3RepositoryWithClient(mockS3, "space-images")

	mockS3.On("PutObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("s3 down"))

	_, err := repo.UploadBytes(context.Background(), "k", []byte("data"), "image/png")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload k")
}
