package services

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"

	"github.com/LuSP19/space-tg/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// Mocks
type MockAPIClient struct {
	mock.Mock
}

func (m *MockAPIClient) GetJSON(ctx context.Context, rawURL string, query url.Values, out interface{}) error {
	args := m.Called(ctx, rawURL, query, out)
	return args.Error(0)
}

// respond makes the next GetJSON for rawURL decode body into the caller's value
func (m *MockAPIClient) respond(rawURL string, body string) *mock.Call {
	return m.On("GetJSON", mock.Anything, rawURL, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			if err := json.Unmarshal([]byte(body), args.Get(3)); err != nil {
				panic(err)
			}
		}).
		Return(nil)
}

type MockImageDownloader struct {
	mock.Mock
}

func (m *MockImageDownloader) DownloadImage(ctx context.Context, rawURL string, query url.Values) ([]byte, string, error) {
	args := m.Called(ctx, rawURL, query)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Ensure() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockImageStore) Save(filename string, data []byte) (string, error) {
	args := m.Called(filename, data)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) List() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockImageStore) Open(filename string) (io.ReadCloser, error) {
	args := m.Called(filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

type MockPhotoSender struct {
	mock.Mock
}

func (m *MockPhotoSender) SendPhoto(ctx context.Context, chatID string, name string, r io.Reader) error {
	args := m.Called(ctx, chatID, name, r)
	return args.Error(0)
}

type MockImageMirror struct {
	mock.Mock
}

func (m *MockImageMirror) UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) RecordFetch(ctx context.Context, runID string, img domain.FetchedImage) error {
	args := m.Called(ctx, runID, img)
	return args.Error(0)
}

func (m *MockCatalog) MarkDelivered(ctx context.Context, filename string, deliveredAt time.Time) error {
	args := m.Called(ctx, filename, deliveredAt)
	return args.Error(0)
}

type MockSQSClient struct {
	mock.Mock
}

func (m *MockSQSClient) SendMessage(ctx context.Context, queueURL string, msg interface{}) error {
	args := m.Called(ctx, queueURL, msg)
	return args.Error(0)
}

type MockRedisClient struct {
	mock.Mock
}

func (m *MockRedisClient) IncrBy(ctx context.Context, key string, value int64) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockRedisClient) SAdd(ctx context.Context, key string, members ...interface{}) (int64, error) {
	args := m.Called(ctx, key, members)
	return int64(args.Int(0)), args.Error(1)
}

type MockRunStatusRepository struct {
	mock.Mock
}

func (m *MockRunStatusRepository) UpdateRunStatus(ctx context.Context, runID string, status string) error {
	args := m.Called(ctx, runID, status)
	return args.Error(0)
}

func (m *MockRunStatusRepository) CompleteRun(ctx context.Context, runID string, status string, completedAt string, deliveredCount int) error {
	args := m.Called(ctx, runID, status, completedAt, deliveredCount)
	return args.Error(0)
}
