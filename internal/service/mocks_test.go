package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"siscav/internal/model"
	"siscav/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockPlateRepository is a mock implementation of PlateRepository.
// WithTransaction runs the callback against the mock itself.
type MockPlateRepository struct {
	mock.Mock
}

func (m *MockPlateRepository) Create(ctx context.Context, plate *model.AuthorizedPlate) error {
	args := m.Called(ctx, plate)
	return args.Error(0)
}

func (m *MockPlateRepository) Save(ctx context.Context, plate *model.AuthorizedPlate) error {
	args := m.Called(ctx, plate)
	return args.Error(0)
}

func (m *MockPlateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AuthorizedPlate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthorizedPlate), args.Error(1)
}

func (m *MockPlateRepository) FindByNormalizedPlate(ctx context.Context, normalized string) (*model.AuthorizedPlate, error) {
	args := m.Called(ctx, normalized)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthorizedPlate), args.Error(1)
}

func (m *MockPlateRepository) ListPage(ctx context.Context, skip, limit int) ([]model.AuthorizedPlate, int64, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.AuthorizedPlate), args.Get(1).(int64), args.Error(2)
}

func (m *MockPlateRepository) WithTransaction(ctx context.Context, fn func(repo repository.PlateRepository) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(m)
}

// MockAccessLogRepository is a mock implementation of AccessLogRepository.
type MockAccessLogRepository struct {
	mock.Mock
}

func (m *MockAccessLogRepository) Create(ctx context.Context, log *model.AccessLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockAccessLogRepository) ListPage(ctx context.Context, skip, limit int, filter repository.AccessLogFilter) ([]model.AccessLog, int64, error) {
	args := m.Called(ctx, skip, limit, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.AccessLog), args.Get(1).(int64), args.Error(2)
}

// MockImageStore is a mock implementation of storage.ImageStore.
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, r, size, contentType)
	return args.Error(0)
}

func (m *MockImageStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// testTTLs keeps token lifetimes short but valid for service tests.
const (
	testAccessTTL  = 15 * time.Minute
	testRefreshTTL = 24 * time.Hour
)
