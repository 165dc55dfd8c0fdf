package mocks

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/manzapp/manz/backend/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockObjectStore is a mock of the S3 upload client
type MockObjectStore struct {
	mock.Mock
}

var _ service.ObjectStore = (*MockObjectStore)(nil)

func (m *MockObjectStore) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}
