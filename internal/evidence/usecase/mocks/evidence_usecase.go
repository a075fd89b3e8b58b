// Package mocks provides mock implementations of the evidence use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	evidenceDomain "github.com/allisson/custody/internal/evidence/domain"
)

// MockEvidenceUseCase is a mock implementation of EvidenceUseCase for testing.
type MockEvidenceUseCase struct {
	mock.Mock
}

// Register mocks the Register method of EvidenceUseCase.
func (m *MockEvidenceUseCase) Register(
	ctx context.Context,
	input *evidenceDomain.RegisterEvidenceInput,
) (*evidenceDomain.Evidence, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*evidenceDomain.Evidence), args.Error(1)
}

// Get mocks the Get method of EvidenceUseCase.
func (m *MockEvidenceUseCase) Get(ctx context.Context, id int64) (*evidenceDomain.Evidence, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*evidenceDomain.Evidence), args.Error(1)
}

// Lookup mocks the Lookup method of EvidenceUseCase.
func (m *MockEvidenceUseCase) Lookup(
	ctx context.Context,
	evidenceType evidenceDomain.EvidenceType,
	identifier string,
) (*evidenceDomain.Evidence, error) {
	args := m.Called(ctx, evidenceType, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*evidenceDomain.Evidence), args.Error(1)
}

// List mocks the List method of EvidenceUseCase.
func (m *MockEvidenceUseCase) List(ctx context.Context, offset, limit int) ([]*evidenceDomain.Evidence, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*evidenceDomain.Evidence), args.Error(1)
}

// Remove mocks the Remove method of EvidenceUseCase.
func (m *MockEvidenceUseCase) Remove(
	ctx context.Context,
	input *evidenceDomain.RemoveEvidenceInput,
) (*evidenceDomain.Deletion, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*evidenceDomain.Deletion), args.Error(1)
}

// ListDeletions mocks the ListDeletions method of EvidenceUseCase.
func (m *MockEvidenceUseCase) ListDeletions(
	ctx context.Context,
	offset, limit int,
) ([]*evidenceDomain.Deletion, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*evidenceDomain.Deletion), args.Error(1)
}
