// Package mocks provides testify mocks for the ports interfaces.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen/viewlink/internal/ports"
)

var (
	_ ports.SettingsProvider = (*MockSettingsProvider)(nil)
	_ ports.StageSource      = (*MockStageSource)(nil)
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockSettingsProvider is a mock ports.SettingsProvider.
type MockSettingsProvider struct {
	mock.Mock
}

// NewMockSettingsProvider creates a mock that asserts its expectations on cleanup.
func NewMockSettingsProvider(t testingT) *MockSettingsProvider {
	m := &MockSettingsProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Get provides a mock function with the given key.
func (m *MockSettingsProvider) Get(key string) any {
	ret := m.Called(key)

	return ret.Get(0)
}

// MockStageSource is a mock ports.StageSource.
type MockStageSource struct {
	mock.Mock
}

// NewMockStageSource creates a mock that asserts its expectations on cleanup.
func NewMockStageSource(t testingT) *MockStageSource {
	m := &MockStageSource{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Stage provides a mock function.
func (m *MockStageSource) Stage() (string, bool) {
	ret := m.Called()

	return ret.String(0), ret.Bool(1)
}
