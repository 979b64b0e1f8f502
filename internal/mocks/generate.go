// Package mocks provides mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe
// mocks for the ports interfaces. To regenerate after interface
// changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	api := mocks.NewMockRecordAPI(ctrl)
//	api.EXPECT().List(gomock.Any(), gomock.Any()).Return(records, nil)
package mocks

// Generate mock for the RecordAPI interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=record_api_mock.go github.com/formdesk/formdesk/internal/ports RecordAPI
