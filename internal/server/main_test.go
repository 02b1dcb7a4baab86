package server_test

import (
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/parsa-mehek/LinkingLink-client/pkg/logger"
)

func newMockLogger(t *testing.T, ctrl *gomock.Controller) *logger.MockLogger {
	t.Helper()

	mockLogger := logger.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

	return mockLogger
}
