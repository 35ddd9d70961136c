// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package modelmocks

import (
	"go.uber.org/mock/gomock"
)

// NewLogger creates a mock logger that accepts any log line and returns itself from With()
func NewLogger(ctl *gomock.Controller) *MockLogger {
	logger := NewMockLogger(ctl)

	logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().With(gomock.Any()).Return(logger).AnyTimes()

	return logger
}
