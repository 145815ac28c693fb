package service

import (
	"testing"

	"ai-journaling-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerDisabledWithoutSpec(t *testing.T) {
	svc := NewSchedulerService("", &runRecorder{}, logger.NewNopLogger())

	assert.NoError(t, svc.Start())
	<-svc.Stop().Done()
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	svc := NewSchedulerService("every night", &runRecorder{}, logger.NewNopLogger())

	assert.Error(t, svc.Start())
}

func TestSchedulerStarts(t *testing.T) {
	svc := NewSchedulerService("0 3 * * *", &runRecorder{}, logger.NewNopLogger())

	assert.NoError(t, svc.Start())
	<-svc.Stop().Done()
}
