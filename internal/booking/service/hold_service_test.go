package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSlotHold_Acquire(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	svc := NewSlotHoldService(db, 15*time.Minute, zap.NewNop())

	mockRedis.Regexp().ExpectSetNX(
		"hold:Banjara Workbench:laser-cutter:2026-03-14:10:00",
		`[a-f0-9-]{36}`,
		15*time.Minute,
	).SetVal(true)

	token, ok, err := svc.Acquire(context.Background(), "Banjara Workbench", "laser-cutter", "2026-03-14", "10:00")

	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSlotHold_AcquireSlotAlreadyHeld(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	svc := NewSlotHoldService(db, 15*time.Minute, zap.NewNop())

	mockRedis.Regexp().ExpectSetNX(
		"hold:Banjara Workbench:laser-cutter:2026-03-14:10:00",
		`[a-f0-9-]{36}`,
		15*time.Minute,
	).SetVal(false)

	token, ok, err := svc.Acquire(context.Background(), "Banjara Workbench", "laser-cutter", "2026-03-14", "10:00")

	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, token)
}

func TestSlotHold_AcquireRedisError(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	svc := NewSlotHoldService(db, 15*time.Minute, zap.NewNop())

	mockRedis.Regexp().ExpectSetNX(
		"hold:Banjara Workbench:laser-cutter:2026-03-14:10:00",
		`[a-f0-9-]{36}`,
		15*time.Minute,
	).SetErr(errors.New("connection refused"))

	_, ok, err := svc.Acquire(context.Background(), "Banjara Workbench", "laser-cutter", "2026-03-14", "10:00")

	assert.Error(t, err)
	assert.False(t, ok)
}

func TestSlotHold_Release(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	svc := NewSlotHoldService(db, 15*time.Minute, zap.NewNop())

	mockRedis.ExpectDel("hold:Banjara Workbench:laser-cutter:2026-03-14:10:00").SetVal(1)

	err := svc.Release(context.Background(), "Banjara Workbench", "laser-cutter", "2026-03-14", "10:00")

	assert.NoError(t, err)
	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSlotHold_ReleaseRedisError(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	svc := NewSlotHoldService(db, 15*time.Minute, zap.NewNop())

	mockRedis.ExpectDel("hold:Banjara Workbench:laser-cutter:2026-03-14:10:00").SetErr(errors.New("connection refused"))

	err := svc.Release(context.Background(), "Banjara Workbench", "laser-cutter", "2026-03-14", "10:00")
	assert.Error(t, err)
}
