package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTestGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestOutboxRepository_Create(t *testing.T) {
	gormDB, mock := newTestGormDB(t)
	repo := NewOutboxRepository(gormDB)

	mock.ExpectExec(`INSERT INTO outbox_events`).
		WithArgs(
			"evt-1", "req-1", "employee", "ITPNS9",
			"employee_promoted", "hr.employee.lifecycle.v1",
			[]byte(`{"employee_id":9}`), OutboxStatusPending,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), OutboxEvent{
		ID:            "evt-1",
		RequestID:     "req-1",
		AggregateType: "employee",
		AggregateID:   "ITPNS9",
		EventType:     "employee_promoted",
		Topic:         "hr.employee.lifecycle.v1",
		Payload:       []byte(`{"employee_id":9}`),
		Status:        OutboxStatusPending,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	gormDB, mock := newTestGormDB(t)
	repo := NewOutboxRepository(gormDB)

	rows := sqlmock.NewRows([]string{
		"id", "aggregate_type", "aggregate_id", "event_type",
		"topic", "payload", "status", "retry_count", "next_retry_at",
	}).AddRow(
		"evt-1", "attendance", "2025-03-14", "attendance_checked_in",
		"hr.attendance.checkin.v1", []byte(`{}`), OutboxStatusPending, 0,
		time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
	)
	mock.ExpectQuery(`FROM outbox_events`).
		WithArgs(OutboxStatusPending, OutboxStatusFailed, 50).
		WillReturnRows(rows)

	events, err := repo.ListPending(context.Background(), 50)
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "evt-1", events[0].ID)
	assert.Equal(t, "hr.attendance.checkin.v1", events[0].Topic)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkSent(t *testing.T) {
	gormDB, mock := newTestGormDB(t)
	repo := NewOutboxRepository(gormDB)

	mock.ExpectExec(`UPDATE outbox_events`).
		WithArgs(OutboxStatusSent, "evt-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkSent(context.Background(), "evt-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	gormDB, mock := newTestGormDB(t)
	repo := NewOutboxRepository(gormDB)

	mock.ExpectExec(`UPDATE outbox_events`).
		WithArgs(OutboxStatusFailed, "broker unreachable", "evt-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkFailed(context.Background(), "evt-1", "broker unreachable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateOutboxEvent(t *testing.T) {
	valid := OutboxEvent{
		ID:      "evt-1",
		Topic:   "hr.employee.lifecycle.v1",
		Payload: []byte(`{}`),
		Status:  OutboxStatusPending,
	}
	assert.NoError(t, ValidateOutboxEvent(valid))

	missingID := valid
	missingID.ID = ""
	assert.Error(t, ValidateOutboxEvent(missingID))

	missingTopic := valid
	missingTopic.Topic = ""
	assert.Error(t, ValidateOutboxEvent(missingTopic))

	badStatus := valid
	badStatus.Status = "queued"
	assert.EqualError(t, ValidateOutboxEvent(badStatus), "invalid outbox status: queued")
}
