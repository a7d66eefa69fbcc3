package attendance

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	attendanceerrors "hrm-core/internal/attendance/errors"
	"hrm-core/internal/employee"
	"hrm-core/internal/messaging/kafka"

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

type fakeAttendanceRepo struct {
	markCheckedInFn   func(ctx context.Context, employeeID int64, date, checkInAt time.Time) (int64, error)
	insertCheckedInFn func(ctx context.Context, employeeID int64, date, checkInAt time.Time) (bool, error)
	findFn            func(ctx context.Context, employeeID int64, date time.Time) (*Attendance, error)
	seedDayFn         func(ctx context.Context, date time.Time) (int64, error)
}

func (f *fakeAttendanceRepo) WithTx(tx *gorm.DB) Repository { return f }
func (f *fakeAttendanceRepo) MarkCheckedIn(ctx context.Context, employeeID int64, date, checkInAt time.Time) (int64, error) {
	return f.markCheckedInFn(ctx, employeeID, date, checkInAt)
}
func (f *fakeAttendanceRepo) InsertCheckedIn(ctx context.Context, employeeID int64, date, checkInAt time.Time) (bool, error) {
	return f.insertCheckedInFn(ctx, employeeID, date, checkInAt)
}
func (f *fakeAttendanceRepo) FindByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*Attendance, error) {
	return f.findFn(ctx, employeeID, date)
}
func (f *fakeAttendanceRepo) SeedDay(ctx context.Context, date time.Time) (int64, error) {
	return f.seedDayFn(ctx, date)
}

type fakeEmployeeRepo struct {
	findByIDFn func(ctx context.Context, id int64) (*employee.Employee, error)
}

func (f *fakeEmployeeRepo) WithTx(tx *gorm.DB) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, empl *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeEmployeeRepo) FindByCandidateID(ctx context.Context, candidateID int64) (*employee.Employee, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepo) UpdateCode(ctx context.Context, id int64, code string) error {
	return nil
}

type fakeOutboxRepo struct {
	mu     sync.Mutex
	events []kafka.OutboxEvent
}

func (f *fakeOutboxRepo) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error           { return nil }
func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id, reason string) error { return nil }

func activeEmployee(id int64, name string) *employee.Employee {
	return &employee.Employee{ID: id, FullName: name, Status: employee.StatusProbation}
}

func validToken(t *testing.T, codec *TokenCodec, employeeID int64, issuedAt time.Time) string {
	t.Helper()
	token, err := codec.Encode(TokenPayload{EmployeeID: employeeID, IssuedAt: issuedAt.UnixMilli()})
	assert.NoError(t, err)
	return token
}

func TestService_Verify_ChecksIn(t *testing.T) {
	gormDB, mock := newTestGormDB(t)
	codec := NewTokenCodec([]byte("test-secret"))

	repo := &fakeAttendanceRepo{
		markCheckedInFn: func(ctx context.Context, employeeID int64, date, checkInAt time.Time) (int64, error) {
			assert.Equal(t, int64(42), employeeID)
			return 1, nil
		},
	}
	employees := &fakeEmployeeRepo{
		findByIDFn: func(ctx context.Context, id int64) (*employee.Employee, error) {
			return activeEmployee(id, "Tran Thi Mai"), nil
		},
	}
	outbox := &fakeOutboxRepo{}

	svc := NewService(gormDB, repo, employees, codec, outbox, Config{})

	scanTime := time.Now()
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Verify(context.Background(), validToken(t, codec, 42, scanTime), scanTime)
	assert.NoError(t, err)
	assert.Equal(t, "Tran Thi Mai", resp.EmployeeName)
	assert.Equal(t, "checked in", resp.Message)
	assert.Len(t, outbox.events, 1)
	assert.Equal(t, "attendance_checked_in", outbox.events[0].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Verify_AlreadyCheckedIn(t *testing.T) {
	gormDB, mock := newTestGormDB(t)
	codec := NewTokenCodec([]byte("test-secret"))

	repo := &fakeAttendanceRepo{
		markCheckedInFn: func(ctx context.Context, employeeID int64, date, checkInAt time.Time) (int64, error) {
			return 0, nil
		},
		insertCheckedInFn: func(ctx context.Context, employeeID int64, date, checkInAt time.Time) (bool, error) {
			return false, nil
		},
	}
	employees := &fakeEmployeeRepo{
		findByIDFn: func(ctx context.Context, id int64) (*employee.Employee, error) {
			return activeEmployee(id, "Tran Thi Mai"), nil
		},
	}
	outbox := &fakeOutboxRepo{}

	svc := NewService(gormDB, repo, employees, codec, outbox, Config{})

	scanTime := time.Now()
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Verify(context.Background(), validToken(t, codec, 42, scanTime), scanTime)
	assert.NoError(t, err)
	assert.Equal(t, "already checked in", resp.Message)
	// A duplicate scan records nothing, so no event either.
	assert.Empty(t, outbox.events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Verify_ExpiredToken(t *testing.T) {
	gormDB, _ := newTestGormDB(t)
	codec := NewTokenCodec([]byte("test-secret"))

	svc := NewService(gormDB, &fakeAttendanceRepo{}, &fakeEmployeeRepo{}, codec, nil, Config{
		RotationWindow: 120 * time.Second,
		ClockSkew:      10 * time.Second,
	})

	scanTime := time.Now()
	token := validToken(t, codec, 42, scanTime.Add(-131*time.Second))

	_, err := svc.Verify(context.Background(), token, scanTime)
	assert.ErrorIs(t, err, attendanceerrors.ErrTokenExpired)
}

func TestService_Verify_FreshTokenWithinWindow(t *testing.T) {
	gormDB, mock := newTestGormDB(t)
	codec := NewTokenCodec([]byte("test-secret"))

	repo := &fakeAttendanceRepo{
		markCheckedInFn: func(ctx context.Context, employeeID int64, date, checkInAt time.Time) (int64, error) {
			return 1, nil
		},
	}
	employees := &fakeEmployeeRepo{
		findByIDFn: func(ctx context.Context, id int64) (*employee.Employee, error) {
			return activeEmployee(id, "Tran Thi Mai"), nil
		},
	}

	svc := NewService(gormDB, repo, employees, codec, nil, Config{
		RotationWindow: 120 * time.Second,
		ClockSkew:      10 * time.Second,
	})

	// 129s old: beyond the window alone but inside window+skew.
	scanTime := time.Now()
	token := validToken(t, codec, 42, scanTime.Add(-129*time.Second))

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.Verify(context.Background(), token, scanTime)
	assert.NoError(t, err)
}

func TestService_Verify_BadSignature(t *testing.T) {
	gormDB, _ := newTestGormDB(t)
	codec := NewTokenCodec([]byte("server-secret"))
	forger := NewTokenCodec([]byte("attacker-secret"))

	svc := NewService(gormDB, &fakeAttendanceRepo{}, &fakeEmployeeRepo{}, codec, nil, Config{})

	scanTime := time.Now()
	_, err := svc.Verify(context.Background(), validToken(t, forger, 42, scanTime), scanTime)
	assert.ErrorIs(t, err, attendanceerrors.ErrTokenSignature)
}

func TestService_Verify_MalformedToken(t *testing.T) {
	gormDB, _ := newTestGormDB(t)
	codec := NewTokenCodec([]byte("test-secret"))

	svc := NewService(gormDB, &fakeAttendanceRepo{}, &fakeEmployeeRepo{}, codec, nil, Config{})

	_, err := svc.Verify(context.Background(), "not-a-token", time.Now())
	assert.ErrorIs(t, err, attendanceerrors.ErrTokenMalformed)
}

func TestService_Verify_UnknownEmployee(t *testing.T) {
	gormDB, _ := newTestGormDB(t)
	codec := NewTokenCodec([]byte("test-secret"))

	employees := &fakeEmployeeRepo{
		findByIDFn: func(ctx context.Context, id int64) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(gormDB, &fakeAttendanceRepo{}, employees, codec, nil, Config{})

	scanTime := time.Now()
	_, err := svc.Verify(context.Background(), validToken(t, codec, 42, scanTime), scanTime)
	assert.ErrorIs(t, err, attendanceerrors.ErrUnknownEmployee)
}

func TestService_Verify_InactiveEmployee(t *testing.T) {
	gormDB, _ := newTestGormDB(t)
	codec := NewTokenCodec([]byte("test-secret"))

	employees := &fakeEmployeeRepo{
		findByIDFn: func(ctx context.Context, id int64) (*employee.Employee, error) {
			return &employee.Employee{ID: id, FullName: "Tran Thi Mai", Status: employee.StatusTerminated}, nil
		},
	}

	svc := NewService(gormDB, &fakeAttendanceRepo{}, employees, codec, nil, Config{})

	scanTime := time.Now()
	_, err := svc.Verify(context.Background(), validToken(t, codec, 42, scanTime), scanTime)
	assert.ErrorIs(t, err, attendanceerrors.ErrUnknownEmployee)
}

func TestService_Verify_ConcurrentScansRecordOnce(t *testing.T) {
	const scans = 50

	gormDB, mock := newTestGormDB(t)
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < scans; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}

	codec := NewTokenCodec([]byte("test-secret"))

	// The fake mirrors the conditional UPDATE: exactly one caller flips the
	// placeholder, everyone else sees zero rows affected.
	var claimed int32
	repo := &fakeAttendanceRepo{
		markCheckedInFn: func(ctx context.Context, employeeID int64, date, checkInAt time.Time) (int64, error) {
			if atomic.CompareAndSwapInt32(&claimed, 0, 1) {
				return 1, nil
			}
			return 0, nil
		},
		insertCheckedInFn: func(ctx context.Context, employeeID int64, date, checkInAt time.Time) (bool, error) {
			return false, nil
		},
	}
	employees := &fakeEmployeeRepo{
		findByIDFn: func(ctx context.Context, id int64) (*employee.Employee, error) {
			return activeEmployee(id, "Tran Thi Mai"), nil
		},
	}

	svc := NewService(gormDB, repo, employees, codec, nil, Config{})

	scanTime := time.Now()
	token := validToken(t, codec, 42, scanTime)

	var wg sync.WaitGroup
	var checkedIn, already int32
	for i := 0; i < scans; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := svc.Verify(context.Background(), token, scanTime)
			assert.NoError(t, err)
			switch resp.Message {
			case "checked in":
				atomic.AddInt32(&checkedIn, 1)
			case "already checked in":
				atomic.AddInt32(&already, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), checkedIn)
	assert.Equal(t, int32(scans-1), already)
}

func TestService_Status_Present(t *testing.T) {
	gormDB, _ := newTestGormDB(t)
	codec := NewTokenCodec([]byte("test-secret"))

	checkInAt := time.Date(2025, 3, 14, 8, 55, 0, 0, time.UTC)
	repo := &fakeAttendanceRepo{
		findFn: func(ctx context.Context, employeeID int64, date time.Time) (*Attendance, error) {
			return &Attendance{
				EmployeeID:     employeeID,
				AttendanceDate: date,
				Status:         StatusPresent,
				CheckInAt:      &checkInAt,
				Employee:       &EmployeeRef{ID: employeeID, FullName: "Tran Thi Mai"},
			}, nil
		},
	}

	svc := NewService(gormDB, repo, &fakeEmployeeRepo{}, codec, nil, Config{})

	resp, err := svc.Status(context.Background(), 42, time.Date(2025, 3, 14, 13, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, StatusPresent, resp.Status)
	assert.Equal(t, "Tran Thi Mai", resp.EmployeeName)
	assert.Equal(t, "2025-03-14", resp.Date)
	assert.NotNil(t, resp.CheckInAt)
	assert.Equal(t, checkInAt, *resp.CheckInAt)
}

func TestService_Status_NoRowReadsNotCheckedIn(t *testing.T) {
	gormDB, _ := newTestGormDB(t)
	codec := NewTokenCodec([]byte("test-secret"))

	repo := &fakeAttendanceRepo{
		findFn: func(ctx context.Context, employeeID int64, date time.Time) (*Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	employees := &fakeEmployeeRepo{
		findByIDFn: func(ctx context.Context, id int64) (*employee.Employee, error) {
			return activeEmployee(id, "Tran Thi Mai"), nil
		},
	}

	svc := NewService(gormDB, repo, employees, codec, nil, Config{})

	resp, err := svc.Status(context.Background(), 42, time.Date(2025, 3, 14, 13, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, StatusNotCheckedIn, resp.Status)
	assert.Equal(t, "Tran Thi Mai", resp.EmployeeName)
	assert.Nil(t, resp.CheckInAt)
}

func TestService_Status_UnknownEmployee(t *testing.T) {
	gormDB, _ := newTestGormDB(t)
	codec := NewTokenCodec([]byte("test-secret"))

	repo := &fakeAttendanceRepo{
		findFn: func(ctx context.Context, employeeID int64, date time.Time) (*Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	employees := &fakeEmployeeRepo{
		findByIDFn: func(ctx context.Context, id int64) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(gormDB, repo, employees, codec, nil, Config{})

	_, err := svc.Status(context.Background(), 404, time.Now())
	assert.ErrorIs(t, err, attendanceerrors.ErrUnknownEmployee)
}

func TestService_SeedDay(t *testing.T) {
	gormDB, _ := newTestGormDB(t)
	codec := NewTokenCodec([]byte("test-secret"))

	var seededDate time.Time
	repo := &fakeAttendanceRepo{
		seedDayFn: func(ctx context.Context, date time.Time) (int64, error) {
			seededDate = date
			return 12, nil
		},
	}

	svc := NewService(gormDB, repo, &fakeEmployeeRepo{}, codec, nil, Config{})

	date := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	seeded, err := svc.SeedDay(context.Background(), date)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), seeded)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), seededDate)
}
