package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	attendanceerrors "hrm-core/internal/attendance/errors"
	"hrm-core/internal/employee"
	"hrm-core/internal/events"
	"hrm-core/internal/messaging/kafka"
	"hrm-core/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// DefaultClockSkew absorbs small drift between the issuing device's
	// clock and the server's.
	DefaultClockSkew = 10 * time.Second

	msgCheckedIn        = "checked in"
	msgAlreadyCheckedIn = "already checked in"
)

type Config struct {
	RotationWindow time.Duration
	ClockSkew      time.Duration
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Verify(ctx context.Context, token string, scanTime time.Time) (VerifyResponse, error)
	Status(ctx context.Context, employeeID int64, date time.Time) (StatusResponse, error)
	SeedDay(ctx context.Context, date time.Time) (int64, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	employees employee.Repository
	codec     *TokenCodec
	outbox    kafka.OutboxRepository
	window    time.Duration
	skew      time.Duration
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	employees employee.Repository,
	codec *TokenCodec,
	outbox kafka.OutboxRepository,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	if cfg.RotationWindow <= 0 {
		cfg.RotationWindow = DefaultRotationWindow
	}
	if cfg.ClockSkew <= 0 {
		cfg.ClockSkew = DefaultClockSkew
	}
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		codec:     codec,
		outbox:    outbox,
		window:    cfg.RotationWindow,
		skew:      cfg.ClockSkew,
		logger:    l,
	}
}

// Verify validates a scanned token and records the check-in at most once per
// employee per day. A re-scan of a still-valid token is success with an
// "already checked in" notice, never an error: employees scanning twice by
// accident must not be punished for it.
func (s *service) Verify(ctx context.Context, token string, scanTime time.Time) (VerifyResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	payload, err := s.codec.Decode(token)
	if err != nil {
		s.logger.Warn("token rejected", zap.String("request_id", rid), zap.Error(err))
		return VerifyResponse{}, err
	}

	issuedAt := time.UnixMilli(payload.IssuedAt)
	age := scanTime.Sub(issuedAt)
	// A token "issued" further in the future than the skew allowance is as
	// unacceptable as a stale one.
	if age > s.window+s.skew || age < -s.skew {
		s.logger.Warn("token expired",
			zap.String("request_id", rid),
			zap.Int64("employee_id", payload.EmployeeID),
			zap.Duration("age", age),
		)
		return VerifyResponse{}, attendanceerrors.ErrTokenExpired
	}

	empl, err := s.employees.FindByID(ctx, payload.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VerifyResponse{}, attendanceerrors.ErrUnknownEmployee
		}
		return VerifyResponse{}, err
	}
	if !empl.IsActive() {
		return VerifyResponse{}, attendanceerrors.ErrUnknownEmployee
	}

	date := scanTime.UTC().Truncate(24 * time.Hour)
	checkInAt := scanTime.UTC()

	recorded := false
	err = s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		// Conflict-safe write, no read-then-write: concurrent scans of the
		// same token race on one conditional UPDATE and at most one wins.
		affected, err := qtx.MarkCheckedIn(ctx, empl.ID, date, checkInAt)
		if err != nil {
			return err
		}
		if affected > 0 {
			recorded = true
		} else {
			// No placeholder touched: either the day was never seeded or
			// the employee is already PRESENT. The conflict clause keeps
			// this path single-winner too.
			inserted, err := qtx.InsertCheckedIn(ctx, empl.ID, date, checkInAt)
			if err != nil {
				return err
			}
			recorded = inserted
		}

		if recorded && s.outbox != nil {
			return s.enqueueCheckedIn(ctx, tx, empl.ID, date, checkInAt, rid)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("record check-in failed",
			zap.String("request_id", rid),
			zap.Int64("employee_id", empl.ID),
			zap.Error(err),
		)
		return VerifyResponse{}, err
	}

	message := msgAlreadyCheckedIn
	if recorded {
		message = msgCheckedIn
	}

	s.logger.Info("check-in verified",
		zap.String("request_id", rid),
		zap.Int64("employee_id", empl.ID),
		zap.String("message", message),
	)
	return VerifyResponse{EmployeeName: empl.FullName, Message: message}, nil
}

func (s *service) enqueueCheckedIn(ctx context.Context, tx *gorm.DB, employeeID int64, date, checkInAt time.Time, rid string) error {
	event := events.AttendanceCheckedInEvent{
		EventType:  events.AttendanceCheckedType,
		RequestID:  rid,
		EmployeeID: employeeID,
		Date:       date.Format("2006-01-02"),
		CheckedAt:  checkInAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "attendance",
		AggregateID:   date.Format("2006-01-02"),
		EventType:     event.EventType,
		Topic:         events.AttendanceTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// Status reports the employee's attendance state for a day. A day without a
// row reads as NOT_CHECKED_IN: unseeded days and seeded-but-unscanned days
// are the same thing to the caller.
func (s *service) Status(ctx context.Context, employeeID int64, date time.Time) (StatusResponse, error) {
	day := date.UTC().Truncate(24 * time.Hour)

	resp := StatusResponse{
		EmployeeID: employeeID,
		Date:       day.Format("2006-01-02"),
		Status:     StatusNotCheckedIn,
	}

	record, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			empl, err := s.employees.FindByID(ctx, employeeID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return StatusResponse{}, attendanceerrors.ErrUnknownEmployee
				}
				return StatusResponse{}, err
			}
			resp.EmployeeName = empl.FullName
			return resp, nil
		}
		return StatusResponse{}, err
	}

	resp.Status = record.Status
	resp.CheckInAt = record.CheckInAt
	if record.Employee != nil {
		resp.EmployeeName = record.Employee.FullName
	}
	return resp, nil
}

// SeedDay creates the day's NOT_CHECKED_IN placeholder rows. It is safe to
// call repeatedly; existing rows are left alone.
func (s *service) SeedDay(ctx context.Context, date time.Time) (int64, error) {
	seeded, err := s.repo.SeedDay(ctx, date.UTC().Truncate(24*time.Hour))
	if err != nil {
		s.logger.Error("seed day failed", zap.Time("date", date), zap.Error(err))
		return 0, err
	}

	s.logger.Info("day seeded",
		zap.String("date", date.Format("2006-01-02")),
		zap.Int64("seeded", seeded),
	)
	return seeded, nil
}
