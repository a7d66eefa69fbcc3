package attendance

import (
	"context"
	"time"

	"hrm-core/internal/employee"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// MarkCheckedIn flips the day's placeholder row from NOT_CHECKED_IN to
	// PRESENT. Returns the number of rows changed: 0 means the employee is
	// already checked in (or the day was never seeded).
	MarkCheckedIn(ctx context.Context, employeeID int64, date time.Time, checkInAt time.Time) (int64, error)
	// InsertCheckedIn inserts a PRESENT row directly, doing nothing on a
	// (employee, date) conflict. Fallback for unseeded days; the conflict
	// clause keeps concurrent duplicate scans down to one row.
	InsertCheckedIn(ctx context.Context, employeeID int64, date time.Time, checkInAt time.Time) (bool, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*Attendance, error)
	// SeedDay creates the NOT_CHECKED_IN placeholder per active employee.
	SeedDay(ctx context.Context, date time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) MarkCheckedIn(ctx context.Context, employeeID int64, date time.Time, checkInAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
UPDATE attendances
SET status = ?, check_in_at = ?, updated_at = NOW()
WHERE employee_id = ?
	AND attendance_date = ?
	AND status = ?
`, StatusPresent, checkInAt, employeeID, date.Format("2006-01-02"), StatusNotCheckedIn)
	return res.RowsAffected, res.Error
}

func (r *repository) InsertCheckedIn(ctx context.Context, employeeID int64, date time.Time, checkInAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
INSERT INTO attendances (employee_id, attendance_date, check_in_at, status, created_at, updated_at)
VALUES (?, ?, ?, ?, NOW(), NOW())
ON CONFLICT (employee_id, attendance_date) DO NOTHING
`, employeeID, date.Format("2006-01-02"), checkInAt, StatusPresent)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

func (r *repository) SeedDay(ctx context.Context, date time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
INSERT INTO attendances (employee_id, attendance_date, status, created_at, updated_at)
SELECT id, ?, ?, NOW(), NOW()
FROM employees
WHERE deleted_at IS NULL
	AND status IN (?, ?)
ON CONFLICT (employee_id, attendance_date) DO NOTHING
`, date.Format("2006-01-02"), StatusNotCheckedIn, employee.StatusProbation, employee.StatusActive)
	return res.RowsAffected, res.Error
}
