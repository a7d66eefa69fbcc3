package candidate

import (
	"errors"
	"strings"

	candidateerrors "hrm-core/internal/candidate/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return candidateerrors.ErrCandidateNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_employee_candidate":
				return candidateerrors.ErrCandidateAlreadyPromoted
			case "uq_candidate_code":
				return candidateerrors.ErrCandidateCodeAlreadyExists
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employee_candidate") {
		return candidateerrors.ErrCandidateAlreadyPromoted
	}

	return err
}
