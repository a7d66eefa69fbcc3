package candidate

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	candidateerrors "hrm-core/internal/candidate/errors"
	"hrm-core/internal/document"
	"hrm-core/internal/employee"
	"hrm-core/internal/events"
	"hrm-core/internal/identity"
	"hrm-core/internal/messaging/kafka"
	"hrm-core/internal/shared/apperror"
	"hrm-core/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	candidateCodePrefix = "UV"
	dateLayout          = "2006-01-02"

	msgHired           = "candidate hired, employee record created"
	msgAlreadyPromoted = "candidate already promoted, no new employee created"
)

//go:generate mockgen -source=candidate_service.go -destination=mock/candidate_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateCandidateRequest) (CandidateResponse, error)
	GetAll(ctx context.Context) ([]CandidateResponse, error)
	GetByID(ctx context.Context, id int64) (CandidateResponse, error)
	Update(ctx context.Context, id int64, req UpdateCandidateRequest) (PromoteResult, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db        *gorm.DB
	repo      Repository
	employees employee.Repository
	documents document.Repository
	codes     *identity.Generator
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	employees employee.Repository,
	documents document.Repository,
	codes *identity.Generator,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("candidate.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("candidate.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		documents: documents,
		codes:     codes,
		outbox:    outbox,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req CreateCandidateRequest) (CandidateResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create candidate requested",
		zap.String("request_id", rid),
		zap.Int64("job_title_id", req.JobTitleID),
		zap.Int64("department_id", req.DepartmentID),
	)

	appliedAt, err := time.Parse(dateLayout, req.AppliedAt)
	if err != nil {
		return CandidateResponse{}, apperror.InvalidField("Applied At")
	}

	cand := &Candidate{
		FullName:     req.FullName,
		JobTitleID:   req.JobTitleID,
		DepartmentID: req.DepartmentID,
		AppliedAt:    appliedAt,
		Skills:       req.Skills,
		Status:       StatusSubmitted,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if err := qtx.Create(ctx, cand); err != nil {
			return err
		}

		// The code needs the numeric id, so it is assigned after insert
		// within the same transaction.
		cand.Code = s.codes.Generate(ctx, candidateCodePrefix, cand.JobTitleID, cand.DepartmentID, cand.ID)
		return qtx.UpdateCode(ctx, cand.ID, cand.Code)
	})
	if err != nil {
		s.logger.Error("create candidate failed", zap.String("request_id", rid), zap.Error(err))
		return CandidateResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create candidate success",
		zap.String("request_id", rid),
		zap.Int64("candidate_id", cand.ID),
		zap.String("code", cand.Code),
	)
	return mapToResponse(*cand), nil
}

func (s *service) GetAll(ctx context.Context) ([]CandidateResponse, error) {
	cands, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all candidates failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]CandidateResponse, len(cands))
	for i, c := range cands {
		res[i] = mapToResponse(c)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (CandidateResponse, error) {
	cand, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CandidateResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*cand), nil
}

// Update applies a full-row update; when the new status is HIRED the whole
// promotion runs inside the same transaction: employee creation, identity
// code assignment and document reassignment all commit or roll back together.
func (s *service) Update(ctx context.Context, id int64, req UpdateCandidateRequest) (PromoteResult, error) {
	rid := contextutil.GetRequestID(ctx)

	if missing := missingPromotionFields(req); len(missing) > 0 {
		return PromoteResult{}, candidateerrors.MissingFields(missing)
	}

	status := Status(req.Status)
	if !status.Valid() {
		return PromoteResult{}, candidateerrors.ErrInvalidStatus
	}

	appliedAt, err := time.Parse(dateLayout, req.AppliedAt)
	if err != nil {
		return PromoteResult{}, apperror.InvalidField("Applied At")
	}

	s.logger.Debug("update candidate requested",
		zap.String("request_id", rid),
		zap.Int64("candidate_id", id),
		zap.String("status", status.String()),
	)

	var result PromoteResult

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		// Row lock: two concurrent promotions of the same candidate
		// serialize here, so the idempotency check below always sees the
		// first caller's employee.
		cand, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		cand.FullName = req.FullName
		cand.JobTitleID = req.JobTitleID
		cand.DepartmentID = req.DepartmentID
		cand.AppliedAt = appliedAt
		cand.Skills = req.Skills
		cand.Status = status

		if err := qtx.Update(ctx, cand); err != nil {
			return err
		}

		result.Candidate = mapToResponse(*cand)

		if status != StatusHired {
			return nil
		}

		empl, created, err := s.promoteLocked(ctx, tx, cand, rid)
		if err != nil {
			return err
		}

		emplResp := mapToEmployeeResponse(*empl)
		result.Employee = &emplResp
		if created {
			result.Message = msgHired
		} else {
			result.Message = msgAlreadyPromoted
		}
		return nil
	})
	if txErr != nil {
		mapped := mapRepositoryError(txErr)

		var appErr *apperror.AppError
		if errors.As(mapped, &appErr) {
			return PromoteResult{}, mapped
		}

		s.logger.Error("promotion rolled back",
			zap.String("request_id", rid),
			zap.Int64("candidate_id", id),
			zap.Error(txErr),
		)
		return PromoteResult{}, candidateerrors.ErrPromotionFailed
	}

	s.logger.Info("update candidate success",
		zap.String("request_id", rid),
		zap.Int64("candidate_id", id),
		zap.String("status", status.String()),
		zap.String("message", result.Message),
	)
	return result, nil
}

// promoteLocked runs steps 3a-3e of the promotion with the candidate row
// already locked. Returns the employee and whether it was created by this
// call.
func (s *service) promoteLocked(ctx context.Context, tx *gorm.DB, cand *Candidate, rid string) (*employee.Employee, bool, error) {
	qEmpl := s.employees.WithTx(tx)

	// Idempotency check: a prior promotion already produced an employee
	// for this candidate. Not an error, just nothing left to do.
	existing, err := qEmpl.FindByCandidateID(ctx, cand.ID)
	if err == nil {
		s.logger.Info("candidate already promoted",
			zap.String("request_id", rid),
			zap.Int64("candidate_id", cand.ID),
			zap.Int64("employee_id", existing.ID),
		)
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	candidateID := cand.ID
	empl := &employee.Employee{
		FullName:     cand.FullName,
		JobTitleID:   cand.JobTitleID,
		DepartmentID: cand.DepartmentID,
		JoinDate:     time.Now().UTC(),
		Status:       employee.StatusProbation,
		CandidateID:  &candidateID,
	}

	if err := qEmpl.Create(ctx, empl); err != nil {
		return nil, false, err
	}

	empl.Code = s.codes.Generate(ctx, "", empl.JobTitleID, empl.DepartmentID, empl.ID)
	if err := qEmpl.UpdateCode(ctx, empl.ID, empl.Code); err != nil {
		return nil, false, err
	}

	moved, err := s.documents.WithTx(tx).ReassignOwner(ctx, cand.ID, empl.ID)
	if err != nil {
		return nil, false, err
	}

	s.logger.Info("candidate promoted",
		zap.String("request_id", rid),
		zap.Int64("candidate_id", cand.ID),
		zap.Int64("employee_id", empl.ID),
		zap.String("employee_code", empl.Code),
		zap.Int64("documents_reassigned", moved),
	)

	if s.outbox != nil {
		event := events.EmployeePromotedEvent{
			EventType:   events.EmployeePromotedType,
			RequestID:   rid,
			CandidateID: cand.ID,
			EmployeeID:  empl.ID,
			OccurredAt:  time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, false, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.Code,
			EventType:     event.EventType,
			Topic:         events.EmployeeLifecycleTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return nil, false, err
		}
	}

	return empl, true, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete candidate failed", zap.Int64("candidate_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	s.logger.Info("delete candidate success", zap.Int64("candidate_id", id))
	return nil
}

func missingPromotionFields(req UpdateCandidateRequest) []string {
	var missing []string
	if req.FullName == "" {
		missing = append(missing, "full_name")
	}
	if req.JobTitleID == 0 {
		missing = append(missing, "job_title_id")
	}
	if req.DepartmentID == 0 {
		missing = append(missing, "department_id")
	}
	if req.AppliedAt == "" {
		missing = append(missing, "applied_at")
	}
	if req.Status == 0 {
		missing = append(missing, "status")
	}
	return missing
}

func mapToResponse(cand Candidate) CandidateResponse {
	return CandidateResponse{
		ID:           cand.ID,
		Code:         cand.Code,
		FullName:     cand.FullName,
		JobTitleID:   cand.JobTitleID,
		DepartmentID: cand.DepartmentID,
		AppliedAt:    cand.AppliedAt.Format(dateLayout),
		Skills:       cand.Skills,
		Status:       int16(cand.Status),
		StatusLabel:  cand.Status.String(),
	}
}

func mapToEmployeeResponse(empl employee.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           empl.ID,
		Code:         empl.Code,
		FullName:     empl.FullName,
		JobTitleID:   empl.JobTitleID,
		DepartmentID: empl.DepartmentID,
		JoinDate:     empl.JoinDate.Format(dateLayout),
		Status:       empl.Status,
		CandidateID:  empl.CandidateID,
	}
}
