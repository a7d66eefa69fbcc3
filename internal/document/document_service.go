package document

import (
	"context"
	"errors"

	documenterrors "hrm-core/internal/document/errors"
	"hrm-core/internal/identity"
	"hrm-core/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const documentCodePrefix = "DOC"

// CandidateDirectory supplies the owner attributes a document code is built
// from. Implemented over the candidate repository at wiring time.
type CandidateDirectory interface {
	LookupOwner(ctx context.Context, candidateID int64) (jobTitleID, departmentID int64, err error)
}

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	Upload(ctx context.Context, req UploadDocumentRequest) (DocumentResponse, error)
	ListByCandidate(ctx context.Context, candidateID int64) ([]DocumentResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	owners CandidateDirectory
	codes  *identity.Generator
	logger *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	owners CandidateDirectory,
	codes *identity.Generator,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		owners: owners,
		codes:  codes,
		logger: l,
	}
}

func (s *service) Upload(ctx context.Context, req UploadDocumentRequest) (DocumentResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	jobTitleID, departmentID, err := s.owners.LookupOwner(ctx, req.CandidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DocumentResponse{}, documenterrors.ErrOwnerNotFound
		}
		return DocumentResponse{}, err
	}

	candidateID := req.CandidateID
	doc := &Document{
		CandidateID: &candidateID,
		FileURL:     req.FileURL,
		Notes:       req.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if err := qtx.Create(ctx, doc); err != nil {
			return err
		}

		doc.Code = s.codes.Generate(ctx, documentCodePrefix, jobTitleID, departmentID, doc.ID)
		return qtx.UpdateCode(ctx, doc.ID, doc.Code)
	})
	if err != nil {
		s.logger.Error("upload document failed",
			zap.String("request_id", rid),
			zap.Int64("candidate_id", req.CandidateID),
			zap.Error(err),
		)
		return DocumentResponse{}, err
	}

	s.logger.Info("document uploaded",
		zap.String("request_id", rid),
		zap.Int64("document_id", doc.ID),
		zap.String("code", doc.Code),
	)
	return mapToResponse(*doc), nil
}

func (s *service) ListByCandidate(ctx context.Context, candidateID int64) ([]DocumentResponse, error) {
	docs, err := s.repo.FindByCandidateID(ctx, candidateID)
	if err != nil {
		s.logger.Error("list documents failed", zap.Int64("candidate_id", candidateID), zap.Error(err))
		return nil, err
	}

	res := make([]DocumentResponse, len(docs))
	for i, doc := range docs {
		res[i] = mapToResponse(doc)
	}
	return res, nil
}

func mapToResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:          doc.ID,
		Code:        doc.Code,
		CandidateID: doc.CandidateID,
		EmployeeID:  doc.EmployeeID,
		FileURL:     doc.FileURL,
		Notes:       doc.Notes,
	}
}
