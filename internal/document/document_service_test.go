package document

import (
	"context"
	"testing"

	documenterrors "hrm-core/internal/document/errors"
	"hrm-core/internal/identity"
	lookupmock "hrm-core/internal/lookup/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeDocumentRepo struct {
	nextID int64
	docs   map[int64]*Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{nextID: 1, docs: map[int64]*Document{}}
}

func (f *fakeDocumentRepo) WithTx(tx *gorm.DB) Repository { return f }
func (f *fakeDocumentRepo) Create(ctx context.Context, doc *Document) error {
	doc.ID = f.nextID
	f.nextID++
	f.docs[doc.ID] = doc
	return nil
}
func (f *fakeDocumentRepo) FindByCandidateID(ctx context.Context, candidateID int64) ([]Document, error) {
	var out []Document
	for _, doc := range f.docs {
		if doc.CandidateID != nil && *doc.CandidateID == candidateID {
			out = append(out, *doc)
		}
	}
	return out, nil
}
func (f *fakeDocumentRepo) UpdateCode(ctx context.Context, id int64, code string) error {
	f.docs[id].Code = code
	return nil
}
func (f *fakeDocumentRepo) ReassignOwner(ctx context.Context, candidateID, employeeID int64) (int64, error) {
	return 0, nil
}

type fakeDirectory struct {
	jobTitleID   int64
	departmentID int64
	err          error
}

func (f fakeDirectory) LookupOwner(ctx context.Context, candidateID int64) (int64, int64, error) {
	return f.jobTitleID, f.departmentID, f.err
}

func newUploadGenerator(t *testing.T) *identity.Generator {
	t.Helper()
	ctrl := gomock.NewController(t)
	resolver := lookupmock.NewMockResolver(ctrl)
	resolver.EXPECT().ResolveJobTitle(gomock.Any(), int64(2)).Return("IT", nil).AnyTimes()
	resolver.EXPECT().ResolveDepartment(gomock.Any(), int64(4)).Return("PNS", nil).AnyTimes()
	return identity.NewGenerator(resolver)
}

func TestService_Upload(t *testing.T) {
	gormDB, mock := newTestGormDB(t)
	repo := newFakeDocumentRepo()

	svc := NewService(gormDB, repo, fakeDirectory{jobTitleID: 2, departmentID: 4}, newUploadGenerator(t))

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Upload(context.Background(), UploadDocumentRequest{
		CandidateID: 5,
		FileURL:     "s3://hr-documents/cv.pdf",
	})
	assert.NoError(t, err)
	assert.Equal(t, "DOCITPNS1", resp.Code)
	assert.NotNil(t, resp.CandidateID)
	assert.Equal(t, int64(5), *resp.CandidateID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Upload_OwnerNotFound(t *testing.T) {
	gormDB, _ := newTestGormDB(t)
	repo := newFakeDocumentRepo()

	svc := NewService(gormDB, repo, fakeDirectory{err: gorm.ErrRecordNotFound}, newUploadGenerator(t))

	_, err := svc.Upload(context.Background(), UploadDocumentRequest{
		CandidateID: 404,
		FileURL:     "s3://hr-documents/cv.pdf",
	})
	assert.ErrorIs(t, err, documenterrors.ErrOwnerNotFound)
}

func TestService_ListByCandidate(t *testing.T) {
	gormDB, _ := newTestGormDB(t)
	repo := newFakeDocumentRepo()
	candidateID := int64(5)
	repo.docs[1] = &Document{ID: 1, CandidateID: &candidateID, FileURL: "s3://hr-documents/cv.pdf"}
	repo.nextID = 2

	svc := NewService(gormDB, repo, fakeDirectory{}, newUploadGenerator(t))

	docs, err := svc.ListByCandidate(context.Background(), 5)
	assert.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, "s3://hr-documents/cv.pdf", docs[0].FileURL)
}
