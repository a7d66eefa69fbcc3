package app

import (
	"context"
	"os"
	"strconv"
	"time"

	"hrm-core/internal/attendance"
	"hrm-core/internal/candidate"
	"hrm-core/internal/document"
	"hrm-core/internal/employee"
	"hrm-core/internal/identity"
	"hrm-core/internal/lookup"
	"hrm-core/internal/messaging/kafka"
	"hrm-core/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	lookupRepo := lookup.NewRepository(gormDB)
	candidateRepo := candidate.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Core ---
	resolver := lookup.NewResolver(lookupRepo, rdb)
	codeGen := identity.NewGenerator(resolver)
	tokenCodec := attendance.NewTokenCodec([]byte(os.Getenv("ATTENDANCE_TOKEN_SECRET")))

	// --- Services ---
	candidateService := candidate.NewService(gormDB, candidateRepo, employeeRepo, documentRepo, codeGen, outboxRepo)
	documentService := document.NewService(gormDB, documentRepo, candidateDirectory{repo: candidateRepo}, codeGen)
	attendanceService := attendance.NewService(gormDB, attendanceRepo, employeeRepo, tokenCodec, outboxRepo, attendance.Config{
		RotationWindow: rotationWindowFromEnv(),
	})

	// --- Handlers ---
	candidateHandler := candidate.NewHandlerWithRedis(candidateService, rdb)
	documentHandler := document.NewHandler(documentService)
	attendanceHandler := attendance.NewHandler(attendanceService)

	// --- Routes ---
	api := router.Group("/api/v1")
	api.Use(middleware.RequestID())
	{
		candidate.RegisterRoutes(api, candidateHandler, rdb)
		document.RegisterRoutes(api, documentHandler)
		attendance.RegisterRoutes(api, attendanceHandler)
	}

	return nil
}

// candidateDirectory adapts the candidate repository to the narrow owner
// lookup the document service needs for code generation.
type candidateDirectory struct {
	repo candidate.Repository
}

func (d candidateDirectory) LookupOwner(ctx context.Context, candidateID int64) (int64, int64, error) {
	cand, err := d.repo.FindByID(ctx, candidateID)
	if err != nil {
		return 0, 0, err
	}
	return cand.JobTitleID, cand.DepartmentID, nil
}

func rotationWindowFromEnv() time.Duration {
	raw := os.Getenv("ATTENDANCE_ROTATION_SECONDS")
	if raw == "" {
		return attendance.DefaultRotationWindow
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return attendance.DefaultRotationWindow
	}
	return time.Duration(seconds) * time.Second
}
