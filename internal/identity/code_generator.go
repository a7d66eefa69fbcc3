package identity

import (
	"context"
	"fmt"

	"hrm-core/internal/lookup"

	"go.uber.org/zap"
)

// Placeholder codes used when a lookup cannot be resolved. Uniqueness of the
// generated code is carried by the numeric record id, so substituting a
// placeholder never risks a collision.
const (
	placeholderJobCode        = "XX"
	placeholderDepartmentCode = "YY"
)

// Generator synthesizes human-readable identity codes of the form
// prefix + jobTitleCode + departmentCode + recordID.
type Generator struct {
	resolver lookup.Resolver
	logger   *zap.Logger
}

func NewGenerator(resolver lookup.Resolver, logger ...*zap.Logger) *Generator {
	l := zap.L().Named("identity.generator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("identity.generator")
	}
	return &Generator{resolver: resolver, logger: l}
}

// Generate never fails: a failed lookup degrades to a placeholder so code
// generation can never block record creation.
func (g *Generator) Generate(ctx context.Context, prefix string, jobTitleID, departmentID, recordID int64) string {
	jobCode, err := g.resolver.ResolveJobTitle(ctx, jobTitleID)
	if err != nil {
		g.logger.Warn("resolve job title failed, using placeholder",
			zap.Int64("job_title_id", jobTitleID),
			zap.Error(err),
		)
		jobCode = placeholderJobCode
	}

	deptCode, err := g.resolver.ResolveDepartment(ctx, departmentID)
	if err != nil {
		g.logger.Warn("resolve department failed, using placeholder",
			zap.Int64("department_id", departmentID),
			zap.Error(err),
		)
		deptCode = placeholderDepartmentCode
	}

	return fmt.Sprintf("%s%s%s%d", prefix, jobCode, deptCode, recordID)
}
