package lookup

import (
	"context"
	"errors"
	"fmt"
	"time"

	lookuperrors "hrm-core/internal/lookup/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	departmentCodeKeyPrefix = "lookup:department:"
	jobTitleCodeKeyPrefix   = "lookup:jobtitle:"
	codeCacheTTL            = 1 * time.Hour
)

// Resolver maps department / job title ids to their short codes. It is the
// only way the rest of the system reads lookup data.
//
//go:generate mockgen -source=resolver.go -destination=mock/resolver_mock.go -package=mock
type Resolver interface {
	ResolveDepartment(ctx context.Context, id int64) (string, error)
	ResolveJobTitle(ctx context.Context, id int64) (string, error)
}

type resolver struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewResolver(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("lookup.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("lookup.resolver")
	}
	return &resolver{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (r *resolver) ResolveDepartment(ctx context.Context, id int64) (string, error) {
	return r.resolve(ctx,
		fmt.Sprintf("%s%d", departmentCodeKeyPrefix, id),
		lookuperrors.ErrDepartmentNotFound,
		func() (string, error) { return r.repo.FindDepartmentCode(ctx, id) },
	)
}

func (r *resolver) ResolveJobTitle(ctx context.Context, id int64) (string, error) {
	return r.resolve(ctx,
		fmt.Sprintf("%s%d", jobTitleCodeKeyPrefix, id),
		lookuperrors.ErrJobTitleNotFound,
		func() (string, error) { return r.repo.FindJobTitleCode(ctx, id) },
	)
}

func (r *resolver) resolve(
	ctx context.Context,
	cacheKey string,
	notFound error,
	load func() (string, error),
) (string, error) {
	// Cache read failures degrade to a DB read, never to an error.
	if r.rdb != nil {
		if cached, err := r.rdb.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			return cached, nil
		}
	}

	// Collapse concurrent misses for the same key into one DB round-trip.
	v, err, _ := r.sf.Do(cacheKey, func() (interface{}, error) {
		code, err := load()
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", notFound
			}
			return "", err
		}

		if r.rdb != nil {
			if err := r.rdb.Set(ctx, cacheKey, code, codeCacheTTL).Err(); err != nil {
				r.logger.Warn("cache lookup code failed",
					zap.String("key", cacheKey),
					zap.Error(err),
				)
			}
		}
		return code, nil
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}
