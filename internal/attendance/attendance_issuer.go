package attendance

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultRotationWindow is how long an issued token stays acceptable. The
// issuer rotates its displayed token on this interval, and the verifier
// rejects anything older.
const DefaultRotationWindow = 120 * time.Second

// Issuer runs on the employee's device and regenerates the scannable token
// every rotation interval. The verifier, not the issuer, decides whether an
// already-displayed token is still acceptable.
type Issuer struct {
	codec      *TokenCodec
	employeeID int64
	interval   time.Duration
	logger     *zap.Logger
	now        func() time.Time

	mu      sync.RWMutex
	current string
}

func NewIssuer(codec *TokenCodec, employeeID int64, interval time.Duration, logger ...*zap.Logger) *Issuer {
	if interval <= 0 {
		interval = DefaultRotationWindow
	}
	l := zap.L().Named("attendance.issuer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.issuer")
	}
	return &Issuer{
		codec:      codec,
		employeeID: employeeID,
		interval:   interval,
		logger:     l,
		now:        time.Now,
	}
}

// Current returns the most recently issued token, issuing one on first use.
func (i *Issuer) Current() (string, error) {
	i.mu.RLock()
	token := i.current
	i.mu.RUnlock()
	if token != "" {
		return token, nil
	}
	return i.rotate()
}

// Run rotates the token on every tick until the context is cancelled.
func (i *Issuer) Run(ctx context.Context) {
	if _, err := i.rotate(); err != nil {
		i.logger.Error("initial token issue failed", zap.Error(err))
	}

	ticker := time.NewTicker(i.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			i.logger.Info("issuer stopped")
			return
		case <-ticker.C:
			if _, err := i.rotate(); err != nil {
				i.logger.Error("token rotation failed", zap.Error(err))
			}
		}
	}
}

func (i *Issuer) rotate() (string, error) {
	token, err := i.codec.Encode(TokenPayload{
		EmployeeID: i.employeeID,
		IssuedAt:   i.now().UnixMilli(),
	})
	if err != nil {
		return "", err
	}

	i.mu.Lock()
	i.current = token
	i.mu.Unlock()

	i.logger.Debug("token rotated", zap.Int64("employee_id", i.employeeID))
	return token, nil
}
