package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"opticare-backend/internal/config"
	"opticare-backend/internal/domain/repository"
)

// NumberKind selects which identifier sequence to draw from
type NumberKind int

const (
	NumberKindOrder NumberKind = iota
	NumberKindPrescription
)

// NumberGenerator produces human-readable, date-seeded order and
// prescription numbers, resolving collisions by retrying against the
// store. Its existence checks are advisory; the unique index is the real
// enforcement.
type NumberGenerator struct {
	orderRepo        repository.OrderRepository
	prescriptionRepo repository.PrescriptionRepository
	cfg              config.NumberingConfig
	now              func() time.Time
}

// NewNumberGenerator creates a new number generator
func NewNumberGenerator(
	orderRepo repository.OrderRepository,
	prescriptionRepo repository.PrescriptionRepository,
	cfg config.NumberingConfig,
) *NumberGenerator {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return &NumberGenerator{
		orderRepo:        orderRepo,
		prescriptionRepo: prescriptionRepo,
		cfg:              cfg,
		now:              time.Now,
	}
}

// Generate returns a fresh identifier of the given kind. Each attempt is
// one read query; collisions retry up to the configured bound, after which
// a timestamp-derived fallback is issued. The fallback is extremely
// unlikely to collide but is not guaranteed unique, so it is logged as a
// degraded case rather than silently accepted.
func (g *NumberGenerator) Generate(ctx context.Context, kind NumberKind) (string, error) {
	prefix := g.cfg.OrderPrefix
	if kind == NumberKindPrescription {
		prefix = g.cfg.PrescriptionPrefix
	}

	for attempt := 0; attempt < g.cfg.MaxRetries; attempt++ {
		candidate := g.candidate(prefix)

		exists, err := g.exists(ctx, kind, candidate)
		if err != nil {
			// An identifier must never be assumed unique when the check
			// could not run.
			return "", fmt.Errorf("number existence check failed: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}

	fallback := fmt.Sprintf("%s%s-%d", prefix, g.now().Format("0601-02"), g.now().UnixNano())
	log.Printf("WARNING: number generation degraded, issuing timestamp fallback %s after %d collisions", fallback, g.cfg.MaxRetries)
	return fallback, nil
}

// candidate builds prefix + YYMM-DD + random suffix
func (g *NumberGenerator) candidate(prefix string) string {
	suffix := strings.ToUpper(uuid.New().String()[:4])
	return fmt.Sprintf("%s%s-%s", prefix, g.now().Format("0601-02"), suffix)
}

func (g *NumberGenerator) exists(ctx context.Context, kind NumberKind, candidate string) (bool, error) {
	switch kind {
	case NumberKindPrescription:
		p, err := g.prescriptionRepo.GetByPrescriptionNo(ctx, candidate)
		return p != nil, err
	default:
		o, err := g.orderRepo.GetByOrderNo(ctx, candidate)
		return o != nil, err
	}
}
