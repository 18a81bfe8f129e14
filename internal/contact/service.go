package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adekomen/portfolio/internal/reqlog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var ErrRateLimited = errors.New("contact: too many messages, try again later")

// ServiceConfig bounds outgoing deliveries.
type ServiceConfig struct {
	Provider string
	Timeout  time.Duration
	// Rate is the sustained number of deliveries per minute, Burst the bucket size.
	Rate  float64
	Burst int
}

// Service wraps a Deliverer with a rate limit, a timeout, logging and tracing.
type Service struct {
	deliverer Deliverer
	limiter   *rate.Limiter
	cfg       ServiceConfig
}

func NewService(d Deliverer, cfg ServiceConfig) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}
	return &Service{
		deliverer: d,
		limiter:   rate.NewLimiter(rate.Limit(cfg.Rate/60), cfg.Burst),
		cfg:       cfg,
	}
}

// Deliver sends form through the wrapped deliverer. It does not validate;
// callers validate before handing the form over.
func (s *Service) Deliver(ctx context.Context, form Form) error {
	logger := reqlog.New(ctx)

	ctx, span := otel.Tracer("portfolio/contact").Start(ctx, "contact.deliver")
	defer span.End()
	span.SetAttributes(attribute.String("contact.provider", s.cfg.Provider))

	if !s.limiter.Allow() {
		span.SetStatus(codes.Error, "rate limited")
		logger.Warnf("contact_deliver", "rate limited provider=%s", s.cfg.Provider)
		return &DeliveryError{Status: 429, Text: "Trop de messages envoyés, réessayez plus tard.", Err: ErrRateLimited}
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	start := time.Now()
	err := s.deliverer.Deliver(ctx, form)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("contact_deliver", err)
		return fmt.Errorf("deliver contact message: %w", err)
	}
	logger.Infof("contact_deliver", "provider=%s latency=%s", s.cfg.Provider, time.Since(start))
	return nil
}
