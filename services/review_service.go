package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/blogem/tenant-admin/models"
	"github.com/blogem/tenant-admin/repositories"
)

// ReviewOutcome reports the result of an approval. TargetMissing is set when
// the decision succeeded but the target product had already been deleted, so
// the store mutation was a no-op. Callers must surface this distinctly from
// full success.
type ReviewOutcome struct {
	Request       *models.ChangeRequest
	TargetMissing bool
}

// ReviewService interface defines the change request review workflow
type ReviewService interface {
	ListPending(ctx context.Context, p models.Principal) ([]models.ChangeRequest, error)
	CountPending(ctx context.Context, p models.Principal) (int, error)
	GetRequest(ctx context.Context, p models.Principal, id string) (*models.ChangeRequest, error)
	Approve(ctx context.Context, p models.Principal, id, notes string) (*ReviewOutcome, error)
	Reject(ctx context.Context, p models.Principal, id, notes string) (*models.ChangeRequest, error)
}

// reviewService implements ReviewService interface
type reviewService struct {
	requestRepo repositories.RequestRepository
	productRepo repositories.ProductRepository
}

// NewReviewService creates a new review service
func NewReviewService(requestRepo repositories.RequestRepository, productRepo repositories.ProductRepository) ReviewService {
	return &reviewService{
		requestRepo: requestRepo,
		productRepo: productRepo,
	}
}

// ListPending returns the pending requests the principal may review
func (s *reviewService) ListPending(ctx context.Context, p models.Principal) ([]models.ChangeRequest, error) {
	if !p.CanReview() {
		return nil, fmt.Errorf("listing pending requests: %w", ErrPermissionDenied)
	}
	return s.requestRepo.ListPending(ctx, VisibleTenant(p))
}

// CountPending returns the number of pending requests the principal may review
func (s *reviewService) CountPending(ctx context.Context, p models.Principal) (int, error) {
	if !p.CanReview() {
		return 0, nil
	}
	return s.requestRepo.CountPending(ctx, VisibleTenant(p))
}

// GetRequest loads a single request, enforcing reviewer scope
func (s *reviewService) GetRequest(ctx context.Context, p models.Principal, id string) (*models.ChangeRequest, error) {
	if !p.CanReview() {
		return nil, fmt.Errorf("getting request: %w", ErrPermissionDenied)
	}

	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanReviewRequest(p, s.targetTenant(ctx, req)) {
		return nil, fmt.Errorf("request %s is outside your tenant: %w", id, ErrPermissionDenied)
	}

	return req, nil
}

// Approve decides a pending request and materializes its mutation. The
// ledger update runs first and acts as the claim: when two reviewers race,
// only the one whose conditional update wins goes on to touch the product,
// so an approved mutation can never be applied twice.
func (s *reviewService) Approve(ctx context.Context, p models.Principal, id, notes string) (*ReviewOutcome, error) {
	req, err := s.loadPending(ctx, p, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.requestRepo.Decide(ctx, id, models.StatusApproved, notes, p.Email, now); err != nil {
		return nil, err
	}

	req.Status = models.StatusApproved
	req.ReviewNotes = notes
	req.DecidedBy = p.Email
	req.DecidedAt = &now

	outcome := &ReviewOutcome{Request: req}

	switch req.Type {
	case models.RequestUpdate:
		proposed := *req.NewData
		proposed.ID = req.ProductID
		err = s.productRepo.Update(ctx, &proposed)
	case models.RequestDelete:
		err = s.productRepo.Delete(ctx, req.ProductID)
	default:
		return nil, fmt.Errorf("unknown request type %q", req.Type)
	}

	if errors.Is(err, repositories.ErrNotFound) {
		// The target vanished between submission and approval. The decision
		// stands; report the divergence instead of failing.
		logrus.WithFields(logrus.Fields{
			"request_id": id,
			"product_id": req.ProductID,
		}).Warn("approved request targets a deleted product")
		outcome.TargetMissing = true
		return outcome, nil
	}
	if err != nil {
		return nil, fmt.Errorf("request %s approved but mutation failed: %w", id, err)
	}

	return outcome, nil
}

// Reject decides a pending request without touching the store. A reason is
// mandatory.
func (s *reviewService) Reject(ctx context.Context, p models.Principal, id, notes string) (*models.ChangeRequest, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, ErrNotesRequired
	}

	req, err := s.loadPending(ctx, p, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.requestRepo.Decide(ctx, id, models.StatusRejected, notes, p.Email, now); err != nil {
		return nil, err
	}

	req.Status = models.StatusRejected
	req.ReviewNotes = notes
	req.DecidedBy = p.Email
	req.DecidedAt = &now

	return req, nil
}

// loadPending loads a request and runs the shared review preconditions:
// reviewer role, pending status, tenant scope.
func (s *reviewService) loadPending(ctx context.Context, p models.Principal, id string) (*models.ChangeRequest, error) {
	if !p.CanReview() {
		return nil, fmt.Errorf("reviewing request: %w", ErrPermissionDenied)
	}

	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !req.IsPending() {
		return nil, fmt.Errorf("change request %s is %s: %w", id, req.Status, repositories.ErrAlreadyDecided)
	}

	if !CanReviewRequest(p, s.targetTenant(ctx, req)) {
		return nil, fmt.Errorf("request %s is outside your tenant: %w", id, ErrPermissionDenied)
	}

	return req, nil
}

// targetTenant resolves the tenant a request belongs to: the live product's
// tenant when it still exists, the snapshot's tenant otherwise.
func (s *reviewService) targetTenant(ctx context.Context, req *models.ChangeRequest) string {
	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return req.TargetTenant()
	}
	return product.Tenant
}
