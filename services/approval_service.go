package services

import (
	"context"
	"errors"
	"fiber-admin/config"
	"fiber-admin/metrics"
	"fiber-admin/models"
	"fiber-admin/repositories"
	"fiber-admin/types"
	"fiber-admin/utils/mailer"
	"fiber-admin/utils/xerrors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"go.uber.org/zap"
)

// DecideRequest checks whether decidingUserID may move req to decision and
// returns the updated copy. Only Status changes; req itself is left untouched.
//
// Checks run in a fixed order: decision value, approver identity, then
// current status. An approver-mismatch is reported even for a request that
// is already terminal.
func DecideRequest(req models.ApprovalRequest, decidingUserID uint, decision models.ApprovalStatus) (models.ApprovalRequest, error) {
	if !decision.IsTerminal() {
		return models.ApprovalRequest{}, xerrors.ErrInvalidDecision
	}
	if decidingUserID != req.ApproverID {
		return models.ApprovalRequest{}, xerrors.ErrUnauthorized
	}
	if req.Status != models.StatusPending {
		return models.ApprovalRequest{}, xerrors.ErrAlreadyDecided
	}
	req.Status = decision
	return req, nil
}

type ApprovalScope string

const (
	ScopeMine     ApprovalScope = "mine"
	ScopeAssigned ApprovalScope = "assigned"
	ScopeAll      ApprovalScope = "all"
)

type SubmitApprovalInput struct {
	Details    string `json:"details" validate:"required,max=2000"`
	ApproverID uint   `json:"approver_id"`
}

type ApprovalService struct {
	repo            repositories.ApprovalRepository
	users           *repositories.UserRepository
	notifier        Notifier
	mail            mailer.Mailer
	log             *zap.Logger
	validate        *validator.Validate
	defaultApprover uint
	now             func() time.Time
}

func NewApprovalService(repo repositories.ApprovalRepository, users *repositories.UserRepository, notifier Notifier, mail mailer.Mailer, log *zap.Logger) *ApprovalService {
	return &ApprovalService{
		repo:            repo,
		users:           users,
		notifier:        notifier,
		mail:            mail,
		log:             log,
		validate:        validator.New(),
		defaultApprover: config.DefaultApproverID,
		now:             time.Now,
	}
}

func (s *ApprovalService) Submit(ctx context.Context, submitterID uint, input SubmitApprovalInput) (*models.ApprovalRequest, error) {
	input.Details = strings.TrimSpace(input.Details)
	if err := s.validate.Struct(input); err != nil {
		return nil, xerrors.Validation(err.Error())
	}

	submitter, err := s.users.GetByID(ctx, submitterID)
	if err != nil {
		return nil, err
	}

	approverID := input.ApproverID
	if approverID == 0 {
		approverID = s.defaultApprover
	}
	if approverID == submitterID {
		return nil, xerrors.Validation("approver must be a different user")
	}
	approver, err := s.users.GetByID(ctx, approverID)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.Validation(fmt.Sprintf("approver %d does not exist", approverID))
		}
		return nil, err
	}
	if !approver.IsManager() || !approver.IsActive {
		return nil, xerrors.Validation(fmt.Sprintf("user %d cannot approve requests", approverID))
	}

	req := models.ApprovalRequest{
		SubmittedBy:   submitter.DisplayName(),
		SubmittedByID: submitter.ID,
		ApproverID:    approver.ID,
		Details:       input.Details,
		Status:        models.StatusPending,
	}
	if err := s.repo.Create(ctx, &req); err != nil {
		return nil, err
	}

	metrics.RecordSubmission()
	s.log.Info("approval request submitted",
		zap.String("request_id", req.ID.String()),
		zap.Uint("submitted_by", req.SubmittedByID),
		zap.Uint("approver", req.ApproverID),
	)

	text := fmt.Sprintf("New request from %s needs your review", submitter.DisplayName())
	if err := s.notifier.Notify(ctx, approver.ID, models.NotifyTask, text, requestLink(req.ID)); err != nil {
		s.log.Warn("notify approver failed", zap.Error(err))
	}
	return &req, nil
}

func (s *ApprovalService) List(ctx context.Context, userID uint, scope ApprovalScope, status models.ApprovalStatus) ([]models.ApprovalRequest, error) {
	filter := repositories.ApprovalFilter{Status: status}
	switch scope {
	case ScopeMine, "":
		filter.SubmittedByID = userID
	case ScopeAssigned:
		filter.ApproverID = userID
	case ScopeAll:
		filter.InvolvingUserID = userID
	default:
		return nil, xerrors.Validation(fmt.Sprintf("unknown scope %q", scope))
	}
	if status != "" && status != models.StatusPending && !status.IsTerminal() {
		return nil, xerrors.Validation(fmt.Sprintf("unknown status %q", status))
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.ApprovalRequest{}
	}
	return items, nil
}

// Get hanya untuk submitter atau approver request tersebut.
func (s *ApprovalService) Get(ctx context.Context, userID uint, id types.SnowflakeID) (*models.ApprovalRequest, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.SubmittedByID != userID && req.ApproverID != userID {
		return nil, xerrors.ErrUnauthorized
	}
	return req, nil
}

func (s *ApprovalService) ApplyDecision(ctx context.Context, id types.SnowflakeID, decidingUserID uint, decision models.ApprovalStatus) (*models.ApprovalRequest, error) {
	if !decision.IsTerminal() {
		return nil, xerrors.ErrInvalidDecision
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	decided, err := DecideRequest(*current, decidingUserID, decision)
	if err != nil {
		s.log.Info("approval decision rejected",
			zap.String("request_id", id.String()),
			zap.Uint("user_id", decidingUserID),
			zap.Error(err),
		)
		return nil, err
	}

	// conditional update: kalau request sudah diputuskan oleh proses lain,
	// repository mengembalikan ErrAlreadyDecided
	now := s.now()
	if err := s.repo.UpdateStatus(ctx, id, decided.Status, now); err != nil {
		return nil, err
	}
	decided.DecidedAt = &now

	metrics.RecordDecision(string(decided.Status))
	s.log.Info("approval request decided",
		zap.String("request_id", id.String()),
		zap.String("status", string(decided.Status)),
		zap.Uint("approver", decidingUserID),
	)

	s.notifySubmitter(ctx, decided)
	return &decided, nil
}

func (s *ApprovalService) notifySubmitter(ctx context.Context, req models.ApprovalRequest) {
	typ := models.NotifyApprove
	if req.Status == models.StatusRejected {
		typ = models.NotifyReject
	}
	text := fmt.Sprintf("Your request #%s has been %s", req.ID.String(), strings.ToLower(string(req.Status)))
	if err := s.notifier.Notify(ctx, req.SubmittedByID, typ, text, requestLink(req.ID)); err != nil {
		s.log.Warn("notify submitter failed", zap.Error(err))
	}

	submitter, err := s.users.GetByID(ctx, req.SubmittedByID)
	if err != nil || submitter.Email == "" {
		return
	}
	body := fmt.Sprintf("<p>Hello %s,</p><p>%s.</p><p>%s</p>", submitter.FirstName, text, req.Details)
	if err := s.mail.Send([]string{submitter.Email}, "Request "+string(req.Status), body); err != nil {
		s.log.Warn("send decision mail failed", zap.String("to", submitter.Email), zap.Error(err))
	}
}

func requestLink(id types.SnowflakeID) string {
	return "/requests/" + id.String()
}
