package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kasicash/kasi/internal/application/dto"
	"github.com/kasicash/kasi/internal/domain/model"
	"github.com/kasicash/kasi/internal/domain/port"
)

// ReviewApplicationUseCase applies an admin decision to an application under
// review and notifies the applicant by email.
type ReviewApplicationUseCase struct {
	appRepo   port.ApplicationRepository
	publisher port.EventPublisher
	mailer    port.Mailer
	logger    *slog.Logger
}

// NewReviewApplicationUseCase wires dependencies.
func NewReviewApplicationUseCase(
	appRepo port.ApplicationRepository,
	publisher port.EventPublisher,
	mailer port.Mailer,
	logger *slog.Logger,
) *ReviewApplicationUseCase {
	return &ReviewApplicationUseCase{
		appRepo:   appRepo,
		publisher: publisher,
		mailer:    mailer,
		logger:    logger,
	}
}

// Approve marks the application approved.
func (uc *ReviewApplicationUseCase) Approve(
	ctx context.Context,
	req dto.ReviewApplicationRequest,
) (dto.ApplicationResponse, error) {
	return uc.decide(ctx, req, model.LoanApplication.Approve, "Your loan application has been approved")
}

// Reject marks the application rejected.
func (uc *ReviewApplicationUseCase) Reject(
	ctx context.Context,
	req dto.ReviewApplicationRequest,
) (dto.ApplicationResponse, error) {
	return uc.decide(ctx, req, model.LoanApplication.Reject, "Your loan application was not approved")
}

func (uc *ReviewApplicationUseCase) decide(
	ctx context.Context,
	req dto.ReviewApplicationRequest,
	transition func(model.LoanApplication, string, time.Time) (model.LoanApplication, error),
	subject string,
) (dto.ApplicationResponse, error) {
	now := time.Now().UTC()

	app, err := uc.appRepo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	app, err = transition(app, req.Reason, now)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	// Decision email is best-effort: a mail failure never rolls back the decision.
	msg := port.MailMessage{
		To:       app.ApplicantEmail(),
		Subject:  subject,
		TextBody: fmt.Sprintf("Dear %s,\n\n%s.\nReason: %s\n\nKasi Lending", app.ApplicantName(), subject, req.Reason),
	}
	if err := uc.mailer.Send(ctx, msg); err != nil {
		uc.logger.Warn("decision email failed", "application_id", app.ID(), "error", err)
	}

	uc.logger.Info("application reviewed",
		"application_id", app.ID(),
		"status", app.Status().String(),
	)
	return dto.FromApplication(app), nil
}
