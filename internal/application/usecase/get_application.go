package usecase

import (
	"context"
	"fmt"

	"github.com/kasicash/kasi/internal/application/dto"
	"github.com/kasicash/kasi/internal/domain/port"
)

// GetApplicationUseCase retrieves one application with its documents.
type GetApplicationUseCase struct {
	appRepo port.ApplicationRepository
	docRepo port.DocumentRepository
}

// NewGetApplicationUseCase wires dependencies.
func NewGetApplicationUseCase(appRepo port.ApplicationRepository, docRepo port.DocumentRepository) *GetApplicationUseCase {
	return &GetApplicationUseCase{appRepo: appRepo, docRepo: docRepo}
}

// Execute loads the application and attaches document metadata.
func (uc *GetApplicationUseCase) Execute(
	ctx context.Context,
	applicationID string,
) (dto.ApplicationResponse, []dto.DocumentResponse, error) {
	app, err := uc.appRepo.FindByID(ctx, applicationID)
	if err != nil {
		return dto.ApplicationResponse{}, nil, err
	}

	docs, err := uc.docRepo.FindByApplicationID(ctx, applicationID)
	if err != nil {
		return dto.ApplicationResponse{}, nil, fmt.Errorf("find documents: %w", err)
	}

	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, dto.FromDocument(d))
	}
	return dto.FromApplication(app), out, nil
}

// ListApplicationsUseCase lists applications for the admin portal.
type ListApplicationsUseCase struct {
	appRepo port.ApplicationRepository
}

// NewListApplicationsUseCase wires dependencies.
func NewListApplicationsUseCase(appRepo port.ApplicationRepository) *ListApplicationsUseCase {
	return &ListApplicationsUseCase{appRepo: appRepo}
}

// Execute lists applications, optionally filtered by status.
func (uc *ListApplicationsUseCase) Execute(ctx context.Context, status string) ([]dto.ApplicationResponse, error) {
	apps, err := uc.appRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	out := make([]dto.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, dto.FromApplication(app))
	}
	return out, nil
}
