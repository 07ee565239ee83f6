package intake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chatforge/backend/internal/domain/intake"
	"github.com/chatforge/backend/internal/domain/shared"
	"github.com/chatforge/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ArchiveStore persists generated documents outside the primary store
type ArchiveStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}

// SubmitBuildRequestInput carries a website-build request from the
// public intake form.
type SubmitBuildRequestInput struct {
	ProjectName      string
	Description      string
	BusinessType     string
	SelectedFeatures []string
	Timeline         string
	Budget           string
	CompanyID        *uuid.UUID
}

// BuildRequestService handles website-build request intake and the
// operator workflow that moves requests toward delivery.
type BuildRequestService struct {
	requestRepo intake.BuildRequestRepository
	archive     ArchiveStore
	logger      *zap.Logger
}

// NewBuildRequestService creates a new build request service
func NewBuildRequestService(
	requestRepo intake.BuildRequestRepository,
	archive ArchiveStore,
	logger *zap.Logger,
) *BuildRequestService {
	return &BuildRequestService{
		requestRepo: requestRepo,
		archive:     archive,
		logger:      logger,
	}
}

// Submit validates the request, prices it against the feature catalog
// and stores it in submitted state.
func (s *BuildRequestService) Submit(ctx context.Context, input SubmitBuildRequestInput) (*BuildRequestDTO, error) {
	request, err := intake.NewBuildRequest(
		input.ProjectName,
		input.Description,
		input.BusinessType,
		input.SelectedFeatures,
		input.Timeline,
		input.Budget,
	)
	if err != nil {
		return nil, err
	}
	if input.CompanyID != nil {
		request.AttachCompany(*input.CompanyID)
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		s.logger.Error("Failed to store build request", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}

	s.logger.Info("Build request submitted",
		zap.String("request_id", request.ID.String()),
		zap.String("project", request.ProjectName),
		zap.String("estimated_cost", request.EstimatedCost.String()))

	dto := toBuildRequestDTO(request)
	return &dto, nil
}

// Get returns one build request by id
func (s *BuildRequestService) Get(ctx context.Context, id uuid.UUID) (*BuildRequestDTO, error) {
	request, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toBuildRequestDTO(request)
	return &dto, nil
}

// List returns build requests, optionally filtered to one status
func (s *BuildRequestService) List(ctx context.Context, status intake.BuildRequestStatus, filter shared.Filter) ([]BuildRequestDTO, error) {
	var (
		requests []intake.BuildRequest
		err      error
	)
	if status == "" {
		requests, err = s.requestRepo.FindAll(ctx, filter)
	} else {
		requests, err = s.requestRepo.FindByStatus(ctx, status, filter)
	}
	if err != nil {
		s.logger.Error("Failed to list build requests", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}
	return toBuildRequestDTOs(requests), nil
}

// Transition moves a request along its status workflow
func (s *BuildRequestService) Transition(ctx context.Context, id uuid.UUID, target intake.BuildRequestStatus) (*BuildRequestDTO, error) {
	request, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := request.TransitionTo(target); err != nil {
		return nil, err
	}
	if err := s.requestRepo.Save(ctx, request); err != nil {
		s.logger.Error("Failed to update build request", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}

	s.logger.Info("Build request transitioned",
		zap.String("request_id", request.ID.String()),
		zap.String("status", string(request.Status)))

	dto := toBuildRequestDTO(request)
	return &dto, nil
}

// ExportProjectDetail writes a request's full detail as a JSON document
// to the archive and returns it for download.
func (s *BuildRequestService) ExportProjectDetail(ctx context.Context, id uuid.UUID) (string, []byte, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "build_request", "export_project_detail")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrBuildRequestID, id.String())

	request, err := s.findRequest(ctx, id)
	if err != nil {
		return "", nil, err
	}

	dto := toBuildRequestDTO(request)
	data, err := json.MarshalIndent(dto, "", "  ")
	if err != nil {
		return "", nil, shared.NewDomainError("EXPORT_FAILED", "Failed to serialize build request")
	}

	filename := fmt.Sprintf("project-%s.json", request.ID)
	key := "exports/projects/" + filename
	if err := s.archive.Put(ctx, key, "application/json", data); err != nil {
		s.logger.Warn("Failed to archive project detail", zap.Error(err), zap.String("key", key))
	}

	return filename, data, nil
}

// Features returns the priceable feature catalog for the intake form
func (s *BuildRequestService) Features() []FeatureDTO {
	features := make([]FeatureDTO, len(intake.FeatureCatalog))
	for i, f := range intake.FeatureCatalog {
		features[i] = FeatureDTO{ID: f.ID, Name: f.Name, Price: f.Price}
	}
	return features
}

func (s *BuildRequestService) findRequest(ctx context.Context, id uuid.UUID) (*intake.BuildRequest, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("REQUEST_NOT_FOUND", "Build request not found")
		}
		s.logger.Error("Failed to read build request", zap.Error(err), zap.String("request_id", id.String()))
		return nil, shared.ErrStoreUnavailable
	}
	return request, nil
}
