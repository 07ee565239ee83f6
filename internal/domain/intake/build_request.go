package intake

import (
	"context"
	"strings"

	"github.com/chatforge/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BuildRequestStatus tracks a website-build request through its workflow
type BuildRequestStatus string

const (
	BuildRequestStatusSubmitted BuildRequestStatus = "submitted"
	BuildRequestStatusInReview  BuildRequestStatus = "in_review"
	BuildRequestStatusBuilding  BuildRequestStatus = "building"
	BuildRequestStatusDelivered BuildRequestStatus = "delivered"
	BuildRequestStatusDeclined  BuildRequestStatus = "declined"
)

// buildRequestTransitions is the allowed status graph. Delivered and
// declined are terminal.
var buildRequestTransitions = map[BuildRequestStatus][]BuildRequestStatus{
	BuildRequestStatusSubmitted: {BuildRequestStatusInReview, BuildRequestStatusDeclined},
	BuildRequestStatusInReview:  {BuildRequestStatusBuilding, BuildRequestStatusDeclined},
	BuildRequestStatusBuilding:  {BuildRequestStatusDelivered, BuildRequestStatusDeclined},
}

// Feature is a priceable website feature selectable on a build request
type Feature struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// FeatureCatalog is the closed table of priceable features. Unknown
// feature ids on a request are rejected at creation rather than
// silently priced at zero.
var FeatureCatalog = []Feature{
	{ID: "chatbot", Name: "AI Chatbot Widget", Price: decimal.NewFromInt(499)},
	{ID: "booking", Name: "Appointment Booking", Price: decimal.NewFromInt(299)},
	{ID: "ecommerce", Name: "E-commerce Storefront", Price: decimal.NewFromInt(899)},
	{ID: "blog", Name: "Blog / News Section", Price: decimal.NewFromInt(149)},
	{ID: "seo", Name: "SEO Optimization", Price: decimal.NewFromInt(199)},
	{ID: "analytics", Name: "Analytics Dashboard", Price: decimal.NewFromInt(249)},
	{ID: "multilingual", Name: "Multi-language Support", Price: decimal.NewFromInt(349)},
	{ID: "crm", Name: "CRM Integration", Price: decimal.NewFromInt(449)},
}

// basePrice is charged on every build regardless of feature selection.
var basePrice = decimal.NewFromInt(750)

func featureByID(id string) (Feature, bool) {
	for _, f := range FeatureCatalog {
		if f.ID == id {
			return f, true
		}
	}
	return Feature{}, false
}

// BuildRequest is a website-build request captured from the intake form
type BuildRequest struct {
	shared.BaseEntity
	ProjectName      string
	Description      string
	BusinessType     string
	SelectedFeatures []string
	Timeline         string
	Budget           string
	Status           BuildRequestStatus
	EstimatedCost    decimal.Decimal
	CompanyID        *uuid.UUID
}

// NewBuildRequest creates a submitted build request with its estimated
// cost computed from the feature catalog.
func NewBuildRequest(projectName, description, businessType string, features []string, timeline, budget string) (*BuildRequest, error) {
	if strings.TrimSpace(projectName) == "" {
		return nil, shared.NewDomainError("INVALID_PROJECT_NAME", "Project name cannot be empty")
	}
	if len(projectName) > 200 {
		return nil, shared.NewDomainError("INVALID_PROJECT_NAME", "Project name cannot exceed 200 characters")
	}

	cost := basePrice
	seen := make(map[string]bool, len(features))
	for _, id := range features {
		if seen[id] {
			return nil, shared.NewDomainError("DUPLICATE_FEATURE", "Feature selected more than once: "+id)
		}
		seen[id] = true
		feature, ok := featureByID(id)
		if !ok {
			return nil, shared.NewDomainError("UNKNOWN_FEATURE", "Unknown feature id: "+id)
		}
		cost = cost.Add(feature.Price)
	}

	return &BuildRequest{
		BaseEntity:       shared.NewBaseEntity(),
		ProjectName:      strings.TrimSpace(projectName),
		Description:      description,
		BusinessType:     businessType,
		SelectedFeatures: append([]string(nil), features...),
		Timeline:         timeline,
		Budget:           budget,
		Status:           BuildRequestStatusSubmitted,
		EstimatedCost:    cost,
	}, nil
}

// TransitionTo moves the request along the status workflow
func (r *BuildRequest) TransitionTo(target BuildRequestStatus) error {
	if r.Status == target {
		return nil
	}
	for _, allowed := range buildRequestTransitions[r.Status] {
		if allowed == target {
			r.Status = target
			r.Touch()
			return nil
		}
	}
	return shared.NewDomainError("INVALID_TRANSITION",
		"Cannot move build request from "+string(r.Status)+" to "+string(target))
}

// AttachCompany associates the request with a registered company
func (r *BuildRequest) AttachCompany(companyID uuid.UUID) {
	id := companyID
	r.CompanyID = &id
	r.Touch()
}

// BuildRequestRepository defines persistence operations for build requests
type BuildRequestRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BuildRequest, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]BuildRequest, error)
	FindByStatus(ctx context.Context, status BuildRequestStatus, filter shared.Filter) ([]BuildRequest, error)
	Save(ctx context.Context, request *BuildRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
