package models

import (
	"github.com/chatforge/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// CompanyModel is the persistence model for the Company domain entity.
// ApprovalStatus has no NOT NULL default: legacy rows imported without a
// status come back as the empty string, which the domain treats as the
// unknown state.
type CompanyModel struct {
	BaseModel
	CompanyName        string     `gorm:"type:varchar(200);not null"`
	Email              string     `gorm:"type:varchar(200);not null;index"`
	Phone              string     `gorm:"type:varchar(50)"`
	Website            string     `gorm:"type:varchar(500)"`
	Industry           string     `gorm:"type:varchar(100)"`
	EmployeeCount      int        `gorm:"not null;default:0"`
	Domain             string     `gorm:"type:varchar(200);index"`
	Description        string     `gorm:"type:text"`
	UserID             *uuid.UUID `gorm:"type:uuid;index"`
	ApprovalStatus     string     `gorm:"type:varchar(20);index"`
	Status             string     `gorm:"type:varchar(20);not null;default:'active'"`
	SubscriptionPlan   string     `gorm:"type:varchar(20);not null;default:'free'"`
	SubscriptionStatus string     `gorm:"type:varchar(20);not null;default:'inactive'"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company entity.
func (m *CompanyModel) ToDomain() *identity.Company {
	return &identity.Company{
		BaseEntity:     m.BaseModel.ToDomain(),
		CompanyName:    m.CompanyName,
		Email:          m.Email,
		Phone:          m.Phone,
		Website:        m.Website,
		Industry:       m.Industry,
		EmployeeCount:  m.EmployeeCount,
		Domain:         m.Domain,
		Description:    m.Description,
		UserID:         m.UserID,
		ApprovalStatus: identity.ApprovalStatus(m.ApprovalStatus),
		Status:         identity.CompanyStatus(m.Status),
		Subscription: identity.Subscription{
			Plan:   identity.SubscriptionPlan(m.SubscriptionPlan),
			Status: m.SubscriptionStatus,
		},
	}
}

// FromDomain populates the persistence model from a domain Company entity.
func (m *CompanyModel) FromDomain(c *identity.Company) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.CompanyName = c.CompanyName
	m.Email = c.Email
	m.Phone = c.Phone
	m.Website = c.Website
	m.Industry = c.Industry
	m.EmployeeCount = c.EmployeeCount
	m.Domain = c.Domain
	m.Description = c.Description
	m.UserID = c.UserID
	m.ApprovalStatus = string(c.ApprovalStatus)
	m.Status = string(c.Status)
	m.SubscriptionPlan = string(c.Subscription.Plan)
	m.SubscriptionStatus = c.Subscription.Status
}

// CompanyModelFromDomain creates a new persistence model from a domain Company entity.
func CompanyModelFromDomain(c *identity.Company) *CompanyModel {
	m := &CompanyModel{}
	m.FromDomain(c)
	return m
}

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	Email          string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash   string     `gorm:"type:varchar(100)"`
	CompanyName    string     `gorm:"type:varchar(200)"`
	CompanyID      *uuid.UUID `gorm:"type:uuid;index"`
	ApprovalStatus string     `gorm:"type:varchar(20);index"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:     m.BaseModel.ToDomain(),
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		CompanyName:    m.CompanyName,
		CompanyID:      m.CompanyID,
		ApprovalStatus: identity.ApprovalStatus(m.ApprovalStatus),
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.CompanyName = u.CompanyName
	m.CompanyID = u.CompanyID
	m.ApprovalStatus = string(u.ApprovalStatus)
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
