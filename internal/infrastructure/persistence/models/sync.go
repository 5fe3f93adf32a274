package models

import (
	"time"

	"github.com/arflow/backend/internal/domain/sync"
)

// SyncEntityModel is the GORM model for sync scheduling rows
type SyncEntityModel struct {
	AggregateModel
	Kind            string `gorm:"uniqueIndex;size:32;not null"`
	Enabled         bool   `gorm:"not null;default:true"`
	Status          string `gorm:"size:16;not null"`
	IntervalMinutes int    `gorm:"not null"`
	LastStartedAt   *time.Time
	LastSucceededAt *time.Time
	LastError       string `gorm:"size:512"`
}

// TableName returns the table name
func (SyncEntityModel) TableName() string {
	return "sync_entities"
}

// ToDomain converts the model to a domain sync entity
func (m *SyncEntityModel) ToDomain() *sync.SyncEntity {
	return &sync.SyncEntity{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Kind:              sync.EntityKind(m.Kind),
		Enabled:           m.Enabled,
		Status:            sync.SyncStatus(m.Status),
		IntervalMinutes:   m.IntervalMinutes,
		LastStartedAt:     m.LastStartedAt,
		LastSucceededAt:   m.LastSucceededAt,
		LastError:         m.LastError,
	}
}

// SyncEntityModelFromDomain builds the model from a domain sync entity
func SyncEntityModelFromDomain(e *sync.SyncEntity) *SyncEntityModel {
	m := &SyncEntityModel{
		Kind:            string(e.Kind),
		Enabled:         e.Enabled,
		Status:          string(e.Status),
		IntervalMinutes: e.IntervalMinutes,
		LastStartedAt:   e.LastStartedAt,
		LastSucceededAt: e.LastSucceededAt,
		LastError:       e.LastError,
	}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	return m
}

// SyncLogModel is the GORM model for dispatch logs
type SyncLogModel struct {
	BaseModel
	Kind           string    `gorm:"size:32;not null;index"`
	Outcome        string    `gorm:"size:16;not null;index"`
	Endpoint       string    `gorm:"size:255"`
	IdempotencyKey string    `gorm:"size:64;index"`
	Detail         string    `gorm:"size:512"`
	DispatchedAt   time.Time `gorm:"not null;index"`
	DurationMS     int64     `gorm:"not null;default:0"`
}

// TableName returns the table name
func (SyncLogModel) TableName() string {
	return "sync_logs"
}

// ToDomain converts the model to a domain sync log
func (m *SyncLogModel) ToDomain() *sync.SyncLog {
	return &sync.SyncLog{
		BaseEntity:     m.BaseModel.ToDomain(),
		Kind:           sync.EntityKind(m.Kind),
		Outcome:        sync.LogOutcome(m.Outcome),
		Endpoint:       m.Endpoint,
		IdempotencyKey: m.IdempotencyKey,
		Detail:         m.Detail,
		DispatchedAt:   m.DispatchedAt,
		DurationMS:     m.DurationMS,
	}
}

// SyncLogModelFromDomain builds the model from a domain sync log
func SyncLogModelFromDomain(l *sync.SyncLog) *SyncLogModel {
	m := &SyncLogModel{
		Kind:           string(l.Kind),
		Outcome:        string(l.Outcome),
		Endpoint:       l.Endpoint,
		IdempotencyKey: l.IdempotencyKey,
		Detail:         l.Detail,
		DispatchedAt:   l.DispatchedAt,
		DurationMS:     l.DurationMS,
	}
	m.FromDomainBaseEntity(l.BaseEntity)
	return m
}

// SyncJobModel is the GORM model for async sync jobs
type SyncJobModel struct {
	AggregateModel
	Kind        string `gorm:"size:32;not null;index"`
	Status      string `gorm:"size:16;not null;index"`
	Parameters  string `gorm:"type:text"`
	StartedAt   *time.Time
	CompletedAt *time.Time
	Error       string `gorm:"size:512"`
	RowsSynced  int64  `gorm:"not null;default:0"`
}

// TableName returns the table name
func (SyncJobModel) TableName() string {
	return "sync_jobs"
}

// ToDomain converts the model to a domain sync job
func (m *SyncJobModel) ToDomain() *sync.AsyncSyncJob {
	return &sync.AsyncSyncJob{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Kind:              sync.EntityKind(m.Kind),
		Status:            sync.JobStatus(m.Status),
		Parameters:        m.Parameters,
		StartedAt:         m.StartedAt,
		CompletedAt:       m.CompletedAt,
		Error:             m.Error,
		RowsSynced:        m.RowsSynced,
	}
}

// SyncJobModelFromDomain builds the model from a domain sync job
func SyncJobModelFromDomain(j *sync.AsyncSyncJob) *SyncJobModel {
	m := &SyncJobModel{
		Kind:        string(j.Kind),
		Status:      string(j.Status),
		Parameters:  j.Parameters,
		StartedAt:   j.StartedAt,
		CompletedAt: j.CompletedAt,
		Error:       j.Error,
		RowsSynced:  j.RowsSynced,
	}
	m.FromDomainAggregateRoot(j.BaseAggregateRoot)
	return m
}

// ErpCredentialsModel is the GORM model for stored ERP credentials
type ErpCredentialsModel struct {
	BaseModel
	BaseURL  string `gorm:"size:255;not null"`
	Tenant   string `gorm:"size:128"`
	Username string `gorm:"size:128;not null"`
	Password string `gorm:"size:255;not null"`
	Active   bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name
func (ErpCredentialsModel) TableName() string {
	return "erp_credentials"
}

// ToDomain converts the model to domain credentials
func (m *ErpCredentialsModel) ToDomain() *sync.ErpCredentials {
	return &sync.ErpCredentials{
		BaseEntity: m.BaseModel.ToDomain(),
		BaseURL:    m.BaseURL,
		Tenant:     m.Tenant,
		Username:   m.Username,
		Password:   m.Password,
		Active:     m.Active,
	}
}

// ErpCredentialsModelFromDomain builds the model from domain credentials
func ErpCredentialsModelFromDomain(c *sync.ErpCredentials) *ErpCredentialsModel {
	m := &ErpCredentialsModel{
		BaseURL:  c.BaseURL,
		Tenant:   c.Tenant,
		Username: c.Username,
		Password: c.Password,
		Active:   c.Active,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}
