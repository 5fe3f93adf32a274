package mail

import (
	"regexp"
	"strings"
	"time"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EmailFolder is the mailbox folder an inbound email lives in
type EmailFolder string

const (
	FolderInbox   EmailFolder = "inbox"
	FolderSpam    EmailFolder = "spam"
	FolderArchive EmailFolder = "archive"
	FolderTrash   EmailFolder = "trash"
	FolderSent    EmailFolder = "sent"
)

// IsValid checks if the folder is a known value
func (f EmailFolder) IsValid() bool {
	switch f {
	case FolderInbox, FolderSpam, FolderArchive, FolderTrash, FolderSent:
		return true
	}
	return false
}

// ProcessingStatus tracks the filing pipeline state of an inbound email
type ProcessingStatus string

const (
	ProcessingPending   ProcessingStatus = "pending"
	ProcessingProcessed ProcessingStatus = "processed"
	ProcessingFailed    ProcessingStatus = "failed"
)

// InboundEmail is a received message awaiting or past customer filing
type InboundEmail struct {
	shared.BaseAggregateRoot
	Sender            string
	Subject           string
	NormalizedSubject string
	Body              string
	CustomerID        *string
	Status            ProcessingStatus
	Folder            EmailFolder
	ReceivedAt        time.Time
	ProcessedAt       *time.Time
	FailureReason     string
	Labels            []uuid.UUID `gorm:"-"`
}

// NewInboundEmail records a received message in the inbox
func NewInboundEmail(sender, subject, body string, receivedAt time.Time) (*InboundEmail, error) {
	sender = strings.TrimSpace(sender)
	if sender == "" {
		return nil, shared.NewDomainError("INVALID_SENDER", "Email sender cannot be empty")
	}

	return &InboundEmail{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Sender:            sender,
		Subject:           subject,
		NormalizedSubject: NormalizeSubject(subject),
		Body:              body,
		Status:            ProcessingPending,
		Folder:            FolderInbox,
		ReceivedAt:        receivedAt,
	}, nil
}

var replyPrefix = regexp.MustCompile(`(?i)^(re|fwd?|fw)\s*:\s*`)

// NormalizeSubject strips reply and forward prefixes iteratively, collapses
// internal whitespace and lowercases, so threaded replies share one key.
// "Re: Re: Fwd: Quarterly Report" becomes "quarterly report".
func NormalizeSubject(subject string) string {
	s := strings.TrimSpace(subject)
	for {
		stripped := replyPrefix.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = strings.TrimSpace(stripped)
	}
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}

// FileToCustomer marks the email processed against a matched customer
func (e *InboundEmail) FileToCustomer(customerID string, at time.Time) error {
	if customerID == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_ID", "Customer ID cannot be empty")
	}
	e.CustomerID = &customerID
	e.Status = ProcessingProcessed
	e.ProcessedAt = &at
	e.FailureReason = ""
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	e.AddDomainEvent(NewEmailFiledEvent(e, customerID))
	return nil
}

// MarkFailed records a filing failure with its reason
func (e *InboundEmail) MarkFailed(reason string, at time.Time) {
	e.Status = ProcessingFailed
	e.ProcessedAt = &at
	e.FailureReason = reason
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// MoveTo moves the email to another folder
func (e *InboundEmail) MoveTo(folder EmailFolder) error {
	if !folder.IsValid() {
		return shared.NewDomainError("INVALID_FOLDER", "Email folder is not valid")
	}
	if folder == e.Folder {
		return nil
	}
	e.Folder = folder
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}

// AddLabel attaches a label if not already present
func (e *InboundEmail) AddLabel(labelID uuid.UUID) {
	for _, id := range e.Labels {
		if id == labelID {
			return
		}
	}
	e.Labels = append(e.Labels, labelID)
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// RemoveLabel detaches a label
func (e *InboundEmail) RemoveLabel(labelID uuid.UUID) {
	for i, id := range e.Labels {
		if id == labelID {
			e.Labels = append(e.Labels[:i], e.Labels[i+1:]...)
			e.UpdatedAt = time.Now()
			e.IncrementVersion()
			return
		}
	}
}
