package models

import "time"

// Module is the functional area a permission applies to.
type Module string

const (
	ModuleLeads     Module = "leads"
	ModuleTasks     Module = "tasks"
	ModuleCalendar  Module = "calendar"
	ModuleMessaging Module = "messaging"
	ModuleStrategy  Module = "strategy"
	ModuleSettings  Module = "settings"
	ModuleUsers     Module = "users"
	ModuleAudit     Module = "audit"
	ModuleServices  Module = "services"
)

// Action is the kind of operation a permission grants on its module.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionExport Action = "export"
	// ActionManage subsumes every other action on the same module.
	ActionManage Action = "manage"
)

// Permission is a single grant in the static catalog. Permissions are defined
// once at startup and never mutated.
type Permission struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Module      Module `json:"module"`
	Action      Action `json:"action"`
}

// Predefined role IDs. These four roles ship with the system and are
// structurally protected: only an admin may edit them.
const (
	RoleAdmin   = "role_admin"
	RoleManager = "role_manager"
	RoleSales   = "role_sales"
	RoleSupport = "role_support"
)

// Role is a named bundle of permission IDs.
type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInactive  UserStatus = "inactive"
	UserSuspended UserStatus = "suspended"
)

// User carries exactly one role plus optional per-user permission overrides
// granted on top of the role.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	RoleID    string     `json:"roleId"`
	Status    UserStatus `json:"status"`
	AvatarURL string     `json:"avatarUrl,omitempty"`
	Overrides []string   `json:"permissions,omitempty"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ServiceType classifies both catalog services and the leads that request them.
type ServiceType string

const (
	ServiceLanding    ServiceType = "Landing"
	ServiceEcommerce  ServiceType = "Ecommerce"
	ServiceLocal      ServiceType = "Local"
	ServiceAutomation ServiceType = "Automatizacion"
	ServiceMobile     ServiceType = "Mobile"
	ServiceCRO        ServiceType = "CRO"
	ServiceCRM        ServiceType = "CRM"
	ServiceAppWeb     ServiceType = "AppWeb"
	ServiceOther      ServiceType = "Other"
)

// Lead is a sales opportunity moving through the pipeline. Status names a
// pipeline stage ID; dates are plain YYYY-MM-DD strings.
type Lead struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Company     string      `json:"company"`
	Value       float64     `json:"value"`
	Status      string      `json:"status"`
	Tags        []string    `json:"tags"`
	OwnerID     string      `json:"ownerId"`
	LastContact string      `json:"lastContact"`
	ServiceType ServiceType `json:"serviceType"`
	// IsSameDay marks leads under the expedited 24-hour SLA.
	IsSameDay  bool   `json:"isSameDay"`
	LeadSource string `json:"leadSource,omitempty"`
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

type Task struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	DueDate   string       `json:"dueDate"`
	Completed bool         `json:"completed"`
	LeadID    string       `json:"leadId,omitempty"`
	Priority  TaskPriority `json:"priority"`
}

type EventType string

const (
	EventMeeting  EventType = "meeting"
	EventCall     EventType = "call"
	EventDeadline EventType = "deadline"
)

type EventSource string

const (
	EventSourceCRM    EventSource = "crm"
	EventSourceGoogle EventSource = "google"
)

type CalendarEvent struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	Type        EventType   `json:"type"`
	LeadID      string      `json:"leadId,omitempty"`
	Source      EventSource `json:"source,omitempty"`
	Description string      `json:"description,omitempty"`
}

// Service is an entry in the agency's catalog of offerings.
type Service struct {
	ID          string      `json:"id"`
	Type        ServiceType `json:"type"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	BasePrice   float64     `json:"basePrice"`
	SLAHours    int         `json:"slaHours"`
	Features    []string    `json:"features"`
	IsActive    bool        `json:"isActive"`
}

type MessageStatus string

const (
	MessageSent      MessageStatus = "sent"
	MessageDelivered MessageStatus = "delivered"
	MessageRead      MessageStatus = "read"
)

// DirectMessage is a single message in a lead conversation. SenderID is either
// a user ID or "lead" for inbound messages.
type DirectMessage struct {
	ID        string        `json:"id"`
	SenderID  string        `json:"senderId"`
	Text      string        `json:"text"`
	Timestamp time.Time     `json:"timestamp"`
	Status    MessageStatus `json:"status"`
}

type Conversation struct {
	LeadID        string          `json:"leadId"`
	Messages      []DirectMessage `json:"messages"`
	UnreadCount   int             `json:"unreadCount"`
	LastMessageAt time.Time       `json:"lastMessageAt"`
}

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionLogin  AuditAction = "login"
	AuditActionExport AuditAction = "export"
)

type AuditOutcome string

const (
	AuditSuccess AuditOutcome = "success"
	AuditFailed  AuditOutcome = "failed"
)

// AuditLog is a read-only record of one mutation, including before/after
// snapshots of the touched entity.
type AuditLog struct {
	ID         string       `json:"id" bson:"_id,omitempty"`
	UserID     string       `json:"userId" bson:"user_id"`
	UserName   string       `json:"userName" bson:"user_name"`
	Action     AuditAction  `json:"action" bson:"action"`
	Module     Module       `json:"module" bson:"module"`
	EntityID   string       `json:"entityId,omitempty" bson:"entity_id,omitempty"`
	EntityType string       `json:"entityType,omitempty" bson:"entity_type,omitempty"`
	Before     any          `json:"changesBefore,omitempty" bson:"changes_before,omitempty"`
	After      any          `json:"changesAfter,omitempty" bson:"changes_after,omitempty"`
	Timestamp  time.Time    `json:"timestamp" bson:"timestamp"`
	Status     AuditOutcome `json:"status" bson:"status"`
}
