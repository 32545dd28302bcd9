package models

import "time"

// Entities are value objects rebuilt from every API response. Constructors
// take a partial *Data record and fill documented defaults, so a field the
// backend omitted never leaks a Go zero value into the presentation layer.

type User struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

type UserData struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	ProfilePicture string     `json:"profilePicture"`
	IsActive       *bool      `json:"isActive"`
	CreatedAt      *time.Time `json:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt"`
}

func NewUser(data UserData) User {
	return User{
		ID:             data.ID,
		Name:           data.Name,
		Email:          data.Email,
		Phone:          data.Phone,
		ProfilePicture: data.ProfilePicture,
		IsActive:       boolOr(data.IsActive, true),
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

type Enterprise struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	ShortName    string     `json:"shortName"`
	Type         string     `json:"type"`
	Logo         string     `json:"logo,omitempty"`
	Address      string     `json:"address"`
	Schedule     string     `json:"schedule"`
	Phone        string     `json:"phone"`
	IsActive     bool       `json:"isActive"`
	ActiveQueues int        `json:"activeQueues"`
	Queues       []Queue    `json:"queues"`
	TenantID     string     `json:"tenantId"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

type EnterpriseData struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	ShortName    string      `json:"shortName"`
	Type         string      `json:"type"`
	Logo         string      `json:"logo"`
	Address      string      `json:"address"`
	Schedule     string      `json:"schedule"`
	Phone        string      `json:"phone"`
	IsActive     *bool       `json:"isActive"`
	ActiveQueues int         `json:"activeQueues"`
	Queues       []QueueData `json:"queues"`
	TenantID     string      `json:"tenantId"`
	CreatedAt    *time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time  `json:"updatedAt"`
}

func NewEnterprise(data EnterpriseData) Enterprise {
	queues := make([]Queue, 0, len(data.Queues))
	for _, q := range data.Queues {
		queues = append(queues, NewQueue(q))
	}
	return Enterprise{
		ID:           data.ID,
		Name:         data.Name,
		ShortName:    data.ShortName,
		Type:         data.Type,
		Logo:         data.Logo,
		Address:      data.Address,
		Schedule:     data.Schedule,
		Phone:        data.Phone,
		IsActive:     boolOr(data.IsActive, true),
		ActiveQueues: data.ActiveQueues,
		Queues:       queues,
		TenantID:     data.TenantID,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IconName string `json:"iconName"`
	Color    string `json:"color"`
	IsActive bool   `json:"isActive"`
}

type CategoryData struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IconName string `json:"iconName"`
	Color    string `json:"color"`
	IsActive *bool  `json:"isActive"`
}

const DefaultCategoryColor = "#4b7bec"

func NewCategory(data CategoryData) Category {
	return Category{
		ID:       data.ID,
		Name:     data.Name,
		IconName: data.IconName,
		Color:    stringOr(data.Color, DefaultCategoryColor),
		IsActive: boolOr(data.IsActive, true),
	}
}

type Queue struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Description         string     `json:"description"`
	Icon                string     `json:"icon"`
	Priority            string     `json:"priority"`
	PeopleWaiting       int        `json:"peopleWaiting"`
	AvgTime             string     `json:"avgTime"`
	EnterpriseID        string     `json:"enterpriseId"`
	IsActive            bool       `json:"isActive"`
	TotalProcessedToday int        `json:"totalProcessedToday"`
	CreatedAt           *time.Time `json:"createdAt,omitempty"`
	UpdatedAt           *time.Time `json:"updatedAt,omitempty"`
}

// QueueData tolerates the older wire aliases (waitingCount, averageWaitTime,
// tenantId) still emitted by some backend versions.
type QueueData struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Description         string     `json:"description"`
	Icon                string     `json:"icon"`
	Priority            string     `json:"priority"`
	PeopleWaiting       int        `json:"peopleWaiting"`
	WaitingCount        int        `json:"waitingCount"`
	AvgTime             string     `json:"avgTime"`
	AverageWaitTime     string     `json:"averageWaitTime"`
	EnterpriseID        string     `json:"enterpriseId"`
	TenantID            string     `json:"tenantId"`
	IsActive            *bool      `json:"isActive"`
	TotalProcessedToday int        `json:"totalProcessedToday"`
	CreatedAt           *time.Time `json:"createdAt"`
	UpdatedAt           *time.Time `json:"updatedAt"`
}

const (
	DefaultQueueIcon    = "document-text-outline"
	DefaultQueueAvgTime = "0 min"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

func NewQueue(data QueueData) Queue {
	waiting := data.PeopleWaiting
	if waiting == 0 {
		waiting = data.WaitingCount
	}
	avg := data.AvgTime
	if avg == "" {
		avg = data.AverageWaitTime
	}
	return Queue{
		ID:                  data.ID,
		Name:                data.Name,
		Description:         data.Description,
		Icon:                stringOr(data.Icon, DefaultQueueIcon),
		Priority:            stringOr(data.Priority, PriorityMedium),
		PeopleWaiting:       waiting,
		AvgTime:             stringOr(avg, DefaultQueueAvgTime),
		EnterpriseID:        stringOr(data.EnterpriseID, data.TenantID),
		IsActive:            boolOr(data.IsActive, true),
		TotalProcessedToday: data.TotalProcessedToday,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}
}

type BusinessHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type TenantSettings struct {
	Timezone      string        `json:"timezone"`
	BusinessHours BusinessHours `json:"businessHours"`
}

type Tenant struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	IsActive  bool           `json:"isActive"`
	Settings  TenantSettings `json:"settings"`
	CreatedAt *time.Time     `json:"createdAt,omitempty"`
	UpdatedAt *time.Time     `json:"updatedAt,omitempty"`
}

type TenantData struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	IsActive  *bool           `json:"isActive"`
	Settings  *TenantSettings `json:"settings"`
	CreatedAt *time.Time      `json:"createdAt"`
	UpdatedAt *time.Time      `json:"updatedAt"`
}

func NewTenant(data TenantData) Tenant {
	settings := TenantSettings{
		Timezone:      "America/Lima",
		BusinessHours: BusinessHours{Start: "08:00", End: "18:00"},
	}
	if data.Settings != nil {
		settings = *data.Settings
	}
	return Tenant{
		ID:        data.ID,
		Name:      data.Name,
		IsActive:  boolOr(data.IsActive, true),
		Settings:  settings,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
