package models

import (
	"time"

	"gorm.io/datatypes"
)

// Restaurant corresponds to the restaurants table. It is the tenant root:
// every other row is scoped to a restaurant ID.
type Restaurant struct {
	ID                  uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                string    `gorm:"type:varchar(255);not null" json:"name"`
	Description         string    `gorm:"type:varchar(512)" json:"description"`
	Address             string    `gorm:"type:varchar(512)" json:"address"`
	Phone               string    `gorm:"type:varchar(50)" json:"phone"`
	LogoURL             string    `gorm:"type:varchar(500)" json:"logo_url"`
	OnboardingCompleted bool      `gorm:"default:false;not null" json:"onboarding_completed"`
	OnboardingStep      int       `gorm:"default:1;not null" json:"onboarding_step"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// RestaurantArea corresponds to the restaurant_areas table. DisplayOrder is a
// dense index matching list position; it is reassigned whenever areas are
// added, removed or reordered.
type RestaurantArea struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Description  string    `gorm:"type:varchar(512)" json:"description"`
	MaxCapacity  int       `gorm:"default:0" json:"max_capacity"`
	MaxTables    int       `gorm:"default:0" json:"max_tables"`
	IsActive     bool      `gorm:"default:true;not null" json:"is_active"`
	DisplayOrder int       `gorm:"not null;default:0" json:"order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MenuCategory corresponds to the menu_categories table.
type MenuCategory struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Description  string    `gorm:"type:varchar(512)" json:"description"`
	DisplayOrder int       `gorm:"not null;default:0" json:"order"`
	IsActive     bool      `gorm:"default:true;not null" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MenuItem corresponds to the menu_items table.
type MenuItem struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	CategoryID   uint      `gorm:"not null;index" json:"category_id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Description  string    `gorm:"type:varchar(512)" json:"description"`
	PriceCents   int64     `gorm:"not null;default:0" json:"price_cents"`
	PhotoURL     string    `gorm:"type:varchar(500)" json:"photo_url"`
	IsActive     bool      `gorm:"default:true;not null" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WhatsappIntegration corresponds to the whatsapp_integrations table.
// AccessToken is stored encrypted at rest; Settings carries provider-specific
// knobs as JSON. Message delivery itself happens outside this service.
type WhatsappIntegration struct {
	ID             uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	RestaurantID   uint              `gorm:"not null;uniqueIndex" json:"restaurant_id"`
	PhoneNumber    string            `gorm:"type:varchar(50);not null" json:"phone_number"`
	BusinessName   string            `gorm:"type:varchar(255)" json:"business_name"`
	AccessToken    string            `gorm:"type:text" json:"-"`
	InstanceStatus string            `gorm:"type:varchar(50);default:'disconnected'" json:"instance_status"`
	Settings       datatypes.JSONMap `gorm:"type:json" json:"settings"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// WaitingEntry corresponds to the waiting_entries table. QueueNumber is unique
// per restaurant and monotonically increasing; rows are never deleted so that
// terminal entries keep feeding the historical statistics.
type WaitingEntry struct {
	ID                uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	PublicID          string          `gorm:"type:varchar(36);uniqueIndex;not null" json:"public_id"`
	RestaurantID      uint            `gorm:"not null;index:idx_waiting_restaurant_queue,unique;index:idx_waiting_restaurant_status" json:"restaurant_id"`
	QueueNumber       int             `gorm:"not null;index:idx_waiting_restaurant_queue,unique" json:"queue_number"`
	CustomerName      string          `gorm:"type:varchar(255);not null" json:"customer_name"`
	PhoneNumber       string          `gorm:"type:varchar(50);not null" json:"phone_number"`
	PartySize         int             `gorm:"not null" json:"party_size"`
	AreaID            *uint           `gorm:"index" json:"area_id"`
	Status            WaitingStatus   `gorm:"type:varchar(20);not null;default:'waiting';index:idx_waiting_restaurant_status" json:"status"`
	Priority          WaitingPriority `gorm:"type:varchar(20);not null;default:'low'" json:"priority"`
	EstimatedWaitTime int             `gorm:"not null;default:0" json:"estimated_wait_time"`
	Notes             string          `gorm:"type:varchar(512)" json:"notes"`
	NotifiedAt        *time.Time      `json:"notified_at"`
	CreatedAt         time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// WaitingListStats is the derived, point-in-time aggregate over a restaurant's
// waiting entries. It is recomputed on every query, never stored.
type WaitingListStats struct {
	WaitingCount        int     `json:"waiting_count"`
	NotifiedCount       int     `json:"notified_count"`
	PeopleWaiting       int     `json:"people_waiting"`
	AvgWaitMinutes      float64 `json:"avg_wait_minutes"`
	AvgWaitMinutesToday float64 `json:"avg_wait_minutes_today"`
	SeatedTodayCount    int     `json:"seated_today_count"`
	SeatedTodayPeople   int     `json:"seated_today_people"`
	NoShowTodayCount    int     `json:"no_show_today_count"`
	NoShowPercentage    float64 `json:"no_show_percentage"`
}
