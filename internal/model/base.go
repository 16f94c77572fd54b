package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDBase is embedded by every engine entity; ids are generated on create when empty.
type UUIDBase struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"lastModifiedDate"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *UUIDBase) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = GenerateUUID()
	}
	return
}

func GenerateUUID() string {
	return uuid.New().String()
}

// TenantScoped marks rows owned by one company.
type TenantScoped struct {
	TenantID string `gorm:"index;size:64;not null" json:"tenantId"`
}

// BelongsTo reports whether the row is owned by tenantID.
func (t TenantScoped) BelongsTo(tenantID string) bool {
	return t.TenantID == tenantID
}
