package course

import (
	"time"

	"gorm.io/gorm"
)

// Course publication states. A course is either a draft or published at a
// known instant; PublishedAt is only meaningful when Status is PUBLISHED.
const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
)

// Course represents a sellable learning course composed of ordered chapters
type Course struct {
	gorm.Model
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Author       string     `json:"author"`
	ThumbnailURL string     `json:"thumbnail_url"`
	PriceCents   int64      `json:"price_cents" gorm:"default:0"` // 0 with IsFree=false means not purchasable yet
	IsFree       bool       `json:"is_free" gorm:"default:false"`
	Status       string     `json:"status" gorm:"default:'DRAFT'"` // DRAFT, PUBLISHED
	PublishedAt  *time.Time `json:"published_at"`
	IsDeleted    bool       `gorm:"default:false"`
}

// IsPublished reports whether the course is visible to students.
func (c *Course) IsPublished() bool {
	return c.Status == StatusPublished
}
