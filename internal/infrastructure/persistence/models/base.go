package models

// BaseModel provides the bookkeeping columns shared by all tables.
// Timestamps are Unix nanoseconds so insertion order survives on every driver.
type BaseModel struct {
	ID        string `gorm:"type:varchar(32);primaryKey"`
	CreatedAt int64  `gorm:"autoCreateTime:nano;not null;index"`
	UpdatedAt int64  `gorm:"autoUpdateTime:nano;not null"`
}
