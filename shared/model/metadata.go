package model

import "time"

// Metadata is embedded by every persisted entity. Timestamps are filled by
// column defaults on insert.
type Metadata struct {
	CreatedAt  time.Time `db:"created_at"  json:"created_at"  readonly:"true"`
	ModifiedAt time.Time `db:"modified_at" json:"modified_at" readonly:"true"`
	CreatedBy  string    `db:"created_by"  json:"created_by"`
	ModifiedBy string    `db:"modified_by" json:"modified_by"`
}
