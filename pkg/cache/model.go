package cache

import "gorm.io/gorm"

// cacheRow is the gorm model backing the L2 SQLite table. Path is the
// primary key: a file is re-keyed by (path, content_hash) at query time
// rather than by a synthetic id, since the driver always looks up by path
// first.
type cacheRow struct {
	Path         string `gorm:"primaryKey"`
	ContentHash  string
	ErrorCount   int
	WarningCount int
	SchemaName   string
}

func (cacheRow) TableName() string {
	return "parse_cache_entries"
}

func fromEntry(path string, e Entry) cacheRow {
	return cacheRow{
		Path:         path,
		ContentHash:  e.ContentHash,
		ErrorCount:   e.ErrorCount,
		WarningCount: e.WarningCount,
		SchemaName:   e.SchemaName,
	}
}

func (r cacheRow) toEntry() Entry {
	return Entry{
		ContentHash:  r.ContentHash,
		ErrorCount:   r.ErrorCount,
		WarningCount: r.WarningCount,
		SchemaName:   r.SchemaName,
	}
}

// Migrate creates the L2 table if it does not already exist.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&cacheRow{})
}
