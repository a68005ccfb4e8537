package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database. The
// existence check reads pg_indexes, so other dialects rely on the indexes
// declared in the model tags.
func AddIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Group membership lookups and the conflict scan
		{"group_members", "idx_group_members_group_id", "group_id"},
		{"group_members", "idx_group_members_member_id", "member_id"},

		// Member search and list ordering
		{"members", "idx_members_membership_type", "membership_type"},
		{"members", "idx_members_created_at", "created_at"},

		// Meeting listing per group and upcoming filters
		{"meetings", "idx_meetings_group_id", "group_id"},
		{"meetings", "idx_meetings_date", "date"},

		// Attendance lookups
		{"attendance", "idx_attendance_meeting_id", "meeting_id"},
		{"attendance", "idx_attendance_member_id", "member_id"},

		// Note history per member
		{"member_notes", "idx_member_notes_member_id", "member_id"},

		// Group ownership checks
		{"groups", "idx_groups_leader_id", "leader_id"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
