package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"riftcoach/internal/schema"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// championRow is the sqlite search-index row for one champion.
type championRow struct {
	ID         uint   `gorm:"primaryKey"`
	ChampionID string `gorm:"uniqueIndex;size:64"`
	Name       string `gorm:"index;size:64"`
	Title      string `gorm:"size:128"`
	Tags       string `gorm:"size:128"`
}

func (championRow) TableName() string { return "champions" }

func openIndex(path string) (*gorm.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("index path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&cache=shared", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&championRow{}); err != nil {
		return nil, err
	}
	return db, nil
}

// RebuildIndex replaces the champion search index with the given table.
func RebuildIndex(path string, champions map[string]schema.ChampionRecord) error {
	db, err := openIndex(path)
	if err != nil {
		return err
	}
	rows := make([]championRow, 0, len(champions))
	for _, c := range champions {
		rows = append(rows, championRow{
			ChampionID: c.ID,
			Name:       c.Name,
			Title:      c.Title,
			Tags:       strings.Join(c.Tags, ","),
		})
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&championRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 100).Error
	})
}

// SearchIndex returns champions whose name or tags contain the query,
// case-insensitively, ordered by name.
func SearchIndex(path, query string) ([]schema.ChampionRecord, error) {
	db, err := openIndex(path)
	if err != nil {
		return nil, err
	}
	like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var rows []championRow
	if err := db.
		Where("lower(name) LIKE ? OR lower(tags) LIKE ?", like, like).
		Order("name").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]schema.ChampionRecord, 0, len(rows))
	for _, r := range rows {
		rec := schema.ChampionRecord{ID: r.ChampionID, Name: r.Name, Title: r.Title}
		if r.Tags != "" {
			rec.Tags = strings.Split(r.Tags, ",")
		}
		out = append(out, rec)
	}
	return out, nil
}
