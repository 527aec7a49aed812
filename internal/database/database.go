package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ehonlab/ehon-server/internal/entities"
)

var defaultThemes = []entities.Theme{
	{Name: "Kindness", Category: entities.ThemeCategoryOthers, Description: "Caring for friends, family and strangers"},
	{Name: "Courage", Category: entities.ThemeCategorySelf, Description: "Facing fears and trying new things"},
	{Name: "Nature", Category: entities.ThemeCategoryWorld, Description: "Animals, plants, seasons and the outdoors"},
	{Name: "Curiosity", Category: entities.ThemeCategoryThinking, Description: "Asking questions and figuring things out"},
}

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the SQLite database, runs migrations and seeds the
// default theme catalog. TranslateError lets repositories match
// gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated instead of parsing
// driver error strings.
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on&_busy_timeout=5000"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.User{},
		&entities.UserSettings{},
		&entities.Child{},
		&entities.Theme{},
		&entities.Book{},
		&entities.BookTheme{},
		&entities.BookPage{},
		&entities.BookTocItem{},
		&entities.Review{},
		&entities.Favorite{},
		&entities.ReadingProgress{},
		&entities.Bookmark{},
		&entities.Note{},
		&entities.LearningActivity{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedThemes(); err != nil {
		return nil, fmt.Errorf("failed to seed themes: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) seedThemes() error {
	for _, theme := range defaultThemes {
		var existing entities.Theme
		result := d.DB.Where("name = ?", theme.Name).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := d.DB.Create(&theme).Error; err != nil {
				return fmt.Errorf("failed to create theme %s: %w", theme.Name, err)
			}
			log.Printf("Created theme: %s", theme.Name)
		}
	}
	return nil
}
