package database

import (
	"fmt"
	"log"

	"screener_backend/internal/config"
	"screener_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the MySQL connection, and unless migrate is false also runs
// schema migration and loads reference data. Release deployments pass false
// and migrate explicitly via the -migrate flag.
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// Duplicate-key violations must surface as gorm.ErrDuplicatedKey; the
		// system-actor get-or-create and the response unique index rely on it.
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")

		if err := SeedReferenceData(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Disorder{},
		&model.Assessment{},
		&model.AssessmentSection{},
		&model.AssessmentQuestion{},
		&model.AssessmentAnswer{},
		&model.AssessmentInstance{},
		&model.AssessmentResponse{},
		&model.PatientProvider{},
		&model.SubmissionRule{},
	)
}
