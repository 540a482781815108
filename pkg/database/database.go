package database

import (
	"fmt"

	"school_planner_backend/internal/config"
	"school_planner_backend/internal/model"
	applog "school_planner_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Models lists every table the record store owns, in migration order.
var Models = []interface{}{
	&model.User{},
	&model.AdminClaim{},
	&model.UserProfile{},
	&model.Homework{},
	&model.TimetableEntry{},
	&model.QuizProgress{},
}

func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)
}

// InitDB opens the MySQL connection. Tables are migrated in debug mode, or
// in any mode when migrate is set.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	logMode := logger.Warn
	if cfg.Server.Mode == "debug" {
		logMode = logger.Info
	}

	db, err := gorm.Open(mysql.Open(DSN(&cfg.Database)), &gorm.Config{
		Logger:         logger.Default.LogMode(logMode),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	applog.Log.Info("Database connection established", zap.String("host", cfg.Database.Host))

	if cfg.Server.Mode == "debug" || cfg.ForceMigrate {
		if err := db.AutoMigrate(Models...); err != nil {
			return nil, err
		}
		if err := claimExistingAdmin(db); err != nil {
			return nil, err
		}
		applog.Log.Info("Database migration completed")
	}

	return db, nil
}

// claimExistingAdmin records an admin created before the claim table existed,
// so later registrations do not bootstrap a second one.
func claimExistingAdmin(db *gorm.DB) error {
	var admin model.User
	err := db.Where("role = ?", model.Admin).Order("id ASC").Limit(1).Find(&admin).Error
	if err != nil || admin.PrincipalID == "" {
		return err
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.AdminClaim{Slot: model.AdminClaimSlot, PrincipalID: admin.PrincipalID}).
		Error
}
