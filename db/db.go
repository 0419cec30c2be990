package db

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/civicgridhq/civicgrid/config"
	"github.com/civicgridhq/civicgrid/models"
)

type GormDB struct {
	DB *gorm.DB
}

func GetDB(c *config.Config) *GormDB {
	gormDB := &GormDB{}
	gormDB.Init(c)
	return gormDB
}

func (g *GormDB) Init(c *config.Config) {
	g.DB = getPostgresDB(c)

	if err := migrate(g.DB); err != nil {
		log.Fatalf("unable to run migrations: %v", err)
	}
}

func getPostgresDB(c *config.Config) *gorm.DB {
	postgresDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort)

	// TranslateError lets repositories detect duplicate-key violations via
	// gorm.ErrDuplicatedKey instead of driver-specific errors.
	gormConfig := &gorm.Config{TranslateError: true}
	if c.Env != "prod" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN: postgresDSN,
	}), gormConfig)
	if err != nil {
		log.Fatal(err)
	}

	return gormDB
}

func SeedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{ID: uuid.New(), Name: models.RoleAdmin},
		{ID: uuid.New(), Name: models.RoleWorker},
		{ID: uuid.New(), Name: models.RoleCitizen},
	}

	for _, role := range roles {
		if err := db.FirstOrCreate(&role, models.Role{Name: role.Name}).Error; err != nil {
			return err
		}
	}

	return nil
}

func SeedFacilities(db *gorm.DB) error {
	facilities := []models.Facility{
		{Name: "Central Waste Depot", Kind: "waste_depot", Latitude: 12.9716, Longitude: 77.5946},
		{Name: "Ward 4 Water Station", Kind: "water_station", Latitude: 12.9352, Longitude: 77.6245},
		{Name: "North Yard Equipment Store", Kind: "equipment_yard", Latitude: 13.0358, Longitude: 77.5970},
	}

	for _, facility := range facilities {
		if err := db.FirstOrCreate(&facility, models.Facility{Name: facility.Name}).Error; err != nil {
			return err
		}
	}

	return nil
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Report{},
		&models.Vote{},
		&models.Notification{},
		&models.Facility{},
	)
	if err != nil {
		return fmt.Errorf("migrations error: %v", err)
	}

	if err := SeedRoles(db); err != nil {
		return fmt.Errorf("seeding roles error: %v", err)
	}

	if err := SeedFacilities(db); err != nil {
		return fmt.Errorf("seeding facilities error: %v", err)
	}

	return nil
}
