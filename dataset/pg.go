package dataset

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/imkonsowa/restaurant-chatbot/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Pg reads and writes the restaurant dataset in Postgres. The agent only reads;
// cmd/seed writes.
type Pg struct {
	db *gorm.DB
}

func NewPg(connStr string) (*Pg, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, err
	}

	return NewPgFromDB(db), nil
}

func NewPgFromDB(db *gorm.DB) *Pg {
	return &Pg{db: db}
}

func (p *Pg) Migrate(ctx context.Context) error {
	return p.db.WithContext(ctx).AutoMigrate(
		&models.Category{},
		&models.MenuItem{},
		&models.Variant{},
		&models.Addon{},
		&models.Branch{},
		&models.HoursEntry{},
		&models.FAQ{},
		&models.About{},
	)
}

func (p *Pg) Load(ctx context.Context) (*models.Dataset, error) {
	db := p.db.WithContext(ctx)
	ds := &models.Dataset{}

	if err := categoriesQuery(db).Find(&ds.Catalog.Categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	if err := db.Order("id").Find(&ds.Branches).Error; err != nil {
		return nil, fmt.Errorf("failed to load branches: %w", err)
	}

	if err := db.Order("id").Find(&ds.Hours).Error; err != nil {
		return nil, fmt.Errorf("failed to load hours: %w", err)
	}

	if err := db.Order("id").Find(&ds.FAQs).Error; err != nil {
		return nil, fmt.Errorf("failed to load faqs: %w", err)
	}

	var about []models.About
	if err := db.Order("id").Limit(1).Find(&about).Error; err != nil {
		return nil, fmt.Errorf("failed to load about: %w", err)
	}
	if len(about) > 0 {
		ds.About = &about[0]
		ds.RestaurantName = about[0].Name
		ds.Currency = about[0].Currency
	}

	ApplyDefaults(ds)

	return ds, nil
}

// categoriesQuery loads categories and their items in declaration order.
func categoriesQuery(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position, id") }).
		Preload("Items.Variants", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).
		Preload("Items.Addons", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).
		Order("position, id")
}

// Save replaces the stored dataset with ds in one transaction.
func (p *Pg) Save(ctx context.Context, ds *models.Dataset) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []any{
			&models.Variant{},
			&models.Addon{},
			&models.MenuItem{},
			&models.Category{},
			&models.Branch{},
			&models.HoursEntry{},
			&models.FAQ{},
			&models.About{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", table, err)
			}
		}

		for i, category := range ds.Catalog.Categories {
			category.ID = 0
			category.Position = i
			items := category.Items
			category.Items = nil

			if err := tx.Create(&category).Error; err != nil {
				return fmt.Errorf("failed to create category %s: %w", category.Name, err)
			}

			for j, item := range items {
				item.ID = 0
				item.CategoryID = category.ID
				item.Position = j
				item.Variants = cloneVariants(item.Variants)
				item.Addons = cloneAddons(item.Addons)

				if err := tx.Create(&item).Error; err != nil {
					return fmt.Errorf("failed to create menu item %s: %w", item.Name, err)
				}
			}
		}

		if len(ds.Branches) > 0 {
			branches := make([]models.Branch, len(ds.Branches))
			copy(branches, ds.Branches)
			for i := range branches {
				branches[i].ID = 0
			}
			if err := tx.Create(&branches).Error; err != nil {
				return fmt.Errorf("failed to create branches: %w", err)
			}
		}

		if len(ds.Hours) > 0 {
			hours := make([]models.HoursEntry, len(ds.Hours))
			copy(hours, ds.Hours)
			for i := range hours {
				hours[i].ID = 0
			}
			if err := tx.Create(&hours).Error; err != nil {
				return fmt.Errorf("failed to create hours: %w", err)
			}
		}

		if len(ds.FAQs) > 0 {
			faqs := make([]models.FAQ, len(ds.FAQs))
			copy(faqs, ds.FAQs)
			for i := range faqs {
				faqs[i].ID = 0
			}
			if err := tx.Create(&faqs).Error; err != nil {
				return fmt.Errorf("failed to create faqs: %w", err)
			}
		}

		about := models.About{Name: ds.RestaurantName, Currency: ds.Currency}
		if ds.About != nil {
			about.Description = ds.About.Description
			about.Mission = ds.About.Mission
		}
		if err := tx.Create(&about).Error; err != nil {
			return fmt.Errorf("failed to create about: %w", err)
		}

		return nil
	})
}

func cloneVariants(in []models.Variant) []models.Variant {
	out := make([]models.Variant, len(in))
	for i, v := range in {
		out[i] = models.Variant{Size: v.Size, Price: v.Price}
	}

	return out
}

func cloneAddons(in []models.Addon) []models.Addon {
	out := make([]models.Addon, len(in))
	for i, a := range in {
		out[i] = models.Addon{Name: a.Name, Price: a.Price}
	}

	return out
}
