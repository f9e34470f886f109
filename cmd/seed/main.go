package main

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tourhub/internal/config"
	"tourhub/internal/db"
	"tourhub/internal/model"
	"tourhub/internal/repository"
)

const seedPassword = "password123"

type seedTour struct {
	Title        string
	Description  string
	Destination  string
	Category     string
	Duration     int
	MaxGroupSize int
	Price        string
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.AgencyProfile{},
		&model.Tour{},
		&model.Booking{},
		&model.Review{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	tourRepo := repository.NewTourRepository(gormDB)
	bookingRepo := repository.NewBookingRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	agency := seedUser(ctx, userRepo, &model.User{
		Name:         "Wanderlust Adventures",
		Email:        "agency@example.com",
		PasswordHash: string(hash),
		Phone:        "+1-555-0101",
		Role:         model.RoleAgency,
	})
	if err := userRepo.UpsertAgencyProfile(ctx, &model.AgencyProfile{
		UserID:      agency.ID,
		AgencyName:  "Wanderlust Adventures Ltd.",
		Description: "Small-group cultural and hiking tours since 2012.",
		Services:    "Guided tours, airport transfers, travel insurance",
	}); err != nil {
		log.Fatalf("Failed to seed agency profile: %v", err)
	}

	tourist := seedUser(ctx, userRepo, &model.User{
		Name:         "Alex Morgan",
		Email:        "tourist@example.com",
		PasswordHash: string(hash),
		Phone:        "+1-555-0102",
		Role:         model.RoleTourist,
	})

	tours := []seedTour{
		{"Sahara Desert Trek", "Five days of camel trekking and desert camps.", "Merzouga", "adventure", 5, 12, "780.00"},
		{"Kyoto Temple Walk", "Guided walk through Kyoto's historic temples.", "Kyoto", "cultural", 3, 8, "420.00"},
		{"Patagonia Highlights", "Glaciers and granite peaks of Torres del Paine.", "Patagonia", "hiking", 7, 10, "1450.00"},
	}

	seeded := make([]*model.Tour, 0, len(tours))
	for _, t := range tours {
		price, err := decimal.NewFromString(t.Price)
		if err != nil {
			log.Fatalf("Invalid seed price %q: %v", t.Price, err)
		}
		tour := &model.Tour{
			AgencyUserID: agency.ID,
			Title:        t.Title,
			Description:  t.Description,
			Destination:  t.Destination,
			Category:     t.Category,
			Duration:     t.Duration,
			MaxGroupSize: t.MaxGroupSize,
			Price:        price,
			Status:       model.TourStatusActive,
		}
		if err := tourRepo.Create(ctx, tour); err != nil {
			log.Fatalf("Failed to seed tour %q: %v", t.Title, err)
		}
		seeded = append(seeded, tour)
	}
	log.Printf("Seeded %d tours", len(seeded))

	first := seeded[0]
	start := time.Now().AddDate(0, 1, 0).Truncate(24 * time.Hour)
	booking := &model.Booking{
		TourID:         first.ID,
		TouristUserID:  tourist.ID,
		NumberOfPeople: 2,
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, first.Duration),
		TotalAmount:    first.Price.Mul(decimal.NewFromInt(2)),
		Status:         model.BookingStatusConfirmed,
		ContactEmail:   tourist.Email,
	}
	if err := bookingRepo.Create(ctx, booking); err != nil {
		log.Fatalf("Failed to seed booking: %v", err)
	}

	review := &model.Review{
		TourID:        first.ID,
		TouristUserID: tourist.ID,
		Rating:        5,
		Comment:       "Unforgettable nights under the desert sky.",
	}
	if err := reviewRepo.Create(ctx, review); err != nil {
		log.Printf("Skipping review seed (may already exist): %v", err)
	}

	log.Println("Seed completed")
}

// seedUser creates the user unless the email is already present.
func seedUser(ctx context.Context, repo repository.UserRepository, user *model.User) *model.User {
	existing, err := repo.FindByEmail(ctx, user.Email)
	if err == nil {
		log.Printf("User %s already exists, reusing", user.Email)
		return existing
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("Failed to look up user %s: %v", user.Email, err)
	}
	if err := repo.Create(ctx, user); err != nil {
		log.Fatalf("Failed to seed user %s: %v", user.Email, err)
	}
	return user
}
