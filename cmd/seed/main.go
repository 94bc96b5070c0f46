package main

import (
	"context"
	"log"

	"storeratings/internal/auth"
	"storeratings/internal/config"
	"storeratings/internal/db"
	"storeratings/internal/model"
	"storeratings/internal/repository"
	"storeratings/internal/service"
)

// Seed fixtures. All names satisfy the 20-60 character bound and all
// passwords the complexity rules, so the fixtures pass the same validation
// as real traffic.
var seedUsers = []struct {
	name, email, password, address, role string
}{
	{"Platform Administrator Account", "admin@storeratings.local", "Admin@Pass123", "1 Admin Plaza, Suite 100", model.RoleSystemAdmin},
	{"Jonathan Maxwell Butterfield", "jonathan@example.com", "Jon@Pass1234", "12 Elm Street, Springfield", model.RoleNormalUser},
	{"Alexandra Catherine Pemberton", "alexandra@example.com", "Alex@Pass123", "34 Oak Avenue, Riverside", model.RoleNormalUser},
}

var seedStores = []struct {
	name, email, password, address string
}{
	{"Downtown Fresh Grocery Market", "grocery@stores.local", "Store@Pass12", "56 Market Street, Downtown"},
	{"Riverside Hardware and Tools", "hardware@stores.local", "Store@Pass34", "78 River Road, Riverside"},
}

var seedRatings = []struct {
	userEmail  string
	storeEmail string
	value      string
}{
	{"jonathan@example.com", "grocery@stores.local", "4"},
	{"alexandra@example.com", "grocery@stores.local", "5"},
	{"jonathan@example.com", "hardware@stores.local", "3"},
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Store{}, &model.Rating{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	storeRepo := repository.NewStoreRepository(gormDB)
	ratingRepo := repository.NewRatingRepository(gormDB)
	ratingService := service.NewRatingService(ratingRepo, storeRepo)

	userIDs := make(map[string]uint)
	for _, u := range seedUsers {
		if existing, err := userRepo.FindByEmail(ctx, u.email); err == nil {
			log.Printf("User %s already exists, skipping", u.email)
			userIDs[u.email] = existing.ID
			continue
		}
		hashed, err := auth.HashPassword(u.password)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user := &model.User{Name: u.name, Email: u.email, Password: hashed, Address: u.address, Role: u.role}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", u.email, err)
		}
		userIDs[u.email] = user.ID
		log.Printf("Created user %s (%s)", u.email, u.role)
	}

	storeIDs := make(map[string]uint)
	for _, s := range seedStores {
		if existing, err := storeRepo.FindByEmail(ctx, s.email); err == nil {
			log.Printf("Store %s already exists, skipping", s.email)
			storeIDs[s.email] = existing.ID
			continue
		}
		hashed, err := auth.HashPassword(s.password)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		store := &model.Store{Name: s.name, Email: s.email, Password: hashed, Address: s.address}
		if err := storeRepo.Create(ctx, store); err != nil {
			log.Fatalf("Failed to create store %s: %v", s.email, err)
		}
		storeIDs[s.email] = store.ID
		log.Printf("Created store %s", s.email)
	}

	// Submitting through the service keeps the materialized averages in sync.
	for _, r := range seedRatings {
		userID, ok := userIDs[r.userEmail]
		if !ok {
			continue
		}
		storeID, ok := storeIDs[r.storeEmail]
		if !ok {
			continue
		}
		if _, err := ratingService.SubmitRating(ctx, userID, storeID, r.value); err != nil {
			log.Fatalf("Failed to seed rating for %s: %v", r.storeEmail, err)
		}
	}
	log.Printf("Seeded %d ratings", len(seedRatings))

	log.Println("Seed completed")
}
