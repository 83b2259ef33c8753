package main

import (
	"context"
	"log"

	"servicehub/internal/config"
	"servicehub/internal/database"
	"servicehub/internal/domain"
	"servicehub/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db connect failed:", err)
	}

	log.Println("running migrations...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("migrate failed:", err)
	}

	log.Println("cleaning old data...")
	for _, table := range []string{
		"notifications", "reviews", "messages", "conversations",
		"earnings", "bookings", "provider_services", "service_categories",
		"providers", "refresh_tokens", "profiles", "user_roles", "users",
	} {
		db.Exec("DELETE FROM " + table)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	profiles := repository.NewProfileRepository(db)
	providers := repository.NewProviderRepository(db)

	mustUser := func(email, password, name string, roles ...domain.Role) *domain.User {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		u := &domain.User{Email: email, PasswordHash: string(hash)}
		if err := users.Create(ctx, u); err != nil {
			log.Fatal("create user failed:", err)
		}
		if err := profiles.Create(ctx, &domain.Profile{UserID: u.ID, Email: email, FullName: name}); err != nil {
			log.Fatal("create profile failed:", err)
		}
		for _, role := range roles {
			if err := users.AddRole(ctx, u.ID, role); err != nil {
				log.Fatal("add role failed:", err)
			}
		}
		return u
	}

	log.Println("creating users...")
	mustUser("admin@servicehub.local", "admin12345", "Admin", domain.RoleUser, domain.RoleAdmin)
	mustUser("customer@servicehub.local", "customer123", "Dana Customer", domain.RoleUser)
	plumber := mustUser("plumber@servicehub.local", "plumber123", "Pavel Plumber", domain.RoleUser, domain.RoleServiceProvider)
	cleaner := mustUser("cleaner@servicehub.local", "cleaner123", "Clara Cleaner", domain.RoleUser, domain.RoleServiceProvider)

	log.Println("creating categories...")
	mustCategory := func(name, description string) *domain.ServiceCategory {
		c := &domain.ServiceCategory{Name: name, Description: description}
		if err := providers.CreateCategory(ctx, c); err != nil {
			log.Fatal("create category failed:", err)
		}
		return c
	}
	plumbing := mustCategory("Plumbing", "Pipes, leaks and fixtures")
	cleaning := mustCategory("Cleaning", "Home and office cleaning")
	mustCategory("Electrical", "Wiring and appliances")

	log.Println("creating providers...")
	weekdays := []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

	p1 := &domain.Provider{
		UserID:             plumber.ID,
		BusinessName:       "Pavel's Plumbing",
		Description:        "Emergency and scheduled plumbing work",
		Location:           "Almaty",
		VerificationStatus: domain.VerificationVerified,
		AvailableDays:      weekdays,
		AvailableStartTime: "09:00",
		AvailableEndTime:   "18:00",
	}
	if err := providers.Create(ctx, p1); err != nil {
		log.Fatal("create provider failed:", err)
	}
	price1 := 15000.0
	if err := providers.CreateService(ctx, &domain.ProviderService{
		ProviderID:      p1.ID,
		CategoryID:      plumbing.ID,
		Price:           &price1,
		DurationMinutes: 90,
	}); err != nil {
		log.Fatal("create service failed:", err)
	}

	p2 := &domain.Provider{
		UserID:             cleaner.ID,
		BusinessName:       "Clara's Cleaning",
		Location:           "Astana",
		VerificationStatus: domain.VerificationPending,
		AvailableDays:      append(weekdays, "saturday"),
		AvailableStartTime: "08:00",
		AvailableEndTime:   "16:00",
	}
	if err := providers.Create(ctx, p2); err != nil {
		log.Fatal("create provider failed:", err)
	}
	price2 := 8000.0
	if err := providers.CreateService(ctx, &domain.ProviderService{
		ProviderID:      p2.ID,
		CategoryID:      cleaning.ID,
		Price:           &price2,
		DurationMinutes: 120,
	}); err != nil {
		log.Fatal("create service failed:", err)
	}

	log.Println("seed complete")
}
