package main

import (
	"context"
	"log"

	"acadly.app/portal/internal/config"
	"acadly.app/portal/internal/entity"
	"acadly.app/portal/internal/server"
	"acadly.app/portal/pkg/database"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	db := database.Connect(cfg.DatabaseURL)
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := seedSuperadmin(db); err != nil {
			log.Fatalf("failed to seed superadmin: %v", err)
		}
	}

	redisClient := connectRedis(cfg)

	srv := server.NewServer(db, redisClient, cfg)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Profile{},
		&entity.Recommendation{},
		&entity.Comment{},
		&entity.Upvote{},
		&entity.Query{},
		&entity.FacultyCalendar{},
		&entity.FacultyEvent{},
		&entity.AcademicEvent{},
		&entity.Notification{},
		&entity.PointLog{},
	)
}

func connectRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, running without redis")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unreachable, running without it: %v", err)
		return nil
	}

	return client
}

func seedSuperadmin(db *gorm.DB) error {
	const email = "admin@acadly.app"

	var count int64
	if err := db.Model(&entity.Profile{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Superadmin already exists, skipping seed")
		return nil
	}

	password := "admin123"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entity.Profile{
		FullName:     "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleSuperadmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("✅ Superadmin seeded successfully")
	log.Printf("   Email: %s", email)
	log.Printf("   Password: %s", password)

	return nil
}
