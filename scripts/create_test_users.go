package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/classpulse/backend/internal/domain/entities"
	"github.com/classpulse/backend/internal/infrastructure/database"
	"github.com/classpulse/backend/pkg/config"
	pkgjwt "github.com/classpulse/backend/pkg/jwt"
)

// Seeds a demo professor account, a course, and a roster of students whose
// person keys match the mock detection client, so the live screen works end
// to end against a fresh database.
func main() {
	log.Println("🚀 Starting demo data creation...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Initialize JWT manager
	jwtManager := pkgjwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	log.Println("🗑️  Cleaning up existing demo data...")
	db.Where("user_id IN (SELECT id FROM users WHERE email LIKE ?)", "%@demo.local").Delete(&entities.Session{})
	db.Where("owner_id IN (SELECT id FROM users WHERE email LIKE ?)", "%@demo.local").Delete(&entities.Course{})
	db.Where("email LIKE ?", "%@demo.local").Delete(&entities.User{})
	db.Where("person_key LIKE ?", "mock-person-%").Delete(&entities.Student{})

	log.Println("🔑 Creating demo professor...")

	password := "classpulse-demo"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}
	hashStr := string(hash)

	professor := &entities.User{
		ID:           uuid.New(),
		Email:        "professor@demo.local",
		Name:         "Demo Professor",
		Role:         entities.RoleProfessor,
		IsActive:     true,
		PasswordHash: &hashStr,
		Timezone:     "UTC",
		Language:     "en",
	}
	if err := db.Create(professor).Error; err != nil {
		log.Fatalf("❌ Failed to create professor: %v", err)
	}

	accessToken, err := jwtManager.GenerateAccessToken(professor.ID, professor.Email, string(professor.Role))
	if err != nil {
		log.Fatalf("❌ Failed to generate access token: %v", err)
	}
	refreshToken, err := jwtManager.GenerateRefreshToken(professor.ID)
	if err != nil {
		log.Fatalf("❌ Failed to generate refresh token: %v", err)
	}
	tokenHash, err := jwtManager.HashToken(refreshToken)
	if err != nil {
		log.Fatalf("❌ Failed to hash refresh token: %v", err)
	}
	session := entities.NewSession(professor.ID, tokenHash, time.Now().Add(cfg.JWT.RefreshExpiry))
	if err := db.Create(session).Error; err != nil {
		log.Fatalf("❌ Failed to create session: %v", err)
	}

	log.Println("📚 Creating demo course and roster...")

	course := &entities.Course{
		ID:      uuid.New(),
		OwnerID: professor.ID,
		Name:    "Intro to Distributed Systems",
		Code:    "CS-401",
	}
	if err := db.Create(course).Error; err != nil {
		log.Fatalf("❌ Failed to create course: %v", err)
	}

	// Person keys line up with the mock detection client's synthetic frames
	for i := 1; i <= 6; i++ {
		student := &entities.Student{
			ID:        uuid.New(),
			FullName:  fmt.Sprintf("Mock Student %d", i),
			PersonKey: fmt.Sprintf("mock-person-%02d", i),
		}
		if err := db.Create(student).Error; err != nil {
			log.Printf("❌ Failed to create student %d: %v", i, err)
			continue
		}
		enrollment := &entities.Enrollment{
			CourseID:  course.ID,
			StudentID: student.ID,
		}
		if err := db.Create(enrollment).Error; err != nil {
			log.Printf("❌ Failed to enroll student %d: %v", i, err)
		}
	}

	fmt.Printf("═══════════════════════════════════════════════════════\n")
	fmt.Printf("🟢 Demo professor created\n")
	fmt.Printf("═══════════════════════════════════════════════════════\n")
	fmt.Printf("Email:     %s\n", professor.Email)
	fmt.Printf("Password:  %s\n", password)
	fmt.Printf("User ID:   %s\n", professor.ID)
	fmt.Printf("Course ID: %s\n", course.ID)
	fmt.Printf("\n📋 Access Token (Copy to Postman):\n%s\n", accessToken)
	fmt.Printf("\n🔄 Refresh Token:\n%s\n", refreshToken)
	fmt.Printf("───────────────────────────────────────────────────────\n")

	log.Println("✅ Demo data created successfully!")
	log.Println("\n💡 Usage:")
	log.Println("   1. Copy the Access Token above")
	log.Println("   2. In Postman, set header: Authorization: Bearer <access_token>")
	log.Println("   3. Token expiry:", cfg.JWT.AccessExpiry)
	log.Println("\n🧹 To clean up, run: DELETE FROM users WHERE email LIKE '%@demo.local'")
}
