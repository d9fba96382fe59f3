package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"advocate_desk_go/config"
	"advocate_desk_go/db"
	"advocate_desk_go/models"
	"advocate_desk_go/services"

	"golang.org/x/term"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.Credential{}, &models.Session{}, &models.Profile{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	services.InitializeIdentity(db.DB)

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create Advocate Account ===")
	fmt.Println()

	fmt.Print("Full name: ")
	fullName, _ := reader.ReadString('\n')
	fullName = strings.TrimSpace(fullName)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Print("Phone (optional): ")
	phone, _ := reader.ReadString('\n')
	phone = strings.TrimSpace(phone)

	// Get password securely
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	password := string(passwordBytes)
	fmt.Println()

	profile, err := services.CreateAdvocate(context.Background(), db.DB, fullName, email, phone, password)
	if err != nil {
		log.Fatalf("Failed to create advocate: %v", err)
	}

	fmt.Println()
	fmt.Printf("Advocate created: %s (%s)\n", profile.FullName, profile.ID)
}
