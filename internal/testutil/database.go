package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration test database. It expects a MySQL
// instance at localhost:3306 with a database named 'karkhana_test' and
// skips the test when none is reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/karkhana_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties every table touched by the tests and closes the
// connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"BookingItems", "Bookings", "Listings", "Makerspaces", "Users"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the repositories expect.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createUsersTable := `
	CREATE TABLE IF NOT EXISTS Users (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(150) NOT NULL UNIQUE,
		passwordHash VARCHAR(100) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'USER',
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createMakerspacesTable := `
	CREATE TABLE IF NOT EXISTS Makerspaces (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE,
		city VARCHAR(100) NOT NULL,
		address VARCHAR(255),
		email VARCHAR(150),
		phone VARCHAR(30),
		imageUrl VARCHAR(255),
		ownerId INT UNSIGNED NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_city (city)
	)`

	createListingsTable := `
	CREATE TABLE IF NOT EXISTS Listings (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		makerspaceId INT UNSIGNED NOT NULL,
		kind VARCHAR(20) NOT NULL,
		name VARCHAR(150) NOT NULL,
		description TEXT,
		unitPrice DECIMAL(10,2) NOT NULL,
		ticketLimit INT,
		slotStart VARCHAR(10) NOT NULL,
		slotEnd VARCHAR(10) NOT NULL,
		category VARCHAR(100),
		specifications JSON,
		imageUrl VARCHAR(255),
		location VARCHAR(255),
		inCharge VARCHAR(100),
		experts VARCHAR(255),
		isActive TINYINT(1) NOT NULL DEFAULT 1,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (makerspaceId) REFERENCES Makerspaces(id),
		INDEX idx_makerspace_kind (makerspaceId, kind)
	)`

	createBookingsTable := `
	CREATE TABLE IF NOT EXISTS Bookings (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		reference VARCHAR(36) NOT NULL UNIQUE,
		userId INT UNSIGNED NOT NULL,
		makerspaceId INT UNSIGNED NOT NULL,
		makerspace VARCHAR(100) NOT NULL,
		kind VARCHAR(20) NOT NULL,
		bookingDate DATE NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		lineTotal DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		grandTotal DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		paymentKey VARCHAR(36) NOT NULL,
		gatewayRef VARCHAR(100),
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_user (userId),
		INDEX idx_status (status)
	)`

	createBookingItemsTable := `
	CREATE TABLE IF NOT EXISTS BookingItems (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		bookingId INT UNSIGNED NOT NULL,
		listingId VARCHAR(36) NOT NULL,
		kind VARCHAR(20) NOT NULL,
		name VARCHAR(150) NOT NULL,
		unitPrice DECIMAL(10,2) NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		slotStart VARCHAR(10) NOT NULL,
		slotEnd VARCHAR(10) NOT NULL,
		holdToken VARCHAR(36),
		FOREIGN KEY (bookingId) REFERENCES Bookings(id) ON DELETE CASCADE,
		INDEX idx_booking (bookingId),
		INDEX idx_listing (listingId)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Users", createUsersTable},
		{"Makerspaces", createMakerspacesTable},
		{"Listings", createListingsTable},
		{"Bookings", createBookingsTable},
		{"BookingItems", createBookingItemsTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
