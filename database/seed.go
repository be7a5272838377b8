package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// demoAccount is a bootstrap login provisioned on an empty database.
type demoAccount struct {
	name     string
	email    string
	password string
	role     string
	tenant   string
}

// demoProduct is a bootstrap product record.
type demoProduct struct {
	name   string
	price  string
	stock  int
	tenant string
}

var demoAccounts = []demoAccount{
	{"Superadmin", "superadmin@mail.com", "superpassword", "super_admin", "global"},
	{"Admin1", "admin1@companyA.com", "adminpasswordA", "admin", "Company A"},
	{"User1", "user1@companyA.com", "userpasswordA", "user", "Company A"},
	{"Admin2", "admin2@companyB.com", "adminpasswordB", "admin", "Company B"},
	{"User2", "user2@companyB.com", "userpasswordB", "user", "Company B"},
}

var demoProducts = []demoProduct{
	{"Laptop A", "1200.00", 50, "Company A"},
	{"Mouse A", "25.50", 200, "Company A"},
	{"Server B", "5000.00", 10, "Company B"},
	{"Keyboard B", "75.00", 150, "Company B"},
}

// SeedDemoData provisions demo accounts and products on a fresh database.
// It is a no-op when any user already exists.
func SeedDemoData(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()

	for _, account := range demoAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(account.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", account.email, err)
		}

		_, err = db.Exec(
			`INSERT INTO users (id, name, email, tenant, role, date_added) VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), account.name, account.email, account.tenant, account.role, now,
		)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", account.email, err)
		}

		_, err = db.Exec(
			`INSERT INTO credentials (email, password_hash) VALUES (?, ?)`,
			account.email, string(hash),
		)
		if err != nil {
			return fmt.Errorf("failed to seed credentials for %s: %w", account.email, err)
		}
	}

	for _, product := range demoProducts {
		_, err := db.Exec(
			`INSERT INTO products (id, name, price, stock, tenant, date_added) VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), product.name, product.price, product.stock, product.tenant, now,
		)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", product.name, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"users":    len(demoAccounts),
		"products": len(demoProducts),
	}).Info("seeded demo data")

	return nil
}
