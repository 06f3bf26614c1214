package seeder

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"talent-screen/internal/database"
	"talent-screen/internal/domain/user"

	"github.com/google/uuid"
)

// AdminSeeder provisions the single admin account. Admins cannot register
// through the API, so startup is the only path that creates one.
type AdminSeeder struct {
	Email    string
	Password string
}

func (AdminSeeder) Name() string { return "admin" }

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	if s.Email == "" || s.Password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, full_name, role)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (email) DO NOTHING`,
		uuid.New(), s.Email, string(hash), "Administrator", user.RoleAdmin,
	)
	return err
}
