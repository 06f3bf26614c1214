package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleRecruiter = "recruiter"
	RoleJobSeeker = "job_seeker"
	RoleAdmin     = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleRecruiter, RoleJobSeeker, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
