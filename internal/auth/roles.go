package auth

import (
	"strings"

	"github.com/quizforge/quizforge/internal/config"
)

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// RoleForEmail maps a verified email to a role: the one configured
// administrator gets admin, everyone else is a student.
func RoleForEmail(cfg config.Config, email string) string {
	if email != "" && strings.EqualFold(email, cfg.AdminEmail) {
		return RoleAdmin
	}
	return RoleStudent
}
