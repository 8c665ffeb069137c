package entity

import "time"

// Usuario de la aplicación (instalación mono-usuario, password con bcrypt).
type Usuario struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
