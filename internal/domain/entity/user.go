package entity

// Roles válidos para el token.
const (
	RoleAdmin  = "admin"
	RoleCajero = "cajero"
)

// User representa la cuenta de acceso de la tienda (una sola, definida por configuración).
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt
	Role         string
}
