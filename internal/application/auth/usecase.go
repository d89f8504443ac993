package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// NewAccount construye una cuenta a partir de la configuración.
// Si passwordHash está vacío se hashea password con bcrypt.
func NewAccount(username, password, passwordHash, role string) (entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return entity.User{}, fmt.Errorf("%w: usuario vacío", domain.ErrInvalidInput)
	}
	if role != entity.RoleAdmin && role != entity.RoleCajero {
		return entity.User{}, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, role)
	}
	if passwordHash == "" {
		if password == "" {
			return entity.User{}, fmt.Errorf("%w: contraseña vacía para %s", domain.ErrInvalidInput, username)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return entity.User{}, err
		}
		passwordHash = string(hash)
	}
	return entity.User{
		ID:           role + ":" + username,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}, nil
}

// AuthUseCase login contra las cuentas de la tienda (definidas por configuración).
type AuthUseCase struct {
	accounts map[string]entity.User
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(jwtCfg JWTConfig, accounts ...entity.User) *AuthUseCase {
	m := make(map[string]entity.User, len(accounts))
	for _, a := range accounts {
		m[a.Username] = a
	}
	return &AuthUseCase{accounts: m, jwtCfg: jwtCfg}
}

// Login verifica usuario/contraseña y genera el JWT. Usuario inexistente y contraseña errada dan ErrUnauthorized.
func (uc *AuthUseCase) Login(_ context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, ok := uc.accounts[strings.TrimSpace(in.Username)]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
	}, nil
}
