package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dsrcomercial/backoffice-api/internal/domain"
	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
	"github.com/dsrcomercial/backoffice-api/pkg/jwt"
)

// Config parámetros de emisión de tokens.
type Config struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// Usecase autenticación de la aplicación: login con bcrypt y emisión de JWT.
type Usecase struct {
	usuarioRepo repository.UsuarioRepository
	cfg         Config
}

func NewUsecase(usuarioRepo repository.UsuarioRepository, cfg Config) *Usecase {
	return &Usecase{usuarioRepo: usuarioRepo, cfg: cfg}
}

// Login verifica las credenciales y devuelve un token firmado. Usuario
// inexistente y password incorrecto devuelven el mismo error.
func (uc *Usecase) Login(ctx context.Context, username, password string) (string, *entity.Usuario, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, fmt.Errorf("%w: usuario y password son obligatorios", domain.ErrInvalidInput)
	}

	usuario, err := uc.usuarioRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, fmt.Errorf("credenciales inválidas: %w", domain.ErrUnauthorized)
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("credenciales inválidas: %w", domain.ErrUnauthorized)
	}

	token, err := jwt.Generate(uc.cfg.Secret, usuario.ID, usuario.Username, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return "", nil, err
	}
	return token, usuario, nil
}

// CambiarPassword exige el password actual antes de aceptar el nuevo.
func (uc *Usecase) CambiarPassword(ctx context.Context, username, actual, nuevo string) error {
	if len(nuevo) < 8 {
		return fmt.Errorf("%w: el password nuevo debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}

	usuario, err := uc.usuarioRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(actual)); err != nil {
		return fmt.Errorf("password actual incorrecto: %w", domain.ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(nuevo), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.usuarioRepo.UpdatePassword(ctx, usuario.ID, string(hash))
}

// CrearUsuario da de alta el usuario de la instalación. Pensado para el
// bootstrap inicial; un username repetido devuelve duplicado.
func (uc *Usecase) CrearUsuario(ctx context.Context, username, password string) (*entity.Usuario, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: el usuario es obligatorio", domain.ErrInvalidInput)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: el password debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	if _, err := uc.usuarioRepo.GetByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: el usuario %s ya existe", domain.ErrDuplicate, username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	ahora := time.Now()
	usuario := &entity.Usuario{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    ahora,
		UpdatedAt:    ahora,
	}
	if err := uc.usuarioRepo.Create(ctx, usuario); err != nil {
		return nil, err
	}
	return usuario, nil
}
