package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsrcomercial/backoffice-api/internal/application/auth"
	"github.com/dsrcomercial/backoffice-api/internal/domain"
	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
	"github.com/dsrcomercial/backoffice-api/pkg/jwt"
)

// ─── stub de repositorio ───

type usuarioRepoStub struct {
	porUsername map[string]*entity.Usuario
}

func nuevoUsuarioRepoStub() *usuarioRepoStub {
	return &usuarioRepoStub{porUsername: make(map[string]*entity.Usuario)}
}

func (r *usuarioRepoStub) Create(_ context.Context, u *entity.Usuario) error {
	if _, ok := r.porUsername[u.Username]; ok {
		return domain.ErrDuplicate
	}
	copia := *u
	r.porUsername[u.Username] = &copia
	return nil
}

func (r *usuarioRepoStub) GetByUsername(_ context.Context, username string) (*entity.Usuario, error) {
	u, ok := r.porUsername[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copia := *u
	return &copia, nil
}

func (r *usuarioRepoStub) UpdatePassword(_ context.Context, id, passwordHash string) error {
	for _, u := range r.porUsername {
		if u.ID == id {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return domain.ErrNotFound
}

func nuevoUsecase(repo *usuarioRepoStub) *auth.Usecase {
	return auth.NewUsecase(repo, auth.Config{Secret: "secreto-de-test", Issuer: "test", ExpMinutes: 60})
}

// ─── bootstrap del usuario inicial ───

func TestCrearUsuario_LuegoLoginConEsasCredenciales(t *testing.T) {
	repo := nuevoUsuarioRepoStub()
	uc := nuevoUsecase(repo)

	creado, err := uc.CrearUsuario(context.Background(), "admin", "clave-segura")
	require.NoError(t, err)
	assert.NotEmpty(t, creado.ID)
	assert.NotEqual(t, "clave-segura", creado.PasswordHash)

	token, usuario, err := uc.Login(context.Background(), "admin", "clave-segura")
	require.NoError(t, err)
	assert.Equal(t, creado.ID, usuario.ID)

	userID, username, err := jwt.Parse("secreto-de-test", token)
	require.NoError(t, err)
	assert.Equal(t, creado.ID, userID)
	assert.Equal(t, "admin", username)
}

func TestCrearUsuario_UsernameRepetidoEsDuplicado(t *testing.T) {
	uc := nuevoUsecase(nuevoUsuarioRepoStub())

	_, err := uc.CrearUsuario(context.Background(), "admin", "clave-segura")
	require.NoError(t, err)

	_, err = uc.CrearUsuario(context.Background(), "admin", "otra-clave-01")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCrearUsuario_PasswordCortoEsInvalido(t *testing.T) {
	uc := nuevoUsecase(nuevoUsuarioRepoStub())

	_, err := uc.CrearUsuario(context.Background(), "admin", "corto")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── login ───

func TestLogin_PasswordIncorrectoYUsuarioInexistenteDanElMismoError(t *testing.T) {
	repo := nuevoUsuarioRepoStub()
	uc := nuevoUsecase(repo)

	_, err := uc.CrearUsuario(context.Background(), "admin", "clave-segura")
	require.NoError(t, err)

	_, _, errPass := uc.Login(context.Background(), "admin", "equivocada")
	_, _, errUser := uc.Login(context.Background(), "nadie", "equivocada")

	assert.ErrorIs(t, errPass, domain.ErrUnauthorized)
	assert.ErrorIs(t, errUser, domain.ErrUnauthorized)
	assert.Equal(t, errPass.Error(), errUser.Error())
}

func TestCambiarPassword_ExigeElActual(t *testing.T) {
	repo := nuevoUsuarioRepoStub()
	uc := nuevoUsecase(repo)

	_, err := uc.CrearUsuario(context.Background(), "admin", "clave-segura")
	require.NoError(t, err)

	err = uc.CambiarPassword(context.Background(), "admin", "equivocada", "clave-nueva-1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = uc.CambiarPassword(context.Background(), "admin", "clave-segura", "clave-nueva-1")
	require.NoError(t, err)

	_, _, err = uc.Login(context.Background(), "admin", "clave-nueva-1")
	assert.NoError(t, err)
}
