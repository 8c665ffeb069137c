package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dsrcomercial/backoffice-api/internal/domain"
	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
)

// ClienteInput datos para crear o actualizar un cliente.
type ClienteInput struct {
	Nombre     string
	Telefono   string
	Email      string
	Direccion  string
	Municipio  string
	RIF        string
	Categorias []string
}

// ClienteUsecase CRUD de la cartera de clientes. RIF único.
type ClienteUsecase struct {
	clienteRepo repository.ClienteRepository
}

func NewClienteUsecase(clienteRepo repository.ClienteRepository) *ClienteUsecase {
	return &ClienteUsecase{clienteRepo: clienteRepo}
}

func (uc *ClienteUsecase) validar(input ClienteInput) error {
	if strings.TrimSpace(input.Nombre) == "" {
		return fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(input.RIF) == "" {
		return fmt.Errorf("%w: el RIF es obligatorio", domain.ErrInvalidInput)
	}
	return nil
}

func (uc *ClienteUsecase) Crear(ctx context.Context, input ClienteInput) (*entity.Cliente, error) {
	if err := uc.validar(input); err != nil {
		return nil, err
	}
	rif := strings.TrimSpace(input.RIF)
	if _, err := uc.clienteRepo.GetByRIF(ctx, rif); err == nil {
		return nil, fmt.Errorf("%w: ya existe un cliente con RIF %s", domain.ErrDuplicate, rif)
	}

	ahora := time.Now()
	cliente := &entity.Cliente{
		ID:            uuid.NewString(),
		Nombre:        strings.TrimSpace(input.Nombre),
		Telefono:      strings.TrimSpace(input.Telefono),
		Email:         strings.TrimSpace(input.Email),
		Direccion:     strings.TrimSpace(input.Direccion),
		Municipio:     strings.TrimSpace(input.Municipio),
		RIF:           rif,
		Categorias:    input.Categorias,
		FechaRegistro: ahora,
		CreatedAt:     ahora,
		UpdatedAt:     ahora,
	}
	if err := uc.clienteRepo.Create(ctx, cliente); err != nil {
		return nil, err
	}
	return cliente, nil
}

func (uc *ClienteUsecase) Actualizar(ctx context.Context, id string, input ClienteInput) (*entity.Cliente, error) {
	if err := uc.validar(input); err != nil {
		return nil, err
	}
	cliente, err := uc.clienteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rif := strings.TrimSpace(input.RIF)
	if rif != cliente.RIF {
		if _, err := uc.clienteRepo.GetByRIF(ctx, rif); err == nil {
			return nil, fmt.Errorf("%w: ya existe un cliente con RIF %s", domain.ErrDuplicate, rif)
		}
	}

	cliente.Nombre = strings.TrimSpace(input.Nombre)
	cliente.Telefono = strings.TrimSpace(input.Telefono)
	cliente.Email = strings.TrimSpace(input.Email)
	cliente.Direccion = strings.TrimSpace(input.Direccion)
	cliente.Municipio = strings.TrimSpace(input.Municipio)
	cliente.RIF = rif
	cliente.Categorias = input.Categorias
	cliente.UpdatedAt = time.Now()

	if err := uc.clienteRepo.Update(ctx, cliente); err != nil {
		return nil, err
	}
	return cliente, nil
}

func (uc *ClienteUsecase) Get(ctx context.Context, id string) (*entity.Cliente, error) {
	return uc.clienteRepo.GetByID(ctx, id)
}

func (uc *ClienteUsecase) Listar(ctx context.Context, f repository.ClienteFiltro) ([]*entity.Cliente, int, error) {
	return uc.clienteRepo.List(ctx, f)
}

func (uc *ClienteUsecase) Eliminar(ctx context.Context, id string) error {
	if _, err := uc.clienteRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.clienteRepo.Delete(ctx, id)
}
