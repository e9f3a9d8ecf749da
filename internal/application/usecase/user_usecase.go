package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/application/ports"
	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
	"github.com/jhoicas/panaderia-api/pkg/logger"
)

// UserUseCase aplica reglas de negocio para la gestión de usuarios.
type UserUseCase struct {
	repo     repository.UserRepository
	notifier ports.Notifier
	log      *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, notifier ports.Notifier, log *logger.Logger) *UserUseCase {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{repo: repo, notifier: notifier, log: log.Component("users")}
}

// ListPending devuelve las cuentas esperando aprobación.
func (uc *UserUseCase) ListPending(ctx context.Context) ([]dto.UserResponse, error) {
	return uc.listByStatus(ctx, entity.UserStatusPending)
}

// ListActive devuelve las cuentas activas.
func (uc *UserUseCase) ListActive(ctx context.Context) ([]dto.UserResponse, error) {
	return uc.listByStatus(ctx, entity.UserStatusActive)
}

func (uc *UserUseCase) listByStatus(ctx context.Context, status string) ([]dto.UserResponse, error) {
	users, err := uc.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *dto.ToUserResponse(u))
	}
	return out, nil
}

// Approve activa una cuenta pendiente. Aprobar una cuenta ya activa no cambia nada.
func (uc *UserUseCase) Approve(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Status == entity.UserStatusActive {
		return dto.ToUserResponse(u), nil
	}
	u.Status = entity.UserStatusActive
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(u)
	uc.log.Info().Str("user_id", u.ID).Msg("usuario aprobado")
	uc.notifier.Publish(ctx, ports.Event{Type: ports.EventUserApproved, Payload: resp, AdminOnly: true})
	return resp, nil
}

// Create da de alta un usuario ya activo. Sin rol, employee; sin permisos, todos en false.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role := in.Role
	if role == "" {
		role = entity.RoleEmployee
	}
	if !entity.IsKnownRole(role) {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       entity.UserStatusActive,
		Permissions:  in.Permissions.ToFlags(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", u.ID).Str("role", u.Role).Msg("usuario creado")
	return dto.ToUserResponse(u), nil
}

// Update cambia rol y permisos. Permisos ausentes quedan todos en false.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !entity.IsKnownRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	u, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Role = in.Role
	u.Permissions = in.Permissions.ToFlags()
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", u.ID).Str("role", u.Role).Msg("usuario actualizado")
	return dto.ToUserResponse(u), nil
}

// Delete elimina una cuenta. Nadie puede borrarse a sí mismo (ErrConflict).
func (uc *UserUseCase) Delete(ctx context.Context, id, callerID string) error {
	if id == callerID {
		return domain.ErrConflict
	}
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", id).Msg("usuario eliminado")
	return nil
}

func (uc *UserUseCase) get(ctx context.Context, id string) (*entity.User, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}
