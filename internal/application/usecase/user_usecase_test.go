package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/application/ports"
	"github.com/jhoicas/panaderia-api/internal/application/usecase"
	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/pkg/logger"
)

func pendingUser() *entity.User {
	return &entity.User{ID: "p1", Email: "nuevo@pan.com", Role: entity.RoleEmployee, Status: entity.UserStatusPending}
}

func activeAdmin() *entity.User {
	return &entity.User{ID: "a1", Email: "admin@pan.com", Role: entity.RoleAdmin, Status: entity.UserStatusActive}
}

func TestListPendingYActive(t *testing.T) {
	uc := usecase.NewUserUseCase(newMemUserRepo(pendingUser(), activeAdmin()), nil, logger.Nop())

	pending, err := uc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "nuevo@pan.com", pending[0].Email)

	active, err := uc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "admin", active[0].Role)
}

func TestApprove_ActivaYNotificaSoloAdmins(t *testing.T) {
	repo := newMemUserRepo(pendingUser())
	n := &recordingNotifier{}

	resp, err := usecase.NewUserUseCase(repo, n, logger.Nop()).Approve(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, entity.UserStatusActive, resp.Status)
	assert.Equal(t, entity.UserStatusActive, repo.users["p1"].Status)
	require.Len(t, n.events, 1)
	assert.Equal(t, ports.EventUserApproved, n.events[0].Type)
	assert.True(t, n.events[0].AdminOnly)
}

func TestApprove_NoExiste(t *testing.T) {
	_, err := usecase.NewUserUseCase(newMemUserRepo(), nil, nil).Approve(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCreate_ActivoConPermisosMaterializados(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo, nil, logger.Nop())

	resp, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Email:    " Caja@Pan.com ",
		Password: "secreto123",
		Role:     "manager",
	})
	require.NoError(t, err)

	assert.Equal(t, "caja@pan.com", resp.Email)
	assert.Equal(t, entity.UserStatusActive, resp.Status)
	assert.Equal(t, dto.PermissionsDTO{}, resp.Permissions, "sin permisos explícitos todo es false")

	stored := repo.users[resp.ID]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto123")))

	_, err = uc.Create(context.Background(), dto.CreateUserRequest{Email: "caja@pan.com", Password: "otro12345"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUpdate_RolYPermisos(t *testing.T) {
	repo := newMemUserRepo(activeAdmin(), &entity.User{ID: "e1", Email: "e@pan.com", Role: entity.RoleEmployee, Status: entity.UserStatusActive})
	uc := usecase.NewUserUseCase(repo, nil, logger.Nop())

	resp, err := uc.Update(context.Background(), "e1", dto.UpdateUserRequest{
		Role:        "employee",
		Permissions: &dto.PermissionsDTO{CanDeleteSales: true},
	})
	require.NoError(t, err)
	assert.True(t, resp.Permissions.CanDeleteSales)
	assert.True(t, repo.users["e1"].Permissions.CanDeleteSales)

	_, err = uc.Update(context.Background(), "e1", dto.UpdateUserRequest{Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete_NoPuedeBorrarseASiMismo(t *testing.T) {
	repo := newMemUserRepo(activeAdmin(), pendingUser())
	uc := usecase.NewUserUseCase(repo, nil, logger.Nop())

	assert.ErrorIs(t, uc.Delete(context.Background(), "a1", "a1"), domain.ErrConflict)
	require.NoError(t, uc.Delete(context.Background(), "p1", "a1"))
	assert.NotContains(t, repo.users, "p1")
}
