package user_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openschool/backend/core"
	"github.com/openschool/backend/core/user"
	"github.com/openschool/backend/storage/inmem"
	testutil "github.com/openschool/backend/tests"
)

func TestMain(m *testing.M) {
	core.InitValidators()
	os.Exit(m.Run())
}

func setup(t *testing.T) (*user.Service, user.Repository) {
	t.Helper()
	repo := user.NewRepository(inmem.NewStore())
	return user.NewService(repo), repo
}

func Test_Create(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	nu := user.NewUser{
		Username:    "asilva",
		DisplayName: "Ana Silva",
		Role:        user.RoleStudent,
		Email:       "ana@test.cd",
		Password:    "s3cr3t",
	}
	require.NoError(t, nu.Validate(svc))

	usr, err := svc.Create(ctx, nu)
	require.NoError(t, err)
	assert.NotEmpty(t, usr.ID)
	assert.True(t, usr.IsActive)
	assert.NoError(t, usr.CheckPassword("s3cr3t"))
	assert.Error(t, usr.CheckPassword("wrong"))

	// duplicate username is rejected on validation
	err = nu.Validate(svc)
	require.Error(t, err)
	assert.IsType(t, &core.ValidationError{}, err)
}

func Test_NewUser_Validate(t *testing.T) {
	svc, _ := setup(t)

	tests := []struct {
		name    string
		nu      user.NewUser
		wantErr bool
	}{
		{
			name: "ok",
			nu:   user.NewUser{Username: "mgreen", DisplayName: "Marcus Green", Role: user.RoleTeacher, Password: "pwd"},
		},
		{
			name:    "missing username",
			nu:      user.NewUser{DisplayName: "Marcus Green", Role: user.RoleTeacher, Password: "pwd"},
			wantErr: true,
		},
		{
			name:    "bad role",
			nu:      user.NewUser{Username: "mgreen", DisplayName: "Marcus Green", Role: "janitor", Password: "pwd"},
			wantErr: true,
		},
		{
			name:    "bad email",
			nu:      user.NewUser{Username: "mgreen", DisplayName: "Marcus Green", Role: user.RoleTeacher, Email: "nope", Password: "pwd"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.nu.Validate(svc); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_GetByUsername(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	testutil.CreateUser(t, repo, "u-1", "Ana Silva", "asilva", "ana@test.cd", "", user.RoleStudent, true)

	// lookup cleans and lowercases
	usr, err := svc.GetByUsername(ctx, "  ASilva ")
	require.NoError(t, err)
	assert.Equal(t, "u-1", usr.ID)

	_, err = svc.GetByUsername(ctx, "nobody")
	assert.Equal(t, user.ErrNotFound, err)
}

func Test_Update(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	usr := testutil.CreateUser(t, repo, "u-1", "Ana Silva", "asilva", "ana@test.cd", "old", user.RoleStudent, true)

	inactive := false
	updated, err := svc.Update(ctx, usr.ID, user.UpdateUser{
		DisplayName: "Ana M. Silva",
		IsActive:    &inactive,
		Password:    "new",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana M. Silva", updated.DisplayName)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "ana@test.cd", updated.Email)
	assert.NoError(t, updated.CheckPassword("new"))

	_, err = svc.Update(ctx, "u-404", user.UpdateUser{})
	assert.Equal(t, user.ErrNotFound, err)
}

func TestDisplayNameOf(t *testing.T) {
	users := []user.User{{ID: "u-1", DisplayName: "Ana Silva"}}

	assert.Equal(t, "Ana Silva", user.DisplayNameOf(users, "u-1"))
	// dangling reference falls back to the raw id
	assert.Equal(t, "u-404", user.DisplayNameOf(users, "u-404"))
}
