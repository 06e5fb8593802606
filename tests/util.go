package testutil

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/openschool/backend/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	id, name, uname, email, pwd, role string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		ID:          id,
		Username:    uname,
		DisplayName: name,
		Role:        role,
		Email:       email,
		IsActive:    isActive,
		CreatedAt:   tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := repo.Create(context.Background(), usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

// AssertEqualText fails with a unified diff when got != want.
func AssertEqualText(t *testing.T, got, want string) {
	t.Helper()
	if got == want {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		t.Fatalf("diffing failed: %v", err)
	}
	t.Errorf("unexpected output:\n%s", strings.TrimRight(diff, "\n"))
}
