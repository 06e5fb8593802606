package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strconv"
	"testing"

	"github.com/openschool/backend/core"
	"github.com/openschool/backend/core/user"
	"github.com/openschool/backend/storage/inmem"
)

func setup(t *testing.T) *commandLine {
	t.Helper()
	core.InitValidators()

	store := inmem.NewStore()
	return &commandLine{
		conf:   &core.Config{AppName: "OpenSchool", TestMode: true},
		db:     new(sql.DB),
		store:  store,
		usrSvc: user.NewService(user.NewRepository(store)),
	}
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no args", args: []string{"migrate"}, wantErr: errHelp},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "up-to: no version", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to", args: []string{"migrate", "up-to", "1"}},
		{name: "up-to: NaN version", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: no version", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "unknown command", args: []string{"migrate", "lol"}, wantErrStr: `"lol": no such command`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCLIErr(t, cli.run(append([]string{"admin"}, tt.args...)), tt)
		})
	}
}

func Test_commandLine_adduser(t *testing.T) {
	cli := setup(t)
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("s3cr3t"), nil }

	tests := []cliTest{
		{name: "no username", args: []string{"adduser"}, wantErr: errHelp},
		{name: "bad role", args: []string{"adduser", "-username", "mgreen", "-role", "janitor"}, wantErr: errHelp},
		{name: "create", args: []string{"adduser", "-username", "mgreen", "-email", "m@test.cd", "-name", "Marcus Green", "-role", "teacher"}},
		{name: "update existing", args: []string{"adduser", "-username", "mgreen", "-email", "marcus@test.cd", "-role", "teacher"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCLIErr(t, cli.run(append([]string{"admin"}, tt.args...)), tt)
		})
	}

	// the update run replaced the email, not the user
	usr, err := cli.usrSvc.GetByUsername(context.Background(), "mgreen")
	if err != nil {
		t.Fatalf("GetByUsername() failed: %v", err)
	}
	if usr.Email != "marcus@test.cd" {
		t.Errorf("email = %q, want %q", usr.Email, "marcus@test.cd")
	}
	users, _ := cli.usrSvc.All(context.Background())
	if len(users) != 1 {
		t.Errorf("user count = %d, want 1", len(users))
	}
	if err := usr.CheckPassword("s3cr3t"); err != nil {
		t.Errorf("CheckPassword() failed: %v", err)
	}
}

func Test_commandLine_resetpassword(t *testing.T) {
	cli := setup(t)
	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("newpwd"), nil }

	if _, err := cli.usrSvc.Create(context.Background(), user.NewUser{
		Username: "asilva", DisplayName: "Ana Silva", Role: user.RoleStudent, Password: "oldpwd",
	}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	tests := []cliTest{
		{name: "no username", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "unknown user", args: []string{"resetpassword", "-username", "ghost"}, wantErr: user.ErrNotFound},
		{name: "ok", args: []string{"resetpassword", "-username", "asilva"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCLIErr(t, cli.run(append([]string{"admin"}, tt.args...)), tt)
		})
	}

	usr, err := cli.usrSvc.GetByUsername(context.Background(), "asilva")
	if err != nil {
		t.Fatalf("GetByUsername() failed: %v", err)
	}
	if err := usr.CheckPassword("newpwd"); err != nil {
		t.Errorf("CheckPassword() failed: %v", err)
	}
}

func Test_commandLine_seed(t *testing.T) {
	cli := setup(t)

	if err := cli.run([]string{"admin", "seed"}); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	users, err := cli.usrSvc.All(context.Background())
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	if len(users) == 0 {
		t.Fatal("no users seeded")
	}

	// seeding again leaves existing tables alone
	if err := cli.run([]string{"admin", "seed"}); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	again, _ := cli.usrSvc.All(context.Background())
	if len(again) != len(users) {
		t.Errorf("user count = %d, want %d", len(again), len(users))
	}
}

func checkCLIErr(t *testing.T, err error, tt cliTest) {
	t.Helper()
	switch {
	case tt.wantErr != nil:
		if err != tt.wantErr {
			t.Fatalf("run() error = %v, wantErr %v", err, tt.wantErr)
		}
	case tt.wantErrStr != "":
		if err == nil || err.Error() != tt.wantErrStr {
			t.Fatalf("run() error = %v, want %q", err, tt.wantErrStr)
		}
	default:
		if err != nil {
			t.Fatalf("run() error = %v", err)
		}
	}
}
