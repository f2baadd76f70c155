package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/mfarouk/diary-server/internal/apperror"
	"github.com/mfarouk/diary-server/internal/model"
)

// fakeAccountRepo implements repository.AccountRepository in memory. The
// calls counter lets tests assert that validation failures never reach
// storage.
type fakeAccountRepo struct {
	byName map[string]*model.Account
	nextID int64
	calls  int
	fail   error // when set, every call returns this error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byName: make(map[string]*model.Account)}
}

func (f *fakeAccountRepo) FindAccountByName(_ context.Context, username string) (*model.Account, error) {
	f.calls++
	if f.fail != nil {
		return nil, f.fail
	}
	account, ok := f.byName[username]
	if !ok {
		return nil, &apperror.AppError{Err: apperror.ErrNotFound, Message: "account not found"}
	}
	copied := *account
	return &copied, nil
}

func (f *fakeAccountRepo) CreateAccount(_ context.Context, account *model.Account) error {
	f.calls++
	if f.fail != nil {
		return f.fail
	}
	f.nextID++
	account.ID = f.nextID
	stored := *account
	f.byName[account.Username] = &stored
	return nil
}

func (f *fakeAccountRepo) SetCredential(_ context.Context, username, password string) error {
	f.calls++
	if f.fail != nil {
		return f.fail
	}
	if account, ok := f.byName[username]; ok {
		account.Password = password
	}
	// Unknown name is a silent no-op, like the real gateway.
	return nil
}

func newTestAccountService(repo *fakeAccountRepo) *AccountService {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewAccountService(repo, logger)
}

func TestRegisterThenLogin(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newTestAccountService(repo)
	ctx := context.Background()

	created, err := svc.Register(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if created.ID == 0 {
		t.Error("Register() returned account without id")
	}

	loggedIn, err := svc.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if loggedIn.ID != created.ID || loggedIn.Username != created.Username {
		t.Errorf("Login() = %+v, want the registered account %+v", loggedIn, created)
	}
}

func TestRegister_NameTaken(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newTestAccountService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("setup: %v", err)
	}

	_, err := svc.Register(ctx, "alice", "pw2")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("second Register() error = %v, want ErrConflict", err)
	}

	// The losing registration must not clobber the stored credential.
	if _, err := svc.Login(ctx, "alice", "pw1"); err != nil {
		t.Errorf("Login() with original credential failed after conflict: %v", err)
	}
	if _, err := svc.Login(ctx, "alice", "pw2"); err == nil {
		t.Error("Login() with the rejected credential succeeded")
	}
}

func TestRegister_TrimsUsername(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newTestAccountService(repo)
	ctx := context.Background()

	created, err := svc.Register(ctx, "  alice  ", "pw1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if created.Username != "alice" {
		t.Errorf("Username = %q, want %q", created.Username, "alice")
	}

	if _, err := svc.Login(ctx, "alice", "pw1"); err != nil {
		t.Errorf("Login() with trimmed name failed: %v", err)
	}
}

func TestLogin_WrongPasswordAndUnknownNameLookAlike(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newTestAccountService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("setup: %v", err)
	}

	_, wrongPw := svc.Login(ctx, "alice", "wrong")
	_, unknown := svc.Login(ctx, "nobody", "whatever")

	if !errors.Is(wrongPw, apperror.ErrUnauthorized) {
		t.Errorf("wrong password error = %v, want ErrUnauthorized", wrongPw)
	}
	if !errors.Is(unknown, apperror.ErrUnauthorized) {
		t.Errorf("unknown name error = %v, want ErrUnauthorized", unknown)
	}
	// Same message, so the caller cannot tell which check failed.
	if wrongPw.Error() != unknown.Error() {
		t.Errorf("messages differ: %q vs %q", wrongPw.Error(), unknown.Error())
	}
}

func TestLogin_CredentialComparedVerbatim(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newTestAccountService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "Secret"); err != nil {
		t.Fatalf("setup: %v", err)
	}

	// Case matters and surrounding whitespace is not stripped.
	if _, err := svc.Login(ctx, "alice", "secret"); err == nil {
		t.Error("Login() accepted a credential with different case")
	}
	if _, err := svc.Login(ctx, "alice", " Secret "); err == nil {
		t.Error("Login() accepted a credential with surrounding whitespace")
	}
}

func TestChangePassword_FlipsLogin(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newTestAccountService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := svc.ChangePassword(ctx, "alice", "pw2"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	if _, err := svc.Login(ctx, "alice", "pw2"); err != nil {
		t.Errorf("Login() with new credential failed: %v", err)
	}
	if _, err := svc.Login(ctx, "alice", "pw1"); err == nil {
		t.Error("Login() with old credential still succeeds")
	}
}

func TestChangePassword_UnknownNameSucceeds(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newTestAccountService(repo)

	// Blind update: no existence check.
	if err := svc.ChangePassword(context.Background(), "nobody", "pw2"); err != nil {
		t.Errorf("ChangePassword() on unknown name: error = %v", err)
	}
}

func TestAccountValidation_RejectsWithoutStorageContact(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "pw"},
		{"blank username", "   ", "pw"},
		{"empty password", "alice", ""},
		{"blank password", "alice", "   "},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeAccountRepo()
			svc := newTestAccountService(repo)
			ctx := context.Background()

			if _, err := svc.Register(ctx, tt.username, tt.password); !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Register() error = %v, want ErrValidation", err)
			}
			if _, err := svc.Login(ctx, tt.username, tt.password); !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Login() error = %v, want ErrValidation", err)
			}
			if err := svc.ChangePassword(ctx, tt.username, tt.password); !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("ChangePassword() error = %v, want ErrValidation", err)
			}

			if repo.calls != 0 {
				t.Errorf("storage contacted %d times for invalid input", repo.calls)
			}
		})
	}
}

func TestLogin_StorageFailurePropagates(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.fail = apperror.Storage("account lookup", errors.New("connection refused"))
	svc := newTestAccountService(repo)

	_, err := svc.Login(context.Background(), "alice", "pw1")
	if !errors.Is(err, apperror.ErrStorage) {
		t.Errorf("error = %v, want ErrStorage", err)
	}
}
