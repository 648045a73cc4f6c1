package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	"recipeshare/domain"
	"recipeshare/internal/testdb"
	"recipeshare/pkg/jwt"
)

type recordedMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent []recordedMail
}

func (m *fakeMailer) SendMail(to, subject, body string) error {
	m.sent = append(m.sent, recordedMail{to: to, subject: subject, body: body})
	return nil
}

func newUserService(t *testing.T) (UserService, *fakeMailer) {
	t.Helper()
	db := testdb.Open(t)
	mailer := &fakeMailer{}
	return NewUserService(NewUserRepository(db), jwt.NewJWTService(), mailer), mailer
}

func registerRequest() domain.RegisterRequest {
	return domain.RegisterRequest{
		Email:     "alice@example.com",
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Cook",
		Password:  "sup3rsecret",
	}
}

func TestRegisterThenLogin(t *testing.T) {
	service, _ := newUserService(t)
	ctx := context.Background()

	created, err := service.Register(ctx, registerRequest())
	if err != nil {
		t.Fatalf("unexpected error registering: %v", err)
	}
	if created.ID == "" || created.Email != "alice@example.com" {
		t.Fatalf("unexpected register response: %+v", created)
	}

	res, err := service.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "sup3rsecret"})
	if err != nil {
		t.Fatalf("unexpected error logging in: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected a token on login")
	}
	if res.User.ID != created.ID {
		t.Fatalf("login returned a different user: %+v", res.User)
	}

	me, err := service.Me(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error loading profile: %v", err)
	}
	if me.Username != "alice" {
		t.Fatalf("unexpected profile: %+v", me)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := newUserService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, registerRequest()); err != nil {
		t.Fatalf("unexpected error registering: %v", err)
	}

	second := registerRequest()
	second.Username = "alice2"
	_, err := service.Register(ctx, second)
	if !errors.Is(err, domain.ErrEmailAlreadyUsed) {
		t.Fatalf("expected ErrEmailAlreadyUsed, got %v", err)
	}
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected a conflict-category error, got %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service, _ := newUserService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, registerRequest()); err != nil {
		t.Fatalf("unexpected error registering: %v", err)
	}

	tests := []struct {
		name string
		req  domain.LoginRequest
	}{
		{"wrong password", domain.LoginRequest{Email: "alice@example.com", Password: "nope"}},
		{"unknown email", domain.LoginRequest{Email: "ghost@example.com", Password: "sup3rsecret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.Login(ctx, tt.req); !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestForgotThenResetPassword(t *testing.T) {
	service, mailer := newUserService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, registerRequest()); err != nil {
		t.Fatalf("unexpected error registering: %v", err)
	}

	if err := service.ForgotPassword(ctx, domain.ForgotPasswordRequest{Email: "alice@example.com"}); err != nil {
		t.Fatalf("unexpected error requesting reset: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one mail, got %d", len(mailer.sent))
	}
	mail := mailer.sent[0]
	if mail.to != "alice@example.com" {
		t.Fatalf("mail went to %q", mail.to)
	}

	// Pull the token back out of the reset link.
	_, token, found := strings.Cut(mail.body, "token=")
	if !found {
		t.Fatalf("reset mail has no token link: %q", mail.body)
	}
	token, _, _ = strings.Cut(token, `"`)

	if err := service.ResetPassword(ctx, domain.ResetPasswordRequest{Token: token, Password: "newsecret1"}); err != nil {
		t.Fatalf("unexpected error resetting password: %v", err)
	}

	if _, err := service.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "sup3rsecret"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected old password rejected, got %v", err)
	}
	if _, err := service.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "newsecret1"}); err != nil {
		t.Fatalf("expected login with new password, got %v", err)
	}
}

func TestResetPasswordRejectsGarbageToken(t *testing.T) {
	service, _ := newUserService(t)

	err := service.ResetPassword(context.Background(), domain.ResetPasswordRequest{Token: "not-a-token", Password: "whatever1"})
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected a forbidden-category error, got %v", err)
	}
}
