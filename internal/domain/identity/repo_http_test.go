package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medisystem/medisystem/internal/platform/api"
)

func newHTTPRepo(t *testing.T, e *echo.Echo) *RepoHTTP {
	t.Helper()
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return NewRepoHTTP(api.New(srv.URL, 5*time.Second, zerolog.Nop()))
}

func TestRepoHTTP_Login(t *testing.T) {
	e := echo.New()
	e.POST("/login", func(c echo.Context) error {
		var creds Credentials
		if err := c.Bind(&creds); err != nil {
			return err
		}
		if creds.Email != "doc@clinic.test" || creds.Password != "secret" {
			return c.NoContent(http.StatusUnauthorized)
		}
		return c.JSON(http.StatusOK, Account{
			ID: "u1", FullName: "Dr. Rivera", Email: creds.Email, Role: RoleDoctor, Token: "tok-1",
		})
	})
	repo := newHTTPRepo(t, e)

	acct, err := repo.Login(context.Background(), Credentials{Email: "doc@clinic.test", Password: "secret"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acct.FullName != "Dr. Rivera" || acct.Token != "tok-1" {
		t.Errorf("unexpected account: %+v", acct)
	}

	_, err = repo.Login(context.Background(), Credentials{Email: "doc@clinic.test", Password: "wrong"})
	if !errors.Is(err, ErrBadCredentials) {
		t.Errorf("expected ErrBadCredentials on 401, got %v", err)
	}
}

func TestRepoHTTP_RegisterDoctor(t *testing.T) {
	e := echo.New()
	var got DoctorRegistration
	e.POST("/doctors", func(c echo.Context) error {
		if err := c.Bind(&got); err != nil {
			return err
		}
		return c.NoContent(http.StatusCreated)
	})
	repo := newHTTPRepo(t, e)

	reg := DoctorRegistration{FullName: "Dr. Soto", Email: "soto@clinic.test", Password: "pw"}
	if err := repo.RegisterDoctor(context.Background(), reg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FullName != "Dr. Soto" {
		t.Errorf("payload did not arrive: %+v", got)
	}
}
