package patient

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

func TestRepoHTTP_List(t *testing.T) {
	e := echo.New()
	e.GET("/patients", func(c echo.Context) error {
		if c.QueryParam("user_id") != "u1" {
			return c.JSON(http.StatusOK, []Patient{})
		}
		return c.JSON(http.StatusOK, []Patient{
			{ID: "1", Name: "Ana Torres", OwnerID: "u1"},
		})
	})
	repo := newHTTPRepo(t, e)

	got, err := repo.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Ana Torres" {
		t.Errorf("unexpected roster: %+v", got)
	}
}

func TestRepoHTTP_CreateUpdateDelete(t *testing.T) {
	e := echo.New()
	store := map[string]Patient{}
	e.POST("/patients", func(c echo.Context) error {
		var p Patient
		if err := c.Bind(&p); err != nil {
			return err
		}
		p.ID = "42"
		store[p.ID] = p
		return c.JSON(http.StatusCreated, p)
	})
	e.PUT("/patients/:id", func(c echo.Context) error {
		var p Patient
		if err := c.Bind(&p); err != nil {
			return err
		}
		if _, ok := store[c.Param("id")]; !ok {
			return c.NoContent(http.StatusNotFound)
		}
		p.ID = c.Param("id")
		store[p.ID] = p
		return c.NoContent(http.StatusOK)
	})
	e.DELETE("/patients/:id", func(c echo.Context) error {
		if _, ok := store[c.Param("id")]; !ok {
			return c.NoContent(http.StatusNotFound)
		}
		delete(store, c.Param("id"))
		return c.NoContent(http.StatusNoContent)
	})
	repo := newHTTPRepo(t, e)

	created, err := repo.Create(context.Background(), Patient{Name: "Ana Torres", BirthDate: "1990-05-12", OwnerID: "u1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "42" {
		t.Errorf("expected server id 42, got %q", created.ID)
	}

	created.Name = "Ana T. Flores"
	if err := repo.Update(context.Background(), *created); err != nil {
		t.Fatalf("update: %v", err)
	}
	if store["42"].Name != "Ana T. Flores" {
		t.Errorf("update did not land: %+v", store["42"])
	}

	if err := repo.Delete(context.Background(), "42"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(context.Background(), "42"); !errors.Is(err, api.ErrNotFound) {
		t.Errorf("expected ErrNotFound for a repeated delete, got %v", err)
	}
}
