package appointment

import (
	"context"
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

func TestRepoHTTP_CRUD(t *testing.T) {
	e := echo.New()
	store := map[string]Appointment{
		"a9": {ID: "a9", PatientID: "p2", When: "2024-05-01T11:00:00", Reason: "cleaning", DoctorName: "Dr. Soto"},
	}
	e.GET("/appointments", func(c echo.Context) error {
		var out []Appointment
		for _, a := range store {
			out = append(out, a)
		}
		return c.JSON(http.StatusOK, out)
	})
	e.POST("/appointments", func(c echo.Context) error {
		var a Appointment
		if err := c.Bind(&a); err != nil {
			return err
		}
		a.ID = "a1"
		store[a.ID] = a
		return c.JSON(http.StatusCreated, a)
	})
	e.PUT("/appointments/:id", func(c echo.Context) error {
		var a Appointment
		if err := c.Bind(&a); err != nil {
			return err
		}
		a.ID = c.Param("id")
		store[a.ID] = a
		return c.NoContent(http.StatusOK)
	})
	e.DELETE("/appointments/:id", func(c echo.Context) error {
		delete(store, c.Param("id"))
		return c.NoContent(http.StatusNoContent)
	})
	repo := newHTTPRepo(t, e)

	created, err := repo.Create(context.Background(), Appointment{
		PatientID: "p1", When: "2024-03-15T09:30:00", Reason: "checkup", DoctorName: "Dr. Rivera",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "a1" {
		t.Errorf("expected server id a1, got %q", created.ID)
	}

	// The listing is account-wide: both patients' appointments come back.
	all, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected the unscoped listing, got %+v", all)
	}

	created.Reason = "follow-up"
	if err := repo.Update(context.Background(), *created); err != nil {
		t.Fatalf("update: %v", err)
	}
	if store["a1"].Reason != "follow-up" {
		t.Errorf("update did not land: %+v", store["a1"])
	}

	if err := repo.Delete(context.Background(), "a1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := store["a1"]; ok {
		t.Error("expected a1 removed")
	}
}
