package patient

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/medisystem/medisystem/internal/platform/guard"
)

type mockRepo struct {
	patients map[string]Patient
	nextID   int
	err      error
	calls    int

	entered chan struct{}
	release chan struct{}
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: map[string]Patient{}, nextID: 1}
}

func (m *mockRepo) List(ctx context.Context, accountID string) ([]Patient, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var out []Patient
	for _, p := range m.patients {
		if p.OwnerID == accountID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepo) Create(ctx context.Context, p Patient) (*Patient, error) {
	m.calls++
	if m.entered != nil {
		m.entered <- struct{}{}
		<-m.release
	}
	if m.err != nil {
		return nil, m.err
	}
	p.ID = string(rune('0' + m.nextID))
	m.nextID++
	m.patients[p.ID] = p
	return &p, nil
}

func (m *mockRepo) Update(ctx context.Context, p Patient) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	if _, ok := m.patients[p.ID]; !ok {
		return errors.New("unknown patient")
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	delete(m.patients, id)
	return nil
}

func newService(repo Repository) *Service {
	return NewService(repo, guard.New(), zerolog.Nop())
}

func validPatient() Patient {
	return Patient{Name: "Ana Torres", BirthDate: "1990-05-12", ContactInfo: "5551234567", OwnerID: "u1"}
}

func TestSave_Create(t *testing.T) {
	repo := newMockRepo()
	svc := newService(repo)

	created, err := svc.Save(context.Background(), validPatient())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Error("expected server-assigned id")
	}
	if len(repo.patients) != 1 {
		t.Errorf("expected one stored patient, got %d", len(repo.patients))
	}
}

func TestSave_Update(t *testing.T) {
	repo := newMockRepo()
	svc := newService(repo)

	created, err := svc.Save(context.Background(), validPatient())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Name = "Ana T. Flores"
	updated, err := svc.Save(context.Background(), *created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("update must keep the id, got %q", updated.ID)
	}
	if repo.patients[created.ID].Name != "Ana T. Flores" {
		t.Errorf("update did not reach the repository: %+v", repo.patients[created.ID])
	}
}

func TestSave_ValidationSkipsNetwork(t *testing.T) {
	repo := newMockRepo()
	svc := newService(repo)

	cases := []Patient{
		{BirthDate: "1990-05-12", OwnerID: "u1"},                       // missing name
		{Name: "Ana", BirthDate: "1990-05-1", OwnerID: "u1"},           // incomplete date
		{Name: "Ana", BirthDate: "12/05/1990", OwnerID: "u1"},          // wrong date shape
		{Name: "Ana", BirthDate: "1990-05-12"},                         // unscoped
	}
	for _, p := range cases {
		if _, err := svc.Save(context.Background(), p); err == nil {
			t.Errorf("expected validation error for %+v", p)
		}
	}
	if repo.calls != 0 {
		t.Errorf("invalid input must not reach the repository, saw %d calls", repo.calls)
	}
}

func TestSave_DoubleSubmitGuarded(t *testing.T) {
	repo := newMockRepo()
	repo.entered = make(chan struct{})
	repo.release = make(chan struct{})
	svc := newService(repo)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Save(context.Background(), validPatient())
		done <- err
	}()
	<-repo.entered // first submit is inside the repository call

	_, err := svc.Save(context.Background(), validPatient())
	if !errors.Is(err, guard.ErrInFlight) {
		t.Errorf("expected ErrInFlight for duplicate submit, got %v", err)
	}

	close(repo.release)
	if err := <-done; err != nil {
		t.Fatalf("first submit must still succeed: %v", err)
	}
	if len(repo.patients) != 1 {
		t.Errorf("expected exactly one patient, got %d", len(repo.patients))
	}
}

func TestDelete(t *testing.T) {
	repo := newMockRepo()
	svc := newService(repo)

	created, err := svc.Save(context.Background(), validPatient())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.patients) != 0 {
		t.Errorf("expected empty store after delete, got %d", len(repo.patients))
	}

	if err := svc.Delete(context.Background(), ""); err == nil {
		t.Error("expected error for missing id")
	}
}
