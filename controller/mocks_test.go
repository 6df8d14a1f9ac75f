package controller

import (
	"context"
	"sync"

	"github.com/prescrito/prescrito-api/domain"
)

// mockStore is an in-memory PersistenceStore with switchable write failure.
type mockStore struct {
	mu            sync.Mutex
	profile       *domain.ProfileData
	prescriptions []domain.Prescription
	folders       []domain.Folder
	landingSeen   bool
	failWrites    bool
	writeCalls    int
}

func (m *mockStore) LoadProfile() (*domain.ProfileData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profile, nil
}

func (m *mockStore) SaveProfile(profile domain.ProfileData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeCalls++
	if m.failWrites {
		return &domain.PersistenceError{Key: "profileData"}
	}
	m.profile = &profile
	return nil
}

func (m *mockStore) LoadPrescriptions() ([]domain.Prescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Prescription(nil), m.prescriptions...), nil
}

func (m *mockStore) SavePrescriptions(prescriptions []domain.Prescription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeCalls++
	if m.failWrites {
		return &domain.PersistenceError{Key: "savedPrescriptions"}
	}
	m.prescriptions = append([]domain.Prescription(nil), prescriptions...)
	return nil
}

func (m *mockStore) LoadFolders() ([]domain.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Folder(nil), m.folders...), nil
}

func (m *mockStore) SaveFolders(folders []domain.Folder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeCalls++
	if m.failWrites {
		return &domain.PersistenceError{Key: "folders"}
	}
	m.folders = append([]domain.Folder(nil), folders...)
	return nil
}

func (m *mockStore) HasSeenLanding() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.landingSeen
}

func (m *mockStore) MarkLandingSeen() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeCalls++
	if m.failWrites {
		return &domain.PersistenceError{Key: "hasSeenLanding"}
	}
	m.landingSeen = true
	return nil
}

// mockGenerator returns canned results, optionally blocking until released
// so tests can interleave operations.
type mockGenerator struct {
	mu           sync.Mutex
	drugInfo     domain.DrugInfo
	draft        domain.Prescription
	interactions []domain.ResultadoInteracao
	err          error
	calls        int
	block        chan struct{}
}

func (m *mockGenerator) waitIfBlocked() {
	m.mu.Lock()
	block := m.block
	m.mu.Unlock()
	if block != nil {
		<-block
	}
}

func (m *mockGenerator) countCall() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

func (m *mockGenerator) FetchDrugInfo(ctx context.Context, name string) (domain.DrugInfo, error) {
	m.countCall()
	m.waitIfBlocked()
	return m.drugInfo, m.err
}

func (m *mockGenerator) FetchInteractions(ctx context.Context, names []string) ([]domain.ResultadoInteracao, error) {
	m.countCall()
	m.waitIfBlocked()
	return m.interactions, m.err
}

func (m *mockGenerator) GeneratePrescriptionTemplate(ctx context.Context, diagnosis string, tipo domain.TipoReceita) (domain.Prescription, error) {
	m.countCall()
	m.waitIfBlocked()
	draft := m.draft
	draft.Tipo = tipo
	return draft, m.err
}

func (m *mockGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockSuggester echoes a fixed list.
type mockSuggester struct {
	results []string
}

func (m *mockSuggester) Suggest(query string) []string {
	return m.results
}

// mockRegistry returns a canned profile or error.
type mockRegistry struct {
	profile domain.ProfileData
	err     error
}

func (m *mockRegistry) FetchEstablishment(ctx context.Context, cnes string) (domain.ProfileData, error) {
	return m.profile, m.err
}
