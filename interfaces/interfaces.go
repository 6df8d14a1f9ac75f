// Package interfaces defines the core abstractions of the prescription
// application to improve testability and separation of concerns.
package interfaces

import (
	"context"

	"github.com/prescrito/prescrito-api/domain"
)

// Generator is the contract for the schema-constrained generative backend.
// Every operation returns a parsed, schema-conformant object or fails with
// a *domain.GenerationError.
type Generator interface {
	// FetchDrugInfo looks up structured information about one drug.
	FetchDrugInfo(ctx context.Context, name string) (domain.DrugInfo, error)

	// FetchInteractions analyses pairwise interactions between the given
	// drugs, returning one result entry per queried drug.
	FetchInteractions(ctx context.Context, names []string) ([]domain.ResultadoInteracao, error)

	// GeneratePrescriptionTemplate drafts a prescription skeleton for a
	// diagnosis, with a placeholder patient name and locally generated
	// medication ids.
	GeneratePrescriptionTemplate(ctx context.Context, diagnosis string, tipo domain.TipoReceita) (domain.Prescription, error)
}

// PersistenceStore is the contract for the key-scoped local persistence
// slots. Loads fail soft (corrupt data resets to the default); saves
// return a *domain.PersistenceError that callers surface without rolling
// back in-memory state.
type PersistenceStore interface {
	LoadProfile() (*domain.ProfileData, error)
	SaveProfile(profile domain.ProfileData) error

	LoadPrescriptions() ([]domain.Prescription, error)
	SavePrescriptions(prescriptions []domain.Prescription) error

	LoadFolders() ([]domain.Folder, error)
	SaveFolders(folders []domain.Folder) error

	HasSeenLanding() bool
	MarkLandingSeen() error
}

// Suggester is the contract for the local drug-name autocomplete index.
type Suggester interface {
	// Suggest returns up to ten drug names matching the query,
	// prefix matches first.
	Suggest(query string) []string
}

// RegistryClient is the contract for the external facility registry
// collaborator. Failures are *domain.LookupError values distinguishing
// not-found from unreachable.
type RegistryClient interface {
	// FetchEstablishment resolves a 7-digit facility code to profile
	// fields, including human-readable region and municipality names.
	FetchEstablishment(ctx context.Context, cnes string) (domain.ProfileData, error)
}

// Scheduler is the contract for background job scheduling.
type Scheduler interface {
	Start() error
	Stop()
}
