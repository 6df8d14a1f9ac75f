// Package controller owns the single in-memory source of truth of the
// application and orchestrates user actions against the generative client,
// the suggestion index, the registry collaborator and the persistence
// store. Mutation happens only through named operations, never direct
// field writes, so the optimistic-persistence invariant stays auditable.
package controller

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/prescrito/prescrito-api/domain"
	"github.com/prescrito/prescrito-api/interfaces"
	"github.com/prescrito/prescrito-api/logging"
)

// Operation names the mutually exclusive in-flight generative operations.
type Operation string

const (
	OperationNone         Operation = ""
	OperationDrug         Operation = "drug"
	OperationPrescription Operation = "prescription"
	OperationInteraction  Operation = "interaction"
)

// User-facing validation and persistence messages.
const (
	msgEmptyDrugName      = "Por favor, insira o nome de um medicamento."
	msgEmptyDiagnosis     = "Por favor, insira um diagnóstico."
	msgInvalidTipo        = "Tipo de receituário inválido."
	msgTooFewDrugs        = "Por favor, insira pelo menos dois medicamentos para verificar interações."
	msgEmptyFolderName    = "Por favor, insira um nome para a pasta."
	msgPrescriptionLost   = "Prescrição não encontrada."
	msgFolderLost         = "Pasta não encontrada."
	msgProfileSaveFailed  = "Não foi possível salvar as informações do perfil."
	msgSaveFailed         = "Não foi possível salvar a prescrição. O armazenamento local pode estar cheio ou desabilitado."
	msgDeleteFailed       = "Não foi possível deletar a prescrição."
	msgFolderSaveFailed   = "Não foi possível salvar a pasta."
	msgFolderDeleteFailed = "Não foi possível deletar a pasta."
)

// State is the in-memory state tree. Snapshot returns copies; the live
// tree is mutated only by Controller operations.
type State struct {
	Profile            *domain.ProfileData
	Prescriptions      []domain.Prescription
	Folders            []domain.Folder
	DrugInfo           *domain.DrugInfo
	Draft              *domain.Prescription
	InteractionResults []domain.ResultadoInteracao
	Loading            Operation
	Message            string
	HasSeenLanding     bool
}

// Controller orchestrates all user actions over a mutex-guarded state.
type Controller struct {
	mu        sync.Mutex
	store     interfaces.PersistenceStore
	generator interfaces.Generator
	suggester interfaces.Suggester
	registry  interfaces.RegistryClient
	ids       domain.IDGenerator

	state   State
	opToken uint64
}

// New builds a controller and performs the read-through boot load from the
// persistence store.
func New(store interfaces.PersistenceStore, generator interfaces.Generator,
	suggester interfaces.Suggester, registry interfaces.RegistryClient,
	ids domain.IDGenerator) (*Controller, error) {

	profile, err := store.LoadProfile()
	if err != nil {
		return nil, err
	}
	prescriptions, err := store.LoadPrescriptions()
	if err != nil {
		return nil, err
	}
	folders, err := store.LoadFolders()
	if err != nil {
		return nil, err
	}

	return &Controller{
		store:     store,
		generator: generator,
		suggester: suggester,
		registry:  registry,
		ids:       ids,
		state: State{
			Profile:        profile,
			Prescriptions:  prescriptions,
			Folders:        folders,
			HasSeenLanding: store.HasSeenLanding(),
		},
	}, nil
}

// Snapshot returns a copy of the current state. Slices are copied so the
// caller never holds live references into the tree.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.state
	snap.Prescriptions = append([]domain.Prescription(nil), c.state.Prescriptions...)
	snap.Folders = append([]domain.Folder(nil), c.state.Folders...)
	snap.InteractionResults = append([]domain.ResultadoInteracao(nil), c.state.InteractionResults...)
	if c.state.Profile != nil {
		profile := *c.state.Profile
		snap.Profile = &profile
	}
	if c.state.DrugInfo != nil {
		info := *c.state.DrugInfo
		snap.DrugInfo = &info
	}
	if c.state.Draft != nil {
		draft := *c.state.Draft
		draft.Medicamentos = append([]domain.Medicamento(nil), c.state.Draft.Medicamentos...)
		snap.Draft = &draft
	}
	return snap
}

// rejectInput records a user-facing validation message without touching
// results, loading or persisted state, and returns the typed error.
func (c *Controller) rejectInput(message string) error {
	err := domain.NewValidationError(message)
	c.mu.Lock()
	c.state.Message = message
	c.mu.Unlock()
	return err
}

// beginOperation starts a named operation: clears any shown result and
// error from the others, marks loading and issues a freshness token.
func (c *Controller) beginOperation(op Operation) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.opToken++
	c.state.Loading = op
	c.state.Message = ""
	c.state.DrugInfo = nil
	c.state.Draft = nil
	c.state.InteractionResults = nil
	return c.opToken
}

// finishOperation applies the outcome of an operation unless a newer one
// started meanwhile. A stale outcome is dropped: the operation was
// abandoned, not cancelled, and its late response must not clobber the
// newer operation's state.
func (c *Controller) finishOperation(token uint64, op Operation, apply func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.opToken {
		logging.Debug("Ignoring stale operation result", "operation", string(op))
		return
	}
	c.state.Loading = OperationNone
	apply()
}

// SearchDrug looks up structured drug information via the generative
// client. The result is stored in state and returned.
func (c *Controller) SearchDrug(ctx context.Context, name string) (*domain.DrugInfo, error) {
	cleaned := domain.CleanDrugNames([]string{name})
	if len(cleaned) == 0 {
		return nil, c.rejectInput(msgEmptyDrugName)
	}

	token := c.beginOperation(OperationDrug)
	info, err := c.generator.FetchDrugInfo(ctx, cleaned[0])
	if err != nil {
		c.finishOperation(token, OperationDrug, func() {
			c.state.Message = err.Error()
		})
		return nil, err
	}

	c.finishOperation(token, OperationDrug, func() {
		c.state.DrugInfo = &info
	})
	return &info, nil
}

// GeneratePrescription drafts a prescription template for a diagnosis.
// The draft carries no identifier until saved.
func (c *Controller) GeneratePrescription(ctx context.Context, diagnosis string, tipo domain.TipoReceita) (*domain.Prescription, error) {
	if strings.TrimSpace(diagnosis) == "" {
		return nil, c.rejectInput(msgEmptyDiagnosis)
	}
	if !tipo.Valid() {
		return nil, c.rejectInput(msgInvalidTipo)
	}

	token := c.beginOperation(OperationPrescription)
	draft, err := c.generator.GeneratePrescriptionTemplate(ctx, diagnosis, tipo)
	if err != nil {
		c.finishOperation(token, OperationPrescription, func() {
			c.state.Message = err.Error()
		})
		return nil, err
	}

	c.finishOperation(token, OperationPrescription, func() {
		c.state.Draft = &draft
	})
	return &draft, nil
}

// CheckInteractions analyses pairwise interactions between the given
// drugs. At least two non-blank names are required.
func (c *Controller) CheckInteractions(ctx context.Context, names []string) ([]domain.ResultadoInteracao, error) {
	cleaned := domain.CleanDrugNames(names)
	if len(cleaned) < 2 {
		return nil, c.rejectInput(msgTooFewDrugs)
	}

	token := c.beginOperation(OperationInteraction)
	results, err := c.generator.FetchInteractions(ctx, cleaned)
	if err != nil {
		c.finishOperation(token, OperationInteraction, func() {
			c.state.Message = err.Error()
		})
		return nil, err
	}

	c.finishOperation(token, OperationInteraction, func() {
		c.state.InteractionResults = results
	})
	return results, nil
}

// Suggest returns autocomplete candidates for a partial drug name.
// Queries below the minimum length yield an empty list without error.
func (c *Controller) Suggest(query string) []string {
	return c.suggester.Suggest(query)
}

// LookupCnes resolves a facility registry code to profile fields for
// auto-filling the setup form. The result is not applied to the profile;
// only an explicit SaveProfile mutates it.
func (c *Controller) LookupCnes(ctx context.Context, code string) (domain.ProfileData, error) {
	profile, err := c.registry.FetchEstablishment(ctx, code)
	if err != nil {
		c.mu.Lock()
		c.state.Message = err.Error()
		c.mu.Unlock()
		return domain.ProfileData{}, err
	}
	return profile, nil
}

// SaveProfile replaces the stored profile. The in-memory profile is
// updated even when the write fails.
func (c *Controller) SaveProfile(profile domain.ProfileData) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Profile = &profile
	if err := c.store.SaveProfile(profile); err != nil {
		c.state.Message = msgProfileSaveFailed
		return err
	}
	c.state.Message = ""
	return nil
}

// SavePrescription assigns an identifier to a draft and appends it to the
// persisted list. The full list is rewritten; on write failure the
// prescription stays visible in memory for the rest of the session and a
// distinct message is surfaced.
func (c *Controller) SavePrescription(draft domain.Prescription) (domain.Prescription, error) {
	saved := domain.NormalizePrescription(c.ids, draft)
	saved.ID = c.ids.NewID()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Prescriptions = append(c.state.Prescriptions, saved)
	c.state.Draft = nil

	if err := c.store.SavePrescriptions(c.state.Prescriptions); err != nil {
		c.state.Message = msgSaveFailed
		return saved, err
	}
	c.state.Message = ""
	return saved, nil
}

// DeletePrescription removes a saved prescription by identifier.
func (c *Controller) DeletePrescription(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := make([]domain.Prescription, 0, len(c.state.Prescriptions))
	found := false
	for _, p := range c.state.Prescriptions {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		c.state.Message = msgPrescriptionLost
		return domain.NewValidationError(msgPrescriptionLost)
	}

	c.state.Prescriptions = kept
	if err := c.store.SavePrescriptions(c.state.Prescriptions); err != nil {
		c.state.Message = msgDeleteFailed
		return err
	}
	c.state.Message = ""
	return nil
}

// CreateFolder adds a named folder.
func (c *Controller) CreateFolder(name string) (domain.Folder, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return domain.Folder{}, c.rejectInput(msgEmptyFolderName)
	}

	folder := domain.Folder{ID: c.ids.NewID(), Name: trimmed}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Folders = append(c.state.Folders, folder)
	if err := c.store.SaveFolders(c.state.Folders); err != nil {
		c.state.Message = msgFolderSaveFailed
		return folder, err
	}
	c.state.Message = ""
	return folder, nil
}

// DeleteFolder removes a folder and clears the folder reference on every
// prescription filed under it. The prescriptions themselves survive. The
// cascade is one state update and one pass of persisted writes, atomic
// from the caller's perspective.
func (c *Controller) DeleteFolder(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := make([]domain.Folder, 0, len(c.state.Folders))
	found := false
	for _, f := range c.state.Folders {
		if f.ID == id {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		c.state.Message = msgFolderLost
		return domain.NewValidationError(msgFolderLost)
	}
	c.state.Folders = kept

	for i := range c.state.Prescriptions {
		if c.state.Prescriptions[i].FolderID == id {
			c.state.Prescriptions[i].FolderID = ""
		}
	}

	if err := c.store.SaveFolders(c.state.Folders); err != nil {
		c.state.Message = msgFolderDeleteFailed
		return err
	}
	if err := c.store.SavePrescriptions(c.state.Prescriptions); err != nil {
		c.state.Message = msgFolderDeleteFailed
		return err
	}
	c.state.Message = ""
	return nil
}

// MovePrescriptionToFolder files a prescription under a folder, or unfiles
// it when folderID is empty.
func (c *Controller) MovePrescriptionToFolder(prescriptionID, folderID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if folderID != "" {
		exists := false
		for _, f := range c.state.Folders {
			if f.ID == folderID {
				exists = true
				break
			}
		}
		if !exists {
			c.state.Message = msgFolderLost
			return domain.NewValidationError(msgFolderLost)
		}
	}

	found := false
	for i := range c.state.Prescriptions {
		if c.state.Prescriptions[i].ID == prescriptionID {
			c.state.Prescriptions[i].FolderID = folderID
			found = true
			break
		}
	}
	if !found {
		c.state.Message = msgPrescriptionLost
		return domain.NewValidationError(msgPrescriptionLost)
	}

	if err := c.store.SavePrescriptions(c.state.Prescriptions); err != nil {
		c.state.Message = msgSaveFailed
		return err
	}
	c.state.Message = ""
	return nil
}

// SharePrescription formats a saved prescription as plain text for
// share-sheet handoff.
func (c *Controller) SharePrescription(id string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.state.Prescriptions {
		if p.ID == id {
			return domain.ShareText(p), nil
		}
	}
	return "", domain.NewValidationError(msgPrescriptionLost)
}

// HasSeenLanding reports the one-time onboarding flag.
func (c *Controller) HasSeenLanding() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.HasSeenLanding
}

// MarkLandingSeen sets the one-time onboarding flag. The in-memory flag
// flips even when the write fails.
func (c *Controller) MarkLandingSeen() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.HasSeenLanding = true
	if err := c.store.MarkLandingSeen(); err != nil {
		var perr *domain.PersistenceError
		if errors.As(err, &perr) {
			logging.Warn("Failed to persist landing flag", "error", err)
		}
		return err
	}
	return nil
}
