package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prescrito/prescrito-api/config"
	"github.com/prescrito/prescrito-api/controller"
	"github.com/prescrito/prescrito-api/domain"
	"github.com/prescrito/prescrito-api/gemini"
	"github.com/prescrito/prescrito-api/health"
	"github.com/prescrito/prescrito-api/logging"
	"github.com/prescrito/prescrito-api/registry"
	"github.com/prescrito/prescrito-api/server"
	"github.com/prescrito/prescrito-api/store"
	"github.com/prescrito/prescrito-api/suggestions"
)

// fakeGeminiBackend mimics the generateContent endpoint, choosing the
// canned payload by the requested schema shape.
func fakeGeminiBackend(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("backend got invalid request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		prompt := ""
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			prompt = req.Contents[0].Parts[0].Text
		}

		var payload string
		switch {
		case strings.Contains(prompt, "interações medicamentosas"):
			payload = `[
				{"medicamentoFonte": "Varfarina", "encontrado": true, "interacoes": [
					{"nomeMedicamento": "AAS", "classificacao": "X", "resumo": "risco de sangramento", "textoInteracao": "t"}
				]},
				{"medicamentoFonte": "AAS", "encontrado": true, "interacoes": [
					{"nomeMedicamento": "Varfarina", "classificacao": "X", "resumo": "risco de sangramento", "textoInteracao": "t"}
				]}
			]`
		case strings.Contains(prompt, "diagnóstico"):
			payload = `{
				"nomePaciente": "",
				"diagnostico": "Sinusite bacteriana aguda",
				"observacoes": "Reavaliar em 7 dias",
				"medicamentos": [
					{"medicamento": "Amoxicilina", "apresentacao": "500mg", "quantidade": "21 cápsulas", "posologia": "1 cápsula de 8/8h por 7 dias"}
				]
			}`
		default:
			payload = `{
				"nome_comercial": ["Tylenol"],
				"nome_generico": ["Paracetamol"],
				"principio_ativo": ["Paracetamol"],
				"indicacoes_e_uso": ["Dor e febre"],
				"dosagem_e_administracao": ["500mg a cada 6 horas"],
				"avisos": ["Hepatotoxicidade em doses altas"]
			}`
		}

		envelope := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": payload}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(envelope)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newIntegrationServer(t *testing.T) *server.Server {
	t.Helper()

	if err := logging.InitLogger(t.TempDir(), "error", 1); err != nil {
		t.Fatalf("InitLogger failed: %v", err)
	}

	backend := fakeGeminiBackend(t)

	cfg := &config.Config{
		Port:           "8000",
		Address:        "127.0.0.1",
		Env:            "test",
		MaxRequestBody: 1048576,
		MaxHeaderSize:  1048576,
	}

	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}

	ids := &domain.SequenceGenerator{}
	generator := gemini.NewClient(backend.URL, "test-key", "gemini-2.5-flash", ids)
	registryClient := registry.NewClient(backend.URL, backend.URL)

	ctrl, err := controller.New(st, generator, suggestions.NewDefaultIndex(), registryClient, ids)
	if err != nil {
		t.Fatalf("controller.New failed: %v", err)
	}

	checker := health.NewChecker(ctrl, generator.BreakerState)
	return server.NewServer(cfg, ctrl, checker)
}

func do(t *testing.T, srv *server.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestDrugSearchFlow(t *testing.T) {
	srv := newIntegrationServer(t)

	rec := do(t, srv, http.MethodGet, "/suggestions/dipi", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("suggestions status = %d", rec.Code)
	}
	var names []string
	json.Unmarshal(rec.Body.Bytes(), &names)
	if len(names) == 0 {
		t.Fatal("expected suggestions for 'dipi'")
	}

	rec = do(t, srv, http.MethodGet, "/drug/Paracetamol", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("drug status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"recognized":true`) {
		t.Errorf("drug response should flag recognized: %s", rec.Body.String())
	}
}

func TestInteractionFlow(t *testing.T) {
	srv := newIntegrationServer(t)

	rec := do(t, srv, http.MethodPost, "/interactions", `{"medicamentos": ["Varfarina", "AAS"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("interactions status = %d, body %s", rec.Code, rec.Body.String())
	}

	var results []domain.ResultadoInteracao
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want one per queried drug", len(results))
	}
	if results[0].Interacoes[0].Classificacao != domain.ClassificacaoX {
		t.Errorf("classification = %q, want X", results[0].Interacoes[0].Classificacao)
	}
}

func TestPrescriptionGenerateSaveShareFlow(t *testing.T) {
	srv := newIntegrationServer(t)

	// Generate a draft.
	rec := do(t, srv, http.MethodPost, "/prescriptions/generate",
		`{"diagnostico": "sinusite", "tipo": "controle_especial"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate status = %d, body %s", rec.Code, rec.Body.String())
	}
	var draft domain.Prescription
	if err := json.Unmarshal(rec.Body.Bytes(), &draft); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if draft.ID != "" {
		t.Error("generated draft must not carry an id")
	}
	if draft.Tipo != domain.ReceitaControleEspecial {
		t.Errorf("Tipo = %q, want the requested kind", draft.Tipo)
	}
	if len(draft.Medicamentos) == 0 || draft.Medicamentos[0].ID == "" {
		t.Fatal("draft medications must carry locally generated ids")
	}

	// The draft is not in the saved list.
	rec = do(t, srv, http.MethodGet, "/prescriptions", "")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("saved list should be empty, got %s", rec.Body.String())
	}

	// Save it.
	draft.NomePaciente = "Maria Silva"
	body, _ := json.Marshal(draft)
	rec = do(t, srv, http.MethodPost, "/prescriptions", string(body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d, body %s", rec.Code, rec.Body.String())
	}
	var saved domain.Prescription
	json.Unmarshal(rec.Body.Bytes(), &saved)
	if saved.ID == "" {
		t.Fatal("saving must assign an id")
	}

	// Share it.
	rec = do(t, srv, http.MethodGet, "/prescriptions/"+saved.ID+"/share", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("share status = %d", rec.Code)
	}
	text := rec.Body.String()
	if !strings.Contains(text, "*RECEITUÁRIO DE CONTROLE ESPECIAL*") {
		t.Errorf("share text missing header:\n%s", text)
	}
	if !strings.Contains(text, "1. Amoxicilina (500mg) ----- 21 cápsulas") {
		t.Errorf("share text missing medication line:\n%s", text)
	}
}

func TestStateSurvivesRestart(t *testing.T) {
	if err := logging.InitLogger(t.TempDir(), "error", 1); err != nil {
		t.Fatalf("InitLogger failed: %v", err)
	}

	dataDir := t.TempDir()
	ids := &domain.SequenceGenerator{}

	boot := func() *controller.Controller {
		st, err := store.Open(dataDir)
		if err != nil {
			t.Fatalf("store.Open failed: %v", err)
		}
		ctrl, err := controller.New(st, nil, suggestions.NewDefaultIndex(), nil, ids)
		if err != nil {
			t.Fatalf("controller.New failed: %v", err)
		}
		return ctrl
	}

	first := boot()
	saved, err := first.SavePrescription(domain.Prescription{Tipo: domain.ReceitaSimples, NomePaciente: "Maria"})
	if err != nil {
		t.Fatalf("SavePrescription failed: %v", err)
	}
	if _, err := first.CreateFolder("Pediatria"); err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}

	// A fresh controller over the same directory sees the same state.
	second := boot()
	snap := second.Snapshot()
	if len(snap.Prescriptions) != 1 || snap.Prescriptions[0].ID != saved.ID {
		t.Errorf("Prescriptions = %+v, want the saved one", snap.Prescriptions)
	}
	if len(snap.Folders) != 1 || snap.Folders[0].Name != "Pediatria" {
		t.Errorf("Folders = %+v", snap.Folders)
	}
}
