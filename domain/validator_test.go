package domain

import (
	"strings"
	"testing"
)

func TestNormalizeMedication(t *testing.T) {
	ids := &SequenceGenerator{}

	tests := []struct {
		name     string
		raw      Medicamento
		wantID   string
		wantName string
	}{
		{
			name:     "trims fields and keeps existing id",
			raw:      Medicamento{ID: " med-1 ", Medicamento: "  Amoxicilina  ", Apresentacao: " 500mg "},
			wantID:   "med-1",
			wantName: "Amoxicilina",
		},
		{
			name:     "assigns id when blank",
			raw:      Medicamento{Medicamento: "Dipirona"},
			wantID:   "1",
			wantName: "Dipirona",
		},
		{
			name:     "whitespace-only id counts as blank",
			raw:      Medicamento{ID: "   ", Medicamento: "Ibuprofeno"},
			wantID:   "2",
			wantName: "Ibuprofeno",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			med := NormalizeMedication(ids, tt.raw)
			if med.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", med.ID, tt.wantID)
			}
			if med.Medicamento != tt.wantName {
				t.Errorf("Medicamento = %q, want %q", med.Medicamento, tt.wantName)
			}
		})
	}
}

func TestNormalizePrescription(t *testing.T) {
	ids := &SequenceGenerator{}

	raw := Prescription{
		NomePaciente: "  Maria Silva  ",
		Diagnostico:  " Sinusite aguda ",
		Observacoes:  "  Retornar em 7 dias ",
		Medicamentos: []Medicamento{
			{Medicamento: " Amoxicilina "},
			{ID: "keep", Medicamento: "Dipirona"},
		},
	}

	p := NormalizePrescription(ids, raw)

	if p.NomePaciente != "Maria Silva" {
		t.Errorf("NomePaciente = %q, want trimmed", p.NomePaciente)
	}
	if p.Diagnostico != "Sinusite aguda" {
		t.Errorf("Diagnostico = %q, want trimmed", p.Diagnostico)
	}
	if len(p.Medicamentos) != 2 {
		t.Fatalf("expected 2 medications, got %d", len(p.Medicamentos))
	}
	if p.Medicamentos[0].ID == "" {
		t.Error("first medication should have an assigned id")
	}
	if p.Medicamentos[1].ID != "keep" {
		t.Errorf("second medication id = %q, want %q", p.Medicamentos[1].ID, "keep")
	}

	// The normalized copy must not alias the input slice.
	p.Medicamentos[1].Medicamento = "changed"
	if raw.Medicamentos[1].Medicamento == "changed" {
		t.Error("normalized prescription shares slice memory with input")
	}
}

func TestIsDrugRecognized(t *testing.T) {
	sentinel := []string{NaoEncontrado}

	tests := []struct {
		name string
		info DrugInfo
		want bool
	}{
		{
			name: "all fields sentinel means not recognized",
			info: DrugInfo{
				NomeComercial:         sentinel,
				NomeGenerico:          sentinel,
				PrincipioAtivo:        sentinel,
				IndicacoesEUso:        sentinel,
				DosagemEAdministracao: sentinel,
				Avisos:                sentinel,
			},
			want: false,
		},
		{
			name: "single real field means recognized",
			info: DrugInfo{
				NomeComercial:         []string{"Tylenol"},
				NomeGenerico:          sentinel,
				PrincipioAtivo:        sentinel,
				IndicacoesEUso:        sentinel,
				DosagemEAdministracao: sentinel,
				Avisos:                sentinel,
			},
			want: true,
		},
		{
			name: "sentinel among other values still counts as recognized",
			info: DrugInfo{
				NomeComercial:         []string{NaoEncontrado, "Tylenol"},
				NomeGenerico:          sentinel,
				PrincipioAtivo:        sentinel,
				IndicacoesEUso:        sentinel,
				DosagemEAdministracao: sentinel,
				Avisos:                sentinel,
			},
			want: true,
		},
		{
			name: "empty arrays count as recognized",
			info: DrugInfo{},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDrugRecognized(tt.info); got != tt.want {
				t.Errorf("IsDrugRecognized() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeverityRank(t *testing.T) {
	// Ordering from highest clinical concern to lowest.
	order := []Classificacao{ClassificacaoX, ClassificacaoD, ClassificacaoC, ClassificacaoB, ClassificacaoA, ClassificacaoNA}

	for i := 1; i < len(order); i++ {
		if SeverityRank(order[i-1]) >= SeverityRank(order[i]) {
			t.Errorf("expected %s to rank before %s", order[i-1], order[i])
		}
	}

	if SeverityRank("Z") <= SeverityRank(ClassificacaoNA) {
		t.Error("unknown classification should sort after N/A")
	}
}

func TestSortInteractions(t *testing.T) {
	interacoes := []InfoInteracao{
		{NomeMedicamento: "Dipirona", Classificacao: ClassificacaoA},
		{NomeMedicamento: "Varfarina", Classificacao: ClassificacaoX},
		{NomeMedicamento: "Omeprazol", Classificacao: ClassificacaoC},
		{NomeMedicamento: "Amiodarona", Classificacao: ClassificacaoX},
	}

	SortInteractions(interacoes)

	wantOrder := []string{"Amiodarona", "Varfarina", "Omeprazol", "Dipirona"}
	for i, want := range wantOrder {
		if interacoes[i].NomeMedicamento != want {
			t.Errorf("position %d = %q, want %q", i, interacoes[i].NomeMedicamento, want)
		}
	}
}

func TestCleanDrugNames(t *testing.T) {
	got := CleanDrugNames([]string{"  Ibuprofeno ", "", "   ", "Dipirona"})
	want := []string{"Ibuprofeno", "Dipirona"}

	if len(got) != len(want) {
		t.Fatalf("got %d names, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCheckInteractionResults(t *testing.T) {
	tests := []struct {
		name         string
		queried      []string
		results      []ResultadoInteracao
		wantProblems int
		wantContains string
	}{
		{
			name:    "valid pairwise response",
			queried: []string{"A", "B"},
			results: []ResultadoInteracao{
				{MedicamentoFonte: "A", Encontrado: true, Interacoes: []InfoInteracao{{NomeMedicamento: "B", Classificacao: ClassificacaoC}}},
				{MedicamentoFonte: "B", Encontrado: true, Interacoes: []InfoInteracao{{NomeMedicamento: "A", Classificacao: ClassificacaoC}}},
			},
			wantProblems: 0,
		},
		{
			name:    "missing result row",
			queried: []string{"A", "B"},
			results: []ResultadoInteracao{
				{MedicamentoFonte: "A", Encontrado: true},
			},
			wantProblems: 1,
			wantContains: "expected 2 results",
		},
		{
			name:    "not found with interactions and no message",
			queried: []string{"A"},
			results: []ResultadoInteracao{
				{MedicamentoFonte: "A", Encontrado: false, Interacoes: []InfoInteracao{{NomeMedicamento: "B"}}},
			},
			wantProblems: 2,
			wantContains: "not found",
		},
		{
			name:    "self interaction",
			queried: []string{"Dipirona"},
			results: []ResultadoInteracao{
				{MedicamentoFonte: "Dipirona", Encontrado: true, Interacoes: []InfoInteracao{{NomeMedicamento: " dipirona "}}},
			},
			wantProblems: 1,
			wantContains: "itself",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := CheckInteractionResults(tt.queried, tt.results)
			if len(problems) != tt.wantProblems {
				t.Fatalf("got %d problems %v, want %d", len(problems), problems, tt.wantProblems)
			}
			if tt.wantContains != "" {
				found := false
				for _, p := range problems {
					if strings.Contains(p, tt.wantContains) {
						found = true
					}
				}
				if !found {
					t.Errorf("no problem contains %q: %v", tt.wantContains, problems)
				}
			}
		})
	}
}
