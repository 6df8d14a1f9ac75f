package domain

import (
	"fmt"
	"sort"
	"strings"
)

// NormalizeMedication trims the text fields of a raw medication and assigns
// an identifier when the backend did not produce one (it never does: ids
// are UI-only correlation keys outside the response schema). Empty fields
// stay empty strings, never nulls, so the UI can render editable blanks.
func NormalizeMedication(ids IDGenerator, raw Medicamento) Medicamento {
	med := Medicamento{
		ID:           strings.TrimSpace(raw.ID),
		Medicamento:  strings.TrimSpace(raw.Medicamento),
		Apresentacao: strings.TrimSpace(raw.Apresentacao),
		Quantidade:   strings.TrimSpace(raw.Quantidade),
		Posologia:    strings.TrimSpace(raw.Posologia),
	}
	if med.ID == "" {
		med.ID = ids.NewID()
	}
	return med
}

// NormalizePrescription applies NormalizeMedication to every line item and
// trims the prescription's own text fields. The result shares no slices
// with the input.
func NormalizePrescription(ids IDGenerator, raw Prescription) Prescription {
	p := Prescription{
		ID:           raw.ID,
		Tipo:         raw.Tipo,
		NomePaciente: strings.TrimSpace(raw.NomePaciente),
		Diagnostico:  strings.TrimSpace(raw.Diagnostico),
		Observacoes:  strings.TrimSpace(raw.Observacoes),
		FolderID:     raw.FolderID,
		Medicamentos: make([]Medicamento, 0, len(raw.Medicamentos)),
	}
	for _, med := range raw.Medicamentos {
		p.Medicamentos = append(p.Medicamentos, NormalizeMedication(ids, med))
	}
	return p
}

// IsDrugRecognized reports whether the backend recognized the queried drug.
// The backend signals "not found" by filling every array with a single
// NaoEncontrado sentinel; a partial sentinel still counts as recognized.
func IsDrugRecognized(info DrugInfo) bool {
	fields := [][]string{
		info.NomeComercial,
		info.NomeGenerico,
		info.PrincipioAtivo,
		info.IndicacoesEUso,
		info.DosagemEAdministracao,
		info.Avisos,
	}
	for _, field := range fields {
		if len(field) != 1 || field[0] != NaoEncontrado {
			return true
		}
	}
	return false
}

// severityRanks orders classifications by clinical concern: X (avoid
// combination) first, down to A (no known interaction), with N/A last.
var severityRanks = map[Classificacao]int{
	ClassificacaoX:  0,
	ClassificacaoD:  1,
	ClassificacaoC:  2,
	ClassificacaoB:  3,
	ClassificacaoA:  4,
	ClassificacaoNA: 5,
}

// SeverityRank maps a classification to its display sort order. Unknown
// codes sort after N/A.
func SeverityRank(c Classificacao) int {
	if rank, ok := severityRanks[c]; ok {
		return rank
	}
	return len(severityRanks)
}

// SortInteractions orders interaction findings by descending concern,
// ties broken by target drug name for a deterministic display.
func SortInteractions(interacoes []InfoInteracao) {
	sort.SliceStable(interacoes, func(i, j int) bool {
		ri, rj := SeverityRank(interacoes[i].Classificacao), SeverityRank(interacoes[j].Classificacao)
		if ri != rj {
			return ri < rj
		}
		return interacoes[i].NomeMedicamento < interacoes[j].NomeMedicamento
	})
}

// CleanDrugNames trims the queried names and drops blank entries,
// preserving order.
func CleanDrugNames(names []string) []string {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

// CheckInteractionResults verifies the pairwise-completeness property of an
// interaction response: one result per queried drug, no self-interactions,
// and an empty interaction list whenever the source drug was not found.
// The backend's array lengths are not schema-enforced, so a violation is a
// soft failure: the returned problems are meant to be logged, not to reject
// the response.
func CheckInteractionResults(queried []string, results []ResultadoInteracao) []string {
	var problems []string

	if len(results) != len(queried) {
		problems = append(problems, fmt.Sprintf(
			"expected %d results, one per queried drug, got %d", len(queried), len(results)))
	}

	for _, res := range results {
		source := strings.ToLower(strings.TrimSpace(res.MedicamentoFonte))
		if !res.Encontrado {
			if len(res.Interacoes) > 0 {
				problems = append(problems, fmt.Sprintf(
					"drug %q not found but carries %d interactions", res.MedicamentoFonte, len(res.Interacoes)))
			}
			if res.MensagemErro == "" {
				problems = append(problems, fmt.Sprintf(
					"drug %q not found but has no error message", res.MedicamentoFonte))
			}
			continue
		}
		for _, inter := range res.Interacoes {
			if strings.ToLower(strings.TrimSpace(inter.NomeMedicamento)) == source {
				problems = append(problems, fmt.Sprintf(
					"drug %q lists an interaction with itself", res.MedicamentoFonte))
			}
		}
	}

	return problems
}
