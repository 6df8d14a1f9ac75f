package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var blankLineRuns = regexp.MustCompile(`\n{3,}`)

// ShareText formats a prescription as plain text for share-sheet or
// messaging handoff: a header line for the receituário kind, the patient
// line, numbered medication lines and the trailing observações when
// present.
func ShareText(p Prescription) string {
	header := "*RECEITUÁRIO SIMPLES*"
	if p.Tipo == ReceitaControleEspecial {
		header = "*RECEITUÁRIO DE CONTROLE ESPECIAL*"
	}

	var meds strings.Builder
	for i, med := range p.Medicamentos {
		fmt.Fprintf(&meds, "\n%d. %s (%s) ----- %s\n   Uso: %s.\n",
			i+1, med.Medicamento, med.Apresentacao, med.Quantidade, med.Posologia)
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n*Paciente:* ")
	b.WriteString(p.NomePaciente)
	b.WriteString("\n\n*Prescrição:*\n")
	b.WriteString(meds.String())
	if p.Observacoes != "" {
		b.WriteString("\nObservações: ")
		b.WriteString(p.Observacoes)
		b.WriteString("\n")
	}
	b.WriteString("\n---\n*Esta é uma pré-visualização gerada pelo Prescrito Pro.*")

	return blankLineRuns.ReplaceAllString(strings.TrimSpace(b.String()), "\n\n")
}
