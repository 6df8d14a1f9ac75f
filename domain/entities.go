// Package domain defines the core entities of the prescription application
// and the normalization rules applied to raw generative output before it
// enters application state. JSON tags follow the pt-BR wire format used by
// the generative schemas and the persisted files.
package domain

// TipoReceita is the prescription kind discriminator.
type TipoReceita string

const (
	ReceitaSimples          TipoReceita = "simples"
	ReceitaControleEspecial TipoReceita = "controle_especial"
)

// Valid reports whether the discriminator is one of the known kinds.
func (t TipoReceita) Valid() bool {
	return t == ReceitaSimples || t == ReceitaControleEspecial
}

// ProfileData holds the prescriber identity and practice location.
// One instance per installation, persisted under a fixed key.
type ProfileData struct {
	DoctorName         string `json:"doctorName"`
	CRM                string `json:"crm"`
	CRMUf              string `json:"crmUf"`
	ClinicName         string `json:"clinicName"`
	ClinicAddress      string `json:"clinicAddress"`
	ClinicNeighborhood string `json:"clinicNeighborhood"`
	ClinicCity         string `json:"clinicCity"`
	ClinicUf           string `json:"clinicUf"`
	ClinicPhone        string `json:"clinicPhone"`
	ClinicCnes         string `json:"clinicCnes"`
}

// Medicamento is a single medication line item of a prescription.
// The ID is client-generated and only used as a stable list key.
type Medicamento struct {
	ID           string `json:"id"`
	Medicamento  string `json:"medicamento"`
	Apresentacao string `json:"apresentacao"`
	Quantidade   string `json:"quantidade"`
	Posologia    string `json:"posologia"`
}

// Prescription is a prescription document. A Prescription without an ID is
// a draft and must never appear in the persisted list; the ID is assigned
// at save time.
type Prescription struct {
	ID           string        `json:"id,omitempty"`
	Tipo         TipoReceita   `json:"tipo"`
	NomePaciente string        `json:"nomePaciente"`
	Diagnostico  string        `json:"diagnostico"`
	Medicamentos []Medicamento `json:"medicamentos"`
	Observacoes  string        `json:"observacoes"`
	FolderID     string        `json:"folderId,omitempty"`
}

// IsDraft reports whether the prescription has not been saved yet.
func (p *Prescription) IsDraft() bool {
	return p.ID == ""
}

// Folder is a user-defined grouping for saved prescriptions. Deleting a
// folder clears the folder reference on its prescriptions, never deletes
// them.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NaoEncontrado is the sentinel the generative backend puts in every
// DrugInfo array when it does not recognize the queried drug.
const NaoEncontrado = "Não encontrado"

// DrugInfo holds drug information returned by the generative backend.
// All fields are required by the response schema; an unrecognized drug is
// signalled by every array containing only the NaoEncontrado sentinel.
type DrugInfo struct {
	NomeComercial         []string `json:"nome_comercial"`
	NomeGenerico          []string `json:"nome_generico"`
	PrincipioAtivo        []string `json:"principio_ativo"`
	IndicacoesEUso        []string `json:"indicacoes_e_uso"`
	DosagemEAdministracao []string `json:"dosagem_e_administracao"`
	Avisos                []string `json:"avisos"`
}

// Classificacao is the interaction severity code, following the
// UpToDate-like risk model.
type Classificacao string

const (
	ClassificacaoA  Classificacao = "A"   // no known interaction
	ClassificacaoB  Classificacao = "B"   // no action needed
	ClassificacaoC  Classificacao = "C"   // monitor therapy
	ClassificacaoD  Classificacao = "D"   // consider therapy modification
	ClassificacaoX  Classificacao = "X"   // avoid combination
	ClassificacaoNA Classificacao = "N/A" // not classifiable
)

// InfoInteracao is one pairwise interaction finding.
type InfoInteracao struct {
	NomeMedicamento string        `json:"nomeMedicamento"`
	Classificacao   Classificacao `json:"classificacao"`
	Resumo          string        `json:"resumo"`
	TextoInteracao  string        `json:"textoInteracao,omitempty"`
}

// ResultadoInteracao groups the interaction findings for one source drug.
// When Encontrado is false the interaction list must be empty and
// MensagemErro should explain why.
type ResultadoInteracao struct {
	MedicamentoFonte string          `json:"medicamentoFonte"`
	Interacoes       []InfoInteracao `json:"interacoes"`
	Encontrado       bool            `json:"encontrado"`
	MensagemErro     string          `json:"mensagemErro,omitempty"`
}
