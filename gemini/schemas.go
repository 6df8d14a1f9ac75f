package gemini

// Schema is the structural constraint sent with every generation request.
// It mirrors the subset of the OpenAPI schema object the backend accepts
// for responseSchema.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

const (
	typeObject  = "OBJECT"
	typeArray   = "ARRAY"
	typeString  = "STRING"
	typeBoolean = "BOOLEAN"
)

func stringArray(description string) *Schema {
	return &Schema{
		Type:        typeArray,
		Description: description,
		Items:       &Schema{Type: typeString},
	}
}

var medicamentoSchema = &Schema{
	Type: typeObject,
	Properties: map[string]*Schema{
		"medicamento": {
			Type:        typeString,
			Description: "O nome do medicamento recomendado, incluindo a dosagem (ex: 'Amoxicilina 500mg', 'Dipirona 1g').",
		},
		"apresentacao": {
			Type:        typeString,
			Description: "A forma farmacêutica do medicamento. Ex: 'Comprimidos', 'Solução oral', 'Cápsulas'.",
		},
		"quantidade": {
			Type:        typeString,
			Description: "A quantidade total a ser dispensada. Ex: '1 caixa', '2 frascos', '21 comprimidos'.",
		},
		"posologia": {
			Type:        typeString,
			Description: "Instruções de uso combinando frequência e duração. Ex: 'Tomar 1 comprimido a cada 8 horas por 7 dias'.",
		},
	},
	Required: []string{"medicamento", "apresentacao", "quantidade", "posologia"},
}

var prescriptionSchema = &Schema{
	Type: typeObject,
	Properties: map[string]*Schema{
		"nomePaciente": {
			Type:        typeString,
			Description: "Um placeholder para o nome do paciente, como '[Nome do Paciente]'.",
		},
		"diagnostico": {
			Type:        typeString,
			Description: "O diagnóstico médico fornecido no prompt.",
		},
		"medicamentos": {
			Type:        typeArray,
			Description: "Uma lista de um ou mais medicamentos para a prescrição.",
			Items:       medicamentoSchema,
		},
		"observacoes": {
			Type:        typeString,
			Description: "Instruções adicionais (ex: 'Tomar após as refeições'). Se não houver, retorne uma string vazia.",
		},
	},
	Required: []string{"nomePaciente", "diagnostico", "medicamentos", "observacoes"},
}

var drugInfoSchema = &Schema{
	Type: typeObject,
	Properties: map[string]*Schema{
		"nome_comercial":          stringArray("Nomes comerciais do medicamento."),
		"nome_generico":           stringArray("Nomes genéricos do medicamento."),
		"principio_ativo":         stringArray("Princípios ativos do medicamento."),
		"indicacoes_e_uso":        stringArray("Indicações e modo de uso do medicamento."),
		"dosagem_e_administracao": stringArray("Informações sobre dosagem e administração."),
		"avisos":                  stringArray("Avisos, precauções e contraindicações importantes."),
	},
	Required: []string{"nome_comercial", "nome_generico", "principio_ativo", "indicacoes_e_uso", "dosagem_e_administracao", "avisos"},
}

var interactionInfoSchema = &Schema{
	Type: typeObject,
	Properties: map[string]*Schema{
		"nomeMedicamento": {
			Type:        typeString,
			Description: "O nome do medicamento com o qual há interação.",
		},
		"classificacao": {
			Type:        typeString,
			Description: "A classificação da gravidade da interação usando o modelo de risco (A, B, C, D, X) semelhante ao UpToDate. A: Nenhuma interação conhecida. B: Nenhuma ação necessária. C: Monitorar terapia. D: Considerar modificação da terapia. X: Evitar combinação. N/A: Se não houver classificação.",
		},
		"resumo": {
			Type:        typeString,
			Description: "Um resumo de uma frase sobre o efeito da interação.",
		},
		"textoInteracao": {
			Type:        typeString,
			Description: "Descrição detalhada da interação, incluindo o mecanismo, efeitos potenciais e recomendações de manejo clínico.",
		},
	},
	Required: []string{"nomeMedicamento", "classificacao", "resumo", "textoInteracao"},
}

var interactionResultSchema = &Schema{
	Type: typeObject,
	Properties: map[string]*Schema{
		"medicamentoFonte": {
			Type:        typeString,
			Description: "O nome do medicamento sendo analisado para interações.",
		},
		"interacoes": {
			Type:  typeArray,
			Items: interactionInfoSchema,
		},
		"encontrado": {
			Type:        typeBoolean,
			Description: "Se o medicamento foi encontrado para análise de interação.",
		},
		"mensagemErro": {
			Type:        typeString,
			Description: "Mensagem de erro se o medicamento não for encontrado ou se não houver informações.",
		},
	},
	Required: []string{"medicamentoFonte", "interacoes", "encontrado"},
}

var fullInteractionSchema = &Schema{
	Type:  typeArray,
	Items: interactionResultSchema,
}
