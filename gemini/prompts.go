package gemini

import (
	"fmt"
	"strings"

	"github.com/prescrito/prescrito-api/domain"
)

func drugInfoPrompt(name string) string {
	return fmt.Sprintf("Forneça informações detalhadas sobre o medicamento: %q. "+
		"O nome pode estar em português ou inglês. Quero informações que seriam úteis para um profissional de saúde no Brasil. "+
		"Se o nome fornecido for uma marca, certifique-se de que os nomes genéricos e os ingredientes ativos sejam listados. "+
		"Se for um nome genérico, liste algumas marcas comuns. "+
		"Forneça respostas concisas e bem estruturadas em português do Brasil, usando o schema JSON. "+
		"Se o medicamento não for reconhecido, retorne um objeto JSON com todos os campos como arrays contendo a string 'Não encontrado'.", name)
}

func interactionsPrompt(names []string) string {
	return fmt.Sprintf("Analise as interações medicamentosas potenciais entre os seguintes medicamentos: %s. "+
		"Para cada medicamento na lista, liste suas interações com CADA UM dos outros medicamentos da lista.\n"+
		"Classifique cada interação de acordo com o seguinte modelo de risco:\n"+
		"- A: Nenhuma interação conhecida.\n"+
		"- B: Nenhuma ação necessária.\n"+
		"- C: Monitorar terapia.\n"+
		"- D: Considerar modificação da terapia.\n"+
		"- X: Evitar combinação.\n"+
		"- N/A: Se a interação não for classificável.\n"+
		"Se um medicamento não for encontrado ou não houver interações conhecidas com os outros, indique isso claramente. "+
		"Formate a resposta como uma lista de objetos, um para cada medicamento de origem. "+
		"Responda em português do Brasil e use o schema JSON fornecido. "+
		"Forneça um resumo conciso e um texto detalhado para cada interação.", strings.Join(names, ", "))
}

func prescriptionPrompt(diagnosis string, tipo domain.TipoReceita) string {
	return fmt.Sprintf("Gere um modelo de prescrição médica para o diagnóstico de %q. "+
		"A prescrição deve conter um ou mais medicamentos que sejam apropriados para o diagnóstico. "+
		"O tipo de receituário é %q.\n"+
		"Siga estritamente o formato de resposta JSON com o schema fornecido.\n"+
		"A resposta deve estar em português do Brasil.\n\n"+
		"Para cada medicamento:\n"+
		"1. No campo 'medicamento', inclua o nome do fármaco e a dosagem (ex: \"Amoxicilina 500mg\").\n"+
		"2. A 'posologia' deve ser uma única string combinando a frequência e a duração do tratamento.\n"+
		"3. Para medicamentos com duração de tratamento definida (como antibióticos), calcule a quantidade total necessária "+
		"(ex: número total de comprimidos) e preencha o campo 'quantidade' adequadamente (ex: \"21 comprimidos\" ou \"1 caixa com 21 comprimidos\").\n\n"+
		"O campo 'nomePaciente' deve ser um placeholder, como '[Nome do Paciente]'.", diagnosis, string(tipo))
}
