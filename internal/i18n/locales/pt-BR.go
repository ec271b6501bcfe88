package locales

// MessagesPtBR Brazilian Portuguese translations
var MessagesPtBR = map[string]string{
	// Common messages
	"common.success": "Sucesso",
	"error":          "Falha na operação",
	"unauthorized":   "Não autorizado",
	"not_found":      "Não encontrado",
	"bad_request":    "Requisição inválida",
	"internal_error": "Erro interno",

	// Validation
	"validation.invalid_restaurant_id": "ID de restaurante inválido",
	"validation.invalid_entry_id":      "ID de entrada inválido",
	"validation.invalid_step":          "Número de etapa inválido",
	"validation.invalid_session_id":    "ID de sessão inválido",
	"validation.invalid_date_range":    "Intervalo de datas inválido",

	// Onboarding
	"onboarding.session_started":   "Sessão de configuração iniciada",
	"onboarding.session_not_found": "Sessão de configuração não encontrada ou expirada",
	"onboarding.draft_updated":     "Rascunho atualizado",
	"onboarding.step_advanced":     "Etapa salva",
	"onboarding.step_blocked":      "A etapa atual está incompleta",
	"onboarding.completed":         "Configuração concluída",
	"onboarding.reset":             "Configuração reiniciada",

	// Waiting list
	"waiting.enqueued":           "Adicionado à fila de espera",
	"waiting.status_updated":     "Status atualizado",
	"waiting.entry_not_found":    "Entrada da fila não encontrada",
	"waiting.invalid_transition": "Esta entrada não pode mais mudar para esse status",

	// Restaurant
	"restaurant.not_found": "Restaurante não encontrado",
}
