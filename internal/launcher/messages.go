// SPDX-License-Identifier: MPL-2.0

package launcher

// Fixed user-facing status lines, written to the session's stdout at each
// stage transition. The console contract is Portuguese, matching the
// application this launcher fronts.
const (
	msgWorkdirError    = "ERRO: Falha ao acessar o diretorio do projeto."
	msgActivating      = "Ativando o ambiente virtual (%s)...\n"
	msgActivationError = "ERRO: Falha ao ativar o ambiente virtual."
	msgRunning         = "Executando %s...\n"
	msgExecutionError  = "ERRO: A execucao do script terminou com erro."
	msgSuccess         = "Script executado com sucesso."
	msgPausePrompt     = "Pressione ENTER para sair..."
)
