// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Id identifies a known failure condition.
type Id int

// Known issue ids.
const (
	VenvNotFoundId Id = iota + 1
	ActivationFailedId
	InterpreterNotFoundId
	ScriptFailedId
	ConfigLoadFailedId
)

type (
	// MarkdownMsg is markdown text rendered to the terminal.
	MarkdownMsg string

	// HttpLink points at documentation for an issue.
	HttpLink string

	// Issue is a known failure condition with remediation guidance.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

// Id returns the issue's identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw markdown message.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// DocLinks returns the documentation links for this issue.
func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the issue's markdown with the given glamour style path.
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		md += "\n\n## Veja tambem\n"
		for _, link := range i.docLinks {
			md += "- " + string(link) + "\n"
		}
	}
	return render(md, stylePath)
}

// render is swappable in tests.
var render = glamour.Render

var (
	venvNotFoundIssue = &Issue{
		id: VenvNotFoundId,
		mdMsg: `
# Ambiente virtual nao encontrado

O diretorio do ambiente virtual nao existe ao lado do launcher.

## Como resolver
- Crie o ambiente com:
~~~
$ python -m venv venv_py310
~~~
- Instale as dependencias da aplicacao dentro dele antes de lancar de novo.`,
		docLinks: []HttpLink{"https://docs.python.org/3/library/venv.html"},
	}

	activationFailedIssue = &Issue{
		id: ActivationFailedId,
		mdMsg: `
# Falha na ativacao do ambiente virtual

O script de ativacao terminou com status diferente de zero.

## Como resolver
- Verifique se o ambiente nao esta corrompido (o arquivo ` + "`pyvenv.cfg`" + ` deve existir).
- Recrie o ambiente se necessario:
~~~
$ rm -rf venv_py310 && python -m venv venv_py310
~~~`,
		docLinks: []HttpLink{"https://docs.python.org/3/library/venv.html#how-venvs-work"},
	}

	interpreterNotFoundIssue = &Issue{
		id: InterpreterNotFoundId,
		mdMsg: `
# Interpretador Python nao encontrado

Nenhum executavel python foi localizado dentro do ambiente virtual.

## Como resolver
- Recrie o ambiente virtual; a instalacao atual esta incompleta.
- Ou aponte um interpretador explicito na configuracao (` + "`interpreter`" + `).`,
	}

	scriptFailedIssue = &Issue{
		id: ScriptFailedId,
		mdMsg: `
# A aplicacao terminou com erro

O script de entrada retornou um status diferente de zero. O codigo de
saida do launcher repete esse status.

## Como resolver
- Leia as mensagens acima; o erro vem da propria aplicacao.
- Rode com ` + "`--verbose`" + ` para diagnosticos adicionais do launcher.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Falha ao carregar a configuracao

O arquivo de configuracao existe mas nao pode ser usado.

## Como resolver
- Confira a sintaxe CUE do arquivo.
- Compare os campos com o esquema esperado (veja ` + "`vlaunch --help`" + `).`,
	}

	issues = map[Id]*Issue{
		VenvNotFoundId:        venvNotFoundIssue,
		ActivationFailedId:    activationFailedIssue,
		InterpreterNotFoundId: interpreterNotFoundIssue,
		ScriptFailedId:        scriptFailedIssue,
		ConfigLoadFailedId:    configLoadFailedIssue,
	}
)

// Get returns the issue registered under id, or nil when unknown.
func Get(id Id) *Issue {
	return issues[id]
}
