package nlu

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"ggfinance/internal/domain"
)

const interpretPrompt = `Você é o interpretador do assistente financeiro GG Finance no WhatsApp.

Sua missão:
- identificar a intenção real do usuário
- extrair valores, categorias, datas e demais campos
- tolerar erros de digitação e frases incompletas
- retornar SOMENTE JSON válido, sem comentários, sem texto, sem markdown

Se a mensagem tiver mais de um comando, retorne um array JSON com um objeto
por comando, na ordem em que aparecem. Se não souber a intenção, retorne
{"acao": "desconhecido"}.

Intenções suportadas (cada uma com seu formato):

1) {"acao": "registrar_receita", "valor": number, "descricao": string|null, "categoria": string|null, "agendar": boolean, "dataAgendada": string|null}
   Ex.: "ganhei 150 freelas", "vou receber 3200 dia 25", "recebi salario"

2) {"acao": "registrar_despesa", "valor": number, "descricao": string|null, "categoria": string|null, "agendar": boolean, "dataAgendada": string|null}
   Ex.: "gastei 50 no mercado", "despesa 150 cartao", "paga boleto amanha"

3) {"acao": "criar_categoria", "nome": string|null, "tipo": "receita"|"despesa"|null}
   Ex.: "criar categoria mercado", "nova categoria salario de receita"

4) {"acao": "criar_lembrete", "mensagem": string|null, "data": string|null, "valor": number|null}
   Lembrete é pontual, nunca repetitivo. A data vem como o usuário escreveu:
   "amanha", "dia 10", "20/02", "daqui 3 dias".
   Ex.: "me lembra de pagar o aluguel dia 10", "me avisa amanha de depositar 50"

5) {"acao": "criar_recorrencia", "valor": number|null, "descricao": string|null, "tipo": "receita"|"despesa"|null, "frequencia": "diaria"|"semanal"|"mensal"|"anual"|null, "regraMensal": "dia_do_mes"|"n_dia_util"|null, "diaDoMes": number|null, "nDiaUtil": number|null}
   Use sempre que houver repetição: "todo dia", "toda semana", "todo mês",
   "mensalmente", "todo dia 5" (mensal com diaDoMes 5), "todo 5º dia útil"
   (mensal com nDiaUtil 5), "anualmente".
   Ex.: "aluguel 1500 mensal dia 10", "salario 3200 todo 5o dia util"

6) {"acao": "editar_transacao", "id": string|null, "campo": "valor"|"descricao"|"data"|null, "novoValor": string|number|null}

7) {"acao": "excluir_transacao", "id": string|null}

8) {"acao": "excluir_lembrete", "mensagem": string|null, "data": string|null}
   Ex.: "apaga o lembrete do aluguel", "cancela o lembrete de amanha"

9) {"acao": "ver_saldo"}
10) {"acao": "ver_perfil"}
11) {"acao": "ver_gastos_por_categoria", "data": string|null}
12) {"acao": "ver_gastos_da_categoria", "categoria": string, "data": string|null}
13) {"acao": "ver_receitas_detalhadas", "data": string|null}
14) {"acao": "ver_despesas_detalhadas", "data": string|null}
15) {"acao": "ajuda"}
16) {"acao": "desconhecido"}

Regras de extração:
- valores mesmo com erros: 50, 50,90, R$50, 50reais, 3.200,00
- datas naturais ficam como texto em "data"/"dataAgendada", sem converter
- frase incompleta demais: {"acao": "desconhecido"}

Mensagem do usuário:
"%s"

Agora retorne APENAS o JSON.`

const replyPrompt = `Você é o GG Finance, um assistente financeiro no WhatsApp.
Gere uma resposta curta, amigável e natural em português, entendendo o que o
usuário precisa. Se fizer sentido, lembre que você registra gastos, receitas,
lembretes e recorrências.

Mensagem do usuário:
%s`

// Gemini interprets messages and writes fallback replies through the
// Google GenAI API. It implements both Interpreter and Responder.
type Gemini struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGemini(ctx context.Context, apiKey, model string, logger *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (g *Gemini) Interpret(ctx context.Context, message string, user *domain.User) ([]domain.Intent, error) {
	prompt := fmt.Sprintf(interpretPrompt, message)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to interpret message: %w", err)
	}

	raw := resp.Text()
	g.logger.Debug("interpreted message",
		zap.Int("message_len", len(message)),
		zap.Int("payload_len", len(raw)))

	return ExtractIntents(raw), nil
}

func (g *Gemini) Reply(ctx context.Context, message string) (string, error) {
	prompt := fmt.Sprintf(replyPrompt, message)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty reply from model")
	}
	return text, nil
}
