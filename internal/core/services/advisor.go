package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
	"github.com/custodia-labs/dietcoach-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dietcoach-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dietcoach-cli/internal/logger"
)

// Ensure AdvisorService implements the interface.
var _ driving.AdvisorService = (*AdvisorService)(nil)

// minKeywordsForGuard is the minimum number of extracted keywords
// required before the guard may short-circuit. Single-keyword questions
// carry too little lexical signal to gate on and always pass through.
const minKeywordsForGuard = 2

// Rendering limits, in characters.
const (
	contextSnippetLimit = 700
	sourceSnippetLimit  = 400
	noMatchSnippetLimit = 200
)

// systemPrompt fixes the advisor role and the hard grounding rules the
// model must follow, including the labelled-line output format.
const systemPrompt = "あなたは管理栄養士の知識を持つダイエットレシピアドバイザーです。" +
	"必ず与えられたコンテキスト（参照レシピ）だけに基づいて回答してください。\n\n" +
	"【最重要ルール】\n" +
	"1) コンテキストに書かれていない食材・調味料・調理法・料理名を新規に作ってはいけません。\n" +
	"2) 質問の条件がコンテキストに見当たらない場合は「該当するレシピは参照データに存在しません」と明確に答えてください。\n" +
	"3) 断定せず、根拠がある範囲のみ述べてください。\n" +
	"4) 個人の重篤な疾患に関する医療的判断は行わないこと。\n\n" +
	"【管理栄養士視点での回答方針】\n" +
	"- このレシピがなぜダイエットに有効か（科学的根拠を簡潔に）\n" +
	"- PFCバランスのコメント（たんぱく質・脂質・炭水化物の観点）\n" +
	"- 安全な摂取量・推奨頻度のアドバイス\n" +
	"- 組み合わせると効果的な他のレシピや食材（コンテキスト内から）\n" +
	"- 栄養素を守る調理のコツ（加熱しすぎない、など）\n\n" +
	"【出力フォーマット】\n" +
	"- 判定: （該当あり / 該当なし）\n" +
	"- 推奨レシピ: レシピ名（PFC: P__g / F__g / C__g、__kcal）\n" +
	"- 栄養アドバイス: ...\n" +
	"- PFCバランス解説: ...\n" +
	"- 推奨頻度: ...\n" +
	"- 根拠: 参照レシピ番号（例: [1], [2]）\n"

// userPromptFormat embeds the profile context, the question and the
// numbered retrieved context.
const userPromptFormat = "【ユーザープロフィール】\n%s\n\n" +
	"【質問】\n%s\n\n" +
	"【参照レシピ（コンテキスト）】\n%s\n"

// Fixed short-circuit answers. Both follow the labelled-line protocol
// with the verdict forced to no-match; neither involves generation.
const (
	noDataAnswer = "判定: 該当なし\n" +
		"回答: 該当するレシピは参照データに存在しません。\n" +
		"根拠: 参照レシピが取得できませんでした。"

	noMatchAnswer = "判定: 該当なし\n" +
		"回答: 該当するレシピは参照データに存在しません。\n" +
		"根拠: 参照レシピ内に質問条件に一致する記述がありません。"
)

// ProfileContextProvider supplies the profile-derived context string
// for the user prompt.
type ProfileContextProvider interface {
	ProfileContext(ctx context.Context) string
}

// AdvisorService retrieves recipe context for a question, guards
// against ungrounded generation and composes the final answer.
type AdvisorService struct {
	retriever driving.Retriever
	chat      driven.ChatService
	profiles  ProfileContextProvider
	chatModel string

	defaultTopK        int
	defaultTemperature float64

	keywordRe *regexp.Regexp
	stopwords map[string]bool
}

// NewAdvisorService creates a new advisor service. The keyword pattern
// and stopword set come from configuration.
func NewAdvisorService(
	retriever driving.Retriever,
	chat driven.ChatService,
	profiles ProfileContextProvider,
	settings domain.Settings,
) (*AdvisorService, error) {
	keywordRe, err := regexp.Compile(settings.KeywordPattern)
	if err != nil {
		return nil, fmt.Errorf("compiling keyword pattern: %w", err)
	}

	stopwords := make(map[string]bool, len(settings.Stopwords))
	for _, w := range settings.Stopwords {
		stopwords[normalise(w)] = true
	}

	return &AdvisorService{
		retriever:          retriever,
		chat:               chat,
		profiles:           profiles,
		chatModel:          settings.ChatModel,
		defaultTopK:        settings.TopK,
		defaultTemperature: settings.Temperature,
		keywordRe:          keywordRe,
		stopwords:          stopwords,
	}, nil
}

// Ask retrieves context for the question and answers it.
func (s *AdvisorService) Ask(
	ctx context.Context, question string, opts driving.AskOptions,
) (domain.AnswerResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.AnswerResult{}, fmt.Errorf("asking: %w", domain.ErrInvalidInput)
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = s.defaultTopK
	}
	temperature := opts.Temperature
	if temperature < 0 {
		temperature = s.defaultTemperature
	}

	retrieved, err := s.retriever.Retrieve(ctx, question, topK)
	if err != nil {
		return domain.AnswerResult{}, err
	}

	profileContext := s.profiles.ProfileContext(ctx)
	return s.Answer(ctx, question, retrieved, profileContext, temperature)
}

// Answer applies the grounding guard to already-retrieved chunks and,
// when the guard passes, generates the answer. Retrieval happens-before
// the guard, which happens-before generation; the chat service is
// called at most once.
func (s *AdvisorService) Answer(
	ctx context.Context,
	question string,
	retrieved []domain.RetrievedChunk,
	profileContext string,
	temperature float64,
) (domain.AnswerResult, error) {
	logger.Section("Answer Generation")

	if len(retrieved) == 0 {
		logger.Info("No chunks retrieved, returning fixed no-data answer")
		return domain.AnswerResult{Answer: noDataAnswer, Sources: []domain.Citation{}}, nil
	}

	keywords := s.extractKeywords(question)
	joined := joinedMatchText(retrieved)
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(joined, normalise(kw)) {
			hits++
		}
	}
	logger.Debug("Guard: %d keywords, %d hits", len(keywords), hits)

	if len(keywords) >= minKeywordsForGuard && hits == 0 {
		logger.Info("Guard tripped, returning fixed no-match answer")
		return domain.AnswerResult{
			Answer:  noMatchAnswer,
			Sources: citations(retrieved, noMatchSnippetLimit),
		}, nil
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(
			userPromptFormat, profileContext, question, formatContext(retrieved),
		)},
	}

	answer, err := s.chat.Chat(ctx, messages, driven.ChatOptions{Temperature: temperature})
	if err != nil {
		return domain.AnswerResult{}, fmt.Errorf("generating answer with %s: %w", s.chatModel, err)
	}

	return domain.AnswerResult{
		Answer:  answer,
		Sources: citations(retrieved, sourceSnippetLimit),
	}, nil
}

// extractKeywords pulls deduplicated, first-appearance-ordered keyword
// runs from the normalised question, dropping stopwords.
func (s *AdvisorService) extractKeywords(question string) []string {
	var keywords []string
	seen := map[string]bool{}
	for _, w := range s.keywordRe.FindAllString(normalise(question), -1) {
		if s.stopwords[w] || seen[w] {
			continue
		}
		seen[w] = true
		keywords = append(keywords, w)
	}
	return keywords
}

// joinedMatchText builds the normalised concatenation of every
// retrieved chunk's title, tags and body, the haystack keywords are
// matched against.
func joinedMatchText(retrieved []domain.RetrievedChunk) string {
	parts := make([]string, 0, len(retrieved))
	for _, r := range retrieved {
		parts = append(parts, normalise(r.Meta.Title+"\n"+r.Meta.Tags+"\n"+r.Content))
	}
	return normalise(strings.Join(parts, "\n"))
}

// formatContext renders the retrieved chunks as a numbered context
// block with inline nutrition metadata, each snippet capped at 700
// characters.
func formatContext(retrieved []domain.RetrievedChunk) string {
	parts := make([]string, 0, len(retrieved))
	for i, r := range retrieved {
		n := r.Meta.Nutrition
		nutrition := ""
		if n.CaloriesKcal > 0 {
			nutrition = fmt.Sprintf("（%.0fkcal / P:%.0fg F:%.0fg C:%.0fg）",
				n.CaloriesKcal, n.ProteinG, n.FatG, n.CarbsG)
		}
		parts = append(parts, fmt.Sprintf("---\n[%d] %s%s\n%s",
			i+1, r.Meta.Title, nutrition, truncate(r.Content, contextSnippetLimit)))
	}
	return strings.Join(parts, "\n")
}

// citations builds one citation per retrieved chunk, copying nutrition
// values verbatim from the chunk metadata.
func citations(retrieved []domain.RetrievedChunk, snippetLimit int) []domain.Citation {
	out := make([]domain.Citation, 0, len(retrieved))
	for _, r := range retrieved {
		out = append(out, domain.Citation{
			RecipeID:     r.Meta.RecipeID,
			Title:        r.Meta.Title,
			Snippet:      truncate(r.Content, snippetLimit),
			CaloriesKcal: r.Meta.Nutrition.CaloriesKcal,
			ProteinG:     r.Meta.Nutrition.ProteinG,
			FatG:         r.Meta.Nutrition.FatG,
			CarbsG:       r.Meta.Nutrition.CarbsG,
		})
	}
	return out
}

// normalise case-folds and collapses whitespace for keyword matching.
func normalise(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// truncate caps s at limit characters, appending an ellipsis when cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
