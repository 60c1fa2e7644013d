package domain

// Default configuration values. Every value can be overridden via the
// config file or environment variables.
const (
	DefaultEmbeddingModel = "text-embedding-3-small"
	DefaultChatModel      = "gpt-4o-mini"
	DefaultCollection     = "recipes"
	DefaultChunkSize      = 700
	DefaultChunkOverlap   = 100
	DefaultTopK           = 3
	DefaultTemperature    = 0.2
)

// DefaultKeywordPattern matches maximal runs of two or more word
// characters across the scripts questions are asked in: Hiragana,
// Katakana, CJK ideographs and ASCII alphanumerics.
const DefaultKeywordPattern = `[ぁ-んァ-ン一-龥a-zA-Z0-9]{2,}`

// DefaultStopwords are generic, high-frequency diet-domain words
// excluded from guard keyword extraction.
var DefaultStopwords = []string{
	"おすすめ", "料理", "レシピ", "あります", "ください",
	"教えて", "作り方", "どう", "どんな", "今日", "ダイエット",
	"食べ", "食事", "健康", "カロリー",
}

// Settings is the application configuration surface.
type Settings struct {
	// APIKey authenticates against the OpenAI-compatible API.
	APIKey string

	// EmbeddingModel is the embedding model name.
	EmbeddingModel string

	// ChatModel is the generation model name.
	ChatModel string

	// IndexDir is the directory the vector index persists under.
	IndexDir string

	// Collection is the vector index collection name.
	Collection string

	// DietDBPath is the sqlite database path for profile and logs.
	DietDBPath string

	// ChunkSize is the maximum chunk length in characters.
	ChunkSize int

	// ChunkOverlap is the overlap between adjacent chunks in characters.
	ChunkOverlap int

	// TopK is the default number of chunks to retrieve per question.
	TopK int

	// Temperature is the default generation temperature.
	Temperature float64

	// KeywordPattern is the regular expression extracting guard keywords.
	KeywordPattern string

	// Stopwords are excluded from guard keyword extraction.
	Stopwords []string
}

// Validate reports whether the settings are internally consistent.
func (s Settings) Validate() error {
	if s.ChunkSize <= 0 || s.ChunkOverlap < 0 || s.ChunkOverlap >= s.ChunkSize {
		return ErrInvalidInput
	}
	if s.TopK <= 0 || s.Temperature < 0 {
		return ErrInvalidInput
	}
	if s.EmbeddingModel == "" || s.ChatModel == "" || s.Collection == "" {
		return ErrInvalidInput
	}
	return nil
}
