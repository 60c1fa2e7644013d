package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
	"github.com/custodia-labs/dietcoach-cli/internal/core/ports/driving"
)

var (
	askTopK        int
	askTemperature float64
	askJSON        bool
)

var (
	answerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	sourceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	snippetStyle = lipgloss.NewStyle().Faint(true)
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a nutrition question about the recipe collection",
	Long: `Answers a free-text question using the built-in recipe collection.
The index is built on first use and reused afterwards. Answers cite
the recipes they are grounded in; questions the collection cannot
answer get an explicit no-match response.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of recipe chunks to retrieve (0 = configured default)")
	askCmd.Flags().Float64VarP(&askTemperature, "temperature", "t", -1, "generation temperature (negative = configured default)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer and citations as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	index, err := getIndexService()
	if err != nil {
		return err
	}
	advisor, err := getAdvisorService()
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := index.LoadOrBuild(ctx); err != nil {
		return fmt.Errorf("preparing index: %w", err)
	}

	result, err := advisor.Ask(ctx, question, driving.AskOptions{
		TopK:        askTopK,
		Temperature: askTemperature,
	})
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	if askJSON {
		return outputAskJSON(cmd, result)
	}
	return outputAskText(cmd, result)
}

func outputAskJSON(cmd *cobra.Command, result domain.AnswerResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAskText(cmd *cobra.Command, result domain.AnswerResult) error {
	cmd.Println(answerStyle.Render("回答"))
	cmd.Println(result.Answer)

	if len(result.Sources) == 0 {
		return nil
	}

	cmd.Println()
	cmd.Println(sourceStyle.Render("参照レシピ"))
	for i, source := range result.Sources {
		cmd.Printf("  [%d] %s（%.0fkcal / P:%.1fg F:%.1fg C:%.1fg）\n",
			i+1, source.Title, source.CaloriesKcal,
			source.ProteinG, source.FatG, source.CarbsG)
		if source.Snippet != "" {
			cmd.Printf("      %s\n", snippetStyle.Render(source.Snippet))
		}
	}
	return nil
}
