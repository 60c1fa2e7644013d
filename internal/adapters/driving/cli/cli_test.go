package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
	"github.com/custodia-labs/dietcoach-cli/internal/core/ports/driving"
)

type fakeAdvisor struct {
	result   domain.AnswerResult
	lastOpts driving.AskOptions
}

func (f *fakeAdvisor) Ask(_ context.Context, _ string, opts driving.AskOptions) (domain.AnswerResult, error) {
	f.lastOpts = opts
	return f.result, nil
}

type fakeIndex struct {
	status     driving.IndexStatus
	loadCalls  int
	buildCalls int
}

func (f *fakeIndex) LoadOrBuild(context.Context) error {
	f.loadCalls++
	return nil
}

func (f *fakeIndex) Rebuild(context.Context) error {
	f.buildCalls++
	return nil
}

func (f *fakeIndex) Status(context.Context) (driving.IndexStatus, error) {
	return f.status, nil
}

type fakePlanner struct {
	plan domain.MealPlan
}

func (f *fakePlanner) SuggestPlan(_ context.Context, targetKcal float64, _ []domain.MealType) (domain.MealPlan, error) {
	f.plan.TargetKcal = targetKcal
	return f.plan, nil
}

func (f *fakePlanner) FindByIngredients(context.Context, []string) ([]domain.IngredientMatch, error) {
	return nil, nil
}

func (f *fakePlanner) ShoppingList(context.Context, []domain.RecipeRecord) ([]domain.ShoppingCategory, error) {
	return []domain.ShoppingCategory{{Name: "野菜", Items: []string{"キャベツ"}}}, nil
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dietcoach version")
}

func TestAskCmd_PrintsAnswerAndSources(t *testing.T) {
	oldAdvisor, oldIndex := advisorService, indexService
	advisor := &fakeAdvisor{result: domain.AnswerResult{
		Answer: "判定: 該当あり",
		Sources: []domain.Citation{{
			RecipeID: "r1", Title: "鶏むね肉の塩麹蒸し", Snippet: "鶏むね肉を蒸します",
			CaloriesKcal: 280, ProteinG: 38, FatG: 5.5, CarbsG: 12,
		}},
	}}
	index := &fakeIndex{}
	advisorService, indexService = advisor, index
	defer func() { advisorService, indexService = oldAdvisor, oldIndex }()

	out, err := execute(t, "ask", "高たんぱくの夕食は？")
	require.NoError(t, err)

	assert.Equal(t, 1, index.loadCalls, "ask must ensure the index exists")
	assert.Contains(t, out, "判定: 該当あり")
	assert.Contains(t, out, "鶏むね肉の塩麹蒸し")
	assert.Contains(t, out, "280kcal")
}

func TestAskCmd_ForwardsOptions(t *testing.T) {
	oldAdvisor, oldIndex := advisorService, indexService
	advisor := &fakeAdvisor{result: domain.AnswerResult{Answer: "ok"}}
	advisorService, indexService = advisor, &fakeIndex{}
	defer func() {
		advisorService, indexService = oldAdvisor, oldIndex
		askTopK, askTemperature = 0, -1
	}()

	_, err := execute(t, "ask", "--top-k", "5", "--temperature", "0.5", "質問")
	require.NoError(t, err)

	assert.Equal(t, 5, advisor.lastOpts.TopK)
	assert.Equal(t, 0.5, advisor.lastOpts.Temperature)
}

func TestAskCmd_JSONOutput(t *testing.T) {
	oldAdvisor, oldIndex := advisorService, indexService
	advisorService = &fakeAdvisor{result: domain.AnswerResult{
		Answer:  "回答です",
		Sources: []domain.Citation{{RecipeID: "r1", Title: "タイトル"}},
	}}
	indexService = &fakeIndex{}
	defer func() {
		advisorService, indexService = oldAdvisor, oldIndex
		askJSON = false
	}()

	out, err := execute(t, "ask", "--json", "質問")
	require.NoError(t, err)

	assert.Contains(t, out, `"answer"`)
	assert.Contains(t, out, `"recipe_id"`)
}

func TestAskCmd_RequiresQuestion(t *testing.T) {
	_, err := execute(t, "ask")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestIndexStatusCmd(t *testing.T) {
	oldIndex := indexService
	indexService = &fakeIndex{status: driving.IndexStatus{ItemCount: 42, Usable: true}}
	defer func() { indexService = oldIndex }()

	out, err := execute(t, "index", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "42 items")
}

func TestIndexRebuildCmd(t *testing.T) {
	oldIndex := indexService
	index := &fakeIndex{status: driving.IndexStatus{ItemCount: 10, Usable: true}}
	indexService = index
	defer func() { indexService = oldIndex }()

	out, err := execute(t, "index", "rebuild")
	require.NoError(t, err)
	assert.Equal(t, 1, index.buildCalls)
	assert.Contains(t, out, "Index rebuilt")
}

func TestPlanCmd_WithExplicitTarget(t *testing.T) {
	oldPlanner := plannerService
	plannerService = &fakePlanner{plan: domain.MealPlan{Slots: []domain.MealPlanSlot{
		{MealType: domain.MealBreakfast, BudgetKcal: 400, Recipe: &domain.RecipeRecord{
			Title: "オートミール粥", Nutrition: domain.Nutrition{CaloriesKcal: 350},
		}},
	}}}
	defer func() {
		plannerService = oldPlanner
		planKcal = 0
	}()

	out, err := execute(t, "plan", "--kcal", "1600")
	require.NoError(t, err)
	assert.Contains(t, out, "Plan for 1600 kcal")
	assert.Contains(t, out, "オートミール粥")
}

func TestPlanCmd_RejectsUnknownMealType(t *testing.T) {
	oldPlanner := plannerService
	plannerService = &fakePlanner{}
	defer func() {
		plannerService = oldPlanner
		planKcal, planMeals = 0, nil
	}()

	_, err := execute(t, "plan", "--kcal", "1600", "--meals", "brunch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown meal type")
}

func TestPlanShoppingCmd(t *testing.T) {
	oldPlanner := plannerService
	plannerService = &fakePlanner{}
	defer func() { plannerService = oldPlanner }()

	out, err := execute(t, "plan", "shopping")
	require.NoError(t, err)
	assert.Contains(t, out, "野菜:")
	assert.Contains(t, out, "- キャベツ")
}
