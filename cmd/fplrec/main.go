package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"

	"github.com/fplcentral/recommender-api/internal/cache"
	"github.com/fplcentral/recommender-api/internal/config"
	"github.com/fplcentral/recommender-api/internal/fpl"
	"github.com/fplcentral/recommender-api/internal/logic"
	"github.com/fplcentral/recommender-api/internal/models"
)

func main() {
	budget := flag.Float64("budget", 0, "total budget in £m (required, e.g. 7.5)")
	need := flag.String("need", "", `positions to fill, e.g. "2:1,3:2" or "DEF:1,MID:2" (required)`)
	exclude := flag.String("exclude", "", "comma-separated player ids to exclude (your current squad)")
	maxFromTeam := flag.Int("max-from-team", models.MaxFromTeamCap, "max players from one club (1-3)")
	topPerPos := flag.Int("top-per-pos", models.DefaultTopPerPos, "candidate slice per position")
	jsonPath := flag.String("json", "", "also write the recommendation as JSON to this path")
	players := flag.Bool("players", false, "list the current player pool instead of recommending")
	verbose := flag.Bool("verbose", false, "log fetch and cache activity")
	flag.Parse()

	var req models.SelectionRequest
	if !*players {
		var err error
		req, err = buildRequest(*budget, *need, *exclude, *maxFromTeam, *topPerPos)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			flag.Usage()
			os.Exit(2)
		}
	}

	cfg := config.Load()

	logger := zap.NewNop()
	if *verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	}
	defer logger.Sync()

	client := fpl.NewClient(fpl.Config{
		BaseURL:    cfg.FPLBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
	})
	store := cache.NewFileStore(cfg.CacheDir, cfg.CacheTTL)
	recommender := logic.NewRecommendService(client, store, logger.Sugar())

	if *players {
		pool, err := recommender.Players(context.Background())
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		printPlayers(pool)
		return
	}

	rec, err := recommender.Recommend(context.Background(), req)
	if err != nil {
		var infeasible *logic.InfeasibleError
		if errors.As(err, &infeasible) {
			fmt.Fprintln(os.Stderr, infeasible.Error())
			fmt.Fprintln(os.Stderr, "try a higher budget, a larger --top-per-pos, or fewer exclusions")
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	printTable(rec)

	if *jsonPath != "" {
		if err := writeJSON(*jsonPath, rec); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		fmt.Printf("\nsaved JSON to %s\n", *jsonPath)
	}
}

func buildRequest(budget float64, need, exclude string, maxFromTeam, topPerPos int) (models.SelectionRequest, error) {
	if budget <= 0 {
		return models.SelectionRequest{}, fmt.Errorf("--budget must be positive")
	}
	needMap, err := models.ParseNeed(need)
	if err != nil {
		return models.SelectionRequest{}, err
	}
	excludeSet, err := models.ParseExclude(exclude)
	if err != nil {
		return models.SelectionRequest{}, err
	}
	if maxFromTeam < 1 || maxFromTeam > models.MaxFromTeamCap {
		return models.SelectionRequest{}, fmt.Errorf("--max-from-team must be between 1 and %d", models.MaxFromTeamCap)
	}
	if topPerPos < 1 || topPerPos > 100 {
		return models.SelectionRequest{}, fmt.Errorf("--top-per-pos must be between 1 and 100")
	}

	return models.SelectionRequest{
		Budget:      budget,
		Need:        needMap,
		Exclude:     excludeSet,
		MaxFromTeam: maxFromTeam,
		TopPerPos:   topPerPos,
	}, nil
}

func printTable(rec models.Recommendation) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Team", "Pos", "Price", "Score", "Value", "Form", "PPG", "Fixtures")

	for _, item := range rec.Items {
		table.Append(
			fmt.Sprintf("%d", item.ID),
			item.Name,
			item.TeamName,
			item.PositionCode,
			fmt.Sprintf("%.1f", item.Price),
			fmt.Sprintf("%.2f", item.Score),
			fmt.Sprintf("%.3f", item.Value),
			fmt.Sprintf("%.2f", item.Form),
			fmt.Sprintf("%.2f", item.PointsPerGame),
			fmt.Sprintf("%.2f", item.FixtureOutlook),
		)
	}

	table.Render()
	fmt.Printf("total cost: %.1f\n", rec.TotalCost)
}

func printPlayers(pool []models.Player) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Team", "Pos", "Price", "Form", "PPG", "Owned%", "Status")

	for _, p := range pool {
		table.Append(
			fmt.Sprintf("%d", p.ID),
			p.Name,
			p.TeamName,
			p.PositionCode,
			fmt.Sprintf("%.1f", p.Price),
			fmt.Sprintf("%.2f", p.Form),
			fmt.Sprintf("%.2f", p.PointsPerGame),
			fmt.Sprintf("%.1f", p.SelectedByPercent),
			string(p.Availability),
		)
	}

	table.Render()
	fmt.Printf("%d players\n", len(pool))
}

func writeJSON(path string, rec models.Recommendation) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
