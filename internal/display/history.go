package display

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Hierosoft/ffmpeg-gmic-plus/internal/tracking"
	"github.com/Hierosoft/ffmpeg-gmic-plus/internal/utils"
)

// RunHistory executes the history (recent runs report) command.
func RunHistory(tracker *tracking.Tracker, args []string) error {
	if tracker == nil {
		PrintError("no run history (run an upscale first)")
		return nil
	}

	var (
		showJSON bool
		limit    = 10
	)
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--json":
			showJSON = true
		case "--limit", "-n":
			if i+1 < len(args) {
				_, _ = fmt.Sscanf(args[i+1], "%d", &limit)
				i++
			}
			if limit <= 0 {
				limit = 10
			}
		}
	}

	runs, err := tracker.GetRecent(limit)
	if err != nil {
		return err
	}

	if showJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.Timestamp,
			utils.Truncate(r.Input, 32),
			fmt.Sprintf("%dx%d", r.InWidth, r.InHeight),
			fmt.Sprintf("%dx%d", r.OutWidth, r.OutHeight),
			fmt.Sprintf("%d", r.Frames),
			utils.FormatDurationMs(r.DurationMs),
			utils.Truncate(r.Status, 24),
		})
	}

	table := FormatTable(
		[]string{"TIME", "INPUT", "IN", "OUT", "FRAMES", "DURATION", "STATUS"},
		rows,
	)

	summary, err := tracker.GetSummary()
	if err != nil {
		return err
	}

	if IsTerminal() {
		fmt.Println(HeaderStyle.Render("Recent runs"))
	} else {
		fmt.Println("Recent runs")
	}
	fmt.Print(table)
	fmt.Println()
	line := fmt.Sprintf("%d runs (%d ok), %d frames, %s total",
		summary.TotalRuns, summary.OKRuns, summary.TotalFrames,
		utils.FormatDurationMs(summary.TotalTimeMs))
	if IsTerminal() {
		fmt.Println(StatStyle.Render(line))
	} else {
		fmt.Println(line)
	}
	return nil
}
