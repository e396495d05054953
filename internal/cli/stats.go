package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/sadopc/focusflow/internal/state"
	"github.com/sadopc/focusflow/internal/store"
	"github.com/sadopc/focusflow/internal/tui"
)

func newStatsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print today's progress and the subject breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printStats(cmd.OutOrStdout(), e.state, time.Now())
		},
	}
}

func printStats(w io.Writer, st *state.State, now time.Time) error {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	good := color.New(color.FgGreen)

	progress := st.GoalProgress(now, 0)
	progressText := fmt.Sprintf("%.1f%%", progress)
	if progress >= 100 {
		progressText = good.Sprint(progressText)
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Today"), tui.FormatShort(st.TodaySeconds(now)))
	tbl.AddRow(bold.Sprint("Goal"), fmt.Sprintf("%s  %s", tui.FormatShort(st.DailyGoal()), progressText))

	weekly := st.WeeklySummary(now)
	tbl.AddRow(bold.Sprint("Last 7 days"), fmt.Sprintf("%s  %s",
		tui.FormatShort(weekly.Total), faint.Sprintf("%d sessions, %s/day", weekly.Count, tui.FormatShort(int64(weekly.Avg)))))
	tbl.AddRow(bold.Sprint("All time"), tui.FormatShort(st.TotalSeconds()))

	if last, ok := latestSession(st.Sessions()); ok {
		subj := st.Subject(last.SubjectID)
		tbl.AddRow(bold.Sprint("Last session"), fmt.Sprintf("%s of %s  %s",
			tui.FormatShort(last.Duration), subj.Name, faint.Sprint(humanize.RelTime(last.Start(), now, "ago", "from now"))))
	}
	if _, err := fmt.Fprintln(w, tbl); err != nil {
		return err
	}

	breakdown := st.Breakdown()
	if len(breakdown) == 0 {
		_, err := fmt.Fprintln(w, faint.Sprint("\nNo sessions recorded yet."))
		return err
	}

	total := st.TotalSeconds()
	sub := uitable.New()
	sub.Separator = "  "
	sub.AddRow(bold.Sprint("Subject"), bold.Sprint("Time"), bold.Sprint("Share"))
	for _, b := range breakdown {
		share := float64(b.Seconds) / float64(total) * 100
		sub.AddRow(b.Subject.Name, tui.FormatShort(b.Seconds), fmt.Sprintf("%.1f%%", share))
	}
	sub.RightAlign(1)
	sub.RightAlign(2)

	_, err := fmt.Fprintf(w, "\n%s\n", sub)
	return err
}

func latestSession(sessions []store.StudySession) (store.StudySession, bool) {
	if len(sessions) == 0 {
		return store.StudySession{}, false
	}
	last := sessions[0]
	for _, s := range sessions[1:] {
		if s.StartTime > last.StartTime {
			last = s
		}
	}
	return last, true
}
