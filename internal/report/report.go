// Package report renders simulation results as plain text.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/maxviazov/football-sim/internal/model"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// Standings prints a league table.
func Standings(w io.Writer, title string, rows []model.StandingRow) error {
	if title != "" {
		if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
			return err
		}
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "Pos\tTeam\tP\tW\tD\tL\tGF\tGA\tGD\tPts")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%+d\t%d\n",
			r.Position, r.Team, r.Played, r.Wins, r.Draws, r.Losses, r.GoalsScored, r.GoalsConceded, r.GoalDifferential, r.Points)
	}
	return tw.Flush()
}

// Match prints the score line followed by the goals.
func Match(w io.Writer, m model.MatchResult) error {
	if _, err := fmt.Fprintln(w, scoreLine(m)); err != nil {
		return err
	}
	for _, g := range m.Goals {
		line := fmt.Sprintf("  %d' %s (%s)", g.Minute, g.Scorer, g.Team)
		if g.Assister != "" {
			line += fmt.Sprintf(", assist %s", g.Assister)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(m.Injuries) > 0 {
		if _, err := fmt.Fprintf(w, "  injured: %s\n", strings.Join(m.Injuries, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// Matchday prints every result of one matchday, aligned.
func Matchday(w io.Writer, md model.MatchdayResult) error {
	if _, err := fmt.Fprintf(w, "Matchday %d\n", md.Number); err != nil {
		return err
	}
	tw := newTable(w)
	for _, m := range md.Matches {
		fmt.Fprintf(tw, "  %s\t%d - %d\t%s\n", m.Home, m.HomeScore, m.AwayScore, m.Away)
	}
	return tw.Flush()
}

// TopScorers prints the scoring chart.
func TopScorers(w io.Writer, rows []model.ScorerRow) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "#\tPlayer\tTeam\tG\tA")
	for i, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", i+1, r.Player, r.Team, r.Goals, r.Assists)
	}
	return tw.Flush()
}

// Bracket prints each knockout round with its slots.
func Bracket(w io.Writer, rounds []model.RoundResult) error {
	for _, r := range rounds {
		if _, err := fmt.Fprintf(w, "%s\n", r.Name); err != nil {
			return err
		}
		tw := newTable(w)
		for _, s := range r.Slots {
			switch {
			case s.Bye != "":
				fmt.Fprintf(tw, "  %s\tbye\t\n", s.Bye)
			case s.Match != nil && s.Match.Completed:
				fmt.Fprintf(tw, "  %s\t%d - %d\t%s\t-> %s\n", s.Match.Home, s.Match.HomeScore, s.Match.AwayScore, s.Match.Away, s.Winner)
			case s.Match != nil:
				fmt.Fprintf(tw, "  %s\tvs\t%s\n", s.Match.Home, s.Match.Away)
			case s.Home != "":
				fmt.Fprintf(tw, "  %s\tvs\tTBD\n", s.Home)
			default:
				fmt.Fprintf(tw, "  TBD\tvs\tTBD\n")
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// League prints a season summary; verbose adds every matchday.
func League(w io.Writer, rep model.LeagueReport, verbose bool) error {
	title := rep.Name
	if rep.Region != "" {
		title = fmt.Sprintf("%s (%s)", rep.Name, rep.Region)
	}
	if verbose {
		for _, md := range rep.Matchdays {
			if err := Matchday(w, md); err != nil {
				return err
			}
		}
	}
	if err := Standings(w, title, rep.Standings); err != nil {
		return err
	}
	if len(rep.TopScorers) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Top scorers"); err != nil {
		return err
	}
	return TopScorers(w, rep.TopScorers)
}

// Tournament prints the bracket and the champion; verbose adds goal details for every match.
func Tournament(w io.Writer, rep model.TournamentReport, verbose bool) error {
	if _, err := fmt.Fprintf(w, "%s\n", rep.Name); err != nil {
		return err
	}
	if err := Bracket(w, rep.Rounds); err != nil {
		return err
	}
	if verbose {
		for _, r := range rep.Rounds {
			for _, s := range r.Slots {
				if s.Match == nil || !s.Match.Completed {
					continue
				}
				if err := Match(w, *s.Match); err != nil {
					return err
				}
			}
		}
	}
	_, err := fmt.Fprintf(w, "%s winner: %s\n", rep.Name, rep.Winner)
	return err
}

// Championship prints every league, the qualifiers and the cup.
func Championship(w io.Writer, rep model.ChampionshipReport, verbose bool) error {
	for _, l := range rep.Leagues {
		if err := League(w, l, verbose); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Qualified: %s\n\n", strings.Join(rep.Qualified, ", ")); err != nil {
		return err
	}
	if err := Tournament(w, rep.Cup, verbose); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "seed: %d\n", rep.Seed)
	return err
}

func scoreLine(m model.MatchResult) string {
	label := ""
	if m.Label != "" {
		label = "[" + m.Label + "] "
	}
	if !m.Completed {
		return fmt.Sprintf("%s%s vs %s", label, m.Home, m.Away)
	}
	return fmt.Sprintf("%s%s %d - %d %s", label, m.Home, m.HomeScore, m.AwayScore, m.Away)
}
