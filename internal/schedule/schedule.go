// Package schedule builds league fixture lists.
package schedule

import (
	"fmt"
	"time"

	"github.com/maxviazov/football-sim/internal/match"
	"github.com/maxviazov/football-sim/internal/model"
)

// DefaultInterval separates consecutive matchdays.
const DefaultInterval = 7 * 24 * time.Hour

// Matchday is one round of a league schedule; every team plays at most once in it.
type Matchday struct {
	Number  int
	Kickoff time.Time
	Matches []*match.Match
}

// Completed reports whether every fixture of the matchday has been played.
func (d Matchday) Completed() bool {
	for _, m := range d.Matches {
		if !m.Completed() {
			return false
		}
	}
	return true
}

// Options controls kickoff dates. A zero Start leaves kickoffs unset.
type Options struct {
	Start    time.Time
	Interval time.Duration
}

// DoubleRoundRobin pairs every team with every other team twice, home and away, using the circle method.
// teams must be an even number (at least 2) of distinct teams. The result has 2(N-1) matchdays of N/2 matches.
func DoubleRoundRobin(teams []*model.Team, opts Options) ([]Matchday, error) {
	n := len(teams)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 teams, got %d", model.ErrInvalidArgument, n)
	}
	if n%2 != 0 {
		return nil, fmt.Errorf("%w: odd team count %d is not supported", model.ErrInvalidArgument, n)
	}
	seen := make(map[*model.Team]struct{}, n)
	for _, t := range teams {
		if t == nil {
			return nil, fmt.Errorf("%w: nil team in schedule", model.ErrInvalidArgument)
		}
		if _, dup := seen[t]; dup {
			return nil, fmt.Errorf("%w: %s listed twice", model.ErrInvalidArgument, t.Name)
		}
		seen[t] = struct{}{}
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}

	legDays := n - 1
	days := make([]Matchday, 0, 2*legDays)
	circle := make([]*model.Team, n)
	copy(circle, teams)

	for d := 0; d < legDays; d++ {
		md := Matchday{Number: d + 1, Matches: make([]*match.Match, 0, n/2)}
		for i := 0; i < n/2; i++ {
			m, err := match.New(circle[i], circle[n-1-i], "")
			if err != nil {
				return nil, err
			}
			md.Matches = append(md.Matches, m)
		}
		days = append(days, md)
		rotate(circle)
	}

	for d := 0; d < legDays; d++ {
		first := days[d]
		md := Matchday{Number: legDays + d + 1, Matches: make([]*match.Match, 0, n/2)}
		for _, fm := range first.Matches {
			m, err := match.New(fm.Away(), fm.Home(), "")
			if err != nil {
				return nil, err
			}
			md.Matches = append(md.Matches, m)
		}
		days = append(days, md)
	}

	for k := range days {
		label := fmt.Sprintf("MD%d", days[k].Number)
		if !opts.Start.IsZero() {
			days[k].Kickoff = opts.Start.Add(time.Duration(k) * opts.Interval)
		}
		for _, m := range days[k].Matches {
			m.Label = label
			m.Kickoff = days[k].Kickoff
		}
	}
	return days, nil
}

// rotate keeps circle[0] fixed and moves every other team one seat clockwise.
func rotate(circle []*model.Team) {
	if len(circle) < 3 {
		return
	}
	last := circle[len(circle)-1]
	copy(circle[2:], circle[1:len(circle)-1])
	circle[1] = last
}
