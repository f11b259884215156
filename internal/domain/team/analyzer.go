// Package team cross-checks the declared DevPost team against the actual
// GitHub contributor list: how evenly the work was shared, and whether the
// people who committed are the people on the submission.
package team

import (
	"sort"
	"strings"

	"github.com/fatih/camelcase"

	"github.com/hackcheck/hackcheck/internal/domain"
	"github.com/hackcheck/hackcheck/internal/domain/commits"
)

// ContributorShare pairs a GitHub login with its contribution count.
type ContributorShare struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

// ContributorPattern is the per-author commit activity kept for reporting.
type ContributorPattern struct {
	CommitCount   int      `json:"commit_count"`
	LinesAdded    int      `json:"lines_added"`
	LinesDeleted  int      `json:"lines_deleted"`
	FilesModified int      `json:"files_modified"`
	CommitTimes   []string `json:"commit_times"`
}

// ContributionDetails carries the evidence behind the balance verdict.
type ContributionDetails struct {
	Contributors         []ContributorShare            `json:"contributors,omitempty"`
	BalanceMetric        float64                       `json:"balance_metric,omitempty"`
	MaxContributionRatio float64                       `json:"max_contribution_ratio,omitempty"`
	Patterns             map[string]ContributorPattern `json:"patterns,omitempty"`
}

// MismatchDetails carries the evidence behind the team-match verdict.
type MismatchDetails struct {
	DevPostMembers     []string `json:"devpost_members,omitempty"`
	GitHubContributors []string `json:"github_contributors,omitempty"`
	MatchScore         float64  `json:"match_score,omitempty"`
}

// Report is the team-compliance analysis.
type Report struct {
	TeamSize              int                 `json:"team_size"`
	ContributorCount      int                 `json:"contributor_count"`
	ContributionBalance   float64             `json:"contribution_balance"`
	ContributionImbalance bool                `json:"contribution_imbalance"`
	GitHubTeamMatch       float64             `json:"github_team_match"`
	GitHubTeamMismatch    bool                `json:"github_team_mismatch"`
	ContributionDetails   ContributionDetails `json:"contribution_details"`
	MismatchDetails       MismatchDetails     `json:"mismatch_details"`
}

// Analyze compares the declared team with the repository's contributors.
// Balance is 1 minus the Gini coefficient of contribution counts, so 1.0
// means perfectly even work. Imbalance flags when one person owns over 80%
// of the contributions or balance drops under 0.4; mismatch flags when the
// fuzzy name match between the two rosters falls under 0.7.
func Analyze(devpostMembers []string, contributors []domain.Contributor, commitStats []commits.ContributorStats) Report {
	report := Report{
		TeamSize:            len(devpostMembers),
		ContributorCount:    len(contributors),
		ContributionBalance: 1.0,
		GitHubTeamMatch:     1.0,
	}

	if len(contributors) > 0 {
		var counts []int
		total := 0
		for _, c := range contributors {
			counts = append(counts, c.Contributions)
			total += c.Contributions
			report.ContributionDetails.Contributors = append(report.ContributionDetails.Contributors, ContributorShare{
				Login:         c.Login,
				Contributions: c.Contributions,
			})
		}

		if len(counts) > 1 && total > 0 {
			report.ContributionBalance = 1.0 - gini(counts)

			maxCount := 0
			for _, c := range counts {
				if c > maxCount {
					maxCount = c
				}
			}
			maxRatio := float64(maxCount) / float64(total)

			report.ContributionImbalance = maxRatio > 0.8 || report.ContributionBalance < 0.4
			report.ContributionDetails.BalanceMetric = report.ContributionBalance
			report.ContributionDetails.MaxContributionRatio = maxRatio
		}
	}

	if len(devpostMembers) > 0 && len(contributors) > 0 {
		score := MatchScore(devpostMembers, contributors)
		report.GitHubTeamMatch = score
		report.GitHubTeamMismatch = score < 0.7

		logins := make([]string, 0, len(contributors))
		for _, c := range contributors {
			logins = append(logins, c.Login)
		}
		report.MismatchDetails = MismatchDetails{
			DevPostMembers:     devpostMembers,
			GitHubContributors: logins,
			MatchScore:         score,
		}
	}

	if len(commitStats) > 0 {
		patterns := make(map[string]ContributorPattern, len(commitStats))
		for _, stat := range commitStats {
			if stat.Author == "" {
				continue
			}
			patterns[stat.Author] = ContributorPattern{
				CommitCount:   stat.CommitCount,
				LinesAdded:    stat.LinesAdded,
				LinesDeleted:  stat.LinesDeleted,
				FilesModified: stat.FilesModified,
				CommitTimes:   stat.CommitTimes,
			}
		}
		report.ContributionDetails.Patterns = patterns
	}

	return report
}

// gini computes the Gini coefficient of a contribution distribution,
// 0 for perfect equality and approaching 1 for total concentration.
func gini(counts []int) float64 {
	sorted := make([]int, len(counts))
	copy(sorted, counts)
	sort.Ints(sorted)

	n := len(sorted)
	sum := 0
	weighted := 0
	for i, c := range sorted {
		sum += c
		weighted += (i + 1) * c
	}
	if sum == 0 {
		return 0
	}
	return 2*float64(weighted)/(float64(n)*float64(sum)) - float64(n+1)/float64(n)
}

// MatchScore fuzzily matches declared member names against GitHub logins.
// Exact login matches earn full credit; a significant name part appearing
// in a login earns 0.8; initials-style logins earn 0.7. The total is
// divided by the larger roster, with a 20% penalty when GitHub shows
// noticeably more contributors than the submission declares.
func MatchScore(devpostMembers []string, contributors []domain.Contributor) float64 {
	logins := make([]string, 0, len(contributors))
	for _, c := range contributors {
		logins = append(logins, strings.ToLower(c.Login))
	}

	matched := 0.0
	for _, member := range devpostMembers {
		memberLower := strings.ToLower(member)

		if containsString(logins, memberLower) {
			matched += 1.0
			continue
		}

		memberParts := nameParts(memberLower)
		for _, login := range logins {
			if partialMatch(memberParts, login) {
				matched += 0.8
				break
			}
			if initialsMatch(memberParts, login) {
				matched += 0.7
				break
			}
		}
	}

	maxPossible := len(devpostMembers)
	if len(contributors) > maxPossible {
		maxPossible = len(contributors)
	}
	if maxPossible == 0 {
		return 0
	}

	ratio := matched / float64(maxPossible)
	if float64(len(contributors)) > float64(len(devpostMembers))*1.5 {
		ratio *= 0.8
	}
	if ratio > 1.0 {
		ratio = 1.0
	}
	return ratio
}

// nameParts splits a name or login into lowercase tokens on separators and
// camel-case boundaries, so "JohnDoe", "john.doe" and "john-doe" all yield
// the same parts.
func nameParts(s string) []string {
	replaced := strings.NewReplacer(".", " ", "-", " ", "_", " ").Replace(s)
	var parts []string
	for _, field := range strings.Fields(replaced) {
		for _, token := range camelcase.Split(field) {
			token = strings.ToLower(strings.TrimSpace(token))
			if token != "" {
				parts = append(parts, token)
			}
		}
	}
	return parts
}

func partialMatch(memberParts []string, login string) bool {
	for _, part := range memberParts {
		if len(part) > 2 && strings.Contains(login, part) {
			return true
		}
	}
	return false
}

func initialsMatch(memberParts []string, login string) bool {
	if len(login) < 2 || len(memberParts) == 0 {
		return false
	}
	for _, part := range memberParts {
		if part == "" || !strings.HasPrefix(login, part[:1]) {
			return false
		}
	}
	return true
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
