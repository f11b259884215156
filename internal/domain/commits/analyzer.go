// Package commits analyzes a repository's commit history against a
// hackathon window: activity volume, message quality, how evenly work was
// spread, and timing patterns that suggest pre-baked or bulk-imported code.
package commits

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/hackcheck/hackcheck/internal/domain"
)

const (
	suspiciousCommitSize = 1000
	// Commits per day considered full marks for frequency.
	targetFrequency = 4.0
	// Fraction of window commits in the small hours before the history
	// is flagged.
	unusualHourThreshold = 0.3
)

func unusualHour(h int) bool { return h >= 0 && h <= 4 }

// ContributorStats summarizes one author's activity.
type ContributorStats struct {
	Author           string   `json:"author"`
	CommitCount      int      `json:"commit_count"`
	LinesAdded       int      `json:"lines_added"`
	LinesDeleted     int      `json:"lines_deleted"`
	FilesModified    int      `json:"files_modified"`
	CommitTimes      []string `json:"commit_times"`
	AvgCommitSize    float64  `json:"avg_commit_size"`
	AvgMessageLength float64  `json:"avg_message_length"`
}

// TimelineEntry is one commit in chronological display order.
type TimelineEntry struct {
	Hash            string `json:"hash"`
	Date            string `json:"date"`
	Message         string `json:"message"`
	Author          string `json:"author"`
	DuringHackathon bool   `json:"during_hackathon"`
}

// SuspiciousCommit is a commit flagged for unusual size.
type SuspiciousCommit struct {
	Hash         string `json:"hash"`
	Date         string `json:"date"`
	LinesChanged int    `json:"lines_changed"`
	Author       string `json:"author"`
	Message      string `json:"message"`
}

// HourCount pairs an hour of day with its commit count.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// PatternDetails carries the evidence behind a suspicious-patterns flag.
type PatternDetails struct {
	UnusualHourCommits     int                `json:"unusual_hour_commits"`
	LargeCommits           int                `json:"large_commits"`
	SuspiciousCommits      []SuspiciousCommit `json:"suspicious_commits"`
	MostActiveHours        []HourCount        `json:"most_active_hours"`
	CommitHourDistribution map[string]int     `json:"commit_hour_distribution"`
}

// Report is the full commit-history analysis.
type Report struct {
	TotalCommits            int                `json:"total_commits"`
	HackathonCommits        int                `json:"hackathon_commits"`
	CommitDistributionScore float64            `json:"commit_distribution_score"`
	SuspiciousPatterns      bool               `json:"suspicious_patterns"`
	PatternDetails          PatternDetails     `json:"pattern_details"`
	ContributorStats        []ContributorStats `json:"contributor_stats"`
	MessageQuality          float64            `json:"message_quality"`
	FrequencyScore          float64            `json:"frequency_score"`
	CommitTimeline          []TimelineEntry    `json:"commit_timeline"`
}

type contributorAccum struct {
	commitCount    int
	linesAdded     int
	linesDeleted   int
	filesModified  int
	commitTimes    []string
	commitSizes    []float64
	messageLengths []float64
}

// Analyze inspects a commit log against the hackathon window. Commits are
// expected newest-first, as a log normally arrives.
func Analyze(log []domain.Commit, start, end time.Time) Report {
	report := Report{
		CommitDistributionScore: 1.0,
		MessageQuality:          0.8,
		FrequencyScore:          0.5,
		CommitTimeline:          []TimelineEntry{},
		ContributorStats:        []ContributorStats{},
		PatternDetails: PatternDetails{
			SuspiciousCommits:      []SuspiciousCommit{},
			MostActiveHours:        []HourCount{},
			CommitHourDistribution: map[string]int{},
		},
	}

	report.TotalCommits = len(log)
	if len(log) == 0 {
		return report
	}

	var (
		commitDates []time.Time
		messages    []string
		hours       []int
		suspicious  []SuspiciousCommit
	)
	contributors := map[string]*contributorAccum{}
	var order []string

	for _, c := range log {
		when := c.When.UTC()
		inWindow := !when.Before(start) && !when.After(end)
		if inWindow {
			report.HackathonCommits++
		}

		commitDates = append(commitDates, when)
		hours = append(hours, when.Hour())
		messages = append(messages, c.Message)

		acc := contributors[c.Author]
		if acc == nil {
			acc = &contributorAccum{}
			contributors[c.Author] = acc
			order = append(order, c.Author)
		}
		acc.commitCount++
		acc.commitTimes = append(acc.commitTimes, when.Format(time.RFC3339))
		acc.messageLengths = append(acc.messageLengths, float64(len(c.Message)))

		size := c.LinesAdded + c.LinesDeleted
		acc.commitSizes = append(acc.commitSizes, float64(size))
		acc.linesAdded += c.LinesAdded
		acc.linesDeleted += c.LinesDeleted
		acc.filesModified += c.FilesChanged

		if size > suspiciousCommitSize {
			suspicious = append(suspicious, SuspiciousCommit{
				Hash:         c.Hash,
				Date:         when.Format(time.RFC3339),
				LinesChanged: size,
				Author:       c.Author,
				Message:      strings.TrimSpace(c.Message),
			})
		}

		report.CommitTimeline = append(report.CommitTimeline, TimelineEntry{
			Hash:            shortHash(c.Hash),
			Date:            when.Format(time.RFC3339),
			Message:         strings.TrimSpace(c.Message),
			Author:          c.Author,
			DuringHackathon: inWindow,
		})
	}

	report.MessageQuality = MessageQuality(messages)

	if report.HackathonCommits > 0 {
		var inWindow []time.Time
		for _, d := range commitDates {
			if !d.Before(start) && !d.After(end) {
				inWindow = append(inWindow, d)
			}
		}
		report.CommitDistributionScore = DistributionScore(inWindow, start, end)
	}
	report.FrequencyScore = FrequencyScore(commitDates, start, end)

	for _, author := range order {
		acc := contributors[author]
		times := acc.commitTimes
		if len(times) > 10 {
			times = times[:10]
		}
		report.ContributorStats = append(report.ContributorStats, ContributorStats{
			Author:           author,
			CommitCount:      acc.commitCount,
			LinesAdded:       acc.linesAdded,
			LinesDeleted:     acc.linesDeleted,
			FilesModified:    acc.filesModified,
			CommitTimes:      times,
			AvgCommitSize:    meanOrZero(acc.commitSizes),
			AvgMessageLength: meanOrZero(acc.messageLengths),
		})
	}
	sort.SliceStable(report.ContributorStats, func(i, j int) bool {
		if report.ContributorStats[i].CommitCount != report.ContributorStats[j].CommitCount {
			return report.ContributorStats[i].CommitCount > report.ContributorStats[j].CommitCount
		}
		return report.ContributorStats[i].Author < report.ContributorStats[j].Author
	})

	unusualCount := 0
	for _, h := range hours {
		if unusualHour(h) {
			unusualCount++
		}
	}

	report.SuspiciousPatterns = len(suspicious) > 0 ||
		float64(unusualCount) > float64(report.HackathonCommits)*unusualHourThreshold

	top := suspicious
	if len(top) > 5 {
		top = top[:5]
	}
	report.PatternDetails = PatternDetails{
		UnusualHourCommits:     unusualCount,
		LargeCommits:           len(suspicious),
		SuspiciousCommits:      top,
		MostActiveHours:        mostActiveHours(hours),
		CommitHourDistribution: hourDistribution(hours),
	}

	return report
}

// MessageQuality scores commit messages in [0, 1]. Very short messages are
// penalized hard; longer messages earn bonuses for an imperative verb, a
// descriptive body after a colon, and issue references.
func MessageQuality(messages []string) float64 {
	if len(messages) == 0 {
		return 0.5
	}

	var scores []float64
	for _, msg := range messages {
		score := 0.5
		trimmed := strings.TrimSpace(msg)
		lower := strings.ToLower(msg)

		switch {
		case len(trimmed) < 5:
			score = 0.1
		case len(trimmed) > 20:
			score = 0.8
			if verbPrefix.MatchString(lower) {
				score += 0.1
			}
			if idx := strings.Index(msg, ":"); idx >= 0 && len(strings.TrimSpace(msg[idx+1:])) > 10 {
				score += 0.1
			}
			if issueRef.MatchString(lower) {
				score += 0.2
			}
		}
		if score > 1.0 {
			score = 1.0
		}
		scores = append(scores, score)
	}

	mean, err := stats.Mean(scores)
	if err != nil {
		return 0.5
	}
	return mean
}

var (
	verbPrefix = regexp.MustCompile(`^(fix|add|update|remove|refactor|implement|improve)`)
	issueRef   = regexp.MustCompile(`\b(fixes|resolves|closes)\s+#\d+\b`)
)

// DistributionScore measures how evenly window commits are spread:
// 0.7 weight on the fraction of hackathon days with any commit, 0.3 on the
// regularity of inter-commit gaps. A single commit scores coverage only.
func DistributionScore(dates []time.Time, start, end time.Time) float64 {
	if len(dates) == 0 {
		return 0.0
	}

	duration := end.Sub(start).Seconds()
	if duration <= 0 {
		return 1.0
	}

	dayBuckets := map[int]bool{}
	startDay := start.Truncate(24 * time.Hour)
	for _, d := range dates {
		dayBuckets[int(d.Truncate(24*time.Hour).Sub(startDay).Hours()/24)] = true
	}

	totalDays := int(end.Truncate(24*time.Hour).Sub(startDay).Hours()/24) + 1
	coverage := 0.0
	if totalDays > 0 {
		coverage = float64(len(dayBuckets)) / float64(totalDays)
	}

	if len(dates) <= 1 {
		return coverage
	}

	sorted := make([]time.Time, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	var gaps []float64
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, sorted[i].Sub(sorted[i-1]).Seconds())
	}

	// Identical timestamps give zero spread, which is perfectly even.
	evenness := 1.0
	if stdev, err := stats.StandardDeviationSample(gaps); err == nil && stdev > 0 {
		meanGap := duration / float64(len(dates))
		evenness = meanGap / stdev
		if evenness > 1.0 {
			evenness = 1.0
		}
	}

	score := coverage*0.7 + evenness*0.3
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// FrequencyScore rewards sustained activity: full marks at four or more
// window commits per hackathon day.
func FrequencyScore(dates []time.Time, start, end time.Time) float64 {
	if len(dates) == 0 {
		return 0.0
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days <= 0 {
		return 0.5
	}

	inWindow := 0
	for _, d := range dates {
		if !d.Before(start) && !d.After(end) {
			inWindow++
		}
	}
	if inWindow == 0 {
		return 0.0
	}

	perDay := float64(inWindow) / float64(days)
	score := perDay / targetFrequency
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func mostActiveHours(hours []int) []HourCount {
	counts := map[int]int{}
	for _, h := range hours {
		counts[h]++
	}
	out := make([]HourCount, 0, len(counts))
	for h, c := range counts {
		out = append(out, HourCount{Hour: h, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Hour < out[j].Hour
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

func hourDistribution(hours []int) map[string]int {
	out := make(map[string]int, 24)
	for h := 0; h < 24; h++ {
		out[strconv.Itoa(h)] = 0
	}
	for _, h := range hours {
		out[strconv.Itoa(h)]++
	}
	return out
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

func meanOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return mean
}
