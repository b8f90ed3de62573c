// Package ghstats provides corpus vital statistics: repository facts from
// the GitHub API and completion ratios computed from the concatenated
// metadata table.
package ghstats

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/franz/corpus-pages/internal/tab"
	"github.com/google/go-github/v57/github"
)

// Provider fetches statistics for one GitHub repository.
type Provider struct {
	owner, repo string
	client      *github.Client
}

// NewProvider creates a provider for "owner/repository". The token may be
// empty for public repositories.
func NewProvider(ownerRepo, token string) (*Provider, error) {
	parts := strings.SplitN(ownerRepo, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("repository must be passed as owner/repository_name, got %q", ownerRepo)
	}
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &Provider{owner: parts[0], repo: parts[1], client: client}, nil
}

// Stat is one row of the vital-statistics table.
type Stat struct {
	Name  string
	Value string
}

// VitalStats fetches the repository's vital statistics. Failures are
// fatal to the caller; there is no retry.
func (p *Provider) VitalStats(ctx context.Context) ([]Stat, error) {
	repo, _, err := p.client.Repositories.Get(ctx, p.owner, p.repo)
	if err != nil {
		return nil, fmt.Errorf("fetching %s/%s: %w", p.owner, p.repo, err)
	}
	return []Stat{
		{"Repository", repo.GetFullName()},
		{"Default branch", repo.GetDefaultBranch()},
		{"Size (KB)", strconv.Itoa(repo.GetSize())},
		{"Stars", strconv.Itoa(repo.GetStargazersCount())},
		{"Forks", strconv.Itoa(repo.GetForksCount())},
		{"Open issues", strconv.Itoa(repo.GetOpenIssuesCount())},
		{"Last push", repo.GetPushedAt().Format("2006-01-02")},
	}, nil
}

// Ratio is one completion ratio to be drawn as a pie chart.
type Ratio struct {
	Title    string
	Done     int
	DoneName string
	Open     int
	OpenName string
}

// CompletionRatios derives per-corpus annotation-completion ratios from a
// concatenated metadata table: scores with harmony labels against scores
// without. Corpora appear in table order.
func CompletionRatios(frame *tab.Frame) ([]Ratio, error) {
	corpora, err := frame.Col("corpus")
	if err != nil {
		return nil, fmt.Errorf("metadata table: %w", err)
	}
	labels, err := frame.Col("label_count")
	if err != nil {
		return nil, fmt.Errorf("metadata table: %w", err)
	}
	byCorpus := make(map[string]*Ratio)
	var order []string
	for i, corpus := range corpora {
		ratio, ok := byCorpus[corpus]
		if !ok {
			ratio = &Ratio{Title: corpus, DoneName: "annotated", OpenName: "unannotated"}
			byCorpus[corpus] = ratio
			order = append(order, corpus)
		}
		if count, err := strconv.Atoi(labels[i]); err == nil && count > 0 {
			ratio.Done++
		} else {
			ratio.Open++
		}
	}
	out := make([]Ratio, len(order))
	for i, corpus := range order {
		out[i] = *byCorpus[corpus]
	}
	return out, nil
}
