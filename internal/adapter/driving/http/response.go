package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/repobrowser/internal/application"
	"github.com/ericfisherdev/repobrowser/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// OwnerResponse is the JSON representation of a repository owner.
type OwnerResponse struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// RepoResponse is the JSON representation of a search result.
type RepoResponse struct {
	ID              int64         `json:"id"`
	FullName        string        `json:"full_name"`
	Description     string        `json:"description"`
	StargazersCount int           `json:"stargazers_count"`
	OpenIssues      int           `json:"open_issues"`
	HTMLURL         string        `json:"html_url"`
	Owner           OwnerResponse `json:"owner"`
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	Window string         `json:"window"`
	Cutoff string         `json:"cutoff"`
	Page   int            `json:"page"`
	Items  []RepoResponse `json:"items"`
}

// SelectionResponse is the JSON representation of a recorded selection.
type SelectionResponse struct {
	FullName   string `json:"full_name"`
	Window     string `json:"window"`
	Page       int    `json:"page"`
	SelectedAt string `json:"selected_at"`
}

// SelectionCountResponse reports how often a repository was selected.
type SelectionCountResponse struct {
	FullName string `json:"full_name"`
	Count    int    `json:"count"`
}

// HealthCheckResponse is one component entry in HealthResponse.
type HealthCheckResponse struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// HealthResponse is the health check response body.
type HealthResponse struct {
	Status   string                `json:"status"`
	Time     string                `json:"time"`
	Sessions int                   `json:"sessions"`
	Checks   []HealthCheckResponse `json:"checks"`
}

func toSearchResponse(p application.SearchPage) SearchResponse {
	items := make([]RepoResponse, 0, len(p.Items))
	for _, r := range p.Items {
		items = append(items, toRepoResponse(r))
	}

	return SearchResponse{
		Window: p.Window.Short(),
		Cutoff: p.Cutoff,
		Page:   p.Page,
		Items:  items,
	}
}

func toRepoResponse(r model.Repository) RepoResponse {
	return RepoResponse{
		ID:              r.ID,
		FullName:        r.FullName,
		Description:     r.Description,
		StargazersCount: r.StargazersCount,
		OpenIssues:      r.OpenIssuesCount,
		HTMLURL:         r.HTMLURL,
		Owner: OwnerResponse{
			Login:     r.Owner.Login,
			AvatarURL: r.Owner.AvatarURL,
		},
	}
}

func toSelectionResponse(s model.Selection) SelectionResponse {
	return SelectionResponse{
		FullName:   s.FullName,
		Window:     s.Window.Short(),
		Page:       s.Page,
		SelectedAt: s.SelectedAt.UTC().Format(time.RFC3339),
	}
}

func toHealthResponse(s application.HealthSummary, now time.Time) HealthResponse {
	checks := make([]HealthCheckResponse, 0, len(s.Checks))
	for _, c := range s.Checks {
		checks = append(checks, HealthCheckResponse{
			Name:   c.Name,
			Status: string(c.Status),
			Detail: c.Detail,
		})
	}

	return HealthResponse{
		Status:   string(s.Status),
		Time:     now.UTC().Format(time.RFC3339),
		Sessions: s.Sessions,
		Checks:   checks,
	}
}
