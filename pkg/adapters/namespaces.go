package adapters

import (
	"fmt"
	"net/url"
	"os"

	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/clock"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/model"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/transport"
)

// GitHubOption tunes the GitHub adapters. The only knob today is which
// environment variable carries the optional API token.
type GitHubOption func(*githubConfig)

type githubConfig struct {
	tokenEnv string
}

// WithTokenEnv names the environment variable holding a GitHub token used
// to raise API rate limits. Defaults to GITHUB_TOKEN. The token value
// itself is sent as an Authorization header and never logged or embedded
// in evidence repro commands.
func WithTokenEnv(name string) GitHubOption {
	return func(c *githubConfig) {
		if name != "" {
			c.tokenEnv = name
		}
	}
}

func githubConfigFrom(opts []GitHubOption) githubConfig {
	c := githubConfig{tokenEnv: "GITHUB_TOKEN"}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// GitHubOrgQuery is the canonical query shape for the github_org namespace.
type GitHubOrgQuery struct {
	Org string `json:"org"`
}

// NewGitHubOrgAdapter builds the adapter checking organization-name
// availability on GitHub.
func NewGitHubOrgAdapter(t transport.Transport, now clock.Clock, opts ...GitHubOption) *Adapter {
	gc := githubConfigFrom(opts)
	return newAdapter(spec{
		namespace: model.NamespaceGitHubOrg,
		errTag:    "GITHUB",
		table:     registryTable,
		buildURL: func(q any) (string, error) {
			query, ok := q.(GitHubOrgQuery)
			if !ok {
				return "", fmt.Errorf("github_org: expected GitHubOrgQuery, got %T", q)
			}
			return "https://api.github.com/orgs/" + url.PathEscape(query.Org), nil
		},
		headers:      gc.headers,
		reproHeaders: gc.reproHeaders,
	}, t, now)
}

// GitHubRepoQuery is the canonical query shape for the github_repo namespace.
type GitHubRepoQuery struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// NewGitHubRepoAdapter builds the adapter checking repository-name
// availability under a given owner on GitHub.
func NewGitHubRepoAdapter(t transport.Transport, now clock.Clock, opts ...GitHubOption) *Adapter {
	gc := githubConfigFrom(opts)
	return newAdapter(spec{
		namespace: model.NamespaceGitHubRepo,
		errTag:    "GITHUB",
		table:     registryTable,
		buildURL: func(q any) (string, error) {
			query, ok := q.(GitHubRepoQuery)
			if !ok {
				return "", fmt.Errorf("github_repo: expected GitHubRepoQuery, got %T", q)
			}
			return fmt.Sprintf("https://api.github.com/repos/%s/%s",
				url.PathEscape(query.Owner), url.PathEscape(query.Name)), nil
		},
		headers:      gc.headers,
		reproHeaders: gc.reproHeaders,
	}, t, now)
}

func (c githubConfig) headers() map[string]string {
	h := map[string]string{"Accept": "application/vnd.github+json"}
	if token := os.Getenv(c.tokenEnv); token != "" {
		h["Authorization"] = "Bearer " + token
	}
	return h
}

// reproHeaders mirrors headers but references the token by environment
// variable, so the evidence repro commands stay replayable without ever
// embedding the secret itself.
func (c githubConfig) reproHeaders() map[string]string {
	h := map[string]string{"Accept": "application/vnd.github+json"}
	if os.Getenv(c.tokenEnv) != "" {
		h["Authorization"] = "Bearer $" + c.tokenEnv
	}
	return h
}

// NPMQuery is the canonical query shape for the npm namespace.
type NPMQuery struct {
	Name string `json:"name"`
}

// NewNPMAdapter builds the adapter checking package-name availability on
// the npm registry.
func NewNPMAdapter(t transport.Transport, now clock.Clock) *Adapter {
	return newAdapter(spec{
		namespace: model.NamespaceNPM,
		errTag:    "NPM",
		table:     registryTable,
		buildURL: func(q any) (string, error) {
			query, ok := q.(NPMQuery)
			if !ok {
				return "", fmt.Errorf("npm: expected NPMQuery, got %T", q)
			}
			return "https://registry.npmjs.org/" + url.PathEscape(query.Name), nil
		},
		headers: jsonAcceptHeaders,
	}, t, now)
}

// PyPIQuery is the canonical query shape for the pypi namespace.
type PyPIQuery struct {
	Name string `json:"name"`
}

// NewPyPIAdapter builds the adapter checking package-name availability on
// PyPI.
func NewPyPIAdapter(t transport.Transport, now clock.Clock) *Adapter {
	return newAdapter(spec{
		namespace: model.NamespacePyPI,
		errTag:    "PYPI",
		table:     registryTable,
		buildURL: func(q any) (string, error) {
			query, ok := q.(PyPIQuery)
			if !ok {
				return "", fmt.Errorf("pypi: expected PyPIQuery, got %T", q)
			}
			return "https://pypi.org/pypi/" + url.PathEscape(query.Name) + "/json", nil
		},
		headers: jsonAcceptHeaders,
	}, t, now)
}

// CratesQuery is the canonical query shape for the crates namespace.
type CratesQuery struct {
	Name string `json:"name"`
}

// NewCratesAdapter builds the adapter checking crate-name availability on
// crates.io.
func NewCratesAdapter(t transport.Transport, now clock.Clock) *Adapter {
	return newAdapter(spec{
		namespace: model.NamespaceCratesIO,
		errTag:    "CRATES",
		table:     registryTable,
		buildURL: func(q any) (string, error) {
			query, ok := q.(CratesQuery)
			if !ok {
				return "", fmt.Errorf("crates: expected CratesQuery, got %T", q)
			}
			return "https://crates.io/api/v1/crates/" + url.PathEscape(query.Name), nil
		},
		headers: jsonAcceptHeaders,
	}, t, now)
}

// DockerHubQuery is the canonical query shape for the dockerhub namespace.
type DockerHubQuery struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

// NewDockerHubAdapter builds the adapter checking repository-name
// availability on Docker Hub.
func NewDockerHubAdapter(t transport.Transport, now clock.Clock) *Adapter {
	return newAdapter(spec{
		namespace: model.NamespaceDockerHub,
		errTag:    "DOCKERHUB",
		table:     registryTable,
		buildURL: func(q any) (string, error) {
			query, ok := q.(DockerHubQuery)
			if !ok {
				return "", fmt.Errorf("dockerhub: expected DockerHubQuery, got %T", q)
			}
			ns := query.Namespace
			if ns == "" {
				ns = "library"
			}
			return fmt.Sprintf("https://hub.docker.com/v2/repositories/%s/%s/",
				url.PathEscape(ns), url.PathEscape(query.Name)), nil
		},
		headers: jsonAcceptHeaders,
	}, t, now)
}

// HuggingFaceModelQuery is the canonical query shape for the
// huggingface_model namespace.
type HuggingFaceModelQuery struct {
	Name string `json:"name"`
}

// NewHuggingFaceModelAdapter builds the adapter checking model-name
// availability on the Hugging Face Hub.
func NewHuggingFaceModelAdapter(t transport.Transport, now clock.Clock) *Adapter {
	return newAdapter(spec{
		namespace: model.NamespaceHuggingFaceModel,
		errTag:    "HUGGINGFACE",
		table:     registryTable,
		buildURL: func(q any) (string, error) {
			query, ok := q.(HuggingFaceModelQuery)
			if !ok {
				return "", fmt.Errorf("huggingface_model: expected HuggingFaceModelQuery, got %T", q)
			}
			return "https://huggingface.co/api/models/" + url.PathEscape(query.Name), nil
		},
		headers: jsonAcceptHeaders,
	}, t, now)
}

// HuggingFaceSpaceQuery is the canonical query shape for the
// huggingface_space namespace.
type HuggingFaceSpaceQuery struct {
	Name string `json:"name"`
}

// NewHuggingFaceSpaceAdapter builds the adapter checking space-name
// availability on the Hugging Face Hub.
func NewHuggingFaceSpaceAdapter(t transport.Transport, now clock.Clock) *Adapter {
	return newAdapter(spec{
		namespace: model.NamespaceHuggingFaceSpace,
		errTag:    "HUGGINGFACE",
		table:     registryTable,
		buildURL: func(q any) (string, error) {
			query, ok := q.(HuggingFaceSpaceQuery)
			if !ok {
				return "", fmt.Errorf("huggingface_space: expected HuggingFaceSpaceQuery, got %T", q)
			}
			return "https://huggingface.co/api/spaces/" + url.PathEscape(query.Name), nil
		},
		headers: jsonAcceptHeaders,
	}, t, now)
}

// DomainQuery is the canonical query shape for the domain namespace.
// CandidateMark is the bare mark being cleared; Value is the fully
// qualified domain name actually queried (e.g. "example.com" for the
// "example" mark against the ".com" TLD).
type DomainQuery struct {
	CandidateMark string `json:"candidateMark"`
	Value         string `json:"value"`
}

// NewDomainAdapter builds the adapter checking domain-name registration
// status via RDAP.
func NewDomainAdapter(t transport.Transport, now clock.Clock) *Adapter {
	return newAdapter(spec{
		namespace: model.NamespaceDomain,
		errTag:    "DOMAIN",
		table:     domainTable,
		buildURL: func(q any) (string, error) {
			query, ok := q.(DomainQuery)
			if !ok {
				return "", fmt.Errorf("domain: expected DomainQuery, got %T", q)
			}
			return "https://rdap.org/domain/" + url.PathEscape(query.Value), nil
		},
		headers: func() map[string]string {
			return map[string]string{"Accept": "application/rdap+json"}
		},
	}, t, now)
}

func jsonAcceptHeaders() map[string]string {
	return map[string]string{"Accept": "application/json"}
}
