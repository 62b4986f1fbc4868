package store

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/interfaces"
	httppkg "github.com/trigg3rX/sybil-verifier/pkg/http"
	"github.com/trigg3rX/sybil-verifier/pkg/logging"
	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

const DefaultGitHubAPIURL = "https://api.github.com"

// GitHubConfig locates the JSON document holding every attestation
type GitHubConfig struct {
	APIURL   string
	Token    string
	Repo     string // owner/name
	FilePath string
	Branch   string
}

// GitHubStore keeps all attestations in one JSON file committed through the
// GitHub contents API. The file's blob sha guards each commit, so a write
// based on a stale document is refused by GitHub.
type GitHubStore struct {
	config GitHubConfig
	client httppkg.HTTPClientInterface
	logger logging.Logger
}

type contentsResponse struct {
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type contentsUpdate struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

type attestationDocument map[string]types.AttestationRecord

func NewGitHubStore(config GitHubConfig, client httppkg.HTTPClientInterface, logger logging.Logger) (*GitHubStore, error) {
	if config.Repo == "" || !strings.Contains(config.Repo, "/") {
		return nil, fmt.Errorf("github repo must be owner/name, got %q", config.Repo)
	}
	if config.FilePath == "" {
		return nil, errors.New("github file path is required")
	}
	if config.APIURL == "" {
		config.APIURL = DefaultGitHubAPIURL
	}
	config.APIURL = strings.TrimRight(config.APIURL, "/")
	return &GitHubStore{config: config, client: client, logger: logger}, nil
}

func (s *GitHubStore) fileURL() string {
	return fmt.Sprintf("%s/repos/%s/contents/%s", s.config.APIURL, s.config.Repo, strings.TrimLeft(s.config.FilePath, "/"))
}

func (s *GitHubStore) contentsURL() string {
	u := s.fileURL()
	if s.config.Branch != "" {
		u += "?ref=" + url.QueryEscape(s.config.Branch)
	}
	return u
}

func (s *GitHubStore) newRequest(ctx context.Context, method, target string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if s.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.Token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// fetch returns the current document and its blob sha. A missing file is an
// empty document with an empty sha.
func (s *GitHubStore) fetch(ctx context.Context) (attestationDocument, string, error) {
	req, err := s.newRequest(ctx, http.MethodGet, s.contentsURL(), nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, "", fmt.Errorf("github get contents: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		_ = resp.Body.Close()
		return attestationDocument{}, "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("github get contents: %w", s.client.ErrorFromResponse(resp))
	}
	defer func() { _ = resp.Body.Close() }()

	var contents contentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&contents); err != nil {
		return nil, "", fmt.Errorf("github decode contents: %w", err)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(contents.Content, "\n", ""))
	if err != nil {
		return nil, "", fmt.Errorf("github decode content: %w", err)
	}

	doc := attestationDocument{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, "", fmt.Errorf("github decode document: %w", err)
		}
	}
	return doc, contents.SHA, nil
}

func (s *GitHubStore) Read(ctx context.Context, address string) (types.AttestationRecord, string, error) {
	doc, _, err := s.fetch(ctx)
	if err != nil {
		return types.AttestationRecord{}, "", err
	}

	record, ok := doc[address]
	if !ok {
		return types.AttestationRecord{}, "", interfaces.ErrRecordNotFound
	}
	version, err := contentVersion(record)
	if err != nil {
		return types.AttestationRecord{}, "", err
	}
	return record, version, nil
}

func (s *GitHubStore) WriteIfMatch(ctx context.Context, address string, record types.AttestationRecord, version string) error {
	doc, sha, err := s.fetch(ctx)
	if err != nil {
		return err
	}

	current := ""
	if existing, ok := doc[address]; ok {
		if current, err = contentVersion(existing); err != nil {
			return err
		}
	}
	if current != version {
		return interfaces.ErrVersionConflict
	}

	doc[address] = record
	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("github encode document: %w", err)
	}

	body, err := json.Marshal(contentsUpdate{
		Message: fmt.Sprintf("Verify %s as @%s", address, record.Handle),
		Content: base64.StdEncoding.EncodeToString(append(encoded, '\n')),
		SHA:     sha,
		Branch:  s.config.Branch,
	})
	if err != nil {
		return fmt.Errorf("github encode update: %w", err)
	}

	req, err := s.newRequest(ctx, http.MethodPut, s.fileURL(), body)
	if err != nil {
		return err
	}

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("github put contents: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		_ = resp.Body.Close()
		s.logger.Debugf("Committed attestation for %s to %s", address, s.config.Repo)
		return nil
	case http.StatusConflict, http.StatusUnprocessableEntity:
		// Another commit landed between fetch and put.
		_ = resp.Body.Close()
		return interfaces.ErrVersionConflict
	default:
		return fmt.Errorf("github put contents: %w", s.client.ErrorFromResponse(resp))
	}
}

func (s *GitHubStore) Close() error {
	s.client.Close()
	return nil
}
