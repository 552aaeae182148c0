package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"meridian-hq/meridian/pkg/config"
)

// GitConfig configures a git configuration source.
type GitConfig struct {
	// URL is the repository URL. Required.
	URL string

	// Branch to track. Default: "main".
	Branch string

	// Path is the configuration file inside the repository. Required.
	Path string

	// LocalPath is the working clone location. Defaults to a fixed
	// directory under the OS temp dir; concurrent processes should set it
	// explicitly.
	LocalPath string

	// Depth limits clone history; 0 clones everything.
	Depth int

	// Timeout bounds clone and pull operations. Default: 30 seconds.
	Timeout time.Duration

	// Username and Token enable HTTP basic auth (token-based hosts accept
	// any non-empty username).
	Username string
	Token    string
}

// GitSource fetches configuration from a git repository: clone once, pull
// on every subsequent fetch, read the tracked file from the worktree.
type GitSource struct {
	config GitConfig
	logger *slog.Logger

	mu   sync.Mutex
	repo *gogit.Repository
}

// NewGitSource creates a git configuration source.
func NewGitSource(cfg GitConfig, logger *slog.Logger) (*GitSource, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("git source: repository URL is required")
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("git source: configuration path is required")
	}
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}
	if cfg.LocalPath == "" {
		cfg.LocalPath = filepath.Join(os.TempDir(), "meridian-config")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &GitSource{
		config: cfg,
		logger: logger.With("component", "config.source.git"),
	}, nil
}

// Fetch syncs the clone and returns the tracked configuration file.
func (s *GitSource) Fetch(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sync(ctx); err != nil {
		return nil, err
	}

	path := filepath.Join(s.config.LocalPath, s.config.Path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q from clone: %w", s.config.Path, err)
	}
	return data, nil
}

// Format selects the encoding from the tracked file's extension.
func (s *GitSource) Format() config.Format {
	return config.FormatForPath(s.config.Path)
}

// Head returns the commit SHA the clone is at, for audit logs.
func (s *GitSource) Head() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo == nil {
		return "", fmt.Errorf("repository not synced")
	}
	ref, err := s.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

// sync clones on first use, pulls afterwards. Callers hold s.mu.
func (s *GitSource) sync(ctx context.Context) error {
	opCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	if s.repo == nil {
		if repo, err := gogit.PlainOpen(s.config.LocalPath); err == nil {
			s.repo = repo
		} else {
			return s.clone(opCtx)
		}
	}

	worktree, err := s.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	err = worktree.PullContext(opCtx, &gogit.PullOptions{
		RemoteName: "origin",
		Auth:       s.auth(),
	})
	if err != nil && err != gogit.NoErrAlreadyUpToDate {
		return fmt.Errorf("pulling %q: %w", s.config.URL, err)
	}
	return nil
}

func (s *GitSource) clone(ctx context.Context) error {
	if err := os.MkdirAll(s.config.LocalPath, 0o755); err != nil {
		return fmt.Errorf("creating clone directory: %w", err)
	}

	repo, err := gogit.PlainCloneContext(ctx, s.config.LocalPath, false, &gogit.CloneOptions{
		URL:           s.config.URL,
		ReferenceName: plumbing.NewBranchReferenceName(s.config.Branch),
		SingleBranch:  true,
		Depth:         s.config.Depth,
		Auth:          s.auth(),
	})
	if err != nil {
		return fmt.Errorf("cloning %q: %w", s.config.URL, err)
	}

	s.repo = repo
	s.logger.Info("configuration repository cloned",
		"url", s.config.URL,
		"branch", s.config.Branch,
	)
	return nil
}

func (s *GitSource) auth() transport.AuthMethod {
	if s.config.Token == "" {
		return nil
	}
	username := s.config.Username
	if username == "" {
		username = "meridian"
	}
	return &http.BasicAuth{Username: username, Password: s.config.Token}
}
