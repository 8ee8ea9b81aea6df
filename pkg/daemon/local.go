package daemon

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/hooktools/core/pkg/discover"
	"github.com/hooktools/core/state"
	"github.com/sirupsen/logrus"
)

// LocalClient implements Client by scanning and validating in-process.
// This is used when the daemon is not running, providing the same API but
// executing every operation directly.
type LocalClient struct {
	roots   []string
	service *discover.Service
	logger  *logrus.Logger
}

var _ Client = (*LocalClient)(nil)

// NewLocalClient creates a LocalClient scanning the given roots. Empty
// roots default to the current directory. Invalid ignore patterns are
// dropped with a warning rather than failing the fallback path.
func NewLocalClient(roots []string, ignores []string) *LocalClient {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	service, err := discover.NewService(logger, ignores)
	if err != nil {
		logger.WithError(err).Warn("Ignoring invalid ignore patterns")
		service, _ = discover.NewService(logger, nil)
	}

	if len(roots) == 0 {
		if cwd, err := os.Getwd(); err == nil {
			roots = []string{cwd}
		}
	}

	return &LocalClient{roots: roots, service: service, logger: logger}
}

// GetState scans the roots and returns a freshly validated snapshot.
func (c *LocalClient) GetState(ctx context.Context) (*state.Snapshot, error) {
	configs, manifests, err := CollectOnce(c.service, c.roots)
	if err != nil {
		return nil, err
	}
	return &state.Snapshot{
		UpdatedAt: time.Now(),
		Roots:     c.roots,
		Configs:   configs,
		Manifests: manifests,
	}, nil
}

// GetConfigs returns the validated configuration files under the roots.
func (c *LocalClient) GetConfigs(ctx context.Context) ([]*state.FileState, error) {
	snap, err := c.GetState(ctx)
	if err != nil {
		return nil, err
	}
	return state.SortedFiles(snap.Configs), nil
}

// GetManifests returns the validated manifest files under the roots.
func (c *LocalClient) GetManifests(ctx context.Context) ([]*state.FileState, error) {
	snap, err := c.GetState(ctx)
	if err != nil {
		return nil, err
	}
	return state.SortedFiles(snap.Manifests), nil
}

// StreamState returns an error for LocalClient since streaming is only
// available via the daemon.
func (c *LocalClient) StreamState(ctx context.Context) (<-chan StateUpdate, error) {
	return nil, errors.New("streaming not available in local mode; start the daemon with 'hookcfg daemon run'")
}

// IsRunning always reports false: a LocalClient only exists when no
// daemon answered.
func (c *LocalClient) IsRunning() bool {
	return false
}

// Close releases nothing; the local client holds no connections.
func (c *LocalClient) Close() error {
	return nil
}
