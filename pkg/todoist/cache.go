package todoist

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const (
	cacheDirName  = ".todoist-sync"
	cacheFileName = "cache.json"
)

// Cache is the on-disk snapshot of the last sync. It keeps the raw item
// list plus project/label indexes, and only writes when something changed.
type Cache struct {
	SyncToken string             `json:"sync_token"`
	Items     []Task             `json:"items"`
	Projects  map[string]Project `json:"projects"`
	Labels    map[string]Label   `json:"labels"`

	path  string
	mu    sync.RWMutex
	dirty bool
}

// DefaultCacheDir returns the cache directory (~/.todoist-sync).
func DefaultCacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, cacheDirName), nil
}

// NewCache opens the cache rooted at dir, loading an existing snapshot if
// one is present.
func NewCache(dir string) (*Cache, error) {
	c := &Cache{
		Projects: make(map[string]Project),
		Labels:   make(map[string]Label),
		path:     filepath.Join(dir, cacheFileName),
	}

	if _, err := os.Stat(c.path); err == nil {
		if err := c.Load(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Cache) Load() error {
	f, err := os.Open(c.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(c)
}

func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return nil
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	f, err := os.Create(c.path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(c); err != nil {
		return err
	}
	c.dirty = false
	return nil
}

// Replace swaps in a fresh snapshot and marks the cache dirty.
func (c *Cache) Replace(token string, items []Task, projects []Project, labels []Label) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.SyncToken = token
	c.Items = items
	c.Projects = make(map[string]Project, len(projects))
	for _, p := range projects {
		c.Projects[p.ID] = p
	}
	c.Labels = make(map[string]Label, len(labels))
	for _, l := range labels {
		c.Labels[l.ID] = l
	}
	c.dirty = true
}

func (c *Cache) Tasks() []Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Task, len(c.Items))
	copy(out, c.Items)
	return out
}

func (c *Cache) Project(id string) (Project, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.Projects[id]
	return p, ok
}

func (c *Cache) Label(id string) (Label, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.Labels[id]
	return l, ok
}

// Clean removes every file in the cache directory and the directory itself.
func (c *Cache) Clean() error {
	dir := filepath.Dir(c.path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return os.Remove(dir)
}

// Dir returns the cache directory path.
func (c *Cache) Dir() string {
	return filepath.Dir(c.path)
}
