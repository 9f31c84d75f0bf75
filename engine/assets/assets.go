package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stuxvii/lsd-thumbnail-server/engine/assets/loaders"
	"github.com/stuxvii/lsd-thumbnail-server/engine/core"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
)

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
	Resource   *metadata.Resource
}

// AssetManager decodes item assets under a root directory and caches the
// decoded values. Cached values are shared between jobs and never mutated.
// A watcher on the root evicts entries whose file changes on disk.
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader
	// Eviction count per evicted path. A load only caches its result if the
	// counts along its path did not move while it ran.
	generations map[string]uint64

	mutex sync.RWMutex

	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
	fsnotify  *fsnotify.Watcher
}

func NewAssetManager(root string) (*AssetManager, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if fi, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("asset root %s: %w", abs, err)
	} else if !fi.IsDir() {
		return nil, fmt.Errorf("asset root %s is not a directory", abs)
	}

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		root:        abs,
		assets:      make(map[string]AssetInfo),
		loaders:     make(map[metadata.ResourceType]Loader),
		generations: make(map[string]uint64),
		fsnotify:    fsWatch,
		done:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}

	if err := am.watchRecursive(abs); err != nil {
		fsWatch.Close()
		return nil, err
	}

	// Register loaders
	am.registerLoader(metadata.ResourceTypeImage, &loaders.TextureLoader{})
	am.registerLoader(metadata.ResourceTypeMesh, &loaders.ModelLoader{})
	am.registerLoader(metadata.ResourceTypeBitmapFont, &loaders.BitmapFontLoader{})

	go am.start()

	core.LogInfo("asset manager watching %s", abs)
	return am, nil
}

// Root returns the absolute asset root.
func (am *AssetManager) Root() string {
	return am.root
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Resolve joins a stored relative path onto the root. Paths that would
// escape the root are reported as not found.
func (am *AssetManager) Resolve(rel string) (string, error) {
	if rel == "" {
		return "", fmt.Errorf("%w: empty path", core.ErrAssetNotFound)
	}
	full := filepath.Join(am.root, filepath.FromSlash(rel))
	r, err := filepath.Rel(am.root, full)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is outside the asset root", core.ErrAssetNotFound, rel)
	}
	return full, nil
}

func (am *AssetManager) LoadImage(rel string) (*metadata.ImageResourceData, error) {
	res, err := am.LoadAsset(rel, metadata.ResourceTypeImage)
	if err != nil {
		return nil, err
	}
	return res.Data.(*metadata.ImageResourceData), nil
}

func (am *AssetManager) LoadMesh(rel string) (*metadata.Mesh, error) {
	res, err := am.LoadAsset(rel, metadata.ResourceTypeMesh)
	if err != nil {
		return nil, err
	}
	return res.Data.(*metadata.Mesh), nil
}

func (am *AssetManager) LoadBitmapFont(rel string) (*metadata.BitmapFontResourceData, error) {
	res, err := am.LoadAsset(rel, metadata.ResourceTypeBitmapFont)
	if err != nil {
		return nil, err
	}
	return res.Data.(*metadata.BitmapFontResourceData), nil
}

// Load an asset using the appropriate loader, or return the cached copy.
func (am *AssetManager) LoadAsset(rel string, resourceType metadata.ResourceType) (*metadata.Resource, error) {
	path, err := am.Resolve(rel)
	if err != nil {
		return nil, err
	}

	am.mutex.RLock()
	asset, exists := am.assets[path]
	generation := am.generation(path)
	am.mutex.RUnlock()
	if exists {
		if asset.Type != resourceType {
			return nil, fmt.Errorf("%w: %s is cached as %s, not %s", core.ErrAssetDecode, rel, asset.Type, resourceType)
		}
		return asset.Resource, nil
	}

	loader, loaderExists := am.loaders[resourceType]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", resourceType)
	}

	res, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	stale := am.generation(path) != generation
	if !stale {
		am.assets[path] = AssetInfo{
			Path:       path,
			Type:       resourceType,
			LastLoaded: time.Now(),
			Resource:   res,
		}
	}
	am.mutex.Unlock()

	if stale {
		core.LogDebug("%s changed while loading, not cached", rel)
	} else {
		core.LogDebug("loaded %s %s (%d bytes)", resourceType, rel, res.DataSize)
	}
	return res, nil
}

// generation sums the eviction counts of path and its parents up to the
// root. Caller holds the lock.
func (am *AssetManager) generation(path string) uint64 {
	var g uint64
	for p := path; ; {
		g += am.generations[p]
		parent := filepath.Dir(p)
		if p == am.root || parent == p {
			return g
		}
		p = parent
	}
}

// Len returns the number of cached entries.
func (am *AssetManager) Len() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// Shutdown stops the watcher and drops the cache.
func (am *AssetManager) Shutdown() error {
	am.closeOnce.Do(func() {
		close(am.done)
	})
	<-am.stopped

	am.mutex.Lock()
	defer am.mutex.Unlock()
	for path, asset := range am.assets {
		if loader, ok := am.loaders[asset.Type]; ok {
			if err := loader.Unload(asset.Resource); err != nil {
				core.LogWarn("failed to unload %s: %v", path, err)
			}
		}
		delete(am.assets, path)
	}
	return nil
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			if e.Op&fsnotify.Create != 0 {
				if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
					if err := am.watchRecursive(e.Name); err != nil {
						core.LogWarn("failed to watch %s: %v", e.Name, err)
					}
				}
			}
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
			}
			// Can't stat a deleted path, so always try to drop it from the watch list.
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				_ = am.fsnotify.Remove(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %v", err)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// watchRecursive adds path and every directory below it to the watch list.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.WalkDir(path, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			// A directory vanishing mid-walk is not fatal.
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		return nil
	})
}

// removeAsset drops path, or everything below it when path is a directory.
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	am.generations[path]++
	prefix := path + string(filepath.Separator)
	for p := range am.assets {
		if p == path || strings.HasPrefix(p, prefix) {
			delete(am.assets, p)
			core.LogDebug("evicted %s", p)
		}
	}
}
