package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/skyview/engine/assets/loaders"
	"github.com/spaghettifunk/skyview/engine/core"
	"github.com/spaghettifunk/skyview/engine/renderer/metadata"
)

var ErrManagerClosed = errors.New("asset manager already closed")

const (
	// A queued load finished decoding. Data: *AssetEvent
	EVENT_CODE_ASSET_LOADED core.EventCode = 0x101
	// A load ended in the Failed state. Data: *AssetEvent
	EVENT_CODE_ASSET_FAILED core.EventCode = 0x102
)

type AssetEvent struct {
	Handle metadata.AssetHandle
}

// AssetInfo is a catalog entry for a file found under the assets directory.
type AssetInfo struct {
	Path     string
	Type     metadata.ResourceType
	Modified time.Time
}

type assetEntry struct {
	state metadata.LoadState
	image *metadata.Image
	err   error
}

type AssetManager struct {
	catalog map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	handles map[string]metadata.AssetHandle
	entries map[metadata.AssetHandle]*assetEntry

	jobs  JobSubmitter
	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewAssetManager(jobs JobSubmitter) (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		catalog:  make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		handles:  make(map[string]metadata.AssetHandle),
		entries:  make(map[metadata.AssetHandle]*assetEntry),
		jobs:     jobs,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}, nil
}

// Initialize indexes and watches assetsDir, then registers the loaders.
func (am *AssetManager) Initialize(assetsDir string) error {
	if err := am.watchRecursive(assetsDir); err != nil {
		return err
	}
	go am.start()

	am.registerLoader(metadata.ResourceTypeImage, &loaders.ImageLoader{})

	core.LogInfo("asset catalog ready: %d files under %s", am.CatalogSize(), assetsDir)
	return nil
}

func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	am.mutex.Unlock()

	close(am.done)
	<-am.stopped
	return nil
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[assetType] = loader
}

// Load starts decoding the asset at path on the job system and returns
// immediately. Loading the same path twice returns the same handle. A path
// unknown to the catalog yields a handle whose state is Failed.
func (am *AssetManager) Load(path string) (metadata.AssetHandle, error) {
	path = normalizePath(path)

	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return metadata.AssetHandle{}, ErrManagerClosed
	}
	if h, ok := am.handles[path]; ok {
		am.mutex.Unlock()
		return h, nil
	}

	handle := metadata.NewAssetHandle(path)
	entry := &assetEntry{state: metadata.LoadStateLoading}
	am.handles[path] = handle
	am.entries[handle] = entry

	info, exists := am.catalogEntry(path)
	if !exists {
		entry.state = metadata.LoadStateFailed
		entry.err = fmt.Errorf("%s: %w", path, core.ErrAssetNotFound)
		am.mutex.Unlock()
		core.LogError("failed to load asset: %s", entry.err)
		notify(EVENT_CODE_ASSET_FAILED, handle)
		return handle, nil
	}
	loader, loaderExists := am.loaders[info.Type]
	if !loaderExists {
		entry.state = metadata.LoadStateFailed
		entry.err = fmt.Errorf("no loader registered for asset type: %s", info.Type)
		am.mutex.Unlock()
		return handle, entry.err
	}
	am.mutex.Unlock()

	err := am.jobs.Submit(metadata.JobTask{
		JobType:     metadata.JOB_TYPE_RESOURCE_LOAD,
		Priority:    metadata.JOB_PRIORITY_NORMAL,
		InputParams: info,
		OnStart: func(params interface{}) (interface{}, error) {
			ai := params.(AssetInfo)
			return loader.Load(ai.Path, ai.Type, &loaders.ImageResourceParams{})
		},
		OnComplete: func(result interface{}) {
			am.complete(handle, result.(*metadata.Resource))
		},
		OnFailure: func(err error) {
			am.fail(handle, err)
		},
	})
	if err != nil {
		am.fail(handle, err)
		return handle, err
	}

	core.LogDebug("queued asset %s", handle)
	return handle, nil
}

func (am *AssetManager) complete(handle metadata.AssetHandle, res *metadata.Resource) {
	data, ok := res.Data.(*metadata.ImageResourceData)
	if !ok {
		am.fail(handle, fmt.Errorf("unexpected resource data %T for %s", res.Data, res.FullPath))
		return
	}

	am.mutex.Lock()
	entry, ok := am.entries[handle]
	if ok {
		entry.image = metadata.NewImage(data)
		entry.state = metadata.LoadStateLoaded
	}
	am.mutex.Unlock()

	if ok {
		notify(EVENT_CODE_ASSET_LOADED, handle)
	}
}

func (am *AssetManager) fail(handle metadata.AssetHandle, err error) {
	am.mutex.Lock()
	entry, ok := am.entries[handle]
	if ok {
		entry.state = metadata.LoadStateFailed
		entry.err = err
	}
	am.mutex.Unlock()

	if ok {
		notify(EVENT_CODE_ASSET_FAILED, handle)
	}
}

// notify runs on job workers, so the event waits for the frame loop.
func notify(code core.EventCode, handle metadata.AssetHandle) {
	err := core.EventQueue(core.EventContext{
		Type: code,
		Data: &AssetEvent{Handle: handle},
	})
	if err != nil {
		core.LogDebug("asset event %d for %s dropped: %s", code, handle, err)
	}
}

// LoadState reports where the asset is in its load lifecycle. Unknown
// handles are NotLoaded.
func (am *AssetManager) LoadState(handle metadata.AssetHandle) metadata.LoadState {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	entry, ok := am.entries[handle]
	if !ok {
		return metadata.LoadStateNotLoaded
	}
	return entry.state
}

// LoadError returns the reason a Failed asset failed.
func (am *AssetManager) LoadError(handle metadata.AssetHandle) error {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	if entry, ok := am.entries[handle]; ok {
		return entry.err
	}
	return nil
}

// GetMut resolves a loaded image for in-place modification. It must only
// be called from the frame loop.
func (am *AssetManager) GetMut(handle metadata.AssetHandle) (*metadata.Image, error) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	entry, ok := am.entries[handle]
	if !ok || entry.image == nil {
		return nil, fmt.Errorf("%s: %w", handle, core.ErrAssetNotFound)
	}
	return entry.image, nil
}

// Get is the read-only counterpart of GetMut.
func (am *AssetManager) Get(handle metadata.AssetHandle) (*metadata.Image, bool) {
	img, err := am.GetMut(handle)
	return img, err == nil
}

func (am *AssetManager) CatalogSize() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.catalog)
}

// catalogEntry expects the path normalized and the mutex held.
func (am *AssetManager) catalogEntry(path string) (AssetInfo, bool) {
	info, ok := am.catalog[path]
	return info, ok
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name); err != nil {
						core.LogWarn("failed to watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}
			// Can't stat a deleted path, so it is dropped from the catalog whatever it was.
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// watchRecursive adds path and every directory below it to the watch list
// and indexes the files it finds.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) {
	path = normalizePath(path)
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.catalog[path] = AssetInfo{
		Path:     path,
		Type:     assetType,
		Modified: time.Now(),
	}
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.catalog, normalizePath(path))
}

// normalizePath returns the absolute form of path. Catalog keys and handle
// paths always go through it.
func normalizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

func determineAssetType(path string) metadata.ResourceType {
	switch filepath.Ext(path) {
	case ".png":
		return metadata.ResourceTypeImage
	case ".toml":
		return metadata.ResourceTypeConfig
	default:
		return metadata.ResourceTypeNone
	}
}
