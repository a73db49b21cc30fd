package metadata

import (
	"github.com/google/uuid"
)

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Unknown or unsupported file. */
	ResourceTypeNone ResourceType = iota
	/** @brief Image resource type (sprite sheets). */
	ResourceTypeImage
	/** @brief Configuration files. */
	ResourceTypeConfig
)

func (rt ResourceType) String() string {
	switch rt {
	case ResourceTypeImage:
		return "image"
	case ResourceTypeConfig:
		return "config"
	default:
		return "none"
	}
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}

/**
 * @brief A stable reference to an asset owned by the asset manager. Handles
 * are comparable and can be used as map keys.
 */
type AssetHandle struct {
	ID   uuid.UUID
	Path string
}

func NewAssetHandle(path string) AssetHandle {
	return AssetHandle{
		ID:   uuid.New(),
		Path: path,
	}
}

func (h AssetHandle) IsValid() bool {
	return h.ID != uuid.Nil
}

func (h AssetHandle) String() string {
	return h.Path + "#" + h.ID.String()
}

/** @brief The load state of an asset as seen by the frame loop. */
type LoadState int

const (
	LoadStateNotLoaded LoadState = iota
	LoadStateLoading
	LoadStateLoaded
	LoadStateFailed
)

func (ls LoadState) String() string {
	switch ls {
	case LoadStateNotLoaded:
		return "not_loaded"
	case LoadStateLoading:
		return "loading"
	case LoadStateLoaded:
		return "loaded"
	case LoadStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
