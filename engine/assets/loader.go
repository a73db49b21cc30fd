package assets

import "github.com/spaghettifunk/skyview/engine/renderer/metadata"

type Loader interface {
	Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error)
	Unload(*metadata.Resource) error
}

// JobSubmitter queues decode work off the frame loop.
type JobSubmitter interface {
	Submit(jt metadata.JobTask) error
}
