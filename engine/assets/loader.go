package assets

import "github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"

type Loader interface {
	Load(path string) (*metadata.Resource, error)
	Unload(*metadata.Resource) error
}
