package metadata

/**
 * @brief A surface the renderer draws as an environment backdrop.
 */
type SkyboxSurface struct {
	/** @brief The texture sampled by the surface. */
	Texture AssetHandle
	/** @brief Multiplier applied to the sampled colour. */
	Brightness float32
}

/**
 * @brief Tracks the sprite sheet that becomes the cubemap. Reinterpreted
 * flips to true exactly once, after the asset reported loaded.
 */
type CubemapState struct {
	Handle        AssetHandle
	Reinterpreted bool
}

func NewCubemapState(handle AssetHandle) *CubemapState {
	return &CubemapState{
		Handle:        handle,
		Reinterpreted: false,
	}
}
