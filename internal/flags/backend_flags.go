package flags

import "github.com/tc39tracker/tracker/internal/config"

// rendering
var (
	RenderWorkers = config.GenFlag("behavior.render.workers", 8, "Number of pages rendered concurrently")

	StrictBuild = config.GenFlag("behavior.render.strict", false, "Fail the build when any page could not be rendered")
)

// highlighting
var (
	DeferredHighlighting = config.GenFlag("feature.highlight.deferred", true, "Highlight code blocks in the background after pages are written")
	HighlightWorkers     = config.GenFlag("feature.highlight.workers", 4, "Number of concurrent deferred highlighting tasks")

	InlineHighlighting = config.GenFlag("feature.highlight.inline", false, "Highlight code blocks while rendering markdown (disables the deferred pass)")
)

// preview server
var (
	PageCacheSize = config.GenFlag("server.cache.pages", 2000, "Maximum number of rendered pages kept in memory by the preview server")
)
