// Package inpaint fills the unknown pixels of an image.
//
// # Overview
//
// A caller supplies a frame and a mask of the same size. Mask pixels holding
// the mask value (0x00 by default) are unknown; every other pixel is valid.
// The package fills every unknown pixel from valid content and, for patch
// based methods, reports in a [Mapping] where each filled pixel came from.
//
// # Quick Start
//
//	import "github.com/gogpu/inpaint"
//
//	frame, _ := inpaint.Load("photo.png", inpaint.FormatRGB8)
//	mask, _ := inpaint.LoadMask("hole.png")
//
//	res, err := inpaint.Inpaint(frame, mask, inpaint.WithSeed(42))
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = frame.SavePNG("filled.png")
//	_ = res.Mapping
//
// # Methods
//
//   - [ShrinkMask]: ring erosion, every ring averages its valid neighbors
//   - [ShrinkMaskRandom]: random border pixel order, avoids ring artifacts
//   - [PatchMatch]: priority ordered patch copy on a single layer
//   - [Inpaint]: patch copy on a pyramid, coarse mappings seed finer layers
//
// # Reproducibility
//
// Every random decision is derived from the seed set with [WithSeed]. When
// no seed is set a random one is drawn and returned in [Result.Seed] (or by
// [ShrinkMaskRandom]) so the run can be replayed. Ring erosion and the
// pyramid adaption give the same result for any worker count; patch matching
// is bit-exact only when it runs on a single worker.
//
// # Statistics
//
// [RegionVariance] and [PooledVariance] answer windowed variance queries
// through integral images, and [MappingStatistics] summarizes the offsets
// recorded in a mapping.
package inpaint

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
