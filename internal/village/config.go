package village

// Ward seeding.
const (
	DefaultPatchCount = 10
	SeedsPerPatch     = 8
	SpiralTurn        = 5.0 // radians per sqrt(seed index)
	SpiralInnerRadius = 10.0
	SpiralStep        = 2.0 // plus up to 1 unit of jitter per seed
	RelaxIterations   = 3
)

// Junction optimization.
const JunctionMergeDistance = 8.0

// Walls.
const RetainRadiusFactor = 3.0 // patches farther than this many wall radii are dropped

// Streets and roads.
const (
	RoadApproachDistance = 1000.0
	ArterySmoothFactor   = 3.0
)
