package maze

// Limits reports how much of the player's budget is left
type Limits struct {
	SoftWallsRemaining int
}

// ComputeLimits derives the remaining soft wall budget
func ComputeLimits(cfg Configuration, mutations MutationSet) Limits {
	return Limits{SoftWallsRemaining: cfg.MaxSoftWallCount - len(mutations.SoftWalls)}
}
