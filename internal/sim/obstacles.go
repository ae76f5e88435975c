package sim

// SpawnObstacle appends an obstacle at the right edge when the pool is empty
// or the last obstacle has moved at least one spacing in from the edge.
func SpawnObstacle(st *State, rng Rand, kinds []ObstacleKind) bool {
	w := st.World
	if n := len(st.Obstacles); n > 0 && st.Obstacles[n-1].X >= w.Width-w.ObstacleSpacing {
		return false
	}

	lo, hi := w.GapTopRange()
	o := Obstacle{
		ID:     st.newID(),
		X:      w.Width,
		GapTop: between(rng, lo, hi),
		Kind:   ObstaclePipe,
	}
	if len(kinds) > 0 {
		o.Kind = kinds[rng.Intn(len(kinds))]
	}
	st.Obstacles = append(st.Obstacles, o)
	return true
}

// AdvanceObstacles scrolls every obstacle left by dx.
func AdvanceObstacles(st *State, dx float64) {
	for i := range st.Obstacles {
		st.Obstacles[i].X -= dx
	}
}

// MarkPassed flags obstacles whose right edge is behind the player and
// returns how many changed this call. Each obstacle passes exactly once.
func MarkPassed(st *State) int {
	passed := 0
	for i := range st.Obstacles {
		o := &st.Obstacles[i]
		if !o.Passed && o.X+st.World.ObstacleWidth < st.Player.X {
			o.Passed = true
			passed++
		}
	}
	return passed
}

// CullObstacles removes obstacles that have scrolled fully off screen.
func CullObstacles(st *State) {
	kept := st.Obstacles[:0]
	for _, o := range st.Obstacles {
		if o.X >= -st.World.ObstacleWidth {
			kept = append(kept, o)
		}
	}
	st.Obstacles = kept
}
