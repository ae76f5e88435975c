package sim

// Multiplier returns the score and currency multiplier for the active effects.
func Multiplier(e Effects) int {
	m := 1
	switch {
	case e.Active(EffectMegaMode):
		m = 3
	case e.Active(EffectDoublePoints):
		m = 2
	}
	if e.Active(EffectGodMode) {
		m *= 2
	}
	return m
}

// AddScore adds base points scaled by the multiplier and returns the amount
// awarded. Negative bases are ignored so the score never decreases.
func AddScore(st *State, base int) int {
	if base <= 0 {
		return 0
	}
	awarded := base * Multiplier(st.Player.Effects)
	st.Score += awarded
	return awarded
}

// AwardCoin credits a collected coin to the run and returns the currency earned.
func AwardCoin(st *State, value int) int {
	if value <= 0 {
		return 0
	}
	earned := value * Multiplier(st.Player.Effects)
	st.RunCoins += earned
	return earned
}
