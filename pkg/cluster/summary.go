package cluster

// Summary aggregates a list of component stats.
type Summary struct {
	Count      int     `json:"count"`
	Alive      int     `json:"alive"`
	Largest    int     `json:"largest"`
	MeanSize   float64 `json:"mean_size"`
	Singletons int     `json:"singletons"`
	// MeanAutonomy is weighted by component size.
	MeanAutonomy float64 `json:"mean_autonomy"`
}

// Summarize reduces stats to a Summary. An empty list yields the zero value.
func Summarize(stats []Stats) Summary {
	var s Summary
	if len(stats) == 0 {
		return s
	}
	weighted := 0.0
	for _, st := range stats {
		s.Count++
		s.Alive += st.Size
		if st.Size > s.Largest {
			s.Largest = st.Size
		}
		if st.Size == 1 {
			s.Singletons++
		}
		weighted += st.Autonomy * float64(st.Size)
	}
	s.MeanSize = float64(s.Alive) / float64(s.Count)
	if s.Alive > 0 {
		s.MeanAutonomy = weighted / float64(s.Alive)
	}
	return s
}
