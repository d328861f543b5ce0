package hmm

// Path is the most likely tag sequence for an observation sequence.
type Path struct {
	Tags []string
	// Prob is the joint probability of the path, including the final transition to END.
	Prob float64
}

// Decode performs Viterbi decoding to find the best tag sequence.
func (s *Store) Decode(obs []string) ([]string, error) {
	p, err := s.DecodePath(obs)
	if err != nil {
		return nil, err
	}
	return p.Tags, nil
}

// DecodePath performs Viterbi decoding and also reports the probability of the best path.
// Ties go to the state that sorts first.
func (s *Store) DecodePath(obs []string) (Path, error) {
	n := len(obs)
	if n == 0 {
		return Path{}, ErrInvalidInput
	}
	states := s.states
	k := len(states)
	if k == 0 {
		return Path{}, ErrUntrained
	}

	// dp[i][q] = max probability of a path ending at i in state q
	dp := make([][]float64, n)
	// path[i][q] = previous state that gave max probability
	path := make([][]int, n)
	for i := range dp {
		dp[i] = make([]float64, k)
		path[i] = make([]int, k)
	}

	// Initialization (t=0)
	for q, state := range states {
		dp[0][q] = s.TransitionProb(TagStart, state) * s.EmissionProb(state, obs[0])
	}

	// Recurrence
	for i := 1; i < n; i++ {
		for curr, state := range states {
			emission := s.EmissionProb(state, obs[i])
			maxProb := -1.0
			bestPrev := 0
			for prev, prevState := range states {
				p := dp[i-1][prev] * s.TransitionProb(prevState, state) * emission
				if p > maxProb {
					maxProb = p
					bestPrev = prev
				}
			}
			dp[i][curr] = maxProb
			path[i][curr] = bestPrev
		}
	}

	// Termination
	maxProb := -1.0
	bestEnd := 0
	for q, state := range states {
		p := dp[n-1][q] * s.TransitionProb(state, TagEnd)
		if p > maxProb {
			maxProb = p
			bestEnd = q
		}
	}

	// Backtrack
	best := make([]int, n)
	best[n-1] = bestEnd
	for i := n - 1; i > 0; i-- {
		best[i-1] = path[i][best[i]]
	}
	tags := make([]string, n)
	for i, q := range best {
		tags[i] = states[q]
	}
	return Path{Tags: tags, Prob: maxProb}, nil
}
