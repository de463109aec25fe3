package discadelta

// contribution is one child's derived quantities, computed once from its
// Config before a distribution pass.
type contribution struct {
	base        float64
	solidify    float64 // the part of base that resists compression
	capacity    float64 // the compressible part of base
	expandRatio float64
	min, max    float64
}

func newContribution(base, flexCompress, flexExpand, min, max float64) contribution {
	capacity := base * flexCompress
	return contribution{
		base:        base,
		solidify:    maxOf(0, base-capacity),
		capacity:    capacity,
		expandRatio: flexExpand,
		min:         min,
		max:         max,
	}
}

// distribute solves one parent's children along one axis. It returns each
// child's final length, in the same order as contributions, such that the
// sum is as close to target as clamp feasibility permits.
func distribute(target float64, contributions []contribution) []float64 {
	sumBase := 0.0
	for _, c := range contributions {
		sumBase += c.base
	}

	if target < sumBase {
		return compress(target, contributions)
	}
	return expand(target, contributions)
}

// compress runs the iterative clamp-satisfaction compression pass.
//
// Each pass restarts remain_dist from (target minus the sum of finals
// already fixed in earlier passes) and remain_capacity/remain_solidify
// from sums over the still-flexible set, then sweeps that set in original
// order, threading the running budgets from child to child within the
// pass so an earlier fixation changes what later children in the same
// pass see. A pass that fixes nothing new is the fixed point: the
// tentative values it computed for the remaining flexible children are
// the answer.
func compress(target float64, contributions []contribution) []float64 {
	n := len(contributions)
	result := make([]float64, n)
	flexible := make([]int, n)
	for i := range flexible {
		flexible[i] = i
	}

	fixedTotal := 0.0

	for {
		remainDist := target - fixedTotal
		var remainCapacity, remainSolidify float64
		for _, idx := range flexible {
			remainCapacity += contributions[idx].base
			remainSolidify += contributions[idx].solidify
		}

		var nextFlexible []int
		fixedThisPass := 0

		for _, idx := range flexible {
			c := contributions[idx]

			freeDist := remainDist - remainSolidify
			freeCap := remainCapacity - remainSolidify

			var proposed float64
			switch {
			case freeDist <= 0 || freeCap <= 0 || c.capacity <= 0:
				proposed = c.solidify
			default:
				proposed = (freeDist/freeCap)*c.capacity + c.solidify
			}

			final := proposed
			if final < c.min {
				final = c.min
			}

			result[idx] = final

			if final != proposed || c.capacity <= 0 {
				fixedThisPass++
				fixedTotal += final
			} else {
				nextFlexible = append(nextFlexible, idx)
			}

			remainDist -= final
			remainSolidify -= c.solidify
			remainCapacity -= c.base
		}

		if fixedThisPass == 0 || len(nextFlexible) == 0 {
			break
		}
		flexible = nextFlexible
	}

	return result
}

// expand runs the iterative clamp-satisfaction expansion pass. Surplus is
// distributed proportionally by expand ratio across the
// flexible set; a child whose max clamps its share is fixed and removed,
// and the remaining surplus/ratio total is redistributed among whoever is
// left.
func expand(target float64, contributions []contribution) []float64 {
	n := len(contributions)
	result := make([]float64, n)
	flexible := make([]int, n)
	for i := range flexible {
		flexible[i] = i
	}

	sumBase := 0.0
	for _, c := range contributions {
		sumBase += c.base
	}
	surplus := target - sumBase

	var sumRatio float64
	for _, idx := range flexible {
		sumRatio += contributions[idx].expandRatio
	}

	for {
		var nextFlexible []int
		fixedThisPass := 0
		deductSurplus := 0.0
		deductRatio := 0.0

		for _, idx := range flexible {
			c := contributions[idx]
			maxDelta := maxOf(0, c.max-c.base)

			var delta float64
			if sumRatio <= 0 || c.expandRatio <= 0 {
				delta = 0
			} else {
				delta = (surplus / sumRatio) * c.expandRatio
			}

			final := delta
			if final > maxDelta {
				final = maxDelta
			}

			result[idx] = final

			if final != delta || c.expandRatio <= 0 {
				fixedThisPass++
				deductSurplus += final
				deductRatio += c.expandRatio
			} else {
				nextFlexible = append(nextFlexible, idx)
			}
		}

		surplus -= deductSurplus
		sumRatio -= deductRatio

		if fixedThisPass == 0 || len(nextFlexible) == 0 {
			break
		}
		flexible = nextFlexible
	}

	for i, c := range contributions {
		result[i] = c.base + result[i]
	}
	return result
}
