package detect

// The kernels mimic the stimulation artifact shape. Correlating one with
// the signal yields a response that is large where the signal resembles
// the template.

// kernel1 captures only the steep decrease of the artifact.
func kernel1() []float64 {
	return []float64{1, -1}
}

// kernel2 captures the steep decrease followed by the slow recovery back
// toward baseline: a 3-tap fall plus a 20-point linear ramp from -1 to 0.
func kernel2() []float64 {
	k := make([]float64, 0, 23)
	k = append(k, 1, 0, -1)
	for i := 0; i < 20; i++ {
		k = append(k, -1+float64(i)/19)
	}
	return k
}

// matchedFilterResponse computes the inner product of the kernel with every
// equal-length window of samples. The response has
// len(samples)-len(kernel)+1 entries.
func matchedFilterResponse(kernel, samples []float64) []float64 {
	n := len(samples) - len(kernel) + 1
	if n <= 0 {
		return nil
	}
	res := make([]float64, n)
	for i := 0; i < n; i++ {
		var acc float64
		for j, kv := range kernel {
			acc += kv * samples[i+j]
		}
		res[i] = acc
	}
	return res
}
