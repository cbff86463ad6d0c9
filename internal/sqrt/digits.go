package sqrt

// CorrectDigits counts the leading characters shared by candidate and
// reference. Identical characters add one, except the decimal point which
// is matched but not counted. Counting stops at the first difference or at
// the end of the shorter string.
func CorrectDigits(candidate, reference string) int {
	n := min(len(candidate), len(reference))
	count := 0
	for i := 0; i < n; i++ {
		if candidate[i] != reference[i] {
			break
		}
		if candidate[i] != '.' {
			count++
		}
	}
	return count
}
