package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// GoldenData represents a single test case in the golden file
type GoldenData struct {
	Input  string `json:"input"`
	Digits int    `json:"digits"`
	Sqrt   string `json:"sqrt"`
	Exact  bool   `json:"exact"`
}

func main() {
	outputDir := flag.String("out", "internal/sqrt/testdata", "Output directory for the golden file")
	digits := flag.Int("digits", 50, "Significant digits kept for irrational roots")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "sqrt_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	// Interesting cases:
	// - small irrational roots
	// - values below one
	// - extreme magnitudes
	// - perfect squares, integer and fractional
	inputs := []string{
		"2", "3", "5", "10", "0.5", "7", "99", "0.3", "123456789",
		"1E-100", "1E+100", "1", "4", "144", "0.25", "6.25E-8",
	}

	var data []GoldenData

	fmt.Println("Generating golden data...")

	for _, in := range inputs {
		root, exact, err := sqrtOracle(in, *digits)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing sqrt(%s): %v\n", in, err)
			os.Exit(1)
		}
		data = append(data, GoldenData{Input: in, Digits: *digits, Sqrt: root, Exact: exact})
		fmt.Printf("Generated sqrt(%s)\n", in)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated golden file at %s\n", filename)
}

// sqrtOracle computes sqrt(in) with exact integer arithmetic, independently
// of the decimal library under test. Writing in = m·10^e with e even, the
// root is isqrt(m·10^(e+2k))·10^-k for any k large enough. Exact roots are
// returned in full, the others truncated to the requested significant
// digits.
func sqrtOracle(in string, digits int) (string, bool, error) {
	m, e, err := parseDecimal(in)
	if err != nil {
		return "", false, err
	}
	if e%2 != 0 {
		m.Mul(m, big.NewInt(10))
		e--
	}
	k := digits + max(0, -e)/2 + 2

	n := new(big.Int).Mul(m, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(e+2*k)), nil))
	r := new(big.Int).Sqrt(n)
	exact := new(big.Int).Mul(r, r).Cmp(n) == 0

	text := r.String()
	if len(text) <= k {
		text = strings.Repeat("0", k-len(text)+1) + text
	}
	intPart, fracPart := text[:len(text)-k], text[len(text)-k:]

	if exact {
		fracPart = strings.TrimRight(fracPart, "0")
		if fracPart == "" {
			return intPart, true, nil
		}
		return intPart + "." + fracPart, true, nil
	}
	return truncateSignificant(intPart+"."+fracPart, digits), false, nil
}

// parseDecimal splits plain or scientific notation into an integer
// mantissa and a power-of-ten exponent.
func parseDecimal(s string) (*big.Int, int, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	exp := 0
	if i := strings.IndexByte(s, 'E'); i >= 0 {
		v, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return nil, 0, err
		}
		exp, s = v, s[:i]
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		exp -= len(s) - i - 1
		s = s[:i] + s[i+1:]
	}
	m, ok := new(big.Int).SetString(s, 10)
	if !ok || m.Sign() < 0 {
		return nil, 0, fmt.Errorf("invalid non-negative decimal %q", s)
	}
	return m, exp, nil
}

// truncateSignificant keeps the first n significant digits of a plain
// decimal string.
func truncateSignificant(s string, n int) string {
	var b strings.Builder
	significant := 0
	started := false
	for _, ch := range s {
		b.WriteRune(ch)
		if ch == '.' {
			continue
		}
		if ch != '0' {
			started = true
		}
		if started {
			significant++
		}
		if significant == n {
			break
		}
	}
	return b.String()
}
