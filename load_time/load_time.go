package main

import (
	"bytes"
	"crypto/rand"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	ubiqgcm "gitlab.com/ubiqsecurity/ubiq-gcm-go"
)

const (
	exitSuccess int = 0
	exitFailure int = 1
)

// parameters is used to convey command line
// options to the main function
type parameters struct {
	maxEncrypt, maxDecrypt, avgEncrypt, avgDecrypt int
	testOperations                                 int
}

type statistics struct {
	Min      time.Duration
	Max      time.Duration
	Duration time.Duration
}

type performanceCounter struct {
	Count   int
	Encrypt statistics
	Decrypt statistics
}

func (s *statistics) add(d time.Duration) {
	s.Duration += d
	if s.Min == 0 || d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
}

func usage(args ...string) {
	status := exitSuccess
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "%s\n\n", args[0])
		status = exitFailure
	}

	fmt.Fprintf(os.Stderr, "Usage: %s [-e|-d|-E|-D NUMBER] [-n NUMBER]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Time AES-128-GCM operations for every block cipher and multiplier\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  -h, -help               Show this help message and exit\n")
	fmt.Fprintf(os.Stderr, "  -V, -version            Show program's version number and exit\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  -n,                     Number of operations to run per data length\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  OPTIONAL: For determining performance limits\n")
	fmt.Fprintf(os.Stderr, "  -e, -avgencrypt         Maximum average time in microseconds for encryption\n")
	fmt.Fprintf(os.Stderr, "  -d, -avgdecrypt         Maximum average time in microseconds for decryption\n")
	fmt.Fprintf(os.Stderr, "  -E, -maxencrypt         Maximum total time in microseconds for encryption\n")
	fmt.Fprintf(os.Stderr, "  -D, -maxdecrypt         Maximum total time in microseconds for decryption\n")
	fmt.Fprintf(os.Stderr, "\n")

	os.Exit(status)
}

func getopts() parameters {
	var help, version bool = false, false
	var params parameters

	f := flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	f.BoolVar(&help, "h", false, "")
	f.BoolVar(&help, "help", false, "")
	f.BoolVar(&version, "V", false, "")
	f.BoolVar(&version, "version", false, "")

	f.IntVar(&params.maxEncrypt, "E", 0, "")
	f.IntVar(&params.maxEncrypt, "maxencrypt", 0, "")
	f.IntVar(&params.maxDecrypt, "D", 0, "")
	f.IntVar(&params.maxDecrypt, "maxdecrypt", 0, "")
	f.IntVar(&params.avgEncrypt, "e", 0, "")
	f.IntVar(&params.avgEncrypt, "avgencrypt", 0, "")
	f.IntVar(&params.avgDecrypt, "d", 0, "")
	f.IntVar(&params.avgDecrypt, "avgdecrypt", 0, "")

	f.IntVar(&params.testOperations, "n", 1000, "")

	f.Parse(os.Args[1:])

	if help {
		usage()
	}
	if version {
		fmt.Fprintf(os.Stderr, "version %s\n", ubiqgcm.Version)
		os.Exit(exitSuccess)
	}
	if params.testOperations <= 0 {
		usage("number of operations must be positive")
	}

	return params
}

// variants returns a GCM for every combination of block cipher
// and multiplier, keyed by "cipher/multiplier"
func variants() (map[string]*ubiqgcm.GCM, error) {
	m := make(map[string]*ubiqgcm.GCM)

	for _, c := range ubiqgcm.BlockCipherNames() {
		for _, mul := range ubiqgcm.MultiplierNames() {
			var cfg ubiqgcm.Configuration
			cfg.Cipher.BlockCipher = c
			cfg.Cipher.Multiplier = mul
			cfg.Logging.Level = "ERROR"

			g, err := ubiqgcm.NewGCMWithConfiguration(cfg)
			if err != nil {
				return nil, err
			}
			m[c+"/"+mul] = g
		}
	}

	return m, nil
}

func loadTest(g *ubiqgcm.GCM, params parameters) (*performanceCounter, error) {
	var perf performanceCounter
	var key ubiqgcm.Key
	var iv ubiqgcm.IV
	var tag ubiqgcm.Tag

	ws := make([]byte, ubiqgcm.WorkspaceRequiredMax)
	aad := make([]byte, 16)
	ct := make([]byte, ubiqgcm.MaxPaddedSize)
	pt := make([]byte, ubiqgcm.MaxPaddedSize)

	for _, dataLength := range []int{16, 64, 128, ubiqgcm.MaxPaddedSize} {
		raw := make([]byte, dataLength)

		for i := 0; i < params.testOperations; i++ {
			for _, b := range [][]byte{key[:], iv[:], aad, raw} {
				if _, err := io.ReadFull(rand.Reader, b); err != nil {
					return nil, err
				}
			}

			start := time.Now()
			err := g.EncryptPadded(ws, &key, &iv, raw, aad, ct, &tag)
			perf.Encrypt.add(time.Since(start))
			if err != nil {
				return nil, err
			}

			start = time.Now()
			err = g.Decrypt(ws, &key, &iv, ct[:dataLength], aad, &tag, pt)
			perf.Decrypt.add(time.Since(start))
			if err != nil {
				return nil, err
			}

			if !bytes.Equal(raw, pt[:dataLength]) {
				return nil, fmt.Errorf("roundtrip encryption failed")
			}

			perf.Count++
		}
	}

	return &perf, nil
}

func printOutput(results map[string]*performanceCounter) (encAvg, encTotal, decAvg, decTotal time.Duration) {
	count := 0
	names := maps.Keys(results)
	slices.Sort(names)

	fmt.Printf("Encrypt:\n")
	for _, name := range names {
		p := results[name]
		fmt.Printf("    %-26s Count: %v Average: %v, Total %v, Min: %v, Max: %v\n",
			name, p.Count, p.Encrypt.Duration/time.Duration(p.Count),
			p.Encrypt.Duration, p.Encrypt.Min, p.Encrypt.Max)
		encTotal += p.Encrypt.Duration
		count += p.Count
	}
	fmt.Printf("Decrypt:\n")
	for _, name := range names {
		p := results[name]
		fmt.Printf("    %-26s Count: %v Average: %v, Total %v, Min: %v, Max: %v\n",
			name, p.Count, p.Decrypt.Duration/time.Duration(p.Count),
			p.Decrypt.Duration, p.Decrypt.Min, p.Decrypt.Max)
		decTotal += p.Decrypt.Duration
	}

	encAvg = encTotal / time.Duration(count)
	decAvg = decTotal / time.Duration(count)
	fmt.Printf("        ENC Total: Average: %v, Total: %v\n", encAvg, encTotal)
	fmt.Printf("        DEC Total: Average: %v, Total: %v\n", decAvg, decTotal)

	return encAvg, encTotal, decAvg, decTotal
}

func evaluateThreshold(threshold int, reality time.Duration, label string) bool {
	timeThreshold := time.Duration(threshold) * time.Microsecond
	if threshold == 0 {
		fmt.Printf("NOTE: No maximum allowed %v threshold supplied\n", label)
		return true
	}

	if reality < timeThreshold {
		fmt.Printf("PASSED: Maximum allowed %v threshold of %v microseconds\n", label, threshold)
		return true
	}
	fmt.Printf("FAILED: Exceeded maximum allowed %v threshold of %v microseconds\n", label, threshold)
	return false
}

func _main(params parameters) error {
	gcms, err := variants()
	if err != nil {
		return err
	}

	results := make(map[string]*performanceCounter)
	for name, g := range gcms {
		results[name], err = loadTest(g, params)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	encAvg, encTotal, decAvg, decTotal := printOutput(results)

	acc := true
	acc = evaluateThreshold(params.avgEncrypt, encAvg, "average encrypt") && acc
	acc = evaluateThreshold(params.avgDecrypt, decAvg, "average decrypt") && acc
	acc = evaluateThreshold(params.maxEncrypt, encTotal, "total encrypt") && acc
	acc = evaluateThreshold(params.maxDecrypt, decTotal, "total decrypt") && acc

	if !acc {
		return fmt.Errorf("one or more thresholds failed")
	}
	return nil
}

func main() {
	// os.Exit immediately exits the program without running
	// any deferred functions. therefore, the main functionality
	// is located in the _main function, allowing deferred
	// functions to run prior to returning. os.Exit is then
	// called from this function in response to any errors
	err := _main(getopts())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encountered: %v\n", err)
		os.Exit(exitFailure)
	}
}
