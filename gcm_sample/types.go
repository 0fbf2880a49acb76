package main

type mode int

const (
	modeEncrypt mode = iota
	modeDecrypt
)

// parameters is used to convey command line
// options to the main function
type parameters struct {
	mode                                     mode
	infile, outfile, keyfile, profile, cfile string
	aad                                      string
}

const (
	exitSuccess = 0
	exitFailure = 1
)
