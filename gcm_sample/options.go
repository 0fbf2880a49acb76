package main

import (
	"flag"
	"fmt"
	"os"

	ubiqgcm "gitlab.com/ubiqsecurity/ubiq-gcm-go"
)

func usage(args ...string) {
	status := exitSuccess
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "%s\n\n", args[0])
		status = exitFailure
	}

	fmt.Fprintf(os.Stderr, "Usage: %s -e|-d -i INFILE -o OUTFILE\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Encrypt or decrypt small files with AES-128-GCM\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  -h, -help               Show this help message and exit\n")
	fmt.Fprintf(os.Stderr, "  -V, -version            Show program's version number and exit\n")
	fmt.Fprintf(os.Stderr, "  -e, -encrypt            Encrypt the contents of the input file and write\n")
	fmt.Fprintf(os.Stderr, "                             the results to the output file\n")
	fmt.Fprintf(os.Stderr, "  -d, -decrypt            Decrypt the contents of the input file and write\n")
	fmt.Fprintf(os.Stderr, "                             the results to the output file\n")
	fmt.Fprintf(os.Stderr, "  -i INFILE, -in INFILE   Set input file name (at most %d bytes\n", ubiqgcm.MaxPlaintextSize)
	fmt.Fprintf(os.Stderr, "                             when encrypting)\n")
	fmt.Fprintf(os.Stderr, "  -o OUTFILE, -out OUTFILE\n")
	fmt.Fprintf(os.Stderr, "                           Set output file name\n")
	fmt.Fprintf(os.Stderr, "  -k KEYFILE, -keys KEYFILE\n")
	fmt.Fprintf(os.Stderr, "                           Set the file name with the keys\n")
	fmt.Fprintf(os.Stderr, "                             (default: ~/.ubiq/gcm-keys)\n")
	fmt.Fprintf(os.Stderr, "  -P PROFILE, -profile PROFILE\n")
	fmt.Fprintf(os.Stderr, "                           Identify the profile within the key file\n")
	fmt.Fprintf(os.Stderr, "  -c CONFIG, -config CONFIG\n")
	fmt.Fprintf(os.Stderr, "                           Set the configuration file name\n")
	fmt.Fprintf(os.Stderr, "                             (default: ~/.ubiq/gcm-configuration)\n")
	fmt.Fprintf(os.Stderr, "  -a AAD, -aad AAD        Additional data to authenticate with the file\n")

	os.Exit(status)
}

func getopts() parameters {
	var help, version bool = false, false
	var encrypt, decrypt bool = false, false
	var params parameters

	f := flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	f.BoolVar(&help, "h", false, "")
	f.BoolVar(&help, "help", false, "")
	f.BoolVar(&version, "V", false, "")
	f.BoolVar(&version, "version", false, "")

	f.BoolVar(&encrypt, "e", false, "")
	f.BoolVar(&encrypt, "encrypt", false, "")
	f.BoolVar(&decrypt, "d", false, "")
	f.BoolVar(&decrypt, "decrypt", false, "")

	f.StringVar(&params.infile, "i", "", "")
	f.StringVar(&params.infile, "in", "", "")
	f.StringVar(&params.outfile, "o", "", "")
	f.StringVar(&params.outfile, "out", "", "")

	f.StringVar(&params.keyfile, "k", "", "")
	f.StringVar(&params.keyfile, "keys", "", "")
	f.StringVar(&params.profile, "P", "", "")
	f.StringVar(&params.profile, "profile", "", "")
	f.StringVar(&params.cfile, "c", "", "")
	f.StringVar(&params.cfile, "config", "", "")

	f.StringVar(&params.aad, "a", "", "")
	f.StringVar(&params.aad, "aad", "", "")

	f.Parse(os.Args[1:])

	if help {
		usage()
	}
	if version {
		fmt.Fprintf(os.Stderr, "version %s\n", ubiqgcm.Version)
		os.Exit(exitSuccess)
	}

	if (encrypt && decrypt) || (!encrypt && !decrypt) {
		usage("encrypt / decrypt operation not specified")
	} else if encrypt {
		params.mode = modeEncrypt
	} else /* decrypt */ {
		params.mode = modeDecrypt
	}

	if len(params.infile) == 0 {
		usage("input file not specified")
	}

	if len(params.outfile) == 0 {
		usage("output file not specified")
	}

	if len(params.aad) > maxUserAADSize {
		usage(fmt.Sprintf("additional data exceeds %d bytes", maxUserAADSize))
	}

	return params
}
