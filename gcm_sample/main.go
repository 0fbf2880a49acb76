package main

import (
	"fmt"
	"os"

	ubiqgcm "gitlab.com/ubiqsecurity/ubiq-gcm-go"
	"gitlab.com/ubiqsecurity/ubiq-gcm-go/keyfile"
)

func _main(params parameters) error {
	cfg, err := ubiqgcm.NewConfiguration(params.cfile)
	if err != nil {
		return err
	}

	g, err := ubiqgcm.NewGCMWithConfiguration(cfg)
	if err != nil {
		return err
	}

	key, err := keyfile.Load(params.keyfile, params.profile)
	if err != nil {
		return err
	}
	defer clear(key[:])

	// open the input file
	ifp, err := os.Open(params.infile)
	if err != nil {
		return err
	}
	defer ifp.Close()

	// one workspace serves every operation
	ws := make([]byte, ubiqgcm.WorkspaceRequiredMax)

	// create the output file
	ofp, err := os.Create(params.outfile)
	if err != nil {
		return err
	}
	defer ofp.Close()

	if params.mode == modeEncrypt {
		err = encrypt(g, ws, &key, []byte(params.aad), ifp, ofp)
	} else /* decrypt */ {
		err = decrypt(g, ws, &key, []byte(params.aad), ifp, ofp)
	}

	if err != nil {
		// don't leave a partial or unauthenticated result behind
		ofp.Close()
		os.Remove(params.outfile)
	}

	return err
}

func main() {
	// os.Exit immediately exits the program without running
	// any deferred functions. therefore, the main functionality
	// is located in the _main function, allowing deferred
	// functions to run prior to returning. os.Exit is then
	// called from this function in response to any errors
	err := _main(getopts())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(exitFailure)
	}
}
