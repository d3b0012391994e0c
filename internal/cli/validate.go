package cli

import "fmt"

// RunValidate loads the tour and checks that every referenced script resolves.
func RunValidate(opts Options) error {
	t, _, err := load(opts, createLogger(opts.Debug))
	if err != nil {
		return err
	}
	ids, err := t.Scripts.ListScripts()
	if err != nil {
		return err
	}
	fmt.Fprintf(opts.out(), "✓ Tour is valid: %d sections, %d scripts (%s)\n", len(t.Page.Sections), len(ids), t.Name)
	return nil
}
