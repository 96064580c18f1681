// Package harness runs refinement scenarios and compares their pass traces
// against golden files.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: sqrt_two
//	description: "sqrt(2) needs a second pass at 20 digits"
//	run_id: sqrt            # optional run ID prefix
//	problems:               # optional CUE problem files
//	  - problems.cue
//	cases:
//	  - name: inline
//	    real: sqrt
//	    args: ["2"]
//	    precision: 10
//	    expect:
//	      rendered: "1.4142135623[1,8]"
//	      digits: [10, 20]
//	      contains: ["1.41421356237"]
//	  - name: from_file
//	    problem: golden10   # a problem declared in problems.cue
//	    expect:
//	      error_code: PRECISION_CEILING
//
// A case names either a catalog real inline or a problem from one of the
// CUE files, never both.
//
// # Expectations
//
//   - rendered: exact rendering of the final enclosure
//   - contains: decimals the final enclosure must contain
//   - digits, sigma_depths, outcomes: per-pass values, in order
//   - error_code: the RuntimeError code; empty means the run must succeed
//
// # Deterministic Testing
//
// Every scenario runs against a fresh in-memory store, with run IDs from
// testutil.SequenceGenerator and a driver clock starting at zero, so the
// same scenario always produces byte-identical traces. The trace of each
// case is read back from the store before it is compared.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/sqrt.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, msg := range result.Errors {
//	    log.Println(msg)
//	}
package harness
