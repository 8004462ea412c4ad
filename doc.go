// Package abgo provides statistical tooling for designing and analyzing
// A/B tests in Go: sample size estimation, hypothesis testing, experiment
// validation, and result reporting.
//
// ABGo separates the statistics from any presentation layer. Every entry
// point is a pure, synchronous function over in-memory data: the caller
// supplies immutable configuration and group samples, and receives a
// structured result. There is no session state, no network surface, and no
// persistence.
//
// # Features
//
// - Sample size estimation for proportion and continuous metrics
// - Two-proportion z-test and Welch's t-test with confidence intervals
// - Experiment validation: A/A tests and sample ratio mismatch checks
// - Power curves and experiment duration planning
// - Structured verdicts and recommendations for result reporting
// - Chart generation for power curves, durations, and confidence intervals
//
// # Installation
//
// Install ABGo using go get:
//
//	go get github.com/YuminosukeSato/abgo
//
// # Quick Start
//
// Sizing an experiment and analyzing its outcome:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/abgo/experiment"
//	    "github.com/YuminosukeSato/abgo/hypothesis"
//	    "github.com/YuminosukeSato/abgo/power"
//	    "github.com/YuminosukeSato/abgo/report"
//	)
//
//	func main() {
//	    cfg := experiment.DefaultConfig()
//	    cfg.BaselineRate = 0.10
//	    cfg.MDE = 0.20
//
//	    n, err := power.SampleSize(cfg)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("required per group:", n)
//
//	    control, _ := experiment.NewProportionSample("control", 4000, 400)
//	    treatment, _ := experiment.NewProportionSample("treatment", 4000, 492)
//
//	    result, err := hypothesis.Run(cfg, control, treatment)
//	    fmt.Println(report.Summarize(cfg, result, err).Verdict)
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - experiment: Experiment configuration and group sample value types
//   - dataset: CSV ingestion and schema validation for uploaded data
//   - power: Sample size, achieved power, power curves, and durations
//   - hypothesis: Significance tests and experiment validation checks
//   - report: Verdicts, recommendations, and report formatting
//   - simulate: Seeded outcome generators for demos and power checks
//   - visualize: Chart generation built on gonum/plot
//   - core/parallel: Parallel sweep utilities
//   - pkg/errors, pkg/log: Error taxonomy and structured logging
//
// # Statistical conventions
//
// Tests are two-sided and unpaired by default, and continuous metrics use
// Welch's unequal-variance t-test unless pooled variance is requested
// explicitly. Minimum detectable effect is relative to the baseline rate
// for proportion metrics and an absolute difference in means for
// continuous metrics.
//
// # License
//
// ABGo is released under the MIT License.
package abgo
