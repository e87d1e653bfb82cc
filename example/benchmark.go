// Copyright © 2022 AMIS Technologies
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"time"

	"github.com/getamis/sirius/log"
	"github.com/spf13/cobra"
)

var (
	benchmarkSquarings = []uint64{1, 2, 4, 8, 16}
	benchmarkProbes    = []uint64{10, 15, 20, 25, 30, 40, 50, 75, 100, 150, 200, 300, 500}
	benchmarkTargetMin = 100 * time.Millisecond
	benchmarkTargetMax = time.Second
	benchmarkChallenge = []byte("benchmark_challenge")
)

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Find the iteration count for a target delay",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := newVDF(benchmarkChallenge)
		if err != nil {
			return err
		}

		// Raw squaring ladder.
		for _, iterations := range benchmarkSquarings {
			start := time.Now()
			current := v.Generator().Copy()
			for i := uint64(0); i < iterations; i++ {
				current, err = current.Square()
				if err != nil {
					return err
				}
			}
			log.Info("Squaring ladder", "iterations", iterations, "elapsed", time.Since(start))
		}

		// Probe full compute runs for the target window.
		for _, probe := range benchmarkProbes {
			start := time.Now()
			_, _, err := v.Compute(probe)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)
			log.Info("Probe", "iterations", probe, "elapsed", elapsed)

			if elapsed >= benchmarkTargetMin && elapsed <= benchmarkTargetMax {
				fmt.Printf("Recommended iterations for a %v-%v delay: %d\n", benchmarkTargetMin, benchmarkTargetMax, probe)
				return nil
			}
			if elapsed > benchmarkTargetMax {
				ratio := float64(benchmarkTargetMin) / float64(elapsed)
				estimated := uint64(float64(probe) * ratio)
				if estimated == 0 {
					estimated = 1
				}
				fmt.Printf("Estimated iterations for a %v delay: %d\n", benchmarkTargetMin, estimated)
				return nil
			}
		}
		fmt.Printf("All probes finished under %v; use at least %d iterations\n", benchmarkTargetMin, benchmarkProbes[len(benchmarkProbes)-1])
		return nil
	},
}
