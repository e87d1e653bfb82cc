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
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/getamis/sirius/log"
	"github.com/spf13/cobra"
)

var computeCmd = &cobra.Command{
	Use:   "compute <challenge> [iterations]",
	Short: "Compute the VDF output and its proof",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		challenge := decodeChallenge(args[0])
		iterations, err := resolveIterations(args)
		if err != nil {
			return err
		}
		v, err := newVDF(challenge)
		if err != nil {
			return err
		}
		log.Info("Computing VDF", "iterations", iterations, "discriminantBits", v.Discriminant().BitLen())
		start := time.Now()
		output, proof, err := v.Compute(iterations)
		if err != nil {
			return err
		}
		log.Info("Computation finished", "elapsed", time.Since(start))

		msg := output.ToMessage()
		fmt.Printf("Output a: %s\n", msg.A)
		fmt.Printf("Output b: %s\n", msg.B)
		fmt.Printf("Output c: %s\n", msg.C)
		fmt.Printf("Proof: %s\n", hex.EncodeToString(proof))
		return nil
	},
}

// resolveIterations takes the iteration count from the command line, falling
// back to the config file.
func resolveIterations(args []string) (uint64, error) {
	if len(args) > 1 {
		return strconv.ParseUint(args[1], 10, 64)
	}
	cfg, err := readConfig()
	if err != nil {
		return 0, err
	}
	if cfg.Iterations == 0 {
		return 0, fmt.Errorf("no iteration count given")
	}
	return cfg.Iterations, nil
}
