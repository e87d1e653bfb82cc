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

	"github.com/getamis/sirius/log"
	"github.com/spf13/cobra"

	bqForm "github.com/getamis/vdf/crypto/binaryquadraticform"
	"github.com/getamis/vdf/crypto/vdf"
)

var (
	outputA string
	outputB string
	outputC string
)

var verifyCmd = &cobra.Command{
	Use:   "verify <challenge> <iterations> <proof>",
	Short: "Verify a VDF proof",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		challenge := decodeChallenge(args[0])
		iterations, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return err
		}
		proof, err := hex.DecodeString(args[2])
		if err != nil {
			return err
		}
		v, err := newVDF(challenge)
		if err != nil {
			return err
		}
		output, err := resolveOutput(v, iterations)
		if err != nil {
			return err
		}
		if v.Verify(output, proof, iterations) {
			fmt.Println("Proof is valid")
		} else {
			fmt.Println("Proof is invalid")
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&outputA, "output-a", "", "output a component in decimal")
	verifyCmd.Flags().StringVar(&outputB, "output-b", "", "output b component in decimal")
	verifyCmd.Flags().StringVar(&outputC, "output-c", "", "output c component in decimal")
}

// resolveOutput builds the claimed output element from the --output-a/b/c
// flags, or recomputes it when they are absent.
func resolveOutput(v *vdf.VDF, iterations uint64) (*bqForm.BQuadraticForm, error) {
	if outputA != "" && outputB != "" && outputC != "" {
		msg := &bqForm.BQForm{
			A: outputA,
			B: outputB,
			C: outputC,
		}
		return msg.ToBQuadraticForm()
	}
	log.Warn("No output components given, recomputing the output", "iterations", iterations)
	output, _, err := v.Compute(iterations)
	return output, err
}
