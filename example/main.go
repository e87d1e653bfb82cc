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

	"github.com/getamis/sirius/log"
	"github.com/spf13/cobra"

	"github.com/getamis/vdf/crypto/vdf"
	"github.com/getamis/vdf/example/config"
)

var (
	configPath string
	bits       int
)

var rootCmd = &cobra.Command{
	Use:   "vdf",
	Short: "Wesolowski VDF over class groups of binary quadratic forms",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config path")
	rootCmd.PersistentFlags().IntVar(&bits, "bits", 0, "discriminant bit length")
	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(benchmarkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Crit("Failed to run command", "err", err)
	}
}

func readConfig() (*config.Config, error) {
	if configPath == "" {
		return &config.Config{}, nil
	}
	return config.ReadConfigFile(configPath)
}

// newVDF derives an instance from the challenge. The discriminant bit length
// comes from the --bits flag, then the config file, then the default.
func newVDF(challenge []byte) (*vdf.VDF, error) {
	cfg, err := readConfig()
	if err != nil {
		return nil, err
	}
	bitLength := vdf.DefaultDiscriminantBits
	if cfg.DiscriminantBits > 0 {
		bitLength = cfg.DiscriminantBits
	}
	if bits > 0 {
		bitLength = bits
	}
	return vdf.NewWithBitLength(challenge, bitLength)
}

// decodeChallenge interprets the argument as hex, falling back to the raw bytes.
func decodeChallenge(s string) []byte {
	if bs, err := hex.DecodeString(s); err == nil {
		return bs
	}
	return []byte(s)
}
