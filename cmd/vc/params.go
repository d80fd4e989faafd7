package vc

import (
	"fmt"

	"github.com/Electron-Labs/pointproofs-gnark/ciphersuite"
	"github.com/Electron-Labs/pointproofs-gnark/cmd"
	"github.com/Electron-Labs/pointproofs-gnark/pointproofs"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// paramsCmd represents the params command
var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Generate prover and verifier parameters from the configured seed",
	Run: func(cmd *cobra.Command, args []string) {
		err := generateParams()
		if err != nil {
			panic(fmt.Errorf("error: %v", err))
		}
	},
}

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that stored prover and verifier parameters belong together",
	Run: func(cmd *cobra.Command, args []string) {
		err := checkParams()
		if err != nil {
			panic(fmt.Errorf("error: %v", err))
		}
	},
}

func init() {
	vcCmd.AddCommand(paramsCmd)
	vcCmd.AddCommand(checkCmd)
}

func generateParams() error {
	pp, vp, err := pointproofs.ParamGen([]byte(cmd.Conf.Seed), ciphersuite.ID(cmd.Conf.Ciphersuite), cmd.Conf.N)
	if err != nil {
		return err
	}
	if err := writeFile(cmd.ProverParamsFile(), pp.Bytes()); err != nil {
		return err
	}
	if err := writeFile(cmd.VerifierParamsFile(), vp.Bytes()); err != nil {
		return err
	}
	log.Info().Int("n", pp.N).Uint8("ciphersuite", uint8(pp.Ciphersuite)).Str("dir", cmd.ParamsDir()).Msg("parameters written")
	return nil
}

func checkParams() error {
	pp, err := ReadProverParams()
	if err != nil {
		return err
	}
	vp, err := ReadVerifierParams()
	if err != nil {
		return err
	}
	if err := pointproofs.CheckParams(pp, vp); err != nil {
		return err
	}
	log.Info().Int("n", pp.N).Msg("parameters are consistent")
	return nil
}
