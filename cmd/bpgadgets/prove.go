package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PolyhedraZK/bpgadgets/assignment"
	"github.com/PolyhedraZK/bpgadgets/zkerr"
)

var (
	outPrefix       string
	commitmentsPath string
	proofPath       string
)

var proveCmd = &cobra.Command{
	Use:   "prove <statement.yaml>",
	Short: "Prove a statement file that carries a witness",
	Long: `Prove reads a statement file with the keys gadget, params, instance and witness,
and writes <out>.commitments (text) and <out>.proof (binary).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		st, witness, err := assignment.LoadStatement(data)
		if err != nil {
			return err
		}
		if witness == nil {
			return fmt.Errorf("%w: %s has no witness", zkerr.ErrMalformedInstance, args[0])
		}
		e, err := newEngine()
		if err != nil {
			return err
		}
		res, err := e.Prove(st, witness)
		if err != nil {
			return err
		}
		prefix := outPrefix
		if prefix == "" {
			prefix = st.Gadget
		}
		if err := os.WriteFile(prefix+".commitments", []byte(res.CommitmentsText()), 0o644); err != nil {
			return err
		}
		if err := os.WriteFile(prefix+".proof", res.ProofBytes, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s.commitments and %s.proof (%d bytes)\n", prefix, prefix, len(res.ProofBytes))
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <statement.yaml>",
	Short: "Verify a proof against a statement file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		st, _, err := assignment.LoadStatement(data)
		if err != nil {
			return err
		}
		commitments, err := os.ReadFile(commitmentsPath)
		if err != nil {
			return err
		}
		proofBytes, err := os.ReadFile(proofPath)
		if err != nil {
			return err
		}
		e, err := newEngine()
		if err != nil {
			return err
		}
		if err := e.Verify(st, string(commitments), proofBytes); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "accepted")
		return nil
	},
}

func init() {
	proveCmd.Flags().StringVarP(&outPrefix, "out", "o", "", "output path prefix (default: the gadget name)")
	verifyCmd.Flags().StringVar(&commitmentsPath, "commitments", "", "commitments text file")
	verifyCmd.Flags().StringVar(&proofPath, "proof", "", "proof file")
	_ = verifyCmd.MarkFlagRequired("commitments")
	_ = verifyCmd.MarkFlagRequired("proof")
}
