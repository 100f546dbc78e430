package main

import (
	"fmt"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/spf13/cobra"

	"github.com/PolyhedraZK/bpgadgets/assignment"
	"github.com/PolyhedraZK/bpgadgets/gadget"
	"github.com/PolyhedraZK/bpgadgets/mimc"
)

var gadgetsCmd = &cobra.Command{
	Use:   "gadgets",
	Short: "List the registered gadgets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range gadget.Builtin().Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func parseList(args []string) ([]fr.Element, error) {
	res := make([]fr.Element, 0, len(args))
	for _, a := range args {
		for _, s := range strings.Split(a, ",") {
			if s = strings.TrimSpace(s); s == "" {
				continue
			}
			e, err := assignment.ParseScalar(s)
			if err != nil {
				return nil, err
			}
			res = append(res, e)
		}
	}
	return res, nil
}

var mimcHashCmd = &cobra.Command{
	Use:   "mimc-hash <scalar>...",
	Short: "Print the MiMC hash of the given scalars",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := parseList(args)
		if err != nil {
			return err
		}
		h := mimc.Hash(mimc.DefaultParams(), inputs...)
		fmt.Fprintln(cmd.OutOrStdout(), assignment.FormatScalar(&h))
		return nil
	},
}

var (
	leafFlag     string
	siblingsFlag string
	dirsFlag     string
)

var merkleRootCmd = &cobra.Command{
	Use:   "merkle-root",
	Short: "Print the MiMC Merkle root of a leaf and its authentication path",
	Long: `The path is given leaf to root. A direction of 1 means the running node is the
right child at that level.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		leaf, err := assignment.ParseScalar(leafFlag)
		if err != nil {
			return err
		}
		siblings, err := parseList([]string{siblingsFlag})
		if err != nil {
			return err
		}
		var dirs []bool
		for _, d := range strings.Split(dirsFlag, ",") {
			switch strings.TrimSpace(d) {
			case "":
			case "0":
				dirs = append(dirs, false)
			case "1":
				dirs = append(dirs, true)
			default:
				return fmt.Errorf("direction %q is not 0 or 1", d)
			}
		}
		if len(dirs) != len(siblings) {
			return fmt.Errorf("%d siblings but %d directions", len(siblings), len(dirs))
		}
		root := mimc.Root(mimc.DefaultParams(), leaf, siblings, dirs)
		fmt.Fprintln(cmd.OutOrStdout(), assignment.FormatScalar(&root))
		return nil
	},
}

func init() {
	merkleRootCmd.Flags().StringVar(&leafFlag, "leaf", "", "leaf scalar")
	merkleRootCmd.Flags().StringVar(&siblingsFlag, "siblings", "", "comma separated sibling scalars")
	merkleRootCmd.Flags().StringVar(&dirsFlag, "dirs", "", "comma separated directions (0 or 1)")
	_ = merkleRootCmd.MarkFlagRequired("leaf")
}
