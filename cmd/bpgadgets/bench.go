package main

import (
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/PolyhedraZK/bpgadgets"
	"github.com/PolyhedraZK/bpgadgets/field"
	"github.com/PolyhedraZK/bpgadgets/gadget"
	"github.com/PolyhedraZK/bpgadgets/metrics"
)

var (
	benchCount   int
	benchBits    int
	benchWorkers int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Prove random range statements, then verify them as a batch",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if benchCount < 1 {
			return fmt.Errorf("count must be positive")
		}
		m, err := metrics.New(prometheus.NewRegistry())
		if err != nil {
			return err
		}
		e, err := newEngine(bpgadgets.WithMetrics(m))
		if err != nil {
			return err
		}

		st := bpgadgets.Statement{Gadget: "range", Params: gadget.Params{Bits: benchBits}}
		reqs := make([]bpgadgets.VerifyRequest, benchCount)
		bar := progressbar.Default(int64(benchCount), "proving")

		start := time.Now()
		var eg errgroup.Group
		eg.SetLimit(benchWorkers)
		for i := range reqs {
			i := i
			eg.Go(func() error {
				v := rand.Uint64()
				if benchBits < 64 {
					v &= 1<<benchBits - 1
				}
				res, err := e.Prove(st, []fr.Element{field.FromUint64(v)})
				if err != nil {
					return err
				}
				reqs[i] = bpgadgets.VerifyRequest{Statement: st, Commitments: res.Commitments, Proof: res.Proof}
				return bar.Add(1)
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}
		proveTook := time.Since(start)

		start = time.Now()
		if err := e.VerifyBatch(reqs); err != nil {
			return err
		}
		verifyTook := time.Since(start)

		proved, verified := m.Counts(st.Gadget, "ok")
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "\nproved %.0f statements in %s (%s each)\n", proved, proveTook, proveTook/time.Duration(benchCount))
		fmt.Fprintf(out, "verified %.0f statements in %s\n", verified, verifyTook)
		return nil
	},
}

func init() {
	benchCmd.Flags().IntVarP(&benchCount, "count", "n", 32, "number of statements")
	benchCmd.Flags().IntVar(&benchBits, "bits", 64, "range width in bits, at most 64")
	benchCmd.Flags().IntVar(&benchWorkers, "workers", runtime.GOMAXPROCS(0), "concurrent prove calls")
}
