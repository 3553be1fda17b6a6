package main

import (
	"crypto/cipher"
	"fmt"
	"math/big"
	"strings"

	"sigmazk/pkg/batch"
	"sigmazk/pkg/config"
	"sigmazk/pkg/context"
	"sigmazk/pkg/fiatshamir"
	"sigmazk/pkg/group"
	"sigmazk/pkg/log"
	"sigmazk/pkg/metrics"
	"sigmazk/pkg/rangeproof"
	"sigmazk/pkg/secret"
	"sigmazk/pkg/statement"
)

func main() {
	cfg := config.NewConfig()
	suite := group.Find(cfg.Suite)
	rng := group.RandomStream(suite, cfg.Seed)

	analyzer := metrics.NewAnalyzer()
	rec := metrics.NewRecorder()

	var err error
	err = rec.Record(string(cfg.Scenario), metrics.MCommit, func() error {
		switch cfg.Scenario {
		case config.ScenarioDLRep:
			return runDLRep(suite, rec)
		case config.ScenarioAnd:
			return runAnd(suite, rec)
		case config.ScenarioOr:
			return runOr(suite, rec)
		case config.ScenarioRange:
			return runRange(suite, rng, rec, cfg)
		case config.ScenarioFiatShamir:
			return runFiatShamir(suite, rec)
		case config.ScenarioBatch:
			return runBatch(suite, rec, cfg)
		default:
			return fmt.Errorf("unknown scenario %q", cfg.Scenario)
		}
	})
	if err != nil {
		log.Fatalf("scenario %q failed: %v", cfg.Scenario, err)
	}

	analyzer.Add(rec)
	printSummary(cfg, analyzer.Analyze())
}

// runDLRep demonstrates S1: a single atomic DLRep honest run.
func runDLRep(suite group.Suite, rec *metrics.Recorder) error {
	G := suite.Point().Base()
	x := secret.NewNamedWithValue("x", big.NewInt(42))
	lhs := suite.Point().Mul(x.Scalar(suite), G)
	stmt, err := statement.NewDLRep(suite, lhs, secret.Expr{x.Mul(G)})
	if err != nil {
		return err
	}
	return runInteractive(rec, stmt, map[string]*big.Int{"x": big.NewInt(42)})
}

// runAnd demonstrates S2: a shared secret across two DLRep relations.
func runAnd(suite group.Suite, rec *metrics.Recorder) error {
	G := suite.Point().Base()
	H := group.HashToPoint(suite, []byte("sigmacli-h"))

	x := secret.NewNamed("x")
	y := secret.NewNamed("y")
	xs := group.ScalarFromInt(suite, big.NewInt(3))
	ys := group.ScalarFromInt(suite, big.NewInt(4))

	lhs1 := suite.Point().Add(suite.Point().Mul(xs, G), suite.Point().Mul(ys, H))
	d1, err := statement.NewDLRep(suite, lhs1, x.Mul(G).Add(y.Mul(H)))
	if err != nil {
		return err
	}
	lhs2 := suite.Point().Mul(xs, H)
	d2, err := statement.NewDLRep(suite, lhs2, secret.Expr{x.Mul(H)})
	if err != nil {
		return err
	}
	and, err := statement.NewAnd(suite, d1, d2)
	if err != nil {
		return err
	}
	return runInteractive(rec, and, map[string]*big.Int{"x": big.NewInt(3), "y": big.NewInt(4)})
}

// runOr demonstrates S3/S4: proving knowledge of either of two discrete logs.
func runOr(suite group.Suite, rec *metrics.Recorder) error {
	G := suite.Point().Base()
	x := secret.NewNamed("x")
	y := secret.NewNamed("y")
	xs := group.ScalarFromInt(suite, big.NewInt(5))
	ys := group.ScalarFromInt(suite, big.NewInt(6))

	left, err := statement.NewDLRep(suite, suite.Point().Mul(xs, G), secret.Expr{x.Mul(G)})
	if err != nil {
		return err
	}
	right, err := statement.NewDLRep(suite, suite.Point().Mul(ys, G), secret.Expr{y.Mul(G)})
	if err != nil {
		return err
	}
	or, err := statement.NewOr(suite, left, right)
	if err != nil {
		return err
	}
	return runInteractive(rec, or, map[string]*big.Int{"x": big.NewInt(5)})
}

// runRange demonstrates S6, the general L <= v < U reduction.
func runRange(suite group.Suite, rng cipher.Stream, rec *metrics.Recorder, cfg *config.Config) error {
	g := suite.Point().Base()
	h := group.HashToPoint(suite, []byte("sigmacli-range-h"))

	mid := (cfg.Lower + cfg.Upper) / 2
	v := secret.NewWithValue(big.NewInt(mid))
	r := secret.NewWithValue(group.RandomBig(256))
	com := suite.Point().Add(suite.Point().Mul(v.Scalar(suite), g), suite.Point().Mul(r.Scalar(suite), h))

	prover := rangeproof.NewRange(suite, com, g, h, big.NewInt(cfg.Lower), big.NewInt(cfg.Upper), v, r)

	var pre rangeproof.OuterPrecommitment
	if err := rec.Record("Precommit", metrics.MPrecommit, func() error {
		var err error
		pre, err = prover.Precommit(rng)
		return err
	}); err != nil {
		return err
	}

	verifierV := secret.NewNamed(v.Name)
	verifierR := secret.NewNamed(r.Name)
	verifier := rangeproof.NewRange(suite, com, g, h, big.NewInt(cfg.Lower), big.NewInt(cfg.Upper), verifierV, verifierR)
	ok, err := verifier.AdoptPrecommitment(pre)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("range proof: precommitment rejected")
	}

	sProver, err := prover.GetProver()
	if err != nil {
		return err
	}
	sVerifier := verifier.GetVerifier()
	return runProverVerifier(rec, sProver, sVerifier)
}

// runFiatShamir demonstrates the non-interactive wrapper over a DLRep.
func runFiatShamir(suite group.Suite, rec *metrics.Recorder) error {
	G := suite.Point().Base()
	x := secret.NewNamedWithValue("x", big.NewInt(17))
	lhs := suite.Point().Mul(x.Scalar(suite), G)
	stmt, err := statement.NewDLRep(suite, lhs, secret.Expr{x.Mul(G)})
	if err != nil {
		return err
	}

	var proof fiatshamir.Proof
	if err := rec.Record("Prove", metrics.MRespond, func() error {
		var err error
		proof, err = fiatshamir.Prove(suite, stmt, map[string]*big.Int{"x": big.NewInt(17)})
		return err
	}); err != nil {
		return err
	}
	return rec.Record("Verify", metrics.MVerify, func() error {
		if !fiatshamir.Verify(suite, stmt, proof) {
			return fmt.Errorf("fiat-shamir proof did not verify")
		}
		return nil
	})
}

// runBatch demonstrates parallel verification of many independent runs.
func runBatch(suite group.Suite, rec *metrics.Recorder, cfg *config.Config) error {
	G := suite.Point().Base()
	runs := make([]batch.Run, cfg.Runs)
	for i := range runs {
		v := int64(i + 1)
		x := secret.NewNamedWithValue("x", big.NewInt(v))
		lhs := suite.Point().Mul(x.Scalar(suite), G)
		stmt, err := statement.NewDLRep(suite, lhs, secret.Expr{x.Mul(G)})
		if err != nil {
			return err
		}
		proof, err := fiatshamir.Prove(suite, stmt, map[string]*big.Int{"x": big.NewInt(v)})
		if err != nil {
			return err
		}
		runs[i] = batch.Run{Statement: stmt, Commitment: proof.Commitment, Challenge: proof.Challenge, Response: proof.Response}
	}

	ctx := context.NewContext(cfg, rec)
	var errs []error
	if err := rec.Record("VerifyAll", metrics.MVerify, func() error {
		errs = batch.VerifyAll(ctx, runs)
		return nil
	}); err != nil {
		return err
	}
	failed := 0
	for _, e := range errs {
		if e != nil {
			failed++
		}
	}
	log.Info("batch: %d/%d runs verified", len(runs)-failed, len(runs))
	return nil
}

// runInteractive drives a full Commit/Challenge/Respond/Verify exchange
// against a freshly built Prover/Verifier pair, timing each phase.
func runInteractive(rec *metrics.Recorder, stmt statement.Statement, secrets map[string]*big.Int) error {
	prover, err := stmt.GetProver(secrets)
	if err != nil {
		return err
	}
	verifier := stmt.GetVerifier()
	return runProverVerifier(rec, prover, verifier)
}

func runProverVerifier(rec *metrics.Recorder, prover *statement.Prover, verifier *statement.Verifier) error {
	var commitment statement.Commitment
	if err := rec.Record("Commit", metrics.MCommit, func() error {
		var err error
		commitment, err = prover.Commit()
		return err
	}); err != nil {
		return err
	}

	if err := verifier.ProcessCommitment(commitment); err != nil {
		return err
	}

	var response statement.Response
	if err := rec.Record("Respond", metrics.MRespond, func() error {
		challenge, err := verifier.SendChallenge()
		if err != nil {
			return err
		}
		response, err = prover.ComputeResponse(challenge)
		return err
	}); err != nil {
		return err
	}

	var ok bool
	if err := rec.Record("Verify", metrics.MVerify, func() error {
		var err error
		ok, err = verifier.Verify(response)
		return err
	}); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("proof did not verify")
	}
	log.Info("proof verified")
	return nil
}

func printSummary(cfg *config.Config, result metrics.AnalysisResult) {
	const totalWidth = 54
	border := strings.Repeat("=", totalWidth)
	fmt.Println(border)
	fmt.Printf(" Scenario: %s  Suite: %s\n", cfg.Scenario, cfg.Suite)
	fmt.Println(strings.Repeat("-", totalWidth))
	for name, comp := range result.Components {
		for phase, summary := range comp.Summaries {
			fmt.Printf(" %-20s %-10s p50=%s p95=%s\n", name, phase, summary.WallClock.P50, summary.WallClock.P95)
		}
	}
	fmt.Println(border)
}
