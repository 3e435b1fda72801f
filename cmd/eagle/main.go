package main

/*
eagle evaluates candidate genomic variants against aligned sequencing reads:
for every variant it explicitly tests the alternative-sequence hypothesis
against the reference hypothesis and reports a posterior probability, a
likelihood ratio, and the counts of reads unambiguously favoring each side.
*/

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"

	"github.com/dc-tw/eagle/eval"
	"github.com/dc-tw/eagle/refseq"
	"github.com/dc-tw/eagle/variants"
)

var (
	vcfPath   = flag.String("v", "", "Variants VCF file (required)")
	bamPath   = flag.String("a", "", "Alignment BAM file, coordinate sorted and indexed (required)")
	refPath   = flag.String("r", "", "Reference FASTA file, indexed (required)")
	outPath   = flag.String("o", "", "Output file (default: stdout)")
	numProc   = flag.Int("t", eval.DefaultOpts.NumProc, "Number of worker processes")
	distLim   = flag.Int("n", eval.DefaultOpts.DistLim, "Group nearby variants within this many bases as one set of hypotheses (0 to disable)")
	chainMode = flag.Int("s", variants.ChainGap, "Set chaining mode: 0 chains consecutive gaps, 1 anchors at the set's first variant")
	window    = flag.Int("w", 0, "Restrict likelihood scoring to a reference window of +-w bases around each set (0 = whole chromosome)")
	maxH      = flag.Int("maxh", eval.DefaultOpts.MaxH, "Maximum number of variant combinations per set beyond the singletons and full set, instead of all 2^n")
	mvh       = flag.Bool("mvh", false, "Report only the maximum-posterior multi-variant hypothesis")
	pao       = flag.Bool("pao", false, "Consider primary alignments only")
	isc       = flag.Bool("isc", false, "Ignore soft-clipped bases")
	noDup     = flag.Bool("nodup", false, "Ignore reads flagged as duplicates")
	splice    = flag.Bool("splice", false, "Split spliced (RNA-seq) reads into exon segments")
	dp        = flag.Bool("dp", false, "Use dynamic programming (affine-gap alignment) to calculate likelihoods")
	match     = flag.Int("match", eval.DefaultOpts.DPParams.Match, "Match score for -dp and quality-less reads")
	mismatch  = flag.Int("mismatch", eval.DefaultOpts.DPParams.Mismatch, "Mismatch penalty for -dp and quality-less reads")
	gapOp     = flag.Int("gap_op", eval.DefaultOpts.DPParams.GapOpen, "Gap open penalty for -dp")
	gapEx     = flag.Int("gap_ex", eval.DefaultOpts.DPParams.GapExtend, "Gap extend penalty for -dp")
	verbose   = flag.Bool("verbose", false, "Emit the per-read likelihood trace on stderr")
	hetBias   = flag.Float64("hetbias", eval.DefaultOpts.HetBias, "Prior probability bias towards non-homozygous mutations, in [0,1]")
	omega     = flag.Float64("omega", eval.DefaultOpts.Omega, "Prior probability of a read originating from an outside paralogous source")
)

func eagleUsage() {
	fmt.Printf("Usage: %s -v variants.vcf -a alignment.bam -r reference.fasta [options]\n", os.Args[0])
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = eagleUsage
	shutdown := grail.Init()
	defer shutdown()

	if *vcfPath == "" {
		flag.Usage()
		log.Fatalf("Missing variants given as VCF file")
	}
	if *bamPath == "" {
		flag.Usage()
		log.Fatalf("Missing alignments given as BAM file")
	}
	if *refPath == "" {
		flag.Usage()
		log.Fatalf("Missing reference genome given as FASTA file")
	}

	opts := eval.Opts{
		NumProc:   *numProc,
		DistLim:   *distLim,
		ChainMode: *chainMode,
		Window:    *window,
		MaxH:      *maxH,
		MVH:       *mvh,
		PAO:       *pao,
		ISC:       *isc,
		NoDup:     *noDup,
		Splice:    *splice,
		DP:        *dp,
		DPParams:  eval.DefaultOpts.DPParams,
		HetBias:   *hetBias,
		Omega:     *omega,
		Verbose:   *verbose,
	}
	opts.DPParams.Match = *match
	opts.DPParams.Mismatch = *mismatch
	opts.DPParams.GapOpen = *gapOp
	opts.DPParams.GapExtend = *gapEx
	if opts.NumProc < 1 {
		opts.NumProc = 1
	}
	if opts.DistLim < 0 {
		opts.DistLim = 0
	}
	if opts.HetBias < 0 || opts.HetBias > 1 {
		opts.HetBias = eval.DefaultOpts.HetBias
	}
	if opts.MaxH < 0 {
		opts.MaxH = eval.DefaultOpts.MaxH
	}
	if opts.Omega <= 0 || opts.Omega >= 1 {
		opts.Omega = eval.DefaultOpts.Omega
	}

	vars, err := variants.ReadVCF(*vcfPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	sets := variants.Partition(vars, opts.DistLim, opts.ChainMode)
	log.Printf("Variants within %d bp:\t%d entries", opts.DistLim, len(sets))

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("failed to open output file %s: %v", *outPath, err)
		}
		defer f.Close() // nolint: errcheck
		out = f
	}

	cache := refseq.NewCache(*refPath)
	if err := eval.Process(out, sets, *bamPath, cache, &opts); err != nil {
		log.Fatalf("%v", err)
	}
}
